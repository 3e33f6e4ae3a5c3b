package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}
	if m.showHelp {
		return m.viewHelp()
	}
	if m.showHistory {
		return m.viewHistory()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("primewatch"))
	b.WriteString("\n")

	min, max := m.ctrl.Bounds()
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("prime search, limits %s..%s",
		compactCount(min), compactCount(max))))
	b.WriteString("\n\n")

	switch m.screen {
	case screenInput:
		b.WriteString(m.viewInput())
	case screenRunning:
		b.WriteString(m.viewRunning())
	case screenDone:
		b.WriteString(m.viewDone())
	}

	if m.statusMsg != "" {
		b.WriteString("\n" + m.statusMsg)
	}
	b.WriteString("\n" + hintStyle.Render(m.hints()))
	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder
	b.WriteString("Search for primes up to:\n\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder
	frame := spinnerFrames[m.spinnerIdx]
	b.WriteString(fmt.Sprintf("%s searching up to %s\n\n", frame, compactCount(m.activeLimit)))

	barWidth := m.width - 12
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 60 {
		barWidth = 60
	}
	b.WriteString(renderBar(barWidth, m.percent))
	b.WriteString(fmt.Sprintf(" %3d%%\n\n", m.percent))
	b.WriteString(statusStyle.Render(fmt.Sprintf("checked %s candidates, %s primes so far",
		compactCount(m.checked), compactCount(m.found))))
	return b.String()
}

func (m Model) viewDone() string {
	if m.result == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(successStyle.Render(fmt.Sprintf("Found %d primes up to %s in %s",
		len(m.result.Primes), compactCount(m.activeLimit), formatElapsed(m.result.Elapsed))))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(m.results.View()))
	b.WriteString("\n")

	if m.summary != nil {
		s := m.summary
		lines := []string{
			fmt.Sprintf("largest gap   %d (after %d)", s.LargestGap, s.LargestGapAt),
			fmt.Sprintf("twin pairs    %d", s.TwinPairs),
			fmt.Sprintf("mean gap      %.2f", s.MeanGap),
			fmt.Sprintf("stddev gap    %.2f", s.StddevGap),
		}
		b.WriteString("\n" + statusStyle.Render(strings.Join(lines, "\n")))
	}
	return b.String()
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render("Recent runs"))
	b.WriteString("\n\n")

	if len(m.historyRuns) == 0 {
		b.WriteString(hintStyle.Render("no runs recorded yet"))
	} else {
		for _, r := range m.historyRuns {
			line := fmt.Sprintf("%s  limit %-10s  %-8s primes  %s",
				r.StartedAt.Format("2006-01-02 15:04"),
				compactCount(r.Limit),
				compactCount(r.Found),
				formatElapsed(r.Elapsed))
			b.WriteString(truncate(line, m.width-6) + "\n")
		}
	}
	b.WriteString("\n" + hintStyle.Render("esc/h close"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) hints() string {
	switch m.screen {
	case screenRunning:
		return "esc cancel · ctrl+c quit"
	case screenDone:
		return "enter new search · y yank · h history · ? help · q quit"
	default:
		return "enter start · h history · ? help · q quit"
	}
}
