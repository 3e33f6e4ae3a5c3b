package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// truncate shortens s to at most width display cells, appending an ellipsis
// when something was cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// compactCount renders n like "168", "9.6k" or "1.2M".
func compactCount(n int) string {
	switch {
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 1_000_000:
		return trimZero(fmt.Sprintf("%.1fk", float64(n)/1_000))
	default:
		return trimZero(fmt.Sprintf("%.1fM", float64(n)/1_000_000))
	}
}

func trimZero(s string) string {
	return strings.Replace(s, ".0", "", 1)
}

// formatElapsed renders a duration the way the completion line shows it.
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// renderBar draws a percent bar of the given width in cells.
func renderBar(width, percent int) string {
	if width < 2 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := width * percent / 100
	return progressBarStyle.Render(strings.Repeat("█", filled)) +
		progressRestStyle.Render(strings.Repeat("░", width-filled))
}

// previewPrimes renders the first and last few primes of a result, eliding
// the middle.
func previewPrimes(primes []int, edge int) string {
	if len(primes) == 0 {
		return "(none)"
	}
	if edge <= 0 {
		edge = 5
	}
	if len(primes) <= 2*edge {
		return joinInts(primes)
	}
	return joinInts(primes[:edge]) + " … " + joinInts(primes[len(primes)-edge:])
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, " ")
}
