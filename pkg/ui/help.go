package ui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# primewatch

Search for all primes up to a limit, watching progress as it runs.

## Keys

| Key | Action |
|-----|--------|
| enter | start a search |
| esc | cancel a running search / back |
| y | copy result primes to the clipboard |
| h | show recent runs |
| ? | toggle this help |
| q, ctrl+c | quit |

## Limits

The upper bound must fall inside the configured range. Edit
` + "`limits.min` and `limits.max`" + ` in the config file to widen it;
changes are picked up live.
`

func (m Model) viewHelp() string {
	width := m.width - 4
	if width < 40 {
		width = 40
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out + hintStyle.Render("esc close")
}
