package formatter

import (
	"strings"

	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// TaskLabel renders a task name prefixed by its icon.
func TaskLabel(t *domain.Task) string {
	if t.Icon == "" {
		return t.Name
	}
	return t.Icon + " " + t.Name
}

// Checkbox renders a done/not-done marker.
func Checkbox(done bool) string {
	if done {
		return StyleGreen.Render("[x]")
	}
	return StyleDim.Render("[ ]")
}
