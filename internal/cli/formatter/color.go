package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/stats"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TierStyle colors a percentage by its tier.
func TierStyle(t stats.Tier) lipgloss.Style {
	switch t {
	case stats.TierPerfect:
		return StyleGreen.Bold(true)
	case stats.TierGreat:
		return StyleGreen
	case stats.TierGood:
		return StyleYellow
	case stats.TierLow:
		return StyleRed
	default:
		return StyleDim
	}
}

// Percentage renders "75%" in its tier color.
func Percentage(pct int) string {
	return TierStyle(stats.TierFor(pct)).Render(fmt.Sprintf("%d%%", pct))
}

// SessionIndicator returns the icon and label for a session status.
func SessionIndicator(st domain.SessionStatus) string {
	switch st {
	case domain.SessionCompleted:
		return StyleGreen.Render("✔ done")
	case domain.SessionAvailable:
		return StyleHeader.Render("● open now")
	case domain.SessionMissed:
		return StyleRed.Render("✖ missed")
	case domain.SessionUpcoming:
		return StyleDim.Render("○ upcoming")
	default:
		return StyleDim.Render(string(st))
	}
}

// CadenceBadge labels a task's cadence.
func CadenceBadge(c domain.Cadence) string {
	if c == domain.CadencePerSession {
		return StylePurple.Render("every session")
	}
	return StyleBlue.Render("daily")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
