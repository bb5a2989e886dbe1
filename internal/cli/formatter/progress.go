package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/consistency/internal/stats"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders an integer percentage as a bar like [████░░░░] 45%,
// colored by consistency tier.
func RenderProgress(pct int, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3d%%", TierStyle(stats.TierFor(pct)).Render(bar), pct)
}
