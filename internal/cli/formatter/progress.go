package formatter

import (
	"fmt"
	"strings"
	"time"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders worked time against a daily target, like
// [████░░░░]  45%. The bar turns green once the target is reached.
func RenderProgress(worked, target time.Duration, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if target > 0 {
		pct = float64(worked) / float64(target)
	}
	clamped := min(max(pct, 0), 1)

	filled := min(int(clamped*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	if pct >= 1 {
		style = StyleGreen
	} else if pct < 0.33 {
		style = StyleRed
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
