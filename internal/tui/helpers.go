package tui

import (
	"fmt"
	"math"
	"strconv"
)

// formatChange renders a daily change as an arrow and an absolute percentage.
func formatChange(change float64) string {
	if change >= 0 {
		return GreenStyle.Render(fmt.Sprintf("▲ %.2f%%", math.Abs(change)))
	}
	return RedStyle.Render(fmt.Sprintf("▼ %.2f%%", math.Abs(change)))
}

// formatQuantity prints a quantity without trailing zeros.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// truncate shortens s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
