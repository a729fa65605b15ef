package canvas

import (
	"fmt"
	"strings"
)

// Align is a horizontal placement shortcut for the text.
type Align string

const (
	AlignNone   Align = ""
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign accepts "", "left", "center"/"centre" or "right".
func ParseAlign(raw string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return AlignNone, nil
	case "left":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	default:
		return "", fmt.Errorf("unknown alignment %q", raw)
	}
}

// XOffset resolves the week offset for a text of textWidth columns on a grid
// of weeks columns. AlignNone returns fallback unchanged. Left and right keep
// one blank week against the edge.
func (a Align) XOffset(weeks, textWidth, fallback int) int {
	switch a {
	case AlignLeft:
		return 1
	case AlignCenter:
		return floorDiv(weeks-textWidth, 2)
	case AlignRight:
		return weeks - textWidth - 1
	default:
		return fallback
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
