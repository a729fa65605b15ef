package glyph

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// Height is the fixed number of pixel rows of every glyph.
	Height = 7
	// Width is the fixed number of pixel columns of every glyph.
	Width = 5
)

// Bitmap is a Height x Cols binary image, addressed [row][col].
type Bitmap struct {
	Cols int
	pix  [Height][]bool
}

// Rows returns the bitmap height, always Height.
func (b Bitmap) Rows() int {
	return Height
}

// At reports whether the pixel is lit. Out-of-range coordinates are dark.
func (b Bitmap) At(row, col int) bool {
	if row < 0 || row >= Height || col < 0 || col >= b.Cols {
		return false
	}
	return b.pix[row][col]
}

// String renders the bitmap with '#' and '.' rows, one line per row.
func (b Bitmap) String() string {
	var sb strings.Builder
	for row := 0; row < Height; row++ {
		for col := 0; col < b.Cols; col++ {
			if b.pix[row][col] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if row < Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Rasterize lays text out left to right in the 5x7 font with spacing blank
// columns between glyphs. Lookup is case-insensitive; unknown runes render as
// blanks. Negative spacing counts as zero.
func Rasterize(text string, spacing int) Bitmap {
	if spacing < 0 {
		spacing = 0
	}
	runes := []rune(strings.ToUpper(text))
	cols := TextWidth(text, spacing)

	var bmp Bitmap
	bmp.Cols = cols
	for row := 0; row < Height; row++ {
		bmp.pix[row] = make([]bool, cols)
	}

	x := 0
	for _, r := range runes {
		rows := lookup(r)
		for row := 0; row < Height; row++ {
			line := rows[row]
			for i := 0; i < Width; i++ {
				bmp.pix[row][x+i] = line[i] == '1'
			}
		}
		x += Width + spacing
	}
	return bmp
}

// TextWidth is the number of columns Rasterize produces for text.
func TextWidth(text string, spacing int) int {
	if spacing < 0 {
		spacing = 0
	}
	n := len([]rune(strings.ToUpper(text)))
	if n == 0 {
		return 0
	}
	return n*(Width+spacing) - spacing
}

// Supported reports whether r has its own glyph (case-insensitive).
func Supported(r rune) bool {
	_, ok := font5x7[unicode.ToUpper(r)]
	return ok
}

// Symbols lists the supported characters that are neither letters, digits nor space.
func Symbols() []string {
	out := make([]string, 0, len(font5x7))
	for r := range font5x7 {
		if r == ' ' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

func lookup(r rune) [Height]string {
	if rows, ok := font5x7[r]; ok {
		return rows
	}
	return font5x7[' ']
}
