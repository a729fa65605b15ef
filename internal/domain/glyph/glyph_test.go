package glyph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRasterizeWidth(t *testing.T) {
	cases := []struct {
		text    string
		spacing int
		want    int
	}{
		{"", 1, 0},
		{"", 0, 0},
		{"A", 0, 5},
		{"A", 3, 5},
		{"AB", 1, 11},
		{"AB12", 1, 23},
		{"HELLO", 0, 25},
		{"HI", 5, 15},
	}
	for _, tc := range cases {
		bmp := Rasterize(tc.text, tc.spacing)
		require.Equal(t, tc.want, bmp.Cols, "text=%q spacing=%d", tc.text, tc.spacing)
		require.Equal(t, tc.want, TextWidth(tc.text, tc.spacing))
		require.Equal(t, Height, bmp.Rows())
	}
}

func TestRasterizeLetterA(t *testing.T) {
	bmp := Rasterize("a", 1)

	want := strings.Join([]string{
		".###.",
		"#...#",
		"#...#",
		"#####",
		"#...#",
		"#...#",
		"#...#",
	}, "\n")
	require.Equal(t, want, bmp.String())
}

func TestRasterizeGapStaysBlank(t *testing.T) {
	bmp := Rasterize("HH", 2)
	for row := 0; row < Height; row++ {
		require.False(t, bmp.At(row, 5))
		require.False(t, bmp.At(row, 6))
		require.Equal(t, bmp.At(row, 0), bmp.At(row, 7))
	}
}

func TestRasterizeUnknownIsBlank(t *testing.T) {
	bmp := Rasterize("é€", 1)
	require.Equal(t, 11, bmp.Cols)
	for row := 0; row < Height; row++ {
		for col := 0; col < bmp.Cols; col++ {
			require.False(t, bmp.At(row, col))
		}
	}
}

func TestRasterizeNegativeSpacing(t *testing.T) {
	require.Equal(t, Rasterize("AB", 0).String(), Rasterize("AB", -4).String())
}

func TestAtOutOfRange(t *testing.T) {
	bmp := Rasterize("I", 0)
	require.False(t, bmp.At(-1, 0))
	require.False(t, bmp.At(0, -1))
	require.False(t, bmp.At(Height, 0))
	require.False(t, bmp.At(0, 5))
}

func TestFontTableShape(t *testing.T) {
	for r, rows := range font5x7 {
		for i, line := range rows {
			require.Len(t, line, Width, "rune %q row %d", r, i)
			require.Empty(t, strings.Trim(line, "01"), "rune %q row %d", r, i)
		}
	}
	for r := 'A'; r <= 'Z'; r++ {
		require.True(t, Supported(r))
		require.True(t, Supported(r+('a'-'A')))
	}
	for r := '0'; r <= '9'; r++ {
		require.True(t, Supported(r))
	}
}

func TestSymbols(t *testing.T) {
	symbols := Symbols()
	require.Contains(t, symbols, "!")
	require.Contains(t, symbols, "♥")
	require.NotContains(t, symbols, "A")
	require.NotContains(t, symbols, " ")
	require.IsNonDecreasing(t, symbols)
}
