package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFontCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "font",
		Short: "List the characters the font can draw",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := c.service(cmd).Font()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Glyphs are %dx%d cells.\n", info.GlyphWidth, info.GlyphHeight)
			fmt.Fprintf(w, "Letters: %s (lowercase %s is drawn as uppercase)\n", info.Uppercase, info.Lowercase)
			fmt.Fprintf(w, "Digits:  %s\n", info.Digits)
			fmt.Fprintf(w, "Symbols: %s\n", strings.Join(info.Symbols, " "))
			return nil
		},
	}
}
