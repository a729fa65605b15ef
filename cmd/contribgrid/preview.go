package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yanqian/commit-canvas/internal/domain/calendar"
	"github.com/yanqian/commit-canvas/internal/domain/chart"
)

const (
	cellLit   = "■"
	cellEmpty = "□"
	cellOut   = "·"
)

func newPreviewCmd(c *cli) *cobra.Command {
	var (
		flags canvasFlags
		plain bool
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the contribution calendar for the given text",
		RunE: func(cmd *cobra.Command, args []string) error {
			preview, err := c.service(cmd).Preview(cmd.Context(), flags.request(cmd))
			if err != nil {
				return err
			}
			renderPreview(cmd.OutOrStdout(), preview, plain)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print levels as digits instead of colored cells")
	return cmd
}

func renderPreview(w io.Writer, p chart.Preview, plain bool) {
	header := lipgloss.NewStyle().Bold(true)
	fmt.Fprintln(w, header.Render("Year | Week Start | Grid Start | Weeks"))
	fmt.Fprintf(w, "%d | %s | %s | %d\n", p.Year, p.WeekStart, p.GridStart, p.Weeks)
	fmt.Fprintln(w)

	styles := make([]lipgloss.Style, len(p.Palette.Colors))
	for i, color := range p.Palette.Colors {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	faint := lipgloss.NewStyle().Faint(true)

	labels := dayLabels(p.WeekStart)
	for d := 0; d < calendar.DaysPerWeek; d++ {
		var row strings.Builder
		row.WriteString(faint.Render(labels[d]))
		row.WriteString(" ")
		for wk := 0; wk < p.Weeks; wk++ {
			row.WriteString(cell(p, wk, d, plain, styles, faint))
		}
		fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d contributions, %d of %d days lit\n", p.Total, p.Stats.Lit, p.Stats.InYearCells)
}

func cell(p chart.Preview, wk, d int, plain bool, styles []lipgloss.Style, faint lipgloss.Style) string {
	level := p.Grid[wk][d]
	if !p.InYear[wk][d] {
		if plain {
			return ". "
		}
		return faint.Render(cellOut) + " "
	}
	if plain {
		return fmt.Sprintf("%d ", level)
	}
	glyph := cellLit
	if level == 0 {
		glyph = cellEmpty
	}
	return styles[level].Render(glyph) + " "
}

func dayLabels(ws calendar.WeekStart) [calendar.DaysPerWeek]string {
	if ws == calendar.WeekStartMonday {
		return [calendar.DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	}
	return [calendar.DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
}
