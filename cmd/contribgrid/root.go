package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanqian/commit-canvas/internal/domain/chart"
	"github.com/yanqian/commit-canvas/internal/infra/archive/repogen"
	"github.com/yanqian/commit-canvas/pkg/logger"
)

// cli holds the state shared by every subcommand.
type cli struct {
	logLevel   string
	apiURL     string
	timeout    time.Duration
	maxTextLen int
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "contribgrid",
		Short:        "Draw text on a contribution calendar",
		SilenceUsage: true,
		Long: `contribgrid rasterizes text onto a year's contribution calendar and
synthesizes the commit events that reproduce it.

Subcommands:
  preview   print the calendar in the terminal
  export    write the repository request as JSON
  generate  ask the repository generator for an archive
  font      list the characters that can be drawn`,
	}

	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&c.apiURL, "api-url", envArchiveURL(), "repository generator base URL")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 5*time.Minute, "repository generator timeout")
	root.PersistentFlags().IntVar(&c.maxTextLen, "max-text", 32, "maximum text length")

	root.AddCommand(
		newPreviewCmd(c),
		newExportCmd(c),
		newGenerateCmd(c),
		newFontCmd(c),
	)
	return root
}

// service builds the chart service without an archive cache.
func (c *cli) service(cmd *cobra.Command) chart.Service {
	log := logger.NewText(cmd.ErrOrStderr(), c.logLevel).With("component", "contribgrid")
	client := repogen.NewClient(c.apiURL, c.timeout)
	return chart.NewService(chart.Config{
		DefaultSpacing: 1,
		DefaultXOffset: 1,
		MaxTextLength:  c.maxTextLen,
	}, client, nil, log)
}

// envArchiveURL mirrors the API server's environment handling.
func envArchiveURL() string {
	if v := os.Getenv("ARCHIVE_API_URL"); v != "" {
		return v
	}
	if v := os.Getenv("API_URL"); v != "" {
		return v
	}
	return repogen.DefaultBaseURL
}
