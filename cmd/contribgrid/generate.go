package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var flags repoFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a repository archive through the generator service",
		Long: `generate sends the synthesized contributions to the repository generator
and saves the returned archive. Large canvases can take several minutes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := c.service(cmd).Generate(cmd.Context(), flags.request(cmd))
			if err != nil {
				return err
			}
			out := flags.out
			if out == "" {
				out = archive.Filename
			}
			if err := os.WriteFile(out, archive.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d bytes)\n", out, len(archive.Data))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
