package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(c *cli) *cobra.Command {
	var flags repoFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the repository request as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := c.service(cmd).Export(cmd.Context(), flags.request(cmd))
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(req, "", "  ")
			if err != nil {
				return fmt.Errorf("encode repo request: %w", err)
			}
			payload = append(payload, '\n')
			if flags.out == "" {
				_, err = cmd.OutOrStdout().Write(payload)
				return err
			}
			if err := os.WriteFile(flags.out, payload, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", flags.out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d contributions to %s\n", req.Total, flags.out)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
