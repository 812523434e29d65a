package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/runsettings/internal/status"
)

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which projects have a run settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			printStatusTable(cmd.OutOrStdout(), status.ListProjects(cfg))
			return nil
		},
	}
}

func printStatusTable(w io.Writer, projects []status.ProjectStatus) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects configured.")
		fmt.Fprintln(w, "Run 'runsettings init' to write a starter configuration.")
		return
	}

	for _, ps := range projects {
		marker := "  "
		label := "missing"
		switch {
		case ps.Path == "":
			label = "no output folder"
		case ps.Stale:
			marker = "->"
			label = "stale"
		case ps.Generated:
			label = "generated"
		}
		fmt.Fprintf(w, "  %s %-30s [%s]\n", marker, ps.Name, label)
	}
}
