package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/runsettings/internal/export"
	"github.com/dusk-indust/runsettings/internal/metrics"
	"github.com/dusk-indust/runsettings/internal/testrun"
)

func newReplacementsCmd(c *cli) *cobra.Command {
	var (
		merged     bool
		containers []string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "replacements [project]",
		Short: "Print the template replacements without writing anything",
		Long: `Prints the replacement set of one project, or with --merged the merged
replacement set of the projects taking part in the run described by
--containers.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			gen := testrun.NewGenerator(cfg, c.log)

			var exp *export.ReplacementsExport
			if merged {
				tcs, err := toContainers(containers)
				if err != nil {
					return err
				}
				set, err := gen.MergedReplacements(tcs)
				if err != nil {
					return err
				}
				var names []string
				for _, p := range gen.ParticipatingProjects(tcs) {
					names = append(names, p.Name)
				}
				exp = export.NewReplacementsExport(metrics.ModeUserRunSettings, names, set)
			} else {
				if len(args) == 0 {
					return errors.New("a project is required unless --merged is set")
				}
				projects, err := selectProjects(cfg, args)
				if err != nil {
					return err
				}
				set, err := gen.ProjectReplacements(projects[0])
				if err != nil {
					return err
				}
				exp = export.NewReplacementsExport(metrics.ModeProject, []string{projects[0].Name}, set)
			}

			return export.Write(cmd.OutOrStdout(), f, exp)
		},
	}
	cmd.Flags().BoolVar(&merged, "merged", false, "print the merged replacements of a test run")
	cmd.Flags().StringSliceVar(&containers, "containers", nil, "test container sources, with --merged")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}
