package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/runsettings/internal/config"
	"github.com/dusk-indust/runsettings/internal/runsettings"
	"github.com/dusk-indust/runsettings/internal/testrun"
)

func newGenerateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [project...]",
		Short: "Write the run settings file of each configured project",
		Long: `Writes one run settings file into the output folder of each project.
Projects are selected by name or source; all configured projects are
generated when none is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			projects, err := selectProjects(cfg, args)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects configured.")
				return nil
			}

			gen := testrun.NewGenerator(cfg, c.log, testrun.WithProgress(progressPrinter(cmd.OutOrStdout())))
			_, err = gen.Projects(cmd.Context(), projects)
			return err
		},
	}
}

func newMergeCmd(c *cli) *cobra.Command {
	var containers []string

	cmd := &cobra.Command{
		Use:   "merge --containers a.dll,b.dll",
		Short: "Write one merged run settings file for a test run",
		Long: `Writes a single run settings file for the configured projects whose test
dll is one of the given containers. The file goes into the output folder
of the first participating project.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			tcs, err := toContainers(containers)
			if err != nil {
				return err
			}

			res, err := testrun.NewGenerator(cfg, c.log).UserRunSettings(cmd.Context(), tcs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", res.Path)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&containers, "containers", nil, "test container sources (test dll paths) taking part in the run")
	_ = cmd.MarkFlagRequired("containers")
	return cmd
}

// selectProjects returns the projects named by keys, or every configured
// project when keys is empty.
func selectProjects(cfg *config.Config, keys []string) ([]config.ProjectConfig, error) {
	if len(keys) == 0 {
		return cfg.Projects, nil
	}
	out := make([]config.ProjectConfig, 0, len(keys))
	for _, key := range keys {
		p, ok := cfg.Project(key)
		if !ok {
			return nil, fmt.Errorf("unknown project %q", key)
		}
		out = append(out, p)
	}
	return out, nil
}

// toContainers makes each source absolute so it matches resolved project
// sources.
func toContainers(sources []string) ([]runsettings.TestContainer, error) {
	out := make([]runsettings.TestContainer, 0, len(sources))
	for _, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			return nil, fmt.Errorf("resolving container %s: %w", src, err)
		}
		out = append(out, runsettings.TestContainer{Source: abs})
	}
	return out, nil
}

// progressPrinter writes progress lines to w. Events arrive from worker
// goroutines.
func progressPrinter(w io.Writer) func(testrun.ProgressEvent) {
	var mu sync.Mutex
	return func(ev testrun.ProgressEvent) {
		if ev.Status == testrun.ProgressPending {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, testrun.FormatProgress(ev))
	}
}
