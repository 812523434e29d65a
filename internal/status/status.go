// Package status reports which configured projects have a run settings
// file in their output folder.
package status

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dusk-indust/runsettings/internal/config"
)

// ProjectStatus describes the run settings file of one project.
type ProjectStatus struct {
	Name      string
	Path      string // expected file, empty when the project has no output folder
	Generated bool
	ModTime   time.Time

	// Stale is set when the test dll or project file changed after the
	// run settings file was written.
	Stale bool
}

// GetProjectStatus returns the status of p under cfg.
func GetProjectStatus(cfg *config.Config, p config.ProjectConfig) ProjectStatus {
	p = cfg.Resolved(p)
	st := ProjectStatus{Name: p.Name}
	if p.OutputFolder == "" {
		return st
	}

	st.Path = filepath.Join(p.OutputFolder, outputFileName(cfg))
	info, err := os.Stat(st.Path)
	if err != nil {
		return st
	}
	st.Generated = true
	st.ModTime = info.ModTime()

	for _, input := range []string{p.Source, p.ProjectFile} {
		if input == "" {
			continue
		}
		if in, err := os.Stat(input); err == nil && in.ModTime().After(st.ModTime) {
			st.Stale = true
		}
	}
	return st
}

// ListProjects returns the status of every configured project, in
// configuration order.
func ListProjects(cfg *config.Config) []ProjectStatus {
	results := make([]ProjectStatus, 0, len(cfg.Projects))
	for _, p := range cfg.Projects {
		results = append(results, GetProjectStatus(cfg, p))
	}
	return results
}

func outputFileName(cfg *config.Config) string {
	if cfg.OutputFileName != "" {
		return cfg.OutputFileName
	}
	return config.DefaultOutputFileName
}
