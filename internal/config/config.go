package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/jinzhu/configor"

	"github.com/dusk-indust/runsettings/internal/runsettings"
)

// EnvPrefix prefixes environment variables that override file settings,
// e.g. RUNSETTINGS_TESTADAPTER.
const EnvPrefix = "RUNSETTINGS"

// DefaultOutputFileName is the run settings file name used when none is
// configured.
const DefaultOutputFileName = "coverage.runsettings"

// FileNames are the configuration files looked up by Load, in order.
var FileNames = []string{"runsettings.yml", "runsettings.yaml", "runsettings.json", "runsettings.toml"}

// Config holds the settings of a run settings generation.
type Config struct {
	// TestAdapter is the directory of the coverage test adapter.
	TestAdapter string `yaml:"testAdapter,omitempty" json:"testAdapter,omitempty"`

	// TemplatePath overrides the embedded single-project template.
	TemplatePath string `yaml:"templatePath,omitempty" json:"templatePath,omitempty"`

	// UserTemplatePath overrides the embedded merged template.
	UserTemplatePath string `yaml:"userTemplatePath,omitempty" json:"userTemplatePath,omitempty"`

	// OutputFileName is the file written into each output folder.
	OutputFileName string `yaml:"outputFileName,omitempty" json:"outputFileName,omitempty" default:"coverage.runsettings"`

	// Concurrency bounds how many projects are generated at once. Zero or
	// unset means no bound.
	Concurrency int `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`

	Verbose bool `yaml:"verbose,omitempty" json:"verbose,omitempty"`

	Projects []ProjectConfig `yaml:"projects,omitempty" json:"projects,omitempty"`

	// Dir is the directory relative paths are resolved against.
	Dir string `yaml:"-" json:"-"`
}

// ProjectConfig describes one coverage project.
type ProjectConfig struct {
	Name string `yaml:"name" json:"name"`

	// Source is the test dll and the key matched against test containers.
	Source string `yaml:"source" json:"source"`

	// ProjectFile, when set, is read to discover referenced projects.
	ProjectFile string `yaml:"projectFile,omitempty" json:"projectFile,omitempty"`

	OutputFolder string `yaml:"outputFolder,omitempty" json:"outputFolder,omitempty"`

	ExcludedReferencedProjects []string `yaml:"excludedReferencedProjects,omitempty" json:"excludedReferencedProjects,omitempty"`
	IncludedReferencedProjects []string `yaml:"includedReferencedProjects,omitempty" json:"includedReferencedProjects,omitempty"`

	Options runsettings.CoverageOptions `yaml:"options" json:"options"`
}

// Load reads the first configuration file found in dir. Returns a config
// holding only defaults and environment overrides (not an error) if no
// config file exists.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	cfg := &Config{}
	if err := newLoader().Load(cfg); err != nil {
		return nil, err
	}
	cfg.Dir = dir
	return cfg, nil
}

// LoadFile reads the configuration file at path.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	cfg := &Config{}
	if err := newLoader().Load(cfg, path); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

func newLoader() *configor.Configor {
	return configor.New(&configor.Config{
		ENVPrefix: EnvPrefix,
		Silent:    true,
	})
}

// Project returns the project with the given name or source.
func (c *Config) Project(key string) (ProjectConfig, bool) {
	for _, p := range c.Projects {
		if p.Name == key || p.Source == key {
			return p, true
		}
	}
	return ProjectConfig{}, false
}

// Resolve returns path made absolute against the config directory. Empty
// paths stay empty.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// Resolved returns a copy of p with its file system paths resolved.
func (c *Config) Resolved(p ProjectConfig) ProjectConfig {
	p.Source = c.Resolve(p.Source)
	p.ProjectFile = c.Resolve(p.ProjectFile)
	p.OutputFolder = c.Resolve(p.OutputFolder)
	return p
}

// Validate reports every problem of the configuration at once: projects
// without a source, and names or sources used by more than one project.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if c.Concurrency < 0 {
		errs = multierror.Append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}

	names := make(map[string]bool, len(c.Projects))
	sources := make(map[string]bool, len(c.Projects))
	for i, p := range c.Projects {
		if p.Source == "" {
			errs = multierror.Append(errs, fmt.Errorf("project %d (%s): source is required", i, p.Name))
		} else if src := c.Resolve(p.Source); sources[src] {
			errs = multierror.Append(errs, fmt.Errorf("project %d (%s): source %s is used by another project", i, p.Name, p.Source))
		} else {
			sources[src] = true
		}

		if p.Name == "" {
			continue
		}
		if names[p.Name] {
			errs = multierror.Append(errs, fmt.Errorf("project %d: duplicate name %q", i, p.Name))
		}
		names[p.Name] = true
	}
	return errs.ErrorOrNil()
}
