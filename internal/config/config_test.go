package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `testAdapter: /tools/adapter
outputFileName: fcc.runsettings
projects:
  - name: My.Tests
    source: bin/My.Tests.dll
    projectFile: My.Tests.csproj
    outputFolder: bin/coverage
    excludedReferencedProjects: [Generated]
    options:
      enabled: true
      includeTestAssembly: false
      modulePathsExclude:
        - .*Fakes.*
      functionsInclude: [Run]
`

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "runsettings.yml"), []byte(sampleYAML), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tools/adapter", cfg.TestAdapter)
	assert.Equal(t, "fcc.runsettings", cfg.OutputFileName)
	assert.Equal(t, 0, cfg.Concurrency, "unset means unbounded")
	assert.Equal(t, dir, cfg.Dir)

	require.Len(t, cfg.Projects, 1)
	p := cfg.Projects[0]
	assert.Equal(t, "My.Tests", p.Name)
	assert.Equal(t, []string{"Generated"}, p.ExcludedReferencedProjects)
	assert.True(t, p.Options.Enabled)
	assert.False(t, p.Options.IncludeTestAssembly)
	assert.Equal(t, []string{".*Fakes.*"}, p.Options.ModulePathsExclude)
	assert.Equal(t, []string{"Run"}, p.Options.FunctionsInclude)
}

func TestLoad_ExplicitZeroConcurrency(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "runsettings.yml"), []byte("concurrency: 0\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Concurrency)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	body := `{"testAdapter":"a","concurrency":2,"projects":[{"name":"P","source":"p.dll","options":{"includeTestAssembly":true}}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "runsettings.json"), []byte(body), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "coverage.runsettings", cfg.OutputFileName)
	require.Len(t, cfg.Projects, 1)
	assert.True(t, cfg.Projects[0].Options.IncludeTestAssembly)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Projects)
	assert.Equal(t, "coverage.runsettings", cfg.OutputFileName)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "runsettings.yml"), []byte(sampleYAML), 0o644))
	t.Setenv("RUNSETTINGS_TESTADAPTER", "/env/adapter")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/env/adapter", cfg.TestAdapter)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestConfig_ProjectAndResolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "runsettings.yml"), []byte(sampleYAML), 0o644))
	cfg, err := Load(dir)
	require.NoError(t, err)

	p, ok := cfg.Project("My.Tests")
	require.True(t, ok)
	_, ok = cfg.Project("bin/My.Tests.dll")
	assert.True(t, ok)
	_, ok = cfg.Project("Other")
	assert.False(t, ok)

	r := cfg.Resolved(p)
	assert.Equal(t, filepath.Join(dir, "bin", "My.Tests.dll"), r.Source)
	assert.Equal(t, filepath.Join(dir, "My.Tests.csproj"), r.ProjectFile)
	assert.Equal(t, filepath.Join(dir, "bin", "coverage"), r.OutputFolder)
	assert.Equal(t, "/abs", cfg.Resolve("/abs"))
	assert.Equal(t, "", cfg.Resolve(""))
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Concurrency: -1,
		Projects: []ProjectConfig{
			{Name: "A", Source: "a.dll"},
			{Name: "A", Source: "b.dll"},
			{Name: "C", Source: "a.dll"},
			{Name: "D"},
		},
	}

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "4 errors occurred")
	assert.Contains(t, msg, "concurrency must not be negative")
	assert.Contains(t, msg, `duplicate name "A"`)
	assert.Contains(t, msg, "source a.dll is used by another project")
	assert.Contains(t, msg, "project 3 (D): source is required")
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{Projects: []ProjectConfig{{Name: "A", Source: "a.dll"}, {Source: "b.dll"}}}
	assert.NoError(t, cfg.Validate())
}
