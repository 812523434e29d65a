// Package testrun writes run settings files for the projects of a test run.
// It is the I/O boundary around the pure replacement factories.
package testrun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/runsettings/internal/config"
	"github.com/dusk-indust/runsettings/internal/csproj"
	"github.com/dusk-indust/runsettings/internal/metrics"
	"github.com/dusk-indust/runsettings/internal/runsettings"
	"github.com/dusk-indust/runsettings/internal/templatedata"
)

// ReferenceResolver finds the referenced projects of a test project file.
type ReferenceResolver interface {
	Referenced(projectFile string, includeReferenced bool) (csproj.Referenced, error)
}

// Result describes one written run settings file.
type Result struct {
	Project      string
	Path         string
	Replacements runsettings.ReplacementSet
}

// Generator builds, validates and writes run settings files.
type Generator struct {
	cfg        *config.Config
	log        logr.Logger
	refs       ReferenceResolver
	onProgress func(ProgressEvent)
}

// Option configures a Generator.
type Option func(*Generator)

// WithProgress registers a callback invoked for every ProgressEvent. It is
// called from worker goroutines and must be safe for concurrent use.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(g *Generator) { g.onProgress = fn }
}

// WithReferenceResolver replaces the csproj based resolver.
func WithReferenceResolver(r ReferenceResolver) Option {
	return func(g *Generator) { g.refs = r }
}

// NewGenerator creates a Generator for cfg.
func NewGenerator(cfg *config.Config, log logr.Logger, opts ...Option) *Generator {
	g := &Generator{
		cfg:  cfg,
		log:  log,
		refs: csproj.NewReader(log),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Details resolves p into the run details the replacement factories need.
// Configured referenced projects come first, then those read from the
// project file.
func (g *Generator) Details(p config.ProjectConfig) (runsettings.ProjectRunDetails, error) {
	p = g.cfg.Resolved(p)
	opts := p.Options

	d := runsettings.ProjectRunDetails{
		OutputFolder:               p.OutputFolder,
		TestDLLFile:                p.Source,
		ExcludedReferencedProjects: append([]string(nil), p.ExcludedReferencedProjects...),
		IncludedReferencedProjects: append([]string(nil), p.IncludedReferencedProjects...),
		Settings:                   &opts,
	}
	if p.ProjectFile == "" {
		return d, nil
	}

	refs, err := g.refs.Referenced(p.ProjectFile, opts.IncludeReferencedProjects)
	if err != nil {
		return d, fmt.Errorf("project %s: %w", p.Name, err)
	}
	d.ExcludedReferencedProjects = append(d.ExcludedReferencedProjects, refs.Excluded...)
	d.IncludedReferencedProjects = append(d.IncludedReferencedProjects, refs.Included...)
	return d, nil
}

// Lookup maps the resolved source of each project to its run details.
func (g *Generator) Lookup(projects []config.ProjectConfig) (map[string]runsettings.ProjectRunDetails, error) {
	lookup := make(map[string]runsettings.ProjectRunDetails, len(projects))
	for _, p := range projects {
		d, err := g.Details(p)
		if err != nil {
			return nil, err
		}
		lookup[g.cfg.Resolve(p.Source)] = d
	}
	return lookup, nil
}

// Project writes the run settings file of a single project into its
// output folder.
func (g *Generator) Project(ctx context.Context, p config.ProjectConfig) (Result, error) {
	started := time.Now()
	res, err := g.project(ctx, p)
	metrics.RegisterGeneration(metrics.ModeProject, started, err == nil)
	return res, err
}

func (g *Generator) project(ctx context.Context, p config.ProjectConfig) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Project: p.Name}, err
	}

	set, err := g.ProjectReplacements(p)
	if err != nil {
		return Result{Project: p.Name}, err
	}

	tmpl, err := g.ProjectTemplate()
	if err != nil {
		return Result{Project: p.Name}, err
	}

	path, err := g.write(metrics.ModeProject, tmpl, set, g.cfg.Resolve(p.OutputFolder))
	if err != nil {
		return Result{Project: p.Name}, fmt.Errorf("project %s: %w", p.Name, err)
	}

	g.log.Info("wrote run settings", "project", p.Name, "path", path, "enabled", set[runsettings.Enabled])
	return Result{Project: p.Name, Path: path, Replacements: set}, nil
}

// Projects writes the run settings of every project concurrently, at most
// Concurrency at a time. The first failure cancels the remaining work.
// Results are returned in input order, including those of failed projects.
func (g *Generator) Projects(ctx context.Context, projects []config.ProjectConfig) ([]Result, error) {
	results := make([]Result, len(projects))
	eg, egctx := errgroup.WithContext(ctx)
	if g.cfg.Concurrency > 0 {
		eg.SetLimit(g.cfg.Concurrency)
	}

	for _, p := range projects {
		g.emit(ProgressEvent{Project: p.Name, Status: ProgressPending})
	}

	for i, p := range projects {
		eg.Go(func() error {
			g.emit(ProgressEvent{Project: p.Name, Status: ProgressWorking})

			res, err := g.Project(egctx, p)
			results[i] = res
			if err != nil {
				g.emit(ProgressEvent{Project: p.Name, Status: ProgressFailed, Message: err.Error()})
				return err
			}
			g.emit(ProgressEvent{Project: p.Name, Status: ProgressComplete, Path: res.Path})
			return nil
		})
	}

	err := eg.Wait()
	return results, err
}

// UserRunSettings writes one merged run settings file for the projects of
// the configuration that take part in the run described by containers.
// The file is written into the merged results directory.
func (g *Generator) UserRunSettings(ctx context.Context, containers []runsettings.TestContainer) (Result, error) {
	started := time.Now()
	res, err := g.userRunSettings(ctx, containers)
	metrics.RegisterGeneration(metrics.ModeUserRunSettings, started, err == nil)
	return res, err
}

func (g *Generator) userRunSettings(ctx context.Context, containers []runsettings.TestContainer) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	set, err := g.MergedReplacements(containers)
	if err != nil {
		return Result{}, err
	}

	dir := set[runsettings.ResultsDirectory]
	if dir == "" {
		return Result{Replacements: set}, errors.New("no participating project has an output folder")
	}

	tmpl, err := g.UserRunSettingsTemplate()
	if err != nil {
		return Result{Replacements: set}, err
	}
	path, err := g.write(metrics.ModeUserRunSettings, tmpl, set, dir)
	if err != nil {
		return Result{Replacements: set}, err
	}

	g.log.Info("wrote merged run settings", "path", path, "containers", len(containers))
	return Result{Path: path, Replacements: set}, nil
}

// ProjectReplacements builds the single-project replacements of p.
func (g *Generator) ProjectReplacements(p config.ProjectConfig) (runsettings.ReplacementSet, error) {
	d, err := g.Details(p)
	if err != nil {
		return nil, err
	}
	return runsettings.ForProject(d, g.cfg.TestAdapter), nil
}

// MergedReplacements builds the merged replacements of the configured
// projects taking part in the run described by containers.
func (g *Generator) MergedReplacements(containers []runsettings.TestContainer) (runsettings.ReplacementSet, error) {
	lookup, err := g.Lookup(g.cfg.Projects)
	if err != nil {
		return nil, err
	}
	return runsettings.ForUserRunSettings(containers, lookup, g.cfg.TestAdapter)
}

// ParticipatingProjects returns the configured projects whose resolved
// source is one of the container sources, in container order. A project
// is returned once even when several containers share its source.
func (g *Generator) ParticipatingProjects(containers []runsettings.TestContainer) []config.ProjectConfig {
	bySource := make(map[string]config.ProjectConfig, len(g.cfg.Projects))
	for _, p := range g.cfg.Projects {
		bySource[g.cfg.Resolve(p.Source)] = p
	}

	var out []config.ProjectConfig
	seen := make(map[string]bool)
	for _, c := range containers {
		p, ok := bySource[c.Source]
		if !ok || seen[c.Source] {
			continue
		}
		seen[c.Source] = true
		out = append(out, p)
	}
	return out
}

// ProjectTemplate returns the configured single-project template.
func (g *Generator) ProjectTemplate() (string, error) {
	return g.template(g.cfg.TemplatePath, templatedata.ProjectTemplate)
}

// UserRunSettingsTemplate returns the configured merged template.
func (g *Generator) UserRunSettingsTemplate() (string, error) {
	return g.template(g.cfg.UserTemplatePath, templatedata.UserRunSettingsTemplate)
}

// template returns the file at custom, or the embedded template when
// custom is empty.
func (g *Generator) template(custom, embedded string) (string, error) {
	if custom == "" {
		return templatedata.Read(embedded)
	}
	data, err := os.ReadFile(g.cfg.Resolve(custom))
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(data), nil
}

func (g *Generator) write(mode, tmpl string, set runsettings.ReplacementSet, dir string) (string, error) {
	if dir == "" {
		return "", errors.New("no output folder")
	}

	out, err := runsettings.Apply(tmpl, set)
	if err != nil {
		var replErr *runsettings.TemplateReplacementError
		if errors.As(err, &replErr) {
			metrics.RegisterTemplateFailure(mode)
			g.log.Error(replErr.Err, "run settings template is not valid xml", "replaced", replErr.Replaced)
		}
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output folder: %w", err)
	}
	name := g.cfg.OutputFileName
	if name == "" {
		name = config.DefaultOutputFileName
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("write run settings: %w", err)
	}
	return path, nil
}

func (g *Generator) emit(ev ProgressEvent) {
	if g.onProgress != nil {
		g.onProgress(ev)
	}
}
