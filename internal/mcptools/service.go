package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/runsettings/internal/config"
	"github.com/dusk-indust/runsettings/internal/export"
	"github.com/dusk-indust/runsettings/internal/metrics"
	"github.com/dusk-indust/runsettings/internal/runsettings"
	"github.com/dusk-indust/runsettings/internal/testrun"
)

// RunSettingsService handles MCP tool calls against one loaded
// configuration. Nothing it does writes to the file system.
type RunSettingsService struct {
	cfg *config.Config
	gen *testrun.Generator
	log logr.Logger
}

// NewRunSettingsService creates a RunSettingsService for cfg.
func NewRunSettingsService(cfg *config.Config, gen *testrun.Generator, log logr.Logger) *RunSettingsService {
	return &RunSettingsService{
		cfg: cfg,
		gen: gen,
		log: log,
	}
}

// ProjectReplacements returns the single-project replacements of a
// configured project.
func (s *RunSettingsService) ProjectReplacements(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ProjectReplacementsInput,
) (*mcp.CallToolResult, ReplacementsOutput, error) {
	p, ok := s.cfg.Project(input.Project)
	if !ok {
		return nil, ReplacementsOutput{}, fmt.Errorf("unknown project %q", input.Project)
	}

	set, err := s.gen.ProjectReplacements(p)
	if err != nil {
		return nil, ReplacementsOutput{}, err
	}
	return nil, *export.NewReplacementsExport(metrics.ModeProject, []string{p.Name}, set), nil
}

// MergedReplacements returns the merged replacements of the configured
// projects taking part in a run.
func (s *RunSettingsService) MergedReplacements(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MergedReplacementsInput,
) (*mcp.CallToolResult, ReplacementsOutput, error) {
	containers := s.containers(input.Containers)
	set, err := s.gen.MergedReplacements(containers)
	if err != nil {
		return nil, ReplacementsOutput{}, err
	}
	return nil, *export.NewReplacementsExport(metrics.ModeUserRunSettings, s.participating(containers), set), nil
}

// RenderRunSettings applies the replacements to the configured template and
// returns the document without writing it. A document that is not valid
// xml is reported in the output rather than as a tool error.
func (s *RunSettingsService) RenderRunSettings(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RenderRunSettingsInput,
) (*mcp.CallToolResult, RenderRunSettingsOutput, error) {
	var (
		mode string
		set  runsettings.ReplacementSet
		tmpl string
		err  error
	)
	switch {
	case input.Project != "":
		mode = metrics.ModeProject
		p, ok := s.cfg.Project(input.Project)
		if !ok {
			return nil, RenderRunSettingsOutput{Mode: mode}, fmt.Errorf("unknown project %q", input.Project)
		}
		if set, err = s.gen.ProjectReplacements(p); err == nil {
			tmpl, err = s.gen.ProjectTemplate()
		}
	case len(input.Containers) > 0:
		mode = metrics.ModeUserRunSettings
		if set, err = s.gen.MergedReplacements(s.containers(input.Containers)); err == nil {
			tmpl, err = s.gen.UserRunSettingsTemplate()
		}
	default:
		return nil, RenderRunSettingsOutput{}, errors.New("either project or containers is required")
	}
	if err != nil {
		return nil, RenderRunSettingsOutput{Mode: mode}, err
	}

	doc, err := runsettings.Apply(tmpl, set)
	if err != nil {
		var replErr *runsettings.TemplateReplacementError
		if !errors.As(err, &replErr) {
			return nil, RenderRunSettingsOutput{Mode: mode}, err
		}
		metrics.RegisterTemplateFailure(mode)
		s.log.V(1).Info("rendered run settings are not valid xml", "mode", mode, "error", replErr.Err.Error())
		return nil, RenderRunSettingsOutput{
			Mode:     mode,
			Document: replErr.Replaced,
			Message:  replErr.Err.Error(),
		}, nil
	}

	return nil, RenderRunSettingsOutput{
		Mode:     mode,
		Document: doc,
		Valid:    true,
	}, nil
}

// ListPlaceholders returns every token the replacement factories produce.
func (s *RunSettingsService) ListPlaceholders(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListPlaceholdersInput,
) (*mcp.CallToolResult, ListPlaceholdersOutput, error) {
	all := runsettings.AllPlaceholders()
	out := ListPlaceholdersOutput{Placeholders: make([]PlaceholderInfo, len(all))}
	for i, p := range all {
		out.Placeholders[i] = PlaceholderInfo{Name: string(p), Token: p.Token()}
	}
	return nil, out, nil
}

func (s *RunSettingsService) participating(containers []runsettings.TestContainer) []string {
	var names []string
	for _, p := range s.gen.ParticipatingProjects(containers) {
		names = append(names, p.Name)
	}
	return names
}

// containers resolves relative sources against the config directory, the
// way project sources are resolved. It never returns nil, so a missing
// list means an empty run.
func (s *RunSettingsService) containers(sources []string) []runsettings.TestContainer {
	out := make([]runsettings.TestContainer, 0, len(sources))
	for _, src := range sources {
		out = append(out, runsettings.TestContainer{Source: s.cfg.Resolve(src)})
	}
	return out
}
