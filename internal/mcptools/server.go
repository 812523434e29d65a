package mcptools

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// version is set by the linker at build time.
var version = "dev"

// NewRunSettingsMCPServer creates an MCP server with the run settings tools
// registered: project_replacements, merged_replacements, render_runsettings
// and list_placeholders.
func NewRunSettingsMCPServer(svc *RunSettingsService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "runsettings",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "project_replacements",
		Description: "Compute the template replacements of one configured test project: test adapter, results directory, enabled flag and the include/exclude filter elements.",
	}, svc.ProjectReplacements)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merged_replacements",
		Description: "Compute the merged replacements for a test run spanning several projects. Only configured projects whose test dll is one of the given containers contribute.",
	}, svc.MergedReplacements)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_runsettings",
		Description: "Render the run settings document for a project or a set of test containers without writing it, and report whether it is valid xml.",
	}, svc.RenderRunSettings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_placeholders",
		Description: "List every $Name$ token the run settings templates may contain.",
	}, svc.ListPlaceholders)

	return server
}

// RunStdio runs server on stdio transport, blocking until stdin is closed or
// the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// NewHTTPHandler serves the MCP tools over streamable HTTP and the metrics
// of gatherer on /metrics.
func NewHTTPHandler(server *mcp.Server, gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/", mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	))
	return mux
}

// RunHTTP starts an HTTP server on addr exposing NewHTTPHandler, until ctx
// is cancelled.
func RunHTTP(ctx context.Context, server *mcp.Server, gatherer prometheus.Gatherer, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewHTTPHandler(server, gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
