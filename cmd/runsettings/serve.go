package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dusk-indust/runsettings/internal/mcptools"
	"github.com/dusk-indust/runsettings/internal/metrics"
	"github.com/dusk-indust/runsettings/internal/testrun"
)

func newServeMCPCmd(c *cli) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-mcp",
		Short: "Run as an MCP server exposing the run settings tools",
		Long: `Serves the run settings MCP tools on stdio, or over streamable HTTP when
--http is given. The HTTP listener also serves Prometheus metrics on
/metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			gen := testrun.NewGenerator(cfg, c.log)
			server := mcptools.NewRunSettingsMCPServer(mcptools.NewRunSettingsService(cfg, gen, c.log))

			if addr == "" {
				return mcptools.RunStdio(cmd.Context(), server)
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			if err := metrics.Register(reg); err != nil {
				return err
			}
			c.log.Info("serving mcp over http", "addr", addr)
			return mcptools.RunHTTP(cmd.Context(), server, reg, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "http", "", "listen address for streamable HTTP (default: stdio)")
	return cmd
}
