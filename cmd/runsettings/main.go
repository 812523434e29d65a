package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dusk-indust/runsettings/internal/config"
	"github.com/dusk-indust/runsettings/internal/logging"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	return root.ExecuteContext(ctx)
}

// cli holds the global flags and the process logger shared by subcommands.
type cli struct {
	configPath string
	verbose    bool

	zlog *zap.Logger
	log  logr.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{log: logr.Discard()}

	root := &cobra.Command{
		Use:   "runsettings",
		Short: "Generate code coverage run settings files for .NET test projects",
		Long: `runsettings renders Microsoft code coverage run settings from templates.

Each configured test project gets its own file, or the projects taking part
in one test run share a merged file written to the first results directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(c.verbose)
			if err != nil {
				return err
			}
			c.zlog = logger
			c.log = logging.Logr(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.zlog != nil {
				_ = c.zlog.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "configuration file (default: runsettings.{yml,yaml,json,toml} in the current directory)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(
		newGenerateCmd(c),
		newMergeCmd(c),
		newReplacementsCmd(c),
		newInitCmd(),
		newServeMCPCmd(c),
		newStatusCmd(c),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads --config, or looks up a configuration file in the
// current directory. The config directory is made absolute so project
// sources compare equal to absolute container paths.
func (c *cli) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Dir, err = filepath.Abs(cfg.Dir); err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	c.log.V(1).Info("loaded configuration", "dir", cfg.Dir, "projects", len(cfg.Projects))
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
