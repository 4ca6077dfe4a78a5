// Package cli implements the conceptmap command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/paupedrejon/conceptmap/internal/config"
	"github.com/paupedrejon/conceptmap/pkg/buildinfo"
	"github.com/paupedrejon/conceptmap/pkg/cache"
	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config *config.Config

	cfgFile string
	stdin   io.Reader
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stdin:  os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Conceptmap turns model output into laid-out concept diagrams",
		Long: `Conceptmap extracts the JSON graph a language model wrote into its answer,
repairs it when truncated, picks a comparison, quadrant or hierarchy template
and computes a deterministic render-ready layout.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default: ./conceptmap.yaml or the user config dir)")
	pf.BoolP("verbose", "v", false, "enable verbose logging")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Bool("no-cache", false, "disable the plan cache")
	pf.String("cache-backend", "", "cache backend: "+strings.Join(cache.Backends, ", "))
	pf.String("cache-dir", "", "directory for the file cache")
	pf.Duration("cache-ttl", 0, "expiry of cached plans")
	pf.String("redis-addr", "", "redis address for the redis backend")
	pf.String("mongo-uri", "", "connection string for the mongo backend")
	_ = root.RegisterFlagCompletionFunc("cache-backend", fixedCompletion(cache.Backends...))
	_ = root.RegisterFlagCompletionFunc("log-level", fixedCompletion(config.LogLevels...))

	root.AddCommand(c.planCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the layered configuration and applies the log level.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	c.SetLogLevel(level)
	c.Config = cfg
	if cfg.File != "" {
		c.Logger.Debug("loaded config", "file", cfg.File)
	}
	return nil
}

// loadedConfig returns the loaded configuration, loading defaults when a command
// runs without the root's pre-run hook (as in tests).
func (c *CLI) loadedConfig() (*config.Config, error) {
	if c.Config != nil {
		return c.Config, nil
	}
	cfg, err := config.Load(c.cfgFile, nil)
	if err != nil {
		return nil, err
	}
	c.Config = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, opts ...pipeline.RunnerOption) (*pipeline.Runner, error) {
	cfg, err := c.loadedConfig()
	if err != nil {
		return nil, err
	}
	cc, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts = append([]pipeline.RunnerOption{pipeline.WithTTL(cfg.Cache.TTL)}, opts...)
	return pipeline.NewRunner(cc, nil, c.Logger, opts...), nil
}

func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	opts := cfg.CacheOptions()
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		return cache.NewNullCache(), nil
	}
	return cache.New(ctx, opts)
}

// =============================================================================
// Input
// =============================================================================

// readInput returns the text of the file named by args, or stdin when args is
// empty or "-".
func (c *CLI) readInput(args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(c.stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeNotFound, err, "input file %s", args[0])
		}
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read input")
	}
	text := string(data)
	if err := errors.ValidateInput(text); err != nil {
		return "", err
	}
	return text, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
