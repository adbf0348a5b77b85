// Package cli provides the Cobra command structure for gdsinspect.
package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-gdsii/internal/config"
	"github.com/robert-malhotra/go-gdsii/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app carries the resolved settings shared by all subcommands.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	styles *Styles
}

// NewRootCommand creates the root gdsinspect command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &app{}

	var (
		configPath string
		logLevel   string
		format     string
		color      string
		jobs       int
	)

	rootCmd := &cobra.Command{
		Use:   "gdsinspect",
		Short: "Inspect and rewrite GDSII stream files",
		Long: `gdsinspect reads GDSII stream files and reports their library header,
structure index, reference hierarchy and element lists. It can also rewrite
a library into a normalized copy.

Settings are taken from .gdsinspect.yaml (or --config), then GDSINSPECT_*
environment variables, then command-line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		flags := rootCmd.PersistentFlags()
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if flags.Changed("format") {
			cfg.Format = config.OutputFormat(format)
		}
		if flags.Changed("color") {
			cfg.Color = color
		}
		if flags.Changed("jobs") {
			cfg.Jobs = jobs
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		a.cfg = cfg
		a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)
		a.styles = NewStyles(IsColorEnabled(cfg.Color, cmd.OutOrStdout()))
		cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

		a.logger.Debug("configuration resolved",
			logging.FieldFormat, cfg.Format,
			logging.FieldJobs, cfg.Workers(),
		)
		return nil
	}

	// Global flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to config file")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVarP(&format, "format", "o", "text", "output format: text, json, yaml")
	pf.StringVar(&color, "color", config.ColorAuto, "colorize output: auto, always, never")
	pf.IntVarP(&jobs, "jobs", "j", 0, "files processed concurrently (0 = one per CPU)")

	// Add subcommands.
	rootCmd.AddCommand(newHeaderCommand(a))
	rootCmd.AddCommand(newStructsCommand(a))
	rootCmd.AddCommand(newHierarchyCommand(a))
	rootCmd.AddCommand(newTreeCommand(a))
	rootCmd.AddCommand(newDumpCommand(a))
	rootCmd.AddCommand(newRewriteCommand(a))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
