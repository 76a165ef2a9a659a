package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/me/prodview/internal/catalog"
	"github.com/me/prodview/internal/config"
	"github.com/me/prodview/internal/logging"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

var (
	flagConfig    string
	flagBaseURL   string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
	flagLogFile   string

	cfg      config.ViewerConfig
	logger   *slog.Logger
	client   catalog.Catalog
	closeLog func() error
)

// NewRootCmd creates the root cobra command for the prodview CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prodview",
		Short: "prodview — browse a remote product catalog",
		Long:  "prodview lists, searches and interactively browses a dummyjson-style product catalog.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(cmd); err != nil {
				return err
			}
			client = catalog.NewClient(cfg.ClientConfig(), logger)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.prodview/config.yaml)")
	root.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Catalog service URL (or PRODVIEW_BASE_URL env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
	root.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (browse discards logs otherwise)")

	root.AddCommand(
		newBrowseCmd(),
		newListCmd(),
		newSearchCmd(),
		newVersionCmd(),
	)

	return root
}

// Execute runs the prodview command line under ctx.
func Execute(ctx context.Context) error {
	return execute(ctx, NewRootCmd())
}

// execute runs root and releases the log file whether or not the command
// failed; cobra skips post-run hooks after an error.
func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	return errors.Join(err, closeLogFile())
}

func closeLogFile() error {
	if closeLog == nil {
		return nil
	}
	err := closeLog()
	closeLog = nil
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

// setup layers flags over the loaded config and builds the logger.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		loaded.BaseURL = flagBaseURL
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = flagLogLevel
	}
	if flags.Changed("log-format") {
		loaded.LogFormat = flagLogFormat
	}
	if flags.Changed("log-file") {
		loaded.LogFile = flagLogFile
	}
	if flagDebug {
		loaded.LogLevel = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	level := logging.ParseLevel(cfg.LogLevel)
	switch {
	case cfg.LogFile != "":
		logger, closeLog, err = logging.Open(level, cfg.LogFormat, cfg.LogFile)
		if err != nil {
			return err
		}
	case cmd.Name() == "browse":
		// The browser owns the terminal.
		logger = logging.Discard()
	default:
		logger = logging.NewLoggerWithWriter(level, cfg.LogFormat, cmd.ErrOrStderr())
	}
	logger.Debug("config loaded", "base_url", cfg.BaseURL, "mode", cfg.Mode, "page_size", cfg.PageSize)
	return nil
}
