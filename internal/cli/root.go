// Package cli wires configuration, logging and the event bus around the
// terminal UI.
package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"countrypick/internal/config"
)

var version = "dev" // set by the linker

type options struct {
	configPath     string
	apiURL         string
	debounce       time.Duration
	lang           string
	logFile        string
	noMouse        bool
	printSelection bool
}

// Execute runs the root command. The main package handles the exit code.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the countrypick command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "countrypick",
		Short:         "Search countries by name or currency and pick some",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, os.Getenv)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cfg, opts.printSelection)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to the config file")
	pf.StringVar(&opts.apiURL, "api-url", "", "Endpoint returning the country list")
	pf.StringVar(&opts.lang, "lang", "", "UI language (en, de)")
	pf.StringVar(&opts.logFile, "log-file", "", "Log file path")

	f := cmd.Flags()
	f.DurationVar(&opts.debounce, "debounce", config.DefaultDebounce, "Delay before the async card searches")
	f.BoolVar(&opts.noMouse, "no-mouse", false, "Disable mouse support")
	f.BoolVar(&opts.printSelection, "print-selection", true, "Print the selected countries on exit")

	cmd.AddCommand(newListCmd(opts))
	return cmd
}

// resolveConfig layers the config file, the environment and the flags the
// user set, in that order
func resolveConfig(cmd *cobra.Command, opts *options, getenv func(string) string) (*config.Config, error) {
	svc := config.NewConfigService()
	if opts.configPath != "" {
		svc = config.NewConfigServiceAt(opts.configPath)
	}

	cfg, err := svc.Load()
	if err != nil {
		if opts.configPath != "" && errors.Is(err, config.ErrNotFound) {
			return nil, err
		}
		log.Printf("Failed to load config from %s, using defaults: %v", svc.Path(), err)
		cfg = config.DefaultConfig()
	}

	cfg.ApplyEnv(getenv)

	f := cmd.Flags()
	if f.Changed("api-url") {
		cfg.API.URL = opts.apiURL
	}
	if f.Changed("debounce") {
		cfg.Search.Debounce = config.Duration{Duration: opts.debounce}
	}
	if f.Changed("lang") {
		cfg.UI.Language = opts.lang
	}
	if f.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if opts.noMouse {
		cfg.UI.Mouse = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
