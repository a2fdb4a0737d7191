// Package cli is the terminal client: it runs the same searches as the lambda
// function and prints the envelope.
package cli

import (
	"os"

	"github.com/prognoshealth/fpdsproxy/app"
	"github.com/prognoshealth/fpdsproxy/config"
	"github.com/prognoshealth/fpdsproxy/fpds"
	"github.com/prognoshealth/fpdsproxy/logging"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command.
type options struct {
	configPath string
	baseURL    string
	timeoutSec int
	windowDays int
	logLevel   string

	// fetcher replaces the HTTP fetcher in tests
	fetcher fpds.Fetcher
}

// NewRootCommand returns the fpds command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&options{})
}

func newRootCommand(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "fpds",
		Short:         "Search FPDS contract awards from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path of a YAML config file (default $"+config.PathEnv+")")
	flags.StringVar(&opts.baseURL, "base-url", "", "feed base url")
	flags.IntVar(&opts.timeoutSec, "timeout", 0, "feed request timeout in seconds")
	flags.IntVar(&opts.windowDays, "window-days", -1, "default signed date window in days, 0 disables it")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(newSearchCommand(opts), newQueryCommand(opts))
	return root
}

// build loads the configuration, applies the flags and assembles the app.
func (o *options) build() (*app.App, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv(config.PathEnv)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	if o.baseURL != "" {
		cfg.Feed.BaseURL = o.baseURL
	}
	if o.timeoutSec > 0 {
		cfg.Feed.TimeoutSec = o.timeoutSec
	}
	if o.windowDays >= 0 {
		days := o.windowDays
		cfg.Feed.WindowDays = &days
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New("local", o.logLevel)
	if err != nil {
		return nil, err
	}

	return app.New(cfg, logger, o.fetcher)
}
