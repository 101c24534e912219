package cli

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/config"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile  string
	ServerURL   string
	SessionFile string
	Timeout     time.Duration

	// NewClient builds the API client from the resolved config. Tests
	// replace it; nil means an HTTPClient with a file session store.
	NewClient func(cfg *config.Config) (client.Client, error)

	api client.Client
}

func defaultClient(cfg *config.Config) (client.Client, error) {
	return client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, client.NewFileSessionStore(cfg.SessionFile))
}

// NewRootCommand creates the root command for the gophtodo CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gophtodo",
		Short:         "gophtodo - personal task list",
		Long:          "Command-line client for the gophtodo task server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "path to config file (JSON or YAML)")
	cmd.PersistentFlags().StringVarP(&opts.ServerURL, "server", "a", "", "server base URL (e.g. http://127.0.0.1:5000)")
	cmd.PersistentFlags().StringVar(&opts.SessionFile, "session-file", "", "where the login session is stored")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "per-request timeout")

	cmd.AddCommand(newSignupCommand(opts))
	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))
	cmd.AddCommand(newWhoamiCommand(opts))
	cmd.AddCommand(newPingCommand(opts))
	cmd.AddCommand(newTasksCommand(opts))

	return cmd
}

// init resolves the config (file and environment, then flags) and builds
// the API client.
func (o *RootOptions) init() error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return err
	}
	if o.ServerURL != "" {
		cfg.ServerURL = o.ServerURL
	}
	if o.SessionFile != "" {
		cfg.SessionFile = o.SessionFile
	}
	if o.Timeout > 0 {
		cfg.RequestTimeout = o.Timeout
	}

	newClient := o.NewClient
	if newClient == nil {
		newClient = defaultClient
	}

	o.api, err = newClient(cfg)
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}
	return nil
}

// explain adds a hint to errors that a fresh login would fix.
func explain(err error) error {
	if err != nil && client.IsSessionError(err) {
		return fmt.Errorf("%w (run 'gophtodo login')", err)
	}
	return err
}
