// Package cli implements the tchat command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tOgg1/tchat/internal/client"
	"github.com/tOgg1/tchat/internal/config"
	"github.com/tOgg1/tchat/internal/logging"
	"github.com/tOgg1/tchat/internal/store"
)

// Execute runs the root command.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

type rootOptions struct {
	configFile string
	user       string
	token      string
	database   string
	logLevel   string

	cfg       *config.Config
	logCloser io.Closer
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tchat",
		Short: "Terminal chat client",
		Long: "tchat is a modal terminal chat client. Run it without arguments to open\n" +
			"the interactive client, or use the subcommands to script the server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/tchat/config.yaml)")
	flags.StringVarP(&opts.user, "user", "u", "", "user to log in as")
	flags.StringVar(&opts.token, "token", "", "access token")
	flags.StringVar(&opts.database, "db", "", "server database file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSeedCmd(opts),
		newRoomsCmd(opts),
		newHistoryCmd(opts),
		newSendCmd(opts),
		newEditCmd(opts),
		newRedactCmd(opts),
	)
	return cmd
}

// load resolves configuration (defaults < file < env < flags) and starts
// logging.
func (o *rootOptions) load(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if o.configFile != "" {
		loader.SetConfigFile(o.configFile)
	}
	overrides := map[string]string{
		"user":      "session.user",
		"token":     "session.token",
		"db":        "session.database",
		"log-level": "logging.level",
	}
	for flag, key := range overrides {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			loader.Set(key, f.Value.String())
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	closer, err := logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logCloser = closer

	logger := logging.Component("cli")
	logger.Debug().
		Str("command", cmd.Name()).
		Str("config_file", loader.ConfigFileUsed()).
		Interface("settings", logging.RedactMap(loader.Settings())).
		Msg("configuration loaded")
	return nil
}

func (o *rootOptions) close() error {
	if o.logCloser == nil {
		return nil
	}
	err := o.logCloser.Close()
	o.logCloser = nil
	return err
}

func (o *rootOptions) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, o.cfg.Session.Database,
		store.WithPollInterval(o.cfg.Sync.PollInterval),
		store.WithEventBuffer(o.cfg.Sync.EventBuffer),
	)
}

// login opens the store and a session for the configured user. The caller
// closes both.
func (o *rootOptions) login(ctx context.Context) (*store.Store, client.Client, error) {
	if err := o.cfg.RequireSession(); err != nil {
		return nil, nil, fmt.Errorf("%w (set --user or TCHAT_SESSION_USER)", err)
	}
	st, err := o.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	c, err := st.Login(ctx, client.Credentials{User: o.cfg.Session.User, Token: o.cfg.Session.Token})
	if err != nil {
		_ = st.Close()
		if errors.Is(err, client.ErrAuthFailed) {
			return nil, nil, fmt.Errorf("login as %s: %w", o.cfg.Session.User, err)
		}
		return nil, nil, err
	}
	return st, c, nil
}
