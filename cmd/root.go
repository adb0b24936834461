package main

import (
	"github.com/spf13/cobra"

	"wgdash/internal/app/api"
	"wgdash/internal/app/session"
	"wgdash/internal/app/storage"
	"wgdash/internal/configs"
	"wgdash/internal/pkg/logx"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wgdash",
		Short: "WireGuard connection manager front end",
		Long: `wgdash signs in to the VPN manager with Discord, shows every peer with its live
handshake status and hands out the WireGuard client configuration.

Run "wgdash serve" for the web dashboard, or use the subcommands from a terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("api", "", "VPN manager API base URL (env API_END_POINT)")
	flags.String("storage", "", "local storage file (env STORAGE_PATH)")
	flags.Bool("debug", false, "enable debug logging")

	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(serveCmd())
	root.AddCommand(loginCmd())
	root.AddCommand(logoutCmd())
	root.AddCommand(whoamiCmd())
	root.AddCommand(peersCmd())
	root.AddCommand(watchCmd())
	root.AddCommand(confCmd())
	root.AddCommand(copyCmd())

	return root
}

// env is what every subcommand needs: the configuration and the stored session.
type env struct {
	cfg      *configs.AppConfig
	store    storage.Store
	client   *api.Client
	sessions *session.Manager
}

// setup loads the configuration from the command's flags and opens local storage.
// The caller closes env.store.
func setup(cmd *cobra.Command, server bool) (*env, error) {
	cfg, err := configs.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}

	if server {
		logx.InitGlobalLogger(cfg.IsDevelopment())
	} else {
		logx.InitCLILogger(cfg.Debug)
	}

	store, err := storage.NewStore(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIEndpoint, store, nil)

	return &env{
		cfg:      cfg,
		store:    store,
		client:   client,
		sessions: session.NewManager(store, client),
	}, nil
}
