package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wgdash/internal/app/copybox"
	"wgdash/internal/app/user"
	"wgdash/internal/pkg/errs"
)

func confCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "conf",
		Short: "Print or save the WireGuard client configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.store.Close()

			if _, err := e.sessions.Resolve(cmd.Context()); err != nil {
				return err
			}

			conf, err := e.client.ConnectionConfig(cmd.Context())
			if err != nil {
				return err
			}
			if conf == "" {
				return errs.NewError(errs.ErrNoConnection)
			}

			if output == "" || output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), conf)
				return err
			}

			// the file holds the private key
			if err := os.WriteFile(output, []byte(conf), 0o600); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Saved to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func copyCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "copy ip|key [discord_id]",
		Short:     "Copy a peer's IP address or public key to the clipboard",
		Long:      "Copies the value of the given peer, or of the signed-in account when no Discord ID is given.",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"ip", "key"},
		RunE: func(cmd *cobra.Command, args []string) error {
			field := args[0]
			if field != "ip" && field != "key" {
				return errs.NewError(errs.ErrInvalidParams)
			}

			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.store.Close()

			payload, err := e.sessions.Resolve(cmd.Context())
			if err != nil {
				return err
			}

			discordID := payload.DiscordID
			if len(args) == 2 {
				discordID = args[1]
			}

			peers, err := e.client.Peers(cmd.Context())
			if err != nil {
				return err
			}

			peer := user.FindByDiscordID(peers, discordID)
			if peer == nil {
				return errs.NewError(errs.ErrPeerNotFound, discordID)
			}

			value := peer.Connection.IPAddress
			if field == "key" {
				value = peer.Connection.PublicKey
			}

			if err := copybox.Copy(value); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s\n", value)
			return nil
		},
	}
}
