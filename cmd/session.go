package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wgdash/internal/app/login"
	"wgdash/internal/pkg/errs"
)

func loginCmd() *cobra.Command {
	var code, joinKey string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange an OAuth authorization code for a session",
		Long: `Open the authorization link, approve access, and pass the "code" query parameter
of the redirect with --code. First-time accounts also need --join-key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.store.Close()

			if code == "" {
				if e.cfg.OAuthURL != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Authorize at:\n  %s\nthen run: wgdash login --code <code>\n", e.cfg.OAuthURL)
				}
				return errs.NewError(errs.ErrCodeMissing)
			}

			flow := login.NewFlow(e.client, e.sessions)
			flow.ReceiveCode(code)
			flow.SetJoinKey(joinKey)

			payload, err := flow.Submit(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s).\n", payload.Name(), payload.DiscordID)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "authorization code from the OAuth redirect")
	cmd.Flags().StringVar(&joinKey, "join-key", "", "join key for the first login")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.store.Close()

			if err := e.sessions.Logout(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.store.Close()

			payload, err := e.sessions.Resolve(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:       %s\n", payload.Name())
			fmt.Fprintf(out, "Username:   %s\n", payload.Username)
			fmt.Fprintf(out, "Discord ID: %s\n", payload.DiscordID)
			fmt.Fprintf(out, "Expires:    %s\n", payload.ExpiresAtTime().Format(time.RFC1123))
			return nil
		},
	}
}
