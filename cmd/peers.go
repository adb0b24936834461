package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"wgdash/internal/app/dashboard"
	"wgdash/internal/app/status"
	"wgdash/internal/pkg/termui"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

// newStatusChannel returns the status channel of e's session and its home view service.
func newStatusChannel(ctx context.Context, e *env) (*status.Channel, *dashboard.Service, error) {
	wsURL, err := status.URL(e.cfg.APIEndpoint, e.cfg.Origin())
	if err != nil {
		return nil, nil, err
	}

	channel := status.NewChannel(wsURL, e.sessions.AccessToken)
	service := dashboard.NewService(ctx, e.sessions, e.client, channel, e.cfg.WireGuardLink)

	return channel, service, nil
}

func peersCmd() *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "peers",
		Short: "List every peer with its live status",
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

			channel, service, err := newStatusChannel(cmd.Context(), e)
			if err != nil {
				return err
			}

			first := make(chan struct{}, 1)
			channel.OnSnapshot(func(status.StatusMap) {
				select {
				case first <- struct{}{}:
				default:
				}
			})

			channel.Start(cmd.Context())
			defer channel.Stop()

			select {
			case <-first:
			case <-time.After(wait):
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}

			view, err := service.Load(cmd.Context())
			if err != nil {
				return err
			}

			return termui.RenderView(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 3*time.Second, "how long to wait for the live status")

	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the live status until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer e.store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if _, err := e.sessions.Resolve(ctx); err != nil {
				return err
			}

			channel, service, err := newStatusChannel(ctx, e)
			if err != nil {
				return err
			}

			updates := make(chan struct{}, 1)
			channel.OnSnapshot(func(status.StatusMap) {
				select {
				case updates <- struct{}{}:
				default:
				}
			})

			channel.Start(ctx)
			defer channel.Stop()

			// the last-seen texts age even without new snapshots
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()

			view, err := service.Load(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			render := func(v *dashboard.View) error {
				fmt.Fprint(out, clearScreen)
				return termui.RenderView(out, v)
			}

			return follow(ctx, view, updates, ticker.C, channel.Snapshot, time.Now, render)
		},
	}
}

// follow renders view, then renders it again with fresh liveness on every snapshot
// signal and every tick until ctx is done. The roster is never fetched again.
func follow(
	ctx context.Context,
	view *dashboard.View,
	updates <-chan struct{},
	ticks <-chan time.Time,
	snapshot func() status.StatusMap,
	now func() time.Time,
	render func(*dashboard.View) error,
) error {
	for {
		if err := render(view); err != nil {
			return err
		}

		var at time.Time
		select {
		case <-ctx.Done():
			return nil
		case <-updates:
			at = now()
		case at = <-ticks:
		}

		rebuilt := dashboard.Rebuild(view, snapshot(), at)
		view = &rebuilt
	}
}
