package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDiagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag",
		Short: "Check the backend address, connectivity and location",
	}

	cmd.AddCommand(
		newDiagShowCmd(a),
		newDiagSetURLCmd(a),
		newDiagPingCmd(a),
		newDiagGPSCmd(a),
		newDiagMetricsCmd(a),
	)

	return cmd
}

func newDiagShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the screen with the diagnostics panel open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.service.SetDiagnostics(true)

			// signed out still gets the panel, on the sign-in screen
			if err := a.signIn(cmd, ""); errors.Is(err, errNotSignedIn) {
				_ = a.service.Ping(cmd.Context())
			} else if err != nil {
				return err
			}

			return a.printScreen(cmd)
		},
	}
}

func newDiagSetURLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-url <url>",
		Short: "Save the API base URL override",
		Long:  "Save the API base URL override. A trailing /api is added when missing. An empty value saves the address derived from the origin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := a.service.SaveBaseURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "URL saved: %s\n", saved)
			return err
		},
	}
}

func newDiagPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend and its database answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.busy(cmd, "Pinging backend...", a.service.Ping)
			state := a.service.Snapshot()

			if _, printErr := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", a.service.BaseURL(cmd.Context()), state.Ping, state.PingMessage); printErr != nil && err == nil {
				err = printErr
			}

			return err
		},
	}
}

func newDiagGPSCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gps",
		Short: "Request a position fix from the configured provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.busy(cmd, "Locating...", func(ctx context.Context) error {
				a.service.EnsureLocation(ctx)
				return nil
			})
			if err != nil {
				return err
			}

			geo := a.service.Snapshot().Geo
			lines := []string{
				"provider: " + a.cfg.Location.Provider,
				"status:   " + geo.Status.String(),
				"location: " + geo.Location.Format(6),
			}
			if geo.Error != "" {
				lines = append(lines, "error:    "+geo.Error)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return err
		},
	}
}

func newDiagMetricsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Ping the backend and print this process's API request metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// the outcome lands in the counters either way
			_ = a.service.Ping(cmd.Context())

			samples, err := a.metrics.Snapshot()
			if err != nil {
				return fmt.Errorf("gather metrics: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, s := range samples {
				if _, err := fmt.Fprintf(out, "%s{%s} %g\n", s.Name, s.LabelString(), s.Value); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
