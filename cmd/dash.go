package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jiranismart/jirani-cli/internal/adapters/tui"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/spf13/cobra"
)

var viewNames = []domain.ViewID{
	domain.ViewOverview,
	domain.ViewMarketplace,
	domain.ViewSOS,
	domain.ViewProducts,
	domain.ViewLinking,
	domain.ViewPayments,
	domain.ViewJobs,
	domain.ViewSubscription,
	domain.ViewRequests,
	domain.ViewSellers,
}

func parseView(raw string) (domain.ViewID, error) {
	view := domain.ViewID(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range viewNames {
		if view == known {
			return view, nil
		}
	}

	names := make([]string, len(viewNames))
	for i, v := range viewNames {
		names[i] = string(v)
	}
	return "", fmt.Errorf("unknown view %q (want one of %s)", raw, strings.Join(names, ", "))
}

func newDashCmd(a *app) *cobra.Command {
	var diagnostics bool

	cmd := &cobra.Command{
		Use:   "dash [view]",
		Short: "Print your role dashboard",
		Long:  "Print the dashboard for the signed-in role. A view your role does not have falls back to its landing view.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var view domain.ViewID
			if len(args) == 1 {
				parsed, err := parseView(args[0])
				if err != nil {
					return err
				}
				view = parsed
			}

			a.service.SetDiagnostics(diagnostics)
			if err := a.signIn(cmd, view); err != nil {
				return err
			}

			return a.printScreen(cmd)
		},
	}

	cmd.Flags().BoolVar(&diagnostics, "diagnostics", false, "Include the diagnostics panel")

	return cmd
}

func newUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// signed-out users land on the sign-in screen
			if err := a.signIn(cmd, ""); err != nil && !errors.Is(err, errNotSignedIn) {
				return err
			}

			return tui.Run(cmd.Context(), a.service, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
