package cmd

import (
	"github.com/jiranismart/jirani-cli/internal/application"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAgentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Oversee sellers in your region",
	}

	cmd.AddCommand(newAgentDeactivateCmd(a))

	return cmd
}

func newAgentDeactivateCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "deactivate <user-id>",
		Short: "Deactivate a seller account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.signInAs(cmd, domain.FamilyAgent, domain.ViewSellers); err != nil {
				return err
			}

			return a.perform(cmd, application.Action{ID: application.ActionDeactivate, Ref: args[0]}, nil, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation question")

	return cmd
}
