package cmd

import (
	"github.com/jiranismart/jirani-cli/internal/application"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAssistantCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assistant",
		Aliases: []string{"mechanic"},
		Short:   "Answer rescue requests near you",
	}

	cmd.AddCommand(
		newAssistantRequestCmd(a, "accept", "Take a rescue request", application.ActionAcceptSOS),
		newAssistantRequestCmd(a, "complete", "Close a rescue request", application.ActionCompleteSOS),
	)

	return cmd
}

func newAssistantRequestCmd(a *app, use, short string, id application.ActionID) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <request-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.signInAs(cmd, domain.FamilyAssistant, domain.ViewRequests); err != nil {
				return err
			}

			return a.perform(cmd, application.Action{ID: id, Ref: args[0]}, nil, false)
		},
	}
}
