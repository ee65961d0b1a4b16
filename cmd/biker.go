package cmd

import (
	"github.com/jiranismart/jirani-cli/internal/application"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newBikerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "biker",
		Short: "Run delivery jobs and pay your subscription",
	}

	cmd.AddCommand(
		newBikerJobCmd(a, "accept", "Take an available order", application.ActionAcceptJob),
		newBikerJobCmd(a, "pickup", "Mark an order as picked up", application.ActionPickupJob),
		newBikerJobCmd(a, "complete", "Mark an order as delivered at your location", application.ActionCompleteJob),
		newBikerSubscribeCmd(a),
	)

	return cmd
}

func newBikerJobCmd(a *app, use, short string, id application.ActionID) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <order-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.signInAs(cmd, domain.FamilyBiker, domain.ViewJobs); err != nil {
				return err
			}

			return a.perform(cmd, application.Action{ID: id, Ref: args[0]}, nil, false)
		},
	}
}

func newBikerSubscribeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Pay the rider subscription through an M-Pesa STK push",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.signInAs(cmd, domain.FamilyBiker, domain.ViewSubscription); err != nil {
				return err
			}

			answers := flagAnswers(cmd, map[string]string{
				"phone":  application.LabelPhone,
				"amount": application.LabelAmount,
			}, "amount")
			return a.perform(cmd, application.Action{ID: application.ActionSubscribe}, answers, false)
		},
	}

	cmd.Flags().String("phone", "", "Phone to charge")
	cmd.Flags().String("amount", "", "Amount in KSh (default 500)")

	return cmd
}
