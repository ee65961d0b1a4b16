package cmd

import (
	"context"

	"github.com/jiranismart/jirani-cli/internal/application"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newBuyerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buyer",
		Short: "Browse nearby sellers and call for help",
	}

	cmd.AddCommand(
		newBuyerSellersCmd(a),
		newBuyerSearchCmd(a),
		newBuyerMapCmd(a),
		newBuyerNearestBikerCmd(a),
		newBuyerSOSCmd(a),
	)

	return cmd
}

func newBuyerSellersCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "sellers",
		Short: "List sellers within 10 km",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.signInAs(cmd, domain.FamilyBuyer, domain.ViewMarketplace); err != nil {
				return err
			}
			if category != "" {
				if err := a.service.SelectCategory(cmd.Context(), category); err != nil {
					return err
				}
			}

			return a.printScreen(cmd)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show sellers in this category")

	return cmd
}

func newBuyerSearchCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products near you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.signInAs(cmd, domain.FamilyBuyer, domain.ViewMarketplace); err != nil {
				return err
			}
			if category != "" {
				if err := a.service.SelectCategory(cmd.Context(), category); err != nil {
					return err
				}
			}

			// a failed search replaces the results, so it is printed rather than returned
			_ = a.busy(cmd, "Searching...", func(ctx context.Context) error {
				return a.service.SearchProducts(ctx, args[0])
			})

			return a.printScreen(cmd)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Search within this category")

	return cmd
}

func newBuyerMapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "map [seller-id]",
		Short: "Show a seller's pin, or your own location",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.signInAs(cmd, domain.FamilyBuyer, domain.ViewMarketplace); err != nil {
				return err
			}

			action := application.Action{ID: application.ActionViewMap}
			if len(args) == 1 {
				action.Ref = args[0]
			}
			return a.perform(cmd, action, nil, false)
		},
	}
}

func newBuyerNearestBikerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "nearest-biker <seller-id>",
		Short: "Find the biker closest to a seller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.signInAs(cmd, domain.FamilyBuyer, domain.ViewMarketplace); err != nil {
				return err
			}

			return a.perform(cmd, application.Action{ID: application.ActionNearestBiker, Ref: args[0]}, nil, false)
		},
	}
}

func newBuyerSOSCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sos",
		Short: "Broadcast an emergency request from your location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.signInAs(cmd, domain.FamilyBuyer, domain.ViewSOS); err != nil {
				return err
			}

			answers := flagAnswers(cmd, map[string]string{
				"issue":   application.LabelIssue,
				"region":  application.LabelRegion,
				"phone":   application.LabelPhone,
				"vehicle": application.LabelVehicle,
			}, "region", "phone", "vehicle")
			return a.perform(cmd, application.Action{ID: application.ActionSendSOS}, answers, false)
		},
	}

	cmd.Flags().String("issue", "", "What happened")
	cmd.Flags().String("region", "", "Region (default nairobi)")
	cmd.Flags().String("phone", "", "Callback phone")
	cmd.Flags().String("vehicle", "", "Vehicle details")

	return cmd
}
