package cmd

import (
	"github.com/jiranismart/jirani-cli/internal/application"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSellerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seller",
		Short: "Manage products, orders and payments",
	}

	cmd.AddCommand(
		newSellerViewCmd(a, "products", "List your products", domain.ViewProducts),
		newSellerAddProductCmd(a),
		newSellerUpdateStockCmd(a),
		newSellerDeleteProductCmd(a),
		newSellerLinkCmd(a),
		newSellerViewCmd(a, "payments", "Show your payment history", domain.ViewPayments),
	)

	return cmd
}

func newSellerViewCmd(a *app, use, short string, view domain.ViewID) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.signInAs(cmd, domain.FamilySeller, view); err != nil {
				return err
			}

			return a.printScreen(cmd)
		},
	}
}

func newSellerAddProductCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-product",
		Short: "Add a product to your shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.signInAs(cmd, domain.FamilySeller, domain.ViewProducts); err != nil {
				return err
			}

			answers := flagAnswers(cmd, map[string]string{
				"name":        application.LabelProductName,
				"category":    application.LabelCategory,
				"price":       application.LabelPrice,
				"stock":       application.LabelStock,
				"description": application.LabelDescription,
			}, "category", "description")
			return a.perform(cmd, application.Action{ID: application.ActionAddProduct}, answers, false)
		},
	}

	cmd.Flags().String("name", "", "Product name")
	cmd.Flags().String("category", "", "Category (default General)")
	cmd.Flags().String("price", "", "Price in KSh, at least 1")
	cmd.Flags().String("stock", "", "Stock quantity, 0 or more")
	cmd.Flags().String("description", "", "Description")

	return cmd
}

func newSellerUpdateStockCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-stock <product-id>",
		Short: "Set a product's stock quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.signInAs(cmd, domain.FamilySeller, domain.ViewProducts); err != nil {
				return err
			}

			// an unknown product is silently skipped on the dashboard; here it is an error
			if _, ok := a.service.Snapshot().Seller.ProductByID(args[0]); !ok {
				return domain.ErrProductNotFound
			}

			answers := flagAnswers(cmd, map[string]string{"quantity": application.LabelNewStock})
			return a.perform(cmd, application.Action{ID: application.ActionUpdateStock, Ref: args[0]}, answers, false)
		},
	}

	cmd.Flags().String("quantity", "", "New stock quantity (asked when omitted)")

	return cmd
}

func newSellerDeleteProductCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-product <product-id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.signInAs(cmd, domain.FamilySeller, domain.ViewProducts); err != nil {
				return err
			}

			return a.perform(cmd, application.Action{ID: application.ActionDeleteProduct, Ref: args[0]}, nil, false)
		},
	}
}

func newSellerLinkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "link <order-id>",
		Short: "Hand a pending order to the nearest biker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.signInAs(cmd, domain.FamilySeller, domain.ViewLinking); err != nil {
				return err
			}

			return a.perform(cmd, application.Action{ID: application.ActionLinkOrder, Ref: args[0]}, nil, false)
		},
	}
}
