package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Apurer/cartsync/internal/app/cartctl"
	"github.com/Apurer/cartsync/internal/domains/cart/domain"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCart(cmd, opts, nil)
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var item domain.Item
	cmd := &cobra.Command{
		Use:   "add <item-id>",
		Short: "Add one unit of a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item.ID = args[0]
			return withCart(cmd, opts, func(ctx context.Context, app *cartctl.App) error {
				return app.Cart.AddToCart(ctx, item)
			})
		},
	}
	cmd.Flags().StringVar(&item.Title, "title", "", "listing title")
	cmd.Flags().Float64Var(&item.Price, "price", 0, "unit price")
	cmd.Flags().StringVar(&item.SellerID, "seller", "", "seller user id")
	cmd.Flags().StringVar(&item.SellerName, "seller-name", "", "seller display name")
	cmd.Flags().StringVar(&item.Image, "image", "", "image URL")
	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, opts, func(ctx context.Context, app *cartctl.App) error {
				return app.Cart.RemoveFromCart(ctx, args[0])
			})
		},
	}
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <item-id> <quantity>",
		Short: "Set the quantity of a line, 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be an integer: %w", err)
			}
			return withCart(cmd, opts, func(ctx context.Context, app *cartctl.App) error {
				return app.Cart.UpdateQuantity(ctx, args[0], quantity)
			})
		},
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCart(cmd, opts, func(ctx context.Context, app *cartctl.App) error {
				return app.Cart.ClearCart(ctx)
			})
		},
	}
}
