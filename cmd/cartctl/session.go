package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Apurer/cartsync/internal/app/cartctl"
)

func newLoginCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login <user-id>",
		Short: "Sign in and switch to the remote cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, opts, func(ctx context.Context, app *cartctl.App) error {
				if err := app.Login(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", app.UserID(ctx))
				app.Cart.Load(ctx)
				return nil
			})
		},
	}
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and continue as a guest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCart(cmd, opts, func(ctx context.Context, app *cartctl.App) error {
				if err := app.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				app.Cart.Load(ctx)
				return nil
			})
		},
	}
}
