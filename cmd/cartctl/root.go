package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Apurer/cartsync/internal/app/cartctl"
)

type rootOptions struct {
	apiURL   string
	dataPath string
	envFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "cartctl",
		Short: "Manage a marketplace shopping cart from the terminal",
		Long: `cartctl keeps a local shopping cart in sync with the cart service.

Without a login the cart lives in the local data file (guest mode).
After "cartctl login" every change is sent to the cart service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "cart service base URL (env CARTCTL_API_URL)")
	root.PersistentFlags().StringVar(&opts.dataPath, "data", "", "local data file (env CARTCTL_DATA)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (env CARTCTL_LOG_LEVEL)")

	root.AddCommand(
		newShowCmd(opts),
		newAddCmd(opts),
		newRemoveCmd(opts),
		newSetCmd(opts),
		newClearCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
	)
	return root
}

func (o *rootOptions) config() (cartctl.Config, error) {
	var files []string
	if o.envFile != "" {
		files = append(files, o.envFile)
	}
	cfg, err := cartctl.LoadConfig(files...)
	if err != nil {
		return cartctl.Config{}, err
	}
	if o.apiURL != "" {
		cfg.APIURL = o.apiURL
	}
	if o.dataPath != "" {
		cfg.DataPath = o.dataPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}

// withCart opens the app, hydrates the cart, runs fn, prints the cart and
// closes the app so the debounced mirror write is flushed.
func withCart(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, app *cartctl.App) error) (err error) {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := cartctl.Open(ctx, cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close(context.WithoutCancel(ctx)))
	}()

	app.Cart.Load(ctx)
	if fn != nil {
		if err := fn(ctx, app); err != nil {
			return err
		}
	}
	return cartctl.Render(ctx, cmd.OutOrStdout(), app.Cart)
}
