package cartctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	cartclient "github.com/Apurer/cartsync/internal/clients/http/cartapi"
	"github.com/Apurer/cartsync/internal/domains/cart/adapters/external/cartapi"
	cartobs "github.com/Apurer/cartsync/internal/domains/cart/adapters/observability"
	cartsqlite "github.com/Apurer/cartsync/internal/domains/cart/adapters/persistence/sqlite"
	cartapp "github.com/Apurer/cartsync/internal/domains/cart/application"
	"github.com/Apurer/cartsync/internal/domains/cart/ports"
	platformobservability "github.com/Apurer/cartsync/internal/platform/observability"
)

const serviceName = "cartctl"

// App is one CLI session: the cart engine over the HTTP remote and the
// device-local sqlite store.
type App struct {
	Cart        ports.Service
	credentials ports.Credentials
	client      *cartclient.Client
	store       *cartsqlite.Store
	shutdown    func(context.Context) error
}

// Open wires the engine. Logs go to logOutput so they never mix with command output.
func Open(ctx context.Context, cfg Config, logOutput io.Writer) (*App, error) {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogOutput(logOutput),
		platformobservability.WithLogLevel(platformobservability.ParseLevel(cfg.LogLevel)),
		platformobservability.WithTextLogs(),
		platformobservability.WithSpanExport(strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")) != ""),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize observability: %w", err)
	}
	logger := instruments.Logger

	if dir := filepath.Dir(cfg.DataPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Join(fmt.Errorf("create data dir: %w", err), shutdown(ctx))
		}
	}
	store, err := cartsqlite.Open(ctx, cfg.DataPath)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open local store: %w", err), shutdown(ctx))
	}

	client, err := cartclient.NewClient(cfg.APIURL,
		cartclient.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))
	if err != nil {
		return nil, errors.Join(err, store.Close(), shutdown(ctx))
	}

	session := store.Session()
	engine := cartapp.NewEngine(
		cartapi.NewRemote(client, session),
		session,
		store.Mirror(),
		cartapp.WithLogger(logger),
		cartapp.WithMirrorDebounce(cfg.MirrorDebounce),
	)
	svc := cartobs.New(engine,
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	return &App{
		Cart:        svc,
		credentials: session,
		client:      client,
		store:       store,
		shutdown:    shutdown,
	}, nil
}

// Login stores a token for userID issued by the cart service.
func (a *App) Login(ctx context.Context, userID string) error {
	return cartapi.Login(ctx, a.client, a.credentials, userID)
}

// Logout revokes and forgets the stored token.
func (a *App) Logout(ctx context.Context) error {
	return cartapi.Logout(ctx, a.client, a.credentials)
}

// UserID returns the signed-in user, or "" for guests.
func (a *App) UserID(ctx context.Context) string {
	return a.credentials.UserID(ctx)
}

// Close flushes the pending mirror write and releases resources.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.Cart.Close(ctx), a.store.Close(), a.shutdown(ctx))
}

// Render prints the cart lines and totals.
func Render(ctx context.Context, w io.Writer, svc ports.Service) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "mode: %s\n", svc.Mode(ctx))
	lines := svc.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(tw, "cart is empty")
		return tw.Flush()
	}
	fmt.Fprintln(tw, "ID\tTITLE\tSELLER\tQTY\tPRICE\tSUBTOTAL")
	for _, line := range lines {
		seller := line.SellerName
		if seller == "" {
			seller = line.SellerID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%.2f\n",
			line.ID, line.Title, seller, line.Quantity, line.Price, line.Subtotal())
	}
	fmt.Fprintf(tw, "total\t\t\t%d\t\t%.2f\n", svc.TotalItems(), svc.TotalPrice())
	return tw.Flush()
}
