package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/cart/ports"
)

// DefaultMirrorDebounce delays guest mirror writes so bursts of edits cost one write.
const DefaultMirrorDebounce = 500 * time.Millisecond

// Engine owns the in-memory cart of one session and keeps it in sync with the
// remote cart service (authenticated) or the local mirror (guest).
type Engine struct {
	remote  ports.RemoteCart
	session ports.Session
	mirror  ports.Mirror
	logger  *slog.Logger

	mu   sync.Mutex
	cart *domain.Cart

	pending  *pendingSet
	inflight singleflight.Group

	mirrorDelay time.Duration
	mirrorWrite *scheduledTask
}

type Option func(*Engine)

// WithLogger routes diagnostics for absorbed failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMirrorDebounce overrides DefaultMirrorDebounce.
func WithMirrorDebounce(delay time.Duration) Option {
	return func(e *Engine) {
		if delay >= 0 {
			e.mirrorDelay = delay
		}
	}
}

// NewEngine wires the engine with its collaborators. The cart starts empty
// until Load is called.
func NewEngine(remote ports.RemoteCart, session ports.Session, mirror ports.Mirror, opts ...Option) *Engine {
	e := &Engine{
		remote:      remote,
		session:     session,
		mirror:      mirror,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		cart:        domain.NewCart(nil),
		pending:     newPendingSet(),
		mirrorDelay: DefaultMirrorDebounce,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.mirrorWrite = newScheduledTask(e.mirrorDelay, e.logger)
	return e
}

// Mode derives the session mode from the stored token on every call.
func (e *Engine) Mode(ctx context.Context) domain.SessionMode {
	return domain.ModeForToken(e.session.Token(ctx))
}

// Load hydrates the cart once per session. It never fails: unreachable or
// rejecting services degrade to the local mirror and an unreadable mirror
// yields an empty cart.
func (e *Engine) Load(ctx context.Context) {
	if e.Mode(ctx) == domain.ModeGuest {
		e.hydrateFromMirror(ctx)
		return
	}
	items, err := e.remote.FetchCart(ctx)
	switch {
	case err == nil:
		e.replace(items)
	case ports.IsAuth(err):
		e.logger.WarnContext(ctx, "cart fetch rejected credentials, continuing as guest", slog.String("error", err.Error()))
		e.clearTokens(ctx)
		e.hydrateFromMirror(ctx)
	case ports.IsNetwork(err):
		e.logger.WarnContext(ctx, "cart service unreachable, using local mirror", slog.String("error", err.Error()))
		e.hydrateFromMirror(ctx)
	default:
		e.logger.ErrorContext(ctx, "failed to load cart", slog.String("error", err.Error()))
		e.replace(nil)
	}
}

// AddToCart adds one unit of item.
func (e *Engine) AddToCart(ctx context.Context, item domain.Item) error {
	if userID := e.session.UserID(ctx); userID != "" && userID == item.SellerID {
		return ErrSelfPurchase
	}
	return e.run(ctx, addTransaction(item, e.remote))
}

// RemoveFromCart deletes the line for itemID.
func (e *Engine) RemoveFromCart(ctx context.Context, itemID string) error {
	return e.run(ctx, removeTransaction(itemID, e.remote))
}

// UpdateQuantity sets the quantity of itemID; zero removes the line.
func (e *Engine) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity > domain.MaxQuantityPerItem {
		return domain.ErrQuantityLimitExceeded
	}
	if quantity < 0 {
		return mapError(domain.ErrInvalidQuantity)
	}
	if quantity == 0 {
		return e.RemoveFromCart(ctx, itemID)
	}
	return e.run(ctx, updateTransaction(itemID, quantity, e.remote))
}

// ClearCart empties the cart. A remote failure restores the prior contents
// and is returned to the caller.
func (e *Engine) ClearCart(ctx context.Context) error {
	e.mu.Lock()
	prior := e.cart.Clear()
	e.mu.Unlock()

	if e.Mode(ctx) == domain.ModeGuest {
		e.mirrorWrite.cancel()
		if err := e.mirror.Clear(ctx); err != nil {
			e.logger.WarnContext(ctx, "failed to clear cart mirror", slog.String("error", err.Error()))
		}
		return nil
	}

	err := e.remote.Clear(ctx)
	switch {
	case err == nil:
		return nil
	case ports.IsAuth(err):
		e.demote(ctx, "clear", err)
		return nil
	default:
		e.mu.Lock()
		e.cart.Replace(prior)
		e.mu.Unlock()
		return fmt.Errorf("clear cart: %w", err)
	}
}

// Lines returns a snapshot of the committed lines.
func (e *Engine) Lines() []domain.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Lines()
}

// TotalItems sums quantities of the committed lines.
func (e *Engine) TotalItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.TotalItems()
}

// TotalPrice sums subtotals of the committed lines.
func (e *Engine) TotalPrice() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.TotalPrice()
}

// Close flushes a pending mirror write and stops the debounce timer.
func (e *Engine) Close(ctx context.Context) error {
	return e.mirrorWrite.close(ctx)
}

// run drives a transaction through admission, optimistic staging and remote
// reconciliation.
func (e *Engine) run(ctx context.Context, tx *transaction) error {
	key := operationKey(tx.verb, tx.itemID)
	if !e.pending.acquire(key) {
		e.logger.DebugContext(ctx, "dropping duplicate cart operation", slog.String("operation", key))
		return nil
	}
	defer e.pending.release(key)

	e.mu.Lock()
	err := tx.stage(e.cart)
	e.mu.Unlock()
	if err != nil {
		return mapError(err)
	}
	e.changed(ctx)

	if e.Mode(ctx) == domain.ModeGuest {
		return nil
	}

	result, err := e.join(ctx, tx)
	if err == nil {
		e.reconcile(ctx, result)
		return nil
	}
	if ports.IsAuth(err) {
		e.demote(ctx, tx.verb, err)
		return nil
	}

	e.mu.Lock()
	outcome := tx.rollback(e.cart)
	e.mu.Unlock()
	if outcome == needsRefetch {
		e.refresh(ctx)
	}
	e.logger.WarnContext(ctx, "cart operation rolled back",
		slog.String("operation", key),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("%s %s: %w", tx.verb, tx.itemID, err)
}

// join shares one remote call between overlapping callers for the same key.
func (e *Engine) join(ctx context.Context, tx *transaction) (*ports.Result, error) {
	v, err, shared := e.inflight.Do(requestKey(tx.verb, tx.itemID), func() (any, error) {
		return tx.remote(ctx)
	})
	if shared {
		e.logger.DebugContext(ctx, "joined in-flight cart request", slog.String("request", requestKey(tx.verb, tx.itemID)))
	}
	if err != nil {
		return nil, err
	}
	result, _ := v.(*ports.Result)
	return result, nil
}

// reconcile adopts the authoritative lines, re-fetching when the service omitted them.
func (e *Engine) reconcile(ctx context.Context, result *ports.Result) {
	if result != nil && result.HasItems {
		e.replace(result.Items)
		return
	}
	e.refresh(ctx)
}

func (e *Engine) refresh(ctx context.Context) {
	items, err := e.remote.FetchCart(ctx)
	if err != nil {
		if ports.IsAuth(err) {
			e.demote(ctx, "fetch", err)
			return
		}
		e.logger.WarnContext(ctx, "failed to refresh cart, keeping local state", slog.String("error", err.Error()))
		return
	}
	e.replace(items)
}

// demote clears the rejected credentials. The local state stays as it is and
// is mirrored from now on.
func (e *Engine) demote(ctx context.Context, verb string, cause error) {
	e.logger.WarnContext(ctx, "session invalidated, continuing as guest",
		slog.String("operation", verb),
		slog.String("error", cause.Error()),
	)
	e.clearTokens(ctx)
	e.changed(ctx)
}

func (e *Engine) clearTokens(ctx context.Context) {
	if err := e.session.ClearTokens(ctx); err != nil {
		e.logger.ErrorContext(ctx, "failed to clear session tokens", slog.String("error", err.Error()))
	}
}

func (e *Engine) replace(lines []domain.CartLine) {
	e.mu.Lock()
	e.cart.Replace(lines)
	e.mu.Unlock()
}

func (e *Engine) hydrateFromMirror(ctx context.Context) {
	if err := e.mirrorWrite.flush(ctx); err != nil {
		e.logger.WarnContext(ctx, "failed to flush cart mirror", slog.String("error", err.Error()))
	}
	lines, err := e.mirror.Load(ctx)
	if err != nil {
		e.logger.WarnContext(ctx, "unreadable cart mirror, starting empty", slog.String("error", err.Error()))
		lines = nil
	}
	e.replace(lines)
}

// changed schedules a debounced mirror write while the session is a guest.
func (e *Engine) changed(ctx context.Context) {
	if e.Mode(ctx) != domain.ModeGuest {
		return
	}
	e.mirrorWrite.schedule(func(ctx context.Context) error {
		return e.mirror.Save(ctx, e.Lines())
	})
}

var _ ports.Service = (*Engine)(nil)
