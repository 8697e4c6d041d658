package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartapp "github.com/Apurer/cartsync/internal/domains/cart/application"
	"github.com/Apurer/cartsync/internal/domains/cart/domain"
	cartports "github.com/Apurer/cartsync/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/cartsync/internal/domains/cart/adapters/observability/service"

// Service decorates the cart engine with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Load(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "CartService.Load")
	defer span.End()

	s.inner.Load(ctx)
	mode := s.inner.Mode(ctx)
	lines := s.inner.Lines()
	span.SetAttributes(attribute.String("cart.mode", string(mode)), attribute.Int("cart.lines", len(lines)))
	s.logInfo(ctx, "cart loaded", slog.String("mode", string(mode)), slog.Int("cart.lines", len(lines)))
}

func (s *Service) AddToCart(ctx context.Context, item domain.Item) error {
	ctx, span := s.tracer.Start(ctx, "CartService.AddToCart",
		trace.WithAttributes(attribute.String("item.id", item.ID), attribute.String("item.seller_id", item.SellerID)))
	defer span.End()

	if err := s.inner.AddToCart(ctx, item); err != nil {
		return s.handleError(ctx, span, "add", err, "failed to add item", slog.String("item.id", item.ID))
	}
	s.metrics.recordMutation(ctx, "add", s.inner.Mode(ctx))
	s.logInfo(ctx, "item added", slog.String("item.id", item.ID), slog.Int("cart.total_items", s.inner.TotalItems()))
	return nil
}

func (s *Service) RemoveFromCart(ctx context.Context, itemID string) error {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveFromCart", trace.WithAttributes(attribute.String("item.id", itemID)))
	defer span.End()

	if err := s.inner.RemoveFromCart(ctx, itemID); err != nil {
		return s.handleError(ctx, span, "remove", err, "failed to remove item", slog.String("item.id", itemID))
	}
	s.metrics.recordMutation(ctx, "remove", s.inner.Mode(ctx))
	s.logInfo(ctx, "item removed", slog.String("item.id", itemID))
	return nil
}

func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateQuantity",
		trace.WithAttributes(attribute.String("item.id", itemID), attribute.Int("item.quantity", quantity)))
	defer span.End()

	if err := s.inner.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return s.handleError(ctx, span, "update", err, "failed to update quantity",
			slog.String("item.id", itemID), slog.Int("item.quantity", quantity))
	}
	s.metrics.recordMutation(ctx, "update", s.inner.Mode(ctx))
	s.logInfo(ctx, "quantity updated", slog.String("item.id", itemID), slog.Int("item.quantity", quantity))
	return nil
}

func (s *Service) ClearCart(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CartService.ClearCart")
	defer span.End()

	if err := s.inner.ClearCart(ctx); err != nil {
		return s.handleError(ctx, span, "clear", err, "failed to clear cart")
	}
	s.metrics.recordMutation(ctx, "clear", s.inner.Mode(ctx))
	s.logInfo(ctx, "cart cleared")
	return nil
}

func (s *Service) Lines() []domain.CartLine { return s.inner.Lines() }

func (s *Service) TotalItems() int { return s.inner.TotalItems() }

func (s *Service) TotalPrice() float64 { return s.inner.TotalPrice() }

func (s *Service) Mode(ctx context.Context) domain.SessionMode { return s.inner.Mode(ctx) }

func (s *Service) Close(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Close")
	defer span.End()

	if err := s.inner.Close(ctx); err != nil {
		return s.handleError(ctx, span, "close", err, "failed to flush cart mirror")
	}
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

// handleError records err on the span. Rejections the user caused are logged
// at warn level, everything else at error level.
func (s *Service) handleError(ctx context.Context, span trace.Span, op string, err error, msg string, attrs ...slog.Attr) error {
	reason := failureReason(err)
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("cart.failure", reason))
	}
	level := slog.LevelError
	if reason != "remote" {
		level = slog.LevelWarn
	}
	s.logError(ctx, level, msg, err, attrs...)
	s.metrics.recordFailure(ctx, op, reason)
	return err
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, cartapp.ErrSelfPurchase):
		return "self_purchase"
	case errors.Is(err, domain.ErrQuantityLimitExceeded):
		return "quantity_limit"
	case errors.Is(err, cartapp.ErrInvalidInput):
		return "invalid_input"
	default:
		return "remote"
	}
}

type serviceMetrics struct {
	mutations metric.Int64Counter
	failures  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("cart.service.mutations", metric.WithDescription("Number of committed cart mutations"))
	failures, _ := m.Int64Counter("cart.service.failures", metric.WithDescription("Number of cart mutations surfaced as errors"))
	return serviceMetrics{mutations: mutations, failures: failures}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string, mode domain.SessionMode) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(
			attribute.String("cart.operation", op),
			attribute.String("cart.mode", string(mode)),
		))
	}
}

func (m serviceMetrics) recordFailure(ctx context.Context, op, reason string) {
	if m.failures != nil {
		m.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("cart.operation", op),
			attribute.String("cart.failure", reason),
		))
	}
}

var _ cartports.Service = (*Service)(nil)
