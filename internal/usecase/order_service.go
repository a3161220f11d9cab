package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"lifecycle/internal/domain"
	"lifecycle/internal/metrics"
)

type OrderRepo interface {
	Insert(*domain.Order) bool
	Get(id domain.OrderID) (*domain.Order, bool)
	Update(id domain.OrderID, fn func(*domain.Order) error) (bool, error)
	List(page, pageSize int) ([]*domain.Order, int)
}

type OrderService struct {
	Repo    OrderRepo
	Now     func() time.Time
	NewID   func() domain.OrderID
	Log     zerolog.Logger
	Metrics *metrics.Metrics
}

func NewOrderService(repo OrderRepo, log zerolog.Logger, m *metrics.Metrics) *OrderService {
	return &OrderService{
		Repo:    repo,
		Now:     func() time.Time { return time.Now().UTC() },
		NewID:   func() domain.OrderID { return domain.OrderID("order-" + uuid.NewString()) },
		Log:     log,
		Metrics: m,
	}
}

// Create starts a Pending order. A zero orderedAt means now.
func (s *OrderService) Create(pm domain.PaymentMethod, orderedAt time.Time) (*domain.Order, error) {
	if pm == nil {
		return nil, ErrBadRequest("payment method required")
	}
	if orderedAt.IsZero() {
		orderedAt = s.Now()
	}
	o := domain.NewOrder(s.NewID(), pm, orderedAt)
	if !s.Repo.Insert(o) {
		return nil, ErrConflict("order " + o.ID().String() + " already exists")
	}
	s.Metrics.OrdersCreated.WithLabelValues(string(pm.Kind())).Inc()
	s.Log.Info().Str("orderId", o.ID().String()).Str("paymentMethod", pm.Code()).Time("orderedAt", orderedAt).Msg("order created")
	return o, nil
}

func (s *OrderService) Get(id domain.OrderID) (*domain.Order, error) {
	o, ok := s.Repo.Get(id)
	if !ok {
		return nil, ErrNotFound("order")
	}
	return o, nil
}

func (s *OrderService) List(page, pageSize int) ([]*domain.Order, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.Repo.List(page, pageSize)
}

// Capture applies domain.Order.Capture under the order's lock, so concurrent
// captures of one order produce exactly one Paid.
func (s *OrderService) Capture(id domain.OrderID, txnID *string) (*domain.Order, error) {
	now := s.Now()
	var captured *domain.Order
	found, err := s.Repo.Update(id, func(o *domain.Order) error {
		if err := o.Capture(now, txnID); err != nil {
			return err
		}
		captured = o
		return nil
	})
	if !found {
		return nil, ErrNotFound("order")
	}
	if err != nil {
		s.Metrics.Captures.WithLabelValues(captureResult(err)).Inc()
		s.Log.Warn().Err(err).Str("orderId", id.String()).Msg("capture rejected")
		return nil, errors.Wrapf(err, "capture order %s", id)
	}
	s.Metrics.Captures.WithLabelValues("paid").Inc()
	s.Log.Info().Str("orderId", id.String()).Time("paidAt", now).Msg("order captured")
	return captured, nil
}

func captureResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrDeadlineExceeded):
		return "deadline_exceeded"
	case errors.Is(err, domain.ErrInvalidOperation):
		return "invalid_operation"
	}
	return "error"
}
