package admin

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/oldschooltees/tienda/internal/apierr"
	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/client/session"
	"github.com/oldschooltees/tienda/internal/models"
)

// Orders manages the admin order list and the three status workflows
// (order, payment, shipping). A failed status update reloads the whole list:
// partial client/server disagreement on order state is not acceptable.
type Orders struct {
	mu      sync.Mutex
	list    []models.Order
	loading bool
	lastErr string
	busy    rowFlags

	api      *api.Client
	sessions *session.Store
	log      *zap.Logger
}

// Load fetches all orders via GET /admin/pedidos and replaces the cache.
func (s *Orders) Load(ctx context.Context) ([]models.Order, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var out []models.Order
	if err := s.api.Get(ctx, "/admin/pedidos", &out); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	s.list = out
	s.lastErr = ""
	s.mu.Unlock()
	return s.List(), nil
}

// List returns a copy of the cached order list.
func (s *Orders) List() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.list...)
}

// Loading reports whether a full list load is in progress.
func (s *Orders) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the message of the last failed operation, "" when the
// last operation succeeded.
func (s *Orders) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Updating reports whether the given order currently has an edit in flight.
func (s *Orders) Updating(orderID int64) bool { return s.busy.Busy(orderID) }

// UpdateStatus transitions the order status via PATCH /admin/pedidos/{id}/estado.
func (s *Orders) UpdateStatus(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	return s.patch(ctx, orderID, "estado", models.UpdateOrderStatusRequest{NewStatus: status})
}

// UpdatePayment transitions the payment status via PATCH /admin/pedidos/{id}/pago.
func (s *Orders) UpdatePayment(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	return s.patch(ctx, orderID, "pago", models.UpdatePaymentStatusRequest{NewStatus: status})
}

// UpdateShipping transitions the shipping status via PATCH /admin/pedidos/{id}/envio.
func (s *Orders) UpdateShipping(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	return s.patch(ctx, orderID, "envio", models.UpdateShippingStatusRequest{NewStatus: status})
}

func (s *Orders) patch(ctx context.Context, orderID int64, kind string, body any) (*models.Order, error) {
	s.busy.set(orderID, true)
	defer s.busy.set(orderID, false)

	var updated models.Order
	path := fmt.Sprintf("/admin/pedidos/%d/%s", orderID, kind)
	if err := s.api.Patch(ctx, path, body, &updated); err != nil {
		s.setErr(err)
		if apierr.IsUnauthorized(err) {
			// Reloading with a rejected credential would only fail again.
			return nil, authGuard(s.sessions, s.log, err)
		}
		// Resynchronize with server truth; the cached list may now disagree.
		if _, lerr := s.Load(ctx); lerr != nil {
			s.log.Warn("order list reload after failed update also failed", zap.Error(lerr))
		}
		return nil, err
	}

	s.mu.Lock()
	spliceByID(s.list, func(o models.Order) int64 { return o.OrderID }, updated)
	s.lastErr = ""
	s.mu.Unlock()
	return &updated, nil
}

func (s *Orders) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Orders) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}
