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

// Inventory manages per-product stock records.
type Inventory struct {
	mu      sync.Mutex
	list    []models.Inventory
	loading bool
	lastErr string
	busy    rowFlags

	api      *api.Client
	sessions *session.Store
	log      *zap.Logger
}

// Load fetches every stock record via GET /inventario/all.
func (s *Inventory) Load(ctx context.Context) ([]models.Inventory, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var out []models.Inventory
	if err := s.api.Get(ctx, "/inventario/all", &out); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	s.list = out
	s.lastErr = ""
	s.mu.Unlock()
	return s.List(), nil
}

// ForProduct fetches one product's stock record.
func (s *Inventory) ForProduct(ctx context.Context, productID int64) (*models.Inventory, error) {
	var out models.Inventory
	if err := s.api.Get(ctx, fmt.Sprintf("/inventario/producto/%d", productID), &out); err != nil {
		return nil, authGuard(s.sessions, s.log, err)
	}
	return &out, nil
}

// List returns a copy of the cached inventory list.
func (s *Inventory) List() []models.Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Inventory(nil), s.list...)
}

// Loading reports whether a full list load is in progress.
func (s *Inventory) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the message of the last failed operation.
func (s *Inventory) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Updating reports whether the given inventory row has an edit in flight.
func (s *Inventory) Updating(inventoryID int64) bool { return s.busy.Busy(inventoryID) }

// UpdateStock sets a product's stock via PUT /inventario/stock. Negative
// stock is rejected locally. The returned record is spliced into the cache
// by inventory identity.
func (s *Inventory) UpdateStock(ctx context.Context, req models.UpdateStockRequest) (*models.Inventory, error) {
	if req.NewStock < 0 {
		return nil, apierr.Validation("stock cannot be negative")
	}

	s.busy.set(req.ProductID, true)
	defer s.busy.set(req.ProductID, false)

	var updated models.Inventory
	if err := s.api.Put(ctx, "/inventario/stock", req, &updated); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	spliceByID(s.list, func(i models.Inventory) int64 { return i.InventoryID }, updated)
	s.lastErr = ""
	s.mu.Unlock()
	return &updated, nil
}

func (s *Inventory) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Inventory) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}
