package admin

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/client/session"
	"github.com/oldschooltees/tienda/internal/models"
)

// Suppliers manages the supplier list.
type Suppliers struct {
	mu      sync.Mutex
	list    []models.Supplier
	loading bool
	lastErr string
	busy    rowFlags

	api      *api.Client
	sessions *session.Store
	log      *zap.Logger
}

// Load fetches all suppliers via GET /proveedores.
func (s *Suppliers) Load(ctx context.Context) ([]models.Supplier, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var out []models.Supplier
	if err := s.api.Get(ctx, "/proveedores", &out); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	s.list = out
	s.lastErr = ""
	s.mu.Unlock()
	return s.List(), nil
}

// List returns a copy of the cached supplier list.
func (s *Suppliers) List() []models.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Supplier(nil), s.list...)
}

// Loading reports whether a full list load is in progress.
func (s *Suppliers) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the message of the last failed operation.
func (s *Suppliers) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Updating reports whether the given supplier has an edit in flight.
func (s *Suppliers) Updating(supplierID int64) bool { return s.busy.Busy(supplierID) }

// Create adds a supplier via POST /proveedores.
func (s *Suppliers) Create(ctx context.Context, req models.SupplierRequest) (*models.Supplier, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var created models.Supplier
	if err := s.api.Post(ctx, "/proveedores", req, &created); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	s.list = append(s.list, created)
	s.lastErr = ""
	s.mu.Unlock()
	return &created, nil
}

// Update edits a supplier via PUT /proveedores/{id}.
func (s *Suppliers) Update(ctx context.Context, id int64, req models.SupplierRequest) (*models.Supplier, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	s.busy.set(id, true)
	defer s.busy.set(id, false)

	var updated models.Supplier
	if err := s.api.Put(ctx, fmt.Sprintf("/proveedores/%d", id), req, &updated); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	spliceByID(s.list, func(p models.Supplier) int64 { return p.SupplierID }, updated)
	s.lastErr = ""
	s.mu.Unlock()
	return &updated, nil
}

// Delete removes a supplier via DELETE /proveedores/{id} and drops the
// cache entry.
func (s *Suppliers) Delete(ctx context.Context, id int64) error {
	s.busy.set(id, true)
	defer s.busy.set(id, false)

	if err := s.api.Delete(ctx, fmt.Sprintf("/proveedores/%d", id), nil); err != nil {
		s.setErr(err)
		return authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	for i := range s.list {
		if s.list[i].SupplierID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			break
		}
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

func (s *Suppliers) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Suppliers) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}
