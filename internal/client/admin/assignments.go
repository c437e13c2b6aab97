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

// Assignments manages product/supplier assignments. The cache holds the
// assignments of the product selected last.
type Assignments struct {
	mu        sync.Mutex
	productID int64
	list      []models.Assignment
	loading   bool
	lastErr   string
	busy      rowFlags

	api      *api.Client
	sessions *session.Store
	log      *zap.Logger
}

// ForProduct fetches all assignments of one product via
// GET /asignaciones/producto/{id} and replaces the cache.
func (s *Assignments) ForProduct(ctx context.Context, productID int64) ([]models.Assignment, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var out []models.Assignment
	if err := s.api.Get(ctx, fmt.Sprintf("/asignaciones/producto/%d", productID), &out); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	s.productID = productID
	s.list = out
	s.lastErr = ""
	s.mu.Unlock()
	return s.List(), nil
}

// List returns a copy of the cached assignment list.
func (s *Assignments) List() []models.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Assignment(nil), s.list...)
}

// Loading reports whether a list fetch is in progress.
func (s *Assignments) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the message of the last failed operation.
func (s *Assignments) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Updating reports whether the given assignment has an edit in flight.
func (s *Assignments) Updating(assignmentID int64) bool { return s.busy.Busy(assignmentID) }

// Create links a product to a supplier via POST /asignaciones. The created
// record is appended to the cache when it belongs to the cached product.
func (s *Assignments) Create(ctx context.Context, req models.AssignmentRequest) (*models.Assignment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var created models.Assignment
	if err := s.api.Post(ctx, "/asignaciones", req, &created); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	if created.ProductID == s.productID {
		s.list = append(s.list, created)
	}
	s.lastErr = ""
	s.mu.Unlock()
	return &created, nil
}

// UpdateCost changes an assignment's cost price via
// PUT /asignaciones/{id}/precio.
func (s *Assignments) UpdateCost(ctx context.Context, assignmentID int64, req models.UpdateCostPriceRequest) (*models.Assignment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	s.busy.set(assignmentID, true)
	defer s.busy.set(assignmentID, false)

	var updated models.Assignment
	path := fmt.Sprintf("/asignaciones/%d/precio", assignmentID)
	if err := s.api.Put(ctx, path, req, &updated); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	spliceByID(s.list, func(a models.Assignment) int64 { return a.AssignmentID }, updated)
	s.lastErr = ""
	s.mu.Unlock()
	return &updated, nil
}

// Delete removes an assignment via DELETE /asignaciones/{id}. This one is a
// hard delete; the cache entry is dropped.
func (s *Assignments) Delete(ctx context.Context, assignmentID int64) error {
	s.busy.set(assignmentID, true)
	defer s.busy.set(assignmentID, false)

	if err := s.api.Delete(ctx, fmt.Sprintf("/asignaciones/%d", assignmentID), nil); err != nil {
		s.setErr(err)
		return authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	for i := range s.list {
		if s.list[i].AssignmentID == assignmentID {
			s.list = append(s.list[:i], s.list[i+1:]...)
			break
		}
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

func (s *Assignments) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Assignments) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}
