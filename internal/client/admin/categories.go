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

// Categories manages the category list.
type Categories struct {
	mu      sync.Mutex
	list    []models.Category
	loading bool
	lastErr string
	busy    rowFlags

	api      *api.Client
	sessions *session.Store
	log      *zap.Logger
}

// Load fetches all categories via GET /categorias.
func (s *Categories) Load(ctx context.Context) ([]models.Category, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var out []models.Category
	if err := s.api.Get(ctx, "/categorias", &out); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	s.list = out
	s.lastErr = ""
	s.mu.Unlock()
	return s.List(), nil
}

// List returns a copy of the cached category list.
func (s *Categories) List() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.list...)
}

// Loading reports whether a full list load is in progress.
func (s *Categories) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the message of the last failed operation.
func (s *Categories) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Updating reports whether the given category has an edit in flight.
func (s *Categories) Updating(categoryID int64) bool { return s.busy.Busy(categoryID) }

// Create adds a category via POST /categorias.
func (s *Categories) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var created models.Category
	if err := s.api.Post(ctx, "/categorias", req, &created); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	s.list = append(s.list, created)
	s.lastErr = ""
	s.mu.Unlock()
	return &created, nil
}

// Update edits a category via PUT /categorias/{id}.
func (s *Categories) Update(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	s.busy.set(id, true)
	defer s.busy.set(id, false)

	var updated models.Category
	if err := s.api.Put(ctx, fmt.Sprintf("/categorias/%d", id), req, &updated); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	spliceByID(s.list, func(c models.Category) int64 { return c.CategoryID }, updated)
	s.lastErr = ""
	s.mu.Unlock()
	return &updated, nil
}

// Delete removes a category via DELETE /categorias/{id} and drops the cache
// entry.
func (s *Categories) Delete(ctx context.Context, id int64) error {
	s.busy.set(id, true)
	defer s.busy.set(id, false)

	if err := s.api.Delete(ctx, fmt.Sprintf("/categorias/%d", id), nil); err != nil {
		s.setErr(err)
		return authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	for i := range s.list {
		if s.list[i].CategoryID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			break
		}
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

func (s *Categories) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Categories) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}
