package admin

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/client/session"
	"github.com/oldschooltees/tienda/internal/models"
)

// Products manages the admin product list, which includes inactive products.
// Deletion is logical server-side; the cache mirrors it by flipping the
// active flag in place instead of removing the entry.
type Products struct {
	mu      sync.Mutex
	list    []models.Product
	loading bool
	lastErr string
	busy    rowFlags

	api      *api.Client
	sessions *session.Store
	log      *zap.Logger
}

// Load fetches all products (active and inactive) via GET /admin/productos.
func (s *Products) Load(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	var out []models.Product
	if err := s.api.Get(ctx, "/admin/productos", &out); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	s.list = out
	s.lastErr = ""
	s.mu.Unlock()
	return s.List(), nil
}

// List returns a copy of the cached product list.
func (s *Products) List() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Product(nil), s.list...)
}

// Loading reports whether a full list load is in progress.
func (s *Products) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the message of the last failed operation.
func (s *Products) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Updating reports whether the given product has an edit in flight.
func (s *Products) Updating(productID int64) bool { return s.busy.Busy(productID) }

// Create adds a product via POST /admin/productos and appends the returned
// record to the cache.
func (s *Products) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var created models.Product
	if err := s.api.Post(ctx, "/admin/productos", req, &created); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	s.list = append(s.list, created)
	s.lastErr = ""
	s.mu.Unlock()
	return &created, nil
}

// Update edits a product via PUT /admin/productos/{id} and splices the
// returned record into the cache.
func (s *Products) Update(ctx context.Context, id int64, req models.ProductRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	s.busy.set(id, true)
	defer s.busy.set(id, false)

	var updated models.Product
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/productos/%d", id), req, &updated); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	spliceByID(s.list, func(p models.Product) int64 { return p.ID }, updated)
	s.lastErr = ""
	s.mu.Unlock()
	return &updated, nil
}

// Deactivate performs the logical delete via DELETE /admin/productos/{id}.
// The server flips the active flag; the cache patches the flag locally
// instead of dropping the entry.
func (s *Products) Deactivate(ctx context.Context, id int64) error {
	s.busy.set(id, true)
	defer s.busy.set(id, false)

	if err := s.api.Delete(ctx, fmt.Sprintf("/admin/productos/%d", id), nil); err != nil {
		s.setErr(err)
		return authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	for i := range s.list {
		if s.list[i].ID == id {
			s.list[i].Active = false
			break
		}
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// UploadImage sends a product image via POST /admin/productos/{id}/imagen as
// multipart form data and patches the cached product's image URL.
func (s *Products) UploadImage(ctx context.Context, id int64, filename string, file io.Reader) (string, error) {
	s.busy.set(id, true)
	defer s.busy.set(id, false)

	var resp models.UploadResponse
	path := fmt.Sprintf("/admin/productos/%d/imagen", id)
	if err := s.api.Upload(ctx, path, filename, file, &resp); err != nil {
		s.setErr(err)
		return "", authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	for i := range s.list {
		if s.list[i].ID == id {
			s.list[i].ImageURL = resp.ImageURL
			break
		}
	}
	s.lastErr = ""
	s.mu.Unlock()
	return resp.ImageURL, nil
}

func (s *Products) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}
