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

// Promotions manages the promotion catalog. Deactivation is logical, same
// as for products.
type Promotions struct {
	mu      sync.Mutex
	list    []models.Promotion
	loading bool
	lastErr string
	busy    rowFlags

	api      *api.Client
	sessions *session.Store
	log      *zap.Logger
}

// Load fetches all promotions and replaces the cache.
func (s *Promotions) Load(ctx context.Context) ([]models.Promotion, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var out []models.Promotion
	if err := s.api.Get(ctx, "/promociones", &out); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	s.list = out
	s.lastErr = ""
	s.mu.Unlock()
	return s.List(), nil
}

// List returns a copy of the cached promotion list.
func (s *Promotions) List() []models.Promotion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Promotion(nil), s.list...)
}

// Loading reports whether a full list load is in progress.
func (s *Promotions) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the message of the last failed operation.
func (s *Promotions) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Updating reports whether the given promotion has an edit in flight.
func (s *Promotions) Updating(promotionID int64) bool { return s.busy.Busy(promotionID) }

// Create adds a promotion via POST /promociones.
func (s *Promotions) Create(ctx context.Context, req models.PromotionRequest) (*models.Promotion, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var created models.Promotion
	if err := s.api.Post(ctx, "/promociones", req, &created); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	s.list = append(s.list, created)
	s.lastErr = ""
	s.mu.Unlock()
	return &created, nil
}

// Update edits a promotion via PUT /promociones/{id}.
func (s *Promotions) Update(ctx context.Context, id int64, req models.PromotionRequest) (*models.Promotion, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	s.busy.set(id, true)
	defer s.busy.set(id, false)

	var updated models.Promotion
	if err := s.api.Put(ctx, fmt.Sprintf("/promociones/%d", id), req, &updated); err != nil {
		s.setErr(err)
		return nil, authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	spliceByID(s.list, func(p models.Promotion) int64 { return p.PromotionID }, updated)
	s.lastErr = ""
	s.mu.Unlock()
	return &updated, nil
}

// Deactivate performs the logical delete via DELETE /promociones/{id} and
// patches the active flag in the cache.
func (s *Promotions) Deactivate(ctx context.Context, id int64) error {
	s.busy.set(id, true)
	defer s.busy.set(id, false)

	if err := s.api.Delete(ctx, fmt.Sprintf("/promociones/%d", id), nil); err != nil {
		s.setErr(err)
		return authGuard(s.sessions, s.log, err)
	}
	s.mu.Lock()
	for i := range s.list {
		if s.list[i].PromotionID == id {
			s.list[i].Active = false
			break
		}
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

func (s *Promotions) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Promotions) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}
