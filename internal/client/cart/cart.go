// Package cart holds the client-side snapshot of the authenticated user's
// cart. The server is the sole source of truth: every successful mutation
// replaces the whole snapshot with the server's response, and nothing is
// ever recomputed locally.
package cart

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

// Store caches the current cart. Safe for concurrent use, but two mutations
// in flight at once race: the last server response to arrive wins.
type Store struct {
	mu   sync.Mutex
	cart *models.Cart

	api      *api.Client
	sessions *session.Store
	log      *zap.Logger
}

// New builds a cart store. sessions is used to force a logout when the
// server reports the session as no longer valid.
func New(client *api.Client, sessions *session.Store, log *zap.Logger) *Store {
	return &Store{api: client, sessions: sessions, log: log}
}

// Cart returns a copy of the current snapshot, or nil when none is held.
func (s *Store) Cart() *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return nil
	}
	c := *s.cart
	c.Items = append([]models.CartLine(nil), s.cart.Items...)
	return &c
}

// Fetch retrieves the authoritative cart from GET /carrito/mi-carrito and
// replaces the local snapshot. On failure the snapshot is left untouched.
func (s *Store) Fetch(ctx context.Context) (*models.Cart, error) {
	var c models.Cart
	if err := s.api.Get(ctx, "/carrito/mi-carrito", &c); err != nil {
		return nil, s.fail(err)
	}
	s.replace(&c)
	return s.Cart(), nil
}

// AddItem adds a product to the cart via POST /carrito/agregar. Quantity
// must be a positive integer; stock and business rules are validated
// server-side and a rejection message passes through verbatim.
func (s *Store) AddItem(ctx context.Context, req models.AddItemRequest) (*models.Cart, error) {
	if req.Quantity < 1 {
		return nil, apierr.Validation("quantity must be at least 1")
	}

	var c models.Cart
	if err := s.api.Post(ctx, "/carrito/agregar", req, &c); err != nil {
		return nil, s.fail(err)
	}
	s.replace(&c)
	return s.Cart(), nil
}

// RemoveItem deletes one line by its identity via DELETE /carrito/eliminar/{id}.
func (s *Store) RemoveItem(ctx context.Context, lineID int64) (*models.Cart, error) {
	var c models.Cart
	if err := s.api.Delete(ctx, fmt.Sprintf("/carrito/eliminar/%d", lineID), &c); err != nil {
		return nil, s.fail(err)
	}
	s.replace(&c)
	return s.Cart(), nil
}

// SetQuantity changes a line's quantity via PUT /carrito/actualizar-cantidad/{id}.
// A quantity below 1 is a local validation error; callers wanting to drop a
// line route to RemoveItem instead.
func (s *Store) SetQuantity(ctx context.Context, lineID int64, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apierr.Validation("quantity must be at least 1; remove the line instead")
	}

	var c models.Cart
	path := fmt.Sprintf("/carrito/actualizar-cantidad/%d", lineID)
	if err := s.api.Put(ctx, path, models.UpdateQuantityRequest{Quantity: quantity}, &c); err != nil {
		return nil, s.fail(err)
	}
	s.replace(&c)
	return s.Cart(), nil
}

// ClearLocal drops the local snapshot without any network call. Used after
// logout and after an order has been placed from the cart.
func (s *Store) ClearLocal() {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
}

func (s *Store) replace(c *models.Cart) {
	s.mu.Lock()
	s.cart = c
	s.mu.Unlock()
}

// fail maps a server rejection of the session into a forced logout before
// returning the normalized error. The snapshot is dropped with it so no
// stale cart outlives the session.
func (s *Store) fail(err error) error {
	if apierr.IsUnauthorized(err) {
		s.log.Info("session rejected by server, logging out")
		s.sessions.Logout()
		s.ClearLocal()
	}
	return err
}
