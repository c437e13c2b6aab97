package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oldschooltees/tienda/internal/apierr"
	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/client/session"
	"github.com/oldschooltees/tienda/internal/client/transport"
	"github.com/oldschooltees/tienda/internal/models"
)

// fakeCart is the server-side cart state behind the fake API.
type fakeCart struct {
	cart models.Cart
}

func (f *fakeCart) write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(f.cart)
}

// newStore builds a cart store over a fake API plus a logged-in session.
func newStore(t *testing.T, install func(r chi.Router, state *fakeCart)) (*Store, *session.Store, *fakeCart, *atomic.Int64) {
	t.Helper()

	state := &fakeCart{cart: models.Cart{
		CartID: 1, UserID: 5,
		Items: []models.CartLine{
			{LineID: 10, ProductID: 42, ProductName: "Retro 98", Quantity: 2, UnitPrice: 80, Subtotal: 160},
		},
		Total: 160,
	}}

	var hits atomic.Int64
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			hits.Add(1)
			next.ServeHTTP(w, req)
		})
	})
	install(r, state)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// Seed a logged-in session via a pre-written state file.
	path := filepath.Join(t.TempDir(), "state.json")
	seed, _ := json.Marshal(map[string]any{
		"token": "tok-abc",
		"user":  models.AuthResponse{Token: "tok-abc", Name: "Ana", Roles: []string{"Cliente"}},
	})
	if err := os.WriteFile(path, seed, 0o600); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	var sessions *session.Store
	client := api.New(srv.URL, transport.TokenFunc(func() string { return sessions.Token() }), 5*time.Second, zap.NewNop())
	sessions = session.New(path, client, zap.NewNop())

	return New(client, sessions, zap.NewNop()), sessions, state, &hits
}

// defaultRoutes implements the full happy-path cart API.
func defaultRoutes(r chi.Router, state *fakeCart) {
	r.Get("/carrito/mi-carrito", func(w http.ResponseWriter, req *http.Request) {
		state.write(w)
	})
	r.Post("/carrito/agregar", func(w http.ResponseWriter, req *http.Request) {
		var body models.AddItemRequest
		_ = json.NewDecoder(req.Body).Decode(&body)
		line := models.CartLine{
			LineID: 11, ProductID: body.ProductID, ProductName: "Clasica 90",
			Quantity: body.Quantity, UnitPrice: 50, Subtotal: float64(body.Quantity) * 50,
		}
		state.cart.Items = append(state.cart.Items, line)
		state.cart.Total += line.Subtotal
		state.write(w)
	})
	r.Delete("/carrito/eliminar/{lineId}", func(w http.ResponseWriter, req *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(req, "lineId"), 10, 64)
		items := state.cart.Items[:0]
		total := 0.0
		for _, line := range state.cart.Items {
			if line.LineID != id {
				items = append(items, line)
				total += line.Subtotal
			}
		}
		state.cart.Items = items
		state.cart.Total = total
		state.write(w)
	})
	r.Put("/carrito/actualizar-cantidad/{lineId}", func(w http.ResponseWriter, req *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(req, "lineId"), 10, 64)
		var body models.UpdateQuantityRequest
		_ = json.NewDecoder(req.Body).Decode(&body)
		total := 0.0
		for i := range state.cart.Items {
			if state.cart.Items[i].LineID == id {
				state.cart.Items[i].Quantity = body.Quantity
				state.cart.Items[i].Subtotal = float64(body.Quantity) * state.cart.Items[i].UnitPrice
			}
			total += state.cart.Items[i].Subtotal
		}
		state.cart.Total = total
		state.write(w)
	})
}

func sameCart(t *testing.T, got *models.Cart, want models.Cart) {
	t.Helper()
	g, _ := json.Marshal(got)
	w, _ := json.Marshal(want)
	if string(g) != string(w) {
		t.Errorf("snapshot diverged from server payload:\n got %s\nwant %s", g, w)
	}
}

func TestMutations_SnapshotEqualsServerPayload(t *testing.T) {
	store, _, state, _ := newStore(t, defaultRoutes)
	ctx := context.Background()

	if _, err := store.Fetch(ctx); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	sameCart(t, store.Cart(), state.cart)

	if _, err := store.AddItem(ctx, models.AddItemRequest{ProductID: 42, Quantity: 2}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	sameCart(t, store.Cart(), state.cart)

	if _, err := store.SetQuantity(ctx, 10, 3); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}
	sameCart(t, store.Cart(), state.cart)

	if _, err := store.RemoveItem(ctx, 11); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	sameCart(t, store.Cart(), state.cart)
}

func TestAddItem_BusinessRejectionVerbatim(t *testing.T) {
	store, _, _, _ := newStore(t, func(r chi.Router, state *fakeCart) {
		r.Post("/carrito/agregar", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Stock insuficiente"}`))
		})
	})

	_, err := store.AddItem(context.Background(), models.AddItemRequest{ProductID: 42, Quantity: 99})
	if err == nil || err.Error() != "Stock insuficiente" {
		t.Errorf("expected verbatim server message, got %v", err)
	}
	if store.Cart() != nil {
		t.Errorf("failed mutation must not touch the snapshot")
	}
}

func TestUnauthorized_ForcesLogoutAndClear(t *testing.T) {
	store, sessions, _, _ := newStore(t, func(r chi.Router, state *fakeCart) {
		r.Get("/carrito/mi-carrito", func(w http.ResponseWriter, req *http.Request) {
			state.write(w)
		})
		r.Post("/carrito/agregar", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	})
	ctx := context.Background()

	if _, err := store.Fetch(ctx); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if store.Cart() == nil {
		t.Fatalf("expected a snapshot before the 401")
	}

	_, err := store.AddItem(ctx, models.AddItemRequest{ProductID: 1, Quantity: 1})
	if !apierr.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if sessions.IsLoggedIn() {
		t.Errorf("401 must force a logout")
	}
	if store.Cart() != nil {
		t.Errorf("401 must drop the cart snapshot")
	}
}

func TestAddItem_WithoutTokenSurfacesUnauthorized(t *testing.T) {
	store, sessions, _, hits := newStore(t, func(r chi.Router, state *fakeCart) {
		r.Post("/carrito/agregar", func(w http.ResponseWriter, req *http.Request) {
			// The authorizer must not have attached a credential.
			if got := req.Header.Get("Authorization"); got != "" {
				t.Errorf("unexpected Authorization header %q", got)
			}
			w.WriteHeader(http.StatusUnauthorized)
		})
	})
	sessions.Logout()
	hits.Store(0)

	_, err := store.AddItem(context.Background(), models.AddItemRequest{ProductID: 42, Quantity: 2})
	if !apierr.IsUnauthorized(err) {
		t.Errorf("expected normalized unauthorized error, got %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected exactly one request, saw %d", hits.Load())
	}
}

func TestSetQuantity_BelowOneIsLocal(t *testing.T) {
	store, _, _, hits := newStore(t, defaultRoutes)

	_, err := store.SetQuantity(context.Background(), 10, 0)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if hits.Load() != 0 {
		t.Errorf("quantity 0 must never reach the server, saw %d requests", hits.Load())
	}
}

func TestAddItem_NonPositiveQuantityIsLocal(t *testing.T) {
	store, _, _, hits := newStore(t, defaultRoutes)

	for _, qty := range []int{0, -3} {
		if _, err := store.AddItem(context.Background(), models.AddItemRequest{ProductID: 42, Quantity: qty}); err == nil {
			t.Errorf("quantity %d: expected validation error", qty)
		}
	}
	if hits.Load() != 0 {
		t.Errorf("invalid quantities must not reach the server, saw %d requests", hits.Load())
	}
}

func TestClearLocal(t *testing.T) {
	store, _, _, hits := newStore(t, defaultRoutes)

	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	before := hits.Load()

	store.ClearLocal()

	if store.Cart() != nil {
		t.Errorf("expected empty snapshot after ClearLocal")
	}
	if hits.Load() != before {
		t.Errorf("ClearLocal must not make network calls")
	}
}
