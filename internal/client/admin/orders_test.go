package admin

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
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/client/session"
	"github.com/oldschooltees/tienda/internal/client/transport"
	"github.com/oldschooltees/tienda/internal/models"
)

// newStores wires the admin stores against a fake back-office API with a
// logged-in admin session.
func newStores(t *testing.T, install func(r chi.Router)) (*Stores, *session.Store) {
	t.Helper()

	r := chi.NewRouter()
	install(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "state.json")
	seed, _ := json.Marshal(map[string]any{
		"token": "tok-admin",
		"user":  models.AuthResponse{Token: "tok-admin", Name: "Root", Roles: []string{models.RoleAdmin}},
	})
	require.NoError(t, os.WriteFile(path, seed, 0o600))

	var sessions *session.Store
	client := api.New(srv.URL, transport.TokenFunc(func() string { return sessions.Token() }), 5*time.Second, zap.NewNop())
	sessions = session.New(path, client, zap.NewNop())

	return New(client, sessions, zap.NewNop()), sessions
}

func seedOrders() []models.Order {
	return []models.Order{
		{OrderID: 7, Status: "PAGADO", PaymentStatus: "COMPLETADO", ShippingStatus: "EN_PREPARACION", Total: 120},
		{OrderID: 8, Status: "PENDIENTE", PaymentStatus: "PENDIENTE", ShippingStatus: "EN_PREPARACION", Total: 60},
	}
}

func TestOrders_UpdateShipping_SplicesOnlyThatRow(t *testing.T) {
	serverList := seedOrders()
	stores, _ := newStores(t, func(r chi.Router) {
		r.Get("/admin/pedidos", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(serverList)
		})
		r.Patch("/admin/pedidos/{id}/envio", func(w http.ResponseWriter, req *http.Request) {
			id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
			var body models.UpdateShippingStatusRequest
			_ = json.NewDecoder(req.Body).Decode(&body)
			for i := range serverList {
				if serverList[i].OrderID == id {
					serverList[i].ShippingStatus = body.NewStatus
					w.Header().Set("Content-Type", "application/json")
					_ = json.NewEncoder(w).Encode(serverList[i])
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
		})
	})
	ctx := context.Background()

	_, err := stores.Orders.Load(ctx)
	require.NoError(t, err)

	updated, err := stores.Orders.UpdateShipping(ctx, 7, "EN_CAMINO")
	require.NoError(t, err)
	require.Equal(t, "EN_CAMINO", updated.ShippingStatus)

	list := stores.Orders.List()
	require.Len(t, list, 2)
	require.Equal(t, "EN_CAMINO", list[0].ShippingStatus, "order 7 must be replaced")
	require.Equal(t, "EN_PREPARACION", list[1].ShippingStatus, "order 8 must be untouched")
	require.Empty(t, stores.Orders.LastError())
}

func TestOrders_UpdateFailure_ReloadsList(t *testing.T) {
	var loads atomic.Int64
	stores, _ := newStores(t, func(r chi.Router) {
		r.Get("/admin/pedidos", func(w http.ResponseWriter, req *http.Request) {
			loads.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(seedOrders())
		})
		r.Patch("/admin/pedidos/{id}/estado", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Transición inválida"}`))
		})
	})
	ctx := context.Background()

	_, err := stores.Orders.Load(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, loads.Load())

	_, err = stores.Orders.UpdateStatus(ctx, 7, "CANCELADO")
	require.EqualError(t, err, "Transición inválida")

	// The failed transition forces a resynchronizing reload.
	require.EqualValues(t, 2, loads.Load())
	list := stores.Orders.List()
	require.Equal(t, seedOrders(), list, "cache must match server truth after reload")
}

func TestOrders_Unauthorized_ForcesLogout(t *testing.T) {
	stores, sessions := newStores(t, func(r chi.Router) {
		r.Get("/admin/pedidos", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
	})

	_, err := stores.Orders.Load(context.Background())
	require.Error(t, err)
	require.False(t, sessions.IsLoggedIn(), "403 must force a logout")
}

func TestOrders_RowBusyFlags(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	stores, _ := newStores(t, func(r chi.Router) {
		r.Get("/admin/pedidos", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(seedOrders())
		})
		r.Patch("/admin/pedidos/{id}/pago", func(w http.ResponseWriter, req *http.Request) {
			close(entered)
			<-release
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.Order{OrderID: 7, PaymentStatus: "COMPLETADO"})
		})
	})
	ctx := context.Background()

	_, err := stores.Orders.Load(ctx)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = stores.Orders.UpdatePayment(ctx, 7, "COMPLETADO")
	}()

	<-entered
	require.True(t, stores.Orders.Updating(7), "row 7 must be busy while its edit is in flight")
	require.False(t, stores.Orders.Updating(8), "row 8 must not be blocked by row 7")
	close(release)
	<-done
	require.False(t, stores.Orders.Updating(7))
}

func TestOrders_UnauthorizedUpdate_LogsOutOnceWithoutReload(t *testing.T) {
	var loads atomic.Int64
	stores, sessions := newStores(t, func(r chi.Router) {
		r.Get("/admin/pedidos", func(w http.ResponseWriter, req *http.Request) {
			loads.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(seedOrders())
		})
		r.Patch("/admin/pedidos/{id}/estado", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	})
	ctx := context.Background()

	var logouts int
	sessions.OnChange(func(loggedIn bool) {
		if !loggedIn {
			logouts++
		}
	})

	_, err := stores.Orders.Load(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, loads.Load())

	_, err = stores.Orders.UpdateStatus(ctx, 7, "CANCELADO")
	require.Error(t, err)
	require.False(t, sessions.IsLoggedIn())
	require.Equal(t, 1, logouts, "a rejected credential must notify observers exactly once")
	require.EqualValues(t, 1, loads.Load(), "no resync attempt with a rejected credential")
}
