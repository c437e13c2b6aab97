package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oldschooltees/tienda/internal/apierr"
	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/client/transport"
	"github.com/oldschooltees/tienda/internal/models"
)

// newStore spins up a fake auth API and a store persisting into a temp dir.
// hits counts every request that reached the server.
func newStore(t *testing.T) (*Store, string, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			hits.Add(1)
			next.ServeHTTP(w, req)
		})
	})
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var body models.LoginRequest
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			Token: "tok-abc", Name: "Ana", Email: body.Email, Roles: []string{"Cliente"},
		})
	})
	r.Post("/auth/register", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			Token: "tok-new", Name: "Nuevo", Email: "n@x.pe", Roles: []string{"Cliente"},
		})
	})
	r.Post("/auth/request-reset", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Código enviado"})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "state.json")
	var store *Store
	client := api.New(srv.URL, transport.TokenFunc(func() string {
		if store == nil {
			return ""
		}
		return store.Token()
	}), 5*time.Second, zap.NewNop())
	store = New(path, client, zap.NewNop())
	return store, path, &hits
}

func TestLogin_PersistsAndUpdatesState(t *testing.T) {
	store, path, _ := newStore(t)

	resp, err := store.Login(context.Background(), models.LoginRequest{Email: "a@x.pe", Password: "secret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token != "tok-abc" {
		t.Errorf("unexpected token %q", resp.Token)
	}
	if !store.IsLoggedIn() {
		t.Errorf("expected logged-in state")
	}

	// Token and profile are written together to the state file.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("state file not written: %v", err)
	}
	var st state
	_ = json.Unmarshal(data, &st)
	if st.Token != "tok-abc" || st.User == nil || st.User.Name != "Ana" {
		t.Errorf("unexpected persisted state: %+v", st)
	}
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	store, path, _ := newStore(t)

	_, err := store.Login(context.Background(), models.LoginRequest{Email: "a@x.pe", Password: "wrong"})
	if !apierr.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if store.IsLoggedIn() {
		t.Errorf("failed login must not log the user in")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("failed login must not write the state file")
	}
}

func TestLogout_ClearsEverything(t *testing.T) {
	store, path, _ := newStore(t)
	if _, err := store.Login(context.Background(), models.LoginRequest{Email: "a@x.pe", Password: "secret"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	store.Logout()

	if store.IsLoggedIn() {
		t.Errorf("expected logged-out state")
	}
	if store.Profile() != nil {
		t.Errorf("profile must be cleared")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("state file must be removed on logout")
	}
}

func TestRestore_FromStateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	st := state{Token: "tok-old", User: &models.AuthResponse{Token: "tok-old", Name: "Ana", Roles: []string{models.RoleAdmin}}}
	data, _ := json.Marshal(st)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("seed state file: %v", err)
	}

	store := New(path, nil, zap.NewNop())
	if !store.IsLoggedIn() {
		t.Errorf("expected restored session")
	}
	if !store.IsAdmin() {
		t.Errorf("expected restored admin role")
	}
}

func TestRestore_ProfileWithoutTokenDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	st := state{Token: "", User: &models.AuthResponse{Name: "Ghost"}}
	data, _ := json.Marshal(st)
	_ = os.WriteFile(path, data, 0o600)

	store := New(path, nil, zap.NewNop())
	if store.IsLoggedIn() || store.Profile() != nil {
		t.Errorf("profile without token must not restore a session")
	}
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.AuthResponse
		want    bool
	}{
		{"no profile", nil, false},
		{"empty roles", &models.AuthResponse{Roles: []string{}}, false},
		{"client only", &models.AuthResponse{Roles: []string{"Cliente"}}, false},
		{"admin", &models.AuthResponse{Roles: []string{models.RoleAdmin}}, true},
		{"admin among others", &models.AuthResponse{Roles: []string{"Cliente", models.RoleAdmin}}, true},
	}
	for _, tt := range tests {
		store := &Store{log: zap.NewNop()}
		store.profile = tt.profile
		if got := store.IsAdmin(); got != tt.want {
			t.Errorf("%s: IsAdmin() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestProfile_ReturnedRolesAreDetached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	st := state{Token: "tok", User: &models.AuthResponse{Token: "tok", Name: "Ana", Roles: []string{models.RoleAdmin}}}
	data, _ := json.Marshal(st)
	_ = os.WriteFile(path, data, 0o600)

	store := New(path, nil, zap.NewNop())
	p := store.Profile()
	p.Roles[0] = "Cliente"
	if !store.IsAdmin() {
		t.Errorf("mutating a returned profile must not affect the store's roles")
	}
}

func TestRegister_PasswordMismatchIsLocal(t *testing.T) {
	store, _, hits := newStore(t)

	_, err := store.Register(context.Background(), models.RegisterRequest{
		Name: "Ana", Email: "a@x.pe", Password: "secret1", ConfirmPassword: "secret2",
	})
	if err == nil || err.Error() != "passwords do not match" {
		t.Fatalf("expected local mismatch error, got %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("mismatch must not reach the network, saw %d requests", hits.Load())
	}
}

func TestRegister_Success(t *testing.T) {
	store, _, _ := newStore(t)

	resp, err := store.Register(context.Background(), models.RegisterRequest{
		Name: "Nuevo", Email: "n@x.pe", Password: "secret1", ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Token != "tok-new" || !store.IsLoggedIn() {
		t.Errorf("registration should establish a session")
	}
}

func TestOnChange_Notifications(t *testing.T) {
	store, _, _ := newStore(t)

	var events []bool
	store.OnChange(func(loggedIn bool) { events = append(events, loggedIn) })

	if _, err := store.Login(context.Background(), models.LoginRequest{Email: "a@x.pe", Password: "secret"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	store.Logout()

	if len(events) != 2 || !events[0] || events[1] {
		t.Errorf("expected [true false], got %v", events)
	}
}

func TestRequestResetCode(t *testing.T) {
	store, _, _ := newStore(t)
	msg, err := store.RequestResetCode(context.Background(), "a@x.pe")
	if err != nil {
		t.Fatalf("RequestResetCode failed: %v", err)
	}
	if msg != "Código enviado" {
		t.Errorf("unexpected message %q", msg)
	}
}
