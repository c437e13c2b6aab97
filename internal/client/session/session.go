// Package session holds the authentication state of the client: the bearer
// token and the user profile, persisted together in a local state file.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oldschooltees/tienda/internal/apierr"
	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/models"
)

// state is the durable representation: token and profile are always written
// together and removed together.
type state struct {
	Token string               `json:"token"`
	User  *models.AuthResponse `json:"user"`
}

// Store is the process-wide session store. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	token   string
	profile *models.AuthResponse

	path     string
	api      *api.Client
	validate *validator.Validate
	log      *zap.Logger

	onChange []func(loggedIn bool)
}

// New builds a Store persisting to path and restores any previous session
// from it. A corrupt or missing state file yields a logged-out store.
func New(path string, client *api.Client, log *zap.Logger) *Store {
	s := &Store{
		path:     path,
		api:      client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
	s.restore()
	return s
}

// Token returns the current bearer token, or "" when logged out.
// Implements transport.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsLoggedIn reports whether a token is present.
func (s *Store) IsLoggedIn() bool { return s.Token() != "" }

// IsAdmin reports whether the current profile carries the administrator
// role. False whenever no profile is held.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return false
	}
	for _, r := range s.profile.Roles {
		if r == models.RoleAdmin {
			return true
		}
	}
	return false
}

// Profile returns a copy of the current profile, or nil when logged out.
func (s *Store) Profile() *models.AuthResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	p.Roles = append([]string(nil), s.profile.Roles...)
	return &p
}

// OnChange registers fn to run after every login/logout transition.
func (s *Store) OnChange(fn func(loggedIn bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Login authenticates against POST /auth/login. On success the token and
// profile are persisted and held in memory; on failure no state changes.
func (s *Store) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apierr.Validation("email and password are required")
	}

	var resp models.AuthResponse
	if err := s.api.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	s.save(resp)
	return &resp, nil
}

// Register creates an account against POST /auth/register. The password
// confirmation is checked locally; a mismatch never reaches the network.
// On success the returned session is persisted exactly as for Login.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apierr.Validation("passwords do not match")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apierr.Validation(fmt.Sprintf("invalid registration data: %v", err))
	}

	var resp models.AuthResponse
	if err := s.api.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	s.save(resp)
	return &resp, nil
}

// RequestResetCode asks the server to email an unlock/reset code.
func (s *Store) RequestResetCode(ctx context.Context, email string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	body := map[string]string{"email": email}
	if err := s.api.Post(ctx, "/auth/request-reset", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Unlock confirms an unlock/reset code, optionally setting a new password.
func (s *Store) Unlock(ctx context.Context, req models.UnlockRequest) (string, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", apierr.Validation("email and code are required")
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := s.api.Post(ctx, "/auth/unlock", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout clears the durable state file and the in-memory session in one
// local step. No server round-trip is made. Callers owning a cart store are
// responsible for clearing it afterwards.
func (s *Store) Logout() {
	s.mu.Lock()
	wasLoggedIn := s.token != ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove session state file", zap.Error(err))
	}
	s.token = ""
	s.profile = nil
	s.mu.Unlock()

	// Repeated calls (e.g. two rejected requests racing) must not re-notify.
	if wasLoggedIn {
		s.notify(false)
	}
}

// save persists the fresh session and updates memory, then notifies.
func (s *Store) save(resp models.AuthResponse) {
	s.mu.Lock()
	if err := writeState(s.path, state{Token: resp.Token, User: &resp}); err != nil {
		s.log.Warn("failed to persist session state", zap.Error(err))
	}
	s.token = resp.Token
	s.profile = &resp
	s.mu.Unlock()

	s.notify(true)
}

func (s *Store) notify(loggedIn bool) {
	s.mu.Lock()
	fns := make([]func(bool), len(s.onChange))
	copy(fns, s.onChange)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(loggedIn)
	}
}

// restore loads a previously persisted session, if any. A profile without a
// token is discarded so that the profile-implies-token invariant holds.
func (s *Store) restore() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		s.log.Warn("corrupt session state file, ignoring", zap.Error(err))
		return
	}
	if st.Token == "" {
		return
	}
	s.token = st.Token
	s.profile = st.User
}

func writeState(path string, st state) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
