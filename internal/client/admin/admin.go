// Package admin implements the back-office stores. Each resource keeps a
// cached list fetched from the server; mutation endpoints return the updated
// record, which is spliced into the cache by identity instead of reloading
// the whole list. Per-row busy flags let concurrent edits across rows
// proceed independently.
package admin

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oldschooltees/tienda/internal/apierr"
	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/client/session"
)

// structValidator checks request structs before any network call.
var structValidator = validator.New(validator.WithRequiredStructEnabled())

func validateRequest(req any) error {
	if err := structValidator.Struct(req); err != nil {
		return apierr.Validation(fmt.Sprintf("invalid request: %v", err))
	}
	return nil
}

// Stores bundles every back-office store over one API client.
type Stores struct {
	Orders      *Orders
	Products    *Products
	Inventory   *Inventory
	Promotions  *Promotions
	Assignments *Assignments
	Suppliers   *Suppliers
	Categories  *Categories
}

// New wires all admin stores. sessions is consulted to force a logout when
// the server rejects the credential.
func New(client *api.Client, sessions *session.Store, log *zap.Logger) *Stores {
	return &Stores{
		Orders:      &Orders{api: client, sessions: sessions, log: log},
		Products:    &Products{api: client, sessions: sessions, log: log},
		Inventory:   &Inventory{api: client, sessions: sessions, log: log},
		Promotions:  &Promotions{api: client, sessions: sessions, log: log},
		Assignments: &Assignments{api: client, sessions: sessions, log: log},
		Suppliers:   &Suppliers{api: client, sessions: sessions, log: log},
		Categories:  &Categories{api: client, sessions: sessions, log: log},
	}
}

// rowFlags tracks which rows have a mutation in flight, keyed by identity.
type rowFlags struct {
	mu sync.Mutex
	m  map[int64]bool
}

func (f *rowFlags) set(id int64, busy bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.m == nil {
		f.m = make(map[int64]bool)
	}
	if busy {
		f.m[id] = true
	} else {
		delete(f.m, id)
	}
}

// Busy reports whether the row with the given identity is being updated.
func (f *rowFlags) Busy(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.m[id]
}

// spliceByID replaces the first element matching item's identity and reports
// whether a match was found. The rest of the list is untouched.
func spliceByID[T any](list []T, idOf func(T) int64, item T) bool {
	id := idOf(item)
	for i := range list {
		if idOf(list[i]) == id {
			list[i] = item
			return true
		}
	}
	return false
}

// authGuard forces a logout when the server rejected the session. Returns
// err unchanged for propagation.
func authGuard(sessions *session.Store, log *zap.Logger, err error) error {
	if apierr.IsUnauthorized(err) {
		log.Info("admin call rejected as unauthorized, logging out")
		sessions.Logout()
	}
	return err
}
