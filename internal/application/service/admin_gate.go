package service

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/pkg/apperror"
)

// AdminGate is a server-side password gate in front of the user
// administration area. A correct password elevates the session for a
// limited window; elevation is held in memory and lost on restart,
// which is acceptable since re-entering the password is cheap.
type AdminGate struct {
	mu       sync.Mutex
	password string
	ttl      time.Duration
	elevated map[uuid.UUID]time.Time
	now      func() time.Time
}

// NewAdminGate creates a new admin gate with the given password and
// elevation window.
func NewAdminGate(password string, ttl time.Duration) *AdminGate {
	return &AdminGate{
		password: password,
		ttl:      ttl,
		elevated: make(map[uuid.UUID]time.Time),
		now:      time.Now,
	}
}

// Elevate grants the user admin-area access if the password matches.
func (g *AdminGate) Elevate(userID uuid.UUID, password string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.password == "" {
		return apperror.NewAppError(503, "Admin access is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) != 1 {
		return apperror.ErrAdminGateRefused
	}
	g.elevated[userID] = g.now().Add(g.ttl)
	return nil
}

// IsElevated reports whether the user's elevation is still current.
func (g *AdminGate) IsElevated(userID uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	expiry, ok := g.elevated[userID]
	if !ok {
		return false
	}
	if g.now().After(expiry) {
		delete(g.elevated, userID)
		return false
	}
	return true
}

// Drop ends the user's elevation immediately.
func (g *AdminGate) Drop(userID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.elevated, userID)
}
