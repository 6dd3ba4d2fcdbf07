package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminGate_ElevateAndExpire(t *testing.T) {
	gate := NewAdminGate("s3cret", 30*time.Minute)
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	gate.now = func() time.Time { return now }

	userID := uuid.New()
	assert.False(t, gate.IsElevated(userID))

	require.NoError(t, gate.Elevate(userID, "s3cret"))
	assert.True(t, gate.IsElevated(userID))

	// Still inside the window.
	now = now.Add(29 * time.Minute)
	assert.True(t, gate.IsElevated(userID))

	// Past the window.
	now = now.Add(2 * time.Minute)
	assert.False(t, gate.IsElevated(userID))
}

func TestAdminGate_WrongPassword(t *testing.T) {
	gate := NewAdminGate("s3cret", 30*time.Minute)
	userID := uuid.New()

	err := gate.Elevate(userID, "wrong")

	assert.Equal(t, apperror.ErrAdminGateRefused, err)
	assert.False(t, gate.IsElevated(userID))
}

func TestAdminGate_Unconfigured(t *testing.T) {
	gate := NewAdminGate("", 30*time.Minute)

	err := gate.Elevate(uuid.New(), "anything")

	require.Error(t, err)
	assert.Equal(t, 503, apperror.GetAppError(err).Code)
}

func TestAdminGate_Drop(t *testing.T) {
	gate := NewAdminGate("s3cret", 30*time.Minute)
	userID := uuid.New()

	require.NoError(t, gate.Elevate(userID, "s3cret"))
	gate.Drop(userID)

	assert.False(t, gate.IsElevated(userID))
}

func TestAdminGate_PerUserElevation(t *testing.T) {
	gate := NewAdminGate("s3cret", 30*time.Minute)
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, gate.Elevate(first, "s3cret"))

	assert.True(t, gate.IsElevated(first))
	assert.False(t, gate.IsElevated(second))
}
