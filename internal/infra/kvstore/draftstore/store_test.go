package draftstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore"
	"github.com/aknyshev/salon-booking-engine/pkg/ptr"
)

func testDraft() *domain.Draft {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Draft{
		ID:        "3f1c8a8e-0000-0000-0000-000000000001",
		Source:    domain.SourceSmsOTP,
		ServiceID: 3,
		MasterID:  7,
		StartAt:   now.Add(24 * time.Hour),
		EndAt:     now.Add(24*time.Hour + 30*time.Minute),
		Phone:     "+79990001122",
		CreatedAt: now,
		ExpiresAt: now.Add(15 * time.Minute),
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := New(kvstore.NewMemoryStore())

	draft := testDraft()
	require.NoError(t, store.Save(ctx, draft))

	got, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft, got)
}

func TestStore_GetMissing(t *testing.T) {
	store := New(kvstore.NewMemoryStore())

	_, err := store.Get(context.Background(), "no-such-draft")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestStore_SaveRejectsAlreadyExpired(t *testing.T) {
	store := New(kvstore.NewMemoryStore())

	draft := testDraft()
	draft.ExpiresAt = time.Now().Add(-time.Minute)

	err := store.Save(context.Background(), draft)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestStore_UpdatePreservesIdentity(t *testing.T) {
	ctx := context.Background()
	store := New(kvstore.NewMemoryStore())

	draft := testDraft()
	require.NoError(t, store.Save(ctx, draft))

	// Дозаполнение контакта и отметка о промоушене — обычный путь черновика
	draft.Email = "client@example.com"
	draft.Verified = true
	draft.VerifiedVia = domain.MethodSMS
	draft.VerifiedContact = "+79211234567"
	draft.AppointmentID = ptr.Ptr(int64(42))
	require.NoError(t, store.Save(ctx, draft))

	got, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)
	assert.Equal(t, domain.MethodSMS, got.VerifiedVia)
	assert.Equal(t, "+79211234567", got.VerifiedContact)
	require.NotNil(t, got.AppointmentID)
	assert.Equal(t, int64(42), *got.AppointmentID)
	assert.Equal(t, draft.StartAt, got.StartAt, "поля слота не меняются")
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := New(kvstore.NewMemoryStore())

	draft := testDraft()
	require.NoError(t, store.Save(ctx, draft))
	require.NoError(t, store.Delete(ctx, draft.ID))

	_, err := store.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
