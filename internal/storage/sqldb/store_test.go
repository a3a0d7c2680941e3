package sqldb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/event"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndQuery(t *testing.T) {
	store := newTestStore(t)

	entries := []event.AuditEntry{
		{
			MessageID: "msg-1",
			ProductID: "p-1",
			EventType: event.EventProductCreated,
			Outcome:   event.OutcomeCompleted,
			Duration:  1500 * time.Millisecond,
		},
		{
			MessageID: "msg-2",
			Outcome:   event.OutcomeSkipped,
			Reason:    "no message object",
		},
	}
	for _, entry := range entries {
		require.NoError(t, store.Record(t.Context(), entry))
	}

	got, err := store.ByMessageID(t.Context(), "msg-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p-1", got[0].ProductID)
	assert.Equal(t, event.OutcomeCompleted, got[0].Outcome)
	assert.Equal(t, 1500*time.Millisecond, got[0].Duration)

	got, err = store.ByMessageID(t.Context(), "msg-2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, event.OutcomeSkipped, got[0].Outcome)
	assert.Equal(t, "no message object", got[0].Reason)
}

func TestByMessageIDEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.ByMessageID(t.Context(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordKeepsRedeliveries(t *testing.T) {
	store := newTestStore(t)

	// The same message id may be redelivered; each attempt gets a row.
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Record(t.Context(), event.AuditEntry{
			MessageID: "msg-1",
			Outcome:   event.OutcomeFailed,
			Reason:    "image analysis stage: vision down",
		}))
	}

	got, err := store.ByMessageID(t.Context(), "msg-1")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
