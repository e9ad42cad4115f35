//go:build unit

package queue_test

import (
	"testing"
	"time"

	"table-concierge/internal/domain/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() queue.NewEntryParams {
	return queue.NewEntryParams{
		ID:              "e1",
		LocationID:      "sandton",
		Date:            "2026-10-17",
		GuestName:       "  Thandi ",
		GuestPhone:      "+27825550100",
		PartySize:       4,
		SpecialRequests: " window seat ",
		Origin:          queue.Origin{Type: queue.OriginGuest},
		Position:        2,
		Now:             time.Date(2026, 10, 17, 19, 0, 0, 0, time.UTC),
	}
}

func TestNewEntry(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		e, err := queue.NewEntry(validParams())
		require.NoError(t, err)

		assert.Equal(t, "Thandi", e.GuestName)
		assert.Equal(t, "window seat", e.SpecialRequests)
		assert.Equal(t, queue.StatusWaiting, e.Status)
		assert.Equal(t, 2, e.Position)
		assert.Equal(t, 45, e.EstimatedWaitTime)
		assert.Equal(t, e.AddedAt, e.UpdatedAt)
		assert.False(t, e.Notified(queue.NotifyCalled))
	})

	tests := []struct {
		name   string
		mutate func(*queue.NewEntryParams)
		errIs  error
	}{
		{"missing location", func(p *queue.NewEntryParams) { p.LocationID = " " }, queue.ErrMissingLocation},
		{"missing name", func(p *queue.NewEntryParams) { p.GuestName = "" }, queue.ErrMissingGuestName},
		{"missing phone", func(p *queue.NewEntryParams) { p.GuestPhone = "" }, queue.ErrMissingGuestPhone},
		{"party of zero", func(p *queue.NewEntryParams) { p.PartySize = 0 }, queue.ErrInvalidPartySize},
		{"party of 21", func(p *queue.NewEntryParams) { p.PartySize = 21 }, queue.ErrInvalidPartySize},
		{"party of 20", func(p *queue.NewEntryParams) { p.PartySize = 20 }, nil},
		{"unknown origin", func(p *queue.NewEntryParams) { p.Origin.Type = "robot" }, queue.ErrInvalidOriginator},
		{"admin without id", func(p *queue.NewEntryParams) { p.Origin = queue.Origin{Type: queue.OriginAdmin} }, queue.ErrMissingAdminID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := queue.NewEntry(p)
			if tt.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestEntry_ApplyStatus(t *testing.T) {
	now := time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)

	t.Run("called stamps calledAt", func(t *testing.T) {
		e, err := queue.NewEntry(validParams())
		require.NoError(t, err)
		require.NoError(t, e.ApplyStatus(queue.StatusCalled, "", now))
		assert.Equal(t, queue.StatusCalled, e.Status)
		require.NotNil(t, e.CalledAt)
		assert.Equal(t, now, *e.CalledAt)
		assert.Equal(t, now, e.UpdatedAt)
	})

	t.Run("removed keeps reason", func(t *testing.T) {
		e, err := queue.NewEntry(validParams())
		require.NoError(t, err)
		require.NoError(t, e.ApplyStatus(queue.StatusRemoved, "left", now))
		require.NotNil(t, e.RemovedAt)
		assert.Equal(t, "left", e.RemovalReason)
	})

	t.Run("waiting is not a target", func(t *testing.T) {
		e, err := queue.NewEntry(validParams())
		require.NoError(t, err)
		assert.ErrorIs(t, e.ApplyStatus(queue.StatusWaiting, "", now), queue.ErrInvalidStatus)
	})
}

func TestSummarize(t *testing.T) {
	entries := []*queue.Entry{
		{Status: queue.StatusWaiting},
		{Status: queue.StatusWaiting},
		{Status: queue.StatusCalled},
		{Status: queue.StatusSeated},
		{Status: queue.StatusRemoved},
	}
	assert.Equal(t, queue.Summary{Total: 5, Waiting: 2, Called: 1, Seated: 1, Removed: 1}, queue.Summarize(entries))
	assert.Equal(t, 2, queue.CountWaiting(entries))
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("SAST", 2*60*60)
	late := time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-18", queue.DateOf(late, loc))
	assert.Equal(t, "2026-10-17", queue.DateOf(late, time.UTC))

	_, err := queue.ParseDate("17/10/2026")
	assert.ErrorIs(t, err, queue.ErrInvalidDate)
}

func TestNewMetadata_DefaultCapacity(t *testing.T) {
	m := queue.NewMetadata(queue.BucketKey{LocationID: "sandton", Date: "2026-10-17"}, "Sandton", 0, base)
	assert.Equal(t, queue.DefaultMaxCapacity, m.MaxCapacity)
	assert.Equal(t, queue.BucketOpen, m.Status)
}
