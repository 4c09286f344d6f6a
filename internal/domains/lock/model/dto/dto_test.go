package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atrium/internal/domains/lock/model"
	"atrium/internal/domains/lock/model/dto"
)

func TestAcquireLockRequest_Window(t *testing.T) {
	req := dto.AcquireLockRequest{
		VenueID:   "3e0bbcf1-4b47-4a63-96f8-1f0c6ad2f101",
		EventDate: "2026-09-14",
		StartTime: "10:00",
		EndTime:   "12:30",
		SessionID: "session-1",
	}

	date, start, end, err := req.Window()

	assert.NoError(t, err)
	assert.Equal(t, date.Add(10*time.Hour), start)
	assert.Equal(t, date.Add(12*time.Hour+30*time.Minute), end)
	assert.True(t, start.Before(end))
}

func TestAcquireLockRequest_Window_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  dto.AcquireLockRequest
	}{
		{
			name: "bad date",
			req:  dto.AcquireLockRequest{EventDate: "14-09-2026", StartTime: "10:00", EndTime: "12:00"},
		},
		{
			name: "bad start time",
			req:  dto.AcquireLockRequest{EventDate: "2026-09-14", StartTime: "10am", EndTime: "12:00"},
		},
		{
			name: "bad end time",
			req:  dto.AcquireLockRequest{EventDate: "2026-09-14", StartTime: "10:00", EndTime: "noon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := tt.req.Window()

			assert.Error(t, err)
		})
	}
}

func TestAcquireLockRequest_ToModel(t *testing.T) {
	req := dto.AcquireLockRequest{
		VenueID:   "3e0bbcf1-4b47-4a63-96f8-1f0c6ad2f101",
		EventDate: "2026-09-14",
		StartTime: "10:00",
		EndTime:   "12:00",
		SessionID: "session-1",
	}

	date, start, end, err := req.Window()
	assert.NoError(t, err)

	expiresAt := time.Now().Add(15 * time.Minute)
	lock := req.ToModel("user-1", date, start, end, expiresAt)

	assert.NotEmpty(t, lock.ID)
	assert.Equal(t, req.VenueID, lock.VenueID)
	assert.Equal(t, "user-1", lock.OwnerUserID)
	assert.Equal(t, "session-1", lock.SessionID)
	// Omitted lock type falls back to a temporary hold.
	assert.Equal(t, model.LockTypeTemporary, lock.LockType)
	assert.NotNil(t, lock.ExpiresAt)
	assert.Equal(t, expiresAt, *lock.ExpiresAt)
}

func TestLockResponse_FromModel(t *testing.T) {
	expiresAt := time.Date(2026, 9, 14, 10, 15, 0, 0, time.UTC)
	lock := model.VenueLock{
		ID:        "lock-1",
		VenueID:   "venue-1",
		EventDate: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC),
		LockType:  model.LockTypeTemporary,
		SessionID: "session-1",
		ExpiresAt: &expiresAt,
	}

	var res dto.LockResponse
	res.FromModel(lock)

	assert.Equal(t, "lock-1", res.ID)
	assert.Equal(t, "venue-1", res.VenueID)
	assert.Equal(t, model.LockTypeTemporary, res.LockType)
	assert.NotEmpty(t, res.ExpiresAt)
}

func TestLockResponse_FromModel_ConfirmedHasNoExpiry(t *testing.T) {
	lock := model.VenueLock{
		ID:       "lock-1",
		LockType: model.LockTypeConfirmed,
	}

	var res dto.LockResponse
	res.FromModel(lock)

	assert.Empty(t, res.ExpiresAt)
}
