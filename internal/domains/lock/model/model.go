package model

import (
	"time"

	"atrium/shared/model"
)

const (
	TableName  = "venue_locks"
	EntityName = "lock"

	FieldID            = "id"
	FieldVenueID       = "venue_id"
	FieldEventDate     = "event_date"
	FieldStartTime     = "start_time"
	FieldEndTime       = "end_time"
	FieldLockType      = "lock_type"
	FieldOwnerUserID   = "owner_user_id"
	FieldSessionID     = "session_id"
	FieldExpiresAt     = "expires_at"
	FieldLinkedEventID = "linked_event_id"
)

const (
	LockTypeTemporary = "temporary"
	LockTypeDraft     = "draft"
	LockTypeConfirmed = "confirmed"
)

// ActiveCondition is the SQL counterpart of VenueLock.Active: a row still
// occupies its interval when it is confirmed or its expiry lies in the future.
// Every query that decides availability must use this exact condition.
const ActiveCondition = "(lock_type = 'confirmed' OR expires_at > now())"

// VenueLock is a claim on a venue for the half-open interval
// [StartTime, EndTime). Temporary and draft locks expire at ExpiresAt;
// confirmed locks carry a linked event and no expiry.
type VenueLock struct {
	ID            string     `db:"id"`
	VenueID       string     `db:"venue_id"`
	EventDate     time.Time  `db:"event_date"`
	StartTime     time.Time  `db:"start_time"`
	EndTime       time.Time  `db:"end_time"`
	LockType      string     `db:"lock_type"`
	OwnerUserID   string     `db:"owner_user_id"`
	SessionID     string     `db:"session_id"`
	ExpiresAt     *time.Time `db:"expires_at"`
	LinkedEventID *string    `db:"linked_event_id"`
	model.Metadata
}

// Overlaps reports whether the half-open intervals [s1, e1) and [s2, e2)
// share at least one instant. Adjacent intervals do not overlap. This is the
// single overlap predicate for the whole engine; the database enforces the
// same rule through the tstzrange exclusion constraint on venue_locks.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Expired reports whether the lock no longer occupies its interval at the
// given instant. Confirmed locks never expire.
func (l *VenueLock) Expired(at time.Time) bool {
	if l.LockType == LockTypeConfirmed {
		return false
	}

	return l.ExpiresAt == nil || !l.ExpiresAt.After(at)
}

// Active is the in-memory twin of ActiveCondition.
func (l *VenueLock) Active(at time.Time) bool {
	return !l.Expired(at)
}

// OwnedBy reports whether the lock belongs to the given user.
func (l *VenueLock) OwnedBy(userID string) bool {
	return l.OwnerUserID == userID
}
