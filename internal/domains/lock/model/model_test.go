package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atrium/internal/domains/lock/model"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.September, 14, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		s1   time.Time
		e1   time.Time
		s2   time.Time
		e2   time.Time
		want bool
	}{
		{
			name: "identical intervals",
			s1:   at(10, 0), e1: at(12, 0),
			s2: at(10, 0), e2: at(12, 0),
			want: true,
		},
		{
			name: "partial overlap at the end",
			s1:   at(10, 0), e1: at(12, 0),
			s2: at(11, 0), e2: at(13, 0),
			want: true,
		},
		{
			name: "partial overlap at the start",
			s1:   at(11, 0), e1: at(13, 0),
			s2: at(10, 0), e2: at(12, 0),
			want: true,
		},
		{
			name: "second contained in first",
			s1:   at(9, 0), e1: at(17, 0),
			s2: at(11, 0), e2: at(12, 0),
			want: true,
		},
		{
			name: "first contained in second",
			s1:   at(11, 0), e1: at(12, 0),
			s2: at(9, 0), e2: at(17, 0),
			want: true,
		},
		{
			name: "adjacent intervals do not overlap",
			s1:   at(10, 0), e1: at(12, 0),
			s2: at(12, 0), e2: at(14, 0),
			want: false,
		},
		{
			name: "adjacent intervals reversed",
			s1:   at(12, 0), e1: at(14, 0),
			s2: at(10, 0), e2: at(12, 0),
			want: false,
		},
		{
			name: "disjoint intervals",
			s1:   at(8, 0), e1: at(9, 0),
			s2: at(15, 0), e2: at(16, 0),
			want: false,
		},
		{
			name: "one minute of overlap",
			s1:   at(10, 0), e1: at(12, 1),
			s2: at(12, 0), e2: at(14, 0),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// The predicate is symmetric.
			assert.Equal(t, tt.want, model.Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestVenueLock_Expired(t *testing.T) {
	now := at(12, 0)
	past := at(11, 0)
	future := at(13, 0)

	tests := []struct {
		name string
		lock model.VenueLock
		want bool
	}{
		{
			name: "temporary hold with future expiry is live",
			lock: model.VenueLock{LockType: model.LockTypeTemporary, ExpiresAt: &future},
			want: false,
		},
		{
			name: "temporary hold past expiry is expired",
			lock: model.VenueLock{LockType: model.LockTypeTemporary, ExpiresAt: &past},
			want: true,
		},
		{
			name: "expiry exactly now counts as expired",
			lock: model.VenueLock{LockType: model.LockTypeTemporary, ExpiresAt: &now},
			want: true,
		},
		{
			name: "draft hold past expiry is expired",
			lock: model.VenueLock{LockType: model.LockTypeDraft, ExpiresAt: &past},
			want: true,
		},
		{
			name: "confirmed lock never expires",
			lock: model.VenueLock{LockType: model.LockTypeConfirmed},
			want: false,
		},
		{
			name: "hold with no expiry is treated as expired",
			lock: model.VenueLock{LockType: model.LockTypeTemporary},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.lock.Expired(now))
			assert.Equal(t, !tt.want, tt.lock.Active(now))
		})
	}
}

func TestVenueLock_OwnedBy(t *testing.T) {
	lock := model.VenueLock{OwnerUserID: "user-1"}

	assert.True(t, lock.OwnedBy("user-1"))
	assert.False(t, lock.OwnedBy("user-2"))
	assert.False(t, lock.OwnedBy(""))
}
