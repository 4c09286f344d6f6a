package dto

import (
	"time"

	"github.com/google/uuid"

	"atrium/internal/domains/lock/model"
	"atrium/shared/constant"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type AcquireLockRequest struct {
	VenueID         string `json:"venue_id"         validate:"required,uuid4"`
	EventDate       string `json:"event_date"       validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time"       validate:"required,datetime=15:04"`
	EndTime         string `json:"end_time"         validate:"required,datetime=15:04"`
	LockType        string `json:"lock_type"        validate:"omitempty,oneof=temporary draft"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=1,lte=1440"`
	SessionID       string `json:"session_id"       validate:"required,max=64"`
}

// Window resolves the request into absolute instants in the application
// timezone. The interval is half-open: [start, end).
func (r *AcquireLockRequest) Window() (date, start, end time.Time, err error) {
	date, err = timezone.Parse(dateLayout, r.EventDate)
	if err != nil {
		return date, start, end, err
	}

	startClock, err := time.Parse(timeLayout, r.StartTime)
	if err != nil {
		return date, start, end, err
	}

	endClock, err := time.Parse(timeLayout, r.EndTime)
	if err != nil {
		return date, start, end, err
	}

	start = date.Add(time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute)
	end = date.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute)

	return date, start, end, nil
}

func (r *AcquireLockRequest) ToModel(userID string, date, start, end time.Time, expiresAt time.Time) model.VenueLock {
	lockType := r.LockType
	if lockType == "" {
		lockType = model.LockTypeTemporary
	}

	return model.VenueLock{
		ID:          uuid.NewString(),
		VenueID:     r.VenueID,
		EventDate:   date,
		StartTime:   start,
		EndTime:     end,
		LockType:    lockType,
		OwnerUserID: userID,
		SessionID:   r.SessionID,
		ExpiresAt:   &expiresAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type ExtendLockRequest struct {
	AdditionalMinutes int    `json:"additional_minutes" validate:"required,gte=1,lte=1440"`
	SessionID         string `json:"session_id"         validate:"omitempty,max=64"`
}

type ConfirmLockRequest struct {
	EventID string `json:"event_id" validate:"required,uuid4"`
}

type LockResponse struct {
	ID            string `json:"id"`
	VenueID       string `json:"venue_id"`
	EventDate     string `json:"event_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	LockType      string `json:"lock_type"`
	SessionID     string `json:"session_id"`
	ExpiresAt     string `json:"expires_at,omitempty"`
	LinkedEventID string `json:"linked_event_id,omitempty"`
}

func (r *LockResponse) FromModel(m model.VenueLock) {
	r.ID = m.ID
	r.VenueID = m.VenueID
	r.EventDate = timezone.Format(m.EventDate, dateLayout)
	r.StartTime = timezone.Format(m.StartTime, timeLayout)
	r.EndTime = timezone.Format(m.EndTime, timeLayout)
	r.LockType = m.LockType
	r.SessionID = m.SessionID

	if m.ExpiresAt != nil {
		r.ExpiresAt = timezone.Format(*m.ExpiresAt, constant.DateFormat)
	}

	if m.LinkedEventID != nil {
		r.LinkedEventID = *m.LinkedEventID
	}
}

type GetLocksResponse struct {
	Locks []LockResponse `json:"locks"`
}

func (r *GetLocksResponse) FromModels(models []model.VenueLock) {
	r.Locks = make([]LockResponse, len(models))
	for i, m := range models {
		r.Locks[i].FromModel(m)
	}
}

type AvailabilityRequest struct {
	VenueID       string `json:"venue_id"        validate:"required,uuid4"`
	EventDate     string `json:"event_date"      validate:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time"      validate:"required,datetime=15:04"`
	EndTime       string `json:"end_time"        validate:"required,datetime=15:04"`
	ExcludeLockID string `json:"exclude_lock_id" validate:"omitempty,uuid4"`
}

// Window mirrors AcquireLockRequest.Window so availability and acquisition
// resolve intervals identically.
func (r *AvailabilityRequest) Window() (date, start, end time.Time, err error) {
	acquire := AcquireLockRequest{
		EventDate: r.EventDate,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}

	return acquire.Window()
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
