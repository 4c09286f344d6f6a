package model

import (
	"atrium/shared/model"
)

const (
	TableName  = "events"
	EntityName = "event"

	FieldID              = "id"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldCategory        = "category"
	FieldOrganizerUserID = "organizer_user_id"
	FieldExpectedGuests  = "expected_guests"
	FieldStatus          = "status"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Event is an organizer submission. It starts as pending and moves through
// the admin approval workflow; a confirmed venue lock points back at it.
type Event struct {
	ID              string `db:"id"`
	Title           string `db:"title"`
	Description     string `db:"description"`
	Category        string `db:"category"`
	OrganizerUserID string `db:"organizer_user_id"`
	ExpectedGuests  int    `db:"expected_guests"`
	Status          string `db:"status"`
	model.Metadata
}
