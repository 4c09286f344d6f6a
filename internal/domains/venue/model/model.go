package model

import "atrium/shared/model"

const (
	TableName  = "venues"
	EntityName = "venue"

	FieldID          = "id"
	FieldName        = "name"
	FieldBuilding    = "building"
	FieldDescription = "description"
	FieldCapacity    = "capacity"
	FieldImage       = "image"
	FieldActive      = "active"
)

// Venue is a physical campus space that events can be booked into.
type Venue struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Building    string `db:"building"`
	Description string `db:"description"`
	Capacity    int    `db:"capacity"`
	Image       string `db:"image"`
	Active      bool   `db:"active"`
	model.Metadata
}
