package dto

import (
	"github.com/google/uuid"

	"atrium/internal/domains/event/model"
	"atrium/shared"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

type CreateEventRequest struct {
	Title          string `json:"title"           validate:"required,max=150"`
	Description    string `json:"description"    validate:"omitempty,max=2000"`
	Category       string `json:"category"        validate:"omitempty,max=50"`
	ExpectedGuests int    `json:"expected_guests" validate:"omitempty,gte=0"`
}

func (c *CreateEventRequest) ToModel(user string) model.Event {
	return model.Event{
		ID:              uuid.NewString(),
		Title:           c.Title,
		Description:     c.Description,
		Category:        c.Category,
		OrganizerUserID: user,
		ExpectedGuests:  c.ExpectedGuests,
		Status:          model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateEventRequest struct {
	Title          string `db:"title"           json:"title"           validate:"omitempty,max=150"`
	Description    string `db:"description"     json:"description"     validate:"omitempty,max=2000"`
	Category       string `db:"category"        json:"category"        validate:"omitempty,max=50"`
	ExpectedGuests *int   `db:"expected_guests" json:"expected_guests" validate:"omitempty,gte=0"`
}

// ReviewEventRequest is the admin approval action.
type ReviewEventRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type EventResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	OrganizerUserID string `json:"organizer_user_id"`
	ExpectedGuests  int    `json:"expected_guests"`
	Status          string `json:"status"`
	gDto.Metadata
}

func (r *EventResponse) FromModel(model model.Event) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Category = model.Category
	r.OrganizerUserID = model.OrganizerUserID
	r.ExpectedGuests = model.ExpectedGuests
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetEventsResponse struct {
	Events    []EventResponse `json:"events"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEventsResponse) FromModels(models []model.Event, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Events = make([]EventResponse, len(models))
	for i, mod := range models {
		r.Events[i].FromModel(mod)
	}
}
