package dto

import (
	"mime/multipart"

	"atrium/internal/domains/venue/model"
	"atrium/shared"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"

	"github.com/google/uuid"
)

type CreateVenueRequest struct {
	Name        string                `json:"name"        validate:"required,max=100"`
	Building    string                `json:"building"    validate:"omitempty,max=100"`
	Description string                `json:"description" validate:"omitempty,max=500"`
	Capacity    int                   `json:"capacity"    validate:"omitempty,min=0"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"active"      validate:"omitempty"`
}

func (c *CreateVenueRequest) ToModel(user string, imageURL string) model.Venue {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Venue{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Building:    c.Building,
		Description: c.Description,
		Capacity:    c.Capacity,
		Image:       imageURL,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateVenueRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Building    string                `db:"building"    json:"building"    validate:"omitempty,max=100"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=500"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=0"`
	Image       *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `db:"active"      json:"active"      validate:"omitempty"`
}

type VenueResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Building    string `json:"building"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	Image       string `json:"image"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *VenueResponse) FromModel(model model.Venue) {
	r.ID = model.ID
	r.Name = model.Name
	r.Building = model.Building
	r.Description = model.Description
	r.Capacity = model.Capacity
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetVenuesResponse struct {
	Venues    []VenueResponse `json:"venues"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVenuesResponse) FromModels(models []model.Venue, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Venues = make([]VenueResponse, len(models))
	for i, mod := range models {
		r.Venues[i].FromModel(mod)
	}
}
