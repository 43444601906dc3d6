package venue

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
)

// CreateVenueRequest for POST /venues
type CreateVenueRequest struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description" validate:"required,max=5000"`
	Location    string           `json:"location" validate:"required,max=500"`
	Capacity    int              `json:"capacity" validate:"required,gte=1"`
	PricePerDay *decimal.Decimal `json:"pricePerDay" validate:"required"`
	Amenities   []string         `json:"amenities" validate:"omitempty,max=50,dive,max=100"`
	Images      []string         `json:"images" validate:"omitempty,max=20,dive,url"`
	Owner       string           `json:"owner" validate:"omitempty,max=200"`
}

// UpdateVenueRequest for PUT /venues/{id}; nil fields are left unchanged
type UpdateVenueRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=5000"`
	Location    *string          `json:"location" validate:"omitempty,max=500"`
	Capacity    *int             `json:"capacity"`
	PricePerDay *decimal.Decimal `json:"pricePerDay"`
	Amenities   []string         `json:"amenities" validate:"omitempty,max=50,dive,max=100"`
	Images      []string         `json:"images" validate:"omitempty,max=20,dive,url"`
	IsActive    *bool            `json:"isActive"`
}

// BlockDatesRequest for POST /venues/{id}/block-dates
type BlockDatesRequest struct {
	Dates  []string `json:"dates" validate:"required,min=1,dive,calendar_date"`
	Reason string   `json:"reason" validate:"omitempty,max=500"`
}

// UnblockDatesRequest for DELETE /venues/{id}/unblock-dates
type UnblockDatesRequest struct {
	Dates []string `json:"dates" validate:"required,min=1,dive,calendar_date"`
}

// BlockedDateResponse is one entry of unavailableDates
type BlockedDateResponse struct {
	Date   caldate.Date `json:"date"`
	Reason string       `json:"reason"`
}

// VenueResponse represents a venue in API responses
type VenueResponse struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Description      string                `json:"description"`
	Location         string                `json:"location"`
	Capacity         int                   `json:"capacity"`
	PricePerDay      decimal.Decimal       `json:"pricePerDay"`
	Amenities        []string              `json:"amenities"`
	Images           []string              `json:"images"`
	IsActive         bool                  `json:"isActive"`
	Lifecycle        Lifecycle             `json:"lifecycle"`
	Owner            string                `json:"owner"`
	UnavailableDates []BlockedDateResponse `json:"unavailableDates"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// ResponseFromEntity converts a venue to its API shape
func ResponseFromEntity(v *Venue) *VenueResponse {
	resp := &VenueResponse{
		ID:               v.ID.String(),
		Name:             v.Name,
		Description:      v.Description,
		Location:         v.Location,
		Capacity:         v.Capacity,
		PricePerDay:      v.PricePerDay,
		Amenities:        nonNil(v.Amenities),
		Images:           nonNil(v.Images),
		IsActive:         v.IsActive,
		Lifecycle:        v.Lifecycle(),
		Owner:            v.Owner,
		UnavailableDates: make([]BlockedDateResponse, 0, len(v.UnavailableDates)),
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
	for _, b := range v.UnavailableDates {
		resp.UnavailableDates = append(resp.UnavailableDates, BlockedDateResponse{Date: b.Date, Reason: b.Reason})
	}
	return resp
}

// ResponsesFromEntities converts a list of venues
func ResponsesFromEntities(venues []*Venue) []*VenueResponse {
	out := make([]*VenueResponse, 0, len(venues))
	for _, v := range venues {
		out = append(out, ResponseFromEntity(v))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
