package domain

import "time"

type Property struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	PricePerNight float64   `json:"pricePerNight"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	MaxGuests     int       `json:"maxGuests"`
	Rating        float64   `json:"rating"`
	HostID        string    `json:"hostId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreatePropertyRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	PricePerNight float64 `json:"pricePerNight"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	MaxGuests     int     `json:"maxGuests"`
	Rating        float64 `json:"rating"`
	HostID        string  `json:"hostId"`
}

func (r *CreatePropertyRequest) Validate() error {
	if r.Title == "" || r.HostID == "" {
		return ValidationError("title and hostId are required")
	}
	if r.Bedrooms < 0 || r.Bathrooms < 0 || r.MaxGuests < 0 {
		return ValidationError("bedrooms, bathrooms and maxGuests must not be negative")
	}
	return nil
}

type PropertyPatch struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Location      *string  `json:"location,omitempty"`
	PricePerNight *float64 `json:"pricePerNight,omitempty"`
	Bedrooms      *int     `json:"bedrooms,omitempty"`
	Bathrooms     *int     `json:"bathrooms,omitempty"`
	MaxGuests     *int     `json:"maxGuests,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
}

func (p *PropertyPatch) Validate() error {
	if p.Bedrooms != nil && *p.Bedrooms < 0 {
		return ValidationError("bedrooms must not be negative")
	}
	if p.Bathrooms != nil && *p.Bathrooms < 0 {
		return ValidationError("bathrooms must not be negative")
	}
	if p.MaxGuests != nil && *p.MaxGuests < 0 {
		return ValidationError("maxGuests must not be negative")
	}
	return nil
}

// PropertyFilter narrows property listings.
type PropertyFilter struct {
	Location      string
	PricePerNight *float64
}
