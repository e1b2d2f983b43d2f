package domain

import "time"

// DefaultBookingStatus is applied when a creation payload omits the status.
const DefaultBookingStatus = "confirmed"

type Booking struct {
	ID             string     `json:"id"`
	CheckIn        *time.Time `json:"checkIn,omitempty"`
	CheckOut       *time.Time `json:"checkOut,omitempty"`
	NumberOfGuests int        `json:"numberOfGuests"`
	TotalPrice     float64    `json:"totalPrice"`
	BookingStatus  string     `json:"bookingStatus"`
	UserID         string     `json:"userId"`
	PropertyID     string     `json:"propertyId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateBookingRequest carries the inbound creation payload. Dates arrive as
// strings so that parse failures can be reported distinctly from ordering
// failures.
type CreateBookingRequest struct {
	CheckIn        string  `json:"checkIn,omitempty"`
	CheckOut       string  `json:"checkOut,omitempty"`
	NumberOfGuests int     `json:"numberOfGuests,omitempty"`
	TotalPrice     float64 `json:"totalPrice,omitempty"`
	BookingStatus  string  `json:"bookingStatus,omitempty"`
	UserID         string  `json:"userId"`
	PropertyID     string  `json:"propertyId"`
}

// BookingPatch is the allow-list of booking fields mutable through the update
// route; the entity references are fixed at creation.
type BookingPatch struct {
	CheckIn        *string  `json:"checkIn,omitempty"`
	CheckOut       *string  `json:"checkOut,omitempty"`
	NumberOfGuests *int     `json:"numberOfGuests,omitempty"`
	TotalPrice     *float64 `json:"totalPrice,omitempty"`
	BookingStatus  *string  `json:"bookingStatus,omitempty"`
}

// NewBooking is the validated, persistence-ready form of a creation request.
type NewBooking struct {
	CheckIn        *time.Time
	CheckOut       *time.Time
	NumberOfGuests int
	TotalPrice     float64
	BookingStatus  string
	UserID         string
	PropertyID     string
}

// BookingUpdate is the validated form of a patch; nil fields pass through
// unchanged.
type BookingUpdate struct {
	CheckIn        *time.Time
	CheckOut       *time.Time
	NumberOfGuests *int
	TotalPrice     *float64
	BookingStatus  *string
}
