package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stayfinder/stayfinder-api/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.WithContext(ctx).Debug("Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Noop is a Publisher that drops everything. Used in tests and when no event
// bus is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, interface{}) error { return nil }
func (Noop) Close() error                                       { return nil }

// Event subjects
const (
	BookingCreated  = "booking.created"
	BookingUpdated  = "booking.updated"
	BookingDeleted  = "booking.deleted"
	PropertyDeleted = "property.deleted"
	UserDeleted     = "user.deleted"
)

type BookingCreatedEvent struct {
	BookingID  string     `json:"booking_id"`
	UserID     string     `json:"user_id"`
	PropertyID string     `json:"property_id"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

type BookingUpdatedEvent struct {
	BookingID string    `json:"booking_id"`
	Changes   []string  `json:"changes"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CascadeDeletedEvent struct {
	ParentID        string    `json:"parent_id"`
	BookingsRemoved int64     `json:"bookings_removed"`
	ReviewsRemoved  int64     `json:"reviews_removed"`
	DeletedAt       time.Time `json:"deleted_at"`
}
