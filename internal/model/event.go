package model

import "time"

// EventStatus represents the visibility of an event.
type EventStatus string

const (
	StatusPublished EventStatus = "published"
	StatusDraft     EventStatus = "draft"
)

// IsValid checks if the status is a known value.
func (s EventStatus) IsValid() bool {
	return s == StatusPublished || s == StatusDraft
}

// Event represents an event owned by a user.
// OwnerID is bound from the authenticated caller at creation and never
// changes afterwards.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Location    string      `json:"location"`
	Capacity    int         `json:"capacity"`
	OwnerID     string      `json:"owner_id"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsPublished returns true if the event appears in the public listing.
func (e *Event) IsPublished() bool {
	return e.Status == StatusPublished
}

// PublicEvent is an event joined with its organizer's email for the
// public listing. The join is explicit at the service layer.
type PublicEvent struct {
	Event
	OrganizerEmail string `json:"organizer_email,omitempty"`
}

// EventPatch carries a partial update. Nil fields are left unchanged.
// OwnerID is deliberately absent: ownership never changes.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
	Capacity    *int
	Status      *EventStatus
}
