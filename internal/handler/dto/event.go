package dto

import (
	"time"

	"github.com/eventdeck/eventdeck/internal/model"
)

// CreateEventRequest represents the request body for creating an event.
// Any owner field a client sends is simply not here to be decoded.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location,omitempty"`
	Capacity    int       `json:"capacity,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// UpdateEventRequest represents a partial update.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Date           time.Time `json:"date"`
	Location       string    `json:"location"`
	Capacity       int       `json:"capacity"`
	OwnerID        string    `json:"owner_id"`
	Status         string    `json:"status"`
	OrganizerEmail string    `json:"organizer_email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToEventResponse converts an event to its response form.
func ToEventResponse(e *model.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		Capacity:    e.Capacity,
		OwnerID:     e.OwnerID,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToPublicEventResponse converts a joined event to its response form.
func ToPublicEventResponse(e *model.PublicEvent) EventResponse {
	resp := ToEventResponse(&e.Event)
	resp.OrganizerEmail = e.OrganizerEmail
	return resp
}

// ToEventListResponse converts a slice of events.
func ToEventListResponse(events []*model.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, ToEventResponse(e))
	}
	return out
}

// ToPublicEventListResponse converts a slice of joined events.
func ToPublicEventListResponse(events []*model.PublicEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, ToPublicEventResponse(e))
	}
	return out
}
