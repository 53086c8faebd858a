package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/eventdeck/eventdeck/internal/metrics"
	"github.com/eventdeck/eventdeck/internal/model"
	"github.com/eventdeck/eventdeck/internal/repository"
)

// Event service errors.
var (
	ErrTitleRequired   = errors.New("title is required")
	ErrDateRequired    = errors.New("date is required")
	ErrInvalidCapacity = errors.New("capacity must not be negative")
	ErrInvalidStatus   = errors.New("invalid event status")

	// ErrEventNotFound is returned both when the event does not exist
	// and when it is owned by someone else. Collapsing the two outcomes
	// keeps non-owners from probing which ids exist.
	ErrEventNotFound = errors.New("event not found")
)

// EventStore is the persistence surface EventService depends on.
type EventStore interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	ListPublishedEvents(ctx context.Context) ([]*model.Event, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]*model.Event, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	UpdateEventOwned(ctx context.Context, id, ownerID string, patch model.EventPatch) (*model.Event, error)
	DeleteEventOwned(ctx context.Context, id, ownerID string) (bool, error)
}

// ListingCache caches the public listing. May be nil (cache disabled).
type ListingCache interface {
	GetPublicEvents(ctx context.Context) ([]*model.PublicEvent, error)
	SetPublicEvents(ctx context.Context, events []*model.PublicEvent) error
	InvalidatePublicEvents(ctx context.Context) error
}

// EventService orchestrates event store operations under the ownership
// policy. Every mutation is a single owner-conditional statement.
type EventService struct {
	events  EventStore
	users   UserStore
	cache   ListingCache
	metrics metrics.Recorder
}

// NewEventService creates a new EventService. cache may be nil.
func NewEventService(events EventStore, users UserStore, cache ListingCache, recorder metrics.Recorder) *EventService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &EventService{
		events:  events,
		users:   users,
		cache:   cache,
		metrics: recorder,
	}
}

// CreateEventInput defines input for creating an event.
// There is deliberately no owner field: the owner is always the caller.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Capacity    int
	Status      model.EventStatus
}

// CreateEvent creates an event owned by callerID.
// Status defaults to published when unspecified.
func (s *EventService) CreateEvent(ctx context.Context, callerID string, input CreateEventInput) (*model.Event, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Date.IsZero() {
		return nil, ErrDateRequired
	}
	if input.Capacity < 0 {
		return nil, ErrInvalidCapacity
	}

	status := input.Status
	if status == "" {
		status = model.StatusPublished
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	now := time.Now().UTC()
	event := &model.Event{
		ID:          ulid.Make().String(),
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Location:    input.Location,
		Capacity:    input.Capacity,
		OwnerID:     callerID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.events.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.metrics.IncEventCreated()
	s.invalidateListing(ctx)

	return event, nil
}

// ListPublicEvents returns all published events with their organizer's
// email, date ascending. Served cache-aside when a cache is configured;
// cache failures degrade to a database read.
func (s *EventService) ListPublicEvents(ctx context.Context) ([]*model.PublicEvent, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetPublicEvents(ctx); err == nil {
			s.metrics.IncListingCacheHit()
			return cached, nil
		}
		s.metrics.IncListingCacheMiss()
	}

	events, err := s.events.ListPublishedEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published events: %w", err)
	}

	listing, err := s.joinOrganizers(ctx, events)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Best effort; the TTL bounds staleness if this fails.
		_ = s.cache.SetPublicEvents(ctx, listing)
	}

	return listing, nil
}

// ListOwnEvents returns every event owned by callerID regardless of
// status, newest first.
func (s *EventService) ListOwnEvents(ctx context.Context, callerID string) ([]*model.Event, error) {
	events, err := s.events.ListEventsByOwner(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own events: %w", err)
	}
	return events, nil
}

// GetEvent fetches a single event by id with its organizer's email.
// Any caller may read any event by id, whatever its status.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.PublicEvent, error) {
	event, err := s.events.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	joined, err := s.joinOrganizers(ctx, []*model.Event{event})
	if err != nil {
		return nil, err
	}
	return joined[0], nil
}

// UpdateEventInput defines a partial update. Nil fields are unchanged.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
	Capacity    *int
	Status      *model.EventStatus
}

// UpdateEvent applies a partial update to an event owned by callerID.
// Returns ErrEventNotFound for both a missing event and one owned by
// another user.
func (s *EventService) UpdateEvent(ctx context.Context, id, callerID string, input UpdateEventInput) (*model.Event, error) {
	if input.Title != nil && *input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Capacity != nil && *input.Capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	patch := model.EventPatch{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Location:    input.Location,
		Capacity:    input.Capacity,
		Status:      input.Status,
	}

	event, err := s.events.UpdateEventOwned(ctx, id, callerID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.metrics.IncEventUpdated()
	s.invalidateListing(ctx)

	return event, nil
}

// DeleteEvent removes an event owned by callerID.
// Returns ErrEventNotFound for a missing event, an already-deleted one
// or one owned by another user; deleting twice is not an error beyond
// the not-found outcome.
func (s *EventService) DeleteEvent(ctx context.Context, id, callerID string) error {
	deleted, err := s.events.DeleteEventOwned(ctx, id, callerID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !deleted {
		return ErrEventNotFound
	}

	s.metrics.IncEventDeleted()
	s.invalidateListing(ctx)

	return nil
}

// joinOrganizers resolves each event's owner email with one lookup per
// distinct owner. The join is explicit here rather than hidden in the
// storage layer.
func (s *EventService) joinOrganizers(ctx context.Context, events []*model.Event) ([]*model.PublicEvent, error) {
	emails := make(map[string]string)
	listing := make([]*model.PublicEvent, 0, len(events))

	for _, event := range events {
		email, ok := emails[event.OwnerID]
		if !ok {
			owner, err := s.users.GetUserByID(ctx, event.OwnerID)
			if err != nil {
				if !errors.Is(err, repository.ErrUserNotFound) {
					return nil, fmt.Errorf("failed to resolve organizer: %w", err)
				}
				// Owner row gone; list the event without an email.
			} else {
				email = owner.Email
			}
			emails[event.OwnerID] = email
		}
		listing = append(listing, &model.PublicEvent{Event: *event, OrganizerEmail: email})
	}

	return listing, nil
}

// invalidateListing drops the cached public listing after a mutation.
func (s *EventService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidatePublicEvents(ctx)
}
