package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/eventdeck/eventdeck/internal/model"
	"github.com/eventdeck/eventdeck/internal/repository"
)

// fakeUserStore is an in-memory UserStore mirroring the repository's
// observable behavior, including case-insensitive email uniqueness.
type fakeUserStore struct {
	mu    sync.Mutex
	users []*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrEmailExists
		}
	}
	clone := *user
	f.users = append(f.users, &clone)
	return nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == id {
			clone := *user
			clone.PasswordHash = ""
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// fakeEventStore is an in-memory EventStore. The slice preserves
// insertion order, which backs the listing tie-break. Owner-scoped
// mutations fail identically for missing and non-owned rows, exactly
// like the conditional SQL they stand in for.
type fakeEventStore struct {
	mu     sync.Mutex
	events []*model.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{}
}

func (f *fakeEventStore) CreateEvent(ctx context.Context, event *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *event
	f.events = append(f.events, &clone)
	return nil
}

func (f *fakeEventStore) ListPublishedEvents(ctx context.Context) ([]*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	published := make([]*model.Event, 0)
	for _, event := range f.events {
		if event.Status == model.StatusPublished {
			clone := *event
			published = append(published, &clone)
		}
	}
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].Date.Before(published[j].Date)
	})
	return published, nil
}

func (f *fakeEventStore) ListEventsByOwner(ctx context.Context, ownerID string) ([]*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owned := make([]*model.Event, 0)
	for _, event := range f.events {
		if event.OwnerID == ownerID {
			clone := *event
			owned = append(owned, &clone)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

func (f *fakeEventStore) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, event := range f.events {
		if event.ID == id {
			clone := *event
			return &clone, nil
		}
	}
	return nil, repository.ErrEventNotFound
}

func (f *fakeEventStore) UpdateEventOwned(ctx context.Context, id, ownerID string, patch model.EventPatch) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, event := range f.events {
		if event.ID != id || event.OwnerID != ownerID {
			continue
		}
		if patch.Title != nil {
			event.Title = *patch.Title
		}
		if patch.Description != nil {
			event.Description = *patch.Description
		}
		if patch.Date != nil {
			event.Date = *patch.Date
		}
		if patch.Location != nil {
			event.Location = *patch.Location
		}
		if patch.Capacity != nil {
			event.Capacity = *patch.Capacity
		}
		if patch.Status != nil {
			event.Status = *patch.Status
		}
		event.UpdatedAt = time.Now().UTC()
		clone := *event
		return &clone, nil
	}
	return nil, repository.ErrEventNotFound
}

func (f *fakeEventStore) DeleteEventOwned(ctx context.Context, id, ownerID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, event := range f.events {
		if event.ID == id && event.OwnerID == ownerID {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeListingCache records cache traffic for cache-aside tests.
type fakeListingCache struct {
	mu          sync.Mutex
	listing     []*model.PublicEvent
	sets        int
	invalidates int
}

func (f *fakeListingCache) GetPublicEvents(ctx context.Context) ([]*model.PublicEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listing == nil {
		return nil, repository.ErrEventNotFound // any error reads as a miss
	}
	return f.listing, nil
}

func (f *fakeListingCache) SetPublicEvents(ctx context.Context, events []*model.PublicEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listing = events
	f.sets++
	return nil
}

func (f *fakeListingCache) InvalidatePublicEvents(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listing = nil
	f.invalidates++
	return nil
}
