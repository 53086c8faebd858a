package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventdeck/eventdeck/internal/model"
)

func newEventService(cache ListingCache) (*EventService, *fakeEventStore, *fakeUserStore) {
	events := newFakeEventStore()
	users := newFakeUserStore()
	return NewEventService(events, users, cache, nil), events, users
}

func seedUser(t *testing.T, users *fakeUserStore, id, email string) {
	t.Helper()
	err := users.CreateUser(context.Background(), &model.User{
		ID:        id,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestCreateEventBindsOwnerToCaller(t *testing.T) {
	svc, _, users := newEventService(nil)
	seedUser(t, users, "user-a", "a@example.com")

	event, err := svc.CreateEvent(context.Background(), "user-a", CreateEventInput{
		Title: "Go Meetup",
		Date:  time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	if event.OwnerID != "user-a" {
		t.Errorf("OwnerID = %q, want user-a", event.OwnerID)
	}
	if event.Status != model.StatusPublished {
		t.Errorf("Status = %q, want published default", event.Status)
	}
	if event.ID == "" {
		t.Error("event has no id")
	}
}

func TestCreateEventValidation(t *testing.T) {
	svc, _, _ := newEventService(nil)
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   CreateEventInput
		wantErr error
	}{
		{"missing_title", CreateEventInput{Date: date}, ErrTitleRequired},
		{"missing_date", CreateEventInput{Title: "Go Meetup"}, ErrDateRequired},
		{"negative_capacity", CreateEventInput{Title: "Go Meetup", Date: date, Capacity: -1}, ErrInvalidCapacity},
		{"unknown_status", CreateEventInput{Title: "Go Meetup", Date: date, Status: "archived"}, ErrInvalidStatus},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := svc.CreateEvent(ctx, "user-a", test.input); !errors.Is(err, test.wantErr) {
				t.Errorf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestListPublicEventsFiltersAndSorts(t *testing.T) {
	svc, _, users := newEventService(nil)
	ctx := context.Background()
	seedUser(t, users, "user-a", "a@example.com")

	later := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.CreateEvent(ctx, "user-a", CreateEventInput{Title: "Second", Date: later}); err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}
	if _, err := svc.CreateEvent(ctx, "user-a", CreateEventInput{Title: "First", Date: earlier}); err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}
	if _, err := svc.CreateEvent(ctx, "user-a", CreateEventInput{Title: "Hidden", Date: earlier, Status: model.StatusDraft}); err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	listing, err := svc.ListPublicEvents(ctx)
	if err != nil {
		t.Fatalf("ListPublicEvents() error: %v", err)
	}

	if len(listing) != 2 {
		t.Fatalf("got %d events, want 2 (draft must be hidden)", len(listing))
	}
	if listing[0].Title != "First" || listing[1].Title != "Second" {
		t.Errorf("order = [%s, %s], want [First, Second]", listing[0].Title, listing[1].Title)
	}
	if listing[0].OrganizerEmail != "a@example.com" {
		t.Errorf("OrganizerEmail = %q", listing[0].OrganizerEmail)
	}
}

func TestListOwnEventsIncludesDrafts(t *testing.T) {
	svc, _, users := newEventService(nil)
	ctx := context.Background()
	seedUser(t, users, "user-a", "a@example.com")
	seedUser(t, users, "user-b", "b@example.com")
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.CreateEvent(ctx, "user-a", CreateEventInput{Title: "Mine Draft", Date: date, Status: model.StatusDraft}); err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}
	if _, err := svc.CreateEvent(ctx, "user-b", CreateEventInput{Title: "Not Mine", Date: date}); err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	own, err := svc.ListOwnEvents(ctx, "user-a")
	if err != nil {
		t.Fatalf("ListOwnEvents() error: %v", err)
	}
	if len(own) != 1 || own[0].Title != "Mine Draft" {
		t.Fatalf("own listing = %+v, want only the caller's draft", own)
	}
}

func TestGetEventPubliclyReadable(t *testing.T) {
	svc, _, users := newEventService(nil)
	ctx := context.Background()
	seedUser(t, users, "user-a", "a@example.com")

	created, err := svc.CreateEvent(ctx, "user-a", CreateEventInput{
		Title:  "Private Planning",
		Date:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status: model.StatusDraft,
	})
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	// No caller identity involved: drafts are readable by id.
	got, err := svc.GetEvent(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetEvent() error: %v", err)
	}
	if got.Title != "Private Planning" {
		t.Errorf("Title = %q", got.Title)
	}

	if _, err := svc.GetEvent(ctx, "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestUpdateEventNonOwnerIndistinguishableFromMissing(t *testing.T) {
	svc, _, users := newEventService(nil)
	ctx := context.Background()
	seedUser(t, users, "user-a", "a@example.com")

	created, err := svc.CreateEvent(ctx, "user-a", CreateEventInput{
		Title: "Owned by A",
		Date:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	title := "Hijacked"
	patch := UpdateEventInput{Title: &title}

	_, nonOwnerErr := svc.UpdateEvent(ctx, created.ID, "user-b", patch)
	_, missingErr := svc.UpdateEvent(ctx, "no-such-event", "user-b", patch)

	if !errors.Is(nonOwnerErr, ErrEventNotFound) {
		t.Errorf("non-owner update: expected ErrEventNotFound, got %v", nonOwnerErr)
	}
	if !errors.Is(missingErr, ErrEventNotFound) {
		t.Errorf("missing update: expected ErrEventNotFound, got %v", missingErr)
	}

	// The event itself must be untouched.
	got, err := svc.GetEvent(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetEvent() error: %v", err)
	}
	if got.Title != "Owned by A" {
		t.Errorf("event was mutated by non-owner: Title = %q", got.Title)
	}
}

func TestUpdateEventPartialMerge(t *testing.T) {
	svc, _, users := newEventService(nil)
	ctx := context.Background()
	seedUser(t, users, "user-a", "a@example.com")

	created, err := svc.CreateEvent(ctx, "user-a", CreateEventInput{
		Title:       "Original",
		Description: "Keep me",
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Location:    "Hall 1",
		Capacity:    50,
	})
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	title := "X"
	updated, err := svc.UpdateEvent(ctx, created.ID, "user-a", UpdateEventInput{Title: &title})
	if err != nil {
		t.Fatalf("UpdateEvent() error: %v", err)
	}

	if updated.Title != "X" {
		t.Errorf("Title = %q, want X", updated.Title)
	}
	if updated.Description != "Keep me" || updated.Location != "Hall 1" || updated.Capacity != 50 {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
	if updated.OwnerID != "user-a" {
		t.Errorf("OwnerID changed to %q", updated.OwnerID)
	}

	got, err := svc.GetEvent(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetEvent() error: %v", err)
	}
	if got.Title != "X" {
		t.Errorf("round-trip Title = %q, want X", got.Title)
	}
}

func TestUpdateEventValidation(t *testing.T) {
	svc, _, users := newEventService(nil)
	ctx := context.Background()
	seedUser(t, users, "user-a", "a@example.com")

	created, err := svc.CreateEvent(ctx, "user-a", CreateEventInput{
		Title: "Original",
		Date:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	empty := ""
	if _, err := svc.UpdateEvent(ctx, created.ID, "user-a", UpdateEventInput{Title: &empty}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}

	negative := -5
	if _, err := svc.UpdateEvent(ctx, created.ID, "user-a", UpdateEventInput{Capacity: &negative}); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("expected ErrInvalidCapacity, got %v", err)
	}

	bad := model.EventStatus("archived")
	if _, err := svc.UpdateEvent(ctx, created.ID, "user-a", UpdateEventInput{Status: &bad}); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestDeleteEventMergedOutcomeAndIdempotence(t *testing.T) {
	svc, _, users := newEventService(nil)
	ctx := context.Background()
	seedUser(t, users, "user-a", "a@example.com")

	created, err := svc.CreateEvent(ctx, "user-a", CreateEventInput{
		Title: "Doomed",
		Date:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	// Non-owner delete reads as not found and leaves the row alone.
	if err := svc.DeleteEvent(ctx, created.ID, "user-b"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("non-owner delete: expected ErrEventNotFound, got %v", err)
	}
	if _, err := svc.GetEvent(ctx, created.ID); err != nil {
		t.Fatalf("event deleted by non-owner: %v", err)
	}

	// Owner delete succeeds once, then reports not found.
	if err := svc.DeleteEvent(ctx, created.ID, "user-a"); err != nil {
		t.Fatalf("DeleteEvent() error: %v", err)
	}
	if err := svc.DeleteEvent(ctx, created.ID, "user-a"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("second delete: expected ErrEventNotFound, got %v", err)
	}
}

func TestListPublicEventsCacheAside(t *testing.T) {
	cache := &fakeListingCache{}
	svc, _, users := newEventService(cache)
	ctx := context.Background()
	seedUser(t, users, "user-a", "a@example.com")

	if _, err := svc.CreateEvent(ctx, "user-a", CreateEventInput{
		Title: "Cached",
		Date:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	// First read misses and populates.
	if _, err := svc.ListPublicEvents(ctx); err != nil {
		t.Fatalf("ListPublicEvents() error: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}

	// Second read is served from cache (no additional set).
	if _, err := svc.ListPublicEvents(ctx); err != nil {
		t.Fatalf("ListPublicEvents() error: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets after hit = %d, want 1", cache.sets)
	}

	// A mutation invalidates.
	if _, err := svc.CreateEvent(ctx, "user-a", CreateEventInput{
		Title: "Invalidator",
		Date:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}
	if cache.invalidates < 2 {
		t.Errorf("cache invalidates = %d, want at least 2", cache.invalidates)
	}

	listing, err := svc.ListPublicEvents(ctx)
	if err != nil {
		t.Fatalf("ListPublicEvents() error: %v", err)
	}
	if len(listing) != 2 {
		t.Errorf("post-invalidation listing has %d events, want 2", len(listing))
	}
}
