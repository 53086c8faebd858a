package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetricsCountersObservable(t *testing.T) {
	env := newTestEnv(t)

	owner := registerUser(t, env, "ada@example.com", "correct horse")
	env.do(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"ada@example.com","password":"wrong password"}`)
	env.do(t, http.MethodGet, "/api/events/mine", "", "")
	created := createEvent(t, env, owner.Token,
		`{"title":"GopherCon","date":"2026-09-15T09:00:00Z"}`)
	env.do(t, http.MethodDelete, "/api/events/"+created.ID, owner.Token, "")

	snap := env.recorder.Snapshot()
	if snap.UsersRegistered != 1 {
		t.Errorf("UsersRegistered = %d, want 1", snap.UsersRegistered)
	}
	if snap.LoginFailures != 1 {
		t.Errorf("LoginFailures = %d, want 1", snap.LoginFailures)
	}
	if snap.AuthRejections != 1 {
		t.Errorf("AuthRejections = %d, want 1", snap.AuthRejections)
	}
	if snap.EventsCreated != 1 {
		t.Errorf("EventsCreated = %d, want 1", snap.EventsCreated)
	}
	if snap.EventsDeleted != 1 {
		t.Errorf("EventsDeleted = %d, want 1", snap.EventsDeleted)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	registerUser(t, env, "ada@example.com", "correct horse")

	rec := env.do(t, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain exposition", ct)
	}

	body := rec.Body.String()
	wantLines := []string{
		"eventdeck_users_registered_total 1",
		"eventdeck_logins_total{status=\"success\"} 0",
		"eventdeck_events_created_total 0",
		"eventdeck_listing_cache_misses_total 0",
	}
	for _, line := range wantLines {
		if !strings.Contains(body, line) {
			t.Errorf("metrics output missing %q:\n%s", line, body)
		}
	}
}

func TestMetricsEndpointNilSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
