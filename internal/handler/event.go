package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventdeck/eventdeck/internal/auth"
	"github.com/eventdeck/eventdeck/internal/handler/dto"
	"github.com/eventdeck/eventdeck/internal/model"
	"github.com/eventdeck/eventdeck/internal/service"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	svc    *service.EventService
	logger *slog.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Status:      model.EventStatus(req.Status),
	}

	event, err := h.svc.CreateEvent(r.Context(), auth.UserIDFromContext(r.Context()), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("event_created", "event_id", event.ID, "owner_id", event.OwnerID)

	writeJSON(w, http.StatusCreated, dto.ToEventResponse(event))
}

// ListPublic handles GET /api/events.
func (h *EventHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListPublicEvents(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPublicEventListResponse(events))
}

// ListMine handles GET /api/events/mine.
func (h *EventHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListOwnEvents(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEventListResponse(events))
}

// Get handles GET /api/events/{id}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Event ID is required")
		return
	}

	event, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPublicEventResponse(event))
}

// Update handles PUT /api/events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Event ID is required")
		return
	}

	var req dto.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Capacity:    req.Capacity,
	}
	if req.Status != nil {
		status := model.EventStatus(*req.Status)
		input.Status = &status
	}

	event, err := h.svc.UpdateEvent(r.Context(), id, auth.UserIDFromContext(r.Context()), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("event_updated", "event_id", event.ID)

	writeJSON(w, http.StatusOK, dto.ToEventResponse(event))
}

// Delete handles DELETE /api/events/{id}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Event ID is required")
		return
	}

	if err := h.svc.DeleteEvent(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("event_deleted", "event_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps event service errors to HTTP responses.
// ErrEventNotFound covers both missing and non-owned events; the
// response is identical in either case.
func (h *EventHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
	case errors.Is(err, service.ErrTitleRequired):
		writeError(w, http.StatusBadRequest, "TITLE_REQUIRED", "Title is required")
	case errors.Is(err, service.ErrDateRequired):
		writeError(w, http.StatusBadRequest, "DATE_REQUIRED", "Date is required")
	case errors.Is(err, service.ErrInvalidCapacity):
		writeError(w, http.StatusBadRequest, "INVALID_CAPACITY", "Capacity must not be negative")
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "INVALID_STATUS", "Status must be published or draft")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
