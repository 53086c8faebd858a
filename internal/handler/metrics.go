package handler

import (
	"fmt"
	"net/http"

	"github.com/eventdeck/eventdeck/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "eventdeck_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "eventdeck_logins_total{status=\"success\"} %d\n", snap.LoginSuccesses)
	writeMetric(w, "eventdeck_logins_total{status=\"failure\"} %d\n", snap.LoginFailures)
	writeMetric(w, "eventdeck_auth_rejections_total %d\n", snap.AuthRejections)

	writeMetric(w, "eventdeck_events_created_total %d\n", snap.EventsCreated)
	writeMetric(w, "eventdeck_events_updated_total %d\n", snap.EventsUpdated)
	writeMetric(w, "eventdeck_events_deleted_total %d\n", snap.EventsDeleted)

	writeMetric(w, "eventdeck_listing_cache_hits_total %d\n", snap.ListingCacheHits)
	writeMetric(w, "eventdeck_listing_cache_misses_total %d\n", snap.ListingCacheMisses)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
