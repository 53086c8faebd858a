package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(success bool) {}

// IncAuthRejected is a no-op.
func (n *NoopRecorder) IncAuthRejected() {}

// IncEventCreated is a no-op.
func (n *NoopRecorder) IncEventCreated() {}

// IncEventUpdated is a no-op.
func (n *NoopRecorder) IncEventUpdated() {}

// IncEventDeleted is a no-op.
func (n *NoopRecorder) IncEventDeleted() {}

// IncListingCacheHit is a no-op.
func (n *NoopRecorder) IncListingCacheHit() {}

// IncListingCacheMiss is a no-op.
func (n *NoopRecorder) IncListingCacheMiss() {}
