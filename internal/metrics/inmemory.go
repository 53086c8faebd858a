package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered    uint64
	LoginSuccesses     uint64
	LoginFailures      uint64
	AuthRejections     uint64
	EventsCreated      uint64
	EventsUpdated      uint64
	EventsDeleted      uint64
	ListingCacheHits   uint64
	ListingCacheMisses uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered    uint64
	loginSuccesses     uint64
	loginFailures      uint64
	authRejections     uint64
	eventsCreated      uint64
	eventsUpdated      uint64
	eventsDeleted      uint64
	listingCacheHits   uint64
	listingCacheMisses uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:    atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:     atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:      atomic.LoadUint64(&m.loginFailures),
		AuthRejections:     atomic.LoadUint64(&m.authRejections),
		EventsCreated:      atomic.LoadUint64(&m.eventsCreated),
		EventsUpdated:      atomic.LoadUint64(&m.eventsUpdated),
		EventsDeleted:      atomic.LoadUint64(&m.eventsDeleted),
		ListingCacheHits:   atomic.LoadUint64(&m.listingCacheHits),
		ListingCacheMisses: atomic.LoadUint64(&m.listingCacheMisses),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLogin increments the login success or failure counter.
func (m *InMemoryRecorder) IncLogin(success bool) {
	if success {
		atomic.AddUint64(&m.loginSuccesses, 1)
	} else {
		atomic.AddUint64(&m.loginFailures, 1)
	}
}

// IncAuthRejected increments the rejected-request counter.
func (m *InMemoryRecorder) IncAuthRejected() {
	atomic.AddUint64(&m.authRejections, 1)
}

// IncEventCreated increments the created-events counter.
func (m *InMemoryRecorder) IncEventCreated() {
	atomic.AddUint64(&m.eventsCreated, 1)
}

// IncEventUpdated increments the updated-events counter.
func (m *InMemoryRecorder) IncEventUpdated() {
	atomic.AddUint64(&m.eventsUpdated, 1)
}

// IncEventDeleted increments the deleted-events counter.
func (m *InMemoryRecorder) IncEventDeleted() {
	atomic.AddUint64(&m.eventsDeleted, 1)
}

// IncListingCacheHit increments the listing cache hit counter.
func (m *InMemoryRecorder) IncListingCacheHit() {
	atomic.AddUint64(&m.listingCacheHits, 1)
}

// IncListingCacheMiss increments the listing cache miss counter.
func (m *InMemoryRecorder) IncListingCacheMiss() {
	atomic.AddUint64(&m.listingCacheMisses, 1)
}
