package coach

import "sort"

// Default persistence tracker bounds.
const (
	// DefaultPersistenceFrames is how many consecutive evaluated
	// frames an error must survive before it is actionable
	// (~0.33s at 30fps).
	DefaultPersistenceFrames = 10
	// DefaultTrackerCapacity bounds the number of error codes tracked
	// at once.
	DefaultTrackerCapacity = 20
)

// Tracker counts how many consecutive evaluated frames each error code
// has appeared in. A code absent from a frame is dropped outright: one
// clean frame fully resets persistence, so stale issues are never
// flagged. The map is bounded; when full, the least persistent codes
// are evicted first (ties broken by code, ascending).
type Tracker struct {
	counts    map[string]int
	capacity  int
	threshold int
}

// NewTracker creates a Tracker evicting past capacity entries and
// reporting codes persistent once they reach threshold consecutive
// frames. Non-positive arguments fall back to the defaults.
func NewTracker(capacity, threshold int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultTrackerCapacity
	}
	if threshold <= 0 {
		threshold = DefaultPersistenceFrames
	}
	return &Tracker{
		counts:    make(map[string]int),
		capacity:  capacity,
		threshold: threshold,
	}
}

// Update advances the tracker by one evaluated frame: codes present are
// incremented, codes absent are deleted.
func (t *Tracker) Update(present map[string]bool) {
	for code := range present {
		t.counts[code]++
	}
	for code := range t.counts {
		if !present[code] {
			delete(t.counts, code)
		}
	}
	t.evict()
}

// evict trims the map back to capacity, removing the lowest counts
// first.
func (t *Tracker) evict() {
	if len(t.counts) <= t.capacity {
		return
	}

	type entry struct {
		code  string
		count int
	}
	entries := make([]entry, 0, len(t.counts))
	for code, count := range t.counts {
		entries = append(entries, entry{code, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count < entries[j].count
		}
		return entries[i].code < entries[j].code
	})

	for _, e := range entries[:len(entries)-t.capacity] {
		delete(t.counts, e.code)
	}
}

// IsPersistent reports whether code has met the persistence threshold.
func (t *Tracker) IsPersistent(code string) bool {
	return t.counts[code] >= t.threshold
}

// Persistent returns all codes at or past the threshold, sorted for
// deterministic iteration.
func (t *Tracker) Persistent() []string {
	var codes []string
	for code, count := range t.counts {
		if count >= t.threshold {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// Count returns the current consecutive-frame count for code.
func (t *Tracker) Count(code string) int { return t.counts[code] }

// MarkDelivered zeroes the counter for code so the identical message
// cannot re-trigger until its persistence re-accumulates from scratch.
func (t *Tracker) MarkDelivered(code string) {
	if _, ok := t.counts[code]; ok {
		t.counts[code] = 0
	}
}

// Reset drops all counters.
func (t *Tracker) Reset() {
	t.counts = make(map[string]int)
}
