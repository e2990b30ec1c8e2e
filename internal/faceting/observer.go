package faceting

import "time"

// Observer receives progress notifications from the search. Reporting
// is purely informational: observers must not influence results, and
// the search never blocks on them beyond the call itself.
type Observer interface {
	// Phase announces a new stage of the run (hyperplane enumeration,
	// ridge indexing, combining, building).
	Phase(name string)

	// Progress reports a counter within the current phase, such as
	// hyperplane orbits found or combinations examined.
	Progress(label string, count int)
}

// NopObserver ignores all notifications. It is the default.
type NopObserver struct{}

func (NopObserver) Phase(string)         {}
func (NopObserver) Progress(string, int) {}

// throttled rate-limits Progress calls to at most one per interval,
// so a tight search loop can report unconditionally. Phase calls
// always pass through.
type throttled struct {
	inner    Observer
	interval time.Duration
	last     time.Time
}

// Throttle wraps an observer so Progress fires at most once per
// interval.
func Throttle(o Observer, interval time.Duration) Observer {
	return &throttled{inner: o, interval: interval}
}

func (t *throttled) Phase(name string) {
	t.inner.Phase(name)
}

func (t *throttled) Progress(label string, count int) {
	now := time.Now()
	if now.Sub(t.last) < t.interval {
		return
	}
	t.last = now
	t.inner.Progress(label, count)
}
