package correlation

import (
	"sync"

	"go.uber.org/zap"
)

// Tracker folds terminal child observations into per-aggregate completion
// signals. An aggregate (e.g. an order) completes the instant every expected
// child (e.g. each line item) has been observed terminal; the signal fires
// exactly once per aggregate id.
//
// The entry map is guarded by its own mutex and each entry carries one of its
// own, so observations for unrelated aggregates never serialize each other.
// Entries are kept for the process lifetime; completed entries are inert.
type Tracker struct {
	mu      sync.Mutex
	entries map[string]*entry
	log     *zap.Logger
}

type entry struct {
	mu       sync.Mutex
	expected map[string]struct{}
	observed map[string]struct{}
	// pending holds terminal children observed before the expected set is
	// known. They are folded into observed once a later observation supplies
	// the expected set.
	pending map[string]struct{}
	fired   bool
}

// State is a diagnostic snapshot of one aggregate's tracking entry.
type State struct {
	AggregateID string
	Expected    int
	Observed    int
	Pending     int
	Fired       bool
}

func NewTracker(log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		entries: make(map[string]*entry),
		log:     log,
	}
}

// Observe records one child observation for an aggregate and reports whether
// this observation completed it. The first observation of an aggregate id
// self-seeds a tracking entry; expected may be nil when the caller could not
// establish the child set, in which case terminal children are buffered until
// a later call supplies it. Observing the same (aggregate, child) pair again
// changes nothing, and a completed aggregate never fires twice.
func (t *Tracker) Observe(aggregateID, childID string, expected []string, terminal bool) bool {
	e := t.entry(aggregateID)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.fired {
		return false
	}

	if len(e.expected) == 0 && len(expected) > 0 {
		e.expected = make(map[string]struct{}, len(expected))
		for _, id := range expected {
			e.expected[id] = struct{}{}
		}
		for id := range e.pending {
			if _, ok := e.expected[id]; ok {
				e.observed[id] = struct{}{}
			} else {
				t.log.Warn("dropping pending child outside expected set",
					zap.String("aggregate_id", aggregateID),
					zap.String("child_id", id),
				)
			}
		}
		e.pending = nil
	}

	if terminal {
		switch {
		case len(e.expected) == 0:
			if e.pending == nil {
				e.pending = make(map[string]struct{})
			}
			e.pending[childID] = struct{}{}
			t.log.Info("buffered terminal child, expected set unknown",
				zap.String("aggregate_id", aggregateID),
				zap.String("child_id", childID),
			)
		default:
			if _, ok := e.expected[childID]; ok {
				e.observed[childID] = struct{}{}
			} else {
				t.log.Warn("ignoring child outside expected set",
					zap.String("aggregate_id", aggregateID),
					zap.String("child_id", childID),
				)
			}
		}
	}

	if len(e.expected) == 0 || len(e.observed) != len(e.expected) {
		return false
	}

	e.fired = true
	t.log.Info("aggregate complete",
		zap.String("aggregate_id", aggregateID),
		zap.Int("children", len(e.expected)),
	)
	return true
}

// Snapshot returns the tracking state for an aggregate id, if any.
func (t *Tracker) Snapshot(aggregateID string) (State, bool) {
	t.mu.Lock()
	e, ok := t.entries[aggregateID]
	t.mu.Unlock()
	if !ok {
		return State{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		AggregateID: aggregateID,
		Expected:    len(e.expected),
		Observed:    len(e.observed),
		Pending:     len(e.pending),
		Fired:       e.fired,
	}, true
}

func (t *Tracker) entry(aggregateID string) *entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[aggregateID]
	if !ok {
		e = &entry{observed: make(map[string]struct{})}
		t.entries[aggregateID] = e
	}
	return e
}
