package correlation_test

import (
	"testing"

	"notifyservice/internal/domain/correlation"
)

func TestTracker_CompletesOnceAllChildrenTerminal(t *testing.T) {
	tr := correlation.NewTracker(nil)
	expected := []string{"item1", "item2"}

	if tr.Observe("ord-9", "item1", expected, true) {
		t.Fatal("completed after first of two children")
	}
	if !tr.Observe("ord-9", "item2", expected, true) {
		t.Fatal("expected completion after second child")
	}
}

func TestTracker_FiresAtMostOnce(t *testing.T) {
	tr := correlation.NewTracker(nil)
	expected := []string{"item1", "item2"}

	tr.Observe("ord-9", "item1", expected, true)
	if !tr.Observe("ord-9", "item2", expected, true) {
		t.Fatal("expected completion")
	}

	// Duplicate terminal events after completion must not refire.
	if tr.Observe("ord-9", "item2", expected, true) {
		t.Fatal("completion fired twice")
	}
	if tr.Observe("ord-9", "item1", expected, true) {
		t.Fatal("completion fired twice")
	}
}

func TestTracker_IdempotentObservation(t *testing.T) {
	tr := correlation.NewTracker(nil)
	expected := []string{"item1", "item2"}

	tr.Observe("ord-1", "item1", expected, true)
	if tr.Observe("ord-1", "item1", expected, true) {
		t.Fatal("duplicate observation must not complete a two-item order")
	}

	st, ok := tr.Snapshot("ord-1")
	if !ok {
		t.Fatal("expected tracking entry")
	}
	if st.Observed != 1 {
		t.Fatalf("want 1 observed child, got %d", st.Observed)
	}
}

func TestTracker_NonTerminalObservationsDoNotCount(t *testing.T) {
	tr := correlation.NewTracker(nil)
	expected := []string{"item1"}

	if tr.Observe("ord-2", "item1", expected, false) {
		t.Fatal("non-terminal observation completed the aggregate")
	}
	if !tr.Observe("ord-2", "item1", expected, true) {
		t.Fatal("expected completion on terminal observation")
	}
}

func TestTracker_PendingChildrenFoldInWhenExpectedSetArrives(t *testing.T) {
	tr := correlation.NewTracker(nil)

	// Expected set unknown on first observation: buffer, never complete.
	if tr.Observe("ord-3", "item1", nil, true) {
		t.Fatal("completed without an expected set")
	}

	// Expected set arrives with the second observation; buffered child counts.
	if !tr.Observe("ord-3", "item2", []string{"item1", "item2"}, true) {
		t.Fatal("expected completion after pending fold")
	}
}

func TestTracker_ChildOutsideExpectedSetIgnored(t *testing.T) {
	tr := correlation.NewTracker(nil)
	expected := []string{"item1"}

	if tr.Observe("ord-4", "rogue", expected, true) {
		t.Fatal("unexpected child completed the aggregate")
	}
	st, _ := tr.Snapshot("ord-4")
	if st.Observed != 0 {
		t.Fatalf("observed set must stay a subset of expected, got %d", st.Observed)
	}
}

func TestTracker_AggregatesAreIndependent(t *testing.T) {
	tr := correlation.NewTracker(nil)

	if !tr.Observe("ord-a", "i1", []string{"i1"}, true) {
		t.Fatal("ord-a should complete")
	}
	if tr.Observe("ord-b", "i1", []string{"i1", "i2"}, true) {
		t.Fatal("ord-b should not complete")
	}
	if !tr.Observe("ord-b", "i2", []string{"i1", "i2"}, true) {
		t.Fatal("ord-b should complete independently of ord-a")
	}
}
