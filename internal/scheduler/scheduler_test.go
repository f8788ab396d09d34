package scheduler

import (
	"testing"
	"time"
)

var loc = time.FixedZone("UTC+2", 2*3600)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, loc)
}

func TestNextAt(t *testing.T) {
	now := at(6, 30)
	next := nextAt(now, 7, 0)
	if next != at(7, 0) {
		t.Errorf("next = %v, want today 07:00", next)
	}

	now = at(8, 0)
	next = nextAt(now, 7, 0)
	if next != at(7, 0).Add(24*time.Hour) {
		t.Errorf("next = %v, want tomorrow 07:00", next)
	}

	// Exactly on time arms for tomorrow.
	now = at(7, 0)
	if next := nextAt(now, 7, 0); next != at(7, 0).Add(24*time.Hour) {
		t.Errorf("next = %v, want tomorrow 07:00", next)
	}
}

func TestAdd_RejectsBadTimes(t *testing.T) {
	s := New(time.Now)
	for _, bad := range []string{"", "7", "25:00", "07:61", "noon", "07:00pm", "07:00 extra"} {
		if err := s.Add("x", bad, func() {}); err == nil {
			t.Errorf("Add(%q) should fail", bad)
		}
	}
	if err := s.Add("ok", "07:00", func() {}); err != nil {
		t.Errorf("Add(07:00) failed: %v", err)
	}
}

func TestRunDue_FiresOncePerDay(t *testing.T) {
	fired := 0
	s := New(nil)
	s.entries = []*entry{{name: "morning", hour: 7, minute: 0, run: func() { fired++ }, next: at(7, 0)}}

	s.runDue(at(6, 59))
	if fired != 0 {
		t.Fatalf("fired before its time")
	}

	// The tick lands a little past the armed time.
	s.runDue(at(7, 0).Add(12 * time.Second))
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}

	// Later ticks the same day must not fire again.
	s.runDue(at(7, 1))
	s.runDue(at(18, 0))
	if fired != 1 {
		t.Fatalf("fired = %d after later ticks, want 1", fired)
	}

	if want := at(7, 0).Add(24 * time.Hour); s.entries[0].next != want {
		t.Errorf("re-armed for %v, want %v", s.entries[0].next, want)
	}
}

func TestRunDue_EntriesAreIndependent(t *testing.T) {
	var order []string
	s := New(nil)
	s.entries = []*entry{
		{name: "morning", hour: 7, run: func() { order = append(order, "morning") }, next: at(7, 0)},
		{name: "afternoon", hour: 13, run: func() { order = append(order, "afternoon") }, next: at(13, 0)},
	}

	s.runDue(at(7, 0))
	if len(order) != 1 || order[0] != "morning" {
		t.Fatalf("order = %v", order)
	}

	s.runDue(at(13, 0))
	if len(order) != 2 || order[1] != "afternoon" {
		t.Fatalf("order = %v", order)
	}
}

func TestRunDue_PanicKeepsEntryArmed(t *testing.T) {
	calls := 0
	s := New(nil)
	s.entries = []*entry{{name: "morning", hour: 7, run: func() {
		calls++
		panic("pipeline blew up")
	}, next: at(7, 0)}}

	s.runDue(at(7, 0))
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
	if want := at(7, 0).Add(24 * time.Hour); s.entries[0].next != want {
		t.Errorf("panicking run must still re-arm: next = %v, want %v", s.entries[0].next, want)
	}

	// And it fires again the next day.
	s.runDue(at(7, 0).Add(24 * time.Hour))
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRunDue_SkipsMissedFiresAfterLongStall(t *testing.T) {
	fired := 0
	s := New(nil)
	s.entries = []*entry{{name: "morning", hour: 7, minute: 0, run: func() { fired++ }, next: at(7, 0)}}

	// Three days pass before the next tick: one fire, then re-arm in the
	// future, not a replay per missed day.
	threeDaysOn := at(9, 0).Add(72 * time.Hour)
	s.runDue(threeDaysOn)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if !s.entries[0].next.After(threeDaysOn) {
		t.Errorf("next = %v, want a future time", s.entries[0].next)
	}
	if s.entries[0].next.Hour() != 7 || s.entries[0].next.Minute() != 0 {
		t.Errorf("re-armed off-slot: %v", s.entries[0].next)
	}
}
