// Package scheduler fires the daily pipelines at fixed local times. Each
// entry is an explicit little state machine: armed with a next fire time,
// fired when the clock passes it, then re-armed for the next day. There is
// no persistence — a restart re-arms every entry for its next future
// occurrence and fires missed during downtime are not replayed.
package scheduler

import (
	"fmt"
	"log"
	"time"
)

const pollInterval = 30 * time.Second

type entry struct {
	name   string
	hour   int
	minute int
	run    func()
	next   time.Time
}

// Scheduler owns its entries' fire-time bookkeeping; no other goroutine
// touches it. Pipelines run synchronously on the scheduler goroutine —
// a slow run delays the next tick check, which is an accepted bound since
// runs are infrequent and themselves time-bounded.
type Scheduler struct {
	entries []*entry
	now     func() time.Time
	stop    chan struct{}
}

// New takes the clock's now func so fire times land in the recipient's
// fixed timezone, and so tests can drive time directly.
func New(now func() time.Time) *Scheduler {
	return &Scheduler{now: now, stop: make(chan struct{})}
}

// Add registers a daily entry. at is "HH:MM" local time; anything beyond
// that, trailing text included, is a config error.
func (s *Scheduler) Add(name, at string, run func()) error {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return fmt.Errorf("invalid time %q for %s: %w", at, name, err)
	}
	s.entries = append(s.entries, &entry{name: name, hour: t.Hour(), minute: t.Minute(), run: run})
	return nil
}

// Start arms every entry for its next future occurrence and begins polling.
func (s *Scheduler) Start() {
	now := s.now()
	for _, e := range s.entries {
		e.next = nextAt(now, e.hour, e.minute)
		log.Printf("scheduler[%s]: armed for %s", e.name, e.next.Format("2006-01-02 15:04"))
	}

	go func() {
		t := time.NewTicker(pollInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.runDue(s.now())
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

// runDue fires every entry whose time has passed since the last tick and
// re-arms it for the next day. Entries are independent: one failing or slow
// run never deregisters another.
func (s *Scheduler) runDue(now time.Time) {
	for _, e := range s.entries {
		if now.Before(e.next) {
			continue
		}
		s.fire(e)
		e.next = e.next.Add(24 * time.Hour)
		if !e.next.After(now) {
			// More than a day behind (clock jump, long stall): skip the
			// missed fires instead of replaying them.
			e.next = nextAt(now, e.hour, e.minute)
		}
	}
}

func (s *Scheduler) fire(e *entry) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scheduler[%s]: panic: %v", e.name, r)
		}
	}()
	log.Printf("scheduler[%s]: firing", e.name)
	e.run()
}

// nextAt returns the first hh:mm strictly after now, in now's location.
func nextAt(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
