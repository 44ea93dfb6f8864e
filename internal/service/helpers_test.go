package service

import (
	"context"
	"sync"
	"time"
)

var seoul = time.FixedZone("KST", 9*60*60)

// stepClock is a settable clock for tests.
type stepClock struct {
	t time.Time
}

func newStepClock(year int, month time.Month, day, hour, min int) *stepClock {
	return &stepClock{t: time.Date(year, month, day, hour, min, 0, 0, seoul)}
}

func (c *stepClock) now() time.Time { return c.t }

func (c *stepClock) set(hour, min, sec int) {
	c.t = time.Date(c.t.Year(), c.t.Month(), c.t.Day(), hour, min, sec, 0, c.t.Location())
}

// recordingNotifier keeps every message it is asked to send.
type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.msgs)
}
