// Package sched implements the transmission scheduler: a round-robin loop
// that builds telemetry frames and writes them to the serial link at a
// fixed per-frame dwell, after a one-time warm-up delay that lets the
// receiving device initialize.
//
// Resource note: writes carry no timeout. The serial link is an exclusively
// owned blocking file descriptor, and an unresponsive receiver can block
// the scheduler inside a write indefinitely. Cancellation is honored before
// every build and during every wait, but not mid-write.
package sched

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/lcd-pulse/display"
)

// State is the scheduler lifecycle state.
type State int

const (
	// StateWarmingUp is the initial state: the link is open but the
	// receiver is still initializing, so nothing is transmitted yet.
	StateWarmingUp State = iota

	// StateRunning is the terminal state: the scheduler cycles through
	// its entries until the context is cancelled or a write fails.
	StateRunning
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateWarmingUp:
		return "warming-up"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Entry pairs a frame builder with the dwell the scheduler waits after
// transmitting its frame before advancing.
type Entry struct {
	Builder display.Builder
	Dwell   time.Duration
}

// Scheduler owns the serial link and multiplexes frames onto it. The
// entry sequence and timings are fixed for the scheduler's lifetime.
type Scheduler struct {
	entries []Entry
	warmUp  time.Duration
	link    io.Writer
	logger  *slog.Logger

	// wait suspends until d elapses or ctx is cancelled. Overridable so
	// tests run without real time passing.
	wait func(ctx context.Context, d time.Duration) error

	mu    sync.Mutex
	state State
}

// New validates the schedule and returns a Scheduler. Every entry needs a
// builder and a positive dwell; the warm-up may be zero but not negative.
func New(link io.Writer, entries []Entry, warmUp time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if link == nil {
		return nil, fmt.Errorf("sched: link must not be nil")
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("sched: schedule must contain at least one entry")
	}
	for i, e := range entries {
		if e.Builder == nil {
			return nil, fmt.Errorf("sched: entry %d has no builder", i)
		}
		if e.Dwell <= 0 {
			return nil, fmt.Errorf("sched: entry %d (%s) has non-positive dwell %v", i, e.Builder.Name(), e.Dwell)
		}
	}
	if warmUp < 0 {
		return nil, fmt.Errorf("sched: negative warm-up %v", warmUp)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Scheduler{
		entries: entries,
		warmUp:  warmUp,
		link:    link,
		logger:  logger,
		wait:    sleepContext,
		state:   StateWarmingUp,
	}, nil
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Run performs the warm-up delay, then cycles through the schedule until
// the context is cancelled or a write fails. Write failures are fatal and
// returned immediately; builder-level problems never reach here (builders
// degrade to placeholder frames instead). On cancellation Run returns the
// context's error.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("warming up",
		"delay", s.warmUp.String(),
		"entries", len(s.entries),
	)
	if err := s.wait(ctx, s.warmUp); err != nil {
		return err
	}

	s.setState(StateRunning)
	s.logger.Info("transmission started")

	for {
		for _, entry := range s.entries {
			if err := ctx.Err(); err != nil {
				s.logger.Info("scheduler stopping", "reason", err)
				return err
			}

			frame := entry.Builder.Build()
			payload := frame.Bytes()

			if _, err := s.link.Write(payload); err != nil {
				s.logger.Error("transmission failed",
					"frame", entry.Builder.Name(),
					"error", err,
				)
				return fmt.Errorf("sched: write %s frame: %w", entry.Builder.Name(), err)
			}

			s.logger.Debug("frame transmitted",
				"frame", entry.Builder.Name(),
				"bytes", len(payload),
				"dwell", entry.Dwell.String(),
			)

			if err := s.wait(ctx, entry.Dwell); err != nil {
				return err
			}
		}
	}
}

// sleepContext blocks for d or until ctx is cancelled, whichever comes
// first, returning the context error on cancellation.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
