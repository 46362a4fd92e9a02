// Package pacing controls how fast a stage's checkpoints are consumed.
//
// Stages expose their progress as an [iter.Seq] of checkpoints. [Drive]
// ranges over such a sequence and asks a [Pacer] to wait between
// consecutive checkpoints:
//
//   - [Instant] never waits; the stage runs straight through.
//   - [Timed] sleeps a fixed interval between checkpoints.
//   - [Gated] blocks until a value arrives on its trigger channel, letting
//     an interactive front end step through a stage by hand.
//
// Pacing only changes when work happens, never what it produces.
package pacing

import (
	"context"
	"iter"
	"strings"
	"time"

	"github.com/matzehuels/dungeonforge/pkg/errors"
)

// Mode names a pacing strategy.
type Mode string

const (
	ModeInstant Mode = "instant"
	ModeTimed   Mode = "timed"
	ModeGated   Mode = "gated"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeInstant, ModeTimed, ModeGated}

// ParseMode converts a case-insensitive name into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeInstant, ModeTimed, ModeGated:
		return m, nil
	case "":
		return ModeInstant, nil
	}
	return "", errors.New(errors.ErrCodeInvalidPacing, "unknown pacing mode %q (want instant, timed or gated)", s)
}

// Pacer decides how long to pause between two checkpoints.
type Pacer interface {
	// Wait blocks until the next checkpoint may run. It returns ctx.Err()
	// if the context ends first.
	Wait(ctx context.Context) error
}

// Instant does not pause.
type Instant struct{}

func (Instant) Wait(ctx context.Context) error { return ctx.Err() }

// Timed pauses for Interval. A non-positive interval does not pause.
type Timed struct {
	Interval time.Duration
}

func (p Timed) Wait(ctx context.Context) error {
	if p.Interval <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.Interval)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Gated pauses until a value is received on Trigger. Once Trigger or
// Release is closed every remaining checkpoint runs without pausing.
// Closing Release ends gating while senders on Trigger may still be
// blocked. A nil Release never fires.
type Gated struct {
	Trigger <-chan struct{}
	Release <-chan struct{}
}

func (p Gated) Wait(ctx context.Context) error {
	select {
	case <-p.Trigger:
		return nil
	case <-p.Release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// New returns the pacer for mode. trigger is only used by ModeGated and
// must not be nil for it.
func New(mode Mode, interval time.Duration, trigger <-chan struct{}) (Pacer, error) {
	switch mode {
	case ModeInstant, "":
		return Instant{}, nil
	case ModeTimed:
		return Timed{Interval: interval}, nil
	case ModeGated:
		if trigger == nil {
			return nil, errors.New(errors.ErrCodeInvalidPacing, "gated pacing needs a trigger channel")
		}
		return Gated{Trigger: trigger}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidPacing, "unknown pacing mode %q", mode)
}

// Drive consumes seq, calling fn for every checkpoint and then p.Wait
// before the stage resumes, so the state fn observes stays put for the
// whole pause. It stops at the first error from fn or p, which abandons
// the rest of the sequence. A nil pacer behaves like Instant.
func Drive[T any](ctx context.Context, seq iter.Seq[T], p Pacer, fn func(T) error) (int, error) {
	if p == nil {
		p = Instant{}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := 0
	for step := range seq {
		n++
		if fn != nil {
			if err := fn(step); err != nil {
				return n, err
			}
		}
		if err := p.Wait(ctx); err != nil {
			return n, err
		}
	}
	return n, nil
}
