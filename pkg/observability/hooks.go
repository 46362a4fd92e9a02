// Package observability lets a host program watch pipeline runs.
//
// The runner reports every stage start and completion, every checkpoint and
// every path query to the hooks registered here. The defaults do nothing, so
// the core packages carry no dependency on a metrics or tracing backend.
//
//	observability.SetStageHooks(stageTimer)
//	defer observability.Reset()
//
// Events carry the run identifier of the pipeline.State they belong to, so
// concurrent runs can be told apart.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Stage Hooks
// =============================================================================

// StageHooks receives events from pipeline stages.
type StageHooks interface {
	OnStageStart(ctx context.Context, runID, stage string)
	OnStageComplete(ctx context.Context, runID, stage string, steps int, duration time.Duration, err error)

	// OnCheckpoint fires after each unit of stage work, before any pacing
	// pause.
	OnCheckpoint(ctx context.Context, runID, stage string, index int)
}

// =============================================================================
// Path Hooks
// =============================================================================

// PathHooks receives events from path queries.
type PathHooks interface {
	// OnPath records a completed query. hops is zero when no path exists.
	OnPath(ctx context.Context, runID string, hops int, cost float64, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStageHooks is a no-op implementation of StageHooks.
type NoopStageHooks struct{}

func (NoopStageHooks) OnStageStart(context.Context, string, string) {}
func (NoopStageHooks) OnStageComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopStageHooks) OnCheckpoint(context.Context, string, string, int) {}

// NoopPathHooks is a no-op implementation of PathHooks.
type NoopPathHooks struct{}

func (NoopPathHooks) OnPath(context.Context, string, int, float64, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	stageHooks StageHooks = NoopStageHooks{}
	pathHooks  PathHooks  = NoopPathHooks{}
	hooksMu    sync.RWMutex
)

// SetStageHooks replaces the stage hooks. A nil h is ignored.
func SetStageHooks(h StageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stageHooks = h
	}
}

// SetPathHooks replaces the path hooks. A nil h is ignored.
func SetPathHooks(h PathHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pathHooks = h
	}
}

// Stage returns the registered stage hooks.
func Stage() StageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stageHooks
}

// Path returns the registered path hooks.
func Path() PathHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pathHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	stageHooks = NoopStageHooks{}
	pathHooks = NoopPathHooks{}
}
