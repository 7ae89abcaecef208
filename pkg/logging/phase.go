package logging

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Recorder accumulates phase timings across one build run, keyed by the
// full dotted phase path (e.g. "build.parse.directives"). A single Recorder
// is shared for one build and safe for concurrent use.
type Recorder struct {
	RunID string

	mu      sync.Mutex
	timings map[string]time.Duration
	order   []string
}

// NewRecorder creates a Recorder stamped with a fresh run id, used to
// correlate this build's phase timings and cache debug events across logs.
func NewRecorder() *Recorder {
	return &Recorder{
		RunID:   uuid.NewString(),
		timings: make(map[string]time.Duration),
	}
}

func (r *Recorder) record(phase string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.timings[phase]; !ok {
		r.order = append(r.order, phase)
	}
	r.timings[phase] += d
}

// Timings returns a snapshot of every phase's accumulated duration.
func (r *Recorder) Timings() map[string]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]time.Duration, len(r.timings))
	for k, v := range r.timings {
		out[k] = v
	}
	return out
}

// orderedPhases returns phase names in first-seen order, for a stable
// summary table.
func (r *Recorder) orderedPhases() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Phase pushes name onto ctx's phase stack (joined with "." for nested
// phases, e.g. a "parse" phase entered while "build" is open logs under
// "build.parse"), logs a debug-level start event, and returns a derived
// context plus an end func the caller defers. Calling end records the
// elapsed time against r (if r is non-nil) and logs a debug-level end event
// with the duration. Go has no thread-local storage, so the phase stack
// rides along in ctx exactly as the logger itself does in the teacher's
// internal/logging/context.go.
func Phase(ctx context.Context, name string, r *Recorder, keyvals ...interface{}) (context.Context, func()) {
	stack := phaseStack(ctx)
	full := name
	if len(stack) > 0 {
		full = strings.Join(stack, ".") + "." + name
	}
	newStack := append(append([]string(nil), stack...), name)

	logger := FromContext(ctx).With(append([]interface{}{"phase", full}, keyvals...)...)
	newCtx := withPhaseStack(WithLogger(ctx, logger), newStack)

	logger.Debug("phase start")
	start := time.Now()

	return newCtx, func() {
		elapsed := time.Since(start)
		if r != nil {
			r.record(full, elapsed)
		}
		logger.Debug("phase end", "elapsed", elapsed)
	}
}
