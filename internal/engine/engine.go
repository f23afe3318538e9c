// Package engine owns all business logic over the application state: habit
// completion, goal progress, recurring tasks, the unified task view, and the
// XP/level/streak progression system.
//
// The engine follows a single-writer model: every mutation runs under one
// lock against the shared state tree, and expected business outcomes (plan
// limits, missing ids) are reported through return values and the
// notification side channel, never as errors.
package engine

import (
	"sync"
	"time"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/notifier"
	"github.com/julianstephens/ascend/internal/state"
)

type Engine struct {
	mu   sync.Mutex
	st   *state.State
	sink notifier.Sink
	now  func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithSink routes engine notifications to the given sink
func WithSink(s notifier.Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithClock overrides the engine's notion of now, used by tests and replays
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over the given state. The state is normalized so read
// paths never observe nil collections from stale snapshots.
func New(st *state.State, opts ...Option) *Engine {
	st.Normalize()
	e := &Engine{
		st:   st,
		sink: notifier.Discard{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State exposes the underlying state tree for persistence. Callers must not
// mutate it while the engine is in use.
func (e *Engine) State() *state.State {
	return e.st
}

// Today returns the current date string (YYYY-MM-DD) per the engine clock
func (e *Engine) Today() string {
	return e.now().Format(constants.DateFormat)
}

func (e *Engine) notify(sev notifier.Severity, msg string, xp int) {
	e.sink.Send(notifier.Notification{Severity: sev, Message: msg, XPGained: xp})
}
