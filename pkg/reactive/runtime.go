package reactive

import (
	"context"
	"log/slog"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/internal/telemetry"
)

// DefaultMaxUpdateCount is how often a single watcher may re-run within one
// flush before the flush is aborted.
const DefaultMaxUpdateCount = 100

// ErrorHandler receives errors nobody captured. Returning a non-nil error
// reports the handler itself as failed.
type ErrorHandler func(err error, owner *Owner, info string) error

// WarnHandler receives non-fatal diagnostics.
type WarnHandler func(w *errors.Error, owner *Owner)

// Runtime owns the active-watcher stack, the scheduler and the tick queue.
// It is not safe for concurrent use; see Dispatch.
type Runtime struct {
	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  *telemetry.Tracer

	maxUpdateCount int
	sync           bool
	interactive    bool
	errorHandler   ErrorHandler
	warnHandler    WarnHandler

	// targets is the stack of watchers collecting dependencies.
	targets []*Watcher

	depID     uint64
	watcherID uint64
	ownerID   uint64

	shouldObserve bool

	sched scheduler

	// Tick callbacks, collapsed into one queued task per tick.
	callbacks []func()
	pending   bool
	tasks     []func()

	afterFlush []*flushListener
	dispatch   chan func()
	ctx        context.Context
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for warnings and unhandled errors.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithMaxUpdateCount sets the per-flush re-entry limit of a single watcher.
func WithMaxUpdateCount(n int) Option {
	return func(rt *Runtime) {
		if n > 0 {
			rt.maxUpdateCount = n
		}
	}
}

// WithSync flushes the scheduler inline on every enqueue and notifies
// subscribers in id order. Intended for tests and debugging.
func WithSync(sync bool) Option {
	return func(rt *Runtime) {
		rt.sync = sync
	}
}

// WithInteractive makes unhandled errors log only. Without it they are
// logged and then re-panicked.
func WithInteractive(interactive bool) Option {
	return func(rt *Runtime) {
		rt.interactive = interactive
	}
}

// WithErrorHandler installs the global error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(rt *Runtime) {
		rt.errorHandler = h
	}
}

// WithWarnHandler installs a handler for warnings. Warnings are logged
// regardless.
func WithWarnHandler(h WarnHandler) Option {
	return func(rt *Runtime) {
		rt.warnHandler = h
	}
}

// WithMetrics records scheduler and error metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(rt *Runtime) {
		rt.metrics = m
	}
}

// WithTracer wraps every flush in a span.
func WithTracer(t *telemetry.Tracer) Option {
	return func(rt *Runtime) {
		rt.tracer = t
	}
}

// New creates a Runtime.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		logger:         slog.Default(),
		maxUpdateCount: DefaultMaxUpdateCount,
		shouldObserve:  true,
		dispatch:       make(chan func(), 64),
		ctx:            context.Background(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.sched.reset()
	return rt
}

// Logger returns the runtime logger.
func (rt *Runtime) Logger() *slog.Logger { return rt.logger }

// Metrics returns the runtime metrics, possibly nil.
func (rt *Runtime) Metrics() *telemetry.Metrics { return rt.metrics }

// Tracer returns the runtime tracer, possibly nil.
func (rt *Runtime) Tracer() *telemetry.Tracer { return rt.tracer }

// Context returns the context passed to Run, or context.Background.
func (rt *Runtime) Context() context.Context { return rt.ctx }

// Target returns the watcher currently collecting dependencies.
func (rt *Runtime) Target() *Watcher {
	if n := len(rt.targets); n > 0 {
		return rt.targets[n-1]
	}
	return nil
}

func (rt *Runtime) pushTarget(w *Watcher) {
	rt.targets = append(rt.targets, w)
}

func (rt *Runtime) popTarget() {
	rt.targets[len(rt.targets)-1] = nil
	rt.targets = rt.targets[:len(rt.targets)-1]
}

// Untracked runs fn with no active watcher, so reads inside it do not
// subscribe anything.
func (rt *Runtime) Untracked(fn func()) {
	rt.pushTarget(nil)
	defer rt.popTarget()
	fn()
}

// ToggleObserving switches whether new values are converted to observed
// containers. Props passed down from a parent are installed with observing off.
func (rt *Runtime) ToggleObserving(on bool) {
	rt.shouldObserve = on
}

// Warn reports a non-fatal diagnostic.
func (rt *Runtime) Warn(w *errors.Error, owner *Owner) {
	if owner != nil && w.Owner == "" {
		w.Owner = owner.Name()
	}
	rt.metrics.Error(w.Code)
	rt.logger.Warn(w.Message,
		slog.String("code", w.Code),
		slog.String("owner", w.Owner),
		slog.String("info", w.Info),
	)
	if rt.warnHandler != nil {
		rt.warnHandler(w, owner)
	}
}
