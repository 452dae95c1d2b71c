package reactive

import (
	"context"
	"slices"
)

// NextTick defers fn until the current tick's queued work runs. Callbacks
// registered in the same tick run in registration order. Errors are routed
// to HandleError.
func (rt *Runtime) NextTick(fn func() error) {
	rt.callbacks = append(rt.callbacks, func() {
		rt.invoke(fn, nil, "nextTick")
	})
	if !rt.pending {
		rt.pending = true
		rt.tasks = append(rt.tasks, rt.flushCallbacks)
	}
}

func (rt *Runtime) flushCallbacks() {
	rt.pending = false
	copies := slices.Clone(rt.callbacks)
	clear(rt.callbacks)
	rt.callbacks = rt.callbacks[:0]
	for _, cb := range copies {
		cb()
	}
}

// Tick runs queued tasks until none remain and reports how many ran.
func (rt *Runtime) Tick() int {
	n := 0
	for len(rt.tasks) > 0 {
		task := rt.tasks[0]
		rt.tasks[0] = nil
		rt.tasks = rt.tasks[1:]
		task()
		n++
	}
	return n
}

// Pending reports whether deferred work is queued.
func (rt *Runtime) Pending() bool {
	return len(rt.tasks) > 0
}

// Dispatch hands fn to the goroutine running Run. It is the only Runtime
// method safe to call from other goroutines.
func (rt *Runtime) Dispatch(ctx context.Context, fn func()) error {
	select {
	case rt.dispatch <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes dispatched functions and the work they queue until ctx is
// done.
func (rt *Runtime) Run(ctx context.Context) error {
	rt.ctx = ctx
	defer func() { rt.ctx = context.Background() }()
	for {
		rt.Tick()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-rt.dispatch:
			rt.invoke(func() error {
				fn()
				return nil
			}, nil, "dispatch")
		}
	}
}
