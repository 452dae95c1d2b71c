package reactive

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/vtree/internal/errors"
)

// scheduler batches watchers until the next flush.
type scheduler struct {
	queue     []*Watcher
	activated []*Owner
	has       map[uint64]bool
	circular  map[uint64]int
	waiting   bool
	flushing  bool
	index     int

	// onFlushed holds OnNextFlush callbacks for the pending flush.
	onFlushed []func() error
}

func (s *scheduler) reset() {
	clear(s.queue)
	s.queue = s.queue[:0]
	s.activated = nil
	s.has = make(map[uint64]bool)
	s.circular = make(map[uint64]int)
	s.waiting = false
	s.flushing = false
	s.index = 0
}

type flushListener struct {
	fn func()
}

// queueWatcher adds w to the pending flush unless it is already queued.
// During a flush, w is inserted by id among the watchers not yet run.
func (rt *Runtime) queueWatcher(w *Watcher) {
	s := &rt.sched
	if s.has[w.id] {
		return
	}
	s.has[w.id] = true
	if !s.flushing {
		s.queue = append(s.queue, w)
	} else {
		i := len(s.queue) - 1
		for i > s.index && s.queue[i].id > w.id {
			i--
		}
		s.queue = slices.Insert(s.queue, i+1, w)
	}
	if s.waiting {
		return
	}
	s.waiting = true
	if rt.sync {
		rt.flushSchedulerQueue()
		return
	}
	rt.NextTick(func() error {
		rt.flushSchedulerQueue()
		return nil
	})
}

// QueueActivated schedules owner's activated hooks for after the next flush.
func (rt *Runtime) QueueActivated(owner *Owner) {
	owner.inactive = stateActive
	rt.sched.activated = append(rt.sched.activated, owner)
}

// Flushing reports whether a flush is in progress.
func (rt *Runtime) Flushing() bool { return rt.sched.flushing }

func (rt *Runtime) flushSchedulerQueue() {
	s := &rt.sched
	start := time.Now()
	_, end := rt.tracer.Start(rt.ctx, "vtree.flush", attribute.Int("vtree.queue", len(s.queue)))
	s.flushing = true

	defer func() {
		if r := recover(); r != nil {
			s.onFlushed = nil
			s.reset()
			end(panicError(r))
			panic(r)
		}
	}()

	// Ascending ids run parents before children, and user watchers before
	// the render watcher of the same owner.
	slices.SortFunc(s.queue, func(a, b *Watcher) int { return cmp.Compare(a.id, b.id) })

	var runaway error
	ran := 0
	// The queue may grow while watchers run.
	for s.index = 0; s.index < len(s.queue); s.index++ {
		w := s.queue[s.index]
		if w.before != nil {
			w.before()
		}
		id := w.id
		delete(s.has, id)
		w.Run()
		ran++
		if s.has[id] {
			s.circular[id]++
			if s.circular[id] > rt.maxUpdateCount {
				err := errors.New("R001").
					WithInfo(w.expression).
					WithDetail(fmt.Sprintf("Watcher %d re-queued itself more than %d times in one flush.", id, rt.maxUpdateCount))
				rt.Warn(err, w.owner)
				rt.metrics.RunawayAbort()
				runaway = err
				break
			}
		}
	}

	activatedQueue := slices.Clone(s.activated)
	updatedQueue := slices.Clone(s.queue)
	onFlushed := s.onFlushed
	s.onFlushed = nil
	s.reset()

	callActivatedHooks(activatedQueue)
	callUpdatedHooks(updatedQueue)

	rt.metrics.ObserveFlush(time.Since(start), ran)
	end(runaway)
	rt.logger.Debug("flush",
		"watchers", ran,
		"duration", time.Since(start),
	)

	for _, l := range slices.Clone(rt.afterFlush) {
		l.fn()
	}
	for _, fn := range onFlushed {
		rt.invoke(fn, nil, "onNextFlush")
	}
}

func callActivatedHooks(queue []*Owner) {
	for _, o := range queue {
		o.inactive = stateInactive
		o.activate(true)
	}
}

func callUpdatedHooks(queue []*Watcher) {
	for i := len(queue) - 1; i >= 0; i-- {
		w := queue[i]
		o := w.owner
		if o != nil && o.renderWatcher == w && o.mounted && !o.destroyed {
			o.CallHook(HookUpdated)
		}
	}
}

// OnNextFlush runs fn after the pending flush completes, or on the next tick
// when no flush is pending.
func (rt *Runtime) OnNextFlush(fn func() error) {
	if rt.sched.waiting {
		rt.sched.onFlushed = append(rt.sched.onFlushed, fn)
		return
	}
	rt.NextTick(fn)
}

// AfterFlush registers fn to run after every flush. The returned function
// unregisters it.
func (rt *Runtime) AfterFlush(fn func()) (remove func()) {
	l := &flushListener{fn: fn}
	rt.afterFlush = append(rt.afterFlush, l)
	return func() {
		rt.afterFlush = slices.DeleteFunc(rt.afterFlush, func(x *flushListener) bool { return x == l })
	}
}
