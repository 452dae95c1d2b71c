package reactive

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/vango-dev/vtree/internal/errors"
)

// Callback is invoked by a watcher when its value changes.
type Callback func(newValue, oldValue any) error

// Watcher evaluates a getter, records the deps it read and re-evaluates when
// one of them notifies.
type Watcher struct {
	rt         *Runtime
	id         uint64
	owner      *Owner
	expression string
	getter     func() any
	cb         Callback
	before     func()

	deep     bool
	user     bool
	computed bool
	sync     bool
	render   bool

	dirty  bool
	active bool

	deps      []*Dep
	newDeps   []*Dep
	depIDs    mapset.Set[uint64]
	newDepIDs mapset.Set[uint64]

	value any

	// dep lets a computed watcher be depended on by other watchers.
	dep *Dep
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// Deep makes the watcher traverse its value so nested changes trigger it.
func Deep() WatcherOption {
	return func(w *Watcher) { w.deep = true }
}

// Sync runs the watcher as soon as a dep notifies, bypassing the scheduler.
func Sync() WatcherOption {
	return func(w *Watcher) { w.sync = true }
}

// User marks the watcher as user-defined: getter and callback errors are
// reported through the error handler instead of propagating.
func User() WatcherOption {
	return func(w *Watcher) { w.user = true }
}

// AsComputed makes the watcher lazy. It evaluates on first Evaluate and
// notifies its own dep when its value changes.
func AsComputed() WatcherOption {
	return func(w *Watcher) { w.computed = true }
}

// AsRender registers the watcher as its owner's render watcher.
func AsRender() WatcherOption {
	return func(w *Watcher) { w.render = true }
}

// Before sets a hook the scheduler calls right before running the watcher.
func Before(fn func()) WatcherOption {
	return func(w *Watcher) { w.before = fn }
}

// Expression sets the description used in diagnostics.
func Expression(expr string) WatcherOption {
	return func(w *Watcher) { w.expression = expr }
}

// NewWatcher creates a watcher on owner (which may be nil). Non-computed
// watchers evaluate getter immediately.
func (rt *Runtime) NewWatcher(owner *Owner, getter func() any, cb Callback, opts ...WatcherOption) *Watcher {
	rt.watcherID++
	w := &Watcher{
		rt:        rt,
		id:        rt.watcherID,
		owner:     owner,
		getter:    getter,
		cb:        cb,
		active:    true,
		depIDs:    mapset.NewThreadUnsafeSet[uint64](),
		newDepIDs: mapset.NewThreadUnsafeSet[uint64](),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.getter == nil {
		w.getter = func() any { return nil }
	}
	if w.expression == "" {
		w.expression = fmt.Sprintf("watcher %d", w.id)
	}
	if owner != nil {
		if w.render {
			owner.renderWatcher = w
		}
		owner.watchers = append(owner.watchers, w)
	}

	if w.computed {
		w.dirty = true
		w.dep = rt.NewDep()
	} else {
		w.value, _ = w.get()
	}
	return w
}

// ID returns the watcher id. Ids increase in construction order.
func (w *Watcher) ID() uint64 { return w.id }

// Owner returns the owner the watcher was created on.
func (w *Watcher) Owner() *Owner { return w.owner }

// Value returns the last evaluated value without re-evaluating.
func (w *Watcher) Value() any { return w.value }

// Active reports whether the watcher has not been torn down.
func (w *Watcher) Active() bool { return w.active }

// Dirty reports whether a computed watcher needs re-evaluation.
func (w *Watcher) Dirty() bool { return w.dirty }

// Deps returns the deps recorded by the most recent evaluation.
func (w *Watcher) Deps() []*Dep {
	out := make([]*Dep, len(w.deps))
	copy(out, w.deps)
	return out
}

// Role names the watcher kind for diagnostics and metrics.
func (w *Watcher) Role() string {
	switch {
	case w.render:
		return "render"
	case w.computed:
		return "computed"
	case w.user:
		return "user"
	}
	return "watcher"
}

// get evaluates the getter while collecting deps. ok is false when a user
// watcher's getter failed; value is then the previous value.
func (w *Watcher) get() (value any, ok bool) {
	w.rt.pushTarget(w)
	w.rt.metrics.WatcherRun(w.Role())
	defer func() {
		r := recover()
		if r == nil && w.deep {
			w.rt.traverse(value)
		}
		w.rt.popTarget()
		w.cleanupDeps()
		if r == nil {
			return
		}
		if !w.user {
			panic(r)
		}
		err := errors.New("R002").Wrap(panicError(r))
		w.rt.HandleError(err, w.owner, fmt.Sprintf("getter for watcher %q", w.expression))
		value, ok = w.value, false
	}()
	return w.getter(), true
}

func (w *Watcher) addDep(d *Dep) {
	id := d.id
	if w.newDepIDs.Contains(id) {
		return
	}
	w.newDepIDs.Add(id)
	w.newDeps = append(w.newDeps, d)
	if !w.depIDs.Contains(id) {
		d.AddSub(w)
	}
}

// cleanupDeps drops subscriptions the last evaluation did not renew and
// swaps the dep buffers.
func (w *Watcher) cleanupDeps() {
	for i := len(w.deps) - 1; i >= 0; i-- {
		if d := w.deps[i]; !w.newDepIDs.Contains(d.id) {
			d.RemoveSub(w)
		}
	}
	w.depIDs, w.newDepIDs = w.newDepIDs, w.depIDs
	w.newDepIDs.Clear()
	w.deps, w.newDeps = w.newDeps, w.deps
	clear(w.newDeps)
	w.newDeps = w.newDeps[:0]
}

// Update is called when a dep changes.
func (w *Watcher) Update() {
	switch {
	case w.computed:
		if len(w.dep.subs) == 0 {
			// Nobody reads it; recompute on the next Evaluate.
			w.dirty = true
			return
		}
		w.getAndInvoke(func(any, any) error {
			w.dep.Notify()
			return nil
		})
	case w.sync:
		w.Run()
	default:
		w.rt.queueWatcher(w)
	}
}

// Run re-evaluates the watcher and invokes its callback on change.
func (w *Watcher) Run() {
	if w.active {
		w.getAndInvoke(w.cb)
	}
}

func (w *Watcher) getAndInvoke(cb Callback) {
	value, ok := w.get()
	if !ok {
		return
	}
	if sameValue(value, w.value) && !isObject(value) && !w.deep {
		return
	}
	old := w.value
	w.value = value
	w.dirty = false
	if cb == nil {
		return
	}
	if w.user {
		w.rt.invoke(func() error { return cb(value, old) }, w.owner,
			fmt.Sprintf("callback for watcher %q", w.expression))
		return
	}
	if err := cb(value, old); err != nil {
		w.rt.HandleError(errors.New("R003").Wrap(err), w.owner, w.expression)
	}
}

// Evaluate returns the value of a computed watcher, re-evaluating if dirty.
func (w *Watcher) Evaluate() any {
	if w.dirty {
		w.value, _ = w.get()
		w.dirty = false
	}
	return w.value
}

// Depend subscribes the active watcher to this computed watcher.
func (w *Watcher) Depend() {
	if w.dep != nil && w.rt.Target() != nil {
		w.dep.Depend()
	}
}

// Teardown unsubscribes the watcher from all its deps. It is a no-op on an
// inactive watcher.
func (w *Watcher) Teardown() {
	if !w.active {
		return
	}
	if w.owner != nil && !w.owner.beingDestroyed {
		w.owner.removeWatcher(w)
	}
	for i := len(w.deps) - 1; i >= 0; i-- {
		w.deps[i].RemoveSub(w)
	}
	w.active = false
}
