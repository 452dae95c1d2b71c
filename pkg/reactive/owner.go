package reactive

import (
	"fmt"
	"slices"
)

// Hook identifies an owner lifecycle hook.
type Hook uint8

const (
	HookCreated Hook = iota + 1
	HookBeforeMount
	HookMounted
	HookBeforeUpdate
	HookUpdated
	HookActivated
	HookDeactivated
	HookBeforeDestroy
	HookDestroyed
)

// String returns a human-readable name for the hook.
func (h Hook) String() string {
	switch h {
	case HookCreated:
		return "created"
	case HookBeforeMount:
		return "beforeMount"
	case HookMounted:
		return "mounted"
	case HookBeforeUpdate:
		return "beforeUpdate"
	case HookUpdated:
		return "updated"
	case HookActivated:
		return "activated"
	case HookDeactivated:
		return "deactivated"
	case HookBeforeDestroy:
		return "beforeDestroy"
	case HookDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

type activeState uint8

const (
	stateUnset activeState = iota
	stateActive
	stateInactive
)

// Owner is a scope that owns watchers, lifecycle hooks and root state.
// Owners form a tree mirroring the component tree; errors raised in an owner
// propagate to its ancestors' ErrorCaptured hooks.
type Owner struct {
	rt     *Runtime
	id     uint64
	name   string
	parent *Owner

	children []*Owner
	watchers []*Watcher
	cleanups []func()

	renderWatcher *Watcher
	data          *Object

	hooks         map[Hook][]func() error
	errorCaptured []ErrorCapturedHook

	mounted        bool
	beingDestroyed bool
	destroyed      bool

	inactive       activeState
	directInactive bool
}

// NewOwner creates an owner. If parent is non-nil the owner is registered as
// its child.
func (rt *Runtime) NewOwner(name string, parent *Owner) *Owner {
	rt.ownerID++
	o := &Owner{
		rt:     rt,
		id:     rt.ownerID,
		name:   name,
		parent: parent,
		hooks:  make(map[Hook][]func() error),
	}
	if parent != nil {
		parent.children = append(parent.children, o)
	}
	return o
}

// ID returns the owner's unique identifier.
func (o *Owner) ID() uint64 { return o.id }

// Runtime returns the runtime the owner belongs to.
func (o *Owner) Runtime() *Runtime { return o.rt }

// Name returns the owner's name, or "Owner<id>" if it has none.
func (o *Owner) Name() string {
	if o == nil {
		return ""
	}
	if o.name == "" {
		return fmt.Sprintf("Owner<%d>", o.id)
	}
	return o.name
}

// Parent returns the parent owner, or nil.
func (o *Owner) Parent() *Owner { return o.parent }

// Children returns a snapshot of the child owners.
func (o *Owner) Children() []*Owner { return slices.Clone(o.children) }

// RenderWatcher returns the owner's render watcher, or nil.
func (o *Owner) RenderWatcher() *Watcher { return o.renderWatcher }

// Watchers returns a snapshot of the watchers created on the owner.
func (o *Owner) Watchers() []*Watcher { return slices.Clone(o.watchers) }

// IsMounted reports whether MarkMounted was called.
func (o *Owner) IsMounted() bool { return o.mounted }

// IsDestroyed reports whether Dispose completed.
func (o *Owner) IsDestroyed() bool { return o.destroyed }

// IsBeingDestroyed reports whether Dispose has started.
func (o *Owner) IsBeingDestroyed() bool { return o.beingDestroyed }

// IsInactive reports whether the owner is deactivated.
func (o *Owner) IsInactive() bool { return o.inactive == stateInactive }

// MarkMounted flags the owner as mounted and calls its mounted hooks.
func (o *Owner) MarkMounted() {
	o.mounted = true
	o.CallHook(HookMounted)
}

// SetData observes data as the owner's root state. Keys cannot be added to or
// deleted from root state through Runtime.Set and Runtime.Delete.
func (o *Owner) SetData(data *Object) {
	if o.data != nil {
		if ob := o.data.ob; ob != nil {
			ob.vmCount--
		}
	}
	o.data = data
	if data != nil {
		o.rt.observe(data, true)
	}
}

// Data returns the owner's root state.
func (o *Owner) Data() *Object { return o.data }

// On registers fn for hook h.
func (o *Owner) On(h Hook, fn func() error) {
	o.hooks[h] = append(o.hooks[h], fn)
}

// OnErrorCaptured registers a hook that sees errors raised in descendants.
func (o *Owner) OnErrorCaptured(fn ErrorCapturedHook) {
	o.errorCaptured = append(o.errorCaptured, fn)
}

// OnCleanup registers fn to run during Dispose. Cleanups run in reverse
// registration order. On a destroyed owner fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.destroyed {
		fn()
		return
	}
	o.cleanups = append(o.cleanups, fn)
}

// CallHook invokes the hooks registered for h. Hooks run without an active
// watcher; errors go to HandleError.
func (o *Owner) CallHook(h Hook) {
	fns := o.hooks[h]
	if len(fns) == 0 {
		return
	}
	info := h.String() + " hook"
	o.rt.Untracked(func() {
		for _, fn := range fns {
			o.rt.invoke(fn, o, info)
		}
	})
}

func (o *Owner) removeWatcher(w *Watcher) {
	o.watchers = slices.DeleteFunc(o.watchers, func(x *Watcher) bool { return x == w })
}

func (o *Owner) removeChild(child *Owner) {
	o.children = slices.DeleteFunc(o.children, func(x *Owner) bool { return x == child })
}

// Dispose tears down the owner: beforeDestroy hooks, detach from the parent,
// teardown of every watcher, release of root state, cleanups, remaining
// children (last created first), destroyed hooks. Calling it again is a
// no-op.
func (o *Owner) Dispose() {
	if o.beingDestroyed {
		return
	}
	o.CallHook(HookBeforeDestroy)
	o.beingDestroyed = true

	if p := o.parent; p != nil && !p.beingDestroyed {
		p.removeChild(o)
	}

	if o.renderWatcher != nil {
		o.renderWatcher.Teardown()
	}
	for i := len(o.watchers) - 1; i >= 0; i-- {
		o.watchers[i].Teardown()
	}

	if o.data != nil && o.data.ob != nil {
		o.data.ob.vmCount--
	}

	cleanups := o.cleanups
	o.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	children := o.children
	o.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.destroyed = true
	o.CallHook(HookDestroyed)
}

// Deactivate takes the owner and its subtree out of service without
// destroying it. deactivated hooks run child-first.
func (o *Owner) Deactivate(direct bool) {
	if direct {
		o.directInactive = true
		if o.inInactiveTree() {
			return
		}
	}
	if o.inactive == stateInactive {
		return
	}
	o.inactive = stateInactive
	for _, c := range o.children {
		c.Deactivate(false)
	}
	o.CallHook(HookDeactivated)
}

// Activate brings a deactivated subtree back. Inside a flush, use
// Runtime.QueueActivated instead so hooks run after the flush.
func (o *Owner) Activate() {
	o.activate(true)
}

func (o *Owner) activate(direct bool) {
	if direct {
		o.directInactive = false
		if o.inInactiveTree() {
			return
		}
	} else if o.directInactive {
		return
	}
	if o.inactive == stateActive {
		return
	}
	o.inactive = stateActive
	for _, c := range o.children {
		c.activate(false)
	}
	o.CallHook(HookActivated)
}

func (o *Owner) inInactiveTree() bool {
	for p := o.parent; p != nil; p = p.parent {
		if p.inactive == stateInactive {
			return true
		}
	}
	return false
}
