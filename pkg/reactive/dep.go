package reactive

import (
	"cmp"
	"slices"
)

// Subscriber is notified when a Dep it subscribed to changes.
type Subscriber interface {
	ID() uint64
	Update()
}

// Dep is the publish point of one reactive slot or container.
type Dep struct {
	rt   *Runtime
	id   uint64
	subs []Subscriber
}

// NewDep creates a Dep bound to rt.
func (rt *Runtime) NewDep() *Dep {
	rt.depID++
	return &Dep{rt: rt, id: rt.depID}
}

// ID returns the dep's unique identifier.
func (d *Dep) ID() uint64 { return d.id }

// Subs returns a snapshot of the current subscribers.
func (d *Dep) Subs() []Subscriber {
	return slices.Clone(d.subs)
}

// AddSub subscribes s.
func (d *Dep) AddSub(s Subscriber) {
	d.subs = append(d.subs, s)
}

// RemoveSub unsubscribes s. Removing an absent subscriber is a no-op.
func (d *Dep) RemoveSub(s Subscriber) {
	if i := slices.Index(d.subs, s); i >= 0 {
		d.subs = slices.Delete(d.subs, i, i+1)
	}
}

// Depend registers the active watcher, if any, as a subscriber.
func (d *Dep) Depend() {
	if t := d.rt.Target(); t != nil {
		t.addDep(d)
	}
}

// Notify calls Update on a snapshot of the subscribers, so subscribers may
// subscribe or unsubscribe while being notified.
func (d *Dep) Notify() {
	subs := slices.Clone(d.subs)
	if d.rt.sync {
		// The scheduler does not sort in sync mode.
		slices.SortFunc(subs, func(a, b Subscriber) int {
			return cmp.Compare(a.ID(), b.ID())
		})
	}
	for _, s := range subs {
		s.Update()
	}
}
