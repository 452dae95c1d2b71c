package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepAddRemoveSub(t *testing.T) {
	rt, _ := newTestRuntime(t)
	d := rt.NewDep()
	a, b := &testSub{id: 1}, &testSub{id: 2}

	d.AddSub(a)
	d.AddSub(b)
	assert.Len(t, d.Subs(), 2)

	d.RemoveSub(a)
	d.RemoveSub(a)
	assert.Equal(t, []Subscriber{b}, d.Subs())

	d.Notify()
	assert.Equal(t, 0, a.updates)
	assert.Equal(t, 1, b.updates)
}

func TestDepNotifySnapshotsSubscribers(t *testing.T) {
	rt, _ := newTestRuntime(t)
	d := rt.NewDep()
	b := &testSub{id: 2}
	late := &testSub{id: 3}
	a := &testSub{id: 1}
	a.onUpdate = func() {
		d.RemoveSub(b)
		d.AddSub(late)
	}
	d.AddSub(a)
	d.AddSub(b)

	d.Notify()

	assert.Equal(t, 1, a.updates)
	assert.Equal(t, 1, b.updates, "removed mid-notify but part of the snapshot")
	assert.Equal(t, 0, late.updates, "added mid-notify so not part of the snapshot")
}

func TestDepNotifySortsInSyncMode(t *testing.T) {
	rt, _ := newTestRuntime(t, WithSync(true))
	d := rt.NewDep()

	var order []uint64
	for _, id := range []uint64{3, 1, 2} {
		s := &testSub{id: id}
		s.onUpdate = func() { order = append(order, s.id) }
		d.AddSub(s)
	}
	d.Notify()

	assert.Equal(t, []uint64{1, 2, 3}, order)
}

func TestDepDependWithoutTarget(t *testing.T) {
	rt, _ := newTestRuntime(t)
	d := rt.NewDep()
	d.Depend()
	assert.Empty(t, d.Subs())
}

func TestDepIDsIncrease(t *testing.T) {
	rt, _ := newTestRuntime(t)
	a, b := rt.NewDep(), rt.NewDep()
	assert.Less(t, a.ID(), b.ID())
}
