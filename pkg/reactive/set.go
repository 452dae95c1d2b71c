package reactive

import (
	"fmt"

	"github.com/vango-dev/vtree/internal/errors"
)

// Set writes key on target and returns val. On a *List, key is an index;
// indexes past the end grow the list. On an observed *Object, a new key is
// installed as a reactive slot and the object's dependents are notified.
// Adding keys to root state is refused with a warning.
func (rt *Runtime) Set(target, key, val any) any {
	switch t := target.(type) {
	case *List:
		i, ok := key.(int)
		if t == nil || !ok || i < 0 {
			rt.warnBadTarget(target, key)
			return val
		}
		if i > len(t.items) {
			t.items = append(t.items, make([]any, i-len(t.items))...)
		}
		t.Splice(i, 1, val)
		return val

	case *Object:
		k, ok := key.(string)
		if t == nil || !ok {
			rt.warnBadTarget(target, key)
			return val
		}
		if _, exists := t.slots[k]; exists {
			t.Set(k, val)
			return val
		}
		ob := t.ob
		if ob != nil && ob.vmCount > 0 {
			rt.Warn(errors.New("R005").
				WithInfo(fmt.Sprintf("key %q", k)).
				WithSuggestion("Declare the key in the initial state"), nil)
			return val
		}
		if ob == nil {
			t.Set(k, val)
			return val
		}
		ob.rt.DefineReactive(t, k, val, false)
		ob.dep.Notify()
		return val
	}

	rt.warnBadTarget(target, key)
	return val
}

// Delete removes key from target and notifies dependents.
func (rt *Runtime) Delete(target, key any) {
	switch t := target.(type) {
	case *List:
		i, ok := key.(int)
		if t == nil || !ok || i < 0 {
			rt.warnBadTarget(target, key)
			return
		}
		t.Splice(i, 1)
		return

	case *Object:
		k, ok := key.(string)
		if t == nil || !ok {
			rt.warnBadTarget(target, key)
			return
		}
		ob := t.ob
		if ob != nil && ob.vmCount > 0 {
			rt.Warn(errors.New("R006").
				WithInfo(fmt.Sprintf("key %q", k)), nil)
			return
		}
		if !t.remove(k) || ob == nil {
			return
		}
		ob.dep.Notify()
		return
	}

	rt.warnBadTarget(target, key)
}

func (rt *Runtime) warnBadTarget(target, key any) {
	rt.Warn(errors.New("R004").
		WithInfo(fmt.Sprintf("%T[%v]", target, key)), nil)
}
