package reactive

// Observer is attached to every observed Object or List. Its dep is notified
// on structural changes: list mutations and keys added or deleted through
// Runtime.Set and Runtime.Delete.
type Observer struct {
	rt    *Runtime
	value any
	dep   *Dep

	// vmCount is the number of owners using the value as root state.
	vmCount int
}

// Value returns the observed container, an *Object or a *List.
func (ob *Observer) Value() any { return ob.value }

// Dep returns the container-level dep.
func (ob *Observer) Dep() *Dep { return ob.dep }

// VMCount returns how many owners use the value as root state.
func (ob *Observer) VMCount() int { return ob.vmCount }

// Observe makes value reactive and returns its observer. Values that already
// carry an observer get it back unchanged. Plain map[string]any and []any
// values are converted to an *Object or *List, available through
// Observer.Value. Any other value returns nil.
func (rt *Runtime) Observe(value any) *Observer {
	_, ob := rt.observe(value, false)
	return ob
}

// Reactive converts m into an observed *Object. Keys are installed in sorted
// order.
func (rt *Runtime) Reactive(m map[string]any) *Object {
	o := ObjectFrom(m)
	rt.observe(o, false)
	return o
}

// ReactiveList returns an observed *List holding items.
func (rt *Runtime) ReactiveList(items ...any) *List {
	l := NewList(items...)
	rt.observe(l, false)
	return l
}

func (rt *Runtime) observe(value any, asRoot bool) (any, *Observer) {
	return rt.observeValue(value, asRoot, true)
}

// observeValue returns the value to store, which differs from value only when
// a plain container was converted.
func (rt *Runtime) observeValue(value any, asRoot, convert bool) (any, *Observer) {
	var ob *Observer
	switch v := value.(type) {
	case *Object:
		if v == nil {
			return value, nil
		}
		if v.ob != nil {
			ob = v.ob
		} else if rt.shouldObserve {
			ob = rt.newObserver(v)
		}
	case *List:
		if v == nil {
			return value, nil
		}
		if v.ob != nil {
			ob = v.ob
		} else if rt.shouldObserve {
			ob = rt.newObserver(v)
		}
	case map[string]any:
		if !convert || !rt.shouldObserve || v == nil {
			return value, nil
		}
		o := ObjectFrom(v)
		value, ob = o, rt.newObserver(o)
	case []any:
		if !convert || !rt.shouldObserve || v == nil {
			return value, nil
		}
		l := NewList(v...)
		value, ob = l, rt.newObserver(l)
	default:
		return value, nil
	}
	if asRoot && ob != nil {
		ob.vmCount++
	}
	return value, ob
}

func (rt *Runtime) newObserver(value any) *Observer {
	ob := &Observer{rt: rt, value: value, dep: rt.NewDep()}
	switch v := value.(type) {
	case *Object:
		v.ob = ob
		ob.walk(v)
	case *List:
		v.ob = ob
		ob.observeArray(v.items)
	}
	return ob
}

// walk installs a reactive slot for every key.
func (ob *Observer) walk(o *Object) {
	for _, k := range o.keys {
		ob.rt.DefineReactive(o, k, o.slots[k].value, false)
	}
}

// observeArray observes items in place.
func (ob *Observer) observeArray(items []any) {
	for i := range items {
		items[i], _ = ob.rt.observe(items[i], false)
	}
}

// DefineReactive installs key on o as a reactive slot holding val, replacing
// any slot already there. Shallow slots do not observe their value.
func (rt *Runtime) DefineReactive(o *Object, key string, val any, shallow bool) {
	s := o.slots[key]
	if s == nil {
		s = &slot{}
		o.slots[key] = s
		o.keys = append(o.keys, key)
	}
	s.dep = rt.NewDep()
	s.shallow = shallow
	s.childOb = nil
	if !shallow {
		val, s.childOb = rt.observe(val, false)
	}
	s.value = val
}

func observerOf(v any) *Observer {
	switch c := v.(type) {
	case *Object:
		if c != nil {
			return c.ob
		}
	case *List:
		if c != nil {
			return c.ob
		}
	}
	return nil
}

// dependArray subscribes the active watcher to every nested container of l,
// since list elements have no per-index slot.
func dependArray(l *List) {
	for _, e := range l.items {
		if ob := observerOf(e); ob != nil {
			ob.dep.Depend()
		}
		if nested, ok := e.(*List); ok && nested != nil {
			dependArray(nested)
		}
	}
}

// slot is one reactive property.
type slot struct {
	value   any
	dep     *Dep
	childOb *Observer
	shallow bool

	// keepType observes existing containers but never converts plain ones.
	keepType bool
}

func (s *slot) get() any {
	if s.dep != nil && s.dep.rt.Target() != nil {
		s.dep.Depend()
		if s.childOb != nil {
			s.childOb.dep.Depend()
			if l, ok := s.value.(*List); ok {
				dependArray(l)
			}
		}
	}
	return s.value
}

func (s *slot) set(v any) {
	if s.dep == nil {
		s.value = v
		return
	}
	if sameValue(v, s.value) {
		return
	}
	s.childOb = nil
	if !s.shallow {
		v, s.childOb = s.dep.rt.observeValue(v, false, !s.keepType)
	}
	s.value = v
	s.dep.Notify()
}
