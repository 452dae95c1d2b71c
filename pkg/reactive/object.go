package reactive

import (
	"maps"
	"slices"
)

// Object is an ordered string-keyed container. Once observed, every key
// present at observation time is a reactive slot.
type Object struct {
	ob    *Observer
	keys  []string
	slots map[string]*slot
}

// NewObject returns an empty, unobserved Object.
func NewObject() *Object {
	return &Object{slots: make(map[string]*slot)}
}

// ObjectFrom returns an unobserved Object holding m's entries in sorted key
// order.
func ObjectFrom(m map[string]any) *Object {
	o := NewObject()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		o.Set(k, m[k])
	}
	return o
}

// Observer returns the object's observer, or nil if it is not observed.
func (o *Object) Observer() *Observer { return o.ob }

func (o *Object) dependShape() {
	if o.ob != nil {
		o.ob.dep.Depend()
	}
}

// Get returns the value at key. Reading a reactive slot subscribes the
// active watcher; reading a missing key subscribes it to the object's shape.
func (o *Object) Get(key string) any {
	v, _ := o.Lookup(key)
	return v
}

// Lookup is Get with a presence flag.
func (o *Object) Lookup(key string) (any, bool) {
	s, ok := o.slots[key]
	if !ok {
		o.dependShape()
		return nil, false
	}
	return s.get(), true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	o.dependShape()
	_, ok := o.slots[key]
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	o.dependShape()
	return slices.Clone(o.keys)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	o.dependShape()
	return len(o.keys)
}

// Set writes key. Writing an existing reactive slot notifies its
// subscribers. A key that does not exist yet is added as a plain slot even on
// an observed object; use Runtime.Set to add a reactive key.
func (o *Object) Set(key string, v any) {
	if s, ok := o.slots[key]; ok {
		s.set(v)
		return
	}
	o.slots[key] = &slot{value: v}
	o.keys = append(o.keys, key)
}

// IsReactive reports whether key is installed as a reactive slot.
func (o *Object) IsReactive(key string) bool {
	s, ok := o.slots[key]
	return ok && s.dep != nil
}

// Dep returns the dep of the reactive slot at key, or nil.
func (o *Object) Dep(key string) *Dep {
	if s, ok := o.slots[key]; ok {
		return s.dep
	}
	return nil
}

func (o *Object) remove(key string) bool {
	if _, ok := o.slots[key]; !ok {
		return false
	}
	delete(o.slots, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
	return true
}

// ToMap returns a deep copy of the object with nested containers converted to
// map[string]any and []any. Reads are tracked.
func (o *Object) ToMap() map[string]any {
	out := make(map[string]any, len(o.keys))
	for _, k := range o.Keys() {
		out[k] = toPlain(o.Get(k))
	}
	return out
}

func toPlain(v any) any {
	switch c := v.(type) {
	case *Object:
		if c != nil {
			return c.ToMap()
		}
	case *List:
		if c != nil {
			return c.ToSlice()
		}
	}
	return v
}
