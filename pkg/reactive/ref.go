package reactive

// Ref is a single reactive cell.
//
//	count := reactive.NewRef(rt, 0)
//	count.Set(count.Get() + 1)
type Ref[T any] struct {
	s slot
}

// NewRef creates a Ref holding v. Observed containers stored in a Ref are
// tracked deeply; plain maps and slices are stored as-is.
func NewRef[T any](rt *Runtime, v T) *Ref[T] {
	r := &Ref[T]{s: slot{dep: rt.NewDep(), keepType: true}}
	r.s.value, r.s.childOb = rt.observeValue(any(v), false, false)
	return r
}

// Get returns the value, subscribing the active watcher.
func (r *Ref[T]) Get() T {
	v, _ := r.s.get().(T)
	return v
}

// Peek returns the value without subscribing.
func (r *Ref[T]) Peek() T {
	v, _ := r.s.value.(T)
	return v
}

// Set stores v and notifies subscribers if it differs from the current value.
func (r *Ref[T]) Set(v T) {
	r.s.set(any(v))
}

// Update sets the value to fn applied to the current value.
func (r *Ref[T]) Update(fn func(T) T) {
	r.Set(fn(r.Peek()))
}

// Dep returns the ref's dep.
func (r *Ref[T]) Dep() *Dep { return r.s.dep }
