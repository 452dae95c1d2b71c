package reactive

// Computed is a cached value derived from other reactive state. It is
// evaluated lazily and re-evaluated only after a dependency changes.
type Computed[T any] struct {
	w *Watcher
}

// NewComputed creates a computed value on owner, which may be nil.
func NewComputed[T any](rt *Runtime, owner *Owner, fn func() T) *Computed[T] {
	w := rt.NewWatcher(owner, func() any { return fn() }, nil, AsComputed())
	return &Computed[T]{w: w}
}

// Get returns the value, subscribing the active watcher.
func (c *Computed[T]) Get() T {
	c.w.Depend()
	v, _ := c.w.Evaluate().(T)
	return v
}

// Watcher returns the underlying watcher.
func (c *Computed[T]) Watcher() *Watcher { return c.w }
