package reactive

import "slices"

// List is a reactive ordered collection. Element writes go through the
// mutating methods, each of which notifies the list's dep once. Index
// assignment and removal use Runtime.Set and Runtime.Delete.
type List struct {
	ob    *Observer
	items []any
}

// NewList returns an unobserved List holding items.
func NewList(items ...any) *List {
	return &List{items: slices.Clone(items)}
}

// Observer returns the list's observer, or nil if it is not observed.
func (l *List) Observer() *Observer { return l.ob }

func (l *List) depend() {
	if l.ob != nil {
		l.ob.dep.Depend()
	}
}

// mutated observes items[from:to] and notifies.
func (l *List) mutated(from, to int) {
	if l.ob == nil {
		return
	}
	l.ob.observeArray(l.items[from:to])
	l.ob.dep.Notify()
}

// Len returns the number of elements.
func (l *List) Len() int {
	l.depend()
	return len(l.items)
}

// At returns the element at i, or nil when i is out of range.
func (l *List) At(i int) any {
	l.depend()
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Items returns a copy of the elements.
func (l *List) Items() []any {
	l.depend()
	return slices.Clone(l.items)
}

// Push appends items and returns the new length.
func (l *List) Push(items ...any) int {
	n := len(l.items)
	l.items = append(l.items, items...)
	l.mutated(n, len(l.items))
	return len(l.items)
}

// Pop removes and returns the last element.
func (l *List) Pop() any {
	var v any
	if n := len(l.items); n > 0 {
		v = l.items[n-1]
		l.items[n-1] = nil
		l.items = l.items[:n-1]
	}
	l.mutated(0, 0)
	return v
}

// Shift removes and returns the first element.
func (l *List) Shift() any {
	var v any
	if len(l.items) > 0 {
		v = l.items[0]
		l.items = slices.Delete(l.items, 0, 1)
	}
	l.mutated(0, 0)
	return v
}

// Unshift prepends items and returns the new length.
func (l *List) Unshift(items ...any) int {
	l.items = slices.Insert(l.items, 0, items...)
	l.mutated(0, len(items))
	return len(l.items)
}

// Splice removes deleteCount elements at start, inserts items in their place
// and returns the removed elements. A negative start counts from the end.
func (l *List) Splice(start, deleteCount int, items ...any) []any {
	n := len(l.items)
	if start < 0 {
		start = max(n+start, 0)
	}
	start = min(start, n)
	deleteCount = min(max(deleteCount, 0), n-start)

	removed := slices.Clone(l.items[start : start+deleteCount])
	l.items = slices.Replace(l.items, start, start+deleteCount, items...)
	l.mutated(start, start+len(items))
	return removed
}

// Sort sorts the elements in place with cmp.
func (l *List) Sort(cmp func(a, b any) int) {
	slices.SortStableFunc(l.items, cmp)
	l.mutated(0, 0)
}

// Reverse reverses the elements in place.
func (l *List) Reverse() {
	slices.Reverse(l.items)
	l.mutated(0, 0)
}

// ToSlice returns a deep copy with nested containers converted to
// map[string]any and []any. Reads are tracked.
func (l *List) ToSlice() []any {
	l.depend()
	out := make([]any, len(l.items))
	for i, v := range l.items {
		out[i] = toPlain(v)
	}
	return out
}
