package reactive

import mapset "github.com/deckarep/golang-set/v2"

// traverse reads every nested slot of v so the active watcher depends on
// all of them.
func (rt *Runtime) traverse(v any) {
	seen := mapset.NewThreadUnsafeSet[uint64]()
	traverseValue(v, seen)
}

func traverseValue(v any, seen mapset.Set[uint64]) {
	if ob := observerOf(v); ob != nil {
		if !seen.Add(ob.dep.id) {
			return
		}
	}
	switch c := v.(type) {
	case *List:
		if c == nil {
			return
		}
		items := c.Items()
		for i := len(items) - 1; i >= 0; i-- {
			traverseValue(items[i], seen)
		}
	case *Object:
		if c == nil {
			return
		}
		keys := c.Keys()
		for i := len(keys) - 1; i >= 0; i-- {
			traverseValue(c.Get(keys[i]), seen)
		}
	}
}
