// Package reactive provides dependency tracking, watchers and the batched
// update scheduler for vtree.
//
// All state lives behind a *Runtime. Reading a reactive slot while a watcher
// is evaluating subscribes that watcher to the slot's Dep; writing the slot
// notifies every subscriber. Non-sync watchers are queued and flushed once per
// tick in ascending id order.
//
// # Core Types
//
// Object and List are reactive containers. They become reactive once handed
// to Runtime.Observe (or created with Runtime.Reactive):
//
//	rt := reactive.New()
//	state := rt.Reactive(map[string]any{"count": 0})
//	state.Get("count")     // read (subscribes the active watcher)
//	state.Set("count", 1)  // write (notifies subscribers)
//
// Keys added after observation with Object.Set are plain; use Runtime.Set
// to add a reactive key and notify dependents.
//
// Ref[T] is a single reactive cell and Computed[T] a cached derived value:
//
//	n := reactive.NewRef(rt, 2)
//	sq := reactive.NewComputed(rt, nil, func() int { return n.Get() * n.Get() })
//
// Watch runs a callback when a path or function result changes:
//
//	unwatch := rt.Watch(owner, "todos", func(newV, oldV any) error {
//	    return nil
//	}, reactive.WatchDeep())
//	defer unwatch()
//
// # Ticks
//
// Deferred work (the scheduler flush and NextTick callbacks) is queued on the
// runtime and executed by Tick, or by the event loop started with Run. A
// Runtime is single-threaded: other goroutines must hand work to the loop with
// Dispatch.
package reactive
