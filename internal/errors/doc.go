// Package errors provides structured, coded errors for vtree.
//
// Every diagnostic the runtime and the reconciler report carries a short code
// that maps to a registered template:
//   - R0xx: reactive runtime (watchers, scheduler, set/delete)
//   - P0xx: patching and reconciliation
//   - C0xx: configuration
//   - W0xx: wire protocol
//
// # Usage
//
//	err := errors.New("R001").
//	    WithOwner("TodoList").
//	    WithInfo("watcher 12").
//	    WithSuggestion("Check for a watcher that writes state it also reads")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR R001: Possible infinite update loop
//	//
//	//   in TodoList (watcher 12)
//	//
//	//   A watcher was re-queued more times than the scheduler allows in a single flush.
//	//
//	//   Hint: Check for a watcher that writes state it also reads
package errors
