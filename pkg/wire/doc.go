// Package wire streams a hosttree to a browser over a websocket.
//
// A session owns one reactive runtime and one tree. The first frame holds
// the mounted markup with data-vid node ids. Every scheduler flush that
// mutates the tree produces one more frame holding its ops, in order, with
// the tree checksum after they apply. Clients send events addressed by
// node id; they are dispatched to the listeners the patcher registered.
//
// Frames and events are msgpack encoded:
//
//	mux.Handle("/ws", &wire.Handler{
//		Config: wire.DefaultConfig(),
//		Mount: func(rt *reactive.Runtime, tree *hosttree.Tree) {
//			render.New(rt, tree).Mount(tree.Root(), app, nil)
//		},
//	})
package wire
