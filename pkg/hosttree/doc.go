// Package hosttree is an in-memory host for the vdom patcher.
//
// A Tree implements vdom.Host, vdom.AttrHost and vdom.EventHost. Every
// mutation the patcher performs is applied to the tree and recorded as an
// Op, so the same batch can be replayed by a remote client:
//
//	tree := hosttree.New()
//	p := vdom.NewPatcher(tree, vdom.DefaultModules(tree))
//	p.Patch(tree.Root(), nil, vnode)
//	ops := tree.Flush()
//
// Nodes are numbered in creation order starting at 1 for the root. Ids are
// never reused, which lets events coming back from a client be routed with
// Dispatch.
package hosttree
