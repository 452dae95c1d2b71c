// Package vdom provides the virtual tree descriptors and the patcher that
// reconciles them against a host tree.
//
// # Core Types
//
// VNode describes one host node: an element, text, comment or a child
// component placeholder. VNodeData carries the per-aspect data (attributes,
// listeners, refs) and the VNode hooks. Descriptors are produced fresh by
// every render; the patcher records the host node each one produced in Elm.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"), Key(item.ID),
//	    H1("Title"),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// # Patching
//
// Patcher.Patch(parent, old, new) applies the difference between two trees
// through the Host interface. Two descriptors are patched in place only when
// they share key, kind, tag, data presence and input type; anything else is
// replaced. Child lists are reconciled with a four-pointer walk from both
// ends, falling back to a key lookup, so reordering keyed children moves host
// nodes instead of recreating them.
//
// Modules (Attributes, Events, and the built-in refs module) receive create,
// activate, update, remove and destroy calls at the matching phases.
package vdom
