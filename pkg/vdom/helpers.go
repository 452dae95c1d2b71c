package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Comment creates a comment node.
func Comment(text string) *VNode {
	return &VNode{
		Kind: KindComment,
		Text: text,
	}
}

// Empty creates the placeholder a render leaves where nothing is shown.
func Empty() *VNode {
	return Comment("")
}

// Clone returns a shallow copy of vnode without its host node, so a
// descriptor that was already patched can be placed again. Children are
// cloned recursively.
func Clone(vnode *VNode) *VNode {
	cloned := &VNode{
		Kind:      vnode.Kind,
		Tag:       vnode.Tag,
		Key:       vnode.Key,
		Text:      vnode.Text,
		Context:   vnode.Context,
		Component: vnode.Component,
		IsStatic:  vnode.IsStatic,
		IsCloned:  true,
	}
	if vnode.Data != nil {
		d := *vnode.Data
		d.PendingInsert = nil
		d.invokers = nil
		cloned.Data = &d
	}
	if vnode.Children != nil {
		cloned.Children = make([]*VNode, len(vnode.Children))
		for i, c := range vnode.Children {
			cloned.Children[i] = Clone(c)
		}
	}
	return cloned
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to VNodes, dropping nil results.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}
