package vdom

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vtree/internal/errors"
)

// fakeNode is a minimal host node.
type fakeNode struct {
	tag       string
	text      string
	comment   bool
	parent    *fakeNode
	children  []*fakeNode
	attrs     map[string]string
	listeners map[string]func(*Event)
}

func (n *fakeNode) String() string {
	switch {
	case n.comment:
		return "<!--" + n.text + "-->"
	case n.tag == "":
		return n.text
	}
	var b strings.Builder
	b.WriteString("<" + n.tag + ">")
	for _, c := range n.children {
		b.WriteString(c.String())
	}
	b.WriteString("</" + n.tag + ">")
	return b.String()
}

// fakeHost records every call it receives.
type fakeHost struct {
	ops []string
}

func (h *fakeHost) record(format string, args ...any) {
	h.ops = append(h.ops, fmt.Sprintf(format, args...))
}

func (h *fakeHost) reset() { h.ops = nil }

func (h *fakeHost) CreateElement(tag string) Node {
	h.record("create %s", tag)
	return &fakeNode{tag: tag}
}

func (h *fakeHost) CreateTextNode(text string) Node {
	h.record("text %q", text)
	return &fakeNode{text: text}
}

func (h *fakeHost) CreateComment(text string) Node {
	h.record("comment %q", text)
	return &fakeNode{text: text, comment: true}
}

func (h *fakeHost) InsertBefore(parent, node, ref Node) {
	p, n, r := parent.(*fakeNode), node.(*fakeNode), ref.(*fakeNode)
	h.record("insert %s before %s", n, r)
	h.detach(n)
	i := slices.Index(p.children, r)
	p.children = slices.Insert(p.children, i, n)
	n.parent = p
}

func (h *fakeHost) RemoveChild(parent, node Node) {
	p, n := parent.(*fakeNode), node.(*fakeNode)
	h.record("remove %s", n)
	p.children = slices.DeleteFunc(p.children, func(c *fakeNode) bool { return c == n })
	n.parent = nil
}

func (h *fakeHost) AppendChild(parent, node Node) {
	p, n := parent.(*fakeNode), node.(*fakeNode)
	h.record("append %s", n)
	h.detach(n)
	p.children = append(p.children, n)
	n.parent = p
}

func (h *fakeHost) detach(n *fakeNode) {
	if n.parent != nil {
		n.parent.children = slices.DeleteFunc(n.parent.children, func(c *fakeNode) bool { return c == n })
		n.parent = nil
	}
}

func (h *fakeHost) ParentNode(node Node) Node {
	if p := node.(*fakeNode).parent; p != nil {
		return p
	}
	return nil
}

func (h *fakeHost) NextSibling(node Node) Node {
	n := node.(*fakeNode)
	if n.parent == nil {
		return nil
	}
	i := slices.Index(n.parent.children, n)
	if i+1 < len(n.parent.children) {
		return n.parent.children[i+1]
	}
	return nil
}

func (h *fakeHost) TagName(node Node) string { return node.(*fakeNode).tag }

func (h *fakeHost) SetTextContent(node Node, text string) {
	n := node.(*fakeNode)
	h.record("set text %q", text)
	n.text = text
	n.children = nil
}

func (h *fakeHost) SetAttribute(node Node, key, value string) {
	n := node.(*fakeNode)
	h.record("attr %s=%q", key, value)
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

func (h *fakeHost) RemoveAttribute(node Node, key string) {
	h.record("remove attr %s", key)
	delete(node.(*fakeNode).attrs, key)
}

func (h *fakeHost) AddEventListener(node Node, event string, fn func(*Event)) {
	n := node.(*fakeNode)
	h.record("listen %s", event)
	if n.listeners == nil {
		n.listeners = make(map[string]func(*Event))
	}
	n.listeners[event] = fn
}

func (h *fakeHost) RemoveEventListener(node Node, event string) {
	h.record("unlisten %s", event)
	delete(node.(*fakeNode).listeners, event)
}

// fire delivers an event the way a real host would.
func (n *fakeNode) fire(event string) {
	if fn := n.listeners[event]; fn != nil {
		fn(&Event{Type: event, Target: n})
	}
}

// hookLog records VNode hook invocations in order.
type hookLog struct {
	calls []string
}

func (l *hookLog) hooks(name string) *Hooks {
	return &Hooks{
		Create:  func(_, _ *VNode) { l.calls = append(l.calls, "create "+name) },
		Insert:  func(*VNode) { l.calls = append(l.calls, "insert "+name) },
		Destroy: func(*VNode) { l.calls = append(l.calls, "destroy "+name) },
		Update:  func(_, _ *VNode) { l.calls = append(l.calls, "update "+name) },
	}
}

// node builds an element with hooks so lifecycle calls are visible.
func (l *hookLog) node(tag, name string, key any, children ...*VNode) *VNode {
	return &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Key:      key,
		Data:     &VNodeData{Hook: l.hooks(name)},
		Children: children,
	}
}

type testPatcher struct {
	*Patcher
	host     *fakeHost
	root     *fakeNode
	warnings []*errors.Error
}

func newTestPatcher(t *testing.T) *testPatcher {
	t.Helper()
	host := &fakeHost{}
	tp := &testPatcher{host: host, root: &fakeNode{tag: "root"}}
	tp.Patcher = NewPatcher(host, DefaultModules(host), WithWarn(func(w *errors.Error, _ *VNode) {
		tp.warnings = append(tp.warnings, w)
	}))
	require.Len(t, tp.modules, 3)
	return tp
}

func elm(v *VNode) *fakeNode { return v.Elm.(*fakeNode) }

// texts returns the text of every child of n.
func texts(n *fakeNode) []string {
	out := make([]string, len(n.children))
	for i, c := range n.children {
		out[i] = c.String()
	}
	return out
}
