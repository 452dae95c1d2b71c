package hosttree

import (
	"fmt"
	"slices"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// RootTag is the tag of every tree's root element.
const RootTag = "vtree-root"

// Tree is an in-memory host tree. It implements vdom.Host, vdom.AttrHost
// and vdom.EventHost and records every mutation as an Op.
//
// A Tree is not safe for concurrent use; it belongs to the runtime loop
// that patches it.
type Tree struct {
	root   *Node
	nodes  map[uint64]*Node
	nextID uint64
	ops    []Op
}

var (
	_ vdom.Host      = (*Tree)(nil)
	_ vdom.AttrHost  = (*Tree)(nil)
	_ vdom.EventHost = (*Tree)(nil)
)

// New creates an empty tree.
func New() *Tree {
	t := &Tree{nodes: make(map[uint64]*Node)}
	t.root = t.newNode(ElementNode, RootTag, "")
	t.nodes[t.root.id] = t.root
	return t
}

// Root returns the root element. Mount component trees under it.
func (t *Tree) Root() *Node { return t.root }

// Get returns the attached node with the given id.
func (t *Tree) Get(id uint64) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of attached nodes, the root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Ops returns a copy of the mutations recorded since the last Flush.
func (t *Tree) Ops() []Op { return slices.Clone(t.ops) }

// Flush returns the recorded mutations and clears the log.
func (t *Tree) Flush() []Op {
	ops := t.ops
	t.ops = nil
	return ops
}

func (t *Tree) record(op Op) {
	t.ops = append(t.ops, op)
}

func (t *Tree) newNode(typ NodeType, tag, text string) *Node {
	t.nextID++
	return &Node{id: t.nextID, typ: typ, tag: tag, text: text, tree: t}
}

// node unwraps a vdom.Node, panicking with P002 for foreign nodes.
func (t *Tree) node(n vdom.Node) *Node {
	hn, ok := n.(*Node)
	if !ok || hn == nil || hn.tree != t {
		panic(errors.New("P002").WithDetail(fmt.Sprintf("Got %T, which is not a node of this tree.", n)))
	}
	return hn
}

// attach indexes a subtree that became reachable from the root.
func (t *Tree) attach(n *Node) {
	if !n.Attached() {
		return
	}
	n.walk(func(c *Node) { t.nodes[c.id] = c })
}

// release drops a detached subtree from the index. Its nodes stay valid
// and can be inserted again.
func (t *Tree) release(n *Node) {
	n.walk(func(c *Node) { delete(t.nodes, c.id) })
}

// CreateElement implements vdom.Host.
func (t *Tree) CreateElement(tag string) vdom.Node {
	n := t.newNode(ElementNode, tag, "")
	t.record(Op{Kind: OpCreateElement, Node: n.id, Tag: tag})
	return n
}

// CreateTextNode implements vdom.Host.
func (t *Tree) CreateTextNode(text string) vdom.Node {
	n := t.newNode(TextNode, "", text)
	t.record(Op{Kind: OpCreateText, Node: n.id, Value: text})
	return n
}

// CreateComment implements vdom.Host.
func (t *Tree) CreateComment(text string) vdom.Node {
	n := t.newNode(CommentNode, "", text)
	t.record(Op{Kind: OpCreateComment, Node: n.id, Value: text})
	return n
}

// InsertBefore implements vdom.Host. node is moved if already attached.
func (t *Tree) InsertBefore(parent, node, ref vdom.Node) {
	p, n, r := t.node(parent), t.node(node), t.node(ref)
	if r.parent != p {
		panic(errors.New("P002").WithDetail(fmt.Sprintf("Node #%d is not a child of #%d.", r.id, p.id)))
	}
	n.detach()
	p.children = slices.Insert(p.children, p.index(r), n)
	n.parent = p
	t.record(Op{Kind: OpInsertBefore, Node: n.id, Parent: p.id, Ref: r.id})
	t.attach(n)
}

// AppendChild implements vdom.Host. node is moved if already attached.
func (t *Tree) AppendChild(parent, node vdom.Node) {
	p, n := t.node(parent), t.node(node)
	n.detach()
	p.children = append(p.children, n)
	n.parent = p
	t.record(Op{Kind: OpAppendChild, Node: n.id, Parent: p.id})
	t.attach(n)
}

// RemoveChild implements vdom.Host.
func (t *Tree) RemoveChild(parent, node vdom.Node) {
	p, n := t.node(parent), t.node(node)
	if n.parent != p {
		return
	}
	n.detach()
	t.record(Op{Kind: OpRemoveChild, Node: n.id, Parent: p.id})
	t.release(n)
}

// ParentNode implements vdom.Host.
func (t *Tree) ParentNode(node vdom.Node) vdom.Node {
	if p := t.node(node).parent; p != nil {
		return p
	}
	return nil
}

// NextSibling implements vdom.Host.
func (t *Tree) NextSibling(node vdom.Node) vdom.Node {
	n := t.node(node)
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.children
	if i := n.parent.index(n); i+1 < len(siblings) {
		return siblings[i+1]
	}
	return nil
}

// TagName implements vdom.Host.
func (t *Tree) TagName(node vdom.Node) string {
	return t.node(node).tag
}

// SetTextContent implements vdom.Host. On an element it replaces the
// children with a single text node.
func (t *Tree) SetTextContent(node vdom.Node, text string) {
	n := t.node(node)
	t.record(Op{Kind: OpSetText, Node: n.id, Value: text})
	if n.typ != ElementNode {
		n.text = text
		return
	}
	for _, c := range n.children {
		c.parent = nil
		t.release(c)
	}
	n.children = nil
	if text != "" {
		// Anonymous: it has no id and is not addressable by ops.
		n.children = []*Node{{typ: TextNode, text: text, parent: n, tree: t}}
	}
}

// SetAttribute implements vdom.AttrHost.
func (t *Tree) SetAttribute(node vdom.Node, key, value string) {
	n := t.node(node)
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
	t.record(Op{Kind: OpSetAttr, Node: n.id, Key: key, Value: value})
}

// RemoveAttribute implements vdom.AttrHost.
func (t *Tree) RemoveAttribute(node vdom.Node, key string) {
	n := t.node(node)
	delete(n.attrs, key)
	t.record(Op{Kind: OpRemoveAttr, Node: n.id, Key: key})
}

// AddEventListener implements vdom.EventHost.
func (t *Tree) AddEventListener(node vdom.Node, event string, fn func(*vdom.Event)) {
	n := t.node(node)
	if n.listeners == nil {
		n.listeners = make(map[string]func(*vdom.Event))
	}
	n.listeners[event] = fn
	t.record(Op{Kind: OpListen, Node: n.id, Key: event})
}

// RemoveEventListener implements vdom.EventHost.
func (t *Tree) RemoveEventListener(node vdom.Node, event string) {
	n := t.node(node)
	delete(n.listeners, event)
	t.record(Op{Kind: OpUnlisten, Node: n.id, Key: event})
}

// Dispatch delivers ev to the listener registered for ev.Type on the
// attached node id. It reports whether a listener ran; unknown ids are an
// error, nodes without a listener are not.
func (t *Tree) Dispatch(id uint64, ev *vdom.Event) (bool, error) {
	n, ok := t.nodes[id]
	if !ok {
		return false, errors.New("P002").WithDetail(fmt.Sprintf("No attached node #%d.", id))
	}
	fn := n.listeners[ev.Type]
	if fn == nil {
		return false, nil
	}
	ev.Target = n
	fn(ev)
	return true, nil
}
