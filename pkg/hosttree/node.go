package hosttree

import (
	"maps"
	"slices"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// NodeType is the kind of a host node.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	default:
		return "unknown"
	}
}

// Node is one node of an in-memory host tree.
type Node struct {
	id        uint64
	typ       NodeType
	tag       string
	text      string
	attrs     map[string]string
	listeners map[string]func(*vdom.Event)
	parent    *Node
	children  []*Node
	tree      *Tree
}

// ID returns the node id, unique within its tree.
func (n *Node) ID() uint64 { return n.id }

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the element tag, or "" for text and comments.
func (n *Node) Tag() string { return n.tag }

// Text returns the content of a text or comment node.
func (n *Node) Text() string { return n.text }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Attr returns the attribute value and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Attrs returns a copy of the attributes.
func (n *Node) Attrs() map[string]string { return maps.Clone(n.attrs) }

// Events returns the sorted names of the events the node listens to.
func (n *Node) Events() []string {
	return slices.Sorted(maps.Keys(n.listeners))
}

// Attached reports whether the node is connected to the tree root.
func (n *Node) Attached() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == n.tree.root {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated text of the subtree.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.text
	}
	var s string
	for _, c := range n.children {
		if c.typ != CommentNode {
			s += c.TextContent()
		}
	}
	return s
}

// Find returns the first node in the subtree, in document order, for
// which match returns true.
func (n *Node) Find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

func (n *Node) index(child *Node) int {
	return slices.Index(n.children, child)
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	i := p.index(n)
	p.children = slices.Delete(p.children, i, i+1)
	n.parent = nil
}

// walk calls fn for every node of the subtree, pre-order.
func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}
