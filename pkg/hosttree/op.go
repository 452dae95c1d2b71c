package hosttree

import "fmt"

// OpKind is the type of a recorded host mutation.
type OpKind uint8

const (
	OpCreateElement OpKind = iota + 1
	OpCreateText
	OpCreateComment
	OpInsertBefore
	OpAppendChild
	OpRemoveChild
	OpSetText
	OpSetAttr
	OpRemoveAttr
	OpListen
	OpUnlisten
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "create"
	case OpCreateText:
		return "text"
	case OpCreateComment:
		return "comment"
	case OpInsertBefore:
		return "insert"
	case OpAppendChild:
		return "append"
	case OpRemoveChild:
		return "remove"
	case OpSetText:
		return "set_text"
	case OpSetAttr:
		return "set_attr"
	case OpRemoveAttr:
		return "remove_attr"
	case OpListen:
		return "listen"
	case OpUnlisten:
		return "unlisten"
	default:
		return "unknown"
	}
}

// Op is one host mutation. A client replaying the ops of a tree in order
// ends up with the same tree.
type Op struct {
	Kind   OpKind `msgpack:"k" json:"kind"`
	Node   uint64 `msgpack:"n" json:"node"`
	Parent uint64 `msgpack:"p,omitempty" json:"parent,omitempty"`
	Ref    uint64 `msgpack:"r,omitempty" json:"ref,omitempty"`
	Tag    string `msgpack:"t,omitempty" json:"tag,omitempty"`
	Key    string `msgpack:"a,omitempty" json:"key,omitempty"`
	Value  string `msgpack:"v,omitempty" json:"value,omitempty"`
}

// String formats the op for logs and golden files.
func (o Op) String() string {
	switch o.Kind {
	case OpCreateElement:
		return fmt.Sprintf("create #%d <%s>", o.Node, o.Tag)
	case OpCreateText:
		return fmt.Sprintf("text #%d %q", o.Node, o.Value)
	case OpCreateComment:
		return fmt.Sprintf("comment #%d %q", o.Node, o.Value)
	case OpInsertBefore:
		return fmt.Sprintf("insert #%d into #%d before #%d", o.Node, o.Parent, o.Ref)
	case OpAppendChild:
		return fmt.Sprintf("append #%d to #%d", o.Node, o.Parent)
	case OpRemoveChild:
		return fmt.Sprintf("remove #%d from #%d", o.Node, o.Parent)
	case OpSetText:
		return fmt.Sprintf("set_text #%d %q", o.Node, o.Value)
	case OpSetAttr:
		return fmt.Sprintf("set_attr #%d %s=%q", o.Node, o.Key, o.Value)
	case OpRemoveAttr:
		return fmt.Sprintf("remove_attr #%d %s", o.Node, o.Key)
	case OpListen:
		return fmt.Sprintf("listen #%d %s", o.Node, o.Key)
	case OpUnlisten:
		return fmt.Sprintf("unlisten #%d %s", o.Node, o.Key)
	default:
		return fmt.Sprintf("unknown(%d) #%d", o.Kind, o.Node)
	}
}
