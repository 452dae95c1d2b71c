package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindComment                // Comment or empty placeholder
	KindComponent              // Child component placeholder
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Node is a node of the host tree. The patcher never looks inside it.
type Node any

// VNode describes one host node. A VNode is produced fresh by every render and
// is only mutated by the patcher, which records the host node it produced in
// Elm.
type VNode struct {
	Kind     VKind
	Tag      string
	Key      any // nil when unkeyed; must be comparable
	Data     *VNodeData
	Children []*VNode
	Text     string // For KindText and KindComment

	// Elm is the host node this descriptor produced or reused.
	Elm Node

	// Parent is the component placeholder this VNode is the root of.
	Parent *VNode

	// Context is the component that rendered this VNode.
	Context Context

	// Component is set on KindComponent placeholders.
	Component         *ComponentOptions
	ComponentInstance ComponentInstance

	IsStatic     bool // Produced by a cached static render
	IsCloned     bool // Copy made by Clone
	IsOnce       bool // Rendered once, never patched again
	IsRootInsert bool // Inserted as the root of a patch rather than a child
}

// VNodeData holds the per-aspect data read by modules and the patcher.
type VNodeData struct {
	Attrs    map[string]any
	On       map[string]Listener
	Ref      string
	RefInFor bool
	Hook     *Hooks

	// KeepAlive marks a component placeholder whose instance is cached
	// instead of destroyed.
	KeepAlive bool

	// PendingInsert carries the insert queue of a component root created
	// without a parent until the placeholder is inserted.
	PendingInsert []*VNode

	invokers map[string]*invoker
}

// Hooks are VNode-level lifecycle callbacks, invoked by the patcher.
type Hooks struct {
	Init      func(vnode *VNode)
	Prepatch  func(old, vnode *VNode)
	Create    func(empty, vnode *VNode)
	Insert    func(vnode *VNode)
	Update    func(old, vnode *VNode)
	Postpatch func(old, vnode *VNode)
	Remove    func(vnode *VNode, rm func())
	Destroy   func(vnode *VNode)
}

// ComponentOptions is what a component placeholder carries for the
// component layer: the constructor, props, listeners and slot children.
type ComponentOptions struct {
	Ctor      any
	Name      string
	Props     map[string]any
	Listeners map[string]Listener
	Children  []*VNode
}

// ComponentInstance is a mounted child component as seen by the patcher.
type ComponentInstance interface {
	// Root returns the VNode the component last rendered.
	Root() *VNode

	// Elm returns the host node of the component's root.
	Elm() Node
}

// Context is the component a VNode was rendered by. It owns the refs
// registry.
type Context interface {
	Refs() Refs
}

// Refs maps ref names to host nodes or component instances. Refs inside
// lists map to a []any.
type Refs map[string]any

// Listener handles a host event.
type Listener func(ev *Event)

// Event is a host event routed to a Listener.
type Event struct {
	Type   string
	Target Node
	Value  string
	Detail map[string]any
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler binds a Listener to an event name.
type EventHandler struct {
	Event   string // "click", "input", etc.
	Handler Listener
}

// keyed is the argument produced by Key.
type keyed struct{ key any }

// hasText reports whether the node's content is its Text field.
func (v *VNode) hasText() bool {
	return v.Kind == KindText || v.Kind == KindComment
}

// hasTag reports whether the node is an element or component placeholder.
func (v *VNode) hasTag() bool {
	return v.Kind == KindElement || v.Kind == KindComponent
}

// Attr returns the attribute value for key, or nil.
func (v *VNode) Attr(key string) any {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Attrs[key]
}
