package render

import (
	"github.com/vango-dev/vtree/pkg/vdom"
)

// placeholderHooks drive child components from their parent's patch.
var placeholderHooks = &vdom.Hooks{
	Init:     initPlaceholder,
	Prepatch: prepatchPlaceholder,
	Insert:   insertPlaceholder,
	Destroy:  destroyPlaceholder,
}

// Child returns a placeholder that mounts a component built from opts.
// args are those accepted by vdom.Component.
func Child(opts *Options, args ...any) *vdom.VNode {
	vnode := vdom.Component(opts.name(), opts, args...)
	vnode.Data.Hook = placeholderHooks
	return vnode
}

func instance(vnode *vdom.VNode) *Component {
	c, _ := vnode.ComponentInstance.(*Component)
	return c
}

func initPlaceholder(vnode *vdom.VNode) {
	if c := instance(vnode); c != nil && !c.owner.IsDestroyed() && vnode.Data.KeepAlive {
		// Cached instance: reuse it as if it had been patched in place.
		prepatchPlaceholder(vnode, vnode)
		return
	}
	ctx, ok := vnode.Context.(*Component)
	if !ok {
		panic("render: component " + vnode.Component.Name + " placed outside a component render")
	}
	parent := ctx.r.active
	if parent == nil {
		parent = ctx
	}
	opts := vnode.Component.Ctor.(*Options)
	child := parent.r.newComponent(opts, parent, vnode, vnode.Component.Props)
	vnode.ComponentInstance = child
	child.mount(nil)
}

func prepatchPlaceholder(old, vnode *vdom.VNode) {
	c := instance(old)
	vnode.ComponentInstance = c
	c.updateFromPlaceholder(vnode)
}

func insertPlaceholder(vnode *vdom.VNode) {
	c := instance(vnode)
	if !c.owner.IsMounted() {
		c.owner.MarkMounted()
	}
	if !vnode.Data.KeepAlive {
		return
	}
	if ctx, ok := vnode.Context.(*Component); ok && ctx.owner.IsMounted() {
		c.Activate()
		return
	}
	c.owner.Activate()
}

func destroyPlaceholder(vnode *vdom.VNode) {
	c := instance(vnode)
	if c == nil || c.owner.IsDestroyed() {
		return
	}
	if vnode.Data.KeepAlive {
		c.Deactivate()
		return
	}
	c.Destroy()
}
