package render

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/reactive"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Component is a mounted component instance. It owns a reactive.Owner, a
// render watcher and the tree it last rendered.
type Component struct {
	r      *Renderer
	opts   *Options
	owner  *reactive.Owner
	parent *Component

	props     *reactive.Object
	renderFn  RenderFunc
	listeners map[string]vdom.Listener
	slot      []*vdom.VNode
	refs      vdom.Refs

	// placeholder is the parent's VNode standing for this component; nil
	// for root components.
	placeholder *vdom.VNode

	// vnode is the tree from the last render.
	vnode     *vdom.VNode
	elm       vdom.Node
	parentElm vdom.Node

	staticTrees []*vdom.VNode
}

var (
	_ vdom.ComponentInstance = (*Component)(nil)
	_ vdom.Context           = (*Component)(nil)
)

func (r *Renderer) newComponent(opts *Options, parent *Component, placeholder *vdom.VNode, props vdom.Props) *Component {
	var parentOwner *reactive.Owner
	if parent != nil {
		parentOwner = parent.owner
	}
	c := &Component{
		r:           r,
		opts:        opts,
		owner:       r.rt.NewOwner(opts.name(), parentOwner),
		parent:      parent,
		placeholder: placeholder,
		renderFn:    opts.Render,
		refs:        vdom.Refs{},
	}
	if placeholder != nil {
		c.slot = placeholder.Component.Children
		c.listeners = placeholder.Component.Listeners
	}

	c.initProps(props, parent == nil)
	if opts.Data != nil {
		c.owner.SetData(reactive.ObjectFrom(opts.Data()))
	}
	c.owner.OnCleanup(c.teardown)
	if opts.Setup != nil {
		if fn := opts.Setup(c); fn != nil {
			c.renderFn = fn
		}
	}
	c.owner.CallHook(reactive.HookCreated)
	return c
}

// initProps installs the declared props. Values passed down from a parent
// are not observed: they belong to the parent's state.
func (c *Component) initProps(values vdom.Props, root bool) {
	rt := c.r.rt
	c.props = reactive.NewObject()
	if !root {
		rt.ToggleObserving(false)
		defer rt.ToggleObserving(true)
	}
	for _, key := range slices.Sorted(maps.Keys(c.opts.Props)) {
		rt.DefineReactive(c.props, key, c.propValue(values, key), false)
	}
}

func (c *Component) propValue(values vdom.Props, key string) any {
	if v, ok := values[key]; ok {
		return v
	}
	return c.opts.Props[key]
}

func (c *Component) mount(parentElm vdom.Node) {
	c.parentElm = parentElm
	c.owner.CallHook(reactive.HookBeforeMount)
	c.r.rt.NewWatcher(c.owner,
		func() any {
			c.update(c.render())
			return nil
		},
		nil,
		reactive.AsRender(),
		reactive.Before(c.beforeUpdate),
		reactive.Expression(c.opts.name()+" render"),
	)
	// Child components are mounted by their placeholder's insert hook.
	if c.placeholder == nil {
		c.owner.MarkMounted()
	}
}

func (c *Component) beforeUpdate() {
	if c.owner.IsMounted() && !c.owner.IsDestroyed() {
		c.owner.CallHook(reactive.HookBeforeUpdate)
	}
}

// render runs the render function. A failing render is reported as R009
// and keeps the previous tree.
func (c *Component) render() (vnode *vdom.VNode) {
	defer func() {
		if r := recover(); r != nil {
			c.r.rt.HandleError(errors.New("R009").Wrap(panicError(r)), c.owner, "render")
			vnode = c.vnode
		}
		if vnode == nil {
			vnode = vdom.Empty()
		}
		vnode.Parent = c.placeholder
	}()

	switch out := c.renderFn(c).(type) {
	case nil:
		return nil
	case *vdom.VNode:
		vnode = out
	case []*vdom.VNode:
		if len(out) != 1 {
			c.r.rt.Warn(errors.New("R008").WithDetail(fmt.Sprintf("Got %d root nodes.", len(out))), c.owner)
			return nil
		}
		vnode = out[0]
	default:
		panic(fmt.Sprintf("render: unsupported render result %T", out))
	}
	c.stamp(vnode)
	return vnode
}

// stamp records c as the context of every node it rendered. Nodes that
// already carry a context came from elsewhere, such as slot content.
func (c *Component) stamp(vnode *vdom.VNode) {
	if vnode == nil || vnode.Context != nil {
		return
	}
	vnode.Context = c
	for _, child := range vnode.Children {
		c.stamp(child)
	}
	if vnode.Component != nil {
		for _, child := range vnode.Component.Children {
			c.stamp(child)
		}
	}
}

func (c *Component) update(vnode *vdom.VNode) {
	prevActive := c.r.active
	c.r.active = c
	defer func() { c.r.active = prevActive }()

	prev := c.vnode
	c.vnode = vnode
	if prev == nil {
		c.elm = c.r.patcher.Patch(c.parentElm, nil, vnode)
	} else {
		c.elm = c.r.patcher.Patch(nil, prev, vnode)
	}
	// A component that is its parent's root moves the parent's element too.
	if c.parent != nil && c.placeholder != nil && c.placeholder == c.parent.vnode {
		c.parent.elm = c.elm
	}
}

// updateFromPlaceholder moves the instance to the placeholder of a new
// parent render.
func (c *Component) updateFromPlaceholder(vnode *vdom.VNode) {
	hadSlot := len(c.slot) > 0
	opts := vnode.Component

	c.placeholder = vnode
	if c.vnode != nil {
		c.vnode.Parent = vnode
	}
	c.slot = opts.Children
	c.listeners = opts.Listeners

	rt := c.r.rt
	rt.ToggleObserving(false)
	for _, key := range slices.Sorted(maps.Keys(c.opts.Props)) {
		c.props.Set(key, c.propValue(opts.Props, key))
	}
	rt.ToggleObserving(true)

	// Slot content is not reactive; any slot means a re-render.
	if hadSlot || len(c.slot) > 0 {
		c.ForceUpdate()
	}
}

// teardown destroys the rendered tree. It runs as an owner cleanup, after
// the watchers are gone.
func (c *Component) teardown() {
	if c.vnode == nil {
		return
	}
	c.r.patcher.Patch(c.parentElm, c.vnode, nil)
	c.vnode.Parent = nil
}

// Name returns the component name.
func (c *Component) Name() string { return c.opts.name() }

// Owner returns the reactive owner of the instance. Hooks and watchers are
// registered on it.
func (c *Component) Owner() *reactive.Owner { return c.owner }

// Runtime returns the runtime the instance lives on.
func (c *Component) Runtime() *reactive.Runtime { return c.r.rt }

// Parent returns the parent instance, or nil for a root component.
func (c *Component) Parent() *Component { return c.parent }

// Props returns the reactive props object.
func (c *Component) Props() *reactive.Object { return c.props }

// Prop reads a prop, subscribing the active watcher.
func (c *Component) Prop(key string) any { return c.props.Get(key) }

// Data returns the root state created from Options.Data, or nil.
func (c *Component) Data() *reactive.Object { return c.owner.Data() }

// Slot returns the children the placeholder passed in.
func (c *Component) Slot() []*vdom.VNode { return c.slot }

// Refs implements vdom.Context.
func (c *Component) Refs() vdom.Refs { return c.refs }

// Root implements vdom.ComponentInstance.
func (c *Component) Root() *vdom.VNode { return c.vnode }

// Elm implements vdom.ComponentInstance.
func (c *Component) Elm() vdom.Node { return c.elm }

// Emit calls the listener the placeholder registered for event. It reports
// whether one was registered.
func (c *Component) Emit(event string, ev *vdom.Event) bool {
	fn := c.listeners[event]
	if fn == nil {
		return false
	}
	if ev == nil {
		ev = &vdom.Event{}
	}
	ev.Type = event
	fn(ev)
	return true
}

// ForceUpdate queues a re-render.
func (c *Component) ForceUpdate() {
	if w := c.owner.RenderWatcher(); w != nil {
		w.Update()
	}
}

// Destroy tears the instance down: hooks, watchers, its tree and every
// child component. A root component is also detached from its parent.
func (c *Component) Destroy() { c.owner.Dispose() }

// Deactivate takes a kept-alive instance out of service without
// destroying it.
func (c *Component) Deactivate() { c.owner.Deactivate(true) }

// Activate brings a deactivated instance back. During a flush the
// activated hooks are deferred until it completes.
func (c *Component) Activate() {
	if c.r.rt.Flushing() {
		c.r.rt.QueueActivated(c.owner)
		return
	}
	c.owner.Activate()
}

// Static returns the cached tree of StaticRenderFns[index], rendering it
// on first use. The same tree is returned on every render, so the patcher
// skips it.
func (c *Component) Static(index int) *vdom.VNode {
	if index < len(c.staticTrees) && c.staticTrees[index] != nil {
		return c.staticTrees[index]
	}
	tree, _ := c.opts.StaticRenderFns[index](c).(*vdom.VNode)
	if tree == nil {
		tree = vdom.Empty()
	}
	tree.IsStatic = true
	tree.IsOnce = false
	tree.Key = "__static__" + strconv.Itoa(index)
	c.stamp(tree)

	if index >= len(c.staticTrees) {
		c.staticTrees = append(c.staticTrees, make([]*vdom.VNode, index+1-len(c.staticTrees))...)
	}
	c.staticTrees[index] = tree
	return tree
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &reactive.PanicError{Value: r}
}
