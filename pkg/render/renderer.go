package render

import (
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/reactive"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// RenderFunc produces a component's tree. It may return a *vdom.VNode, a
// []*vdom.VNode holding exactly one node, or nil for an empty render.
type RenderFunc func(c *Component) any

// Options define a component.
type Options struct {
	// Name is used for placeholder tags, owner names and diagnostics.
	Name string

	// Props declares the accepted props and their defaults.
	Props map[string]any

	// Data returns the initial root state. Called once per instance.
	Data func() map[string]any

	// Setup runs after props and data are installed and before the first
	// render. It registers hooks and watchers on c. A non-nil return value
	// replaces Render for this instance.
	Setup func(c *Component) RenderFunc

	Render RenderFunc

	// StaticRenderFns produce subtrees that never change. Use them through
	// Component.Static.
	StaticRenderFns []RenderFunc
}

func (o *Options) name() string {
	if o.Name == "" {
		return "anonymous"
	}
	return o.Name
}

// Renderer mounts components and patches their trees into a host.
type Renderer struct {
	rt      *reactive.Runtime
	patcher *vdom.Patcher
	modules []vdom.Module

	// active is the component whose tree is being patched. Components
	// created by that patch become its children.
	active *Component
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithModules replaces the modules derived from the host.
func WithModules(modules ...vdom.Module) Option {
	return func(r *Renderer) {
		r.modules = modules
	}
}

// New creates a Renderer writing to host. Patch warnings, metrics and
// spans go through rt.
func New(rt *reactive.Runtime, host vdom.Host, opts ...Option) *Renderer {
	r := &Renderer{rt: rt, modules: vdom.DefaultModules(host)}
	for _, opt := range opts {
		opt(r)
	}

	popts := []vdom.Option{
		vdom.WithLogger(rt.Logger()),
		vdom.WithMetrics(rt.Metrics()),
		vdom.WithWarn(r.warn),
	}
	if t := rt.Tracer(); t != nil {
		popts = append(popts, vdom.WithTracer(t, rt.Context))
	}
	r.patcher = vdom.NewPatcher(host, r.modules, popts...)
	return r
}

// Runtime returns the runtime components are mounted on.
func (r *Renderer) Runtime() *reactive.Runtime { return r.rt }

// Patcher returns the patcher used for every component.
func (r *Renderer) Patcher() *vdom.Patcher { return r.patcher }

func (r *Renderer) warn(w *errors.Error, vnode *vdom.VNode) {
	var owner *reactive.Owner
	if vnode != nil {
		if c, ok := vnode.Context.(*Component); ok {
			owner = c.owner
		}
	}
	r.rt.Warn(w, owner)
}

// Mount creates a root component from opts and appends its tree to parent.
// The first render and patch happen before Mount returns.
func (r *Renderer) Mount(parent vdom.Node, opts *Options, props vdom.Props) *Component {
	c := r.newComponent(opts, nil, nil, props)
	c.mount(parent)
	return c
}
