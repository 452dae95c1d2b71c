package vdom

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/internal/telemetry"
)

// WarnFunc receives non-fatal patch diagnostics. vnode is the parent whose
// children triggered the warning.
type WarnFunc func(w *errors.Error, vnode *VNode)

// Patcher reconciles VNode trees against a host tree.
type Patcher struct {
	host    Host
	modules []Module
	logger  *slog.Logger
	warn    WarnFunc
	metrics *telemetry.Metrics
	tracer  *telemetry.Tracer
	ctx     func() context.Context
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithLogger sets the logger used by the default warning handler.
func WithLogger(l *slog.Logger) Option {
	return func(p *Patcher) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithWarn replaces the default warning handler, which logs.
func WithWarn(fn WarnFunc) Option {
	return func(p *Patcher) {
		p.warn = fn
	}
}

// WithMetrics records patch durations and host operations.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(p *Patcher) {
		p.metrics = m
	}
}

// WithTracer opens a span around every top-level patch. ctx supplies the
// parent context and may be nil.
func WithTracer(t *telemetry.Tracer, ctx func() context.Context) Option {
	return func(p *Patcher) {
		p.tracer = t
		p.ctx = ctx
	}
}

// NewPatcher creates a Patcher for host. The refs module is always
// installed ahead of modules.
func NewPatcher(host Host, modules []Module, opts ...Option) *Patcher {
	p := &Patcher{
		modules: append([]Module{refsModule{}}, modules...),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics != nil {
		p.host = countingHost{Host: host, count: p.metrics.HostOp}
	} else {
		p.host = host
	}
	if p.warn == nil {
		p.warn = func(w *errors.Error, _ *VNode) {
			p.logger.Warn(w.Message, "code", w.Code, "detail", w.Detail)
		}
	}
	return p
}

// DefaultModules returns the attribute and listener modules supported by
// host.
func DefaultModules(host Host) []Module {
	var modules []Module
	if h, ok := host.(AttrHost); ok {
		modules = append(modules, Attributes(h))
	}
	if h, ok := host.(EventHost); ok {
		modules = append(modules, Events(h))
	}
	return modules
}

// Host returns the host the patcher writes to.
func (p *Patcher) Host() Host { return p.host }

var emptyNode = &VNode{Kind: KindComment, Data: &VNodeData{}}

// insertQueue collects VNodes whose insert hook must run once the
// subtree is attached.
type insertQueue []*VNode

// Patch reconciles old into vnode and returns the resulting host node.
//
//   - vnode nil: old is destroyed and, when parent is given, detached.
//   - old nil: vnode is created and appended to parent. When vnode is a
//     component root, insert hooks wait for its placeholder.
//   - same node: the host node is reused and updated in place.
//   - otherwise vnode is created next to old, old is removed.
func (p *Patcher) Patch(parent Node, old, vnode *VNode) Node {
	if old == vnode {
		if vnode == nil {
			return nil
		}
		return vnode.Elm
	}

	start := time.Now()
	var end func(error)
	if p.tracer != nil {
		ctx := context.Background()
		if p.ctx != nil {
			ctx = p.ctx()
		}
		_, end = p.tracer.Start(ctx, "vtree.patch",
			attribute.Bool("vtree.create", old == nil),
			attribute.Bool("vtree.destroy", vnode == nil),
		)
	}
	defer func() {
		p.metrics.ObservePatch(time.Since(start))
		if end != nil {
			end(nil)
		}
	}()

	if vnode == nil {
		p.invokeDestroyHook(old)
		if parent != nil && old.Elm != nil && p.host.ParentNode(old.Elm) == parent {
			p.host.RemoveChild(parent, old.Elm)
		}
		return nil
	}

	var queue insertQueue
	initial := false
	switch {
	case old == nil:
		initial = true
		p.createElm(vnode, &queue, parent, nil, false, nil, 0)

	case sameVnode(old, vnode):
		p.patchVnode(old, vnode, &queue)

	default:
		oldElm := old.Elm
		parentElm := p.host.ParentNode(oldElm)
		p.createElm(vnode, &queue, parentElm, p.host.NextSibling(oldElm), false, nil, 0)

		// A component root was replaced: every placeholder up the chain
		// now points at the new host node.
		if vnode.Parent != nil {
			patchable := isPatchable(vnode)
			for ancestor := vnode.Parent; ancestor != nil; ancestor = ancestor.Parent {
				for _, m := range p.modules {
					m.Destroy(ancestor)
				}
				ancestor.Elm = vnode.Elm
				if patchable {
					for _, m := range p.modules {
						m.Create(emptyNode, ancestor)
					}
				} else {
					registerRef(ancestor, false)
				}
			}
		}

		if parentElm != nil {
			p.removeVnodes([]*VNode{old}, 0, 0)
		} else if old.hasTag() {
			p.invokeDestroyHook(old)
		}
	}

	invokeInsertHook(vnode, queue, initial)
	return vnode.Elm
}

// sameVnode is the identity rule: only such pairs are patched in place.
func sameVnode(a, b *VNode) bool {
	return a.Key == b.Key &&
		a.Kind == b.Kind &&
		a.Tag == b.Tag &&
		(a.Data != nil) == (b.Data != nil) &&
		sameInputType(a, b)
}

var textInputTypes = map[string]bool{
	"text":     true,
	"number":   true,
	"password": true,
	"search":   true,
	"email":    true,
	"tel":      true,
	"url":      true,
}

func sameInputType(a, b *VNode) bool {
	if a.Tag != "input" {
		return true
	}
	typeA, _ := a.Attr("type").(string)
	typeB, _ := b.Attr("type").(string)
	return typeA == typeB || textInputTypes[typeA] && textInputTypes[typeB]
}

// isPatchable reports whether the host node behind vnode is an element,
// looking through nested component roots.
func isPatchable(vnode *VNode) bool {
	for vnode != nil && vnode.ComponentInstance != nil {
		vnode = vnode.ComponentInstance.Root()
	}
	return vnode != nil && vnode.hasTag()
}

func (p *Patcher) createElm(vnode *VNode, queue *insertQueue, parentElm, refElm Node, nested bool, ownerArray []*VNode, index int) {
	if vnode.Elm != nil && ownerArray != nil {
		// Already rendered elsewhere; never share a host node.
		vnode = Clone(vnode)
		ownerArray[index] = vnode
	}

	vnode.IsRootInsert = !nested
	if p.createComponent(vnode, queue, parentElm, refElm) {
		return
	}

	switch vnode.Kind {
	case KindElement, KindComponent:
		vnode.Elm = p.host.CreateElement(vnode.Tag)
		p.createChildren(vnode, queue)
		if vnode.Data != nil {
			p.invokeCreateHooks(vnode, queue)
		}
		p.insert(parentElm, vnode.Elm, refElm)
	case KindComment:
		vnode.Elm = p.host.CreateComment(vnode.Text)
		p.insert(parentElm, vnode.Elm, refElm)
	default:
		vnode.Elm = p.host.CreateTextNode(vnode.Text)
		p.insert(parentElm, vnode.Elm, refElm)
	}
}

func (p *Patcher) createComponent(vnode *VNode, queue *insertQueue, parentElm, refElm Node) bool {
	d := vnode.Data
	if d == nil {
		return false
	}
	reactivated := vnode.ComponentInstance != nil && d.KeepAlive
	if d.Hook != nil && d.Hook.Init != nil {
		d.Hook.Init(vnode)
	}
	if vnode.ComponentInstance == nil {
		return false
	}
	p.initComponent(vnode, queue)
	p.insert(parentElm, vnode.Elm, refElm)
	if reactivated {
		for _, m := range p.modules {
			m.Activate(emptyNode, vnode)
		}
	}
	return true
}

func (p *Patcher) initComponent(vnode *VNode, queue *insertQueue) {
	if pending := vnode.Data.PendingInsert; pending != nil {
		*queue = append(*queue, pending...)
		vnode.Data.PendingInsert = nil
	}
	vnode.Elm = vnode.ComponentInstance.Elm()
	if isPatchable(vnode) {
		p.invokeCreateHooks(vnode, queue)
	} else {
		// Text or comment root: only the ref applies, and the insert
		// hook must still run.
		registerRef(vnode, false)
		*queue = append(*queue, vnode)
	}
}

func (p *Patcher) insert(parent, elm, ref Node) {
	if parent == nil {
		return
	}
	if ref != nil {
		if p.host.ParentNode(ref) == parent {
			p.host.InsertBefore(parent, elm, ref)
		}
		return
	}
	p.host.AppendChild(parent, elm)
}

func (p *Patcher) createChildren(vnode *VNode, queue *insertQueue) {
	p.checkDuplicateKeys(vnode, vnode.Children)
	for i, child := range vnode.Children {
		p.createElm(child, queue, vnode.Elm, nil, true, vnode.Children, i)
	}
}

func (p *Patcher) invokeCreateHooks(vnode *VNode, queue *insertQueue) {
	for _, m := range p.modules {
		m.Create(emptyNode, vnode)
	}
	if h := vnode.Data.Hook; h != nil {
		if h.Create != nil {
			h.Create(emptyNode, vnode)
		}
		if h.Insert != nil {
			*queue = append(*queue, vnode)
		}
	}
}

func (p *Patcher) addVnodes(parentElm, refElm Node, vnodes []*VNode, start, end int, queue *insertQueue) {
	for ; start <= end; start++ {
		p.createElm(vnodes[start], queue, parentElm, refElm, false, vnodes, start)
	}
}

func (p *Patcher) invokeDestroyHook(vnode *VNode) {
	if d := vnode.Data; d != nil {
		if d.Hook != nil && d.Hook.Destroy != nil {
			d.Hook.Destroy(vnode)
		}
		for _, m := range p.modules {
			m.Destroy(vnode)
		}
	}
	for _, child := range vnode.Children {
		p.invokeDestroyHook(child)
	}
}

func (p *Patcher) removeVnodes(vnodes []*VNode, start, end int) {
	for ; start <= end; start++ {
		ch := vnodes[start]
		if ch == nil {
			continue
		}
		if ch.hasTag() {
			p.removeAndInvokeRemoveHook(ch, nil)
			p.invokeDestroyHook(ch)
		} else {
			p.removeNode(ch.Elm)
		}
	}
}

// remover detaches elm once every remove listener has called done.
type remover struct {
	p         *Patcher
	elm       Node
	listeners int
}

func (r *remover) done() {
	r.listeners--
	if r.listeners == 0 {
		r.p.removeNode(r.elm)
	}
}

func (p *Patcher) removeAndInvokeRemoveHook(vnode *VNode, rm *remover) {
	if rm == nil && vnode.Data == nil {
		p.removeNode(vnode.Elm)
		return
	}

	listeners := len(p.modules) + 1
	if rm != nil {
		// Nested component roots share the placeholder's remover.
		rm.listeners += listeners
	} else {
		rm = &remover{p: p, elm: vnode.Elm, listeners: listeners}
	}

	if inst := vnode.ComponentInstance; inst != nil {
		if root := inst.Root(); root != nil && root.Data != nil {
			p.removeAndInvokeRemoveHook(root, rm)
		}
	}
	for _, m := range p.modules {
		m.Remove(vnode, rm.done)
	}
	if vnode.Data != nil && vnode.Data.Hook != nil && vnode.Data.Hook.Remove != nil {
		vnode.Data.Hook.Remove(vnode, rm.done)
	} else {
		rm.done()
	}
}

func (p *Patcher) removeNode(elm Node) {
	if elm == nil {
		return
	}
	if parent := p.host.ParentNode(elm); parent != nil {
		p.host.RemoveChild(parent, elm)
	}
}

func (p *Patcher) patchVnode(old, vnode *VNode, queue *insertQueue) {
	if old == vnode {
		return
	}

	elm := old.Elm
	vnode.Elm = elm

	// Reused static trees are skipped entirely.
	if vnode.IsStatic && old.IsStatic && vnode.Key == old.Key && (vnode.IsCloned || vnode.IsOnce) {
		vnode.ComponentInstance = old.ComponentInstance
		return
	}

	d := vnode.Data
	if d != nil && d.Hook != nil && d.Hook.Prepatch != nil {
		d.Hook.Prepatch(old, vnode)
	}

	oldCh, ch := old.Children, vnode.Children
	if d != nil && isPatchable(vnode) {
		for _, m := range p.modules {
			m.Update(old, vnode)
		}
		if d.Hook != nil && d.Hook.Update != nil {
			d.Hook.Update(old, vnode)
		}
	}

	switch {
	case vnode.hasText():
		if old.Text != vnode.Text {
			p.host.SetTextContent(elm, vnode.Text)
		}
	case len(oldCh) > 0 && len(ch) > 0:
		if &oldCh[0] != &ch[0] {
			p.updateChildren(vnode, elm, oldCh, ch, queue)
		}
	case len(ch) > 0:
		p.checkDuplicateKeys(vnode, ch)
		p.addVnodes(elm, nil, ch, 0, len(ch)-1, queue)
	case len(oldCh) > 0:
		p.removeVnodes(oldCh, 0, len(oldCh)-1)
	}

	if d != nil && d.Hook != nil && d.Hook.Postpatch != nil {
		d.Hook.Postpatch(old, vnode)
	}
}

func invokeInsertHook(vnode *VNode, queue insertQueue, initial bool) {
	// A component root is not attached yet; its placeholder runs these
	// once it is.
	if initial && vnode.Parent != nil {
		vnode.Parent.data().PendingInsert = queue
		return
	}
	for _, q := range queue {
		if q.Data != nil && q.Data.Hook != nil && q.Data.Hook.Insert != nil {
			q.Data.Hook.Insert(q)
		}
	}
}
