package vdom

// Module handles one aspect of a node (attributes, listeners, refs). The
// patcher calls every registered module at each phase without knowing what
// it does.
type Module interface {
	Create(empty, vnode *VNode)
	Activate(empty, vnode *VNode)
	Update(old, vnode *VNode)
	// Remove must call rm exactly once, possibly later, to let the node
	// leave the host tree.
	Remove(vnode *VNode, rm func())
	Destroy(vnode *VNode)
}

// BaseModule implements every Module phase as a no-op. Embed it and
// override the phases you need.
type BaseModule struct{}

func (BaseModule) Create(empty, vnode *VNode)   {}
func (BaseModule) Activate(empty, vnode *VNode) {}
func (BaseModule) Update(old, vnode *VNode)     {}
func (BaseModule) Remove(vnode *VNode, rm func()) {
	rm()
}
func (BaseModule) Destroy(vnode *VNode) {}
