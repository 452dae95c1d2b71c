package vdom

import "slices"

// refsModule keeps Context.Refs in sync with the nodes carrying a Ref. It
// is always installed first.
type refsModule struct {
	BaseModule
}

func (refsModule) Create(_, vnode *VNode) {
	registerRef(vnode, false)
}

func (refsModule) Update(old, vnode *VNode) {
	if old.Data.Ref != vnode.Data.Ref {
		registerRef(old, true)
		registerRef(vnode, false)
	}
}

func (refsModule) Destroy(vnode *VNode) {
	registerRef(vnode, true)
}

// registerRef adds or removes the ref of vnode. Components register their
// instance, everything else its host node.
func registerRef(vnode *VNode, remove bool) {
	if vnode.Data == nil || vnode.Data.Ref == "" || vnode.Context == nil {
		return
	}
	key := vnode.Data.Ref
	var ref any = vnode.Elm
	if vnode.ComponentInstance != nil {
		ref = vnode.ComponentInstance
	}
	refs := vnode.Context.Refs()
	if refs == nil {
		return
	}

	if remove {
		if list, ok := refs[key].([]any); ok {
			refs[key] = slices.DeleteFunc(list, func(x any) bool { return x == ref })
		} else if refs[key] == ref {
			delete(refs, key)
		}
		return
	}

	if !vnode.Data.RefInFor {
		refs[key] = ref
		return
	}
	list, _ := refs[key].([]any)
	if !slices.Contains(list, ref) {
		refs[key] = append(list, ref)
	}
}
