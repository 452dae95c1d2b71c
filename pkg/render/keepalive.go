package render

import (
	"math"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// KeepAlive returns options for a wrapper component. It renders the first
// component placeholder in its slot and caches the instance behind it, so
// switching back reuses the instance instead of mounting a new one.
// Switched-out instances are deactivated. max bounds the cache, least
// recently rendered first out; 0 means unbounded.
func KeepAlive(max int) *Options {
	return &Options{
		Name: "keep-alive",
		Setup: func(c *Component) RenderFunc {
			return newAliveCache(max).render
		},
	}
}

// aliveCache maps a placeholder key to the placeholder holding the cached
// instance. It is only used on the runtime loop.
type aliveCache struct {
	entries *simplelru.LRU[any, *vdom.VNode]

	// shown is the placeholder rendered before the current render. An
	// eviction never destroys its instance; the patch deactivates it.
	shown *vdom.VNode
}

func newAliveCache(max int) *aliveCache {
	if max <= 0 {
		max = math.MaxInt
	}
	a := &aliveCache{}
	// NewLRU only fails for a non-positive size.
	a.entries, _ = simplelru.NewLRU[any, *vdom.VNode](max, a.evicted)
	return a
}

func (a *aliveCache) render(c *Component) any {
	slot := c.Slot()
	var vnode *vdom.VNode
	for _, child := range slot {
		if child.Component != nil {
			vnode = child
			break
		}
	}
	if vnode == nil {
		if len(slot) > 0 {
			return slot[0]
		}
		return nil
	}

	key := vnode.Key
	if key == nil {
		key = vnode.Tag
	}
	if cached, ok := a.entries.Get(key); ok {
		vnode.ComponentInstance = cached.ComponentInstance
	} else {
		a.shown = c.vnode
		a.entries.Add(key, vnode)
	}
	vnode.Data.KeepAlive = true
	return vnode
}

// evicted destroys the instance behind a pruned entry unless it is the one
// currently shown.
func (a *aliveCache) evicted(_ any, cached *vdom.VNode) {
	if a.shown != nil && cached.Tag == a.shown.Tag {
		return
	}
	if c := instance(cached); c != nil {
		c.Destroy()
	}
}
