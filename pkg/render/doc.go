// Package render mounts components: reactive render functions whose trees
// are patched into a host by the vdom patcher.
//
// Each Component owns a reactive.Owner and a render watcher. The watcher
// re-runs the render function whenever state it read changes, at most once
// per scheduler flush, and patches the new tree against the previous one.
//
//	counter := &render.Options{
//	    Name: "counter",
//	    Data: func() map[string]any { return map[string]any{"count": 0} },
//	    Render: func(c *render.Component) any {
//	        n := c.Data().Get("count").(int)
//	        return vdom.Button(
//	            vdom.OnClick(func(*vdom.Event) { c.Data().Set("count", n+1) }),
//	            vdom.Textf("%d", n),
//	        )
//	    },
//	}
//	r := render.New(rt, tree)
//	r.Mount(tree.Root(), counter, nil)
//
// # Child Components
//
// Child returns a placeholder VNode. When the parent's tree is patched the
// placeholder creates the child instance, passes props down and mounts it.
// Later renders update the props in place; the child re-renders only when
// a prop it read changed. Lifecycle hooks run parent first on the way in and
// child first on the way out, as with any owner tree.
//
// # Keep-Alive
//
// KeepAlive wraps a component placeholder so that switching it out
// deactivates the instance instead of destroying it.
//
// # Errors
//
// A render function that panics is reported as R009 through the runtime's
// error handling and the previous tree stays in place. Returning more than
// one root node is warned about as R008 and renders an empty placeholder.
package render
