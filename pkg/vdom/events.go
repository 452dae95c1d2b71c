package vdom

import (
	"maps"
	"slices"
)

// On binds a listener to an arbitrary event name.
func On(name string, fn Listener) EventHandler {
	return EventHandler{Event: name, Handler: fn}
}

// OnClick handles click events.
func OnClick(fn Listener) EventHandler { return On("click", fn) }

// OnDblClick handles double-click events.
func OnDblClick(fn Listener) EventHandler { return On("dblclick", fn) }

// OnKeyDown handles keydown events.
func OnKeyDown(fn Listener) EventHandler { return On("keydown", fn) }

// OnKeyUp handles keyup events.
func OnKeyUp(fn Listener) EventHandler { return On("keyup", fn) }

// OnInput handles input events (fired when value changes).
func OnInput(fn Listener) EventHandler { return On("input", fn) }

// OnChange handles change events (fired when value is committed).
func OnChange(fn Listener) EventHandler { return On("change", fn) }

// OnSubmit handles form submit events.
func OnSubmit(fn Listener) EventHandler { return On("submit", fn) }

// OnFocus handles focus events.
func OnFocus(fn Listener) EventHandler { return On("focus", fn) }

// OnBlur handles blur events.
func OnBlur(fn Listener) EventHandler { return On("blur", fn) }

// invoker is the listener actually registered with the host. Updating a
// node swaps fn without touching the host.
type invoker struct {
	fn Listener
}

func (i *invoker) handle(ev *Event) {
	if fn := i.fn; fn != nil {
		fn(ev)
	}
}

// eventsModule registers VNodeData.On with an EventHost.
type eventsModule struct {
	BaseModule
	host EventHost
}

// Events returns the module that keeps host listeners in sync.
func Events(host EventHost) Module {
	return eventsModule{host: host}
}

func (m eventsModule) Create(empty, vnode *VNode) { m.update(empty, vnode) }
func (m eventsModule) Update(old, vnode *VNode)   { m.update(old, vnode) }

func (m eventsModule) update(old, vnode *VNode) {
	var oldInvokers map[string]*invoker
	if old.Data != nil {
		oldInvokers = old.Data.invokers
	}
	on := vnode.Data.On
	if len(on) == 0 && len(oldInvokers) == 0 {
		return
	}
	elm := vnode.Elm

	invokers := make(map[string]*invoker, len(on))
	for _, name := range slices.Sorted(maps.Keys(on)) {
		if inv := oldInvokers[name]; inv != nil {
			inv.fn = on[name]
			invokers[name] = inv
			continue
		}
		inv := &invoker{fn: on[name]}
		m.host.AddEventListener(elm, name, inv.handle)
		invokers[name] = inv
	}
	for _, name := range slices.Sorted(maps.Keys(oldInvokers)) {
		if _, ok := on[name]; !ok {
			m.host.RemoveEventListener(elm, name)
		}
	}
	vnode.Data.invokers = invokers
}
