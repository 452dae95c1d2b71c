package vdom

import "fmt"

// ComponentTagPrefix starts the tag of every component placeholder. Two
// placeholders only match when they name the same component.
const ComponentTagPrefix = "vtree-component-"

// Props are the values a placeholder passes to its component.
type Props map[string]any

// Component creates a placeholder VNode for a child component.
// Arguments can be: nil, Props, Attr (including Key, Ref and RefInFor;
// other attributes become props), EventHandler (component listeners),
// *VNode or []*VNode (slot children).
//
// The placeholder has no hooks; the component layer installs them.
func Component(name string, ctor any, args ...any) *VNode {
	opts := &ComponentOptions{Ctor: ctor, Name: name}
	node := &VNode{
		Kind:      KindComponent,
		Tag:       ComponentTagPrefix + name,
		Data:      &VNodeData{},
		Component: opts,
	}

	prop := func(key string, value any) {
		if opts.Props == nil {
			opts.Props = make(map[string]any)
		}
		opts.Props[key] = value
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Props:
			for key, value := range v {
				prop(key, value)
			}
		case Attr:
			if v.Key == refAttr || v.Key == refInForAttr {
				node.setAttr(v)
			} else if v.Key != "" {
				prop(v.Key, v.Value)
			}
		case EventHandler:
			if v.Event == "" || v.Handler == nil {
				continue
			}
			if opts.Listeners == nil {
				opts.Listeners = make(map[string]Listener)
			}
			opts.Listeners[v.Event] = v.Handler
		case keyed:
			node.Key = v.key
		case *VNode:
			if v != nil {
				opts.Children = append(opts.Children, v)
			}
		case []*VNode:
			for _, child := range v {
				if child != nil {
					opts.Children = append(opts.Children, child)
				}
			}
		default:
			panic(fmt.Sprintf("vdom: unsupported argument %T for component %s", arg, name))
		}
	}
	return node
}
