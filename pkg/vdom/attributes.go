package vdom

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining non-empty classes with spaces.
func Class(classes ...string) Attr {
	return attr("class", strings.Join(slices.DeleteFunc(slices.Clone(classes), func(c string) bool { return c == "" }), " "))
}

// ClassIf adds class only when cond holds.
func ClassIf(cond bool, class string) Attr {
	if !cond {
		return Attr{}
	}
	return Class(class)
}

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute: Data("id", "123") → data-id="123".
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", strconv.FormatBool(hidden)) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attr { return attr("tabindex", index) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute. Inputs with incompatible types are never
// patched into each other.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the for attribute (for labels).
func For(id string) Attr { return attr("for", id) }

// Boolean attributes take a condition; false removes the attribute.

// Disabled sets the disabled attribute.
func Disabled(on bool) Attr { return attr("disabled", on) }

// Checked sets the checked attribute.
func Checked(on bool) Attr { return attr("checked", on) }

// Selected sets the selected attribute.
func Selected(on bool) Attr { return attr("selected", on) }

// Readonly sets the readonly attribute.
func Readonly(on bool) Attr { return attr("readonly", on) }

// Hidden sets the hidden attribute.
func Hidden(on bool) Attr { return attr("hidden", on) }

// Key sets the reconciliation key of the element being built. Keys are
// compared with == and used as map keys, so Key panics on a key whose type
// is not comparable, such as a slice or a map.
func Key(key any) any {
	if key != nil && !reflect.TypeOf(key).Comparable() {
		panic(fmt.Sprintf("vdom: key of type %T is not comparable", key))
	}
	return keyed{key: key}
}

// Ref registers the element (or component instance) under name in the
// rendering component's refs.
func Ref(name string) Attr { return attr(refAttr, name) }

// RefInFor is Ref for nodes rendered in a list; the ref maps to a slice.
func RefInFor(name string) Attr { return attr(refInForAttr, name) }

const (
	refAttr      = "\x00ref"
	refInForAttr = "\x00ref-in-for"
)

// isFalsyAttr reports whether value removes the attribute.
func isFalsyAttr(value any) bool {
	return value == nil || value == false
}

// FormatAttr renders an attribute value the way the attributes module
// writes it to the host. True booleans render as the attribute name.
func FormatAttr(key string, value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return key
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// attrsModule writes VNodeData.Attrs to an AttrHost.
type attrsModule struct {
	BaseModule
	host AttrHost
}

// Attributes returns the module that keeps host attributes in sync.
func Attributes(host AttrHost) Module {
	return attrsModule{host: host}
}

func (m attrsModule) Create(empty, vnode *VNode) { m.update(empty, vnode) }
func (m attrsModule) Update(old, vnode *VNode)   { m.update(old, vnode) }

func (m attrsModule) update(old, vnode *VNode) {
	var oldAttrs map[string]any
	if old.Data != nil {
		oldAttrs = old.Data.Attrs
	}
	attrs := vnode.Data.Attrs
	if len(oldAttrs) == 0 && len(attrs) == 0 {
		return
	}
	elm := vnode.Elm

	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		cur := attrs[key]
		prev, had := oldAttrs[key]
		if had && isFalsyAttr(prev) == isFalsyAttr(cur) && FormatAttr(key, prev) == FormatAttr(key, cur) {
			continue
		}
		if isFalsyAttr(cur) {
			if had && !isFalsyAttr(prev) {
				m.host.RemoveAttribute(elm, key)
			}
			continue
		}
		m.host.SetAttribute(elm, key, FormatAttr(key, cur))
	}
	for _, key := range slices.Sorted(maps.Keys(oldAttrs)) {
		if _, ok := attrs[key]; !ok && !isFalsyAttr(oldAttrs[key]) {
			m.host.RemoveAttribute(elm, key)
		}
	}
}
