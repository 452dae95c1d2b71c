package vdom

import "fmt"

// H creates an element VNode with the given tag.
// Arguments can be: nil, Attr, []Attr, EventHandler, Key(...), *VNode,
// []*VNode, string (text child) or fmt.Stringer (text child).
func H(tag string, args ...any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional children)
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case EventHandler:
			if v.Event == "" || v.Handler == nil {
				continue
			}
			d := node.data()
			if d.On == nil {
				d.On = make(map[string]Listener)
			}
			d.On[v.Event] = v.Handler

		case keyed:
			node.Key = v.key

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			node.Children = append(node.Children, Text(v))

		case fmt.Stringer:
			node.Children = append(node.Children, Text(v.String()))

		default:
			panic(fmt.Sprintf("vdom: unsupported argument %T for <%s>", arg, tag))
		}
	}

	return node
}

func (v *VNode) data() *VNodeData {
	if v.Data == nil {
		v.Data = &VNodeData{}
	}
	return v.Data
}

func (v *VNode) setAttr(a Attr) {
	switch a.Key {
	case "":
		return
	case refAttr:
		v.data().Ref, _ = a.Value.(string)
	case refInForAttr:
		v.data().Ref, _ = a.Value.(string)
		v.Data.RefInFor = true
	default:
		d := v.data()
		if d.Attrs == nil {
			d.Attrs = make(map[string]any)
		}
		if a.Key == "class" {
			if prev, ok := d.Attrs["class"].(string); ok && prev != "" {
				if s, _ := a.Value.(string); s != "" {
					a.Value = prev + " " + s
				} else {
					a.Value = prev
				}
			}
		}
		d.Attrs[a.Key] = a.Value
	}
}

// Document structure elements

func Header(args ...any) *VNode  { return H("header", args...) }
func Footer(args ...any) *VNode  { return H("footer", args...) }
func Main(args ...any) *VNode    { return H("main", args...) }
func Nav(args ...any) *VNode     { return H("nav", args...) }
func Section(args ...any) *VNode { return H("section", args...) }
func H1(args ...any) *VNode      { return H("h1", args...) }
func H2(args ...any) *VNode      { return H("h2", args...) }

// Content elements

func Div(args ...any) *VNode    { return H("div", args...) }
func P(args ...any) *VNode      { return H("p", args...) }
func Span(args ...any) *VNode   { return H("span", args...) }
func Ul(args ...any) *VNode     { return H("ul", args...) }
func Ol(args ...any) *VNode     { return H("ol", args...) }
func Li(args ...any) *VNode     { return H("li", args...) }
func A(args ...any) *VNode      { return H("a", args...) }
func Strong(args ...any) *VNode { return H("strong", args...) }
func Em(args ...any) *VNode     { return H("em", args...) }

// Form elements

func Form(args ...any) *VNode     { return H("form", args...) }
func Input(args ...any) *VNode    { return H("input", args...) }
func Textarea(args ...any) *VNode { return H("textarea", args...) }
func Button(args ...any) *VNode   { return H("button", args...) }
func Label(args ...any) *VNode    { return H("label", args...) }

// Table elements

func Table(args ...any) *VNode { return H("table", args...) }
func Tbody(args ...any) *VNode { return H("tbody", args...) }
func Tr(args ...any) *VNode    { return H("tr", args...) }
func Td(args ...any) *VNode    { return H("td", args...) }

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}
