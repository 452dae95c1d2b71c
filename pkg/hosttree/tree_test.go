package hosttree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestTreeHostPrimitives(t *testing.T) {
	tree := New()
	root := tree.Root()

	ul := tree.CreateElement("ul").(*Node)
	a := tree.CreateElement("li").(*Node)
	b := tree.CreateElement("li").(*Node)
	assert.Equal(t, 1, tree.Len(), "created nodes are not attached yet")

	tree.AppendChild(ul, b)
	tree.InsertBefore(ul, a, b)
	tree.AppendChild(root, ul)

	assert.Equal(t, []*Node{a, b}, ul.Children())
	assert.Equal(t, 4, tree.Len())
	assert.Same(t, b, tree.NextSibling(a))
	assert.Nil(t, tree.NextSibling(b))
	assert.Same(t, ul, tree.ParentNode(a))
	assert.Nil(t, tree.ParentNode(root))
	assert.Equal(t, "li", tree.TagName(a))

	got, ok := tree.Get(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)

	// Moving an attached node keeps it attached.
	tree.InsertBefore(ul, b, a)
	assert.Equal(t, []*Node{b, a}, ul.Children())

	tree.RemoveChild(ul, a)
	assert.Nil(t, a.Parent())
	assert.False(t, a.Attached())
	_, ok = tree.Get(a.ID())
	assert.False(t, ok)
	assert.Equal(t, 3, tree.Len())

	ops := tree.Flush()
	require.Len(t, ops, 8)
	assert.Equal(t, OpCreateElement, ops[0].Kind)
	assert.Equal(t, OpRemoveChild, ops[7].Kind)
	assert.Empty(t, tree.Ops())
}

func TestTreeForeignNode(t *testing.T) {
	tree := New()
	other := New().CreateElement("div")

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.HasCode(err, "P002"))
	}()
	tree.AppendChild(tree.Root(), other)
}

func TestTreeSetTextContent(t *testing.T) {
	tree := New()
	p := tree.CreateElement("p").(*Node)
	txt := tree.CreateTextNode("old").(*Node)
	tree.AppendChild(p, txt)
	tree.AppendChild(tree.Root(), p)

	tree.SetTextContent(txt, "new")
	assert.Equal(t, "new", p.TextContent())

	tree.SetTextContent(p, "replaced")
	assert.Equal(t, "replaced", p.TextContent())
	assert.Nil(t, txt.Parent())
	_, ok := tree.Get(txt.ID())
	assert.False(t, ok)

	tree.SetTextContent(p, "")
	assert.Empty(t, p.Children())
}

func TestTreeDispatch(t *testing.T) {
	tree := New()
	p := vdom.NewPatcher(tree, vdom.DefaultModules(tree))
	var got *vdom.Event
	btn := vdom.Button(vdom.OnClick(func(ev *vdom.Event) { got = ev }), "Go")
	p.Patch(tree.Root(), nil, btn)
	n := btn.Elm.(*Node)
	assert.Equal(t, []string{"click"}, n.Events())

	ran, err := tree.Dispatch(n.ID(), &vdom.Event{Type: "click", Value: "v"})
	require.NoError(t, err)
	assert.True(t, ran)
	require.NotNil(t, got)
	assert.Same(t, n, got.Target)
	assert.Equal(t, "v", got.Value)

	ran, err = tree.Dispatch(n.ID(), &vdom.Event{Type: "keyup"})
	assert.NoError(t, err)
	assert.False(t, ran)

	_, err = tree.Dispatch(999, &vdom.Event{Type: "click"})
	assert.True(t, errors.HasCode(err, "P002"))

	p.Patch(tree.Root(), btn, nil)
	_, err = tree.Dispatch(n.ID(), &vdom.Event{Type: "click"})
	assert.Error(t, err, "detached nodes no longer receive events")
}

func TestMarkup(t *testing.T) {
	tree := New()
	p := vdom.NewPatcher(tree, vdom.DefaultModules(tree))
	p.Patch(tree.Root(), nil, vdom.Div(vdom.ID("a"),
		vdom.P("x<y"),
		vdom.Input(vdom.Type("text")),
	))
	p.Patch(tree.Root(), nil, vdom.Comment("end"))

	assert.Equal(t, `<div id="a"><p>x&lt;y</p><input type="text"></div><!--end-->`, tree.HTML())

	var buf bytes.Buffer
	require.NoError(t, WriteMarkup(&buf, tree.Root(), MarkupOptions{IDs: true}))
	assert.Equal(t, `<div data-vid="2" id="a"><p data-vid="3">x&lt;y</p><input data-vid="5" type="text"></div><!--end-->`, buf.String())

	buf.Reset()
	require.NoError(t, WriteMarkup(&buf, tree.Root(), MarkupOptions{Pretty: true}))
	assert.Equal(t, "<div id=\"a\">\n  <p>\n    x&lt;y\n  </p>\n  <input type=\"text\">\n</div>\n<!--end-->\n", buf.String())
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`a"b`, "a&quot;b"},
		{"<x & y>", "&lt;x &amp; y&gt;"},
		{"line\nbreak\ttab", "line&#10;break&#9;tab"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeAttr(tt.in))
	}
	assert.Equal(t, "it&#39;s", escapeHTML("it's"))
}

func TestChecksum(t *testing.T) {
	build := func(text string) *Tree {
		tree := New()
		p := vdom.NewPatcher(tree, vdom.DefaultModules(tree))
		p.Patch(tree.Root(), nil, vdom.Ul(vdom.Li(text)))
		return tree
	}

	a, b := build("one"), build("one")
	assert.Equal(t, a.Checksum(), b.Checksum())
	assert.NotEqual(t, a.Checksum(), build("two").Checksum())
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "insert #3 into #2 before #4", Op{Kind: OpInsertBefore, Node: 3, Parent: 2, Ref: 4}.String())
	assert.Equal(t, `set_attr #2 class="x"`, Op{Kind: OpSetAttr, Node: 2, Key: "class", Value: "x"}.String())
	assert.Equal(t, "unknown", OpKind(0).String())
	assert.Equal(t, "comment", CommentNode.String())
}
