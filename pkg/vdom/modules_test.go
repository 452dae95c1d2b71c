package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesModule(t *testing.T) {
	tp := newTestPatcher(t)
	old := Input(Type("text"), Value("a"), Disabled(true), Placeholder("p"))
	tp.Patch(tp.root, nil, old)

	n := elm(old)
	assert.Equal(t, map[string]string{"type": "text", "value": "a", "disabled": "disabled", "placeholder": "p"}, n.attrs)

	tp.host.reset()
	next := Input(Type("text"), Value("b"), Disabled(false), TabIndex(2))
	tp.Patch(tp.root, old, next)

	assert.Equal(t, map[string]string{"type": "text", "value": "b", "tabindex": "2"}, n.attrs)
	assert.Equal(t, []string{
		"remove attr disabled",
		`attr tabindex="2"`,
		`attr value="b"`,
		"remove attr placeholder",
	}, tp.host.ops)
}

func TestEventsModuleSwapsHandlers(t *testing.T) {
	tp := newTestPatcher(t)
	var got []string
	old := Button(OnClick(func(*Event) { got = append(got, "first") }), OnBlur(func(*Event) {}))
	tp.Patch(tp.root, nil, old)
	n := elm(old)
	n.fire("click")

	tp.host.reset()
	next := Button(OnClick(func(ev *Event) { got = append(got, "second "+ev.Type) }))
	tp.Patch(tp.root, old, next)
	n.fire("click")

	assert.Equal(t, []string{"first", "second click"}, got)
	// The click listener is swapped without touching the host.
	assert.Equal(t, []string{"unlisten blur"}, tp.host.ops)
}

type refContext struct{ refs Refs }

func (c *refContext) Refs() Refs { return c.refs }

func TestRefsModule(t *testing.T) {
	tp := newTestPatcher(t)
	ctx := &refContext{refs: Refs{}}
	withCtx := func(v *VNode) *VNode {
		v.Context = ctx
		for _, c := range v.Children {
			c.Context = ctx
		}
		return v
	}

	old := withCtx(Ul(Ref("list"),
		Li(Key(1), RefInFor("items"), "a"),
		Li(Key(2), RefInFor("items"), "b"),
	))
	tp.Patch(tp.root, nil, old)

	assert.Same(t, elm(old), ctx.refs["list"])
	require.Len(t, ctx.refs["items"], 2)

	next := withCtx(Ul(Ref("other"), Li(Key(2), RefInFor("items"), "b")))
	tp.Patch(tp.root, old, next)

	assert.NotContains(t, ctx.refs, "list")
	assert.Same(t, elm(next), ctx.refs["other"])
	assert.Equal(t, []any{next.Children[0].Elm}, ctx.refs["items"])

	tp.Patch(tp.root, next, nil)
	assert.NotContains(t, ctx.refs, "other")
	assert.Empty(t, ctx.refs["items"])
}

// fakeComponent mounts its own tree under a placeholder.
type fakeComponent struct {
	root *VNode
}

func (c *fakeComponent) Root() *VNode { return c.root }
func (c *fakeComponent) Elm() Node    { return c.root.Elm }

func TestComponentPlaceholder(t *testing.T) {
	tp := newTestPatcher(t)
	log := &hookLog{}

	placeholder := func() *VNode {
		return &VNode{
			Kind: KindComponent,
			Tag:  "vtree-component-child",
			Data: &VNodeData{Hook: &Hooks{
				Init: func(v *VNode) {
					root := log.node("section", "child root", nil, Text("child"))
					root.Parent = v
					tp.Patch(nil, nil, root)
					v.ComponentInstance = &fakeComponent{root: root}
				},
				Insert: func(*VNode) { log.calls = append(log.calls, "insert placeholder") },
				Prepatch: func(old, v *VNode) {
					v.ComponentInstance = old.ComponentInstance
				},
				Destroy: func(*VNode) { log.calls = append(log.calls, "destroy placeholder") },
			}},
		}
	}

	old := Div(placeholder())
	tp.Patch(tp.root, nil, old)

	assert.Equal(t, "<div><section>child</section></div>", elm(old).String())
	// The child root's insert hook waited for the placeholder to attach.
	assert.Equal(t, []string{"create child root", "insert child root", "insert placeholder"}, log.calls)
	assert.Same(t, old.Children[0].Elm, old.Children[0].ComponentInstance.Elm())

	log.calls = nil
	next := Div(placeholder())
	tp.Patch(tp.root, old, next)
	assert.Same(t, old.Children[0].ComponentInstance, next.Children[0].ComponentInstance)
	assert.Empty(t, log.calls)

	tp.Patch(tp.root, next, nil)
	assert.Equal(t, []string{"destroy placeholder"}, log.calls)
	assert.Empty(t, tp.root.children)
}

func TestComponentRootReplacedUpdatesPlaceholder(t *testing.T) {
	tp := newTestPatcher(t)
	var inst *fakeComponent
	ph := &VNode{Kind: KindComponent, Tag: "vtree-component-c", Data: &VNodeData{Ref: "c", Hook: &Hooks{
		Init: func(v *VNode) {
			root := Div("first")
			root.Parent = v
			tp.Patch(nil, nil, root)
			inst = &fakeComponent{root: root}
			v.ComponentInstance = inst
		},
	}}}
	ctx := &refContext{refs: Refs{}}
	ph.Context = ctx
	parent := Div(ph)
	tp.Patch(tp.root, nil, parent)
	require.Same(t, inst, ctx.refs["c"])

	// The component re-renders with a different root element.
	root := Span("second")
	root.Parent = ph
	tp.Patch(nil, inst.root, root)
	inst.root = root

	assert.Same(t, root.Elm, ph.Elm)
	assert.Equal(t, "<div><span>second</span></div>", elm(parent).String())
}

func TestH(t *testing.T) {
	clicked := false
	node := Div(
		Class("a", "", "b"),
		ClassIf(true, "c"),
		ClassIf(false, "d"),
		ID("main"),
		Key("k"),
		OnClick(func(*Event) { clicked = true }),
		nil,
		"text",
		Span(),
		[]*VNode{P(), nil},
	)

	assert.Equal(t, KindElement, node.Kind)
	assert.Equal(t, "k", node.Key)
	assert.Equal(t, "a b c", node.Attr("class"))
	assert.Equal(t, "main", node.Attr("id"))
	require.Len(t, node.Children, 3)
	assert.Equal(t, KindText, node.Children[0].Kind)

	node.Data.On["click"](nil)
	assert.True(t, clicked)

	assert.Panics(t, func() { Div(42) })
}

func TestKeyRejectsUncomparable(t *testing.T) {
	assert.PanicsWithValue(t, "vdom: key of type []int is not comparable", func() { Key([]int{1}) })
	assert.PanicsWithValue(t, "vdom: key of type map[string]int is not comparable", func() {
		Li(Key(map[string]int{"id": 1}))
	})

	type pair struct{ a, b int }
	for _, key := range []any{"k", 7, uint64(3), pair{1, 2}, nil} {
		assert.NotPanics(t, func() { Li(Key(key)) }, "key %v", key)
	}
	assert.Equal(t, pair{1, 2}, Li(Key(pair{1, 2})).Key)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, KindComment, Empty().Kind)
	assert.Equal(t, "n=3", Textf("n=%d", 3).Text)
	assert.Nil(t, If(false, Div()))
	assert.Nil(t, When(false, func() *VNode { panic("not called") }))
	assert.Len(t, Range([]int{1, 2, 3}, func(i, _ int) *VNode { return If(i != 2, Li()) }), 2)

	original := Div(ID("x"), Span("a"))
	original.Elm = &fakeNode{tag: "div"}
	cloned := Clone(original)
	assert.Nil(t, cloned.Elm)
	assert.True(t, cloned.IsCloned)
	assert.NotSame(t, original.Data, cloned.Data)
	assert.NotSame(t, original.Children[0], cloned.Children[0])
	assert.Equal(t, "Comment", KindComment.String())
}
