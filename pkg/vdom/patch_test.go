package vdom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchSameTreeIsNoop(t *testing.T) {
	tp := newTestPatcher(t)
	log := &hookLog{}
	tree := log.node("div", "root", nil, log.node("span", "child", nil, Text("hi")))

	tp.Patch(tp.root, nil, tree)
	tp.host.reset()
	log.calls = nil

	got := tp.Patch(tp.root, tree, tree)

	assert.Same(t, elm(tree), got)
	assert.Empty(t, tp.host.ops)
	assert.Empty(t, log.calls)
}

func TestPatchCreateThenDestroy(t *testing.T) {
	tp := newTestPatcher(t)
	log := &hookLog{}
	tree := log.node("ul", "list", nil,
		log.node("li", "a", 1, Text("a")),
		log.node("li", "b", 2, Text("b")),
	)

	tp.Patch(tp.root, nil, tree)

	require.Len(t, tp.root.children, 1)
	assert.Equal(t, "<ul><li>a</li><li>b</li></ul>", tp.root.children[0].String())
	// Create hooks run bottom-up, insert hooks only once attached.
	assert.Equal(t, []string{
		"create a", "create b", "create list",
		"insert a", "insert b", "insert list",
	}, log.calls)

	log.calls = nil
	tp.Patch(tp.root, tree, nil)

	assert.Empty(t, tp.root.children)
	// Destroy hooks run pre-order.
	assert.Equal(t, []string{"destroy list", "destroy a", "destroy b"}, log.calls)
}

func TestInsertHookSeesAttachedNode(t *testing.T) {
	tp := newTestPatcher(t)
	var attached bool
	child := &VNode{Kind: KindElement, Tag: "input", Data: &VNodeData{Hook: &Hooks{
		Insert: func(v *VNode) {
			n := elm(v)
			attached = n.parent != nil && n.parent.parent == tp.root
		},
	}}}

	tp.Patch(tp.root, nil, Div(child))

	assert.True(t, attached)
}

func TestPatchKeyedReorderMovesOnly(t *testing.T) {
	tp := newTestPatcher(t)
	log := &hookLog{}
	item := func(key int, name string) *VNode { return log.node("li", name, key, Text(name)) }

	old := Ul(item(1, "A"), item(2, "B"), item(3, "C"))
	tp.Patch(tp.root, nil, old)
	a, b, c := old.Children[0].Elm, old.Children[1].Elm, old.Children[2].Elm

	tp.host.reset()
	log.calls = nil
	next := Ul(item(3, "C"), item(1, "A"), item(2, "B"))
	tp.Patch(tp.root, old, next)

	assert.Equal(t, []string{"<li>C</li>", "<li>A</li>", "<li>B</li>"}, texts(elm(next)))
	assert.Same(t, c, next.Children[0].Elm)
	assert.Same(t, a, next.Children[1].Elm)
	assert.Same(t, b, next.Children[2].Elm)
	assert.Equal(t, []string{"insert <li>C</li> before <li>A</li>"}, tp.host.ops)
	for _, call := range log.calls {
		assert.True(t, strings.HasPrefix(call, "update"), "unexpected hook %q", call)
	}
}

func TestPatchTextInPlace(t *testing.T) {
	tp := newTestPatcher(t)
	old := P(Text("x"))
	tp.Patch(tp.root, nil, old)
	textNode := old.Children[0].Elm

	tp.host.reset()
	next := P(Text("y"))
	tp.Patch(tp.root, old, next)

	assert.Same(t, textNode, next.Children[0].Elm)
	assert.Equal(t, "y", elm(next.Children[0]).text)
	assert.Equal(t, []string{`set text "y"`}, tp.host.ops)
}

func TestPatchDuplicateKeysWarns(t *testing.T) {
	tp := newTestPatcher(t)
	old := Ul(Li(Key("a"), "1"), Li(Key("a"), "2"))

	require.NotPanics(t, func() { tp.Patch(tp.root, nil, old) })
	require.Len(t, tp.warnings, 1)
	assert.Equal(t, "P001", tp.warnings[0].Code)

	next := Ul(Li(Key("a"), "2"), Li(Key("a"), "1"), Li(Key("b"), "3"))
	require.NotPanics(t, func() { tp.Patch(tp.root, old, next) })
	assert.Len(t, tp.warnings, 2)
	assert.Len(t, elm(next).children, 3)
}

func TestPatchReplacesDifferentNode(t *testing.T) {
	tp := newTestPatcher(t)
	log := &hookLog{}
	tp.Patch(tp.root, nil, Comment("before"))
	old := log.node("div", "old", nil, Text("old"))
	tp.Patch(tp.root, nil, old)
	tp.Patch(tp.root, nil, Comment("after"))

	log.calls = nil
	next := log.node("section", "new", nil, Text("new"))
	got := tp.Patch(tp.root, old, next)

	assert.Same(t, elm(next), got)
	assert.Equal(t, []string{"<!--before-->", "<section>new</section>", "<!--after-->"}, texts(tp.root))
	assert.Equal(t, []string{"create new", "destroy old", "insert new"}, log.calls)
}

func TestPatchRemoveHookDelaysRemoval(t *testing.T) {
	tp := newTestPatcher(t)
	var done func()
	leaving := &VNode{Kind: KindElement, Tag: "p", Key: "x", Data: &VNodeData{Hook: &Hooks{
		Remove: func(_ *VNode, rm func()) { done = rm },
	}}}
	old := Div(leaving)
	tp.Patch(tp.root, nil, old)

	next := Div()
	tp.Patch(tp.root, old, next)

	require.NotNil(t, done)
	assert.Len(t, elm(next).children, 1, "node stays until the remove hook finishes")
	done()
	assert.Empty(t, elm(next).children)
}

func TestSameVnodeInputType(t *testing.T) {
	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"same tag", Div(), Div(), true},
		{"different tag", Div(), Span(), false},
		{"different key", Div(Key(1)), Div(Key(2)), false},
		{"data presence", Div(), Div(ID("x")), false},
		{"text inputs", Input(Type("text")), Input(Type("email")), true},
		{"text and checkbox", Input(Type("text")), Input(Type("checkbox")), false},
		{"same checkbox", Input(Type("checkbox")), Input(Type("checkbox")), true},
		{"text and comment", Text(""), Empty(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sameVnode(tt.a, tt.b))
		})
	}
}

func TestUpdateChildren(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
	}{
		{"append", "ab", "abcd"},
		{"prepend", "cd", "abcd"},
		{"insert middle", "ad", "abcd"},
		{"remove all", "abc", ""},
		{"remove middle", "abcde", "bd"},
		{"reverse", "abcde", "edcba"},
		{"rotate right", "abcd", "dabc"},
		{"rotate left", "abcd", "bcda"},
		{"shuffle with new", "abcdef", "fxbdya"},
		{"replace all", "abc", "xyz"},
	}

	keyed := func(s string) *VNode {
		var children []*VNode
		for _, r := range s {
			children = append(children, Li(Key(string(r)), string(r)))
		}
		return Ul(children)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := newTestPatcher(t)
			old := keyed(tt.old)
			tp.Patch(tp.root, nil, old)
			before := map[any]Node{}
			for _, c := range old.Children {
				before[c.Key] = c.Elm
			}

			next := keyed(tt.new)
			tp.Patch(tp.root, old, next)

			var got strings.Builder
			for _, c := range elm(next).children {
				got.WriteString(c.children[0].text)
			}
			assert.Equal(t, tt.new, got.String())
			for _, c := range next.Children {
				if prev, ok := before[c.Key]; ok {
					assert.Same(t, prev, c.Elm, "key %v was recreated", c.Key)
				}
			}
			assert.Empty(t, tp.warnings)
		})
	}
}

func TestUpdateChildrenUnkeyed(t *testing.T) {
	tp := newTestPatcher(t)
	old := Div(Span("a"), P("b"), Span("c"))
	tp.Patch(tp.root, nil, old)

	next := Div(P("b"), Span("c"), Span("a"), Em("d"))
	tp.Patch(tp.root, old, next)

	assert.Equal(t, "<div><p>b</p><span>c</span><span>a</span><em>d</em></div>", elm(next).String())
}

func TestPatchReusesRenderedVNodeByCloning(t *testing.T) {
	tp := newTestPatcher(t)
	shared := Span("shared")
	first := Div(shared)
	tp.Patch(tp.root, nil, first)

	second := Div(Em("x"), shared)
	tp.Patch(tp.root, nil, second)

	assert.NotSame(t, shared, second.Children[1])
	assert.True(t, second.Children[1].IsCloned)
	assert.Equal(t, "<div><em>x</em><span>shared</span></div>", elm(second).String())
	assert.Equal(t, "<div><span>shared</span></div>", elm(first).String())
}
