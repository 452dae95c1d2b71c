// Package demo holds the example application served and scripted by the
// vtree command: a counter and a todo list behind keep-alive tabs.
package demo

import (
	"strings"

	"github.com/vango-dev/vtree/pkg/reactive"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Counter counts clicks in steps of its "step" prop.
var Counter = &render.Options{
	Name:  "counter",
	Props: map[string]any{"step": 1},
	Data:  func() map[string]any { return map[string]any{"count": 0} },
	Render: func(c *render.Component) any {
		n := intValue(c.Data().Get("count"))
		step := intValue(c.Prop("step"))
		return vdom.Div(vdom.Class("counter"),
			vdom.Button(vdom.Class("dec"),
				vdom.OnClick(func(*vdom.Event) { c.Data().Set("count", n-step) }), "-"),
			vdom.Span(vdom.Class("count"), vdom.Textf("%d", n)),
			vdom.Button(vdom.Class("inc"),
				vdom.OnClick(func(*vdom.Event) { c.Data().Set("count", n+step) }), "+"),
		)
	},
}

// TodoItem renders one todo. It toggles the shared todo object directly
// and asks its parent to remove it with a "remove" event.
var TodoItem = &render.Options{
	Name:  "todo-item",
	Props: map[string]any{"todo": nil},
	Render: func(c *render.Component) any {
		todo, _ := c.Prop("todo").(*reactive.Object)
		if todo == nil {
			return nil
		}
		done, _ := todo.Get("done").(bool)
		text, _ := todo.Get("text").(string)
		return vdom.Li(vdom.ClassIf(done, "done"),
			vdom.Span(vdom.Class("toggle"),
				vdom.OnClick(func(*vdom.Event) { todo.Set("done", !done) }), text),
			vdom.Button(vdom.Class("remove"),
				vdom.OnClick(func(*vdom.Event) { c.Emit("remove", nil) }), "x"),
		)
	},
}

// TodoList keeps a draft and a list of todos.
var TodoList = &render.Options{
	Name: "todo-list",
	Data: func() map[string]any {
		return map[string]any{"draft": "", "nextID": 1, "todos": []any{}}
	},
	Render: func(c *render.Component) any {
		data := c.Data()
		todos := data.Get("todos").(*reactive.List)
		draft, _ := data.Get("draft").(string)

		remaining := 0
		var rows []*vdom.VNode
		for _, item := range todos.Items() {
			todo := item.(*reactive.Object)
			if done, _ := todo.Get("done").(bool); !done {
				remaining++
			}
			rows = append(rows, render.Child(TodoItem,
				vdom.Key(todo.Get("id")),
				vdom.Props{"todo": todo},
				vdom.On("remove", func(*vdom.Event) { removeTodo(todos, todo) }),
			))
		}

		return vdom.Section(vdom.Class("todos"),
			vdom.Form(vdom.OnSubmit(func(*vdom.Event) { addTodo(data) }),
				vdom.Input(vdom.Class("draft"), vdom.Type("text"), vdom.Value(draft),
					vdom.Placeholder("What needs doing?"),
					vdom.OnInput(func(ev *vdom.Event) { data.Set("draft", ev.Value) }),
				),
			),
			vdom.Ul(rows),
			vdom.Footer(vdom.Textf("%d left", remaining)),
		)
	},
}

func addTodo(data *reactive.Object) {
	text := strings.TrimSpace(data.Get("draft").(string))
	if text == "" {
		return
	}
	id := intValue(data.Get("nextID"))
	data.Get("todos").(*reactive.List).Push(map[string]any{
		"id":   id,
		"text": text,
		"done": false,
	})
	data.Set("nextID", id+1)
	data.Set("draft", "")
}

func removeTodo(todos *reactive.List, todo *reactive.Object) {
	for i, item := range todos.Items() {
		if item == todo {
			todos.Splice(i, 1)
			return
		}
	}
}

var tabs = render.KeepAlive(0)

// App switches between the counter and the todo list. Both keep their
// state while hidden.
var App = &render.Options{
	Name: "app",
	Data: func() map[string]any { return map[string]any{"tab": "counter"} },
	Render: func(c *render.Component) any {
		tab, _ := c.Data().Get("tab").(string)
		link := func(name string) *vdom.VNode {
			return vdom.Button(vdom.Class("tab-"+name), vdom.ClassIf(tab == name, "active"),
				vdom.OnClick(func(*vdom.Event) { c.Data().Set("tab", name) }), name)
		}
		return vdom.Div(vdom.Class("app"),
			vdom.Nav(link("counter"), link("todos")),
			render.Child(tabs,
				vdom.If(tab == "counter", render.Child(Counter)),
				vdom.If(tab == "todos", render.Child(TodoList)),
			),
		)
	},
}

func intValue(v any) int {
	n, _ := v.(int)
	return n
}
