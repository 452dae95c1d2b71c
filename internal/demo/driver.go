package demo

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vango-dev/vtree/pkg/hosttree"
	"github.com/vango-dev/vtree/pkg/reactive"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Step is one scripted user action. Target is ".class" or a tag name; the
// first matching element in document order receives the event.
type Step struct {
	Event  string
	Target string
	Value  string
}

func (s Step) String() string {
	if s.Value != "" {
		return fmt.Sprintf("%s %s %q", s.Event, s.Target, s.Value)
	}
	return s.Event + " " + s.Target
}

// Script exercises both tabs of App.
var Script = []Step{
	{Event: "click", Target: ".inc"},
	{Event: "click", Target: ".inc"},
	{Event: "click", Target: ".tab-todos"},
	{Event: "input", Target: ".draft", Value: "write docs"},
	{Event: "submit", Target: "form"},
	{Event: "input", Target: ".draft", Value: "ship"},
	{Event: "submit", Target: "form"},
	{Event: "click", Target: ".toggle"},
	{Event: "click", Target: ".remove"},
	{Event: "click", Target: ".tab-counter"},
}

// Driver mounts App on an in-memory tree and replays steps against it,
// running the scheduler after each one.
type Driver struct {
	rt   *reactive.Runtime
	tree *hosttree.Tree
	app  *render.Component
}

// NewDriver mounts App. The ops of the initial render are discarded.
func NewDriver(opts ...reactive.Option) *Driver {
	d := &Driver{rt: reactive.New(opts...), tree: hosttree.New()}
	d.app = render.New(d.rt, d.tree).Mount(d.tree.Root(), App, nil)
	d.tree.Flush()
	return d
}

// Runtime returns the driver's runtime.
func (d *Driver) Runtime() *reactive.Runtime { return d.rt }

// Tree returns the host tree App renders into.
func (d *Driver) Tree() *hosttree.Tree { return d.tree }

// Do dispatches s and returns the host ops the resulting flush produced.
func (d *Driver) Do(s Step) ([]hosttree.Op, error) {
	n := d.find(s.Target)
	if n == nil {
		return nil, fmt.Errorf("demo: no element matches %q", s.Target)
	}
	if _, err := d.tree.Dispatch(n.ID(), &vdom.Event{Type: s.Event, Value: s.Value}); err != nil {
		return nil, err
	}
	d.rt.Tick()
	return d.tree.Flush(), nil
}

// Close destroys App.
func (d *Driver) Close() {
	d.app.Destroy()
	d.rt.Tick()
}

func (d *Driver) find(target string) *hosttree.Node {
	return d.tree.Root().Find(func(n *hosttree.Node) bool {
		if n.Type() != hosttree.ElementNode {
			return false
		}
		if class, ok := strings.CutPrefix(target, "."); ok {
			attr, _ := n.Attr("class")
			return slices.Contains(strings.Fields(attr), class)
		}
		return n.Tag() == target
	})
}
