package render

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/hosttree"
	"github.com/vango-dev/vtree/pkg/reactive"
)

type harness struct {
	rt   *reactive.Runtime
	tree *hosttree.Tree
	r    *Renderer

	errs     []error
	warnings []*errors.Error
	log      []string
}

// newHarness returns an interactive runtime rendering into an in-memory
// tree. Warnings and handled errors are recorded.
func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{tree: hosttree.New()}
	h.rt = reactive.New(
		reactive.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		reactive.WithInteractive(true),
		reactive.WithWarnHandler(func(w *errors.Error, _ *reactive.Owner) {
			h.warnings = append(h.warnings, w)
		}),
		reactive.WithErrorHandler(func(err error, _ *reactive.Owner, _ string) error {
			h.errs = append(h.errs, err)
			return nil
		}),
	)
	h.r = New(h.rt, h.tree)
	return h
}

// record logs "<name> <hook>" whenever one of hooks fires on c.
func (h *harness) record(c *Component, hooks ...reactive.Hook) {
	for _, hook := range hooks {
		c.Owner().On(hook, func() error {
			h.log = append(h.log, c.Name()+" "+hook.String())
			return nil
		})
	}
}

func (h *harness) mount(opts *Options) *Component {
	return h.r.Mount(h.tree.Root(), opts, nil)
}

func (h *harness) html() string { return h.tree.HTML() }

var lifecycle = []reactive.Hook{
	reactive.HookCreated,
	reactive.HookBeforeMount,
	reactive.HookMounted,
	reactive.HookBeforeUpdate,
	reactive.HookUpdated,
	reactive.HookBeforeDestroy,
	reactive.HookDestroyed,
}

func count(c *Component, key string) int {
	n, _ := c.Data().Get(key).(int)
	return n
}
