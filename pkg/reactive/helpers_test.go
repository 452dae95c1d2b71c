package reactive

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/vtree/internal/errors"
)

type recorder struct {
	warnings []*errors.Error
	errs     []error
	infos    []string
}

func (r *recorder) codes() []string {
	out := make([]string, 0, len(r.warnings))
	for _, w := range r.warnings {
		out = append(out, w.Code)
	}
	return out
}

// newTestRuntime returns an interactive runtime that records warnings and
// handled errors instead of logging them.
func newTestRuntime(t *testing.T, opts ...Option) (*Runtime, *recorder) {
	t.Helper()
	rec := &recorder{}
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithInteractive(true),
		WithWarnHandler(func(w *errors.Error, _ *Owner) {
			rec.warnings = append(rec.warnings, w)
		}),
		WithErrorHandler(func(err error, _ *Owner, info string) error {
			rec.errs = append(rec.errs, err)
			rec.infos = append(rec.infos, info)
			return nil
		}),
	}
	return New(append(base, opts...)...), rec
}

// testSub is a Subscriber that counts updates.
type testSub struct {
	id       uint64
	updates  int
	onUpdate func()
}

func (s *testSub) ID() uint64 { return s.id }

func (s *testSub) Update() {
	s.updates++
	if s.onUpdate != nil {
		s.onUpdate()
	}
}
