package reactive

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorCapturedStopsPropagation(t *testing.T) {
	rt, rec := newTestRuntime(t)
	root := rt.NewOwner("Root", nil)
	mid := rt.NewOwner("Mid", root)
	leaf := rt.NewOwner("Leaf", mid)

	var trail []string
	root.OnErrorCaptured(func(error, *Owner, string) bool {
		trail = append(trail, "root")
		return true
	})
	mid.OnErrorCaptured(func(err error, source *Owner, info string) bool {
		trail = append(trail, "mid:"+source.Name()+":"+info)
		return false
	})

	rt.HandleError(errors.New("x"), leaf, "render")

	assert.Equal(t, []string{"mid:Leaf:render"}, trail)
	assert.Empty(t, rec.errs)
}

func TestHandleErrorPropagatesToGlobal(t *testing.T) {
	rt, rec := newTestRuntime(t)
	root := rt.NewOwner("Root", nil)
	leaf := rt.NewOwner("Leaf", root)

	captured := 0
	root.OnErrorCaptured(func(error, *Owner, string) bool {
		captured++
		return true
	})
	// Hooks on the failing owner itself are not consulted.
	leaf.OnErrorCaptured(func(error, *Owner, string) bool {
		t.Fatal("own hook called")
		return false
	})

	rt.HandleError(errors.New("x"), leaf, "render")
	assert.Equal(t, 1, captured)
	require.Len(t, rec.errs, 1)
	assert.Equal(t, "render", rec.infos[0])
}

func TestErrorCapturedHookPanics(t *testing.T) {
	rt, rec := newTestRuntime(t)
	root := rt.NewOwner("Root", nil)
	leaf := rt.NewOwner("Leaf", root)
	root.OnErrorCaptured(func(error, *Owner, string) bool {
		panic("hook broke")
	})

	rt.HandleError(errors.New("original"), leaf, "render")

	require.Len(t, rec.errs, 2)
	assert.Equal(t, "errorCaptured hook", rec.infos[0])
	assert.Equal(t, "render", rec.infos[1])
	assert.EqualError(t, rec.errs[1], "original")
}

func TestUnhandledErrorPanicsWhenNotInteractive(t *testing.T) {
	rt := New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	assert.Panics(t, func() {
		rt.HandleError(errors.New("fatal"), nil, "render")
	})

	interactive := New(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithInteractive(true),
	)
	assert.NotPanics(t, func() {
		interactive.HandleError(errors.New("logged"), nil, "render")
	})
}

func TestFailingGlobalHandlerIsLogged(t *testing.T) {
	var handled int
	rt := New(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithInteractive(true),
		WithErrorHandler(func(error, *Owner, string) error {
			handled++
			return errors.New("handler failed")
		}),
	)
	assert.NotPanics(t, func() {
		rt.HandleError(errors.New("x"), nil, "render")
	})
	assert.Equal(t, 1, handled)
}

func TestNextTickErrors(t *testing.T) {
	rt, rec := newTestRuntime(t)
	var order []int
	rt.NextTick(func() error { order = append(order, 1); return nil })
	rt.NextTick(func() error { return errors.New("tick failed") })
	rt.NextTick(func() error { order = append(order, 3); panic("tick panicked") })

	assert.Equal(t, 1, rt.Tick())
	assert.Equal(t, []int{1, 3}, order)
	require.Len(t, rec.errs, 2)
	assert.Equal(t, []string{"nextTick", "nextTick"}, rec.infos)
	var pe *PanicError
	assert.ErrorAs(t, rec.errs[1], &pe)
}

func TestRunAndDispatch(t *testing.T) {
	rt, _ := newTestRuntime(t)
	n := NewRef(rt, 0)
	w := rt.NewWatcher(nil, func() any { return n.Get() * 2 }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rt.Run(ctx) }()

	require.NoError(t, rt.Dispatch(ctx, func() { n.Set(21) }))
	result := make(chan any, 1)
	require.NoError(t, rt.Dispatch(ctx, func() { result <- w.Value() }))

	assert.Equal(t, 42, <-result)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
