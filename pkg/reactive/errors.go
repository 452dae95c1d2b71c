package reactive

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/vango-dev/vtree/internal/errors"
)

// ErrorCapturedHook intercepts an error raised in a descendant owner.
// Returning false stops propagation to further ancestors and the global
// handler.
type ErrorCapturedHook func(err error, source *Owner, info string) bool

// HandleError routes err raised in owner. Each ancestor's ErrorCaptured
// hooks are offered the error first, then the global handler. Errors that
// nobody handles are logged and, unless the runtime is interactive,
// re-panicked.
func (rt *Runtime) HandleError(err error, owner *Owner, info string) {
	if owner != nil {
		for cur := owner.parent; cur != nil; cur = cur.parent {
			for _, hook := range cur.errorCaptured {
				propagate, hookErr := callCaptured(hook, err, owner, info)
				if hookErr != nil {
					rt.globalHandleError(hookErr, cur, "errorCaptured hook")
					continue
				}
				if !propagate {
					return
				}
			}
		}
	}
	rt.globalHandleError(err, owner, info)
}

func callCaptured(hook ErrorCapturedHook, err error, source *Owner, info string) (propagate bool, hookErr error) {
	defer func() {
		if r := recover(); r != nil {
			hookErr = panicError(r)
		}
	}()
	return hook(err, source, info), nil
}

func (rt *Runtime) globalHandleError(err error, owner *Owner, info string) {
	if rt.errorHandler != nil {
		handlerErr := func() (e error) {
			defer func() {
				if r := recover(); r != nil {
					e = panicError(r)
				}
			}()
			return rt.errorHandler(err, owner, info)
		}()
		if handlerErr == nil {
			rt.countError(err)
			return
		}
		rt.logError(handlerErr, nil, "error handler")
	}
	rt.logError(err, owner, info)
}

func (rt *Runtime) countError(err error) {
	var ve *errors.Error
	if stderrors.As(err, &ve) {
		rt.metrics.Error(ve.Code)
		return
	}
	rt.metrics.Error("")
}

func (rt *Runtime) logError(err error, owner *Owner, info string) {
	rt.countError(err)
	attrs := []any{slog.String("info", info), slog.Any("error", err)}
	if owner != nil {
		attrs = append(attrs, slog.String("owner", owner.Name()))
	}
	rt.logger.Error("unhandled error", attrs...)
	if !rt.interactive {
		panic(err)
	}
}

// invoke runs fn, routing a returned error or a panic to HandleError.
func (rt *Runtime) invoke(fn func() error, owner *Owner, info string) {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = panicError(r)
			}
		}()
		err = fn()
	}()
	if err != nil {
		rt.HandleError(errors.FromError(err, "R003"), owner, info)
	}
}

// PanicError wraps a recovered panic value.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r}
}
