package reactive

import (
	"fmt"

	"github.com/vango-dev/vtree/internal/errors"
)

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	deep      bool
	immediate bool
	sync      bool
}

// WatchDeep triggers the callback on nested changes.
func WatchDeep() WatchOption {
	return func(c *watchConfig) { c.deep = true }
}

// Immediate invokes the callback once with the initial value.
func Immediate() WatchOption {
	return func(c *watchConfig) { c.immediate = true }
}

// WatchSync runs the callback as soon as a dependency changes.
func WatchSync() WatchOption {
	return func(c *watchConfig) { c.sync = true }
}

// Watch creates a user watcher. source is either a func() any or a
// dot-delimited path resolved against owner's root state. The returned
// function tears the watcher down.
func (rt *Runtime) Watch(owner *Owner, source any, cb Callback, opts ...WatchOption) (unwatch func()) {
	var cfg watchConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		getter func() any
		expr   string
	)
	switch src := source.(type) {
	case func() any:
		getter = src
		expr = "function"
	case string:
		expr = src
		if get := parsePath(src); get != nil {
			getter = func() any {
				if owner == nil || owner.data == nil {
					return nil
				}
				return get(owner.data)
			}
		} else {
			rt.Warn(errors.New("R007").WithInfo(fmt.Sprintf("%q", src)), owner)
		}
	default:
		rt.Warn(errors.New("R007").WithInfo(fmt.Sprintf("%T", source)), owner)
	}

	wopts := []WatcherOption{User(), Expression(expr)}
	if cfg.deep {
		wopts = append(wopts, Deep())
	}
	if cfg.sync {
		wopts = append(wopts, Sync())
	}
	w := rt.NewWatcher(owner, getter, cb, wopts...)

	if cfg.immediate && cb != nil {
		rt.invoke(func() error { return cb(w.value, nil) }, owner,
			fmt.Sprintf("callback for immediate watcher %q", expr))
	}
	return w.Teardown
}

// Watch creates a user watcher on o. See Runtime.Watch.
func (o *Owner) Watch(source any, cb Callback, opts ...WatchOption) (unwatch func()) {
	return o.rt.Watch(o, source, cb, opts...)
}
