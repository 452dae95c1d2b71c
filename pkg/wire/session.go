package wire

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/internal/telemetry"
	"github.com/vango-dev/vtree/pkg/hosttree"
	"github.com/vango-dev/vtree/pkg/reactive"
)

// Config configures sessions.
type Config struct {
	// ReadTimeout closes a session that stays silent this long. Zero
	// disables the deadline.
	ReadTimeout time.Duration

	// WriteTimeout bounds the write of a single frame.
	WriteTimeout time.Duration

	// SendBuffer is the number of encoded frames queued for the writer.
	SendBuffer int
}

// DefaultConfig returns the session defaults.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		SendBuffer:   64,
	}
}

// Session streams the mutations of one tree to one websocket client and
// routes the client's events back to the tree's listeners.
//
// The tree and runtime are only touched on the runtime loop started by Run.
type Session struct {
	id      string
	conn    *websocket.Conn
	rt      *reactive.Runtime
	tree    *hosttree.Tree
	config  Config
	logger  *slog.Logger
	metrics *telemetry.Metrics

	seq     uint64
	started bool
	send    chan []byte

	closeOnce sync.Once
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger overrides the runtime logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session for conn. rt must not be running yet;
// Run drives it.
func NewSession(conn *websocket.Conn, rt *reactive.Runtime, tree *hosttree.Tree, cfg Config, opts ...SessionOption) *Session {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = DefaultConfig().SendBuffer
	}
	s := &Session{
		id:      uuid.NewString(),
		conn:    conn,
		rt:      rt,
		tree:    tree,
		config:  cfg,
		logger:  rt.Logger(),
		metrics: rt.Metrics(),
		send:    make(chan []byte, cfg.SendBuffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Run serves the session until ctx is done, the client disconnects or a
// write fails. mount runs first on the runtime loop and builds the tree;
// its markup is the first frame.
func (s *Session) Run(ctx context.Context, mount func()) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.metrics.SessionOpened()
	defer s.metrics.SessionClosed()
	s.logger.Info("session opened")

	remove := s.rt.AfterFlush(s.flush)
	defer remove()

	errc := make(chan error, 2)
	go func() {
		errc <- s.readLoop(ctx)
		cancel()
	}()
	go func() {
		errc <- s.writeLoop(ctx)
		cancel()
	}()
	// An unhandled error re-panics out of rt.Run; the client still gets
	// its close frame.
	defer func() {
		cancel()
		s.close()
	}()

	err := s.rt.Dispatch(ctx, func() {
		mount()
		s.sendInitial()
	})
	if err == nil {
		err = s.rt.Run(ctx)
	}
	cancel()
	s.close()

	var loopErr error
	for range 2 {
		if e := <-errc; e != nil && loopErr == nil {
			loopErr = e
		}
	}
	s.logger.Info("session closed", "frames", s.seq)

	if loopErr != nil {
		return loopErr
	}
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// sendInitial sends the markup of the mounted tree. Ops recorded while
// mounting are part of the markup and dropped.
func (s *Session) sendInitial() {
	s.tree.Flush()
	var b strings.Builder
	if err := hosttree.WriteMarkup(&b, s.tree.Root(), hosttree.MarkupOptions{IDs: true}); err != nil {
		s.rt.Warn(errors.New("W002").Wrap(err), nil)
		return
	}
	s.started = true
	s.push(&Frame{HTML: b.String()})
}

// flush sends the ops of the flush that just completed.
func (s *Session) flush() {
	if !s.started {
		return
	}
	ops := s.tree.Flush()
	if len(ops) == 0 {
		return
	}
	s.push(&Frame{Ops: ops})
}

func (s *Session) push(f *Frame) {
	s.seq++
	f.Seq = s.seq
	f.Checksum = s.tree.Checksum()
	data, err := EncodeFrame(f)
	if err != nil {
		s.rt.Warn(errors.New("W002").Wrap(err), nil)
		return
	}
	select {
	case s.send <- data:
	case <-s.rt.Context().Done():
	}
}

// handleEvent runs on the runtime loop.
func (s *Session) handleEvent(ev *Event) {
	ran, err := s.tree.Dispatch(ev.Node, ev.vdom())
	if err != nil {
		s.rt.Warn(errors.FromError(err, "P002").WithInfo("event "+ev.Type), nil)
		return
	}
	if !ran {
		s.logger.Debug("event without listener", "node", ev.Node, "type", ev.Type)
	}
}

// readLoop decodes client events and hands them to the runtime loop. It
// returns nil when the connection closes normally.
func (s *Session) readLoop(ctx context.Context) error {
	for {
		if s.config.ReadTimeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		}
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				return err
			}
			return nil
		}

		ev, err := DecodeEvent(msg)
		if err != nil {
			s.metrics.Error("W001")
			s.logger.Warn("invalid frame", "error", err, "bytes", len(msg))
			continue
		}
		if err := s.rt.Dispatch(ctx, func() { s.handleEvent(ev) }); err != nil {
			return nil
		}
	}
}

// writeLoop writes queued frames until ctx is done.
func (s *Session) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case data := <-s.send:
			if s.config.WriteTimeout > 0 {
				s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			}
			if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				s.metrics.Error("W002")
				s.logger.Error("write error", "error", err)
				return errors.New("W002").Wrap(err)
			}
			s.metrics.FrameSent()
		}
	}
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		deadline := time.Now().Add(time.Second)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, deadline)
		s.conn.Close()
	})
}

// Handler upgrades HTTP requests to sessions. Every session gets a fresh
// runtime and tree.
type Handler struct {
	// Mount builds the tree of a new session. It runs on the session's
	// runtime loop.
	Mount func(rt *reactive.Runtime, tree *hosttree.Tree)

	Config Config

	// Runtime options applied to every session runtime.
	Runtime []reactive.Option

	// Upgrader upgrades the request. Subprotocol is offered when it
	// lists none.
	Upgrader websocket.Upgrader
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt := reactive.New(h.Runtime...)
	up := h.Upgrader
	if len(up.Subprotocols) == 0 {
		up.Subprotocols = []string{Subprotocol}
	}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		rt.Logger().Warn("websocket upgrade failed", "error", err)
		return
	}
	tree := hosttree.New()
	s := NewSession(conn, rt, tree, h.Config)
	if err := s.Run(r.Context(), func() { h.Mount(rt, tree) }); err != nil {
		s.logger.Warn("session ended", "error", err)
	}
}
