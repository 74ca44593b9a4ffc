package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/rangeslider/pkg/demo"
	"github.com/vango-dev/rangeslider/pkg/model"
	"github.com/vango-dev/rangeslider/pkg/vdom"
)

// ErrSessionClosed is returned when writing to a closed session.
var ErrSessionClosed = errors.New("server: session closed")

// Session is one browser tab's live slider.
type Session struct {
	id     string
	srv    *Server
	conn   *websocket.Conn
	logger *slog.Logger

	// Owned by the event loop.
	body  *vdom.VNode
	sent  *vdom.VNode
	panel *demo.Panel
	hids  *vdom.HIDGenerator

	jobs      chan func()
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(srv *Server, id string, conn *websocket.Conn, body *vdom.VNode, panel *demo.Panel) *Session {
	return &Session{
		id:     id,
		srv:    srv,
		conn:   conn,
		logger: srv.config.Logger.With("component", "session", "session", id),
		body:   body,
		panel:  panel,
		hids:   vdom.NewHIDGenerator(),
		jobs:   make(chan func(), srv.config.QueueSize),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// serve runs the event loop until the session is closed.
func (s *Session) serve() {
	defer s.panel.Close()
	go s.readLoop()

	if err := s.resync(); err != nil {
		s.logger.Warn("initial sync failed", "error", err)
		s.Close()
		return
	}

	for {
		select {
		case <-s.done:
			return
		case job := <-s.jobs:
			job()
		}
	}
}

// readLoop decodes client events and queues them for the event loop.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		var ev vdom.Event
		if err := s.conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Warn("read error", "error", err)
			}
			return
		}
		if !s.dispatch(func() { s.handleEvent(&ev) }) {
			return
		}
	}
}

// dispatch queues job on the event loop. It reports false once the
// session is closed.
func (s *Session) dispatch(job func()) bool {
	select {
	case s.jobs <- job:
		return true
	case <-s.done:
		return false
	}
}

// resync sends the whole page so the browser matches this session's tree.
func (s *Session) resync() error {
	vdom.AssignAllHIDs(s.body, s.hids)
	s.sent = s.body.Clone()
	return s.send([]vdom.Patch{{Op: vdom.PatchReplaceNode, HID: s.body.HID, Node: s.body}})
}

func (s *Session) handleEvent(ev *vdom.Event) {
	_, span := s.srv.tracer.Start(context.Background(), "slider.event",
		trace.WithAttributes(
			attribute.String("session", s.id),
			attribute.String("hid", ev.HID),
			attribute.String("type", ev.Type),
		))
	defer span.End()
	start := time.Now()

	status := s.runHandler(ev)
	switch status {
	case statusPanic:
		span.SetStatus(codes.Error, "handler panic")
	case statusNoHandler:
		span.SetStatus(codes.Error, "handler not found")
	}
	s.srv.metrics.eventsTotal.WithLabelValues(ev.Type, status).Inc()

	n, err := s.flush()
	if err != nil {
		span.RecordError(err)
	}
	span.SetAttributes(attribute.Int("patches", n))
	s.srv.metrics.eventDuration.WithLabelValues(ev.Type).Observe(time.Since(start).Seconds())
}

func (s *Session) runHandler(ev *vdom.Event) string {
	var handler vdom.Handler
	if node := vdom.FindByHID(s.body, ev.HID); node != nil {
		handler = node.Handler(ev.Type)
	}
	if handler == nil {
		s.logger.Warn("handler not found", "hid", ev.HID, "type", ev.Type)
		s.sendError("handler not found: " + ev.HID + " on" + ev.Type)
		return statusNoHandler
	}

	s.mirrorFormState(ev)
	if !s.safeExecute(handler, ev) {
		s.sendError("internal error")
		return statusPanic
	}
	return statusOK
}

// mirrorFormState records what the user typed into the sent tree, so a
// handler that puts the old value back still produces a patch.
func (s *Session) mirrorFormState(ev *vdom.Event) {
	if ev.Type != "change" && ev.Type != "input" {
		return
	}
	node := vdom.FindByHID(s.sent, ev.HID)
	if node == nil || node.Tag != "input" {
		return
	}
	if vdom.GetAttr(node, "type") == "checkbox" {
		vdom.SetAttr(node, "checked", ev.Checked)
		return
	}
	vdom.SetAttr(node, "value", ev.Value)
}

// safeExecute runs a handler with panic recovery.
func (s *Session) safeExecute(handler vdom.Handler, ev *vdom.Event) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"panic", r,
				"hid", ev.HID,
				"type", ev.Type,
				"stack", string(debug.Stack()))
			ok = false
		}
	}()

	handler(ev)
	return true
}

// apply writes config overrides pushed by the server.
func (s *Session) apply(o model.Overrides) {
	if err := s.panel.Slider().Apply(o); err != nil {
		s.logger.Warn("overrides partly rejected", "error", err)
	}
	if _, err := s.flush(); err != nil {
		s.logger.Warn("flush failed", "error", err)
	}
}

// flush sends the changes made to the live tree since the last flush.
func (s *Session) flush() (int, error) {
	patches := vdom.Diff(s.sent, s.body)
	vdom.AssignMissingHIDs(s.body, s.hids)
	s.sent = s.body.Clone()
	if len(patches) == 0 {
		return 0, nil
	}
	if err := s.send(patches); err != nil {
		return 0, err
	}
	s.srv.metrics.patchesSent.Add(float64(len(patches)))
	return len(patches), nil
}

func (s *Session) send(patches []vdom.Patch) error {
	msg := message{Patches: make([]wirePatch, 0, len(patches))}
	for _, p := range patches {
		wp, err := s.encodePatch(p)
		if err != nil {
			return err
		}
		msg.Patches = append(msg.Patches, wp)
	}
	return s.write(msg)
}

func (s *Session) encodePatch(p vdom.Patch) (wirePatch, error) {
	wp := wirePatch{
		Op:     p.Op.String(),
		HID:    p.HID,
		Key:    p.Key,
		Value:  p.Value,
		Index:  p.Index,
		Parent: p.ParentID,
	}
	if p.Node != nil {
		html, err := s.srv.renderer.RenderToString(p.Node)
		if err != nil {
			return wirePatch{}, fmt.Errorf("server: render %s patch: %w", wp.Op, err)
		}
		wp.HTML = html
	}
	return wp, nil
}

func (s *Session) sendError(text string) {
	if err := s.write(message{Error: text}); err != nil {
		s.logger.Debug("error message not sent", "error", err)
	}
}

func (s *Session) write(msg message) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.srv.config.WriteTimeout))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Warn("write failed", "error", err)
		s.Close()
		return fmt.Errorf("server: write: %w", err)
	}
	return nil
}

// Close ends the session. It is safe to call more than once and from any
// goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
		s.logger.Info("session closed")
	})
}

// Done returns a channel that is closed when the session ends.
func (s *Session) Done() <-chan struct{} { return s.done }
