// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package web is a display backend that streams frames to an HTML canvas in
// a browser.
//
// The display serves a single page at "/" and a websocket at "/ws". Frames
// travel as binary messages: an 8-byte header (big-endian uint32 width and
// height) followed by the raw RGBA bytes, which the page hands to
// putImageData unchanged. The page reports its size, clicks and
// requestAnimationFrame callbacks as JSON text messages:
//
//	{"type":"resize","width":1280,"height":720}
//	{"type":"click"}
//	{"type":"frame"}
//
// Only one browser tab is attached at a time; a new connection replaces the
// previous one. Frame callbacks from the page drive the animation clock.
//
// Importing the package registers the "web" backend with the surface
// registry.
package web

import (
	"context"
	_ "embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/gogpu/huecycle"
	"github.com/gogpu/huecycle/surface"
)

//go:embed index.html
var indexHTML []byte

const (
	headerSize     = 8
	maxMessageSize = 4096
	writeTimeout   = 5 * time.Second
)

// ErrClosed is returned when presenting to a closed display.
var ErrClosed = errors.New("web: display is closed")

func init() {
	surface.Register("web", 30, func(opts surface.Options) (huecycle.Display, error) {
		return Listen(opts)
	}, nil)
}

// message is a control message sent by the page.
type message struct {
	Type   string `json:"type"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// client is an attached browser tab.
type client struct {
	id   string
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (c *client) write(messageType int, data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(messageType, data)
}

// Display is a browser display.
type Display struct {
	mu     sync.Mutex
	width  int
	height int
	client *client
	closed bool

	upgrader websocket.Upgrader
	router   chi.Router
	server   *http.Server
	addr     net.Addr

	events chan huecycle.Event
	frames chan time.Time
	log    *slog.Logger
}

// New creates a display without a listener. Mount Handler on a server of
// your own. Until a page connects the display reports opts.Width×opts.Height.
func New(opts surface.Options) *Display {
	d := &Display{
		width:  max(opts.Width, 0),
		height: max(opts.Height, 0),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		events: make(chan huecycle.Event, 16),
		frames: make(chan time.Time, 1),
		log:    huecycle.Logger().With("component", "web"),
	}

	r := chi.NewRouter()
	r.Get("/", d.handleIndex)
	r.Get("/ws", d.handleWebSocket)
	d.router = r
	return d
}

// Listen creates a display and serves it on opts.Addr.
// Returns an error wrapping huecycle.ErrNoDrawingContext if the address
// cannot be bound.
func Listen(opts surface.Options) (*Display, error) {
	addr := opts.Addr
	if addr == "" {
		addr = surface.DefaultOptions(0, 0).Addr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", huecycle.ErrNoDrawingContext, err)
	}

	d := New(opts)
	d.addr = ln.Addr()
	d.server = &http.Server{
		Handler:           d.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := d.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.log.Error("server stopped", "err", err)
		}
	}()
	d.log.Info("serving", "url", "http://"+ln.Addr().String()+"/")
	return d, nil
}

// Handler returns the HTTP handler serving the page and the websocket.
func (d *Display) Handler() http.Handler {
	return d.router
}

// Addr returns the listen address, or nil if the display was created by New.
func (d *Display) Addr() net.Addr {
	return d.addr
}

// Size returns the canvas size last reported by the page.
func (d *Display) Size() (width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

// Connected reports whether a page is attached.
func (d *Display) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.client != nil
}

// Present sends fb to the attached page. Without a page the frame is
// discarded.
func (d *Display) Present(fb *huecycle.FrameBuffer) error {
	d.mu.Lock()
	c, closed := d.client, d.closed
	d.mu.Unlock()

	if closed {
		return ErrClosed
	}
	if c == nil {
		return nil
	}

	if err := c.write(websocket.BinaryMessage, EncodeFrame(fb)); err != nil {
		d.detach(c)
		return fmt.Errorf("web: send frame to %s: %w", c.id, err)
	}
	return nil
}

// EncodeFrame returns the binary message for fb: big-endian width and
// height followed by the RGBA bytes.
func EncodeFrame(fb *huecycle.FrameBuffer) []byte {
	buf := make([]byte, headerSize+len(fb.Data()))
	binary.BigEndian.PutUint32(buf[0:4], uint32(fb.Width()))
	binary.BigEndian.PutUint32(buf[4:8], uint32(fb.Height()))
	copy(buf[headerSize:], fb.Data())
	return buf
}

// DecodeFrame parses a binary frame message.
func DecodeFrame(msg []byte) (*huecycle.FrameBuffer, error) {
	if len(msg) < headerSize {
		return nil, fmt.Errorf("web: frame message too short: %d bytes", len(msg))
	}
	w := int(binary.BigEndian.Uint32(msg[0:4]))
	h := int(binary.BigEndian.Uint32(msg[4:8]))
	if len(msg)-headerSize != w*h*4 {
		return nil, fmt.Errorf("web: frame %dx%d has %d pixel bytes", w, h, len(msg)-headerSize)
	}
	fb := huecycle.NewFrameBuffer(w, h)
	copy(fb.Data(), msg[headerSize:])
	return fb, nil
}

// Events returns the event channel. It is closed after Close.
func (d *Display) Events() <-chan huecycle.Event {
	return d.events
}

// Frames implements huecycle.FrameClock. Ticks arrive on the page's
// requestAnimationFrame callbacks; ticks nobody is waiting for are dropped.
func (d *Display) Frames() (<-chan time.Time, func()) {
	select {
	case <-d.frames:
	default:
	}
	return d.frames, func() {}
}

// Close disconnects the page and stops the server. Close is idempotent.
func (d *Display) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	c := d.client
	d.client = nil
	close(d.events)
	d.mu.Unlock()

	if c != nil {
		_ = c.conn.Close()
	}

	var err error
	if d.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = d.server.Shutdown(ctx)
	}
	return err
}

func (d *Display) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (d *Display) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &client{id: uuid.NewString(), conn: conn}
	if !d.attach(c) {
		_ = conn.Close()
		return
	}
	defer d.detach(c)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				d.log.Debug("websocket read ended", "client", c.id, "err", err)
			}
			return
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			d.log.Warn("bad message", "client", c.id, "err", err)
			continue
		}
		d.handleMessage(c, msg)
	}
}

func (d *Display) handleMessage(c *client, msg message) {
	switch msg.Type {
	case "resize":
		d.mu.Lock()
		if d.client == c {
			d.width, d.height = max(msg.Width, 0), max(msg.Height, 0)
		}
		d.mu.Unlock()
		d.post(huecycle.ResizeEvent{})
	case "click":
		d.post(huecycle.ClickEvent{})
	case "frame":
		select {
		case d.frames <- time.Now():
		default:
		}
	default:
		d.log.Warn("unknown message", "client", c.id, "type", msg.Type)
	}
}

// attach makes c the current client, replacing any previous one.
func (d *Display) attach(c *client) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	prev := d.client
	d.client = c
	d.mu.Unlock()

	if prev != nil {
		d.log.Info("client replaced", "old", prev.id, "new", c.id)
		_ = prev.conn.Close()
	}
	d.log.Info("client connected", "client", c.id)

	hello, _ := json.Marshal(map[string]string{"type": "hello", "session": c.id})
	if err := c.write(websocket.TextMessage, hello); err != nil {
		d.log.Warn("hello failed", "client", c.id, "err", err)
	}
	return true
}

func (d *Display) detach(c *client) {
	d.mu.Lock()
	current := d.client == c
	if current {
		d.client = nil
	}
	d.mu.Unlock()

	if current {
		_ = c.conn.Close()
		d.log.Info("client disconnected", "client", c.id)
	}
}

// post queues ev, dropping it when the queue is full.
func (d *Display) post(ev huecycle.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	select {
	case d.events <- ev:
	default:
		d.log.Warn("event dropped", "event", ev)
	}
}
