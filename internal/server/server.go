// Package server hosts the browser inspector: a page with a markup editor
// next to a live preview, connected over a websocket to a per-browser
// session that formats pastes, locates hovered elements and tints them.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/seevg/internal/logging"
	"github.com/yaklabco/seevg/pkg/format"
	"github.com/yaklabco/seevg/pkg/highlight"
)

//nolint:gochecknoglobals // Embedded page assets
//go:embed assets/*
var assets embed.FS

// DefaultSVG is the document shown when no file is given.
//
//nolint:gochecknoglobals // Read-only, loaded from the embedded assets
var DefaultSVG = mustAsset("assets/default.svg")

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Addr is the listen address used by ListenAndServe.
	Addr string

	// Document is the initial markup. Empty selects DefaultSVG.
	Document string

	// Path is the file Document was read from. With Watch set, changes to
	// it are pushed to every session.
	Path  string
	Watch bool

	// Formatter formats the initial document, pastes and reloads.
	Formatter format.Options

	// FontSize converts paste widths in pixels to characters.
	FontSize float64

	DarkBackground bool
	Zoom           int
}

// Server serves the inspector page and its websocket sessions.
type Server struct {
	opts      Options
	formatter *format.Formatter
	upgrader  websocket.Upgrader

	mu       sync.Mutex
	document string
	sessions map[uint64]chan string
	nextID   atomic.Uint64

	done chan struct{}
	once sync.Once
}

// New creates a server. It does not listen until ListenAndServe or Serve.
func New(opts Options) *Server {
	document := opts.Document
	if document == "" {
		document = DefaultSVG
	}
	return &Server{
		opts:      opts,
		formatter: format.New(opts.Formatter),
		upgrader: websocket.Upgrader{
			CheckOrigin: sameHost,
		},
		document: document,
		sessions: make(map[uint64]chan string),
		done:     make(chan struct{}),
	}
}

// Handler returns the HTTP handler: the page at "/", the default drawing at
// "/default.svg" and the websocket at "/ws".
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.serveAsset("assets/index.html", "text/html; charset=utf-8"))
	mux.HandleFunc("GET /default.svg", s.serveAsset("assets/default.svg", "image/svg+xml"))
	mux.HandleFunc("GET /ws", s.serveWS)
	return mux
}

// ListenAndServe listens on Options.Addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts down and closes
// every session. With Options.Watch set the backing file is watched too.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	logger := logging.FromContext(ctx)
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("inspector listening", logging.FieldAddr, "http://"+listener.Addr().String())
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		s.Close()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if s.opts.Watch && s.opts.Path != "" {
		group.Go(func() error {
			return Watch(groupCtx, s.opts.Path, s.Reload)
		})
	}

	return group.Wait()
}

// Close ends every session. Handlers started afterwards close immediately.
func (s *Server) Close() {
	s.once.Do(func() { close(s.done) })
}

// Reload replaces the document served to new sessions and pushes text to
// every open one. A session that has not consumed the previous reload only
// sees the latest text.
func (s *Server) Reload(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.document = text
	for _, inbox := range s.sessions {
		select {
		case <-inbox:
		default:
		}
		inbox <- text
	}
}

// Sessions returns the number of connected sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) register() (uint64, string, chan string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID.Add(1)
	inbox := make(chan string, 1)
	s.sessions[id] = inbox
	return id, s.document, inbox
}

func (s *Server) unregister(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Server) serveAsset(name, contentType string) http.HandlerFunc {
	body := mustAsset(name)
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(body))
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("websocket upgrade failed", logging.FieldError, err)
		return
	}
	defer conn.Close()

	id, document, reloads := s.register()
	defer s.unregister(id)

	logger = logger.With(logging.FieldSession, id)
	logger.Debug("session opened")
	defer logger.Debug("session closed")

	sess := newSession(sessionConfig{
		id:        id,
		document:  document,
		formatter: s.formatter,
		fontSize:  s.opts.FontSize,
		zoom:      highlight.ClampZoom(s.opts.Zoom),
		dark:      s.opts.DarkBackground,
		logger:    logger,
	}, conn.WriteJSON)
	if err := sess.start(); err != nil {
		return
	}

	stop := make(chan struct{})
	defer close(stop)
	messages := readMessages(conn, stop)

	for {
		select {
		case <-s.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			return
		case text := <-reloads:
			err = sess.reload(text)
		case msg, ok := <-messages:
			if !ok {
				return
			}
			err = sess.handle(msg)
		}
		if err != nil {
			logger.Debug("send failed", logging.FieldError, err)
			return
		}
	}
}

// readMessages decodes client messages until the connection fails or stop
// is closed. Malformed JSON ends the connection.
func readMessages(conn *websocket.Conn, stop <-chan struct{}) <-chan ClientMessage {
	messages := make(chan ClientMessage)
	go func() {
		defer close(messages)
		for {
			var msg ClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			select {
			case messages <- msg:
			case <-stop:
				return
			}
		}
	}()
	return messages
}

// sameHost accepts requests without an Origin header and those whose origin
// host matches the request host.
func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

func mustAsset(name string) string {
	data, err := assets.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("missing embedded asset %s: %v", name, err))
	}
	return string(data)
}
