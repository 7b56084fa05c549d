package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/seevg/internal/logging"
	"github.com/yaklabco/seevg/internal/server"
	"github.com/yaklabco/seevg/pkg/format"
)

func dial(t *testing.T, httpURL string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(httpURL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

type envelope struct {
	Type    server.MessageType `json:"type"`
	Text    string             `json:"text"`
	Hovered string             `json:"hovered"`
	Locked  string             `json:"locked"`
}

// readUntil reads messages until one satisfies match.
func readUntil(t *testing.T, conn *websocket.Conn, match func(envelope) bool) envelope {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg envelope
		require.NoError(t, json.Unmarshal(data, &msg))
		if match(msg) {
			return msg
		}
	}
}

func TestHandlerServesPage(t *testing.T) {
	t.Parallel()

	srv := server.New(server.Options{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{path: "/", contentType: "text/html", contains: "<title>seevg</title>"},
		{path: "/", contentType: "text/html", contains: "decoder.decode(encoded.subarray(0, offset))"},
		{path: "/default.svg", contentType: "image/svg+xml", contains: "<svg"},
	}

	for _, tt := range tests {
		resp, err := http.Get(ts.URL + tt.path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode, tt.path)
		assert.Contains(t, resp.Header.Get("Content-Type"), tt.contentType)
		assert.Contains(t, string(body), tt.contains)
	}

	resp, err := http.Get(ts.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDefaultSVG(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.HasPrefix(server.DefaultSVG, "<svg"))
	assert.True(t, strings.HasSuffix(server.DefaultSVG, "</svg>\n"))
}

func TestWebsocketSession(t *testing.T) {
	t.Parallel()

	srv := server.New(server.Options{
		Document:  `<svg><rect x="1"/><circle r="2"/></svg>`,
		Formatter: format.DefaultOptions(),
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dial(t, ts.URL)

	doc := readUntil(t, conn, func(m envelope) bool { return m.Type == server.MsgDocument })
	assert.Equal(t, "<svg>\n  <rect x=\"1\"/>\n  <circle r=\"2\"/>\n</svg>", doc.Text)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "pointermove", "path": []int{1}}))
	status := readUntil(t, conn, func(m envelope) bool {
		return m.Type == server.MsgStatus && m.Hovered != ""
	})
	assert.Equal(t, "circle", status.Hovered)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "click", "path": []int{1}}))
	status = readUntil(t, conn, func(m envelope) bool {
		return m.Type == server.MsgStatus && m.Locked != ""
	})
	assert.Equal(t, "circle", status.Locked)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "zoom", "action": "diagonal"}))
	failure := readUntil(t, conn, func(m envelope) bool { return m.Type == server.MsgError })
	assert.Equal(t, server.MsgError, failure.Type)
}

func TestReloadReachesSessions(t *testing.T) {
	t.Parallel()

	srv := server.New(server.Options{Document: `<svg><rect/></svg>`})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dial(t, ts.URL)
	readUntil(t, conn, func(m envelope) bool { return m.Type == server.MsgDocument })

	srv.Reload(`<svg><circle/></svg>`)
	doc := readUntil(t, conn, func(m envelope) bool {
		return m.Type == server.MsgDocument && strings.Contains(m.Text, "circle")
	})
	assert.Equal(t, "<svg>\n  <circle/>\n</svg>", doc.Text)
}

func TestServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.New(server.Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	conn := dial(t, "http://"+listener.Addr().String())
	readUntil(t, conn, func(m envelope) bool { return m.Type == server.MsgDocument })
	require.Eventually(t, func() bool { return srv.Sessions() == 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	require.Eventually(t, func() bool { return srv.Sessions() == 0 }, 5*time.Second, 10*time.Millisecond)
}

// syncBuffer lets the test read log output while the server writes it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeSessionsUseContextLogger(t *testing.T) {
	t.Parallel()

	var out syncBuffer
	logger := logging.NewWithWriter(&out, "debug")
	ctx, cancel := context.WithCancel(logging.WithLogger(context.Background(), logger))
	defer cancel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.New(server.Options{})
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	conn := dial(t, "http://"+listener.Addr().String())
	readUntil(t, conn, func(m envelope) bool { return m.Type == server.MsgDocument })

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "session opened")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "icon.svg")
	require.NoError(t, os.WriteFile(path, []byte("<svg/>"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 64)
	done := make(chan error, 1)
	go func() {
		done <- server.Watch(ctx, path, func(content string) { changes <- content })
	}()

	deadline := time.After(10 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	// Keep writing fresh content until the watcher, which may still be
	// starting, reports one of the writes.
	for written := 0; ; {
		select {
		case got := <-changes:
			if got == "" {
				// Caught between truncate and write.
				continue
			}
			assert.True(t, strings.HasPrefix(got, "<svg><rect width="), got)
			cancel()
			require.NoError(t, <-done)
			return
		case <-ticker.C:
			written++
			content := fmt.Sprintf("<svg><rect width=\"%d\"/></svg>", written)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	t.Parallel()

	err := server.Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "a.svg"), func(string) {})
	require.Error(t, err)
}
