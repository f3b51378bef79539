package webos

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// inboundFrame mirrors outboundEnvelope as observed from the server side of
// the socket, used by fakeTV's handler to inspect what the client sent.
type inboundFrame struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	URI     string          `json:"uri"`
	Payload json.RawMessage `json:"payload"`
}

// fakeTV is a minimal in-process stand-in for a webOS TV's SSAP socket. It
// lets tests drive Connection/pairing/subscription behavior without a real
// television on the network, mirroring how the teacher package tests
// WebSocketStream against an httptest server running gorilla/websocket.
type fakeTV struct {
	server *httptest.Server
	t      *testing.T

	mu      sync.Mutex
	conn    *websocket.Conn
	handler func(tv *fakeTV, frame inboundFrame)
}

func newFakeTV(t *testing.T, handler func(tv *fakeTV, frame inboundFrame)) *fakeTV {
	tv := &fakeTV{t: t, handler: handler}
	tv.server = httptest.NewServer(http.HandlerFunc(tv.serveWS))
	return tv
}

func (tv *fakeTV) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := testUpgrader.Upgrade(w, r, nil)
	if err != nil {
		tv.t.Logf("fakeTV: upgrade error: %v", err)
		return
	}
	tv.mu.Lock()
	tv.conn = conn
	tv.mu.Unlock()
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			tv.t.Logf("fakeTV: malformed frame: %v", err)
			continue
		}
		if tv.handler != nil {
			tv.handler(tv, frame)
		}
	}
}

func (tv *fakeTV) url() string {
	return strings.Replace(tv.server.URL, "http", "ws", 1)
}

// send writes a reply envelope with the given id/type/payload to whatever
// client is currently connected. It is a no-op before any client connects.
func (tv *fakeTV) send(id, msgType string, payload interface{}) {
	tv.mu.Lock()
	conn := tv.conn
	tv.mu.Unlock()
	if conn == nil {
		return
	}
	_ = conn.WriteJSON(outboundEnvelope{ID: id, Type: msgType, Payload: payload})
}

// sendError writes an "error" envelope carrying errText.
func (tv *fakeTV) sendError(id, errText string) {
	tv.mu.Lock()
	conn := tv.conn
	tv.mu.Unlock()
	if conn == nil {
		return
	}
	_ = conn.WriteJSON(map[string]string{"id": id, "type": "error", "error": errText})
}

// dropConnection closes the server-side socket, simulating a TV-initiated
// disconnect.
func (tv *fakeTV) dropConnection() {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	if tv.conn != nil {
		_ = tv.conn.Close()
	}
}

func (tv *fakeTV) close() {
	tv.server.Close()
}

// endpointFor builds the Endpoint a test Connection should Dial to reach tv.
func endpointFor(t *testing.T, tv *fakeTV) Endpoint {
	t.Helper()
	rest := strings.TrimPrefix(tv.url(), "ws://")
	host, portStr, err := net.SplitHostPort(rest)
	if err != nil {
		t.Fatalf("endpointFor: split %q: %v", rest, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("endpointFor: parse port %q: %v", portStr, err)
	}
	return Endpoint{Host: host, Port: port, Secure: false}
}
