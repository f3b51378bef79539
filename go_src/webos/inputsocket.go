package webos

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// InputSocket is the TV's secondary, low-latency socket for pointer moves
// and remote-button presses, obtained via InputControl.GetPointerInputSocket.
// Unlike the main SSAP connection it speaks a line-oriented key:value
// protocol rather than JSON envelopes, and every message is fire-and-forget:
// there is nothing to correlate, so InputSocket needs none of Connection's
// pending-request or subscription machinery.
type InputSocket struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// DialInputSocket opens the pointer input socket at socketURL.
func DialInputSocket(ctx context.Context, socketURL string) (*InputSocket, error) {
	dialer := &websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, socketURL, nil)
	if err != nil {
		return nil, fmt.Errorf("webos: dial input socket %s: %w", socketURL, err)
	}
	return &InputSocket{conn: conn}, nil
}

func (s *InputSocket) send(order []string, fields map[string]string) error {
	var b strings.Builder
	for _, key := range order {
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(fields[key])
		b.WriteString("\n")
	}
	b.WriteString("\n")

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, []byte(b.String()))
}

// Move sends a relative pointer movement.
func (s *InputSocket) Move(dx, dy int) error {
	return s.send([]string{"type", "dx", "dy", "down"}, map[string]string{
		"type": "move",
		"dx":   fmt.Sprintf("%d", dx),
		"dy":   fmt.Sprintf("%d", dy),
		"down": "0",
	})
}

// Click sends a pointer click at the current on-screen pointer position.
func (s *InputSocket) Click() error {
	return s.send([]string{"type"}, map[string]string{"type": "click"})
}

// Scroll sends a relative scroll-wheel movement.
func (s *InputSocket) Scroll(dx, dy int) error {
	return s.send([]string{"type", "dx", "dy"}, map[string]string{
		"type": "scroll",
		"dx":   fmt.Sprintf("%d", dx),
		"dy":   fmt.Sprintf("%d", dy),
	})
}

// Button sends a named remote-button press, e.g. "ENTER", "HOME",
// "VOLUMEUP", "CHANNELDOWN".
func (s *InputSocket) Button(name string) error {
	if name == "" {
		return &InvalidArgumentError{Command: "button", Reason: "name must not be empty"}
	}
	return s.send([]string{"type", "name"}, map[string]string{"type": "button", "name": name})
}

// Close shuts the input socket down.
func (s *InputSocket) Close() error {
	return s.conn.Close()
}
