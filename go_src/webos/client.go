package webos

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/sirupsen/logrus"
)

// TV is the library's high-level facade: one endpoint, one Connection,
// and a set of control objects mechanically derived from the command
// tables in registry.go. Callers reach for Audio/Media/App/Tuner/System/
// Input rather than building envelopes by hand.
type TV struct {
	conn *Connection

	Audio  *AudioControl
	Media  *MediaControl
	App    *AppControl
	Tuner  *TVControl
	System *SystemControl
	Input  *InputControl
}

// Connect dials endpoint and wires up every control object. tlsConfig is
// only consulted when endpoint.Secure is true; pass the result of
// BuildTLSConfig for a pinned connection.
func Connect(ctx context.Context, endpoint Endpoint, tlsConfig *tls.Config, requestTimeout time.Duration, log *logrus.Entry) (*TV, error) {
	var cfg *tls.Config
	if endpoint.Secure {
		cfg = tlsConfig
	}
	conn, err := Dial(ctx, endpoint, cfg, requestTimeout, log)
	if err != nil {
		return nil, err
	}
	return newTV(conn), nil
}

func newTV(conn *Connection) *TV {
	return &TV{
		conn:   conn,
		Audio:  newAudioControl(conn),
		Media:  newMediaControl(conn),
		App:    newAppControl(conn),
		Tuner:  newTVControl(conn),
		System: newSystemControl(conn),
		Input:  newInputControl(conn),
	}
}

// Register pairs with the TV. See Connection.Register for the full event
// protocol (PROMPTED then REGISTERED, or REGISTERED alone when clientKey
// is already valid).
func (t *TV) Register(manifest Manifest, clientKey string) (<-chan PairingEvent, error) {
	return t.conn.Register(manifest, clientKey)
}

// State reports the underlying connection's lifecycle state.
func (t *TV) State() ConnectionState { return t.conn.State() }

// Close shuts the connection down; every pending request and live
// subscription is notified with ConnectionClosedError.
func (t *TV) Close() error { return t.conn.Close() }
