package webos

import "fmt"

// Endpoint identifies a single TV on the network: its host, the control
// port, whether to use TLS, and (once paired) a client key the caller can
// keep alongside it. Dial and Register do not read ClientKey; the key is
// presented to the TV only when passed to Register explicitly.
type Endpoint struct {
	Host      string
	Port      int
	Secure    bool
	ClientKey string
}

// NewEndpoint builds an Endpoint with the conventional default port for
// the requested transport (3001 for wss, 3000 for ws) unless port is
// explicitly non-zero.
func NewEndpoint(host string, secure bool, port int) Endpoint {
	if port == 0 {
		if secure {
			port = 3001
		} else {
			port = 3000
		}
	}
	return Endpoint{Host: host, Port: port, Secure: secure}
}

// URL returns the ws:// or wss:// URL this endpoint dials.
func (e Endpoint) URL() string {
	scheme := "ws"
	if e.Secure {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s:%d/", scheme, e.Host, e.Port)
}

// ConnectionState enumerates the observable lifecycle of a Connection.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateOpenUnregistered
	StatePrompted
	StateOpenRegistered
	StateClosing
	StateClosed
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateOpenUnregistered:
		return "open_unregistered"
	case StatePrompted:
		return "prompted"
	case StateOpenRegistered:
		return "open_registered"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
