package webos

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
)

type pendingResult struct {
	payload json.RawMessage
	err     error
}

// subscriptionCallback is invoked from the read loop for every inbound
// frame whose id matches a live subscription. It runs synchronously on the
// reader goroutine, so a slow callback delays every later frame; slow
// consumers should hand off to their own goroutine.
type subscriptionCallback func(payload json.RawMessage, err error)

// Connection is the transport and correlation core shared by every TV
// session: one dial, one reader goroutine, a write-mutex-guarded writer,
// and two id-keyed registries (pending requests, live subscriptions) that
// the higher-level pairing, subscription and control-object layers build
// on. It never interprets SSAP payloads beyond the envelope itself.
type Connection struct {
	endpoint Endpoint
	log      *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc

	conn    *websocket.Conn
	writeMu sync.Mutex

	stateMu sync.RWMutex
	state   ConnectionState

	nextID uint64

	pendingMu sync.Mutex
	pending   map[string]chan pendingResult

	subMu         sync.RWMutex
	subscriptions map[string]subscriptionCallback

	requestTimeout time.Duration

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Dial opens a WebSocket connection to endpoint and starts the reader
// goroutine. tlsConfig is nil for a plaintext (ws://) endpoint.
func Dial(ctx context.Context, endpoint Endpoint, tlsConfig *tls.Config, requestTimeout time.Duration, log *logrus.Entry) (*Connection, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	connCtx, cancel := context.WithCancel(ctx)

	dialer := &websocket.Dialer{
		TLSClientConfig:  tlsConfig,
		HandshakeTimeout: handshakeTimeout,
	}

	log.WithField("url", endpoint.URL()).Debug("webos: dialing")
	conn, _, err := dialer.DialContext(connCtx, endpoint.URL(), nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("webos: dial %s: %w", endpoint.URL(), err)
	}

	c := &Connection{
		endpoint:       endpoint,
		log:            log,
		ctx:            connCtx,
		cancel:         cancel,
		conn:           conn,
		state:          StateOpenUnregistered,
		pending:        make(map[string]chan pendingResult),
		subscriptions:  make(map[string]subscriptionCallback),
		requestTimeout: requestTimeout,
	}

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		_ = conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(writeWait))
		return nil
	})

	c.wg.Add(1)
	go c.readLoop()

	return c, nil
}

// State reports the connection's current lifecycle state.
func (c *Connection) State() ConnectionState {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

func (c *Connection) setState(s ConnectionState) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

func (c *Connection) nextRequestID() string {
	return strconv.FormatUint(atomic.AddUint64(&c.nextID, 1), 10)
}

func (c *Connection) writeEnvelope(env outboundEnvelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if s := c.State(); c.conn == nil || s == StateClosing || s == StateClosed {
		return &NotConnectedError{State: s}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("webos: write %s %s: %w", env.Type, env.URI, err)
	}
	return nil
}

// SendRaw writes a request envelope with an explicit id and blocks for its
// matching response. Subscribe builds on it because a subscription's UUID
// doubles as its envelope id; SendRequest is the common case that mints its
// own id. Pairing does not use it: Register writes its envelope directly and
// takes both replies through the subscription registry.
func (c *Connection) SendRaw(ctx context.Context, id, envelopeType, uri string, payload interface{}) (json.RawMessage, error) {
	ch := make(chan pendingResult, 1)
	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	if err := c.writeEnvelope(outboundEnvelope{ID: id, Type: envelopeType, URI: uri, Payload: payload}); err != nil {
		return nil, err
	}

	return c.await(ctx, id, uri, ch)
}

func (c *Connection) await(ctx context.Context, id, uri string, ch <-chan pendingResult) (json.RawMessage, error) {
	var timeoutCh <-chan time.Time
	if c.requestTimeout > 0 {
		timer := time.NewTimer(c.requestTimeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}
	select {
	case res := <-ch:
		return res.payload, res.err
	case <-timeoutCh:
		return nil, &TimeoutError{RequestID: id, URI: uri}
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.ctx.Done():
		return nil, &ConnectionClosedError{}
	}
}

// SendRequest issues a one-shot "request" envelope and waits for its
// "response" (or "error") counterpart.
func (c *Connection) SendRequest(ctx context.Context, uri string, payload interface{}) (json.RawMessage, error) {
	id := c.nextRequestID()
	return c.SendRaw(ctx, id, typeRequest, uri, payload)
}

// Subscribe registers a live subscription under id (expected to be a
// caller-supplied UUID, shared with Unsubscribe) and blocks for the first
// inbound frame on that id — the acknowledgement / initial snapshot. Every
// later push to the same id is delivered to callback without unblocking
// anything; the caller never calls Subscribe again for the same id.
func (c *Connection) Subscribe(ctx context.Context, id, uri string, payload interface{}, callback subscriptionCallback) (json.RawMessage, error) {
	c.subMu.Lock()
	c.subscriptions[id] = callback
	c.subMu.Unlock()

	payload0, err := c.SendRaw(ctx, id, typeSubscribe, uri, payload)
	if err != nil {
		c.subMu.Lock()
		delete(c.subscriptions, id)
		c.subMu.Unlock()
	}
	return payload0, err
}

// Unsubscribe tears down the subscription registered under id and notifies
// the TV. It does not fail if the TV has already dropped the connection.
func (c *Connection) Unsubscribe(id, uri string) error {
	c.subMu.Lock()
	delete(c.subscriptions, id)
	c.subMu.Unlock()
	err := c.writeEnvelope(outboundEnvelope{ID: id, Type: typeUnsubscribe, URI: uri})
	if _, closed := err.(*NotConnectedError); closed {
		return nil
	}
	return err
}

func (c *Connection) resolvePending(id string, payload json.RawMessage, err error) {
	c.pendingMu.Lock()
	ch, ok := c.pending[id]
	c.pendingMu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- pendingResult{payload: payload, err: err}:
	default:
	}
}

func (c *Connection) dispatchSubscription(id string, payload json.RawMessage, err error) {
	c.subMu.RLock()
	cb, ok := c.subscriptions[id]
	c.subMu.RUnlock()
	if ok {
		cb(payload, err)
	}
}

func (c *Connection) readLoop() {
	defer c.wg.Done()
	defer c.teardown()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() == nil {
				c.log.WithError(err).Debug("webos: read loop stopped")
			}
			return
		}

		var env inboundEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.WithError(err).Warn("webos: dropping malformed frame")
			continue
		}

		c.pendingMu.Lock()
		_, isPending := c.pending[env.ID]
		c.pendingMu.Unlock()
		c.subMu.RLock()
		_, isSub := c.subscriptions[env.ID]
		c.subMu.RUnlock()
		if !isPending && !isSub {
			c.log.WithFields(logrus.Fields{"id": env.ID, "type": env.Type}).Warn("webos: dropping unmatched envelope")
			continue
		}

		switch env.Type {
		case typeError:
			err := &CommandFailedError{ErrorText: env.Error}
			c.resolvePending(env.ID, nil, err)
			c.dispatchSubscription(env.ID, nil, err)
		default: // "response", "registered", and every subscription push
			c.resolvePending(env.ID, env.Payload, nil)
			c.dispatchSubscription(env.ID, env.Payload, nil)
		}
	}
}

// teardown runs once the reader goroutine exits for any reason: it fails
// every pending request and notifies every live subscription that the
// connection is gone, so callers blocked in SendRequest/Subscribe never
// hang past the socket's actual lifetime.
func (c *Connection) teardown() {
	c.setState(StateClosed)

	c.pendingMu.Lock()
	pending := c.pending
	c.pending = make(map[string]chan pendingResult)
	c.pendingMu.Unlock()
	for _, ch := range pending {
		select {
		case ch <- pendingResult{err: &ConnectionClosedError{}}:
		default:
		}
	}

	c.subMu.Lock()
	subs := c.subscriptions
	c.subscriptions = make(map[string]subscriptionCallback)
	c.subMu.Unlock()
	for _, cb := range subs {
		cb(nil, &ConnectionClosedError{})
	}
}

// Close gracefully shuts the connection down: it sends a close frame,
// cancels the reader goroutine's context, and waits for it to exit.
func (c *Connection) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		c.setState(StateClosing)
		c.cancel()

		c.writeMu.Lock()
		if c.conn != nil {
			deadline := time.Now().Add(writeWait)
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			closeErr = c.conn.Close()
		}
		c.writeMu.Unlock()

		c.wg.Wait()
	})
	return closeErr
}
