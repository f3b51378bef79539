package webos

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// SubscriptionHandler receives every push delivered to a live
// subscription. value is the descriptor's return_transform output (or the
// raw decoded payload if the command has none). err is non-nil when a push
// fails the command's validator or the TV sends an error envelope for the
// subscription; the subscription stays live in both cases. When the
// connection drops, the handler receives a ConnectionClosedError as its
// last call.
type SubscriptionHandler func(value interface{}, err error)

// subscriptionSet is the per-control-object half of the subscription
// engine: a command-name -> subscription-id map. The connection-global
// half (subscription-id -> callback) lives on Connection itself, keyed by
// the same uuid so a single id both addresses the subscribe/unsubscribe
// envelopes and looks up the live callback.
type subscriptionSet struct {
	conn *Connection
	mu   sync.Mutex
	ids  map[string]string // command name -> subscription id
}

func newSubscriptionSet(conn *Connection) *subscriptionSet {
	return &subscriptionSet{conn: conn, ids: make(map[string]string)}
}

// subscribe registers handler against the named command's descriptor.
// Subscribing twice to the same command on the same control object fails
// with AlreadySubscribedError, and subscribing to a non-subscribable
// command fails with NotSubscribableError before anything is sent.
func (s *subscriptionSet) subscribe(ctx context.Context, name string, d *commandDescriptor, handler SubscriptionHandler) error {
	if !d.Subscribable {
		return &NotSubscribableError{Command: name}
	}

	s.mu.Lock()
	if _, exists := s.ids[name]; exists {
		s.mu.Unlock()
		return &AlreadySubscribedError{Command: name}
	}
	id := uuid.NewString()
	s.ids[name] = id
	s.mu.Unlock()

	callback := func(payload json.RawMessage, err error) {
		if err != nil {
			handler(nil, err)
			return
		}
		if verr := d.validate(d.URI, payload); verr != nil {
			handler(nil, verr)
			return
		}
		value, terr := d.transform(d.URI, payload)
		if terr != nil {
			handler(nil, terr)
			return
		}
		handler(value, nil)
	}

	payload := map[string]interface{}{"subscribe": true}
	if _, err := s.conn.Subscribe(ctx, id, d.URI, payload, callback); err != nil {
		s.mu.Lock()
		delete(s.ids, name)
		s.mu.Unlock()
		return err
	}
	return nil
}

// unsubscribe tears down the subscription for the named command, failing
// with NotSubscribedError if there is none.
func (s *subscriptionSet) unsubscribe(name string, d *commandDescriptor) error {
	s.mu.Lock()
	id, exists := s.ids[name]
	if exists {
		delete(s.ids, name)
	}
	s.mu.Unlock()
	if !exists {
		return &NotSubscribedError{Command: name}
	}
	return s.conn.Unsubscribe(id, d.URI)
}

// isSubscribed reports whether name has a live subscription on this set.
func (s *subscriptionSet) isSubscribed(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[name]
	return ok
}
