package webos

import "encoding/json"

// PairingState is the stage reached within a single Register call.
type PairingState int

const (
	// PairingPrompted means the TV has put the pairing dialog on screen
	// and is waiting on the viewer to accept it.
	PairingPrompted PairingState = iota
	// PairingRegistered means the TV accepted the client and returned a
	// client key to persist for future connections.
	PairingRegistered
)

func (s PairingState) String() string {
	if s == PairingRegistered {
		return "registered"
	}
	return "prompted"
}

// PairingEvent is one step of the Register state machine.
type PairingEvent struct {
	State     PairingState
	ClientKey string
	Err       error
}

// Register starts (or resumes) pairing with the TV. It sends a single
// "register" envelope and reuses its id across both replies the TV sends
// on that id: first a PROMPTED event (the on-screen dialog is up) then,
// once the viewer accepts, a REGISTERED event carrying the client key to
// persist. If clientKey is already known and still valid, the TV skips the
// prompt and only a REGISTERED event is ever sent.
//
// The returned channel is closed after the terminal event (REGISTERED, or
// an event carrying a non-nil Err). Callers that only want the end result
// can drain it with a small loop:
//
//	for ev := range events {
//	    if ev.Err != nil { return ev.Err }
//	    if ev.State == webos.PairingRegistered { clientKey = ev.ClientKey }
//	}
func (c *Connection) Register(manifest Manifest, clientKey string) (<-chan PairingEvent, error) {
	id := c.nextRequestID()
	events := make(chan PairingEvent, 2)

	c.subMu.Lock()
	c.subscriptions[id] = func(payload json.RawMessage, err error) {
		if err != nil {
			events <- PairingEvent{Err: &RegistrationFailedError{Reason: err.Error()}}
			close(events)
			c.subMu.Lock()
			delete(c.subscriptions, id)
			c.subMu.Unlock()
			return
		}

		var reply pairingPayload
		_ = json.Unmarshal(payload, &reply)
		if reply.ClientKey != "" {
			c.setState(StateOpenRegistered)
			events <- PairingEvent{State: PairingRegistered, ClientKey: reply.ClientKey}
			close(events)
			c.subMu.Lock()
			delete(c.subscriptions, id)
			c.subMu.Unlock()
			return
		}
		c.setState(StatePrompted)
		events <- PairingEvent{State: PairingPrompted}
	}
	c.subMu.Unlock()

	payload := registerPayload{Manifest: manifest, PairingType: "PROMPT", ClientKey: clientKey}
	if err := c.writeEnvelope(outboundEnvelope{ID: id, Type: typeRegister, Payload: payload}); err != nil {
		c.subMu.Lock()
		delete(c.subscriptions, id)
		c.subMu.Unlock()
		close(events)
		return nil, err
	}

	return events, nil
}
