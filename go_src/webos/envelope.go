package webos

import "encoding/json"

// Outbound envelope "type" values.
const (
	typeRequest     = "request"
	typeSubscribe   = "subscribe"
	typeUnsubscribe = "unsubscribe"
	typeRegister    = "register"
)

// Inbound envelope "type" values.
const (
	typeResponse   = "response"
	typeRegistered = "registered"
	typeError      = "error"
)

// outboundEnvelope is the shape of every frame written to the socket.
type outboundEnvelope struct {
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	URI     string      `json:"uri,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// inboundEnvelope is the shape of every frame read from the socket.
type inboundEnvelope struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	Error   string          `json:"error,omitempty"`
}

// pairingPayload is "payload.pairingType" seen on PROMPT responses.
type pairingPayload struct {
	PairingType string `json:"pairingType"`
	ClientKey   string `json:"client-key"`
}

// registerPayload is the payload of the outbound "register" envelope.
type registerPayload struct {
	Manifest    Manifest `json:"manifest"`
	PairingType string   `json:"pairingType"`
	ClientKey   string   `json:"client-key,omitempty"`
}

// genericResponse is used by the default response validator to check for
// a truthy returnValue and to pull out TV-reported error details.
type genericResponse struct {
	ReturnValue  interface{} `json:"returnValue"`
	ErrorCode    string      `json:"errorCode"`
	ErrorText    string      `json:"errorText"`
}
