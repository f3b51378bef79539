package webos

import "fmt"

// InvalidArgumentError is returned when a command's arguments fail
// validation before anything is written to the socket.
type InvalidArgumentError struct {
	Command string
	Reason  string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("webos: invalid argument for %s: %s", e.Command, e.Reason)
}

// NotConnectedError is returned when an operation is attempted on a
// connection that is not open.
type NotConnectedError struct {
	State ConnectionState
}

func (e *NotConnectedError) Error() string {
	return fmt.Sprintf("webos: not connected (state=%s)", e.State)
}

// ConnectionClosedError is returned to every pending request and every
// live subscription when the socket closes mid-flight.
type ConnectionClosedError struct {
	Reason string
}

func (e *ConnectionClosedError) Error() string {
	if e.Reason == "" {
		return "webos: connection closed"
	}
	return fmt.Sprintf("webos: connection closed: %s", e.Reason)
}

// TimeoutError is returned when a request exceeds its deadline.
type TimeoutError struct {
	RequestID string
	URI       string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("webos: request %s (%s) timed out", e.RequestID, e.URI)
}

// CommandFailedError is returned when the TV reports a command failure,
// either via returnValue=false or an envelope of type "error".
type CommandFailedError struct {
	URI       string
	ErrorCode string
	ErrorText string
}

func (e *CommandFailedError) Error() string {
	switch {
	case e.ErrorCode != "" && e.ErrorText != "":
		return fmt.Sprintf("webos: command %s failed: [%s] %s", e.URI, e.ErrorCode, e.ErrorText)
	case e.ErrorText != "":
		return fmt.Sprintf("webos: command %s failed: %s", e.URI, e.ErrorText)
	default:
		return fmt.Sprintf("webos: command %s failed", e.URI)
	}
}

// ValidationFailedError is returned when a response's shape does not
// satisfy the command's response_validator.
type ValidationFailedError struct {
	URI    string
	Reason string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("webos: response for %s failed validation: %s", e.URI, e.Reason)
}

// RegistrationFailedError is returned when pairing is rejected by the TV
// or the user declines the on-screen prompt.
type RegistrationFailedError struct {
	Reason string
}

func (e *RegistrationFailedError) Error() string {
	return fmt.Sprintf("webos: registration failed: %s", e.Reason)
}

// AlreadySubscribedError is returned when subscribing twice to the same
// command on the same control object.
type AlreadySubscribedError struct {
	Command string
}

func (e *AlreadySubscribedError) Error() string {
	return fmt.Sprintf("webos: already subscribed to %s", e.Command)
}

// NotSubscribedError is returned when unsubscribing from a command that
// has no active subscription on the control object.
type NotSubscribedError struct {
	Command string
}

func (e *NotSubscribedError) Error() string {
	return fmt.Sprintf("webos: not subscribed to %s", e.Command)
}

// NotSubscribableError is returned when subscribing to a command whose
// descriptor does not allow subscriptions.
type NotSubscribableError struct {
	Command string
}

func (e *NotSubscribableError) Error() string {
	return fmt.Sprintf("webos: %s is not subscribable", e.Command)
}

// CertificateMismatchError is returned when a pinned certificate does not
// match the live peer certificate.
type CertificateMismatchError struct {
	Host           string
	PinnedSHA256   string
	ObservedSHA256 string
}

func (e *CertificateMismatchError) Error() string {
	return fmt.Sprintf("webos: certificate mismatch for %s: pinned %s, observed %s",
		e.Host, e.PinnedSHA256, e.ObservedSHA256)
}
