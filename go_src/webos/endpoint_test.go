package webos

import "testing"

func TestNewEndpoint_DefaultsPortByTransport(t *testing.T) {
	plain := NewEndpoint("192.168.1.50", false, 0)
	if plain.Port != 3000 {
		t.Errorf("plain port = %d, want 3000", plain.Port)
	}
	secure := NewEndpoint("192.168.1.50", true, 0)
	if secure.Port != 3001 {
		t.Errorf("secure port = %d, want 3001", secure.Port)
	}
	explicit := NewEndpoint("192.168.1.50", true, 4433)
	if explicit.Port != 4433 {
		t.Errorf("explicit port = %d, want 4433", explicit.Port)
	}
}

func TestEndpoint_URL(t *testing.T) {
	if got := NewEndpoint("tv.lan", false, 3000).URL(); got != "ws://tv.lan:3000/" {
		t.Errorf("URL() = %q", got)
	}
	if got := NewEndpoint("tv.lan", true, 3001).URL(); got != "wss://tv.lan:3001/" {
		t.Errorf("URL() = %q", got)
	}
}

func TestConnectionState_String(t *testing.T) {
	cases := map[ConnectionState]string{
		StateDisconnected:    "disconnected",
		StateConnecting:      "connecting",
		StateOpenUnregistered: "open_unregistered",
		StatePrompted:        "prompted",
		StateOpenRegistered:  "open_registered",
		StateClosing:         "closing",
		StateClosed:          "closed",
		ConnectionState(99):  "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
