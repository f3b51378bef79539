package webos

import (
	"context"
	"testing"
	"time"
)

func TestConnect_WiresUpAllControlObjects(t *testing.T) {
	tv := newFakeTV(t, nil)
	defer tv.close()

	client, err := Connect(context.Background(), endpointFor(t, tv), nil, time.Second, nil)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer client.Close()

	if client.Audio == nil || client.Media == nil || client.App == nil ||
		client.Tuner == nil || client.System == nil || client.Input == nil {
		t.Fatal("Connect must wire up every control object")
	}
	if client.State() != StateOpenUnregistered {
		t.Errorf("State() = %s, want %s", client.State(), StateOpenUnregistered)
	}
}

func TestTV_Close_UnblocksEverything(t *testing.T) {
	tv := newFakeTV(t, func(tv *fakeTV, frame inboundFrame) {
		// Never reply; Close should still unblock in-flight calls.
	})
	defer tv.close()

	client, err := Connect(context.Background(), endpointFor(t, tv), nil, 5*time.Second, nil)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- client.Media.Play(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected Play to fail once the connection is closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Close should unblock pending requests")
	}
}
