package messaging

import (
	"testing"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *PreviewHub {
	t.Helper()

	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	require.NoError(t, err)

	hub := NewPreviewHub(logger)
	go hub.Run()
	return hub
}

func waitForClients(t *testing.T, hub *PreviewHub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("hub never reached %d clients (have %d)", want, hub.ClientCount())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestBroadcastReachesDocumentClients(t *testing.T) {
	hub := newTestHub(t)

	watching := &PreviewClient{DocID: "doc-1", Send: make(chan []byte, 1)}
	other := &PreviewClient{DocID: "doc-2", Send: make(chan []byte, 1)}
	hub.Register(watching)
	hub.Register(other)
	waitForClients(t, hub, 2)

	hub.BroadcastFragment("doc-1", "<p>hello</p>")

	select {
	case msg := <-watching.Send:
		assert.Equal(t, "<p>hello</p>", string(msg))
	case <-time.After(time.Second):
		t.Fatal("watching client never received the fragment")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("client on another document received %q", msg)
	default:
	}
}

func TestBroadcastSkipsSlowClient(t *testing.T) {
	hub := newTestHub(t)

	// Buffer of one; the second broadcast must not block.
	client := &PreviewClient{DocID: "doc-1", Send: make(chan []byte, 1)}
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.BroadcastFragment("doc-1", "first")

	done := make(chan struct{})
	go func() {
		hub.BroadcastFragment("doc-1", "second")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full client channel")
	}
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := newTestHub(t)

	client := &PreviewClient{DocID: "doc-1", Send: make(chan []byte, 1)}
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	_, open := <-client.Send
	assert.False(t, open)

	// Unknown documents broadcast to nobody without error.
	hub.BroadcastFragment("doc-1", "after close")
}
