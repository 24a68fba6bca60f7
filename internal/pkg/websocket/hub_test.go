package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/events"
)

func TestHubPublishReachesListenersAndClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	listener := make(chan events.Event, 1)
	hub.AddListener(listener)
	defer hub.RemoveListener(listener)

	client := &Client{hub: hub, send: make(chan []byte, 1), userID: uuid.New(), role: models.RoleProfessor, logger: zerolog.Nop()}
	hub.register <- client
	require.Eventually(t, func() bool { return hub.ClientsCount() == 1 }, time.Second, 5*time.Millisecond)

	actor := models.Identity{UserID: uuid.New(), Role: models.RoleAdmin}
	require.NoError(t, hub.Publish(ctx, events.New(events.StudentDeleted, 7, actor)))

	select {
	case got := <-listener:
		assert.Equal(t, events.StudentDeleted, got.Type)
		assert.EqualValues(t, 7, got.StudentID)
	case <-time.After(time.Second):
		t.Fatal("listener did not receive the event")
	}

	select {
	case msg := <-client.send:
		assert.Contains(t, string(msg), `"type":"student.deleted"`)
	case <-time.After(time.Second):
		t.Fatal("client did not receive the event")
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	slow := &Client{hub: hub, send: make(chan []byte), userID: uuid.New(), logger: zerolog.Nop()}
	hub.register <- slow
	require.Eventually(t, func() bool { return hub.ClientsCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Publish(ctx, events.New(events.StudentCreated, 1, models.Identity{})))
	require.Eventually(t, func() bool { return hub.ClientsCount() == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-slow.send
	assert.False(t, open)
}

func TestHubStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 1), userID: uuid.New(), logger: zerolog.Nop()}
	hub.register <- client
	cancel()

	select {
	case <-hub.done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, hub.ClientsCount())

	// publishing after shutdown does not block
	assert.NoError(t, hub.Publish(context.Background(), events.New(events.StudentCreated, 1, models.Identity{})))
}
