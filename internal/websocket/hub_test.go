package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
)

func TestNotifyTaskQueuesEvent(t *testing.T) {
	hub := NewHub()

	hub.NotifyTask("created", models.Task{ID: "t1", Title: "T", OwnerID: "u1"})

	require.Len(t, hub.Broadcast, 1)
	var event TaskEvent
	require.NoError(t, json.Unmarshal(<-hub.Broadcast, &event))
	assert.Equal(t, "created", event.Action)
	assert.Equal(t, "t1", event.Task.ID)
}

func TestNotifyTaskNeverBlocks(t *testing.T) {
	hub := NewHub()

	// Nobody is draining the hub; events beyond the buffer are dropped
	// instead of stalling the request that produced them.
	for i := 0; i < 100; i++ {
		hub.NotifyTask("updated", models.Task{ID: "t"})
	}
	assert.Equal(t, cap(hub.Broadcast), len(hub.Broadcast))
}
