package events

import (
	"encoding/json"
	"testing"
	"time"

	domain "github.com/example/task-events-backend/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeWireFormat(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entity := &domain.Task{
		ID:        7,
		Title:     "Buy milk",
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("created carries the task, not taskId", func(t *testing.T) {
		data, err := json.Marshal(NewTaskCreated(entity, now))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))

		assert.Equal(t, "task.created", m["event"])
		assert.Contains(t, m, "task")
		assert.NotContains(t, m, "taskId")
		assert.Equal(t, "2026-08-01T12:00:00Z", m["timestamp"])
	})

	t.Run("updated carries the task", func(t *testing.T) {
		env := NewTaskUpdated(entity, now)
		assert.Equal(t, TaskUpdated, env.Event)
		require.NotNil(t, env.Task)
		assert.Equal(t, int64(7), env.Task.ID)
	})

	t.Run("deleted carries only the id as text", func(t *testing.T) {
		data, err := json.Marshal(NewTaskDeleted(7, now))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))

		assert.Equal(t, "task.deleted", m["event"])
		assert.Equal(t, "7", m["taskId"])
		assert.NotContains(t, m, "task")
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "42", Key(42))
}
