package task

import (
	"errors"
	"testing"

	domain "github.com/example/task-events-backend/domain/task"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRowError(t *testing.T) {
	t.Run("no rows becomes not found", func(t *testing.T) {
		err := mapRowError(pgx.ErrNoRows)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := mapRowError(cause)
		require.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}
