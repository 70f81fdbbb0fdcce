package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/exercise-tracker/internal/domain/repository"
)

func TestBuildFindSQL(t *testing.T) {
	uid := "6f1c3f5e-6a57-4b0e-9d2b-0a4c7c1f2e11"
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("user only, unbounded", func(t *testing.T) {
		sql, args := buildFindSQL(repository.ExerciseQuery{UserID: uid, Limit: repository.NoLimit})
		require.Equal(t, `SELECT id, user_id::text, description, duration, date FROM exercises WHERE user_id = $1 ORDER BY date, id`, sql)
		require.Equal(t, []any{uid}, args)
	})

	t.Run("from with limit", func(t *testing.T) {
		sql, args := buildFindSQL(repository.ExerciseQuery{UserID: uid, From: &day, Limit: 5})
		require.Contains(t, sql, "AND date >= $2")
		require.Contains(t, sql, "LIMIT $3")
		require.NotContains(t, sql, "date <=")
		require.Equal(t, []any{uid, day, 5}, args)
	})

	t.Run("to with zero limit", func(t *testing.T) {
		sql, args := buildFindSQL(repository.ExerciseQuery{UserID: uid, To: &day, Limit: 0})
		require.Contains(t, sql, "AND date <= $2")
		require.Contains(t, sql, "LIMIT $3")
		require.Equal(t, []any{uid, day, 0}, args)
	})
}

func TestValidUUID(t *testing.T) {
	require.True(t, validUUID("6f1c3f5e-6a57-4b0e-9d2b-0a4c7c1f2e11"))
	require.False(t, validUUID("not-a-uuid"))
	require.False(t, validUUID(""))
}
