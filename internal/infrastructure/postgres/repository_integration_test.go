//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/exercise-tracker/internal/domain/repository"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("exercise_track"),
		postgrescontainer.WithUsername("postgres"),
		postgrescontainer.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	require.NoError(t, RunMigrations(dsn, migrationsDir(t), logger))

	pool, err := NewPool(ctx, dsn, 4, 1, time.Hour)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "migrations")
}

func TestRepositoriesRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	users := NewUserRepository(pool)
	exercises := NewExerciseRepository(pool)

	alice := &entity.User{ID: uuid.NewString(), Username: "alice"}
	require.NoError(t, users.Create(ctx, alice))
	require.False(t, alice.CreatedAt.IsZero())

	found, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, alice.ID, found[0].ID)

	none, err := users.FindByID(ctx, "not-a-uuid")
	require.NoError(t, err)
	require.Empty(t, none)

	dup := &entity.User{ID: uuid.NewString(), Username: "alice"}
	require.ErrorIs(t, users.Create(ctx, dup), repository.ErrUsernameTaken)

	for i, d := range []string{"2024-01-03", "2024-01-01", "2024-01-02"} {
		day, _ := time.Parse(entity.DateLayout, d)
		e := &entity.Exercise{UserID: alice.ID, Description: "run", Duration: float64(10 * (i + 1)), Date: day}
		require.NoError(t, exercises.Create(ctx, e))
		require.NotZero(t, e.ID)
	}

	all, err := exercises.Find(ctx, repository.ExerciseQuery{UserID: alice.ID, Limit: repository.NoLimit})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "2024-01-01", all[0].Date.Format(entity.DateLayout))

	from, _ := time.Parse(entity.DateLayout, "2024-01-02")
	later, err := exercises.Find(ctx, repository.ExerciseQuery{UserID: alice.ID, From: &from, Limit: 1})
	require.NoError(t, err)
	require.Len(t, later, 1)
	require.Equal(t, "2024-01-02", later[0].Date.Format(entity.DateLayout))

	zero, err := exercises.Find(ctx, repository.ExerciseQuery{UserID: alice.ID, Limit: 0})
	require.NoError(t, err)
	require.Empty(t, zero)
}

func TestConcurrentDuplicateUsernames(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestPool(t))

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = users.Create(ctx, &entity.User{ID: uuid.NewString(), Username: "racer"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, repository.ErrUsernameTaken)
	}
	require.Equal(t, 1, ok)
}
