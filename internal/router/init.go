package router

import (
	"time"

	"github.com/oksasatya/exercise-tracker/internal/application"
	"github.com/oksasatya/exercise-tracker/internal/container"
	repo "github.com/oksasatya/exercise-tracker/internal/domain/repository"
	"github.com/oksasatya/exercise-tracker/internal/infrastructure/cache"
	"github.com/oksasatya/exercise-tracker/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/exercise-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/exercise-tracker/internal/infrastructure/search"
	handlers "github.com/oksasatya/exercise-tracker/internal/interface/http"
	"github.com/oksasatya/exercise-tracker/internal/interface/middleware"
	"github.com/oksasatya/exercise-tracker/internal/router/modules"
)

type ExerciseModuleDeps struct {
	Users     repo.UserRepository
	Exercises repo.ExerciseRepository
	UserSvc   *application.UserService
	Svc       *application.ExerciseService
	Module    *modules.ExerciseModule
}

// buildExerciseDeps uses Postgres when a pool was provided and an in-memory
// store otherwise. User lookups go through Redis when it is available.
func buildExerciseDeps() ExerciseModuleDeps {
	var users repo.UserRepository
	var exercises repo.ExerciseRepository
	if pool := container.GetPGPool(); pool != nil {
		users = pginfra.NewUserRepository(pool)
		exercises = pginfra.NewExerciseRepository(pool)
	} else {
		store := memory.NewStore()
		users = store.Users()
		exercises = store.Exercises()
	}

	logger := container.GetLogger()
	cfg := container.GetConfig()
	users = cache.NewUserRepository(users, container.GetRedis(), cfg.UserCacheTTL, logger)

	var pub application.EventPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	userSvc := application.NewUserService(users, pub, logger)
	svc := application.NewExerciseService(exercises, userSvc, pub, logger)

	var searcher handlers.UserSearcher
	if es := container.GetES(); es != nil {
		searcher = search.NewIndex(es, cfg.ESUsersIndex, cfg.ESExercisesIndex)
	}

	return ExerciseModuleDeps{
		Users:     users,
		Exercises: exercises,
		UserSvc:   userSvc,
		Svc:       svc,
		Module: modules.NewExerciseModule(
			handlers.NewUserHandler(userSvc, searcher, logger),
			handlers.NewExerciseHandler(svc, logger),
		),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	r.Use(middleware.RateLimit(container.GetRedis(), cfg.RateLimitPerMinute, time.Minute, middleware.KeyByIPAndPath(), nil))

	r.Add(buildExerciseDeps().Module)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	r.AddRoot(modules.NewPageModule())
}
