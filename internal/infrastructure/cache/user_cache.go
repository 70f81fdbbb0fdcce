// Package cache puts a Redis read-through layer in front of user lookups.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/exercise-tracker/internal/domain/repository"
	"github.com/oksasatya/exercise-tracker/pkg/helpers"
)

const keyPrefix = "user:id:"

// UserRepository caches FindByID hits. Users never change after creation, so
// a cached user stays valid; misses are not cached because the id may be
// created later. Redis errors fall back to the wrapped repository.
type UserRepository struct {
	repository.UserRepository
	Redis  *redis.Client
	TTL    time.Duration
	Logger *logrus.Logger
}

// NewUserRepository returns next unchanged when rdb is nil.
func NewUserRepository(next repository.UserRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) repository.UserRepository {
	if rdb == nil || ttl <= 0 {
		return next
	}
	return &UserRepository{UserRepository: next, Redis: rdb, TTL: ttl, Logger: logger}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) ([]entity.User, error) {
	var cached entity.User
	ok, err := helpers.RedisGetJSON(ctx, r.Redis, keyPrefix+id, &cached)
	if err != nil {
		r.warn(err, id, "user cache read failed")
	} else if ok {
		return []entity.User{cached}, nil
	}

	users, err := r.UserRepository.FindByID(ctx, id)
	if err != nil || len(users) == 0 {
		return users, err
	}
	if err := helpers.RedisSetJSON(ctx, r.Redis, keyPrefix+id, users[0], r.TTL); err != nil {
		r.warn(err, id, "user cache write failed")
	}
	return users, nil
}

func (r *UserRepository) warn(err error, id, msg string) {
	if r.Logger != nil {
		r.Logger.WithError(err).WithField("user_id", id).Warn(msg)
	}
}
