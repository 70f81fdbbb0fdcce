package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	repo "github.com/oksasatya/exercise-tracker/internal/domain/repository"
	"github.com/oksasatya/exercise-tracker/internal/observability"
	"github.com/oksasatya/exercise-tracker/pkg/events"
	"github.com/oksasatya/exercise-tracker/pkg/validation"
)

type UserService struct {
	Repo   repo.UserRepository
	Pub    EventPublisher
	Logger *logrus.Logger
}

func NewUserService(repo repo.UserRepository, pub EventPublisher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Pub: pub, Logger: logger}
}

// FindByUserID returns the users with the given id; an empty result means not found.
func (s *UserService) FindByUserID(ctx context.Context, id string) ([]entity.User, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) ([]entity.User, error) {
	return s.Repo.FindByUsername(ctx, username)
}

// Create stores a new user under a fresh id, refusing names already in use.
func (s *UserService) Create(ctx context.Context, username string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validation.NewError("username", "is required")
	}

	if s.Logger != nil {
		s.Logger.WithField("username", username).Debug("checking duplicate username")
	}
	existing, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		observability.RecordRejectedWrite("duplicate_username")
		return nil, ErrDuplicateUsername
	}

	u := &entity.User{ID: uuid.NewString(), Username: username}
	if err := s.Repo.Create(ctx, u); err != nil {
		// a concurrent request won the race; the unique index caught it
		if errors.Is(err, repo.ErrUsernameTaken) {
			observability.RecordRejectedWrite("duplicate_username")
			return nil, ErrDuplicateUsername
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Error("save user failed")
		}
		return nil, err
	}

	observability.RecordUserCreated()
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user saved")
	}
	publish(ctx, s.Pub, s.Logger, events.Event{Type: events.UserCreated, UserID: u.ID, Username: u.Username})
	return u, nil
}
