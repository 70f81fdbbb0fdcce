package application

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	repo "github.com/oksasatya/exercise-tracker/internal/domain/repository"
	"github.com/oksasatya/exercise-tracker/internal/observability"
	"github.com/oksasatya/exercise-tracker/pkg/events"
	"github.com/oksasatya/exercise-tracker/pkg/validation"
)

// UserFinder is the part of UserService the exercise service depends on.
type UserFinder interface {
	FindByUserID(ctx context.Context, id string) ([]entity.User, error)
}

type ExerciseService struct {
	Repo   repo.ExerciseRepository
	Users  UserFinder
	Pub    EventPublisher
	Logger *logrus.Logger
}

func NewExerciseService(repo repo.ExerciseRepository, users UserFinder, pub EventPublisher, logger *logrus.Logger) *ExerciseService {
	return &ExerciseService{Repo: repo, Users: users, Pub: pub, Logger: logger}
}

type CreateExerciseInput struct {
	UserID      string
	Description string
	Duration    float64 // minutes
	Date        time.Time
}

// AddExerciseParams are the raw fields of an add request.
type AddExerciseParams struct {
	UserID      string
	Description string
	Duration    string
	Date        string
}

// Add checks the user exists before validating duration and date, so an
// unknown user is reported even when the other fields are malformed.
func (s *ExerciseService) Add(ctx context.Context, p AddExerciseParams) (*entity.Exercise, error) {
	if err := s.checkUser(ctx, p.UserID); err != nil {
		return nil, err
	}
	duration, err := parseDuration(p.Duration)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Date) == "" {
		return nil, validation.NewError("date", "is required")
	}
	date, err := parseDate("date", p.Date)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, entity.Exercise{UserID: p.UserID, Description: p.Description, Duration: duration, Date: date})
}

// Create logs an exercise for an existing user. The existence check and the
// insert are not atomic; users are never deleted by this service.
func (s *ExerciseService) Create(ctx context.Context, in CreateExerciseInput) (*entity.Exercise, error) {
	if err := s.checkUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	return s.save(ctx, entity.Exercise{
		UserID:      in.UserID,
		Description: in.Description,
		Duration:    in.Duration,
		Date:        in.Date,
	})
}

func (s *ExerciseService) checkUser(ctx context.Context, userID string) error {
	err := s.requireUser(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		observability.RecordRejectedWrite("user_not_found")
	}
	return err
}

func (s *ExerciseService) save(ctx context.Context, e entity.Exercise) (*entity.Exercise, error) {
	if err := s.Repo.Create(ctx, &e); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", e.UserID).Error("save exercise failed")
		}
		return nil, err
	}

	observability.RecordExerciseCreated()
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": e.UserID, "exercise_id": e.ID}).Info("exercise saved")
	}
	publish(ctx, s.Pub, s.Logger, events.Event{
		Type:        events.ExerciseCreated,
		UserID:      e.UserID,
		ExerciseID:  e.ID,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        e.Date.Format(entity.DateLayout),
	})
	return &e, nil
}

// parseDuration accepts any finite decimal or exponent form, e.g. "30", "12.5", "1e2".
func parseDuration(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, validation.NewError("duration", "is required")
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, validation.NewError("duration", "must be numeric")
	}
	return d, nil
}

// FindForLog runs an already built log query. Empty results are not an error.
func (s *ExerciseService) FindForLog(ctx context.Context, q repo.ExerciseQuery) ([]entity.Exercise, error) {
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": q.UserID, "from": q.From, "to": q.To, "limit": q.Limit}).Debug("searching exercises")
	}
	return s.Repo.Find(ctx, q)
}

// Log validates raw log parameters, checks the user exists, then reads the log.
func (s *ExerciseService) Log(ctx context.Context, p LogParams) ([]entity.Exercise, error) {
	q, err := BuildLogQuery(p)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, q.UserID); err != nil {
		return nil, err
	}
	return s.FindForLog(ctx, q)
}

func (s *ExerciseService) requireUser(ctx context.Context, userID string) error {
	users, err := s.Users.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return ErrUserNotFound
	}
	return nil
}
