package repository

import (
	"context"
	"time"

	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
)

// ExerciseQuery selects exercises of one user.
// At most one of From and To is set; Limit < 0 means unbounded.
type ExerciseQuery struct {
	UserID string
	From   *time.Time // date >= From
	To     *time.Time // date <= To
	Limit  int
}

// NoLimit marks an ExerciseQuery without a row cap.
const NoLimit = -1

type ExerciseRepository interface {
	Create(ctx context.Context, e *entity.Exercise) error
	Find(ctx context.Context, q ExerciseQuery) ([]entity.Exercise, error)
}
