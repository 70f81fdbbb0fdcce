package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/exercise-tracker/internal/domain/repository"
)

// Store keeps users and exercises in memory for local development and tests.
// It enforces username uniqueness the same way the Postgres unique index does.
type Store struct {
	mu         sync.RWMutex
	users      map[string]entity.User
	byUsername map[string]string
	exercises  []entity.Exercise
	nextID     int64
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]entity.User),
		byUsername: make(map[string]string),
	}
}

// Users returns the store as a UserRepository.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Exercises returns the store as an ExerciseRepository.
func (s *Store) Exercises() *ExerciseRepository { return &ExerciseRepository{s: s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.byUsername[u.Username]; ok {
		return repository.ErrUsernameTaken
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.s.users[u.ID] = *u
	r.s.byUsername[u.Username] = u.ID
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return []entity.User{u}, nil
	}
	return []entity.User{}, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if id, ok := r.s.byUsername[username]; ok {
		return []entity.User{r.s.users[id]}, nil
	}
	return []entity.User{}, nil
}

type ExerciseRepository struct{ s *Store }

func (r *ExerciseRepository) Create(ctx context.Context, e *entity.Exercise) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextID++
	e.ID = r.s.nextID
	r.s.exercises = append(r.s.exercises, *e)
	return nil
}

func (r *ExerciseRepository) Find(ctx context.Context, q repository.ExerciseQuery) ([]entity.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Exercise, 0)
	for _, e := range r.s.exercises {
		if e.UserID != q.UserID {
			continue
		}
		if q.From != nil && e.Date.Before(*q.From) {
			continue
		}
		if q.To != nil && e.Date.After(*q.To) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	if q.Limit >= 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.ExerciseRepository = (*ExerciseRepository)(nil)
)
