package events

import "time"

// Event types published after a successful write.
const (
	UserCreated     = "user.created"
	ExerciseCreated = "exercise.created"
)

// Event is the JSON payload put on the RabbitMQ events queue.
// Exercise fields are empty for user events.
type Event struct {
	Type        string    `json:"type"`
	OccurredAt  time.Time `json:"occurred_at"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	ExerciseID  int64     `json:"exercise_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Duration    float64   `json:"duration,omitempty"`
	Date        string    `json:"date,omitempty"` // YYYY-MM-DD
}
