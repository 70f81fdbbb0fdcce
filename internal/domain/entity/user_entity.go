package entity

import (
	"time"
)

// User is a person whose exercises are tracked.
// Created once by the user service and never updated.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}
