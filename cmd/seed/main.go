package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/exercise-tracker/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demoUser"
	var id string
	err = db.QueryRow(`
		INSERT INTO users (user_id, username)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING user_id::text
	`, uuid.NewString(), username).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: user_id=%s username=%s\n", id, username)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	seed := []struct {
		description string
		duration    float64
		daysAgo     int
	}{
		{"run", 30, 6},
		{"swim", 45, 4},
		{"bike", 60, 2},
		{"yoga", 20, 0},
	}
	for _, s := range seed {
		if _, err := db.Exec(`
			INSERT INTO exercises (user_id, description, duration, date)
			VALUES ($1, $2, $3, $4)
		`, id, s.description, s.duration, today.AddDate(0, 0, -s.daysAgo)); err != nil {
			log.Fatalf("failed to seed exercise %q: %v", s.description, err)
		}
	}
	fmt.Printf("seeded %d exercises\n", len(seed))
}
