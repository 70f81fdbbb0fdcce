package application

import (
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	repo "github.com/oksasatya/exercise-tracker/internal/domain/repository"
	"github.com/oksasatya/exercise-tracker/pkg/validation"
)

// LogParams are the raw query parameters of a log request.
type LogParams struct {
	UserID string
	From   string
	To     string
	Limit  string
}

// BuildLogQuery maps raw log parameters to a store query without touching the store.
//
// From and To are alternatives, never a closed range: when both are given
// only From applies. The limit is the integer prefix of the raw value; an
// absent, non-numeric or negative limit means no limit, while 0 selects nothing.
func BuildLogQuery(p LogParams) (repo.ExerciseQuery, error) {
	q := repo.ExerciseQuery{UserID: strings.TrimSpace(p.UserID), Limit: repo.NoLimit}
	if q.UserID == "" {
		return repo.ExerciseQuery{}, ErrMissingUserID
	}

	switch {
	case strings.TrimSpace(p.From) != "":
		from, err := parseDate("from", p.From)
		if err != nil {
			return repo.ExerciseQuery{}, err
		}
		q.From = &from
	case strings.TrimSpace(p.To) != "":
		to, err := parseDate("to", p.To)
		if err != nil {
			return repo.ExerciseQuery{}, err
		}
		q.To = &to
	}

	if n, ok := leadingInt(p.Limit); ok && n >= 0 {
		q.Limit = n
	}
	return q, nil
}

// leadingInt reads an optionally signed run of digits at the start of s and
// ignores the rest, so "5abc" is 5 and "3.5" is 3. No digits, or a value
// that overflows int, reports false.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and keeps only the UTC date.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(entity.DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, validation.NewError(field, "must be a valid date (YYYY-MM-DD)")
}
