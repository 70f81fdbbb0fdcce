package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	usersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "users",
		Name:      "created_total",
		Help:      "Number of users created.",
	})
	exercisesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "exercises",
		Name:      "created_total",
		Help:      "Number of exercises logged.",
	})
	rejectedWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "writes",
		Name:      "rejected_total",
		Help:      "Writes refused before reaching the store, by reason.",
	}, []string{"reason"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(usersCreated, exercisesCreated, rejectedWrites, httpDuration)
}

// RecordUserCreated bumps the user creation counter.
func RecordUserCreated() { usersCreated.Inc() }

// RecordExerciseCreated bumps the exercise creation counter.
func RecordExerciseCreated() { exercisesCreated.Inc() }

// RecordRejectedWrite counts a write refused for reason (duplicate_username, user_not_found).
func RecordRejectedWrite(reason string) { rejectedWrites.WithLabelValues(reason).Inc() }

// ObserveHTTP records one finished request.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
