package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/exercise-tracker/internal/application"
	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/exercise-tracker/pkg/response"
)

// fail answers business errors with a 200 {error} body and hands everything
// else to the error middleware.
func fail(c *gin.Context, err error) {
	if application.IsBusinessError(err) {
		response.Failure(c, err)
		return
	}
	_ = c.Error(err)
}

type userView struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type exerciseView struct {
	UserID      string  `json:"user_id"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

func toUserView(u entity.User) userView {
	return userView{UserID: u.ID, Username: u.Username}
}

func toUserViews(users []entity.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, toUserView(u))
	}
	return out
}

func toExerciseView(e entity.Exercise) exerciseView {
	return exerciseView{
		UserID:      e.UserID,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        e.Date.Format(entity.DateLayout),
	}
}

func toExerciseViews(list []entity.Exercise) []exerciseView {
	out := make([]exerciseView, 0, len(list))
	for _, e := range list {
		out = append(out, toExerciseView(e))
	}
	return out
}
