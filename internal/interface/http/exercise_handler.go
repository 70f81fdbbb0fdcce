package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/exercise-tracker/internal/application"
	"github.com/oksasatya/exercise-tracker/pkg/response"
	"github.com/oksasatya/exercise-tracker/pkg/validation"
)

type ExerciseHandler struct {
	Svc    *application.ExerciseService
	Logger *logrus.Logger
}

func NewExerciseHandler(svc *application.ExerciseService, logger *logrus.Logger) *ExerciseHandler {
	return &ExerciseHandler{Svc: svc, Logger: logger}
}

// rawValue keeps a field's text whatever its JSON type, so numbers and
// numeric strings both reach the service unchanged.
type rawValue string

func (v *rawValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = rawValue(s)
		return nil
	}
	*v = rawValue(b)
	return nil
}

// Fields are validated by the service after the user lookup.
type addExerciseRequest struct {
	UserID      string   `form:"userId" json:"userId"`
	Description string   `form:"description" json:"description"`
	Duration    rawValue `form:"duration" json:"duration"`
	Date        rawValue `form:"date" json:"date"`
}

// Add POST /api/exercise/add
func (h *ExerciseHandler) Add(c *gin.Context) {
	var req addExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(validation.First(err))
		return
	}
	e, err := h.Svc.Add(c.Request.Context(), application.AddExerciseParams{
		UserID:      req.UserID,
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        string(req.Date),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, toExerciseView(*e))
}

// Log GET /api/exercise/log?userId=<id>&from=<date>&to=<date>&limit=<n>
func (h *ExerciseHandler) Log(c *gin.Context) {
	list, err := h.Svc.Log(c.Request.Context(), application.LogParams{
		UserID: c.Query("userId"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Limit:  c.Query("limit"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, toExerciseViews(list))
}
