package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/exercise-tracker/internal/application"
	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/exercise-tracker/pkg/response"
	"github.com/oksasatya/exercise-tracker/pkg/validation"
)

// UserSearcher is satisfied by search.Index.
type UserSearcher interface {
	SearchUsers(ctx context.Context, q string, size int) ([]entity.User, error)
}

type UserHandler struct {
	Svc      *application.UserService
	Searcher UserSearcher
	Logger   *logrus.Logger
}

func NewUserHandler(svc *application.UserService, search UserSearcher, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Searcher: search, Logger: logger}
}

type newUserRequest struct {
	Username string `form:"username" json:"username" binding:"required,username"`
}

// FindByUsername GET /api/exercise?username=<name>
func (h *UserHandler) FindByUsername(c *gin.Context) {
	users, err := h.Svc.FindByUsername(c.Request.Context(), c.Query("username"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, toUserViews(users))
}

// NewUser POST /api/exercise/new-user
func (h *UserHandler) NewUser(c *gin.Context) {
	var req newUserRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(validation.First(err))
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), req.Username)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, toUserView(*u))
}

// Search GET /api/exercise/users/search?q=<prefix>&size=<n>
func (h *UserHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		_ = c.Error(validation.NewError("q", "is required"))
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	if h.Searcher == nil {
		response.JSON(c, []userView{})
		return
	}
	users, err := h.Searcher.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("q", q).Warn("user search failed")
		}
		fail(c, err)
		return
	}
	response.JSON(c, toUserViews(users))
}
