package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/exercise-tracker/internal/interface/http"
)

// ExerciseModule mounts the exercise tracker API under /api/exercise:
//
//	GET  /api/exercise?username=
//	GET  /api/exercise/log?userId=&from=&to=&limit=
//	GET  /api/exercise/users/search?q=&size=
//	POST /api/exercise/new-user
//	POST /api/exercise/add
type ExerciseModule struct {
	Users     *handlers.UserHandler
	Exercises *handlers.ExerciseHandler
}

func NewExerciseModule(users *handlers.UserHandler, exercises *handlers.ExerciseHandler) *ExerciseModule {
	return &ExerciseModule{Users: users, Exercises: exercises}
}

func (m *ExerciseModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/exercise")
	g.GET("", m.Users.FindByUsername)
	g.GET("/log", m.Exercises.Log)
	g.GET("/users/search", m.Users.Search)
	g.POST("/new-user", m.Users.NewUser)
	g.POST("/add", m.Exercises.Add)
}
