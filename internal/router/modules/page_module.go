package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/exercise-tracker/internal/interface/http"
)

// PageModule serves the landing page and the health probe at the root.
type PageModule struct{}

func NewPageModule() *PageModule { return &PageModule{} }

func (m *PageModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", handlers.Index)
	rg.GET("/healthz", handlers.Healthz)
}
