package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/exercise-tracker/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

// Register exposes Prometheus metrics to private networks only.
func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/metrics", middleware.PrivateOnly(), gin.WrapH(promhttp.Handler()))
}
