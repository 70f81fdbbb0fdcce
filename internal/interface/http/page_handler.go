package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/exercise-tracker/web"
)

// Index serves the landing page.
func Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}

// Healthz reports a simple OK status for container health checks.
func Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
