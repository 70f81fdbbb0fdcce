package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/exercise-tracker/config"
	"github.com/oksasatya/exercise-tracker/internal/interface/middleware"
)

// NewEngine builds the gin engine with global middleware and the catch-all
// error path. Routes are added afterwards through a Registry.
func NewEngine(cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxyList()); err != nil {
		if logger != nil {
			logger.WithError(err).Warn("invalid TRUSTED_PROXIES; trusting no proxy")
		}
		_ = r.SetTrustedProxies(nil)
	}
	r.TrustedPlatform = trustedPlatform(cfg.TrustedPlatform)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestIDMiddleware())
	if c, ok := corsConfig(cfg); ok {
		r.Use(cors.New(c))
	}
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(logger))
	r.NoRoute(middleware.NotFound())
	return r
}

func trustedPlatform(name string) string {
	switch name {
	case "cloudflare":
		return gin.PlatformCloudflare
	case "google":
		return gin.PlatformGoogleAppEngine
	default:
		return name
	}
}

func corsConfig(cfg *config.Config) (cors.Config, bool) {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	switch {
	case cfg.AllowAllOrigins():
		c.AllowAllOrigins = true
	case len(cfg.CORSOrigins()) > 0:
		c.AllowOrigins = cfg.CORSOrigins()
		c.AllowCredentials = true
	default:
		return cors.Config{}, false
	}
	return c, true
}
