package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/exercise-tracker/pkg/response"
	"github.com/oksasatya/exercise-tracker/pkg/validation"
)

// HTTPError carries its own status through the catch-all error path.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

var ErrRouteNotFound = &HTTPError{Status: http.StatusNotFound, Message: "not found"}

// NotFound is installed as the engine's NoRoute handler.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(ErrRouteNotFound)
	}
}

// ErrorHandler turns the last error attached with c.Error into a plain-text
// response:
//   - validation errors: 400 with the first failing field's message
//   - *HTTPError: its own status and message
//   - anything else: 500
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, msg := classify(err)
		if status >= http.StatusInternalServerError && logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}).Error("request failed")
		}
		response.Text(c, status, msg)
	}
}

func classify(err error) (int, string) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}
	var he *HTTPError
	if errors.As(err, &he) {
		status := he.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, he.Message
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// Recovery answers a panic through the same plain-text 500 as other
// unexpected errors.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"panic":      recovered,
			}).Error("panic recovered")
		}
		response.Text(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		c.Abort()
	})
}
