package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the business-error payload. It is sent with status 200 to
// stay wire-compatible with existing clients.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes data with status 200.
func JSON(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, data)
}

// Failure writes {"error": err.Error()} with status 200.
func Failure(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusOK, ErrorBody{Error: err.Error()})
}

// Text writes a plain-text body; used by the catch-all error path.
func Text(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	ctx.String(status, message)
}
