package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raw2ready/backend/internal/pkg/errs"
)

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Attachment streams a file download.
func Attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	abort(c, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	abort(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context) {
	abort(c, http.StatusTooManyRequests, "Too many requests, slow down")
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	abort(c, http.StatusInternalServerError, err.Error())
}

// GatewayTimeout sends a 504 error response.
func GatewayTimeout(c *gin.Context, message string) {
	abort(c, http.StatusGatewayTimeout, message)
}

// Error maps a service error onto a status. Request problems are 400,
// exhausted polling or deadlines are 504 and remote or parse failures are 500.
func Error(c *gin.Context, err error) {
	status, message := classify(err)
	abort(c, status, message)
}

// ErrorWithData is Error with a partial result attached under "data".
func ErrorWithData(c *gin.Context, err error, data interface{}) {
	status, message := classify(err)
	c.AbortWithStatusJSON(status, gin.H{"ok": 0, "code": status, "message": message, "data": data})
}

func classify(err error) (int, string) {
	switch {
	case errs.IsClient(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Model query failed: " + err.Error()
	default:
		return http.StatusInternalServerError, "Model query failed: " + err.Error()
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": 0, "code": status, "message": message})
}
