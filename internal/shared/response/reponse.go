package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Messages shared by every route
const (
	MsgRouteNotFound      = "Route not found"
	MsgServerError        = "Server error"
	MsgInvalidRequestBody = "Invalid request body"
)

// FieldError is one rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Body is every non-record response: {"message": ..., "errors": [...]}
type Body struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Success writes data as the bare JSON body
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Message writes {"message": ...}
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Body{Message: message})
}

// ErrorWithDetails writes {"message": ..., "errors": [...]}
func ErrorWithDetails(c *gin.Context, statusCode int, message string, details []FieldError) {
	c.JSON(statusCode, Body{
		Message: message,
		Errors:  details,
	})
}

// Abort writes {"message": ...} and stops the handler chain
func Abort(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Body{Message: message})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Message(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	Message(c, http.StatusInternalServerError, message)
}

// RouteNotFound is the NoRoute/NoMethod handler
func RouteNotFound(c *gin.Context) {
	NotFound(c, MsgRouteNotFound)
}
