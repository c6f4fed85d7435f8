package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return c, rec
}

func TestMessage_OmitsErrors(t *testing.T) {
	c, rec := newContext()

	Message(c, http.StatusOK, "Contact deleted")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Contact deleted"}`, rec.Body.String())
}

func TestErrorWithDetails_WritesEnvelope(t *testing.T) {
	c, rec := newContext()

	ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", []FieldError{
		{Field: "email", Message: "Please provide a valid email"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t,
		`{"message":"Validation failed","errors":[{"field":"email","message":"Please provide a valid email"}]}`,
		rec.Body.String())
}

func TestAbort_StopsChain(t *testing.T) {
	c, rec := newContext()

	Abort(c, http.StatusInternalServerError, MsgServerError)

	assert.True(t, c.IsAborted())
	assert.JSONEq(t, `{"message":"Server error"}`, rec.Body.String())
}

func TestRouteNotFound(t *testing.T) {
	c, rec := newContext()

	RouteNotFound(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, rec.Body.String())
}
