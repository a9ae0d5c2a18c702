package errors

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	appErr := NewUnauthorizedError("INVALID_TOKEN", "Invalid or expired token")
	assert.Same(t, appErr, FromError(appErr))

	converted := FromError(stderrors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, converted.StatusCode)
	assert.Equal(t, CodeInternal, converted.Code)
	assert.Equal(t, "An unexpected error occurred", converted.Message)
}

func TestAppErrorString(t *testing.T) {
	err := NewError(http.StatusUnauthorized, "AUTH_REQUIRED", "Authorization header is required")
	assert.Equal(t, "[AUTH_REQUIRED] Authorization header is required", err.Error())
}

func TestErrorHandlerFormatsAppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/protected", func(c *gin.Context) {
		c.Error(NewUnauthorizedError("AUTH_REQUIRED", "Authorization header is required"))
	})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"AUTH_REQUIRED"`)
	assert.Contains(t, w.Body.String(), `"message":"Authorization header is required"`)
}

func TestErrorHandlerConvertsPlainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		c.Error(stderrors.New("driver: bad connection"))
	})

	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), CodeInternal)
	assert.NotContains(t, w.Body.String(), "bad connection", "internal detail stays out of the response")
}

func TestRecoveryAnswersGeneric500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryWithLogger())
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}
