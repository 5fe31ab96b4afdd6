package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"vetiver/internal/interfaces/http/handlers/testutil"
)

func performTokenAuthRequest(configured, header string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	auth := NewTokenAuthMiddleware(configured, testutil.NewMockLogger())
	router.POST("/tickets", auth.RequireToken(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/tickets", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTokenAuth_ValidBearerToken(t *testing.T) {
	w := performTokenAuthRequest("s3cret", "Bearer s3cret")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTokenAuth_BareTokenAccepted(t *testing.T) {
	w := performTokenAuthRequest("s3cret", "s3cret")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTokenAuth_LowercaseBearerScheme(t *testing.T) {
	w := performTokenAuthRequest("s3cret", "bearer s3cret")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTokenAuth_InvalidToken(t *testing.T) {
	w := performTokenAuthRequest("s3cret", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenAuth_MissingToken(t *testing.T) {
	w := performTokenAuthRequest("s3cret", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenAuth_NoConfiguredTokenLocksMutations(t *testing.T) {
	w := performTokenAuthRequest("", "Bearer anything")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
