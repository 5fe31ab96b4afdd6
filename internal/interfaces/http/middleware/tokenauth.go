package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vetiver/internal/shared/logger"
	"vetiver/internal/shared/utils"
)

// TokenAuthMiddleware gates mutating endpoints behind a single static admin
// token. There is no user model: the token is a pure on/off switch, and an
// empty configured token locks mutations instead of opening them.
type TokenAuthMiddleware struct {
	token  string
	logger logger.Interface
}

func NewTokenAuthMiddleware(token string, logger logger.Interface) *TokenAuthMiddleware {
	return &TokenAuthMiddleware{
		token:  strings.TrimSpace(token),
		logger: logger,
	}
}

func (m *TokenAuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.token == "" {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "mutations are disabled: no admin token configured")
			c.Abort()
			return
		}

		presented := bearerToken(c)
		if presented == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(m.token)) != 1 {
			m.logger.Warnw("rejected request with invalid admin token",
				"path", c.Request.URL.Path, "client_ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization token")
			c.Abort()
			return
		}

		c.Next()
	}
}

// bearerToken extracts the credential from the Authorization header,
// accepting both "Bearer <token>" and a bare token.
func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}
