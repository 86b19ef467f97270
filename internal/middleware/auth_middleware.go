package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/engimate/backend/internal/app/models/dto"
	"github.com/engimate/backend/internal/pkg/auth"
)

// Context keys set by the identity gate
const (
	SubjectKey = "subject"
	EmailKey   = "email"
)

// AuthMiddleware gates routes behind a verified identity issued by the
// external sign-in service
type AuthMiddleware struct {
	verifier *auth.TokenVerifier
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier *auth.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// RequireVerifiedIdentity rejects requests without a valid token of a verified student
func (m *AuthMiddleware) RequireVerifiedIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			authHeader = c.Query("token")
		}
		if authHeader == "" {
			detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		claims, err := m.verifier.ValidateToken(tokenString)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}
