// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authenticate verifies the Bearer token on incoming requests and stores the
// authenticated principal in the request context.
func Authenticate(tokens auth.TokenService, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("AuthMiddleware")

	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeader)
		if header == "" {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is missing."))
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], common.AuthorizationTypeBearer) {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer {token}'."))
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			log.Debug("Token verification failed", zap.Error(err))
			common.RespondWithError(c, err)
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			log.Warn("Token subject is not a valid UUID", zap.String("subject", claims.Subject))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid access token."))
			return
		}

		c.Set(common.UserIDKey, userID)
		c.Set(common.UserNameKey, claims.Name)
		c.Set(common.UserRoleKey, claims.Role)
		c.Next()
	}
}

// ActorFromContext extracts the authenticated principal placed by Authenticate.
func ActorFromContext(c *gin.Context) (auth.Actor, bool) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		return auth.Actor{}, false
	}
	return auth.Actor{
		ID:   userID,
		Name: common.GetUserNameFromContext(c),
		Role: common.GetUserRoleFromContext(c),
	}, true
}
