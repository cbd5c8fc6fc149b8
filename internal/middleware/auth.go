package middleware

import (
	"net/http"
	"strings"

	"catalog-service/internal/policy"
	"catalog-service/pkg/jwtutil"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const authCookieName = "auth_token"

// AuthMiddleware validates the JWT token and stores the actor identity in
// the request context. Browser flows carry the token in the auth cookie,
// API callers in the Authorization header.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)
		prometheus.AuthAttemptsCounter.Inc()

		tokenString := bearerToken(c)
		if tokenString == "" {
			if cookie, err := c.Cookie(authCookieName); err == nil {
				tokenString = cookie.Value
			}
		}
		if tokenString == "" {
			log.Warn("Missing authentication token")
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		actor := policy.Actor{
			UserID: claims.UserID,
			Email:  claims.Email,
			Perms:  claims.Perms,
		}
		c.Set("actor", actor)

		log.Info("Request authenticated",
			zap.Uint("user_id", actor.UserID),
			zap.Int("perm_count", len(actor.Perms)))

		return next(c)
	}
}

// ActorFromContext retrieves the authenticated actor from the context.
// Returns false when the request did not pass the auth middleware.
func ActorFromContext(c echo.Context) (policy.Actor, bool) {
	actor, ok := c.Get("actor").(policy.Actor)
	return actor, ok
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
