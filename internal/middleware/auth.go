package middleware

import (
	"net/http"
	"strings"

	"checklist-service/internal/model"
	"checklist-service/pkg/config"
	"checklist-service/pkg/jwtutil"
	"checklist-service/pkg/logger"
	"checklist-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const actorKey = "actor"

// ActorMiddleware resolves who is making the request so writes can be
// attributed. A valid bearer token supplies the actor. A request without a
// token falls back to the configured default actor unless auth is required.
func ActorMiddleware(jwtUtil *jwtutil.JWTUtil, auth config.AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				if auth.Required {
					log.Warn("Missing authorization header")
					prometheus.RecordAuth(false)
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing authorization header"})
				}
				c.Set(actorKey, model.ResolveActor(auth.DefaultActor))
				return next(c)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format")
				prometheus.RecordAuth(false)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid authorization header format"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuth(false)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			}
			prometheus.RecordAuth(true)

			actor := model.ResolveActor(claims.Actor())
			c.Set(actorKey, actor)
			logger.SetOnEcho(c, log.With(zap.String("actor", actor)))
			log.Debug("JWT token validated successfully", zap.String("actor", actor))

			return next(c)
		}
	}
}

// ActorFromContext returns the actor resolved for this request, or an empty
// string when the middleware did not run
func ActorFromContext(c echo.Context) string {
	actor, _ := c.Get(actorKey).(string)
	return actor
}
