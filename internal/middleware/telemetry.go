package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kakeibo-app/kakeibo_backend/internal/platform/telemetry"
)

// untrackedPaths contains paths that should not produce telemetry events
var untrackedPaths = map[string]bool{
	"/health": true,
}

// TelemetryMiddleware creates a Gin middleware handler that captures one
// telemetry event per successful authenticated API request.
func TelemetryMiddleware(client *telemetry.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !client.Enabled() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		// Only successful requests are captured.
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Requires the user ID set by the auth middleware; unauthenticated
		// requests are not captured.
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// Event name from the route path, e.g.
		// "/api/v1/recurring/:id/record" -> "api_v1_recurring_:id_record".
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		client.Enqueue(userID, eventName, props)
	}
}
