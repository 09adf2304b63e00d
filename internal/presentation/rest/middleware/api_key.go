package middleware

import (
	"crypto/subtle"
	"net/http"

	"venmo-relay/internal/infrastructure/config"
	otelinfra "venmo-relay/internal/infrastructure/observability/otel"

	"github.com/labstack/echo/v4"
)

// APIKeyHeader APIキーを受け取るヘッダー
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware APIキー認証ミドルウェア
// 無効化されている場合は何もしない
func APIKeyMiddleware(cfg *config.APIKeyConfig, logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Enabled {
				return next(c)
			}

			ctx := c.Request().Context()

			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				logger.Warn(ctx, "Missing X-API-Key header", map[string]interface{}{
					"path": c.Request().URL.Path,
				})
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error:   http.StatusText(http.StatusUnauthorized),
					Message: "Missing X-API-Key header",
				})
			}

			if subtle.ConstantTimeCompare([]byte(apiKey), []byte(cfg.Key)) != 1 {
				logger.Warn(ctx, "Invalid API key", map[string]interface{}{
					"ip": c.RealIP(),
				})
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error:   http.StatusText(http.StatusUnauthorized),
					Message: "Invalid API key",
				})
			}

			return next(c)
		}
	}
}
