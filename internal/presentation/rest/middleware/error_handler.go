package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	checkoutapp "venmo-relay/internal/application/checkout"
	otelinfra "venmo-relay/internal/infrastructure/observability/otel"
)

// InternalServerErrorMessage 想定外エラー時のエラー見出し
const InternalServerErrorMessage = "Internal server error"

// ErrorResponse エラーレスポンス
// 決済フローの失敗時は4項目すべてを返す
type ErrorResponse struct {
	Error      string      `json:"error"`
	Message    string      `json:"message,omitempty"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"statusCode,omitempty"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			return handleError(c, err, logger)
		}
	}
}

// HTTPErrorHandler ミドルウェアを抜けたエラー（パニック等）の最終ハンドラー
func HTTPErrorHandler(logger *otelinfra.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if writeErr := handleError(c, err, logger); writeErr != nil {
			logger.Error(c.Request().Context(), "Failed to write error response", writeErr, nil)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	if c.Response().Committed {
		logger.Warn(ctx, "Error after response was committed", map[string]interface{}{
			"error": err.Error(),
			"path":  c.Request().URL.Path,
		})
		return nil
	}

	// 決済フローの失敗（サービス側でログ出力済み）
	var opErr *checkoutapp.OperationError
	if errors.As(err, &opErr) {
		annotateOperationError(trace.SpanFromContext(ctx), opErr)
		return c.JSON(opErr.HTTPStatus(), ErrorResponse{
			Error:      opErr.Operation.Label(),
			Message:    opErr.Message(),
			Details:    opErr.Details(),
			StatusCode: opErr.StatusCode(),
		})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Unhandled error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: InternalServerErrorMessage,
	})
}
