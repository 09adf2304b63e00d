package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler ヘルスチェックハンドラー
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler 新しいHealthHandlerを作成
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// Check ヘルスチェック
// 決済プロセッサの設定状態に関わらず常に200を返す
// @Summary ヘルスチェック
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
