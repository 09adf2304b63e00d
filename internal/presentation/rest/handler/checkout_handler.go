package handler

import (
	"net/http"

	checkoutapp "venmo-relay/internal/application/checkout"

	"github.com/labstack/echo/v4"
)

// CheckoutHandler 決済フロー関連ハンドラー
type CheckoutHandler struct {
	checkoutService *checkoutapp.CheckoutApplicationService
}

// NewCheckoutHandler 新しいCheckoutHandlerを作成
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutApplicationService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CreateVenmoOrder 注文作成ハンドラー
// @Summary Venmo注文を作成
// @Description AUTHORIZEインテントの注文を固定ペイロードで作成します（リクエストボディは無視）
// @Tags checkout
// @Produce json
// @Success 200 {object} CreateOrderResponse "注文作成成功"
// @Failure 500 {object} middleware.ErrorResponse "決済プロセッサエラー"
// @Router /create-venmo-order [post]
func (h *CheckoutHandler) CreateVenmoOrder(c echo.Context) error {
	resp, err := h.checkoutService.CreateOrder(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreateOrderResponse{
		OrderID: resp.OrderID,
		Status:  resp.Status,
		Links:   resp.Links,
	})
}

// AuthorizePayment オーソリハンドラー
// @Summary 注文をオーソリ
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body AuthorizePaymentRequest true "オーソリリクエスト"
// @Success 200 {object} AuthorizePaymentResponse "オーソリ成功"
// @Failure 400 {object} middleware.ErrorResponse "orderIDが未指定"
// @Failure 500 {object} middleware.ErrorResponse "決済プロセッサエラー"
// @Router /authorize-payment [post]
func (h *CheckoutHandler) AuthorizePayment(c echo.Context) error {
	var reqBody AuthorizePaymentRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.checkoutService.AuthorizePayment(c.Request().Context(), &checkoutapp.AuthorizePaymentRequest{
		OrderID: reqBody.OrderID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AuthorizePaymentResponse{
		Success:         true,
		AuthorizationID: resp.AuthorizationID,
		Status:          resp.Status,
		OrderID:         resp.OrderID,
	})
}

// CaptureAuthorization キャプチャハンドラー
// @Summary オーソリをキャプチャ
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CaptureAuthorizationRequest true "キャプチャリクエスト"
// @Success 200 {object} CaptureAuthorizationResponse "キャプチャ成功"
// @Failure 400 {object} middleware.ErrorResponse "authorizationIDが未指定"
// @Failure 500 {object} middleware.ErrorResponse "決済プロセッサエラー"
// @Router /capture-authorization [post]
func (h *CheckoutHandler) CaptureAuthorization(c echo.Context) error {
	var reqBody CaptureAuthorizationRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.checkoutService.CaptureAuthorization(c.Request().Context(), &checkoutapp.CaptureAuthorizationRequest{
		AuthorizationID: reqBody.AuthorizationID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CaptureAuthorizationResponse{
		Success:   true,
		CaptureID: resp.CaptureID,
		Status:    resp.Status,
	})
}
