package handler

import "venmo-relay/internal/domain/order"

// CreateOrderResponse 注文作成レスポンス
// @Description 注文作成レスポンス
type CreateOrderResponse struct {
	OrderID string       `json:"orderID" example:"5O190127TN364715T"`
	Status  string       `json:"status" example:"PAYER_ACTION_REQUIRED"`
	Links   []order.Link `json:"links"`
}

// AuthorizePaymentRequest オーソリリクエスト
// @Description オーソリリクエスト
type AuthorizePaymentRequest struct {
	OrderID string `json:"orderID" example:"5O190127TN364715T"`
}

// AuthorizePaymentResponse オーソリレスポンス
// @Description オーソリレスポンス
type AuthorizePaymentResponse struct {
	Success         bool   `json:"success" example:"true"`
	AuthorizationID string `json:"authorizationID" example:"9T0199129L9819420"`
	Status          string `json:"status" example:"COMPLETED"`
	OrderID         string `json:"orderID" example:"5O190127TN364715T"`
}

// CaptureAuthorizationRequest キャプチャリクエスト
// @Description キャプチャリクエスト
type CaptureAuthorizationRequest struct {
	AuthorizationID string `json:"authorizationID" example:"9T0199129L9819420"`
}

// CaptureAuthorizationResponse キャプチャレスポンス
// @Description キャプチャレスポンス
type CaptureAuthorizationResponse struct {
	Success   bool   `json:"success" example:"true"`
	CaptureID string `json:"captureID" example:"2GG279541W4468618"`
	Status    string `json:"status" example:"COMPLETED"`
}

// HealthResponse ヘルスチェックレスポンス
type HealthResponse struct {
	Status    string `json:"status" example:"OK"`
	Timestamp string `json:"timestamp" example:"2024-01-01T00:00:00.000Z"`
}
