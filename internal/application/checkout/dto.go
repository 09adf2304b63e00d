package checkout

import "venmo-relay/internal/domain/order"

// CreateOrderResponse 注文作成レスポンス
type CreateOrderResponse struct {
	OrderID string
	Status  string
	Links   []order.Link
}

// AuthorizePaymentRequest オーソリリクエスト
type AuthorizePaymentRequest struct {
	OrderID string
}

// AuthorizePaymentResponse オーソリレスポンス
type AuthorizePaymentResponse struct {
	AuthorizationID string
	Status          string
	OrderID         string
}

// CaptureAuthorizationRequest キャプチャリクエスト
type CaptureAuthorizationRequest struct {
	AuthorizationID string
}

// CaptureAuthorizationResponse キャプチャレスポンス
type CaptureAuthorizationResponse struct {
	CaptureID string
	Status    string
}
