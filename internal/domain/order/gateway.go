package order

import (
	"context"
)

// PaymentGateway 決済プロセッサへのポート
// 実装は並行呼び出しに対して安全であること
type PaymentGateway interface {
	// CreateOrder 注文を作成（return=representation）
	CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error)

	// AuthorizeOrder 注文をオーソリ
	AuthorizeOrder(ctx context.Context, orderID string) (*AuthorizationResult, error)

	// CaptureAuthorization オーソリをキャプチャ
	CaptureAuthorization(ctx context.Context, authorizationID string) (*Capture, error)
}
