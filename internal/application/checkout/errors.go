package checkout

import (
	"errors"
	"net/http"

	"venmo-relay/internal/domain/order"
)

// NoAdditionalDetails 詳細が無い場合のプレースホルダー
const NoAdditionalDetails = "No additional details"

// Operation 決済フローの段階
type Operation string

const (
	OperationCreateOrder          Operation = "create_order"
	OperationAuthorizePayment     Operation = "authorize_payment"
	OperationCaptureAuthorization Operation = "capture_authorization"
)

// Label クライアントに返すエラー見出し
func (o Operation) Label() string {
	switch o {
	case OperationCreateOrder:
		return "Failed to create order"
	case OperationAuthorizePayment:
		return "Failed to authorize payment"
	case OperationCaptureAuthorization:
		return "Failed to capture payment"
	default:
		return "Request failed"
	}
}

// OperationError 各段階で発生した障害
// 決済プロセッサ、通信、応答形式のいずれの障害もこの型に包まれる
type OperationError struct {
	Operation Operation
	Err       error
}

// Error errorインターフェースの実装
func (e *OperationError) Error() string {
	return e.Operation.Label() + ": " + e.Err.Error()
}

// Unwrap 元のエラーを返す
func (e *OperationError) Unwrap() error {
	return e.Err
}

// Message 人が読めるメッセージ
func (e *OperationError) Message() string {
	var gwErr *order.GatewayError
	if errors.As(e.Err, &gwErr) {
		return gwErr.Error()
	}
	return e.Err.Error()
}

// Details プロセッサのエラー詳細（無い場合はプレースホルダー）
func (e *OperationError) Details() interface{} {
	var gwErr *order.GatewayError
	if errors.As(e.Err, &gwErr) && gwErr.Details != nil {
		return gwErr.Details
	}
	return NoAdditionalDetails
}

// StatusCode プロセッサのステータスコード（無い場合は500）
func (e *OperationError) StatusCode() int {
	if e.IsValidation() {
		return http.StatusBadRequest
	}
	var gwErr *order.GatewayError
	if errors.As(e.Err, &gwErr) {
		return gwErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// DebugID プロセッサが返した相関ID
func (e *OperationError) DebugID() string {
	var gwErr *order.GatewayError
	if errors.As(e.Err, &gwErr) {
		return gwErr.DebugID
	}
	return ""
}

// HTTPStatus クライアントへ返すHTTPステータス
// 入力不備以外はすべて500
func (e *OperationError) HTTPStatus() int {
	if e.IsValidation() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// IsValidation 呼び出し側の入力不備かどうか
func (e *OperationError) IsValidation() bool {
	return errors.Is(e.Err, order.ErrOrderIDRequired) || errors.Is(e.Err, order.ErrAuthorizationIDRequired)
}
