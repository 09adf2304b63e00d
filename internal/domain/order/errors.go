package order

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthorizationMissing オーソリ応答にオーソリが含まれていないエラー
	ErrAuthorizationMissing = errors.New("authorization missing from processor response")
	// ErrOrderIDRequired 注文IDが空のエラー
	ErrOrderIDRequired = errors.New("orderID is required")
	// ErrAuthorizationIDRequired オーソリIDが空のエラー
	ErrAuthorizationIDRequired = errors.New("authorizationID is required")
	// ErrInvalidAmount 無効な金額エラー
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidCurrency 無効な通貨コードエラー
	ErrInvalidCurrency = errors.New("invalid currency code")
	// ErrPayeeRequired 受取人が未指定のエラー
	ErrPayeeRequired = errors.New("payee merchant id is required")
)

// GatewayError 決済プロセッサが返したエラー
type GatewayError struct {
	StatusCode int
	Message    string
	// Details プロセッサのエラー詳細（無い場合はnil）
	Details    interface{}
	DebugID    string
}

// Error errorインターフェースの実装
func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("payment gateway returned status %d", e.StatusCode)
}

// HTTPStatus 有効なステータスコードを返す（無い場合は500）
func (e *GatewayError) HTTPStatus() int {
	if e.StatusCode == 0 {
		return http.StatusInternalServerError
	}
	return e.StatusCode
}
