package order

// OrderStatus PayPal側の注文ステータス
type OrderStatus string

const (
	OrderStatusCreated             OrderStatus = "CREATED"
	OrderStatusSaved               OrderStatus = "SAVED"
	OrderStatusApproved            OrderStatus = "APPROVED"
	OrderStatusVoided              OrderStatus = "VOIDED"
	OrderStatusCompleted           OrderStatus = "COMPLETED"
	OrderStatusPayerActionRequired OrderStatus = "PAYER_ACTION_REQUIRED"
)

// String 文字列表現を返す
func (s OrderStatus) String() string {
	return string(s)
}

// Link HATEOASリンク
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

// Order 作成された注文
type Order struct {
	ID     string      `json:"id"`
	Status OrderStatus `json:"status"`
	Links  []Link      `json:"links"`
}

// Authorization オーソリ結果
type Authorization struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Capture キャプチャ結果
type Capture struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// AuthorizedPayments 購入単位ごとの決済情報
type AuthorizedPayments struct {
	Authorizations []Authorization `json:"authorizations"`
}

// AuthorizedPurchaseUnit オーソリ応答内の購入単位
type AuthorizedPurchaseUnit struct {
	ReferenceID string              `json:"reference_id,omitempty"`
	Payments    *AuthorizedPayments `json:"payments,omitempty"`
}

// AuthorizationResult 注文オーソリの応答
type AuthorizationResult struct {
	ID            string                   `json:"id"`
	Status        OrderStatus              `json:"status"`
	PurchaseUnits []AuthorizedPurchaseUnit `json:"purchase_units"`
}

// FirstAuthorization 最初の購入単位の最初のオーソリを返す
func (r *AuthorizationResult) FirstAuthorization() (*Authorization, error) {
	if len(r.PurchaseUnits) == 0 {
		return nil, ErrAuthorizationMissing
	}
	payments := r.PurchaseUnits[0].Payments
	if payments == nil || len(payments.Authorizations) == 0 {
		return nil, ErrAuthorizationMissing
	}
	auth := payments.Authorizations[0]
	if auth.ID == "" {
		return nil, ErrAuthorizationMissing
	}
	return &auth, nil
}
