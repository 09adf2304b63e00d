package order

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// IntentAuthorize オーソリのみを行うインテント
const IntentAuthorize = "AUTHORIZE"

// UserActionPayNow 承認後すぐに支払いを確定するユーザーアクション
const UserActionPayNow = "PAY_NOW"

const defaultCheckoutURL = "https://commercehub-checkout-nonprod.fiservapps.com/hpp/index.html?environment=QA&nonce=1d9e32cf-c24d-4b31-9e5a-f9c027ffa1ba&pageId=92b69cfc-20dc-410d-92c5-92d3848cb606&pageVersion=1&merchantId=CHPAYPAL001&terminalId=10000001&apiKey=d0WrInIXOyUIcV1tzyUUNqvPArDmtRjogWJNtYBCh6ZgrG9s&accessToken=meLHjhBYyjj87ztmqZJdXRKjrfd8&domain=pjs2demo.firstdata.com"

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// OrderRequest 注文作成リクエスト（PayPal Orders v2のワイヤ形式）
type OrderRequest struct {
	Intent        string         `json:"intent"`
	PaymentSource PaymentSource  `json:"payment_source"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

// PaymentSource 支払い手段
type PaymentSource struct {
	Venmo *VenmoSource `json:"venmo,omitempty"`
}

// VenmoSource Venmoの支払い手段
type VenmoSource struct {
	ExperienceContext ExperienceContext `json:"experience_context"`
}

// ExperienceContext 戻り先・キャンセル先などの遷移情報
type ExperienceContext struct {
	ReturnURL  string `json:"return_url"`
	CancelURL  string `json:"cancel_url"`
	UserAction string `json:"user_action,omitempty"`
}

// PurchaseUnit 購入単位
type PurchaseUnit struct {
	Amount   Amount    `json:"amount"`
	Payee    Payee     `json:"payee"`
	Shipping *Shipping `json:"shipping,omitempty"`
}

// Amount 金額（10進文字列とISO通貨コード）
type Amount struct {
	Value        string `json:"value"`
	CurrencyCode string `json:"currency_code"`
}

// Payee 受取人
type Payee struct {
	MerchantID string `json:"merchant_id"`
}

// Shipping 配送先
type Shipping struct {
	Name    ShippingName `json:"name"`
	Address Address      `json:"address"`
	Phone   *Phone       `json:"phone,omitempty"`
}

// ShippingName 配送先氏名
type ShippingName struct {
	FullName string `json:"full_name"`
}

// Address 住所
type Address struct {
	AddressLine1 string `json:"address_line_1"`
	AdminArea1   string `json:"admin_area_1"`
	AdminArea2   string `json:"admin_area_2"`
	CountryCode  string `json:"country_code"`
	PostalCode   string `json:"postal_code"`
}

// Phone 電話番号
type Phone struct {
	NationalNumber string `json:"national_number"`
}

// OrderParams 注文リクエストを組み立てるための入力
type OrderParams struct {
	Amount          string
	CurrencyCode    string
	PayeeMerchantID string
	Shipping        *Shipping
	ReturnURL       string
	CancelURL       string
	UserAction      string
}

// DefaultOrderParams 既定の注文内容を返す
func DefaultOrderParams() OrderParams {
	return OrderParams{
		Amount:          "71.0",
		CurrencyCode:    "USD",
		PayeeMerchantID: "YFNHY4ABW7XYG",
		Shipping: &Shipping{
			Name: ShippingName{FullName: "fed ex"},
			Address: Address{
				AddressLine1: "fedex",
				AdminArea1:   "CA",
				AdminArea2:   "San Francisco",
				CountryCode:  "US",
				PostalCode:   "94107",
			},
			Phone: &Phone{NationalNumber: "4841231234"},
		},
		ReturnURL:  defaultCheckoutURL,
		CancelURL:  defaultCheckoutURL,
		UserAction: UserActionPayNow,
	}
}

// NewOrderRequest 入力から注文リクエストを組み立てる
// 金額は検証のみ行い、文字列はそのまま送信する
func NewOrderRequest(p OrderParams) (*OrderRequest, error) {
	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, p.Amount)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %q must be positive", ErrInvalidAmount, p.Amount)
	}
	if !currencyCodePattern.MatchString(p.CurrencyCode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, p.CurrencyCode)
	}
	if p.PayeeMerchantID == "" {
		return nil, ErrPayeeRequired
	}

	return &OrderRequest{
		Intent: IntentAuthorize,
		PaymentSource: PaymentSource{
			Venmo: &VenmoSource{
				ExperienceContext: ExperienceContext{
					ReturnURL:  p.ReturnURL,
					CancelURL:  p.CancelURL,
					UserAction: p.UserAction,
				},
			},
		},
		PurchaseUnits: []PurchaseUnit{
			{
				Amount: Amount{
					Value:        p.Amount,
					CurrencyCode: p.CurrencyCode,
				},
				Payee:    Payee{MerchantID: p.PayeeMerchantID},
				Shipping: p.Shipping,
			},
		},
	}, nil
}
