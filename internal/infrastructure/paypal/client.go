package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"venmo-relay/internal/domain/order"
	"venmo-relay/internal/infrastructure/config"
)

const (
	tokenPath           = "/v1/oauth2/token"
	ordersPath          = "/v2/checkout/orders"
	authorizationsPath  = "/v2/payments/authorizations"
	maxResponseBodySize = 1 << 20
)

// ErrCredentialsMissing クライアント認証情報が未設定
var ErrCredentialsMissing = errors.New("PayPal client credentials are not configured")

// Client PayPal REST APIクライアント
// アクセストークンはoauth2のトークンソースが保持・更新するため、並行利用してよい
type Client struct {
	baseURL    string
	httpClient *http.Client
	configured bool
}

var _ order.PaymentGateway = (*Client)(nil)

// NewClient 新しいClientを作成
func NewClient(cfg *config.PayPalConfig) *Client {
	base := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.Timeout,
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	credentials := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     baseURL + tokenPath,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	// トークン取得にも計装済みのクライアントを使う
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := credentials.Client(tokenCtx)
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		configured: cfg.HasCredentials(),
	}
}

// CreateOrder 注文を作成
func (c *Client) CreateOrder(ctx context.Context, req *order.OrderRequest) (*order.Order, error) {
	var created order.Order
	headers := map[string]string{"Prefer": "return=representation"}
	if err := c.do(ctx, ordersPath, req, headers, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AuthorizeOrder 注文をオーソリ
func (c *Client) AuthorizeOrder(ctx context.Context, orderID string) (*order.AuthorizationResult, error) {
	var result order.AuthorizationResult
	path := fmt.Sprintf("%s/%s/authorize", ordersPath, url.PathEscape(orderID))
	if err := c.do(ctx, path, struct{}{}, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CaptureAuthorization オーソリをキャプチャ
func (c *Client) CaptureAuthorization(ctx context.Context, authorizationID string) (*order.Capture, error) {
	var capture order.Capture
	path := fmt.Sprintf("%s/%s/capture", authorizationsPath, url.PathEscape(authorizationID))
	if err := c.do(ctx, path, struct{}{}, nil, &capture); err != nil {
		return nil, err
	}
	return &capture, nil
}

// do JSONをPOSTし、成功時は応答をoutへデコードする
func (c *Client) do(ctx context.Context, path string, body interface{}, headers map[string]string, out interface{}) error {
	if !c.configured {
		return ErrCredentialsMissing
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return normalizeTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// apiError PayPalのエラー応答
type apiError struct {
	Name    string          `json:"name"`
	Message string          `json:"message"`
	DebugID string          `json:"debug_id"`
	Details json.RawMessage `json:"details"`
}

// parseErrorResponse エラー応答をGatewayErrorに変換
func parseErrorResponse(statusCode int, body []byte) *order.GatewayError {
	gwErr := &order.GatewayError{StatusCode: statusCode}

	var parsed apiError
	if err := json.Unmarshal(body, &parsed); err == nil {
		gwErr.DebugID = parsed.DebugID
		switch {
		case parsed.Message != "":
			gwErr.Message = parsed.Message
		case parsed.Name != "":
			gwErr.Message = parsed.Name
		}
		if len(parsed.Details) > 0 && string(parsed.Details) != "null" {
			gwErr.Details = parsed.Details
		}
	}

	if gwErr.Message == "" {
		if text := strings.TrimSpace(string(body)); text != "" {
			gwErr.Message = text
		} else {
			gwErr.Message = http.StatusText(statusCode)
		}
	}
	return gwErr
}

// normalizeTransportError トークン取得失敗をGatewayErrorに変換し、それ以外はそのまま返す
func normalizeTransportError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		return fmt.Errorf("payment gateway request failed: %w", err)
	}

	gwErr := &order.GatewayError{Message: "failed to obtain access token"}
	if retrieveErr.Response != nil {
		gwErr.StatusCode = retrieveErr.Response.StatusCode
	}
	if retrieveErr.ErrorDescription != "" {
		gwErr.Message = retrieveErr.ErrorDescription
	} else if retrieveErr.ErrorCode != "" {
		gwErr.Message = retrieveErr.ErrorCode
	}
	if json.Valid(retrieveErr.Body) {
		gwErr.Details = json.RawMessage(retrieveErr.Body)
	}
	return gwErr
}
