package checkout

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"venmo-relay/internal/domain/order"
	"venmo-relay/internal/infrastructure/config"
	otelinfra "venmo-relay/internal/infrastructure/observability/otel"
)

// CheckoutApplicationService 注文作成・オーソリ・キャプチャのアプリケーションサービス
// 各操作は独立しており、前段の操作を経たIDかどうかは検証しない
type CheckoutApplicationService struct {
	gateway     order.PaymentGateway
	orderParams order.OrderParams
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
}

// NewCheckoutApplicationService 新しいCheckoutApplicationServiceを作成
// 注文パラメータは起動時に一度検証する
func NewCheckoutApplicationService(
	gateway order.PaymentGateway,
	orderParams order.OrderParams,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) (*CheckoutApplicationService, error) {
	if _, err := order.NewOrderRequest(orderParams); err != nil {
		return nil, fmt.Errorf("invalid order parameters: %w", err)
	}
	return &CheckoutApplicationService{
		gateway:     gateway,
		orderParams: orderParams,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("checkout-service"),
	}, nil
}

// ResolveOrderParams 設定値で既定の注文パラメータを上書きする
func ResolveOrderParams(cfg *config.OrderConfig) order.OrderParams {
	params := order.DefaultOrderParams()
	if cfg == nil {
		return params
	}
	if cfg.Amount != "" {
		params.Amount = cfg.Amount
	}
	if cfg.CurrencyCode != "" {
		params.CurrencyCode = cfg.CurrencyCode
	}
	if cfg.PayeeMerchantID != "" {
		params.PayeeMerchantID = cfg.PayeeMerchantID
	}
	if cfg.ReturnURL != "" {
		params.ReturnURL = cfg.ReturnURL
	}
	if cfg.CancelURL != "" {
		params.CancelURL = cfg.CancelURL
	}
	return params
}

// CreateOrder AUTHORIZEインテントのVenmo注文を作成
func (s *CheckoutApplicationService) CreateOrder(ctx context.Context) (*CreateOrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutApplicationService.CreateOrder")
	defer span.End()

	s.logger.Info(ctx, "Creating Venmo order", map[string]interface{}{
		"amount":   s.orderParams.Amount,
		"currency": s.orderParams.CurrencyCode,
	})

	req, err := order.NewOrderRequest(s.orderParams)
	if err != nil {
		return nil, s.fail(ctx, span, OperationCreateOrder, err)
	}

	start := time.Now()
	created, err := s.gateway.CreateOrder(ctx, req)
	s.recordGatewayCall(ctx, OperationCreateOrder, start, err)
	if err != nil {
		return nil, s.fail(ctx, span, OperationCreateOrder, err)
	}

	span.SetAttributes(
		attribute.String("order_id", created.ID),
		attribute.String("order_status", created.Status.String()),
	)
	s.logger.Info(ctx, "Order created successfully", map[string]interface{}{
		"order_id": created.ID,
		"status":   created.Status.String(),
	})

	return &CreateOrderResponse{
		OrderID: created.ID,
		Status:  created.Status.String(),
		Links:   created.Links,
	}, nil
}

// AuthorizePayment 注文をオーソリし、最初のオーソリIDを返す
func (s *CheckoutApplicationService) AuthorizePayment(ctx context.Context, req *AuthorizePaymentRequest) (*AuthorizePaymentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutApplicationService.AuthorizePayment")
	defer span.End()

	if req.OrderID == "" {
		return nil, s.fail(ctx, span, OperationAuthorizePayment, order.ErrOrderIDRequired)
	}
	span.SetAttributes(attribute.String("order_id", req.OrderID))

	s.logger.Info(ctx, "Authorizing payment", map[string]interface{}{
		"order_id": req.OrderID,
	})

	start := time.Now()
	result, err := s.gateway.AuthorizeOrder(ctx, req.OrderID)
	s.recordGatewayCall(ctx, OperationAuthorizePayment, start, err)
	if err != nil {
		return nil, s.fail(ctx, span, OperationAuthorizePayment, err)
	}

	auth, err := result.FirstAuthorization()
	if err != nil {
		return nil, s.fail(ctx, span, OperationAuthorizePayment, err)
	}

	span.SetAttributes(attribute.String("authorization_id", auth.ID))
	s.logger.Info(ctx, "Payment authorized successfully", map[string]interface{}{
		"order_id":         req.OrderID,
		"authorization_id": auth.ID,
		"status":           result.Status.String(),
	})

	return &AuthorizePaymentResponse{
		AuthorizationID: auth.ID,
		Status:          result.Status.String(),
		OrderID:         req.OrderID,
	}, nil
}

// CaptureAuthorization オーソリをキャプチャ
func (s *CheckoutApplicationService) CaptureAuthorization(ctx context.Context, req *CaptureAuthorizationRequest) (*CaptureAuthorizationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutApplicationService.CaptureAuthorization")
	defer span.End()

	if req.AuthorizationID == "" {
		return nil, s.fail(ctx, span, OperationCaptureAuthorization, order.ErrAuthorizationIDRequired)
	}
	span.SetAttributes(attribute.String("authorization_id", req.AuthorizationID))

	s.logger.Info(ctx, "Capturing authorization", map[string]interface{}{
		"authorization_id": req.AuthorizationID,
	})

	start := time.Now()
	capture, err := s.gateway.CaptureAuthorization(ctx, req.AuthorizationID)
	s.recordGatewayCall(ctx, OperationCaptureAuthorization, start, err)
	if err != nil {
		return nil, s.fail(ctx, span, OperationCaptureAuthorization, err)
	}

	s.logger.Info(ctx, "Authorization captured successfully", map[string]interface{}{
		"authorization_id": req.AuthorizationID,
		"capture_id":       capture.ID,
		"status":           capture.Status,
	})

	return &CaptureAuthorizationResponse{
		CaptureID: capture.ID,
		Status:    capture.Status,
	}, nil
}

// fail 障害を記録し、OperationErrorに包んで返す
func (s *CheckoutApplicationService) fail(ctx context.Context, span trace.Span, op Operation, err error) error {
	opErr := &OperationError{Operation: op, Err: err}

	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())

	fields := map[string]interface{}{
		"operation":   string(op),
		"message":     opErr.Message(),
		"details":     opErr.Details(),
		"status_code": opErr.StatusCode(),
	}
	if opErr.IsValidation() {
		s.logger.Warn(ctx, op.Label(), fields)
		s.metrics.RecordError(ctx, "validation_error")
	} else {
		s.logger.Error(ctx, op.Label(), err, fields)
		s.metrics.RecordError(ctx, string(op)+"_failed")
	}
	return opErr
}

// recordGatewayCall 決済プロセッサ呼び出しのメトリクスを記録
func (s *CheckoutApplicationService) recordGatewayCall(ctx context.Context, op Operation, start time.Time, err error) {
	outcome := otelinfra.GatewayOutcomeSuccess
	if err != nil {
		outcome = otelinfra.GatewayOutcomeFailure
	}
	s.metrics.RecordGatewayCall(ctx, string(op), outcome, time.Since(start).Seconds())
}
