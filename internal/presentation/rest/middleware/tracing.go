package middleware

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	checkoutapp "venmo-relay/internal/application/checkout"
)

// スパン属性キー
const (
	AttrCheckoutOperation = attribute.Key("checkout.operation")
	AttrProcessorStatus   = attribute.Key("paypal.status_code")
	AttrProcessorDebugID  = attribute.Key("paypal.debug_id")
)

// routeOperations 決済フローのルートと操作の対応
var routeOperations = map[string]checkoutapp.Operation{
	"/create-venmo-order":    checkoutapp.OperationCreateOrder,
	"/authorize-payment":     checkoutapp.OperationAuthorizePayment,
	"/capture-authorization": checkoutapp.OperationCaptureAuthorization,
}

// TracingMiddleware OpenTelemetryトレーシングミドルウェア
// 決済フローのルートではスパン名を操作名にする
func TracingMiddleware() echo.MiddlewareFunc {
	tracer := otel.Tracer("venmo-relay")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			route := c.Path()
			attrs := []attribute.KeyValue{
				attribute.String("http.method", req.Method),
				attribute.String("http.url", req.URL.String()),
				attribute.String("http.route", route),
				attribute.String("http.user_agent", req.UserAgent()),
				attribute.String("http.request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			}

			spanName := req.Method + " " + route
			if op, ok := routeOperations[route]; ok {
				spanName = "checkout." + string(op)
				attrs = append(attrs, AttrCheckoutOperation.String(string(op)))
			}

			ctx, span := tracer.Start(ctx, spanName,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			statusCode := c.Response().Status
			span.SetAttributes(attribute.Int("http.status_code", statusCode))

			if err != nil {
				span.RecordError(err)
			}
			if err != nil || statusCode >= 500 {
				span.SetStatus(otelcodes.Error, "request failed")
			}

			return err
		}
	}
}

// annotateOperationError 失敗した決済操作の情報をサーバースパンに付与
func annotateOperationError(span trace.Span, opErr *checkoutapp.OperationError) {
	attrs := []attribute.KeyValue{
		AttrCheckoutOperation.String(string(opErr.Operation)),
		AttrProcessorStatus.Int(opErr.StatusCode()),
	}
	if debugID := opErr.DebugID(); debugID != "" {
		attrs = append(attrs, AttrProcessorDebugID.String(debugID))
	}
	span.SetAttributes(attrs...)
}
