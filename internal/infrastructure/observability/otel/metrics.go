package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// GatewayOutcome 決済プロセッサ呼び出しの結果区分
const (
	GatewayOutcomeSuccess = "success"
	GatewayOutcomeFailure = "failure"
)

// Metrics メトリクス定義
type Metrics struct {
	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー数
	ErrorCount metric.Int64Counter

	// 決済プロセッサ呼び出し数
	GatewayCallCount metric.Int64Counter

	// 決済プロセッサ呼び出し時間
	GatewayCallDuration metric.Float64Histogram
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := Meter(meterName)

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	gatewayCallCount, err := meter.Int64Counter(
		"gateway_calls_total",
		metric.WithDescription("Total number of payment processor calls"),
	)
	if err != nil {
		return nil, err
	}

	gatewayCallDuration, err := meter.Float64Histogram(
		"gateway_call_duration_seconds",
		metric.WithDescription("Payment processor call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:        requestCount,
		ResponseTime:        responseTime,
		ErrorCount:          errorCount,
		GatewayCallCount:    gatewayCallCount,
		GatewayCallDuration: gatewayCallDuration,
	}, nil
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}

// RecordGatewayCall 決済プロセッサ呼び出しを記録
func (m *Metrics) RecordGatewayCall(ctx context.Context, operation, outcome string, duration float64) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.GatewayCallCount.Add(ctx, 1, attrs)
	m.GatewayCallDuration.Record(ctx, duration, attrs)
}
