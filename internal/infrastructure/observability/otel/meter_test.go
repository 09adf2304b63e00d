package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"

	"venmo-relay/internal/infrastructure/config"
)

func TestInitMeter_Disabled(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		Enabled: false,
	}

	shutdown, err := InitMeter(cfg)
	assert.NoError(t, err)
	require.NotNil(t, shutdown)

	err = shutdown(context.Background())
	assert.NoError(t, err)
}

func TestInitMeter_OTLP(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		Enabled:         true,
		MetricsExporter: "otlp",
		OTLPEndpoint:    "localhost:4318",
		OTLPInsecure:    true,
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
	}

	shutdown, err := InitMeter(cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	defer otel.SetMeterProvider(noop.NewMeterProvider())

	// 送信先が無いのでシャットダウン時のエクスポートは失敗してよい
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestInitMeter_Stdout(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		Enabled:         true,
		MetricsExporter: "stdout",
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
	}

	shutdown, err := InitMeter(cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	defer otel.SetMeterProvider(noop.NewMeterProvider())

	assert.NoError(t, shutdown(context.Background()))
}

func TestInitMeter_UnsupportedExporter(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		Enabled:         true,
		MetricsExporter: "prometheus",
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
	}

	shutdown, err := InitMeter(cfg)
	assert.Error(t, err)
	assert.Nil(t, shutdown)
	assert.Contains(t, err.Error(), "unsupported metrics exporter")
}

func TestMeter(t *testing.T) {
	meter := Meter("test-meter")
	assert.NotNil(t, meter)

	counter, err := meter.Int64Counter("test_counter")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)
}
