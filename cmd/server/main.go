package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	checkoutapp "venmo-relay/internal/application/checkout"
	"venmo-relay/internal/infrastructure/config"
	otelinfra "venmo-relay/internal/infrastructure/observability/otel"
	"venmo-relay/internal/infrastructure/paypal"
	"venmo-relay/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("venmo-relay")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("venmo-relay")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// 認証情報が無くても起動し、ヘルスチェックは応答させる
	if !cfg.PayPal.HasCredentials() {
		logger.Warn(context.Background(), "PayPal client credentials are not configured", map[string]interface{}{
			"mode":     cfg.PayPal.Mode,
			"base_url": cfg.PayPal.BaseURL,
		})
	}

	// 決済プロセッサクライアントの初期化
	paypalClient := paypal.NewClient(&cfg.PayPal)

	// アプリケーションサービスの初期化
	checkoutService, err := checkoutapp.NewCheckoutApplicationService(
		paypalClient,
		checkoutapp.ResolveOrderParams(&cfg.Order),
		logger,
		metrics,
	)
	if err != nil {
		log.Fatalf("Failed to create checkout service: %v", err)
	}

	// REST APIルーターの初期化
	router, err := rest.NewRouter(cfg, logger, metrics, checkoutService)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	address := cfg.Server.Address()

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server running on port %d", cfg.Server.Port)
		log.Printf("Environment: %s", cfg.Environment)
		if cfg.PayPal.IsSandbox() {
			log.Printf("PayPal mode: sandbox (%s)", cfg.PayPal.BaseURL)
		} else {
			log.Printf("PayPal mode: live (%s)", cfg.PayPal.BaseURL)
		}
		log.Printf("Health check: http://localhost:%d/health", cfg.Server.Port)
		if err := router.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("REST API server error: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down REST API server: %v", err)
	}

	log.Println("Server stopped")
}
