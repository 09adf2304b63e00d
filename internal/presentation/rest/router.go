package rest

import (
	"context"
	"net/http"

	checkoutapp "venmo-relay/internal/application/checkout"
	"venmo-relay/internal/infrastructure/config"
	otelinfra "venmo-relay/internal/infrastructure/observability/otel"
	"venmo-relay/internal/presentation/rest/handler"
	restmiddleware "venmo-relay/internal/presentation/rest/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Router REST APIルーター
type Router struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	healthHandler   *handler.HealthHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	checkoutService *checkoutapp.CheckoutApplicationService,
) (*Router, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// ミドルウェアを抜けたエラー（パニック・未登録ルート）も同じ形式で返す
	e.HTTPErrorHandler = restmiddleware.HTTPErrorHandler(logger)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	setupMiddleware(e, cfg, logger, metrics)

	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	healthHandler := handler.NewHealthHandler()

	setupRoutes(e, cfg, logger, checkoutHandler, healthHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:            e,
		checkoutHandler: checkoutHandler,
		healthHandler:   healthHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, cfg *config.Config, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, restmiddleware.APIKeyHeader},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	checkoutHandler *handler.CheckoutHandler,
	healthHandler *handler.HealthHandler,
) {
	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", healthHandler.Check)

	// 決済フローエンドポイント
	apiKey := restmiddleware.APIKeyMiddleware(&cfg.APIKey, logger)
	e.POST("/create-venmo-order", checkoutHandler.CreateVenmoOrder, apiKey)
	e.POST("/authorize-payment", checkoutHandler.AuthorizePayment, apiKey)
	e.POST("/capture-authorization", checkoutHandler.CaptureAuthorization, apiKey)

	// 静的ファイル（チェックアウトページ）
	e.Static("/", cfg.Server.StaticDir)
}

// ServeHTTP http.Handlerとして振る舞う
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.echo.ServeHTTP(w, req)
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown 処理中のリクエストを待ってサーバーを停止
func (r *Router) Shutdown(ctx context.Context) error {
	return r.echo.Shutdown(ctx)
}
