package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// PayPalModeSandbox サンドボックス環境
	PayPalModeSandbox = "sandbox"
	// PayPalModeLive 本番環境
	PayPalModeLive = "live"

	sandboxBaseURL = "https://api-m.sandbox.paypal.com"
	liveBaseURL    = "https://api-m.paypal.com"
)

// Config アプリケーション全体の設定
type Config struct {
	Server        ServerConfig
	PayPal        PayPalConfig
	Order         OrderConfig
	APIKey        APIKeyConfig
	OpenTelemetry OpenTelemetryConfig
	Environment   string
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	StaticDir        string
	CORSAllowOrigins []string
}

// PayPalConfig 決済プロセッサ接続設定
type PayPalConfig struct {
	Mode         string
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

// OrderConfig 注文ペイロードの入力
// 空の項目は既定値を使う
type OrderConfig struct {
	Amount          string
	CurrencyCode    string
	PayeeMerchantID string
	ReturnURL       string
	CancelURL       string
}

// APIKeyConfig APIキー認証設定
type APIKeyConfig struct {
	Enabled bool
	Key     string
}

// OpenTelemetryConfig OpenTelemetry設定
type OpenTelemetryConfig struct {
	Enabled         bool
	ServiceName     string
	ServiceVersion  string
	OTLPEndpoint    string
	OTLPInsecure    bool
	TraceExporter   string // "otlp", "stdout"
	MetricsExporter string // "otlp", "stdout"
}

// Load 設定を読み込む
func Load() (*Config, error) {
	// .envファイルを読み込む（存在しない場合は無視）
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "development")
	mode := strings.ToLower(getEnv("PAYPAL_MODE", PayPalModeSandbox))

	cfg := &Config{
		Environment: env,
		Server: ServerConfig{
			Port:             getEnvAsInt("PORT", 3000),
			ReadTimeout:      getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:     getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:      getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			StaticDir:        getEnv("STATIC_DIR", "public"),
			CORSAllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		PayPal: PayPalConfig{
			Mode:         mode,
			ClientID:     getEnv("PAYPAL_CLIENT_ID", ""),
			ClientSecret: getEnv("PAYPAL_CLIENT_SECRET", ""),
			BaseURL:      getEnv("PAYPAL_BASE_URL", ""),
			Timeout:      getEnvAsDuration("PAYPAL_TIMEOUT", 30*time.Second),
		},
		Order: OrderConfig{
			Amount:          getEnv("ORDER_AMOUNT", ""),
			CurrencyCode:    getEnv("ORDER_CURRENCY", ""),
			PayeeMerchantID: getEnv("ORDER_PAYEE_MERCHANT_ID", ""),
			ReturnURL:       getEnv("ORDER_RETURN_URL", ""),
			CancelURL:       getEnv("ORDER_CANCEL_URL", ""),
		},
		APIKey: APIKeyConfig{
			Enabled: getEnvAsBool("API_KEY_ENABLED", false),
			Key:     getEnv("API_KEY", ""),
		},
		OpenTelemetry: OpenTelemetryConfig{
			Enabled:         getEnvAsBool("OTEL_ENABLED", false),
			ServiceName:     getEnv("OTEL_SERVICE_NAME", "venmo-relay"),
			ServiceVersion:  getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			OTLPInsecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			TraceExporter:   getEnv("OTEL_TRACES_EXPORTER", "otlp"),
			MetricsExporter: getEnv("OTEL_METRICS_EXPORTER", "otlp"),
		},
	}

	if cfg.PayPal.BaseURL == "" {
		cfg.PayPal.BaseURL = cfg.PayPal.DefaultBaseURL()
	}

	// 必須設定の検証
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate 設定の検証
func (c *Config) validate() error {
	if c.PayPal.Mode != PayPalModeSandbox && c.PayPal.Mode != PayPalModeLive {
		return fmt.Errorf("PAYPAL_MODE must be %q or %q, got %q", PayPalModeSandbox, PayPalModeLive, c.PayPal.Mode)
	}
	if c.APIKey.Enabled && c.APIKey.Key == "" {
		return fmt.Errorf("API_KEY is required when API_KEY_ENABLED is true")
	}
	return nil
}

// DefaultBaseURL モードに対応するAPIのベースURLを返す
func (c *PayPalConfig) DefaultBaseURL() string {
	if c.Mode == PayPalModeLive {
		return liveBaseURL
	}
	return sandboxBaseURL
}

// HasCredentials クライアント認証情報が揃っているか
// 未設定でも起動は続け、決済プロセッサ呼び出しのみ失敗させる
func (c *PayPalConfig) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// IsSandbox サンドボックスモードかどうか
func (c *PayPalConfig) IsSandbox() bool {
	return c.Mode != PayPalModeLive
}

// Address 待ち受けアドレスを返す
func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool 環境変数を真偽値として取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration 環境変数を時間として取得
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList カンマ区切りの環境変数をスライスとして取得
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
