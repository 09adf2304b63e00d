package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"ENVIRONMENT", "PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT",
	"STATIC_DIR", "CORS_ALLOW_ORIGINS",
	"PAYPAL_MODE", "PAYPAL_CLIENT_ID", "PAYPAL_CLIENT_SECRET", "PAYPAL_BASE_URL", "PAYPAL_TIMEOUT",
	"ORDER_AMOUNT", "ORDER_CURRENCY", "ORDER_PAYEE_MERCHANT_ID", "ORDER_RETURN_URL", "ORDER_CANCEL_URL",
	"API_KEY_ENABLED", "API_KEY", "OTEL_ENABLED",
}

// clearEnv テスト対象の環境変数を空にする（空文字はデフォルト値扱い）
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(t *testing.T)
		wantError   bool
		checkConfig func(*testing.T, *Config)
	}{
		{
			name: "正常系: デフォルト値で設定を読み込む",
			setupEnv: func(t *testing.T) {
				t.Setenv("PAYPAL_CLIENT_ID", "client-id")
				t.Setenv("PAYPAL_CLIENT_SECRET", "client-secret")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.Equal(t, 3000, cfg.Server.Port)
				assert.Equal(t, "public", cfg.Server.StaticDir)
				assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowOrigins)
				assert.Equal(t, PayPalModeSandbox, cfg.PayPal.Mode)
				assert.Equal(t, sandboxBaseURL, cfg.PayPal.BaseURL)
				assert.Equal(t, 30*time.Second, cfg.PayPal.Timeout)
				assert.True(t, cfg.PayPal.IsSandbox())
				assert.True(t, cfg.PayPal.HasCredentials())
				assert.False(t, cfg.APIKey.Enabled)
				assert.False(t, cfg.OpenTelemetry.Enabled)
				assert.Empty(t, cfg.Order.Amount)
			},
		},
		{
			name: "正常系: 環境変数から設定を読み込む",
			setupEnv: func(t *testing.T) {
				t.Setenv("ENVIRONMENT", "production")
				t.Setenv("PORT", "8081")
				t.Setenv("PAYPAL_MODE", "LIVE")
				t.Setenv("PAYPAL_CLIENT_ID", "live-id")
				t.Setenv("PAYPAL_CLIENT_SECRET", "live-secret")
				t.Setenv("PAYPAL_TIMEOUT", "5s")
				t.Setenv("ORDER_AMOUNT", "10.00")
				t.Setenv("ORDER_CURRENCY", "EUR")
				t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
				t.Setenv("API_KEY_ENABLED", "true")
				t.Setenv("API_KEY", "secret-key")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "production", cfg.Environment)
				assert.Equal(t, 8081, cfg.Server.Port)
				assert.Equal(t, ":8081", cfg.Server.Address())
				assert.Equal(t, PayPalModeLive, cfg.PayPal.Mode)
				assert.Equal(t, liveBaseURL, cfg.PayPal.BaseURL)
				assert.False(t, cfg.PayPal.IsSandbox())
				assert.Equal(t, 5*time.Second, cfg.PayPal.Timeout)
				assert.Equal(t, "10.00", cfg.Order.Amount)
				assert.Equal(t, "EUR", cfg.Order.CurrencyCode)
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowOrigins)
				assert.True(t, cfg.APIKey.Enabled)
				assert.Equal(t, "secret-key", cfg.APIKey.Key)
			},
		},
		{
			name: "正常系: ベースURLの上書き",
			setupEnv: func(t *testing.T) {
				t.Setenv("PAYPAL_CLIENT_ID", "client-id")
				t.Setenv("PAYPAL_CLIENT_SECRET", "client-secret")
				t.Setenv("PAYPAL_BASE_URL", "http://127.0.0.1:9999")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://127.0.0.1:9999", cfg.PayPal.BaseURL)
			},
		},
		{
			name: "正常系: 認証情報が未設定でも読み込める",
			setupEnv: func(t *testing.T) {},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.PayPal.ClientID)
				assert.Empty(t, cfg.PayPal.ClientSecret)
				assert.False(t, cfg.PayPal.HasCredentials())
				assert.Equal(t, sandboxBaseURL, cfg.PayPal.BaseURL)
			},
		},
		{
			name: "正常系: PAYPAL_CLIENT_SECRETのみ未設定",
			setupEnv: func(t *testing.T) {
				t.Setenv("PAYPAL_CLIENT_ID", "client-id")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "client-id", cfg.PayPal.ClientID)
				assert.False(t, cfg.PayPal.HasCredentials())
			},
		},
		{
			name: "異常系: 不明なPAYPAL_MODE",
			setupEnv: func(t *testing.T) {
				t.Setenv("PAYPAL_MODE", "staging")
				t.Setenv("PAYPAL_CLIENT_ID", "client-id")
				t.Setenv("PAYPAL_CLIENT_SECRET", "client-secret")
			},
			wantError: true,
		},
		{
			name: "異常系: APIキー有効だがキーが空",
			setupEnv: func(t *testing.T) {
				t.Setenv("PAYPAL_CLIENT_ID", "client-id")
				t.Setenv("PAYPAL_CLIENT_SECRET", "client-secret")
				t.Setenv("API_KEY_ENABLED", "true")
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
				if tt.checkConfig != nil {
					tt.checkConfig(t, cfg)
				}
			}
		})
	}
}

func TestPayPalConfig_DefaultBaseURL(t *testing.T) {
	sandbox := PayPalConfig{Mode: PayPalModeSandbox}
	assert.Equal(t, "https://api-m.sandbox.paypal.com", sandbox.DefaultBaseURL())

	live := PayPalConfig{Mode: PayPalModeLive}
	assert.Equal(t, "https://api-m.paypal.com", live.DefaultBaseURL())
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue int
		want         int
	}{
		{
			name:         "環境変数が設定されている",
			envValue:     "123",
			defaultValue: 0,
			want:         123,
		},
		{
			name:         "環境変数が空",
			envValue:     "",
			defaultValue: 456,
			want:         456,
		},
		{
			name:         "環境変数が無効な値",
			envValue:     "invalid",
			defaultValue: 789,
			want:         789,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_INT", tt.envValue)
			defer os.Unsetenv("TEST_INT")

			got := getEnvAsInt("TEST_INT", tt.defaultValue)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
	}{
		{name: "環境変数がtrue", envValue: "true", defaultValue: false, want: true},
		{name: "環境変数がfalse", envValue: "false", defaultValue: true, want: false},
		{name: "環境変数が空", envValue: "", defaultValue: true, want: true},
		{name: "環境変数が無効な値", envValue: "invalid", defaultValue: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_BOOL", tt.envValue)
			defer os.Unsetenv("TEST_BOOL")

			got := getEnvAsBool("TEST_BOOL", tt.defaultValue)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue time.Duration
		want         time.Duration
	}{
		{name: "環境変数が有効な時間", envValue: "1h", defaultValue: time.Minute, want: time.Hour},
		{name: "環境変数が空", envValue: "", defaultValue: time.Minute, want: time.Minute},
		{name: "環境変数が無効な値", envValue: "invalid", defaultValue: time.Hour, want: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_DURATION", tt.envValue)
			defer os.Unsetenv("TEST_DURATION")

			got := getEnvAsDuration("TEST_DURATION", tt.defaultValue)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("TEST_LIST", " a , ,b ")
	assert.Equal(t, []string{"a", "b"}, getEnvAsList("TEST_LIST", nil))

	t.Setenv("TEST_LIST", " , ")
	assert.Equal(t, []string{"x"}, getEnvAsList("TEST_LIST", []string{"x"}))

	t.Setenv("TEST_LIST", "")
	assert.Equal(t, []string{"x"}, getEnvAsList("TEST_LIST", []string{"x"}))
}
