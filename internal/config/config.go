package config

import (
	"fmt"
	"os"
	"strconv"
)

// アプリ全体の設定
type Config struct {
	Port string

	JWTSecret string

	// SMTP未設定ならメール送信は無効（NopSender）
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	EmailFrom  string
	AdminEmail string

	// Stripe未設定なら決済エンドポイントは無効
	StripeSecretKey     string
	StripeWebhookSecret string

	GoEnv string
	FEURL string
}

// 環境変数から読み込む。PORTとJWT_SECRETだけ必須
func Load() (Config, error) {
	cfg := Config{
		Port:      getenv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		SMTPHost:   os.Getenv("SMTP_HOST"),
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		EmailFrom:  os.Getenv("EMAIL_FROM"),
		AdminEmail: os.Getenv("ADMIN_EMAIL"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		GoEnv: getenv("GO_ENV", "dev"),
		FEURL: os.Getenv("FE_URL"),
	}

	if v := getenv("SMTP_PORT", "587"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("SMTP_PORT must be number: %w", err)
		}
		cfg.SMTPPort = p
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// SMTPの接続情報がそろっているか
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
