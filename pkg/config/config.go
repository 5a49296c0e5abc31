package config

import "os"

// Config collects every environment knob the service reads.
type Config struct {
	Port string
	Env  string

	PostgresConnStr string

	JWTSecret string
	OTPSecret string

	FirebaseCredentialsPath string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	AdminEmail   string

	S3Region    string
	S3Bucket    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	SentryDSN string

	Protocol string
	Domain   string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),

		JWTSecret: getEnv("JWT_SECRET", "supersecretjwtkey"),
		OTPSecret: getEnv("OTP_SECRET", ""),

		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "admin@localhost"),
		FromName:     getEnv("FROM_NAME", "Portfolio"),
		AdminEmail:   getEnv("ADMIN_EMAIL", "admin@localhost"),

		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),

		SentryDSN: getEnv("SENTRY_DSN", ""),

		Protocol: getEnv("SITE_PROTOCOL", "https"),
		Domain:   getEnv("SITE_DOMAIN", "localhost:8080"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
