package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	GoogleAudience  string
	AllowOrigins    []string
	LogstashTCPAddr string

	MinIOEndpoint           string
	MinIOAccessKey          string
	MinIOSecretKey          string
	MinIOUseSSL             bool
	MinIOBucketDestinations string
	MinIOPublicURL          string

	SessionTTL       time.Duration
	PasswordResetTTL time.Duration
	OTPLength        int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	DestinationImageMaxBytes int64
	AuthRatePerMinute        int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	otpLen := 6
	if v, err := strconv.Atoi(getenv("OTP_LENGTH", "6")); err == nil && v > 0 {
		otpLen = v
	}

	imageMax := int64(15 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("DESTINATION_IMAGE_MAX_BYTES", "15728640"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	smtpPort := 587
	if v, err := strconv.Atoi(getenv("SMTP_PORT", "587")); err == nil && v > 0 {
		smtpPort = v
	}

	authRate := 10
	if v, err := strconv.Atoi(getenv("AUTH_RATE_PER_MINUTE", "10")); err == nil && v > 0 {
		authRate = v
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     must("DATABASE_URL"),
		JWTSecret:       must("JWT_SECRET"),
		GoogleAudience:  getenv("GOOGLE_AUDIENCE", ""),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),

		MinIOEndpoint:           must("MINIO_ENDPOINT"),
		MinIOAccessKey:          must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:          must("MINIO_SECRET_KEY"),
		MinIOUseSSL:             getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketDestinations: getenv("MINIO_BUCKET_DESTINATIONS", "roamio-destinations"),
		MinIOPublicURL:          getenv("MINIO_PUBLIC_URL", ""),

		SessionTTL:       duration(getenv("SESSION_TTL", "24h"), 24*time.Hour),
		PasswordResetTTL: duration(getenv("PASSWORD_RESET_TTL", "15m"), 15*time.Minute),
		OTPLength:        otpLen,

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),

		DestinationImageMaxBytes: imageMax,
		AuthRatePerMinute:        authRate,
	}
}

func duration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
