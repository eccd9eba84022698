package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string
	Env  string

	MongoURI     string
	DatabaseName string

	JWTSecret string

	B2ApplicationKeyID string
	B2ApplicationKey   string
	B2BucketName       string

	MaxFileSize int64

	OrphanSweepInterval time.Duration

	AllowedOrigins []string
}

var AppConfig *Config

func LoadConfig() {
	AppConfig = &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("DATABASE_NAME", "robolibrary"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		B2ApplicationKeyID: getEnv("B2_APPLICATION_KEY_ID", ""),
		B2ApplicationKey:   getEnv("B2_APPLICATION_KEY", ""),
		B2BucketName:       getEnv("B2_BUCKET_NAME", ""),

		MaxFileSize: parseInt64(getEnv("MAX_FILE_SIZE", "524288000")),

		OrphanSweepInterval: parseDuration(getEnv("ORPHAN_SWEEP_INTERVAL", "1h")),

		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	logConfig()
	validateConfig()
}

func logConfig() {
	log.Println("Configuration loaded:")
	log.Printf("  Port: %s", AppConfig.Port)
	log.Printf("  Environment: %s", AppConfig.Env)
	log.Printf("  Database: %s", AppConfig.DatabaseName)
	log.Printf("  MongoDB URI: %s", maskConnectionString(AppConfig.MongoURI))
	log.Printf("  JWT Secret: %s", maskSecret(AppConfig.JWTSecret))
	log.Printf("  B2 Key ID: %s", maskSecret(AppConfig.B2ApplicationKeyID))
	log.Printf("  B2 Bucket: %s", AppConfig.B2BucketName)
	log.Printf("  Max File Size: %d bytes", AppConfig.MaxFileSize)
	log.Printf("  Orphan Sweep Interval: %v", AppConfig.OrphanSweepInterval)
	log.Printf("  Allowed Origins: %v", AppConfig.AllowedOrigins)
}

func maskSecret(secret string) string {
	if secret == "" {
		return "[NOT SET]"
	}
	if len(secret) <= 8 {
		return "[HIDDEN]"
	}
	return secret[:4] + "***" + secret[len(secret)-4:]
}

func maskConnectionString(uri string) string {
	if strings.Contains(uri, "@") {
		parts := strings.Split(uri, "@")
		if len(parts) >= 2 {
			return "[CREDENTIALS_HIDDEN]@" + parts[len(parts)-1]
		}
	}
	return uri
}

func validateConfig() {
	var missingVars []string

	required := map[string]string{
		"MONGO_URI":             AppConfig.MongoURI,
		"JWT_SECRET":            AppConfig.JWTSecret,
		"B2_APPLICATION_KEY_ID": AppConfig.B2ApplicationKeyID,
		"B2_APPLICATION_KEY":    AppConfig.B2ApplicationKey,
		"B2_BUCKET_NAME":        AppConfig.B2BucketName,
	}

	for key, value := range required {
		if value == "" {
			missingVars = append(missingVars, key)
		}
	}

	if len(missingVars) > 0 {
		log.Printf("Missing required environment variables: %v", missingVars)
		log.Fatal("Please set all required environment variables")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt64(s string) int64 {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Fatalf("Failed to parse int64: %s", s)
	}
	return i
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("Failed to parse duration: %s", s)
	}
	return d
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}

	parts := strings.Split(s, ",")
	var result []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func CreateContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
