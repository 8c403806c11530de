// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Config struct'ı tüm ayarları tek bir yerde toplar, böylece
// her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	S3       S3Config
	Email    EmailConfig
	Reminder ReminderConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// Addr, "host:port" formatında listen adresi döner.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/botaniclock.db)
}

// S3Config, fotoğraf bucket'ı ayarları.
// Endpoint boşsa gerçek AWS S3; MinIO için http://localhost:9000 gibi verilir.
type S3Config struct {
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Endpoint  string
}

// EmailConfig, Resend email ayarları.
type EmailConfig struct {
	ResendAPIKey string // re_xxxxxxxx — GİZLİ TUTULMALI
	FromEmail    string // Resend'de doğrulanmış domain altında olmalı
}

// ReminderConfig, sulama hatırlatma taraması ayarları.
type ReminderConfig struct {
	Interval time.Duration // tarama aralığı (production: 1h)
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
func Load() (*Config, error) {
	// .env dosyasını yükle — dosya yoksa hata vermez, sessizce devam eder.
	// Production'da bu dosya olmaz, gerçek env variable'lar kullanılır.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	reminderInterval, err := time.ParseDuration(getEnv("REMINDER_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_INTERVAL: %w", err)
	}

	resendKey := getEnv("RESEND_API_KEY", "")
	if resendKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	s3Bucket := getEnv("S3_BUCKET", "")
	if s3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/botaniclock.db"),
		},
		S3: S3Config{
			Region:    getEnv("S3_REGION", "us-east-1"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Bucket:    s3Bucket,
			Endpoint:  getEnv("S3_ENDPOINT", ""),
		},
		Email: EmailConfig{
			ResendAPIKey: resendKey,
			FromEmail:    getEnv("EMAIL_FROM", "noreply@botaniclock.com"),
		},
		Reminder: ReminderConfig{
			Interval: reminderInterval,
		},
	}

	return cfg, nil
}

// getEnv, environment variable okur; yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
