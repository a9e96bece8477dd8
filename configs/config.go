package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"kartvizit.link/configs/configslog"
)

// Config uygulamanın tüm ortam ayarlarını tutar.
type Config struct {
	AppEnv string
	Port   string

	// Veritabanı
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// Erişim token'ı (JWT)
	JWTSecret string
	JWTTTL    time.Duration

	// Statik kartvizit çıktıları (mirror) için dizin
	MirrorDir string
}

var appConfig *Config

// LoadConfig .env dosyasını (varsa) ve ortam değişkenlerini okuyarak Config oluşturur.
func LoadConfig() (*Config, error) {
	// .env yoksa sessizce devam et; production'da değişkenler dışarıdan gelir.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", "3000"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", ""),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTTTL:     time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
		MirrorDir:  getEnv("MIRROR_DIR", "./public_cards"),
	}

	if cfg.DBName == "" {
		return nil, fmt.Errorf("DB_NAME tanımlı olmalı")
	}
	if cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER tanımlı olmalı")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET tanımlı olmalı")
	}

	appConfig = cfg
	return cfg, nil
}

// GetConfig yüklenmiş konfigürasyonu döndürür. LoadConfig çağrılmadıysa fatal.
func GetConfig() *Config {
	if appConfig == nil {
		cfg, err := LoadConfig()
		if err != nil {
			configslog.SLog.Fatalf("Konfigürasyon yüklenemedi: %v", err)
		}
		return cfg
	}
	return appConfig
}

// DSN Postgres bağlantı cümlesini üretir.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
