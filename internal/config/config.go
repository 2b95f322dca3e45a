package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все параметры запуска клиента.
type Config struct {
	Env         string
	LogLevel    string
	ServerURL   string
	StorageDir  string
	IPAPIURL    string
	GeoAPIURL   string
	HTTPTimeout time.Duration
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
// Единственная обязательная настройка — адрес сервера RAVD.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	serverURL := getEnv("RAVD_SERVER_URL", "")
	if serverURL == "" {
		return nil, fmt.Errorf("config: RAVD_SERVER_URL обязателен")
	}

	storageDir := getEnv("RAVD_STORAGE_DIR", "")
	if storageDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: не удалось определить домашний каталог: %w", err)
		}
		storageDir = filepath.Join(home, ".ravd")
	}

	cfg := &Config{
		Env:        getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		ServerURL:  serverURL,
		StorageDir: storageDir,
		IPAPIURL:   getEnv("RAVD_IP_API_URL", "https://api.ipify.org?format=json"),
		GeoAPIURL:  getEnv("RAVD_GEO_API_URL", "https://ipapi.co"),
	}

	// По умолчанию таймаут не задан: начатый запрос всегда ожидается до конца.
	cfg.HTTPTimeout = mustParseDuration(getEnv("HTTP_TIMEOUT", "0s"))

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// mustParseDuration разбирает длительность, при ошибке возвращает ноль.
func mustParseDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("config: некорректная длительность %q, используем 0: %v", value, err)
		return 0
	}
	return d
}
