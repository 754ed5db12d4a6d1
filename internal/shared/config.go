package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	HTTPAddr       string
	MetricsAddr    string
	CatalogBase    string
	CatalogRPS     int
	CatalogTimeout time.Duration
	ReportWorkers  int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		CatalogBase:    env("CATALOG_BASE_URL", "https://dummyjson.com"),
		CatalogRPS:     atoi("CATALOG_RPS", 10),
		CatalogTimeout: time.Duration(atoi("CATALOG_TIMEOUT_SECONDS", 20)) * time.Second,
		ReportWorkers:  atoi("REPORT_WORKERS", 5),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
