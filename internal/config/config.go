package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"payment-recon/internal/domain"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	App      AppConfig
	Columns  ColumnConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ServerConfig struct {
	Port        string
	MaxUploadMB int64
}

type AppConfig struct {
	LogLevel        string
	StoreBackend    string
	DuplicatePolicy string
}

// ColumnConfig holds the export headers of both ledgers
type ColumnConfig struct {
	Switch  domain.SwitchColumns
	Gateway domain.GatewayColumns
}

func Load() (*Config, error) {
	maxUploadMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "32"), 10, 64)
	if err != nil || maxUploadMB <= 0 {
		maxUploadMB = 32
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "recon_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			MaxUploadMB: maxUploadMB,
		},
		App: AppConfig{
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
			DuplicatePolicy: strings.ToLower(getEnv("DUPLICATE_POLICY", "report")),
		},
		Columns: loadColumns(),
	}

	if cfg.App.StoreBackend != StoreMemory && cfg.App.StoreBackend != StorePostgres {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: use %s or %s", cfg.App.StoreBackend, StoreMemory, StorePostgres)
	}

	return cfg, nil
}

func loadColumns() ColumnConfig {
	sw := domain.DefaultSwitchColumns()
	gw := domain.DefaultGatewayColumns()

	return ColumnConfig{
		Switch: domain.SwitchColumns{
			OccurredAt:    getEnv("SWITCH_COL_OCCURRED_AT", sw.OccurredAt),
			Status:        getEnv("SWITCH_COL_STATUS", sw.Status),
			Reference:     getEnv("SWITCH_COL_REFERENCE", sw.Reference),
			PaymentMethod: getEnv("SWITCH_COL_PAYMENT_METHOD", sw.PaymentMethod),
			Amount:        getEnv("SWITCH_COL_AMOUNT", sw.Amount),
		},
		Gateway: domain.GatewayColumns{
			TransactionID: getEnv("GATEWAY_COL_TRANSACTION_ID", gw.TransactionID),
			Credit:        getEnv("GATEWAY_COL_CREDIT", gw.Credit),
			RequestedAt:   getEnv("GATEWAY_COL_REQUESTED_AT", gw.RequestedAt),
			Result:        getEnv("GATEWAY_COL_RESULT", gw.Result),
		},
	}
}

// MaxUploadBytes is the request body limit for uploads
func (c *ServerConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
