// backend-go/internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Data      DataConfig
	Inventory InventoryConfig
	Sales     SalesConfig
	Export    ExportConfig
	Cache     CacheConfig
	Storage   StorageConfig
	Drive     DriveConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type DataConfig struct {
	BaseDir     string
	ProjectRoot string
	ExtraDirs   []string
}

type InventoryConfig struct {
	Delimiter    rune
	ProductsFile string
	StockFile    string
}

type SalesConfig struct {
	Delimiter    rune
	SalesFile    string
	ProductsFile string
}

type ExportConfig struct {
	Dir string
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Prefix    string
	UseSSL    bool
}

type DriveConfig struct {
	CredentialsJSON string
	FolderID        string
}

// Load reads .env and the environment. Every call builds a fresh Config.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	invDelim, err := source.ParseDelimiter(v.GetString("INVENTORY_DELIMITER"))
	if err != nil {
		return nil, fmt.Errorf("INVENTORY_DELIMITER: %w", err)
	}
	salesDelim, err := source.ParseDelimiter(v.GetString("SALES_DELIMITER"))
	if err != nil {
		return nil, fmt.Errorf("SALES_DELIMITER: %w", err)
	}

	projectRoot := v.GetString("DATA_PROJECT_ROOT")
	if projectRoot == "" {
		projectRoot, _ = os.Getwd()
	}

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: splitList(v.GetString("SERVER_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Data: DataConfig{
			BaseDir:     v.GetString("DATA_BASE_DIR"),
			ProjectRoot: projectRoot,
			ExtraDirs:   splitList(v.GetString("DATA_EXTRA_DIRS")),
		},
		Inventory: InventoryConfig{
			Delimiter:    invDelim,
			ProductsFile: v.GetString("INVENTORY_PRODUCTS_FILE"),
			StockFile:    v.GetString("INVENTORY_STOCK_FILE"),
		},
		Sales: SalesConfig{
			Delimiter:    salesDelim,
			SalesFile:    v.GetString("SALES_FILE"),
			ProductsFile: v.GetString("SALES_PRODUCTS_FILE"),
		},
		Export: ExportConfig{
			Dir: v.GetString("EXPORT_DIR"),
		},
		Cache: CacheConfig{
			Enabled:             v.GetBool("CACHE_ENABLED"),
			RedisURL:            v.GetString("REDIS_URL"),
			RedisHost:           v.GetString("REDIS_HOST"),
			RedisPort:           v.GetString("REDIS_PORT"),
			RedisPassword:       v.GetString("REDIS_PASSWORD"),
			RedisDB:             v.GetInt("REDIS_DB"),
			DashboardTTLSeconds: v.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("STORAGE_ENABLED"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			Prefix:    v.GetString("STORAGE_PREFIX"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
		},
		Drive: DriveConfig{
			CredentialsJSON: v.GetString("GOOGLE_DRIVE_CREDENTIALS_JSON"),
			FolderID:        v.GetString("GOOGLE_DRIVE_FOLDER_ID"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("DATA_BASE_DIR", "data")
	v.SetDefault("DATA_PROJECT_ROOT", "")
	v.SetDefault("DATA_EXTRA_DIRS", "")
	v.SetDefault("INVENTORY_DELIMITER", ",")
	v.SetDefault("INVENTORY_PRODUCTS_FILE", "FCD_PRODUTOS.csv")
	v.SetDefault("INVENTORY_STOCK_FILE", "FCD_ESTOQUE.csv")
	v.SetDefault("SALES_DELIMITER", ";")
	v.SetDefault("SALES_FILE", "FCD_vendas.csv")
	v.SetDefault("SALES_PRODUCTS_FILE", "FCD_produtos.csv")
	v.SetDefault("EXPORT_DIR", "./data/exports")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)
	v.SetDefault("STORAGE_ENABLED", false)
	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_PREFIX", "exports")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("GOOGLE_DRIVE_CREDENTIALS_JSON", "")
	v.SetDefault("GOOGLE_DRIVE_FOLDER_ID", "")
}

// splitList splits a comma separated value, dropping empty entries
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
