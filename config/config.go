package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Input     InputConfig     `mapstructure:"input"`
	Output    OutputConfig    `mapstructure:"output"`
	Images    ImagesConfig    `mapstructure:"images"`
	Sheet     SheetConfig     `mapstructure:"sheet"`
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// InputConfig locates the vendor export
type InputConfig struct {
	Path string `mapstructure:"path"`
}

// OutputConfig locates the catalog document
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// ImagesConfig locates the shared image tree
type ImagesConfig struct {
	Root         string        `mapstructure:"root"`
	AssetRoot    string        `mapstructure:"asset_root"`
	ThumbnailDir string        `mapstructure:"thumbnail_dir"`
	Extensions   []string      `mapstructure:"extensions"`
	CanonicalExt string        `mapstructure:"canonical_ext"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// SheetConfig describes the layout of the vendor export
type SheetConfig struct {
	HeaderMarkers    []string      `mapstructure:"header_markers"`
	MaxScanLines     int           `mapstructure:"max_scan_lines"`
	MinColumns       int           `mapstructure:"min_columns"`
	FallbackCategory string        `mapstructure:"fallback_category"`
	Brand            string        `mapstructure:"brand"`
	Columns          ColumnsConfig `mapstructure:"columns"`
}

// ColumnsConfig holds zero-based column positions
type ColumnsConfig struct {
	Label        int   `mapstructure:"label"`
	SectionBlank []int `mapstructure:"section_blank"`
	SKU          int   `mapstructure:"sku"`
	CaseQty      int   `mapstructure:"case_qty"`
	Name         int   `mapstructure:"name"`
	UPC          int   `mapstructure:"upc"`
	AuthPrice    int   `mapstructure:"auth_price"`
	AuthPlus     int   `mapstructure:"auth_plus"`
	MAP          int   `mapstructure:"map"`
	MSRP         int   `mapstructure:"msrp"`
	Brand        int   `mapstructure:"brand"` // -1 disables per-row brand
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig limits how often a run can be triggered over HTTP
type RateLimitConfig struct {
	IngestPerMinute int `mapstructure:"ingest_per_minute"`
	IngestBurst     int `mapstructure:"ingest_burst"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load loads configuration from the default search paths
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from .env, environment variables and a config
// file. An empty file searches config.yaml in the usual places.
func LoadFile(file string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/catalog/")
	}

	// Environment variable settings, e.g. CATALOG_INPUT_PATH
	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env without overriding variables already set
func loadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("input.path", "data/vendor-order-form.csv")
	v.SetDefault("output.path", "Data/optics-data.json")

	v.SetDefault("images.root", "images")
	v.SetDefault("images.asset_root", "PERFORMANCE GEAR")
	v.SetDefault("images.thumbnail_dir", "thumbnails")
	v.SetDefault("images.extensions", []string{".jpg", ".jpeg", ".png"})
	v.SetDefault("images.canonical_ext", ".webp")
	v.SetDefault("images.cache_ttl", "10m")

	v.SetDefault("sheet.header_markers", []string{"CATEGORY / SKU", "ITEM DESCRIPTION"})
	v.SetDefault("sheet.max_scan_lines", 1000)
	v.SetDefault("sheet.min_columns", 15)
	v.SetDefault("sheet.fallback_category", "Optics")
	v.SetDefault("sheet.brand", "NcSTAR")
	v.SetDefault("sheet.columns.label", 2)
	v.SetDefault("sheet.columns.section_blank", []int{3, 4})
	v.SetDefault("sheet.columns.sku", 2)
	v.SetDefault("sheet.columns.case_qty", 3)
	v.SetDefault("sheet.columns.name", 4)
	v.SetDefault("sheet.columns.upc", 7)
	v.SetDefault("sheet.columns.auth_price", 9)
	v.SetDefault("sheet.columns.auth_plus", 10)
	v.SetDefault("sheet.columns.map", 13)
	v.SetDefault("sheet.columns.msrp", 14)
	v.SetDefault("sheet.columns.brand", -1)

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*", "http://127.0.0.1:*"})

	v.SetDefault("ratelimit.ingest_per_minute", 6)
	v.SetDefault("ratelimit.ingest_burst", 2)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	if strings.TrimSpace(config.Input.Path) == "" {
		return fmt.Errorf("input path is required (set CATALOG_INPUT_PATH)")
	}
	if strings.TrimSpace(config.Output.Path) == "" {
		return fmt.Errorf("output path is required (set CATALOG_OUTPUT_PATH)")
	}

	if config.Images.AssetRoot == "" || config.Images.ThumbnailDir == "" {
		return fmt.Errorf("image asset_root and thumbnail_dir are required")
	}
	if !strings.HasPrefix(config.Images.CanonicalExt, ".") {
		return fmt.Errorf("images canonical_ext must start with '.', got: %q", config.Images.CanonicalExt)
	}

	if len(config.Sheet.HeaderMarkers) == 0 {
		return fmt.Errorf("at least one sheet header marker is required")
	}
	for _, m := range config.Sheet.HeaderMarkers {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("sheet header markers must not be blank")
		}
	}
	if config.Sheet.MaxScanLines <= 0 {
		return fmt.Errorf("sheet max_scan_lines must be positive, got: %d", config.Sheet.MaxScanLines)
	}
	if need := config.Sheet.Columns.highest() + 1; config.Sheet.MinColumns < need {
		return fmt.Errorf("sheet min_columns must be at least %d to cover every configured column, got: %d", need, config.Sheet.MinColumns)
	}

	switch config.Server.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("server environment must be 'development', 'production' or 'test', got: %s", config.Server.Environment)
	}

	if config.RateLimit.IngestPerMinute <= 0 || config.RateLimit.IngestBurst <= 0 {
		return fmt.Errorf("ratelimit ingest_per_minute and ingest_burst must be positive")
	}

	return nil
}

// highest returns the largest column index a product row must provide.
// The optional brand column is excluded; short rows just keep the constant brand.
func (c ColumnsConfig) highest() int {
	cols := append([]int{c.Label, c.SKU, c.CaseQty, c.Name, c.UPC, c.AuthPrice, c.AuthPlus, c.MAP, c.MSRP}, c.SectionBlank...)
	max := 0
	for _, col := range cols {
		if col > max {
			max = col
		}
	}
	return max
}
