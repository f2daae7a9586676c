package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	NamePolicyOriginal  = "original"
	NamePolicySnowflake = "snowflake"
)

// Config holds Upload Server configuration
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	App     AppConfig     `json:"app" yaml:"app"`
	Redis   RedisConfig   `json:"redis" yaml:"redis"`
	Logger  logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr       string `json:"addr" yaml:"addr"`
	UploadPath string `json:"upload_path" yaml:"upload_path"`
	BodyLimit  int64  `json:"body_limit" yaml:"body_limit"`
}

type StorageConfig struct {
	Root       string `json:"root" yaml:"root"`
	NamePolicy string `json:"name_policy" yaml:"name_policy"` // "original", "snowflake"
}

type AppConfig struct {
	NodeID int64 `json:"node_id" yaml:"node_id"`
}

// RedisConfig is only used as a shared clock by the snowflake name policy.
// An empty Addr selects the local system clock.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       ":8090",
			UploadPath: "/api/upload",
			BodyLimit:  512 * 1024 * 1024, // 512MB
		},
		Storage: StorageConfig{
			Root:       filepath.Join("public", "uploads"),
			NamePolicy: NamePolicyOriginal,
		},
		App: AppConfig{
			NodeID: 1,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "server", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		// The logger is configured from this file, so report through the standard log.
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
