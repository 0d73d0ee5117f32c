package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Config holds configuration shared by the API service and the worker.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	App      AppConfig      `json:"app" yaml:"app"`
	Postgres PostgresConfig `json:"postgres" yaml:"postgres"`
	Redis    RedisConfig    `json:"redis" yaml:"redis"`
	Storage  StorageConfig  `json:"storage" yaml:"storage"`
	Auth     AuthConfig     `json:"auth" yaml:"auth"`
	Worker   WorkerConfig   `json:"worker" yaml:"worker"`
	Logger   logger.Config  `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type AppConfig struct {
	NodeID      int64 `json:"node_id" yaml:"node_id"`
	MaxBodySize int   `json:"max_body_size" yaml:"max_body_size"`
}

type PostgresConfig struct {
	DSN string `json:"dsn" yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

type StorageConfig struct {
	// FolderPath is the blob store root directory, created on demand.
	FolderPath string `json:"folder_path" yaml:"folder_path"`
}

type AuthConfig struct {
	TokenTTLSeconds int `json:"token_ttl_seconds" yaml:"token_ttl_seconds"`
}

type WorkerConfig struct {
	Stream       string `json:"stream" yaml:"stream"`
	Group        string `json:"group" yaml:"group"`
	Consumer     string `json:"consumer" yaml:"consumer"`
	BlockMS      int    `json:"block_ms" yaml:"block_ms"`
	ClaimIdleSec int    `json:"claim_idle_sec" yaml:"claim_idle_sec"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	host, _ := os.Hostname()
	return &Config{
		Server: ServerConfig{
			Addr: ":5000",
		},
		App: AppConfig{
			NodeID:      1,
			MaxBodySize: 50 * 1024 * 1024, // 50MB, matches the JSON body limit
		},
		Postgres: PostgresConfig{
			DSN: "host=localhost user=postgres password=postgres dbname=files_manager port=5432 sslmode=disable",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Storage: StorageConfig{
			FolderPath: "/tmp/files_manager",
		},
		Auth: AuthConfig{
			TokenTTLSeconds: 86400,
		},
		Worker: WorkerConfig{
			Stream:       "fileQueue",
			Group:        "thumbnail-workers",
			Consumer:     host,
			BlockMS:      5000,
			ClaimIdleSec: 60,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file, falling back to defaults when no
// explicit path was given.
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("configs", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, path: %s, error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
