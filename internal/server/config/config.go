package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverRedis  = "redis"
)

// Config holds file-sharing server configuration
type Config struct {
	Server ServerConfig  `json:"server" yaml:"server"`
	Store  StoreConfig   `json:"store" yaml:"store"`
	Redis  RedisConfig   `json:"redis" yaml:"redis"`
	Cache  CacheConfig   `json:"cache" yaml:"cache"`
	Logger logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
	// BodyLimit caps the JSON upload body. Data URIs are ~4/3 of the file size.
	BodyLimit int64 `json:"body_limit" yaml:"body_limit"`
}

type StoreConfig struct {
	Driver string `json:"driver" yaml:"driver"` // "memory", "redis"
	Shards int    `json:"shards" yaml:"shards"`
}

type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`
}

type CacheConfig struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	Size       int  `json:"size" yaml:"size"`
	TTLSeconds int  `json:"ttl_seconds" yaml:"ttl_seconds"`
}

// TTL returns the cache entry lifetime with safe default.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds > 0 {
		return time.Duration(c.TTLSeconds) * time.Second
	}
	return 30 * time.Second
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8090",
			BodyLimit: 64 * 1024 * 1024, // 64MB
		},
		Store: StoreConfig{
			Driver: StoreDriverMemory,
			Shards: 16,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "fileshare:",
		},
		Cache: CacheConfig{
			Enabled:    false,
			Size:       1024,
			TTLSeconds: 30,
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
		// The logger is configured from this file, so fall back to the std logger.
		log.Printf("Config file not found or failed to parse, using defaults. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}
