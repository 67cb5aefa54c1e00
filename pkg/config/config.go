package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Search   SearchConfig   `mapstructure:"search"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type OpenAIConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	EmbeddingModel string        `mapstructure:"embedding_model"`
	ChatModel      string        `mapstructure:"chat_model"`
	MaxBatchSize   int           `mapstructure:"max_batch_size"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// SearchConfig holds the semantic search defaults. Both values are product
// choices, overridable per request.
type SearchConfig struct {
	TopK      int     `mapstructure:"top_k"`
	Threshold float64 `mapstructure:"threshold"`
}

type DatasetConfig struct {
	PageSize int `mapstructure:"page_size"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var globalConfig Config

func Load(configPath string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No file is fine; environment variables cover everything.
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaultValues()

	return nil
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8000
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.OpenAI.EmbeddingModel == "" {
		globalConfig.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}
	if globalConfig.OpenAI.ChatModel == "" {
		globalConfig.OpenAI.ChatModel = "gpt-4o"
	}
	if globalConfig.OpenAI.MaxBatchSize == 0 {
		globalConfig.OpenAI.MaxBatchSize = 2048
	}
	if globalConfig.OpenAI.RequestTimeout == 0 {
		globalConfig.OpenAI.RequestTimeout = 30 * time.Second
	}
	if globalConfig.Search.TopK == 0 {
		globalConfig.Search.TopK = 5
	}
	if globalConfig.Search.Threshold == 0 {
		globalConfig.Search.Threshold = 0.7
	}
	if globalConfig.Dataset.PageSize == 0 {
		globalConfig.Dataset.PageSize = 1000
	}
}

func GetConfig() *Config {
	return &globalConfig
}
