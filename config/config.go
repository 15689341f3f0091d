// Ininicializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	App    AppConfig    `mapstructure:"app"`
	Worker WorkerConfig `mapstructure:"worker"`
	Broker BrokerConfig `mapstructure:"broker"`
}

type ServerConfig struct {
	AppVersion   string `json:"appVersion"`
	Host         string `json:"host" validate:"required"`
	Port         string `json:"port" validate:"required"`
	Timeout      time.Duration
	Idle_timeout time.Duration
	Env          string `json:"environment"`
	Mode         string `mapstructure:"mode"`
}

type AppConfig struct {
	DefaultColumn  string        `mapstructure:"default_column"`
	DefaultQuality int           `mapstructure:"default_quality"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	MaxWorkers     int           `mapstructure:"max_workers"`
	StorageDir     string        `mapstructure:"storage_dir"`
}

type WorkerConfig struct {
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type BrokerConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
	Enabled bool   `mapstructure:"enabled"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.appVersion", "1.0.0")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.mode", "debug")

	// App defaults
	v.SetDefault("app.default_column", "1000image")
	v.SetDefault("app.default_quality", 80)
	v.SetDefault("app.token_ttl", 15*time.Minute)
	v.SetDefault("app.fetch_timeout", 10*time.Second)
	v.SetDefault("app.max_workers", 4)
	v.SetDefault("app.storage_dir", "./storage")

	// Worker defaults
	v.SetDefault("worker.cleanup_interval", time.Minute)

	// Broker defaults
	v.SetDefault("broker.brokers", GetEnv("KAFKA_BROKERS", "localhost:9094"))
	v.SetDefault("broker.topic", "image-batches")
	v.SetDefault("broker.enabled", false)
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
