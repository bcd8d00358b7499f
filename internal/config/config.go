package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Backend    `yaml:"backend"`
	RedisAddr  string        `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	CacheTTL   time.Duration `yaml:"cache_ttl" env:"CACHE_TTL" env-default:"60s"`
	Session    `yaml:"session"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

type Backend struct {
	BaseURL          string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-required:"true"`
	RequestTimeout   time.Duration `yaml:"request_timeout" env-default:"10s"`
	UploadTimeout    time.Duration `yaml:"upload_timeout" env-default:"30s"`
	PlaceholderImage string        `yaml:"placeholder_image" env-default:"https://placehold.co/600x400?text=Tutoring"`
}

type Session struct {
	Secret string `yaml:"secret" env:"SESSION_SECRET" env-required:"true"`
}

func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("Failed to read config from environment: %v", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	return &cfg
}
