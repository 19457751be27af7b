package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	Storage    Storage    `yaml:"storage"`
	Cache      Cache      `yaml:"cache"`
	Media      Media      `yaml:"media"`
	HTTPServer HTTPServer `yaml:"http_server"`
}

type Storage struct {
	// Type selects the backing store: "mongo" or "memory".
	Type  string `yaml:"type" env:"STORAGE_TYPE" env-default:"memory"`
	Mongo Mongo  `yaml:"mongo"`
}

type Mongo struct {
	URI      string        `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://127.0.0.1:27017"`
	Database string        `yaml:"database" env:"MONGO_DATABASE" env-default:"event_management"`
	Timeout  time.Duration `yaml:"timeout" env-default:"5s"`
}

type Cache struct {
	// RedisAddr enables the GET response cache when non-empty.
	RedisAddr string        `yaml:"redis_addr" env:"REDIS_ADDR" env-default:""`
	TTL       time.Duration `yaml:"ttl" env-default:"30s"`
}

type Media struct {
	MaxImageBytes int `yaml:"max_image_bytes" env-default:"10485760"`
	MaxVideoBytes int `yaml:"max_video_bytes" env-default:"104857600"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8082"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimit   RateLimit     `yaml:"rate_limit"`
}

type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"50"`
	Burst int     `yaml:"burst" env-default:"100"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("config path is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}

// fetchConfigPath fetches the config path from the command line flag or the
// CONFIG_PATH environment variable. The flag takes priority.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
