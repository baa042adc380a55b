package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type RedisConfig struct {
	Addr         string `yaml:"addr" env:"REDIS_ADDR"`
	Password     string `yaml:"password" env:"REDIS_PASSWORD"`
	DB           int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	AllowlistKey string `yaml:"allowlist_key" env:"REDIS_ALLOWLIST_KEY" env-default:"orderbot:allowed_chats"`
}

type FulfillmentConfig struct {
	Bin    string `yaml:"bin" env:"FULFILLMENT_BIN" env-default:"node"`
	Script string `yaml:"script" env:"FULFILLMENT_SCRIPT" env-default:"pizza-ordering/app.js"`
}

type AppConfig struct {
	ApiID       int32  `yaml:"api_id" env:"TELEGRAM_API_ID"`
	ApiHash     string `yaml:"api_hash" env:"TELEGRAM_API_HASH"`
	Env         string `yaml:"env" env:"APP_ENV" env-default:"dev"`
	BaseDir     string `yaml:"base_dir" env:"BASE_DIR"`
	Session     string `yaml:"session" env:"SESSION_NAME"`
	CatalogPath string `yaml:"catalog_path" env:"CATALOG_PATH"`

	Redis       RedisConfig       `yaml:"redis"`
	Fulfillment FulfillmentConfig `yaml:"fulfillment"`

	// AuthMode поднять TDLib интерактивно для первичной авторизации и выйти
	AuthMode bool `yaml:"-"`
}

// Load читает настройки: yaml из -config или CONFIG_PATH, поверх переменные окружения.
func Load() (*AppConfig, error) {
	path, auth := fetchFlags()
	cfg, err := LoadPath(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфига: %w", err)
	}
	cfg.AuthMode = auth
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPath без пути читает только окружение. Валидацию делает вызывающий.
func LoadPath(path string) (*AppConfig, error) {
	var cfg AppConfig
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	} else {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	if c.ApiID == 0 || c.ApiHash == "" || c.BaseDir == "" || c.Session == "" {
		return fmt.Errorf("TELEGRAM_API_ID, TELEGRAM_API_HASH, BASE_DIR, SESSION_NAME должны быть заданы")
	}
	if c.CatalogPath == "" && !c.AuthMode {
		return fmt.Errorf("CATALOG_PATH должен быть задан")
	}
	return nil
}

// fetchFlags fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchFlags() (string, bool) {
	var res string
	var auth bool

	flag.StringVar(&res, "config", "", "path to config file")
	flag.BoolVar(&auth, "auth", false, "authorize TDLib session interactively and exit")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res, auth
}
