package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all service settings, populated from environment variables
// and, when CONFIG_FILE is set, a YAML file.
type Config struct {
	AppEnv          string        `yaml:"app_env" env:"APP_ENV" env-default:"development"`
	HTTPAddr        string        `yaml:"http_addr" env:"HTTP_ADDR" env-default:"0.0.0.0:8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	PageSize        int           `yaml:"page_size" env:"PAGE_SIZE" env-default:"10"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:","`

	DB   DBConfig   `yaml:"db"`
	Log  LogConfig  `yaml:"log"`
	Auth AuthConfig `yaml:"auth"`
}

type DBConfig struct {
	Driver     string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	Host       string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port       string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User       string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password   string `yaml:"password" env:"DB_PASSWORD" env-default:"password"`
	Name       string `yaml:"name" env:"DB_NAME" env-default:"fire"`
	SSLMode    string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	SQLitePath string `yaml:"sqlite_path" env:"DB_SQLITE_PATH" env-default:"fire.db"`
}

type LogConfig struct {
	Level         string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format        string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	File          string `yaml:"file" env:"LOG_FILE" env-default:"./logs/app.log"`
	AccessLogFile string `yaml:"access_log_file" env:"ACCESS_LOG_FILE" env-default:"./logs/access.log"`
}

type AuthConfig struct {
	Required   bool          `yaml:"required" env:"AUTH_REQUIRED" env-default:"true"`
	JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"JWT_TTL" env-default:"72h"`
	LoginRPS   float64       `yaml:"login_rps" env:"LOGIN_RPS" env-default:"0.5"`
	LoginBurst int           `yaml:"login_burst" env:"LOGIN_BURST" env-default:"5"`
}

// Load reads .env (if present), then CONFIG_FILE or the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, relying on env vars")
	}

	var cfg Config
	var err error
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.PageSize <= 0 {
		return errors.New("PAGE_SIZE must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Auth.Required && c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when AUTH_REQUIRED is true")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
