package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		Storage    `yaml:"storage"`
		PG         `yaml:"postgres"`
		SQLite     `yaml:"sqlite"`
		HTTP       `yaml:"http"`
		GRPC       `yaml:"grpc"`
		Prometheus `yaml:"prometheus"`
		Kafka      `yaml:"kafka"`
		Source     `yaml:"source"`
		Report     `yaml:"report"`
		Session    `yaml:"session"`
		Cache      `yaml:"cache"`
	}

	App struct {
		Name    string `yaml:"name" env:"APP_NAME" env-default:"logkeeper"`
		Version string `yaml:"version" env:"APP_VERSION" env-default:"dev"`
	}

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	}

	Storage struct {
		Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	}

	PG struct {
		MaxPoolSize    int    `yaml:"max_pool_size" env:"MAX_POOL_SIZE" env-default:"4"`
		URL            string `env:"PG_URL"`
		MigrationsPath string `yaml:"migrations_path" env:"PG_MIGRATIONS_PATH" env-default:"migrations"`
	}

	SQLite struct {
		Path string `yaml:"path" env:"SQLITE_PATH" env-default:"logkeeper.db"`
	}

	HTTP struct {
		Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	}

	GRPC struct {
		Port string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
	}

	Prometheus struct {
		Port string `yaml:"port" env:"PROMETHEUS_PORT" env-default:"9090"`
	}

	Kafka struct {
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"access-log-ingests"`
	}

	Source struct {
		Dir string `yaml:"dir" env:"SOURCE_DIR" env-default:"logs"`
		Ext string `yaml:"ext" env:"SOURCE_EXT" env-default:".log"`
	}

	Report struct {
		Format string `yaml:"format" env:"REPORT_FORMAT" env-default:"%h %l %u %t \"%r\" %>s %b"`
	}

	Session struct {
		Path string `yaml:"path" env:"SESSION_PATH" env-default:".logkeeper-session.json"`
	}

	Cache struct {
		UserTTL time.Duration `yaml:"user_ttl" env:"CACHE_USER_TTL" env-default:"5m"`
	}
)

const (
	envPath           = "infra/.env"
	defaultConfigPath = "infra/config.yaml"
)

// New loads infra/.env when present, then the yaml config (APP_CONFIG_PATH
// or infra/config.yaml), then environment overrides. A missing yaml file is
// not an error: defaults and the environment are used.
func New() (*Config, error) {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errorsUtils.WrapPathErr(err)
	}

	pathToConfig, ok := os.LookupEnv("APP_CONFIG_PATH")
	if !ok || pathToConfig == "" {
		log.WithField("env_var", "APP_CONFIG_PATH").
			Debug("Config path is not set, using default")
		pathToConfig = defaultConfigPath
	}

	return Load(pathToConfig)
}

func Load(pathToConfig string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(pathToConfig); err == nil {
		if err := cleanenv.ReadConfig(pathToConfig, cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}

var (
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrMissingPGURL  = errors.New("postgres driver requires PG_URL")
)

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.PG.URL == "" {
			return ErrMissingPGURL
		}
	default:
		return ErrUnknownDriver
	}
	return nil
}
