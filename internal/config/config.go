package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"
)

const (
	EnvProduction = "production"

	defaultAddr       = ":3000"
	defaultESIBaseURL = "https://api.esi.bz"
	defaultSSLMode    = "prefer"
)

var errDatabaseIncomplete = errors.New("DB env vars are not fully set")

type Config struct {
	Env      string   `yaml:"env"`
	HTTP     HTTP     `yaml:"http"`
	Auth     Auth     `yaml:"auth"`
	Database Database `yaml:"database"`
	ESI      ESI      `yaml:"esi"`
	Redis    Redis    `yaml:"redis"`
	Log      Log      `yaml:"log"`
}

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Auth struct {
	Secret string `yaml:"secret"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type ESI struct {
	BaseURL  string        `yaml:"base_url"`
	Token    string        `yaml:"token"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Load reads the optional YAML file at path and overlays the process
// environment on top of it. It is called once at startup.
func Load(path string) (*Config, error) {
	cfg := &Config{
		HTTP: HTTP{Addr: defaultAddr},
		ESI:  ESI{BaseURL: defaultESIBaseURL},
		Database: Database{
			SSLMode: defaultSSLMode,
		},
	}

	if path != "" {
		if err := readFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

// DatabaseURL builds the pgx connection string. The password is stored
// URL-encoded in the environment.
func (c *Config) DatabaseURL() (string, error) {
	db := c.Database
	if db.Host == "" || db.Port == "" || db.Name == "" || db.User == "" || db.Password == "" {
		return "", errDatabaseIncomplete
	}

	password, err := url.PathUnescape(db.Password)
	if err != nil {
		return "", fmt.Errorf("decode DB_PASSWORD: %w", err)
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.User, password),
		Host:   net.JoinHostPort(db.Host, db.Port),
		Path:   "/" + db.Name,
	}
	if db.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {db.SSLMode}}.Encode()
	}

	return u.String(), nil
}
