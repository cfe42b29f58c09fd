package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "BLOG_"

type Config struct {
	Addr        string
	DiagAddr    string
	Routes      bool
	DBDriver    string
	DSN         string
	LogLevel    string
	RequireAuth bool
}

// Load reads configuration from args, falling back to BLOG_* environment
// variables and then to defaults. A .env file in the working directory is
// loaded first if present; it never overrides variables already set.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config

	flags := flag.NewFlagSet("blog", flag.ContinueOnError)
	flags.BoolVar(&cfg.Routes, "routes", getEnvBool("ROUTES", false), "Generate router documentation")
	flags.StringVar(&cfg.Addr, "addr", getEnv("ADDR", ":3333"), "application port")
	flags.StringVar(&cfg.DiagAddr, "diag_addr", getEnv("DIAG_ADDR", ":9999"), "diag port")
	flags.StringVar(&cfg.DBDriver, "db_driver", getEnv("DB_DRIVER", "sqlite"), "database driver: postgres or sqlite")
	flags.StringVar(&cfg.DSN, "dsn", getEnv("DSN", "blog.db"), "database connection string")
	flags.StringVar(&cfg.LogLevel, "log_level", getEnv("LOG_LEVEL", "info"), "log level: debug or info")
	flags.BoolVar(&cfg.RequireAuth, "require_auth", getEnvBool("REQUIRE_AUTH", false), "require basic auth on /api/articles")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		return v
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return b
}
