// Package config loads settings from a .env file, the environment and
// command line flags, in increasing order of precedence.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

// DSN builds the lib/pq connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

type Config struct {
	Addr string

	Backend    string
	BackendURL string
	BackendKey string
	Postgres   Postgres

	LogLevel  string
	LogFormat string
	LogFile   string

	// RateLimit is the number of form posts allowed per second and client.
	RateLimit float64

	// VoteMemoryPath is where the terminal client keeps its voted markers.
	VoteMemoryPath string

	// Args holds the arguments left after the flags.
	Args []string
}

// Load reads the configuration of the program called name. A missing .env
// file is not an error.
func Load(name string, args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "addr", getenv("ADDR", "0.0.0.0:8080"), "HTTP listen address")
	fs.StringVar(&cfg.Backend, "backend", getenv("BACKEND", BackendREST), "Data backend (rest or postgres)")
	fs.StringVar(&cfg.BackendURL, "backend-url", os.Getenv("BACKEND_URL"), "Hosted backend base URL")
	fs.StringVar(&cfg.BackendKey, "backend-key", os.Getenv("BACKEND_ANON_KEY"), "Hosted backend anonymous key")

	fs.StringVar(&cfg.Postgres.Host, "db-host", getenv("POSTGRES_HOST", "localhost"), "Database host")
	fs.StringVar(&cfg.Postgres.Port, "db-port", getenv("POSTGRES_PORT", "5432"), "Database port")
	fs.StringVar(&cfg.Postgres.User, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	fs.StringVar(&cfg.Postgres.Password, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	fs.StringVar(&cfg.Postgres.DB, "db-name", os.Getenv("POSTGRES_DB"), "Database name")

	fs.StringVar(&cfg.LogLevel, "log-level", getenv("LOG_LEVEL", "info"), "Log level")
	fs.StringVar(&cfg.LogFormat, "log-format", getenv("LOG_FORMAT", "text"), "Log format (text or json)")
	fs.StringVar(&cfg.LogFile, "log-file", os.Getenv("LOG_FILE"), "Also write logs to this rotated file")

	rateLimit, err := getfloat("RATE_LIMIT", 2)
	if err != nil {
		return Config{}, err
	}
	fs.Float64Var(&cfg.RateLimit, "rate-limit", rateLimit, "Form posts per second per client")

	fs.StringVar(&cfg.VoteMemoryPath, "vote-memory", getenv("VOTE_MEMORY_PATH", defaultVoteMemoryPath()), "Voted markers file")

	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "invalid flags")
	}
	cfg.Args = fs.Args()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendREST:
		if c.BackendURL == "" {
			return errors.New("backend URL required (use -backend-url or BACKEND_URL)")
		}
		if c.BackendKey == "" {
			return errors.New("backend key required (use -backend-key or BACKEND_ANON_KEY)")
		}
	case BackendPostgres:
		if c.Postgres.User == "" || c.Postgres.DB == "" {
			return errors.New("postgres user and database required (POSTGRES_USER, POSTGRES_DB)")
		}
	default:
		return errors.Errorf("unknown backend %q", c.Backend)
	}

	if c.RateLimit <= 0 {
		return errors.New("rate limit must be positive")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getfloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Errorf("invalid %s env variable", key)
	}
	return f, nil
}

func defaultVoteMemoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pollboard-votes.db"
	}
	return filepath.Join(dir, "pollboard", "votes.db")
}
