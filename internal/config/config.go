package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned by Load when no Gemini credential is configured.
// The server must not start without it.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

type Config struct {
	Addr           string
	AllowedOrigins []string

	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	GenerateTimeout time.Duration
	StatusTimeout   time.Duration

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("addr", "")
	v.SetDefault("cors_allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,https://*.vercel.app")

	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("generate_timeout", "60s")
	v.SetDefault("status_timeout", "15s")

	v.SetDefault("db_host", "")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "")
}

// Load reads configuration from defaults, an optional config file at path
// and the process environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	generateTimeout, err := parseDuration(v, "generate_timeout")
	if err != nil {
		return nil, err
	}
	statusTimeout, err := parseDuration(v, "status_timeout")
	if err != nil {
		return nil, err
	}

	addr := strings.TrimSpace(v.GetString("addr"))
	if addr == "" {
		addr = ":" + strings.TrimSpace(v.GetString("port"))
	}

	// DB_PORT falls back to the postgres default on garbage
	port := v.GetInt("db_port")
	if port <= 0 {
		port = 5432
	}

	origins, err := originList(v.Get("cors_allowed_origins"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:           addr,
		AllowedOrigins: origins,

		GeminiAPIKey:    strings.TrimSpace(v.GetString("gemini_api_key")),
		GeminiModel:     strings.TrimSpace(v.GetString("gemini_model")),
		GeminiBaseURL:   strings.TrimRight(strings.TrimSpace(v.GetString("gemini_base_url")), "/"),
		GenerateTimeout: generateTimeout,
		StatusTimeout:   statusTimeout,

		DBHost:     v.GetString("db_host"),
		DBPort:     port,
		DBUser:     v.GetString("db_user"),
		DBPassword: v.GetString("db_password"),
		DBName:     v.GetString("db_name"),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return cfg, nil
}

// DatabaseConfigured reports whether enough DB_* settings are present
// to attempt a connection.
func (c *Config) DatabaseConfigured() bool {
	return c.DBHost != "" && c.DBName != ""
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToUpper(key), raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", strings.ToUpper(key), raw)
	}
	return d, nil
}

// originList accepts the comma string form (environment) and the list form
// (config files). An empty result is an error: rs/cors reads an empty
// allowlist as "any origin".
func originList(raw any) ([]string, error) {
	var out []string
	switch val := raw.(type) {
	case string:
		out = splitList(val)
	case []string:
		for _, o := range val {
			out = append(out, splitList(o)...)
		}
	case []any:
		for _, o := range val {
			str, ok := o.(string)
			if !ok {
				return nil, fmt.Errorf("invalid CORS_ALLOWED_ORIGINS entry %v: not a string", o)
			}
			out = append(out, splitList(str)...)
		}
	case nil:
	default:
		return nil, fmt.Errorf("invalid CORS_ALLOWED_ORIGINS: unsupported type %T", raw)
	}

	if len(out) == 0 {
		return nil, errors.New("CORS_ALLOWED_ORIGINS is empty")
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
