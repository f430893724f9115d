package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAgentURL       = "http://127.0.0.1:8000"
	DefaultRequestTimeout = 90
	DefaultLogMaxFiles    = 5
)

// Config is the client configuration. Values are layered: defaults, then an
// optional YAML file, then VOICE_AGENT_* environment variables, then flags.
type Config struct {
	Agent   AgentConfig   `yaml:"agent"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type AgentConfig struct {
	URL            string `yaml:"url"`
	RequestTimeout int    `yaml:"request_timeout"` // seconds, 0 disables the client limit
	ResetOnStart   bool   `yaml:"reset_on_start"`
	SessionID      string `yaml:"session_id"`
}

type UIConfig struct {
	AltScreen bool `yaml:"alt_screen"`
	Mouse     bool `yaml:"mouse"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Dir      string `yaml:"dir"`
	MaxFiles int    `yaml:"max_files"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func Default() Config {
	return Config{
		Agent: AgentConfig{
			URL:            DefaultAgentURL,
			RequestTimeout: DefaultRequestTimeout,
			ResetOnStart:   true,
		},
		UI: UIConfig{
			AltScreen: true,
			Mouse:     true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			MaxFiles: DefaultLogMaxFiles,
		},
	}
}

func (a AgentConfig) Timeout() time.Duration {
	return time.Duration(a.RequestTimeout) * time.Second
}

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped; existing variables are never overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func ApplyEnv(cfg *Config) {
	cfg.Agent.URL = EnvOr("VOICE_AGENT_URL", cfg.Agent.URL)
	cfg.Agent.RequestTimeout = EnvOrInt("VOICE_AGENT_REQUEST_TIMEOUT", cfg.Agent.RequestTimeout)
	cfg.Agent.ResetOnStart = EnvOrBool("VOICE_AGENT_RESET_ON_START", cfg.Agent.ResetOnStart)
	cfg.Agent.SessionID = EnvOr("VOICE_AGENT_SESSION_ID", cfg.Agent.SessionID)
	cfg.UI.AltScreen = EnvOrBool("VOICE_AGENT_ALT_SCREEN", cfg.UI.AltScreen)
	cfg.UI.Mouse = EnvOrBool("VOICE_AGENT_MOUSE", cfg.UI.Mouse)
	cfg.Logging.Level = EnvOr("VOICE_AGENT_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Dir = EnvOr("VOICE_AGENT_LOG_DIR", cfg.Logging.Dir)
	cfg.Logging.MaxFiles = EnvOrInt("VOICE_AGENT_LOG_MAX_FILES", cfg.Logging.MaxFiles)
	cfg.Metrics.Addr = EnvOr("VOICE_AGENT_METRICS_ADDR", cfg.Metrics.Addr)
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Agent),
		validation.Field(&c.Logging),
	)
}

func (a AgentConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.URL, validation.Required, is.RequestURL, validation.By(httpScheme)),
		validation.Field(&a.RequestTimeout, validation.Min(0), validation.Max(600)),
	)
}

func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.MaxFiles, validation.Min(1)),
	)
}

func httpScheme(value any) error {
	raw, _ := value.(string)
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("must use http or https")
	}
	return nil
}

func EnvOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func EnvOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func EnvOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if value == "" {
		return fallback
	}
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
