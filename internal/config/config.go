package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	llmclient "neuropath/internal/llmClient"
)

type Config struct {
	Provider   ProviderConfig   `yaml:"provider"`
	Models     llmclient.Models `yaml:"models"`
	Generation GenerationConfig `yaml:"generation"`
	Speech     SpeechConfig     `yaml:"speech"`
	Export     ExportConfig     `yaml:"export"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

type ProviderConfig struct {
	Backend  string        `yaml:"backend"`
	APIKey   string        `yaml:"api_key"`
	Project  string        `yaml:"project"`
	Location string        `yaml:"location"`
	Timeout  time.Duration `yaml:"timeout"`
	RPS      float64       `yaml:"rps"`
	Burst    int           `yaml:"burst"`
	// Offline serves canned replies instead of calling the provider.
	Offline bool `yaml:"offline"`
}

type GenerationConfig struct {
	AdaptTemperature float32 `yaml:"adapt_temperature"`
	AdaptTopP        float32 `yaml:"adapt_top_p"`
	ChatTemperature  float32 `yaml:"chat_temperature"`
}

type SpeechConfig struct {
	Voice         string `yaml:"voice"`
	PlayerCommand string `yaml:"player_command"`
	CacheSize     int    `yaml:"cache_size"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

type IngestConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type MetricsConfig struct {
	// Address enables the scrape endpoint when non-empty, e.g. "127.0.0.1:9464".
	Address string `yaml:"address"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Provider: ProviderConfig{
			Backend: string(llmclient.BackendGeminiAPI),
			Timeout: 2 * time.Minute,
			RPS:     2,
			Burst:   2,
		},
		Models: llmclient.Models{}.WithDefaults(),
		Generation: GenerationConfig{
			AdaptTemperature: 0.7,
			AdaptTopP:        0.95,
			ChatTemperature:  0.7,
		},
		Speech: SpeechConfig{
			Voice:         llmclient.DefaultVoice,
			PlayerCommand: "ffplay -autoexit -nodisp -loglevel quiet",
			CacheSize:     16,
		},
		Export:  ExportConfig{Dir: "."},
		Ingest:  IngestConfig{MaxBytes: 20 << 20},
		Logging: LoggingConfig{Level: "info", Format: "text", File: "neuropath.log"},
	}
}

// Load reads .env, then the optional YAML file at path (or NEUROPATH_CONFIG),
// then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	path = firstNonEmpty(strings.TrimSpace(path), strings.TrimSpace(os.Getenv("NEUROPATH_CONFIG")))
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.Models = cfg.Models.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	p := &cfg.Provider
	p.APIKey = firstNonEmpty(env("GEMINI_API_KEY"), env("GOOGLE_API_KEY"), env("API_KEY"), p.APIKey)
	p.Backend = firstNonEmpty(env("NEUROPATH_BACKEND"), p.Backend)
	p.Project = firstNonEmpty(env("GOOGLE_CLOUD_PROJECT"), p.Project)
	p.Location = firstNonEmpty(env("GOOGLE_CLOUD_LOCATION"), p.Location)

	cfg.Models.Adapt = firstNonEmpty(env("NEUROPATH_ADAPT_MODEL"), cfg.Models.Adapt)
	cfg.Models.Speech = firstNonEmpty(env("NEUROPATH_SPEECH_MODEL"), cfg.Models.Speech)
	cfg.Models.Chat = firstNonEmpty(env("NEUROPATH_CHAT_MODEL"), cfg.Models.Chat)
	cfg.Speech.Voice = firstNonEmpty(env("NEUROPATH_VOICE"), cfg.Speech.Voice)
	cfg.Speech.PlayerCommand = firstNonEmpty(env("NEUROPATH_PLAYER"), cfg.Speech.PlayerCommand)
	cfg.Export.Dir = firstNonEmpty(env("NEUROPATH_EXPORT_DIR"), cfg.Export.Dir)
	cfg.Logging.Level = firstNonEmpty(env("NEUROPATH_LOG_LEVEL"), cfg.Logging.Level)
	cfg.Logging.Format = firstNonEmpty(env("NEUROPATH_LOG_FORMAT"), cfg.Logging.Format)
	cfg.Logging.File = firstNonEmpty(env("NEUROPATH_LOG_FILE"), cfg.Logging.File)
	cfg.Metrics.Address = firstNonEmpty(env("NEUROPATH_METRICS_ADDR"), cfg.Metrics.Address)

	var errs []error
	if raw := env("NEUROPATH_OFFLINE"); raw != "" {
		v, err := strconv.ParseBool(raw)
		errs = append(errs, wrapEnv("NEUROPATH_OFFLINE", err))
		if err == nil {
			p.Offline = v
		}
	}
	if raw := env("NEUROPATH_TIMEOUT"); raw != "" {
		v, err := time.ParseDuration(raw)
		errs = append(errs, wrapEnv("NEUROPATH_TIMEOUT", err))
		if err == nil {
			p.Timeout = v
		}
	}
	if raw := env("NEUROPATH_RPS"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		errs = append(errs, wrapEnv("NEUROPATH_RPS", err))
		if err == nil {
			p.RPS = v
		}
	}
	if raw := env("NEUROPATH_MAX_UPLOAD_BYTES"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		errs = append(errs, wrapEnv("NEUROPATH_MAX_UPLOAD_BYTES", err))
		if err == nil {
			cfg.Ingest.MaxBytes = v
		}
	}
	return errors.Join(errs...)
}

func wrapEnv(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("invalid %s: %w", key, err)
}

// Validate rejects missing credentials and out-of-range numbers.
func (c *Config) Validate() error {
	if err := c.Provider.Validate(); err != nil {
		return fmt.Errorf("provider config: %w", err)
	}
	if err := c.Generation.Validate(); err != nil {
		return fmt.Errorf("generation config: %w", err)
	}
	if c.Ingest.MaxBytes <= 0 {
		return fmt.Errorf("ingest config: max_bytes must be positive, got %d", c.Ingest.MaxBytes)
	}
	if c.Speech.CacheSize < 0 {
		return fmt.Errorf("speech config: cache_size must not be negative, got %d", c.Speech.CacheSize)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging config: format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func (p *ProviderConfig) Validate() error {
	if p.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if p.RPS < 0 || p.Burst < 0 {
		return fmt.Errorf("rps and burst must not be negative")
	}
	if p.Offline {
		return nil
	}
	switch llmclient.Backend(p.Backend) {
	case llmclient.BackendGeminiAPI:
		if strings.TrimSpace(p.APIKey) == "" {
			return fmt.Errorf("api key is required (set GEMINI_API_KEY)")
		}
	case llmclient.BackendVertexAI:
		if p.Project == "" || p.Location == "" {
			return fmt.Errorf("vertex backend requires project and location")
		}
	default:
		return fmt.Errorf("unknown backend %q", p.Backend)
	}
	return nil
}

func (g *GenerationConfig) Validate() error {
	if g.AdaptTemperature < 0 || g.AdaptTemperature > 2 || g.ChatTemperature < 0 || g.ChatTemperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2]")
	}
	if g.AdaptTopP < 0 || g.AdaptTopP > 1 {
		return fmt.Errorf("top_p must be within [0, 1]")
	}
	return nil
}

func env(key string) string { return strings.TrimSpace(os.Getenv(key)) }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
