package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig holds runtime startup configuration. It is read-only once Load
// returns.
type AppConfig struct {
	Port           int                `yaml:"port"`
	Env            string             `yaml:"env"` // "development" | "production"
	RedisURL       string             `yaml:"redis_url"`
	Paths          RuntimePathsConfig `yaml:"paths"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
	RateLimit      RateLimitConfig    `yaml:"rate_limit"`
	Credentials    CredentialsConfig  `yaml:"credentials"`
	Endpoints      EndpointsConfig    `yaml:"endpoints"`
	Polling        PollingConfig      `yaml:"polling"`
	Video          VideoConfig        `yaml:"video"`
	RequestTimeout time.Duration      `yaml:"request_timeout"`

	// baseDir anchors relative runtime paths; set to the directory of the
	// config file that was read.
	baseDir string
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

type RateLimitConfig struct {
	Enable    bool `yaml:"enable"`
	PerSecond int  `yaml:"per_second"`
}

// CredentialsConfig holds provider API keys. Environment variables win over
// the file.
type CredentialsConfig struct {
	OpenAI    string `yaml:"openai_api_key"`
	Google    string `yaml:"google_api_key"`
	Anthropic string `yaml:"anthropic_api_key"`
	Manus     string `yaml:"manus_api_key"`
	MiniMax   string `yaml:"minimax_api_key"`
}

type EndpointsConfig struct {
	OpenAI    string `yaml:"openai"`
	Google    string `yaml:"google"`
	Anthropic string `yaml:"anthropic"`
	Manus     string `yaml:"manus"`
	MiniMax   string `yaml:"minimax"`
}

type PollingConfig struct {
	Slides PollConfig `yaml:"slides"`
	Video  PollConfig `yaml:"video"`
}

type PollConfig struct {
	Interval    time.Duration `yaml:"interval"`
	MaxAttempts int           `yaml:"max_attempts"`
}

// VideoConfig is the clip table. Requests up to ShortMaxSeconds render a
// ShortClipSeconds clip, longer ones a LongClipSeconds clip.
type VideoConfig struct {
	Model            string `yaml:"model"`
	Resolution       string `yaml:"resolution"`
	ShortMaxSeconds  int    `yaml:"short_max_seconds"`
	ShortClipSeconds int    `yaml:"short_clip_seconds"`
	LongClipSeconds  int    `yaml:"long_clip_seconds"`
	PromptBodyBudget int    `yaml:"prompt_body_budget"`
	PromptMaxLength  int    `yaml:"prompt_max_length"`
}

type rawAppConfig struct {
	Port               int                `yaml:"port"`
	Env                string             `yaml:"env"`
	GoEnv              string             `yaml:"go_env"`
	RedisURL           string             `yaml:"redis_url"`
	Paths              RuntimePathsConfig `yaml:"paths"`
	LogDir             string             `yaml:"log_dir"`
	LogsDir            string             `yaml:"logs_dir"`
	AllowedOrigins     []string           `yaml:"allowed_origins"`
	CORSAllowedOrigins []string           `yaml:"cors_allowed_origins"`
	RateLimit          rawRateLimitConfig `yaml:"rate_limit"`
	Credentials        CredentialsConfig  `yaml:"credentials"`
	OpenAIAPIKey       string             `yaml:"openai_api_key"`
	GoogleAPIKey       string             `yaml:"google_api_key"`
	AnthropicAPIKey    string             `yaml:"anthropic_api_key"`
	ManusAPIKey        string             `yaml:"manus_api_key"`
	MiniMaxAPIKey      string             `yaml:"minimax_api_key"`
	Endpoints          EndpointsConfig    `yaml:"endpoints"`
	Polling            rawPollingConfig   `yaml:"polling"`
	Video              VideoConfig        `yaml:"video"`
	RequestTimeout     time.Duration      `yaml:"request_timeout"`
}

type rawRateLimitConfig struct {
	Enable    *bool `yaml:"enable"`
	PerSecond int   `yaml:"per_second"`
}

type rawPollingConfig struct {
	Slides  PollConfig `yaml:"slides"`
	Manus   PollConfig `yaml:"manus"`
	Video   PollConfig `yaml:"video"`
	MiniMax PollConfig `yaml:"minimax"`
}

// Load reads the YAML file at configPath, then applies environment
// overrides. A missing file at the default path falls back to defaults.
func Load(configPath string) (*AppConfig, error) {
	return load(configPath, os.LookupEnv)
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are ignored; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %q: %w", p, err)
		}
	}
	return nil
}

func load(configPath string, lookup func(string) (string, bool)) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		raw := rawAppConfig{}
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		applyRawAppConfig(&cfg, raw)
		if abs, err := filepath.Abs(path); err == nil {
			cfg.baseDir = filepath.Dir(abs)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Defaults plus environment.
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnv(&cfg, lookup)
	normalizeAppConfig(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.Polling.Slides.MaxAttempts < 1 || cfg.Polling.Video.MaxAttempts < 1 {
		return nil, fmt.Errorf("invalid polling.max_attempts, expected >= 1")
	}
	if cfg.Video.ShortClipSeconds < 1 || cfg.Video.LongClipSeconds < 1 {
		return nil, fmt.Errorf("invalid video clip lengths %d/%d", cfg.Video.ShortClipSeconds, cfg.Video.LongClipSeconds)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		RateLimit: RateLimitConfig{
			PerSecond: defaultRateLimitPerSecond,
		},
		Polling: PollingConfig{
			Slides: PollConfig{Interval: defaultSlidesInterval, MaxAttempts: defaultSlidesMaxAttempts},
			Video:  PollConfig{Interval: defaultVideoInterval, MaxAttempts: defaultVideoMaxAttempts},
		},
		Video: VideoConfig{
			Model:            defaultVideoModel,
			Resolution:       defaultVideoResolution,
			ShortMaxSeconds:  defaultShortMaxSeconds,
			ShortClipSeconds: defaultShortClipSeconds,
			LongClipSeconds:  defaultLongClipSeconds,
			PromptBodyBudget: defaultVideoBodyBudget,
			PromptMaxLength:  defaultVideoPromptMax,
		},
		RequestTimeout: defaultRequestTimeout,
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.GoEnv); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.LogsDir); v != "" {
		cfg.Paths.Logs = v
	}

	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	case raw.CORSAllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.CORSAllowedOrigins)
	}

	if raw.RateLimit.Enable != nil {
		cfg.RateLimit.Enable = *raw.RateLimit.Enable
	}
	if raw.RateLimit.PerSecond != 0 {
		cfg.RateLimit.PerSecond = raw.RateLimit.PerSecond
	}

	cfg.Credentials = mergeCredentials(cfg.Credentials, raw.Credentials)
	cfg.Credentials = mergeCredentials(cfg.Credentials, CredentialsConfig{
		OpenAI:    raw.OpenAIAPIKey,
		Google:    raw.GoogleAPIKey,
		Anthropic: raw.AnthropicAPIKey,
		Manus:     raw.ManusAPIKey,
		MiniMax:   raw.MiniMaxAPIKey,
	})
	cfg.Endpoints = mergeEndpoints(cfg.Endpoints, raw.Endpoints)

	cfg.Polling.Slides = mergePoll(cfg.Polling.Slides, raw.Polling.Slides)
	cfg.Polling.Slides = mergePoll(cfg.Polling.Slides, raw.Polling.Manus)
	cfg.Polling.Video = mergePoll(cfg.Polling.Video, raw.Polling.Video)
	cfg.Polling.Video = mergePoll(cfg.Polling.Video, raw.Polling.MiniMax)

	cfg.Video = mergeVideo(cfg.Video, raw.Video)
	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = raw.RequestTimeout
	}
}

// applyEnv lets the environment override secrets, the port and redis.
func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	cfg.Credentials = mergeCredentials(cfg.Credentials, CredentialsConfig{
		OpenAI:    get("OPENAI_API_KEY"),
		Google:    get("GOOGLE_API_KEY"),
		Anthropic: get("ANTHROPIC_API_KEY"),
		Manus:     get("MANUS_API_KEY"),
		MiniMax:   get("MINIMAX_API_KEY"),
	})
	if v := get("PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Port = port
		}
	}
	if v := get("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := get("APP_ENV"); v != "" {
		cfg.Env = v
	}
}

func mergeCredentials(cur, in CredentialsConfig) CredentialsConfig {
	cur.OpenAI = pick(cur.OpenAI, in.OpenAI)
	cur.Google = pick(cur.Google, in.Google)
	cur.Anthropic = pick(cur.Anthropic, in.Anthropic)
	cur.Manus = pick(cur.Manus, in.Manus)
	cur.MiniMax = pick(cur.MiniMax, in.MiniMax)
	return cur
}

func mergeEndpoints(cur, in EndpointsConfig) EndpointsConfig {
	cur.OpenAI = pick(cur.OpenAI, in.OpenAI)
	cur.Google = pick(cur.Google, in.Google)
	cur.Anthropic = pick(cur.Anthropic, in.Anthropic)
	cur.Manus = pick(cur.Manus, in.Manus)
	cur.MiniMax = pick(cur.MiniMax, in.MiniMax)
	return cur
}

func mergePoll(cur, in PollConfig) PollConfig {
	if in.Interval > 0 {
		cur.Interval = in.Interval
	}
	if in.MaxAttempts != 0 {
		cur.MaxAttempts = in.MaxAttempts
	}
	return cur
}

func mergeVideo(cur, in VideoConfig) VideoConfig {
	cur.Model = pick(cur.Model, in.Model)
	cur.Resolution = pick(cur.Resolution, in.Resolution)
	if in.ShortMaxSeconds != 0 {
		cur.ShortMaxSeconds = in.ShortMaxSeconds
	}
	if in.ShortClipSeconds != 0 {
		cur.ShortClipSeconds = in.ShortClipSeconds
	}
	if in.LongClipSeconds != 0 {
		cur.LongClipSeconds = in.LongClipSeconds
	}
	if in.PromptBodyBudget != 0 {
		cur.PromptBodyBudget = in.PromptBodyBudget
	}
	if in.PromptMaxLength != 0 {
		cur.PromptMaxLength = in.PromptMaxLength
	}
	return cur
}

func pick(cur, in string) string {
	if v := strings.TrimSpace(in); v != "" {
		return v
	}
	return cur
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// LogDir is the absolute directory for daily log files.
func (c *AppConfig) LogDir() string {
	if c == nil {
		return resolveRuntimePath("", "", defaultLogSubdir)
	}
	return resolveRuntimePath(c.baseDir, c.Paths.Logs, defaultLogSubdir)
}
