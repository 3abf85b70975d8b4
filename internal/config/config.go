package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the dialogue service.
type Config struct {
	BindAddr                 string
	ShutdownTimeout          time.Duration
	SessionInactivityTimeout time.Duration
	MetricsNamespace         string

	AllowAnyOrigin bool

	DefaultLanguage    string
	SupportedLanguages []string

	MemoryWindow    int
	PromptsPath     string
	SafetyListsPath string

	BrainMode      string
	BrainHTTPURL   string
	BrainTimeout   time.Duration
	BrainMaxTokens int
	OpenAIAPIKey   string
	OpenAIModel    string

	SentimentHappy   float64
	SentimentCalm    float64
	SentimentNeutral float64
	SentimentSad     float64

	DatabaseURL string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:         envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace: envOrDefault("APP_METRICS_NAMESPACE", "juno"),
		AllowAnyOrigin:   false,
		DefaultLanguage:  envOrDefault("APP_DEFAULT_LANGUAGE", "en"),
		MemoryWindow:     8,
		PromptsPath:      stringsTrimSpace("APP_PROMPTS_PATH"),
		SafetyListsPath:  stringsTrimSpace("APP_SAFETY_LISTS_PATH"),
		BrainMode:        envOrDefault("BRAIN_ADAPTER_MODE", "auto"),
		BrainHTTPURL:     stringsTrimSpace("BRAIN_HTTP_URL"),
		BrainMaxTokens:   250,
		OpenAIAPIKey:     stringsTrimSpace("OPENAI_API_KEY"),
		OpenAIModel:      envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		DatabaseURL:      stringsTrimSpace("DATABASE_URL"),

		ShutdownTimeout:          15 * time.Second,
		SessionInactivityTimeout: 10 * time.Minute,
		BrainTimeout:             15 * time.Second,

		SentimentHappy:   0.3,
		SentimentCalm:    0,
		SentimentNeutral: -0.3,
		SentimentSad:     -0.6,
	}

	langs := envOrDefault("APP_LANGUAGES", "en,hi,pt")
	for _, lang := range strings.Split(langs, ",") {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang != "" {
			cfg.SupportedLanguages = append(cfg.SupportedLanguages, lang)
		}
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionInactivityTimeout, err = durationFromEnv("APP_SESSION_INACTIVITY_TIMEOUT", cfg.SessionInactivityTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.BrainTimeout, err = durationFromEnv("BRAIN_TIMEOUT", cfg.BrainTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}
	cfg.MemoryWindow, err = intFromEnv("APP_MEMORY_WINDOW", cfg.MemoryWindow)
	if err != nil {
		return Config{}, err
	}
	cfg.BrainMaxTokens, err = intFromEnv("BRAIN_MAX_TOKENS", cfg.BrainMaxTokens)
	if err != nil {
		return Config{}, err
	}
	cfg.SentimentHappy, err = floatFromEnv("SENTIMENT_HAPPY_CUTOFF", cfg.SentimentHappy)
	if err != nil {
		return Config{}, err
	}
	cfg.SentimentCalm, err = floatFromEnv("SENTIMENT_CALM_CUTOFF", cfg.SentimentCalm)
	if err != nil {
		return Config{}, err
	}
	cfg.SentimentNeutral, err = floatFromEnv("SENTIMENT_NEUTRAL_CUTOFF", cfg.SentimentNeutral)
	if err != nil {
		return Config{}, err
	}
	cfg.SentimentSad, err = floatFromEnv("SENTIMENT_SAD_CUTOFF", cfg.SentimentSad)
	if err != nil {
		return Config{}, err
	}

	if cfg.SessionInactivityTimeout < 5*time.Second {
		return Config{}, fmt.Errorf("APP_SESSION_INACTIVITY_TIMEOUT must be at least 5s")
	}
	if cfg.MemoryWindow <= 0 {
		return Config{}, fmt.Errorf("APP_MEMORY_WINDOW must be positive")
	}
	if cfg.BrainMaxTokens <= 0 {
		return Config{}, fmt.Errorf("BRAIN_MAX_TOKENS must be positive")
	}
	if len(cfg.SupportedLanguages) == 0 {
		return Config{}, fmt.Errorf("APP_LANGUAGES must list at least one language")
	}
	if !containsString(cfg.SupportedLanguages, cfg.DefaultLanguage) {
		return Config{}, fmt.Errorf("APP_DEFAULT_LANGUAGE %q must appear in APP_LANGUAGES", cfg.DefaultLanguage)
	}
	if !(cfg.SentimentHappy > cfg.SentimentCalm && cfg.SentimentCalm > cfg.SentimentNeutral && cfg.SentimentNeutral > cfg.SentimentSad) {
		return Config{}, fmt.Errorf("sentiment cutoffs must be strictly descending")
	}

	return cfg, nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return f, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
