// Package config loads process-wide settings once at startup.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Split modes for turning a model reply into sections.
const (
	SplitPositional = "positional"
	SplitKeyed      = "keyed"
)

// Config is read-only after Load and is passed by reference to every component.
// Missing API keys are not rejected here; the affected upstream call fails per request.
type Config struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port string `envconfig:"PORT" default:"5000"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	Notion Notion `envconfig:"NOTION"`

	// LLMEngine names the default engine: groq, openai, deepseek, gemini or vertex.
	LLMEngine string   `envconfig:"LLM_ENGINE" default:"groq"`
	Groq      Endpoint `envconfig:"GROQ"`
	OpenAI    Endpoint `envconfig:"OPENAI"`
	DeepSeek  Endpoint `envconfig:"DEEPSEEK"`
	Gemini    Endpoint `envconfig:"GEMINI"`
	Vertex    Vertex   `envconfig:"VERTEX"`

	SplitMode      string        `envconfig:"SPLIT_MODE" default:"positional"`
	TriggerTimeout time.Duration `envconfig:"TRIGGER_TIMEOUT" default:"180s"`

	// DatabaseURL enables the Postgres run log when set.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `envconfig:"TELEGRAM_CHAT_ID"`
}

// Notion holds the document service settings.
// Field names are the database property names the feedback is written into.
type Notion struct {
	APIKey     string `envconfig:"API_KEY"`
	// DatabaseID is informational only. Rows are addressed by page id per request.
	DatabaseID string `envconfig:"DATABASE_ID"`
	BaseURL    string `envconfig:"BASE_URL" default:"https://api.notion.com"`
	Version    string `envconfig:"VERSION" default:"2022-06-28"`

	FieldCorrected   string `envconfig:"FIELD_CORRECTED" default:"GPT 修正後短文"`
	FieldAnalysis    string `envconfig:"FIELD_ANALYSIS" default:"錯誤分析 "`
	FieldSuggestions string `envconfig:"FIELD_SUGGESTIONS" default:"GPT 高分建議"`
}

// Endpoint configures one chat-completion provider.
type Endpoint struct {
	APIKey  string        `envconfig:"API_KEY"`
	Model   string        `envconfig:"MODEL"`
	BaseURL string        `envconfig:"BASE_URL"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"60s"`
}

// Vertex configures the Vertex AI engine.
type Vertex struct {
	ProjectID string `envconfig:"PROJECT_ID"`
	Region    string `envconfig:"REGION" default:"us-central1"`
	Model     string `envconfig:"MODEL" default:"gemini-1.5-pro"`
}

func defaultModel(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// LoadFromEnv reads the configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	cfg.Groq.Model = defaultModel(cfg.Groq.Model, "mixtral-8x7b-32768")
	if cfg.Groq.BaseURL == "" {
		cfg.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	cfg.OpenAI.Model = defaultModel(cfg.OpenAI.Model, "gpt-4o-mini")
	cfg.DeepSeek.Model = defaultModel(cfg.DeepSeek.Model, "deepseek-chat")
	if cfg.DeepSeek.BaseURL == "" {
		cfg.DeepSeek.BaseURL = "https://api.deepseek.com/v1"
	}
	cfg.Gemini.Model = defaultModel(cfg.Gemini.Model, "gemini-2.5-flash")

	cfg.LLMEngine = strings.ToLower(strings.TrimSpace(cfg.LLMEngine))
	cfg.SplitMode = strings.ToLower(strings.TrimSpace(cfg.SplitMode))
	cfg.Notion.BaseURL = strings.TrimRight(cfg.Notion.BaseURL, "/")
	return &cfg, nil
}

// Load reads an optional .env file and then the environment.
// Variables already present in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return LoadFromEnv()
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// KeyedSplit reports whether replies are split by section label.
func (c *Config) KeyedSplit() bool {
	return c.SplitMode == SplitKeyed
}
