package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port      int              `json:"port"`
	LogConfig logger.LogConfig `json:"log_config"`
	OpenAI    OpenAIConfig     `json:"openai"`
	Chat      ChatConfig       `json:"chat"`
	RateLimit RateLimitConfig  `json:"rate_limit"`
	CORS      []string         `json:"cors_allowlist"`
}

type OpenAIConfig struct {
	APIKey          string `json:"api_key"`
	BaseURL         string `json:"base_url"`
	VectorStoreID   string `json:"vector_store_id"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	ChatModel       string `json:"chat_model"`
	TranscribeModel string `json:"transcribe_model"`
	TTSModel        string `json:"tts_model"`
	TTSVoice        string `json:"tts_voice"`
}

// ProviderSpec configures one chat provider. Data is decoded by the
// selected provider factory.
type ProviderSpec struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Data     interface{} `json:"data"`
}

type ChatConfig struct {
	Providers     []ProviderSpec `json:"providers"`
	MaxInputChars int            `json:"max_input_chars"`
	MaxResults    int            `json:"max_results"`
}

type RateLimitConfig struct {
	WindowSeconds int `json:"window_seconds"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.OpenAI.VectorStoreID == "" {
		cfg.OpenAI.VectorStoreID = os.Getenv("VECTOR_STORE_ID")
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai.api_key (or OPENAI_API_KEY) is required")
	}
	if cfg.OpenAI.VectorStoreID == "" {
		return nil, fmt.Errorf("openai.vector_store_id (or VECTOR_STORE_ID) is required")
	}
	if cfg.OpenAI.TimeoutSeconds <= 0 {
		cfg.OpenAI.TimeoutSeconds = 15
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = "gpt-4o-mini"
	}
	if cfg.OpenAI.TranscribeModel == "" {
		cfg.OpenAI.TranscribeModel = "whisper-1"
	}
	if cfg.OpenAI.TTSModel == "" {
		cfg.OpenAI.TTSModel = "gpt-4o-mini-tts"
	}
	if cfg.OpenAI.TTSVoice == "" {
		cfg.OpenAI.TTSVoice = "alloy"
	}
	if cfg.Chat.MaxInputChars <= 0 {
		cfg.Chat.MaxInputChars = 20000
	}
	if cfg.Chat.MaxResults <= 0 {
		cfg.Chat.MaxResults = 4
	}
	if len(cfg.Chat.Providers) == 0 {
		cfg.Chat.Providers = []ProviderSpec{{Provider: "openai", Model: cfg.OpenAI.ChatModel}}
	}
	return &cfg, nil
}
