package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	ChatID        int64  // the one authorized recipient
	LLMProvider   string // anthropic, openai, ollama
	AnthropicKey  string
	OpenAIKey     string
	LLMModel      string
	OllamaBaseURL string
	UTCOffset     int // hours east of UTC; the recipient's fixed timezone
	MorningAt     string
	AfternoonAt   string
	EveningAt     string
}

func Load() *Config {
	_ = godotenv.Load() // ignore error if no .env

	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatID:        envInt64("CHAT_ID"),
		LLMProvider:   envOr("LLM_PROVIDER", "anthropic"),
		AnthropicKey:  os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		LLMModel:      os.Getenv("LLM_MODEL"),
		OllamaBaseURL: envOr("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		UTCOffset:     envIntOr("UTC_OFFSET_HOURS", 2),
		MorningAt:     envOr("MORNING_AT", "07:00"),
		AfternoonAt:   envOr("AFTERNOON_AT", "13:00"),
		EveningAt:     envOr("EVENING_AT", "21:00"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string) int64 {
	n, _ := strconv.ParseInt(os.Getenv(key), 10, 64)
	return n
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
