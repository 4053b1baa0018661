package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         int
	LogLevel     string
	GroqAPIKey   string
	GroqModel    string
	WhisperModel string
	TTSVoice     string
	DatabaseURL  string
	NatsURL      string
	NatsToken    string
}

func Load() Config {
	return Config{
		Port:         envInt("PARLO_PORT", 8760),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		GroqAPIKey:   envStr("GROQ_API_KEY", ""),
		GroqModel:    envStr("PARLO_MODEL", "llama3-70b-8192"),
		WhisperModel: envStr("PARLO_WHISPER_MODEL", "whisper-large-v3"),
		TTSVoice:     envStr("PARLO_TTS_VOICE", "en-US-Standard-C"),
		DatabaseURL:  envStr("DATABASE_URL", ""),
		NatsURL:      envStr("NATS_URL", ""),
		NatsToken:    envStr("NATS_TOKEN", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
