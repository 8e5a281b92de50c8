package config

import "os"

type Config struct {
	AppEnv             string
	Port               string
	GenerationProvider string
	GeminiAPIKey       string
	GeminiModel        string
	OpenAIAPIKey       string
	SentimentBackend   string
	SentimentModelDir  string
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:             getEnv("APP_ENV", "dev"),
		Port:               getEnv("PORT", "3000"),
		GenerationProvider: getEnv("GENERATION_PROVIDER", "gemini"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		SentimentBackend:   getEnv("SENTIMENT_BACKEND", "vader"),
		SentimentModelDir:  getEnv("SENTIMENT_MODEL_DIR", "./models"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
