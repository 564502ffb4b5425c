package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Audio
	SampleRate   int
	ChunkSeconds int

	// STT Backend
	STTBackend string // "whisperd", "deepgram", "openai" or "vosk"

	// whisperd settings
	WhisperdURL string

	// Deepgram settings
	DeepgramAPIKey string
	DeepgramModel  string

	// OpenAI settings
	OpenAIAPIKey   string
	OpenAISTTModel string

	// Vosk settings
	VoskModelPath string

	// Diarization (empty URL disables it)
	DiarizeURL string

	// Persistence
	SinkBackend     string // "file" or "mongo"
	DataDir         string
	MongoURL        string
	MongoDatabase   string
	MongoCollection string

	// Finalizer
	TopNTopics     int
	ActionKeywords []string

	// Export
	ExportFormat string // "pdf" or "markdown"

	// Meeting notes (optional, disabled without an API key)
	GenAIAPIKey string
	GenAIModel  string

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found, using environment variables only")
	}

	cfg := &Config{
		// Audio
		SampleRate:   getIntEnvOrDefault("SAMPLE_RATE", 16000),
		ChunkSeconds: getIntEnvOrDefault("CHUNK_SECONDS", 10),

		// STT Backend
		STTBackend: getEnvOrDefault("STT_BACKEND", "whisperd"),

		// whisperd
		WhisperdURL: getEnvOrDefault("WHISPERD_URL", "http://localhost:8082"),

		// Deepgram
		DeepgramAPIKey: os.Getenv("DEEPGRAM_API_KEY"),
		DeepgramModel:  getEnvOrDefault("DEEPGRAM_MODEL", "nova-2"),

		// OpenAI
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAISTTModel: getEnvOrDefault("OPENAI_STT_MODEL", "whisper-1"),

		// Vosk
		VoskModelPath: getEnvOrDefault("VOSK_MODEL_PATH", "./models/vosk/en"),

		// Diarization
		DiarizeURL: os.Getenv("DIARIZE_URL"),

		// Persistence
		SinkBackend:     getEnvOrDefault("SINK_BACKEND", "file"),
		DataDir:         getEnvOrDefault("DATA_DIR", "./data"),
		MongoURL:        os.Getenv("MONGO_URL"),
		MongoDatabase:   getEnvOrDefault("MONGO_DATABASE", "meetscribe"),
		MongoCollection: getEnvOrDefault("MONGO_COLLECTION", "transcripts"),

		// Finalizer
		TopNTopics:     getIntEnvOrDefault("TOP_N_TOPICS", 5),
		ActionKeywords: getListEnvOrDefault("ACTION_KEYWORDS", []string{"todo", "action", "follow up", "must", "should"}),

		// Export
		ExportFormat: getEnvOrDefault("EXPORT_FORMAT", "pdf"),

		// Meeting notes
		GenAIAPIKey: os.Getenv("GENAI_API_KEY"),
		GenAIModel:  getEnvOrDefault("GENAI_MODEL", "gemini-2.5-flash"),

		// Logging
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("SAMPLE_RATE must be positive")
	}

	if c.ChunkSeconds <= 0 {
		return fmt.Errorf("CHUNK_SECONDS must be positive")
	}

	switch c.STTBackend {
	case "whisperd", "deepgram", "openai", "vosk":
	default:
		return fmt.Errorf("STT_BACKEND must be 'whisperd', 'deepgram', 'openai' or 'vosk'")
	}

	if c.STTBackend == "deepgram" && c.DeepgramAPIKey == "" {
		return fmt.Errorf("DEEPGRAM_API_KEY is required when using deepgram backend")
	}

	if c.STTBackend == "openai" && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when using openai backend")
	}

	if c.SinkBackend != "file" && c.SinkBackend != "mongo" {
		return fmt.Errorf("SINK_BACKEND must be 'file' or 'mongo'")
	}

	if c.SinkBackend == "mongo" && c.MongoURL == "" {
		return fmt.Errorf("MONGO_URL is required when using mongo sink")
	}

	if c.ExportFormat != "pdf" && c.ExportFormat != "markdown" {
		return fmt.Errorf("EXPORT_FORMAT must be 'pdf' or 'markdown'")
	}

	if c.TopNTopics <= 0 {
		return fmt.Errorf("TOP_N_TOPICS must be positive")
	}

	if len(c.ActionKeywords) == 0 {
		return fmt.Errorf("ACTION_KEYWORDS must not be empty")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getListEnvOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
