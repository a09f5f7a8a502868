package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"

	"github.com/tieubaoca/pdfrag-be/types"
)

type Config struct {
	Host                string  `mapstructure:"host"`
	Port                string  `mapstructure:"port"`
	AIProvider          string  `mapstructure:"ai_provider"`
	AIEndpoint          string  `mapstructure:"ai_endpoint"`
	ChatModel           string  `mapstructure:"chat_model"`
	EmbeddingModel      string  `mapstructure:"embedding_model"`
	EmbeddingDimensions int     `mapstructure:"embedding_dimensions"`
	OpenAIAPIKey        string  `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey        string  `mapstructure:"GEMINI_API_KEY"`
	ChunkSize           int     `mapstructure:"chunk_size"`
	ChunkOverlap        int     `mapstructure:"chunk_overlap"`
	MinChunkSize        int     `mapstructure:"min_chunk_size"`
	TopK                int     `mapstructure:"top_k"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	UploadDir           string  `mapstructure:"upload_dir"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if present; defaults plus env cover the rest
	if err := v.ReadInConfig(); err != nil {
		log.Printf("Config file %s not loaded: %v (using defaults)", configPath, err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that required credentials are present for the selected
// provider. A missing key is fatal at startup, before any document work.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY environment variable is required (embeddings always go through OpenAI)")
	}
	if c.AIProvider == "gemini" && c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY environment variable is required when ai_provider is gemini")
	}
	return nil
}

// DocumentServiceConfig bundles the chunking settings for the PDF service.
func (c *Config) DocumentServiceConfig() types.DocumentServiceConfig {
	return types.DocumentServiceConfig{
		ChunkSize:    c.ChunkSize,
		Overlap:      c.ChunkOverlap,
		MinChunkSize: c.MinChunkSize,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "7860")
	v.SetDefault("ai_provider", "openai")
	v.SetDefault("chat_model", "gpt-4o-mini")
	v.SetDefault("embedding_model", "text-embedding-3-small")
	v.SetDefault("embedding_dimensions", 1536)
	v.SetDefault("chunk_size", 2000)
	v.SetDefault("chunk_overlap", 350)
	v.SetDefault("min_chunk_size", 50)
	v.SetDefault("top_k", 5)
	// Reserved: carried in config, not applied by any search filter yet.
	v.SetDefault("similarity_threshold", 0.7)
	v.SetDefault("upload_dir", "uploads")
}
