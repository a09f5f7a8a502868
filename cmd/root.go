/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tieubaoca/pdfrag-be/config"
	"github.com/tieubaoca/pdfrag-be/service"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pdfrag-be",
	Short: "PDF question answering and extraction backend",
	Long: `pdfrag-be indexes a PDF into an in-memory vector index and answers
natural-language questions or extracts structured JSON from it.

Run "pdfrag-be start" to serve the HTTP API, or use "ask" and "extract"
for one-shot runs against a local PDF.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file")
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// buildAIService picks the generation provider from config. Embeddings
// always go through OpenAI regardless of the chat provider.
func buildAIService(cfg *config.Config) service.AIService {
	switch cfg.AIProvider {
	case "gemini":
		gemini, err := service.NewGeminiService(strings.Split(cfg.GeminiAPIKey, ","), cfg.ChatModel)
		if err != nil {
			log.Fatalf("Failed to create Gemini service: %v", err)
		}
		return gemini
	default:
		return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.ChatModel)
	}
}

func buildIndexer(cfg *config.Config) (*service.IndexerService, *service.EmbeddingService) {
	pdfService := service.NewPDFService(cfg.DocumentServiceConfig())
	embedder := service.NewEmbeddingService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDimensions)
	return service.NewIndexerService(pdfService, embedder, cfg.EmbeddingDimensions), embedder
}
