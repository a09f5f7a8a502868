/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tieubaoca/pdfrag-be/service"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <pdf> <question>",
	Short: "Index a PDF and answer one question about it",
	Long: `Indexes the given PDF into an in-memory vector index, runs hybrid
semantic and keyword retrieval for the question, and prints the answer.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		pdfPath, question := args[0], args[1]
		chunkSize, _ := cmd.Flags().GetInt("chunk-size")
		overlap, _ := cmd.Flags().GetInt("overlap")
		topK, _ := cmd.Flags().GetInt("top-k")
		temperature, _ := cmd.Flags().GetFloat32("temperature")

		cfg := loadConfig()
		indexer, embedder := buildIndexer(cfg)
		aiService := buildAIService(cfg)
		qaService := service.NewQAService(embedder, aiService, cfg.TopK)

		ctx := context.Background()
		state, message := indexer.CreateIndex(ctx, pdfPath, chunkSize, overlap)
		if state == nil {
			log.Fatalf("Indexing failed: %s", message)
		}
		log.Println(message)

		answer, err := qaService.AnswerQuestion(ctx, state, question, topK, temperature)
		if err != nil {
			log.Fatalf("Failed to answer question: %v", err)
		}
		fmt.Println(answer)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().Int("chunk-size", 0, "chunk size in characters (default from config)")
	askCmd.Flags().Int("overlap", 0, "overlap between chunks (default from config)")
	askCmd.Flags().IntP("top-k", "k", 0, "number of semantic results (default from config)")
	askCmd.Flags().Float32P("temperature", "t", 0, "generation temperature")
}
