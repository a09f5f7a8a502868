/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tieubaoca/pdfrag-be/service"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <pdf> [schema]",
	Short: "Index a PDF and extract structured JSON from it",
	Long: `Indexes the given PDF and extracts the requested fields as JSON.
The schema is a comma-separated field list or a JSON template; when
omitted, a default business-document field list is used.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		pdfPath := args[0]
		schema := ""
		if len(args) > 1 {
			schema = args[1]
		}
		if schemaFile, _ := cmd.Flags().GetString("schema-file"); schemaFile != "" {
			data, err := os.ReadFile(schemaFile)
			if err != nil {
				log.Fatalf("Failed to read schema file: %v", err)
			}
			schema = string(data)
		}
		chunkSize, _ := cmd.Flags().GetInt("chunk-size")
		overlap, _ := cmd.Flags().GetInt("overlap")

		cfg := loadConfig()
		indexer, _ := buildIndexer(cfg)
		aiService := buildAIService(cfg)
		extractionService := service.NewExtractionService(aiService)

		ctx := context.Background()
		state, message := indexer.CreateIndex(ctx, pdfPath, chunkSize, overlap)
		if state == nil {
			log.Fatalf("Indexing failed: %s", message)
		}
		log.Println(message)

		result, err := extractionService.ExtractStructuredData(ctx, state, schema)
		if err != nil {
			log.Fatalf("Failed to extract data: %v", err)
		}
		fmt.Println(result)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().Int("chunk-size", 0, "chunk size in characters (default from config)")
	extractCmd.Flags().Int("overlap", 0, "overlap between chunks (default from config)")
	extractCmd.Flags().String("schema-file", "", "read the extraction schema from a file")
}
