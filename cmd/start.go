/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"log"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/tieubaoca/pdfrag-be/handler"
	"github.com/tieubaoca/pdfrag-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the PDF RAG server",
	Long:  `Starts a server that indexes uploaded PDFs and answers questions or extracts structured JSON over them`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		// Initialize services
		indexer, embedder := buildIndexer(cfg)
		aiService := buildAIService(cfg)
		fileService := service.NewFileService(cfg.UploadDir)
		sessionService := service.NewSessionService()
		qaService := service.NewQAService(embedder, aiService, cfg.TopK)
		extractionService := service.NewExtractionService(aiService)
		wsService := service.NewWebSocketService(sessionService, qaService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		uploadHandler := handler.NewUploadHandler(fileService, indexer, sessionService)
		askHandler := handler.NewAskHandler(sessionService, qaService)
		extractHandler := handler.NewExtractHandler(sessionService, extractionService)
		sessionHandler := handler.NewSessionHandler(sessionService)
		pdfHandler := handler.NewDocumentHandler(cfg.UploadDir)

		// Setup routes
		mux := http.NewServeMux()
		mux.Handle("/api/v1/documents/upload", uploadHandler.UploadDocumentHandler())
		mux.Handle("/api/v1/documents/ask", askHandler.HandleAsk())
		mux.Handle("/api/v1/documents/extract", extractHandler.HandleExtract())
		mux.Handle("/api/v1/documents/session", sessionHandler.HandleDelete())
		mux.Handle("/api/v1/pdf", pdfHandler.ServeDocument())
		mux.HandleFunc("/ws/ask", wsService.HandleAsk)
		mux.Handle("/health", wsService.Health())

		addr := net.JoinHostPort(cfg.Host, cfg.Port)
		log.Printf("Starting server on %s...\n", addr)
		if err := http.ListenAndServe(addr, corsHandler.CorsMiddleware(mux)); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
