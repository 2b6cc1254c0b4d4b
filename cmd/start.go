/*
Copyright © 2025 propbase
*/
package cmd

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/propbase/ocr-gateway/config"
	"github.com/propbase/ocr-gateway/handler"
	"github.com/propbase/ocr-gateway/middleware"
	"github.com/propbase/ocr-gateway/service"
	"github.com/spf13/cobra"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the OCR gateway server",
	Long:  `Starts the HTTP server that accepts document uploads and returns extracted text`,
	Run: func(cmd *cobra.Command, args []string) {

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Initialize engines
		localEngine := service.NewTesseractEngine(cfg.OCRLanguage)
		cloudEngine, err := service.NewVisionEngine(cmd.Context(), cfg.GoogleCredentialsJSON, cfg.GoogleCredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize Google Vision client: %v", err)
		}
		if !cloudEngine.Configured() {
			log.Println("Google Vision credentials not provided, cloud OCR disabled")
		}

		rasterizer := service.NewPopplerRasterizer(cfg.RasterDPI)
		ocrService := service.NewOCRService(cfg, localEngine, cloudEngine, rasterizer)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler(cfg.AllowedOrigins)
		uploadHandler := handler.NewUploadHandler(ocrService, cfg.MaxUploadSize)
		statusHandler := handler.NewStatusHandler(cfg.Policy, cfg.AllowedOrigins, cloudEngine)

		// Setup Gin router
		router := gin.Default()

		// Apply global middleware
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/", statusHandler.HandleStatus)

		// The confidence-fallback deployment requires an Authorization header
		// on uploads; presence only, the value is not validated.
		upload := router.Group("/")
		if cfg.Policy == config.PolicyConfidenceFallback {
			upload.Use(middleware.RequireAuthHeader)
		}
		upload.POST("/upload", uploadHandler.HandleUpload)

		log.Printf("Starting server on port %s with %s policy...\n", cfg.Port, cfg.Policy)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
