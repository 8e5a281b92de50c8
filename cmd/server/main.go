package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/spacesedan/captionflow/config"
	"github.com/spacesedan/captionflow/internal/api/handlers"
	"github.com/spacesedan/captionflow/internal/generation"
	"github.com/spacesedan/captionflow/internal/logging"
	"github.com/spacesedan/captionflow/internal/sentiment"
	"github.com/spacesedan/captionflow/internal/service"
)

const generationTimeout = 60 * time.Second

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger(env)

	cfg := config.LoadConfig()

	annotator, cleanup, err := buildAnnotator(cfg)
	if err != nil {
		slog.Error("Failed to initialize sentiment annotator", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	client := buildGenerationClient(cfg)
	captionService := service.NewCaptionService(client, annotator)

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // uploaded images
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Unhandled request error", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	caption := handlers.NewCaptionHandler(captionService)
	app.Get("/healthz", caption.Health)

	api := app.Group("/api")
	api.Post("/captions/generate", caption.GenerateCaptions)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()
	slog.Info("Server is running", slog.String("port", cfg.Port))

	gracefulShutdown(app)
}

func buildGenerationClient(cfg *config.Config) generation.Client {
	switch cfg.GenerationProvider {
	case "openai":
		return generation.NewOpenAIClient(cfg.OpenAIAPIKey, generationTimeout)
	default:
		return generation.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, generationTimeout)
	}
}

func buildAnnotator(cfg *config.Config) (sentiment.Annotator, func(), error) {
	if cfg.SentimentBackend == "onnx" {
		annotator, err := sentiment.NewTransformerAnnotator(cfg.SentimentModelDir)
		if err != nil {
			return nil, nil, err
		}
		return annotator, func() {
			if err := annotator.Close(); err != nil {
				slog.Warn("Failed to close ONNX session", slog.String("error", err.Error()))
			}
		}, nil
	}
	return sentiment.NewVaderAnnotator(), func() {}, nil
}

func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	slog.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("Failed to shut down server", slog.String("error", err.Error()))
	}
	slog.Info("Server shutdown complete")
}
