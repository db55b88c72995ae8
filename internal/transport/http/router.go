package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/reportly/backend/internal/config"
	"github.com/reportly/backend/internal/core/services"
	"github.com/reportly/backend/internal/infrastructure/logger"
	"github.com/reportly/backend/internal/infrastructure/upstream"
	"github.com/reportly/backend/internal/transport/http/handlers"
	httpmw "github.com/reportly/backend/internal/transport/http/middleware"
)

type RouterConfig struct {
	Logger *logger.Logger
	Config *config.Config
}

func SetupRoutes(app *fiber.App, cfg RouterConfig) {
	// Initialize upstream clients
	tasksClient := upstream.NewTasksClient(
		cfg.Config.Upstreams.Tasks,
		upstream.SignerFor(cfg.Config.Upstreams.Tasks, cfg.Config.Upstreams.OAuth),
		cfg.Logger,
	)
	notesClient := upstream.NewNotesClient(
		cfg.Config.Upstreams.Notes,
		upstream.SignerFor(cfg.Config.Upstreams.Notes, cfg.Config.Upstreams.OAuth),
		cfg.Logger,
	)

	// Initialize services
	reportService := services.NewReportService(services.ReportServiceConfig{
		Tasks:  tasksClient,
		Notes:  notesClient,
		Logger: cfg.Logger,
	})

	// Initialize handlers
	reportHandler := handlers.NewReportHandler(reportService, cfg.Logger)

	// Primary report route
	app.Get("/reports", httpmw.AdminAuth(cfg.Config), reportHandler.GetReport)

	// API v1 alias
	api := app.Group("/api/v1")
	api.Get("/reports", httpmw.AdminAuth(cfg.Config), reportHandler.GetReport)

	// Report stream (feature-flagged)
	if cfg.Config.Features.EnableReportStream {
		streamHandler := handlers.NewReportStreamHandler(
			reportService,
			cfg.Logger,
			cfg.Config.Features.StreamInterval,
		)

		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				c.Locals("allowed", true)
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})

		app.Get("/ws/reports", websocket.New(streamHandler.Handle))
	}
}
