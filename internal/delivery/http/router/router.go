package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"docsign/internal/config"
	"docsign/internal/delivery/http/handler"
	"docsign/internal/infrastructure/storage"
)

type Router struct {
	app             *fiber.App
	config          *config.Config
	documentHandler *handler.DocumentHandler
	healthHandler   *handler.HealthHandler
	auditHandler    *handler.AuditHandler
}

func NewRouter(
	cfg *config.Config,
	documentHandler *handler.DocumentHandler,
	healthHandler *handler.HealthHandler,
	auditHandler *handler.AuditHandler,
) *Router {
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		// Multipart bodies carry whole PDFs; leave headroom over the storage
		// layer's own cap so it is the one that rejects oversized files.
		BodyLimit:    storage.MaxUploadSize + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	return &Router{
		app:             app,
		config:          cfg,
		documentHandler: documentHandler,
		healthHandler:   healthHandler,
		auditHandler:    auditHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// API v1 routes
	api := r.app.Group("/api/v1")
	{
		documents := api.Group("/documents")
		{
			documents.Post("", r.documentHandler.CreateDocument)
			documents.Get("/pdf/:name", r.documentHandler.GetPdfFile)
			documents.Get("/:id", r.documentHandler.GetDocument)
			documents.Delete("/:id", r.documentHandler.DeleteDocument)
			documents.Post("/:id/pdf", r.documentHandler.UploadPdf)
			documents.Put("/:id/pdf-signature-blocks", r.documentHandler.UpdateSignatureBlocks)
			documents.Post("/:id/apply-pdf-signature", r.documentHandler.ApplySignature)
			documents.Get("/:id/export-pdf", r.documentHandler.ExportPdf)
			documents.Post("/:id/track-view", r.documentHandler.TrackView)
		}

		audit := api.Group("/audit")
		{
			audit.Get("", r.auditHandler.GetLogs)
			audit.Get("/search", r.auditHandler.SearchLogs)
		}
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"error": fiber.Map{
			"code":    code,
			"message": err.Error(),
		},
	})
}
