package main

import (
	"go.uber.org/fx"

	"docsign/internal/config"
	deliveryhttp "docsign/internal/delivery/http"
	"docsign/internal/infrastructure/database"
	"docsign/internal/infrastructure/idgen"
	"docsign/internal/infrastructure/logger"
	"docsign/internal/infrastructure/pdf"
	"docsign/internal/infrastructure/redis"
	"docsign/internal/infrastructure/renderer"
	"docsign/internal/infrastructure/repository"
	"docsign/internal/infrastructure/storage"
	"docsign/internal/server"
	"docsign/internal/usecase"
)

func main() {
	fx.New(
		// Configuration
		config.Module,

		// Infrastructure
		logger.Module,
		database.Module,
		redis.Module,
		idgen.Module,
		storage.Module,
		pdf.Module,
		renderer.Module,
		repository.Module,

		// Business Logic
		usecase.Module,

		// Delivery
		deliveryhttp.Module,

		// Server
		server.Module,
	).Run()
}
