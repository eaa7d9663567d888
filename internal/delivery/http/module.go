package http

import (
	"go.uber.org/fx"

	"docsign/internal/delivery/http/handler"
	"docsign/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewDocumentHandler,
		handler.NewHealthHandler,
		handler.NewAuditHandler,
		router.NewRouter,
	),
)
