package api

import (
	"net/http"

	"docutrail/internal/config"
	"docutrail/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config, runtime *Runtime) {
	routes.Register(mux, domain.Directory.Handler().Routes()...)
	routes.Register(mux, domain.Documents.Handler(domain.Audit, domain.Routing).Routes()...)
	routes.Register(mux, domain.Notifications.Handler().Routes()...)
	routes.Register(
		mux,
		domain.Workflow.Handler(runtime.Storage, cfg.API.MaxUploadSizeBytes()).Routes()...,
	)
}
