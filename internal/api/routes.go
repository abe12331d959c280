package api

import (
	"net/http"

	"github.com/veridict/veridict/internal/config"
	"github.com/veridict/veridict/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Analyze.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Analyses.Handler().Routes(),
	)
}
