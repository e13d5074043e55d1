package handler

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/travelops/operations/spec"
)

// GetOpenAPI handles GET /openapi.yaml by serving the embedded document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// swaggerUI serves the Swagger UI under /docs/, pointed at /openapi.yaml.
func (s *Server) swaggerUI() http.HandlerFunc {
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yaml"),
		httpSwagger.DocExpansion("list"),
	)
}
