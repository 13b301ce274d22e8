package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	// Registers the OpenAPI document served as /swagger/doc.json.
	_ "github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/apidocs"
)

// MountSwagger serves the Swagger UI and the generated document under /swagger/.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
