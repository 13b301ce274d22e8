package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/manager"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.Model
	LoadModel(ctx context.Context, id string) (types.LoadResponse, error)
	UnloadModel(ctx context.Context, id string) (types.UnloadResponse, error)
	ModelStatus(id string) (types.InstanceStatus, error)
	LoadedModels() types.LoadedResponse
	Summary() types.StatusResponse
	BackendURL(id string) (*url.URL, error)
	Subscribe() (<-chan manager.Event, func())
}

// NewMux builds the control-plane router. Everything except the health,
// metrics and documentation endpoints requires the API key from keys.
func NewMux(svc Service, keys KeySource) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(requestLogger)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/health", handleHealth)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	if swaggerEnabled {
		MountSwagger(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(requireAPIKey(keys))

		// Streaming endpoints stay outside the compressor.
		r.Get("/events", eventsHandler(svc))
		r.HandleFunc("/models/{id}/proxy/*", proxyHandler(svc))

		r.Group(func(r chi.Router) {
			// Compression for JSON endpoints
			r.Use(middleware.Compress(5))
			r.Get("/models/available", handleAvailable(svc))
			r.Get("/models/loaded", handleLoaded(svc))
			r.Get("/models/{id}/status", handleModelStatus(svc))
			r.Post("/models/{id}/load", handleLoad(svc))
			r.Post("/models/{id}/unload", handleUnload(svc))
			r.Get("/status", handleStatus(svc))
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && zlog != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}

// handleHealth godoc
// @Summary      Liveness
// @Description  Reports that the control plane is up. Does not require an API key.
// @Tags         system
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "healthy"})
}

// handleAvailable godoc
// @Summary      List configurations
// @Tags         models
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  types.ModelsResponse
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Router       /models/available [get]
func handleAvailable(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		models := svc.ListModels()
		writeJSON(w, http.StatusOK, types.ModelsResponse{Models: models, Count: len(models)})
	}
}

// handleLoaded godoc
// @Summary      List registered instances
// @Tags         models
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  types.LoadedResponse
// @Router       /models/loaded [get]
func handleLoaded(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.LoadedModels())
	}
}

// handleModelStatus godoc
// @Summary      Status of one configuration
// @Description  Reports not_loaded with a null port when no backend is registered.
// @Tags         models
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Configuration id"
// @Success      200  {object}  types.InstanceStatus
// @Failure      404  {object}  types.ErrorResponse
// @Router       /models/{id}/status [get]
func handleModelStatus(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.ModelStatus(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// handleLoad godoc
// @Summary      Load a configuration
// @Description  Starts a backend in the background and returns immediately with its port.
// @Tags         models
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Configuration id"
// @Success      202  {object}  types.LoadResponse
// @Success      200  {object}  types.LoadResponse  "already loaded"
// @Failure      404  {object}  types.ErrorResponse
// @Failure      409  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse  "shutting down or backend ports exhausted"
// @Router       /models/{id}/load [post]
func handleLoad(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := svc.LoadModel(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		status := http.StatusOK
		if resp.Status == string(manager.LoadAccepted) {
			status = http.StatusAccepted
		}
		writeJSON(w, status, resp)
	}
}

// handleUnload godoc
// @Summary      Unload a configuration
// @Description  Terminates the backend (also one that is still loading) and frees the id.
// @Tags         models
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Configuration id"
// @Success      200  {object}  types.UnloadResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      409  {object}  types.ErrorResponse
// @Router       /models/{id}/unload [post]
func handleUnload(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := svc.UnloadModel(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleStatus godoc
// @Summary      Manager summary
// @Tags         system
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func handleStatus(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Summary())
	}
}
