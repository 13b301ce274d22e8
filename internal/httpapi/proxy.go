package httpapi

import (
	"errors"
	"net/http"
	"net/http/httputil"

	"github.com/go-chi/chi/v5"
)

// proxyHandler godoc
// @Summary      Proxy to a backend
// @Description  Forwards the request to the ready backend of {id}; the remainder of the path is sent as-is (e.g. /v1/chat/completions).
// @Tags         models
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Configuration id"
// @Failure      404  {object}  types.ErrorResponse
// @Failure      502  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse
// @Router       /models/{id}/proxy/{path} [post]
func proxyHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The target is resolved per request so an unload or reload is
		// observed immediately.
		target, err := svc.BackendURL(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if r.ContentLength > maxBodyBytes {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		rest := "/" + chi.URLParam(r, "*")

		rp := &httputil.ReverseProxy{
			Rewrite: func(pr *httputil.ProxyRequest) {
				pr.SetURL(target)
				pr.Out.URL.Path = rest
				pr.Out.URL.RawPath = ""
				pr.Out.Header.Del(APIKeyHeader)
				pr.SetXForwarded()
			},
			// Completions may stream server-sent events.
			FlushInterval: -1,
			ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
				var mbe *http.MaxBytesError
				if errors.As(err, &mbe) {
					writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
					return
				}
				if r.Context().Err() != nil {
					return
				}
				if zlog != nil {
					zlog.Warn().Err(err).Str("target", target.String()).Msg("proxy error")
				}
				writeJSONError(w, http.StatusBadGateway, "backend unavailable: "+err.Error())
			},
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		ctx, cancel := withServerLifetime(r.Context())
		defer cancel()
		rp.ServeHTTP(w, r.WithContext(ctx))
	}
}
