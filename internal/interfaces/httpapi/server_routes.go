package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rankings/{format}", handler.ListRankings)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh-dirty", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshDirtyJob)))
	mux.Handle("POST /v1/internal/jobs/refresh-player", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshPlayerJob)))
}
