// Package api exposes the matching pipeline over HTTP. Pipeline runs are
// streamed as server-sent events so clients can render per-stage progress.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/networkout/networkout/internal/catalog"
	"github.com/networkout/networkout/internal/pipeline"
)

const maxRequestBodySize = 1 << 20 // 1MB

type PipelineRequest struct {
	Text string `json:"text"`
}

type Deps struct {
	Pipeline  *pipeline.Pipeline
	Providers *catalog.Providers
	Logger    *zap.Logger
	Token     string // optional; empty disables bearer auth
}

func NewHandler(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}
		r.Post("/v1/pipeline", handlePipeline(deps))
		r.Get("/v1/providers", handleProviders(deps))
		r.Get("/v1/providers/{id}", handleGetProvider(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handlePipeline runs the full pipeline for the submitted goal statement and
// streams every stage event to the client. Closing the connection cancels
// the run.
func handlePipeline(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req PipelineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Text == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "text is required")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			httpError(w, http.StatusInternalServerError, "api_error", "streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		run, events := deps.Pipeline.Run(r.Context(), req.Text)
		log := deps.Logger.With(zap.String("run_id", run.ID))
		log.Info("pipeline run started over http")

		for event := range events {
			data, err := json.Marshal(event)
			if err != nil {
				log.Error("encoding stage event", zap.Error(err))
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Status, data)
			flusher.Flush()
		}

		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
		log.Info("pipeline run finished over http")
	}
}

// handleProviders lists the catalog, optionally narrowed by specialty,
// language, or budget query parameters.
func handleProviders(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providers := deps.Providers
		if specialty := r.URL.Query().Get("specialty"); specialty != "" {
			providers = providers.BySpecialty(specialty)
		}
		if language := r.URL.Query().Get("language"); language != "" {
			providers = providers.ByLanguage(language)
		}
		if budget := r.URL.Query().Get("budget"); budget != "" {
			providers = providers.ByBudget(budget)
		}

		items := providers.Items
		if items == nil {
			items = []*catalog.Provider{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}

func handleGetProvider(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := deps.Providers.FindByID(chi.URLParam(r, "id"))
		if provider == nil {
			httpError(w, http.StatusNotFound, "not_found", "provider not found")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(provider)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
