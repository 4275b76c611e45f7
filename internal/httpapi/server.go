// Package httpapi exposes the bridge's HTTP surface: model lifecycle
// endpoints backed by the LM Studio client and chat endpoints backed by
// the OpenAI-compatible client. Handlers validate shapes, delegate, and
// map typed service errors to HTTP statuses.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ErrayDineri/LMStudioAPI/internal/chat"
	"github.com/ErrayDineri/LMStudioAPI/internal/models"
	"github.com/ErrayDineri/LMStudioAPI/pkg/types"
)

// ChatService defines the chat operations required by the HTTP layer.
type ChatService interface {
	Respond(ctx context.Context, modelKey string, messages []types.ChatMessage, cfg *types.ChatConfig) (types.ChatResponse, error)
	RespondRegular(ctx context.Context, messages []types.ChatMessage, cfg *types.ChatConfig) (types.ChatResponse, error)
	RespondVision(ctx context.Context, messages []types.ChatMessage, cfg *types.ChatConfig) (types.ChatResponse, error)
	StreamRespond(ctx context.Context, modelKey string, messages []types.ChatMessage, cfg *types.ChatConfig, w io.Writer, flush func()) error
	StreamRegular(ctx context.Context, messages []types.ChatMessage, cfg *types.ChatConfig, w io.Writer, flush func()) error
	StreamVision(ctx context.Context, messages []types.ChatMessage, cfg *types.ChatConfig, w io.Writer, flush func()) error
}

// ModelService defines the model lifecycle operations required by the
// HTTP layer.
type ModelService interface {
	List(ctx context.Context) ([]types.ModelInfo, error)
	Load(ctx context.Context, modelKey string, exclusive bool) (types.ModelInfo, error)
	Unload(ctx context.Context, modelKey string) error
	UnloadAll(ctx context.Context) ([]string, error)
}

// NewMux builds the router over the two services.
func NewMux(chatSvc ChatService, modelSvc ModelService) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if len(corsAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Log-Level"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"message": "LM Studio bridge up"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.HealthResponse{Status: "ok"})
	})

	r.Get("/help", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, helpText)
	})

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		list, err := modelSvc.List(r.Context())
		if err != nil {
			IncrementUpstreamFailure("models")
			if models.IsServerUnavailable(err) {
				writeJSONError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if list == nil {
			list = []types.ModelInfo{}
		}
		writeJSON(w, list)
	})

	r.Post("/models/load", func(w http.ResponseWriter, r *http.Request) {
		var req types.LoadModelRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.ModelKey) == "" {
			writeJSONError(w, http.StatusBadRequest, "model_key is required")
			return
		}
		info, err := modelSvc.Load(r.Context(), req.ModelKey, req.Exclusive)
		if err != nil {
			// Load failures are part of the response contract, not an
			// HTTP error status.
			IncrementUpstreamFailure("models")
			writeJSON(w, types.LoadModelResponse{Loaded: false, Error: err.Error()})
			return
		}
		writeJSON(w, types.LoadModelResponse{Loaded: true, Model: &info})
	})

	r.Post("/models/unload", func(w http.ResponseWriter, r *http.Request) {
		var req types.UnloadModelRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		switch {
		case req.UnloadAll:
			unloaded, err := modelSvc.UnloadAll(r.Context())
			if err != nil {
				IncrementUpstreamFailure("models")
				writeJSON(w, types.UnloadModelResponse{Success: false, UnloadedKeys: []string{}, Error: err.Error()})
				return
			}
			if unloaded == nil {
				unloaded = []string{}
			}
			writeJSON(w, types.UnloadModelResponse{Success: true, UnloadedKeys: unloaded})
		case req.ModelKey != "":
			if err := modelSvc.Unload(r.Context(), req.ModelKey); err != nil {
				IncrementUpstreamFailure("models")
				writeJSON(w, types.UnloadModelResponse{Success: false, UnloadedKeys: []string{}, Error: err.Error()})
				return
			}
			writeJSON(w, types.UnloadModelResponse{Success: true, UnloadedKeys: []string{req.ModelKey}})
		default:
			writeJSON(w, types.UnloadModelResponse{Success: false, UnloadedKeys: []string{}, Error: "must specify model_key or unload_all=true"})
		}
	})

	r.Post("/chat", func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		handleChat(w, r, req.Messages, func(ctx context.Context) (types.ChatResponse, error) {
			return chatSvc.Respond(ctx, req.ModelKey, req.Messages, req.Config)
		})
	})

	r.Post("/chat/stream", func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		handleChatStream(w, r, req.Messages, func(ctx context.Context, sw io.Writer, flush func()) error {
			return chatSvc.StreamRespond(ctx, req.ModelKey, req.Messages, req.Config, sw, flush)
		})
	})

	r.Post("/chat/regular", func(w http.ResponseWriter, r *http.Request) {
		var req types.RegularChatRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		handleChat(w, r, req.Messages, func(ctx context.Context) (types.ChatResponse, error) {
			return chatSvc.RespondRegular(ctx, req.Messages, req.Config)
		})
	})

	r.Post("/chat/regular/stream", func(w http.ResponseWriter, r *http.Request) {
		var req types.RegularChatRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		handleChatStream(w, r, req.Messages, func(ctx context.Context, sw io.Writer, flush func()) error {
			return chatSvc.StreamRegular(ctx, req.Messages, req.Config, sw, flush)
		})
	})

	r.Post("/chat/vision", func(w http.ResponseWriter, r *http.Request) {
		var req types.VisionChatRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		handleChat(w, r, req.Messages, func(ctx context.Context) (types.ChatResponse, error) {
			return chatSvc.RespondVision(ctx, req.Messages, req.Config)
		})
	})

	r.Post("/chat/vision/stream", func(w http.ResponseWriter, r *http.Request) {
		var req types.VisionChatRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		handleChatStream(w, r, req.Messages, func(ctx context.Context, sw io.Writer, flush func()) error {
			return chatSvc.StreamVision(ctx, req.Messages, req.Config, sw, flush)
		})
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// decodeJSON enforces the JSON content type and body size limit, then
// decodes into v. On failure it writes the error response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

// chatStatus maps chat service errors to HTTP statuses.
func chatStatus(err error) int {
	switch {
	case chat.IsBadImage(err):
		return http.StatusBadRequest
	case chat.IsNoModel(err), chat.IsUpstream(err):
		return http.StatusServiceUnavailable
	default:
		if he, ok := err.(HTTPError); ok {
			return he.StatusCode()
		}
		return http.StatusInternalServerError
	}
}

// handleChat runs a non-streaming chat call and writes the result.
func handleChat(w http.ResponseWriter, r *http.Request, messages []types.ChatMessage, fn func(ctx context.Context) (types.ChatResponse, error)) {
	if len(messages) == 0 {
		writeJSONError(w, http.StatusBadRequest, "messages are required")
		return
	}
	lvl := requestLogLevel(r)
	start := time.Now()
	logChatStart(r, lvl)

	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	resp, err := fn(ctx)
	if err != nil {
		status := chatStatus(err)
		if status >= 500 {
			IncrementUpstreamFailure("chat")
		}
		writeJSONError(w, status, err.Error())
		logChatEnd(r, lvl, status, start, err)
		return
	}
	writeJSON(w, resp)
	logChatEnd(r, lvl, http.StatusOK, start, nil)
}

// trackingWriter records whether any bytes reached the response, which
// decides if a stream error may still be reported as an HTTP error body.
type trackingWriter struct {
	w     io.Writer
	wrote bool
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		t.wrote = true
	}
	return t.w.Write(p)
}

// handleChatStream runs a streaming chat call, writing NDJSON lines as
// they arrive. Errors raised before the first fragment map to an HTTP
// status; once the stream has started the connection is simply closed.
func handleChatStream(w http.ResponseWriter, r *http.Request, messages []types.ChatMessage, fn func(ctx context.Context, sw io.Writer, flush func()) error) {
	if len(messages) == 0 {
		writeJSONError(w, http.StatusBadRequest, "messages are required")
		return
	}
	lvl := requestLogLevel(r)
	start := time.Now()
	logChatStart(r, lvl)

	w.Header().Set("Content-Type", "application/x-ndjson")
	var flush func()
	if f, ok := w.(http.Flusher); ok {
		flush = f.Flush
	}
	tw := &trackingWriter{w: w}
	writer := io.MultiWriter(tw, countingLineWriter{})
	if lvl >= LevelDebug {
		writer = io.MultiWriter(writer, &loggingLineWriter{})
	}

	// Join server base context with request context so shutdown cancels
	// in-flight streams too.
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	if err := fn(ctx, writer, flush); err != nil {
		// Client disconnect or shutdown: nothing left to write.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		status := chatStatus(err)
		if status >= 500 {
			IncrementUpstreamFailure("chat")
		}
		// An error line would corrupt a stream already under way, so the
		// JSON error body goes out only when no NDJSON has been written.
		if !tw.wrote {
			writeJSONError(w, status, err.Error())
		}
		logChatEnd(r, lvl, status, start, err)
		return
	}
	logChatEnd(r, lvl, http.StatusOK, start, nil)
}

func logChatStart(r *http.Request, lvl LogLevel) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg("chat start")
		return
	}
	log.Printf("chat start path=%s", r.URL.Path)
}

func logChatEnd(r *http.Request, lvl LogLevel, status int, start time.Time, err error) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Int("status", status).Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg("chat end")
		return
	}
	log.Printf("chat end path=%s status=%d dur=%s err=%v", r.URL.Path, status, time.Since(start), err)
}
