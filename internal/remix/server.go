package remix

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/ops"
	"go.uber.org/zap"
)

const (
	maxRequestBytes = 256 << 10
	maxThemeRunes   = 200
)

// ServerConfig holds proxy server configuration.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// Server is the remix proxy. It builds the prompt itself from a recipe and
// a theme, so clients can request remixes without holding the model
// credential and cannot use it as a general completion relay.
type Server struct {
	cfg        ServerConfig
	source     ops.RemixSource
	log        *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// NewServer creates a proxy that forwards to source.
func NewServer(cfg ServerConfig, source ops.RemixSource, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{cfg: cfg, source: source, log: log}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post(remixPath, s.handleRemix)

	return r
}

// requestLogger logs each request through zap at info level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) handleRemix(w http.ResponseWriter, r *http.Request) {
	var req remixRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		writeError(w, http.StatusBadRequest, "theme is required")
		return
	}
	if utf8.RuneCountInString(theme) > maxThemeRunes {
		writeError(w, http.StatusBadRequest, "theme is too long")
		return
	}
	rec, err := model.RecipeFromRecord(req.Recipe)
	if err != nil {
		writeError(w, http.StatusBadRequest, "recipe must have a strMeal name")
		return
	}

	text, err := s.source.Remix(r.Context(), rec, theme)
	if err != nil {
		s.log.Warn("remix failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("recipe", rec.Name),
			zap.Error(err))
		status := http.StatusBadGateway
		if errors.Is(err, ErrNoCredential) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, "remix failed")
		return
	}
	writeJSON(w, http.StatusOK, remixResponse{Remix: text})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, remixResponse{Error: msg})
}

// Router returns the HTTP handler.
func (s *Server) Router() chi.Router { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      150 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("remix proxy listening", zap.String("addr", s.cfg.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
