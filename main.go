package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/joho/godotenv/autoload"

	"github.com/BrunoKrugel/c2pafinder/internal/client"
	"github.com/BrunoKrugel/c2pafinder/internal/config"
	"github.com/BrunoKrugel/c2pafinder/internal/model"
	"github.com/BrunoKrugel/c2pafinder/internal/provenance"
	"github.com/BrunoKrugel/c2pafinder/internal/scan"
	"github.com/BrunoKrugel/c2pafinder/internal/utils"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	logger := utils.NewLogger(os.Stderr, cfg.Server.LogLevel)
	slog.SetDefault(logger)

	client := client.NewRestyClient(cfg)
	analyzer := provenance.NewAnalyzer(logger.With("component", "provenance"))
	manager := scan.NewManager(cfg, client, analyzer, logger.With("component", "scan"))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newRouter(manager, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("c2pa finder listening", "port", cfg.Server.Port, "concurrency", cfg.Scan.Concurrency)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

type scanRequest struct {
	Images []model.PageImage `json:"images"`
}

func newRouter(manager *scan.Manager, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Get("/analyze", func(w http.ResponseWriter, r *http.Request) {
		url := r.URL.Query().Get("url")
		if _, err := utils.ValidateImageURL(url); err != nil {
			writeError(w, http.StatusBadRequest, err, "url must be an absolute http(s) URL")
			return
		}
		result := manager.AnalyzeURL(r.Context(), url)
		if result.Failed() {
			writeJSON(w, http.StatusBadGateway, result)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	// Analyze an uploaded image body without fetching anything.
	r.Post("/analyze", func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, cfg.Fetch.MaxBytes))
		if err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, err, "")
			return
		}
		writeJSON(w, http.StatusOK, manager.Analyzer.Analyze(data))
	})

	r.Post("/scan", func(w http.ResponseWriter, r *http.Request) {
		filter, err := scan.ParseFilter(r.URL.Query().Get("filter"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err, "")
			return
		}
		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err, "body must be {\"images\": [...]}")
			return
		}
		report := manager.Scan(r.Context(), req.Images)
		report.Results = scan.FilterResults(report.Results, filter)
		writeJSON(w, http.StatusOK, report)
	})

	r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
		filter, err := scan.ParseFilter(r.URL.Query().Get("filter"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err, "")
			return
		}
		writeJSON(w, http.StatusOK, scan.FilterResults(manager.Cache.Recent(), filter))
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Message: message})
}
