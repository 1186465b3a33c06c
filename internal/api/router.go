package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/api/handlers"
	mw "github.com/okanevale/temperament/internal/api/middleware"
	"github.com/okanevale/temperament/internal/config"
	"github.com/okanevale/temperament/internal/domain"
	"github.com/okanevale/temperament/internal/llm"
	"github.com/okanevale/temperament/internal/service"
	"github.com/okanevale/temperament/internal/store"
)

// App holds the router and request metrics for lifecycle management.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(engine *service.PersonalityEngine, decision *service.DecisionService, logger *zap.Logger) *App {
	// Handlers
	contentHandler := handlers.NewContentHandler(engine)
	engagementHandler := handlers.NewEngagementHandler(engine)
	decisionHandler := handlers.NewDecisionHandler(engine, decision)
	memoryHandler := handlers.NewMemoryHandler(engine)
	stateHandler := handlers.NewStateHandler(engine)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health (no auth)
	r.Get("/health", healthHandler())

	// Metrics (no auth)
	r.Get("/metrics", app.metricsHandler())

	// Authenticated routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(config.APIKey()))

		r.Post("/content", contentHandler.Process)
		r.Post("/actions", contentHandler.RecordAction)

		r.Post("/engagement", engagementHandler.Record)
		r.Post("/learning/interests", engagementHandler.UpdateInterests)
		r.Post("/learning/tone", engagementHandler.AdaptTone)

		r.Get("/context", decisionHandler.Context)
		r.Post("/decide", decisionHandler.Decide)

		r.Get("/emotion", stateHandler.GetEmotion)
		r.Post("/state/save", stateHandler.Save)

		r.Route("/relationships/{counterpart}", func(r chi.Router) {
			r.Get("/", memoryHandler.GetRelationship)
			r.Put("/", memoryHandler.UpdateRelationship)
		})

		r.Route("/topics/{topic}", func(r chi.Router) {
			r.Get("/", memoryHandler.GetTopic)
			r.Put("/", memoryHandler.UpdateTopic)
		})

		r.Get("/interactions", memoryHandler.ListInteractions)
	})

	return app
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.MemoryStore      = (*store.FileStore)(nil)
	_ domain.PersonalityStore = (*store.FileStore)(nil)
	_ domain.LLMClient        = (*llm.OpenAIClient)(nil)
	_ domain.LLMClient        = (*llm.MockClient)(nil)
)
