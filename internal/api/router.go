package api

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"interval-timer-backend/config"
	"interval-timer-backend/internal/history"
	"interval-timer-backend/internal/mw"
	"interval-timer-backend/internal/run"
	"interval-timer-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, rt *run.Runtime, rec *history.Recorder) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, rt, rec, importClient(cfg.Importer))

	r.Use(mw.RequestID())

	rateLimiter := mw.RateLimit(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cached(cacheStore, cacheTTL)

	r.GET("/", handler.Root)
	r.GET("/health", handler.Health)

	api := r.Group("/api/v1")
	api.Use(rateLimiter)
	{
		timers := api.Group("/timers")
		{
			timers.GET("", handler.ListTimers)
			timers.POST("", handler.CreateTimer)
			timers.GET("/:timer_id", handler.GetTimer)
			timers.PUT("/:timer_id", handler.UpdateTimer)
			timers.DELETE("/:timer_id", handler.DeleteTimer)
			timers.POST("/:timer_id/steps", handler.AddStep)
			timers.DELETE("/:timer_id/steps/:step_id", handler.DeleteStep)
			timers.GET("/:timer_id/history", handler.GetTimerHistory)
		}

		actions := api.Group("/actions")
		{
			// The action list is static; timer routes stay uncached so
			// clients always read their own writes.
			actions.GET("", caching, handler.ListActions)
			actions.POST("/start", handler.StartTimer)
			actions.POST("/pause", handler.PauseTimer)
			actions.POST("/resume", handler.ResumeTimer)
			actions.POST("/stop", handler.StopTimer)
			actions.GET("/status/:timer_id", handler.TimerStatus)
		}

		importExport := api.Group("/import-export")
		{
			importExport.GET("/timers/:timer_id/export", handler.ExportTimer)
			importExport.POST("/timers/import", handler.ImportTimer)
			importExport.POST("/timers/import-url", handler.ImportTimerFromURL)
		}
	}

	return r
}

// importClient builds the HTTP client used for CSV imports by URL,
// honoring the configured proxy and timeout.
func importClient(cfg config.ImporterConfig) *http.Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Imports will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}
