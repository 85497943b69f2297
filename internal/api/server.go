// ABOUTME: JSON HTTP API over the data context.
// ABOUTME: Validation failures are 422 with field messages; storage failures are 502.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/harperreed/betta/internal/care"
	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/storage"
	"github.com/harperreed/betta/internal/tracker"
	"github.com/harperreed/betta/internal/validation"
)

// RetryMessage is returned with every persistence failure.
const RetryMessage = "Could not reach storage. Your changes were not saved, please try again."

// Server serves the API for one tracker.
type Server struct {
	// mu serializes tracker access; the tracker itself is not safe for concurrent use.
	mu      sync.Mutex
	tracker *tracker.Tracker
	logger  zerolog.Logger
	metrics *metrics
}

// NewServer creates a server for t.
func NewServer(t *tracker.Tracker, logger zerolog.Logger) *Server {
	return &Server{
		tracker: t,
		logger:  logger,
		metrics: newMetrics(),
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.metrics.middleware(), s.requestLogger())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/status", s.getStatus)
		api.GET("/tank", s.getTank)
		api.POST("/tank", s.postTank)
		api.GET("/fish", s.getFish)
		api.POST("/fish", s.postFish)
		api.GET("/water", s.listWater)
		api.POST("/water", s.postWater)
		api.GET("/feedings", s.listFeedings)
		api.POST("/feedings", s.postFeeding)
		api.GET("/feedings/today", s.todaysFeedings)
		api.GET("/water-changes", s.listWaterChanges)
		api.POST("/water-changes", s.postWaterChange)
		api.GET("/reminders", s.listReminders)
		api.POST("/reminders/:id/complete", s.completeReminder)
	}
	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

// fail maps an error to a response.
func (s *Server) fail(c *gin.Context, err error) {
	var result validation.Result
	var opErr *storage.OpError
	switch {
	case errors.As(err, &result):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": result.Errors})
	case errors.Is(err, care.ErrReminderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, care.ErrAmbiguousID):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &opErr):
		s.metrics.failures.Inc()
		s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": RetryMessage, "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func limit(c *gin.Context) int {
	n, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(models.DisplayHistoryLimit)))
	if err != nil || n <= 0 {
		return models.DisplayHistoryLimit
	}
	return n
}
