// Package server exposes the chart pipeline over HTTP with gin.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/spektr-org/promptchart/engine"
	"github.com/spektr-org/promptchart/resolver"
)

// ============================================================================
// HTTP SERVER
// ============================================================================
//   POST /api/chart         {prompt, context?}  → ChartResponse
//   POST /api/chart/intent  ChartIntent         → ChartResponse
//   GET  /api/datasets                          → [{name, metrics, dimensions}]
//   GET  /health                                → {status, timestamp}
// ============================================================================

// Server holds the HTTP handlers.
type Server struct {
	resolver *resolver.Resolver
	now      func() time.Time
}

// DatasetInfo is one entry of GET /api/datasets.
type DatasetInfo struct {
	Name       string   `json:"name"`
	Metrics    []string `json:"metrics"`
	Dimensions []string `json:"dimensions"`
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(r *resolver.Resolver) *gin.Engine {
	s := &Server{resolver: r, now: time.Now}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(), CORS())

	router.GET("/health", s.Health)
	api := router.Group("/api")
	{
		api.POST("/chart", s.Chart)
		api.POST("/chart/intent", s.ChartFromIntent)
		api.GET("/datasets", s.ListDatasets)
	}
	return router
}

// Run serves handler on addr until ctx is cancelled, then shuts down.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 PromptChart server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("🔄 PromptChart server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ── Handlers ───────────────────────────────────────────────

// Chart resolves a natural language prompt.
func (s *Server) Chart(c *gin.Context) {
	var req resolver.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}
	req.RequestID = requestID(c)

	resp, err := s.resolver.Resolve(c.Request.Context(), req)
	if err != nil {
		respondWithPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChartFromIntent executes a caller-built intent without generation.
func (s *Server) ChartFromIntent(c *gin.Context) {
	var intent engine.ChartIntent
	if err := c.ShouldBindJSON(&intent); err != nil {
		RespondWithError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Invalid intent payload", gin.H{"reason": err.Error()})
		return
	}

	resp, err := s.resolver.ResolveIntent(intent, requestID(c))
	if err != nil {
		respondWithPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListDatasets lists every dataset with its fields.
func (s *Server) ListDatasets(c *gin.Context) {
	adapter := s.resolver.Engine().Adapter()
	names := adapter.ListDatasets()
	out := make([]DatasetInfo, 0, len(names))
	for _, name := range names {
		out = append(out, DatasetInfo{
			Name:       name,
			Metrics:    adapter.MetricsOf(name),
			Dimensions: adapter.DimensionsOf(name),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}
