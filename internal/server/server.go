// Package server wires the REST surface: two public auth routes and four
// token-guarded data routes, all JSON.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"max.ks1230/spending-nav/internal/clients/kafka"
	"max.ks1230/spending-nav/internal/logger"
	"max.ks1230/spending-nav/internal/model/accounts"
	"max.ks1230/spending-nav/internal/model/analytics"
	"max.ks1230/spending-nav/internal/model/ledger"
)

const shutdownTimeout = 5 * time.Second

type tokenVerifier interface {
	Verify(token string) (string, error)
}

// SummaryCache is the optional read-through cache for computed summaries.
type SummaryCache interface {
	GetSummary(userID, period string) (analytics.Summary, error)
	CacheSummary(userID, period string, summary analytics.Summary) error
	InvalidateSummaries(userID string, periods []string) error
}

// RefreshProducer emits the optional refresh events after writes.
type RefreshProducer interface {
	ProduceRefresh(event kafka.RefreshEvent) error
}

type Server struct {
	engine    *gin.Engine
	accounts  *accounts.Service
	ledger    *ledger.Service
	generator *analytics.Generator
	tokens    tokenVerifier
	cache     SummaryCache
	producer  RefreshProducer
}

// New assembles the router. cache and producer may be nil; the handlers then
// skip caching and event production.
func New(
	accountsService *accounts.Service,
	ledgerService *ledger.Service,
	generator *analytics.Generator,
	tokens tokenVerifier,
	cache SummaryCache,
	producer RefreshProducer,
) *Server {
	s := &Server{
		accounts:  accountsService,
		ledger:    ledgerService,
		generator: generator,
		tokens:    tokens,
		cache:     cache,
		producer:  producer,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), corsMiddleware, tracingMiddleware, metricsMiddleware)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	protected := api.Group("", s.authRequired)
	protected.POST("/budget", s.handleSetBudget)
	protected.POST("/expenses", s.handleAddExpense)
	protected.GET("/expenses", s.handleListExpenses)
	protected.GET("/analytics", s.handleAnalytics)

	s.engine = engine
	return s
}

// Handler exposes the router, mostly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("http server listening", zap.Int("port", port))

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	logger.Info("http server stopped")
	return nil
}
