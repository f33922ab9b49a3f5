// Package api exposes the quote and expense services over HTTP/JSON.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/exchange"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/middleware"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/service"
)

// RatesProvider returns current exchange rates.
type RatesProvider interface {
	Get(ctx context.Context) (exchange.Rates, error)
}

// Deps are the collaborators the router needs.
type Deps struct {
	Quotes         *service.QuoteService
	Groups         *service.GroupService
	Rates          RatesProvider
	Metrics        *middleware.Metrics
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// Handler serves the HTTP API.
type Handler struct {
	quotes  *service.QuoteService
	groups  *service.GroupService
	rates   RatesProvider
	metrics *middleware.Metrics
}

// NewRouter builds the gin engine with middleware and all routes registered.
func NewRouter(deps Deps) *gin.Engine {
	h := &Handler{
		quotes:  deps.Quotes,
		groups:  deps.Groups,
		rates:   deps.Rates,
		metrics: deps.Metrics,
	}

	r := gin.New()
	r.Use(
		gin.CustomRecovery(recoverPanic),
		middleware.RequestLogger(),
		deps.Metrics.Middleware(),
		cors.New(corsConfig(deps.CORSOrigins)),
	)
	if deps.RequestTimeout > 0 {
		r.Use(middleware.RequestTimeout(deps.RequestTimeout))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	r.GET("/exchange-rates", h.exchangeRates)

	quotes := r.Group("/quotes")
	{
		quotes.POST("/calculate", h.calculateQuote)
		quotes.POST("", h.saveQuote)
		quotes.GET("", h.listQuotes)
		quotes.GET("/:id", h.getQuote)
		quotes.GET("/:id/pdf", h.quotePDF)
	}

	groups := r.Group("/expense-groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("", h.listGroups)
		groups.GET("/:id", h.getGroup)
		groups.POST("/:id/expenses", h.createExpense)
		groups.GET("/:id/expenses", h.listExpenses)
		groups.DELETE("/:id/expenses/:expenseId", h.deleteExpense)
		groups.GET("/:id/settlement", h.settlement)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func recoverPanic(c *gin.Context, recovered any) {
	slog.Error("Panic recovered",
		"panic", recovered,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
