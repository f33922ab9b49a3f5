package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/calculator"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/service"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/storage"
)

// saveQuoteRequest is the body of POST /quotes.
type saveQuoteRequest struct {
	CustomerName string                  `json:"customerName"`
	Request      calculator.QuoteRequest `json:"request"`
}

// writeError maps service and storage errors to HTTP responses. Internal
// error details are logged and never returned to the client.
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badBody(c *gin.Context, err error) {
	slog.Debug("Rejected request body", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

func (h *Handler) calculateQuote(c *gin.Context) {
	var req calculator.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	b := h.quotes.Calculate(req)
	h.metrics.ObserveQuote(b.Total)
	c.JSON(http.StatusOK, b)
}

func (h *Handler) saveQuote(c *gin.Context) {
	var body saveQuoteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badBody(c, err)
		return
	}

	quote, err := h.quotes.Save(c.Request.Context(), body.CustomerName, body.Request)
	if err != nil {
		writeError(c, err)
		return
	}
	h.metrics.ObserveQuote(quote.Total)
	c.JSON(http.StatusCreated, quote)
}

func (h *Handler) listQuotes(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer", "field": "limit"})
			return
		}
		limit = n
	}

	quotes, err := h.quotes.List(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

func (h *Handler) getQuote(c *gin.Context) {
	quote, err := h.quotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *Handler) quotePDF(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.quotes.RenderPDF(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="quote-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (h *Handler) createGroup(c *gin.Context) {
	var in service.CreateGroupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}

	group, err := h.groups.CreateGroup(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *Handler) listGroups(c *gin.Context) {
	groups, err := h.groups.ListGroups(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *Handler) getGroup(c *gin.Context) {
	group, err := h.groups.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *Handler) createExpense(c *gin.Context) {
	var in service.CreateExpenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}

	expense, err := h.groups.CreateExpense(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *Handler) listExpenses(c *gin.Context) {
	expenses, err := h.groups.ListExpenses(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (h *Handler) deleteExpense(c *gin.Context) {
	if err := h.groups.DeleteExpense(c.Request.Context(), c.Param("id"), c.Param("expenseId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) settlement(c *gin.Context) {
	result, err := h.groups.Settlement(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.metrics.ObserveSettlement()
	c.JSON(http.StatusOK, result)
}

func (h *Handler) exchangeRates(c *gin.Context) {
	rates, err := h.rates.Get(c.Request.Context())
	if err != nil {
		slog.Error("Exchange rates unavailable", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "exchange rates unavailable"})
		return
	}
	c.JSON(http.StatusOK, rates)
}
