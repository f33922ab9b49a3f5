package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/calculator"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/models"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/report"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/storage"
)

const (
	defaultQuoteListLimit = 50
	maxQuoteListLimit     = 200
)

// QuoteService prices quote requests and stores saved quotes.
type QuoteService struct {
	store storage.Store
}

// NewQuoteService creates a new QuoteService with the given storage backend.
func NewQuoteService(store storage.Store) *QuoteService {
	return &QuoteService{store: store}
}

// Calculate prices a request without persisting anything.
func (s *QuoteService) Calculate(req calculator.QuoteRequest) calculator.QuoteBreakdown {
	b := calculator.CalculateQuote(req)
	slog.Debug("Quote calculated",
		"villa", b.Villa.Price,
		"vehicle", b.Vehicle.Price,
		"golf", b.Golf.Price,
		"eco_girl", b.EcoGirl.Price,
		"guide", b.Guide.Price,
		"total", b.Total,
	)
	return b
}

// Save prices a request and stores it as a quote. The breakdown is always
// computed here, never accepted from the caller.
func (s *QuoteService) Save(ctx context.Context, customerName string, req calculator.QuoteRequest) (*models.Quote, error) {
	customerName = strings.TrimSpace(customerName)
	if len(customerName) > maxNameLength {
		return nil, invalid("customerName", "must be at most %d characters", maxNameLength)
	}

	b := s.Calculate(req)
	quote := &models.Quote{
		CustomerName: customerName,
		Request:      req,
		Breakdown:    b,
		Total:        b.Total,
	}
	if err := s.store.CreateQuote(ctx, quote); err != nil {
		slog.Error("SaveQuote failed", "error", err)
		return nil, err
	}

	slog.Info("Quote saved", "quote_id", quote.ID, "total", quote.Total)
	return quote, nil
}

// Get retrieves a saved quote.
func (s *QuoteService) Get(ctx context.Context, quoteID string) (*models.Quote, error) {
	quote, err := s.store.GetQuote(ctx, quoteID)
	if err != nil {
		slog.Warn("GetQuote failed", "quote_id", quoteID, "error", err)
		return nil, err
	}
	return quote, nil
}

// List retrieves the most recent quotes. A non-positive limit uses the default;
// larger limits are capped.
func (s *QuoteService) List(ctx context.Context, limit int) ([]*models.Quote, error) {
	switch {
	case limit <= 0:
		limit = defaultQuoteListLimit
	case limit > maxQuoteListLimit:
		limit = maxQuoteListLimit
	}

	quotes, err := s.store.ListQuotes(ctx, limit)
	if err != nil {
		slog.Error("ListQuotes failed", "error", err)
		return nil, err
	}
	return quotes, nil
}

// RenderPDF renders a saved quote as a PDF document.
func (s *QuoteService) RenderPDF(ctx context.Context, quoteID string) ([]byte, error) {
	quote, err := s.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	doc, err := report.QuotePDF(quote)
	if err != nil {
		slog.Error("RenderQuotePDF failed", "quote_id", quoteID, "error", err)
		return nil, err
	}
	return doc, nil
}
