package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/models"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/storage"
)

// CreateQuote persists a quote. Request and breakdown are stored as JSON.
func (s *SQLiteStore) CreateQuote(ctx context.Context, quote *models.Quote) error {
	if quote.ID == "" {
		quote.ID = uuid.New().String()
	}
	if quote.CreatedAt == 0 {
		quote.CreatedAt = time.Now().Unix()
	}

	request, err := json.Marshal(quote.Request)
	if err != nil {
		return fmt.Errorf("failed to encode quote request: %w", err)
	}
	breakdown, err := json.Marshal(quote.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to encode quote breakdown: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quotes (id, customer_name, request, breakdown, total, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		quote.ID, quote.CustomerName, string(request), string(breakdown), quote.Total, quote.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	return nil
}

// GetQuote retrieves a quote by ID.
func (s *SQLiteStore) GetQuote(ctx context.Context, quoteID string) (*models.Quote, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, customer_name, request, breakdown, total, created_at
		 FROM quotes WHERE id = ?`,
		quoteID,
	)

	quote, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quote %s: %w", quoteID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	return quote, nil
}

// ListQuotes retrieves up to limit quotes, newest first.
func (s *SQLiteStore) ListQuotes(ctx context.Context, limit int) ([]*models.Quote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, customer_name, request, breakdown, total, created_at
		 FROM quotes ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	quotes := []*models.Quote{}
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}

	return quotes, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuote(row rowScanner) (*models.Quote, error) {
	quote := &models.Quote{}
	var request, breakdown string
	if err := row.Scan(&quote.ID, &quote.CustomerName, &request, &breakdown, &quote.Total, &quote.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(request), &quote.Request); err != nil {
		return nil, fmt.Errorf("failed to decode quote request: %w", err)
	}
	if err := json.Unmarshal([]byte(breakdown), &quote.Breakdown); err != nil {
		return nil, fmt.Errorf("failed to decode quote breakdown: %w", err)
	}
	return quote, nil
}
