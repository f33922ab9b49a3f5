// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group, expense and quote storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group.
	// The group.ID and group.CreatedAt fields will be populated by the store.
	CreateGroup(ctx context.Context, group *models.ExpenseGroup) error

	// GetGroup retrieves a group with its participants in creation order.
	// Returns an error wrapping ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.ExpenseGroup, error)

	// ListGroups retrieves all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.ExpenseGroup, error)

	// CreateExpense persists an already-validated expense.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses retrieves a group's expenses in chronological order,
	// each with SplitAmong in its original order.
	ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense from a group.
	// Returns an error wrapping ErrNotFound if no such expense exists in the group.
	DeleteExpense(ctx context.Context, groupID, expenseID string) error

	// CreateQuote persists a priced quote.
	CreateQuote(ctx context.Context, quote *models.Quote) error

	// GetQuote retrieves a quote by ID.
	// Returns an error wrapping ErrNotFound if the quote does not exist.
	GetQuote(ctx context.Context, quoteID string) (*models.Quote, error)

	// ListQuotes retrieves up to limit quotes, newest first.
	ListQuotes(ctx context.Context, limit int) ([]*models.Quote, error)

	// Close releases any resources held by the store.
	Close() error
}
