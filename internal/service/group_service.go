package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/calculator"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/models"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/storage"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 200
	maxParticipants      = 50

	// maxExpenseAmount keeps group totals far from int64 overflow.
	maxExpenseAmount int64 = 1_000_000_000_000
)

// GroupService manages expense groups, their expenses and settlements.
type GroupService struct {
	store storage.Store
	now   func() time.Time
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store, now: time.Now}
}

// CreateGroupInput is the caller-supplied part of a new group.
type CreateGroupInput struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
}

// CreateExpenseInput is the caller-supplied part of a new expense.
type CreateExpenseInput struct {
	Description string   `json:"description"`
	Amount      int64    `json:"amount"`
	Category    string   `json:"category"`
	PaidBy      string   `json:"paidBy"`
	SplitAmong  []string `json:"splitAmong"`
	Date        string   `json:"date"`
}

// CreateGroup validates and persists a new group.
// Participant names are trimmed; blanks and duplicates are rejected.
func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.ExpenseGroup, error) {
	slog.Info("CreateGroup request received",
		"name", in.Name,
		"participants_count", len(in.Participants),
	)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if len(name) > maxNameLength {
		return nil, invalid("name", "must be at most %d characters", maxNameLength)
	}
	if len(in.Participants) == 0 {
		return nil, invalid("participants", "at least one participant is required")
	}
	if len(in.Participants) > maxParticipants {
		return nil, invalid("participants", "at most %d participants are allowed", maxParticipants)
	}

	participants := make([]string, 0, len(in.Participants))
	seen := make(map[string]bool, len(in.Participants))
	for _, p := range in.Participants {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, invalid("participants", "names must not be blank")
		}
		if len(p) > maxNameLength {
			return nil, invalid("participants", "name %q is longer than %d characters", p, maxNameLength)
		}
		if seen[p] {
			return nil, invalid("participants", "duplicate participant %q", p)
		}
		seen[p] = true
		participants = append(participants, p)
	}

	group := &models.ExpenseGroup{Name: name, Participants: participants}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID)
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.ExpenseGroup, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Warn("GetGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return group, nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.ExpenseGroup, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, err
	}
	slog.Debug("ListGroups successful", "count", len(groups))
	return groups, nil
}

// CreateExpense validates an expense against its group and persists it.
//
// The payer and every split participant must be group members; splitAmong is
// deduplicated keeping first-seen order. Rejecting unknown names here keeps
// every stored expense set zero-sum for the settlement engine.
func (s *GroupService) CreateExpense(ctx context.Context, groupID string, in CreateExpenseInput) (*models.Expense, error) {
	slog.Info("CreateExpense request received",
		"group_id", groupID,
		"amount", in.Amount,
		"paid_by", in.PaidBy,
		"split_count", len(in.SplitAmong),
	)

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Warn("CreateExpense failed - group lookup", "group_id", groupID, "error", err)
		return nil, err
	}

	expense, err := s.validateExpense(group, in)
	if err != nil {
		slog.Warn("CreateExpense validation failed", "group_id", groupID, "error", err)
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Expense created", "group_id", groupID, "expense_id", expense.ID)
	return expense, nil
}

func (s *GroupService) validateExpense(group *models.ExpenseGroup, in CreateExpenseInput) (*models.Expense, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, invalid("description", "is required")
	}
	if len(description) > maxDescriptionLength {
		return nil, invalid("description", "must be at most %d characters", maxDescriptionLength)
	}
	if in.Amount <= 0 {
		return nil, invalid("amount", "must be greater than zero")
	}
	if in.Amount > maxExpenseAmount {
		return nil, invalid("amount", "must be at most %d", maxExpenseAmount)
	}

	paidBy := strings.TrimSpace(in.PaidBy)
	if paidBy == "" {
		return nil, invalid("paidBy", "is required")
	}
	if !group.HasParticipant(paidBy) {
		return nil, invalid("paidBy", "%q is not a member of this group", paidBy)
	}

	if len(in.SplitAmong) == 0 {
		return nil, invalid("splitAmong", "at least one participant is required")
	}
	splitAmong := make([]string, 0, len(in.SplitAmong))
	seen := make(map[string]bool, len(in.SplitAmong))
	for _, p := range in.SplitAmong {
		p = strings.TrimSpace(p)
		if !group.HasParticipant(p) {
			return nil, invalid("splitAmong", "%q is not a member of this group", p)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		splitAmong = append(splitAmong, p)
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = s.now().Format(calculator.DateLayout)
	} else if _, err := time.Parse(calculator.DateLayout, date); err != nil {
		return nil, invalid("date", "must be a date in YYYY-MM-DD format")
	}

	category := strings.ToLower(strings.TrimSpace(in.Category))
	if category == "" {
		category = models.DefaultExpenseCategory
	}

	return &models.Expense{
		GroupID:     group.ID,
		Description: description,
		Amount:      in.Amount,
		Category:    category,
		PaidBy:      paidBy,
		SplitAmong:  splitAmong,
		Date:        date,
	}, nil
}

// ListExpenses retrieves a group's expenses. Unknown groups are not found.
func (s *GroupService) ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		slog.Warn("ListExpenses failed - group lookup", "group_id", groupID, "error", err)
		return nil, err
	}

	expenses, err := s.store.ListExpenses(ctx, groupID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return expenses, nil
}

// DeleteExpense removes one expense from a group.
func (s *GroupService) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	slog.Info("DeleteExpense request received", "group_id", groupID, "expense_id", expenseID)

	if err := s.store.DeleteExpense(ctx, groupID, expenseID); err != nil {
		slog.Warn("DeleteExpense failed", "group_id", groupID, "expense_id", expenseID, "error", err)
		return err
	}

	slog.Info("Expense deleted", "group_id", groupID, "expense_id", expenseID)
	return nil
}

// Settlement computes balances and settling transfers for a group.
func (s *GroupService) Settlement(ctx context.Context, groupID string) (calculator.SettlementResult, error) {
	slog.Info("Settlement request received", "group_id", groupID)

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Warn("Settlement failed - group not found", "group_id", groupID, "error", err)
		return calculator.SettlementResult{}, err
	}

	expenses, err := s.store.ListExpenses(ctx, groupID)
	if err != nil {
		slog.Error("Settlement failed - could not list expenses", "group_id", groupID, "error", err)
		return calculator.SettlementResult{}, fmt.Errorf("list expenses: %w", err)
	}

	// Convert to calculator format
	forSettlement := make([]calculator.ExpenseForSettlement, len(expenses))
	for i, e := range expenses {
		forSettlement[i] = calculator.ExpenseForSettlement{
			Amount:     e.Amount,
			PaidBy:     e.PaidBy,
			SplitAmong: e.SplitAmong,
		}
	}

	result := calculator.CalculateSettlement(group.Participants, forSettlement)

	slog.Info("Settlement successful",
		"group_id", groupID,
		"expenses_count", len(expenses),
		"total_expense", result.TotalExpense,
		"transfers_count", len(result.Settlements),
	)
	return result, nil
}
