package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/calculator"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/models"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and timestamp", func(t *testing.T) {
		group := &models.ExpenseGroup{Name: "Vung Tau", Participants: []string{"Minh", "Jisoo"}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetGroup preserves participant order", func(t *testing.T) {
		original := &models.ExpenseGroup{Name: "Golf trip", Participants: []string{"Zed", "Amy", "Kim"}}
		if err := store.CreateGroup(ctx, original); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		retrieved, err := store.GetGroup(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if retrieved.Name != original.Name {
			t.Errorf("Name mismatch: got %s, want %s", retrieved.Name, original.Name)
		}
		if len(retrieved.Participants) != 3 {
			t.Fatalf("Participants count mismatch: got %d, want 3", len(retrieved.Participants))
		}
		for i, want := range original.Participants {
			if retrieved.Participants[i] != want {
				t.Errorf("Participant %d: got %s, want %s", i, retrieved.Participants[i], want)
			}
		}
	})

	t.Run("GetGroup returns ErrNotFound for nonexistent group", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListGroups includes participants", func(t *testing.T) {
		groups, err := store.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(groups))
		}
		for _, g := range groups {
			if len(g.Participants) == 0 {
				t.Errorf("Group %s has no participants", g.Name)
			}
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.ExpenseGroup{Name: "Trip", Participants: []string{"A", "B", "C"}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("CreateExpense and ListExpenses round trip", func(t *testing.T) {
		first := &models.Expense{
			GroupID: group.ID, Description: "Dinner", Amount: 100, Category: "food",
			PaidBy: "A", SplitAmong: []string{"C", "A", "B"}, Date: "2024-06-03",
		}
		second := &models.Expense{
			GroupID: group.ID, Description: "Taxi", Amount: 30, Category: "transport",
			PaidBy: "B", SplitAmong: []string{"B"}, Date: "2024-06-04",
		}
		for _, e := range []*models.Expense{second, first} {
			if err := store.CreateExpense(ctx, e); err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
		}

		expenses, err := store.ListExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Fatalf("Expected 2 expenses, got %d", len(expenses))
		}
		if expenses[0].ID != first.ID {
			t.Errorf("Expected earliest date first, got %s", expenses[0].Description)
		}
		wantSplit := []string{"C", "A", "B"}
		if len(expenses[0].SplitAmong) != len(wantSplit) {
			t.Fatalf("SplitAmong = %v, want %v", expenses[0].SplitAmong, wantSplit)
		}
		for i := range wantSplit {
			if expenses[0].SplitAmong[i] != wantSplit[i] {
				t.Errorf("SplitAmong = %v, want %v", expenses[0].SplitAmong, wantSplit)
				break
			}
		}
	})

	t.Run("CreateExpense rejects payer outside the group", func(t *testing.T) {
		err := store.CreateExpense(ctx, &models.Expense{
			GroupID: group.ID, Description: "Ghost", Amount: 10, Category: "general",
			PaidBy: "Mallory", SplitAmong: []string{"A"}, Date: "2024-06-04",
		})
		if err == nil {
			t.Error("Expected foreign key violation for unknown payer")
		}
	})

	t.Run("ListExpenses for empty group", func(t *testing.T) {
		other := &models.ExpenseGroup{Name: "Empty", Participants: []string{"X"}}
		if err := store.CreateGroup(ctx, other); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		expenses, err := store.ListExpenses(ctx, other.ID)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if expenses == nil || len(expenses) != 0 {
			t.Errorf("Expected empty slice, got %v", expenses)
		}
	})

	t.Run("DeleteExpense", func(t *testing.T) {
		expenses, _ := store.ListExpenses(ctx, group.ID)
		target := expenses[0]

		if err := store.DeleteExpense(ctx, "other-group", target.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for wrong group, got %v", err)
		}
		if err := store.DeleteExpense(ctx, group.ID, target.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, group.ID, target.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}

		remaining, err := store.ListExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(remaining) != 1 {
			t.Errorf("Expected 1 remaining expense, got %d", len(remaining))
		}
	})
}

func TestSQLiteStore_Quotes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	req := calculator.QuoteRequest{
		Villa: &calculator.VillaRequest{Enabled: true, CheckInDate: "2024-06-03", CheckOutDate: "2024-06-06"},
		Guide: &calculator.GuideRequest{Enabled: true, Days: 2, GroupSize: 6},
	}
	breakdown := calculator.CalculateQuote(req)

	quote := &models.Quote{CustomerName: "Park", Request: req, Breakdown: breakdown, Total: breakdown.Total}
	if err := store.CreateQuote(ctx, quote); err != nil {
		t.Fatalf("CreateQuote failed: %v", err)
	}

	t.Run("GetQuote decodes request and breakdown", func(t *testing.T) {
		got, err := store.GetQuote(ctx, quote.ID)
		if err != nil {
			t.Fatalf("GetQuote failed: %v", err)
		}
		if got.Total != 1050+320 {
			t.Errorf("Total = %d, want 1370", got.Total)
		}
		if got.Request.Guide == nil || got.Request.Guide.GroupSize != 6 {
			t.Errorf("Request guide not restored: %+v", got.Request.Guide)
		}
		if len(got.Breakdown.Villa.Details) != 3 {
			t.Errorf("Villa details = %d, want 3", len(got.Breakdown.Villa.Details))
		}
	})

	t.Run("GetQuote returns ErrNotFound", func(t *testing.T) {
		if _, err := store.GetQuote(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListQuotes respects limit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			q := &models.Quote{CustomerName: "Extra", Request: calculator.QuoteRequest{}, Breakdown: calculator.CalculateQuote(calculator.QuoteRequest{})}
			if err := store.CreateQuote(ctx, q); err != nil {
				t.Fatalf("CreateQuote failed: %v", err)
			}
		}

		quotes, err := store.ListQuotes(ctx, 2)
		if err != nil {
			t.Fatalf("ListQuotes failed: %v", err)
		}
		if len(quotes) != 2 {
			t.Errorf("Expected 2 quotes, got %d", len(quotes))
		}
	})
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := placeholders(tt.n); got != tt.want {
			t.Errorf("placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
