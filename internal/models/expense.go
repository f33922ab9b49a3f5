package models

// DefaultExpenseCategory is used when an expense is created without a category.
const DefaultExpenseCategory = "general"

// Expense is a single payment recorded against an ExpenseGroup.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"groupId"`

	// Description is a free-form label (e.g., "Seafood dinner").
	Description string `json:"description"`

	// Amount is the total paid, in the smallest currency unit. Always positive.
	Amount int64 `json:"amount"`

	// Category groups expenses for display (e.g., "food", "transport").
	Category string `json:"category"`

	// PaidBy is the participant who paid.
	PaidBy string `json:"paidBy"`

	// SplitAmong is the ordered, deduplicated list of participants sharing
	// the cost. Order matters: rounding remainders go to the first entries.
	SplitAmong []string `json:"splitAmong"`

	// Date is the day the expense happened (YYYY-MM-DD).
	Date string `json:"date"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`
}
