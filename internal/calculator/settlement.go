package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ExpenseForSettlement is an expense with the minimal information needed for
// settlement calculations.
type ExpenseForSettlement struct {
	Amount     int64
	PaidBy     string
	SplitAmong []string
}

// Transfer is one payment that moves money from a debtor to a creditor.
type Transfer struct {
	From   string `json:"from"`   // Person who owes
	To     string `json:"to"`     // Person who is owed
	Amount int64  `json:"amount"`
}

// SettlementResult summarises a group's fund and how to square it up.
type SettlementResult struct {
	TotalExpense int64            `json:"totalExpense"`
	PerPerson    int64            `json:"perPerson"`
	Paid         map[string]int64 `json:"paid"`
	Owed         map[string]int64 `json:"owed"`
	Balance      map[string]int64 `json:"balance"` // Positive = is owed money, Negative = owes money
	Settlements  []Transfer       `json:"settlements"`
}

// memberBalance is a participant's outstanding amount during matching.
type memberBalance struct {
	name      string
	remaining int64
}

// CalculateSettlement computes paid/owed/balance per participant and a list of
// transfers that zeroes every balance.
//
// Algorithm:
//   - Each expense credits its full amount to the payer and splits it evenly
//     across SplitAmong (see SplitEvenly; first entries absorb remainders).
//     An expense with an empty SplitAmong is split across all participants.
//   - balance = paid - owed
//   - Debtors and creditors are sorted by magnitude, largest first, and
//     matched greedily: each step settles min(debt, credit) and advances
//     whichever side reached zero.
//
// The greedy matching keeps the number of transfers low but is not a proven
// global minimum for every balance set.
func CalculateSettlement(participants []string, expenses []ExpenseForSettlement) SettlementResult {
	result := SettlementResult{
		Paid:        make(map[string]int64, len(participants)),
		Owed:        make(map[string]int64, len(participants)),
		Balance:     make(map[string]int64, len(participants)),
		Settlements: []Transfer{},
	}

	// order is the participant order, followed by any unknown names in the
	// order they first appear, so ties sort deterministically.
	var order []string
	track := func(name string) {
		if _, exists := result.Paid[name]; !exists {
			result.Paid[name] = 0
			result.Owed[name] = 0
			order = append(order, name)
		}
	}
	for _, p := range participants {
		track(p)
	}

	for _, e := range expenses {
		track(e.PaidBy)
		result.Paid[e.PaidBy] += e.Amount
		result.TotalExpense += e.Amount

		splitAmong := e.SplitAmong
		if len(splitAmong) == 0 {
			splitAmong = participants
		}
		if len(splitAmong) == 0 {
			// Nobody to split with: the payer carries it alone.
			result.Owed[e.PaidBy] += e.Amount
			continue
		}
		for i, share := range SplitEvenly(e.Amount, len(splitAmong)) {
			track(splitAmong[i])
			result.Owed[splitAmong[i]] += share
		}
	}

	var debtors, creditors []memberBalance
	for _, name := range order {
		balance := result.Paid[name] - result.Owed[name]
		result.Balance[name] = balance
		switch {
		case balance < 0:
			debtors = append(debtors, memberBalance{name: name, remaining: -balance})
		case balance > 0:
			creditors = append(creditors, memberBalance{name: name, remaining: balance})
		}
	}

	// Largest first; stable so equal amounts keep participant order.
	sort.SliceStable(debtors, func(a, b int) bool { return debtors[a].remaining > debtors[b].remaining })
	sort.SliceStable(creditors, func(a, b int) bool { return creditors[a].remaining > creditors[b].remaining })

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := min(debtor.remaining, creditor.remaining)
		if amount > 0 {
			result.Settlements = append(result.Settlements, Transfer{
				From:   debtor.name,
				To:     creditor.name,
				Amount: amount,
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining < 1 {
			i++
		}
		if creditor.remaining < 1 {
			j++
		}
	}

	if len(participants) > 0 {
		result.PerPerson = decimal.NewFromInt(result.TotalExpense).
			Div(decimal.NewFromInt(int64(len(participants)))).
			Round(0).
			IntPart()
	}

	return result
}
