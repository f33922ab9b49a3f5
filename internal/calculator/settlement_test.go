package calculator

import (
	"math/rand"
	"testing"
)

func TestSplitEvenly(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		n      int
		want   []int64
	}{
		{name: "even", amount: 90, n: 3, want: []int64{30, 30, 30}},
		{name: "one unit remainder goes first", amount: 100, n: 3, want: []int64{34, 33, 33}},
		{name: "two unit remainder", amount: 101, n: 3, want: []int64{34, 34, 33}},
		{name: "smaller than participants", amount: 2, n: 5, want: []int64{1, 1, 0, 0, 0}},
		{name: "single share", amount: 77, n: 1, want: []int64{77}},
		{name: "no shares", amount: 10, n: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitEvenly(tt.amount, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitEvenly(%d, %d) = %v, want %v", tt.amount, tt.n, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitEvenly(%d, %d) = %v, want %v", tt.amount, tt.n, got, tt.want)
					break
				}
			}
		})
	}
}

func TestSplitEvenly_SumsToAmount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		amount := rng.Int63n(1_000_000) + 1
		n := rng.Intn(12) + 1

		var sum int64
		for _, s := range SplitEvenly(amount, n) {
			sum += s
		}
		if sum != amount {
			t.Fatalf("SplitEvenly(%d, %d) sums to %d", amount, n, sum)
		}
	}
}

func TestCalculateSettlement_ThreeWaySplit(t *testing.T) {
	result := CalculateSettlement(
		[]string{"A", "B", "C"},
		[]ExpenseForSettlement{{Amount: 100, PaidBy: "A", SplitAmong: []string{"A", "B", "C"}}},
	)

	wantPaid := map[string]int64{"A": 100, "B": 0, "C": 0}
	wantOwed := map[string]int64{"A": 34, "B": 33, "C": 33}
	wantBalance := map[string]int64{"A": 66, "B": -33, "C": -33}
	assertAmounts(t, "paid", result.Paid, wantPaid)
	assertAmounts(t, "owed", result.Owed, wantOwed)
	assertAmounts(t, "balance", result.Balance, wantBalance)

	if len(result.Settlements) != 2 {
		t.Fatalf("settlements = %v, want 2 transfers", result.Settlements)
	}
	var moved int64
	for _, s := range result.Settlements {
		if s.To != "A" {
			t.Errorf("transfer %+v should go to A", s)
		}
		moved += s.Amount
	}
	if moved != 66 {
		t.Errorf("moved = %d, want 66", moved)
	}

	// Equal debts keep participant order.
	if result.Settlements[0].From != "B" || result.Settlements[1].From != "C" {
		t.Errorf("settlement order = %v, want B then C", result.Settlements)
	}

	if result.TotalExpense != 100 {
		t.Errorf("totalExpense = %d, want 100", result.TotalExpense)
	}
	if result.PerPerson != 33 {
		t.Errorf("perPerson = %d, want 33", result.PerPerson)
	}
}

func TestCalculateSettlement_LargestFirstMatching(t *testing.T) {
	// Balances: A +70, B +30, C -65, D -35
	result := CalculateSettlement(
		[]string{"A", "B", "C", "D"},
		[]ExpenseForSettlement{
			{Amount: 70, PaidBy: "A", SplitAmong: []string{"C", "D"}},
			{Amount: 30, PaidBy: "B", SplitAmong: []string{"C"}},
		},
	)

	assertAmounts(t, "balance", result.Balance, map[string]int64{"A": 70, "B": 30, "C": -65, "D": -35})

	want := []Transfer{
		{From: "C", To: "A", Amount: 65},
		{From: "D", To: "A", Amount: 5},
		{From: "D", To: "B", Amount: 30},
	}
	if len(result.Settlements) != len(want) {
		t.Fatalf("settlements = %v, want %v", result.Settlements, want)
	}
	for i := range want {
		if result.Settlements[i] != want[i] {
			t.Errorf("settlement[%d] = %+v, want %+v", i, result.Settlements[i], want[i])
		}
	}
}

func TestCalculateSettlement_EdgeCases(t *testing.T) {
	tests := []struct {
		name            string
		participants    []string
		expenses        []ExpenseForSettlement
		wantSettlements int
		validateFunc    func(t *testing.T, r SettlementResult)
	}{
		{
			name:            "no expenses",
			participants:    []string{"A", "B"},
			wantSettlements: 0,
			validateFunc: func(t *testing.T, r SettlementResult) {
				assertAmounts(t, "balance", r.Balance, map[string]int64{"A": 0, "B": 0})
				if r.PerPerson != 0 {
					t.Errorf("perPerson = %d, want 0", r.PerPerson)
				}
			},
		},
		{
			name:            "payer splits only with self",
			participants:    []string{"A", "B"},
			expenses:        []ExpenseForSettlement{{Amount: 50, PaidBy: "A", SplitAmong: []string{"A"}}},
			wantSettlements: 0,
		},
		{
			name:            "empty split falls back to all participants",
			participants:    []string{"A", "B"},
			expenses:        []ExpenseForSettlement{{Amount: 50, PaidBy: "A"}},
			wantSettlements: 1,
			validateFunc: func(t *testing.T, r SettlementResult) {
				assertAmounts(t, "owed", r.Owed, map[string]int64{"A": 25, "B": 25})
			},
		},
		{
			name:            "mutual expenses cancel out",
			participants:    []string{"A", "B"},
			expenses:        []ExpenseForSettlement{{Amount: 40, PaidBy: "A", SplitAmong: []string{"B"}}, {Amount: 40, PaidBy: "B", SplitAmong: []string{"A"}}},
			wantSettlements: 0,
		},
		{
			name:            "no participants",
			participants:    nil,
			expenses:        nil,
			wantSettlements: 0,
			validateFunc: func(t *testing.T, r SettlementResult) {
				if r.Settlements == nil {
					t.Error("settlements should be an empty slice")
				}
			},
		},
		{
			name:            "perPerson rounds half up",
			participants:    []string{"A", "B", "C", "D"},
			expenses:        []ExpenseForSettlement{{Amount: 10, PaidBy: "A", SplitAmong: []string{"A", "B", "C", "D"}}},
			wantSettlements: 3,
			validateFunc: func(t *testing.T, r SettlementResult) {
				if r.PerPerson != 3 { // 2.5 rounds to 3
					t.Errorf("perPerson = %d, want 3", r.PerPerson)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CalculateSettlement(tt.participants, tt.expenses)
			if len(r.Settlements) != tt.wantSettlements {
				t.Errorf("settlements = %v, want %d transfers", r.Settlements, tt.wantSettlements)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, r)
			}
		})
	}
}

func TestCalculateSettlement_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"Minh", "Jisoo", "Alex", "Sam", "Linh", "Tae"}

	for round := 0; round < 200; round++ {
		participants := names[:rng.Intn(len(names))+1]

		var expenses []ExpenseForSettlement
		count := rng.Intn(15)
		for e := 0; e < count; e++ {
			perm := rng.Perm(len(participants))
			split := make([]string, rng.Intn(len(participants))+1)
			for i := range split {
				split[i] = participants[perm[i]]
			}
			expenses = append(expenses, ExpenseForSettlement{
				Amount:     rng.Int63n(500_000) + 1,
				PaidBy:     participants[rng.Intn(len(participants))],
				SplitAmong: split,
			})
		}

		r := CalculateSettlement(participants, expenses)

		var balanceSum, credit, moved int64
		for _, b := range r.Balance {
			balanceSum += b
			if b > 0 {
				credit += b
			}
		}
		if balanceSum != 0 {
			t.Fatalf("round %d: balances sum to %d", round, balanceSum)
		}

		received := make(map[string]int64)
		sent := make(map[string]int64)
		for _, s := range r.Settlements {
			if s.Amount <= 0 {
				t.Fatalf("round %d: non-positive transfer %+v", round, s)
			}
			moved += s.Amount
			received[s.To] += s.Amount
			sent[s.From] += s.Amount
		}
		if moved != credit {
			t.Fatalf("round %d: moved %d, total credit %d", round, moved, credit)
		}
		for name, b := range r.Balance {
			switch {
			case b > 0 && received[name] != b:
				t.Fatalf("round %d: %s received %d, balance %d", round, name, received[name], b)
			case b < 0 && sent[name] != -b:
				t.Fatalf("round %d: %s sent %d, balance %d", round, name, sent[name], b)
			}
		}
	}
}

func assertAmounts(t *testing.T, label string, got, want map[string]int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s = %v, want %v", label, got, want)
		return
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s[%s] = %d, want %d", label, k, got[k], v)
		}
	}
}
