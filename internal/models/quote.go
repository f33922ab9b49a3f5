package models

import "github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/calculator"

// Quote is a saved price quote.
type Quote struct {
	ID           string                    `json:"id"`
	CustomerName string                    `json:"customerName"`
	Request      calculator.QuoteRequest   `json:"request"`
	Breakdown    calculator.QuoteBreakdown `json:"breakdown"`
	// Total duplicates Breakdown.Total so listings can be sorted and
	// filtered without decoding the breakdown.
	Total     int64 `json:"total"`
	CreatedAt int64 `json:"createdAt"`
}
