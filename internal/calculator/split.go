package calculator

// SplitEvenly divides amount across n shares using integer division.
// The remainder (amount mod n) is handed out one unit at a time to the first
// shares, so the shares always sum to exactly amount.
//
// Example: SplitEvenly(100, 3) = [34, 33, 33]
func SplitEvenly(amount int64, n int) []int64 {
	if n <= 0 {
		return nil
	}

	shares := make([]int64, n)
	base := amount / int64(n)
	remainder := amount % int64(n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}
