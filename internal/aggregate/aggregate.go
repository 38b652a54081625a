// Package aggregate computes the per-cycle derived scalars and edge
// signals that drive refresh decisions.
package aggregate

import "github.com/shopspring/decimal"

// AverageDonation returns total divided by count, or zero when there are
// no donations yet.
func AverageDonation(total decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

// CountIncreased reports whether the donation count grew since the
// previous cycle.
func CountIncreased(prev, current int) bool {
	return current > prev
}

// NewDonationEdge reports whether this cycle should raise the new-donation
// signal. The first cycle never raises it: there is no previous snapshot
// to compare against.
func NewDonationEdge(firstCycle bool, prev, current int) bool {
	return !firstCycle && CountIncreased(prev, current)
}
