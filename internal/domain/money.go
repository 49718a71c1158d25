package domain

import (
	"github.com/shopspring/decimal"
)

// Business rule constants. These are fixed by policy, not configurable.
var (
	// MinimumSavingsBalance is the floor a savings balance may never drop
	// below as the result of a withdrawal or transfer-out.
	MinimumSavingsBalance = decimal.RequireFromString("100.00")

	// ExcessTransactionFee is charged per checking transaction beyond the
	// free monthly allowance.
	ExcessTransactionFee = decimal.RequireFromString("2.50")

	// SavingsInterestRate is the monthly interest rate applied to savings
	// balances.
	SavingsInterestRate = decimal.RequireFromString("0.02")
)

const (
	// FreeTransactionsPerMonth is the number of checking transactions per
	// billing cycle before fees apply.
	FreeTransactionsPerMonth = 10

	// SavingsWithdrawalLimit caps withdrawals from a savings account per
	// billing cycle.
	SavingsWithdrawalLimit = 5
)

// RoundToCents rounds a monetary amount to 2 fractional digits, half-up.
// Rounding happens only where interest is computed; every other amount in
// the system is exact.
func RoundToCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
