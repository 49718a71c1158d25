// Package validation centralizes the pure business-rule checks shared by
// single-account operations and both legs of a transfer. Functions here have
// no state and no side effects; the ledger converts a failing verdict into a
// FAILED transaction record.
package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"banking-ledger/internal/domain"
)

// Deposit checks a deposit amount. There is no upper bound on deposits.
func Deposit(amount decimal.Decimal) domain.Verdict {
	if !amount.IsPositive() {
		return domain.Fail("amount must be positive")
	}
	return domain.Pass()
}

// Withdrawal checks a withdrawal against the account's current state. The
// caller must hold the account's lock.
func Withdrawal(account *domain.Account, amount decimal.Decimal) domain.Verdict {
	if account == nil {
		return domain.Fail("account is required")
	}
	if !amount.IsPositive() {
		return domain.Fail("amount must be positive")
	}
	return account.CanWithdraw(amount)
}

// Transfer checks a transfer between two accounts. The caller must hold both
// account locks. Defers to the source account's withdrawal rules.
func Transfer(from, to *domain.Account, amount decimal.Decimal) domain.Verdict {
	if from == nil || to == nil {
		return domain.Fail("account is required")
	}
	if from.Number == to.Number {
		return domain.Fail("cannot transfer to the same account")
	}
	if !amount.IsPositive() {
		return domain.Fail("amount must be positive")
	}
	return from.CanWithdraw(amount)
}

// AccountClosure checks closure eligibility: the balance must be exactly
// zero.
func AccountClosure(account *domain.Account) domain.Verdict {
	if account == nil {
		return domain.Fail("account is required")
	}
	if !account.CanClose() {
		return domain.Fail("account balance must be zero")
	}
	return domain.Pass()
}

// InitialDeposit checks the opening deposit for a new account of the given
// kind. Zero is allowed for checking accounts; savings accounts must open at
// or above the minimum balance.
func InitialDeposit(kind domain.AccountKind, amount decimal.Decimal) domain.Verdict {
	if !kind.Valid() {
		return domain.Fail("unknown account kind")
	}
	if amount.IsNegative() {
		return domain.Fail("initial deposit cannot be negative")
	}
	if kind == domain.Savings && amount.LessThan(domain.MinimumSavingsBalance) {
		return domain.Fail("savings accounts require a minimum initial deposit of " + domain.MinimumSavingsBalance.StringFixed(2))
	}
	return domain.Pass()
}

// CustomerName checks an owner display name: non-blank, at least two
// characters after trimming.
func CustomerName(name string) domain.Verdict {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domain.Fail("customer name is required")
	}
	if len(trimmed) < 2 {
		return domain.Fail("customer name must be at least 2 characters")
	}
	return domain.Pass()
}
