package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	Checking AccountKind = "CHECKING"
	Savings  AccountKind = "SAVINGS"
)

// Valid reports whether k is one of the closed set of account kinds.
func (k AccountKind) Valid() bool {
	return k == Checking || k == Savings
}

// Account is a mutable entity holding one customer relationship: balance,
// per-cycle counters and the append-only transaction history.
//
// Account methods do not synchronize themselves. The embedded mutex is the
// account's lock domain and the ledger holds it across every
// read-modify-write sequence, including the history append that follows a
// mutation. Calling any method below without the lock is a bug.
type Account struct {
	sync.Mutex

	Number    string
	Kind      AccountKind
	Owner     string
	CreatedAt time.Time

	balance            decimal.Decimal
	history            []TransactionRecord
	monthlyTxCount     int
	monthlyWithdrawals int
	closed             bool
}

// NewAccount creates an open account with the given opening balance. The
// opening balance does not count toward the monthly transaction counter;
// the ledger records it as the account's first transaction separately.
func NewAccount(number, owner string, kind AccountKind, openingBalance decimal.Decimal) *Account {
	return &Account{
		Number:    number,
		Kind:      kind,
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
		balance:   openingBalance,
	}
}

func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Closed reports whether the account has been closed. A closed account has
// been removed from the ledger directory; operations racing with the close
// re-check this flag after acquiring the lock.
func (a *Account) Closed() bool {
	return a.closed
}

// Close marks the account closed. Terminal; the ledger only calls it once
// CanClose holds.
func (a *Account) Close() {
	a.closed = true
}

// CanWithdraw checks withdrawal eligibility without mutating anything. The
// withdrawal limit is checked before funds sufficiency, so a savings account
// over its limit is rejected for that reason regardless of balance.
func (a *Account) CanWithdraw(amount decimal.Decimal) Verdict {
	if !amount.IsPositive() {
		return Fail("amount must be positive")
	}
	if a.Kind == Savings && a.monthlyWithdrawals >= SavingsWithdrawalLimit {
		return Fail("monthly withdrawal limit reached")
	}
	remaining := a.balance.Sub(amount)
	if remaining.IsNegative() {
		return Fail("insufficient funds")
	}
	if a.Kind == Savings && remaining.LessThan(MinimumSavingsBalance) {
		return Fail("savings balance cannot drop below minimum")
	}
	return Pass()
}

// Deposit adds amount to the balance and counts the transaction. The caller
// must have validated the amount; a non-positive amount is a programming bug.
func (a *Account) Deposit(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		panic("domain: deposit amount must be positive")
	}
	a.balance = a.balance.Add(amount)
	a.monthlyTxCount++
	return a.balance
}

// Withdraw removes amount from the balance and counts the transaction. The
// caller must have confirmed CanWithdraw first; violating the balance
// invariant here is a programming bug.
func (a *Account) Withdraw(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		panic("domain: withdrawal amount must be positive")
	}
	remaining := a.balance.Sub(amount)
	if remaining.IsNegative() {
		panic("domain: withdrawal would overdraw the account")
	}
	a.balance = remaining
	a.monthlyTxCount++
	if a.Kind == Savings {
		a.monthlyWithdrawals++
	}
	return a.balance
}

// ApplyMonthlyFee charges the excess-transaction fee on a checking account
// and returns the total charged. Accounts within the free allowance, and
// savings accounts, are charged nothing. The fee never overdraws the
// account; it is capped at the available balance.
func (a *Account) ApplyMonthlyFee() decimal.Decimal {
	if a.Kind != Checking || a.monthlyTxCount <= FreeTransactionsPerMonth {
		return decimal.Zero
	}
	excess := int64(a.monthlyTxCount - FreeTransactionsPerMonth)
	fee := ExcessTransactionFee.Mul(decimal.NewFromInt(excess))
	if fee.GreaterThan(a.balance) {
		fee = a.balance
	}
	a.balance = a.balance.Sub(fee)
	return fee
}

// ApplyMonthlyInterest credits monthly interest on a savings account and
// returns the amount paid, rounded to cents half-up. Checking accounts earn
// nothing.
func (a *Account) ApplyMonthlyInterest() decimal.Decimal {
	if a.Kind != Savings {
		return decimal.Zero
	}
	interest := RoundToCents(a.balance.Mul(SavingsInterestRate))
	a.balance = a.balance.Add(interest)
	return interest
}

// ResetMonthlyCounters starts a new billing cycle. Called once per cycle,
// after fees and interest have been applied.
func (a *Account) ResetMonthlyCounters() {
	a.monthlyTxCount = 0
	a.monthlyWithdrawals = 0
}

// CanClose reports whether the account is eligible for closure: the balance
// must be exactly zero.
func (a *Account) CanClose() bool {
	return a.balance.IsZero()
}

func (a *Account) MonthlyTransactionCount() int {
	return a.monthlyTxCount
}

func (a *Account) MonthlyWithdrawalCount() int {
	return a.monthlyWithdrawals
}

// Record appends an audit entry to the account's history. Append-only;
// records are never mutated or removed afterward.
func (a *Account) Record(rec TransactionRecord) {
	a.history = append(a.history, rec)
}

// History returns a defensive copy of the transaction history, so callers
// iterating it are never affected by concurrent appends.
func (a *Account) History() []TransactionRecord {
	out := make([]TransactionRecord, len(a.history))
	copy(out, a.history)
	return out
}

// HistoryBetween returns a defensive copy of the records whose timestamps
// fall inside the closed range [from, to].
func (a *Account) HistoryBetween(from, to time.Time) []TransactionRecord {
	out := make([]TransactionRecord, 0, len(a.history))
	for _, rec := range a.history {
		if rec.Timestamp.Before(from) || rec.Timestamp.After(to) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
