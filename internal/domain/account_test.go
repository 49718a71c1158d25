package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking-ledger/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newChecking(balance string) *domain.Account {
	return domain.NewAccount("ACC-000001", "Alice Example", domain.Checking, dec(balance))
}

func newSavings(balance string) *domain.Account {
	return domain.NewAccount("ACC-000002", "Bob Example", domain.Savings, dec(balance))
}

func TestCanWithdraw(t *testing.T) {
	testCases := []struct {
		name    string
		account *domain.Account
		amount  string
		reason  string
	}{
		{name: "checking ok", account: newChecking("100.00"), amount: "100.00"},
		{name: "zero amount", account: newChecking("100.00"), amount: "0", reason: "amount must be positive"},
		{name: "negative amount", account: newChecking("100.00"), amount: "-5.00", reason: "amount must be positive"},
		{name: "insufficient funds", account: newChecking("100.00"), amount: "100.01", reason: "insufficient funds"},
		{name: "savings above minimum", account: newSavings("500.00"), amount: "400.00"},
		{name: "savings exactly at minimum", account: newSavings("500.00"), amount: "400.01", reason: "savings balance cannot drop below minimum"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.account.CanWithdraw(dec(tc.amount))
			if tc.reason == "" {
				assert.True(t, v.OK())
			} else {
				assert.False(t, v.OK())
				assert.Equal(t, tc.reason, v.Reason())
			}
		})
	}
}

func TestSavingsWithdrawalLimit(t *testing.T) {
	account := newSavings("1000.00")
	for i := 0; i < domain.SavingsWithdrawalLimit; i++ {
		require.True(t, account.CanWithdraw(dec("10.00")).OK())
		account.Withdraw(dec("10.00"))
	}
	assert.Equal(t, 5, account.MonthlyWithdrawalCount())

	// The limit wins over every other rule, including funds sufficiency.
	v := account.CanWithdraw(dec("10.00"))
	assert.Equal(t, "monthly withdrawal limit reached", v.Reason())
	v = account.CanWithdraw(dec("1000000.00"))
	assert.Equal(t, "monthly withdrawal limit reached", v.Reason())

	account.ResetMonthlyCounters()
	assert.True(t, account.CanWithdraw(dec("10.00")).OK())
}

func TestDepositAndWithdrawCounters(t *testing.T) {
	account := newChecking("100.00")

	balance := account.Deposit(dec("25.50"))
	assert.Equal(t, "125.50", balance.StringFixed(2))
	assert.Equal(t, 1, account.MonthlyTransactionCount())

	balance = account.Withdraw(dec("0.50"))
	assert.Equal(t, "125.00", balance.StringFixed(2))
	assert.Equal(t, 2, account.MonthlyTransactionCount())
	assert.Equal(t, 0, account.MonthlyWithdrawalCount(), "withdrawal counter is savings-only")

	savings := newSavings("500.00")
	savings.Withdraw(dec("50.00"))
	assert.Equal(t, 1, savings.MonthlyWithdrawalCount())
}

func TestMutatorInvariantPanics(t *testing.T) {
	account := newChecking("10.00")

	assert.Panics(t, func() { account.Deposit(dec("0")) })
	assert.Panics(t, func() { account.Withdraw(dec("-1.00")) })
	assert.Panics(t, func() { account.Withdraw(dec("10.01")) })
}

func TestApplyMonthlyFee(t *testing.T) {
	account := newChecking("1120.00")
	for i := 0; i < 12; i++ {
		account.Deposit(dec("1.00"))
	}

	fee := account.ApplyMonthlyFee()
	assert.Equal(t, "5.00", fee.StringFixed(2), "2 transactions beyond the 10th at 2.50 each")
	assert.Equal(t, "1127.00", account.Balance().StringFixed(2))
}

func TestApplyMonthlyFeeWithinAllowance(t *testing.T) {
	account := newChecking("100.00")
	for i := 0; i < domain.FreeTransactionsPerMonth; i++ {
		account.Deposit(dec("1.00"))
	}

	fee := account.ApplyMonthlyFee()
	assert.True(t, fee.IsZero())
	assert.Equal(t, "110.00", account.Balance().StringFixed(2))
}

func TestApplyMonthlyFeeSavingsNoOp(t *testing.T) {
	account := newSavings("500.00")
	for i := 0; i < 20; i++ {
		account.Deposit(dec("1.00"))
	}

	assert.True(t, account.ApplyMonthlyFee().IsZero())
	assert.Equal(t, "520.00", account.Balance().StringFixed(2))
}

func TestApplyMonthlyFeeNeverOverdraws(t *testing.T) {
	account := newChecking("3.00")
	for i := 0; i < 14; i++ {
		account.Deposit(dec("0.01"))
	}
	account.Withdraw(dec("0.14"))

	fee := account.ApplyMonthlyFee()
	assert.Equal(t, "3.00", fee.StringFixed(2), "fee is capped at the available balance")
	assert.True(t, account.Balance().IsZero())
}

func TestApplyMonthlyInterest(t *testing.T) {
	account := newSavings("1000.00")
	interest := account.ApplyMonthlyInterest()
	assert.Equal(t, "20.00", interest.StringFixed(2))
	assert.Equal(t, "1020.00", account.Balance().StringFixed(2))

	account = newSavings("123.45")
	interest = account.ApplyMonthlyInterest()
	assert.Equal(t, "2.47", interest.StringFixed(2), "2.469 rounds half-up")
	assert.Equal(t, "125.92", account.Balance().StringFixed(2))
}

func TestApplyMonthlyInterestCheckingNoOp(t *testing.T) {
	account := newChecking("1000.00")
	assert.True(t, account.ApplyMonthlyInterest().IsZero())
	assert.Equal(t, "1000.00", account.Balance().StringFixed(2))
}

func TestCanClose(t *testing.T) {
	account := newChecking("0")
	assert.True(t, account.CanClose())

	account.Deposit(dec("0.01"))
	assert.False(t, account.CanClose())

	account.Withdraw(dec("0.01"))
	assert.True(t, account.CanClose())
}

func TestHistoryIsDefensiveCopy(t *testing.T) {
	account := newChecking("100.00")
	account.Record(domain.NewSuccessRecord("tx-1", domain.TxDeposit, dec("100.00"), dec("0"), dec("100.00")))

	history := account.History()
	require.Len(t, history, 1)
	history[0].ID = "tampered"

	assert.Equal(t, "tx-1", account.History()[0].ID)
}

func TestHistoryBetween(t *testing.T) {
	account := newChecking("100.00")
	account.Record(domain.NewSuccessRecord("tx-1", domain.TxDeposit, dec("1.00"), dec("0"), dec("1.00")))
	account.Record(domain.NewSuccessRecord("tx-2", domain.TxDeposit, dec("1.00"), dec("1.00"), dec("2.00")))
	account.Record(domain.NewSuccessRecord("tx-3", domain.TxDeposit, dec("1.00"), dec("2.00"), dec("3.00")))

	history := account.History()

	// The range is closed on both ends.
	got := account.HistoryBetween(history[1].Timestamp, history[1].Timestamp)
	require.NotEmpty(t, got)
	ids := make([]string, 0, len(got))
	for _, rec := range got {
		ids = append(ids, rec.ID)
	}
	assert.Contains(t, ids, "tx-2")

	got = account.HistoryBetween(history[0].Timestamp, history[2].Timestamp)
	assert.Len(t, got, 3)

	got = account.HistoryBetween(history[2].Timestamp.Add(time.Second), history[2].Timestamp.Add(time.Hour))
	assert.Empty(t, got)
}
