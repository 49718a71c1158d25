package service

import (
	"fmt"
	"strings"
)

// MonthlyStatement renders an account's transaction history and ending
// balance as human-readable text.
func (l *Ledger) MonthlyStatement(accountNumber string) (string, error) {
	account, err := l.lockAccount(accountNumber)
	if err != nil {
		return "", err
	}
	defer account.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Monthly Statement for %s (%s)\n", account.Number, account.Kind)
	fmt.Fprintf(&b, "Owner: %s\n", account.Owner)
	b.WriteString(strings.Repeat("-", 72) + "\n")

	history := account.History()
	if len(history) == 0 {
		b.WriteString("No transactions this period.\n")
	}
	for _, rec := range history {
		fmt.Fprintf(&b, "%s  %-10s  %10s  %-7s  balance %s",
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Kind,
			rec.Amount.StringFixed(2),
			rec.Outcome,
			rec.BalanceAfter.StringFixed(2))
		if rec.FailureReason != "" {
			fmt.Fprintf(&b, "  (%s)", rec.FailureReason)
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("-", 72) + "\n")
	fmt.Fprintf(&b, "Ending balance: %s\n", account.Balance().StringFixed(2))
	return b.String(), nil
}
