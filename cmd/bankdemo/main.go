package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"banking-ledger/internal/config"
	"banking-ledger/internal/domain"
	"banking-ledger/internal/idgen"
	"banking-ledger/internal/logging"
	"banking-ledger/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting demo", "app", cfg.AppName)

	ledger := service.NewLedger(idgen.NewSequence(), logger)

	if err := run(ledger); err != nil {
		logger.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run(ledger *service.Ledger) error {
	checking, err := ledger.OpenAccount("Alice Example", domain.Checking, dec("1000.00"))
	if err != nil {
		return err
	}
	savings, err := ledger.OpenAccount("Bob Example", domain.Savings, dec("500.00"))
	if err != nil {
		return err
	}

	if _, err := ledger.Deposit(checking.Number, dec("250.00")); err != nil {
		return err
	}
	if _, err := ledger.Withdraw(checking.Number, dec("75.50")); err != nil {
		return err
	}

	// Rejected attempt: lands in the audit trail as a FAILED record.
	rec, err := ledger.Withdraw(savings.Number, dec("450.00"))
	if err != nil {
		return err
	}
	if rec.Outcome == domain.TxFailed {
		fmt.Printf("withdrawal rejected: %s\n", rec.FailureReason)
	}

	if _, err := ledger.Transfer(checking.Number, savings.Number, dec("100.00")); err != nil {
		return err
	}

	interest := ledger.ApplyMonthlyInterest()
	fees := ledger.ApplyMonthlyFeesAndResetCounters()
	fmt.Printf("month end: interest paid %s, fees charged %s\n",
		interest.StringFixed(2), fees.StringFixed(2))

	for _, number := range []string{checking.Number, savings.Number} {
		statement, err := ledger.MonthlyStatement(number)
		if err != nil {
			return err
		}
		fmt.Println(statement)
	}
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
