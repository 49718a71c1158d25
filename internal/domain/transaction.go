package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TxDeposit    TransactionKind = "DEPOSIT"
	TxWithdrawal TransactionKind = "WITHDRAWAL"
	TxTransfer   TransactionKind = "TRANSFER"
)

type TransactionOutcome string

const (
	TxSuccess TransactionOutcome = "SUCCESS"
	TxFailed  TransactionOutcome = "FAILED"
)

// TransactionRecord is an immutable audit entry for one attempted operation,
// successful or not. Exactly one record is produced per attempt and appended
// to the affected account's history; transfers produce one record per leg.
type TransactionRecord struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Kind          TransactionKind    `json:"kind"`
	Amount        decimal.Decimal    `json:"amount"`
	BalanceBefore decimal.Decimal    `json:"balance_before"`
	BalanceAfter  decimal.Decimal    `json:"balance_after"`
	Outcome       TransactionOutcome `json:"outcome"`
	FailureReason string             `json:"failure_reason,omitempty"`
}

// NewSuccessRecord builds a SUCCESS record. The constructor shape makes a
// success-with-reason record unrepresentable.
func NewSuccessRecord(id string, kind TransactionKind, amount, before, after decimal.Decimal) TransactionRecord {
	if id == "" {
		panic("domain: transaction record requires an ID")
	}
	return TransactionRecord{
		ID:            id,
		Timestamp:     time.Now().UTC(),
		Kind:          kind,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Outcome:       TxSuccess,
	}
}

// NewFailedRecord builds a FAILED record for a rejected attempt. The balance
// is unchanged by a rejection, so it appears as both before and after.
// A failed record without a reason is a programming bug and panics.
func NewFailedRecord(id string, kind TransactionKind, amount, balance decimal.Decimal, reason string) TransactionRecord {
	if id == "" {
		panic("domain: transaction record requires an ID")
	}
	if reason == "" {
		panic("domain: failed transaction record requires a failure reason")
	}
	return TransactionRecord{
		ID:            id,
		Timestamp:     time.Now().UTC(),
		Kind:          kind,
		Amount:        amount,
		BalanceBefore: balance,
		BalanceAfter:  balance,
		Outcome:       TxFailed,
		FailureReason: reason,
	}
}

// TransferResult pairs the two records a transfer attempt produces: the
// withdrawal leg on the source account and the deposit leg on the
// destination. Both legs always share the same outcome.
type TransferResult struct {
	Withdrawal TransactionRecord `json:"withdrawal"`
	Deposit    TransactionRecord `json:"deposit"`
}

// Succeeded reports whether the transfer went through.
func (r TransferResult) Succeeded() bool {
	return r.Withdrawal.Outcome == TxSuccess
}
