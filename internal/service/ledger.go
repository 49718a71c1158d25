// Package service implements the ledger: the sole coordinator of shared
// account state. Only the ledger mutates accounts and only the ledger
// constructs transaction records.
//
// Failure semantics: a missing account is caller misuse and returns a hard
// *errors.AppError; a business-rule rejection (insufficient funds, minimum
// balance, withdrawal limit, same-account transfer, non-positive amount) is
// expected control flow and comes back as a FAILED record, so every rejected
// attempt still lands in the audit trail.
package service

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
	"banking-ledger/internal/idgen"
	"banking-ledger/internal/logging"
	"banking-ledger/internal/validation"
)

// Ledger owns the account directory and the per-account locking discipline.
// The directory lock guards only lookup, insertion and removal; it is never
// held while an account's own lock is taken, so operations on unrelated
// accounts proceed in parallel.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	ids      idgen.Generator
	logger   *slog.Logger
}

// NewLedger creates an empty ledger. A nil logger disables logging; the
// logger is side-channel only and never changes behavior.
func NewLedger(ids idgen.Generator, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Ledger{
		accounts: make(map[string]*domain.Account),
		ids:      ids,
		logger:   logger,
	}
}

// OpenAccount validates the owner name and opening deposit for the kind,
// registers a fresh account and records the opening deposit as its first
// transaction. Validation failures here are hard errors: nothing is
// registered and no record is produced.
func (l *Ledger) OpenAccount(owner string, kind domain.AccountKind, initialDeposit decimal.Decimal) (*domain.Account, error) {
	if v := validation.CustomerName(owner); !v.OK() {
		return nil, errors.NewAppError(errors.InvalidInput, v.Reason())
	}
	if v := validation.InitialDeposit(kind, initialDeposit); !v.OK() {
		return nil, errors.NewAppError(errors.InvalidInput, v.Reason())
	}

	account := domain.NewAccount(l.ids.NextAccountNumber(), strings.TrimSpace(owner), kind, initialDeposit)
	if initialDeposit.IsPositive() {
		account.Record(domain.NewSuccessRecord(
			l.ids.NextTransactionID(), domain.TxDeposit, initialDeposit, decimal.Zero, initialDeposit))
	}

	l.mu.Lock()
	l.accounts[account.Number] = account
	l.mu.Unlock()

	l.logger.Info("account opened",
		"account_number", account.Number,
		"kind", kind,
		"owner", account.Owner,
		"initial_deposit", initialDeposit)
	return account, nil
}

// CloseAccount removes an account from the directory. Both failure cases are
// hard errors with distinct codes: errors.ErrAccountNotFound for an unknown
// number, errors.ErrAccountNotEmpty for a non-zero balance.
func (l *Ledger) CloseAccount(accountNumber string) error {
	account, err := l.lockAccount(accountNumber)
	if err != nil {
		return err
	}
	defer account.Unlock()

	if v := validation.AccountClosure(account); !v.OK() {
		return errors.NewAppErrorf(errors.AccountNotEmpty, "account %s cannot be closed: %s", accountNumber, v.Reason())
	}

	account.Close()
	l.mu.Lock()
	delete(l.accounts, accountNumber)
	l.mu.Unlock()

	l.logger.Info("account closed", "account_number", accountNumber)
	return nil
}

// Deposit credits an account. A rejected deposit returns a FAILED record,
// not an error; only an unknown account number errors.
func (l *Ledger) Deposit(accountNumber string, amount decimal.Decimal) (domain.TransactionRecord, error) {
	account, err := l.lockAccount(accountNumber)
	if err != nil {
		return domain.TransactionRecord{}, err
	}
	defer account.Unlock()

	before := account.Balance()
	var rec domain.TransactionRecord
	if v := validation.Deposit(amount); !v.OK() {
		rec = domain.NewFailedRecord(l.ids.NextTransactionID(), domain.TxDeposit, amount, before, v.Reason())
		l.logger.Warn("deposit rejected",
			"account_number", accountNumber, "amount", amount, "reason", v.Reason())
	} else {
		after := account.Deposit(amount)
		rec = domain.NewSuccessRecord(l.ids.NextTransactionID(), domain.TxDeposit, amount, before, after)
		l.logger.Info("deposit completed",
			"account_number", accountNumber, "amount", amount, "balance", after)
	}
	account.Record(rec)
	return rec, nil
}

// Withdraw debits an account, subject to the account's withdrawal rules.
// Same failure semantics as Deposit.
func (l *Ledger) Withdraw(accountNumber string, amount decimal.Decimal) (domain.TransactionRecord, error) {
	account, err := l.lockAccount(accountNumber)
	if err != nil {
		return domain.TransactionRecord{}, err
	}
	defer account.Unlock()

	before := account.Balance()
	var rec domain.TransactionRecord
	if v := validation.Withdrawal(account, amount); !v.OK() {
		rec = domain.NewFailedRecord(l.ids.NextTransactionID(), domain.TxWithdrawal, amount, before, v.Reason())
		l.logger.Warn("withdrawal rejected",
			"account_number", accountNumber, "amount", amount, "reason", v.Reason())
	} else {
		after := account.Withdraw(amount)
		rec = domain.NewSuccessRecord(l.ids.NextTransactionID(), domain.TxWithdrawal, amount, before, after)
		l.logger.Info("withdrawal completed",
			"account_number", accountNumber, "amount", amount, "balance", after)
	}
	account.Record(rec)
	return rec, nil
}

// Transfer moves funds between two accounts as one atomic operation: both
// account locks are held, acquired in canonical order by account number, so
// opposite-direction transfers cannot deadlock and no observer ever sees
// money gone from one side but not yet arrived on the other. A rejected
// transfer produces a FAILED record on each leg and mutates nothing.
func (l *Ledger) Transfer(fromNumber, toNumber string, amount decimal.Decimal) (domain.TransferResult, error) {
	from, err := l.lookup(fromNumber)
	if err != nil {
		return domain.TransferResult{}, err
	}
	to, err := l.lookup(toNumber)
	if err != nil {
		return domain.TransferResult{}, err
	}

	lockOrdered(from, to)
	defer unlockBoth(from, to)

	if from.Closed() {
		return domain.TransferResult{}, notFound(fromNumber)
	}
	if to.Closed() {
		return domain.TransferResult{}, notFound(toNumber)
	}

	fromBefore := from.Balance()
	toBefore := to.Balance()

	if v := validation.Transfer(from, to, amount); !v.OK() {
		result := domain.TransferResult{
			Withdrawal: domain.NewFailedRecord(l.ids.NextTransactionID(), domain.TxTransfer, amount, fromBefore, v.Reason()),
			Deposit:    domain.NewFailedRecord(l.ids.NextTransactionID(), domain.TxTransfer, amount, toBefore, v.Reason()),
		}
		from.Record(result.Withdrawal)
		to.Record(result.Deposit)
		l.logger.Warn("transfer rejected",
			"from", fromNumber, "to", toNumber, "amount", amount, "reason", v.Reason())
		return result, nil
	}

	fromAfter := from.Withdraw(amount)
	toAfter := to.Deposit(amount)

	result := domain.TransferResult{
		Withdrawal: domain.NewSuccessRecord(l.ids.NextTransactionID(), domain.TxTransfer, amount, fromBefore, fromAfter),
		Deposit:    domain.NewSuccessRecord(l.ids.NextTransactionID(), domain.TxTransfer, amount, toBefore, toAfter),
	}
	from.Record(result.Withdrawal)
	to.Record(result.Deposit)

	l.logger.Info("transfer completed",
		"from", fromNumber, "to", toNumber, "amount", amount,
		"from_balance", fromAfter, "to_balance", toAfter)
	return result, nil
}

// Balance reads an account's current balance under its lock.
func (l *Ledger) Balance(accountNumber string) (decimal.Decimal, error) {
	account, err := l.lockAccount(accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	defer account.Unlock()
	return account.Balance(), nil
}

// TransactionHistory returns a defensive copy of an account's full history.
func (l *Ledger) TransactionHistory(accountNumber string) ([]domain.TransactionRecord, error) {
	account, err := l.lockAccount(accountNumber)
	if err != nil {
		return nil, err
	}
	defer account.Unlock()
	return account.History(), nil
}

// TransactionHistoryBetween returns the records whose timestamps fall inside
// the closed range [from, to].
func (l *Ledger) TransactionHistoryBetween(accountNumber string, from, to time.Time) ([]domain.TransactionRecord, error) {
	account, err := l.lockAccount(accountNumber)
	if err != nil {
		return nil, err
	}
	defer account.Unlock()
	return account.HistoryBetween(from, to), nil
}

// ApplyMonthlyInterest credits interest on every savings account, records
// each credit as a deposit transaction and returns the grand total paid.
func (l *Ledger) ApplyMonthlyInterest() decimal.Decimal {
	total := decimal.Zero
	for _, account := range l.Accounts() {
		account.Lock()
		if account.Closed() {
			account.Unlock()
			continue
		}
		before := account.Balance()
		interest := account.ApplyMonthlyInterest()
		if interest.IsPositive() {
			account.Record(domain.NewSuccessRecord(
				l.ids.NextTransactionID(), domain.TxDeposit, interest, before, account.Balance()))
			total = total.Add(interest)
			l.logger.Info("interest applied",
				"account_number", account.Number, "interest", interest, "balance", account.Balance())
		}
		account.Unlock()
	}
	return total
}

// ApplyMonthlyFeesAndResetCounters charges excess-transaction fees on
// checking accounts, records each charge as a withdrawal transaction, starts
// a new billing cycle on every account and returns the total fees charged.
func (l *Ledger) ApplyMonthlyFeesAndResetCounters() decimal.Decimal {
	total := decimal.Zero
	for _, account := range l.Accounts() {
		account.Lock()
		if account.Closed() {
			account.Unlock()
			continue
		}
		before := account.Balance()
		fee := account.ApplyMonthlyFee()
		if fee.IsPositive() {
			account.Record(domain.NewSuccessRecord(
				l.ids.NextTransactionID(), domain.TxWithdrawal, fee, before, account.Balance()))
			total = total.Add(fee)
			l.logger.Info("monthly fee charged",
				"account_number", account.Number, "fee", fee, "balance", account.Balance())
		}
		account.ResetMonthlyCounters()
		account.Unlock()
	}
	return total
}

// Accounts returns a snapshot of the directory values. The slice is a
// defensive copy; the accounts themselves are the live shared entities.
func (l *Ledger) Accounts() []*domain.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*domain.Account, 0, len(l.accounts))
	for _, account := range l.accounts {
		out = append(out, account)
	}
	return out
}

// lookup resolves an account number under the directory read lock. The read
// lock is released before the caller takes the account's own lock.
func (l *Ledger) lookup(accountNumber string) (*domain.Account, error) {
	l.mu.RLock()
	account, ok := l.accounts[accountNumber]
	l.mu.RUnlock()
	if !ok {
		return nil, notFound(accountNumber)
	}
	return account, nil
}

// lockAccount resolves and locks an account, re-checking the closed flag
// after acquiring the lock in case a concurrent close won the race.
func (l *Ledger) lockAccount(accountNumber string) (*domain.Account, error) {
	account, err := l.lookup(accountNumber)
	if err != nil {
		return nil, err
	}
	account.Lock()
	if account.Closed() {
		account.Unlock()
		return nil, notFound(accountNumber)
	}
	return account, nil
}

func notFound(accountNumber string) error {
	return errors.NewAppErrorf(errors.AccountNotFound, "account %s not found", accountNumber)
}

// lockOrdered acquires both account locks in a direction-independent order,
// lexically by account number, eliminating circular waits between
// concurrent opposite-direction transfers. A same-account pair locks once.
func lockOrdered(a, b *domain.Account) {
	if a == b {
		a.Lock()
		return
	}
	if strings.Compare(a.Number, b.Number) > 0 {
		a, b = b, a
	}
	a.Lock()
	b.Lock()
}

func unlockBoth(a, b *domain.Account) {
	if a == b {
		a.Unlock()
		return
	}
	a.Unlock()
	b.Unlock()
}
