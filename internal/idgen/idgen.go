// Package idgen provides the identifier service the ledger consumes. Its
// only contract is that concurrent calls never return a duplicate.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator supplies unique account numbers and transaction IDs.
type Generator interface {
	NextAccountNumber() string
	NextTransactionID() string
}

// Sequence issues monotonic account numbers from an atomic counter and
// random transaction IDs. Zero-padding keeps account numbers lexically
// ordered, which the ledger relies on for canonical lock ordering.
type Sequence struct {
	counter atomic.Int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) NextAccountNumber() string {
	return fmt.Sprintf("ACC-%06d", s.counter.Add(1))
}

func (s *Sequence) NextTransactionID() string {
	return uuid.NewString()
}
