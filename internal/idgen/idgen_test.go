package idgen_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking-ledger/internal/idgen"
)

func TestAccountNumbersAreSequentialAndLexical(t *testing.T) {
	gen := idgen.NewSequence()

	first := gen.NextAccountNumber()
	second := gen.NextAccountNumber()

	assert.Equal(t, "ACC-000001", first)
	assert.Equal(t, "ACC-000002", second)
	assert.Less(t, first, second, "zero-padding keeps lexical order aligned with issue order")
}

func TestConcurrentGenerationNeverCollides(t *testing.T) {
	gen := idgen.NewSequence()

	const workers = 32
	const perWorker = 200

	results := make(chan string, workers*perWorker*2)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				results <- gen.NextAccountNumber()
				results <- gen.NextTransactionID()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]struct{}, workers*perWorker*2)
	for id := range results {
		_, dup := seen[id]
		require.False(t, dup, "duplicate identifier %q", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker*2)
}
