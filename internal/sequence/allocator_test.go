package sequence_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-dev/openbooks/internal/domain"
	"github.com/openbooks-dev/openbooks/internal/repository"
	"github.com/openbooks-dev/openbooks/internal/sequence"
	"github.com/openbooks-dev/openbooks/internal/testutil"
)

func TestAllocator_Prefix(t *testing.T) {
	alloc := sequence.NewAllocator(nil, nil, map[string]string{"check": "CHQ-"})

	assert.Equal(t, "INV-", alloc.Prefix(domain.DocTypeInvoice))
	assert.Equal(t, "BILL-", alloc.Prefix(domain.DocTypeBill))
	assert.Equal(t, "JE-", alloc.Prefix(domain.DocTypeJournalEntry))
	// Configured override wins over the well-known default.
	assert.Equal(t, "CHQ-", alloc.Prefix(domain.DocTypeCheck))
	// Unknown types fall back to "{type}-".
	assert.Equal(t, "transfer-", alloc.Prefix(domain.DocTypeTransfer))
}

func TestAllocator_Sequential(t *testing.T) {
	db := testutil.SetupTestDB(t)
	stores := repository.NewStores(db)
	alloc := sequence.NewAllocator(stores.DB, stores.Sequences, nil)
	ctx := context.Background()

	first, err := alloc.Allocate(ctx, domain.DocTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, "INV-00001", first)

	second, err := alloc.Allocate(ctx, domain.DocTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, "INV-00002", second)

	// A different document type runs its own counter.
	other, err := alloc.Allocate(ctx, domain.DocTypeBill)
	require.NoError(t, err)
	assert.Equal(t, "BILL-00001", other)
}

func TestAllocator_ConcurrentAllocationsAreUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	stores := repository.NewStores(db)
	alloc := sequence.NewAllocator(stores.DB, stores.Sequences, nil)
	ctx := context.Background()

	const n = 20
	results := make(chan string, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := alloc.Allocate(ctx, domain.DocTypeInvoice)
			if err != nil {
				t.Error(err)
				return
			}
			results <- number
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for number := range results {
		assert.False(t, seen[number], "duplicate number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, n)

	// The counter advanced by exactly n.
	seq, err := stores.Sequences.Get(ctx, string(domain.DocTypeInvoice))
	require.NoError(t, err)
	assert.Equal(t, int64(n+1), seq.NextNumber)
}
