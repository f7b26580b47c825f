package posting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

// Validate checks a proposed entry set before anything is persisted. Each
// entry must carry a non-negative amount on one side only, mirroring the
// gl_entries table constraints, and total debits must equal total credits.
// Amounts are fixed-point decimals, so the comparison is exact, with no
// tolerance.
func Validate(entries []domain.GLEntry) error {
	debits, credits := decimal.Zero, decimal.Zero
	for i := range entries {
		e := &entries[i]
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("Validate: entry %d: %w", i, domain.ErrInvalidAmount)
		}
		if e.Debit.IsPositive() && e.Credit.IsPositive() {
			return fmt.Errorf("Validate: entry %d: debit and credit both set: %w", i, domain.ErrInvalidAmount)
		}
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	if !debits.Equal(credits) {
		return &domain.UnbalancedError{Debits: debits, Credits: credits}
	}
	return nil
}
