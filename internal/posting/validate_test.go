package posting

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		debits  []string
		credits []string
		wantErr bool
	}{
		{"balanced pair", []string{"100.00"}, []string{"100.00"}, false},
		{"balanced split", []string{"1090.00"}, []string{"1000.00", "90.00"}, false},
		{"empty set", nil, nil, false},
		{"debit heavy", []string{"100.00"}, []string{"99.99"}, true},
		{"credit heavy", []string{"0.01"}, []string{"0.02"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []domain.GLEntry
			for _, d := range tt.debits {
				entries = append(entries, domain.GLEntry{Debit: dec(d), Credit: decimal.Zero})
			}
			for _, c := range tt.credits {
				entries = append(entries, domain.GLEntry{Debit: decimal.Zero, Credit: dec(c)})
			}

			err := Validate(entries)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrUnbalancedEntry))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_RejectsBadAmounts(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.GLEntry
	}{
		{"negative debit", []domain.GLEntry{
			{Debit: dec("-50.00")},
			{Credit: dec("-50.00")},
		}},
		{"negative credit", []domain.GLEntry{
			{Debit: dec("50.00")},
			{Credit: dec("-50.00")},
		}},
		{"both sides set", []domain.GLEntry{
			{Debit: dec("50.00"), Credit: dec("50.00")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entries)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
		})
	}
}

func TestValidate_ReportsTotals(t *testing.T) {
	err := Validate([]domain.GLEntry{
		{Debit: dec("100.00")},
		{Credit: dec("60.00")},
	})
	require.Error(t, err)

	var unbalanced *domain.UnbalancedError
	require.True(t, errors.As(err, &unbalanced))
	assert.True(t, unbalanced.Debits.Equal(dec("100.00")))
	assert.True(t, unbalanced.Credits.Equal(dec("60.00")))
}
