package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountTypeIsDebitNormal(t *testing.T) {
	debitNormal := []AccountType{
		AccountTypeBank, AccountTypeAccountsReceivable, AccountTypeOtherCurrentAsset,
		AccountTypeFixedAsset, AccountTypeOtherAsset,
		AccountTypeCostOfGoodsSold, AccountTypeExpense, AccountTypeOtherExpense,
	}
	creditNormal := []AccountType{
		AccountTypeAccountsPayable, AccountTypeCreditCard, AccountTypeOtherCurrentLiability,
		AccountTypeLongTermLiability, AccountTypeEquity,
		AccountTypeIncome, AccountTypeOtherIncome,
	}

	for _, at := range debitNormal {
		assert.True(t, at.IsDebitNormal(), "%s should be debit normal", at)
	}
	for _, at := range creditNormal {
		assert.False(t, at.IsDebitNormal(), "%s should be credit normal", at)
	}
}

func TestAccountNormalEffect(t *testing.T) {
	debit := decimal.RequireFromString("100.00")
	credit := decimal.RequireFromString("30.00")

	bank := &Account{IsDebitNormal: true}
	assert.True(t, bank.NormalEffect(debit, credit).Equal(decimal.RequireFromString("70.00")))

	income := &Account{IsDebitNormal: false}
	assert.True(t, income.NormalEffect(debit, credit).Equal(decimal.RequireFromString("-70.00")))
}

func TestGLEntryReversal(t *testing.T) {
	memo := "Invoice INV-00001"
	original := &GLEntry{
		ID:          uuid.New(),
		PostingDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		AccountID:   uuid.New(),
		Debit:       decimal.RequireFromString("1090.00"),
		Credit:      decimal.Zero,
		DocType:     DocTypeInvoice,
		DocID:       uuid.New(),
		Memo:        &memo,
	}

	voidDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rev := original.Reversal(voidDate)

	assert.NotEqual(t, original.ID, rev.ID)
	assert.Equal(t, voidDate, rev.PostingDate)
	assert.Equal(t, original.AccountID, rev.AccountID)
	assert.True(t, rev.Debit.Equal(original.Credit))
	assert.True(t, rev.Credit.Equal(original.Debit))
	assert.Equal(t, original.DocID, rev.DocID)
	assert.Equal(t, "VOID: Invoice INV-00001", *rev.Memo)
	assert.True(t, rev.IsVoid)
}

func TestDocTypeIsPosting(t *testing.T) {
	assert.False(t, DocTypeEstimate.IsPosting())
	assert.False(t, DocTypePurchaseOrder.IsPosting())
	assert.True(t, DocTypeInvoice.IsPosting())
	assert.True(t, DocTypeJournalEntry.IsPosting())
}
