package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeBank                  AccountType = "bank"
	AccountTypeAccountsReceivable    AccountType = "accounts_receivable"
	AccountTypeOtherCurrentAsset     AccountType = "other_current_asset"
	AccountTypeFixedAsset            AccountType = "fixed_asset"
	AccountTypeOtherAsset            AccountType = "other_asset"
	AccountTypeAccountsPayable       AccountType = "accounts_payable"
	AccountTypeCreditCard            AccountType = "credit_card"
	AccountTypeOtherCurrentLiability AccountType = "other_current_liability"
	AccountTypeLongTermLiability     AccountType = "long_term_liability"
	AccountTypeEquity                AccountType = "equity"
	AccountTypeIncome                AccountType = "income"
	AccountTypeOtherIncome           AccountType = "other_income"
	AccountTypeCostOfGoodsSold       AccountType = "cost_of_goods_sold"
	AccountTypeExpense               AccountType = "expense"
	AccountTypeOtherExpense          AccountType = "other_expense"
)

// IsDebitNormal reports whether balances of this account type increase on the
// debit side by accounting convention.
func (t AccountType) IsDebitNormal() bool {
	switch t {
	case AccountTypeBank, AccountTypeAccountsReceivable, AccountTypeOtherCurrentAsset,
		AccountTypeFixedAsset, AccountTypeOtherAsset,
		AccountTypeCostOfGoodsSold, AccountTypeExpense, AccountTypeOtherExpense:
		return true
	}
	return false
}

type Account struct {
	ID              uuid.UUID
	Number          *string
	Name            string
	AccountType     AccountType
	ParentID        *uuid.UUID
	IsSubAccount    bool
	Balance         decimal.Decimal
	OpeningBalance  decimal.Decimal
	IsActive        bool
	IsDebitNormal   bool
	IsSystemAccount bool
	Description     *string
	Version         int64
	CreatedAt       time.Time
}

// NormalEffect returns the signed balance change this debit/credit pair has on
// the account, honoring its normal side.
func (a *Account) NormalEffect(debit, credit decimal.Decimal) decimal.Decimal {
	if a.IsDebitNormal {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}
