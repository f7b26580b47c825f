package domain

// DocType identifies the business-transaction kind that determines
// entry-generation rules.
type DocType string

const (
	DocTypeInvoice        DocType = "invoice"
	DocTypeSalesReceipt   DocType = "sales_receipt"
	DocTypeCreditMemo     DocType = "credit_memo"
	DocTypeReceivePayment DocType = "receive_payment"
	DocTypeEstimate       DocType = "estimate"
	DocTypeBill           DocType = "bill"
	DocTypeBillPayment    DocType = "bill_payment"
	DocTypeVendorCredit   DocType = "vendor_credit"
	DocTypePurchaseOrder  DocType = "purchase_order"
	DocTypeCheck          DocType = "check"
	DocTypeDeposit        DocType = "deposit"
	DocTypeTransfer       DocType = "transfer"
	DocTypeJournalEntry   DocType = "journal_entry"
)

// IsPosting reports whether documents of this type produce GL entries.
// Estimates and purchase orders are memo documents: saving one never
// touches the ledger.
func (t DocType) IsPosting() bool {
	switch t {
	case DocTypeEstimate, DocTypePurchaseOrder:
		return false
	}
	return true
}

type DocStatus string

const (
	DocStatusDraft  DocStatus = "draft"
	DocStatusPosted DocStatus = "posted"
	DocStatusVoided DocStatus = "voided"
)
