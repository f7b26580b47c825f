package repository

import "database/sql"

// Stores bundles every repository over one database handle so services and
// handlers take a single dependency.
type Stores struct {
	DB             *DB
	Accounts       *AccountRepository
	Customers      *CustomerRepository
	Vendors        *VendorRepository
	Items          *ItemRepository
	Entries        *GLEntryRepository
	Sequences      *NumberSequenceRepository
	Invoices       *InvoiceRepository
	SalesReceipts  *SalesReceiptRepository
	CreditMemos    *CreditMemoRepository
	Payments       *ReceivePaymentRepository
	Estimates      *EstimateRepository
	Bills          *BillRepository
	BillPayments   *BillPaymentRepository
	VendorCredits  *VendorCreditRepository
	PurchaseOrders *PurchaseOrderRepository
	Checks         *CheckRepository
	Deposits       *DepositRepository
	Transfers      *TransferRepository
	Journals       *JournalEntryRepository
}

func NewStores(pool *sql.DB) *Stores {
	return &Stores{
		DB:             NewDB(pool),
		Accounts:       NewAccountRepository(pool),
		Customers:      NewCustomerRepository(pool),
		Vendors:        NewVendorRepository(pool),
		Items:          NewItemRepository(pool),
		Entries:        NewGLEntryRepository(pool),
		Sequences:      NewNumberSequenceRepository(pool),
		Invoices:       NewInvoiceRepository(pool),
		SalesReceipts:  NewSalesReceiptRepository(pool),
		CreditMemos:    NewCreditMemoRepository(pool),
		Payments:       NewReceivePaymentRepository(pool),
		Estimates:      NewEstimateRepository(pool),
		Bills:          NewBillRepository(pool),
		BillPayments:   NewBillPaymentRepository(pool),
		VendorCredits:  NewVendorCreditRepository(pool),
		PurchaseOrders: NewPurchaseOrderRepository(pool),
		Checks:         NewCheckRepository(pool),
		Deposits:       NewDepositRepository(pool),
		Transfers:      NewTransferRepository(pool),
		Journals:       NewJournalEntryRepository(pool),
	}
}
