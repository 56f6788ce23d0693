package models

import "github.com/shopspring/decimal"

// Party is a seller or buyer block of an invoice.
type Party struct {
	NIP         string
	Name        string
	Address     []string
	CountryCode string
}

// InvoiceLine is one FaWiersz row.
type InvoiceLine struct {
	Number    string
	Name      string
	Unit      string
	Quantity  string
	UnitPrice decimal.NullDecimal
	NetValue  decimal.NullDecimal
	VATRate   string
}

// Invoice is the subset of an FA document shown on the rendered PDF.
type Invoice struct {
	FormCode     string
	SystemInfo   string
	CreationDate string

	Number     string
	Kind       string
	IssueDate  string
	IssuePlace string
	SaleDate   string
	Currency   string

	Seller Party
	Buyer  Party
	Lines  []InvoiceLine

	// GrossTotal is P_15 when present.
	GrossTotal decimal.NullDecimal

	DueDate     string
	PaymentForm string
	BankAccount string
}

// NetTotal sums the net values of all lines that carry one.
func (inv Invoice) NetTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range inv.Lines {
		if l.NetValue.Valid {
			total = total.Add(l.NetValue.Decimal)
		}
	}
	return total
}

// Total returns P_15 when present and the sum of line net values otherwise.
func (inv Invoice) Total() decimal.Decimal {
	if inv.GrossTotal.Valid {
		return inv.GrossTotal.Decimal
	}
	return inv.NetTotal()
}

// UPODocument is one acknowledged document inside a UPO.
type UPODocument struct {
	KSeFNumber    string
	InvoiceNumber string
	SellerNIP     string
	InvoiceDate   string
	SentAt        string
	AssignedAt    string
	Hash          string
}

// UPO is the subset of a receipt confirmation shown on the rendered PDF.
type UPO struct {
	ReceivingEntity  string
	SessionReference string
	ContextNIP       string
	Documents        []UPODocument
}
