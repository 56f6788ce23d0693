// Package xmlutils provides XML-related utility functions used throughout the application.
package xmlutils

// Invoice contains the XPath expressions used to read FA(2)/FA(3) invoices.
// Paths inside Line are relative to a single Fa/FaWiersz node.
type Invoice struct {
	Root string

	Header struct {
		FormCode     string
		SystemInfo   string
		CreationDate string
	}

	Seller Party
	Buyer  Party

	Fa struct {
		Currency    string
		IssueDate   string
		IssuePlace  string
		Number      string
		SaleDate    string
		Kind        string
		GrossTotal  string
		DueDate     string
		PaymentForm string
		BankAccount string
		Lines       string
	}

	Line struct {
		Number    string
		Name      string
		Unit      string
		Quantity  string
		UnitPrice string
		NetValue  string
		VATRate   string
	}
}

// Party holds the XPath expressions for one Podmiot block.
type Party struct {
	NIP         string
	Name        string
	AddressL1   string
	AddressL2   string
	CountryCode string
}

// UPO contains the XPath expressions used to read UPO receipts.
// Paths inside Document are relative to a single Dokument node.
type UPO struct {
	Root             string
	ReceivingEntity  string
	SessionReference string
	ContextNIP       string
	Documents        string

	Document struct {
		KSeFNumber    string
		InvoiceNumber string
		SellerNIP     string
		InvoiceDate   string
		SentAt        string
		AssignedAt    string
		Hash          string
	}
}

// DefaultInvoiceXPaths returns the XPath expressions for the FA schema
func DefaultInvoiceXPaths() Invoice {
	x := Invoice{Root: "/Faktura"}

	x.Header.FormCode = "/Faktura/Naglowek/KodFormularza"
	x.Header.SystemInfo = "/Faktura/Naglowek/SystemInfo"
	x.Header.CreationDate = "/Faktura/Naglowek/DataWytworzeniaFa"

	x.Seller = partyXPaths("/Faktura/Podmiot1")
	x.Buyer = partyXPaths("/Faktura/Podmiot2")

	x.Fa.Currency = "/Faktura/Fa/KodWaluty"
	x.Fa.IssueDate = "/Faktura/Fa/P_1"
	x.Fa.IssuePlace = "/Faktura/Fa/P_1M"
	x.Fa.Number = "/Faktura/Fa/P_2"
	x.Fa.SaleDate = "/Faktura/Fa/P_6"
	x.Fa.Kind = "/Faktura/Fa/RodzajFaktury"
	x.Fa.GrossTotal = "/Faktura/Fa/P_15"
	x.Fa.DueDate = "/Faktura/Fa/Platnosc/TerminPlatnosci/Termin"
	x.Fa.PaymentForm = "/Faktura/Fa/Platnosc/FormaPlatnosci"
	x.Fa.BankAccount = "/Faktura/Fa/Platnosc/RachunekBankowy/NrRB"
	x.Fa.Lines = "/Faktura/Fa/FaWiersz"

	x.Line.Number = "NrWierszaFa"
	x.Line.Name = "P_7"
	x.Line.Unit = "P_8A"
	x.Line.Quantity = "P_8B"
	x.Line.UnitPrice = "P_9A"
	x.Line.NetValue = "P_11"
	x.Line.VATRate = "P_12"

	return x
}

func partyXPaths(base string) Party {
	return Party{
		NIP:         base + "/DaneIdentyfikacyjne/NIP",
		Name:        base + "/DaneIdentyfikacyjne/Nazwa",
		AddressL1:   base + "/Adres/AdresL1",
		AddressL2:   base + "/Adres/AdresL2",
		CountryCode: base + "/Adres/KodKraju",
	}
}

// DefaultUPOXPaths returns the XPath expressions for UPO receipts
func DefaultUPOXPaths() UPO {
	x := UPO{
		Root:             "/Potwierdzenie",
		ReceivingEntity:  "/Potwierdzenie/NazwaPodmiotuPrzyjmujacego",
		SessionReference: "/Potwierdzenie/NumerReferencyjnySesji",
		ContextNIP:       "/Potwierdzenie/Uwierzytelnienie/IdKontekstu/Nip",
		Documents:        "/Potwierdzenie/Dokument",
	}

	x.Document.KSeFNumber = "NumerKSeFDokumentu"
	x.Document.InvoiceNumber = "NumerFaktury"
	x.Document.SellerNIP = "NipSprzedawcy"
	x.Document.InvoiceDate = "DataWystawieniaFaktury"
	x.Document.SentAt = "DataPrzeslaniaDokumentu"
	x.Document.AssignedAt = "DataNadaniaNumeruKSeF"
	x.Document.Hash = "SkrotDokumentu"

	return x
}
