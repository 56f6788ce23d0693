// Package render turns KSeF invoice and UPO XML documents into PDF files.
package render

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/ksef-pdf/internal/document"
	"fjacquet/ksef-pdf/internal/models"
)

// InvoiceRenderer renders an FA invoice with its metadata.
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, file document.File, meta models.InvoiceMetadata, format models.OutputFormat) (document.Blob, error)
}

// UPORenderer renders a UPO receipt confirmation.
type UPORenderer interface {
	RenderUPO(ctx context.Context, file document.File) (document.Blob, error)
}

// PDFRenderer implements both renderers with gofpdf.
type PDFRenderer struct {
	opts Options
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer(opts Options) *PDFRenderer {
	return &PDFRenderer{opts: opts.withDefaults()}
}

// RenderInvoice implements InvoiceRenderer.
func (r *PDFRenderer) RenderInvoice(ctx context.Context, file document.File, meta models.InvoiceMetadata, format models.OutputFormat) (document.Blob, error) {
	if err := ctx.Err(); err != nil {
		return document.Blob{}, err
	}

	inv, err := ParseInvoice(file.Name, file.Bytes())
	if err != nil {
		return document.Blob{}, err
	}

	title := "Faktura"
	if inv.Number != "" {
		title = "Faktura " + inv.Number
	}
	p := newPage(r.opts, title)
	p.title(title)

	p.field("Numer KSeF:", meta.NrKSeF)
	p.field("Formularz:", inv.FormCode)
	p.field("Rodzaj faktury:", inv.Kind)
	p.field("Data wystawienia:", inv.IssueDate)
	p.field("Miejsce wystawienia:", inv.IssuePlace)
	p.field("Data sprzedaży:", inv.SaleDate)
	p.pdf.Ln(3)

	p.section("Sprzedawca")
	partyBlock(p, inv.Seller)
	p.section("Nabywca")
	partyBlock(p, inv.Buyer)

	p.section("Pozycje")
	lineTable(p, inv)

	p.section("Podsumowanie")
	currency := inv.Currency
	if currency == "" {
		currency = "PLN"
	}
	if inv.GrossTotal.Valid {
		p.field("Kwota należności:", inv.Total().StringFixed(2)+" "+currency)
	} else {
		p.field("Suma netto:", inv.NetTotal().StringFixed(2)+" "+currency)
	}
	p.field("Termin płatności:", inv.DueDate)
	p.field("Forma płatności:", paymentForm(inv.PaymentForm))
	p.field("Rachunek:", inv.BankAccount)

	if keys := meta.ExtraKeys(); len(keys) > 0 {
		p.pdf.Ln(2)
		p.section("Dodatkowe informacje")
		for _, k := range keys {
			p.field(k+":", meta.ExtraString(k))
		}
	}

	if meta.QRCode != "" {
		p.pdf.Ln(4)
		caption := "Zweryfikuj fakturę w KSeF"
		if meta.NrKSeF != "" {
			caption += ": " + meta.NrKSeF
		}
		if err := p.qr(meta.QRCode, r.opts.QRSizeMM, caption); err != nil {
			return document.Blob{}, err
		}
	}

	if inv.SystemInfo != "" || inv.CreationDate != "" {
		p.pdf.Ln(2)
		p.field("Wytworzona w:", inv.SystemInfo)
		p.field("Data wytworzenia:", inv.CreationDate)
	}

	return finish(p, format)
}

// RenderUPO implements UPORenderer.
func (r *PDFRenderer) RenderUPO(ctx context.Context, file document.File) (document.Blob, error) {
	if err := ctx.Err(); err != nil {
		return document.Blob{}, err
	}

	upo, err := ParseUPO(file.Name, file.Bytes())
	if err != nil {
		return document.Blob{}, err
	}

	p := newPage(r.opts, "Urzędowe Poświadczenie Odbioru")
	p.title("Urzędowe Poświadczenie Odbioru")
	p.field("Podmiot przyjmujący:", upo.ReceivingEntity)
	p.field("Numer sesji:", upo.SessionReference)
	p.field("NIP kontekstu:", upo.ContextNIP)
	p.pdf.Ln(3)

	p.section("Dokumenty")
	if len(upo.Documents) == 0 {
		p.paragraph("Brak dokumentów.")
	} else {
		rows := make([][]string, 0, len(upo.Documents))
		for _, d := range upo.Documents {
			rows = append(rows, []string{d.KSeFNumber, d.InvoiceNumber, d.SellerNIP, d.InvoiceDate, d.SentAt, d.AssignedAt, d.Hash})
		}
		w := p.contentWidth()
		p.table(
			[]string{"Numer KSeF", "Numer faktury", "NIP sprzedawcy", "Data wystawienia", "Data przesłania", "Nadanie numeru", "Skrót"},
			[]float64{w * 0.20, w * 0.13, w * 0.12, w * 0.11, w * 0.13, w * 0.13, w * 0.18},
			[]string{"L", "L", "L", "L", "L", "L", "L"},
			rows,
		)
	}

	return finish(p, models.FormatPDF)
}

func finish(p *page, format models.OutputFormat) (document.Blob, error) {
	raw, err := p.bytes()
	if err != nil {
		return document.Blob{}, fmt.Errorf("failed to produce PDF: %w", err)
	}
	blob := document.NewBlob(models.PDFContentType, raw)

	switch format {
	case "", models.FormatPDF:
		return blob, nil
	case models.FormatBase64:
		return document.NewBlob(models.TextContentType, []byte(blob.Base64())), nil
	default:
		return document.Blob{}, fmt.Errorf("unsupported output format %q", format)
	}
}

func partyBlock(p *page, party models.Party) {
	p.field("NIP:", party.NIP)
	p.field("Nazwa:", party.Name)
	p.field("Adres:", strings.Join(party.Address, ", "))
	p.field("Kraj:", party.CountryCode)
	p.pdf.Ln(2)
}

func lineTable(p *page, inv models.Invoice) {
	if len(inv.Lines) == 0 {
		p.paragraph("Brak pozycji.")
		return
	}
	rows := make([][]string, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		rows = append(rows, []string{
			l.Number,
			l.Name,
			l.Unit,
			l.Quantity,
			amount(l.UnitPrice.Valid, l.UnitPrice.Decimal.StringFixed(2)),
			amount(l.NetValue.Valid, l.NetValue.Decimal.StringFixed(2)),
			vatRate(l.VATRate),
		})
	}
	w := p.contentWidth()
	p.table(
		[]string{"Lp.", "Nazwa", "J.m.", "Ilość", "Cena netto", "Wartość netto", "VAT"},
		[]float64{w * 0.06, w * 0.38, w * 0.08, w * 0.10, w * 0.14, w * 0.14, w * 0.10},
		[]string{"C", "L", "C", "R", "R", "R", "C"},
		rows,
	)
}

func amount(valid bool, s string) string {
	if !valid {
		return ""
	}
	return s
}

func vatRate(rate string) string {
	if rate == "" {
		return ""
	}
	if _, err := parseAmount(rate); err == nil {
		return rate + "%"
	}
	return rate
}

var paymentForms = map[string]string{
	"1": "gotówka",
	"2": "karta",
	"3": "bon",
	"4": "czek",
	"5": "kredyt",
	"6": "przelew",
	"7": "mobilna",
}

func paymentForm(code string) string {
	if name, ok := paymentForms[code]; ok {
		return name
	}
	return code
}
