package render

import (
	"fmt"
	"strings"

	"fjacquet/ksef-pdf/internal/kseferror"
	"fjacquet/ksef-pdf/internal/models"
	"fjacquet/ksef-pdf/internal/xmlutils"

	"github.com/shopspring/decimal"
	"gopkg.in/xmlpath.v2"
)

// ParseInvoice reads the fields shown on the invoice PDF.
func ParseInvoice(name string, data []byte) (models.Invoice, error) {
	x := xmlutils.DefaultInvoiceXPaths()

	root, err := xmlutils.Parse(data)
	if err != nil {
		return models.Invoice{}, err
	}
	if !xmlutils.Exists(root, x.Root) {
		return models.Invoice{}, &kseferror.InvalidFormatError{
			FilePath:       name,
			ExpectedFormat: "FA invoice with a Faktura root element",
			Msg:            "Faktura element not found",
		}
	}

	inv := models.Invoice{
		FormCode:     xmlutils.First(root, x.Header.FormCode),
		SystemInfo:   xmlutils.First(root, x.Header.SystemInfo),
		CreationDate: xmlutils.First(root, x.Header.CreationDate),
		Number:       xmlutils.First(root, x.Fa.Number),
		Kind:         xmlutils.First(root, x.Fa.Kind),
		IssueDate:    xmlutils.First(root, x.Fa.IssueDate),
		IssuePlace:   xmlutils.First(root, x.Fa.IssuePlace),
		SaleDate:     xmlutils.First(root, x.Fa.SaleDate),
		Currency:     xmlutils.First(root, x.Fa.Currency),
		Seller:       parseParty(root, x.Seller),
		Buyer:        parseParty(root, x.Buyer),
		DueDate:      xmlutils.First(root, x.Fa.DueDate),
		PaymentForm:  xmlutils.First(root, x.Fa.PaymentForm),
		BankAccount:  xmlutils.First(root, x.Fa.BankAccount),
	}

	if inv.GrossTotal, err = parseAmount(xmlutils.First(root, x.Fa.GrossTotal)); err != nil {
		return models.Invoice{}, fmt.Errorf("P_15: %w", err)
	}

	lines, err := xmlutils.Nodes(root, x.Fa.Lines)
	if err != nil {
		return models.Invoice{}, err
	}
	for i, node := range lines {
		line := models.InvoiceLine{
			Number:   xmlutils.First(node, x.Line.Number),
			Name:     xmlutils.First(node, x.Line.Name),
			Unit:     xmlutils.First(node, x.Line.Unit),
			Quantity: xmlutils.First(node, x.Line.Quantity),
			VATRate:  xmlutils.First(node, x.Line.VATRate),
		}
		if line.Number == "" {
			line.Number = fmt.Sprint(i + 1)
		}
		if line.UnitPrice, err = parseAmount(xmlutils.First(node, x.Line.UnitPrice)); err != nil {
			return models.Invoice{}, fmt.Errorf("line %s P_9A: %w", line.Number, err)
		}
		if line.NetValue, err = parseAmount(xmlutils.First(node, x.Line.NetValue)); err != nil {
			return models.Invoice{}, fmt.Errorf("line %s P_11: %w", line.Number, err)
		}
		inv.Lines = append(inv.Lines, line)
	}

	return inv, nil
}

// ParseUPO reads the fields shown on the UPO PDF.
func ParseUPO(name string, data []byte) (models.UPO, error) {
	x := xmlutils.DefaultUPOXPaths()

	root, err := xmlutils.Parse(data)
	if err != nil {
		return models.UPO{}, err
	}
	if !xmlutils.Exists(root, x.Root) {
		return models.UPO{}, &kseferror.InvalidFormatError{
			FilePath:       name,
			ExpectedFormat: "UPO with a Potwierdzenie root element",
			Msg:            "Potwierdzenie element not found",
		}
	}

	upo := models.UPO{
		ReceivingEntity:  xmlutils.First(root, x.ReceivingEntity),
		SessionReference: xmlutils.First(root, x.SessionReference),
		ContextNIP:       xmlutils.First(root, x.ContextNIP),
	}

	docs, err := xmlutils.Nodes(root, x.Documents)
	if err != nil {
		return models.UPO{}, err
	}
	for _, node := range docs {
		upo.Documents = append(upo.Documents, models.UPODocument{
			KSeFNumber:    xmlutils.First(node, x.Document.KSeFNumber),
			InvoiceNumber: xmlutils.First(node, x.Document.InvoiceNumber),
			SellerNIP:     xmlutils.First(node, x.Document.SellerNIP),
			InvoiceDate:   xmlutils.First(node, x.Document.InvoiceDate),
			SentAt:        xmlutils.First(node, x.Document.SentAt),
			AssignedAt:    xmlutils.First(node, x.Document.AssignedAt),
			Hash:          xmlutils.First(node, x.Document.Hash),
		})
	}

	return upo, nil
}

func parseParty(root *xmlpath.Node, x xmlutils.Party) models.Party {
	p := models.Party{
		NIP:         xmlutils.First(root, x.NIP),
		Name:        xmlutils.First(root, x.Name),
		CountryCode: xmlutils.First(root, x.CountryCode),
	}
	for _, line := range []string{xmlutils.First(root, x.AddressL1), xmlutils.First(root, x.AddressL2)} {
		if line != "" {
			p.Address = append(p.Address, line)
		}
	}
	return p
}

// parseAmount accepts a dot or comma decimal separator; empty input is null.
func parseAmount(s string) (decimal.NullDecimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return decimal.NewNullDecimal(d), nil
}
