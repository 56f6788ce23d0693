package models

import (
	"fmt"
	"strings"
)

// DocumentType identifies the kind of KSeF document being rendered.
type DocumentType string

const (
	DocumentInvoice DocumentType = "invoice"
	DocumentFaktura DocumentType = "faktura"
	DocumentUPO     DocumentType = "upo"
)

// AllowedDocumentTypes lists the accepted command-line spellings in display order.
var AllowedDocumentTypes = []DocumentType{DocumentInvoice, DocumentFaktura, DocumentUPO}

// ParseDocumentType resolves a case-insensitive document type name.
func ParseDocumentType(s string) (DocumentType, error) {
	dt := DocumentType(strings.ToLower(s))
	for _, allowed := range AllowedDocumentTypes {
		if dt == allowed {
			return dt, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q. Allowed: %s", s, allowedList())
}

// IsInvoice reports whether the type is rendered with the invoice renderer.
func (d DocumentType) IsInvoice() bool {
	return d == DocumentInvoice || d == DocumentFaktura
}

func (d DocumentType) String() string {
	return string(d)
}

func allowedList() string {
	names := make([]string, len(AllowedDocumentTypes))
	for i, dt := range AllowedDocumentTypes {
		names[i] = string(dt)
	}
	return strings.Join(names, ", ")
}

// OutputFormat selects how the rendered PDF is encoded on disk.
type OutputFormat string

const (
	// FormatPDF writes the raw PDF bytes.
	FormatPDF OutputFormat = "pdf"
	// FormatBase64 writes the PDF as standard base64 text.
	FormatBase64 OutputFormat = "base64"
)

// ParseOutputFormat validates an output format name. An empty name selects FormatPDF.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatBase64:
		return FormatBase64, nil
	default:
		return "", fmt.Errorf("invalid output format %q (must be 'pdf' or 'base64')", s)
	}
}
