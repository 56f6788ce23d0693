// Package verification derives the KSeF verification (QR code) URL and the
// KSeF number for an invoice when the caller did not provide them.
package verification

import (
	"crypto/sha256"
	"encoding/base64"
	"regexp"
	"strings"
	"unicode/utf8"

	"fjacquet/ksef-pdf/internal/models"

	"golang.org/x/text/encoding/unicode"
)

// DefaultBaseURL is the production KSeF invoice verification endpoint.
const DefaultBaseURL = "https://qr.ksef.mf.gov.pl/invoice"

// Tag names read from the invoice.
const (
	TagNIP       = "NIP"
	TagIssueDate = "P_1"
)

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	xmlExtPattern  = regexp.MustCompile(`(?i)\.xml$`)
)

// Deriver fills missing verification fields of InvoiceMetadata.
type Deriver struct {
	extractor TagExtractor
	baseURL   string
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithExtractor replaces the default regex extractor.
func WithExtractor(e TagExtractor) Option {
	return func(d *Deriver) {
		if e != nil {
			d.extractor = e
		}
	}
}

// WithBaseURL overrides DefaultBaseURL. A trailing slash is ignored.
func WithBaseURL(u string) Option {
	return func(d *Deriver) {
		if u = strings.TrimRight(u, "/"); u != "" {
			d.baseURL = u
		}
	}
}

// NewDeriver creates a Deriver.
func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{
		extractor: NewRegexExtractor(),
		baseURL:   DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Apply fills NrKSeF and QRCode on meta where they are empty. inputPath is
// the path of the source file and xml its exact content. Fields that are
// already set are never changed, and fields that cannot be derived stay empty.
func (d *Deriver) Apply(xml []byte, inputPath string, meta *models.InvoiceMetadata) {
	if meta.NrKSeF == "" {
		meta.NrKSeF = NrKSeF(inputPath)
	}

	text := SourceText(xml)
	nip, _ := d.extractor.ExtractTagText(text, TagNIP)
	date, _ := d.extractor.ExtractTagText(text, TagIssueDate)
	date = ReformatDate(date)

	if nip == "" || date == "" {
		return
	}
	if meta.QRCode == "" {
		meta.QRCode = d.URL(nip, date, hashText(text))
	}
}

// URL assembles the verification link from its parts.
func (d *Deriver) URL(nip, date, hash string) string {
	return d.baseURL + "/" + nip + "/" + date + "/" + hash
}

// ReformatDate turns YYYY-MM-DD into DD-MM-YYYY. Anything else is returned
// unchanged.
func ReformatDate(date string) string {
	if !isoDatePattern.MatchString(date) {
		return date
	}
	return date[8:10] + "-" + date[5:7] + "-" + date[0:4]
}

// SourceText returns the document as UTF-8 text. Valid UTF-8 is returned
// unchanged; otherwise each maximal ill-formed subsequence becomes U+FFFD,
// so a cp1250 file reads the same way a WHATWG UTF-8 decoder would read it.
func SourceText(xml []byte) []byte {
	if utf8.Valid(xml) {
		return xml
	}
	text, err := unicode.UTF8.NewDecoder().Bytes(xml)
	if err != nil {
		return xml
	}
	return text
}

// HashXML returns the unpadded base64url SHA-256 digest of the document text
// as read by SourceText. For valid UTF-8 input this is the digest of the raw
// bytes.
func HashXML(xml []byte) string {
	return hashText(SourceText(xml))
}

func hashText(text []byte) string {
	sum := sha256.Sum256(text)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// BaseName returns the last path segment, accepting both / and \ separators.
func BaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// NrKSeF derives the KSeF number from an input path: the segment after the
// last /, with a trailing .xml removed case-insensitively. A backslash is
// part of the name, not a separator.
func NrKSeF(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	return xmlExtPattern.ReplaceAllString(path, "")
}

// Required reports whether derivation runs for a document: only invoices with
// a missing QR code or KSeF number qualify.
func Required(dt models.DocumentType, meta models.InvoiceMetadata) bool {
	return dt.IsInvoice() && meta.NeedsDerivation()
}
