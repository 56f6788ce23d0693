package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"fjacquet/ksef-pdf/internal/document"
	"fjacquet/ksef-pdf/internal/kseferror"
	"fjacquet/ksef-pdf/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoiceXML = `<?xml version="1.0" encoding="UTF-8"?>
<Faktura xmlns="http://crd.gov.pl/wzor/2023/06/29/12648/">
  <Naglowek>
    <KodFormularza>FA</KodFormularza>
    <DataWytworzeniaFa>2024-01-10T09:30:00Z</DataWytworzeniaFa>
    <SystemInfo>Fakturownia</SystemInfo>
  </Naglowek>
  <Podmiot1>
    <DaneIdentyfikacyjne>
      <NIP>5260001246</NIP>
      <Nazwa>Zakład Usług Łódź Sp. z o.o.</Nazwa>
    </DaneIdentyfikacyjne>
    <Adres>
      <KodKraju>PL</KodKraju>
      <AdresL1>ul. Żółkiewskiego 12</AdresL1>
      <AdresL2>90-001 Łódź</AdresL2>
    </Adres>
  </Podmiot1>
  <Podmiot2>
    <DaneIdentyfikacyjne>
      <NIP>1111111111</NIP>
      <Nazwa>Nabywca SA</Nazwa>
    </DaneIdentyfikacyjne>
  </Podmiot2>
  <Fa>
    <KodWaluty>PLN</KodWaluty>
    <P_1>2024-01-10</P_1>
    <P_1M>Warszawa</P_1M>
    <P_2>FA/1/2024</P_2>
    <P_6>2024-01-09</P_6>
    <P_15>246.00</P_15>
    <RodzajFaktury>VAT</RodzajFaktury>
    <FaWiersz>
      <NrWierszaFa>1</NrWierszaFa>
      <P_7>Usługa doradcza</P_7>
      <P_8A>szt.</P_8A>
      <P_8B>2</P_8B>
      <P_9A>50,00</P_9A>
      <P_11>100.00</P_11>
      <P_12>23</P_12>
    </FaWiersz>
    <FaWiersz>
      <P_7>Szkolenie</P_7>
      <P_11>100</P_11>
      <P_12>zw</P_12>
    </FaWiersz>
    <Platnosc>
      <TerminPlatnosci><Termin>2024-01-24</Termin></TerminPlatnosci>
      <FormaPlatnosci>6</FormaPlatnosci>
      <RachunekBankowy><NrRB>61109010140000071219812874</NrRB></RachunekBankowy>
    </Platnosc>
  </Fa>
</Faktura>`

const upoXML = `<?xml version="1.0" encoding="UTF-8"?>
<Potwierdzenie>
  <NazwaPodmiotuPrzyjmujacego>Ministerstwo Finansów</NazwaPodmiotuPrzyjmujacego>
  <NumerReferencyjnySesji>20240110-SE-1234</NumerReferencyjnySesji>
  <Uwierzytelnienie><IdKontekstu><Nip>5260001246</Nip></IdKontekstu></Uwierzytelnienie>
  <Dokument>
    <NumerKSeFDokumentu>5260001246-20240110-ABCDEF-01</NumerKSeFDokumentu>
    <NumerFaktury>FA/1/2024</NumerFaktury>
    <NipSprzedawcy>5260001246</NipSprzedawcy>
    <DataWystawieniaFaktury>2024-01-10</DataWystawieniaFaktury>
    <DataPrzeslaniaDokumentu>2024-01-10T09:59:00</DataPrzeslaniaDokumentu>
    <DataNadaniaNumeruKSeF>2024-01-10T10:00:00</DataNadaniaNumeruKSeF>
    <SkrotDokumentu>abc123</SkrotDokumentu>
  </Dokument>
  <Dokument>
    <NumerKSeFDokumentu>5260001246-20240110-ABCDEF-02</NumerKSeFDokumentu>
  </Dokument>
</Potwierdzenie>`

func xmlFile(name, content string) document.File {
	return document.NewFile(name, models.XMLContentType, []byte(content))
}

func TestParseInvoice(t *testing.T) {
	inv, err := ParseInvoice("fa.xml", []byte(invoiceXML))
	require.NoError(t, err)

	assert.Equal(t, "FA/1/2024", inv.Number)
	assert.Equal(t, "2024-01-10", inv.IssueDate)
	assert.Equal(t, "Warszawa", inv.IssuePlace)
	assert.Equal(t, "VAT", inv.Kind)
	assert.Equal(t, "PLN", inv.Currency)
	assert.Equal(t, "FA", inv.FormCode)
	assert.Equal(t, "2024-01-10T09:30:00Z", inv.CreationDate)
	assert.Equal(t, "5260001246", inv.Seller.NIP)
	assert.Equal(t, []string{"ul. Żółkiewskiego 12", "90-001 Łódź"}, inv.Seller.Address)
	assert.Equal(t, "Nabywca SA", inv.Buyer.Name)
	assert.Equal(t, "2024-01-24", inv.DueDate)
	assert.Equal(t, "6", inv.PaymentForm)

	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "1", inv.Lines[0].Number)
	assert.Equal(t, "50.00", inv.Lines[0].UnitPrice.Decimal.StringFixed(2))
	assert.Equal(t, "2", inv.Lines[1].Number, "missing NrWierszaFa falls back to position")
	assert.False(t, inv.Lines[1].UnitPrice.Valid)

	assert.Equal(t, "246.00", inv.Total().StringFixed(2))
	assert.Equal(t, "200.00", inv.NetTotal().StringFixed(2))
}

func TestParseInvoice_Errors(t *testing.T) {
	t.Run("wrong root", func(t *testing.T) {
		_, err := ParseInvoice("upo.xml", []byte(upoXML))
		var formatErr *kseferror.InvalidFormatError
		require.True(t, errors.As(err, &formatErr))
		assert.Equal(t, "upo.xml", formatErr.FilePath)
		assert.Contains(t, err.Error(), "Faktura")
	})

	t.Run("malformed xml", func(t *testing.T) {
		_, err := ParseInvoice("bad.xml", []byte("<Faktura><Fa>"))
		assert.Error(t, err)
	})

	t.Run("bad amount", func(t *testing.T) {
		_, err := ParseInvoice("fa.xml", []byte(`<Faktura><Fa><P_15>abc</P_15></Fa></Faktura>`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "P_15")
	})
}

func TestParseUPO(t *testing.T) {
	upo, err := ParseUPO("upo.xml", []byte(upoXML))
	require.NoError(t, err)

	assert.Equal(t, "Ministerstwo Finansów", upo.ReceivingEntity)
	assert.Equal(t, "20240110-SE-1234", upo.SessionReference)
	assert.Equal(t, "5260001246", upo.ContextNIP)
	require.Len(t, upo.Documents, 2)
	assert.Equal(t, "FA/1/2024", upo.Documents[0].InvoiceNumber)
	assert.Equal(t, "abc123", upo.Documents[0].Hash)
	assert.Equal(t, "2024-01-10T09:59:00", upo.Documents[0].SentAt)
	assert.Empty(t, upo.Documents[1].InvoiceNumber)

	_, err = ParseUPO("fa.xml", []byte(invoiceXML))
	var formatErr *kseferror.InvalidFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestPDFRenderer_RenderInvoice(t *testing.T) {
	r := NewPDFRenderer(Options{})
	meta := models.InvoiceMetadata{
		NrKSeF: "5260001246-20240110-ABCDEF-01",
		QRCode: "https://qr.ksef.mf.gov.pl/invoice/5260001246/10-01-2024/abc",
		Extra:  map[string]any{"note": "Płatne w terminie"},
	}

	blob, err := r.RenderInvoice(context.Background(), xmlFile("fa.xml", invoiceXML), meta, models.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, models.PDFContentType, blob.Type)
	assert.True(t, bytes.HasPrefix(blob.Bytes(), []byte("%PDF-")))
	assert.Greater(t, blob.Size(), 1000)
}

func TestPDFRenderer_RenderInvoice_WithoutQRCode(t *testing.T) {
	r := NewPDFRenderer(Options{PageSize: "Letter"})
	blob, err := r.RenderInvoice(context.Background(), xmlFile("fa.xml", invoiceXML), models.InvoiceMetadata{}, "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(blob.Bytes(), []byte("%PDF-")))
}

func TestPDFRenderer_RenderInvoice_Base64(t *testing.T) {
	r := NewPDFRenderer(Options{})
	blob, err := r.RenderInvoice(context.Background(), xmlFile("fa.xml", invoiceXML), models.InvoiceMetadata{}, models.FormatBase64)
	require.NoError(t, err)
	assert.Equal(t, models.TextContentType, blob.Type)

	decoded, err := base64.StdEncoding.DecodeString(string(blob.Bytes()))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(decoded, []byte("%PDF-")))
}

func TestPDFRenderer_RenderInvoice_Errors(t *testing.T) {
	r := NewPDFRenderer(Options{})

	_, err := r.RenderInvoice(context.Background(), xmlFile("upo.xml", upoXML), models.InvoiceMetadata{}, models.FormatPDF)
	assert.Error(t, err)

	_, err = r.RenderInvoice(context.Background(), xmlFile("fa.xml", invoiceXML), models.InvoiceMetadata{}, "docx")
	assert.EqualError(t, err, `unsupported output format "docx"`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.RenderInvoice(ctx, xmlFile("fa.xml", invoiceXML), models.InvoiceMetadata{}, models.FormatPDF)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDFRenderer_RenderUPO(t *testing.T) {
	r := NewPDFRenderer(Options{})

	blob, err := r.RenderUPO(context.Background(), xmlFile("upo.xml", upoXML))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(blob.Bytes(), []byte("%PDF-")))

	empty := `<Potwierdzenie><NazwaPodmiotuPrzyjmujacego>MF</NazwaPodmiotuPrzyjmujacego></Potwierdzenie>`
	blob, err = r.RenderUPO(context.Background(), xmlFile("upo.xml", empty))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(blob.Bytes(), []byte("%PDF-")))

	_, err = r.RenderUPO(context.Background(), xmlFile("fa.xml", invoiceXML))
	assert.Error(t, err)
}

func TestPDFRenderer_TypographicCharacters(t *testing.T) {
	names := []string{
		"Usługa „Premium”",
		"Powierzchnia 20 m²",
		"Opłata 10 €",
		"Temperatura 5 °C – 3 × dziennie",
		"Dostawa 🚚 ekspresowa",
		"Bardzo-długa-nazwa-pozycji-bez-spacji-która-nie-mieści-się-w-jednej-kolumnie-tabeli",
	}
	r := NewPDFRenderer(Options{})

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			xml := strings.Replace(invoiceXML, "<P_7>Szkolenie</P_7>", "<P_7>"+name+"</P_7>", 1)

			var blob document.Blob
			var err error
			require.NotPanics(t, func() {
				blob, err = r.RenderInvoice(context.Background(), xmlFile("fa.xml", xml), models.InvoiceMetadata{}, models.FormatPDF)
			})
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(blob.Bytes(), []byte("%PDF-")))
		})
	}

	t.Run("UPO cell", func(t *testing.T) {
		xml := strings.Replace(upoXML, "<NumerFaktury>FA/1/2024</NumerFaktury>", "<NumerFaktury>FA „1” – 2024 €</NumerFaktury>", 1)
		require.NotPanics(t, func() {
			_, err := r.RenderUPO(context.Background(), xmlFile("upo.xml", xml))
			require.NoError(t, err)
		})
	})
}

func TestPage_Wrap(t *testing.T) {
	p := newPage(Options{}.withDefaults(), "wrap")
	p.pdf.SetFont(fontFamily, "", 8)

	lines := p.wrap("Zażółć gęślą jaźń „cytat” 10 € oraz kolejne słowa do zawinięcia", 30)
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, p.pdf.GetStringWidth(line), 30.0, line)
	}
	assert.Equal(t, []string{"a", "b"}, p.wrap("a\nb", 30))
	assert.Equal(t, []string{""}, p.wrap("", 30))

	long := strings.Repeat("ż", 200)
	for _, line := range p.wrap(long, 20) {
		assert.LessOrEqual(t, p.pdf.GetStringWidth(line), 20.0)
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Zażółć gęślą jaźń", "Zażółć gęślą jaźń"},
		{"e\u0301", "\u00e9"},
		{"a\tb\rc", "a b c"},
		{"line\nbreak", "line\nbreak"},
		{"truck 🚚", "truck ?"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, printable(tt.in))
		})
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "przelew", paymentForm("6"))
	assert.Equal(t, "99", paymentForm("99"))
	assert.Equal(t, "23%", vatRate("23"))
	assert.Equal(t, "zw", vatRate("zw"))
	assert.Equal(t, "", vatRate(""))
}
