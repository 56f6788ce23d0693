package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	fontFamily = "DejaVu"
	margin     = 15.0
	qrImage    = "verification-qr"
)

// DejaVu Sans Condensed as shipped with gofpdf. Embedded as UTF-8 fonts so
// Polish text and typographic symbols print as written.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldFont []byte
)

// Options tunes page setup shared by both renderers.
type Options struct {
	PageSize string  // A4 or Letter
	QRSizeMM float64 // printed QR side length
	Author   string
}

func (o Options) withDefaults() Options {
	if o.PageSize == "" {
		o.PageSize = "A4"
	}
	if o.QRSizeMM <= 0 {
		o.QRSizeMM = 35
	}
	if o.Author == "" {
		o.Author = "ksef-pdf"
	}
	return o
}

// page wraps a gofpdf document; every string passes through tr before printing.
type page struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPage(opts Options, title string) *page {
	pdf := gofpdf.New("P", "mm", opts.PageSize, "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", regularFont)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", boldFont)
	p := &page{pdf: pdf, tr: printable}

	pdf.SetTitle(title, true)
	pdf.SetAuthor(opts.Author, true)
	pdf.SetCreator(opts.Author, true)
	pdf.SetMargins(margin, 20, margin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return p
}

func (p *page) contentWidth() float64 {
	w, _ := p.pdf.GetPageSize()
	return w - 2*margin
}

func (p *page) title(text string) {
	p.pdf.SetFont(fontFamily, "B", 16)
	p.pdf.CellFormat(0, 9, p.tr(text), "", 1, "L", false, 0, "")
	p.pdf.Ln(2)
}

func (p *page) section(text string) {
	p.pdf.SetFont(fontFamily, "B", 11)
	p.pdf.SetFillColor(235, 235, 235)
	p.pdf.CellFormat(0, 7, p.tr(text), "", 1, "L", true, 0, "")
	p.pdf.Ln(1)
}

// field prints a label/value row; empty values are skipped.
func (p *page) field(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	p.pdf.SetFont(fontFamily, "B", 9)
	p.pdf.CellFormat(45, 5, p.tr(label), "", 0, "L", false, 0, "")
	p.pdf.SetFont(fontFamily, "", 9)
	p.pdf.MultiCell(0, 5, p.tr(value), "", "L", false)
}

func (p *page) paragraph(text string) {
	p.pdf.SetFont(fontFamily, "", 9)
	p.pdf.MultiCell(0, 5, p.tr(text), "", "L", false)
}

// table draws a header row and wrapped body rows.
func (p *page) table(headers []string, widths []float64, aligns []string, rows [][]string) {
	p.pdf.SetFont(fontFamily, "B", 8)
	p.pdf.SetFillColor(245, 245, 245)
	for i, h := range headers {
		p.pdf.CellFormat(widths[i], 6, p.tr(h), "1", 0, "C", true, 0, "")
	}
	p.pdf.Ln(-1)

	p.pdf.SetFont(fontFamily, "", 8)
	const lineHeight = 4.5
	for _, row := range rows {
		p.tableRow(widths, aligns, row, lineHeight)
	}
	p.pdf.Ln(2)
}

func (p *page) tableRow(widths []float64, aligns []string, values []string, lineHeight float64) {
	split := make([][]string, len(values))
	maxLines := 1
	for i, v := range values {
		lines := p.wrap(p.tr(v), widths[i]-2)
		if len(lines) == 0 {
			lines = []string{""}
		}
		split[i] = lines
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}

	rowHeight := float64(maxLines) * lineHeight
	_, pageHeight := p.pdf.GetPageSize()
	_, _, _, bottom := p.pdf.GetMargins()
	if p.pdf.GetY()+rowHeight > pageHeight-bottom {
		p.pdf.AddPage()
	}

	x, y := p.pdf.GetX(), p.pdf.GetY()
	for i, lines := range split {
		p.pdf.SetXY(x, y)
		p.pdf.Rect(x, y, widths[i], rowHeight, "D")
		p.pdf.MultiCell(widths[i], lineHeight, strings.Join(lines, "\n"), "", aligns[i], false)
		x += widths[i]
	}
	p.pdf.SetXY(margin, y+rowHeight)
}

// qr embeds a QR code for content with its text underneath.
func (p *page) qr(content string, sizeMM float64, caption string) error {
	png, err := qrcode.Encode(content, qrcode.Medium, 512)
	if err != nil {
		return fmt.Errorf("failed to encode QR code: %w", err)
	}

	_, pageHeight := p.pdf.GetPageSize()
	_, _, _, bottom := p.pdf.GetMargins()
	if p.pdf.GetY()+sizeMM+15 > pageHeight-bottom {
		p.pdf.AddPage()
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader(qrImage, opts, bytes.NewReader(png))
	y := p.pdf.GetY()
	p.pdf.ImageOptions(qrImage, margin, y, sizeMM, sizeMM, false, opts, 0, content)
	p.pdf.SetXY(margin+sizeMM+5, y+2)

	p.pdf.SetFont(fontFamily, "B", 9)
	p.pdf.MultiCell(0, 5, p.tr(caption), "", "L", false)
	p.pdf.SetX(margin + sizeMM + 5)
	p.pdf.SetFont(fontFamily, "", 7)
	p.pdf.SetTextColor(0, 0, 160)
	p.pdf.MultiCell(0, 4, p.tr(content), "", "L", false)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.SetY(y + sizeMM + 3)
	return nil
}

// wrap breaks text into lines no wider than w at the current font, preferring
// spaces. Widths come from GetStringWidth, which tolerates runes the font
// does not cover.
func (p *page) wrap(text string, w float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		var line []rune
		lastSpace := -1
		for _, r := range para {
			line = append(line, r)
			if r == ' ' {
				lastSpace = len(line) - 1
			}
			if len(line) == 1 || p.pdf.GetStringWidth(string(line)) <= w {
				continue
			}
			if lastSpace > 0 {
				lines = append(lines, string(line[:lastSpace]))
				line = append([]rune(nil), line[lastSpace+1:]...)
				if len(line) > 1 && p.pdf.GetStringWidth(string(line)) > w {
					lines = append(lines, string(line[:len(line)-1]))
					line = []rune{r}
				}
			} else {
				lines = append(lines, string(line[:len(line)-1]))
				line = []rune{r}
			}
			lastSpace = -1
			for j, c := range line {
				if c == ' ' {
					lastSpace = j
				}
			}
		}
		lines = append(lines, string(line))
	}
	return lines
}

func (p *page) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
