package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/ksef-pdf/internal/generator"
	"fjacquet/ksef-pdf/internal/logging"
	"fjacquet/ksef-pdf/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	requests []generator.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req generator.Request) (*generator.Result, error) {
	f.requests = append(f.requests, req)
	if strings.Contains(req.InputPath, "broken") {
		return nil, errors.New("failed to render invoice: no Faktura")
	}
	if err := os.WriteFile(req.OutputPath, []byte("%PDF"), 0600); err != nil {
		return nil, err
	}
	return &generator.Result{
		OutputPath:   req.OutputPath,
		BytesWritten: 4,
		Metadata: models.InvoiceMetadata{
			NrKSeF: strings.TrimSuffix(filepath.Base(req.InputPath), filepath.Ext(req.InputPath)),
			QRCode: "https://qr.test/" + filepath.Base(req.InputPath),
		},
	}, nil
}

func createFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<Faktura/>"), 0600))
	}
}

func readReport(t *testing.T, path string) []ReportRow {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var rows []ReportRow
	require.NoError(t, gocsv.UnmarshalFile(f, &rows))
	return rows
}

func TestProcessor_Process(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "pdf")
	createFiles(t, in, "b.xml", "A.XML", "broken.xml", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(in, "sub.xml"), 0750))

	gen := &fakeGenerator{}
	log := logging.NewMockLogger()
	p := NewProcessor(gen, models.FormatBase64, log)

	summary, err := p.Process(context.Background(), in, out, models.DocumentInvoice, `{"x":1}`)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, gen.requests, 3)
	assert.Equal(t, filepath.Join(out, "A.pdf"), gen.requests[0].OutputPath)
	for _, req := range gen.requests {
		assert.Equal(t, models.DocumentInvoice, req.Type)
		assert.Equal(t, `{"x":1}`, req.AdditionalData)
		assert.Equal(t, models.FormatBase64, req.Format)
	}

	rows := readReport(t, filepath.Join(out, ReportFileName))
	require.Len(t, rows, 3)
	assert.Equal(t, "A.XML", rows[0].File)
	assert.Equal(t, StatusOK, rows[0].Status)
	assert.Equal(t, "A", rows[0].NrKSeF)
	assert.Equal(t, "https://qr.test/A.XML", rows[0].QRCode)
	assert.Equal(t, StatusFailed, rows[2].Status)
	assert.Equal(t, "broken.xml", rows[2].File)
	assert.Contains(t, rows[2].Error, "no Faktura")

	assert.FileExists(t, filepath.Join(out, "b.pdf"))
	assert.Len(t, log.EntriesByLevel("WARN"), 1)
}

func TestProcessor_EmptyDirectoryWritesHeaderOnly(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	summary, err := NewProcessor(&fakeGenerator{}, models.FormatPDF, nil).
		Process(context.Background(), in, out, models.DocumentUPO, "")
	require.NoError(t, err)
	assert.Zero(t, summary.Processed)

	data, err := os.ReadFile(summary.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, "file,output,status,nr_ksef,qr_code,error", strings.TrimSpace(string(data)))
}

func TestProcessor_Errors(t *testing.T) {
	p := NewProcessor(&fakeGenerator{}, models.FormatPDF, nil)

	_, err := p.Process(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir(), models.DocumentInvoice, "")
	assert.ErrorContains(t, err, "input directory does not exist")

	in := t.TempDir()
	createFiles(t, in, "a.xml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Process(ctx, in, t.TempDir(), models.DocumentInvoice, "")
	assert.ErrorIs(t, err, context.Canceled)
}
