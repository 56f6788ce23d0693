// Package generator runs a single document conversion: read the XML, prepare
// the invoice metadata, render and write the result.
package generator

import (
	"context"
	"time"

	"fjacquet/ksef-pdf/internal/document"
	"fjacquet/ksef-pdf/internal/fileutils"
	"fjacquet/ksef-pdf/internal/kseferror"
	"fjacquet/ksef-pdf/internal/logging"
	"fjacquet/ksef-pdf/internal/models"
	"fjacquet/ksef-pdf/internal/render"
	"fjacquet/ksef-pdf/internal/verification"
)

// Request describes one conversion.
type Request struct {
	Type       models.DocumentType
	InputPath  string
	OutputPath string
	// AdditionalData is the raw metadata JSON; empty means none.
	AdditionalData string
	Format         models.OutputFormat
}

// Result reports what was written.
type Result struct {
	OutputPath   string
	BytesWritten int
	Metadata     models.InvoiceMetadata
	// Derived is true when the deriver ran for this document.
	Derived bool
}

// Deriver fills the verification fields of invoice metadata.
type Deriver interface {
	Apply(xml []byte, inputPath string, meta *models.InvoiceMetadata)
}

// Generator converts KSeF documents to PDF.
type Generator struct {
	deriver  Deriver
	invoices render.InvoiceRenderer
	upos     render.UPORenderer
	logger   logging.Logger
}

// New creates a Generator. A nil logger discards output.
func New(deriver Deriver, invoices render.InvoiceRenderer, upos render.UPORenderer, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Generator{
		deriver:  deriver,
		invoices: invoices,
		upos:     upos,
		logger:   logger,
	}
}

// Generate performs the conversion described by req.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	log := g.logger.WithFields(
		logging.F(logging.FieldDocumentType, req.Type),
		logging.F(logging.FieldInputFile, req.InputPath),
	)

	if _, err := models.ParseDocumentType(string(req.Type)); err != nil {
		return nil, &kseferror.UsageError{Reason: err.Error()}
	}
	if req.InputPath == "" || req.OutputPath == "" {
		return nil, &kseferror.UsageError{Reason: "input and output paths are required"}
	}

	data, err := fileutils.ReadFile(req.InputPath)
	if err != nil {
		return nil, &kseferror.InputError{Path: req.InputPath, Op: "failed to read input", Err: err}
	}
	log.Debug("Read input document", logging.F(logging.FieldBytes, len(data)))

	file := document.NewFile(fileName(req.InputPath), models.XMLContentType, data)

	meta, err := models.ParseInvoiceMetadata([]byte(req.AdditionalData))
	if err != nil {
		return nil, &kseferror.InputError{Op: "invalid additional data", Err: err}
	}

	result := &Result{OutputPath: req.OutputPath}
	var blob document.Blob

	if req.Type.IsInvoice() {
		if verification.Required(req.Type, meta) {
			g.deriver.Apply(data, req.InputPath, &meta)
			result.Derived = true
			log.Debug("Derived verification fields",
				logging.F(logging.FieldNrKSeF, meta.NrKSeF),
				logging.F(logging.FieldQRCode, meta.QRCode))
		}
		blob, err = g.invoices.RenderInvoice(ctx, file, meta, req.Format)
	} else {
		blob, err = g.upos.RenderUPO(ctx, file)
	}
	if err != nil {
		return nil, &kseferror.RenderError{DocumentType: req.Type.String(), Err: err}
	}
	result.Metadata = meta

	if err := fileutils.WriteFile(req.OutputPath, blob.Bytes()); err != nil {
		return nil, &kseferror.OutputError{Path: req.OutputPath, Err: err}
	}
	result.BytesWritten = blob.Size()

	log.Info("Document generated",
		logging.F(logging.FieldOutputFile, req.OutputPath),
		logging.F(logging.FieldBytes, result.BytesWritten),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return result, nil
}

// Describe runs only the metadata step for an invoice and returns the
// metadata the renderer would receive.
func (g *Generator) Describe(inputPath, additionalData string) (models.InvoiceMetadata, error) {
	data, err := fileutils.ReadFile(inputPath)
	if err != nil {
		return models.InvoiceMetadata{}, &kseferror.InputError{Path: inputPath, Op: "failed to read input", Err: err}
	}
	meta, err := models.ParseInvoiceMetadata([]byte(additionalData))
	if err != nil {
		return models.InvoiceMetadata{}, &kseferror.InputError{Op: "invalid additional data", Err: err}
	}
	if meta.NeedsDerivation() {
		g.deriver.Apply(data, inputPath, &meta)
	}
	return meta, nil
}

func fileName(path string) string {
	if name := verification.BaseName(path); name != "" {
		return name
	}
	return models.DefaultInputName
}
