// Package batch converts every XML document in a directory and records the
// outcome of each file in a CSV report.
package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/ksef-pdf/internal/fileutils"
	"fjacquet/ksef-pdf/internal/generator"
	"fjacquet/ksef-pdf/internal/logging"
	"fjacquet/ksef-pdf/internal/models"

	"github.com/gocarina/gocsv"
)

// ReportFileName is written into the output directory after each run.
const ReportFileName = "report.csv"

// Status values used in the report.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// ReportRow is one line of report.csv.
type ReportRow struct {
	File   string `csv:"file"`
	Output string `csv:"output"`
	Status string `csv:"status"`
	NrKSeF string `csv:"nr_ksef"`
	QRCode string `csv:"qr_code"`
	Error  string `csv:"error"`
}

// Summary is returned by Process.
type Summary struct {
	Processed  int
	Failed     int
	ReportPath string
	Rows       []ReportRow
}

// Generator converts one document.
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
}

// Processor runs a generator over a directory.
type Processor struct {
	gen    Generator
	format models.OutputFormat
	logger logging.Logger
}

// NewProcessor creates a Processor writing outputs in format.
func NewProcessor(gen Generator, format models.OutputFormat, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Processor{gen: gen, format: format, logger: logger}
}

// Process converts every *.xml file directly inside inputDir to
// outputDir/<base>.pdf, one at a time. A failing file is recorded and the
// run continues. The returned error covers directory and report problems
// only; per-file failures are reported through Summary.Failed.
func (p *Processor) Process(ctx context.Context, inputDir, outputDir string, docType models.DocumentType, additionalData string) (*Summary, error) {
	log := p.logger.WithFields(
		logging.F(logging.FieldInputDir, inputDir),
		logging.F(logging.FieldOutputDir, outputDir),
		logging.F(logging.FieldDocumentType, docType),
	)

	if !fileutils.DirectoryExists(inputDir) {
		return nil, fmt.Errorf("input directory does not exist: %s", inputDir)
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files, err := fileutils.ListFilesWithExtension(inputDir, ".xml")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Warn("No XML files found in input directory")
	} else {
		log.Info("Found files for processing", logging.F(logging.FieldCount, len(files)))
	}

	summary := &Summary{ReportPath: filepath.Join(outputDir, ReportFileName)}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := ReportRow{
			File:   filepath.Base(file),
			Output: filepath.Join(outputDir, fileutils.ReplaceExtension(file, ".pdf")),
		}
		res, err := p.gen.Generate(ctx, generator.Request{
			Type:           docType,
			InputPath:      file,
			OutputPath:     row.Output,
			AdditionalData: additionalData,
			Format:         p.format,
		})
		if err != nil {
			row.Status = StatusFailed
			row.Error = err.Error()
			summary.Failed++
			log.WithError(err).Warn("Failed to convert file", logging.F(logging.FieldInputFile, file))
		} else {
			row.Status = StatusOK
			row.NrKSeF = res.Metadata.NrKSeF
			row.QRCode = res.Metadata.QRCode
		}
		summary.Processed++
		summary.Rows = append(summary.Rows, row)
	}

	if err := writeReport(summary.ReportPath, summary.Rows); err != nil {
		return nil, err
	}

	log.Info("Batch processing completed",
		logging.F(logging.FieldCount, summary.Processed),
		logging.F(logging.FieldFailed, summary.Failed))
	return summary, nil
}

func writeReport(path string, rows []ReportRow) (err error) {
	file, err := os.Create(path) // #nosec G304 -- path is built from the user-supplied output directory
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if rows == nil {
		rows = []ReportRow{}
	}
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csv.NewWriter(file))); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}
