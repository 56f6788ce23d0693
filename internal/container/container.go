// Package container provides dependency injection for the ksef-pdf application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/ksef-pdf/internal/batch"
	"fjacquet/ksef-pdf/internal/config"
	"fjacquet/ksef-pdf/internal/generator"
	"fjacquet/ksef-pdf/internal/logging"
	"fjacquet/ksef-pdf/internal/models"
	"fjacquet/ksef-pdf/internal/render"
	"fjacquet/ksef-pdf/internal/verification"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	format    models.OutputFormat
	deriver   *verification.Deriver
	renderer  *render.PDFRenderer
	generator *generator.Generator
	batch     *batch.Processor
}

// NewContainer creates and wires all application dependencies from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})

	return newContainer(cfg, logger)
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return newContainer(cfg, logger)
}

func newContainer(cfg *config.Config, logger logging.Logger) (*Container, error) {
	extractor, ok := verification.NewExtractor(cfg.Verification.Extractor)
	if !ok {
		return nil, fmt.Errorf("unknown verification extractor: %s", cfg.Verification.Extractor)
	}

	format, err := models.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	deriver := verification.NewDeriver(
		verification.WithExtractor(extractor),
		verification.WithBaseURL(cfg.Verification.BaseURL),
	)

	renderer := render.NewPDFRenderer(render.Options{
		PageSize: cfg.PDF.PageSize,
		QRSizeMM: cfg.PDF.QRSizeMM,
		Author:   cfg.PDF.Author,
	})

	gen := generator.New(deriver, renderer, renderer, logger)

	logger.Debug("Container initialized",
		logging.F("extractor", cfg.Verification.Extractor),
		logging.F(logging.FieldFormat, format))

	return &Container{
		logger:    logger,
		config:    cfg,
		format:    format,
		deriver:   deriver,
		renderer:  renderer,
		generator: gen,
		batch:     batch.NewProcessor(gen, format, logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetOutputFormat returns the configured output format.
func (c *Container) GetOutputFormat() models.OutputFormat {
	return c.format
}

// GetDeriver returns the QR verification code deriver.
func (c *Container) GetDeriver() *verification.Deriver {
	return c.deriver
}

// GetRenderer returns the PDF renderer used for invoices and UPOs.
func (c *Container) GetRenderer() *render.PDFRenderer {
	return c.renderer
}

// GetGenerator returns the single-document generator.
func (c *Container) GetGenerator() *generator.Generator {
	return c.generator
}

// GetBatchProcessor returns the directory processor.
func (c *Container) GetBatchProcessor() *batch.Processor {
	return c.batch
}
