package kseferror

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageError(t *testing.T) {
	err := &UsageError{Reason: "missing input path"}
	assert.Equal(t, "missing input path", err.Error())
}

func TestInputError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		err := &InputError{Path: "in.xml", Op: "read", Err: os.ErrNotExist}
		assert.Equal(t, "read in.xml: file does not exist", err.Error())
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("without path", func(t *testing.T) {
		err := &InputError{Op: "parse additional data", Err: errors.New("unexpected end of JSON input")}
		assert.Equal(t, "parse additional data: unexpected end of JSON input", err.Error())
	})
}

func TestRenderError(t *testing.T) {
	inner := errors.New("no Faktura root")
	err := fmt.Errorf("generate: %w", &RenderError{DocumentType: "invoice", Err: inner})

	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "invoice", renderErr.DocumentType)
	assert.True(t, errors.Is(err, inner))
	assert.Contains(t, err.Error(), "failed to render invoice: no Faktura root")
}

func TestOutputError(t *testing.T) {
	err := &OutputError{Path: "out.pdf", Err: os.ErrPermission}
	assert.Equal(t, "failed to write out.pdf: permission denied", err.Error())
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{FilePath: "a.xml", ExpectedFormat: "Faktura", Msg: "root element is Potwierdzenie"}
	assert.Equal(t, "invalid format in file 'a.xml': root element is Potwierdzenie. Expected: Faktura", err.Error())

	err = &InvalidFormatError{ExpectedFormat: "UPO", Msg: "empty document"}
	assert.Equal(t, "invalid format: empty document. Expected: UPO", err.Error())
}
