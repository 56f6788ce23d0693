// Package kseferror defines the error types surfaced to the command line.
package kseferror

import "fmt"

// UsageError represents missing or invalid command-line arguments.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// InputError represents an unreadable input file or malformed metadata.
type InputError struct {
	Path string
	Op   string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// RenderError wraps a renderer failure for a document type.
type RenderError struct {
	DocumentType string
	Err          error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render %s: %v", e.DocumentType, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// OutputError represents a failure writing the rendered document.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents a document that does not have the structure
// a renderer expects.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
			e.FilePath, e.Msg, e.ExpectedFormat)
	}
	return fmt.Sprintf("invalid format: %s. Expected: %s", e.Msg, e.ExpectedFormat)
}
