// Package document holds the in-memory file and blob values exchanged with
// renderers. They are plain values passed explicitly to each call, so nothing
// is installed process-wide.
package document

import "encoding/base64"

// File is a named input document held entirely in memory.
type File struct {
	Name string
	Type string
	data []byte
}

// NewFile wraps data as a File. The slice is not copied; callers must not
// modify it afterwards.
func NewFile(name, contentType string, data []byte) File {
	return File{Name: name, Type: contentType, data: data}
}

// Bytes returns the file content.
func (f File) Bytes() []byte {
	return f.data
}

// Blob is a rendered binary object.
type Blob struct {
	Type string
	data []byte
}

// NewBlob wraps rendered bytes.
func NewBlob(contentType string, data []byte) Blob {
	return Blob{Type: contentType, data: data}
}

// Bytes returns the blob content.
func (b Blob) Bytes() []byte {
	return b.data
}

// Size returns the content length in bytes.
func (b Blob) Size() int {
	return len(b.data)
}

// Base64 returns the blob content as standard base64 text.
func (b Blob) Base64() string {
	return base64.StdEncoding.EncodeToString(b.data)
}
