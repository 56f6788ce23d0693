package models

// Metadata keys recognised in the additional data JSON object.
const (
	KeyQRCode = "qrCode"
	KeyNrKSeF = "nrKSeF"
)

// XMLContentType is the media type attached to input documents.
const XMLContentType = "application/xml"

// PDFContentType is the media type of rendered documents.
const PDFContentType = "application/pdf"

// TextContentType is the media type of base64-encoded output.
const TextContentType = "text/plain"

// DefaultInputName is used when the input path has no base name.
const DefaultInputName = "input.xml"

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionOutputFile = 0644
)
