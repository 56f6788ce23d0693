package logging

// Standard field names used in log entries.
const (
	FieldDocumentType = "document_type"
	FieldInputFile    = "input_file"
	FieldOutputFile   = "output_file"
	FieldInputDir     = "input_dir"
	FieldOutputDir    = "output_dir"
	FieldNrKSeF       = "nr_ksef"
	FieldQRCode       = "qr_code"
	FieldBytes        = "bytes"
	FieldCount        = "count"
	FieldFailed       = "failed"
	FieldFormat       = "format"
	FieldDuration     = "duration_ms"
	FieldConfigFile   = "config_file"
)
