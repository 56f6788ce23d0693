package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// InvoiceMetadata is the caller-supplied record passed to the invoice renderer.
// QRCode and NrKSeF are the recognised fields; every other key is kept in
// Extra and written back unchanged. An empty string means the field is absent.
type InvoiceMetadata struct {
	QRCode string
	NrKSeF string
	Extra  map[string]any
}

// ParseInvoiceMetadata decodes an additional data JSON object. Empty input
// yields an empty record.
func ParseInvoiceMetadata(data []byte) (InvoiceMetadata, error) {
	var meta InvoiceMetadata
	if len(bytes.TrimSpace(data)) == 0 {
		return meta, nil
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return InvoiceMetadata{}, err
	}
	return meta, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *InvoiceMetadata) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("additional data must be a JSON object, got null")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("additional data must be a JSON object: %w", err)
	}

	out := InvoiceMetadata{}
	for key, value := range raw {
		switch key {
		case KeyQRCode:
			if err := decodeOptionalString(value, &out.QRCode); err != nil {
				return fmt.Errorf("%s: %w", KeyQRCode, err)
			}
		case KeyNrKSeF:
			if err := decodeOptionalString(value, &out.NrKSeF); err != nil {
				return fmt.Errorf("%s: %w", KeyNrKSeF, err)
			}
		default:
			var v any
			if err := json.Unmarshal(value, &v); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if out.Extra == nil {
				out.Extra = make(map[string]any)
			}
			out.Extra[key] = v
		}
	}

	*m = out
	return nil
}

// MarshalJSON implements json.Marshaler. Absent fields are omitted.
func (m InvoiceMetadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+2)
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.QRCode != "" {
		out[KeyQRCode] = m.QRCode
	}
	if m.NrKSeF != "" {
		out[KeyNrKSeF] = m.NrKSeF
	}
	return json.Marshal(out)
}

// NeedsDerivation reports whether either recognised field is still missing.
func (m InvoiceMetadata) NeedsDerivation() bool {
	return m.QRCode == "" || m.NrKSeF == ""
}

// ExtraKeys returns the pass-through keys in sorted order.
func (m InvoiceMetadata) ExtraKeys() []string {
	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExtraString returns a pass-through value rendered as text.
func (m InvoiceMetadata) ExtraString(key string) string {
	v, ok := m.Extra[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func decodeOptionalString(raw json.RawMessage, dst *string) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		*dst = ""
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("must be a string")
	}
	return nil
}
