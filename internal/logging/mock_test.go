package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_RecordsThroughChildren(t *testing.T) {
	m := NewMockLogger()
	m.Info("start")
	m.WithField(FieldNrKSeF, "FA-1").Debug("derived")
	m.WithError(errors.New("boom")).Error("failed")

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []Field{{Key: FieldNrKSeF, Value: "FA-1"}}, entries[1].Fields)
	assert.EqualError(t, entries[2].Error, "boom")

	assert.True(t, m.HasEntry("INFO", "start"))
	assert.False(t, m.HasEntry("WARN", "start"))
	assert.Len(t, m.EntriesByLevel("ERROR"), 1)
}
