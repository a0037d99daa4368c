package bundle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
)

func testArchive() *domain.Archive {
	return &domain.Archive{
		FormatVersion: FormatVersion,
		Records: []domain.Record{
			{
				ID:       "10001",
				Title:    domain.ObfuscateTitle("Build SharePlay experiences"),
				Year:     2021,
				Content:  "ZW5jcnlwdGVkLWJsb2I=",
				Checksum: Checksum("plaintext"),
				Excerpt:  "We're thrilled to introduce SharePlay.",
			},
			{
				ID:       "10002",
				Title:    domain.ObfuscateTitle("Advanced Swift concurrency"),
				Year:     2022,
				Content:  "YW5vdGhlci1ibG9i",
				Checksum: Checksum("other"),
			},
		},
		SearchIndex: map[string][]string{
			"shareplay":   {"10001"},
			"concurrency": {"10002"},
		},
		Metadata: domain.ArchiveMetadata{
			RecordCount: 2,
			YearMin:     2021,
			YearMax:     2022,
			BuiltAt:     time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestMarshalArchive_RoundTrip(t *testing.T) {
	original := testArchive()

	data, err := MarshalArchive(original)
	require.NoError(t, err)

	parsed, err := UnmarshalArchive(data)
	require.NoError(t, err)

	assert.Equal(t, original.FormatVersion, parsed.FormatVersion)
	assert.Equal(t, original.Records, parsed.Records)
	assert.Equal(t, original.SearchIndex, parsed.SearchIndex)
	assert.Equal(t, original.Metadata, parsed.Metadata)
}

func TestUnmarshalArchive_NotJSON(t *testing.T) {
	_, err := UnmarshalArchive([]byte("not json"))
	assert.ErrorIs(t, err, domain.ErrInvalidDataFormat)
}

func TestUnmarshalArchive_WrongVersion(t *testing.T) {
	env := `{"format_version": 2, "records": [], "search_index": {}}`
	_, err := UnmarshalArchive([]byte(env))
	assert.ErrorIs(t, err, domain.ErrInvalidDataFormat)
}

func TestUnmarshalArchive_MissingMandatoryField(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"no id", `{"title": "T", "year": 2021, "content": "c", "checksum": "s"}`},
		{"no title", `{"id": "1", "year": 2021, "content": "c", "checksum": "s"}`},
		{"no year", `{"id": "1", "title": "T", "content": "c", "checksum": "s"}`},
		{"no content", `{"id": "1", "title": "T", "year": 2021, "checksum": "s"}`},
		{"no checksum", `{"id": "1", "title": "T", "year": 2021, "content": "c"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := `{"format_version": 1, "records": [` + tt.record + `], "search_index": {}}`
			_, err := UnmarshalArchive([]byte(env))
			assert.ErrorIs(t, err, domain.ErrInvalidDataFormat)
		})
	}
}

func TestUnmarshalArchive_DuplicateID(t *testing.T) {
	env := `{"format_version": 1, "records": [
		{"id": "1", "title": "T", "year": 2021, "content": "c", "checksum": "s"},
		{"id": "1", "title": "U", "year": 2022, "content": "d", "checksum": "t"}
	], "search_index": {}}`
	_, err := UnmarshalArchive([]byte(env))
	assert.ErrorIs(t, err, domain.ErrInvalidDataFormat)
}

func TestUnmarshalArchive_IndexIntegrity(t *testing.T) {
	env := `{"format_version": 1, "records": [
		{"id": "1", "title": "T", "year": 2021, "content": "c", "checksum": "s"}
	], "search_index": {"term": ["1", "ghost"]}}`
	_, err := UnmarshalArchive([]byte(env))
	assert.ErrorIs(t, err, domain.ErrInvalidDataFormat)
}

func TestUnmarshalArchive_ToleratesUnknownFields(t *testing.T) {
	env := `{"format_version": 1, "future_field": true, "records": [
		{"id": "1", "title": "T", "year": 2021, "content": "c", "checksum": "s", "extra": 7}
	], "search_index": {"term": ["1"]}, "metadata": {"record_count": 1, "novel": "x"}}`

	a, err := UnmarshalArchive([]byte(env))
	require.NoError(t, err)
	assert.Len(t, a.Records, 1)
	assert.Equal(t, 1, a.Metadata.RecordCount)
}

func TestUnmarshalArchive_MissingRecordsField(t *testing.T) {
	env := `{"format_version": 1, "search_index": {}}`
	_, err := UnmarshalArchive([]byte(env))
	assert.ErrorIs(t, err, domain.ErrInvalidDataFormat)
}
