package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
)

func testSessions() []domain.Session {
	return []domain.Session{
		{
			ID:    "10001",
			Title: "Build SharePlay experiences",
			Year:  2021,
			Content: "We're thrilled to introduce SharePlay and GroupActivities. " +
				"At 12:30 we cover session joining.",
		},
		{
			ID:      "10002",
			Title:   "Advanced Swift concurrency",
			Year:    2022,
			Content: "Actors isolate mutable state. Tasks structure concurrent work.",
		},
	}
}

func TestBuild_EncryptsAndObfuscates(t *testing.T) {
	key := testKey(0x42)
	sessions := testSessions()

	a, err := Build(sessions, BuildIndex(sessions), key)
	require.NoError(t, err)
	require.Len(t, a.Records, 2)

	rec := a.Records[0]
	assert.Equal(t, "10001", rec.ID)
	assert.NotEqual(t, sessions[0].Title, rec.Title)
	assert.Equal(t, sessions[0].Title, domain.DeobfuscateTitle(rec.Title))
	assert.NotContains(t, rec.Content, "SharePlay")

	plaintext, err := DecryptContent(rec.Content, key)
	require.NoError(t, err)
	assert.Equal(t, sessions[0].Content, plaintext)
	assert.Equal(t, Checksum(sessions[0].Content), rec.Checksum)

	assert.Equal(t, 2, a.Metadata.RecordCount)
	assert.Equal(t, 2021, a.Metadata.YearMin)
	assert.Equal(t, 2022, a.Metadata.YearMax)
	assert.False(t, a.Metadata.BuiltAt.IsZero())
}

func TestBuild_SkipsIncompleteSessions(t *testing.T) {
	sessions := append(testSessions(),
		domain.Session{ID: "bad-1", Title: "", Year: 2022, Content: "orphaned tokens here"},
		domain.Session{ID: "bad-2", Title: "Broken Title", Year: 0, Content: "body text"},
		domain.Session{ID: "bad-3", Title: "Broken Title", Year: 2022, Content: ""},
	)

	a, err := Build(sessions, BuildIndex(sessions), testKey(0x42))
	require.NoError(t, err)
	assert.Len(t, a.Records, 2)

	// The index was built over the unfiltered input; references to skipped
	// sessions must not survive into the archive.
	for term, refs := range a.SearchIndex {
		for _, id := range refs {
			assert.NotNil(t, a.RecordByID(id), "index term %q references skipped session %q", term, id)
		}
	}
	assert.NotContains(t, a.SearchIndex, "orphaned")

	// The emitted bundle must pass its own load-time integrity check.
	data, err := Encode(a)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), BundleFileName)
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Records, 2)
}

func TestBuild_MintsMissingIDs(t *testing.T) {
	sessions := []domain.Session{{Title: "No id yet", Year: 2020, Content: "body text here"}}

	a, err := Build(sessions, nil, testKey(0x42))
	require.NoError(t, err)
	require.Len(t, a.Records, 1)
	assert.NotEmpty(t, a.Records[0].ID)
}

func TestBuild_RejectsBadKey(t *testing.T) {
	_, err := Build(testSessions(), nil, []byte("short"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildIndex(t *testing.T) {
	index := BuildIndex(testSessions())

	assert.Contains(t, index["shareplay"], "10001")
	assert.Contains(t, index["groupactivities"], "10001")
	assert.Contains(t, index["actors"], "10002")
	// Short tokens are filtered.
	assert.NotContains(t, index, "at")
	// No duplicate ids per term.
	assert.Equal(t, []string{"10001"}, index["shareplay"])
}

func TestEncode_LoadRoundTrip(t *testing.T) {
	key := testKey(0x42)
	sessions := testSessions()

	built, err := Build(sessions, BuildIndex(sessions), key)
	require.NoError(t, err)

	data, err := Encode(built)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), BundleFileName)
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, built.Records, loaded.Records)
	assert.Equal(t, built.SearchIndex, loaded.SearchIndex)
	assert.Equal(t, built.Metadata.RecordCount, loaded.Metadata.RecordCount)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.encrypted"))
	assert.ErrorIs(t, err, domain.ErrDataNotAvailable)
}

func TestLoad_NotCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), BundleFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"format_version":1}`), 0644))

	_, err := NewLoader().Load(path)
	assert.ErrorIs(t, err, domain.ErrCompressionNotSupported)
}

func TestGCMDecrypter_Open(t *testing.T) {
	key := testKey(0x42)
	sessions := testSessions()
	a, err := Build(sessions, nil, key)
	require.NoError(t, err)

	dec, err := NewGCMDecrypter(key)
	require.NoError(t, err)

	plaintext, err := dec.Open(&a.Records[0])
	require.NoError(t, err)
	assert.Equal(t, sessions[0].Content, plaintext)
}

func TestNoKeyDecrypter_AlwaysFails(t *testing.T) {
	rec := &domain.Record{ID: "1", Content: "whatever"}
	_, err := NoKeyDecrypter{}.Open(rec)
	assert.ErrorIs(t, err, domain.ErrDecryptionFailed)
}

func TestPlainDecrypter_PassesThrough(t *testing.T) {
	rec := &domain.Record{ID: "1", Content: "plain transcript"}
	content, err := PlainDecrypter{}.Open(rec)
	require.NoError(t, err)
	assert.Equal(t, "plain transcript", content)
}
