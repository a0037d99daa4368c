package bundle

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
)

// FormatVersion is the single supported envelope version. There are no
// backward-compatibility shims; any other value fails the parse.
const FormatVersion = 1

// The envelope is a UTF-8 JSON document. Unknown fields are tolerated for
// forward compatibility; missing mandatory fields are not.

type archiveEnvelope struct {
	FormatVersion int                 `json:"format_version"`
	Records       []recordEnvelope    `json:"records"`
	SearchIndex   map[string][]string `json:"search_index"`
	Metadata      metadataEnvelope    `json:"metadata"`
}

type recordEnvelope struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
	Content  string `json:"content"`
	Checksum string `json:"checksum"`
	Excerpt  string `json:"excerpt,omitempty"`
}

type metadataEnvelope struct {
	RecordCount int       `json:"record_count"`
	YearMin     int       `json:"year_min"`
	YearMax     int       `json:"year_max"`
	BuiltAt     time.Time `json:"built_at"`
}

// MarshalArchive serializes an archive to its JSON envelope.
func MarshalArchive(a *domain.Archive) ([]byte, error) {
	env := archiveEnvelope{
		FormatVersion: a.FormatVersion,
		Records:       make([]recordEnvelope, len(a.Records)),
		SearchIndex:   a.SearchIndex,
		Metadata: metadataEnvelope{
			RecordCount: a.Metadata.RecordCount,
			YearMin:     a.Metadata.YearMin,
			YearMax:     a.Metadata.YearMax,
			BuiltAt:     a.Metadata.BuiltAt,
		},
	}
	for i := range a.Records {
		r := &a.Records[i]
		env.Records[i] = recordEnvelope{
			ID:       r.ID,
			Title:    r.Title,
			Year:     r.Year,
			Content:  r.Content,
			Checksum: r.Checksum,
			Excerpt:  r.Excerpt,
		}
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshaling envelope: %w", err)
	}
	return data, nil
}

// UnmarshalArchive parses a JSON envelope back into an archive, enforcing
// the format version, mandatory fields and index integrity. All failures
// wrap domain.ErrInvalidDataFormat.
func UnmarshalArchive(data []byte) (*domain.Archive, error) {
	var env archiveEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing envelope: %v: %w", err, domain.ErrInvalidDataFormat)
	}

	if env.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported format version %d (want %d): %w",
			env.FormatVersion, FormatVersion, domain.ErrInvalidDataFormat)
	}
	if env.Records == nil {
		return nil, fmt.Errorf("envelope has no records field: %w", domain.ErrInvalidDataFormat)
	}

	a := &domain.Archive{
		FormatVersion: env.FormatVersion,
		Records:       make([]domain.Record, len(env.Records)),
		SearchIndex:   env.SearchIndex,
		Metadata: domain.ArchiveMetadata{
			RecordCount: env.Metadata.RecordCount,
			YearMin:     env.Metadata.YearMin,
			YearMax:     env.Metadata.YearMax,
			BuiltAt:     env.Metadata.BuiltAt,
		},
	}
	if a.SearchIndex == nil {
		a.SearchIndex = map[string][]string{}
	}

	ids := make(map[string]bool, len(env.Records))
	for i := range env.Records {
		r := env.Records[i]
		if r.ID == "" || r.Title == "" || r.Content == "" || r.Checksum == "" {
			return nil, fmt.Errorf("record %d is missing a mandatory field: %w", i, domain.ErrInvalidDataFormat)
		}
		if r.Year == 0 {
			return nil, fmt.Errorf("record %q has no year: %w", r.ID, domain.ErrInvalidDataFormat)
		}
		if ids[r.ID] {
			return nil, fmt.Errorf("duplicate record id %q: %w", r.ID, domain.ErrInvalidDataFormat)
		}
		ids[r.ID] = true
		a.Records[i] = domain.Record{
			ID:       r.ID,
			Title:    r.Title,
			Year:     r.Year,
			Content:  r.Content,
			Checksum: r.Checksum,
			Excerpt:  r.Excerpt,
		}
	}

	// Index integrity: every referenced id must exist in records.
	for term, refs := range a.SearchIndex {
		for _, id := range refs {
			if !ids[id] {
				return nil, fmt.Errorf("index term %q references unknown record %q: %w",
					term, id, domain.ErrInvalidDataFormat)
			}
		}
	}

	return a, nil
}
