package file

import (
	"strings"

	"github.com/wwdckit/wwdc-cli/internal/core/ports/driven"
)

// Ensure SynonymTable implements the interface.
var _ driven.SynonymProvider = (*SynonymTable)(nil)

// SynonymTable maps a normalized query to its known aliases. It is static
// configuration, not hard-coded branches: the built-in vocabulary below
// can be extended through the [synonyms] table in config.toml, e.g.
//
//	[synonyms]
//	shareplay = ["groupactivities", "group activities"]
type SynonymTable struct {
	entries map[string][]string
}

// defaultSynonyms is the built-in domain vocabulary.
var defaultSynonyms = map[string][]string{
	"shareplay":        {"groupactivities", "group activities"},
	"groupactivities":  {"shareplay"},
	"swiftui":          {"swift ui"},
	"ml":               {"machine learning", "coreml", "create ml"},
	"machine learning": {"coreml", "create ml"},
	"ar":               {"augmented reality", "arkit", "realitykit"},
	"concurrency":      {"async", "await", "actors"},
	"widgets":          {"widgetkit"},
	"testing":          {"xctest", "unit tests"},
}

// NewSynonymTable builds a table from the defaults.
func NewSynonymTable() *SynonymTable {
	entries := make(map[string][]string, len(defaultSynonyms))
	for k, v := range defaultSynonyms {
		entries[k] = append([]string(nil), v...)
	}
	return &SynonymTable{entries: entries}
}

// LoadSynonymTable merges user entries from the config store over the
// defaults. A user entry replaces the default for the same term.
func LoadSynonymTable(store *ConfigStore) *SynonymTable {
	t := NewSynonymTable()
	for _, term := range store.Keys("synonyms") {
		aliases := store.GetStringSlice("synonyms." + term)
		if len(aliases) == 0 {
			continue
		}
		normalized := make([]string, 0, len(aliases))
		for _, a := range aliases {
			if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
				normalized = append(normalized, a)
			}
		}
		t.entries[strings.ToLower(term)] = normalized
	}
	return t
}

// Expand returns the aliases for the exact normalized query. Expansion is
// not transitive and is not applied per token.
func (t *SynonymTable) Expand(query string) []string {
	return t.entries[query]
}
