package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynonymTable_Defaults(t *testing.T) {
	table := NewSynonymTable()

	assert.Equal(t, []string{"groupactivities", "group activities"}, table.Expand("shareplay"))
	assert.Contains(t, table.Expand("ml"), "machine learning")
	assert.Nil(t, table.Expand("unknown term"))
}

func TestSynonymTable_ExactMatchOnly(t *testing.T) {
	table := NewSynonymTable()

	// Expansion keys on the whole normalized query, not per token.
	assert.Nil(t, table.Expand("shareplay experiences"))
	assert.Nil(t, table.Expand("SharePlay"))
}

func TestLoadSynonymTable_MergesUserEntries(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("synonyms.visionos", []string{"RealityKit ", "spatial computing"}))
	require.NoError(t, store.Set("synonyms.shareplay", []string{"facetime"}))

	table := LoadSynonymTable(store)

	// New entries are added, normalized to lowercase.
	assert.Equal(t, []string{"realitykit", "spatial computing"}, table.Expand("visionos"))
	// User entries replace defaults for the same term.
	assert.Equal(t, []string{"facetime"}, table.Expand("shareplay"))
	// Untouched defaults survive.
	assert.Equal(t, []string{"shareplay"}, table.Expand("groupactivities"))
}

func TestLoadSynonymTable_IgnoresEmptyEntries(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("synonyms.shareplay", []string{}))

	table := LoadSynonymTable(store)
	assert.Equal(t, []string{"groupactivities", "group activities"}, table.Expand("shareplay"))
}
