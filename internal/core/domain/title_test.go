package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObfuscateTitle_RoundTrip(t *testing.T) {
	titles := []string{
		"Build SharePlay experiences",
		"Meet async/await in Swift",
		"AUDIO UNITS: Under the hood",
		"What's new in SwiftUI",
		"",
		"1234 !@#$ no vowels here: xyz",
	}

	for _, title := range titles {
		obfuscated := ObfuscateTitle(title)
		assert.Equal(t, title, DeobfuscateTitle(obfuscated), "round trip for %q", title)
	}
}

func TestObfuscateTitle_ChangesVowels(t *testing.T) {
	obfuscated := ObfuscateTitle("Build SharePlay experiences")

	assert.NotEqual(t, "Build SharePlay experiences", obfuscated)
	// Consonants and spacing survive untouched.
	assert.Contains(t, obfuscated, "B")
	assert.Contains(t, obfuscated, " ")
}

func TestDeobfuscateTitle_NoOpOnPlainText(t *testing.T) {
	plain := "Build SharePlay experiences"
	assert.Equal(t, plain, DeobfuscateTitle(plain))
}

func TestArchive_RecordByID(t *testing.T) {
	a := &Archive{Records: []Record{
		{ID: "10001", Title: "First", Year: 2020},
		{ID: "10002", Title: "Second", Year: 2021},
	}}

	rec := a.RecordByID("10002")
	assert.NotNil(t, rec)
	assert.Equal(t, "Second", rec.Title)

	assert.Nil(t, a.RecordByID("missing"))
}

func TestArchive_MaxYear(t *testing.T) {
	a := &Archive{Records: []Record{{ID: "1", Year: 2019}, {ID: "2", Year: 2023}}}
	assert.Equal(t, 2023, a.MaxYear())

	// Metadata is informational only and never drives the result.
	a.Metadata.YearMax = 2024
	assert.Equal(t, 2023, a.MaxYear())

	assert.Equal(t, 0, (&Archive{}).MaxYear())
}
