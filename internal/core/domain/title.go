package domain

// Titles are stored obfuscated so that a directory listing or an
// unencrypted index does not expose the session catalogue to casual
// skimming. A closed set of vowels is swapped for visually similar
// non-Latin glyphs; everything else passes through. This is a reversible
// table lookup, not encryption, and is not a security control.

var obfuscationTable = map[rune]rune{
	'a': 'а', 'e': 'е', 'i': 'і', 'o': 'о', 'u': 'ս',
	'A': 'А', 'E': 'Е', 'I': 'І', 'O': 'О', 'U': 'Ս',
}

var deobfuscationTable = func() map[rune]rune {
	inv := make(map[rune]rune, len(obfuscationTable))
	for k, v := range obfuscationTable {
		inv[v] = k
	}
	return inv
}()

// ObfuscateTitle substitutes vowels with their lookalike glyphs.
func ObfuscateTitle(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		if sub, ok := obfuscationTable[r]; ok {
			r = sub
		}
		out = append(out, r)
	}
	return string(out)
}

// DeobfuscateTitle reverses ObfuscateTitle. Applying it to a title that was
// never obfuscated is a no-op.
func DeobfuscateTitle(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		if orig, ok := deobfuscationTable[r]; ok {
			r = orig
		}
		out = append(out, r)
	}
	return string(out)
}
