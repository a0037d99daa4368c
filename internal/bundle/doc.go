// Package bundle implements the archive lifecycle: building the
// obfuscated, encrypted, compressed bundle; locating it on disk;
// and decompressing, parsing and decrypting it again.
//
// Threat model: content is encrypted under a single symmetric key shared
// by every installation and baked into release builds. That is a
// deterrent against casual copying of the corpus, not confidentiality
// against anyone willing to extract the key from a binary. Titles are
// merely glyph-obfuscated so directory listings stay unreadable.
package bundle
