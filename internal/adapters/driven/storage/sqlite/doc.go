// Package sqlite reads the plaintext development database (wwdc.db).
// It is the locator's highest-precedence candidate and lets developers
// search locally without the shared bundle key. The production path never
// touches SQLite; releases ship the encrypted bundle instead.
package sqlite
