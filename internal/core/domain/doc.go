// Package domain contains the core types of the wwdc CLI: the distributed
// archive and its records, search options and results, and the error
// taxonomy shared by every layer.
package domain
