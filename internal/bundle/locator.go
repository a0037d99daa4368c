package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wwdckit/wwdc-cli/internal/logger"
)

// Recognized artifact names. The plaintext database supports key-less
// local development; the encrypted bundle is what releases ship.
const (
	PlainDBName    = "wwdc.db"
	BundleFileName = "wwdc_bundle.encrypted"
)

// ExitMissingBundle is the process exit status reserved exclusively for
// "required external archive missing". No other failure may use it.
const ExitMissingBundle = 5

// Candidate is one location the locator probed.
type Candidate struct {
	// Path is the absolute file path.
	Path string

	// Plain is true for the pre-decrypted development database.
	Plain bool
}

// Locator deterministically searches the ordered list of filesystem
// locations for an archive. First match wins:
//
//  1. plaintext database in the user directory (~/.wwdc/wwdc.db)
//  2. encrypted bundle in the user directory
//  3. encrypted bundle in the working directory
//  4. encrypted bundle next to the executable
type Locator struct {
	userDir string
	workDir string
	execDir string
}

// NewLocator builds a locator for the current process environment.
// Unresolvable directories are skipped rather than fatal; a locator with
// no resolvable directory simply never finds a bundle.
func NewLocator() *Locator {
	l := &Locator{}
	if home, err := os.UserHomeDir(); err == nil {
		l.userDir = filepath.Join(home, ".wwdc")
	}
	if wd, err := os.Getwd(); err == nil {
		l.workDir = wd
	}
	if exe, err := os.Executable(); err == nil {
		l.execDir = filepath.Dir(exe)
	}
	return l
}

// NewLocatorAt builds a locator over explicit directories. Used by tests
// and by tooling that operates on a staging area.
func NewLocatorAt(userDir, workDir, execDir string) *Locator {
	return &Locator{userDir: userDir, workDir: workDir, execDir: execDir}
}

// Candidates returns every probe location in precedence order.
func (l *Locator) Candidates() []Candidate {
	var cands []Candidate
	if l.userDir != "" {
		cands = append(cands,
			Candidate{Path: filepath.Join(l.userDir, PlainDBName), Plain: true},
			Candidate{Path: filepath.Join(l.userDir, BundleFileName)},
		)
	}
	if l.workDir != "" {
		cands = append(cands, Candidate{Path: filepath.Join(l.workDir, BundleFileName)})
	}
	if l.execDir != "" {
		cands = append(cands, Candidate{Path: filepath.Join(l.execDir, BundleFileName)})
	}
	return cands
}

// Locate returns the highest-precedence candidate that exists on disk.
func (l *Locator) Locate() (Candidate, bool) {
	for _, c := range l.Candidates() {
		info, err := os.Stat(c.Path)
		if err == nil && !info.IsDir() {
			logger.Debug("Located archive at %s (plain=%t)", c.Path, c.Plain)
			return c, true
		}
	}
	logger.Debug("No archive found in %d locations", len(l.Candidates()))
	return Candidate{}, false
}

// Exists reports whether any candidate exists.
func (l *Locator) Exists() bool {
	_, ok := l.Locate()
	return ok
}

// MissingMessage builds the remediation guidance printed before the
// process exits with ExitMissingBundle. It states the problem, offers
// independent fixes with literal commands, and lists every checked path.
func (l *Locator) MissingMessage() string {
	var b strings.Builder

	b.WriteString("ERROR: no session archive found.\n")
	b.WriteString("\n")
	b.WriteString("The wwdc command needs the session transcript bundle before it can search.\n")
	b.WriteString("\n")
	b.WriteString("To fix this, do one of the following:\n")
	b.WriteString("\n")
	b.WriteString("  1. Download the release bundle into your user directory:\n")
	b.WriteString("       mkdir -p ~/.wwdc\n")
	b.WriteString("       curl -fL -o ~/.wwdc/" + BundleFileName + " \\\n")
	b.WriteString("         https://github.com/wwdckit/wwdc-cli/releases/latest/download/" + BundleFileName + "\n")
	b.WriteString("\n")
	b.WriteString("  2. Build a bundle from your own transcripts:\n")
	b.WriteString("       wwdc bundle build --input sessions.json --output ~/.wwdc/" + BundleFileName + "\n")
	b.WriteString("\n")
	b.WriteString("  3. For key-less development, place a plaintext database at ~/.wwdc/" + PlainDBName + "\n")
	b.WriteString("\n")
	b.WriteString("Paths checked, in order:\n")
	for i, c := range l.Candidates() {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, c.Path)
	}

	return b.String()
}
