package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/kbmigrate"
)

// Ensure Resolver implements kbmigrate.Resolver at compile time.
var _ kbmigrate.Resolver = (*Resolver)(nil)

const upperhex = "0123456789ABCDEF"

// EncodeStage1 reproduces the first encoding pass applied by the export:
// spaces become '+', then every byte outside the unreserved set
// (letters, digits, "_.-~" plus "()+") is percent-encoded.
func EncodeStage1(name string) string {
	return percentEncode(strings.ReplaceAll(name, " ", "+"), func(c byte) bool {
		return isUnreserved(c) || c == '(' || c == ')' || c == '+'
	})
}

// EncodeFilename returns the on-disk name of an exported file. The stage 1
// result is encoded again with '+' no longer safe, so only '%' and '+'
// change in the second pass.
//
// Example: "My File (1).oft" -> "My+File+(1).oft" -> "My%2BFile%2B(1).oft".
func EncodeFilename(name string) string {
	return percentEncode(EncodeStage1(name), func(c byte) bool {
		return isUnreserved(c) || c == '(' || c == ')'
	})
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_' || c == '.' || c == '-' || c == '~':
		return true
	}
	return false
}

func percentEncode(s string, safe func(byte) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if safe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// Resolver finds exported files on disk. It never fails: when no
// candidate exists it returns a best-guess path for error reporting.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve searches the article folder, then the folder named by hint under
// the export's relative tree, trying the literal and encoded names in turn.
func (r *Resolver) Resolve(filename string, layout kbmigrate.ExportLayout, hint string) string {
	names := []string{filename}
	if encoded := EncodeFilename(filename); encoded != filename {
		names = append(names, encoded)
	}

	for _, dir := range SearchDirs(layout, hint) {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}

	return filepath.Join(layout.ArticleDir, filename)
}

// SearchDirs returns the directories Resolve searches, in order.
// Hints look like "//Clients/EBPL/Procedures/Some_Article".
func SearchDirs(layout kbmigrate.ExportLayout, hint string) []string {
	dirs := []string{filepath.Clean(layout.ArticleDir)}

	if hint == "" || layout.ExportRoot == "" {
		return dirs
	}

	rel := filepath.FromSlash(strings.TrimLeft(hint, "/"))
	alt := filepath.Clean(filepath.Join(layout.ExportRoot, kbmigrate.RelativeDir, rel))
	if alt != dirs[0] {
		dirs = append(dirs, alt)
	}
	return dirs
}
