package fs

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/fwojciec/kbmigrate"
)

// Discovery lists the article folders found under a root directory.
type Discovery struct {
	// Folders contain the HTML file, sorted by name.
	Folders []string

	// Skipped are subdirectories without the HTML file.
	Skipped []string
}

// DiscoverArticles scans root's immediate subdirectories for folders
// containing htmlFilename.
func DiscoverArticles(root, htmlFilename string) (*Discovery, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kbmigrate.Errorf(kbmigrate.ENOTFOUND, "articles root %q not found", root)
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	d := &Discovery{}
	for _, name := range names {
		folder := filepath.Join(root, name)
		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			continue
		}
		if fileExists(filepath.Join(folder, htmlFilename)) {
			d.Folders = append(d.Folders, folder)
		} else {
			d.Skipped = append(d.Skipped, folder)
		}
	}
	return d, nil
}

// DetectExportRoot walks up from dir looking for the export root: a
// directory containing the relative tree, or the parent of a directory
// named relative. Returns "" if none is found.
func DetectExportRoot(dir string) string {
	current, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for current != filepath.Dir(current) {
		if isDir(filepath.Join(current, kbmigrate.RelativeDir)) {
			return current
		}
		parent, name := filepath.Split(current)
		parent = filepath.Clean(parent)
		if name == kbmigrate.RelativeDir {
			return parent
		}
		current = parent
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
