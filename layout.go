package kbmigrate

// RelativeDir is the export subdirectory mirroring the original site hierarchy.
const RelativeDir = "relative"

// ExportLayout locates a page within the export.
type ExportLayout struct {
	// ExportRoot is the directory containing RelativeDir. May be empty
	// when it could not be detected, in which case cross-folder
	// references resolve only against ArticleDir.
	ExportRoot string

	// ArticleDir is the folder holding the current page.
	ArticleDir string
}

// Resolver maps a reference filename to a path on disk.
type Resolver interface {
	// Resolve returns the first existing candidate path for filename, or
	// filename joined to layout.ArticleDir when none exists. hint is the
	// export's logical path of the folder holding the file, if known.
	Resolve(filename string, layout ExportLayout, hint string) string
}
