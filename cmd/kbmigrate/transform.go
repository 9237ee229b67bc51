package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fwojciec/kbmigrate"
	"github.com/fwojciec/kbmigrate/fs"
)

// Run executes the transform command.
func (c *TransformCmd) Run(deps *Dependencies) error {
	article, err := transformPage(deps, c.Path, c.ExportRoot)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbmigrate.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Title: %s\n", article.Title)
	printRefs(deps.Stdout, "Images", article.Images)
	printRefs(deps.Stdout, "Attachments", article.Attachments)
	if c.Body {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, article.Body)
	}
	return nil
}

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	article, err := transformPage(deps, c.Path, c.ExportRoot)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbmigrate.ErrorMessage(err))
		return err
	}

	md, err := deps.Renderer.Render(article)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbmigrate.ErrorMessage(err))
		return err
	}
	fmt.Fprint(deps.Stdout, md)
	return nil
}

// Run executes the classify command.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	for _, p := range c.Paths {
		kind := "article"
		if deps.Classifier.IsCategoryPage(pagePath(p, deps.Config.HTMLFilename)) {
			kind = "category"
		}
		fmt.Fprintf(deps.Stdout, "%s\t%s\n", kind, p)
	}
	return nil
}

// transformPage transforms the page at path, detecting the export root
// when none is given.
func transformPage(deps *Dependencies, path, exportRoot string) (*kbmigrate.Article, error) {
	htmlPath := pagePath(path, deps.Config.HTMLFilename)
	dir := filepath.Dir(htmlPath)
	if exportRoot == "" {
		exportRoot = fs.DetectExportRoot(dir)
	}
	return deps.Transformer.Transform(htmlPath, kbmigrate.ExportLayout{
		ExportRoot: exportRoot,
		ArticleDir: dir,
	})
}

func printRefs(w io.Writer, label string, refs []kbmigrate.MediaRef) {
	fmt.Fprintf(w, "%s: %d\n", label, len(refs))
	for _, ref := range refs {
		fmt.Fprintf(w, "  %s  %s  %s\n", ref.Placeholder, ref.Filename, ref.LocalPath)
	}
}
