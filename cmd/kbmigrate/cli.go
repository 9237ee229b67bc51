package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fwojciec/kbmigrate"
	"github.com/fwojciec/kbmigrate/migrate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config kbmigrate.Config

	Transformer kbmigrate.Transformer
	Classifier  kbmigrate.CategoryClassifier
	Renderer    kbmigrate.MarkdownRenderer
	Results     kbmigrate.ResultService
	Reports     kbmigrate.ReportStore
	Migrator    *migrate.Migrator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	Config  string `name:"config" type:"path" help:"YAML configuration file"`

	Run       RunCmd       `cmd:"" help:"Migrate article folders into Salesforce Knowledge"`
	Transform TransformCmd `cmd:"" help:"Transform a single page and print the result"`
	Preview   PreviewCmd   `cmd:"" help:"Render a transformed page as Markdown"`
	Classify  ClassifyCmd  `cmd:"" help:"Report whether pages are category pages"`
	History   HistoryCmd   `cmd:"" help:"List recorded migration results"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Folder      string `type:"path" help:"Migrate a single article folder"`
	Root        string `type:"path" help:"Directory containing article folders"`
	ExportRoot  string `name:"export-root" type:"path" help:"Export root containing the relative/ tree"`
	Org         string `help:"Salesforce CLI org alias or username"`
	DryRun      bool   `name:"dry-run" help:"Transform and report without uploading"`
	Publish     bool   `help:"Publish articles after creation"`
	Resume      bool   `help:"Skip folders already migrated successfully"`
	Concurrency int    `short:"c" help:"Concurrent article limit"`
}

// apply overrides configuration values with the flags that were given.
func (c *RunCmd) apply(cfg *kbmigrate.Config) {
	if c.Root != "" {
		cfg.ArticlesRoot = c.Root
	}
	if c.Folder != "" {
		cfg.ArticlesRoot = filepath.Dir(filepath.Clean(c.Folder))
	}
	if c.ExportRoot != "" {
		cfg.ExportRoot = c.ExportRoot
	}
	if c.Org != "" {
		cfg.TargetOrg = c.Org
	}
	if c.DryRun {
		cfg.DryRun = true
	}
	if c.Publish {
		cfg.Publish = true
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	if cfg.ArticlesRoot == "" {
		cfg.ArticlesRoot = "."
	}
}

// TransformCmd is the "transform" subcommand.
type TransformCmd struct {
	Path       string `arg:"" type:"path" help:"Page file or article folder"`
	ExportRoot string `name:"export-root" type:"path" help:"Export root containing the relative/ tree"`
	Body       bool   `default:"true" negatable:"" help:"Print the transformed body"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	Path       string `arg:"" type:"path" help:"Page file or article folder"`
	ExportRoot string `name:"export-root" type:"path" help:"Export root containing the relative/ tree"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	Paths []string `arg:"" type:"path" help:"Page files or article folders"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit  int    `short:"n" default:"20" help:"Maximum number of results"`
	RunID  string `name:"run" help:"Only show results of this run ID"`
	Failed bool   `help:"Only show failed results"`
}

// pagePath returns the HTML file for path, which may name an article folder.
func pagePath(path, htmlFilename string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, htmlFilename)
	}
	return path
}
