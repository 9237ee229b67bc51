package kbmigrate

import (
	"path/filepath"
	"strings"
	"time"
)

// DefaultMaxBodyLength is the rich text field limit of the destination.
// Exceeding it produces a warning, never a failure.
const DefaultMaxBodyLength = 131072

// DefaultMinContentLength is the visible text length below which a page
// stripped of boilerplate is treated as a landing page.
const DefaultMinContentLength = 50

// Config holds migration settings.
type Config struct {
	// Destination org
	TargetOrg     string `yaml:"target_org"`
	APIVersion    string `yaml:"api_version"`
	ArticleObject string `yaml:"article_object"`
	TitleField    string `yaml:"title_field"`
	URLNameField  string `yaml:"url_name_field"`
	BodyField     string `yaml:"body_field"`
	Language      string `yaml:"language"`

	// Export layout
	ArticlesRoot string `yaml:"articles_root"`
	ExportRoot   string `yaml:"export_root"`
	HTMLFilename string `yaml:"html_filename"`

	// AttachmentExtensions lists link targets treated as attachments.
	// Matching is case-insensitive.
	AttachmentExtensions []string `yaml:"attachment_extensions"`

	// Behavior
	Publish           bool    `yaml:"publish"`
	DryRun            bool    `yaml:"dry_run"`
	SkipCategoryPages bool    `yaml:"skip_category_pages"`
	MaxBodyLength     int     `yaml:"max_body_length"`
	MinContentLength  int     `yaml:"min_content_length"`
	Concurrency       int     `yaml:"concurrency"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// RequestTimeout bounds each REST call, e.g. "90s". Zero keeps the
	// client default.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	DBPath string `yaml:"db_path"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		APIVersion:    "60.0",
		ArticleObject: "Knowledge__kav",
		TitleField:    "Title",
		URLNameField:  "UrlName",
		BodyField:     "FAQ_Answer__c",
		Language:      "en_US",
		HTMLFilename:  "page.html",
		AttachmentExtensions: []string{
			".oft", ".pdf", ".doc", ".docx", ".xls", ".xlsx",
			".pptx", ".ppt", ".msg", ".vsd", ".vsdx", ".xlsm",
			".csv", ".txt", ".mp4", ".docm", ".mpp",
		},
		SkipCategoryPages: true,
		MaxBodyLength:     DefaultMaxBodyLength,
		MinContentLength:  DefaultMinContentLength,
		Concurrency:       1,
		RequestsPerSecond: 5,
		RequestTimeout:    2 * time.Minute,
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if c.HTMLFilename == "" {
		return Errorf(EINVALID, "html filename required")
	}
	if strings.ContainsAny(c.HTMLFilename, `/\`) {
		return Errorf(EINVALID, "html filename %q must not contain a path separator", c.HTMLFilename)
	}
	if c.ArticleObject == "" || c.BodyField == "" || c.TitleField == "" {
		return Errorf(EINVALID, "article object and field names required")
	}
	if c.MaxBodyLength < 0 || c.MinContentLength < 0 {
		return Errorf(EINVALID, "length limits must not be negative")
	}
	if c.Concurrency < 0 {
		return Errorf(EINVALID, "concurrency must not be negative")
	}
	if c.RequestTimeout < 0 {
		return Errorf(EINVALID, "request timeout must not be negative")
	}
	for _, ext := range c.AttachmentExtensions {
		if !strings.HasPrefix(ext, ".") {
			return Errorf(EINVALID, "attachment extension %q must start with a dot", ext)
		}
	}
	return nil
}

// ExtensionSet builds a case-insensitive lookup set from extensions.
func ExtensionSet(extensions []string) map[string]bool {
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = true
	}
	return set
}

// HasExtension reports whether filename's extension is in set.
func HasExtension(filename string, set map[string]bool) bool {
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	return set[strings.ToLower(ext)]
}
