package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/kbmigrate"
	main "github.com/fwojciec/kbmigrate/cmd/kbmigrate"
	"github.com/fwojciec/kbmigrate/htmltomarkdown"
	"github.com/fwojciec/kbmigrate/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleArticle() *kbmigrate.Article {
	return &kbmigrate.Article{
		Title: "Reset Password",
		Body:  `<p>Open <strong>Settings</strong>.</p><img src="{{IMG_PLACEHOLDER_0}}"/>`,
		Images: []kbmigrate.MediaRef{{
			Kind: kbmigrate.MediaImage, Filename: "screen.png", LocalPath: "/export/relative/Reset/screen.png",
			Placeholder: kbmigrate.ImagePlaceholder(0),
		}},
	}
}

func TestTransformCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints title, references and body", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var gotPath string
		var gotLayout kbmigrate.ExportLayout
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: kbmigrate.DefaultConfig(),
			Transformer: &mock.Transformer{
				TransformFn: func(htmlPath string, layout kbmigrate.ExportLayout) (*kbmigrate.Article, error) {
					gotPath, gotLayout = htmlPath, layout
					return sampleArticle(), nil
				},
			},
		}

		cmd := &main.TransformCmd{Path: dir, ExportRoot: "/export", Body: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, filepath.Join(dir, "page.html"), gotPath)
		assert.Equal(t, kbmigrate.ExportLayout{ExportRoot: "/export", ArticleDir: dir}, gotLayout)

		output := stdout.String()
		assert.Contains(t, output, "Title: Reset Password")
		assert.Contains(t, output, "Images: 1")
		assert.Contains(t, output, "{{IMG_PLACEHOLDER_0}}  screen.png  /export/relative/Reset/screen.png")
		assert.Contains(t, output, "Attachments: 0")
		assert.Contains(t, output, "<strong>Settings</strong>")
	})

	t.Run("reports transform errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Config: kbmigrate.DefaultConfig(),
			Transformer: &mock.Transformer{
				TransformFn: func(htmlPath string, layout kbmigrate.ExportLayout) (*kbmigrate.Article, error) {
					return nil, kbmigrate.Errorf(kbmigrate.ENOTFOUND, "html file %q not found", htmlPath)
				},
			},
		}

		err := (&main.TransformCmd{Path: "/missing/page.html", ExportRoot: "/export"}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "not found")
	})
}

func TestPreviewCmd_Run(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
		Config: kbmigrate.DefaultConfig(),
		Transformer: &mock.Transformer{
			TransformFn: func(htmlPath string, layout kbmigrate.ExportLayout) (*kbmigrate.Article, error) {
				return sampleArticle(), nil
			},
		},
		Renderer: htmltomarkdown.NewRenderer(),
	}

	require.NoError(t, (&main.PreviewCmd{Path: "/x/page.html", ExportRoot: "/export"}).Run(deps))

	output := stdout.String()
	assert.Contains(t, output, "# Reset Password")
	assert.Contains(t, output, "**Settings**")
}

func TestClassifyCmd_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	category := filepath.Join(dir, "Guides")
	require.NoError(t, os.MkdirAll(category, 0o755))

	var asked []string
	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
		Config: kbmigrate.DefaultConfig(),
		Classifier: &mock.CategoryClassifier{
			IsCategoryPageFn: func(path string) bool {
				asked = append(asked, path)
				return filepath.Base(filepath.Dir(path)) == "Guides"
			},
		},
	}

	err := (&main.ClassifyCmd{Paths: []string{category, "/x/Reset/page.html"}}).Run(deps)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(category, "page.html"), "/x/Reset/page.html"}, asked)
	assert.Equal(t, "category\t"+category+"\narticle\t/x/Reset/page.html\n", stdout.String())
}
