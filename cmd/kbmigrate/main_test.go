package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/kbmigrate/cmd/kbmigrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><head><title>Reset Password</title></head><body>
<h1 class="mt-export-title">Reset Password</h1>
<pre class="script">template.call("x")</pre>
<p>To reset your password, open the account settings page and follow the steps shown below.</p>
<img src="screen.png" src.filename="screen.png" class="mt-image internal"/>
<p>Download the <a href="guide.pdf" href.filename="guide.pdf">setup guide</a>.</p>
<hr class="mt-export-separator"/>
</body></html>`

const categoryPage = `<html><head><title>Guides</title></head><body>
<h1 class="mt-export-title">Guides</h1>
<p class="template:tag-insert"><a href="#">article:topic-guide</a></p>
</body></html>`

// exportTree builds export/relative/{Reset,Guides} and returns the relative dir.
func exportTree(t *testing.T) string {
	t.Helper()
	relative := filepath.Join(t.TempDir(), "export", "relative")

	reset := filepath.Join(relative, "Reset")
	require.NoError(t, os.MkdirAll(reset, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(reset, "page.html"), []byte(articlePage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(reset, "screen.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(reset, "guide.pdf"), []byte("pdf"), 0o644))

	guides := filepath.Join(relative, "Guides")
	require.NoError(t, os.MkdirAll(guides, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(guides, "page.html"), []byte(categoryPage), 0o644))

	return relative
}

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	return m
}

func TestMain_Run_Transform(t *testing.T) {
	t.Parallel()

	relative := exportTree(t)
	stdout := &bytes.Buffer{}

	err := newTestMain(t).Run(context.Background(), []string{"transform", filepath.Join(relative, "Reset")}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "Title: Reset Password")
	assert.Contains(t, output, "Images: 1")
	assert.Contains(t, output, "Attachments: 1")
	assert.Contains(t, output, `src="{{IMG_PLACEHOLDER_0}}"`)
	assert.Contains(t, output, `href="{{ATTACH_PLACEHOLDER_0}}"`)
	assert.NotContains(t, output, "mt-export-title")
	assert.NotContains(t, output, "template.call")
}

func TestMain_Run_Classify(t *testing.T) {
	t.Parallel()

	relative := exportTree(t)
	stdout := &bytes.Buffer{}

	err := newTestMain(t).Run(context.Background(), []string{
		"classify", filepath.Join(relative, "Guides"), filepath.Join(relative, "Reset"),
	}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "category\t"))
	assert.True(t, strings.HasPrefix(lines[1], "article\t"))
}

func TestMain_Run_DryRun(t *testing.T) {
	t.Parallel()

	relative := exportTree(t)
	stdout := &bytes.Buffer{}

	err := newTestMain(t).Run(context.Background(), []string{"run", "--dry-run", "--root", relative}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "Total:      2")
	assert.Contains(t, output, "Succeeded:  1")
	assert.Contains(t, output, "Skipped:    1")
	assert.Contains(t, output, "Article ID: DRY_RUN_ID")

	reports, err := filepath.Glob(filepath.Join(relative, "upload_report_*.json"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestMain_Run_InvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kbmigrate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown_key: 1\n"), 0o644))

	err := newTestMain(t).Run(context.Background(), []string{"classify", "--config", path, "x"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
