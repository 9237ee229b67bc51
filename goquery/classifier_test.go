package goquery_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/kbmigrate/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_IsCategoryHTML(t *testing.T) {
	t.Parallel()

	t.Run("detects category tag regardless of content", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1 class="mt-export-title">Claims</h1>
<p>` + strings.Repeat("Real authored content. ", 20) + `</p>
<p class="template:tag-insert"><em>Tags: </em><a href="#">article:topic-category</a></p>
</body></html>`

		assert.True(t, goquery.NewClassifier().IsCategoryHTML(html))
	})

	t.Run("detects guide tag", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<p>` + strings.Repeat("x", 200) + `</p>
<p class="template:tag-insert"><a href="#"> article:topic-guide </a></p>
</body></html>`

		assert.True(t, goquery.NewClassifier().IsCategoryHTML(html))
	})

	t.Run("detects page with only title and a short sentence", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1 class="mt-export-title">A Long Export Title That Does Not Count Toward Content</h1>
<pre class="script">wiki.idf('guide-tabs'); template('MindTouch/IDF3/Views/Guide');</pre>
<p class="mt-script-comment">Guide tabs with a comment that is also long enough to count</p>
<p>Short one.</p>
<hr class="mt-export-separator"/>
<p class="template:tag-insert"><a href="#">article:topic</a></p>
</body></html>`

		assert.True(t, goquery.NewClassifier().IsCategoryHTML(html))
	})

	t.Run("does not flag page with a long paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1 class="mt-export-title">Claims</h1>
<p>` + strings.Repeat("a", 200) + `</p>
<p class="template:tag-insert"><a href="#">article:topic</a></p>
</body></html>`

		assert.False(t, goquery.NewClassifier().IsCategoryHTML(html))
	})

	t.Run("counts characters rather than bytes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>` + strings.Repeat("é", 30) + `</p></body></html>`

		assert.True(t, goquery.NewClassifier().IsCategoryHTML(html))
	})

	t.Run("does not flag page without a body", func(t *testing.T) {
		t.Parallel()

		assert.False(t, goquery.NewClassifier().IsCategoryHTML(`<p>short</p>`))
		assert.False(t, goquery.NewClassifier().IsCategoryHTML(`<html><head><title>Short</title></head></html>`))
	})

	t.Run("detects category tag on page without a body", func(t *testing.T) {
		t.Parallel()

		html := `<p class="template:tag-insert"><a>article:topic-guide</a></p>`

		assert.True(t, goquery.NewClassifier().IsCategoryHTML(html))
	})

	t.Run("honors configured threshold", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Ten chars!</p></body></html>`

		assert.True(t, goquery.NewClassifier(goquery.WithMinContentLength(11)).IsCategoryHTML(html))
		assert.False(t, goquery.NewClassifier(goquery.WithMinContentLength(10)).IsCategoryHTML(html))
	})
}

func TestClassifier_IsCategoryPage(t *testing.T) {
	t.Parallel()

	t.Run("fails open for missing file", func(t *testing.T) {
		t.Parallel()

		assert.False(t, goquery.NewClassifier().IsCategoryPage(filepath.Join(t.TempDir(), "page.html")))
	})

	t.Run("fails open for non UTF-8 content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0644))

		assert.False(t, goquery.NewClassifier().IsCategoryPage(path))
	})

	t.Run("reads and classifies page", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		html := `<html><body><p class="template:tag-insert"><a>article:topic-category</a></p></body></html>`
		require.NoError(t, os.WriteFile(path, []byte(html), 0644))

		assert.True(t, goquery.NewClassifier().IsCategoryPage(path))
	})

	t.Run("does not modify the page on disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte(exportedPage), 0644))

		goquery.NewClassifier().IsCategoryPage(path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, exportedPage, string(data))
	})
}
