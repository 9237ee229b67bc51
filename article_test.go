package kbmigrate_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/kbmigrate"
	"github.com/stretchr/testify/assert"
)

var placeholderPattern = regexp.MustCompile(`\{\{(IMG|ATTACH)_PLACEHOLDER_\d+\}\}`)

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{{IMG_PLACEHOLDER_0}}", kbmigrate.ImagePlaceholder(0))
	assert.Equal(t, "{{IMG_PLACEHOLDER_12}}", kbmigrate.ImagePlaceholder(12))
	assert.Equal(t, "{{ATTACH_PLACEHOLDER_3}}", kbmigrate.AttachmentPlaceholder(3))
}

func TestSubstitute(t *testing.T) {
	t.Parallel()

	body := `<p><img src="{{IMG_PLACEHOLDER_0}}"/> see <a href="{{ATTACH_PLACEHOLDER_1}}">form</a></p>` +
		`<img src="{{IMG_PLACEHOLDER_10}}"/>`

	t.Run("empty mapping leaves body unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, body, kbmigrate.Substitute(body, nil))
		assert.Equal(t, body, kbmigrate.Substitute(body, kbmigrate.Replacements{}))
	})

	t.Run("complete mapping removes every placeholder", func(t *testing.T) {
		t.Parallel()

		got := kbmigrate.Substitute(body, kbmigrate.Replacements{
			"{{IMG_PLACEHOLDER_0}}":    "/img/0",
			"{{IMG_PLACEHOLDER_10}}":   "/img/10",
			"{{ATTACH_PLACEHOLDER_1}}": "/file/1",
		})

		assert.Empty(t, placeholderPattern.FindAllString(got, -1))
		assert.Contains(t, got, `src="/img/0"`)
		assert.Contains(t, got, `src="/img/10"`)
		assert.Contains(t, got, `href="/file/1"`)
	})

	t.Run("partial mapping leaves unknown tokens verbatim", func(t *testing.T) {
		t.Parallel()

		got := kbmigrate.Substitute(body, kbmigrate.Replacements{
			"{{IMG_PLACEHOLDER_1}}": "/never/used",
			"{{IMG_PLACEHOLDER_0}}": "",
		})

		assert.Contains(t, got, `src=""`)
		assert.Contains(t, got, "{{IMG_PLACEHOLDER_10}}")
		assert.Contains(t, got, "{{ATTACH_PLACEHOLDER_1}}")
		assert.NotContains(t, got, "/never/used")
	})

	t.Run("values are not rescanned", func(t *testing.T) {
		t.Parallel()

		got := kbmigrate.Substitute("{{IMG_PLACEHOLDER_0}}", kbmigrate.Replacements{
			"{{IMG_PLACEHOLDER_0}}": "{{IMG_PLACEHOLDER_1}}",
			"{{IMG_PLACEHOLDER_1}}": "x",
		})

		assert.Equal(t, "{{IMG_PLACEHOLDER_1}}", got)
	})
}

func TestArticle_Placeholders(t *testing.T) {
	t.Parallel()

	a := &kbmigrate.Article{
		Images:      []kbmigrate.MediaRef{{Placeholder: kbmigrate.ImagePlaceholder(0)}},
		Attachments: []kbmigrate.MediaRef{{Placeholder: kbmigrate.AttachmentPlaceholder(2)}},
	}

	assert.Equal(t, []string{"{{IMG_PLACEHOLDER_0}}", "{{ATTACH_PLACEHOLDER_2}}"}, a.Placeholders())
}

func TestDryRunValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[IMAGE: a.png]", kbmigrate.DryRunValue(kbmigrate.MediaRef{Kind: kbmigrate.MediaImage, Filename: "a.png"}))
	assert.Equal(t, "[ATTACHMENT: b.pdf]", kbmigrate.DryRunValue(kbmigrate.MediaRef{Kind: kbmigrate.MediaAttachment, Filename: "b.pdf"}))
}
