package salesforce

import (
	"context"
	"regexp"
	"strings"

	"github.com/fwojciec/kbmigrate"
)

// maxURLNameLength is the UrlName field limit.
const maxURLNameLength = 255

// Letters, digits and whitespace match in any script.
var (
	reSlugStrip = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\p{Z}-]`)
	reSlugSpace = regexp.MustCompile(`[\s\p{Z}_]+`)
)

// Slugify converts a title into a URL name.
func Slugify(title string) string {
	slug := reSlugStrip.ReplaceAllString(title, "")
	slug = reSlugSpace.ReplaceAllString(slug, "-")
	slug = strings.ToLower(strings.Trim(slug, "-"))
	if runes := []rune(slug); len(runes) > maxURLNameLength {
		slug = strings.TrimRight(string(runes[:maxURLNameLength]), "-")
	}
	return slug
}

// CreateArticle creates a draft knowledge article.
func (c *Client) CreateArticle(ctx context.Context, draft *kbmigrate.ArticleDraft) (string, error) {
	if err := draft.Validate(); err != nil {
		return "", err
	}

	urlName := draft.URLName
	if urlName == "" {
		urlName = Slugify(draft.Title)
	}

	record := map[string]string{
		c.schema.TitleField: draft.Title,
		c.schema.BodyField:  draft.Body,
	}
	if c.schema.URLNameField != "" {
		record[c.schema.URLNameField] = urlName
	}
	if c.schema.Language != "" {
		record["Language"] = c.schema.Language
	}

	var created createResponse
	if err := c.do(ctx, "POST", "sobjects/"+c.schema.Object, record, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// LinkFile shares an uploaded document with an article, visible to all users.
func (c *Client) LinkFile(ctx context.Context, documentID, articleID string) error {
	return c.do(ctx, "POST", "sobjects/ContentDocumentLink", map[string]string{
		"ContentDocumentId": documentID,
		"LinkedEntityId":    articleID,
		"ShareType":         "V",
		"Visibility":        "AllUsers",
	}, nil)
}

// PublishArticle publishes a draft article version.
func (c *Client) PublishArticle(ctx context.Context, articleID string) error {
	return c.do(ctx, "PATCH", "knowledgeManagement/articleVersions/masterVersions/"+articleID, map[string]string{
		"publishStatus": "Online",
	}, nil)
}
