package salesforce

import (
	"context"
	"encoding/base64"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/kbmigrate"
)

// DownloadURL returns the rich-text link to a ContentDocument.
func DownloadURL(documentID string) string {
	return "/sfc/servlet.shepherd/document/download/" + documentID
}

// RenditionURL returns the inline image rendition of a ContentVersion.
func RenditionURL(versionID string) string {
	return "/sfc/servlet.shepherd/version/renditionDownload?rendition=ORIGINAL_Png&versionId=" + versionID
}

// Upload stores the file at localPath as a ContentVersion. An empty title
// defaults to the file name without extension.
func (c *Client) Upload(ctx context.Context, localPath, title string) (*kbmigrate.UploadResult, error) {
	data, err := os.ReadFile(localPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, kbmigrate.Errorf(kbmigrate.ENOTFOUND, "file %q not found", localPath)
	} else if err != nil {
		return nil, err
	}

	filename := filepath.Base(localPath)
	if title == "" {
		title = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	var created createResponse
	if err := c.do(ctx, "POST", "sobjects/ContentVersion", map[string]string{
		"Title":        title,
		"PathOnClient": filename,
		"VersionData":  base64.StdEncoding.EncodeToString(data),
	}, &created); err != nil {
		return nil, err
	}

	documentID, err := c.contentDocumentID(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	return &kbmigrate.UploadResult{
		ContentVersionID: created.ID,
		DocumentID:       documentID,
		DownloadURL:      DownloadURL(documentID),
		RenditionURL:     RenditionURL(created.ID),
		Filename:         filename,
	}, nil
}

// contentDocumentID looks up the ContentDocument of a ContentVersion.
func (c *Client) contentDocumentID(ctx context.Context, versionID string) (string, error) {
	soql := "SELECT ContentDocumentId FROM ContentVersion WHERE Id = '" + escapeSOQL(versionID) + "'"

	var result struct {
		Records []struct {
			ContentDocumentID string `json:"ContentDocumentId"`
		} `json:"records"`
	}
	if err := c.do(ctx, "GET", "query?q="+url.QueryEscape(soql), nil, &result); err != nil {
		return "", err
	}
	if len(result.Records) == 0 {
		return "", kbmigrate.Errorf(kbmigrate.ENOTFOUND, "content version %q not found", versionID)
	}
	return result.Records[0].ContentDocumentID, nil
}

func escapeSOQL(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
