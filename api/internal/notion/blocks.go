package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"essay-feedback/api/internal/util"
)

// Block is the subset of a Notion block the reader needs.
type Block struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Paragraph *Paragraph `json:"paragraph,omitempty"`
}

type Paragraph struct {
	RichText []RichText `json:"rich_text"`
}

type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

// content returns the literal text of a segment. Mentions and equations carry
// no "text" object, so their rendered plain_text is used instead.
func (r RichText) content() string {
	if r.Text != nil {
		return r.Text.Content
	}
	return r.PlainText
}

type childrenResponse struct {
	Results *[]Block `json:"results"`
}

// GetPageContent returns the text of every non-empty paragraph block of the
// page, in block order, joined by newlines. Only the first rich-text segment
// of each paragraph is used.
//
// An empty string means "no content": the response had no results list or no
// paragraph carried text. Errors are reserved for transport failures and
// bodies that are not JSON.
func (c *Client) GetPageContent(ctx context.Context, pageID string) (string, error) {
	path := "/v1/blocks/" + url.PathEscape(pageID) + "/children"
	status, body, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return "", err
	}
	c.log.Info("notion blocks response", "page_id", pageID, "status", status, "body", util.Truncate(string(body), maxLoggedBody))

	var out childrenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("notion blocks %d: bad JSON: %w", status, err)
	}
	if out.Results == nil {
		c.log.Error("notion blocks response has no results", "page_id", pageID, "status", status)
		return "", nil
	}

	var content []string
	for _, b := range *out.Results {
		c.log.Debug("notion block", "id", b.ID, "type", b.Type)
		if b.Type != "paragraph" {
			continue
		}
		if b.Paragraph == nil || len(b.Paragraph.RichText) == 0 {
			c.log.Info("empty paragraph skipped", "id", b.ID)
			continue
		}
		content = append(content, b.Paragraph.RichText[0].content())
	}
	return strings.Join(content, "\n"), nil
}
