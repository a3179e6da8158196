package notion

import (
	"context"
	"net/url"

	"essay-feedback/api/internal/util"
)

// UpdateResult is the raw outcome of a page update.
type UpdateResult struct {
	StatusCode int
	Body       string
}

// OK reports a 2xx status.
func (r UpdateResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type richTextValue struct {
	RichText []RichText `json:"rich_text"`
}

type updatePageRequest struct {
	Properties map[string]richTextValue `json:"properties"`
}

// UpdateRichText sets each named property of the page to a single text segment.
// A non-2xx answer is not an error: it is returned in UpdateResult and logged.
func (c *Client) UpdateRichText(ctx context.Context, pageID string, props map[string]string) (UpdateResult, error) {
	req := updatePageRequest{Properties: make(map[string]richTextValue, len(props))}
	for name, value := range props {
		req.Properties[name] = richTextValue{
			RichText: []RichText{{Text: &TextContent{Content: value}}},
		}
	}

	status, body, err := c.do(ctx, "PATCH", "/v1/pages/"+url.PathEscape(pageID), req)
	if err != nil {
		return UpdateResult{StatusCode: status}, err
	}
	res := UpdateResult{StatusCode: status, Body: string(body)}
	c.log.Info("notion update response", "page_id", pageID, "status", status, "body", util.Truncate(res.Body, maxLoggedBody))
	return res, nil
}
