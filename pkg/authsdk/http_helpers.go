package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aussiebroadwan/quill/pkg/httpx"
)

// userAgent tags SDK traffic in the blog service's request logs.
const userAgent = "quill-authsdk"

// call sends method+path to the blog service and decodes a response with
// wantStatus into out. A JSON body is sent when in is non-nil and an
// Authorization header when authorization is non-empty. Any other status
// comes back as an *APIError or *ValidationError.
func (c *SDKClient) call(
	ctx context.Context,
	method, path string,
	in any,
	authorization string,
	wantStatus int,
	out any,
) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("authsdk: encode %s body: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("authsdk: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("authsdk: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	// Responses get the same cap the server puts on JSON requests.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, httpx.MaxJSONBodyBytes))
	if err != nil {
		return fmt.Errorf("authsdk: read %s response: %w", path, err)
	}

	if resp.StatusCode != wantStatus {
		return parseErrorResponse(resp, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("authsdk: decode %s response: %w", path, err)
	}
	return nil
}
