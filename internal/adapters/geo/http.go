package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of a failed response body is kept for errors.
const maxErrorBody = 512

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// client bundles the HTTP session and the headers every provider call carries.
type client struct {
	session   *http.Client
	userAgent string
	apiKey    string
}

func newClient(session *http.Client, userAgent, apiKey string) client {
	if session == nil {
		session = &http.Client{}
	}
	return client{session: session, userAgent: userAgent, apiKey: apiKey}
}

func (c client) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do executes req and turns any non-2xx status into an httpStatusError.
// The caller owns the returned body.
func (c client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// normalize collapses whitespace in free-text queries.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
