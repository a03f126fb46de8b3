package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Get fetches url and returns the body. Any non-2xx status is an error; the
// catalog and resolver layers never inspect statuses themselves.
func Get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	SetHeaders(req)
	resp, err := DoWithRetry(ctx, client, req, DefaultRetryPolicy)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: %s", redactURL(url), resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// GetJSON fetches url and decodes the JSON body into v.
func GetJSON(ctx context.Context, client *http.Client, url string, v any) error {
	body, err := Get(ctx, client, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("get %s: decode: %w", redactURL(url), err)
	}
	return nil
}

// PostJSON sends body as JSON to url and decodes the JSON response into v.
// POSTs are not retried: the only POST consumer is the Kaltura multirequest,
// which opens a session per call.
func PostJSON(ctx context.Context, client *http.Client, url string, body, v any) error {
	if client == nil {
		client = Default()
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	SetHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post %s: %s", redactURL(url), resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("post %s: decode: %w", redactURL(url), err)
	}
	return nil
}

// redactURL drops the query string: list tokens and app keys ride in it.
func redactURL(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '?' {
			return s[:i] + "?[redacted]"
		}
	}
	return s
}
