// Package fetch is the HTTP boundary to a DonorDrive API instance. A
// fetch failure (unreachable endpoint, non-2xx status, malformed JSON) is
// an error; an empty collection is a valid result.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Order selects server-side ordering for collection endpoints.
type Order int

const (
	// OrderRecency is the server default: most recent first.
	OrderRecency Order = iota
	// OrderAmountDesc sorts donations by amount, largest first.
	OrderAmountDesc
	// OrderSumDonationsDesc sorts donors and team participants by
	// cumulative amount, largest first.
	OrderSumDonationsDesc
)

// Options adjust a collection fetch.
type Options struct {
	Order Order
	// Limit caps the number of records the server returns; 0 means the
	// server default.
	Limit int
}

type Client struct {
	HTTP      *http.Client
	UserAgent string
}

func NewClient() *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 20 * time.Second},
		UserAgent: "donordrive-tracker/1.0",
	}
}

// Object fetches rawURL and decodes a single JSON object.
func (c *Client) Object(ctx context.Context, rawURL string) (map[string]any, error) {
	body, err := c.get(ctx, rawURL, Options{})
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return obj, nil
}

// List fetches rawURL and decodes a JSON array of objects.
func (c *Client) List(ctx context.Context, rawURL string, opts Options) ([]map[string]any, error) {
	body, err := c.get(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return list, nil
}

func (c *Client) get(ctx context.Context, rawURL string, opts Options) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	switch opts.Order {
	case OrderAmountDesc:
		q.Set("orderBy", "amount DESC")
	case OrderSumDonationsDesc:
		q.Set("orderBy", "sumDonations DESC")
	}
	if opts.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d body=%s", rawURL, resp.StatusCode, string(body))
	}
	return body, nil
}
