// Package rest reaches a hosted record store exposing collections as
// PostgREST-style resources under /rest/v1.
package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	collectionPolls       = "polls"
	collectionVotes       = "poll_votes"
	collectionSuggestions = "suggestions"

	// maxErrorBody caps how much of a failed response ends up in the error.
	maxErrorBody = 512
)

// Client is the gateway handle shared by the REST repositories. It is
// constructed once and passed to each repository.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a gateway client. A nil httpClient gets a pooled client
// with sane transport defaults.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

func (c *Client) endpoint(collection string) string {
	return c.baseURL + "/rest/v1/" + collection
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

// read fetches the records of collection matching query and decodes the
// JSON array into out.
func (c *Client) read(ctx context.Context, collection string, query url.Values, out interface{}) error {
	u := c.endpoint(collection)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to build %s request", collection)
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", collection)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, collection); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %w", collection, domain.ErrDecode, err)
	}
	return nil
}

// insert posts a single record to collection.
func (c *Client) insert(ctx context.Context, collection string, record interface{}) error {
	body, err := json.Marshal([]interface{}{record})
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s record", collection)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(collection), bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "failed to build %s request", collection)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to insert into %s", collection)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, collection); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func checkStatus(resp *http.Response, collection string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return errors.Errorf("%s: unexpected status %d: %s", collection, resp.StatusCode, strings.TrimSpace(string(msg)))
}
