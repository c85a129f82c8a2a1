// Package remote retrieves snapshot artifacts from the game server's file
// export endpoint: one call lists artifact names, one downloads a single
// artifact by name.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gameserver-stats/internal/config"

	"github.com/valyala/fasthttp"
)

type Client struct {
	baseURL string
	token   string
	client  *fasthttp.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.SourceURL, "/"),
		token:   cfg.SourceToken,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

type listResponse struct {
	Artifacts []string `json:"artifacts"`
}

func (c *Client) ListArtifacts(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, c.baseURL+"/artifacts")
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	var listing listResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode artifact listing: %w", err)
	}
	return listing.Artifacts, nil
}

func (c *Client) FetchArtifact(ctx context.Context, name string) ([]byte, error) {
	body, err := c.get(ctx, c.baseURL+"/artifacts/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artifact %s: %w", name, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("source error: %d", resp.StatusCode())
	}

	// The response body is pooled with resp, so hand back a copy.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
