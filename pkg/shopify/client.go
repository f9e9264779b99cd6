package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultApiVersion = "2024-10"

type Config struct {
	Domain      string
	AccessToken string
	ApiVersion  string
}

// Client talks to the commerce backend's storefront GraphQL endpoint.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

func NewClient(cfg Config) *Client {
	version := cfg.ApiVersion
	if version == "" {
		version = defaultApiVersion
	}
	return &Client{
		endpoint: fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.Domain, version),
		token:    cfg.AccessToken,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

func (c *Client) query(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("storefront request failed with status %d", res.StatusCode)
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode storefront response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("storefront query error: %s", envelope.Errors[0].Message)
	}
	if out != nil && envelope.Data != nil {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}
