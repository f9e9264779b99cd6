package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultApiVersion = "v2024-01-01"

type Config struct {
	ProjectId  string
	Dataset    string
	ApiVersion string
	Token      string
}

// Client reads structured content from the headless CMS's query API.
type Client struct {
	baseUrl string
	token   string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	version := cfg.ApiVersion
	if version == "" {
		version = defaultApiVersion
	}
	return &Client{
		baseUrl: fmt.Sprintf("https://%s.api.sanity.io/%s/data/query/%s", cfg.ProjectId, version, cfg.Dataset),
		token:   cfg.Token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// fetch runs one GROQ query; params are bound as $-prefixed JSON values.
func (c *Client) fetch(ctx context.Context, query string, params map[string]string, out any) error {
	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("content query failed with status %d", res.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode content response: %w", err)
	}
	if out == nil || envelope.Result == nil {
		return nil
	}
	return json.Unmarshal(envelope.Result, out)
}
