// Package catalog talks to the shared recipe catalog and maps its records into meals.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nutriplan-go-worker/services"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for a catalog rooted at baseURL, e.g.
// https://www.themealdb.com/api/json/v1/1. A non-positive timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ByCategory returns summary records (id, name, thumbnail) of one category.
func (c *Client) ByCategory(ctx context.Context, category string) ([]Recipe, error) {
	return c.fetch(ctx, "filter.php", url.Values{"c": {category}})
}

func (c *Client) Search(ctx context.Context, query string) ([]Recipe, error) {
	return c.fetch(ctx, "search.php", url.Values{"s": {query}})
}

// ByID returns nil when the catalog has no such recipe.
func (c *Client) ByID(ctx context.Context, id string) (*Recipe, error) {
	recipes, err := c.fetch(ctx, "lookup.php", url.Values{"i": {id}})
	if err != nil || len(recipes) == 0 {
		return nil, err
	}
	return &recipes[0], nil
}

func (c *Client) Random(ctx context.Context) (*Recipe, error) {
	recipes, err := c.fetch(ctx, "random.php", nil)
	if err != nil || len(recipes) == 0 {
		return nil, err
	}
	return &recipes[0], nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]Recipe, error) {
	target := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	body, err := services.HttpRequest(ctx, c.httpClient, http.MethodGet, target, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", endpoint, err)
	}
	var response recipeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", endpoint, err)
	}
	return response.Meals, nil
}
