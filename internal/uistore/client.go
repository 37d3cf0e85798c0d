package uistore

import (
	"fmt"
	"time"

	httpclient "github.com/ChenyqThu/UIStoreMonitor/internal/http"
	"github.com/ChenyqThu/UIStoreMonitor/internal/http/ratelimit"
)

// Client talks to the storefront's internal data API
type Client struct {
	http     *httpclient.Client
	baseURL  string
	region   string
	language string
}

// ClientConfig configures a storefront client
type ClientConfig struct {
	BaseURL        string
	Region         string
	Language       string
	RateLimit      ratelimit.Config
	RequestTimeout time.Duration
}

// NewClient creates a storefront client
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		http:     httpclient.NewClient(cfg.RateLimit, cfg.RequestTimeout),
		baseURL:  cfg.BaseURL,
		region:   cfg.Region,
		language: cfg.Language,
	}
}

// landingURL is the storefront root page carrying the embedded build token
func (c *Client) landingURL() string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.region, c.language)
}

// categoryURL builds the data-API URL for a category listing
func (c *Client) categoryURL(buildID, categorySlug string) string {
	return fmt.Sprintf("%s/_next/data/%s/%s/%s/category/%s.json?store=%s&language=%s&category=%s",
		c.baseURL, buildID, c.region, c.language, categorySlug, c.region, c.language, categorySlug)
}

// ProductURL builds the public storefront URL for a product
func (c *Client) ProductURL(categorySlug, productSlug string) string {
	return fmt.Sprintf("%s/%s/%s/pro/category/%s/products/%s",
		c.baseURL, c.region, c.language, categorySlug, productSlug)
}
