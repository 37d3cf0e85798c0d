package uistore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChenyqThu/UIStoreMonitor/internal/http/ratelimit"
)

func testClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:  baseURL,
		Region:   "us",
		Language: "en",
		RateLimit: ratelimit.Config{
			RequestsPerSecond: 1000,
			MaxRetries:        1,
			InitialBackoffMs:  1,
			MaxBackoffMs:      2,
		},
		RequestTimeout: 5 * time.Second,
	})
}

func TestBuildID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/us/en", r.URL.Path)
		fmt.Fprint(w, `<html><script>{"props":{},"buildId":"abc123XYZ","page":"/"}</script></html>`)
	}))
	defer server.Close()

	buildID, err := testClient(server.URL).BuildID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123XYZ", buildID)
}

func TestBuildIDMarkerMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>maintenance page</body></html>`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).BuildID(context.Background())

	var bootErr *BootstrapError
	require.True(t, errors.As(err, &bootErr))
	assert.Contains(t, bootErr.Reason, "marker not found")
}

func TestBuildIDFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server.URL).BuildID(context.Background())

	var bootErr *BootstrapError
	require.True(t, errors.As(err, &bootErr))
	assert.Error(t, bootErr.Err)
}

func TestFetchCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_next/data/build-1/us/en/category/all-switching.json", r.URL.Path)
		assert.Equal(t, "us", r.URL.Query().Get("store"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "all-switching", r.URL.Query().Get("category"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"pageProps": {
				"subCategories": [
					{"id": "sub-1", "products": [
						{"id": "prod-1", "slug": "switch-8", "name": "Switch 8", "status": "Available",
						 "variants": [{"id": "v1", "sku": "SW-8", "displayPrice": {"amount": 9900, "currency": "USD"}}]}
					]}
				]
			}
		}`)
	}))
	defer server.Close()

	subCategories, err := testClient(server.URL).FetchCategory(context.Background(), "build-1", "all-switching")
	require.NoError(t, err)

	require.Len(t, subCategories, 1)
	require.Len(t, subCategories[0].Products, 1)
	p := subCategories[0].Products[0]
	assert.Equal(t, "prod-1", p.ID)
	assert.Equal(t, "Available", p.Status)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "SW-8", p.Variants[0].SKU)
	assert.Equal(t, 9900, p.Variants[0].DisplayPrice.Amount)
}

func TestFetchCategoryRetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchCategory(context.Background(), "build-1", "all-wifi")
	require.Error(t, err)

	var retryErr *ratelimit.RetryError
	require.True(t, errors.As(err, &retryErr))
	assert.Equal(t, http.StatusServiceUnavailable, retryErr.LastStatus)
	assert.Equal(t, int32(2), attempts.Load(), "one retry after the initial attempt")
}

func TestFetchCategoryBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchCategory(context.Background(), "build-1", "all-wifi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode failed")
}

func TestProductURL(t *testing.T) {
	c := testClient("https://store.example")
	assert.Equal(t,
		"https://store.example/us/en/pro/category/all-switching/products/switch-8",
		c.ProductURL("all-switching", "switch-8"))
}
