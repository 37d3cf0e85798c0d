package uistore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// FetchCategory retrieves the nested subcategory listing for one category.
// A non-2xx status, network failure or timeout returns an error; callers are
// expected to treat that as an empty listing and keep the run going, since a
// partial upstream outage must not abort categories that still work.
func (c *Client) FetchCategory(ctx context.Context, buildID, categorySlug string) ([]SubCategory, error) {
	url := c.categoryURL(buildID, categorySlug)
	log.Debug().Str("category", categorySlug).Str("url", url).Msg("Fetching category listing")

	body, err := c.http.GetBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("category %s fetch failed: %w", categorySlug, err)
	}

	var payload categoryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("category %s payload decode failed: %w", categorySlug, err)
	}

	return payload.PageProps.SubCategories, nil
}
