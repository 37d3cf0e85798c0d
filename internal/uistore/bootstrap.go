package uistore

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"
)

// buildIDPattern matches the build token embedded in the landing page markup
var buildIDPattern = regexp.MustCompile(`"buildId":"([^"]+)"`)

// BootstrapError signals that the build token could not be resolved.
// This is fatal for a run: no data-API URL can be constructed without it,
// and a missing marker usually means the upstream page layout changed.
type BootstrapError struct {
	URL    string
	Reason string
	Err    error
}

func (e *BootstrapError) Error() string {
	msg := fmt.Sprintf("bootstrap failed for %s: %s", e.URL, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BootstrapError) Unwrap() error {
	return e.Err
}

// BuildID fetches the storefront landing page and extracts the short-lived
// build token required to construct data-API URLs
func (c *Client) BuildID(ctx context.Context) (string, error) {
	url := c.landingURL()
	log.Debug().Str("url", url).Msg("Fetching landing page for build token")

	body, err := c.http.GetBytes(ctx, url)
	if err != nil {
		return "", &BootstrapError{URL: url, Reason: "landing page fetch failed", Err: err}
	}

	match := buildIDPattern.FindSubmatch(body)
	if match == nil {
		return "", &BootstrapError{URL: url, Reason: "build token marker not found in page markup"}
	}

	buildID := string(match[1])
	log.Info().Str("build_id", buildID).Msg("Resolved build token")
	return buildID, nil
}
