// Package sources contains the upstream provider adapters. Each adapter
// performs one outbound fetch against its provider's search/latest endpoint
// and maps the provider-specific payload to canonical articles. Adding a
// provider means adding one adapter; nothing else changes.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"newswire/internal/core"
)

// DedupKey identifies which field the ingestion coordinator uses for the
// existence check when deciding whether an incoming record is new.
type DedupKey int

const (
	// DedupBySourceID deduplicates on the upstream native identifier.
	DedupBySourceID DedupKey = iota
	// DedupByTitle deduplicates on the article title. Only NewsAPI uses
	// this; see the adapter for why.
	DedupByTitle
)

// Source is one upstream news provider. Fetch performs a single request and
// returns one page of normalized articles; it never paginates across
// provider pages.
type Source interface {
	// Name is the short provider identifier (guardian, newsapi, nyt) used
	// to namespace dedup keys.
	Name() string

	// DedupKey reports which article field identifies duplicates for this
	// provider.
	DedupKey() DedupKey

	// Fetch retrieves and normalizes the provider's latest results.
	Fetch(ctx context.Context) ([]core.Article, error)
}

// getJSON performs a GET request and decodes the JSON body into out. Any
// non-2xx status is a total failure for the run.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
