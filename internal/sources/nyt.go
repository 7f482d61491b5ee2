package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"newswire/internal/config"
	"newswire/internal/core"
)

// NYT fetches from the New York Times article search API.
type NYT struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewNYT creates the NYT adapter from provider configuration.
func NewNYT(cfg config.Provider) *NYT {
	return &NYT{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (n *NYT) Name() string { return "nyt" }

func (n *NYT) DedupKey() DedupKey { return DedupBySourceID }

type nytResponse struct {
	Response struct {
		Docs []nytDoc `json:"docs"`
	} `json:"response"`
}

type nytDoc struct {
	ID       string `json:"_id"`
	Source   string `json:"source"`
	Abstract string `json:"abstract"`
	WebURL   string `json:"web_url"`
	PubDate  string `json:"pub_date"`
	Author   string `json:"author"`
	Headline struct {
		Main          string `json:"main"`
		PrintHeadline string `json:"print_headline"`
	} `json:"headline"`
}

// Fetch retrieves one page of NYT article search results.
func (n *NYT) Fetch(ctx context.Context) ([]core.Article, error) {
	endpoint := fmt.Sprintf("%s?q=a&api-key=%s", n.endpoint, url.QueryEscape(n.apiKey))

	var payload nytResponse
	if err := getJSON(ctx, n.client, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("nyt fetch: %w", err)
	}

	articles := make([]core.Article, 0, len(payload.Response.Docs))
	for _, d := range payload.Response.Docs {
		author := d.Author
		if author == "" {
			// NYT docs carry no plain author field; the provider-assigned
			// source (usually "The New York Times") stands in for it.
			author = d.Source
		}
		articles = append(articles, core.Article{
			SourceID:    d.ID,
			SourceName:  d.Source,
			Author:      author,
			Title:       d.Headline.PrintHeadline,
			Description: d.Abstract,
			URL:         d.WebURL,
			PublishedAt: ParseTimestamp(d.PubDate),
			Content:     d.Headline.Main,
		})
	}
	return articles, nil
}
