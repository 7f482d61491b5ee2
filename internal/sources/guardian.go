package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"newswire/internal/config"
	"newswire/internal/core"
)

// guardianSourceName is the fixed label stored for every Guardian article.
const guardianSourceName = "Guardian api"

// Guardian fetches from the Guardian content search API.
type Guardian struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewGuardian creates the Guardian adapter from provider configuration.
func NewGuardian(cfg config.Provider) *Guardian {
	return &Guardian{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (g *Guardian) Name() string { return "guardian" }

func (g *Guardian) DedupKey() DedupKey { return DedupBySourceID }

type guardianResponse struct {
	Response struct {
		Results []guardianResult `json:"results"`
	} `json:"response"`
}

type guardianResult struct {
	ID                 string `json:"id"`
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	WebPublicationDate string `json:"webPublicationDate"`
	Author             string `json:"author"`
	Description        string `json:"description"`
	URLToImage         string `json:"urlToImage"`
	Content            string `json:"content"`
}

// Fetch retrieves one page of Guardian search results.
func (g *Guardian) Fetch(ctx context.Context) ([]core.Article, error) {
	endpoint := fmt.Sprintf("%s?api-key=%s", g.endpoint, url.QueryEscape(g.apiKey))

	var payload guardianResponse
	if err := getJSON(ctx, g.client, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("guardian fetch: %w", err)
	}

	articles := make([]core.Article, 0, len(payload.Response.Results))
	for _, r := range payload.Response.Results {
		description := r.Description
		if description == "" {
			// Guardian search results carry no abstract; fall back to
			// the title so list views are never blank.
			description = r.WebTitle
		}
		articles = append(articles, core.Article{
			SourceID:    r.ID,
			SourceName:  guardianSourceName,
			Author:      r.Author,
			Title:       r.WebTitle,
			Description: description,
			URL:         r.WebURL,
			ImageURL:    r.URLToImage,
			PublishedAt: ParseTimestamp(r.WebPublicationDate),
			Content:     r.Content,
		})
	}
	return articles, nil
}
