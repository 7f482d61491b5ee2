package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"newswire/internal/config"
	"newswire/internal/core"
)

// newsAPIWindow is how far back the top-headlines request reaches. It matches
// the expected scheduling interval with some slack.
const newsAPIWindow = 210 * time.Minute

// NewsAPI fetches BBC top headlines from newsapi.org.
//
// Unlike the other adapters this one deduplicates on title, not on the
// upstream identifier: NewsAPI reports the publication ("bbc-news") as
// source.id, so it cannot distinguish two articles from the same outlet. Two
// records with the same title therefore collapse into one stored row even
// when their bodies differ.
type NewsAPI struct {
	endpoint string
	apiKey   string
	client   *http.Client
	now      func() time.Time
}

// NewNewsAPI creates the NewsAPI adapter from provider configuration.
func NewNewsAPI(cfg config.Provider) *NewsAPI {
	return &NewsAPI{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
		now:      time.Now,
	}
}

func (n *NewsAPI) Name() string { return "newsapi" }

func (n *NewsAPI) DedupKey() DedupKey { return DedupByTitle }

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// Fetch retrieves one page of BBC top headlines published inside the recent
// window.
func (n *NewsAPI) Fetch(ctx context.Context) ([]core.Article, error) {
	from := n.now().UTC().Add(-newsAPIWindow).Format(time.RFC3339)
	endpoint := fmt.Sprintf("%s?sources=bbc-news&from=%s&apiKey=%s",
		n.endpoint, url.QueryEscape(from), url.QueryEscape(n.apiKey))

	var payload newsAPIResponse
	if err := getJSON(ctx, n.client, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}

	articles := make([]core.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, core.Article{
			SourceID:    a.Source.ID,
			SourceName:  a.Source.Name,
			Author:      a.Author,
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: ParseTimestamp(a.PublishedAt),
			Content:     a.Content,
		})
	}
	return articles, nil
}
