// Package core defines the canonical domain types shared across ingestion,
// persistence and the HTTP API.
package core

import (
	"strings"
	"time"
)

// PageSize is the fixed number of articles per list page. It is not
// configurable by callers.
const PageSize = 10

// Article is the canonical record every provider's payload is normalized into.
// String fields hold the empty string when the provider had no value; the
// persistence layer stores those as NULL.
type Article struct {
	ID          string     `json:"id"`          // System-assigned UUID
	Provider    string     `json:"provider"`    // Adapter that ingested the record (guardian, newsapi, nyt)
	SourceID    string     `json:"source_id"`   // Upstream native identifier, unique per provider only
	SourceName  string     `json:"source_name"` // Human-readable provider label, e.g. "Guardian api"
	Author      string     `json:"author"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	ImageURL    string     `json:"image_url"`
	PublishedAt *time.Time `json:"published_at"` // nil when the upstream date was absent or unparsable
	Content     string     `json:"content"`
	Category    string     `json:"category"` // Reserved for future classification, not set by adapters
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ArticleSummary is the reduced column set returned by list queries. The full
// record is only available through the detail lookup.
type ArticleSummary struct {
	ID          string     `json:"id"`
	SourceName  string     `json:"source_name"`
	Author      string     `json:"author"`
	Title       string     `json:"title"`
	PublishedAt *time.Time `json:"published_at"`
	Category    string     `json:"category"`
}

// UserPreference is the stored preference row, at most one per user. The three
// prefer_* fields keep the comma-joined persisted form; Sets decodes them.
type UserPreference struct {
	UserID           string    `json:"user_id"`
	PreferSource     string    `json:"prefer_source"`
	PreferCategories string    `json:"prefer_categories"`
	PreferAuthor     string    `json:"prefer_author"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PreferenceSet is the decoded form of a UserPreference used to restrict
// retrieval. An empty slice means that dimension does not restrict anything.
type PreferenceSet struct {
	Source   []string
	Category []string
	Author   []string
}

// Sets decodes the comma-joined preference fields.
func (p UserPreference) Sets() PreferenceSet {
	return PreferenceSet{
		Source:   SplitList(p.PreferSource),
		Category: SplitList(p.PreferCategories),
		Author:   SplitList(p.PreferAuthor),
	}
}

// IsEmpty reports whether no dimension carries a value.
func (s PreferenceSet) IsEmpty() bool {
	return len(s.Source) == 0 && len(s.Category) == 0 && len(s.Author) == 0
}

// SplitList decodes a comma-joined list field. A blank or whitespace-only
// field decodes to an empty set.
func SplitList(joined string) []string {
	joined = strings.TrimSpace(joined)
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

// JoinList encodes a list into the comma-joined persisted form.
func JoinList(items []string) string {
	return strings.Join(items, ",")
}

// ArticlePage is the envelope returned by list queries.
type ArticlePage struct {
	CurrentPage int              `json:"current_page"`
	Data        []ArticleSummary `json:"data"`
	FirstPage   int              `json:"first_page"`
	LastPage    int              `json:"last_page"`
	NextPage    *int             `json:"next_page"`
	PrevPage    *int             `json:"prev_page"`
	PerPage     int              `json:"per_page"`
	Total       int              `json:"total"`
}

// NewArticlePage wraps one page of results with its pagination metadata.
// A total of zero still yields last_page = 1 so the envelope always points at
// a valid page.
func NewArticlePage(items []ArticleSummary, page, total int) ArticlePage {
	if page < 1 {
		page = 1
	}
	last := (total + PageSize - 1) / PageSize
	if last < 1 {
		last = 1
	}
	p := ArticlePage{
		CurrentPage: page,
		Data:        items,
		FirstPage:   1,
		LastPage:    last,
		PerPage:     PageSize,
		Total:       total,
	}
	if p.Data == nil {
		p.Data = []ArticleSummary{}
	}
	if page > 1 {
		prev := page - 1
		p.PrevPage = &prev
	}
	if page < last {
		next := page + 1
		p.NextPage = &next
	}
	return p
}
