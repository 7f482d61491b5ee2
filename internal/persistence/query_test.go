package persistence

import (
	"testing"
	"time"

	"newswire/internal/core"
)

func TestBuildArticleFilterUnrestricted(t *testing.T) {
	where, args := buildArticleFilter(QueryOptions{})
	if where != "" || args != nil {
		t.Errorf("empty options must produce no filter, got %q with %v", where, args)
	}
}

func TestBuildArticleFilterSearchGroup(t *testing.T) {
	where, args := buildArticleFilter(QueryOptions{Search: "Budget"})

	want := " WHERE (title ILIKE $1 OR source_name ILIKE $1 OR author ILIKE $1 OR category ILIKE $1)"
	if where != want {
		t.Errorf("where = %q, want %q", where, want)
	}
	if len(args) != 1 || args[0] != "%Budget%" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildArticleFilterPreferenceGroup(t *testing.T) {
	t.Run("all dimensions", func(t *testing.T) {
		where, args := buildArticleFilter(QueryOptions{
			Preference: &core.PreferenceSet{
				Source:   []string{"BBC News"},
				Category: []string{"Society"},
				Author:   []string{"John Doe"},
			},
		})
		want := " WHERE (source_name = ANY($1) OR category = ANY($2) OR author = ANY($3))"
		if where != want {
			t.Errorf("where = %q, want %q", where, want)
		}
		if len(args) != 3 {
			t.Errorf("expected 3 args, got %v", args)
		}
	})

	t.Run("empty dimensions impose no restriction", func(t *testing.T) {
		where, _ := buildArticleFilter(QueryOptions{
			Preference: &core.PreferenceSet{Source: []string{"BBC News"}},
		})
		want := " WHERE (source_name = ANY($1))"
		if where != want {
			t.Errorf("where = %q, want %q", where, want)
		}
	})

	t.Run("fully empty preference is unrestricted", func(t *testing.T) {
		where, args := buildArticleFilter(QueryOptions{Preference: &core.PreferenceSet{}})
		if where != "" || args != nil {
			t.Errorf("got %q with %v", where, args)
		}
	})
}

func TestBuildArticleFilterConjunctiveComposition(t *testing.T) {
	date := time.Date(2024, 10, 30, 0, 0, 0, 0, time.UTC)
	where, args := buildArticleFilter(QueryOptions{
		Search:        "Budget",
		Preference:    &core.PreferenceSet{Source: []string{"BBC News"}},
		Category:      "Society",
		Source:        "BBC News",
		PublishedDate: &date,
	})

	want := " WHERE (title ILIKE $1 OR source_name ILIKE $1 OR author ILIKE $1 OR category ILIKE $1)" +
		" AND (source_name = ANY($2))" +
		" AND category = $3" +
		" AND source_name = $4" +
		" AND published_at::date = $5"
	if where != want {
		t.Errorf("where = %q, want %q", where, want)
	}
	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(args))
	}
	if args[4] != "2024-10-30" {
		t.Errorf("date arg = %v, want calendar date string", args[4])
	}
}

func TestPageNormalization(t *testing.T) {
	if got := page(QueryOptions{}); got != 1 {
		t.Errorf("default page = %d, want 1", got)
	}
	if got := page(QueryOptions{Page: -3}); got != 1 {
		t.Errorf("negative page = %d, want 1", got)
	}
	if got := page(QueryOptions{Page: 4}); got != 4 {
		t.Errorf("page = %d, want 4", got)
	}
}
