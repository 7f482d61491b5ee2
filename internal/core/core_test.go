package core

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		joined   string
		expected []string
	}{
		{
			name:     "simple list",
			joined:   "BBC News,The Guardian",
			expected: []string{"BBC News", "The Guardian"},
		},
		{
			name:     "single value",
			joined:   "Society",
			expected: []string{"Society"},
		},
		{
			name:     "empty string",
			joined:   "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			joined:   "   ",
			expected: nil,
		},
		{
			name:     "surrounding whitespace trimmed before split",
			joined:   "  BBC News,The Guardian  ",
			expected: []string{"BBC News", "The Guardian"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.joined)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.joined, got, tt.expected)
			}
		})
	}
}

func TestPreferenceSetsRoundTrip(t *testing.T) {
	pref := UserPreference{
		PreferSource:     "BBC News,The Guardian",
		PreferCategories: "",
		PreferAuthor:     "John Doe",
	}
	sets := pref.Sets()
	if len(sets.Source) != 2 || len(sets.Category) != 0 || len(sets.Author) != 1 {
		t.Fatalf("unexpected decoded sets: %+v", sets)
	}
	if sets.IsEmpty() {
		t.Error("sets with values should not report empty")
	}
	if !(UserPreference{}).Sets().IsEmpty() {
		t.Error("blank preference should decode to empty sets")
	}
	if got := JoinList(sets.Source); got != "BBC News,The Guardian" {
		t.Errorf("JoinList = %q", got)
	}
}

func TestNewArticlePage(t *testing.T) {
	items := func(n int) []ArticleSummary {
		out := make([]ArticleSummary, n)
		return out
	}

	t.Run("first of two pages", func(t *testing.T) {
		p := NewArticlePage(items(10), 1, 15)
		if p.CurrentPage != 1 || p.LastPage != 2 || p.Total != 15 || p.PerPage != PageSize {
			t.Fatalf("unexpected envelope: %+v", p)
		}
		if p.PrevPage != nil {
			t.Error("page 1 should have no prev page")
		}
		if p.NextPage == nil || *p.NextPage != 2 {
			t.Error("page 1 of 2 should point at next page 2")
		}
	})

	t.Run("last page", func(t *testing.T) {
		p := NewArticlePage(items(5), 2, 15)
		if len(p.Data) != 5 || p.LastPage != 2 {
			t.Fatalf("unexpected envelope: %+v", p)
		}
		if p.NextPage != nil {
			t.Error("last page should have no next page")
		}
		if p.PrevPage == nil || *p.PrevPage != 1 {
			t.Error("page 2 should point back at page 1")
		}
	})

	t.Run("page past the end", func(t *testing.T) {
		p := NewArticlePage(nil, 3, 15)
		if len(p.Data) != 0 {
			t.Errorf("expected empty item slice, got %d items", len(p.Data))
		}
		if p.Data == nil {
			t.Error("item slice must be non-nil so it serializes as []")
		}
		if p.Total != 15 || p.LastPage != 2 || p.CurrentPage != 3 {
			t.Errorf("unexpected envelope: %+v", p)
		}
	})

	t.Run("empty result set", func(t *testing.T) {
		p := NewArticlePage(nil, 1, 0)
		if p.LastPage != 1 || p.NextPage != nil || p.PrevPage != nil {
			t.Errorf("unexpected envelope: %+v", p)
		}
	})
}
