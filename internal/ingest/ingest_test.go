package ingest

import (
	"context"
	"errors"
	"testing"

	"newswire/internal/core"
	"newswire/internal/persistence"
	"newswire/internal/sources"
)

type fakeArticleRepo struct {
	stored    []core.Article
	createErr error
}

func (f *fakeArticleRepo) Create(_ context.Context, a *core.Article) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.stored = append(f.stored, *a)
	return nil
}

func (f *fakeArticleRepo) Get(context.Context, string) (*core.Article, error) {
	return nil, persistence.ErrNotFound
}

func (f *fakeArticleRepo) ExistsBySourceID(_ context.Context, provider, sourceID string) (bool, error) {
	for _, a := range f.stored {
		if a.Provider == provider && a.SourceID == sourceID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeArticleRepo) ExistsByTitle(_ context.Context, provider, title string) (bool, error) {
	for _, a := range f.stored {
		if a.Provider == provider && a.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeArticleRepo) Query(context.Context, persistence.QueryOptions) (*core.ArticlePage, error) {
	p := core.NewArticlePage(nil, 1, len(f.stored))
	return &p, nil
}

type fakeDB struct {
	articles *fakeArticleRepo
}

func (f *fakeDB) Articles() persistence.ArticleRepository       { return f.articles }
func (f *fakeDB) Preferences() persistence.PreferenceRepository { return nil }
func (f *fakeDB) Ping(context.Context) error                    { return nil }
func (f *fakeDB) Close() error                                  { return nil }

type fakeSource struct {
	name     string
	key      sources.DedupKey
	articles []core.Article
	err      error
}

func (s *fakeSource) Name() string               { return s.name }
func (s *fakeSource) DedupKey() sources.DedupKey { return s.key }
func (s *fakeSource) Fetch(context.Context) ([]core.Article, error) {
	return s.articles, s.err
}

func TestRunIsIdempotent(t *testing.T) {
	repo := &fakeArticleRepo{}
	coordinator := NewCoordinator(&fakeDB{articles: repo})
	src := &fakeSource{
		name: "guardian",
		key:  sources.DedupBySourceID,
		articles: []core.Article{
			{SourceID: "world/1", Title: "First"},
			{SourceID: "world/2", Title: "Second"},
		},
	}

	first, err := coordinator.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if first.Inserted != 2 || first.Skipped != 0 {
		t.Fatalf("first run summary = %+v", first)
	}

	second, err := coordinator.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if second.Inserted != 0 || second.Skipped != 2 {
		t.Fatalf("second run summary = %+v", second)
	}
	if len(repo.stored) != 2 {
		t.Errorf("stored %d rows, want 2", len(repo.stored))
	}
}

func TestRunAssignsIDAndProvider(t *testing.T) {
	repo := &fakeArticleRepo{}
	coordinator := NewCoordinator(&fakeDB{articles: repo})
	src := &fakeSource{
		name:     "nyt",
		key:      sources.DedupBySourceID,
		articles: []core.Article{{SourceID: "nyt://1", Title: "Headline"}},
	}

	if _, err := coordinator.Run(context.Background(), src); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	stored := repo.stored[0]
	if stored.ID == "" {
		t.Error("article must receive a system-assigned id")
	}
	if stored.Provider != "nyt" {
		t.Errorf("provider = %q, want nyt", stored.Provider)
	}
}

func TestRunTitleDedupCollapsesDifferentBodies(t *testing.T) {
	repo := &fakeArticleRepo{}
	coordinator := NewCoordinator(&fakeDB{articles: repo})
	src := &fakeSource{
		name: "newsapi",
		key:  sources.DedupByTitle,
		articles: []core.Article{
			{SourceID: "bbc-news", Title: "Breaking story", Content: "early copy"},
			{SourceID: "bbc-news", Title: "Breaking story", Content: "updated copy"},
		},
	}

	summary, err := coordinator.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Inserted != 1 || summary.Skipped != 1 {
		t.Fatalf("summary = %+v, want one insert and one skip", summary)
	}
	if repo.stored[0].Content != "early copy" {
		t.Error("existing rows must never be updated")
	}
}

func TestRunDedupIsNamespacedByProvider(t *testing.T) {
	repo := &fakeArticleRepo{}
	coordinator := NewCoordinator(&fakeDB{articles: repo})

	collidingID := "shared-upstream-id"
	for _, name := range []string{"guardian", "nyt"} {
		src := &fakeSource{
			name:     name,
			key:      sources.DedupBySourceID,
			articles: []core.Article{{SourceID: collidingID, Title: "From " + name}},
		}
		if _, err := coordinator.Run(context.Background(), src); err != nil {
			t.Fatalf("run for %s failed: %v", name, err)
		}
	}

	if len(repo.stored) != 2 {
		t.Errorf("stored %d rows, want 2: identical source_ids from different providers must not collide", len(repo.stored))
	}
}

func TestRunNilPublishedAtIsStored(t *testing.T) {
	repo := &fakeArticleRepo{}
	coordinator := NewCoordinator(&fakeDB{articles: repo})
	src := &fakeSource{
		name:     "guardian",
		key:      sources.DedupBySourceID,
		articles: []core.Article{{SourceID: "world/3", Title: "Undated", PublishedAt: nil}},
	}

	summary, err := coordinator.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Inserted != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if repo.stored[0].PublishedAt != nil {
		t.Error("missing date must stay nil")
	}
}

func TestRunFetchFailureAbortsOnlyThatRun(t *testing.T) {
	repo := &fakeArticleRepo{}
	coordinator := NewCoordinator(&fakeDB{articles: repo})

	failing := &fakeSource{name: "guardian", err: errors.New("upstream 503")}
	healthy := &fakeSource{
		name:     "nyt",
		key:      sources.DedupBySourceID,
		articles: []core.Article{{SourceID: "nyt://2", Title: "Still arrives"}},
	}

	summaries := coordinator.RunAll(context.Background(), []sources.Source{failing, healthy})
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if len(repo.stored) != 1 || repo.stored[0].Title != "Still arrives" {
		t.Errorf("healthy provider must ingest despite the failing one, stored=%v", repo.stored)
	}
}

func TestRunPersistenceFailureSurfaces(t *testing.T) {
	repo := &fakeArticleRepo{createErr: errors.New("disk full")}
	coordinator := NewCoordinator(&fakeDB{articles: repo})
	src := &fakeSource{
		name:     "guardian",
		key:      sources.DedupBySourceID,
		articles: []core.Article{{SourceID: "world/4", Title: "Doomed"}},
	}

	if _, err := coordinator.Run(context.Background(), src); err == nil {
		t.Fatal("expected a storage error to surface")
	}
}
