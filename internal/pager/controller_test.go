package pager

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	dbpkg "github.com/JK0987/mousehunt-improved/internal/db"
	"github.com/JK0987/mousehunt-improved/internal/history"
	"github.com/JK0987/mousehunt-improved/internal/journal"
	"github.com/JK0987/mousehunt-improved/internal/thumbs"
)

type fakePaginator struct {
	totalItems int
	enabled    bool
	rendered   int
	current    int
}

func (p *fakePaginator) SetTotalItems(n int) { p.totalItems = n }
func (p *fakePaginator) Enable()             { p.enabled = true }
func (p *fakePaginator) Render()             { p.rendered++ }
func (p *fakePaginator) CurrentPage() int    { return p.current }

type fakeRemote struct {
	pages []int
}

func (r *fakeRemote) RequestPage(_ context.Context, page int) error {
	r.pages = append(r.pages, page)
	return nil
}

type fakeContainer struct {
	batches []string
}

func (c *fakeContainer) AppendMarkup(markup string) {
	c.batches = append(c.batches, markup)
}

func setupController(t *testing.T, entryCount int) (*Controller, *fakePaginator, *fakeRemote, *fakeContainer) {
	t.Helper()
	database, err := dbpkg.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	for i := 0; i < entryCount; i++ {
		e := journal.Normalize(journal.Raw{
			ID:    int64(i + 1),
			Text:  "body",
			Types: []string{"entry"},
		})
		if _, err := dbpkg.Upsert(ctx, database, journal.DefaultNamespace, e); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	return newTestController(t, database, 12)
}

func newTestController(t *testing.T, database *sql.DB, pageSize int) (*Controller, *fakePaginator, *fakeRemote, *fakeContainer) {
	t.Helper()
	cache := history.NewCache()
	synth := NewSynthesizer(cache, thumbs.Table{}, pageSize)
	paginator := &fakePaginator{}
	remote := &fakeRemote{}
	container := &fakeContainer{}

	ctrl := NewController(database, journal.DefaultNamespace, cache, synth,
		paginator, remote, container, 6, zerolog.Nop())
	return ctrl, paginator, remote, container
}

func TestInit(t *testing.T) {
	ctrl, paginator, _, _ := setupController(t, 80)

	if err := ctrl.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if paginator.totalItems != 80 {
		t.Errorf("totalItems = %d, want 80", paginator.totalItems)
	}
	if !paginator.enabled {
		t.Error("paginator should be enabled")
	}
	if paginator.rendered != 1 {
		t.Errorf("rendered = %d, want 1", paginator.rendered)
	}
}

// TestHandleNavigation_Boundary checks the native/synthesized split: page 6
// goes to the remote, page 7 is served from cache with no remote call.
func TestHandleNavigation_Boundary(t *testing.T) {
	ctrl, _, remote, container := setupController(t, 100)
	ctx := context.Background()

	if err := ctrl.Init(ctx); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	ctrl.HandleNavigation(ctx, 6)
	if len(remote.pages) != 1 || remote.pages[0] != 6 {
		t.Errorf("remote pages = %v, want [6]", remote.pages)
	}
	if len(container.batches) != 0 {
		t.Errorf("page 6 should not synthesize, got %d batches", len(container.batches))
	}

	ctrl.HandleNavigation(ctx, 7)
	if len(remote.pages) != 1 {
		t.Errorf("remote pages = %v, page 7 must not hit the remote", remote.pages)
	}
	if len(container.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(container.batches))
	}
}

func TestHandleNavigation_BeyondHistory(t *testing.T) {
	ctrl, _, _, container := setupController(t, 80)
	ctx := context.Background()

	if err := ctrl.Init(ctx); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// 80 entries is 7 pages of 12; page 8 has nothing.
	ctrl.HandleNavigation(ctx, 8)
	if len(container.batches) != 0 {
		t.Errorf("empty page appended %d batches, want 0", len(container.batches))
	}
}

func TestHandleRequest(t *testing.T) {
	ctrl, paginator, remote, container := setupController(t, 100)
	ctx := context.Background()

	paginator.current = 7
	ctrl.HandleRequest(ctx)

	if paginator.totalItems != 100 {
		t.Errorf("totalItems = %d, want 100", paginator.totalItems)
	}
	if len(remote.pages) != 0 {
		t.Errorf("remote pages = %v, want none", remote.pages)
	}
	if len(container.batches) != 1 {
		t.Errorf("batches = %d, want 1", len(container.batches))
	}
}
