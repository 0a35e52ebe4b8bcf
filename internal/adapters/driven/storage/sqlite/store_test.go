package sqlite

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, driven.AnnotationStore) {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, store.AnnotationStore()
}

func testRecord(docID, presID, slideID string, cat domain.Category, at time.Time, tags ...string) domain.StoredSlideRecord {
	return domain.StoredSlideRecord{
		AnnotatedSlide: domain.AnnotatedSlide{
			Slide: domain.RawSlide{
				ObjectID: slideID,
				PageElements: []domain.PageElement{{
					ObjectID: slideID + "_title",
					Kind:     domain.ElementKindShape,
					Shape:    &domain.Shape{ShapeType: "TEXT_BOX", TextRuns: []string{"Quarterly review"}},
				}},
			},
			Summary:  "summary of " + slideID,
			Category: cat,
			Tags:     tags,
		},
		DocumentID:     docID,
		PresentationID: presID,
		AnnotatedAt:    at,
	}
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "slides.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store, _ := setupTestStore(t)

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	for _, table := range []string{"slide_records", "collections"} {
		var name string
		err := store.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	tempDir := t.TempDir()

	store1, err := NewStore(tempDir)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store1.AnnotationStore().Save(ctx,
		testRecord("slide-a-1", "p1", "a", domain.CategoryAgenda, time.Unix(1, 0))))
	require.NoError(t, store1.Close())

	store2, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store2.Close()

	var count int
	require.NoError(t, store2.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	rec, err := store2.AnnotationStore().Get(ctx, "slide-a-1")
	require.NoError(t, err)
	assert.Equal(t, "a", rec.Slide.ObjectID)
}

func TestNewStore_DefaultDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(home, ".deckforge", "data", "slides.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

// ==================== Slide Record Tests ====================

func TestAnnotationStore_SaveAndGet(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 123, time.UTC)
	rec := testRecord("slide-g1-1", "pres-1", "g1", domain.CategoryData, at, "revenue", "q3")
	rec.Slide.Raw = json.RawMessage(`{"objectId":"g1","pageElements":[]}`)

	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "slide-g1-1")
	require.NoError(t, err)
	assert.Equal(t, "pres-1", got.PresentationID)
	assert.Equal(t, domain.CategoryData, got.Category)
	assert.Equal(t, []string{"revenue", "q3"}, got.Tags)
	assert.True(t, at.Equal(got.AnnotatedAt))
	assert.Equal(t, rec.Slide.PageElements, got.Slide.PageElements)
	assert.JSONEq(t, string(rec.Slide.Raw), string(got.Slide.Raw))
	assert.Equal(t, rec.Metadata(), got.Metadata())
}

func TestAnnotationStore_Save_NilTagsReadBackEmpty(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testRecord("slide-x-1", "p", "x", domain.CategoryQA, time.Unix(5, 0))))

	got, err := s.Get(ctx, "slide-x-1")
	require.NoError(t, err)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
	assert.Nil(t, got.Slide.Raw)
}

func TestAnnotationStore_Save_LastWriteWins(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	first := testRecord("slide-a-1", "p", "a", domain.CategoryAgenda, time.Unix(1, 0))
	second := first
	second.Summary = "rewritten"
	second.Category = domain.CategoryIntroduction

	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))

	got, err := s.Get(ctx, "slide-a-1")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", got.Summary)
	assert.Equal(t, domain.CategoryIntroduction, got.Category)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAnnotationStore_Save_RequiresDocumentID(t *testing.T) {
	_, s := setupTestStore(t)

	err := s.Save(context.Background(), testRecord("", "p", "a", domain.CategoryAgenda, time.Now()))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnnotationStore_Get_NotFound(t *testing.T) {
	_, s := setupTestStore(t)

	_, err := s.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnotationStore_ListByCategory(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testRecord("old", "p", "a", domain.CategoryAgenda, time.Unix(10, 0))))
	require.NoError(t, s.Save(ctx, testRecord("new", "p", "b", domain.CategoryAgenda, time.Unix(20, 0))))
	require.NoError(t, s.Save(ctx, testRecord("other", "p", "c", domain.CategoryThankYou, time.Unix(30, 0))))

	recs, err := s.ListByCategory(ctx, domain.CategoryAgenda)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "new", recs[0].DocumentID)
	assert.Equal(t, "old", recs[1].DocumentID)

	recs, err = s.ListByCategory(ctx, domain.Category("agenda"))
	require.NoError(t, err)
	assert.Empty(t, recs, "category match is exact")
}

func TestAnnotationStore_List(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testRecord("b", "p", "b", domain.CategoryAgenda, time.Unix(10, 0))))
	require.NoError(t, s.Save(ctx, testRecord("a", "p", "a", domain.CategoryQA, time.Unix(10, 0))))
	require.NoError(t, s.Save(ctx, testRecord("c", "p", "c", domain.CategoryQA, time.Unix(30, 0))))

	recs, err := s.List(ctx)
	require.NoError(t, err)
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.DocumentID
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestAnnotationStore_CountByCategory(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testRecord("1", "p", "1", domain.CategoryQA, time.Unix(1, 0))))
	require.NoError(t, s.Save(ctx, testRecord("2", "p", "2", domain.CategoryQA, time.Unix(2, 0))))
	require.NoError(t, s.Save(ctx, testRecord("3", "p", "3", domain.CategoryAgenda, time.Unix(3, 0))))

	counts, err := s.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryCount{
		{Category: domain.CategoryAgenda, Count: 1},
		{Category: domain.CategoryQA, Count: 2},
	}, counts)
}

func TestAnnotationStore_Delete(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, testRecord("gone", "p", "g", domain.CategoryQA, time.Unix(1, 0))))

	require.NoError(t, s.Delete(ctx, "gone"))

	_, err := s.Get(ctx, "gone")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "gone"), domain.ErrNotFound)
}

// ==================== Collection Tests ====================

func TestAnnotationStore_Collections(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCollection(ctx, domain.Collection{Name: "formal", PresentationIDs: []string{"p1", "p2"}}))
	require.NoError(t, s.SaveCollection(ctx, domain.Collection{Name: "casual"}))

	got, err := s.GetCollection(ctx, "formal")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, got.PresentationIDs)

	require.NoError(t, s.SaveCollection(ctx, domain.Collection{Name: "formal", PresentationIDs: []string{"p3"}}))
	got, err = s.GetCollection(ctx, "formal")
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, got.PresentationIDs)

	all, err := s.ListCollections(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "casual", all[0].Name)
	assert.Empty(t, all[0].PresentationIDs)
	assert.Equal(t, "formal", all[1].Name)

	_, err = s.GetCollection(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnotationStore_CloseClosesDatabase(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	s := store.AnnotationStore()

	require.NoError(t, s.Close())

	assert.Error(t, store.db.Ping())
}
