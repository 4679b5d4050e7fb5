package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	llmmocks "skillbase/internal/llm/mocks"
	"skillbase/internal/storage"
	"skillbase/internal/vectorstore"
	vsmocks "skillbase/internal/vectorstore/mocks"
)

type serviceFixture struct {
	entries  *storage.KnowledgeRepo
	embedder *llmmocks.MockEmbedder
	store    *vsmocks.MockVectorStore
	svc      Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db, err := storage.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	ctrl := gomock.NewController(t)
	f := &serviceFixture{
		entries:  storage.NewKnowledgeRepo(db),
		embedder: llmmocks.NewMockEmbedder(ctrl),
		store:    vsmocks.NewMockVectorStore(ctrl),
	}
	f.svc = NewService(f.entries, f.embedder, f.store, "knowledge", 0.7, 5)
	return f
}

var testVec = []float32{0.5, 0.5}

func TestPointID_Deterministic(t *testing.T) {
	if PointID(42) != PointID(42) {
		t.Error("PointID should be stable for the same entry")
	}
	if PointID(42) == PointID(43) {
		t.Error("PointID should differ between entries")
	}
}

func TestService_Add(t *testing.T) {
	f := newServiceFixture(t)

	f.embedder.EXPECT().
		EmbedText(gomock.Any(), "Mitosis\n\nCell division in phases.").
		Return(testVec, nil)
	f.store.EXPECT().
		Upsert(gomock.Any(), "knowledge", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, points []vectorstore.Point) error {
			if len(points) != 1 {
				t.Fatalf("Upsert points = %d, want 1", len(points))
			}
			p := points[0]
			if p.Meta["title"] != "Mitosis" || p.Meta["course_id"] != int64(7) {
				t.Errorf("point meta = %+v", p.Meta)
			}
			return nil
		})

	entry := &storage.KnowledgeEntry{CourseID: 7, Title: "Mitosis", Content: "Cell division in phases.", Category: "biology"}
	if err := f.svc.Add(context.Background(), entry); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if entry.ID == 0 {
		t.Error("Add() should set the entry ID")
	}
}

func TestService_AddIndexFailure(t *testing.T) {
	f := newServiceFixture(t)

	f.embedder.EXPECT().EmbedText(gomock.Any(), gomock.Any()).Return(nil, errors.New("embedder down"))

	entry := &storage.KnowledgeEntry{Title: "Mitosis", Content: "x"}
	err := f.svc.Add(context.Background(), entry)
	if err == nil || !strings.Contains(err.Error(), "run sync to repair") {
		t.Fatalf("Add() error = %v, want indexing failure pointing at sync", err)
	}
	if entry.ID == 0 {
		t.Error("row should be stored even when indexing fails")
	}
}

func TestService_SyncResumable(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	var ids []int64
	for _, title := range []string{"Mitosis", "Meiosis", "Osmosis"} {
		entry := &storage.KnowledgeEntry{Title: title, Content: title + " detail"}
		if err := f.entries.Create(ctx, entry); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, entry.ID)
	}

	// First run: the second entry is already indexed, the third fails to
	// embed. Only the first should be synced.
	f.store.EXPECT().
		Exists(gomock.Any(), "knowledge", gomock.Any()).
		Return(map[string]bool{PointID(ids[1]): true}, nil)
	f.embedder.EXPECT().EmbedText(gomock.Any(), "Mitosis\n\nMitosis detail").Return(testVec, nil)
	f.store.EXPECT().Upsert(gomock.Any(), "knowledge", gomock.Any()).Return(nil)
	f.embedder.EXPECT().EmbedText(gomock.Any(), "Osmosis\n\nOsmosis detail").Return(nil, errors.New("timeout"))

	stats, err := f.svc.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	want := SyncStats{Total: 3, Synced: 1, Skipped: 1, Failed: 1}
	if stats != want {
		t.Errorf("Sync() stats = %+v, want %+v", stats, want)
	}

	// Second run: the first two are indexed now, only the failed entry
	// is retried.
	f.store.EXPECT().
		Exists(gomock.Any(), "knowledge", gomock.Any()).
		Return(map[string]bool{PointID(ids[0]): true, PointID(ids[1]): true}, nil)
	f.embedder.EXPECT().EmbedText(gomock.Any(), "Osmosis\n\nOsmosis detail").Return(testVec, nil)
	f.store.EXPECT().Upsert(gomock.Any(), "knowledge", gomock.Any()).Return(nil)

	stats, err = f.svc.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync() second run error = %v", err)
	}
	want = SyncStats{Total: 3, Synced: 1, Skipped: 2}
	if stats != want {
		t.Errorf("Sync() second run stats = %+v, want %+v", stats, want)
	}

	// Third run: everything is indexed, nothing left to do.
	f.store.EXPECT().
		Exists(gomock.Any(), "knowledge", gomock.Any()).
		Return(map[string]bool{
			PointID(ids[0]): true,
			PointID(ids[1]): true,
			PointID(ids[2]): true,
		}, nil)

	stats, err = f.svc.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync() third run error = %v", err)
	}
	want = SyncStats{Total: 3, Skipped: 3}
	if stats != want {
		t.Errorf("Sync() third run stats = %+v, want %+v", stats, want)
	}
}

func TestService_SyncEmpty(t *testing.T) {
	f := newServiceFixture(t)

	stats, err := f.svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if stats != (SyncStats{}) {
		t.Errorf("Sync() stats = %+v, want zero", stats)
	}
}

func TestService_Search(t *testing.T) {
	f := newServiceFixture(t)

	f.embedder.EXPECT().EmbedText(gomock.Any(), "cell walls").Return(testVec, nil)
	f.store.EXPECT().
		Search(gomock.Any(), "knowledge", testVec, 5, float32(0.7), map[string]any{"course_id": int64(3)}).
		Return([]vectorstore.SearchResult{{PointID: "p1", Score: 0.8}}, nil)

	results, err := f.svc.Search(context.Background(), "cell walls", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Search() results = %+v", results)
	}
}

func TestService_Delete(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	entry := &storage.KnowledgeEntry{Title: "Mitosis", Content: "x"}
	if err := f.entries.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	f.store.EXPECT().Delete(gomock.Any(), "knowledge", []string{PointID(entry.ID)}).Return(nil)
	if err := f.svc.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := f.svc.Delete(ctx, entry.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Delete() repeat error = %v, want ErrNotFound", err)
	}
}
