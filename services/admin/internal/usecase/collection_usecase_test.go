package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"asme-site/pkg/listing"
	"asme-site/pkg/logger"
	"asme-site/pkg/queue"
	"asme-site/services/admin/internal/entity"
	"asme-site/services/admin/internal/model"
	"asme-site/services/admin/internal/repo/persistent"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testBucket = "blog-media"

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]bool
	uploads int
	deleted []string
	failFor map[string]bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]bool{}, failFor: map[string]bool{}}
}

func (f *fakeStorage) UploadFile(_ context.Context, bucket, key string, file io.Reader, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	f.uploads++
	f.objects[key] = true
	return "http://minio:9000/" + bucket + "/" + key, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, _, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[key] {
		return errors.New("NoSuchKey: object does not exist")
	}
	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}

type fakePublisher struct {
	mu    sync.Mutex
	tasks []queue.MediaCleanupTask
}

func (p *fakePublisher) PublishMediaCleanup(_ context.Context, task queue.MediaCleanupTask) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tasks = append(p.tasks, task)
	return nil
}

type postFixture struct {
	uc         CollectionUseCase[*entity.BlogPost, entity.BlogPostPatch]
	repo       persistent.CollectionRepository[*entity.BlogPost, entity.BlogPostPatch]
	storage    *fakeStorage
	publisher  *fakePublisher
	selections *listing.MemorySelectionStore
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func setupPosts(t *testing.T) *postFixture {
	t.Helper()

	repo := persistent.NewBlogPostRepository(setupTestDB(t))
	storage := newFakeStorage()
	publisher := &fakePublisher{}
	selections := listing.NewMemorySelectionStore()

	uc := NewCollectionUseCase[*entity.BlogPost, entity.BlogPostPatch](
		CollectionConfig{Name: "posts", PageSize: 10, Bucket: testBucket},
		repo,
		selections,
		storage,
		NewQueueOrphanReporter(publisher, "posts"),
		logger.Nop(),
	)
	return &postFixture{uc: uc, repo: repo, storage: storage, publisher: publisher, selections: selections}
}

func seedPost(t *testing.T, f *postFixture, title string, created time.Time, media ...string) *entity.BlogPost {
	t.Helper()

	post := &entity.BlogPost{Title: title, Content: "contenido de " + title, Type: entity.PostTypeArticulo, CreatedAt: created}
	if len(media) > 0 {
		post.FeaturedImageURL = media[0]
	}
	created2, err := f.repo.Create(context.Background(), post)
	require.NoError(t, err)
	return created2
}

func activeQuery() listing.Query {
	return listing.Query{View: listing.ViewActive, Sort: listing.SortDateDesc}
}

func TestCollection_CreateThenFind(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	seedPost(t, f, "Nota antigua", time.Now().Add(-48*time.Hour))
	seedPost(t, f, "Nota de ayer", time.Now().Add(-24*time.Hour))

	created, err := f.uc.Create(ctx, "staff-1", &entity.BlogPost{
		Title:   "Capacitación RCP 2024",
		Content: "Curso de reanimación",
		Type:    entity.PostTypeArticulo,
	})
	require.NoError(t, err)

	page, err := f.uc.List(ctx, activeQuery())
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	assert.Equal(t, created.ID, page.Items[0].ID)
	assert.Equal(t, "Capacitación RCP 2024", page.Items[0].Title)
	assert.False(t, page.Items[0].Archived)
}

func TestCollection_CreateIgnoresSuppliedTimestamps(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	seedPost(t, f, "Nota de ayer", time.Now().Add(-24*time.Hour))

	future := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	pinned, err := f.uc.Create(ctx, "staff-1", &entity.BlogPost{Title: "Fijada", Type: entity.PostTypeArticulo, CreatedAt: future, UpdatedAt: future})
	require.NoError(t, err)
	backdated, err := f.uc.Create(ctx, "staff-1", &entity.BlogPost{Title: "Atrasada", Type: entity.PostTypeArticulo, CreatedAt: past})
	require.NoError(t, err)

	assert.True(t, pinned.CreatedAt.Before(future))
	assert.True(t, backdated.CreatedAt.After(past))

	page, err := f.uc.List(ctx, activeQuery())
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	assert.Equal(t, backdated.ID, page.Items[0].ID)
	assert.Equal(t, "Nota de ayer", page.Items[2].Title)
}

func TestCollection_CreateValidatesBeforeStore(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	url, err := f.uc.UploadMedia(ctx, strings.NewReader("frames"), "clip.MP4", "video/mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".mp4"))

	_, err = f.uc.Create(ctx, "staff-1", &entity.BlogPost{Type: entity.PostTypeVideo, MediaURL: url}, url)
	assert.ErrorIs(t, err, ErrValidation)

	page, err := f.uc.List(ctx, activeQuery())
	require.NoError(t, err)
	assert.True(t, page.Empty())
	assert.Empty(t, f.storage.objects, "uploaded object must be removed when the record is rejected")
}

func TestCollection_ArchiveRestoreRoundTrip(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	p := seedPost(t, f, "Taller de primeros auxilios", time.Now().Add(-time.Hour))
	before, err := f.uc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.False(t, before.Archived)

	_, err = f.uc.Archive(ctx, "staff-1", p.ID)
	require.NoError(t, err)

	active, err := f.uc.List(ctx, activeQuery())
	require.NoError(t, err)
	assert.True(t, active.Empty())

	archived, err := f.uc.List(ctx, listing.Query{View: listing.ViewArchived})
	require.NoError(t, err)
	require.Len(t, archived.Items, 1)
	assert.Equal(t, p.ID, archived.Items[0].ID)
	assert.True(t, archived.Items[0].Archived)

	_, err = f.uc.Unarchive(ctx, "staff-1", p.ID)
	require.NoError(t, err)

	after, err := f.uc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, after.Archived)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Content, after.Content)
	assert.Equal(t, before.Type, after.Type)
	assert.Equal(t, before.FeaturedImageURL, after.FeaturedImageURL)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
}

func TestCollection_ArchiveUnknownID(t *testing.T) {
	f := setupPosts(t)

	_, err := f.uc.Archive(context.Background(), "staff-1", uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_BulkDeleteWithStorageFailure(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	a := seedPost(t, f, "A", time.Now().Add(-2*time.Hour), "http://minio:9000/blog-media/missing.png")
	b := seedPost(t, f, "B", time.Now().Add(-time.Hour), "http://minio:9000/blog-media/b.png")
	f.storage.failFor["missing.png"] = true

	_, err := f.uc.Toggle(ctx, "staff-1", a.ID)
	require.NoError(t, err)
	_, err = f.uc.Toggle(ctx, "staff-1", b.ID)
	require.NoError(t, err)

	result, err := f.uc.Bulk(ctx, "staff-1", "delete", nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{a.ID, b.ID}, result.Succeeded)
	require.Len(t, result.MediaFailures, 1)
	assert.Equal(t, a.ID, result.MediaFailures[0].RecordID)
	assert.Equal(t, []string{"b.png"}, f.storage.deleted)

	require.Len(t, f.publisher.tasks, 1)
	assert.Equal(t, "missing.png", f.publisher.tasks[0].Key)
	assert.Equal(t, "posts", f.publisher.tasks[0].Collection)
	assert.Equal(t, testBucket, f.publisher.tasks[0].Bucket)

	all, err := f.repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	sel, err := f.uc.Selection(ctx, "staff-1")
	require.NoError(t, err)
	assert.Zero(t, sel.Count)
}

func TestCollection_DeletePrunesSelection(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	a := seedPost(t, f, "A", time.Now().Add(-2*time.Hour))
	b := seedPost(t, f, "B", time.Now().Add(-time.Hour))

	_, err := f.uc.SelectPage(ctx, "staff-1", activeQuery())
	require.NoError(t, err)

	_, err = f.uc.Delete(ctx, "staff-1", a.ID)
	require.NoError(t, err)

	sel, err := f.uc.Selection(ctx, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, sel.IDs)
}

func TestCollection_ArchiveViaPatchPrunesSelection(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	a := seedPost(t, f, "A", time.Now().Add(-time.Hour))
	_, err := f.uc.Toggle(ctx, "staff-1", a.ID)
	require.NoError(t, err)

	archived := true
	updated, err := f.uc.Update(ctx, "staff-1", a.ID, entity.BlogPostPatch{Archived: &archived})
	require.NoError(t, err)
	assert.True(t, updated.Archived)

	sel, err := f.uc.Selection(ctx, "staff-1")
	require.NoError(t, err)
	assert.Zero(t, sel.Count)
}

func TestCollection_SelectPageTwiceRestores(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		seedPost(t, f, "Nota", time.Now().Add(-time.Duration(i)*time.Hour))
	}

	first, err := f.uc.SelectPage(ctx, "staff-1", activeQuery())
	require.NoError(t, err)
	assert.True(t, first.AllOnPage)
	assert.Equal(t, 3, first.Count)

	second, err := f.uc.SelectPage(ctx, "staff-1", activeQuery())
	require.NoError(t, err)
	assert.False(t, second.AllOnPage)
	assert.Zero(t, second.Count)
}

func TestCollection_ToggleUnknownID(t *testing.T) {
	f := setupPosts(t)

	_, err := f.uc.Toggle(context.Background(), "staff-1", uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_OverlappingTogglesAreAllKept(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 6; i++ {
		ids = append(ids, seedPost(t, f, fmt.Sprintf("Nota %d", i), time.Now().Add(-time.Duration(i)*time.Hour)).ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.uc.Toggle(ctx, "staff-1", id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	state, err := f.uc.Selection(ctx, "staff-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, state.IDs)
}

func TestCollection_StaleSelectionIsNoop(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	a := seedPost(t, f, "A", time.Now())
	stale := uuid.New().String()
	require.NoError(t, f.selections.Save(ctx, listing.SelectionKey("staff-1", "posts"), listing.NewSelection(a.ID, stale)))

	result, err := f.uc.Bulk(ctx, "staff-1", "archive", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, result.Succeeded)
	assert.Empty(t, result.Skipped, "stale ids are pruned from the selection before the batch runs")

	result, err = f.uc.Bulk(ctx, "staff-1", "unarchive", []string{stale})
	require.NoError(t, err)
	assert.Empty(t, result.Succeeded)
	assert.Equal(t, []string{stale}, result.Skipped)
}

func TestCollection_BulkInvalidAction(t *testing.T) {
	f := setupPosts(t)

	_, err := f.uc.Bulk(context.Background(), "staff-1", "publish", nil)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestCollection_UpdateValidationAndMissing(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	empty := ""
	_, err := f.uc.Update(ctx, "staff-1", uuid.New().String(), entity.BlogPostPatch{Title: &empty})
	assert.ErrorIs(t, err, ErrValidation)

	title := "Nuevo título"
	_, err = f.uc.Update(ctx, "staff-1", uuid.New().String(), entity.BlogPostPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_ListDefaultsPageSize(t *testing.T) {
	f := setupPosts(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		seedPost(t, f, "Nota", time.Now().Add(-time.Duration(i)*time.Minute))
	}

	page, err := f.uc.List(ctx, listing.Query{Page: 5})
	require.NoError(t, err)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Items, 2)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(ctx context.Context) ([]*entity.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BlogPost), args.Error(1)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BlogPost), args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, record *entity.BlogPost) (*entity.BlogPost, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BlogPost), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, id string, patch entity.BlogPostPatch) (*entity.BlogPost, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BlogPost), args.Error(1)
}

func (m *MockPostRepository) SetArchived(ctx context.Context, ids []string, archived bool) error {
	return m.Called(ctx, ids, archived).Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

func TestCollection_CreateStoreFailureDiscardsUpload(t *testing.T) {
	repo := new(MockPostRepository)
	storage := newFakeStorage()
	uc := NewCollectionUseCase[*entity.BlogPost, entity.BlogPostPatch](
		CollectionConfig{Name: "posts", Bucket: testBucket},
		repo, listing.NewMemorySelectionStore(), storage, nil, logger.Nop(),
	)
	ctx := context.Background()

	url, err := uc.UploadMedia(ctx, strings.NewReader("png"), "portada.png", "image/png")
	require.NoError(t, err)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.BlogPost")).Return(nil, errors.New("connection refused"))

	_, err = uc.Create(ctx, "staff-1", &entity.BlogPost{Title: "Con portada", Type: entity.PostTypeArticulo, FeaturedImageURL: url}, url)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Empty(t, storage.objects)
	repo.AssertExpectations(t)
}

func TestCollection_ListStoreFailure(t *testing.T) {
	repo := new(MockPostRepository)
	uc := NewCollectionUseCase[*entity.BlogPost, entity.BlogPostPatch](
		CollectionConfig{Name: "posts"},
		repo, listing.NewMemorySelectionStore(), nil, nil, logger.Nop(),
	)

	repo.On("List", mock.Anything).Return(nil, errors.New("timeout"))

	_, err := uc.List(context.Background(), activeQuery())
	assert.Error(t, err)

	_, err = uc.UploadMedia(context.Background(), strings.NewReader("x"), "a.png", "")
	assert.Error(t, err)
}
