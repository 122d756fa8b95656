package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"asme-site/pkg/listing"
	"asme-site/pkg/logger"
	"asme-site/pkg/s3"
	"asme-site/services/admin/internal/repo/persistent"

	"github.com/google/uuid"
)

// Entity is a collection record that can check its own fields before it is
// stored. Timestamps are always assigned by the store.
type Entity interface {
	listing.Record
	Validate() error
	ClearTimestamps()
}

type Patch interface {
	Validate() error
}

// MediaStorage is the object store used for uploads and media cleanup.
// *s3.Client satisfies it.
type MediaStorage interface {
	UploadFile(ctx context.Context, bucket, key string, file io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, bucket, key string) error
}

// SelectionState is what the dashboard needs to render its checkboxes.
type SelectionState struct {
	IDs            []string `json:"ids"`
	Count          int      `json:"count"`
	AllOnPage      bool     `json:"allOnPage"`
	PageIDs        []string `json:"pageIds,omitempty"`
	ClearedMissing []string `json:"clearedMissing,omitempty"`
}

type CollectionUseCase[E Entity, P Patch] interface {
	Name() string
	List(ctx context.Context, q listing.Query) (listing.Page[E], error)
	Get(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, owner string, record E, uploadedURLs ...string) (E, error)
	Update(ctx context.Context, owner, id string, patch P) (E, error)
	Archive(ctx context.Context, owner, id string) (listing.BulkResult, error)
	Unarchive(ctx context.Context, owner, id string) (listing.BulkResult, error)
	Delete(ctx context.Context, owner, id string) (listing.BulkResult, error)
	UploadMedia(ctx context.Context, file io.Reader, filename, contentType string) (string, error)
	DiscardMedia(ctx context.Context, urls ...string)
	Toggle(ctx context.Context, owner, id string) (SelectionState, error)
	SelectPage(ctx context.Context, owner string, q listing.Query) (SelectionState, error)
	Selection(ctx context.Context, owner string) (SelectionState, error)
	ClearSelection(ctx context.Context, owner string) error
	Bulk(ctx context.Context, owner, action string, ids []string) (listing.BulkResult, error)
}

type CollectionConfig struct {
	Name               string
	PageSize           int
	Bucket             string
	CleanupConcurrency int
}

type collectionUseCase[E Entity, P Patch] struct {
	cfg        CollectionConfig
	repo       persistent.CollectionRepository[E, P]
	selections listing.SelectionStore
	media      MediaStorage
	executor   *listing.Executor[E]
	logger     *logger.Logger
}

// NewCollectionUseCase binds a record store to the list engine, the selection
// store and the bulk executor. media and orphans may be nil for collections
// without files.
func NewCollectionUseCase[E Entity, P Patch](
	cfg CollectionConfig,
	repo persistent.CollectionRepository[E, P],
	selections listing.SelectionStore,
	media MediaStorage,
	orphans listing.OrphanReporter,
	logger *logger.Logger,
) CollectionUseCase[E, P] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = listing.DefaultPageSize
	}

	opts := []listing.ExecutorOption{listing.WithConcurrency(cfg.CleanupConcurrency)}
	if media != nil && cfg.Bucket != "" {
		opts = append(opts, listing.WithMedia(media, cfg.Bucket))
	}
	if orphans != nil {
		opts = append(opts, listing.WithOrphanReporter(orphans))
	}

	return &collectionUseCase[E, P]{
		cfg:        cfg,
		repo:       repo,
		selections: selections,
		media:      media,
		executor:   listing.NewExecutor[E](repo, logger, opts...),
		logger:     logger,
	}
}

func (uc *collectionUseCase[E, P]) Name() string {
	return uc.cfg.Name
}

func (uc *collectionUseCase[E, P]) List(ctx context.Context, q listing.Query) (listing.Page[E], error) {
	records, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("[%s] failed to fetch collection: %v", uc.tag(), err)
		return listing.Page[E]{}, fmt.Errorf("failed to fetch %s: %w", uc.cfg.Name, err)
	}

	if q.PageSize <= 0 {
		q.PageSize = uc.cfg.PageSize
	}
	return listing.Apply(records, q), nil
}

func (uc *collectionUseCase[E, P]) Get(ctx context.Context, id string) (E, error) {
	record, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return record, storeError(err)
	}
	return record, nil
}

// Create validates record before any store call. Objects already uploaded for
// it are removed again when the record cannot be stored.
func (uc *collectionUseCase[E, P]) Create(ctx context.Context, owner string, record E, uploadedURLs ...string) (E, error) {
	var zero E
	if err := record.Validate(); err != nil {
		uc.DiscardMedia(ctx, uploadedURLs...)
		return zero, validationError(err)
	}
	record.ClearTimestamps()

	created, err := uc.repo.Create(ctx, record)
	if err != nil {
		uc.logger.Error("[%s] failed to create record: %v", uc.tag(), err)
		uc.DiscardMedia(ctx, uploadedURLs...)
		return zero, fmt.Errorf("failed to create %s record: %w", uc.cfg.Name, err)
	}

	uc.logger.Info("[%s] record %s created by %s", uc.tag(), created.RecordID(), owner)
	uc.refresh(ctx, owner)
	return created, nil
}

// Update writes the fields present in patch. A record whose archived flag
// changes leaves the selection.
func (uc *collectionUseCase[E, P]) Update(ctx context.Context, owner, id string, patch P) (E, error) {
	var zero E
	if err := patch.Validate(); err != nil {
		return zero, validationError(err)
	}

	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return zero, storeError(err)
	}

	updated, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		err = storeError(err)
		if !errors.Is(err, ErrNotFound) {
			uc.logger.Error("[%s] failed to update record %s: %v", uc.tag(), id, err)
		}
		return zero, err
	}

	if current.IsArchived() != updated.IsArchived() {
		uc.refresh(ctx, owner, id)
	} else {
		uc.refresh(ctx, owner)
	}
	return updated, nil
}

func (uc *collectionUseCase[E, P]) Archive(ctx context.Context, owner, id string) (listing.BulkResult, error) {
	return uc.single(ctx, owner, listing.ActionArchive, id)
}

func (uc *collectionUseCase[E, P]) Unarchive(ctx context.Context, owner, id string) (listing.BulkResult, error) {
	return uc.single(ctx, owner, listing.ActionUnarchive, id)
}

// Delete removes one record and its media. Storage failures are reported in
// the result; the row is deleted regardless.
func (uc *collectionUseCase[E, P]) Delete(ctx context.Context, owner, id string) (listing.BulkResult, error) {
	return uc.single(ctx, owner, listing.ActionDelete, id)
}

func (uc *collectionUseCase[E, P]) single(ctx context.Context, owner string, action listing.Action, id string) (listing.BulkResult, error) {
	records, err := uc.repo.List(ctx)
	if err != nil {
		return listing.BulkResult{}, fmt.Errorf("failed to fetch %s: %w", uc.cfg.Name, err)
	}

	result := uc.executor.Execute(ctx, action, records, []string{id})
	if len(result.Skipped) > 0 {
		return result, ErrNotFound
	}

	uc.refresh(ctx, owner, result.Succeeded...)
	if len(result.Failed) > 0 {
		return result, fmt.Errorf("failed to %s %s record %s: %s", action, uc.cfg.Name, id, result.Error)
	}
	return result, nil
}

// UploadMedia stores file under a fresh key and returns its public URL.
func (uc *collectionUseCase[E, P]) UploadMedia(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	if uc.media == nil || uc.cfg.Bucket == "" {
		return "", fmt.Errorf("%s does not accept media", uc.cfg.Name)
	}

	key := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := uc.media.UploadFile(ctx, uc.cfg.Bucket, key, file, contentType)
	if err != nil {
		uc.logger.Error("[%s] failed to upload %s: %v", uc.tag(), filename, err)
		return "", fmt.Errorf("failed to upload media: %w", err)
	}
	return url, nil
}

// DiscardMedia removes uploaded objects that no record points to.
func (uc *collectionUseCase[E, P]) DiscardMedia(ctx context.Context, urls ...string) {
	if uc.media == nil {
		return
	}
	for _, url := range urls {
		key := s3.KeyFromURL(url)
		if key == "" {
			continue
		}
		if err := uc.media.DeleteFile(ctx, uc.cfg.Bucket, key); err != nil {
			uc.logger.Warn("[%s] failed to discard uploaded object %s: %v", uc.tag(), key, err)
		}
	}
}

func (uc *collectionUseCase[E, P]) Toggle(ctx context.Context, owner, id string) (SelectionState, error) {
	records, _, dropped, err := uc.loadSelection(ctx, owner)
	if err != nil {
		return SelectionState{}, err
	}

	loaded := listing.IDs(records)
	if !contains(loaded, id) {
		return SelectionState{}, ErrNotFound
	}
	if err := uc.removeFromSelection(ctx, owner, dropped...); err != nil {
		return SelectionState{}, err
	}

	sel, err := uc.selections.Toggle(ctx, uc.selectionKey(owner), id)
	if err != nil {
		return SelectionState{}, fmt.Errorf("failed to save selection: %w", err)
	}
	sel.Retain(loaded)
	return SelectionState{IDs: sel.IDs(), Count: sel.Len(), ClearedMissing: dropped}, nil
}

// SelectPage toggles the all-selected state of the page q resolves to.
func (uc *collectionUseCase[E, P]) SelectPage(ctx context.Context, owner string, q listing.Query) (SelectionState, error) {
	records, sel, dropped, err := uc.loadSelection(ctx, owner)
	if err != nil {
		return SelectionState{}, err
	}
	if err := uc.removeFromSelection(ctx, owner, dropped...); err != nil {
		return SelectionState{}, err
	}

	if q.PageSize <= 0 {
		q.PageSize = uc.cfg.PageSize
	}
	pageIDs := listing.IDs(listing.Apply(records, q).Items)

	if sel.AllSelectedOnPage(pageIDs) {
		err = uc.removeFromSelection(ctx, owner, pageIDs...)
	} else if err = uc.selections.Add(ctx, uc.selectionKey(owner), pageIDs...); err != nil {
		err = fmt.Errorf("failed to save selection: %w", err)
	}
	if err != nil {
		return SelectionState{}, err
	}
	sel.SelectAllOnPage(pageIDs)

	return SelectionState{
		IDs:            sel.IDs(),
		Count:          sel.Len(),
		AllOnPage:      sel.AllSelectedOnPage(pageIDs),
		PageIDs:        pageIDs,
		ClearedMissing: dropped,
	}, nil
}

func (uc *collectionUseCase[E, P]) Selection(ctx context.Context, owner string) (SelectionState, error) {
	_, sel, dropped, err := uc.loadSelection(ctx, owner)
	if err != nil {
		return SelectionState{}, err
	}
	if err := uc.removeFromSelection(ctx, owner, dropped...); err != nil {
		return SelectionState{}, err
	}
	return SelectionState{IDs: sel.IDs(), Count: sel.Len(), ClearedMissing: dropped}, nil
}

func (uc *collectionUseCase[E, P]) ClearSelection(ctx context.Context, owner string) error {
	if err := uc.selections.Clear(ctx, uc.selectionKey(owner)); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}

// Bulk applies action to ids, or to the owner's stored selection when ids is
// empty. The selection is cleared afterwards whatever the outcome.
func (uc *collectionUseCase[E, P]) Bulk(ctx context.Context, owner, action string, ids []string) (listing.BulkResult, error) {
	act, err := listing.ParseAction(action)
	if err != nil {
		return listing.BulkResult{}, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	records, sel, _, err := uc.loadSelection(ctx, owner)
	if err != nil {
		return listing.BulkResult{}, err
	}
	if len(ids) == 0 {
		ids = sel.IDs()
	}

	result := uc.executor.Execute(ctx, act, records, ids)

	if err := uc.ClearSelection(ctx, owner); err != nil {
		uc.logger.Warn("[%s] %v", uc.tag(), err)
	}
	uc.refresh(ctx, owner)
	return result, nil
}

// refresh re-fetches the collection after a mutation and drops selected ids
// that are gone from it, plus the ids in removed.
func (uc *collectionUseCase[E, P]) refresh(ctx context.Context, owner string, removed ...string) {
	if owner == "" {
		return
	}

	records, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Warn("[%s] re-fetch after mutation failed: %v", uc.tag(), err)
		return
	}

	sel, err := uc.selections.Load(ctx, uc.selectionKey(owner))
	if err != nil {
		uc.logger.Warn("[%s] failed to load selection for %s: %v", uc.tag(), owner, err)
		return
	}

	stale := sel.Retain(listing.IDs(records))
	for _, id := range removed {
		if sel.Has(id) {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return
	}

	if err := uc.removeFromSelection(ctx, owner, stale...); err != nil {
		uc.logger.Warn("[%s] %v", uc.tag(), err)
		return
	}
	uc.logger.Debug("[%s] pruned %d ids from selection of %s", uc.tag(), len(stale), owner)
}

func (uc *collectionUseCase[E, P]) loadSelection(ctx context.Context, owner string) ([]E, *listing.Selection, []string, error) {
	records, err := uc.repo.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch %s: %w", uc.cfg.Name, err)
	}

	sel, err := uc.selections.Load(ctx, uc.selectionKey(owner))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load selection: %w", err)
	}

	dropped := sel.Retain(listing.IDs(records))
	return records, sel, dropped, nil
}

func (uc *collectionUseCase[E, P]) removeFromSelection(ctx context.Context, owner string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := uc.selections.Remove(ctx, uc.selectionKey(owner), ids...); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

func (uc *collectionUseCase[E, P]) selectionKey(owner string) string {
	return listing.SelectionKey(owner, uc.cfg.Name)
}

func (uc *collectionUseCase[E, P]) tag() string {
	return strings.ToUpper(uc.cfg.Name)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
