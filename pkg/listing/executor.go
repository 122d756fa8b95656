package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asme-site/pkg/logger"
	"asme-site/pkg/s3"

	"golang.org/x/sync/errgroup"
)

type Action string

const (
	ActionArchive   Action = "archive"
	ActionUnarchive Action = "unarchive"
	ActionDelete    Action = "delete"
)

var ErrUnknownAction = errors.New("unknown bulk action")

func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionArchive, ActionUnarchive, ActionDelete:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Store is the part of a record store the executor writes through. Both calls
// are batched over ids.
type Store interface {
	SetArchived(ctx context.Context, ids []string, archived bool) error
	Delete(ctx context.Context, ids []string) error
}

// MediaRemover deletes one object from a bucket. *s3.Client satisfies it.
type MediaRemover interface {
	DeleteFile(ctx context.Context, bucket, key string) error
}

// Orphan is a media object left in storage after its record was deleted.
type Orphan struct {
	RecordID string
	Bucket   string
	Key      string
	Err      error
}

// OrphanReporter receives orphaned objects, e.g. to queue a later cleanup.
type OrphanReporter interface {
	ReportOrphan(ctx context.Context, orphan Orphan) error
}

type MediaFailure struct {
	RecordID string `json:"recordId"`
	Key      string `json:"key"`
	Error    string `json:"error"`
}

// BulkResult summarises one bulk action. Partial failures are reported here
// rather than as an error.
type BulkResult struct {
	Action        Action         `json:"action"`
	Succeeded     []string       `json:"succeeded"`
	Failed        []string       `json:"failed"`
	Skipped       []string       `json:"skipped"`
	MediaFailures []MediaFailure `json:"mediaFailures"`
	Error         string         `json:"error,omitempty"`
}

func (r BulkResult) Summary() string {
	return fmt.Sprintf("%s: %d succeeded, %d failed, %d skipped, %d media failures",
		r.Action, len(r.Succeeded), len(r.Failed), len(r.Skipped), len(r.MediaFailures))
}

type executorConfig struct {
	media       MediaRemover
	bucket      string
	orphans     OrphanReporter
	concurrency int
}

type ExecutorOption func(*executorConfig)

// WithMedia enables object cleanup in bucket before rows are deleted.
func WithMedia(remover MediaRemover, bucket string) ExecutorOption {
	return func(c *executorConfig) {
		c.media = remover
		c.bucket = bucket
	}
}

func WithOrphanReporter(r OrphanReporter) ExecutorOption {
	return func(c *executorConfig) { c.orphans = r }
}

// WithConcurrency bounds parallel media cleanup. 1 keeps record order.
func WithConcurrency(n int) ExecutorOption {
	return func(c *executorConfig) {
		if n < 1 {
			n = 1
		}
		c.concurrency = n
	}
}

// Executor applies archive, unarchive and delete to a set of records.
type Executor[T Record] struct {
	store  Store
	cfg    executorConfig
	logger *logger.Logger
}

func NewExecutor[T Record](store Store, log *logger.Logger, opts ...ExecutorOption) *Executor[T] {
	cfg := executorConfig{concurrency: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Executor[T]{store: store, cfg: cfg, logger: log}
}

// Execute applies action to the records whose id is in ids. Ids missing from
// records are skipped without touching the store. Targets keep the order of
// records.
func (e *Executor[T]) Execute(ctx context.Context, action Action, records []T, ids []string) BulkResult {
	result := BulkResult{
		Action:        action,
		Succeeded:     []string{},
		Failed:        []string{},
		Skipped:       []string{},
		MediaFailures: []MediaFailure{},
	}

	targets, skipped := resolveTargets(records, ids)
	result.Skipped = skipped
	if len(targets) == 0 {
		return result
	}
	targetIDs := IDs(targets)

	var err error
	switch action {
	case ActionArchive, ActionUnarchive:
		err = e.store.SetArchived(ctx, targetIDs, action == ActionArchive)
	case ActionDelete:
		result.MediaFailures = e.cleanupMedia(ctx, targets)
		err = e.store.Delete(ctx, targetIDs)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if err != nil {
		e.logger.Error("[BULK] %s failed for %d records: %v", action, len(targetIDs), err)
		result.Failed = targetIDs
		result.Error = err.Error()
		return result
	}

	result.Succeeded = targetIDs
	e.logger.Info("[BULK] %s", result.Summary())
	return result
}

func resolveTargets[T Record](records []T, ids []string) ([]T, []string) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = false
	}

	targets := make([]T, 0, len(ids))
	for _, r := range records {
		if seen, ok := wanted[r.RecordID()]; ok && !seen {
			wanted[r.RecordID()] = true
			targets = append(targets, r)
		}
	}

	skipped := []string{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !wanted[id] && !seen[id] {
			seen[id] = true
			skipped = append(skipped, id)
		}
	}
	return targets, skipped
}

// cleanupMedia removes each target's objects. Failures are logged and
// reported but never stop the batch.
func (e *Executor[T]) cleanupMedia(ctx context.Context, targets []T) []MediaFailure {
	failures := []MediaFailure{}
	if e.cfg.media == nil {
		return failures
	}

	perRecord := make([][]MediaFailure, len(targets))
	if e.cfg.concurrency <= 1 {
		for i, r := range targets {
			perRecord[i] = e.cleanupRecord(ctx, r)
		}
	} else {
		g := new(errgroup.Group)
		g.SetLimit(e.cfg.concurrency)
		for i, r := range targets {
			g.Go(func() error {
				perRecord[i] = e.cleanupRecord(ctx, r)
				return nil
			})
		}
		_ = g.Wait()
	}

	for _, f := range perRecord {
		failures = append(failures, f...)
	}
	return failures
}

func (e *Executor[T]) cleanupRecord(ctx context.Context, r T) []MediaFailure {
	owner, ok := any(r).(MediaOwner)
	if !ok {
		return nil
	}

	var failures []MediaFailure
	for _, rawURL := range owner.MediaURLs() {
		key := s3.KeyFromURL(rawURL)
		if key == "" {
			continue
		}

		err := e.cfg.media.DeleteFile(ctx, e.cfg.bucket, key)
		if err == nil {
			continue
		}

		e.logger.Warn("[BULK] media cleanup failed record=%s bucket=%s key=%s: %v", r.RecordID(), e.cfg.bucket, key, err)
		failures = append(failures, MediaFailure{RecordID: r.RecordID(), Key: key, Error: err.Error()})

		if e.cfg.orphans != nil {
			orphan := Orphan{RecordID: r.RecordID(), Bucket: e.cfg.bucket, Key: key, Err: err}
			if rerr := e.cfg.orphans.ReportOrphan(ctx, orphan); rerr != nil {
				e.logger.Error("[BULK] failed to report orphan bucket=%s key=%s: %v", e.cfg.bucket, key, rerr)
			}
		}
	}
	return failures
}
