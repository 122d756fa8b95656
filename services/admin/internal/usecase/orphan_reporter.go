package usecase

import (
	"context"
	"time"

	"asme-site/pkg/listing"
	"asme-site/pkg/queue"
)

type MediaCleanupPublisher interface {
	PublishMediaCleanup(ctx context.Context, task queue.MediaCleanupTask) error
}

// QueueOrphanReporter hands objects the bulk executor could not delete to the
// media cleanup queue.
type QueueOrphanReporter struct {
	publisher  MediaCleanupPublisher
	collection string
}

func NewQueueOrphanReporter(publisher MediaCleanupPublisher, collection string) *QueueOrphanReporter {
	return &QueueOrphanReporter{publisher: publisher, collection: collection}
}

func (r *QueueOrphanReporter) ReportOrphan(ctx context.Context, orphan listing.Orphan) error {
	task := queue.MediaCleanupTask{
		Collection: r.collection,
		RecordID:   orphan.RecordID,
		Bucket:     orphan.Bucket,
		Key:        orphan.Key,
		Attempt:    1,
		QueuedAt:   time.Now().UTC(),
	}
	if orphan.Err != nil {
		task.Reason = orphan.Err.Error()
	}
	return r.publisher.PublishMediaCleanup(ctx, task)
}
