// Package listing implements the list-administration pattern shared by the
// dashboard collections: an in-memory filter/sort/paginate engine, a selection
// tracker and a bulk action executor.
package listing

import "time"

// Record is the typed shape every collection exposes to the engine.
type Record interface {
	RecordID() string
	IsArchived() bool
	Created() time.Time
	// Kind is the value of the collection's closed enumeration used by the
	// equality filter and the kind sort (type, category or status).
	Kind() string
	SearchFields() []string
}

// MediaOwner is implemented by records with objects in media storage.
type MediaOwner interface {
	MediaURLs() []string
}

// IDs returns the identifiers of records in order.
func IDs[T Record](records []T) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.RecordID()
	}
	return ids
}
