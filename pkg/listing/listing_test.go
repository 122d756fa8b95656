package listing

import (
	"fmt"
	"math/rand"
	"time"
)

type item struct {
	id       string
	archived bool
	created  time.Time
	kind     string
	title    string
	content  string
	media    []string
}

func (i item) RecordID() string       { return i.id }
func (i item) IsArchived() bool       { return i.archived }
func (i item) Created() time.Time     { return i.created }
func (i item) Kind() string           { return i.kind }
func (i item) SearchFields() []string { return []string{i.title, i.content} }
func (i item) MediaURLs() []string    { return i.media }

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

var kinds = []string{"articulo", "video", "audio"}

var words = []string{"Capacitación", "RCP", "protección", "civil", "Legal", "PIPC", "brigada", "sismo", "evacuación"}

func randomItems(r *rand.Rand, n int) []item {
	items := make([]item, n)
	for i := range items {
		items[i] = item{
			id:       fmt.Sprintf("rec-%03d", i),
			archived: r.Intn(3) == 0,
			created:  baseTime.Add(time.Duration(r.Intn(500)) * time.Hour),
			kind:     kinds[r.Intn(len(kinds))],
			title:    words[r.Intn(len(words))] + " " + words[r.Intn(len(words))],
			content:  words[r.Intn(len(words))],
		}
	}
	return items
}
