package listing

import "sort"

// Selection is the set of record ids checked in one list view.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// Toggle adds id if absent and removes it otherwise. It returns whether id is
// selected afterwards.
func (s *Selection) Toggle(id string) bool {
	if id == "" {
		return false
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// SelectAllOnPage flips the page's all-selected state: when every id is
// already selected they are all removed, otherwise they are all added.
func (s *Selection) SelectAllOnPage(pageIDs []string) {
	if len(pageIDs) == 0 {
		return
	}
	if s.AllSelectedOnPage(pageIDs) {
		for _, id := range pageIDs {
			delete(s.ids, id)
		}
		return
	}
	for _, id := range pageIDs {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
}

// AllSelectedOnPage is true iff pageIDs is non-empty and fully selected.
func (s *Selection) AllSelectedOnPage(pageIDs []string) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}

// Prune drops ids that were archived or deleted.
func (s *Selection) Prune(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Retain drops every id absent from loaded and returns the dropped ids.
func (s *Selection) Retain(loaded []string) []string {
	keep := make(map[string]struct{}, len(loaded))
	for _, id := range loaded {
		keep[id] = struct{}{}
	}
	var dropped []string
	for id := range s.ids {
		if _, ok := keep[id]; !ok {
			dropped = append(dropped, id)
			delete(s.ids, id)
		}
	}
	sort.Strings(dropped)
	return dropped
}

func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids sorted lexicographically.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}
