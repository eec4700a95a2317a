package session

import (
	"batch-whisper/internal/app/model"
)

// ResultStore is the append-only list of completed transcripts in
// completion order. Entries leave only when their file entry is removed.
type ResultStore struct {
	results []model.ResultEntry
}

func (r *ResultStore) append(result model.ResultEntry) {
	r.results = append(r.results, result)
}

func (r *ResultStore) get(id string) (model.ResultEntry, bool) {
	for _, result := range r.results {
		if result.ID == id {
			return result, true
		}
	}
	return model.ResultEntry{}, false
}

func (r *ResultStore) remove(id string) {
	kept := r.results[:0]
	for _, result := range r.results {
		if result.ID != id {
			kept = append(kept, result)
		}
	}
	r.results = kept
}

func (r *ResultStore) snapshot() []model.ResultEntry {
	out := make([]model.ResultEntry, len(r.results))
	copy(out, r.results)
	return out
}
