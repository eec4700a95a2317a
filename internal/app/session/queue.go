package session

import (
	"batch-whisper/internal/app/model"
)

// FileQueue holds file entries in admission order. It is not safe for
// concurrent use on its own; Session serializes access.
type FileQueue struct {
	entries []*model.FileEntry
	index   map[string]*model.FileEntry
}

func newFileQueue() *FileQueue {
	return &FileQueue{index: make(map[string]*model.FileEntry)}
}

func (q *FileQueue) push(entry *model.FileEntry) {
	q.entries = append(q.entries, entry)
	q.index[entry.ID] = entry
}

func (q *FileQueue) get(id string) (*model.FileEntry, bool) {
	entry, ok := q.index[id]
	return entry, ok
}

func (q *FileQueue) remove(id string) bool {
	if _, ok := q.index[id]; !ok {
		return false
	}
	delete(q.index, id)
	for i, entry := range q.entries {
		if entry.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			break
		}
	}
	return true
}

func (q *FileQueue) len() int {
	return len(q.entries)
}

// snapshot copies every entry so callers never alias queue state.
func (q *FileQueue) snapshot() []model.FileEntry {
	out := make([]model.FileEntry, len(q.entries))
	for i, entry := range q.entries {
		out[i] = *entry
	}
	return out
}
