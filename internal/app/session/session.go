// Package session owns the in-memory state of one transcription session: the
// file queue and the result store. The batch processor is the only caller of
// the transition methods; everything else reads snapshots.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	apperrors "batch-whisper/internal/app/errors"
	"batch-whisper/internal/app/model"
	"batch-whisper/internal/app/util/files"
)

// Session is safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	queue   *FileQueue
	results *ResultStore

	strictFormatCheck bool
	now               func() time.Time
	newID             func() string
}

// Option configures a Session.
type Option func(*Session)

// WithStrictFormatCheck makes the multi-file picker path apply the format
// filter too. Drag-drop and folder admission always filter.
func WithStrictFormatCheck(strict bool) Option {
	return func(s *Session) {
		s.strictFormatCheck = strict
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithIDGenerator overrides entry id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Session) {
		s.newID = newID
	}
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		queue:   newFileQueue(),
		results: &ResultStore{},
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AdmitResult reports what an admission call did.
type AdmitResult struct {
	Admitted []model.FileEntry `json:"admitted"`
	Dropped  int               `json:"dropped"`
}

// Counts summarizes entries by status.
type Counts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Error      int `json:"error"`
}

// StrictFormatCheck reports whether picker admissions are filtered.
func (s *Session) StrictFormatCheck() bool {
	return s.strictFormatCheck
}

// Admit enqueues files as pending entries. Names outside the accepted format
// list are dropped silently on the drag-drop and folder paths, and on the
// picker path only in strict mode.
func (s *Session) Admit(source model.Source, candidates []model.AudioFile) AdmitResult {
	accepted := candidates
	dropped := 0
	if source != model.SourcePicker || s.strictFormatCheck {
		accepted, dropped = files.FilterAccepted(candidates, func(f model.AudioFile) string { return f.Name })
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	admitted := make([]model.FileEntry, 0, len(accepted))
	for _, file := range accepted {
		entry := &model.FileEntry{
			ID:        s.newID(),
			File:      file,
			Source:    source,
			Status:    model.StatusPending,
			AddedAt:   now,
			UpdatedAt: now,
		}
		s.queue.push(entry)
		admitted = append(admitted, *entry)
	}
	return AdmitResult{Admitted: admitted, Dropped: dropped}
}

// Entries returns a copy of every entry in admission order.
func (s *Session) Entries() []model.FileEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.snapshot()
}

// Get returns a copy of one entry.
func (s *Session) Get(id string) (model.FileEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.queue.get(id)
	if !ok {
		return model.FileEntry{}, false
	}
	return *entry, true
}

// PendingIDs lists pending entries in admission order.
func (s *Session) PendingIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := lo.Filter(s.queue.entries, func(e *model.FileEntry, _ int) bool {
		return e.Status == model.StatusPending
	})
	return lo.Map(pending, func(e *model.FileEntry, _ int) string {
		return e.ID
	})
}

// Len is the number of entries regardless of status.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.len()
}

// Counts tallies entries by status.
func (s *Session) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := Counts{Total: s.queue.len()}
	for _, entry := range s.queue.entries {
		switch entry.Status {
		case model.StatusPending:
			c.Pending++
		case model.StatusProcessing:
			c.Processing++
		case model.StatusCompleted:
			c.Completed++
		case model.StatusError:
			c.Error++
		}
	}
	return c
}

// Remove deletes an entry and its result, if any. Removing an unknown id is a
// no-op; the return value reports whether something was removed. An in-flight
// request for the entry is not cancelled, its outcome is discarded instead.
func (s *Session) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.queue.remove(id) {
		return false
	}
	s.results.remove(id)
	return true
}

// Results returns completed transcripts in completion order.
func (s *Session) Results() []model.ResultEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results.snapshot()
}

// Result returns the transcript for one entry.
func (s *Session) Result(id string) (model.ResultEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results.get(id)
}

// MarkProcessing moves a pending entry to processing with an initial progress.
func (s *Session) MarkProcessing(id string, progress int) (model.FileEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.transitionable(id, model.StatusPending)
	if err != nil {
		return model.FileEntry{}, err
	}
	entry.Status = model.StatusProcessing
	entry.Progress = clamp(progress, 0, 99)
	entry.UpdatedAt = s.now()
	return *entry, nil
}

// SetProgress raises the progress of a processing entry. Lower values are
// ignored so progress never goes backwards, and 100 is reserved for Complete.
func (s *Session) SetProgress(id string, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.transitionable(id, model.StatusProcessing)
	if err != nil {
		return err
	}
	progress = clamp(progress, 0, 99)
	if progress > entry.Progress {
		entry.Progress = progress
		entry.UpdatedAt = s.now()
	}
	return nil
}

// Complete records a transcript for a processing entry and appends its result.
func (s *Session) Complete(id, transcription string) (model.ResultEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.transitionable(id, model.StatusProcessing)
	if err != nil {
		return model.ResultEntry{}, err
	}
	now := s.now()
	entry.Status = model.StatusCompleted
	entry.Progress = 100
	entry.Transcription = transcription
	entry.Error = ""
	entry.UpdatedAt = now

	result := model.ResultEntry{
		ID:            entry.ID,
		FileName:      entry.File.Name,
		Transcription: transcription,
		Timestamp:     now,
	}
	s.results.append(result)
	return result, nil
}

// Fail records an error message on a processing entry.
func (s *Session) Fail(id, message string) (model.FileEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.transitionable(id, model.StatusProcessing)
	if err != nil {
		return model.FileEntry{}, err
	}
	if message == "" {
		message = "transcription failed"
	}
	entry.Status = model.StatusError
	entry.Error = message
	entry.Transcription = ""
	entry.UpdatedAt = s.now()
	return *entry, nil
}

// transitionable must be called with the write lock held.
func (s *Session) transitionable(id string, from model.Status) (*model.FileEntry, error) {
	entry, ok := s.queue.get(id)
	if !ok {
		return nil, apperrors.NotFound("file entry", id)
	}
	if entry.Status.IsTerminal() {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidTransition, "%s: %s already finished as %s", id, entry.File.Name, entry.Status)
	}
	if entry.Status != from {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidTransition, "%s: %s is %s, expected %s", id, entry.File.Name, entry.Status, from)
	}
	return entry, nil
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
