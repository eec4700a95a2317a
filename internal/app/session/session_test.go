package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "batch-whisper/internal/app/errors"
	"batch-whisper/internal/app/model"
	"batch-whisper/internal/app/testutil"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestSession(opts ...Option) *Session {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	base := []Option{
		WithIDGenerator(sequentialIDs()),
		WithClock(func() time.Time { return fixed }),
	}
	return New(append(base, opts...)...)
}

func audioFiles(names ...string) []model.AudioFile {
	out := make([]model.AudioFile, 0, len(names))
	for _, name := range names {
		out = append(out, model.NewBytesFile(name, []byte("payload")))
	}
	return out
}

func TestAdmitFiltering(t *testing.T) {
	names := []string{"a.mp3", "notes.txt", "B.WAV", "cover.jpg", "c.webm"}

	tests := []struct {
		name        string
		source      model.Source
		strict      bool
		wantNames   []string
		wantDropped int
	}{
		{name: "drag-drop filters", source: model.SourceDragDrop, wantNames: []string{"a.mp3", "B.WAV", "c.webm"}, wantDropped: 2},
		{name: "folder filters", source: model.SourceFolder, wantNames: []string{"a.mp3", "B.WAV", "c.webm"}, wantDropped: 2},
		{name: "picker admits everything", source: model.SourcePicker, wantNames: names},
		{name: "strict picker filters", source: model.SourcePicker, strict: true, wantNames: []string{"a.mp3", "B.WAV", "c.webm"}, wantDropped: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(WithStrictFormatCheck(tt.strict))
			res := s.Admit(tt.source, audioFiles(names...))

			assert.Equal(t, tt.wantDropped, res.Dropped)
			require.Len(t, res.Admitted, len(tt.wantNames))
			for i, entry := range s.Entries() {
				assert.Equal(t, tt.wantNames[i], entry.File.Name)
				assert.Equal(t, model.StatusPending, entry.Status)
				assert.Equal(t, 0, entry.Progress)
				assert.Equal(t, tt.source, entry.Source)
			}
		})
	}
}

func TestAdmitMixedDrop(t *testing.T) {
	s := newTestSession()
	res := s.Admit(model.SourceDragDrop, testutil.AudioFiles(testutil.MixedUploadNames...))

	assert.Equal(t, 3, res.Dropped)
	names := make([]string, 0, len(res.Admitted))
	for _, e := range res.Admitted {
		names = append(names, e.File.Name)
	}
	assert.Equal(t, []string{"lecture.mp3", "VOICE.WAV", "clip.webm", "meeting.flac"}, names)
}

func TestAdmitAssignsUniqueIDs(t *testing.T) {
	s := New()
	res := s.Admit(model.SourceDragDrop, audioFiles("a.mp3", "a.mp3", "a.mp3"))

	seen := map[string]bool{}
	for _, entry := range res.Admitted {
		assert.NotEmpty(t, entry.ID)
		assert.False(t, seen[entry.ID], "duplicate id %s", entry.ID)
		seen[entry.ID] = true
	}
}

func TestTransitions(t *testing.T) {
	s := newTestSession()
	s.Admit(model.SourcePicker, audioFiles("a.mp3", "b.mp3"))

	entry, err := s.MarkProcessing("id-1", 10)
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, entry.Status)
	assert.Equal(t, 10, entry.Progress)

	require.NoError(t, s.SetProgress("id-1", 50))
	require.NoError(t, s.SetProgress("id-1", 30))
	got, _ := s.Get("id-1")
	assert.Equal(t, 50, got.Progress, "progress must not decrease")

	result, err := s.Complete("id-1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "a.mp3", result.FileName)
	assert.Equal(t, "hello", result.Transcription)

	got, _ = s.Get("id-1")
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, "hello", got.Transcription)
	assert.Empty(t, got.Error)

	_, err = s.MarkProcessing("id-2", 10)
	require.NoError(t, err)
	failed, err := s.Fail("id-2", "API request failed: 500")
	require.NoError(t, err)
	assert.Equal(t, model.StatusError, failed.Status)
	assert.Equal(t, "API request failed: 500", failed.Error)
	assert.Empty(t, failed.Transcription)

	assert.Len(t, s.Results(), 1)
	assert.Empty(t, s.PendingIDs())
}

func TestTransitionGuards(t *testing.T) {
	s := newTestSession()
	s.Admit(model.SourcePicker, audioFiles("a.mp3"))

	_, err := s.Complete("id-1", "too early")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = s.MarkProcessing("missing", 10)
	assert.ErrorIs(t, err, apperrors.ErrEntryNotFound)

	_, err = s.MarkProcessing("id-1", 10)
	require.NoError(t, err)
	_, err = s.MarkProcessing("id-1", 10)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = s.Fail("id-1", "")
	require.NoError(t, err)
	got, _ := s.Get("id-1")
	assert.NotEmpty(t, got.Error)

	_, err = s.Complete("id-1", "after error")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "already finished as error")
	assert.Empty(t, s.Results())

	_, err = s.MarkProcessing("id-1", 10)
	assert.ErrorContains(t, err, "already finished as error")
}

func TestRemoveCascadesAndIsIdempotent(t *testing.T) {
	s := newTestSession()
	s.Admit(model.SourcePicker, audioFiles("a.mp3", "b.mp3"))

	_, err := s.MarkProcessing("id-1", 10)
	require.NoError(t, err)
	_, err = s.Complete("id-1", "hello")
	require.NoError(t, err)

	_, ok := s.Result("id-1")
	require.True(t, ok)

	assert.True(t, s.Remove("id-1"))
	_, ok = s.Result("id-1")
	assert.False(t, ok)
	_, ok = s.Get("id-1")
	assert.False(t, ok)

	assert.False(t, s.Remove("id-1"))
	assert.False(t, s.Remove("never-existed"))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []string{"id-2"}, s.PendingIDs())
}

func TestRemovedEntryRejectsLateResult(t *testing.T) {
	s := newTestSession()
	s.Admit(model.SourcePicker, audioFiles("a.mp3"))

	_, err := s.MarkProcessing("id-1", 10)
	require.NoError(t, err)
	s.Remove("id-1")

	_, err = s.Complete("id-1", "late")
	assert.ErrorIs(t, err, apperrors.ErrEntryNotFound)
	assert.Empty(t, s.Results())
}

func TestCounts(t *testing.T) {
	s := newTestSession()
	s.Admit(model.SourcePicker, audioFiles("a.mp3", "b.mp3", "c.mp3", "d.mp3"))

	_, _ = s.MarkProcessing("id-1", 10)
	_, _ = s.Complete("id-1", "ok")
	_, _ = s.MarkProcessing("id-2", 10)
	_, _ = s.Fail("id-2", "boom")
	_, _ = s.MarkProcessing("id-3", 10)

	assert.Equal(t, Counts{Total: 4, Pending: 1, Processing: 1, Completed: 1, Error: 1}, s.Counts())
}

func TestEntriesAreSnapshots(t *testing.T) {
	s := newTestSession()
	s.Admit(model.SourcePicker, audioFiles("a.mp3"))

	entries := s.Entries()
	entries[0].Status = model.StatusCompleted

	got, _ := s.Get("id-1")
	assert.Equal(t, model.StatusPending, got.Status)
}
