package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apierrors "batch-whisper/internal/api/errors"
	"batch-whisper/internal/api/v1/dto"
	"batch-whisper/internal/app/catalog"
	"batch-whisper/internal/app/converter"
	"batch-whisper/internal/app/converter/export"
	apperrors "batch-whisper/internal/app/errors"
	"batch-whisper/internal/app/model"
	"batch-whisper/internal/app/session"
	"batch-whisper/internal/app/storage"
	"batch-whisper/internal/app/testutil"
)

type recordingGauge struct {
	values []int
}

func (g *recordingGauge) SetSessionFiles(n int) {
	g.values = append(g.values, n)
}

func TestFileService(t *testing.T) {
	ctx := context.Background()
	s := session.New()
	gauge := &recordingGauge{}
	svc := NewFileService(s, gauge, zap.NewNop())

	resp, err := svc.AdmitFiles(ctx, model.SourceDragDrop, testutil.AudioFiles("a.mp3", "notes.txt", "b.WAV"))
	require.NoError(t, err)
	assert.Len(t, resp.Admitted, 2)
	assert.Equal(t, 1, resp.Dropped)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "pending", resp.Admitted[0].Status)

	_, err = svc.AdmitFiles(ctx, model.SourcePicker, nil)
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindValidation, apiErr.Kind)

	list, err := svc.ListFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Counts.Pending)

	id := resp.Admitted[0].ID
	got, err := svc.GetFile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a.mp3", got.Name)

	require.NoError(t, svc.RemoveFile(ctx, id))
	require.NoError(t, svc.RemoveFile(ctx, id))
	_, err = svc.GetFile(ctx, id)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindNotFound, apiErr.Kind)

	assert.Equal(t, []int{2, 1}, gauge.values)
}

func TestBatchService(t *testing.T) {
	ctx := context.Background()
	s := session.New()
	s.Admit(model.SourcePicker, testutil.AudioFiles("a.mp3", "b.mp3"))

	mock := testutil.NewMockTranscriber().WithDefaultLatency(20 * time.Millisecond)
	processor := converter.NewBatchProcessor(mock, zap.NewNop())
	defaults := RunDefaults{APIKey: "sk-default", BaseURL: "http://localhost:4000"}
	core, logs := observer.New(zap.InfoLevel)
	svc := NewBatchService(ctx, s, processor, defaults, zap.New(core))

	status, err := svc.StartBatch(ctx, &dto.StartBatchRequest{Model: "whisper-large-v3"})
	require.NoError(t, err)
	assert.True(t, status.Running)

	started := logs.FilterMessage("batch started").All()
	require.Len(t, started, 1)
	assert.Equal(t, int64(2), started[0].ContextMap()["pending"])

	_, err = svc.StartBatch(ctx, &dto.StartBatchRequest{})
	assert.ErrorIs(t, err, apperrors.ErrBatchInProgress)

	processor.Wait()

	status, err = svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Equal(t, 2, status.Counts.Completed)
	require.NotNil(t, status.LastSummary)
	assert.Equal(t, 2, status.LastSummary.Completed)

	for _, call := range mock.GetCallHistory() {
		assert.Equal(t, "whisper-large-v3", call.Model)
		assert.Equal(t, "sk-default", call.APIKey)
		assert.Equal(t, "http://localhost:4000", call.BaseURL)
	}
}

func TestBatchService_MissingKey(t *testing.T) {
	s := session.New()
	s.Admit(model.SourcePicker, testutil.AudioFiles("a.mp3"))
	processor := converter.NewBatchProcessor(testutil.NewMockTranscriber(), zap.NewNop())
	svc := NewBatchService(context.Background(), s, processor, RunDefaults{}, zap.NewNop())

	_, err := svc.StartBatch(context.Background(), &dto.StartBatchRequest{})
	assert.ErrorIs(t, err, apperrors.ErrMissingAPIKey)
	assert.Equal(t, model.StatusPending, s.Entries()[0].Status)
}

func TestResultService(t *testing.T) {
	ctx := context.Background()
	s := session.New()
	res := s.Admit(model.SourcePicker, testutil.AudioFiles("lecture.m4a"))
	id := res.Admitted[0].ID
	_, err := s.MarkProcessing(id, 10)
	require.NoError(t, err)
	_, err = s.Complete(id, "hello world")
	require.NoError(t, err)

	t.Run("without sink", func(t *testing.T) {
		svc := NewResultService(s, nil, zap.NewNop())

		list, err := svc.ListResults(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, list.Total)

		one, err := svc.ExportResult(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "lecture_transcription.txt", one.Name)
		assert.Equal(t, "hello world", string(one.Data))

		_, err = svc.ExportResult(ctx, "missing")
		assert.Error(t, err)

		all, err := svc.ExportAll(ctx, export.FormatTXT)
		require.NoError(t, err)
		assert.Equal(t, "=== lecture.m4a ===\nhello world\n\n", string(all.Data))

		_, err = svc.StoreAll(ctx, export.FormatTXT)
		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, apierrors.KindServiceUnavailable, apiErr.Kind)
	})

	t.Run("with directory sink", func(t *testing.T) {
		dir := t.TempDir()
		sink, err := storage.NewDirWriter(dir)
		require.NoError(t, err)
		svc := NewResultService(s, sink, zap.NewNop())

		stored, err := svc.StoreAll(ctx, export.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "all_transcriptions.json", stored.Name)
		assert.Equal(t, 1, stored.Count)

		data, err := os.ReadFile(filepath.Join(dir, "all_transcriptions.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello world")
	})
}

func TestModelService(t *testing.T) {
	ctx := context.Background()
	c := catalog.New(zap.NewNop())
	svc := NewModelService(c, RunDefaults{}, zap.NewNop())

	list, err := svc.ListModels(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultModel, list.Default)
	assert.False(t, list.Discovered)
	assert.Len(t, list.Models, len(catalog.Defaults()))

	_, err = svc.DiscoverModels(ctx, &dto.DiscoverModelsRequest{})
	assert.True(t, apperrors.IsModelDiscoveryError(err))
}
