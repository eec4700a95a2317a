package converter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"batch-whisper/internal/app/model"
)

func TestProgressManager_Disabled(t *testing.T) {
	pm := NewProgressManager(ProgressConfig{Enabled: false})
	bar := pm.CreateBar(3, "Transcribing")

	assert.False(t, bar.enabled)
	assert.NotPanics(t, func() {
		bar.Increment()
		bar.SetCurrent(2)
		bar.Complete()
		bar.Abort()
		pm.Wait()
		pm.Shutdown()
	})
}

func TestProgressObserver_RendersBatch(t *testing.T) {
	var out bytes.Buffer
	obs := NewProgressObserver(ProgressConfig{Enabled: true, Writer: &out})

	ok := model.FileEntry{ID: "1", File: model.AudioFile{Name: "a.mp3"}, Progress: 10, Status: model.StatusProcessing}
	bad := model.FileEntry{ID: "2", File: model.AudioFile{Name: "b.mp3"}, Progress: 10, Status: model.StatusProcessing}

	assert.NotPanics(t, func() {
		obs.OnBatchStart(2)
		obs.OnFileStart(ok)
		obs.OnFileProgress("1", 50)
		obs.OnFileProgress("other", 70)
		ok.Status = model.StatusCompleted
		obs.OnFileDone(ok, nil, false)
		obs.OnFileStart(bad)
		obs.OnFileDone(bad, assert.AnError, false)
		obs.OnBatchDone(Summary{Total: 2, Completed: 1, Failed: 1})

		// a second batch gets a fresh container
		obs.OnBatchStart(0)
		obs.OnBatchDone(Summary{})
	})
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.True(t, ShouldShowProgress(true))
}
