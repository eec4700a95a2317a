package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"batch-whisper/internal/app/model"
)

// TestResults provides sample transcripts in completion order
var TestResults = []model.ResultEntry{
	{
		ID:            "3b0c6a52-0001",
		FileName:      "podcast_episode_001.mp3",
		Transcription: "Welcome to our podcast. Today we're discussing the latest developments in speech recognition.",
		Timestamp:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	},
	{
		ID:            "3b0c6a52-0002",
		FileName:      "interview, part 2.m4a",
		Transcription: "She said \"it works\",\nand then we moved on.",
		Timestamp:     time.Date(2024, 1, 15, 10, 31, 0, 0, time.UTC),
	},
	{
		ID:            "3b0c6a52-0003",
		FileName:      "short_clip.wav",
		Transcription: "",
		Timestamp:     time.Date(2024, 1, 15, 10, 32, 0, 0, time.UTC),
	},
}

// MixedUploadNames mixes accepted extensions, case variants and rejects
var MixedUploadNames = []string{
	"lecture.mp3",
	"notes.txt",
	"VOICE.WAV",
	"clip.webm",
	"cover.jpg",
	"archive.mp3.zip",
	"meeting.flac",
}

// AudioFiles builds in-memory files whose payload is derived from the name
func AudioFiles(names ...string) []model.AudioFile {
	return lo.Map(names, func(name string, _ int) model.AudioFile {
		return model.NewBytesFile(name, []byte("fake audio: "+name))
	})
}

// CreateTestAudioFile writes a small placeholder file under a temp dir and
// returns its path. The content is not decodable audio.
func CreateTestAudioFile(t *testing.T, dir, filename string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("fake audio: "+filename), 0o644))
	return path
}
