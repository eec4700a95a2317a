// Package testutil provides test doubles and fixtures for the batch pipeline.
//
//   - MockTranscriber (mock_transcriber.go) stands in for a transcription
//     backend, with per-file responses, errors, latency and call history.
//   - Fixtures (fixtures.go) hold sample results, mixed upload names and
//     helpers that create in-memory or on-disk audio files.
package testutil
