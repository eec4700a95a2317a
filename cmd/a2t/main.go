package main

import (
	"batch-whisper/cmd/a2t/cmd"

	// Import backends to register them
	_ "batch-whisper/internal/app/api/litellm"
	_ "batch-whisper/internal/app/api/openai/whisper"
)

func main() {
	cmd.Execute()
}
