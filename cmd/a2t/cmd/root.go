package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"batch-whisper/cmd/a2t/cmd/models"
	"batch-whisper/cmd/a2t/cmd/serve"
	"batch-whisper/cmd/a2t/cmd/transcribe"
	"batch-whisper/cmd/a2t/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "a2t",
	Short: "Batch transcribe audio files against an OpenAI-compatible endpoint",
	Long: `Batch transcribe audio files against an OpenAI-compatible endpoint.
- Queue files from paths or folders
- Upload them one at a time to {base-url}/audio/transcriptions
- Export the transcripts as txt, csv, json or xlsx, locally or to MinIO
- Or run "a2t serve" to drive the same pipeline over HTTP`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(models.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
