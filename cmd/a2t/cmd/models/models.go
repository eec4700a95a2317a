package models

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"batch-whisper/cmd/a2t/cmd/flags"
	"batch-whisper/internal/app"
	"batch-whisper/internal/app/model"
)

// Cmd represents the models command
var Cmd = NewCommand()

// NewCommand builds a models command with its own flag state
func NewCommand() *cobra.Command {
	var conn flags.Connection
	var discover bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List transcription models",
		Long: `List transcription models

- Without flags prints the built-in catalog, or the one from $A2T_CATALOG_FILE
- --discover queries {base-url}/v1/models and keeps whisper/transcribe models`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := conn.LoadSettings()
			if err != nil {
				return err
			}
			logger, err := flags.Logger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			a, err := app.InitializeApp(settings, logger, nil)
			if err != nil {
				return err
			}

			if discover {
				if _, err := a.Catalog.Discover(cmd.Context(), settings.APIKey, settings.BaseURL); err != nil {
					return err
				}
				if !a.Catalog.Discovered() {
					fmt.Fprintln(cmd.ErrOrStderr(), "No transcription models found remotely, showing the configured catalog")
				}
			}

			printModels(cmd.OutOrStdout(), a.Catalog.Models(), settings.Model)
			return nil
		},
	}

	conn.Register(cmd)
	cmd.Flags().BoolVar(&discover, "discover", false, "query the endpoint's model listing")
	return cmd
}

func printModels(out io.Writer, models []model.ModelDescriptor, active string) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tIDENTIFIER\tNAME\tPROVIDER\tSPEED\tACCURACY")
	for _, m := range models {
		marker := ""
		if m.Identifier == active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", marker, m.Identifier, m.DisplayName, m.Provider, m.Speed, m.Accuracy)
	}
	w.Flush()
}
