package transcribe

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"batch-whisper/cmd/a2t/cmd/flags"
	"batch-whisper/internal/app"
	"batch-whisper/internal/app/converter"
	"batch-whisper/internal/app/converter/export"
	"batch-whisper/internal/app/model"
	"batch-whisper/internal/app/session"
	"batch-whisper/internal/app/util/files"
	"batch-whisper/internal/config"
)

type options struct {
	conn      flags.Connection
	dirs      []string
	dragDrop  bool
	strict    bool
	outputDir string
	format    string
	perFile   bool
	useMinio  bool
	progress  bool
}

// Cmd represents the transcribe command
var Cmd = NewCommand()

// NewCommand builds a transcribe command with its own flag state
func NewCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "transcribe [files...]",
		Short: "Transcribe audio files and export the transcripts",
		Long: `Transcribe audio files and export the transcripts

- Files given as arguments are queued as picked files; with --dragdrop they
  go through the format filter like dropped files
- --dir walks a folder and keeps only supported audio formats
- Files are uploaded one at a time; a failure is recorded and the batch moves on
- Transcripts are written to --output-dir, or to MinIO with --minio`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, o)
		},
	}

	o.conn.Register(cmd)
	f := cmd.Flags()
	f.StringSliceVarP(&o.dirs, "dir", "d", nil, "folder to scan for audio files (repeatable)")
	f.BoolVar(&o.dragDrop, "dragdrop", false, "filter file arguments by format like a drag-and-drop")
	f.BoolVar(&o.strict, "strict", false, "filter picked files by format too")
	f.StringVarP(&o.outputDir, "output-dir", "o", "", "directory for exported transcripts (default $A2T_EXPORT_DIR)")
	f.StringVarP(&o.format, "format", "f", string(export.FormatTXT), "combined export format: txt, csv, json or xlsx")
	f.BoolVar(&o.perFile, "per-file", false, "write one <name>_transcription.txt per file instead of a combined export")
	f.BoolVar(&o.useMinio, "minio", false, "upload exports to the MinIO bucket from MINIO_* settings")
	f.BoolVar(&o.progress, "progress", false, "force progress bars even when output is not a terminal")
	return cmd
}

func run(cmd *cobra.Command, args []string, o *options) error {
	if len(args) == 0 && len(o.dirs) == 0 {
		return fmt.Errorf("no input: pass audio files or --dir")
	}
	format, err := export.ParseFormat(o.format)
	if err != nil {
		return err
	}

	settings, err := o.conn.LoadSettings()
	if err != nil {
		return err
	}
	if o.strict {
		settings.StrictFormatCheck = true
	}
	if o.outputDir != "" {
		settings.ExportDir = o.outputDir
	}
	if o.useMinio {
		settings.ExportSink = config.SinkMinio
	}

	logger, err := flags.Logger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var observers converter.Observers
	if converter.ShouldShowProgress(o.progress) {
		observers = append(observers, converter.NewProgressObserver(converter.ProgressConfig{
			Enabled: true,
			Writer:  cmd.ErrOrStderr(),
		}))
	}

	a, err := app.InitializeApp(settings, logger, observers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	queued, dropped, err := admit(a.Session, args, o)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Queued %d file(s), skipped %d unsupported\n", queued, dropped)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := a.Processor.Run(ctx, a.Session, converter.RunOptions{
		Model:   settings.Model,
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
	})
	// an interrupted run still reports and exports what finished
	if err != nil && !summary.Cancelled {
		return err
	}
	printReport(out, a.Session.Entries(), summary)

	results := a.Session.Results()
	if len(results) > 0 {
		if err := writeExports(context.WithoutCancel(ctx), out, settings, results, format, o.perFile); err != nil {
			logger.Error("export failed", zap.Error(err))
			return err
		}
	}

	if summary.Cancelled {
		return fmt.Errorf("interrupted before all files were processed")
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.Failed, summary.Total)
	}
	return nil
}

func admit(s *session.Session, args []string, o *options) (queued, dropped int, err error) {
	source := model.SourcePicker
	if o.dragDrop {
		source = model.SourceDragDrop
	}
	picked, err := pathFiles(args)
	if err != nil {
		return 0, 0, err
	}
	res := s.Admit(source, picked)
	queued, dropped = len(res.Admitted), res.Dropped

	for _, dir := range o.dirs {
		paths, err := files.CollectAudioFiles(dir)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
		found, err := pathFiles(paths)
		if err != nil {
			return 0, 0, err
		}
		res := s.Admit(model.SourceFolder, found)
		queued += len(res.Admitted)
		dropped += res.Dropped
	}
	return queued, dropped, nil
}

func pathFiles(paths []string) ([]model.AudioFile, error) {
	out := make([]model.AudioFile, 0, len(paths))
	for _, p := range paths {
		f, err := model.NewPathFile(p)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func printReport(out io.Writer, entries []model.FileEntry, summary converter.Summary) {
	for _, e := range entries {
		switch e.Status {
		case model.StatusCompleted:
			fmt.Fprintf(out, "  done     %s\n", e.File.Name)
		case model.StatusError:
			fmt.Fprintf(out, "  failed   %s: %s\n", e.File.Name, e.Error)
		default:
			fmt.Fprintf(out, "  %-8s %s\n", e.Status, e.File.Name)
		}
	}
	fmt.Fprintf(out, "Completed %d, failed %d of %d in %s\n",
		summary.Completed, summary.Failed, summary.Total, summary.Duration.Round(time.Millisecond))
	if left := lo.CountBy(entries, func(e model.FileEntry) bool { return !e.Status.IsTerminal() }); left > 0 {
		fmt.Fprintf(out, "%d file(s) not processed\n", left)
	}
}

func writeExports(ctx context.Context, out io.Writer, settings *config.Settings, results []model.ResultEntry, format export.Format, perFile bool) error {
	sink, err := app.NewArtifactWriter(ctx, settings)
	if err != nil {
		return err
	}

	var artifacts []export.Artifact
	if perFile {
		artifacts = lo.Map(results, func(r model.ResultEntry, _ int) export.Artifact {
			return export.ExportOne(r.FileName, r.Transcription)
		})
	} else {
		all, err := export.ExportAllAs(results, format)
		if err != nil {
			return err
		}
		artifacts = []export.Artifact{all}
	}

	for _, artifact := range artifacts {
		loc, err := sink.Write(ctx, artifact)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %s\n", loc.URL)
	}
	return nil
}
