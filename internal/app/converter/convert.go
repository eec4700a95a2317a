// Package converter drives batch runs: every pending entry of a session is
// sent through a Transcriber strictly one at a time.
package converter

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"batch-whisper/internal/app/api"
	"batch-whisper/internal/app/catalog"
	apperrors "batch-whisper/internal/app/errors"
	"batch-whisper/internal/app/model"
	"batch-whisper/internal/app/session"
)

const (
	// InitialProgress is set when an entry starts processing.
	InitialProgress = 10
	// UploadProgressCeiling caps progress derived from upload bytes.
	UploadProgressCeiling = 90
)

// RunOptions are the per-run inputs.
type RunOptions struct {
	Model   string `json:"model"`
	APIKey  string `json:"-"`
	BaseURL string `json:"base_url"`
}

// Summary describes a finished run.
type Summary struct {
	Total      int           `json:"total"`
	Completed  int           `json:"completed"`
	Failed     int           `json:"failed"`
	Discarded  int           `json:"discarded"`
	Skipped    int           `json:"skipped"`
	Cancelled  bool          `json:"cancelled"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration"`
}

// BatchProcessor is the only writer of session state during a run. At most one
// run is active per processor.
type BatchProcessor struct {
	transcriber api.Transcriber
	logger      *zap.Logger
	observer    Observer

	running atomic.Bool
	wg      sync.WaitGroup

	mu          sync.RWMutex
	lastSummary *Summary
}

// NewBatchProcessor creates a processor. observers may be empty.
func NewBatchProcessor(transcriber api.Transcriber, logger *zap.Logger, observers ...Observer) *BatchProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchProcessor{
		transcriber: transcriber,
		logger:      logger,
		observer:    Observers(observers),
	}
}

// Running reports whether a run is in progress.
func (p *BatchProcessor) Running() bool {
	return p.running.Load()
}

// LastSummary returns the summary of the most recent finished run.
func (p *BatchProcessor) LastSummary() (Summary, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.lastSummary == nil {
		return Summary{}, false
	}
	return *p.lastSummary, true
}

// Run processes every pending entry and blocks until done. Precondition
// failures return before any state change or network call. A cancelled ctx
// stops the run before the next entry; untouched entries stay pending.
func (p *BatchProcessor) Run(ctx context.Context, s *session.Session, opts RunOptions) (Summary, error) {
	opts, err := p.begin(s, opts)
	if err != nil {
		return Summary{}, err
	}
	return p.execute(ctx, s, opts)
}

// Start performs the precondition checks synchronously and runs the batch in
// the background. Use Wait to block until it finishes.
func (p *BatchProcessor) Start(ctx context.Context, s *session.Session, opts RunOptions) error {
	opts, err := p.begin(s, opts)
	if err != nil {
		return err
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if _, err := p.execute(ctx, s, opts); err != nil {
			p.logger.Warn("background batch stopped", zap.Error(err))
		}
	}()
	return nil
}

// Wait blocks until a run started with Start has finished.
func (p *BatchProcessor) Wait() {
	p.wg.Wait()
}

func (p *BatchProcessor) begin(s *session.Session, opts RunOptions) (RunOptions, error) {
	if s.Len() == 0 {
		return opts, apperrors.ErrNoFiles
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return opts, apperrors.ErrMissingAPIKey
	}
	if opts.Model == "" {
		opts.Model = catalog.DefaultModel
	}
	if !p.running.CompareAndSwap(false, true) {
		return opts, apperrors.ErrBatchInProgress
	}
	return opts, nil
}

func (p *BatchProcessor) execute(ctx context.Context, s *session.Session, opts RunOptions) (summary Summary, err error) {
	defer p.running.Store(false)

	ids := s.PendingIDs()
	summary = Summary{Total: len(ids), StartedAt: time.Now()}
	defer func() {
		summary.FinishedAt = time.Now()
		summary.Duration = summary.FinishedAt.Sub(summary.StartedAt)
		p.mu.Lock()
		p.lastSummary = &summary
		p.mu.Unlock()
		p.observer.OnBatchDone(summary)
		p.logger.Info("batch finished",
			zap.Int("total", summary.Total),
			zap.Int("completed", summary.Completed),
			zap.Int("failed", summary.Failed),
			zap.Int("discarded", summary.Discarded),
			zap.Int("skipped", summary.Skipped),
			zap.Bool("cancelled", summary.Cancelled),
			zap.Duration("duration", summary.Duration))
	}()

	p.observer.OnBatchStart(len(ids))
	p.logger.Info("batch started",
		zap.Int("pending", len(ids)),
		zap.String("model", opts.Model),
		zap.String("base_url", opts.BaseURL))

	for _, id := range ids {
		if ctxErr := ctx.Err(); ctxErr != nil {
			summary.Cancelled = true
			return summary, ctxErr
		}
		switch p.processOne(ctx, s, id, opts) {
		case outcomeCompleted:
			summary.Completed++
		case outcomeFailed:
			summary.Failed++
		case outcomeDiscarded:
			summary.Discarded++
		case outcomeSkipped:
			summary.Skipped++
		}
	}
	return summary, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeCompleted
	outcomeFailed
	outcomeDiscarded
)

func (p *BatchProcessor) processOne(ctx context.Context, s *session.Session, id string, opts RunOptions) outcome {
	entry, err := s.MarkProcessing(id, InitialProgress)
	if err != nil {
		// removed, or no longer pending, since the batch was selected
		p.logger.Debug("skipping entry", zap.String("id", id), zap.Error(err))
		return outcomeSkipped
	}

	log := p.logger.With(zap.String("id", id), zap.String("file", entry.File.Name))
	log.Info("transcribing", zap.Int64("size", entry.File.Size))
	p.observer.OnFileStart(entry)

	text, err := p.transcriber.Transcribe(ctx, api.Request{
		File:    entry.File,
		Model:   opts.Model,
		APIKey:  opts.APIKey,
		BaseURL: opts.BaseURL,
		OnProgress: func(sent, total int64) {
			progress := uploadProgress(sent, total)
			if s.SetProgress(id, progress) == nil {
				p.observer.OnFileProgress(id, progress)
			}
		},
	})

	if err != nil {
		failed, ferr := s.Fail(id, err.Error())
		if ferr != nil {
			log.Info("discarding failure for removed entry", zap.Error(err))
			p.observer.OnFileDone(entry, nil, true)
			return outcomeDiscarded
		}
		log.Warn("transcription failed", zap.Error(err))
		p.observer.OnFileDone(failed, err, false)
		return outcomeFailed
	}

	if _, cerr := s.Complete(id, text); cerr != nil {
		if errors.Is(cerr, apperrors.ErrEntryNotFound) {
			log.Info("discarding transcript for removed entry")
		} else {
			log.Error("failed to record transcript", zap.Error(cerr))
		}
		p.observer.OnFileDone(entry, nil, true)
		return outcomeDiscarded
	}

	done, _ := s.Get(id)
	log.Info("transcription completed", zap.Int("chars", len(text)))
	p.observer.OnFileDone(done, nil, false)
	return outcomeCompleted
}

// uploadProgress maps sent bytes into InitialProgress..UploadProgressCeiling.
func uploadProgress(sent, total int64) int {
	if total <= 0 {
		return InitialProgress
	}
	if sent > total {
		sent = total
	}
	span := int64(UploadProgressCeiling - InitialProgress)
	return InitialProgress + int(span*sent/total)
}

// Observer receives run events. Implementations must be safe for use from
// multiple goroutines; OnFileProgress may be called from the transport.
type Observer interface {
	OnBatchStart(total int)
	OnFileStart(entry model.FileEntry)
	OnFileProgress(id string, progress int)
	// OnFileDone receives err for failures and discarded=true when the entry
	// was removed while in flight.
	OnFileDone(entry model.FileEntry, err error, discarded bool)
	OnBatchDone(summary Summary)
}

// Observers fans events out to every member.
type Observers []Observer

func (o Observers) OnBatchStart(total int) {
	for _, obs := range o {
		obs.OnBatchStart(total)
	}
}

func (o Observers) OnFileStart(entry model.FileEntry) {
	for _, obs := range o {
		obs.OnFileStart(entry)
	}
}

func (o Observers) OnFileProgress(id string, progress int) {
	for _, obs := range o {
		obs.OnFileProgress(id, progress)
	}
}

func (o Observers) OnFileDone(entry model.FileEntry, err error, discarded bool) {
	for _, obs := range o {
		obs.OnFileDone(entry, err, discarded)
	}
}

func (o Observers) OnBatchDone(summary Summary) {
	for _, obs := range o {
		obs.OnBatchDone(summary)
	}
}
