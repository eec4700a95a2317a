package converter

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"batch-whisper/internal/app/model"
)

type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

type ProgressManager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

type ProgressBar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewProgressManager(config ProgressConfig) *ProgressManager {
	if !config.Enabled {
		return &ProgressManager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	return &ProgressManager{
		container: container,
		enabled:   true,
	}
}

// CreateBar adds a counter bar, e.g. files done out of the batch.
func (pm *ProgressManager) CreateBar(total int, description string) *ProgressBar {
	if !pm.enabled || pm.container == nil {
		return &ProgressBar{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	bar := pm.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " ✓ ",
			),
		),
	)

	return &ProgressBar{
		bar:     bar,
		enabled: true,
	}
}

// CreatePercentBar adds a 0..100 bar for one file that is removed from the
// display once finished.
func (pm *ProgressManager) CreatePercentBar(name string) *ProgressBar {
	if !pm.enabled || pm.container == nil {
		return &ProgressBar{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	bar := pm.container.AddBar(100,
		mpb.BarRemoveOnComplete(),
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncSpace),
		),
	)

	return &ProgressBar{
		bar:     bar,
		enabled: true,
	}
}

func (pb *ProgressBar) Increment() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Increment()
	}
}

// SetCurrent moves the bar forward; lower values are ignored.
func (pb *ProgressBar) SetCurrent(current int64) {
	if pb.enabled && pb.bar != nil && current > pb.bar.Current() {
		pb.bar.SetCurrent(current)
	}
}

func (pb *ProgressBar) SetTotal(total int64) {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetTotal(total, false)
	}
}

func (pb *ProgressBar) Complete() {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetTotal(pb.bar.Current(), true)
	}
}

// Abort drops the bar from the display without completing it.
func (pb *ProgressBar) Abort() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Abort(true)
	}
}

func (pm *ProgressManager) Wait() {
	if pm.enabled && pm.container != nil {
		pm.container.Wait()
	}
}

func (pm *ProgressManager) Shutdown() {
	if pm.enabled && pm.container != nil {
		pm.container.Shutdown()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr) || IsTTY(os.Stdout)
}

// ProgressObserver renders a batch as terminal progress bars: one counter for
// the batch and one percentage bar for the file in flight.
type ProgressObserver struct {
	config  ProgressConfig
	manager *ProgressManager

	mu      sync.Mutex
	overall *ProgressBar
	current *ProgressBar
	fileID  string
}

// NewProgressObserver creates an observer. A disabled config yields an
// observer that draws nothing.
func NewProgressObserver(config ProgressConfig) *ProgressObserver {
	return &ProgressObserver{config: config}
}

func (o *ProgressObserver) OnBatchStart(total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	// an mpb container cannot be reused after Wait
	o.manager = NewProgressManager(ProgressConfig{Enabled: o.config.Enabled && total > 0, Writer: o.config.Writer})
	o.overall = o.manager.CreateBar(total, "Transcribing")
}

func (o *ProgressObserver) OnFileStart(entry model.FileEntry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.manager == nil {
		return
	}
	o.current = o.manager.CreatePercentBar(entry.File.Name)
	o.fileID = entry.ID
	o.current.SetCurrent(int64(entry.Progress))
}

func (o *ProgressObserver) OnFileProgress(id string, progress int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != nil && o.fileID == id {
		o.current.SetCurrent(int64(progress))
	}
}

func (o *ProgressObserver) OnFileDone(entry model.FileEntry, err error, discarded bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != nil {
		if err != nil || discarded {
			o.current.Abort()
		} else {
			o.current.SetCurrent(100)
			o.current.Complete()
		}
		o.current = nil
	}
	if o.overall != nil {
		o.overall.Increment()
	}
}

func (o *ProgressObserver) OnBatchDone(Summary) {
	o.mu.Lock()
	if o.overall != nil {
		o.overall.Complete()
	}
	if o.current != nil {
		o.current.Abort()
		o.current = nil
	}
	manager := o.manager
	o.mu.Unlock()
	if manager != nil {
		manager.Wait()
	}
}
