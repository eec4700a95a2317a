// Package metrics exports batch processing statistics to Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"batch-whisper/internal/app/converter"
	apperrors "batch-whisper/internal/app/errors"
	"batch-whisper/internal/app/model"
)

const namespace = "a2t"

// Collector is a converter.Observer backed by its own registry.
type Collector struct {
	registry *prometheus.Registry

	batches      prometheus.Counter
	batchRunning prometheus.Gauge
	files        *prometheus.CounterVec
	apiErrors    *prometheus.CounterVec
	fileDuration prometheus.Histogram
	uploadBytes  prometheus.Counter
	sessionFiles prometheus.Gauge

	mu      sync.Mutex
	started map[string]time.Time
}

// New creates a Collector with Go runtime and process collectors registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Batch runs started.",
		}),
		batchRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_running",
			Help:      "1 while a batch run is in progress.",
		}),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_processed_total",
			Help:      "Files processed, by outcome.",
		}, []string{"outcome"}),
		apiErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Non-success responses from the transcription endpoint, by HTTP status and server-side fault.",
		}, []string{"status", "retryable"}),
		fileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Time from processing start to outcome for one file.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_bytes_total",
			Help:      "Audio bytes submitted for transcription.",
		}),
		sessionFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_files",
			Help:      "Entries currently held by the session.",
		}),
		started: make(map[string]time.Time),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.batches, c.batchRunning, c.files, c.apiErrors, c.fileDuration, c.uploadBytes, c.sessionFiles,
	)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// SetSessionFiles records the session size.
func (c *Collector) SetSessionFiles(n int) {
	c.sessionFiles.Set(float64(n))
}

func (c *Collector) OnBatchStart(total int) {
	c.batches.Inc()
	c.batchRunning.Set(1)
}

func (c *Collector) OnFileStart(entry model.FileEntry) {
	c.uploadBytes.Add(float64(entry.File.Size))
	c.mu.Lock()
	c.started[entry.ID] = time.Now()
	c.mu.Unlock()
}

func (c *Collector) OnFileProgress(string, int) {}

func (c *Collector) OnFileDone(entry model.FileEntry, err error, discarded bool) {
	c.mu.Lock()
	start, ok := c.started[entry.ID]
	delete(c.started, entry.ID)
	c.mu.Unlock()
	if ok {
		c.fileDuration.Observe(time.Since(start).Seconds())
	}

	switch {
	case discarded:
		c.files.WithLabelValues("discarded").Inc()
	case err != nil:
		c.files.WithLabelValues("error").Inc()
		var apiErr *apperrors.APIError
		if errors.As(err, &apiErr) {
			c.apiErrors.WithLabelValues(strconv.Itoa(apiErr.StatusCode), strconv.FormatBool(apiErr.Retryable())).Inc()
		}
	default:
		c.files.WithLabelValues("completed").Inc()
	}
}

func (c *Collector) OnBatchDone(converter.Summary) {
	c.batchRunning.Set(0)
}

var _ converter.Observer = (*Collector)(nil)
