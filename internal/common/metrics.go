package common

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Metrics counts decoded documents. It is safe for concurrent use.
type Metrics struct {
	mu        sync.Mutex
	start     time.Time
	end       time.Time
	bytes     int64
	documents int64
	passed    int64
	failures  int64
	warnings  int64
	rejected  int64
	total     int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Start() {
	m.mu.Lock()
	if m.start.IsZero() {
		m.start = time.Now()
		m.end = time.Time{}
	}
	m.mu.Unlock()
}

func (m *Metrics) Stop() {
	m.mu.Lock()
	if !m.start.IsZero() && m.end.IsZero() {
		m.end = time.Now()
	}
	m.mu.Unlock()
}

// AddDecode records one decoded document with its diagnostic counts.
func (m *Metrics) AddDecode(size int64, failures, warnings int) {
	m.mu.Lock()
	m.bytes += size
	m.documents++
	if failures == 0 {
		m.passed++
	}
	m.failures += int64(failures)
	m.warnings += int64(warnings)
	m.mu.Unlock()
}

// AddRejected records an input that was not a decodable EDID.
func (m *Metrics) AddRejected() {
	m.mu.Lock()
	m.rejected++
	m.mu.Unlock()
}

// SetTotal sets the number of documents expected, for progress reporting.
func (m *Metrics) SetTotal(n int64) {
	if n < 0 {
		n = 0
	}
	m.mu.Lock()
	m.total = n
	m.mu.Unlock()
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Duration:  m.elapsedLocked(),
		Bytes:     m.bytes,
		Documents: m.documents,
		Passed:    m.passed,
		Failures:  m.failures,
		Warnings:  m.warnings,
		Rejected:  m.rejected,
		Total:     m.total,
	}
}

func (m *Metrics) elapsedLocked() time.Duration {
	if m.start.IsZero() {
		return 0
	}
	if !m.end.IsZero() {
		return m.end.Sub(m.start)
	}
	return time.Since(m.start)
}

type MetricsSnapshot struct {
	Duration  time.Duration
	Bytes     int64
	Documents int64
	Passed    int64
	Failures  int64
	Warnings  int64
	Rejected  int64
	Total     int64
}

// Completion is the fraction of the expected documents handled so far.
func (s MetricsSnapshot) Completion() float64 {
	if s.Total <= 0 {
		return 0
	}
	ratio := float64(s.Documents+s.Rejected) / float64(s.Total)
	return min(max(ratio, 0), 1)
}

// WriteText renders the counters in the Prometheus text format.
func (s MetricsSnapshot) WriteText(w io.Writer) error {
	rows := []struct {
		name, help string
		value      int64
	}{
		{"edidgate_documents_total", "EDID documents decoded.", s.Documents},
		{"edidgate_documents_passed_total", "Decoded documents without conformance failures.", s.Passed},
		{"edidgate_documents_rejected_total", "Inputs rejected before decoding.", s.Rejected},
		{"edidgate_failures_total", "Conformance failures reported.", s.Failures},
		{"edidgate_warnings_total", "Conformance warnings reported.", s.Warnings},
		{"edidgate_bytes_total", "EDID bytes decoded.", s.Bytes},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", r.name, r.help, r.name, r.name, r.value); err != nil {
			return err
		}
	}
	return nil
}

func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div := float64(unit)
	exp := 0
	for n := float64(b) / div; n >= unit && exp < 6; n /= unit {
		div *= unit
		exp++
	}
	prefixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	return fmt.Sprintf("%.2f %s", float64(b)/div, prefixes[exp])
}

func formatProgressLine(s MetricsSnapshot) string {
	done := s.Documents + s.Rejected
	if s.Total > 0 {
		return fmt.Sprintf("Progress: %6.2f%% (%d / %d documents, %d failed, %s)",
			s.Completion()*100, done, s.Total, s.Documents-s.Passed, FormatBytes(s.Bytes))
	}
	return fmt.Sprintf("Processed: %d documents (%s)", done, FormatBytes(s.Bytes))
}

// StartProgressPrinter rewrites a progress line on w every interval until
// the returned stop function is called.
func StartProgressPrinter(w io.Writer, m *Metrics, interval time.Duration) func() {
	if m == nil || w == nil {
		return func() {}
	}
	if interval <= 0 {
		interval = time.Second
	}
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		lastLen := 0
		for {
			select {
			case <-ticker.C:
				line := formatProgressLine(m.Snapshot())
				pad := lastLen - len(line)
				if pad > 0 {
					line += strings.Repeat(" ", pad)
				}
				fmt.Fprintf(w, "\r%s", line)
				lastLen = len(line)
			case <-done:
				if lastLen > 0 {
					fmt.Fprintf(w, "\r%s\r\n", strings.Repeat(" ", lastLen))
				}
				return
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}
