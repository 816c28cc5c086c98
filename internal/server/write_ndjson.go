package server

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"example.com/edidgate/internal/diag"
)

// NDJSONWriter streams newline-delimited JSON objects to the underlying writer.
type NDJSONWriter struct {
	mu      sync.Mutex
	writer  io.Writer
	flusher http.Flusher
	err     error
}

// NewNDJSONWriter wraps w. If w supports http.Flusher every record is
// flushed to the client as soon as it is written.
func NewNDJSONWriter(w http.ResponseWriter) *NDJSONWriter {
	var flusher http.Flusher
	if f, ok := w.(http.Flusher); ok {
		flusher = f
	}
	return &NDJSONWriter{writer: w, flusher: flusher}
}

// WriteDiagnostic writes d as one record. It has the signature of a
// decode sink; the first write error is kept and later records are
// dropped.
func (w *NDJSONWriter) WriteDiagnostic(d diag.Diagnostic) {
	w.mu.Lock()
	failed := w.err != nil
	w.mu.Unlock()
	if failed {
		return
	}
	if err := w.WriteObject(d); err != nil {
		w.mu.Lock()
		w.err = err
		w.mu.Unlock()
	}
}

// Err returns the first error seen by WriteDiagnostic.
func (w *NDJSONWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// WriteObject marshals v, writes it followed by a newline and flushes the
// response.
func (w *NDJSONWriter) WriteObject(v any) error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.writer.Write(data); err != nil {
		return err
	}
	if w.flusher != nil {
		w.flusher.Flush()
	}
	return nil
}
