package common

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// PatchEntry records one byte range rewritten in an EDID document, for
// example a serial number replaced by the anonymizer.
type PatchEntry struct {
	Field     string    `json:"field"`
	Ref       string    `json:"ref,omitempty"`
	Block     int       `json:"block"`
	Offset    int64     `json:"offset"`
	BeforeHex string    `json:"beforeHex"`
	AfterHex  string    `json:"afterHex"`
	Ts        time.Time `json:"ts"`
}

// BeforeBytes decodes the bytes present before the patch.
func (p PatchEntry) BeforeBytes() ([]byte, error) {
	if strings.TrimSpace(p.BeforeHex) == "" {
		return nil, nil
	}
	return hex.DecodeString(p.BeforeHex)
}

// AfterBytes decodes the bytes written by the patch.
func (p PatchEntry) AfterBytes() ([]byte, error) {
	if strings.TrimSpace(p.AfterHex) == "" {
		return nil, nil
	}
	return hex.DecodeString(p.AfterHex)
}

// PatchLog provides append-only access to a JSONL patch log.
type PatchLog struct {
	path string
	mu   sync.Mutex
}

// NewPatchLog returns a PatchLog that writes to the provided path.
func NewPatchLog(path string) *PatchLog {
	return &PatchLog{path: path}
}

// Path returns the backing file path for the log.
func (p *PatchLog) Path() string {
	if p == nil {
		return ""
	}
	return p.path
}

// Append writes entries to the log, one JSON object per line.
func (p *PatchLog) Append(entries ...PatchEntry) error {
	if p == nil {
		return errors.New("nil patch log")
	}
	var buf []byte
	for _, entry := range entries {
		if entry.Field == "" {
			return errors.New("patch entry missing field")
		}
		if entry.Ts.IsZero() {
			entry.Ts = time.Now().UTC()
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		buf = append(append(buf, data...), '\n')
	}
	dir := filepath.Dir(p.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	f, err := os.OpenFile(p.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(buf); err != nil {
		return err
	}
	return f.Sync()
}

// ReadPatchLog loads every entry from the supplied JSONL file.
func ReadPatchLog(path string) ([]PatchEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	var entries []PatchEntry
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry PatchEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("decode patch entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Revert restores the bytes recorded in entries, newest first. It returns
// the number of entries whose after-bytes did not match data; those are
// reverted regardless.
func Revert(data []byte, entries []PatchEntry) (int, error) {
	mismatches := 0
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		before, err := e.BeforeBytes()
		if err != nil {
			return mismatches, fmt.Errorf("entry %d: %w", i, err)
		}
		after, err := e.AfterBytes()
		if err != nil {
			return mismatches, fmt.Errorf("entry %d: %w", i, err)
		}
		end := e.Offset + int64(len(before))
		if e.Offset < 0 || end > int64(len(data)) {
			return mismatches, fmt.Errorf("entry %d: range %d-%d outside %d bytes", i, e.Offset, end, len(data))
		}
		if len(after) != len(before) || string(data[e.Offset:end]) != string(after) {
			mismatches++
		}
		copy(data[e.Offset:end], before)
	}
	return mismatches, nil
}
