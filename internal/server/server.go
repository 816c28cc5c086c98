package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"example.com/edidgate/internal/common"
	"example.com/edidgate/internal/report"
)

// Server coordinates HTTP handlers and keeps the artifacts produced by
// decode requests available for download.
type Server struct {
	artifacts  *ArtifactStore
	workDir    string
	uploadsDir string
	lang       report.Language
	metrics    *common.Metrics
	patchLog   *common.PatchLog
	now        func() time.Time
}

// Options configures server creation.
type Options struct {
	StorageDir string
	// Lang is the default language of PDF reports.
	Lang report.Language
	// Metrics receives the decode counters served on /metrics. A fresh
	// set is created when nil.
	Metrics *common.Metrics
	// PatchLog, if set, records the bytes changed by anonymizing decodes.
	PatchLog *common.PatchLog
	Now      func() time.Time
}

// Artifact represents a file generated or stored by the daemon.
type Artifact struct {
	ID          string
	Path        string
	Name        string
	ContentType string
	Size        int64
	Kind        string
}

// ArtifactRef is the public representation returned in API responses.
type ArtifactRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Kind        string `json:"kind,omitempty"`
}

// ArtifactStore keeps track of generated artifacts for later download.
type ArtifactStore struct {
	mu      sync.RWMutex
	entries map[string]Artifact
}

// NewServer constructs a Server rooted at a temporary workspace directory
// below opts.StorageDir.
func NewServer(opts Options) (*Server, error) {
	storageDir := opts.StorageDir
	if storageDir == "" {
		storageDir = os.TempDir()
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, err
	}
	workDir, err := os.MkdirTemp(storageDir, "edidd-")
	if err != nil {
		return nil, err
	}
	uploadsDir := filepath.Join(workDir, "uploads")
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		os.RemoveAll(workDir)
		return nil, err
	}
	lang := opts.Lang
	if lang == "" {
		lang = report.LangEnglish
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = common.NewMetrics()
	}
	metrics.Start()
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Server{
		artifacts:  &ArtifactStore{entries: make(map[string]Artifact)},
		workDir:    workDir,
		uploadsDir: uploadsDir,
		lang:       lang,
		metrics:    metrics,
		patchLog:   opts.PatchLog,
		now:        now,
	}, nil
}

// Close removes any temporary state associated with the server.
func (s *Server) Close() error {
	if s == nil || s.workDir == "" {
		return nil
	}
	s.metrics.Stop()
	return os.RemoveAll(s.workDir)
}

func (s *Server) tempPath(pattern string) (string, error) {
	f, err := os.CreateTemp(s.workDir, pattern)
	if err != nil {
		return "", err
	}
	name := f.Name()
	f.Close()
	return name, nil
}

func (s *Server) addArtifact(path, displayName, contentType, kind string) (Artifact, error) {
	if path == "" {
		return Artifact{}, errors.New("empty path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return Artifact{}, err
	}
	art := Artifact{
		ID:          randomID(),
		Path:        path,
		Name:        displayName,
		ContentType: contentType,
		Size:        info.Size(),
		Kind:        kind,
	}
	if art.Name == "" {
		art.Name = filepath.Base(path)
	}
	if art.ContentType == "" {
		art.ContentType = guessContentType(art.Name)
	}
	s.artifacts.mu.Lock()
	s.artifacts.entries[art.ID] = art
	s.artifacts.mu.Unlock()
	return art, nil
}

// writeArtifact stores data in a new artifact.
func (s *Server) writeArtifact(data []byte, pattern, displayName, kind string) (Artifact, error) {
	path, err := s.tempPath(pattern)
	if err != nil {
		return Artifact{}, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Artifact{}, err
	}
	return s.addArtifact(path, displayName, "", kind)
}

// storeUpload keeps the parsed binary form of an uploaded EDID in the
// uploads directory, whatever encoding the client sent.
func (s *Server) storeUpload(data []byte, name string) (Artifact, error) {
	f, err := os.CreateTemp(s.uploadsDir, "edid-*.bin")
	if err != nil {
		return Artifact{}, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return Artifact{}, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return Artifact{}, err
	}
	return s.addArtifact(f.Name(), name, "application/octet-stream", "upload")
}

func (s *Server) getArtifact(id string) (Artifact, bool) {
	s.artifacts.mu.RLock()
	art, ok := s.artifacts.entries[id]
	s.artifacts.mu.RUnlock()
	return art, ok
}

// resolvePath maps an artifact ID, or failing that a local path, to a file.
func (s *Server) resolvePath(token string) (string, error) {
	if token == "" {
		return "", errors.New("empty input path")
	}
	if art, ok := s.getArtifact(token); ok {
		return art.Path, nil
	}
	abs := filepath.Clean(token)
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return abs, nil
}

func (s *Server) listArtifacts() []ArtifactRef {
	s.artifacts.mu.RLock()
	refs := make([]ArtifactRef, 0, len(s.artifacts.entries))
	for _, art := range s.artifacts.entries {
		refs = append(refs, toRef(art))
	}
	s.artifacts.mu.RUnlock()
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}

func toRef(art Artifact) ArtifactRef {
	return ArtifactRef{
		ID:          art.ID,
		Name:        art.Name,
		ContentType: art.ContentType,
		Size:        art.Size,
		Kind:        art.Kind,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func guessContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "application/json"
	case ".jsonl", ".ndjson":
		return "application/x-ndjson"
	case ".pdf":
		return "application/pdf"
	case ".hex", ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

func randomID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		now := time.Now().UTC()
		return fmt.Sprintf("%d%06d", now.UnixNano(), os.Getpid())
	}
	return hex.EncodeToString(b[:])
}
