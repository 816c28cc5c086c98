package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"

	"example.com/edidgate/internal/common"
	"example.com/edidgate/internal/diag"
	"example.com/edidgate/internal/edid"
	"example.com/edidgate/internal/manifest"
	"example.com/edidgate/internal/report"
)

// maxEDIDBytes bounds raw decode bodies: 256 blocks as hex text with
// generous whitespace.
const maxEDIDBytes = 256 * 128 * 4

// maxUploadBytes bounds a whole /upload form.
const maxUploadBytes = 16 * maxEDIDBytes

type decodeRequest struct {
	Input     string  `json:"input"`
	Anonymize bool    `json:"anonymize"`
	Diagonal  float64 `json:"diagonal"`
	Lang      string  `json:"lang"`
}

type decodeResponse struct {
	Verdict          string                `json:"verdict"`
	Acceptance       diag.AcceptanceReport `json:"acceptance"`
	Diagnostics      int                   `json:"diagnostics"`
	Report           string                `json:"report"`
	PreferredTimings []TimingView          `json:"preferredTimings,omitempty"`
	Native           []edid.Resolution     `json:"native,omitempty"`
	Artifacts        []ArtifactRef         `json:"artifacts"`
}

// readDecodeRequest accepts either a JSON request naming an uploaded
// artifact or the EDID itself as the body, binary or hex text. For a raw
// body the options come from the query string.
func (s *Server) readDecodeRequest(r *http.Request) (decodeRequest, []byte, error) {
	var req decodeRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, nil, fmt.Errorf("invalid json: %v", err)
		}
		if strings.TrimSpace(req.Input) == "" {
			return req, nil, errors.New("input required")
		}
		path, err := s.resolvePath(req.Input)
		if err != nil {
			return req, nil, fmt.Errorf("input resolve: %v", err)
		}
		data, err := edid.ReadFile(path)
		return req, data, err
	}

	q := r.URL.Query()
	if v := q.Get("anonymize"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, nil, fmt.Errorf("anonymize: %v", err)
		}
		req.Anonymize = b
	}
	if v := q.Get("diagonal"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, nil, fmt.Errorf("diagonal: %v", err)
		}
		req.Diagonal = f
	}
	req.Lang = q.Get("lang")
	req.Input = q.Get("name")
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEDIDBytes+1))
	if err != nil {
		return req, nil, err
	}
	if len(body) > maxEDIDBytes {
		return req, nil, errors.New("body too large")
	}
	data, err := edid.ParseInput(body)
	return req, data, err
}

type uploadRef struct {
	ArtifactRef
	Blocks int `json:"blocks"`
}

// handleUpload stores every file of a multipart form as an EDID artifact
// that later /decode and /manifest requests can name by ID. Hex text is
// stored as binary. A file that is not an EDID rejects the whole form.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.metrics.AddRejected()
		http.Error(w, fmt.Sprintf("parse multipart: %v", err), http.StatusBadRequest)
		return
	}
	var parsed [][]byte
	var names []string
	for _, files := range r.MultipartForm.File {
		for _, fh := range files {
			data, err := readUploadedEDID(fh)
			if err != nil {
				s.metrics.AddRejected()
				http.Error(w, fmt.Sprintf("%s: %v", fh.Filename, err), http.StatusBadRequest)
				return
			}
			parsed = append(parsed, data)
			names = append(names, fh.Filename)
		}
	}
	if len(parsed) == 0 {
		s.metrics.AddRejected()
		http.Error(w, "no files uploaded", http.StatusBadRequest)
		return
	}
	refs := make([]uploadRef, 0, len(parsed))
	for i, data := range parsed {
		art, err := s.storeUpload(data, names[i])
		if err != nil {
			http.Error(w, fmt.Sprintf("store %s: %v", names[i], err), http.StatusInternalServerError)
			return
		}
		refs = append(refs, uploadRef{ArtifactRef: toRef(art), Blocks: len(data) / 128})
	}
	writeJSON(w, http.StatusOK, struct {
		Files []uploadRef `json:"files"`
	}{Files: refs})
}

func readUploadedEDID(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > maxEDIDBytes {
		return nil, fmt.Errorf("file too large (%d bytes)", fh.Size)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := edid.ReadInput(f)
	if err != nil {
		return nil, err
	}
	if err := edid.CheckLayout(data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stream := r.URL.Query().Get("stream") == "true"
	req, data, err := s.readDecodeRequest(r)
	if err != nil {
		s.metrics.AddRejected()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lang := s.lang
	if req.Lang != "" {
		if lang, err = report.ParseLanguage(req.Lang); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.Diagonal < 0 {
		http.Error(w, "diagonal must not be negative", http.StatusBadRequest)
		return
	}

	opts := edid.Options{
		File:      req.Input,
		Anonymize: req.Anonymize,
		Diagonal:  req.Diagonal,
		Now:       s.now,
	}
	var writer *NDJSONWriter
	if stream {
		writer = NewNDJSONWriter(w)
		opts.Sink = writer.WriteDiagnostic
		w.Header().Set("Content-Type", "application/x-ndjson")
	}
	res, err := edid.Decode(data, opts)
	if err != nil {
		// Length and header errors are raised before any diagnostic is
		// streamed, so a plain error response is still possible.
		s.metrics.AddRejected()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.metrics.AddDecode(int64(len(res.Data)), res.Log.Failures(), res.Log.Warnings())
	s.logPatches(res, req.Input)

	rep := res.Acceptance()
	arts, err := s.publish(res, rep, lang)
	if stream {
		if err != nil {
			_ = writer.WriteObject(map[string]any{"type": "error", "error": err.Error()})
			return
		}
		if err := writer.Err(); err != nil {
			common.Logf("decode stream: %v", err)
			return
		}
		summary := struct {
			Type       string                `json:"type"`
			Verdict    string                `json:"verdict"`
			Acceptance diag.AcceptanceReport `json:"acceptance"`
			Artifacts  []ArtifactRef         `json:"artifacts"`
			Total      int                   `json:"diagnostics"`
		}{
			Type:       "acceptance",
			Verdict:    res.Verdict(),
			Acceptance: rep,
			Artifacts:  arts,
			Total:      len(res.Log.Diagnostics()),
		}
		_ = writer.WriteObject(summary)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := decodeResponse{
		Verdict:     res.Verdict(),
		Acceptance:  rep,
		Diagnostics: len(res.Log.Diagnostics()),
		Report:      res.Report(),
		Native:      res.Native,
		Artifacts:   arts,
	}
	for _, e := range res.PreferredTimings {
		resp.PreferredTimings = append(resp.PreferredTimings, newTimingView(e.T, e.Type, e.Flags))
	}
	writeJSON(w, http.StatusOK, resp)
}

// publish stores the diagnostics, the acceptance report in JSON and PDF
// form, the listing and, for anonymized decodes, the rewritten EDID.
func (s *Server) publish(res *edid.Result, rep diag.AcceptanceReport, lang report.Language) ([]ArtifactRef, error) {
	var refs []ArtifactRef

	diagPath, err := s.tempPath("diagnostics-*.ndjson")
	if err != nil {
		return nil, fmt.Errorf("diagnostics temp: %w", err)
	}
	if err := res.Log.WriteDiagnosticsNDJSON(diagPath); err != nil {
		return nil, fmt.Errorf("write diagnostics: %w", err)
	}
	art, err := s.addArtifact(diagPath, "diagnostics.ndjson", "application/x-ndjson", "diagnostics")
	if err != nil {
		return nil, fmt.Errorf("register diagnostics: %w", err)
	}
	refs = append(refs, toRef(art))

	accPath, err := s.tempPath("acceptance-*.json")
	if err != nil {
		return nil, fmt.Errorf("acceptance temp: %w", err)
	}
	if err := report.SaveAcceptanceJSON(rep, accPath); err != nil {
		return nil, fmt.Errorf("write acceptance: %w", err)
	}
	if art, err = s.addArtifact(accPath, "acceptance_report.json", "application/json", "acceptance"); err != nil {
		return nil, fmt.Errorf("register acceptance: %w", err)
	}
	refs = append(refs, toRef(art))

	pdfPath, err := s.tempPath("acceptance-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("acceptance pdf temp: %w", err)
	}
	if err := report.SaveAcceptancePDF(rep, pdfPath, report.PDFOptions{Lang: lang, Now: s.now}); err != nil {
		return nil, fmt.Errorf("write acceptance pdf: %w", err)
	}
	if art, err = s.addArtifact(pdfPath, "acceptance_report.pdf", "application/pdf", "acceptance"); err != nil {
		return nil, fmt.Errorf("register acceptance pdf: %w", err)
	}
	refs = append(refs, toRef(art))

	if art, err = s.writeArtifact([]byte(res.Report()), "listing-*.txt", "listing.txt", "listing"); err != nil {
		return nil, fmt.Errorf("write listing: %w", err)
	}
	refs = append(refs, toRef(art))

	if len(res.Patches) > 0 {
		if art, err = s.writeArtifact(res.Data, "anonymized-*.bin", "anonymized.bin", "edid"); err != nil {
			return nil, fmt.Errorf("write anonymized edid: %w", err)
		}
		refs = append(refs, toRef(art))
	}
	return refs, nil
}

func (s *Server) logPatches(res *edid.Result, ref string) {
	if s.patchLog == nil || len(res.Patches) == 0 {
		return
	}
	if ref == "" {
		ref = common.HashBytes(res.Data)
	}
	if err := s.patchLog.Append(res.PatchEntries(ref, s.now())...); err != nil {
		common.Logf("patch log %s: %v", s.patchLog.Path(), err)
	}
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Inputs  []string `json:"inputs"`
		ShaAlgo string   `json:"shaAlgo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
		return
	}
	if len(req.Inputs) == 0 {
		http.Error(w, "inputs required", http.StatusBadRequest)
		return
	}
	if req.ShaAlgo != "" && !strings.EqualFold(req.ShaAlgo, "sha256") {
		http.Error(w, "only sha256 supported", http.StatusBadRequest)
		return
	}
	var paths []string
	for _, in := range req.Inputs {
		resolved, err := s.resolvePath(in)
		if err != nil {
			http.Error(w, fmt.Sprintf("resolve %s: %v", in, err), http.StatusBadRequest)
			return
		}
		paths = append(paths, resolved)
	}
	m, err := manifest.Build(paths)
	if err != nil {
		http.Error(w, fmt.Sprintf("build manifest: %v", err), http.StatusInternalServerError)
		return
	}
	outPath, err := s.tempPath("manifest-*.json")
	if err != nil {
		http.Error(w, fmt.Sprintf("manifest temp: %v", err), http.StatusInternalServerError)
		return
	}
	if err := manifest.Save(m, outPath); err != nil {
		http.Error(w, fmt.Sprintf("write manifest: %v", err), http.StatusInternalServerError)
		return
	}
	art, err := s.addArtifact(outPath, "manifest.json", "application/json", "manifest")
	if err != nil {
		http.Error(w, fmt.Sprintf("register manifest: %v", err), http.StatusInternalServerError)
		return
	}
	resp := struct {
		Manifest manifest.Manifest `json:"manifest"`
		Artifact ArtifactRef       `json:"artifact"`
	}{
		Manifest: m,
		Artifact: toRef(art),
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleArtifacts lists the artifacts on /artifacts and serves one on
// /artifacts/{id}.
func (s *Server) handleArtifacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/artifacts"), "/")
	if id == "" {
		writeJSON(w, http.StatusOK, s.listArtifacts())
		return
	}
	art, ok := s.getArtifact(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := os.Open(art.Path)
	if err != nil {
		http.Error(w, fmt.Sprintf("open artifact: %v", err), http.StatusInternalServerError)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, fmt.Sprintf("stat artifact: %v", err), http.StatusInternalServerError)
		return
	}
	if art.ContentType != "" {
		w.Header().Set("Content-Type", art.ContentType)
	}
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Name))
	io.Copy(w, f)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	if err := s.metrics.Snapshot().WriteText(w); err != nil {
		common.Logf("metrics: %v", err)
	}
}
