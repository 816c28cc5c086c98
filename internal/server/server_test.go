package server

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"example.com/edidgate/internal/common"
	"example.com/edidgate/internal/edid"
)

// testEDID returns a single block digital EDID 1.4 with a 1080p preferred
// timing and a serial number.
func testEDID() []byte {
	x := make([]byte, 128)
	copy(x, []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00})
	x[0x08], x[0x09] = 0x10, 0xac
	x[0x0a], x[0x0b] = 0x34, 0x12
	x[0x0c], x[0x0d], x[0x0e], x[0x0f] = 0x78, 0x56, 0x34, 0x12
	x[0x10], x[0x11] = 10, 30
	x[0x12], x[0x13] = 1, 4
	x[0x14] = 0xa5
	x[0x15], x[0x16] = 52, 29
	x[0x17] = 120
	x[0x18] = 0x06
	copy(x[0x19:], []byte{0xee, 0x91, 0xa3, 0x54, 0x4c, 0x99, 0x26, 0x0f, 0x50, 0x54})
	x[0x23] = 0x20
	for i := 0x26; i < 0x36; i++ {
		x[i] = 0x01
	}
	copy(x[0x36:], []byte{
		0x02, 0x3a, 0x80, 0x18, 0x71, 0x38, 0x2d, 0x40, 0x58,
		0x2c, 0x45, 0x00, 0x0f, 0x28, 0x21, 0x00, 0x00, 0x1e,
	})
	copy(x[0x48:], []byte{0, 0, 0, 0xfd, 0, 0x32, 0x4b, 0x1e, 0x53, 0x11, 0x00, 0x0a, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20})
	copy(x[0x5a:], []byte{0, 0, 0, 0xfc, 0, 'T', 'E', 'S', 'T', '\n', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '})
	copy(x[0x6c:], []byte{0, 0, 0, 0x10})
	edid.ReplaceChecksum(x)
	return x
}

func newTestServer(t *testing.T, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	if opts.StorageDir == "" {
		opts.StorageDir = t.TempDir()
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	}
	srv, err := NewServer(opts)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(NewRouter(srv))
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return srv, ts
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		t.Fatalf("status %d: %s", resp.StatusCode, msg)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestDecodeRawBody(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	resp, err := http.Post(ts.URL+"/decode", "application/octet-stream", bytes.NewReader(testEDID()))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	var got decodeResponse
	decodeBody(t, resp, &got)
	if got.Verdict != "PASS" && got.Verdict != "FAIL" {
		t.Fatalf("verdict %q", got.Verdict)
	}
	if got.Acceptance.Summary.Pass != (got.Verdict == "PASS") {
		t.Fatalf("acceptance %+v disagrees with verdict %s", got.Acceptance.Summary, got.Verdict)
	}
	if !strings.Contains(got.Report, "EDID conformity: "+got.Verdict) {
		t.Fatalf("report does not end in the verdict:\n%s", got.Report)
	}
	if got.Acceptance.Sha256 != common.HashBytes(testEDID()) {
		t.Fatalf("sha256 %s", got.Acceptance.Sha256)
	}
	kinds := map[string]int{}
	for _, a := range got.Artifacts {
		kinds[a.Kind]++
	}
	if kinds["diagnostics"] != 1 || kinds["acceptance"] != 2 || kinds["listing"] != 1 || kinds["edid"] != 0 {
		t.Fatalf("artifacts %+v", got.Artifacts)
	}
	if len(got.PreferredTimings) == 0 || got.PreferredTimings[0].HActive != 1920 {
		t.Fatalf("preferred timings %+v", got.PreferredTimings)
	}
}

func TestDecodeHexBodyAnonymized(t *testing.T) {
	dir := t.TempDir()
	plog := common.NewPatchLog(dir + "/patches.jsonl")
	_, ts := newTestServer(t, Options{PatchLog: plog})
	body := strings.NewReader(hex.EncodeToString(testEDID()))
	resp, err := http.Post(ts.URL+"/decode?anonymize=true&name=panel.hex", "text/plain", body)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	var got decodeResponse
	decodeBody(t, resp, &got)
	var anon *ArtifactRef
	for i := range got.Artifacts {
		if got.Artifacts[i].Kind == "edid" {
			anon = &got.Artifacts[i]
		}
	}
	if anon == nil || anon.Size != 128 {
		t.Fatalf("no anonymized edid in %+v", got.Artifacts)
	}
	if got.Acceptance.File != "panel.hex" {
		t.Fatalf("file %q", got.Acceptance.File)
	}

	entries, err := common.ReadPatchLog(plog.Path())
	if err != nil {
		t.Fatalf("ReadPatchLog: %v", err)
	}
	if len(entries) == 0 || entries[0].Ref != "panel.hex" {
		t.Fatalf("patch log %+v", entries)
	}

	dl, err := http.Get(ts.URL + "/artifacts/" + anon.ID)
	if err != nil {
		t.Fatalf("GET artifact: %v", err)
	}
	defer dl.Body.Close()
	data, _ := io.ReadAll(dl.Body)
	if _, err := common.Revert(data, entries); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if !bytes.Equal(data, testEDID()) {
		t.Fatalf("reverted download differs from the input")
	}
}

func TestDecodeStream(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	resp, err := http.Post(ts.URL+"/decode?stream=true", "application/octet-stream", bytes.NewReader(testEDID()))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/x-ndjson" {
		t.Fatalf("content type %q", ct)
	}
	var lines []map[string]any
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		var obj map[string]any
		if err := json.Unmarshal(sc.Bytes(), &obj); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		lines = append(lines, obj)
	}
	if len(lines) == 0 {
		t.Fatalf("empty stream")
	}
	last := lines[len(lines)-1]
	if last["type"] != "acceptance" {
		t.Fatalf("last record %v", last)
	}
	if n, _ := last["diagnostics"].(float64); int(n) != len(lines)-1 {
		t.Fatalf("summary counts %v diagnostics, streamed %d", last["diagnostics"], len(lines)-1)
	}
	for _, l := range lines[:len(lines)-1] {
		if _, ok := l["severity"]; !ok {
			t.Fatalf("diagnostic without severity: %v", l)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	srv, ts := newTestServer(t, Options{})
	cases := []struct {
		name string
		body []byte
	}{
		{"short", make([]byte, 100)},
		{"no header", make([]byte, 128)},
		{"odd hex", []byte("00ff0")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/decode", "application/octet-stream", bytes.NewReader(tc.body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status %d", resp.StatusCode)
			}
		})
	}
	if got := srv.metrics.Snapshot().Rejected; got != int64(len(cases)) {
		t.Fatalf("rejected = %d", got)
	}
}

func postUpload(t *testing.T, url, name string, data []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write(data)
	mw.Close()
	resp, err := http.Post(url+"/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	return resp
}

func uploadFile(t *testing.T, url, name string, data []byte) ArtifactRef {
	t.Helper()
	var got struct {
		Files []ArtifactRef `json:"files"`
	}
	decodeBody(t, postUpload(t, url, name, data), &got)
	if len(got.Files) != 1 {
		t.Fatalf("uploaded %+v", got.Files)
	}
	return got.Files[0]
}

func TestUploadStoresBinary(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	var got struct {
		Files []uploadRef `json:"files"`
	}
	hexText := hex.EncodeToString(testEDID()) + "\n"
	decodeBody(t, postUpload(t, ts.URL, "panel.hex", []byte(hexText)), &got)
	if len(got.Files) != 1 {
		t.Fatalf("uploaded %+v", got.Files)
	}
	ref := got.Files[0]
	if ref.Size != 128 || ref.Blocks != 1 || ref.Name != "panel.hex" {
		t.Fatalf("upload ref %+v", ref)
	}
	if ref.ContentType != "application/octet-stream" {
		t.Fatalf("content type %q", ref.ContentType)
	}
	resp, err := http.Get(ts.URL + "/artifacts/" + ref.ID)
	if err != nil {
		t.Fatalf("GET artifact: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !bytes.Equal(body, testEDID()) {
		t.Fatalf("stored upload is not the binary EDID")
	}
}

func TestUploadRejects(t *testing.T) {
	srv, ts := newTestServer(t, Options{})
	cases := []struct {
		name string
		data []byte
	}{
		{"short", make([]byte, 100)},
		{"no header", make([]byte, 128)},
		{"odd hex", []byte("00ff0")},
		{"too large", make([]byte, maxEDIDBytes+128)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postUpload(t, ts.URL, tc.name+".bin", tc.data)
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status %d", resp.StatusCode)
			}
		})
	}
	if got := srv.metrics.Snapshot().Rejected; got != int64(len(cases)) {
		t.Fatalf("rejected = %d", got)
	}
	resp, err := http.Get(ts.URL + "/artifacts")
	if err != nil {
		t.Fatalf("GET artifacts: %v", err)
	}
	var list []ArtifactRef
	decodeBody(t, resp, &list)
	if len(list) != 0 {
		t.Fatalf("rejected uploads stored: %+v", list)
	}
}

func TestUploadDecodeAndManifest(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	ref := uploadFile(t, ts.URL, "panel.bin", testEDID())
	if ref.Kind != "upload" || ref.Size != 128 {
		t.Fatalf("upload ref %+v", ref)
	}

	var dec decodeResponse
	decodeBody(t, postJSON(t, ts.URL+"/decode", map[string]any{"input": ref.ID, "lang": "tr"}), &dec)
	if dec.Acceptance.File != ref.ID {
		t.Fatalf("file %q", dec.Acceptance.File)
	}

	var man struct {
		Manifest struct {
			Items []struct {
				Sha256 string `json:"sha256"`
				Type   string `json:"type"`
			} `json:"items"`
		} `json:"manifest"`
		Artifact ArtifactRef `json:"artifact"`
	}
	decodeBody(t, postJSON(t, ts.URL+"/manifest", map[string]any{"inputs": []string{ref.ID}}), &man)
	if len(man.Manifest.Items) != 1 || man.Manifest.Items[0].Sha256 != common.HashBytes(testEDID()) {
		t.Fatalf("manifest %+v", man.Manifest)
	}
	if man.Manifest.Items[0].Type != "edid" {
		t.Fatalf("type %q", man.Manifest.Items[0].Type)
	}

	resp, err := http.Get(ts.URL + "/artifacts")
	if err != nil {
		t.Fatalf("GET artifacts: %v", err)
	}
	var list []ArtifactRef
	decodeBody(t, resp, &list)
	// upload, four decode outputs and the manifest
	if len(list) != 6 {
		t.Fatalf("artifacts %+v", list)
	}
}

func TestDecodeUnknownLanguage(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	resp, err := http.Post(ts.URL+"/decode?lang=xx", "application/octet-stream", bytes.NewReader(testEDID()))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestCalcEndpoints(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	var cvt TimingView
	decodeBody(t, postJSON(t, ts.URL+"/calc/cvt", map[string]any{"width": 1920, "height": 1080, "refresh": 60}), &cvt)
	if cvt.PixelClockKHz != 173000 || cvt.HSync != 200 || !cvt.VSyncPositive || cvt.HSyncPositive {
		t.Fatalf("cvt %+v", cvt)
	}
	if !strings.HasPrefix(cvt.Line, "CVT:  1920x1080") {
		t.Fatalf("line %q", cvt.Line)
	}

	var rb TimingView
	decodeBody(t, postJSON(t, ts.URL+"/calc/cvt", map[string]any{"width": 1920, "height": 1080, "refresh": 60, "rb": 2}), &rb)
	if rb.PixelClockKHz != 133320 {
		t.Fatalf("cvt rbv2 %+v", rb)
	}

	var gtf TimingView
	decodeBody(t, postJSON(t, ts.URL+"/calc/gtf", map[string]any{"width": 1920, "height": 1080, "freq": 60}), &gtf)
	if gtf.HActive != 1920 || gtf.PixelClockKHz == 0 {
		t.Fatalf("gtf %+v", gtf)
	}

	var ovt TimingView
	decodeBody(t, postJSON(t, ts.URL+"/calc/ovt", map[string]any{"width": 3840, "height": 2160, "refresh": 60}), &ovt)
	if ovt.HActive != 3840 || ovt.VActive != 2160 || ovt.PixelClockKHz == 0 {
		t.Fatalf("ovt %+v", ovt)
	}

	for _, tc := range []struct {
		path    string
		payload map[string]any
		status  int
	}{
		{"/calc/cvt", map[string]any{"width": 0, "height": 1080, "refresh": 60}, http.StatusBadRequest},
		{"/calc/cvt", map[string]any{"width": 1920, "height": 1080, "refresh": 60, "rb": 7}, http.StatusBadRequest},
		{"/calc/gtf", map[string]any{"width": 1920, "height": 1080, "freq": 60, "param": "bogus"}, http.StatusBadRequest},
		{"/calc/dmt", map[string]any{}, http.StatusNotFound},
	} {
		resp := postJSON(t, ts.URL+tc.path, tc.payload)
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Fatalf("%s %v: status %d, want %d", tc.path, tc.payload, resp.StatusCode, tc.status)
		}
	}
}

func TestMetrics(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	resp, err := http.Post(ts.URL+"/decode", "application/octet-stream", bytes.NewReader(testEDID()))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	m, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer m.Body.Close()
	text, _ := io.ReadAll(m.Body)
	for _, want := range []string{"edidgate_documents_total 1\n", "edidgate_bytes_total 128\n"} {
		if !strings.Contains(string(text), want) {
			t.Fatalf("missing %q in\n%s", want, text)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	for _, path := range []string{"/decode", "/upload", "/calc/cvt", "/manifest"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Fatalf("GET %s: status %d", path, resp.StatusCode)
		}
	}
}
