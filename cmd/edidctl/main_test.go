package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"example.com/edidgate/internal/diag"
	"example.com/edidgate/internal/edid"
)

func sampleEDID() []byte {
	x := make([]byte, 128)
	copy(x, []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00})
	x[0x08], x[0x09] = 0x10, 0xac
	x[0x0a], x[0x0b] = 0x34, 0x12
	x[0x0c], x[0x0d], x[0x0e], x[0x0f] = 0x01, 0x02, 0x03, 0x04
	x[0x10], x[0x11] = 12, 31
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
	copy(x[0x5a:], []byte{0, 0, 0, 0xfc, 0, 'C', 'L', 'I', '\n', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '})
	copy(x[0x6c:], []byte{0, 0, 0, 0x10})
	edid.ReplaceChecksum(x)
	return x
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	if err != nil && !errors.Is(err, errNonConforming) {
		t.Fatalf("edidctl %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String(), err
}

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, sampleEDID(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestCalcCommands(t *testing.T) {
	cases := []struct {
		args []string
		want []string
	}{
		{[]string{"cvt", "1920", "1080", "60"}, []string{"CVT:  1920x1080", "173.000000 MHz", "Hsync 200"}},
		{[]string{"cvt", "1920", "1080", "60", "--rb", "1"}, []string{"138.500000 MHz", "RB"}},
		{[]string{"gtf", "1920", "1080", "60"}, []string{"GTF:  1920x1080"}},
		{[]string{"ovt", "3840", "2160", "60"}, []string{"OVT:  3840x2160"}},
	}
	for _, tc := range cases {
		out, _ := run(t, tc.args...)
		for _, w := range tc.want {
			if !strings.Contains(out, w) {
				t.Fatalf("%v: missing %q in\n%s", tc.args, w, out)
			}
		}
	}
}

func TestCalcRejectsBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"cvt", "0", "1080", "60"},
		{"cvt", "1920", "1080", "60", "--rb", "5"},
		{"gtf", "1920", "1080", "60", "--param", "nope"},
		{"ovt", "3840", "2160", "59.94"},
	} {
		root := newRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(args)
		if err := root.Execute(); err == nil {
			t.Fatalf("%v: expected an error", args)
		}
	}
}

func TestListCommand(t *testing.T) {
	out, _ := run(t, "list", "vics")
	if !strings.Contains(out, "VIC   1:") {
		t.Fatalf("vic listing:\n%s", out)
	}
	out, _ = run(t, "list", "rid-timings", "1")
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.HasPrefix(line, "RID 1:") {
			t.Fatalf("unexpected line %q", line)
		}
	}
}

func TestDecodeWritesReports(t *testing.T) {
	dir := t.TempDir()
	in := writeSample(t, dir, "panel.bin")
	acc := filepath.Join(dir, "acc.json")
	diags := filepath.Join(dir, "diag.ndjson")
	out, err := run(t, "decode", in, "--out", diags, "--acceptance", acc)
	verdict := "PASS"
	if err != nil {
		verdict = "FAIL"
	}
	if !strings.Contains(out, "EDID conformity: "+verdict) {
		t.Fatalf("verdict %s not in\n%s", verdict, out)
	}
	data, readErr := os.ReadFile(acc)
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	var rep diag.AcceptanceReport
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if rep.File != "panel.bin" || rep.Summary.Pass != (verdict == "PASS") {
		t.Fatalf("acceptance %+v", rep)
	}

	pdf := filepath.Join(dir, "acc.pdf")
	run(t, "report", "--acceptance", acc, "--pdf", pdf, "--lang", "tr")
	head, readErr := os.ReadFile(pdf)
	if readErr != nil || !bytes.HasPrefix(head, []byte("%PDF-")) {
		t.Fatalf("pdf: %v", readErr)
	}

	quiet, _ := run(t, "decode", in, "--quiet")
	if strings.TrimSpace(quiet) != "EDID conformity: "+verdict {
		t.Fatalf("quiet output %q", quiet)
	}
}

func TestAnonymizeAndUndo(t *testing.T) {
	dir := t.TempDir()
	in := writeSample(t, dir, "panel.bin")
	anon := filepath.Join(dir, "anon.bin")
	plog := filepath.Join(dir, "patches.jsonl")
	run(t, "decode", in, "--anonymize", "--patch-log", plog, "--write-anonymized", anon, "--quiet")

	anonData, err := os.ReadFile(anon)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if bytes.Equal(anonData, sampleEDID()) {
		t.Fatalf("anonymized EDID equals the input")
	}
	restored := filepath.Join(dir, "restored.bin")
	out, _ := run(t, "undo", "--in", anon, "--patch-log", plog, "--out", restored, "--ref", "panel.bin")
	if strings.Contains(out, "Warning") {
		t.Fatalf("undo reported mismatches:\n%s", out)
	}
	got, err := os.ReadFile(restored)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, sampleEDID()) {
		t.Fatalf("restored EDID differs from the input")
	}
}

func TestBatchAndManifest(t *testing.T) {
	root := t.TempDir()
	inDir := filepath.Join(root, "in")
	if err := os.MkdirAll(filepath.Join(inDir, "nested"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	writeSample(t, inDir, "alpha.bin")
	writeSample(t, filepath.Join(inDir, "nested"), "beta.edid")
	if err := os.WriteFile(filepath.Join(inDir, "broken.bin"), []byte("not an edid"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	outDir := filepath.Join(root, "out")

	out, err := run(t, "batch", inDir, "--out-dir", outDir, "--manifest", "--concurrency", "2")
	if err == nil {
		t.Fatalf("a broken input must fail the batch")
	}
	for _, want := range []string{"alpha.bin", filepath.Join("nested", "beta.edid"), "broken.bin", "Decoded 2 of 3 file(s)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
	for _, name := range []string{"alpha.acceptance.json", "nested_beta.diagnostics.ndjson", "nested_beta.txt", "manifest.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("output %s: %v", name, err)
		}
	}

	man := filepath.Join(root, "manifest.json")
	out, _ = run(t, "manifest", "--inputs", filepath.Join(inDir, "alpha.bin")+","+filepath.Join(outDir, "alpha.acceptance.json"), "--out", man)
	if !strings.Contains(out, "2 item(s)") {
		t.Fatalf("manifest output %q", out)
	}
}
