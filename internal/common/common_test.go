package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPatchLogRoundTripAndRevert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "patches.jsonl")
	log := NewPatchLog(path)
	entries := []PatchEntry{
		{Field: "serial number", Block: 0, Offset: 2, BeforeHex: "0102", AfterHex: "aabb"},
		{Field: "checksum", Block: 0, Offset: 7, BeforeHex: "10", AfterHex: "20"},
	}
	if err := log.Append(entries...); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := ReadPatchLog(path)
	if err != nil {
		t.Fatalf("ReadPatchLog: %v", err)
	}
	if len(got) != 2 || got[0].Field != "serial number" || got[1].Ts.IsZero() {
		t.Fatalf("read back %+v", got)
	}

	data := []byte{0, 0, 0xaa, 0xbb, 0, 0, 0, 0x20}
	mismatches, err := Revert(data, got)
	if err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if mismatches != 0 {
		t.Fatalf("mismatches = %d", mismatches)
	}
	want := []byte{0, 0, 1, 2, 0, 0, 0, 0x10}
	if !bytes.Equal(data, want) {
		t.Fatalf("reverted % x, want % x", data, want)
	}
}

func TestRevertRejectsOutOfRange(t *testing.T) {
	_, err := Revert(make([]byte, 4), []PatchEntry{{Field: "x", Offset: 3, BeforeHex: "0102", AfterHex: "0304"}})
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestAppendRequiresField(t *testing.T) {
	log := NewPatchLog(filepath.Join(t.TempDir(), "p.jsonl"))
	if err := log.Append(PatchEntry{Offset: 1}); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestSha256OfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bin")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	sum, n, err := Sha256OfFile(path)
	if err != nil {
		t.Fatalf("Sha256OfFile: %v", err)
	}
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if sum != want || n != 3 || HashBytes([]byte("abc")) != want {
		t.Fatalf("got %s (%d bytes)", sum, n)
	}
}

func TestMetricsText(t *testing.T) {
	m := NewMetrics()
	m.SetTotal(3)
	m.AddDecode(256, 0, 2)
	m.AddDecode(128, 3, 0)
	m.AddRejected()
	snap := m.Snapshot()
	if snap.Completion() != 1 {
		t.Fatalf("completion = %v", snap.Completion())
	}
	var b strings.Builder
	if err := snap.WriteText(&b); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	for _, line := range []string{
		"edidgate_documents_total 2",
		"edidgate_documents_passed_total 1",
		"edidgate_documents_rejected_total 1",
		"edidgate_failures_total 3",
		"edidgate_bytes_total 384",
	} {
		if !strings.Contains(b.String(), line+"\n") {
			t.Fatalf("missing %q in\n%s", line, b.String())
		}
	}
}
