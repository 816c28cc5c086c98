package diag

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time { return time.Unix(1700000000, 0).UTC() }

func TestCountersAndVerdict(t *testing.T) {
	l := NewLog("edid.bin")
	l.SetClock(fixedClock)
	if !l.Pass() {
		t.Fatalf("empty log should pass")
	}
	prevF, prevW := 0, 0
	adds := []Diagnostic{
		{Block: 0, BlockName: "Base EDID", Severity: WARN, Message: "EDID 1.2 is deprecated, do not use.\n"},
		{Block: 1, BlockName: "CTA-861 Extension Block", DataBlock: "Video Data Block", Severity: ERROR, Message: "Empty Data Block"},
		{Block: GlobalBlock, Severity: WARN, Message: "No Native Video Resolution was defined."},
	}
	for _, d := range adds {
		l.Add(d)
		if l.Failures() < prevF || l.Warnings() < prevW {
			t.Fatalf("counters decreased")
		}
		prevF, prevW = l.Failures(), l.Warnings()
	}
	if l.Failures() != 1 || l.Warnings() != 2 {
		t.Fatalf("failures=%d warnings=%d", l.Failures(), l.Warnings())
	}
	if l.Pass() {
		t.Fatalf("log with a failure should not pass")
	}
	if got := l.Diagnostics()[0].Message; strings.HasSuffix(got, "\n") {
		t.Fatalf("trailing newline kept: %q", got)
	}
	if got := l.Diagnostics()[1].Text(); got != "Video Data Block: Empty Data Block" {
		t.Fatalf("Text = %q", got)
	}
}

func TestSection(t *testing.T) {
	l := NewLog("")
	l.Add(Diagnostic{Block: GlobalBlock, Severity: WARN, Message: "global"})
	l.Add(Diagnostic{Block: 1, BlockName: "CTA-861 Extension Block", Severity: WARN, Message: "second"})
	l.Add(Diagnostic{Block: 0, BlockName: "Base EDID", Severity: WARN, Message: "first"})
	l.Add(Diagnostic{Block: 0, BlockName: "Base EDID", Severity: ERROR, Message: "bad"})

	want := "\nWarnings:\n\n" +
		"Block 0, Base EDID:\n  first\n" +
		"Block 1, CTA-861 Extension Block:\n  second\n" +
		"EDID:\n  global\n"
	if got := l.Section(WARN); got != want {
		t.Fatalf("Section(WARN):\n%q\nwant\n%q", got, want)
	}
	if got := l.Section(ERROR); !strings.Contains(got, "Failures:") || !strings.Contains(got, "  bad\n") {
		t.Fatalf("Section(ERROR) = %q", got)
	}
	empty := NewLog("")
	if empty.Section(ERROR) != "" {
		t.Fatalf("empty section should render nothing")
	}
}

func TestSinkSeesEveryDiagnostic(t *testing.T) {
	l := NewLog("")
	var seen []string
	l.SetSink(func(d Diagnostic) { seen = append(seen, d.Message) })
	l.Add(Diagnostic{Severity: WARN, Message: "a"})
	l.Add(Diagnostic{Severity: ERROR, Message: "b"})
	if strings.Join(seen, ",") != "a,b" {
		t.Fatalf("sink saw %v", seen)
	}
}

func TestWriteDiagnosticsNDJSON(t *testing.T) {
	l := NewLog("input.bin")
	l.SetClock(fixedClock)
	l.Add(Diagnostic{Block: 0, BlockName: "Base EDID", Severity: ERROR, Message: "Missing preferred timing."})
	l.Add(Diagnostic{Block: 1, BlockName: "CTA-861 Extension Block", Severity: WARN, Message: "x"})

	outPath := filepath.Join(t.TempDir(), "diagnostics.ndjson")
	if err := l.WriteDiagnosticsNDJSON(outPath); err != nil {
		t.Fatalf("WriteDiagnosticsNDJSON failed: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte{'\n'})
	if len(lines) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(lines))
	}
	var first map[string]any
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatalf("unmarshal first line failed: %v", err)
	}
	if first["file"] != "input.bin" || first["severity"] != "ERROR" {
		t.Fatalf("first line = %v", first)
	}
	if _, ok := first["ts"]; !ok {
		t.Fatalf("ts missing")
	}

	l.SetConfigValue("diag.include_timestamps", "false")
	var buf bytes.Buffer
	if err := l.WriteNDJSON(&buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `"ts"`) {
		t.Fatalf("timestamps not dropped: %s", buf.String())
	}
}

func TestMakeAcceptance(t *testing.T) {
	l := NewLog("")
	l.Add(Diagnostic{Block: 1, Severity: ERROR, Message: "Invalid checksum 0x00 (should be 0x01)."})
	l.Add(Diagnostic{Block: GlobalBlock, Severity: WARN, Message: "w"})
	rep := l.MakeAcceptance([]string{"Base EDID", "CTA-861 Extension Block"})
	if rep.Summary.Pass || rep.Summary.Errors != 1 || rep.Summary.Warnings != 1 || rep.Summary.Total != 2 {
		t.Fatalf("summary = %+v", rep.Summary)
	}
	if len(rep.GateMatrix) != 3 {
		t.Fatalf("gate matrix rows = %d", len(rep.GateMatrix))
	}
	if !rep.GateMatrix[0].Pass || rep.GateMatrix[1].Pass {
		t.Fatalf("gate matrix = %v", rep.GateMatrix)
	}
	if rep.GateMatrix[2].Name != "EDID" || rep.GateMatrix[2].Warnings != 1 {
		t.Fatalf("global row = %v", rep.GateMatrix[2])
	}
}
