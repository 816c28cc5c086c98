// Package diag accumulates the conformance failures and warnings raised while
// decoding an EDID and turns them into a verdict, an acceptance report and
// NDJSON diagnostics.
package diag

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Severity string

const (
	ERROR Severity = "ERROR" // conformance failure
	WARN  Severity = "WARN"
)

// GlobalBlock is the block number of messages raised by cross-block
// checks. They are reported under "EDID:" rather than a block heading.
const GlobalBlock = 256

type Diagnostic struct {
	Ts        time.Time `json:"ts"`
	File      string    `json:"file,omitempty"`
	Block     int       `json:"block"`
	BlockName string    `json:"blockName,omitempty"`
	DataBlock string    `json:"dataBlock,omitempty"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
}

// Text returns the message prefixed with its data block, the way it is
// listed under its block heading.
func (d Diagnostic) Text() string {
	if d.DataBlock == "" {
		return d.Message
	}
	return d.DataBlock + ": " + d.Message
}

type AcceptanceReport struct {
	File    string `json:"file,omitempty"`
	Sha256  string `json:"sha256,omitempty"`
	Summary struct {
		Total    int  `json:"total"`
		Errors   int  `json:"errors"`
		Warnings int  `json:"warnings"`
		Pass     bool `json:"pass"`
	} `json:"summary"`
	GateMatrix []GateRow   `json:"gateMatrix"`
	Findings   []Diagnostic `json:"findings,omitempty"`
}

// GateRow is the pass/fail gate of one block.
type GateRow struct {
	Block    int    `json:"block"`
	Name     string `json:"name"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
	Pass     bool   `json:"pass"`
}

// Log is the append-only diagnostics sink of a single decode. It is not
// safe for concurrent use.
type Log struct {
	file                   string
	now                    func() time.Time
	diagnostics            []Diagnostic
	errors                 int
	warnings               int
	includeTimestampFields bool
	sink                   func(Diagnostic)
}

func NewLog(file string) *Log {
	return &Log{file: file, now: time.Now, includeTimestampFields: true}
}

// SetClock replaces the clock used to stamp diagnostics.
func (l *Log) SetClock(now func() time.Time) {
	if now != nil {
		l.now = now
	}
}

// SetSink registers a callback invoked for every diagnostic as it is
// added. The daemon uses it to stream diagnostics.
func (l *Log) SetSink(fn func(Diagnostic)) { l.sink = fn }

func (l *Log) SetConfigValue(key string, value any) {
	if l == nil {
		return
	}
	switch key {
	case "diag.include_timestamps":
		switch v := value.(type) {
		case bool:
			l.includeTimestampFields = v
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				l.includeTimestampFields = b
			}
		default:
			if s, ok := value.(fmt.Stringer); ok {
				if b, err := strconv.ParseBool(s.String()); err == nil {
					l.includeTimestampFields = b
				}
			}
		}
	}
}

// Add records d. Counters only ever grow.
func (l *Log) Add(d Diagnostic) {
	if d.Ts.IsZero() {
		d.Ts = l.now()
	}
	if d.File == "" {
		d.File = l.file
	}
	d.Message = strings.TrimSuffix(d.Message, "\n")
	switch d.Severity {
	case ERROR:
		l.errors++
	case WARN:
		l.warnings++
	}
	l.diagnostics = append(l.diagnostics, d)
	if l.sink != nil {
		l.sink(d)
	}
}

func (l *Log) Failures() int { return l.errors }
func (l *Log) Warnings() int { return l.warnings }

// Pass reports whether no failure has been recorded.
func (l *Log) Pass() bool { return l.errors == 0 }

// Diagnostics returns the recorded diagnostics in the order they were
// added.
func (l *Log) Diagnostics() []Diagnostic { return l.diagnostics }

// ForBlock returns the diagnostics of one block with the given severity.
func (l *Log) ForBlock(block int, sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range l.diagnostics {
		if d.Block == block && d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Section renders the "Warnings:" or "Failures:" section of the decode
// report: one heading per block followed by its indented messages.
func (l *Log) Section(sev Severity) string {
	byBlock := map[int][]Diagnostic{}
	var blocks []int
	for _, d := range l.diagnostics {
		if d.Severity != sev {
			continue
		}
		if _, ok := byBlock[d.Block]; !ok {
			blocks = append(blocks, d.Block)
		}
		byBlock[d.Block] = append(byBlock[d.Block], d)
	}
	if len(blocks) == 0 {
		return ""
	}
	sort.Ints(blocks)
	var b strings.Builder
	title := "Failures"
	if sev == WARN {
		title = "Warnings"
	}
	fmt.Fprintf(&b, "\n%s:\n\n", title)
	for _, blk := range blocks {
		ds := byBlock[blk]
		if blk == GlobalBlock {
			b.WriteString("EDID:\n")
		} else {
			fmt.Fprintf(&b, "Block %d, %s:\n", blk, ds[0].BlockName)
		}
		for _, d := range ds {
			b.WriteString("  " + d.Text() + "\n")
		}
	}
	return b.String()
}

func (l *Log) WriteNDJSON(out io.Writer) error {
	w := bufio.NewWriter(out)
	for _, d := range l.diagnostics {
		var b []byte
		var err error
		if l.includeTimestampFields {
			b, err = json.Marshal(d)
		} else {
			b, err = json.Marshal(d.toNoTimestamp())
		}
		if err != nil {
			return err
		}
		w.Write(b)
		w.WriteString("\n")
	}
	return w.Flush()
}

func (l *Log) WriteDiagnosticsNDJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return l.WriteNDJSON(f)
}

type diagnosticNoTimestamp struct {
	File      string   `json:"file,omitempty"`
	Block     int      `json:"block"`
	BlockName string   `json:"blockName,omitempty"`
	DataBlock string   `json:"dataBlock,omitempty"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
}

func (d Diagnostic) toNoTimestamp() diagnosticNoTimestamp {
	return diagnosticNoTimestamp{
		File:      d.File,
		Block:     d.Block,
		BlockName: d.BlockName,
		DataBlock: d.DataBlock,
		Severity:  d.Severity,
		Message:   d.Message,
	}
}

// MakeAcceptance summarizes the log. The gate matrix has one row per block
// in blockNames (indexed by block number) plus a row for cross-block
// checks.
func (l *Log) MakeAcceptance(blockNames []string) AcceptanceReport {
	var rep AcceptanceReport
	rep.File = l.file
	rep.Summary.Total = len(l.diagnostics)
	rep.Summary.Errors = l.errors
	rep.Summary.Warnings = l.warnings
	rep.Summary.Pass = l.errors == 0

	rows := make([]GateRow, 0, len(blockNames)+1)
	row := func(block int, name string) {
		errs := len(l.ForBlock(block, ERROR))
		rows = append(rows, GateRow{
			Block:    block,
			Name:     name,
			Errors:   errs,
			Warnings: len(l.ForBlock(block, WARN)),
			Pass:     errs == 0,
		})
	}
	for i, name := range blockNames {
		row(i, name)
	}
	row(GlobalBlock, "EDID")
	rep.GateMatrix = rows
	rep.Findings = l.diagnostics
	return rep
}
