package edid

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"example.com/edidgate/internal/common"
)

// ErrHex is returned for hex text that does not decode to whole bytes.
var ErrHex = errors.New("edid: malformed hex text")

func isHexText(data []byte) bool {
	for _, c := range data {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		case c == ' ', c == '\t', c == '\n', c == '\r':
		default:
			return false
		}
	}
	return true
}

// ParseInput accepts a raw binary EDID or the same bytes as plain hex text
// (whitespace between digits is ignored) and returns the raw bytes.
func ParseInput(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !isHexText(trimmed) {
		return data, nil
	}
	digits := bytes.Join(bytes.Fields(trimmed), nil)
	out := make([]byte, hex.DecodedLen(len(digits)))
	if _, err := hex.Decode(out, digits); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHex, err)
	}
	return out, nil
}

// ReadInput reads and parses an EDID from r.
func ReadInput(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseInput(data)
}

// ReadFile reads and parses the EDID stored at path.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadInput(f)
}

// Entry converts p to a patch log entry. The offset is counted from the
// start of the document.
func (p Patch) Entry(ref string, ts time.Time) common.PatchEntry {
	return common.PatchEntry{
		Field:     p.Field,
		Ref:       ref,
		Block:     p.Block,
		Offset:    int64(p.Block*pageSize + p.Offset),
		BeforeHex: hex.EncodeToString(p.Before),
		AfterHex:  hex.EncodeToString(p.After),
		Ts:        ts,
	}
}

// PatchEntries converts every patch of r for a patch log.
func (r *Result) PatchEntries(ref string, ts time.Time) []common.PatchEntry {
	out := make([]common.PatchEntry, 0, len(r.Patches))
	for _, p := range r.Patches {
		out = append(out, p.Entry(ref, ts))
	}
	return out
}
