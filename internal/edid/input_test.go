package edid

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"example.com/edidgate/internal/common"
)

func TestParseInput(t *testing.T) {
	raw := baseBlock(0xff, 30, 0)
	var text strings.Builder
	for i := 0; i < len(raw); i += 16 {
		text.WriteString(hex.EncodeToString(raw[i:i+16]) + "\n")
	}

	got, err := ParseInput([]byte(text.String()))
	if err != nil {
		t.Fatalf("ParseInput hex: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("hex text decoded to % x", got[:16])
	}
	got, err = ParseInput(raw)
	if err != nil || !bytes.Equal(got, raw) {
		t.Fatalf("raw input changed: %v", err)
	}
	if _, err := ParseInput([]byte("00ff f")); !errors.Is(err, ErrHex) {
		t.Fatalf("odd digit count: got %v", err)
	}
}

func TestPatchEntriesRevertAnonymize(t *testing.T) {
	base := baseBlock(10, 30, 0)
	copy(base[0x0c:], []byte{0x78, 0x56, 0x34, 0x12})
	ReplaceChecksum(base)
	res := mustDecode(t, base, Options{Anonymize: true})

	ts := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	entries := res.PatchEntries("panel.bin", ts)
	if len(entries) != len(res.Patches) {
		t.Fatalf("entries = %d, patches = %d", len(entries), len(res.Patches))
	}
	if entries[0].Ref != "panel.bin" || !entries[0].Ts.Equal(ts) {
		t.Fatalf("entry %+v", entries[0])
	}
	restored := bytes.Clone(res.Data)
	mismatches, err := common.Revert(restored, entries)
	if err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if mismatches != 0 || !bytes.Equal(restored, base) {
		t.Fatalf("revert did not restore the input (%d mismatches)", mismatches)
	}
}
