package edid

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"example.com/edidgate/internal/diag"
)

var fixedNow = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

// dtd1080p is a 1920x1080 at 60 Hz detailed timing descriptor, 527x296 mm.
var dtd1080p = []byte{
	0x02, 0x3a, 0x80, 0x18, 0x71, 0x38, 0x2d, 0x40, 0x58,
	0x2c, 0x45, 0x00, 0x0f, 0x28, 0x21, 0x00, 0x00, 0x1e,
}

func textDescriptor(tag byte, text string) []byte {
	d := []byte{0, 0, 0, tag, 0}
	body := []byte(text + "\n")
	for len(body) < 13 {
		body = append(body, ' ')
	}
	return append(d, body[:13]...)
}

// baseBlock returns a digital EDID 1.4 base block with one DTD, a range
// limits descriptor, a product name and a dummy descriptor.
func baseBlock(week, year byte, extensions int) []byte {
	x := make([]byte, pageSize)
	copy(x, magic)
	x[0x08], x[0x09] = 0x10, 0xac // DEL
	x[0x0a], x[0x0b] = 0x34, 0x12
	x[0x10], x[0x11] = week, year
	x[0x12], x[0x13] = 1, 4
	x[0x14] = 0xa5
	x[0x15], x[0x16] = 52, 29
	x[0x17] = 120
	x[0x18] = 0x07
	copy(x[0x19:], srgbChromaticity)
	x[0x23] = 0x20
	for i := 0x26; i < 0x36; i++ {
		x[i] = 0x01
	}
	copy(x[0x36:], dtd1080p)
	copy(x[0x48:], []byte{0, 0, 0, 0xfd, 0, 0x32, 0x4b, 0x1e, 0x53, 0x11, 0x00, 0x0a, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20})
	copy(x[0x5a:], textDescriptor(0xfc, "TEST"))
	copy(x[0x6c:], []byte{0, 0, 0, 0x10})
	x[0x7e] = byte(extensions)
	ReplaceChecksum(x)
	return x
}

// ctaBlock returns a revision 3 CTA-861 block holding the given data
// blocks and no DTDs.
func ctaBlock(byte3 byte, dataBlocks ...[]byte) []byte {
	x := make([]byte, pageSize)
	x[0], x[1], x[3] = TagCTA, 3, byte3
	p := 4
	for _, db := range dataBlocks {
		p += copy(x[p:], db)
	}
	x[2] = byte(p)
	ReplaceChecksum(x)
	return x
}

func join(blocks ...[]byte) []byte {
	return bytes.Join(blocks, nil)
}

func messages(l *diag.Log, sev diag.Severity) []string {
	var out []string
	for _, d := range l.Diagnostics() {
		if d.Severity == sev {
			out = append(out, d.Message)
		}
	}
	return out
}

func countContaining(msgs []string, sub string) int {
	n := 0
	for _, m := range msgs {
		if strings.Contains(m, sub) {
			n++
		}
	}
	return n
}

func mustDecode(t *testing.T, data []byte, opts Options) *Result {
	t.Helper()
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	res, err := Decode(data, opts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return res
}

func TestDecodeRejectsUnusableInput(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrLength},
		{"short", make([]byte, 100), ErrLength},
		{"not a multiple", make([]byte, 200), ErrLength},
		{"too many blocks", make([]byte, 257*pageSize), ErrLength},
		{"no header", make([]byte, pageSize), ErrMagic},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data, Options{})
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestModelYearHasNoDateDiagnostics(t *testing.T) {
	res := mustDecode(t, baseBlock(0xff, 30, 0), Options{})
	if !strings.Contains(res.Listing, "Model year: 2020") {
		t.Fatalf("listing does not show the model year:\n%s", res.Listing)
	}
	for _, d := range res.Log.Diagnostics() {
		if strings.Contains(d.Message, "week") || strings.Contains(d.Message, "year") {
			t.Fatalf("unexpected date diagnostic: %s", d.Message)
		}
	}
}

func TestFutureYearFails(t *testing.T) {
	res := mustDecode(t, baseBlock(10, 40, 0), Options{})
	if n := countContaining(messages(res.Log, diag.ERROR), "more than one year in the future"); n != 1 {
		t.Fatalf("got %d future year failures, want 1", n)
	}
	if res.Pass() {
		t.Fatalf("document with a failure passed")
	}
}

func TestInvalidWeekFails(t *testing.T) {
	res := mustDecode(t, baseBlock(60, 30, 0), Options{})
	if n := countContaining(messages(res.Log, diag.ERROR), "Invalid week of manufacture"); n != 1 {
		t.Fatalf("got %d week failures, want 1", n)
	}
}

func TestBadChecksumFails(t *testing.T) {
	x := baseBlock(0xff, 30, 0)
	x[pageSize-1]++
	res := mustDecode(t, x, Options{})
	if res.Pass() {
		t.Fatalf("bad checksum passed")
	}
}

func TestExtensionCountMismatch(t *testing.T) {
	res := mustDecode(t, baseBlock(0xff, 30, 2), Options{})
	if n := countContaining(messages(res.Log, diag.ERROR), "EDID specified 2 extension block(s), but found 0"); n != 1 {
		t.Fatalf("got %d extension count failures, want 1", n)
	}
}

func TestMoreNativeDTDsThanDTDs(t *testing.T) {
	data := join(baseBlock(0xff, 30, 1), ctaBlock(0x02))
	res := mustDecode(t, data, Options{})
	if n := countContaining(messages(res.Log, diag.ERROR), "There are more Native DTDs (2) than DTDs (1)"); n != 1 {
		t.Fatalf("got %d native DTD failures, want 1", n)
	}
	if res.Blocks[1] != "CTA-861 Extension Block" {
		t.Fatalf("block 1 named %q", res.Blocks[1])
	}
}

func TestReversedHDMIOUIWarns(t *testing.T) {
	hdmi := []byte{0x65, 0x00, 0x0c, 0x03, 0x10, 0x00}
	data := join(baseBlock(0xff, 30, 1), ctaBlock(0x00, hdmi))
	res := mustDecode(t, data, Options{})
	if n := countContaining(messages(res.Log, diag.WARN), "Endian-ness"); n != 1 {
		t.Fatalf("got %d endian-ness warnings, want 1", n)
	}
	if countContaining(messages(res.Log, diag.ERROR), "Endian-ness") != 0 {
		t.Fatalf("endian-ness reported as a failure")
	}
}

func TestExtensionDispatch(t *testing.T) {
	cases := []struct {
		tag  byte
		name string
		fail string
	}{
		{0x20, "EDID 2.0 Extension Block", "Deprecated extension block"},
		{0x33, "Unknown EDID Extension Block 0x33", "Unknown Extension Block"},
	}
	for _, tc := range cases {
		ext := make([]byte, pageSize)
		ext[0] = tc.tag
		ReplaceChecksum(ext)
		res := mustDecode(t, join(baseBlock(0xff, 30, 1), ext), Options{})
		if res.Blocks[1] != tc.name {
			t.Fatalf("tag 0x%02x: block named %q, want %q", tc.tag, res.Blocks[1], tc.name)
		}
		if countContaining(messages(res.Log, diag.ERROR), tc.fail) != 1 {
			t.Fatalf("tag 0x%02x: missing %q failure", tc.tag, tc.fail)
		}
		for _, d := range res.Log.ForBlock(1, diag.ERROR) {
			if d.BlockName != tc.name {
				t.Fatalf("diagnostic block name %q, want %q", d.BlockName, tc.name)
			}
		}
	}
}

func TestVerdictFollowsFailures(t *testing.T) {
	inputs := [][]byte{
		baseBlock(0xff, 30, 0),
		baseBlock(60, 40, 0),
		join(baseBlock(0xff, 30, 1), ctaBlock(0x02)),
	}
	for i, data := range inputs {
		res := mustDecode(t, data, Options{})
		if i == 0 && !res.Pass() {
			t.Fatalf("conforming base block failed: %q", messages(res.Log, diag.ERROR))
		}
		want := "PASS"
		if res.Log.Failures() > 0 {
			want = "FAIL"
		}
		if res.Verdict() != want {
			t.Fatalf("input %d: verdict %s with %d failures", i, res.Verdict(), res.Log.Failures())
		}
		if !strings.HasSuffix(res.Report(), "EDID conformity: "+want+"\n") {
			t.Fatalf("input %d: report does not end with the verdict", i)
		}
	}
}

func TestDecodeDoesNotModifyInput(t *testing.T) {
	x := baseBlock(10, 30, 0)
	x[0x0c] = 0x78
	ReplaceChecksum(x)
	orig := bytes.Clone(x)
	res := mustDecode(t, x, Options{Anonymize: true})
	if !bytes.Equal(x, orig) {
		t.Fatalf("input was modified")
	}
	if bytes.Equal(res.Data, orig) {
		t.Fatalf("anonymized data equals the input")
	}
	if len(res.Patches) == 0 {
		t.Fatalf("no patches recorded")
	}
}

func TestPreferredTimings(t *testing.T) {
	res := mustDecode(t, baseBlock(0xff, 30, 0), Options{PreferredTimings: true, NativeResolution: true})
	if len(res.PreferredTimings) != 1 {
		t.Fatalf("got %d preferred timings, want 1", len(res.PreferredTimings))
	}
	p := res.PreferredTimings[0].T
	if p.HAct != 1920 || p.VAct != 1080 {
		t.Fatalf("preferred timing %dx%d", p.HAct, p.VAct)
	}
	if len(res.Native) != 1 || res.Native[0].String() != "1920x1080" {
		t.Fatalf("native resolutions %v", res.Native)
	}
	if !strings.Contains(res.Listing, "Preferred Video Timing if only Block 0 is parsed:") {
		t.Fatalf("listing lacks the preferred timing section")
	}
}
