package edid

import (
	"strings"
	"testing"

	"example.com/edidgate/internal/diag"
)

// dtd720p is a 1280x720 at 60 Hz detailed timing descriptor, 527x296 mm.
var dtd720p = []byte{
	0x01, 0x1d, 0x00, 0x72, 0x51, 0xd0, 0x1e, 0x20, 0x6e,
	0x28, 0x55, 0x00, 0x0f, 0x28, 0x21, 0x00, 0x00, 0x1e,
}

var (
	vcdb   = []byte{0xe2, 0x00, 0x40}
	hdmiDB = []byte{0x65, 0x03, 0x0c, 0x00, 0x10, 0x00}
	hfDB   = []byte{0x66, 0xd8, 0x5d, 0xc4, 0x01, 0x00, 0x00}
)

// ctaBlockDTDs is ctaBlock with detailed timings after the data blocks.
func ctaBlockDTDs(byte3 byte, dtds [][]byte, dataBlocks ...[]byte) []byte {
	x := ctaBlock(byte3, dataBlocks...)
	p := int(x[2])
	for _, d := range dtds {
		p += copy(x[p:], d)
	}
	ReplaceChecksum(x)
	return x
}

func edid13(x []byte) []byte {
	x[0x13] = 3
	ReplaceChecksum(x)
	return x
}

func dispidDB(tag, rev byte, payload ...byte) []byte {
	return append([]byte{tag, rev, byte(len(payload))}, payload...)
}

// dispidExtension returns a DisplayID extension block with one section
// holding the given data blocks and a valid section checksum.
func dispidExtension(version, prodType byte, dataBlocks ...[]byte) []byte {
	x := make([]byte, pageSize)
	x[0], x[1], x[3] = TagDisplayID, version, prodType
	p := 5
	for _, db := range dataBlocks {
		p += copy(x[p:], db)
	}
	x[2] = byte(p - 5)
	var sum byte
	for _, b := range x[1:p] {
		sum += b
	}
	x[p] = -sum
	ReplaceChecksum(x)
	return x
}

func failures(res *Result, sub string) int {
	return countContaining(messages(res.Log, diag.ERROR), sub)
}

func warnings(res *Result, sub string) int {
	return countContaining(messages(res.Log, diag.WARN), sub)
}

func TestExtensionOverrideCount(t *testing.T) {
	cases := []struct {
		name      string
		count     byte
		wantBase  int
		wantEEODB int
	}{
		{"matches", 2, 0, 0},
		{"too many", 3, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eeodb := []byte{0xe2, 0x78, tc.count}
			data := join(baseBlock(0xff, 30, 1), ctaBlock(0x00, eeodb), ctaBlock(0x00))
			res := mustDecode(t, data, Options{})
			if n := failures(res, "EDID specified"); n != tc.wantBase {
				t.Fatalf("got %d base extension count failures, want %d", n, tc.wantBase)
			}
			if n := failures(res, "HDMI Forum EDID Extension Override Data Block specified"); n != tc.wantEEODB {
				t.Fatalf("got %d override count failures, want %d", n, tc.wantEEODB)
			}
			if n := failures(res, "wrong offset"); n != 0 {
				t.Fatalf("override block at the first offset reported as misplaced")
			}
		})
	}
}

func TestHDMIForumVSDBOrder(t *testing.T) {
	cases := []struct {
		name   string
		blocks [][]byte
		want   int
	}{
		{"adjacent", [][]byte{hdmiDB, hfDB}, 0},
		{"separated", [][]byte{hdmiDB, vcdb, hfDB}, 1},
		{"alone", [][]byte{hfDB}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := join(baseBlock(0xff, 30, 1), ctaBlock(0x00, tc.blocks...))
			res := mustDecode(t, data, Options{})
			if n := failures(res, "HDMI Forum VSDB did not immediately follow the HDMI VSDB"); n != tc.want {
				t.Fatalf("got %d ordering failures, want %d", n, tc.want)
			}
		})
	}
}

func TestSingletonDataBlocks(t *testing.T) {
	cases := []struct {
		name   string
		blocks [][]byte
		want   int
	}{
		{"single VCDB", [][]byte{vcdb}, 0},
		{"two VCDBs", [][]byte{vcdb, vcdb}, 1},
		{"three VCDBs", [][]byte{vcdb, vcdb, vcdb}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := join(baseBlock(0xff, 30, 1), ctaBlock(0x00, tc.blocks...))
			res := mustDecode(t, data, Options{})
			if n := failures(res, "Only one instance of this Data Block is allowed"); n != tc.want {
				t.Fatalf("got %d duplicate failures, want %d", n, tc.want)
			}
		})
	}
}

func TestVFPDBResolvesDTDReference(t *testing.T) {
	vfpdb := []byte{0xe2, 0x0d, 130}
	data := join(baseBlock(0xff, 30, 1), ctaBlockDTDs(0x00, [][]byte{dtd720p}, vfpdb))
	res := mustDecode(t, data, Options{})
	if n := failures(res, "Invalid DTD"); n != 0 {
		t.Fatalf("valid DTD reference rejected")
	}
	var found bool
	for _, e := range res.PreferredTimings {
		if e.HasSVR() {
			t.Fatalf("preferred timing %q still pending", e.Type)
		}
		if e.Type == "DTD   2" {
			found = true
			if e.T.HAct != 1280 || e.T.VAct != 720 {
				t.Fatalf("DTD 2 resolved to %dx%d, want 1280x720", e.T.HAct, e.T.VAct)
			}
		}
	}
	if !found {
		t.Fatalf("no preferred timing for DTD 2 in %v", res.PreferredTimings)
	}
}

func TestVFPDBRejectsMissingDTD(t *testing.T) {
	vfpdb := []byte{0xe2, 0x0d, 131}
	data := join(baseBlock(0xff, 30, 1), ctaBlockDTDs(0x00, [][]byte{dtd720p}, vfpdb))
	res := mustDecode(t, data, Options{})
	if n := failures(res, "Invalid DTD 3."); n != 1 {
		t.Fatalf("got %d invalid DTD failures, want 1", n)
	}
}

func TestDTDCloseToVIC(t *testing.T) {
	cases := []struct {
		name        string
		hfp, hsync  byte
		wantVIC     int
		wantDMTWarn int
	}{
		{"exact", 0x58, 0x2c, 0, 0},
		{"shifted sync", 0x5a, 0x2a, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x := baseBlock(0xff, 30, 0)
			x[0x36+8], x[0x36+9] = tc.hfp, tc.hsync
			ReplaceChecksum(x)
			res := mustDecode(t, x, Options{})
			if n := warnings(res, "DTD is similar but not identical to VIC 16."); n != tc.wantVIC {
				t.Fatalf("got %d VIC warnings, want %d", n, tc.wantVIC)
			}
			if n := warnings(res, "similar but not identical to DMT"); n != tc.wantDMTWarn {
				t.Fatalf("got %d DMT warnings, want %d", n, tc.wantDMTWarn)
			}
		})
	}
}

func TestDTDImageSizeAgainstDisplaySize(t *testing.T) {
	cases := []struct {
		name  string
		hsize byte
		want  int
	}{
		{"within tolerance", 0x0f, 0},
		{"too wide", 0x58, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x := baseBlock(0xff, 30, 0)
			x[0x36+12] = tc.hsize
			ReplaceChecksum(x)
			res := mustDecode(t, x, Options{})
			if n := failures(res, "Mismatch of image size 600x296 mm vs display size 520x290 mm."); n != tc.want {
				t.Fatalf("got %d image size failures, want %d", n, tc.want)
			}
		})
	}
}

func TestDisplayIDTimingTypes(t *testing.T) {
	type1 := []byte{0x01, 0x3a, 0x00, 0x84, 0x7f, 0x07, 0x17, 0x01, 0x57, 0x80, 0x2b, 0x00, 0x37, 0x04, 0x2c, 0x00, 0x03, 0x80, 0x04, 0x00}
	type7 := append([]byte{0x13, 0x44, 0x02}, type1[3:]...)
	cases := []struct {
		name    string
		version byte
		db      []byte
		label   string
	}{
		{"type I", 0x12, dispidDB(0x03, 0x00, type1...), "DTD"},
		{"type II", 0x12, dispidDB(0x04, 0x00, 0x01, 0x3a, 0x00, 0x8c, 0xef, 0x44, 0xa4, 0x37, 0x04, 0x2c, 0x34), "DTD"},
		{"type III", 0x12, dispidDB(0x05, 0x00, 0x84, 0xef, 0x3b), "CVT"},
		{"type IV", 0x12, dispidDB(0x06, 0x01, 0x52), "DMT 0x52"},
		{"type V", 0x12, dispidDB(0x11, 0x00, 0x80, 0x00, 0x7f, 0x07, 0x37, 0x04, 0x3b), "CVT"},
		{"type VI", 0x12, dispidDB(0x13, 0x00, 0x13, 0x44, 0x82, 0x7f, 0x87, 0x37, 0x84, 0x17, 0x57, 0x01, 0x2b, 0x2c, 0x03, 0x04), "DTD"},
		{"type VII", 0x20, dispidDB(0x22, 0x00, type7...), "DTD"},
		{"type VIII", 0x20, dispidDB(0x23, 0x00, 0x52), "DMT 0x52"},
		{"type IX", 0x20, dispidDB(0x24, 0x00, 0x00, 0x7f, 0x07, 0x37, 0x04, 0x3b), "CVT"},
		{"type X", 0x20, dispidDB(0x2a, 0x00, 0x02, 0x7f, 0x07, 0x37, 0x04, 0x3b), "CVT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := join(baseBlock(0xff, 30, 1), dispidExtension(tc.version, 0x01, tc.db))
			res := mustDecode(t, data, Options{})
			if res.Blocks[1] != "DisplayID Extension Block" {
				t.Fatalf("block 1 named %q", res.Blocks[1])
			}
			if want := tc.label + ":  1920x1080"; !strings.Contains(res.Listing, want) {
				t.Fatalf("listing lacks %q:\n%s", want, res.Listing)
			}
			if n := failures(res, "Invalid checksum"); n != 0 {
				t.Fatalf("got %d checksum failures", n)
			}
			if n := failures(res, "Use of DisplayID"); n != 0 {
				t.Fatalf("tag reported against the wrong DisplayID version")
			}
		})
	}
}

func TestDisplayIDPreferredTiming(t *testing.T) {
	type1 := dispidDB(0x03, 0x00, 0x01, 0x3a, 0x00, 0x84, 0x7f, 0x07, 0x17, 0x01, 0x57, 0x80, 0x2b, 0x00, 0x37, 0x04, 0x2c, 0x00, 0x03, 0x80, 0x04, 0x00)
	data := join(baseBlock(0xff, 30, 1), dispidExtension(0x12, 0x01, type1))
	res := mustDecode(t, data, Options{})
	if n := failures(res, "DisplayID expects at least one preferred timing"); n != 0 {
		t.Fatalf("preferred Type I timing not recorded")
	}
	last := res.PreferredTimings[len(res.PreferredTimings)-1]
	if last.T.HAct != 1920 || last.T.VAct != 1080 || last.T.PixclkKHz != 148500 {
		t.Fatalf("preferred timing %dx%d at %d kHz", last.T.HAct, last.T.VAct, last.T.PixclkKHz)
	}
	if !strings.Contains(last.Flags, "aspect 16:9") || !strings.Contains(last.Flags, "preferred") {
		t.Fatalf("preferred timing flags %q", last.Flags)
	}
}

func TestDisplayIDVersionMismatchedTag(t *testing.T) {
	cases := []struct {
		name    string
		version byte
		tag     byte
		want    string
	}{
		{"v2 tag in v1.2", 0x12, 0x24, "Use of DisplayID v2.0 tag for DisplayID v1.2."},
		{"v1 tag in v2.0", 0x20, 0x05, "Use of DisplayID v1.x tag for DisplayID v2.0."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := dispidDB(tc.tag, 0x00, 0x00, 0x7f, 0x07, 0x37, 0x04, 0x3b)
			if tc.tag == 0x05 {
				db = dispidDB(tc.tag, 0x00, 0x84, 0xef, 0x3b)
			}
			res := mustDecode(t, join(baseBlock(0xff, 30, 1), dispidExtension(tc.version, 0x01, db)), Options{})
			if n := failures(res, tc.want); n != 1 {
				t.Fatalf("got %d version failures, want 1", n)
			}
		})
	}
}

func TestDisplayIDSectionChecksum(t *testing.T) {
	cases := []struct {
		name   string
		tamper bool
		want   int
	}{
		{"valid", false, 0},
		{"tampered", true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext := dispidExtension(0x20, 0x01, dispidDB(0x23, 0x00, 0x52))
			if tc.tamper {
				ext[5+int(ext[2])]++
				ReplaceChecksum(ext)
			}
			res := mustDecode(t, join(baseBlock(0xff, 30, 1), ext), Options{})
			var n int
			for _, d := range res.Log.ForBlock(1, diag.ERROR) {
				if strings.Contains(d.Message, "Invalid checksum") {
					n++
				}
			}
			if n != tc.want {
				t.Fatalf("got %d section checksum failures in block 1, want %d", n, tc.want)
			}
		})
	}
}

func TestDisplayIDEmbeddedCTA(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
		want    int
	}{
		{"one VCDB", vcdb, 0},
		{"two VCDBs", join(vcdb, vcdb), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext := dispidExtension(0x20, 0x01, dispidDB(0x23, 0x00, 0x52), dispidDB(0x81, 0x00, tc.payload...))
			res := mustDecode(t, join(baseBlock(0xff, 30, 1), ext), Options{})
			if !strings.Contains(res.Listing, "CTA-861 DisplayID Data Block") ||
				!strings.Contains(res.Listing, "Video Capability Data Block") {
				t.Fatalf("embedded data blocks not decoded:\n%s", res.Listing)
			}
			if n := failures(res, "Only one instance of this Data Block is allowed"); n != tc.want {
				t.Fatalf("got %d duplicate failures, want %d", n, tc.want)
			}
		})
	}
}

func TestDisplayIDImageSizeAgainstBase(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		want int
	}{
		{"same size", 5200, 2900, 0},
		{"within a centimetre", 5250, 2950, 0},
		{"larger", 6000, 3000, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := dispidDB(0x01, 0x00,
				byte(tc.w), byte(tc.w>>8), byte(tc.h), byte(tc.h>>8),
				0, 0, 0, 0, 0, 0xff, 0x00, 0x00)
			ext := dispidExtension(0x12, 0x01, params)
			res := mustDecode(t, join(baseBlock(0xff, 30, 1), ext), Options{})
			if n := failures(res, "Image size mismatch: DisplayID:"); n != tc.want {
				t.Fatalf("got %d image size failures, want %d", n, tc.want)
			}
			if tc.want == 1 && failures(res, "600.0x300.0mm Base EDID: 520.0x290.0mm") != 1 {
				t.Fatalf("failure does not name both sizes: %q", messages(res.Log, diag.ERROR))
			}
		})
	}
}

func vtbBlock(version byte, padding byte) []byte {
	x := make([]byte, pageSize)
	x[0], x[1], x[2], x[3], x[4] = TagVTB, version, 1, 0, 1
	copy(x[5:], dtd1080p)
	x[23], x[24] = 0x81, 0x80
	x[100] = padding
	ReplaceChecksum(x)
	return x
}

func TestVTBExtension(t *testing.T) {
	cases := []struct {
		name        string
		version     byte
		padding     byte
		wantVersion int
		wantPadding int
	}{
		{"valid", 1, 0, 0, 0},
		{"bad version", 2, 0, 1, 0},
		{"dirty padding", 1, 0x5a, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := mustDecode(t, join(baseBlock(0xff, 30, 1), vtbBlock(tc.version, tc.padding)), Options{})
			if res.Blocks[1] != "Video Timing Extension Block" {
				t.Fatalf("block 1 named %q", res.Blocks[1])
			}
			for _, want := range []string{"DTD:  1920x1080", "DMT 0x23:  1280x1024"} {
				if !strings.Contains(res.Listing, want) {
					t.Fatalf("listing lacks %q:\n%s", want, res.Listing)
				}
			}
			if n := failures(res, "Invalid version"); n != tc.wantVersion {
				t.Fatalf("got %d version failures, want %d", n, tc.wantVersion)
			}
			if n := failures(res, "Contains non-zero bytes."); n != tc.wantPadding {
				t.Fatalf("got %d padding failures, want %d", n, tc.wantPadding)
			}
		})
	}
}

func lsBlock(table []byte, stray byte) []byte {
	x := make([]byte, pageSize)
	x[0], x[1], x[3] = TagLS, 1, 0x60
	x[5] = byte(len(table) + 1)
	copy(x[6:], table)
	x[120] = stray
	ReplaceChecksum(x)
	return x
}

func TestLocalizedStrings(t *testing.T) {
	cases := []struct {
		name      string
		table     []byte
		stray     byte
		wantType  string
		wantFails int
	}{
		{"UTF-8", []byte{0, 0, 0, 0, 0, 2, 'A', 'B', 2, 'X', '1', 0}, 0, "UTF 8", 0},
		{"UTF-16BE", []byte{1, 0, 0, 0, 0, 4, 0, 'A', 0, 'B', 4, 0, 'X', 0, '1', 0}, 0, "UTF 16BE", 0},
		{"stray byte", []byte{0, 0, 0, 0, 0, 2, 'A', 'B', 2, 'X', '1', 0}, 0x20, "UTF 8", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := mustDecode(t, join(baseBlock(0xff, 30, 1), lsBlock(tc.table, tc.stray)), Options{})
			for _, want := range []string{"UTF Type: " + tc.wantType, "Text: 'AB'", "Text: 'X1'"} {
				if !strings.Contains(res.Listing, want) {
					t.Fatalf("listing lacks %q:\n%s", want, res.Listing)
				}
			}
			if n := failures(res, "Non-zero values in unused space."); n != tc.wantFails {
				t.Fatalf("got %d unused space failures, want %d", n, tc.wantFails)
			}
		})
	}
}

func blockMap(tags ...byte) []byte {
	x := make([]byte, pageSize)
	x[0] = TagBlockMap
	copy(x[1:], tags)
	ReplaceChecksum(x)
	return x
}

func TestBlockMap(t *testing.T) {
	cases := []struct {
		name     string
		tag      byte
		wantFail int
	}{
		{"matches", TagCTA, 0},
		{"wrong tag", TagVTB, 1},
		{"missing entry", 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := join(baseBlock(0xff, 30, 2), blockMap(tc.tag), ctaBlock(0x00))
			res := mustDecode(t, data, Options{})
			if res.Blocks[1] != "Block Map Extension Block" {
				t.Fatalf("block 1 named %q", res.Blocks[1])
			}
			if n := failures(res, "Block 2 tag mismatch: expected 0x02"); n != tc.wantFail {
				t.Fatalf("got %d tag mismatch failures, want %d", n, tc.wantFail)
			}
		})
	}
}

func TestEDID13NeedsBlockMap(t *testing.T) {
	const msg = "EDID 1.3 requires a Block Map Extension in Block 1"
	cases := []struct {
		name string
		data []byte
		want int
	}{
		{"two blocks", join(edid13(baseBlock(0xff, 30, 1)), ctaBlock(0x00)), 0},
		{"three blocks without map", join(edid13(baseBlock(0xff, 30, 2)), ctaBlock(0x00), ctaBlock(0x00)), 1},
		{"three blocks with map", join(edid13(baseBlock(0xff, 30, 2)), blockMap(TagCTA), ctaBlock(0x00)), 0},
		{"EDID 1.4", join(baseBlock(0xff, 30, 2), ctaBlock(0x00), ctaBlock(0x00)), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := mustDecode(t, tc.data, Options{})
			if n := failures(res, msg); n != tc.want {
				t.Fatalf("got %d block map failures, want %d", n, tc.want)
			}
		})
	}
}

func TestCVTRangeLimitsEnableCVTStandardTimings(t *testing.T) {
	cases := []struct {
		name  string
		class byte
		want  bool
	}{
		{"default GTF", 0x00, false},
		{"CVT", 0x04, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x := baseBlock(0xff, 30, 0)
			// 1920x1080 at 75 Hz has no DMT code.
			x[0x26], x[0x27] = 0xd1, 0xcf
			x[0x48+10] = tc.class
			if tc.class == 0x04 {
				copy(x[0x48+11:], []byte{0x11, 0x00, 0x00, 0x18, 0x10, 0x30, 0x3c})
			}
			ReplaceChecksum(x)
			res := mustDecode(t, x, Options{})
			if !strings.Contains(res.Listing, "GTF     :  1920x1080") {
				t.Fatalf("listing lacks the GTF interpretation:\n%s", res.Listing)
			}
			if got := strings.Contains(res.Listing, "EDID 1.4 source"); got != tc.want {
				t.Fatalf("CVT interpretation listed = %v, want %v", got, tc.want)
			}
		})
	}
}
