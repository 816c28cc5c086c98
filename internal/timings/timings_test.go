package timings

import (
	"strings"
	"testing"
)

func TestRegistriesSelfMatch(t *testing.T) {
	for _, d := range DMTs() {
		if !Match(d.T, d.T) {
			t.Fatalf("DMT 0x%02x does not match itself", d.ID)
		}
		if CloseMatch(d.T, d.T) {
			t.Fatalf("DMT 0x%02x close-matches itself", d.ID)
		}
	}
	for _, v := range VICs() {
		if !Match(v.T, v.T) {
			t.Fatalf("VIC %d does not match itself", v.VIC)
		}
		if CloseMatch(v.T, v.T) {
			t.Fatalf("VIC %d close-matches itself", v.VIC)
		}
	}
}

func TestFindVIC(t *testing.T) {
	cases := []struct {
		vic        int
		hact, vact int
		pixclk     int
		ok         bool
	}{
		{1, 640, 480, 25175, true},
		{16, 1920, 1080, 148500, true},
		{97, 3840, 2160, 594000, true},
		{193, 5120, 2160, 1485000, true},
		{0, 0, 0, 0, false},
		{128, 0, 0, 0, false},
		{220, 0, 0, 0, false},
	}
	for _, c := range cases {
		got, ok := FindVIC(c.vic)
		if ok != c.ok {
			t.Fatalf("FindVIC(%d) ok=%v, want %v", c.vic, ok, c.ok)
		}
		if !ok {
			continue
		}
		if got.HAct != c.hact || got.VAct != c.vact || got.PixclkKHz != c.pixclk {
			t.Fatalf("FindVIC(%d) = %dx%d %d kHz", c.vic, got.HAct, got.VAct, got.PixclkKHz)
		}
	}
}

func TestMatchVICUsesSecondTable(t *testing.T) {
	want, _ := FindVIC(200)
	vic, ok := MatchVIC(want)
	if !ok || vic != 200 {
		t.Fatalf("MatchVIC = %d, %v; want 200", vic, ok)
	}
	near := want
	near.HFP += 4
	near.HBP -= 4
	vic, ok = CloseMatchVIC(near)
	if !ok || vic != 200 {
		t.Fatalf("CloseMatchVIC = %d, %v; want 200", vic, ok)
	}
}

func TestCloseMatch(t *testing.T) {
	base, _ := FindDMT(0x52) // 1920x1080@60
	moved := base
	moved.HFP, moved.HBP = base.HFP+8, base.HBP-8
	if !CloseMatch(base, moved) {
		t.Fatalf("moved porches should be a close match")
	}
	flipped := base
	flipped.PosPolHSync = !flipped.PosPolHSync
	if !CloseMatch(base, flipped) {
		t.Fatalf("flipped polarity should be a close match")
	}
	bordered := moved
	bordered.HBorder = 2
	if CloseMatch(base, bordered) {
		t.Fatalf("timings with borders must not close-match")
	}
	other := moved
	other.PixclkKHz++
	if CloseMatch(base, other) {
		t.Fatalf("different pixel clock must not close-match")
	}
}

func TestCalcRatio(t *testing.T) {
	cases := []struct {
		hact, vact int
		h, v       int
	}{
		{1920, 1080, 16, 9},
		{1920, 1200, 16, 10},
		{1280, 1024, 5, 4},
		{640, 480, 4, 3},
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		tm := Timings{HAct: c.hact, VAct: c.vact}
		CalcRatio(&tm)
		if tm.HRatio != c.h || tm.VRatio != c.v {
			t.Fatalf("CalcRatio(%dx%d) = %d:%d, want %d:%d", c.hact, c.vact, tm.HRatio, tm.VRatio, c.h, c.v)
		}
	}
}

func TestFPS(t *testing.T) {
	vic16, _ := FindVIC(16)
	if got := FPS(vic16); got != 60 {
		t.Fatalf("VIC 16 fps = %d", got)
	}
	vic5, _ := FindVIC(5)
	if got := FPS(vic5); got != 60 {
		t.Fatalf("VIC 5 fps = %d", got)
	}
	vic39, _ := FindVIC(39)
	if vic39.VTotal() != 625 {
		t.Fatalf("VIC 39 vtotal = %v, want 625", vic39.VTotal())
	}
	if got := FPS(vic39); got != 50 {
		t.Fatalf("VIC 39 fps = %d", got)
	}
}

func TestRIDMapping(t *testing.T) {
	if vic := RIDFPSToVIC(4, 60); vic != 16 {
		t.Fatalf("RID 4 @ 60 = VIC %d, want 16", vic)
	}
	if vic := RIDToVIC(4, 6); vic != 16 {
		t.Fatalf("RID 4 index 6 = VIC %d, want 16", vic)
	}
	if vic := RIDToVIC(4, 9); vic != 0 {
		t.Fatalf("RID 4 index 9 (144 Hz) = VIC %d, want 0", vic)
	}
	if vic := RIDFPSToVIC(7, 60); vic != 0 {
		t.Fatalf("RID 7 has no VICs, got %d", vic)
	}
	for rid := 1; rid < NumRIDs(); rid++ {
		r, _ := FindRID(rid)
		for idx := 1; idx <= 8; idx++ {
			vic := RIDToVIC(rid, idx)
			if vic == 0 {
				continue
			}
			v, ok := FindVIC(vic)
			if !ok || v.HAct != r.HAct || v.VAct != r.VAct {
				t.Fatalf("RID %d index %d maps to VIC %d with a different resolution", rid, idx, vic)
			}
		}
	}
}

func TestHDMIVIC(t *testing.T) {
	want := []int{95, 94, 93, 98}
	for i, w := range want {
		if got := HDMIVICToVIC(i + 1); got != w {
			t.Fatalf("HDMI VIC %d = VIC %d, want %d", i+1, got, w)
		}
	}
	if HDMIVICToVIC(5) != 0 {
		t.Fatalf("HDMI VIC 5 should not exist")
	}
}

func TestEstablishedTimings(t *testing.T) {
	if NumEstablished12() != 17 {
		t.Fatalf("got %d established I/II timings", NumEstablished12())
	}
	tm, label, ok := Established12(2)
	if !ok || label != "DMT 0x04" || tm.HAct != 640 {
		t.Fatalf("bit 2 = %q %dx%d", label, tm.HAct, tm.VAct)
	}
	_, label, _ = Established12(0)
	if label != "IBM" {
		t.Fatalf("bit 0 label = %q", label)
	}
	for i := 0; i < NumEstablished3(); i++ {
		id, _ := Established3(i)
		if _, ok := FindDMT(id); !ok {
			t.Fatalf("established III bit %d refers to missing DMT 0x%02x", i, id)
		}
	}
}

func TestFormatLine(t *testing.T) {
	vic16, _ := FindVIC(16)
	got := FormatLine("", vic16, "VIC  16", "", false)
	want := "VIC  16:  1920x1080   60.000000 Hz  16:9     67.500 kHz    148.500000 MHz"
	if got != want {
		t.Fatalf("FormatLine:\n got %q\nwant %q", got, want)
	}
	vic5, _ := FindVIC(5)
	if got := FormatLine("", vic5, "VIC   5", "native", false); !strings.Contains(got, "1080i") || !strings.HasSuffix(got, "(native)") {
		t.Fatalf("interlaced line = %q", got)
	}
	detail := FormatDetail(2, vic5)
	if !strings.Contains(detail, "Odd Field") || !strings.Contains(detail, "Even Field") {
		t.Fatalf("interlaced detail = %q", detail)
	}
}

func TestExtResolve(t *testing.T) {
	e := Pending(16, "VIC  16")
	if !e.Valid() || !e.HasSVR() || e.SVR() != 16 {
		t.Fatalf("pending ext: %+v", e)
	}
	vic16, _ := FindVIC(16)
	e.Resolve(vic16, "", "native")
	if e.HasSVR() || e.T.HAct != 1920 || e.Type != "VIC  16" || e.Flags != "native" {
		t.Fatalf("resolved ext: %+v", e)
	}
	e.Clear()
	if e.Valid() {
		t.Fatalf("cleared ext still valid")
	}
}
