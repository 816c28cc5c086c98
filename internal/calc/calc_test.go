package calc

import (
	"errors"
	"testing"

	"example.com/edidgate/internal/timings"
)

type want struct {
	pixclk             int
	hfp, hsync, hbp    int
	vfp, vsync, vbp    int
	posHSync, posVSync bool
}

func check(t *testing.T, name string, got timings.Timings, w want) {
	t.Helper()
	if got.PixclkKHz != w.pixclk ||
		got.HFP != w.hfp || got.HSync != w.hsync || got.HBP != w.hbp ||
		got.VFP != w.vfp || got.VSync != w.vsync || got.VBP != w.vbp {
		t.Fatalf("%s: got %d kHz h %d/%d/%d v %d/%d/%d, want %d kHz h %d/%d/%d v %d/%d/%d",
			name, got.PixclkKHz, got.HFP, got.HSync, got.HBP, got.VFP, got.VSync, got.VBP,
			w.pixclk, w.hfp, w.hsync, w.hbp, w.vfp, w.vsync, w.vbp)
	}
	if got.PosPolHSync != w.posHSync || got.PosPolVSync != w.posVSync {
		t.Fatalf("%s: polarity h=%v v=%v, want h=%v v=%v", name,
			got.PosPolHSync, got.PosPolVSync, w.posHSync, w.posVSync)
	}
}

func TestCVT(t *testing.T) {
	cases := []struct {
		name    string
		h, v    int
		refresh float64
		opts    CVTOptions
		want    want
	}{
		{"1920x1080", 1920, 1080, 60, CVTOptions{}, want{173000, 128, 200, 328, 3, 5, 32, false, true}},
		{"1920x1080 RB", 1920, 1080, 60, CVTOptions{RB: timings.RBCVTv1}, want{138500, 48, 32, 80, 3, 5, 23, true, false}},
		{"1920x1080 RBv2", 1920, 1080, 60, CVTOptions{RB: timings.RBCVTv2}, want{133320, 8, 32, 40, 17, 8, 6, true, false}},
		{"1920x1080 RBv2 video-optimized", 1920, 1080, 60, CVTOptions{RB: timings.RBCVTv2, Alt: true}, want{133186, 8, 32, 40, 17, 8, 6, true, false}},
		{"1920x1080 RBv3", 1920, 1080, 60, CVTOptions{RB: timings.RBCVTv3}, want{132000, 8, 32, 40, 6, 8, 6, true, false}},
		{"3840x2160 RBv3 h-blank-160", 3840, 2160, 60, CVTOptions{RB: timings.RBCVTv3, Alt: true}, want{528000, 8, 32, 120, 26, 8, 6, true, false}},
		{"1920x1080i", 1920, 1080, 60, CVTOptions{Interlaced: true}, want{179750, 128, 200, 328, 3, 5, 34, false, true}},
	}
	for _, c := range cases {
		got, err := CVT(c.h, c.v, c.refresh, c.opts)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		check(t, c.name, got, c.want)
	}
}

func TestCVTReproducesDMT(t *testing.T) {
	cases := []struct {
		dmt  int
		opts CVTOptions
	}{
		{0x17, CVTOptions{}},                    // 1280x768@60
		{0x44, CVTOptions{RB: timings.RBCVTv1}}, // 1920x1200@60 RB
	}
	for _, c := range cases {
		dmt, ok := timings.FindDMT(c.dmt)
		if !ok {
			t.Fatalf("DMT 0x%02x missing", c.dmt)
		}
		got, err := CVT(dmt.HAct, dmt.VAct, 60, c.opts)
		if err != nil {
			t.Fatal(err)
		}
		if !timings.Match(got, dmt) {
			t.Fatalf("CVT does not reproduce DMT 0x%02x: got %+v want %+v", c.dmt, got, dmt)
		}
	}
}

func TestCVTFlags(t *testing.T) {
	got, _ := CVT(1920, 1080, 60, CVTOptions{RB: timings.RBCVTv2, Alt: true})
	if got.RB != timings.RBCVTv2|timings.RBAlt {
		t.Fatalf("rb = %#x", got.RB)
	}
	if got.HRatio != 16 || got.VRatio != 9 {
		t.Fatalf("ratio %d:%d", got.HRatio, got.VRatio)
	}
	got, _ = CVT(1920, 1080, 60, CVTOptions{RB: timings.RBCVTv3, RBHBlank: 500})
	if got.HFP+got.HSync+got.HBP != 200 {
		t.Fatalf("RBv3 hblank override not clamped to 200: %d", got.HFP+got.HSync+got.HBP)
	}
}

func TestGTF(t *testing.T) {
	cases := []struct {
		name string
		h, v int
		freq float64
		opts GTFOptions
		want want
	}{
		{"640x480@60", 640, 480, 60, GTFOptions{}, want{23856, 16, 64, 80, 1, 3, 13, false, true}},
		{"1024x768@60", 1024, 768, 60, GTFOptions{}, want{64109, 56, 104, 160, 1, 3, 23, false, true}},
		{"640x480 31.5 kHz", 640, 480, 31.5, GTFOptions{Param: GTFHorFreq}, want{25200, 16, 64, 80, 1, 3, 14, false, true}},
		{"800x600 40 MHz", 800, 600, 40, GTFOptions{Param: GTFPixelClock}, want{40000, 32, 80, 112, 1, 3, 18, false, true}},
		{"1920x1080 secondary", 1920, 1080, 60,
			GTFOptions{Secondary: true, Curve: Curve{C: 30, M: 300, K: 128, J: 20}},
			want{166358, 80, 200, 280, 1, 3, 34, true, false}},
	}
	for _, c := range cases {
		got, err := GTF(c.h, c.v, c.freq, c.opts)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		check(t, c.name, got, c.want)
	}
	sec, _ := GTF(1920, 1080, 60, GTFOptions{Secondary: true, Curve: Curve{C: 30, M: 300, K: 128, J: 20}})
	if sec.RB != timings.RBGTF {
		t.Fatalf("secondary curve rb = %#x", sec.RB)
	}
}

func TestOVT(t *testing.T) {
	cases := []struct {
		name         string
		h, v, rate   int
		want         want
		htotal, vtot int
	}{
		{"1920x1080@60", 1920, 1080, 60, want{139776, 96, 32, 32, 13, 8, 19, true, true}, 2080, 1120},
		{"3840x2160@60", 3840, 2160, 60, want{532224, 56, 32, 32, 26, 8, 46, true, true}, 3960, 2240},
		{"1280x720@50", 1280, 720, 50, want{67488, 136, 32, 32, 173, 8, 11, true, true}, 1480, 912},
		{"7680x4320@120", 7680, 4320, 120, want{4286592, 64, 32, 32, 35, 8, 212, true, true}, 7808, 4575},
	}
	for _, c := range cases {
		got, err := OVT(c.h, c.v, 0, 0, c.rate)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		check(t, c.name, got, c.want)
		if got.HTotal() != c.htotal || int(got.VTotal()) != c.vtot {
			t.Fatalf("%s: totals %dx%v, want %dx%d", c.name, got.HTotal(), got.VTotal(), c.htotal, c.vtot)
		}
		if got.HRatio != 16 || got.VRatio != 9 {
			t.Fatalf("%s: derived ratio %d:%d", c.name, got.HRatio, got.VRatio)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	if _, err := CVT(0, 1080, 60, CVTOptions{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("CVT zero width: %v", err)
	}
	if _, err := GTF(640, 480, 0, GTFOptions{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("GTF zero rate: %v", err)
	}
	if _, err := OVT(1920, 0, 16, 9, 60); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("OVT zero height: %v", err)
	}
}
