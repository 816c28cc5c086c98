package timings

import "fmt"

type mode struct {
	hact, vact     int
	hratio, vratio int
	pixclk         int
	rb             RB
	interlaced     bool
	hfp, hsync     int
	hbp            int
	posH           bool
	vfp, vsync     int
	vbp            int
	posV           bool
	hborder        int
	vborder        int
	evenVTotal     bool
}

func (m mode) timings() Timings {
	return Timings{
		HAct: m.hact, VAct: m.vact,
		HRatio: m.hratio, VRatio: m.vratio,
		PixclkKHz:  m.pixclk,
		RB:         m.rb,
		Interlaced: m.interlaced,
		HFP:        m.hfp, HSync: m.hsync, HBP: m.hbp, PosPolHSync: m.posH,
		VFP: m.vfp, VSync: m.vsync, VBP: m.vbp, PosPolVSync: m.posV,
		HBorder: m.hborder, VBorder: m.vborder,
		EvenVTotal: m.evenVTotal,
	}
}

type dmtMode struct {
	dmt int
	std int // two byte standard timing code, 0 if none
	cvt int // three byte CVT code, 0 if none
	t   mode
}

type establishedMode struct {
	dmt    int
	t      mode
	vendor string
}

// RID is a CTA-861.6 Video Format Resolution ID entry.
type RID struct {
	HAct, VAct     int
	HRatio, VRatio int
}

var rids = [...]RID{
	{},
	{1280, 720, 16, 9},
	{1280, 720, 64, 27},
	{1680, 720, 64, 27},
	{1920, 1080, 16, 9},
	{1920, 1080, 64, 27},
	{2560, 1080, 64, 27},
	{3840, 1080, 32, 9},
	{2560, 1440, 16, 9},
	{3440, 1440, 64, 27},
	{5120, 1440, 32, 9},
	{3840, 2160, 16, 9},
	{3840, 2160, 64, 27},
	{5120, 2160, 64, 27},
	{7680, 2160, 32, 9},
	{5120, 2880, 16, 9},
	{5120, 2880, 64, 27},
	{6880, 2880, 64, 27},
	{10240, 2880, 32, 9},
	{7680, 4320, 16, 9},
	{7680, 4320, 64, 27},
	{10240, 4320, 64, 27},
	{15360, 4320, 32, 9},
	{11520, 6480, 16, 9},
	{11520, 6480, 64, 27},
	{15360, 6480, 64, 27},
	{15360, 8640, 16, 9},
	{15360, 8640, 64, 27},
	{20480, 8640, 64, 27},
}

// VICs for rate indices 1..8 (24 to 120 Hz) of each RID.
var rid2vic = [len(rids)][8]int{
	1:  {60, 61, 62, 108, 19, 4, 41, 47},
	2:  {65, 66, 67, 109, 68, 69, 70, 71},
	3:  {79, 80, 81, 110, 82, 83, 84, 85},
	4:  {32, 33, 34, 111, 31, 16, 64, 63},
	5:  {72, 73, 74, 112, 75, 76, 77, 78},
	6:  {86, 87, 88, 113, 89, 90, 91, 92},
	11: {93, 94, 95, 114, 96, 97, 117, 118},
	12: {103, 104, 105, 116, 106, 107, 119, 120},
	13: {121, 122, 123, 124, 125, 126, 127, 193},
	19: {194, 195, 196, 197, 198, 199, 200, 201},
	20: {202, 203, 204, 205, 206, 207, 208, 209},
	21: {210, 211, 212, 213, 214, 215, 216, 217},
}

// VFRates maps a Video Format Data Block rate index to its frame rate.
var VFRates = [...]int{
	0, 24, 25, 30, 48, 50, 60, 100,
	120, 144, 200, 240, 300, 360, 400, 480,
}

var hdmiVICs = [...]int{95, 94, 93, 98}

// DMT IDs for the bits of an Established Timings III descriptor, starting
// at byte 6 bit 7.
var established3 = [...]int{
	0x01, 0x02, 0x03, 0x07, 0x0e, 0x0c, 0x13, 0x15,
	0x16, 0x17, 0x18, 0x19, 0x20, 0x21, 0x23, 0x25,
	0x27, 0x2e, 0x2f, 0x30, 0x31, 0x29, 0x2a, 0x2b,
	0x2c, 0x39, 0x3a, 0x3b, 0x3c, 0x33, 0x34, 0x35,
	0x36, 0x37, 0x3e, 0x3f, 0x41, 0x42, 0x44, 0x45,
	0x46, 0x47, 0x49, 0x4a,
}

// FindDMT returns the DMT timing with the given id.
func FindDMT(id int) (Timings, bool) {
	for _, d := range dmtModes {
		if d.dmt == id {
			return d.t.timings(), true
		}
	}
	return Timings{}, false
}

// FindStd looks up a DMT timing by its two byte standard timing code and
// returns the timing with its DMT id.
func FindStd(code int) (Timings, int, bool) {
	for _, d := range dmtModes {
		if d.std == code {
			return d.t.timings(), d.dmt, true
		}
	}
	return Timings{}, 0, false
}

// CloseMatchDMT returns the id of the first DMT that is a close match of t.
func CloseMatchDMT(t Timings) (int, bool) {
	for _, d := range dmtModes {
		if CloseMatch(t, d.t.timings()) {
			return d.dmt, true
		}
	}
	return 0, false
}

// FindVIC returns the CTA-861 timing for VIC 1-127 or 193-219.
func FindVIC(vic int) (Timings, bool) {
	switch {
	case vic > 0 && vic <= len(vicModes1):
		return vicModes1[vic-1].timings(), true
	case vic >= 193 && vic < 193+len(vicModes2):
		return vicModes2[vic-193].timings(), true
	}
	return Timings{}, false
}

// HDMIVICToVIC maps an HDMI VIC (1-4) to the equivalent CTA VIC, or 0.
func HDMIVICToVIC(hdmiVIC int) int {
	if hdmiVIC > 0 && hdmiVIC <= len(hdmiVICs) {
		return hdmiVICs[hdmiVIC-1]
	}
	return 0
}

// FindHDMIVIC returns the timing of an HDMI VIC.
func FindHDMIVIC(hdmiVIC int) (Timings, bool) {
	return FindVIC(HDMIVICToVIC(hdmiVIC))
}

func eachVIC(fn func(vic int, t Timings) bool) {
	for i, m := range vicModes1 {
		if fn(i+1, m.timings()) {
			return
		}
	}
	for i, m := range vicModes2 {
		if fn(i+193, m.timings()) {
			return
		}
	}
}

// CloseMatchVIC returns the first VIC that is a close match of t.
func CloseMatchVIC(t Timings) (int, bool) {
	found := 0
	eachVIC(func(vic int, v Timings) bool {
		if CloseMatch(t, v) {
			found = vic
			return true
		}
		return false
	})
	return found, found != 0
}

// MatchVIC returns the first VIC identical to t.
func MatchVIC(t Timings) (int, bool) {
	found := 0
	eachVIC(func(vic int, v Timings) bool {
		if Match(t, v) {
			found = vic
			return true
		}
		return false
	})
	return found, found != 0
}

// FindRID returns the resolution of RID 1-28.
func FindRID(rid int) (RID, bool) {
	if rid > 0 && rid < len(rids) {
		return rids[rid], true
	}
	return RID{}, false
}

// RIDToVIC returns the VIC equivalent to a RID at a Video Format rate
// index, or 0 when none exists. Rates above 120 Hz never map to a VIC.
func RIDToVIC(rid, rateIndex int) int {
	if rid <= 0 || rid >= len(rids) || rateIndex <= 0 || rateIndex >= len(VFRates) {
		return 0
	}
	if VFRates[rateIndex] > 120 {
		return 0
	}
	return rid2vic[rid][rateIndex-1]
}

// RIDFPSToVIC returns the VIC equivalent to a RID at the given frame rate.
func RIDFPSToVIC(rid, fps int) int {
	if rid <= 0 || rid >= len(rids) {
		return 0
	}
	for i := 1; i < len(VFRates) && i <= 8; i++ {
		if VFRates[i] == fps {
			return rid2vic[rid][i-1]
		}
	}
	return 0
}

// Established12 returns the timing of bit i of the Established Timings I
// and II bytes (0x23 bit 7 is index 0) and the label used to report it.
func Established12(i int) (Timings, string, bool) {
	if i < 0 || i >= len(establishedModes12) {
		return Timings{}, "", false
	}
	e := establishedModes12[i]
	if e.dmt != 0 {
		t, ok := FindDMT(e.dmt)
		return t, dmtLabel(e.dmt), ok
	}
	return e.t.timings(), e.vendor, true
}

// NumEstablished12 is the number of Established Timings I and II bits.
func NumEstablished12() int { return len(establishedModes12) }

// Established3 returns the DMT id for bit i of an Established Timings III
// descriptor, counting from byte 6 bit 7.
func Established3(i int) (int, bool) {
	if i < 0 || i >= len(established3) {
		return 0, false
	}
	return established3[i], true
}

// NumEstablished3 is the number of defined Established Timings III bits.
func NumEstablished3() int { return len(established3) }

func dmtLabel(id int) string { return fmt.Sprintf("DMT 0x%02x", id) }

// DMTEntry is one row of the DMT registry.
type DMTEntry struct {
	ID  int
	Std int
	CVT int
	T   Timings
}

// DMTs returns the DMT registry in id order.
func DMTs() []DMTEntry {
	out := make([]DMTEntry, 0, len(dmtModes))
	for _, d := range dmtModes {
		out = append(out, DMTEntry{ID: d.dmt, Std: d.std, CVT: d.cvt, T: d.t.timings()})
	}
	return out
}

// VICEntry is one row of the CTA-861 VIC registry.
type VICEntry struct {
	VIC int
	T   Timings
}

// VICs returns VIC 1-127 followed by VIC 193-219.
func VICs() []VICEntry {
	out := make([]VICEntry, 0, len(vicModes1)+len(vicModes2))
	eachVIC(func(vic int, t Timings) bool {
		out = append(out, VICEntry{VIC: vic, T: t})
		return false
	})
	return out
}

// NumRIDs is one past the highest defined RID.
func NumRIDs() int { return len(rids) }

// NumHDMIVICs is the number of defined HDMI VICs.
func NumHDMIVICs() int { return len(hdmiVICs) }
