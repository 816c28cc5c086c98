package edid

import (
	"fmt"

	"example.com/edidgate/internal/calc"
	"example.com/edidgate/internal/timings"
)

var dispidAspects = [8]struct {
	label  string
	hr, vr int
}{
	{"1:1", 1, 1},
	{"5:4", 5, 4},
	{"4:3", 4, 3},
	{"15:9", 15, 9},
	{"16:9", 16, 9},
	{"16:10", 16, 10},
	{"64:27", 64, 27},
	{"256:135", 256, 135},
}

// dispidAspect appends the aspect ratio code to flags and sets the
// ratio of t. Codes 8 and up leave the ratio at def.
func (s *state) dispidAspect(code byte, t *timings.Timings, def int) string {
	switch {
	case code < 8:
		a := dispidAspects[code]
		t.HRatio, t.VRatio = a.hr, a.vr
		return "aspect " + a.label
	case code == 8:
		t.HRatio, t.VRatio = def, def
		return "aspect undefined"
	}
	t.HRatio, t.VRatio = def, def
	s.fail("Unknown aspect 0x%02x.\n", code)
	return "aspect reserved"
}

func (s *state) dispidStereo(flags string, code byte) string {
	switch code & 3 {
	case 0:
		return flags + ", no 3D stereo"
	case 1:
		s.dispid.hasStereo = true
		return flags + ", 3D stereo"
	case 2:
		s.dispid.hasStereo = true
		return flags + ", 3D stereo depends on user action"
	}
	s.fail("Reserved stereo 0x03.\n")
	return flags + ", reserved"
}

func ratioFlags(t *timings.Timings) string {
	timings.CalcRatio(t)
	return fmt.Sprintf("aspect %d:%d", t.HRatio, t.VRatio)
}

func le16(x []byte) int { return int(x[0]) | int(x[1])<<8 }

func halveVertical(t *timings.Timings) {
	t.Interlaced = true
	t.VFP /= 2
	t.VSync /= 2
	t.VBP /= 2
}

// parseDisplayIDType17Timing decodes a 20-byte Type I or Type VII
// detailed timing. With isCTA set the timing is a CTA-861 T7VTDB and is
// recorded as a VTDB.
func (s *state) parseDisplayIDType17Timing(x []byte, type7 bool, blockRev int, isCTA bool) {
	var t timings.Timings
	name := "DTD"
	if isCTA {
		name = fmt.Sprintf("VTDB %d", len(s.cta.vecVTDBs)+1)
	}

	s.dispid.hasType17 = true
	mult := 10
	if type7 {
		mult = 1
	}
	t.PixclkKHz = mult * (1 + le24(x))
	flags := s.dispidAspect(x[3]&0xf, &t, 0)
	flags = s.dispidStereo(flags, x[3]>>5)
	if blockRev >= 2 && x[3]&0x80 != 0 {
		flags += ", YCbCr 4:2:0"
		s.dispid.hasYCbCr420 = true
	}

	t.HAct = 1 + le16(x[4:])
	hbl := 1 + le16(x[6:])
	t.HFP = 1 + (int(x[8]) | int(x[9]&0x7f)<<8)
	t.HSync = 1 + le16(x[10:])
	t.HBP = hbl - t.HFP - t.HSync
	t.PosPolHSync = x[9]&0x80 != 0
	t.VAct = 1 + le16(x[12:])
	vbl := 1 + le16(x[14:])
	t.VFP = 1 + (int(x[16]) | int(x[17]&0x7f)<<8)
	t.VSync = 1 + le16(x[18:])
	t.VBP = vbl - t.VFP - t.VSync
	t.PosPolVSync = x[17]&0x80 != 0

	if x[3]&0x10 != 0 {
		halveVertical(&t)
	}
	if blockRev < 2 && x[3]&0x80 != 0 {
		flags += ", preferred"
		s.dispid.preferredTimings = append(s.dispid.preferredTimings, timings.NewExt(t, "DTD", flags))
	}

	s.printTimingsOpts("    ", &t, name, flags, true, true, ntscOption)
	if !isCTA {
		return
	}
	s.cta.vecVTDBs = append(s.cta.vecVTDBs, timings.NewExt(t, name, flags))

	// A T7VTDB is only needed when neither a DTD nor a T10VTDB can
	// express the timing.
	if t.HAct <= 4095 && t.VAct <= 4095 && t.PixclkKHz <= 655360 && x[3]&0xe0 == 0 {
		s.fail("This T7VTDB can be represented as an 18-byte DTD.\n")
		return
	}
	htot := t.HTotal()
	vtot := t.VAct + t.VFP + t.VSync + t.VBP
	if htot*vtot == 0 {
		s.fail("Cannot calculate refresh rate: htot * vtot is 0.\n")
		return
	}
	refresh := float64(t.PixclkKHz * 1000 / (htot * vtot))
	candidates := []calc.CVTOptions{
		{RB: timings.RBNone, RBVBlank: 460},
		{RB: timings.RBCVTv1, RBVBlank: 460},
		{RB: timings.RBCVTv2, RBVBlank: 460},
		{RB: timings.RBCVTv3, RBVBlank: 460},
		{RB: timings.RBCVTv3, RBVBlank: 460, Alt: true},
	}
	for _, opts := range candidates {
		cvt, err := calc.CVT(t.HAct, t.VAct, refresh, opts)
		if err == nil && timings.Match(t, cvt) {
			s.fail("This T7VTDB can be represented as a T10VTDB.\n")
			return
		}
	}
}

func (s *state) parseDisplayIDType2Timing(x []byte) {
	var t timings.Timings
	t.PixclkKHz = 10 * (1 + le24(x))
	t.HAct = 8 + 8*(int(x[4])|int(x[5]&0x01)<<8)
	hbl := 8 + 8*int(x[5]>>1)
	t.HFP = 8 + 8*int(x[6]>>4)
	t.HSync = 8 + 8*int(x[6]&0xf)
	t.HBP = hbl - t.HFP - t.HSync
	t.PosPolHSync = x[3]&0x08 != 0
	t.VAct = 1 + (int(x[7]) | int(x[8]&0xf)<<8)
	vbl := 1 + int(x[9])
	t.VFP = 1 + int(x[10]>>4)
	t.VSync = 1 + int(x[10]&0xf)
	t.VBP = vbl - t.VFP - t.VSync
	t.PosPolVSync = x[3]&0x04 != 0

	if x[3]&0x10 != 0 {
		halveVertical(&t)
	}
	flags := s.dispidStereo(ratioFlags(&t), x[3]>>5)
	if x[3]&0x80 != 0 {
		flags += ", preferred"
		s.dispid.preferredTimings = append(s.dispid.preferredTimings, timings.NewExt(t, "DTD", flags))
	}
	s.printTimingsOpts("    ", &t, "DTD", flags, true, true, ntscOption)
}

func (s *state) parseDisplayIDType3Timing(x []byte) {
	var t timings.Timings
	flags := s.dispidAspect(x[0]&0xf, &t, 1)
	if (x[0]&0x70)>>4 == 1 {
		t.RB = timings.RBCVTv1
	}
	t.HAct = 8 + 8*int(x[1])
	t.VAct = t.HAct * t.VRatio / t.HRatio
	t = cvtMode(1+int(x[2]&0x7f), t)

	if x[0]&0x80 != 0 {
		flags += ", preferred"
		s.dispid.preferredTimings = append(s.dispid.preferredTimings, timings.NewExt(t, "CVT", flags))
	}
	s.printTimings("    ", t, "CVT", flags)
}

// parseDisplayIDType48Timing prints a timing code of a Type IV or Type
// VIII block. In a CTA-861 T8VTDB the first known code becomes the T8VTDB
// timing.
func (s *state) parseDisplayIDType48Timing(typ byte, id int, isCTA bool) {
	var (
		t    timings.Timings
		ok   bool
		name string
	)
	switch typ {
	case 0:
		t, ok = timings.FindDMT(id)
		name = fmt.Sprintf("DMT 0x%02x", id)
	case 1:
		t, ok = timings.FindVIC(id)
		name = fmt.Sprintf("VIC %3d", id)
	case 2:
		t, ok = timings.FindHDMIVIC(id)
		name = fmt.Sprintf("HDMI VIC %d", id)
	}
	if !ok {
		return
	}
	s.printTimings("    ", t, name, "")
	if isCTA && !s.cta.t8vtdb.Valid() {
		s.cta.t8vtdb = timings.NewExt(t, name, "")
	}
}

func (s *state) parseDisplayIDType5Timing(x []byte) {
	var t timings.Timings
	t.HAct = 1 + le16(x[2:])
	t.VAct = 1 + le16(x[4:])
	flags := s.dispidStereo(ratioFlags(&t), x[0]>>5)
	if x[0]&0x10 != 0 {
		flags += ", refresh rate * (1000/1001) supported"
	}
	t.RB = timings.RBCVTv2
	switch x[0] & 0x03 {
	case 0:
	case 1:
		s.warn("Unexpected use of 'custom reduced blanking'.\n")
	default:
		s.fail("Invalid Timing Formula.\n")
	}
	t = cvtMode(1+int(x[6]), t)

	if x[0]&0x80 != 0 {
		flags += ", preferred"
		s.dispid.preferredTimings = append(s.dispid.preferredTimings, timings.NewExt(t, "CVT", flags))
	}
	s.printTimings("    ", t, "CVT", flags)
}

func (s *state) parseDisplayIDType6Timing(x []byte) {
	x = pad(x, 17)
	var t timings.Timings
	t.PixclkKHz = 1 + (int(x[0]) | int(x[1])<<8 | int(x[2]&0x3f)<<16)
	t.HAct = 1 + (int(x[3]) | int(x[4]&0x3f)<<8)
	t.PosPolHSync = x[4]&0x80 != 0
	hbl := 1 + (int(x[7]) | int(x[9]&0xf)<<8)
	t.HFP = 1 + (int(x[8]) | int(x[9]&0xf0)<<4)
	t.HSync = 1 + int(x[10])
	t.HBP = hbl - t.HFP - t.HSync
	t.VAct = 1 + (int(x[5]) | int(x[6]&0x3f)<<8)
	t.PosPolVSync = x[6]&0x80 != 0
	vbl := 1 + int(x[11])
	t.VFP = 1 + int(x[12])
	t.VSync = 1 + int(x[13]&0x0f)
	t.VBP = vbl - t.VFP - t.VSync

	if x[13]&0x80 != 0 {
		halveVertical(&t)
	}
	flags := ratioFlags(&t)
	if x[2]&0x40 != 0 {
		aspectMult := float64(x[14]) * 3.0 / 256.0
		sizeMult := 1 + int(x[16]>>4)
		t.VSizeMM = sizeMult * (1 + (int(x[15]) | int(x[16]&0xf)<<8))
		t.HSizeMM = int(float64(t.VSizeMM) * aspectMult)
	}
	flags = s.dispidStereo(flags, x[13]>>5)
	if x[2]&0x80 != 0 {
		flags += ", preferred"
		s.dispid.preferredTimings = append(s.dispid.preferredTimings, timings.NewExt(t, "DTD", flags))
	}
	s.printTimingsOpts("    ", &t, "DTD", flags, true, true, ntscOption)
}

func (s *state) parseDisplayIDType9Timing(x []byte) {
	var t timings.Timings
	t.HAct = 1 + le16(x[1:])
	t.VAct = 1 + le16(x[3:])
	flags := s.dispidStereo(ratioFlags(&t), x[0]>>5)
	if x[0]&0x10 != 0 {
		flags += ", refresh rate * (1000/1001) supported"
	}
	switch x[0] & 0x07 {
	case 1:
		t.RB = timings.RBCVTv1
	case 2:
		t.RB = timings.RBCVTv2
	}
	t = cvtMode(1+int(x[5]), t)
	s.printTimings("    ", t, "CVT", flags)
}

// parseDisplayIDType10Timing decodes a formula-based Type X timing of sz
// bytes (6, 7 or 8). With isCTA set it is a CTA-861 T10VTDB entry.
func (s *state) parseDisplayIDType10Timing(x []byte, sz int, isCTA bool) {
	x = pad(x, 8)
	var t timings.Timings
	name := "CVT"
	if isCTA {
		name = fmt.Sprintf("VTDB %d", len(s.cta.vecVTDBs)+1)
	}

	t.HAct = 1 + le16(x[1:])
	t.VAct = 1 + le16(x[3:])
	flags := s.dispidStereo(ratioFlags(&t), x[0]>>5)

	switch x[0] & 0x07 {
	case 1:
		t.RB = timings.RBCVTv1
	case 2:
		t.RB = timings.RBCVTv2
	case 3:
		t.RB = timings.RBCVTv3
	}
	rb := t.RB
	hBlank := 0
	if rb == timings.RBCVTv3 {
		hBlank = 80
	}
	altMinVBlank := sz >= 8 && x[7]&1 != 0
	vMinBlank := 460
	if altMinVBlank {
		vMinBlank = 300
	}
	vBlank := vMinBlank
	earlyVSync := false

	if x[0]&0x10 != 0 {
		switch rb {
		case timings.RBCVTv2:
			flags += ", refresh rate * (1000/1001) supported"
			t.RB |= timings.RBAlt
		case timings.RBCVTv3:
			flags += ", hblank is 160 pixels"
			t.RB |= timings.RBAlt
			hBlank = 160
		default:
			s.fail("VR_HB must be 0.\n")
		}
	}
	if x[0]&0x80 != 0 {
		flags += ", YCbCr 4:2:0"
		s.dispid.hasYCbCr420 = true
	}
	if x[0]&0x08 != 0 {
		if rb == timings.RBCVTv3 {
			earlyVSync = true
			flags += ", early-vsync"
		} else {
			s.fail("EVS must be 0.\n")
		}
	}

	refresh := 1 + int(x[5])
	if sz != 6 {
		refresh += int(x[6]&3) << 8
	}
	if sz > 6 {
		if rb == timings.RBCVTv3 {
			delta := int(x[6]>>2) & 7
			switch {
			case hBlank == 80:
				hBlank = 80 + 8*delta
			case delta <= 5:
				hBlank = 160 + 8*delta
			default:
				hBlank = 160 - (delta-5)*8
			}
			if delta != 0 {
				flags += fmt.Sprintf(", delta-hblank=%d", delta)
			}
			step := 35
			if altMinVBlank {
				step = 20
			}
			vBlank += int(x[6]>>5) * step
			if vBlank > vMinBlank {
				flags += fmt.Sprintf(", add-vblank=%d", vBlank-vMinBlank)
			}
		} else {
			if x[6]&0xe0 != 0 {
				s.fail("Additional_Vertical_Blank_Time must be 0.\n")
			}
			if x[6]&0x1c != 0 {
				s.fail("Delta_Horizontal_Blank must be 0.\n")
			}
		}
	}

	t = cvtModeBlank(refresh, t, hBlank, vBlank, earlyVSync)
	s.printTimings("    ", t, name, flags)
	if isCTA {
		s.cta.vecVTDBs = append(s.cta.vecVTDBs, timings.NewExt(t, name, flags))
	}
}
