package edid

import (
	"fmt"

	"example.com/edidgate/internal/calc"
	"example.com/edidgate/internal/timings"
)

// cvtMode recomputes t as a CVT timing at refresh, keeping its reduced
// blanking selection and aspect ratio.
func cvtMode(refresh int, t timings.Timings) timings.Timings {
	return cvtModeBlank(refresh, t, 0, 460, false)
}

// cvtModeBlank is cvtMode with explicit RBv3 blanking parameters.
func cvtModeBlank(refresh int, t timings.Timings, hBlank, vBlank int, earlyVSync bool) timings.Timings {
	out, err := calc.CVT(t.HAct, t.VAct, float64(refresh), calc.CVTOptions{
		RB:         t.RB.Base(),
		Interlaced: t.Interlaced,
		Alt:        t.RB.Alt(),
		RBHBlank:   hBlank,
		RBVBlank:   vBlank,
		EarlyVSync: earlyVSync,
	})
	if err != nil {
		return t
	}
	out.HRatio, out.VRatio = t.HRatio, t.VRatio
	return out
}

// gtfMode recomputes t as a default-curve GTF timing at refresh.
func gtfMode(refresh int, t timings.Timings) timings.Timings {
	out, err := calc.GTF(t.HAct, t.VAct, float64(refresh), calc.GTFOptions{Interlaced: t.Interlaced})
	if err != nil {
		return t
	}
	out.HRatio, out.VRatio = t.HRatio, t.VRatio
	return out
}

var cvtAspects = [4][2]int{{4, 3}, {16, 9}, {16, 10}, {15, 9}}

// detailedCVTDescriptor decodes one 3-byte CVT code. Unused codes are
// all zero and are skipped, except for the first.
func (s *state) detailedCVTDescriptor(prefix string, x []byte, first bool) {
	if !first && x[0] == 0 && x[1] == 0 && x[2] == 0 {
		return
	}
	var t timings.Timings
	t.VAct = int(x[0])
	if t.VAct == 0 {
		s.fail("CVT byte 0 is 0, which is a reserved value.\n")
	}
	t.VAct |= int(x[1]&0xf0) << 4
	t.VAct++
	t.VAct *= 2
	a := cvtAspects[(x[1]&0x0c)>>2]
	t.HRatio, t.VRatio = a[0], a[1]
	t.HAct = 8 * ((t.VAct * t.HRatio / t.VRatio) / 8)

	if x[1]&0x03 != 0 {
		s.fail("Reserved bits of CVT byte 1 are non-zero.\n")
	}
	if x[2]&0x80 != 0 {
		s.fail("Reserved bit of CVT byte 2 is non-zero.\n")
	}
	if x[2]&0x1f == 0 {
		s.fail("CVT byte 2 does not support any vertical rates.\n")
	}
	preferred := int(x[2]&0x60) >> 5
	if preferred == 1 && x[2]&0x01 != 0 {
		preferred = 4
	}
	if x[2]&(1<<(4-preferred)) == 0 {
		s.fail("The preferred CVT Vertical Rate is not supported.\n")
	}

	const pref = "preferred vertical rate"
	flag := func(idx int) string { return boolStr(preferred == idx, pref, "") }
	for i, rate := range []int{50, 60, 75, 85} {
		if x[2]&(0x10>>i) != 0 {
			s.printTimings(prefix, cvtMode(rate, t), "CVT", flag(i))
		}
	}
	if x[2]&0x01 != 0 {
		t.RB = timings.RBCVTv1
		s.printTimings(prefix, cvtMode(60, t), "CVT", flag(4))
	}
}

// printStandardTiming decodes a 2-byte standard timing code. Codes that are
// not in the DMT table are synthesized with CVT and/or GTF depending on
// the EDID version.
func (s *state) printStandardTiming(prefix string, b1, b2 byte, gtfOnly, showBoth bool) {
	if b1 <= 0x01 {
		if b1 != 0x01 || b2 != 0x01 {
			s.fail("Use 0x0101 as the invalid Standard Timings code, not 0x%02x%02x.\n", b1, b2)
		}
		return
	}
	if t, dmt, ok := timings.FindStd(int(b1)<<8 | int(b2)); ok {
		s.printTimings(prefix, t, fmt.Sprintf("DMT 0x%02x", dmt), "")
		return
	}

	hact := (int(b1) + 31) * 8
	var hratio, vratio int
	switch (b2 >> 6) & 0x3 {
	case 0x00:
		if gtfOnly || showBoth || s.base.edidMinor >= 3 {
			hratio, vratio = 16, 10
		} else {
			hratio, vratio = 1, 1
		}
	case 0x01:
		hratio, vratio = 4, 3
	case 0x02:
		hratio, vratio = 5, 4
	case 0x03:
		hratio, vratio = 16, 9
	}
	vact := int(float64(hact) * float64(vratio) / float64(hratio))
	refresh := int(b2&0x3f) + 60

	formula := timings.Timings{HAct: hact, VAct: vact, HRatio: hratio, VRatio: vratio}

	switch {
	case !gtfOnly && (showBoth || s.base.edidMinor >= 4):
		if showBoth || s.base.supportsCVT {
			s.printTimings(prefix, cvtMode(refresh, formula), "CVT     ",
				boolStr(showBoth, "", "EDID 1.4 source"))
		}
		// An EDID 1.3 source assumes GTF, so both have to be supported.
		g := gtfMode(refresh, formula)
		if s.base.supportsCVT {
			s.printTimings(prefix, g, "GTF     ", "EDID 1.3 source")
		} else {
			s.printTimings(prefix, g, "GTF     ", "")
		}
	case gtfOnly || s.base.edidMinor >= 2:
		s.printTimings(prefix, gtfMode(refresh, formula), "GTF     ", "")
	default:
		s.printf("%sUnknown : %5dx%-5d %3d.000 Hz %3d:%d\n", prefix, hact, vact, refresh, hratio, vratio)
		s.minVertFreqHz = min(s.minVertFreqHz, float64(refresh))
		s.maxVertFreqHz = max(s.maxVertFreqHz, float64(refresh))
	}

	// EDID 1.4 Ref. D-8
	if vact&1 != 0 {
		s.warn("Standard Timing %dx%d has a dubious odd vertical resolution.\n", hact, vact)
	}
}

func (s *state) detailedDisplayRangeLimits(x []byte) {
	var hMaxOffset, hMinOffset, vMaxOffset, vMinOffset int
	isCVT, hasSecGTF := false, false
	var rangeClass string

	s.dataBlock = "Display Range Limits"
	s.printf("    %s:\n", s.dataBlock)
	s.base.hasDisplayRangeDescriptor = true

	if s.base.edidMinor >= 4 {
		if x[4]&0x02 != 0 {
			vMaxOffset = 255
			if x[4]&0x01 != 0 {
				vMinOffset = 255
			}
		}
		if x[4]&0x08 != 0 {
			hMaxOffset = 255
			if x[4]&0x04 != 0 {
				hMinOffset = 255
			}
		}
	}

	// Not a bitfield, despite the values.
	switch x[10] {
	case 0x00:
		rangeClass = "GTF"
		if s.base.edidMinor >= 4 && !s.base.supportsContinuousFreq {
			s.fail("GTF is supported, but the display does not support continuous frequencies.\n")
		}
		if s.base.edidMinor >= 4 {
			s.warn("GTF support is deprecated in EDID 1.4.\n")
		}
	case 0x01:
		rangeClass = "Range Limits Only"
		if s.base.edidMinor < 4 {
			s.fail("'%s' is not allowed for EDID < 1.4.\n", rangeClass)
		}
	case 0x02:
		rangeClass = "Secondary GTF"
		if s.base.edidMinor >= 4 && !s.base.supportsContinuousFreq {
			s.fail("Secondary GTF is supported, but the display does not support continuous frequencies.\n")
		}
		if s.base.edidMinor >= 4 {
			s.warn("GTF support is deprecated in EDID 1.4.\n")
		}
		hasSecGTF = true
	case 0x04:
		rangeClass = "CVT"
		isCVT = true
		if s.base.edidMinor < 4 {
			s.fail("'%s' is not allowed for EDID < 1.4.\n", rangeClass)
		} else if !s.base.supportsContinuousFreq {
			s.fail("CVT is supported, but the display does not support continuous frequencies.\n")
		}
	default:
		s.fail("Unknown range class (0x%02x).\n", x[10])
		rangeClass = "Unknown (" + utohex(x[10]) + ")"
	}

	minV, maxV := int(x[5])+vMinOffset, int(x[6])+vMaxOffset
	minH, maxH := int(x[7])+hMinOffset, int(x[8])+hMaxOffset
	if minV > maxV {
		s.fail("Min vertical rate > max vertical rate.\n")
	}
	s.base.minDisplayVertFreqHz = minV
	s.base.maxDisplayVertFreqHz = maxV
	if minH > maxH {
		s.fail("Min horizontal freq > max horizontal freq.\n")
	}
	s.base.minDisplayHorFreqHz = minH * 1000
	s.base.maxDisplayHorFreqHz = maxH * 1000
	s.printf("      Monitor ranges (%s): %d-%d Hz V, %d-%d kHz H", rangeClass, minV, maxV, minH, maxH)

	// EDID 1.3 caps both maxima at 255. Double them to avoid false range
	// check failures.
	if s.base.edidMinor < 4 && x[8] == 0xff {
		s.base.maxDisplayHorFreqHz *= 2
	}
	if s.base.edidMinor < 4 && x[6] == 0xff {
		s.base.maxDisplayVertFreqHz *= 2
	}

	if x[9] != 0 {
		s.base.maxDisplayPixclkKHz = int(x[9]) * 10000
		s.printf(", max dotclock %d MHz\n", int(x[9])*10)
	} else {
		s.printf("\n")
		if s.base.edidMinor >= 4 {
			s.fail("EDID 1.4 block does not set max dotclock.\n")
		}
	}

	switch {
	case hasSecGTF:
		if x[11] != 0 {
			s.fail("Byte 11 is 0x%02x instead of 0x00.\n", x[11])
		}
		if memchk(x[12:18], 0) {
			s.fail("Zeroed Secondary Curve Block.\n")
		} else {
			s.printf("      GTF Secondary Curve Block:\n")
			s.printf("        Start frequency: %d kHz\n", int(x[12])*2)
			s.printf("        C: %.1f%%\n", float64(x[13])/2.0)
			s.printf("        M: %d%%/kHz\n", int(x[15])<<8|int(x[14]))
			s.printf("        K: %d\n", x[16])
			s.printf("        J: %.1f%%\n", float64(x[17])/2.0)
		}
	case isCVT:
		s.printf("      CVT version %d.%d\n", (x[11]&0xf0)>>4, x[11]&0x0f)
		if x[12]&0xfc != 0 {
			rawOffset := int(x[12]&0xfc) >> 2
			s.printf("      Real max dotclock: %.2f MHz\n", float64(int(x[9])*10)-float64(rawOffset)*0.25)
			if rawOffset >= 40 {
				s.warn("CVT block corrects dotclock by more than 9.75 MHz.\n")
			}
		}
		maxHPixels := (int(x[12]&0x03)<<8 | int(x[13])) * 8
		if maxHPixels != 0 {
			s.printf("      Max active pixels per line: %d\n", maxHPixels)
		}
		s.printf("      Supported aspect ratios:%s%s%s%s%s\n",
			boolStr(x[14]&0x80 != 0, " 4:3", ""),
			boolStr(x[14]&0x40 != 0, " 16:9", ""),
			boolStr(x[14]&0x20 != 0, " 16:10", ""),
			boolStr(x[14]&0x10 != 0, " 5:4", ""),
			boolStr(x[14]&0x08 != 0, " 15:9", ""))
		if x[14]&0x07 != 0 {
			s.fail("Reserved bits of byte 14 are non-zero.\n")
		}
		s.printf("      Preferred aspect ratio: ")
		pa := (x[15] & 0xe0) >> 5
		switch pa {
		case 0x00:
			s.printf("4:3")
		case 0x01:
			s.printf("16:9")
		case 0x02:
			s.printf("16:10")
		case 0x03:
			s.printf("5:4")
		case 0x04:
			s.printf("15:9")
		default:
			s.printf("Unknown (0x%02x)", pa)
			s.fail("Invalid preferred aspect ratio 0x%02x.\n", pa)
		}
		s.printf("\n")
		if x[15]&0x08 != 0 {
			s.printf("      Supports CVT standard blanking\n")
		}
		if x[15]&0x10 != 0 {
			s.printf("      Supports CVT reduced blanking\n")
		}
		if x[15]&0x07 != 0 {
			s.fail("Reserved bits of byte 15 are non-zero.\n")
		}
		if x[16]&0xf0 != 0 {
			s.printf("      Supported display scaling:\n")
			if x[16]&0x80 != 0 {
				s.printf("        Horizontal shrink\n")
			}
			if x[16]&0x40 != 0 {
				s.printf("        Horizontal stretch\n")
			}
			if x[16]&0x20 != 0 {
				s.printf("        Vertical shrink\n")
			}
			if x[16]&0x10 != 0 {
				s.printf("        Vertical stretch\n")
			}
		}
		if x[16]&0x0f != 0 {
			s.fail("Reserved bits of byte 16 are non-zero.\n")
		}
		if x[17] != 0 {
			s.printf("      Preferred vertical refresh: %d Hz\n", x[17])
		} else {
			s.warn("CVT block does not set preferred refresh rate.\n")
		}
	default:
		if x[11] != 0x0a {
			s.fail("Byte 11 is 0x%02x instead of 0x0a.\n", x[11])
		}
		for i := 12; i <= 17; i++ {
			if x[i] != 0x20 {
				s.fail("Bytes 12-17 must be 0x20.\n")
				break
			}
		}
	}
}

func seqDelay(v byte) string {
	if v == 0 {
		return "VGA controller default"
	}
	return fmt.Sprintf("%d ms", int(v)*10)
}

// detailedEPI decodes an Embedded Panel Interface descriptor.
func (s *state) detailedEPI(x []byte) {
	s.dataBlock = "EPI Descriptor"
	s.printf("    %s:\n", s.dataBlock)

	v := x[5] & 0x07
	s.printf("      Bits per pixel: %d\n", 18+int(v)*6)
	if v > 2 {
		s.fail("Invalid bits per pixel.\n")
	}
	v = (x[5] & 0x18) >> 3
	s.printf("      Pixels per clock: %d\n", 1<<v)
	if v > 2 {
		s.fail("Invalid pixels per clock.\n")
	}
	v = (x[5] & 0x60) >> 5
	s.printf("      Data color mapping: %sconventional\n", boolStr(v != 0, "non-", ""))
	if v > 1 {
		s.fail("Unknown data color mapping (0x%02x).\n", v)
	}
	if x[5]&0x80 != 0 {
		s.fail("Non-zero reserved field in byte 5.\n")
	}

	v = x[6] & 0x0f
	s.printf("      Interface type: ")
	switch v {
	case 0x00:
		s.printf("LVDS TFT\n")
	case 0x01:
		s.printf("monoSTN 4/8 Bit\n")
	case 0x02:
		s.printf("colorSTN 8/16 Bit\n")
	case 0x03:
		s.printf("18 Bit TFT\n")
	case 0x04:
		s.printf("24 Bit TFT\n")
	case 0x05:
		s.printf("TMDS\n")
	default:
		s.printf("Unknown (0x%02x)\n", v)
		s.fail("Invalid interface type 0x%02x.\n", v)
	}
	s.printf("      DE polarity: DE %s active\n", boolStr(x[6]&0x10 != 0, "low", "high"))
	s.printf("      FPSCLK polarity: FPSCLK %sinverted\n", boolStr(x[6]&0x20 != 0, "", "not "))
	if x[6]&0xc0 != 0 {
		s.fail("Non-zero reserved field in byte 6.\n")
	}

	s.printf("      Vertical display mode: %s\n", boolStr(x[7]&0x01 != 0, "Up/Down reverse mode", "normal"))
	s.printf("      Horizontal display mode: %s\n", boolStr(x[7]&0x02 != 0, "Left/Right reverse mode", "normal"))
	if x[7]&0xfc != 0 {
		s.fail("Non-zero reserved field in byte 7.\n")
	}

	s.printf("      Total power on sequencing delay: %s\n", seqDelay(x[8]&0x0f))
	s.printf("      Total power off sequencing delay: %s\n", seqDelay((x[8]&0xf0)>>4))
	s.printf("      Contrast power on sequencing delay: %s\n", seqDelay(x[9]&0x0f))
	s.printf("      Contrast power off sequencing delay: %s\n", seqDelay((x[9]&0xf0)>>4))

	ignored := boolStr(x[10]&0x80 != 0, "", " (ignored)")
	s.printf("      Backlight brightness control: %d steps%s\n", x[10]&0x2f, ignored)
	s.printf("      Backlight enable at boot: %s%s\n", boolStr(x[10]&0x40 != 0, "off", "on"), ignored)
	s.printf("      Backlight control enable: %s\n", boolStr(x[10]&0x80 != 0, "enabled", "disabled"))

	ignored = boolStr(x[11]&0x80 != 0, "", " (ignored)")
	s.printf("      Contrast voltable control: %d steps%s\n", x[11]&0x2f, ignored)
	if x[11]&0x40 != 0 {
		s.fail("Non-zero reserved field in byte 11.\n")
	}
	s.printf("      Contrast control enable: %s\n", boolStr(x[11]&0x80 != 0, "enabled", "disabled"))

	if x[12] != 0 || x[13] != 0 || x[14] != 0 || x[15] != 0 || x[16] != 0 {
		s.fail("Non-zero values in reserved bytes 12-16.\n")
	}
	s.printf("      EPI Version: %d.%d\n", (x[17]&0xf0)>>4, x[17]&0x0f)
}
