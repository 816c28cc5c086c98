package edid

import (
	"strings"

	"example.com/edidgate/internal/timings"
)

// NTSC modes for printTimingsOpts.
const (
	ntscNever  = 0
	ntscAlways = 1
	ntscOption = 2 // only when Options.NTSC is set
)

func (s *state) printTimings(prefix string, t timings.Timings, typ, flags string) bool {
	return s.printTimingsOpts(prefix, &t, typ, flags, false, true, ntscOption)
}

func (s *state) printTimingsExt(prefix string, e timings.Ext, detailed, doChecks bool) bool {
	return s.printTimingsOpts(prefix, &e.T, e.Type, e.Flags, detailed, doChecks, ntscOption)
}

// printTimingsOpts prints a timing line and, unless doChecks is false,
// validates the timing and folds it into the observed frequency ranges.
// A nil t is an unknown timing.
func (s *state) printTimingsOpts(prefix string, t *timings.Timings, typ, flags string,
	detailed, doChecks bool, ntsc int) bool {
	if t == nil {
		if doChecks {
			s.fail("Unknown video timings.\n")
		}
		return false
	}
	if detailed && s.opts.ShortTimings {
		detailed = false
	}
	if s.opts.LongTimings {
		detailed = true
	}

	vact := t.VAct
	hbl := t.HBlank()
	vbl := t.VBlank()
	horFreqKHz := t.HorFreqKHz()
	if t.Interlaced {
		vact /= 2
	}
	if t.YCbCr420 {
		horFreqKHz /= 2
	}

	ok := true
	if t.HAct == 0 || hbl == 0 || t.HFP == 0 || t.HSync == 0 ||
		vact == 0 || vbl == 0 || (t.VFP == 0 && !t.Interlaced && !t.EvenVTotal) || t.VSync == 0 {
		if doChecks {
			s.fail("0 values in the video timing:\n"+
				"    Horizontal Active/Blanking %d/%d\n"+
				"    Horizontal Frontporch/Sync Width %d/%d\n"+
				"    Vertical Active/Blanking %d/%d\n"+
				"    Vertical Frontporch/Sync Width %d/%d\n",
				t.HAct, hbl, t.HFP, t.HSync, vact, vbl, t.VFP, t.VSync)
		}
		ok = false
	}

	refresh := t.RefreshHz()
	useNTSC := (ntsc > ntscAlways && s.opts.NTSC) || ntsc == ntscAlways

	s.dtdMaxHSizeMM = max(s.dtdMaxHSizeMM, t.HSizeMM)
	s.dtdMaxVSizeMM = max(s.dtdMaxVSizeMM, t.VSizeMM)
	pixclkKHz := t.PixclkKHz
	if t.YCbCr420 {
		pixclkKHz /= 2
	}

	s.printf("%s\n", timings.FormatLine(prefix, *t, typ, flags, useNTSC))
	if detailed {
		s.printf("%s\n", timings.FormatDetail(len(prefix)+2+len(typ)+6, *t))
	}

	if !doChecks {
		return ok
	}

	if strings.HasPrefix(typ, "DTD") {
		vic, near := timings.CloseMatchVIC(*t)
		// Reported even without a CTA block: the VIC timing was likely
		// intended.
		if near {
			s.warn("DTD is similar but not identical to VIC %d.\n", vic)
		}
		if vic, same := timings.MatchVIC(*t); same && s.hasCTA && !s.cta.preparsedHasVIC[0][vic] {
			s.warn("DTD is identical to VIC %d, which is not present in the CTA Ext Block.\n", vic)
			if s.cta.preparsedMaxVICPixclkKHz != 0 && t.PixclkKHz > 340000 &&
				t.PixclkKHz > s.cta.preparsedMaxVICPixclkKHz {
				s.cta.warnAboutHDMI2xDTD = true
			}
		}
		if dmt, ok := timings.CloseMatchDMT(*t); !near && ok {
			s.warn("DTD is similar but not identical to DMT 0x%02x.\n", dmt)
		}
	}

	if refresh != 0 {
		s.minVertFreqHz = min(s.minVertFreqHz, refresh)
		s.maxVertFreqHz = max(s.maxVertFreqHz, refresh)
	}
	if horFreqKHz != 0 {
		s.minHorFreqHz = int(min(float64(s.minHorFreqHz), horFreqKHz*1000.0))
		s.maxHorFreqHz = int(max(float64(s.maxHorFreqHz), horFreqKHz*1000.0))
		s.maxPixclkKHz = max(s.maxPixclkKHz, pixclkKHz)
		if t.PosPolHSync && !t.PosPolVSync && t.VSync == 3 {
			s.base.maxPosNegHorFreqKHz = horFreqKHz
		}
	}

	if t.YCbCr420 && t.PixclkKHz < 590000 {
		s.warnOnce("Some YCbCr 4:2:0 timings are invalid for HDMI 2.1 (which requires an RGB timings pixel rate >= 590 MHz).\n")
	}
	if t.HFP <= 0 {
		s.fail("0 or negative horizontal front porch.\n")
	}
	if t.HBP <= 0 {
		s.fail("0 or negative horizontal back porch.\n")
	}
	if t.VBP <= 0 {
		s.fail("0 or negative vertical back porch.\n")
	}

	maxW, maxH := s.base.maxDisplayWidthMM, s.base.maxDisplayHeightMM
	switch {
	case maxW == 0 && maxH == 0:
	case t.HSizeMM == 0 && t.VSizeMM == 0:
	case s.cta.preparsedImageSize == imageSizeRatio:
	case t.HSizeMM > maxW+9 || t.VSizeMM > maxH+9,
		belowMinus(t.HSizeMM, maxW, 9) && belowMinus(t.VSizeMM, maxH, 9):
		s.fail("Mismatch of image size %dx%d mm vs display size %dx%d mm.\n",
			t.HSizeMM, t.VSizeMM, maxW, maxH)
	}
	if t.HSizeMM != 0 && t.VSizeMM != 0 {
		if t.HSizeMM < 100 || t.VSizeMM < 100 {
			s.warn("Dubious image size (%dx%d mm is smaller than 100x100 mm).\n", t.HSizeMM, t.VSizeMM)
		} else if t.HRatio != 0 && t.VRatio != 0 {
			vsize := t.HSizeMM * t.VRatio / t.HRatio
			if vsize < t.VSizeMM-10 || vsize > t.VSizeMM+10 {
				s.warn("Image size is %dx%d mm, but based on the picture AR it should be %dx%d mm.\n",
					t.HSizeMM, t.VSizeMM, t.HSizeMM, vsize)
			}
		}
	}
	return ok
}

// belowMinus reports v < ref-d with ref-d saturating at "infinitely
// large" when it would go negative, the way unsigned subtraction wraps.
func belowMinus(v, ref, d int) bool {
	if ref < d {
		return true
	}
	return v < ref-d
}

// printLookup prints the result of a registry lookup. A miss is reported
// as an unknown timing.
func (s *state) printLookup(prefix string, t timings.Timings, ok bool, typ string) bool {
	if !ok {
		return s.printTimingsOpts(prefix, nil, typ, "", false, true, ntscOption)
	}
	return s.printTimings(prefix, t, typ, "")
}
