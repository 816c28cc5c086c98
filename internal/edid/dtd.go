package edid

import (
	"fmt"

	"example.com/edidgate/internal/timings"
)

// detailedTimings decodes an 18-byte Detailed Timing Descriptor. Only DTDs
// of the base block and CTA-861 blocks (baseOrCTA) are numbered and
// collected. flags is byte 17 of the descriptor unless an SPWG panel
// moves it.
func (s *state) detailedTimings(prefix string, x []byte, baseOrCTA bool, flags byte) {
	var t timings.Timings
	var sFlags string

	if baseOrCTA {
		s.base.dtdCnt++
	}
	s.dataBlock = fmt.Sprintf("Detailed Timing Descriptor #%d", s.base.dtdCnt)
	t.PixclkKHz = (int(x[0]) + int(x[1])<<8) * 10
	if t.PixclkKHz < 10000 {
		s.printf("%sDetailed mode: ", prefix)
		s.hexBlock("", x[:18], true, 18)
		if t.PixclkKHz == 0 {
			s.fail("First two bytes are 0, invalid data.\n")
		} else {
			s.fail("Pixelclock < 10 MHz, assuming invalid data 0x%02x 0x%02x.\n", x[0], x[1])
		}
		return
	}

	// Blanking includes the borders (EDID 1.3 reading) while the front
	// porch does not, which is what real EDIDs do.
	t.HAct = int(x[2]) + int(x[4]&0xf0)<<4
	t.HBorder = int(x[15])
	hbl := int(x[3]) + int(x[4]&0x0f)<<8 - t.HBorder*2
	t.HFP = int(x[8]) + int(x[11]&0xc0)<<2
	t.HSync = int(x[9]) + int(x[11]&0x30)<<4
	t.HBP = hbl - t.HSync - t.HFP
	t.VAct = int(x[5]) + int(x[7]&0xf0)<<4
	t.VBorder = int(x[16])
	vbl := int(x[6]) + int(x[7]&0x0f)<<8 - t.VBorder*2
	t.VFP = int(x[10]>>4) + int(x[11]&0x0c)<<2
	t.VSync = int(x[10]&0x0f) + int(x[11]&0x03)<<4
	t.VBP = vbl - t.VSync - t.VFP

	switch (flags & 0x18) >> 3 {
	case 0x00, 0x01:
		if (flags&0x18)>>3 == 0 {
			sFlags = "analog composite"
		} else {
			sFlags = "bipolar analog composite"
		}
		switch (flags & 0x06) >> 1 {
		case 0x00:
			sFlags = timings.AddStr(sFlags, "sync-on-green")
		case 0x02:
			sFlags = timings.AddStr(sFlags, "serrate, sync-on-green")
		case 0x03:
			sFlags = timings.AddStr(sFlags, "serrate")
		}
	case 0x02:
		t.PosPolHSync = flags&(1<<1) != 0
		t.NoPolVSync = true
		sFlags = "digital composite"
		if flags&(1<<2) != 0 {
			sFlags = timings.AddStr(sFlags, "serrate")
		}
	case 0x03:
		t.PosPolHSync = flags&(1<<1) != 0
		t.PosPolVSync = flags&(1<<2) != 0
		if s.base.hasSPWG && flags&0x01 != 0 {
			sFlags = "DE timing only"
		}
	}
	if flags&0x80 != 0 {
		t.Interlaced = true
		t.VAct *= 2
		// VIC 39 uses special interlaced timings with an even vtotal.
		if t.HAct == 1920 && t.VAct == 1080 && t.PixclkKHz == 72000 &&
			t.HFP == 32 && t.HSync == 168 && t.HBP == 184 && t.HBorder == 0 &&
			t.VFP == 23 && t.VSync == 5 && t.VBP == 57 && t.VBorder == 0 &&
			!s.base.hasSPWG && s.cta.preparsedHasVIC[0][39] && flags&0x1e == 0x1a {
			t.EvenVTotal = true
		}
	}
	switch flags & 0x61 {
	case 0x20:
		sFlags = timings.AddStr(sFlags, "field sequential L/R")
	case 0x40:
		sFlags = timings.AddStr(sFlags, "field sequential R/L")
	case 0x21:
		sFlags = timings.AddStr(sFlags, "interleaved right even")
	case 0x41:
		sFlags = timings.AddStr(sFlags, "interleaved left even")
	case 0x60:
		sFlags = timings.AddStr(sFlags, "four way interleaved")
	case 0x61:
		sFlags = timings.AddStr(sFlags, "side by side interleaved")
	}

	t.HSizeMM = int(x[12]) + int(x[14]&0xf0)<<4
	t.VSizeMM = int(x[13]) + int(x[14]&0x0f)<<8
	timings.CalcRatio(&t)

	typ := "DTD"
	if baseOrCTA {
		typ = s.dtdType(s.base.dtdCnt)
	}
	ok := s.printTimingsOpts(prefix, &t, typ, sFlags, true, true, ntscOption)
	te := timings.NewExt(t, typ, sFlags)

	if s.blockNr == 0 && s.base.dtdCnt == 1 {
		te.Type = "DTD   1"
		s.base.preferredTiming = te
		if s.hasCTA {
			s.cta.preferredTimings = append(s.cta.preferredTimings, te)
			if s.cta.byte3&0xf != 0 {
				s.cta.nativeTimings = append(s.cta.nativeTimings, te)
			}
		}
	}
	if baseOrCTA {
		s.cta.vecDTDs = append(s.cta.vecDTDs, te)
	}

	if t.HBorder != 0 || t.VBorder != 0 {
		s.warn("The use of non-zero borders in a DTD is not recommended.\n")
	}
	if (s.base.maxDisplayWidthMM != 0 && t.HSizeMM == 0) ||
		(s.base.maxDisplayHeightMM != 0 && t.VSizeMM == 0) {
		s.fail("Mismatch of image size vs display size: image size is not set, but display size is.\n")
	}
	if s.base.hasSPWG && s.base.detailedBlockCnt == 2 {
		s.printf("%sSPWG Module Revision: %d\n", prefix, x[17])
	}
	if !ok {
		s.hexBlock(prefix+"               ", x[:18], true, 18)
	}
}
