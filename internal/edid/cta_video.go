package edid

import (
	"fmt"

	"example.com/edidgate/internal/calc"
	"example.com/edidgate/internal/timings"
)

// ovtMode computes the OVT timing of a RID at rate. An unknown RID or an
// impossible rate yields the zero timing, which the printer rejects.
func ovtMode(rid, rate int) timings.Timings {
	r, ok := timings.FindRID(rid)
	if !ok {
		return timings.Timings{}
	}
	t, err := calc.OVT(r.HAct, r.VAct, r.HRatio, r.VRatio, rate)
	if err != nil {
		return timings.Timings{}
	}
	return t
}

// ctaSVD decodes a list of Short Video Descriptors. for420 selects the
// YCbCr 4:2:0 Video Data Block variant.
func (s *state) ctaSVD(x []byte, for420 bool) {
	idx := 0
	if for420 {
		idx = 1
	}
	ascending := !for420
	lastVIC := 0
	firstVICIs1To4 := false
	haveVICs5Up := false

	if len(x) == 0 {
		s.fail("This Data Block is empty.\n")
	}
	for i, svd := range x {
		if svd&0x7f == 0 {
			continue
		}
		var vic int
		native := false
		if (int(svd)-1)&0x40 != 0 {
			vic = int(svd)
			if s.cta.aviVersion == 2 {
				s.cta.aviVersion = 3
			}
		} else {
			vic = int(svd & 0x7f)
			native = svd&0x80 != 0
		}

		if i == 0 {
			firstVICIs1To4 = vic <= 4
		}
		if vic > 4 {
			haveVICs5Up = true
		}
		if vic < lastVIC {
			ascending = false
		}
		lastVIC = vic

		if t, ok := timings.FindVIC(vic); ok {
			firstSVD := s.cta.firstSVD && !for420
			typ := fmt.Sprintf("VIC %3d", vic)
			flags := boolStr(native, "native", "")

			if for420 {
				t420 := t
				t420.YCbCr420 = true
				s.printTimings("    ", t420, typ, flags)
				s.cta.hasYCbCr420 = true
			} else {
				s.printTimings("    ", t, typ, flags)
			}
			if firstSVD && len(s.cta.preferredTimings) > 0 {
				switch {
				case !timings.Match(s.cta.preferredTimings[0].T, t):
					// A DTD cannot describe 4096 or more pixels.
					if t.VAct < 4096 && t.HAct < 4096 {
						s.warn("VIC %d and the first DTD are not identical. Is this intended?\n", vic)
					} else if !s.cta.hasVFPDB {
						s.warn("The first VIC %d has width or height >= 4096, adding a VFPDB and NVRDB is strongly recommended.\n", vic)
					}
				case s.cta.firstSVDMightBePreferred:
					s.warn("For improved preferred timing interoperability, set 'Native detailed modes' to 1.\n")
				}
			}
			if firstSVD {
				te := timings.NewExt(t, typ, flags)
				if s.cta.firstSVDMightBePreferred {
					s.cta.preferredTimings = append([]timings.Ext{te}, s.cta.preferredTimings...)
				} else {
					s.cta.preferredTimings = append(s.cta.preferredTimings, te)
				}
				s.cta.firstSVD = false
				s.cta.firstSVDMightBePreferred = false
			}
			if native {
				s.cta.nativeTimings = append(s.cta.nativeTimings, timings.NewExt(t, typ, flags))
			}
		} else {
			s.printf("    Unknown (VIC %3d)\n", vic)
			s.fail("Unknown VIC %d.\n", vic)
		}

		if vic == 1 && !for420 {
			s.cta.hasVIC1 = true
		}
		s.cta.vics[vic][idx]++
		if s.cta.vics[vic][idx] == 2 {
			s.fail("Duplicate %sVIC %d.\n", boolStr(for420, "YCbCr 4:2:0 ", ""), vic)
		}
		if for420 && s.cta.preparsedHasVIC[0][vic] {
			s.fail("YCbCr 4:2:0-only VIC %d is also a regular VIC.\n", vic)
		}
	}
	if len(x) > 1 && ascending && firstVICIs1To4 && haveVICs5Up {
		s.warn("All VICs are in ascending order, and the first (preferred) VIC <= 4, is that intended?\n")
	}
}

// parseVFD decodes a Video Format Descriptor of lvfd bytes.
func (s *state) parseVFD(x []byte, lvfd int) vfd {
	s.cta.aviVersion = 4
	s.cta.aviV4Length = max(s.cta.aviV4Length, 15)
	var v vfd
	v.rid = int(x[0] & 0x3f)
	if v.rid >= timings.NumRIDs() {
		v.rid = 0
		return v
	}
	v.bfr50 = x[0]&0x80 != 0
	v.fr24 = x[0]&0x40 != 0
	v.bfr60 = true
	v.frFactor = 3
	if lvfd > 1 {
		v.bfr60 = x[1]&0x80 != 0
		v.fr144 = x[1]&0x40 != 0
		v.frFactor = int(x[1] & 0x3f)
	}
	if lvfd > 2 {
		v.fr48 = x[2]&0x01 != 0
	}
	return v
}

var vfdFactors = [...]int{1, 2, 4, 8, 12, 16}

func (v vfd) hasRate(rateIndex int) bool {
	if v.rid == 0 || rateIndex <= 0 || rateIndex >= len(timings.VFRates) {
		return false
	}
	rate := timings.VFRates[rateIndex]
	switch rate {
	case 24:
		return v.fr24
	case 48:
		return v.fr48
	case 144:
		return v.fr144
	}
	factor := 0
	if rate%30 == 0 {
		if !v.bfr60 {
			return false
		}
		factor = rate / 30
	}
	if rate%25 == 0 {
		if !v.bfr50 {
			return false
		}
		factor = rate / 25
	}
	for i, f := range vfdFactors {
		if f == factor && v.frFactor&(1<<i) != 0 {
			return true
		}
	}
	return false
}

func (s *state) ctaVFDB(x []byte) {
	if len(x) == 0 {
		s.fail("Length is 0.\n")
		return
	}
	flags := x[0]
	x = x[1:]
	lvfd := int(flags&3) + 1
	if len(x)%lvfd != 0 {
		s.fail("Length - 1 is not a multiple of Lvfd (%d).\n", lvfd)
		return
	}
	if flags&0x80 != 0 {
		s.printf("    Supports YCbCr 4:2:0\n")
	}
	if flags&0x40 != 0 {
		s.printf("    NTSC fractional frame rates are preferred\n")
	}
	for ; len(x) >= lvfd; x = x[lvfd:] {
		rid := int(x[0] & 0x3f)
		v := s.parseVFD(x, lvfd)
		if lvfd > 2 && x[2]&0xfe != 0 {
			s.fail("Bits F31-F37 must be 0.\n")
		}
		if lvfd > 3 && x[3] != 0 {
			s.fail("Bits F40-F47 must be 0.\n")
		}
		if rid == 0 || rid >= timings.NumRIDs() {
			s.fail("Unknown RID %d.\n", rid)
			continue
		}
		for ri := 1; ri < len(timings.VFRates); ri++ {
			if !v.hasRate(ri) {
				continue
			}
			t := ovtMode(v.rid, timings.VFRates[ri])
			typ := fmt.Sprintf("RID %d@%dp", rid, timings.VFRates[ri])
			s.printTimings("    ", t, typ, "")
			if vic := timings.RIDToVIC(v.rid, ri); vic != 0 {
				s.fail("%s not allowed since it maps to VIC %d.\n", typ, vic)
			}
		}
	}
}

func (s *state) printVICIndex(prefix string, idx int, suffix string, ycbcr420 bool) {
	if idx >= len(s.cta.preparsedSVDs[0]) {
		s.printf("%sSVD Index %d is out of range", prefix, idx+1)
		if suffix != "" {
			s.printf(" (%s)", suffix)
		}
		s.printf("\n")
		return
	}
	vic := int(s.cta.preparsedSVDs[0][idx])
	typ := fmt.Sprintf("VIC %3d", vic)
	if t, ok := timings.FindVIC(vic); ok {
		t.YCbCr420 = ycbcr420
		s.printTimings(prefix, t, typ, suffix)
		return
	}
	s.printf("%sUnknown (%s%s%s)\n", prefix, typ, boolStr(suffix != "", ", ", ""), suffix)
}

// ctaY420CMDB decodes the YCbCr 4:2:0 Capability Map: bit n marks SVD n of
// the Video Data Blocks as also supporting 4:2:0.
func (s *state) ctaY420CMDB(x []byte) {
	if len(x) == 0 {
		s.printf("    All VDB SVDs\n")
		return
	}
	if memchk(x, 0) {
		s.printf("    Empty Capability Map\n")
		s.fail("Empty Capability Map.\n")
		return
	}
	nsvds := len(s.cta.preparsedSVDs[0])
	maxIdx := 0
	for i, v := range x {
		for j := 0; j < 8; j++ {
			if v&(1<<j) == 0 {
				continue
			}
			s.printVICIndex("    ", i*8+j, "", true)
			maxIdx = i*8 + j
			if maxIdx < nsvds {
				if vic := s.cta.preparsedSVDs[0][maxIdx]; s.cta.preparsedHasVIC[1][vic] {
					s.fail("VIC %d is also a YCbCr 4:2:0-only VIC.\n", vic)
				}
			}
			s.cta.hasYCbCr420 = true
		}
	}
	if maxIdx >= nsvds {
		s.fail("Max index %d > %d (#SVDs).\n", maxIdx+1, nsvds)
	}
}

// ctaPrintSVR prints a Short Video Reference and appends it to vec. VICs
// are materialized right away; references to DTDs, VTDBs, RIDs and the
// T8VTDB stay pending until every block has been parsed.
func (s *state) ctaPrintSVR(svr int, vec *[]timings.Ext) {
	switch {
	case (svr > 0 && svr < 128) || (svr > 192 && svr < 254):
		typ := fmt.Sprintf("VIC %3d", svr)
		if t, ok := timings.FindVIC(svr); ok {
			s.printTimings("    ", t, typ, "")
			*vec = append(*vec, timings.NewExt(t, typ, ""))
		} else {
			s.printf("    %s: Unknown\n", typ)
			s.fail("Unknown VIC %d.\n", svr)
		}
	case svr >= 129 && svr <= 144:
		typ := fmt.Sprintf("DTD %3d", svr-128)
		if svr >= s.cta.preparsedTotalDTDs+129 {
			s.printf("    %s: Invalid\n", typ)
			s.fail("Invalid DTD %d.\n", svr-128)
			return
		}
		s.printf("    %s\n", typ)
		*vec = append(*vec, timings.Pending(svr, typ))
		s.cta.hasSVRs = true
	case svr >= 145 && svr <= 160:
		typ := fmt.Sprintf("VTDB %3d", svr-144)
		if svr >= s.cta.preparsedTotalVTDBs+145 {
			s.printf("    %s: Invalid\n", typ)
			s.fail("Invalid VTDB %d.\n", svr-144)
			return
		}
		s.printf("    %s\n", typ)
		*vec = append(*vec, timings.Pending(svr, typ))
		s.cta.hasSVRs = true
	case svr >= 161 && svr <= 175:
		typ := fmt.Sprintf("RID %d@%dp", s.cta.preparsedFirstVFD.rid, timings.VFRates[svr-160])
		if !s.cta.preparsedFirstVFD.hasRate(svr - 160) {
			s.printf("    %s: Invalid\n", typ)
			s.fail("Invalid %s.\n", typ)
			return
		}
		s.printf("    %s\n", typ)
		*vec = append(*vec, timings.Pending(svr, typ))
		s.cta.hasSVRs = true
	case svr == 254:
		if !s.cta.preparsedHasT8VTDB {
			s.printf("    T8VTDB: Invalid\n")
			s.fail("Invalid T8VTDB.\n")
			return
		}
		typ := fmt.Sprintf("DMT 0x%02x", s.cta.preparsedT8VTDBDMT)
		s.printf("    %s\n", typ)
		*vec = append(*vec, timings.Pending(svr, typ))
		s.cta.hasSVRs = true
	}
}

func (s *state) ctaVFPDB(x []byte) {
	if len(x) == 0 {
		s.fail("Empty Data Block with length %d.\n", len(x))
		return
	}
	s.cta.preferredTimingsVFP = nil
	for _, b := range x {
		s.ctaPrintSVR(int(b), &s.cta.preferredTimingsVFP)
	}
	if s.cta.hasNVRDB {
		return
	}
	for _, n := range s.cta.preferredTimingsVFP {
		if n.T.VAct >= 4096 || n.T.HAct >= 4096 {
			s.warn("One of the VFPDB timings has width or height >= 4096, adding an NVRDB is strongly recommended.\n")
			break
		}
	}
}

func (s *state) ctaNVRDB(x []byte) {
	length := len(x)
	if length == 0 {
		s.fail("Empty Data Block with length %d.\n", length)
		return
	}
	var flags byte
	if length > 1 {
		flags = x[1]
	}
	s.cta.nativeTimingNVRDB = nil
	s.ctaPrintSVR(int(x[0]), &s.cta.nativeTimingNVRDB)
	if flags&1 != 0 && length < 6 {
		s.fail("Data Block too short for Image Size (length = %d).\n", length)
		return
	}
	if flags&0x7e != 0 {
		s.fail("Bits F41-F46 must be 0.\n")
	}
	if flags&1 == 0 {
		return
	}
	w := int(x[3])<<8 | int(x[2])
	h := int(x[5])<<8 | int(x[4])
	if w == 0 || h == 0 {
		s.fail("Image Size has a zero width and/or height.\n")
		return
	}
	if flags&0x80 != 0 {
		w *= 10
		h *= 10
	}
	s.printf("    Image Size: %.1fx%.1f mm\n", float64(w)/10.0, float64(h)/10.0)
	s.imageWidth, s.imageHeight = w, h
	s.cta.imageWidth, s.cta.imageHeight = w, h
	if w <= 25500 && h <= 25500 {
		s.warn("Image Size should only be used for large displays with width and/or height > 255 cm\n")
	}
	s.cta.nvrdbHasSize = true
}

var scanBehavior = [4]string{
	"No Data",
	"Always Overscanned",
	"Always Underscanned",
	"Supports both over- and underscan",
}

// ctaVCDB decodes the Video Capability Data Block.
func (s *state) ctaVCDB(x []byte) {
	s.cta.hasVCDB = true
	if len(x) < 1 {
		s.fail("Empty Data Block with length %d.\n", len(x))
		return
	}
	d := x[0]
	s.printf("    YCbCr quantization: %s\n", boolStr(d&0x80 != 0, "Selectable (via AVI YQ)", "No Data"))
	s.printf("    RGB quantization: %s\n", boolStr(d&0x40 != 0, "Selectable (via AVI Q)", "No Data"))
	// Required for new designs since CTA-861-H; PCs often ignore the
	// default quantization rules.
	if d&0x40 == 0 {
		s.fail("Set Selectable RGB Quantization to avoid interop issues.\n")
	}
	if s.cta.byte3&0x30 != 0 && d&0x80 == 0 {
		s.warn("Set Selectable YCbCr Quantization to avoid interop issues.\n")
	}

	sPT := (d >> 4) & 0x03
	sIT := (d >> 2) & 0x03
	sCE := d & 0x03

	s.printf("    PT scan behavior: %s\n", scanBehavior[sPT])
	s.printf("    IT scan behavior: ")
	switch sIT {
	case 0:
		s.printf("IT video formats not supported\n")
	case 1:
		s.printf("Always Overscanned\n")
		if s.cta.byte3&0x80 != 0 {
			s.fail("IT video formats are always overscanned, but bit 7 of Byte 3 of the CTA-861 Extension header is set to underscanned.\n")
		}
	case 2:
		s.printf("Always Underscanned\n")
		if s.cta.byte3&0x80 == 0 {
			s.fail("IT video formats are always underscanned, but bit 7 of Byte 3 of the CTA-861 Extension header is set to overscanned.\n")
		}
	case 3:
		s.printf("Supports both over- and underscan\n")
	}
	if sIT < 2 {
		s.warn("IT scan behavior is expected to support underscanned.\n")
	}
	if sCE == 0 {
		s.printf("    CE scan behavior: CE video formats not supported\n")
		s.warn("'CE video formats not supported' makes no sense.\n")
	} else {
		s.printf("    CE scan behavior: %s\n", scanBehavior[sCE])
		if sPT == sIT && sPT == sCE {
			s.warn("S_PT is equal to S_IT and S_CE, so should be set to 0 instead.\n")
		}
	}
}
