package edid

import (
	"fmt"
	"slices"

	"example.com/edidgate/internal/timings"
)

var ctaBlockNames = map[int]string{
	0x01: "Audio Data Block",
	0x02: "Video Data Block",
	0x03: "Vendor-Specific Data Block",
	0x04: "Speaker Allocation Data Block",
	0x05: "VESA Display Transfer Characteristics Data Block",
	0x06: "Video Format Data Block",
	0x07: "Unknown CTA-861 Data Block (extended tag truncated)",

	0x700: "Video Capability Data Block",
	0x701: "Vendor-Specific Video Data Block",
	0x702: "VESA Video Display Device Data Block",
	0x703: "VESA Video Timing Block Extension",
	0x704: "Reserved for HDMI Video Data Block",
	0x705: "Colorimetry Data Block",
	0x706: "HDR Static Metadata Data Block",
	0x707: "HDR Dynamic Metadata Data Block",
	0x708: "Native Video Resolution Data Block",

	0x70d: "Video Format Preference Data Block",
	0x70e: "YCbCr 4:2:0 Video Data Block",
	0x70f: "YCbCr 4:2:0 Capability Map Data Block",
	0x710: "Reserved for CTA-861 Miscellaneous Audio Fields",
	0x711: "Vendor-Specific Audio Data Block",
	0x712: "HDMI Audio Data Block",
	0x713: "Room Configuration Data Block",
	0x714: "Speaker Location Data Block",

	0x720: "InfoFrame Data Block",
	0x721: "Product Information Data Block",

	0x722: "DisplayID Type VII Video Timing Data Block",
	0x723: "DisplayID Type VIII Video Timing Data Block",
	0x72a: "DisplayID Type X Video Timing Data Block",

	0x778: "HDMI Forum EDID Extension Override Data Block",
	0x779: "HDMI Forum Sink Capability Data Block",
	0x77a: "HDMI Forum Source-Based Tone Mapping Data Block",
}

// Data blocks that may appear at most once per document.
var ctaSingletonTags = []int{
	0x04, 0x05, 0x700, 0x702, 0x705, 0x706, 0x708, 0x70d, 0x70f,
	0x712, 0x713, 0x721, 0x778, 0x779, 0x77a,
}

func ctaAudioTag(tag int) bool {
	switch tag {
	case 0x01, 0x04, 0x711, 0x712, 0x713, 0x714:
		return true
	}
	return false
}

func unknownCTAName(tag int, extended bool, length int) string {
	var name string
	switch {
	case tag < 0x700:
		name = "Unknown CTA-861 Data Block"
	case tag < 0x70d:
		name = "Unknown CTA-861 Video-Related Data Block"
	case tag < 0x720:
		name = "Unknown CTA-861 Audio-Related Data Block"
	case tag >= 0x778 && tag < 0x780:
		name = "Unknown CTA-861 HDMI-Related Data Block"
	default:
		name = "Unknown CTA-861 Data Block"
	}
	return fmt.Sprintf("%s (%stag %s, length %d)", name,
		boolStr(extended, "extended ", ""), utohex(byte(tag)), length)
}

// ctaBlock decodes one CTA-861 data block starting at its header byte.
// found collects the tags seen so far, so that single-instance blocks can
// be detected across the CTA extension and DisplayID CTA blocks.
func (s *state) ctaBlock(x []byte, found *[]int) {
	if len(x) == 0 {
		return
	}
	length := int(x[0] & 0x1f)
	if length > len(x)-1 {
		length = len(x) - 1
	}
	tag := int(x[0]&0xe0) >> 5
	extended := tag == 0x07
	x = x[1 : 1+length]
	if extended && length > 0 {
		tag = tag<<8 | int(x[0])
		x = x[1:]
		length--
	}

	showName := true
	s.dataBlock = ""
	if name, ok := ctaBlockNames[tag]; ok {
		s.dataBlock = name
	} else {
		name := unknownCTAName(tag, extended, length)
		s.printf("  %s:\n", name)
		s.warn("%s.\n", name)
	}

	switch tag {
	case 0x03, 0x701, 0x711:
		num := s.dataBlockOUI(s.dataBlock, x, false, false, false, false)
		skip := min(3, length)
		x = x[skip:]
		length -= skip
		showName = false
		tag |= num
	}
	if showName && s.dataBlock != "" {
		s.printf("  %s:\n", s.dataBlock)
	}

	if slices.Contains(ctaSingletonTags, tag) && slices.Contains(*found, tag) {
		s.fail("Only one instance of this Data Block is allowed.\n")
	}
	if ctaAudioTag(tag&0xfff) && s.cta.byte3&0x40 == 0 {
		s.fail("Audio information is present, but bit 6 of Byte 3 of the CTA-861 Extension header indicates no Basic Audio support.\n")
	}

	switch tag {
	case 0x01:
		s.ctaAudioBlock(x)
	case 0x02:
		s.ctaSVD(x, false)
	case 0x03 | ouiHDMI:
		s.ctaHDMIBlock(x)
		// HDMI mandates EDID 1.3.
		if s.base.edidMinor != 3 {
			s.fail("The HDMI Specification requires EDID 1.3 instead of 1.%d.\n", s.base.edidMinor)
		}
	case 0x03 | ouiHDMIForum:
		if s.cta.previousCTATag != 0x03|ouiHDMI {
			s.fail("HDMI Forum VSDB did not immediately follow the HDMI VSDB.\n")
		}
		if s.cta.haveHFSCDB || s.cta.haveHFVSDB {
			s.fail("Duplicate HDMI Forum VSDB/SCDB.\n")
		}
		s.ctaHFSCDB(x)
		s.cta.haveHFVSDB = true
	case 0x03 | ouiAMD:
		s.ctaAMD(x)
	case 0x03 | ouiMicrosoft:
		if length != 0x12 {
			s.hexBlock("    ", x, true, 16)
			break
		}
		s.ctaMicrosoft(x)
	case 0x03 | ouiUHDA:
		s.ctaUHDAFMM(x)
	case 0x04:
		s.ctaSADB(x)
	case 0x05:
		s.ctaVESADTCDB(x)
	case 0x06:
		s.ctaVFDB(x)
	case 0x07:
		s.fail("Extended tag cannot have zero length.\n")
	case 0x700:
		s.ctaVCDB(x)
	case 0x701 | ouiHDR10:
		s.ctaHDR10Plus(x)
	case 0x701 | ouiDolby:
		s.ctaDolbyVideo(x)
	case 0x702:
		s.ctaVESAVDDDB(x)
	case 0x705:
		s.ctaColorimetryBlock(x)
	case 0x706:
		s.ctaHDRStaticMetadataBlock(x)
	case 0x707:
		s.ctaHDRDynMetadataBlock(x)
	case 0x708:
		// The NVRDB does not take part in the ordering and duplicate
		// bookkeeping below.
		s.ctaNVRDB(x)
		return
	case 0x70d:
		s.ctaVFPDB(x)
	case 0x70e:
		s.ctaSVD(x, true)
	case 0x70f:
		s.ctaY420CMDB(x)
	case 0x711 | ouiDolby:
		s.ctaDolbyAudio(x)
	case 0x712:
		s.ctaHDMIAudioBlock(x)
	case 0x713:
		s.ctaRCDB(x)
	case 0x714:
		s.ctaSLDB(x)
	case 0x720:
		s.ctaIFDB(x)
	case 0x721:
		s.ctaPIDB(x)
	case 0x722:
		s.ctaDisplayIDType7(x)
	case 0x723:
		s.ctaDisplayIDType8(x)
	case 0x72a:
		s.ctaDisplayIDType10(x)
	case 0x778:
		s.ctaHFEEODB(x)
		if s.blockNr != 1 {
			s.fail("Data Block can only be present in Block 1.\n")
		}
		if s.cta.blockNumber > 0 {
			s.fail("Data Block starts at a wrong offset.\n")
		}
	case 0x779:
		if s.cta.previousCTATag != 0x03|ouiHDMI {
			s.fail("HDMI Forum SCDB did not immediately follow the HDMI VSDB.\n")
		}
		if s.cta.haveHFSCDB || s.cta.haveHFVSDB {
			s.fail("Duplicate HDMI Forum VSDB/SCDB.\n")
		}
		if s.blockNr != 1 {
			s.fail("Data Block can only be present in Block 1.\n")
		}
		if length < 2 {
			s.dataBlock = "HDMI Forum SCDB"
			s.fail("Invalid length %d < 2.\n", length)
			break
		}
		if x[0] != 0 || x[1] != 0 {
			s.printf("  Non-zero SCDB reserved fields!\n")
		}
		s.ctaHFSCDB(x[2:])
		s.cta.haveHFSCDB = true
	case 0x77a:
		s.ctaHFSBTMDB(x)
	default:
		s.hexBlock("    ", x, true, 16)
	}

	s.cta.blockNumber++
	s.cta.previousCTATag = tag
	*found = append(*found, tag)
}

func (s *state) ctaDisplayIDType7(x []byte) {
	length := len(x)
	hdr := pad(x, 1)[0]
	s.checkDisplayIDDatablockRevision(hdr, 0x00, 2)
	if length < 21+int(hdr&0x70)>>4 {
		s.fail("Empty Data Block with length %d.\n", length)
		return
	}
	s.parseDisplayIDType17Timing(x[1:], true, 2, true)
}

func (s *state) ctaDisplayIDType8(x []byte) {
	length := len(x)
	hdr := pad(x, 1)[0]
	s.checkDisplayIDDatablockRevision(hdr, 0xe8, 1)
	sz := 1
	if hdr&0x08 != 0 {
		sz = 2
	}
	if length < sz+1 {
		s.fail("Empty Data Block with length %d.\n", length)
		return
	}
	typ := hdr >> 6
	if typ != 0 {
		s.fail("Only code type 0 is supported.\n")
		return
	}
	if hdr&0x20 != 0 {
		s.printf("    Also supports YCbCr 4:2:0\n")
	}
	x = x[1:]
	for i := 0; i < len(x)/sz; i++ {
		id := int(x[i*sz])
		if sz == 2 {
			id |= int(x[i*sz+1]) << 8
		}
		s.parseDisplayIDType48Timing(typ, id, true)
	}
}

func (s *state) ctaDisplayIDType10(x []byte) {
	length := len(x)
	hdr := pad(x, 1)[0]
	s.checkDisplayIDDatablockRevision(hdr, 0x70, 0)
	sz := 6 + int(hdr&0x70)>>4
	if length < sz+1 {
		s.fail("Empty Data Block with length %d.\n", length)
		return
	}
	x = x[1:]
	for i := 0; i < len(x)/sz; i++ {
		s.parseDisplayIDType10Timing(x[i*sz:(i+1)*sz], sz, true)
	}
}

// preparseCTABlock collects the facts that data blocks refer to across
// the whole document before any of them is decoded.
func (s *state) preparseCTABlock(x []byte) {
	version := x[1]
	offset := int(x[2])

	if offset >= 4 {
		for off := offset; off+17 < 127; off += 18 {
			d := x[off : off+18]
			if memchk(d, 0) {
				break
			}
			s.preparseDetailedBlock(d)
			if d[0] != 0 || d[1] != 0 {
				s.cta.preparsedTotalDTDs++
			}
		}
	}
	if version < 3 {
		return
	}
	if s.cta.byte3 == 0 {
		s.cta.byte3 = x[3]
	}
	if offset > 127 {
		offset = 127
	}

	for i := 4; i < offset; i += int(x[i]&0x1f) + 1 {
		l := int(x[i] & 0x1f)
		// d reads past the data block area as zeroes.
		d := pad(x[i:min(i+1+l, 127)], 32)
		for420 := false
		switch d[0] >> 5 {
		case 0x03:
			if l < 5 {
				continue
			}
			oui := int(d[3])<<16 | int(d[2])<<8 | int(d[1])
			if oui != 0x000c03 {
				continue
			}
			s.cta.hasHDMI = true
			s.cta.preparsedPhysAddr = int(d[4])<<8 | int(d[5])
			b := 8
			if l < 9 || d[b]&0x20 == 0 {
				continue
			}
			if d[b]&0x80 != 0 {
				if l < 11 {
					continue
				}
				if d[b]&0x40 != 0 {
					if l < 13 {
						continue
					}
					b += 2
				}
				b += 2
			}
			s.cta.preparsedImageSize = imageSizeKind((d[b+1] & 0x18) >> 3)
			continue
		case 0x06:
			if l == 0 || s.cta.preparsedFirstVFD.rid != 0 {
				continue
			}
			s.cta.preparsedFirstVFD = s.parseVFD(d[2:], int(d[1]&3)+1)
			continue
		case 0x07:
			switch d[1] {
			case 0x0d:
				s.cta.hasVFPDB = true
			case 0x05:
				s.cta.hasCDB = true
			case 0x08:
				s.cta.hasNVRDB = true
			case 0x21:
				s.cta.hasPIDB = true
			case 0x13:
				if d[2]&0x40 != 0 {
					s.cta.preparsedSpeakerCount = 1 + int(d[2]&0x1f)
					s.cta.preparsedSLD = d[2]&0x20 != 0
				}
			case 0x14:
				if l >= 1 {
					s.preparseSLDB(d[2 : 1+l])
				}
			case 0x22:
				s.cta.preparsedTotalVTDBs++
			case 0x23:
				s.cta.preparsedHasT8VTDB = true
				s.cta.preparsedT8VTDBDMT = int(d[3])
				if d[2]&0x08 != 0 {
					s.cta.preparsedT8VTDBDMT |= int(d[4]) << 8
				}
			case 0x2a:
				if l >= 2 {
					s.cta.preparsedTotalVTDBs += (l - 2) / (6 + int(d[2]&0x70)>>4)
				}
			case 0x78:
				s.cta.hfEEODBBlocks = int(d[2])
			}
			if d[1] != 0x0e {
				continue
			}
			for420 = true
		case 0x02:
		default:
			continue
		}

		idx := 0
		if for420 {
			idx = 1
		}
		for j := 1 + idx; j <= l; j++ {
			vic := d[j]
			if vic&0x7f <= 64 {
				vic &= 0x7f
			}
			s.cta.preparsedSVDs[idx] = append(s.cta.preparsedSVDs[idx], vic)
			s.cta.preparsedHasVIC[idx][vic] = true
			if for420 {
				continue
			}
			if t, ok := timings.FindVIC(int(vic)); ok && t.PixclkKHz > s.cta.preparsedMaxVICPixclkKHz {
				s.cta.preparsedMaxVICPixclkKHz = t.PixclkKHz
			}
			switch vic {
			case 95:
				s.cta.supportedHDMIVICVSBCodes |= 1 << 0
			case 94:
				s.cta.supportedHDMIVICVSBCodes |= 1 << 1
			case 93:
				s.cta.supportedHDMIVICVSBCodes |= 1 << 2
			case 98:
				s.cta.supportedHDMIVICVSBCodes |= 1 << 3
			}
		}
	}
}

// parseCTABlock decodes a CTA-861 extension block.
func (s *state) parseCTABlock(x []byte) {
	version := int(x[1])
	offset := int(x[2])

	s.printf("  Revision: %d\n", version)
	if version == 0 {
		s.fail("Invalid CTA-861 Extension revision 0.\n")
	}
	if version == 2 {
		s.fail("Deprecated CTA-861 Extension revision 2.\n")
	}
	if s.cta.hasHDMI && version != 3 {
		s.fail("The HDMI Specification requires CTA Extension revision 3.\n")
	}
	if version > 3 {
		s.warn("Unknown CTA-861 Extension revision %d.\n", version)
	}
	if offset > 0 && offset < 4 {
		s.fail("Invalid CTA-861 Extension offset value (byte 2).\n")
	}

	if version >= 1 {
		s.parseCTABody(x, version, offset)
	}

	s.dataBlock = ""
	if !s.cta.firstCTA {
		return
	}
	s.cta.firstCTA = false
	if s.base.serialNumber != 0 && len(s.serialStrings) > 0 {
		s.warn("Display Product Serial Number is set, so the Serial Number in the Base EDID should be 0.\n")
	}
	if !s.cta.hasVIC1 && !s.base.has640x480p60EstTiming {
		s.fail("Required 640x480p60 timings are missing in the established timings and the SVD list (VIC 1).\n")
	}
	if !s.cta.hasVCDB {
		s.fail("Missing VCDB, needed for Set Selectable RGB Quantization to avoid interop issues.\n")
	}
	if !s.base.usesSRGB && !s.cta.hasCDB {
		s.warn("Add a Colorimetry Data Block with the sRGB colorimetry bit set to avoid interop issues.\n")
	}
}

func (s *state) parseCTABody(x []byte, version, offset int) {
	if version == 1 && x[3] != 0 {
		s.fail("Non-zero byte 3.\n")
	}
	if version < 3 && offset >= 4 && (offset-4)/8 != 0 {
		s.printf("  8-byte timing descriptors: %d\n", (offset-4)/8)
		s.fail("8-byte descriptors were never used.\n")
	}

	if version >= 2 {
		if x[3]&0x80 != 0 {
			s.printf("  Underscans IT Video Formats by default\n")
		} else {
			s.warn("IT Video Formats are overscanned by default, but normally this should be underscanned.\n")
		}
		if x[3]&0x40 != 0 {
			s.printf("  Basic audio support\n")
		}
		if x[3]&0x20 != 0 {
			s.printf("  Supports YCbCr 4:4:4\n")
			s.cta.hasYCbCr444 = true
		}
		if x[3]&0x10 != 0 {
			s.printf("  Supports YCbCr 4:2:2\n")
			s.cta.hasYCbCr422 = true
		}
		s.printf("  Native detailed modes: %d\n", x[3]&0x0f)
		if s.cta.blockNumber == 0 {
			s.cta.byte3 = x[3]
		} else if x[3] != s.cta.byte3 {
			s.fail("Byte 3 must be the same for all CTA-861 Extension Blocks.\n")
		}
		if s.cta.blockNumber == 0 {
			nativeDTDs := int(x[3] & 0x0f)
			s.cta.nativeTimings = nil
			if nativeDTDs == 0 && !s.cta.hasVFPDB {
				s.cta.firstSVDMightBePreferred = true
			} else if nativeDTDs > s.cta.preparsedTotalDTDs {
				s.fail("There are more Native DTDs (%d) than DTDs (%d).\n", nativeDTDs, s.cta.preparsedTotalDTDs)
			}
			nativeDTDs = min(nativeDTDs, s.cta.preparsedTotalDTDs)
			for i := 0; i < nativeDTDs; i++ {
				s.cta.nativeTimings = append(s.cta.nativeTimings,
					timings.Pending(i+129, fmt.Sprintf("DTD %3d", i+1)))
				s.cta.hasSVRs = true
			}
			want := 1
			if s.blockMap.saw1 {
				want = 2
			}
			if s.cta.hasHDMI && s.blockNr != want {
				s.fail("The HDMI Specification requires that the first Extension Block (that is not a Block Map) is an CTA-861 Extension Block.\n")
			}
		}
	}

	if offset < 4 {
		// No data blocks or DTDs: the remainder is padding.
		if !memchk(x[4:127], 0) {
			s.dataBlock = "Padding"
			s.fail("Contains non-zero bytes.\n")
		}
		return
	}
	if offset > 127 {
		s.fail("Offset %d is larger than EDID block size-1 (%d).\n", offset, 127)
		return
	}

	if version >= 3 {
		i := 4
		for i < offset {
			s.ctaBlock(x[i:127], &s.cta.foundTags)
			i += int(x[i]&0x1f) + 1
		}
		s.dataBlock = ""
		if i != offset {
			s.fail("Offset is %d, but should be %d.\n", offset, i)
		}
	}

	s.dataBlock = "Detailed Timing Descriptors"
	s.base.seenNonDetailedDescriptor = false
	first := true
	off := offset
	for ; off+17 < 127; off += 18 {
		d := x[off : off+18]
		if memchk(d, 0) {
			break
		}
		if first {
			first = false
			s.printf("  %s:\n", s.dataBlock)
		}
		s.detailedBlock(d, 0)
	}
	s.unusedBytes = 127 - off
	if !memchk(x[off:127], 0) {
		s.dataBlock = "Padding"
		s.fail("Contains non-zero bytes.\n")
	}
}

// ctaResolveSVR materializes a pending Short Video Reference once all
// DTDs, VTDBs and the T8VTDB are known. References that cannot be
// resolved stay pending and are skipped by the checks.
func (s *state) ctaResolveSVR(e *timings.Ext) {
	svr := e.SVR()
	switch {
	case svr == 254:
		e.Resolve(s.cta.t8vtdb.T, "", timings.AddStr(s.cta.t8vtdb.Flags, ">=CTA-861-H"))
	case svr <= 144:
		if svr < 129 || svr-129 >= len(s.cta.vecDTDs) {
			return
		}
		d := s.cta.vecDTDs[svr-129]
		e.Resolve(d.T, "", d.Flags)
	case svr <= 160:
		if svr-145 >= len(s.cta.vecVTDBs) {
			return
		}
		v := s.cta.vecVTDBs[svr-145]
		e.Resolve(v.T, "", timings.AddStr(v.Flags, ">=CTA-861-H"))
	case svr <= 175:
		e.Resolve(ovtMode(s.cta.preparsedFirstVFD.rid, timings.VFRates[svr-160]), "", ">=CTA-861.6")
	}
}

func (s *state) ctaResolveSVRs() {
	for _, vec := range [][]timings.Ext{
		s.cta.preferredTimingsVFP,
		s.cta.nativeTimings,
		s.cta.nativeTimingNVRDB,
	} {
		for i := range vec {
			if vec[i].HasSVR() {
				s.ctaResolveSVR(&vec[i])
			}
		}
	}
}

// maxPreferred tracks the largest preferred resolution, comparing by
// height first and width second.
type maxPreferred struct{ hact, vact int }

func (m *maxPreferred) add(t timings.Timings) {
	if t.VAct > m.vact || (t.VAct == m.vact && t.HAct >= m.hact) {
		m.hact, m.vact = t.HAct, t.VAct
	}
}

func (m maxPreferred) exceeds(hact, vact int) bool {
	return m.vact > vact || (m.vact == vact && m.hact > hact)
}

// nativeSet summarizes the native timings of one scan type.
type nativeSet struct {
	count      int
	hact, vact int
	mixed      bool
}

func (n *nativeSet) add(t timings.Timings) {
	n.count++
	switch {
	case n.hact == 0:
		n.hact, n.vact = t.HAct, t.VAct
	case n.hact != t.HAct || n.vact != t.VAct:
		n.mixed = true
	}
}

// checkCTABlocks runs the document-wide CTA-861 checks.
func (s *state) checkCTABlocks() {
	s.dataBlock = "CTA-861"

	// HDMI 1.4 tops out at 340 MHz: a faster DTD without matching VICs is
	// usually a leftover from a disabled HDMI 2.x mode.
	if s.cta.warnAboutHDMI2xDTD {
		s.warn("DTD pixelclock indicates HDMI 2.x support, VICs indicate HDMI 1.x.\n")
	}
	if s.cta.hdmiMaxRate != 0 && s.maxPixclkKHz > s.cta.hdmiMaxRate*1000 {
		s.fail("The maximum HDMI TMDS clock is %d kHz, but one or more video timings go up to %d kHz.\n",
			s.cta.hdmiMaxRate*1000, s.maxPixclkKHz)
	}

	var prefProg, prefIlace maxPreferred
	for _, vec := range [][]timings.Ext{s.cta.preferredTimings, s.cta.preferredTimingsVFP} {
		for _, e := range vec {
			if e.HasSVR() {
				continue
			}
			if e.T.Interlaced {
				prefIlace.add(e.T)
			} else {
				prefProg.add(e.T)
			}
		}
	}

	var prog, ilace nativeSet
	for _, e := range s.cta.nativeTimings {
		if e.HasSVR() {
			continue
		}
		if e.T.Interlaced {
			ilace.add(e.T)
		} else {
			prog.add(e.T)
		}
	}
	var nvrdbHAct, nvrdbVAct int
	for _, e := range s.cta.nativeTimingNVRDB {
		nvrdbHAct, nvrdbVAct = e.T.HAct, e.T.VAct
	}

	if prog.mixed {
		s.fail("Native progressive timings are a mix of several resolutions.\n")
	}
	if ilace.mixed {
		s.fail("Native interlaced timings are a mix of several resolutions.\n")
	}
	if ilace.count > 0 && prog.count == 0 {
		s.fail("A native interlaced timing is present, but not a native progressive timing.\n")
	}
	if !prog.mixed && prog.count > 1 {
		s.warn("Multiple native progressive timings are defined.\n")
	}
	if !ilace.mixed && ilace.count > 1 {
		s.warn("Multiple native interlaced timings are defined.\n")
	}

	switch {
	case nvrdbVAct != 0 && prefProg.exceeds(nvrdbHAct, nvrdbVAct):
		s.warn("Native video resolution of %dx%d is smaller than the max preferred progressive resolution %dx%d.\n",
			nvrdbHAct, nvrdbVAct, prefProg.hact, prefProg.vact)
	case nvrdbVAct == 0 && !prog.mixed && prog.vact != 0 && prefProg.exceeds(prog.hact, prog.vact):
		s.warn("Native progressive resolution of %dx%d is smaller than the max preferred progressive resolution %dx%d.\n",
			prog.hact, prog.vact, prefProg.hact, prefProg.vact)
	}
	if !ilace.mixed && ilace.vact != 0 && prefIlace.exceeds(ilace.hact, ilace.vact) {
		s.warn("Native interlaced resolution of %dx%d is smaller than the max preferred interlaced resolution %dx%d.\n",
			ilace.hact, ilace.vact, prefIlace.hact, prefIlace.vact)
	}

	if s.dispid.nativeWidth != 0 && prog.hact != 0 && !prog.mixed &&
		(s.dispid.nativeWidth != prog.hact || s.dispid.nativeHeight != prog.vact) {
		s.fail("Mismatch between CTA-861 and DisplayID native progressive resolution.\n")
	}
}
