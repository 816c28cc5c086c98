package edid

import (
	"fmt"

	"example.com/edidgate/internal/timings"
)

const dispidMaxLength = 121

var dispidV1ProductTypes = []string{
	"Extension Section",
	"Test Structure; test equipment only",
	"Display panel or other transducer, LCD or PDP module, etc.",
	"Standalone display device",
	"Television receiver",
	"Repeater/translator",
	"DIRECT DRIVE monitor",
}

var dispidV2UseCases = []string{
	"Same primary use case as the base section",
	"Test Structure; test equipment only",
	"None of the listed primary use cases; generic display",
	"Television (TV) display",
	"Desktop productivity display",
	"Desktop gaming display",
	"Presentation display",
	"Head-mounted Virtual Reality (VR) display",
	"Head-mounted Augmented Reality (AR) display",
}

// productType returns the heading and the decoded product type of a
// DisplayID base section, and records whether the product is a display.
func (s *state) productType(x byte) (string, string) {
	heading, names := "Display Product Type", dispidV1ProductTypes
	if s.dispid.version >= 0x20 {
		heading, names = "Display Product Primary Use Case", dispidV2UseCases
		s.dispid.isDisplay = x >= 2 && x <= 8
		s.dispid.isARVR = x >= 7 && x <= 8
	} else {
		s.dispid.isDisplay = x == 2 || x == 3 || x == 4 || x == 6
	}
	if int(x) < len(names) {
		return heading, names[x]
	}
	s.fail("Unknown %s 0x%02x.\n", heading, x)
	return heading, fmt.Sprintf("Unknown %s (%s)", heading, utohex(x))
}

// preparseDisplayIDBlock counts DisplayID sections and records which
// color and transfer characteristics identifiers exist.
func (s *state) preparseDisplayIDBlock(x []byte) {
	length := min(int(x[2]), dispidMaxLength)
	offset := 5

	s.dispid.preparsedDisplayIDBlocks++
	for length > 0 && offset+2 < len(x) {
		tag := x[offset]
		l := int(x[offset+2])
		switch tag {
		case 0x02:
			s.dispid.preparsedColorIDs |= 1 << ((x[offset+1] >> 3) & 0x0f)
		case 0x0e:
			s.dispid.preparsedXferIDs |= 1 << ((x[offset+1] >> 4) & 0x0f)
		}
		if length < 3 || length < l+3 || (tag == 0 && l == 0) {
			break
		}
		length -= l + 3
		offset += l + 3
	}
}

// displayIDBlock decodes one data block of a DisplayID section and
// returns the number of bytes it used.
func (s *state) displayIDBlock(version int, x []byte, length int) int {
	tag := int(x[0])
	tagVersion := 0
	switch {
	case tag < 0x20:
		tagVersion = 1
	case tag < 0x7f:
		tagVersion = 2
	case tag < 0x80:
		tagVersion = 1
	}
	l := 0
	if length >= 3 {
		l = int(x[2])
	}
	outputName := true
	hasOUI := false
	var payload []byte
	if len(x) > 3 {
		payload = x[3:min(3+l, len(x))]
	}
	name := func(n string) string { return fmt.Sprintf("%s (%s)", n, utohex(byte(tag))) }

	switch tag {
	case 0x00:
		s.dataBlockOUI(name("Product Identification Data Block"), payload, true, true, true, false)
		outputName, hasOUI = false, true
	case 0x01:
		s.dataBlock = name("Display Parameters Data Block")
	case 0x02:
		s.dataBlock = "Color Characteristics Data Block"
	case 0x03:
		s.dataBlock = "Video Timing Modes Type 1 - Detailed Timings Data Block"
	case 0x04:
		s.dataBlock = "Video Timing Modes Type 2 - Detailed Timings Data Block"
	case 0x05:
		s.dataBlock = "Video Timing Modes Type 3 - Short Timings Data Block"
	case 0x06:
		s.dataBlock = "Video Timing Modes Type 4 - DMT Timings Data Block"
	case 0x07:
		s.dataBlock = "Supported Timing Modes Type 1 - VESA DMT Timings Data Block"
	case 0x08:
		s.dataBlock = "Supported Timing Modes Type 2 - CTA-861 Timings Data Block"
	case 0x09:
		s.dataBlock = "Video Timing Range Data Block"
	case 0x0a:
		s.dataBlock = "Product Serial Number Data Block"
	case 0x0b:
		s.dataBlock = "GP ASCII String Data Block"
	case 0x0c:
		s.dataBlock = "Display Device Data Data Block"
	case 0x0d:
		s.dataBlock = "Interface Power Sequencing Data Block"
	case 0x0e:
		s.dataBlock = "Transfer Characteristics Data Block"
	case 0x0f:
		s.dataBlock = "Display Interface Data Block"
	case 0x10:
		s.dataBlock = name("Stereo Display Interface Data Block")
	case 0x11:
		s.dataBlock = "Video Timing Modes Type 5 - Short Timings Data Block"
	case 0x12:
		s.dataBlock = name("Tiled Display Topology Data Block")
	case 0x13:
		s.dataBlock = "Video Timing Modes Type 6 - Detailed Timings Data Block"
	case 0x20:
		s.dataBlockOUI(name("Product Identification Data Block"), payload, false, false, true, false)
		outputName, hasOUI = false, true
	case 0x21:
		s.dataBlock = name("Display Parameters Data Block")
	case 0x22:
		s.dataBlock = "Video Timing Modes Type 7 - Detailed Timings Data Block"
	case 0x23:
		s.dataBlock = "Video Timing Modes Type 8 - Enumerated Timing Codes Data Block"
	case 0x24:
		s.dataBlock = "Video Timing Modes Type 9 - Formula-based Timings Data Block"
	case 0x25:
		s.dataBlock = "Dynamic Video Timing Range Limits Data Block"
	case 0x26:
		s.dataBlock = "Display Interface Features Data Block"
	case 0x27:
		s.dataBlock = name("Stereo Display Interface Data Block")
	case 0x28:
		s.dataBlock = name("Tiled Display Topology Data Block")
	case 0x29:
		s.dataBlock = "ContainerID Data Block"
	case 0x2a:
		s.dataBlock = "Video Timing Modes Type 10 - Formula-based Timings Data Block"
	case 0x2b:
		s.dataBlock = "Adaptive Sync Data Block"
	case 0x2c:
		s.dataBlock = "ARVR_HMD Data Block"
	case 0x2d:
		s.dataBlock = "ARVR_Layer Data Block"
	case 0x2e:
		s.dataBlock = "Brightness Luminance Range Data Block"
	case 0x7e:
		tag |= s.dataBlockOUI(name("Vendor-Specific Data Block"), payload, false, false, true, false)
		outputName, hasOUI = false, true
	case 0x7f:
		tag |= s.dataBlockOUI(name("Vendor-Specific Data Block"), payload, false, true, true, false)
		outputName, hasOUI = false, true
	case 0x81:
		s.dataBlock = "CTA-861 DisplayID Data Block"
	default:
		s.dataBlock = fmt.Sprintf("Unknown DisplayID Data Block (%s, length %d)", utohex(byte(tag)), l)
	}

	if length < 3 {
		// Too short to be a data block.
		s.dataBlock = ""
		if tag != 0 || (length > 1 && x[1] != 0) {
			s.printf("  Filler:\n")
			s.fail("Not enough bytes remain (%d) for a DisplayID data block and the DisplayID filler is non-0.\n", length)
			s.hexBlock("    ", x[:length], true, 16)
		}
		return length
	}
	if length < l+3 {
		s.dataBlock = ""
		s.printf("  Filler:\n")
		s.fail("The length of this DisplayID data block (%d) exceeds the number of bytes remaining (%d).\n", l+3, length)
		s.hexBlock("    ", x[:length], true, 16)
		return length
	}
	if tag == 0 && l == 0 {
		// An empty Product Identification Data Block marks the end.
		s.dataBlock = ""
		if !memchk(x[:length], 0) {
			s.printf("  Filler:\n")
			s.fail("Non-0 filler bytes in the DisplayID block.\n")
			s.hexBlock("    ", x[:length], true, 16)
		}
		return length
	}

	if outputName && s.dataBlock != "" {
		s.printf("  %s:\n", s.dataBlock)
	}
	if version >= 0x20 && tagVersion == 1 {
		s.fail("Use of DisplayID v1.x tag for DisplayID v%d.%d.\n", version>>4, version&0xf)
	}
	if version < 0x20 && tagVersion == 2 {
		s.fail("Use of DisplayID v2.0 tag for DisplayID v%d.%d.\n", version>>4, version&0xf)
	}

	// Fixed offsets inside a short block read as zero.
	db := pad(x[:l+3], 3+256)
	blockRev := int(x[1] & 0x07)

	switch tag {
	case 0x00, 0x20:
		s.parseDisplayIDProductID(db)
	case 0x01:
		s.parseDisplayIDParameters(db)
	case 0x02:
		s.parseDisplayIDColorCharacteristics(db)
	case 0x03:
		s.checkDisplayIDDatablockRevision(x[1], 0, byte(blockRev&1))
		for i := 0; i < l/20; i++ {
			s.parseDisplayIDType17Timing(db[3+i*20:], false, blockRev, false)
		}
	case 0x04:
		s.checkDisplayIDDatablockRevision(x[1], 0, 0)
		for i := 0; i < l/11; i++ {
			s.parseDisplayIDType2Timing(db[3+i*11:])
		}
	case 0x05:
		s.checkDisplayIDDatablockRevision(x[1], 0, byte(blockRev&1))
		for i := 0; i < l/3; i++ {
			s.parseDisplayIDType3Timing(db[3+i*3:])
		}
	case 0x06:
		s.checkDisplayIDDatablockRevision(x[1], 0xc0, 1)
		for i := 0; i < l; i++ {
			s.parseDisplayIDType48Timing(x[1]>>6, int(db[3+i]), false)
		}
	case 0x07:
		s.checkDisplayIDDatablockRevision(x[1], 0, 0)
		for i := 0; i < min(l, 10)*8; i++ {
			if db[3+i/8]&(1<<(i%8)) != 0 {
				t, ok := timings.FindDMT(i + 1)
				s.printLookup("    ", t, ok, fmt.Sprintf("DMT 0x%02x", i+1))
			}
		}
	case 0x08:
		s.checkDisplayIDDatablockRevision(x[1], 0, 0)
		for i := 0; i < min(l, 8)*8; i++ {
			if db[3+i/8]&(1<<(i%8)) != 0 {
				t, ok := timings.FindVIC(i + 1)
				s.printLookup("    ", t, ok, fmt.Sprintf("VIC %3d", i+1))
			}
		}
	case 0x09:
		s.parseDisplayIDVideoTimingRangeLimits(db)
	case 0x0a, 0x0b:
		s.parseDisplayIDString(db)
	case 0x0c:
		s.parseDisplayIDDisplayDevice(db)
	case 0x0d:
		s.parseDisplayIDIntfPowerSequencing(db)
	case 0x0e:
		s.parseDisplayIDTransferCharacteristics(db)
	case 0x0f:
		s.parseDisplayIDDisplayIntf(db)
	case 0x10, 0x27:
		s.parseDisplayIDStereoDisplayIntf(db)
	case 0x11:
		s.checkDisplayIDDatablockRevision(x[1], 0, 0)
		for i := 0; i < l/7; i++ {
			s.parseDisplayIDType5Timing(db[3+i*7:])
		}
	case 0x12:
		s.parseDisplayIDTiledDisplayTopology(db, false)
	case 0x13:
		s.checkDisplayIDDatablockRevision(x[1], 0, 0)
		for i := 0; i < l; {
			s.parseDisplayIDType6Timing(db[3+i:])
			if db[3+i+2]&0x40 != 0 {
				i += 17
			} else {
				i += 14
			}
		}
	case 0x21:
		s.checkDisplayIDDatablockRevision(x[1], 0x80, byte(min(blockRev, 1)))
		s.parseDisplayIDParametersV2(db, blockRev)
	case 0x22:
		switch {
		case blockRev >= 2:
			s.checkDisplayIDDatablockRevision(x[1], 0x08, 2)
		case blockRev == 1:
			s.checkDisplayIDDatablockRevision(x[1], 0x08, 1)
		default:
			s.checkDisplayIDDatablockRevision(x[1], 0, 0)
		}
		sz := 20 + int(x[1]&0x70)>>4
		if blockRev >= 1 && x[1]&0x08 != 0 {
			s.printf("    These timings support DSC pass-through\n")
		}
		for i := 0; i < l/sz; i++ {
			s.parseDisplayIDType17Timing(db[3+i*sz:], true, blockRev, false)
		}
	case 0x23:
		if blockRev != 0 {
			s.checkDisplayIDDatablockRevision(x[1], 0xe8, 1)
		} else {
			s.checkDisplayIDDatablockRevision(x[1], 0xc8, 0)
		}
		if x[1]&0x08 != 0 {
			for i := 0; i < l/2; i++ {
				s.parseDisplayIDType48Timing(x[1]>>6, le16(db[3+i*2:]), false)
			}
		} else {
			for i := 0; i < l; i++ {
				s.parseDisplayIDType48Timing(x[1]>>6, int(db[3+i]), false)
			}
		}
	case 0x24:
		s.checkDisplayIDDatablockRevision(x[1], 0, 0)
		for i := 0; i < l/6; i++ {
			s.parseDisplayIDType9Timing(db[3+i*6:])
		}
	case 0x25:
		s.parseDisplayIDDynamicVideoTimingsRangeLimits(db)
	case 0x26:
		s.parseDisplayIDInterfaceFeatures(db)
	case 0x28:
		s.parseDisplayIDTiledDisplayTopology(db, true)
	case 0x29:
		s.parseDisplayIDContainerID(db)
	case 0x2a:
		sz := 6 + int(x[1]&0x70)>>4
		s.checkDisplayIDDatablockRevision(x[1], 0x70, 0)
		if sz > 8 {
			s.fail("Invalid descriptor size %d.\n", sz)
		}
		for i := 0; i < l/sz; i++ {
			s.parseDisplayIDType10Timing(db[3+i*sz:], sz, false)
		}
	case 0x2b:
		s.parseDisplayIDAdaptiveSync(db)
	case 0x2c:
		s.parseDisplayIDARVR(db, true)
	case 0x2d:
		s.parseDisplayIDARVR(db, false)
	case 0x2e:
		s.parseDisplayIDBrightnessLumRange(db)
	case 0x7e | ouiVESA:
		s.parseDisplayIDVESA(db)
	case 0x7f | ouiApple:
		s.parseDisplayIDApple(db)
	case 0x81:
		s.parseDisplayIDCTADataBlock(db)
	default:
		skip := 0
		if hasOUI {
			skip = 3
		}
		if l > skip {
			s.hexBlock("    ", x[3+skip:3+l], true, 16)
		}
	}

	if (tag == 0x00 || tag == 0x20) && (!s.dispid.isBaseBlock || s.dispid.blockNumber > 0) {
		s.fail("%s is required to be the first DisplayID Data Block.\n", s.dataBlock)
	}
	s.dispid.blockNumber++
	return l + 3
}

// parseDisplayIDBlock decodes a DisplayID extension block: the section
// header, its data blocks, the section checksum and the padding.
func (s *state) parseDisplayIDBlock(x []byte) {
	version := int(x[1])
	length := int(x[2])
	prodType := x[3]
	extCount := int(x[4])

	s.printf("  Version: %d.%d\n  Extension Count: %d\n", version>>4, version&0xf, extCount)

	if s.dispid.isBaseBlock {
		s.dispid.version = version
		heading, typ := s.productType(prodType)
		s.printf("  %s: %s\n", heading, typ)
		if prodType == 0 {
			s.fail("DisplayID Base Block has no product type.\n")
		}
		if extCount != s.dispid.preparsedDisplayIDBlocks-1 {
			s.fail("Expected %d DisplayID Extension Block%s, but got %d.\n",
				extCount, boolStr(extCount > 1, "s", ""), s.dispid.preparsedDisplayIDBlocks-1)
		}
	} else {
		if prodType != 0 {
			s.fail("Product Type should be 0 in extension block.\n")
		}
		if extCount != 0 {
			s.fail("Extension Count should be 0 in extension block.\n")
		}
		if version != s.dispid.version {
			s.fail("Got version %d.%d, expected %d.%d.\n",
				version>>4, version&0xf, s.dispid.version>>4, s.dispid.version&0xf)
		}
	}

	if length > dispidMaxLength {
		s.fail("DisplayID length %d is greater than 121.\n", length)
		length = dispidMaxLength
	}

	saved := length
	for off := 5; length > 0; {
		n := s.displayIDBlock(version, x[off:5+saved], length)
		length -= n
		off += n
	}

	// The length field counts the bytes that follow the section header,
	// but the checksum covers the whole section except the extension tag.
	s.dataBlock = ""
	s.doChecksum("  ", x[1:saved+6], saved+4, 0)

	s.unusedBytes = 0x7f - (1 + saved + 5)
	if !memchk(x[1+saved+5:0x7f], 0) {
		s.dataBlock = "Padding"
		s.fail("Contains non-zero bytes.\n")
	}
	s.dispid.isBaseBlock = false
}

// checkDisplayIDBlocks runs the DisplayID cross-checks once every block
// has been decoded.
func (s *state) checkDisplayIDBlocks() {
	d := &s.dispid
	s.dataBlock = "DisplayID"
	if !d.hasProductIdentification && d.hasTiledDisplayTopology {
		s.fail("Missing DisplayID Product Identification Data Block.\n")
	}
	if d.isDisplay && !d.hasDisplayParameters {
		s.fail("Missing DisplayID Display Parameters Data Block.\n")
	}
	if d.isDisplay && !d.hasDisplayInterfaceFeatures && d.hasYCbCr420 {
		s.fail("Missing DisplayID Display Interface Features Data Block.\n")
	}
	if d.hasStereo && !d.hasStereoDisplayInterface {
		s.fail("Missing DisplayID Stereo Display Interface Data Block.\n")
	}
	if d.isDisplay && !d.hasType17 {
		s.fail("Missing DisplayID Type %s Detailed Timing Data Block.\n", boolStr(d.version >= 0x20, "VII", "I"))
	}
	if len(d.preferredTimings) == 0 {
		s.fail("DisplayID expects at least one preferred timing.\n")
	}
	if s.cta.imageWidth != 0 && d.imageWidth != 0 &&
		(s.cta.imageWidth != d.imageWidth || s.cta.imageHeight != d.imageHeight) {
		s.fail("Image size mismatch: CTA-861: %.1fx%.1fmm DisplayID: %.1fx%.1fmm.\n",
			float64(s.cta.imageWidth)/10.0, float64(s.cta.imageHeight)/10.0,
			float64(d.imageWidth)/10.0, float64(d.imageHeight)/10.0)
	}
	if d.imageWidth != 0 && d.imageWidth < 25600 && d.imageHeight < 25600 &&
		(absInt(d.imageWidth-s.base.maxDisplayWidthMM*10) >= 100 ||
			absInt(d.imageHeight-s.base.maxDisplayHeightMM*10) >= 100) {
		s.fail("Image size mismatch: DisplayID: %.1fx%.1fmm Base EDID: %d.0x%d.0mm.\n",
			float64(d.imageWidth)/10.0, float64(d.imageHeight)/10.0,
			s.base.maxDisplayWidthMM, s.base.maxDisplayHeightMM)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
