package edid

import (
	"bytes"
	"fmt"
	"strings"

	"example.com/edidgate/internal/timings"
)

// sRGB chromaticities: red 0.640,0.330 green 0.300,0.600 blue 0.150,0.060
// white 0.3127,0.3290.
var srgbChromaticity = []byte{0xee, 0x91, 0xa3, 0x54, 0x4c, 0x99, 0x26, 0x0f, 0x50, 0x54}

// Serial numbers that are often left in EDIDs as placeholders.
var dummySerialStrings = []string{
	"na", "n/a", "NA",
	"Serial Number", "SerialNumber", "Serial_Number",
	"121212121212", "1234567890123", "20000080",
	"SN-000000001", "demoset-1",
	"H1AK500000", // Samsung
}

var dummySerialNumbers = map[uint32]bool{
	1: true, 0x01010101: true, 1010101: true, 0x5445: true,
	0x80000000: true, 20000080: true, 8888: true, 6666: true,
}

var analogVoltages = [4]string{
	"0.700 : 0.300 : 1.000 V p-p",
	"0.714 : 0.286 : 1.000 V p-p",
	"1.000 : 0.400 : 1.400 V p-p",
	"0.700 : 0.000 : 0.700 V p-p",
}

var digitalInterfaces = [6]string{
	"Digital interface is not defined",
	"DVI interface",
	"HDMI-a interface",
	"HDMI-b interface",
	"MDDI interface",
	"DisplayPort interface",
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

// ManufacturerName decodes the 5-bit packed PNP manufacturer id.
func ManufacturerName(x []byte) string {
	return string([]byte{
		((x[0]&0x7c)>>2) + '@',
		((x[0]&0x03)<<3 | (x[1]&0xe0)>>5) + '@',
		(x[1] & 0x1f) + '@',
	})
}

func (s *state) manufacturerName(x []byte) string {
	name := ManufacturerName(x)
	if !isUpper(name[0]) || !isUpper(name[1]) || !isUpper(name[2]) {
		s.fail("Manufacturer name field contains garbage.\n")
	}
	return name
}

// preparseDetailedBlock collects the range limits and serial number
// strings needed before the standard timings can be interpreted.
func (s *state) preparseDetailedBlock(x []byte) {
	if x[0] != 0 || x[1] != 0 {
		return
	}
	switch x[3] {
	case 0xfd:
		switch x[10] {
		case 0x00:
			s.base.supportsGTF = true
		case 0x02:
			s.base.supportsGTF = true
			s.base.supportsSecGTF = !memchk(x[12:18], 0)
			s.base.secGTFStartFreq = int(x[12]) * 2
			s.base.c = float64(x[13]) / 2.0
			s.base.m = float64(int(x[15])<<8 | int(x[14]))
			s.base.k = float64(x[16])
			s.base.j = float64(x[17]) / 2.0
		case 0x04:
			// CVT implies GTF.
			if s.base.edidMinor >= 4 {
				s.base.supportsGTF = true
				s.base.supportsCVT = true
			}
		}
	case 0xff:
		s.serialStrings = append(s.serialStrings, s.extractString(x[5:18], true))
	}
}

func (s *state) preparseBaseBlock(x []byte) {
	s.base.serialNumber = uint32(x[0x0c]) | uint32(x[0x0d])<<8 | uint32(x[0x0e])<<16 | uint32(x[0x0f])<<24
	s.base.week = int(x[0x10])
	s.base.year = int(x[0x11])
	if x[0x12] == 1 {
		s.base.edidMinor = int(x[0x13])
	}
	for _, off := range []int{0x36, 0x48, 0x5a, 0x6c} {
		s.preparseDetailedBlock(x[off : off+18])
	}
}

// detailedBlock decodes one of the four 18-byte descriptor slots: either a
// DTD or a display descriptor selected by byte 3.
func (s *state) detailedBlock(x []byte, prev byte) {
	s.base.detailedBlockCnt++
	if x[0] != 0 || x[1] != 0 {
		flags := x[17]
		if s.base.hasSPWG && s.base.detailedBlockCnt == 2 {
			flags = prev
		}
		s.detailedTimings("    ", x, true, flags)
		if s.base.seenNonDetailedDescriptor {
			s.fail("Invalid detailed timing descriptor ordering.\n")
		}
		return
	}

	s.dataBlock = fmt.Sprintf("Display Descriptor #%d", s.base.detailedBlockCnt)
	if x[2] != 0 {
		s.fail("Monitor descriptor block has byte 2 nonzero (0x%02x).\n", x[2])
	}
	if (s.base.edidMinor < 4 || x[3] != 0xfd) && x[4] != 0x00 {
		s.fail("Monitor descriptor block has byte 4 nonzero (0x%02x).\n", x[4])
	}
	s.base.seenNonDetailedDescriptor = true
	if s.base.edidMinor == 0 {
		s.fail("Has descriptor blocks other than detailed timings.\n")
	}
	if memchk(x[:18], 0) {
		s.dataBlock = "Empty Descriptor"
		s.printf("    %s\n", s.dataBlock)
		s.fail("Use Dummy Descriptor instead of all zeroes.\n")
		return
	}

	switch x[3] {
	case 0x0e:
		s.detailedEPI(x)
	case 0x10:
		s.dataBlock = "Dummy Descriptor"
		s.printf("    %s:\n", s.dataBlock)
		if !memchk(x[5:18], 0) {
			s.fail("Dummy block filled with garbage.\n")
		}
	case 0xf7:
		s.dataBlock = "Established timings III"
		s.printf("    %s:\n", s.dataBlock)
		for i := 0; i < timings.NumEstablished3(); i++ {
			if x[6+i/8]&(1<<(7-i%8)) == 0 {
				continue
			}
			dmt, _ := timings.Established3(i)
			t, ok := timings.FindDMT(dmt)
			var tp *timings.Timings
			if ok {
				tp = &t
			}
			s.printTimingsOpts("      ", tp, fmt.Sprintf("DMT 0x%02x", dmt), "", false, true, ntscOption)
		}
		if s.base.edidMinor < 4 {
			s.fail("Not allowed for EDID < 1.4.\n")
		}
	case 0xf8:
		s.dataBlock = "CVT 3 Byte Timing Codes"
		s.printf("    %s:\n", s.dataBlock)
		if x[5] != 0x01 {
			s.fail("Invalid version number %d.\n", x[5])
			return
		}
		for i := 0; i < 4; i++ {
			s.detailedCVTDescriptor("      ", x[6+i*3:9+i*3], i == 0)
		}
		if s.base.edidMinor < 4 {
			s.fail("Not allowed for EDID < 1.4.\n")
		}
	case 0xf9:
		s.dataBlock = "Display Color Management Data"
		s.printf("    %s:\n", s.dataBlock)
		s.printf("      Version : %d\n", x[5])
		coef := func(i int) float64 { return float64(int16(uint16(x[i])|uint16(x[i+1])<<8)) / 100.0 }
		s.printf("      Red a3  : %.2f\n", coef(6))
		s.printf("      Red a2  : %.2f\n", coef(8))
		s.printf("      Green a3: %.2f\n", coef(10))
		s.printf("      Green a2: %.2f\n", coef(12))
		s.printf("      Blue a3 : %.2f\n", coef(14))
		s.printf("      Blue a2 : %.2f\n", coef(16))
	case 0xfa:
		s.dataBlock = "Standard Timing Identifications"
		s.printf("    %s:\n", s.dataBlock)
		cnt := 0
		for i := 0; i < 6; i++ {
			b1, b2 := x[5+i*2], x[6+i*2]
			if b1 != 0x01 || b2 != 0x01 {
				cnt++
			}
			s.printStandardTiming("      ", b1, b2, false, false)
		}
		if cnt == 0 {
			s.warn("%s block without any timings.\n", s.dataBlock)
		}
	case 0xfb:
		s.dataBlock = "Color Point Data"
		s.printf("    %s:\n", s.dataBlock)
		s.colorPoint(x[5], x[6], x[7], x[8], x[9])
		if x[10] != 0 {
			s.colorPoint(x[10], x[11], x[12], x[13], x[14])
		}
	case 0xfc:
		s.dataBlock = "Display Product Name"
		s.base.hasNameDescriptor = true
		s.printf("    %s: '%s'\n", s.dataBlock, s.extractString(x[5:18], true))
	case 0xfd:
		s.detailedDisplayRangeLimits(x)
	case 0xfe:
		switch {
		case !s.base.hasSPWG || s.base.detailedBlockCnt < 3:
			s.dataBlock = "Alphanumeric Data String"
			s.printf("    %s: '%s'\n", s.dataBlock, s.extractString(x[5:18], true))
		case s.base.detailedBlockCnt == 3:
			s.dataBlock = "SPWG Descriptor #3"
			s.printf("    %s:\n", s.dataBlock)
			pn := x[5:10]
			if i := bytes.IndexByte(pn, 0); i >= 0 {
				pn = pn[:i]
			}
			if len(pn) != 5 {
				s.fail("Invalid PC Maker P/N length.\n")
			}
			s.printf("      SPWG PC Maker P/N: '%s'\n", pn)
			s.printf("      SPWG LCD Supplier EEDID Revision: %d\n", x[10])
			s.printf("      SPWG Manufacturer P/N: '%s'\n", s.extractString(x[11:18], true))
		default:
			s.dataBlock = "SPWG Descriptor #4"
			s.printf("    %s:\n", s.dataBlock)
			s.printf("      SMBUS Values: 0x%02x 0x%02x 0x%02x 0x%02x 0x%02x 0x%02x 0x%02x 0x%02x\n",
				x[5], x[6], x[7], x[8], x[9], x[10], x[11], x[12])
			s.printf("      LVDS Channels: %d\n", x[13])
			s.printf("      Panel Self Test %sPresent\n", boolStr(x[14] != 0, "", "Not "))
			if x[15] != 0x0a || x[16] != 0x20 || x[17] != 0x20 {
				s.fail("Invalid trailing data.\n")
			}
		}
	case 0xff:
		s.dataBlock = "Display Product Serial Number"
		sn := s.extractString(x[5:18], true)
		switch {
		case s.opts.HideSerialNumbers:
			s.printf("    %s: ...\n", s.dataBlock)
		default:
			s.printf("    %s: '%s'\n", s.dataBlock, sn)
		}
		// Strings made of spaces, 0 and 1 are always dummies.
		dummy := strings.Trim(sn, " 01") == ""
		for _, d := range dummySerialStrings {
			if dummy {
				break
			}
			dummy = sn == d
		}
		if dummy && sn != "" {
			s.warn("The serial number is one of the known dummy values, is that intended?\n")
		}
	default:
		s.printf("    %s Display Descriptor (0x%02x):", boolStr(x[3] <= 0x0f, "Manufacturer-Specified", "Unknown"), x[3])
		s.hexBlock(" ", x[2:18], true, 16)
		if x[3] > 0x0f {
			s.fail("Unknown Type 0x%02x.\n", x[3])
		}
	}
}

func (s *state) colorPoint(index, lsb, wx, wy, gamma byte) {
	x := int(wx)<<2 | int(lsb>>2)&3
	y := int(wy)<<2 | int(lsb)&3
	s.printf("      Index: %d White: 0.%04d, 0.%04d", index, x*10000/1024, y*10000/1024)
	if gamma == 0xff {
		s.printf(" Gamma: is defined in an extension block")
	} else {
		s.printf(" Gamma: %.2f", (float64(gamma)+100.0)/100.0)
	}
	s.printf("\n")
}

func (s *state) chromaticity(label string, lo byte, shift uint, xhi, yhi byte) {
	cx := int(xhi)<<2 | int(lo>>(shift+2))&3
	cy := int(yhi)<<2 | int(lo>>shift)&3
	s.printf("    %s: 0.%04d, 0.%04d\n", label, cx*10000/1024, cy*10000/1024)
}

func (s *state) parseBaseBlock(x []byte) {
	hasPreferredTiming := false

	s.dataBlock = "EDID Structure Version & Revision"
	s.printf("  %s: %d.%d\n", s.dataBlock, x[0x12], x[0x13])
	if x[0x12] == 1 {
		s.base.edidMinor = int(x[0x13])
		if s.base.edidMinor > 4 {
			s.warn("Unknown EDID minor version %d, assuming 1.4 conformance.\n", s.base.edidMinor)
		}
		if s.base.edidMinor < 3 {
			s.warn("EDID 1.%d is deprecated, do not use.\n", s.base.edidMinor)
		}
	} else {
		s.fail("Unknown EDID major version.\n")
	}

	s.dataBlock = "Vendor & Product Identification"
	manufacturer := s.manufacturerName(x[0x08:0x0a])
	s.printf("  %s:\n", s.dataBlock)
	s.printf("    Manufacturer: %s\n    Model: %d\n", manufacturer, int(x[0x0a])|int(x[0x0b])<<8)
	if manufacturer == "CID" {
		if s.hasCTA && !s.cta.hasPIDB {
			s.fail("Manufacturer name is set to CID, but there is no CTA-861 Product Information Data Block.\n")
		}
		if s.hasDispID && !s.hasCTA && !s.dispid.hasProductIdentification {
			s.fail("Manufacturer name is set to CID, but there is no DisplayID Product Identification Data Block.\n")
		}
	}
	if sn := s.base.serialNumber; sn != 0 {
		if s.opts.HideSerialNumbers {
			s.printf("    Serial Number: ...\n")
		} else {
			s.printf("    Serial Number: %d (0x%08x)\n", sn, sn)
		}
		if dummySerialNumbers[sn] {
			s.warn("The serial number is one of the known dummy values, it should probably be set to 0.\n")
		}
	}

	week := s.base.week
	year := 1990 + s.base.year
	if week != 0 {
		if s.base.edidMinor <= 3 && week == 0xff {
			s.fail("EDID 1.3 does not support week 0xff.\n")
		}
		// Week 54 only exists in EDID 1.4.
		if s.base.edidMinor <= 3 && week == 54 {
			s.fail("EDID 1.3 does not support week 54.\n")
		}
		if week != 0xff && week > 54 {
			s.fail("Invalid week of manufacture (> 54).\n")
		}
	}
	if year-1 > s.now().Year() {
		s.fail("The year is more than one year in the future.\n")
	}
	switch {
	case week == 0xff:
		s.printf("    Model year: %d\n", year)
	case week != 0:
		s.printf("    Made in: week %d of %d\n", week, year)
	default:
		s.printf("    Made in: %d\n", year)
	}

	s.dataBlock = "Basic Display Parameters & Features"
	s.printf("  %s:\n", s.dataBlock)
	if x[0x14]&0x80 != 0 {
		s.base.isAnalog = false
		s.printf("    Digital display\n")
		switch {
		case s.base.edidMinor >= 4:
			switch depth := x[0x14] & 0x70; depth {
			case 0x00:
				s.printf("    Color depth is undefined\n")
			case 0x70:
				s.fail("Color Bit Depth set to reserved value.\n")
			default:
				s.printf("    Bits per primary color channel: %d\n", int(depth>>3)+4)
			}
			if intf := x[0x14] & 0x0f; int(intf) < len(digitalInterfaces) {
				s.printf("    %s\n", digitalInterfaces[intf])
			} else {
				s.printf("    Unknown interface: 0x%02x\n", intf)
				s.fail("Digital Video Interface Standard set to reserved value 0x%02x.\n", intf)
			}
		case s.base.edidMinor >= 2:
			if x[0x14]&0x01 != 0 {
				s.printf("    DFP 1.x compatible TMDS\n")
			}
			if x[0x14]&0x7e != 0 {
				s.fail("Digital Video Interface Standard set to reserved value 0x%02x.\n", x[0x14]&0x7e)
			}
		case x[0x14]&0x7f != 0:
			s.fail("Digital Video Interface Standard set to reserved value 0x%02x.\n", x[0x14]&0x7f)
		}
	} else {
		sync := x[0x14] & 0x0f
		s.base.isAnalog = true
		s.printf("    Analog display\n")
		s.printf("    Signal Level Standard: %s\n", analogVoltages[(x[0x14]&0x60)>>5])
		if x[0x14]&0x10 != 0 {
			s.printf("    Blank-to-black setup/pedestal\n")
		} else {
			s.printf("    Blank level equals black level\n")
		}
		if sync != 0 {
			s.printf("    Sync:%s%s%s%s\n",
				boolStr(sync&0x08 != 0, " Separate", ""),
				boolStr(sync&0x04 != 0, " Composite", ""),
				boolStr(sync&0x02 != 0, " SyncOnGreen", ""),
				boolStr(sync&0x01 != 0, " Serration", ""))
		}
	}

	switch {
	case x[0x15] != 0 && x[0x16] != 0:
		factor := 1
		if s.cta.preparsedImageSize == imageSize5cm {
			factor = 5
		}
		w, h := int(x[0x15])*factor, int(x[0x16])*factor
		s.printf("    Maximum image size: %d cm x %d cm%s\n", w, h,
			boolStr(factor == 5, " (HDMI VSDB indicates 5 cm units)", ""))
		s.base.maxDisplayWidthMM = w * 10
		s.base.maxDisplayHeightMM = h * 10
		s.imageWidth = s.base.maxDisplayWidthMM * 10
		s.imageHeight = s.base.maxDisplayHeightMM * 10
		if x[0x15] < 10 || x[0x16] < 10 {
			s.warn("Dubious maximum image size (%dx%d is smaller than %dx%d cm).\n", w, h, 10*factor, 10*factor)
		}
	case s.base.edidMinor >= 4 && (x[0x15] != 0 || x[0x16] != 0):
		if x[0x15] != 0 {
			s.printf("    Aspect ratio: %.2f (landscape)\n", (float64(x[0x15])+99)/100.0)
		} else {
			s.printf("    Aspect ratio: %.2f (portrait)\n", 100.0/(float64(x[0x16])+99))
		}
	default:
		// Either or both can be zero for 1.3 and before.
		s.printf("    Image size is variable\n")
	}

	if x[0x17] == 0xff {
		s.printf("    Gamma is defined in an extension block\n")
	} else {
		s.printf("    Gamma: %.2f\n", (float64(x[0x17])+100.0)/100.0)
	}

	if x[0x18]&0xe0 != 0 {
		s.printf("    DPMS levels:%s%s%s\n",
			boolStr(x[0x18]&0x80 != 0, " Standby", ""),
			boolStr(x[0x18]&0x40 != 0, " Suspend", ""),
			boolStr(x[0x18]&0x20 != 0, " Off", ""))
	}

	if s.base.isAnalog || s.base.edidMinor < 4 {
		switch x[0x18] & 0x18 {
		case 0x00:
			s.printf("    Monochrome or grayscale display\n")
		case 0x08:
			s.printf("    RGB color display\n")
		case 0x10:
			s.printf("    Non-RGB color display\n")
		case 0x18:
			s.printf("    Undefined display color type\n")
		}
	} else {
		s.printf("    Supported color formats: RGB 4:4:4%s%s\n",
			boolStr(x[0x18]&0x08 != 0, ", YCrCb 4:4:4", ""),
			boolStr(x[0x18]&0x10 != 0, ", YCrCb 4:2:2", ""))
	}

	isSRGB := bytes.Equal(x[0x19:0x23], srgbChromaticity)
	if x[0x18]&0x04 != 0 {
		s.printf("    Default (sRGB) color space is primary color space\n")
		if !isSRGB {
			s.fail("sRGB is signaled, but the chromaticities do not match.\n")
		}
		if x[0x17] != 120 {
			s.warn("sRGB is signaled, but the gamma != 2.2.\n")
		}
		s.base.usesSRGB = true
	} else if isSRGB {
		s.fail("The chromaticities match sRGB, but sRGB is not signaled.\n")
		s.base.usesSRGB = true
	}

	if s.base.edidMinor >= 4 {
		// 1.4 always has a preferred timing and the bit means native.
		hasPreferredTiming = true
		s.base.preferredIsAlsoNative = x[0x18]&0x02 != 0
		s.printf("    First detailed timing %s the native pixel format and preferred refresh rate\n",
			boolStr(s.base.preferredIsAlsoNative, "includes", "does not include"))
	} else if x[0x18]&0x02 != 0 {
		s.printf("    First detailed timing is the preferred timing\n")
		hasPreferredTiming = true
		// Recommended, not required, by 1.3, but assumed from here on.
		s.base.preferredIsAlsoNative = true
	} else if s.base.edidMinor == 3 {
		s.fail("EDID 1.3 requires that the first detailed timing is the preferred timing.\n")
	}

	if x[0x18]&0x01 != 0 {
		if s.base.edidMinor >= 4 {
			s.base.supportsContinuousFreq = true
			s.printf("    Display supports continuous frequencies\n")
		} else {
			s.printf("    Supports GTF timings within operating range\n")
			s.base.supportsGTF = true
		}
	}

	s.dataBlock = "Color Characteristics"
	s.printf("  %s:\n", s.dataBlock)
	s.chromaticity("Red  ", x[0x19], 4, x[0x1b], x[0x1c])
	s.chromaticity("Green", x[0x19], 0, x[0x1d], x[0x1e])
	s.chromaticity("Blue ", x[0x1a], 4, x[0x1f], x[0x20])
	s.chromaticity("White", x[0x1a], 0, x[0x21], x[0x22])

	s.dataBlock = "Established Timings I & II"
	if x[0x23] != 0 || x[0x24] != 0 || x[0x25] != 0 {
		s.printf("  %s:\n", s.dataBlock)
		for i := 0; i < timings.NumEstablished12(); i++ {
			if x[0x23+i/8]&(1<<(7-i%8)) == 0 {
				continue
			}
			t, label, ok := timings.Established12(i)
			if !strings.HasPrefix(label, "DMT") {
				label = fmt.Sprintf("%-8s", label)
			}
			var tp *timings.Timings
			if ok {
				tp = &t
			}
			s.printTimingsOpts("    ", tp, label, "", false, true, ntscOption)
		}
	} else {
		s.printf("  %s: none\n", s.dataBlock)
	}
	s.base.has640x480p60EstTiming = x[0x23]&0x20 != 0

	s.dataBlock = "Standard Timings"
	found := false
	for i := 0; i < 8; i++ {
		if x[0x26+i*2] != 0x01 || x[0x27+i*2] != 0x01 {
			found = true
			break
		}
	}
	if found {
		s.printf("  %s:\n", s.dataBlock)
		for i := 0; i < 8; i++ {
			s.printStandardTiming("    ", x[0x26+i*2], x[0x27+i*2], false, false)
		}
	} else {
		s.printf("  %s: none\n", s.dataBlock)
	}

	if hasPreferredTiming && x[0x36] == 0 && x[0x37] == 0 {
		s.fail("Missing preferred timing.\n")
	}

	// SPWG notebook panels reuse descriptors 3 and 4.
	if (x[0x36] != 0 || x[0x37] != 0) &&
		(x[0x48] != 0 || x[0x49] != 0) &&
		x[0x5a] == 0 && x[0x5b] == 0 && x[0x5d] == 0xfe &&
		x[0x6c] == 0 && x[0x6d] == 0 && x[0x6f] == 0xfe &&
		(x[0x79] == 1 || x[0x79] == 2) && x[0x7a] <= 1 {
		s.base.hasSPWG = true
	}

	n := 4
	if s.base.hasSPWG {
		n = 2
	}
	for i := 0; i < n; i++ {
		if x[0x36+i*18] != 0 || x[0x37+i*18] != 0 {
			s.cta.preparsedTotalDTDs++
		}
	}

	s.dataBlock = "Detailed Timing Descriptors"
	s.printf("  %s:\n", s.dataBlock)
	for _, off := range []int{0x36, 0x48, 0x5a, 0x6c} {
		s.detailedBlock(x[off:off+18], x[off-1])
	}
	s.base.hasSPWG = false
	if !hasPreferredTiming {
		s.base.preferredTiming = timings.Ext{}
	}

	if x[0x7e] != 0 {
		s.printf("  Extension blocks: %d\n", x[0x7e])
	}

	s.dataBlock = ""
	s.doChecksum("", x[:pageSize], pageSize-1, 0)
	if s.base.edidMinor >= 3 {
		if !s.base.hasNameDescriptor {
			if s.base.edidMinor >= 4 {
				s.warn("Missing Display Product Name.\n")
			} else {
				s.fail("Missing Display Product Name.\n")
			}
		}
		if (s.base.edidMinor == 3 || s.base.supportsContinuousFreq) && !s.base.hasDisplayRangeDescriptor {
			s.fail("Missing Display Range Limits Descriptor.\n")
		}
	}
}

// checkBaseBlock runs the cross-block checks owned by the base block:
// observed timings against the Display Range Limits, DTD image sizes
// against the display size, and the extension block count.
func (s *state) checkBaseBlock(x []byte) {
	s.dataBlock = "Base EDID"
	b := &s.base

	minV, maxV := float64(b.minDisplayVertFreqHz), float64(b.maxDisplayVertFreqHz)
	minH, maxH := b.minDisplayHorFreqHz, b.maxDisplayHorFreqHz
	// Regular rounding of the frequencies is allowed. The pixel clock
	// is rounded up, so it needs no slack.
	vertOut := s.minVertFreqHz+0.5 < minV || (s.maxVertFreqHz >= maxV+0.5 && maxV != 0)
	horOut := s.minHorFreqHz+500 < minH || (s.maxHorFreqHz >= maxH+500 && maxH != 0)
	if b.hasDisplayRangeDescriptor &&
		(vertOut || horOut || (s.maxPixclkKHz > b.maxDisplayPixclkKHz && b.maxDisplayPixclkKHz != 0)) {
		outOfRange := s.minVertFreqHz+1.0 <= minV ||
			(s.maxVertFreqHz >= maxV+1.0 && maxV != 0) ||
			s.minHorFreqHz+1000 <= minH ||
			(s.maxHorFreqHz >= maxH+1000 && maxH != 0) ||
			(s.maxPixclkKHz >= b.maxDisplayPixclkKHz+10000 && b.maxDisplayPixclkKHz != 0)

		var msg strings.Builder
		msg.WriteString("Some timings are out of range of the Monitor Ranges:\n")
		if vertOut {
			fmt.Fprintf(&msg, "    Vertical Freq: %.3f - %.3f Hz (Monitor: %d.000 - %d.000 Hz)\n",
				s.minVertFreqHz, s.maxVertFreqHz, b.minDisplayVertFreqHz, b.maxDisplayVertFreqHz)
		}
		if horOut {
			fmt.Fprintf(&msg, "    Horizontal Freq: %.3f - %.3f kHz (Monitor: %.3f - %.3f kHz)\n",
				float64(s.minHorFreqHz)/1000.0, float64(s.maxHorFreqHz)/1000.0,
				float64(minH)/1000.0, float64(maxH)/1000.0)
		}
		if s.maxPixclkKHz >= b.maxDisplayPixclkKHz && b.maxDisplayPixclkKHz != 0 {
			fmt.Fprintf(&msg, "    Maximum Clock: %.3f MHz (Monitor: %.3f MHz)\n",
				float64(s.maxPixclkKHz)/1000.0, float64(b.maxDisplayPixclkKHz)/1000.0)
		}
		if !outOfRange {
			msg.WriteString("    Could be due to a Monitor Range off-by-one rounding issue\n")
		}
		s.warn("%s", msg.String())
	}

	if (s.imageWidth != 0 && s.dtdMaxHSizeMM >= 10+s.imageWidth/10) ||
		(s.imageHeight != 0 && s.dtdMaxVSizeMM >= 10+s.imageHeight/10) {
		s.fail("The DTD max image size is %dx%dmm, which is larger than the display size %.1fx%.1fmm.\n",
			s.dtdMaxHSizeMM, s.dtdMaxVSizeMM, float64(s.imageWidth)/10.0, float64(s.imageHeight)/10.0)
	}
	if (s.imageWidth == 0 && s.dtdMaxHSizeMM != 0) || (s.imageHeight == 0 && s.dtdMaxVSizeMM != 0) {
		s.fail("The DTD max image size is %dx%dmm, but the display size is not specified anywhere.\n",
			s.dtdMaxHSizeMM, s.dtdMaxVSizeMM)
	}

	// Legacy +hsync -vsync timings must stay below the start of the
	// secondary GTF curve.
	if b.supportsSecGTF && b.maxPosNegHorFreqKHz >= float64(b.secGTFStartFreq) {
		s.fail("Second GTF start frequency %d is less than the highest P/N frequency %d.\n",
			b.secGTFStartFreq, int(b.maxPosNegHorFreqKHz))
	}

	ext := int(x[0x7e])
	eeodb := s.cta.hfEEODBBlocks
	switch {
	case ext+1 != s.numBlocks && eeodb == 0:
		s.fail("EDID specified %d extension block(s), but found %d extension block(s).\n", ext, s.numBlocks-1)
	case ext != 1 && eeodb != 0:
		s.fail("HDMI Forum EDID Extension Override Data Block is present, but Block 0 defined %d instead of 1 Extension Blocks.\n", ext)
	case ext == 1 && eeodb != 0 && eeodb+1 != s.numBlocks:
		s.fail("HDMI Forum EDID Extension Override Data Block specified %d extension block(s), but found %d extension block(s).\n",
			eeodb, s.numBlocks-1)
	}

	if b.edidMinor == 3 && s.numBlocks > 2 && !s.blockMap.saw1 && eeodb == 0 {
		s.fail("EDID 1.3 requires a Block Map Extension in Block 1 if there are more than 2 blocks in the EDID.\n")
	}
	if b.edidMinor == 3 && s.numBlocks > 128 && !s.blockMap.saw128 && eeodb == 0 {
		s.fail("EDID 1.3 requires a Block Map Extension in Block 128 if there are more than 128 blocks in the EDID.\n")
	}
	if s.blockMap.saw128 && s.numBlocks > 255 {
		s.fail("If there is a Block Map Extension in Block 128 then the maximum number of blocks is 255.\n")
	}
	if len(s.serialStrings) > 1 {
		s.warn("Multiple Display Product Serial Numbers are specified, is that intended?\n")
	}
}
