package edid

import (
	"fmt"
	"math"
	"strings"

	"example.com/edidgate/internal/timings"
)

var (
	bpc444     = []string{"6", "8", "10", "12", "14", "16", "", ""}
	bpc4xx     = []string{"8", "10", "12", "14", "16", "", "", ""}
	audioRates = []string{"32", "44.1", "48", "", "", "", "", ""}
)

// printFlags prints label followed by the names of the set bits of v.
// reverse walks from bit 7 down.
func (s *state) printFlags(label string, v byte, names []string, reverse bool) {
	if v == 0 {
		return
	}
	var parts []string
	for i := 0; i < 8; i++ {
		bit := i
		if reverse {
			bit = 7 - i
		}
		if v&(1<<bit) == 0 {
			continue
		}
		if names[i] != "" {
			parts = append(parts, names[i])
		} else {
			parts = append(parts, fmt.Sprintf("Undefined (%d)", i))
		}
	}
	s.printf("%s: %s\n", label, strings.Join(parts, ", "))
}

func (s *state) checkDisplayIDDatablockRevision(hdr, validFlags, rev byte) {
	revision := hdr & 7
	flags := hdr &^ 7 &^ validFlags
	if revision != rev {
		s.warn("Unexpected revision (%d != %d).\n", revision, rev)
	}
	if flags != 0 {
		s.warn("Unexpected flags (0x%02x).\n", flags)
	}
}

const dispidMaxPayload = 128 - 2 - 5 - 3

// checkDisplayIDDatablockLength verifies the payload length x[2] and
// dumps the payload from dumpStart on when it is out of range.
func (s *state) checkDisplayIDDatablockLength(x []byte, minLen, maxLen, dumpStart int) bool {
	l := int(x[2])
	switch {
	case minLen == maxLen && l != maxLen:
		s.fail("DisplayID payload length is different than expected (%d != %d).\n", l, maxLen)
	case l > maxLen:
		s.fail("DisplayID payload length is greater than expected (%d > %d).\n", l, maxLen)
	case l < minLen:
		s.fail("DisplayID payload length is less than expected (%d < %d).\n", l, minLen)
	default:
		return true
	}
	if l > dumpStart {
		s.hexBlock("    ", x[3+dumpStart:3+l], true, 16)
	}
	return false
}

func (s *state) dispidLength(x []byte, n int) bool {
	return s.checkDisplayIDDatablockLength(x, n, n, 0)
}

// tag 0x00 and 0x20
func (s *state) parseDisplayIDProductID(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)

	s.dispid.hasProductIdentification = true
	s.printf("    Product Code: %d\n", le16(x[6:]))
	if sn := uint32(x[8]) | uint32(x[9])<<8 | uint32(x[10])<<16 | uint32(x[11])<<24; sn != 0 {
		if s.opts.HideSerialNumbers {
			s.printf("    Serial Number: ...\n")
		} else {
			s.printf("    Serial Number: %d\n", sn)
		}
	}
	week := int(x[12])
	year := 2000 + int(x[13])
	s.printf("    %s: %d", boolStr(week == 0xff, "Model Year", "Year of Manufacture"), year)
	if week != 0 && week <= 0x36 {
		s.printf(", Week %d", week)
	}
	s.printf("\n")
	if n := int(x[14]); n != 0 {
		const maxLen = pageSize - 15
		if n >= maxLen {
			s.fail("Product ID length is more than expected (%d >= %d).\n", n, maxLen)
			return
		}
		s.printf("    Product ID: %s\n", strings.TrimRight(string(x[15:15+n]), "\x00"))
	}
}

var featureSupportFlags = []string{
	"De-interlacing",
	"Support ACP, ISRC1, or ISRC2packets",
	"Fixed pixel format",
	"Fixed timing",
	"Power management (DPM)",
	"Audio input override",
	"Separate audio inputs provided",
	"Audio support on video interface",
}

func (s *state) setDisplayIDNativeRes(w, h int) {
	d := &s.dispid
	if d.nativeWidth != 0 && (d.nativeWidth != w || d.nativeHeight != h) {
		s.fail("Native resolution mismatch: %dx%d -> %dx%d.\n", d.nativeWidth, d.nativeHeight, w, h)
		return
	}
	if w == 0 && h == 0 {
		return
	}
	if (w == 0) != (h == 0) {
		s.fail("Invalid Native Pixel Format %dx%d.\n", w, h)
		return
	}
	d.nativeWidth, d.nativeHeight = w, h
}

func (s *state) setDisplayIDImageSize(w, h int) {
	s.dispid.imageWidth, s.dispid.imageHeight = w, h
	if w > s.imageWidth || h > s.imageHeight {
		s.imageWidth, s.imageHeight = w, h
	}
}

// tag 0x01
func (s *state) parseDisplayIDParameters(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	if !s.dispidLength(x, 12) {
		return
	}
	if s.dispid.hasDisplayParameters {
		s.fail("Duplicate Display Parameters Data Block.\n")
	}
	s.dispid.hasDisplayParameters = true
	s.setDisplayIDImageSize(le16(x[3:]), le16(x[5:]))
	s.printf("    Image size: %.1f mm x %.1f mm\n",
		float64(s.dispid.imageWidth)/10.0, float64(s.dispid.imageHeight)/10.0)
	w, h := le16(x[7:]), le16(x[9:])
	s.printf("    Display native pixel format: %dx%d\n", w, h)
	s.setDisplayIDNativeRes(w, h)
	if x[11] != 0 {
		s.printf("    Feature support flags:\n")
		for i, n := range featureSupportFlags {
			if x[11]&(1<<i) != 0 {
				s.printf("      %s\n", n)
			}
		}
	}
	if x[12] != 0xff {
		s.printf("    Gamma: %.2f\n", (float64(x[12])+100.0)/100.0)
	}
	s.printf("    Aspect ratio: %.2f\n", (float64(x[13])+100.0)/100.0)
	s.printf("    Dynamic bpc native: %d\n", x[14]&0xf+1)
	s.printf("    Dynamic bpc overall: %d\n", x[14]>>4+1)
}

var stdColorspaceIDs = []string{
	"sRGB", "BT.601", "BT.709", "Adobe RGB", "DCI-P3", "NTSC", "EBU", "Adobe Wide Gamut RGB", "DICOM",
}

func fp2d(v int) float64 { return float64(v) / 4096.0 }

// chromXY decodes a packed pair of 12-bit chromaticity coordinates.
func chromXY(x []byte) (float64, float64) {
	return fp2d(int(x[0]) | int(x[1]&0x0f)<<8), fp2d(int(x[1]>>4) | int(x[2])<<4)
}

// tag 0x02
func (s *state) parseDisplayIDColorCharacteristics(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0xf8, 1)

	cieYear := boolStr(x[1]&0x80 != 0, "1976", "1931")
	xferID := int(x[1]>>3) & 0x0f
	whitepoints := int(x[3] & 0x0f)
	primaries := int(x[3]>>4) & 0x07
	offset := 4

	s.printf("    Uses %s color\n", boolStr(x[3]&0x80 != 0, "temporal", "spatial"))
	s.printf("    Uses %s CIE (x, y) coordinates\n", cieYear)
	if xferID != 0 {
		s.printf("    Associated with Transfer Characteristics Data Block with Identifier %d\n", xferID)
		if s.dispid.preparsedXferIDs&(1<<xferID) == 0 {
			s.fail("Missing Transfer Characteristics Data Block with Identifier %d.\n", xferID)
		}
	}
	if primaries == 0 {
		cs := "Reserved"
		if int(x[4]) < len(stdColorspaceIDs) {
			cs = stdColorspaceIDs[x[4]]
		}
		s.printf("    Uses color space %s\n", cs)
		offset++
	}
	for i := 0; i < primaries; i++ {
		cx, cy := chromXY(x[offset+3*i:])
		s.printf("    Primary #%d: (%.4f, %.4f)\n", i, cx, cy)
	}
	offset += 3 * primaries
	for i := 0; i < whitepoints; i++ {
		cx, cy := chromXY(x[offset+3*i:])
		s.printf("    White point #%d: (%.4f, %.4f)\n", i, cx, cy)
	}
}

// tag 0x09
func (s *state) parseDisplayIDVideoTimingRangeLimits(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	if !s.dispidLength(x, 15) {
		return
	}
	s.printf("    Pixel Clock: %.3f-%.3f MHz\n",
		float64(le24(x[3:])+1)/100.0, float64(le24(x[6:])+1)/100.0)
	s.printf("    Horizontal Frequency: %d-%d kHz\n", x[9], x[10])
	s.printf("    Minimum Horizontal Blanking: %d pixels\n", le16(x[11:]))
	s.printf("    Vertical Refresh: %d-%d Hz\n", x[13], x[14])
	s.printf("    Minimum Vertical Blanking: %d lines\n", le16(x[15:]))
	s.printBits("    ", x[17], []bitName{
		{0x80, "Supports Interlaced"},
		{0x40, "Supports CVT"},
		{0x20, "Supports CVT Reduced Blanking"},
		{0x10, "Discrete frequency display device"},
	})
}

// tag 0x0a and 0x0b
func (s *state) parseDisplayIDString(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	if s.checkDisplayIDDatablockLength(x, 0, dispidMaxPayload, 0) {
		s.printf("    Text: '%s'\n", s.extractString(x[3:3+int(x[2])], false))
	}
}

var displayTechnologies = map[byte]string{
	0x00: "Monochrome CRT",
	0x01: "Standard tricolor CRT",
	0x02: "Other/undefined CRT",
	0x10: "Passive matrix TN",
	0x11: "Passive matrix cholesteric LC",
	0x12: "Passive matrix ferroelectric LC",
	0x13: "Other passive matrix LC type",
	0x14: "Active-matrix TN",
	0x15: "Active-matrix IPS (all types)",
	0x16: "Active-matrix VA (all types)",
	0x17: "Active-matrix OCB",
	0x18: "Active-matrix ferroelectric",
	0x1f: "Other LC type",
	0x20: "DC plasma",
	0x21: "AC plasma",
}

var displayTechnologyFamilies = map[byte]string{
	0x30: "Electroluminescent, except OEL/OLED",
	0x40: "Inorganic LED",
	0x50: "Organic LED/OEL",
	0x60: "FED or sim. \"cold-cathode,\" phosphor-based types",
	0x70: "Electrophoretic",
	0x80: "Electrochromic",
	0x90: "Electromechanical",
	0xa0: "Electrowetting",
	0xf0: "Other type not defined here",
}

var operatingModes = []string{
	"Direct-view reflective, ambient light",
	"Direct-view reflective, ambient light, also has light source",
	"Direct-view reflective, uses light source",
	"Direct-view transmissive, ambient light",
	"Direct-view transmissive, ambient light, also has light source",
	"Direct-view transmissive, uses light source",
	"Direct-view emissive",
	"Direct-view transflective, backlight off by default",
	"Direct-view transflective, backlight on by default",
	"Transparent display, ambient light",
	"Transparent emissive display",
	"Projection device using reflective light modulator",
	"Projection device using transmissive light modulator",
	"Projection device using emissive image transducer",
}

// tag 0x0c
func (s *state) parseDisplayIDDisplayDevice(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	if !s.dispidLength(x, 13) {
		return
	}

	tech := displayTechnologies[x[3]]
	if fam, ok := displayTechnologyFamilies[x[3]&0xf0]; ok {
		tech += fam
	}
	s.printf("    Display Device Technology: %s\n", tech)
	mode := "Reserved"
	if int(x[4]>>4) < len(operatingModes) {
		mode = operatingModes[x[4]>>4]
	}
	s.printf("    Display operating mode: %s\n", mode)
	s.printBits("    ", x[4], []bitName{
		{0x08, "The backlight may be switched on and off"},
		{0x04, "The backlight's intensity can be controlled"},
	})
	w, h := le16(x[5:]), le16(x[7:])
	if w != 0 {
		w++
	}
	if h != 0 {
		h++
	}
	s.printf("    Display native pixel format: %dx%d\n", w, h)
	s.setDisplayIDNativeRes(w, h)
	s.printf("    Aspect ratio and orientation:\n")
	s.printf("      Aspect Ratio: %.2f\n", float64(100+int(x[9]))/100.0)
	v := x[0x0a]
	s.printf("      Default Orientation: %s\n", [4]string{"Landscape", "Portrait", "Not Fixed", "Undefined"}[v>>6])
	s.printf("      Rotation Capability: %s\n", [4]string{
		"None",
		"Can rotate 90 degrees clockwise",
		"Can rotate 90 degrees counterclockwise",
		"Can rotate 90 degrees in either direction)",
	}[(v>>4)&3])
	s.printf("      Zero Pixel Location: %s\n", [4]string{"Upper Left", "Upper Right", "Lower Left", "Lower Right"}[(v>>2)&3])
	s.printf("      Scan Direction: %s\n", [4]string{
		"Not defined",
		"Fast Scan is on the Major (Long) Axis and Slow Scan is on the Minor Axis",
		"Fast Scan is on the Minor (Short) Axis and Slow Scan is on the Major Axis",
		"Reserved",
	}[v&3])
	if v&3 == 3 {
		s.fail("Scan Direction used the reserved value 0x03.\n")
	}
	sub := "Reserved"
	if int(x[0x0b]) < len(subpixelLayouts) {
		sub = subpixelLayouts[x[0x0b]]
	}
	s.printf("    Sub-pixel layout/configuration/shape: %s\n", sub)
	s.printf("    Horizontal and vertical dot/pixel pitch: %.2fx%.2f mm\n",
		float64(x[0x0c])/100.0, float64(x[0x0d])/100.0)
	s.printf("    Color bit depth: %d\n", x[0x0e]&0x0f)
	v = x[0x0f]
	s.printf("    Response time for %s transition: %d ms\n",
		boolStr(v&0x80 != 0, "white-to-black", "black-to-white"), v&0x7f)
}

// tag 0x0d
func (s *state) parseDisplayIDIntfPowerSequencing(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	if !s.dispidLength(x, 6) {
		return
	}
	s.printf("    Power Sequence T1 Range: %.1f-%d.0 ms\n", float64(x[3]>>4)/10.0, int(x[3]&0xf)*2)
	s.printf("    Power Sequence T2 Range: 0.0-%d.0 ms\n", int(x[4]&0x3f)*2)
	s.printf("    Power Sequence T3 Range: 0.0-%d.0 ms\n", int(x[5]&0x3f)*2)
	s.printf("    Power Sequence T4 Min: %d.0 ms\n", int(x[6]&0x7f)*10)
	s.printf("    Power Sequence T5 Min: %d.0 ms\n", int(x[7]&0x3f)*10)
	s.printf("    Power Sequence T6 Min: %d.0 ms\n", int(x[8]&0x3f)*10)
}

// tag 0x0e
func (s *state) parseDisplayIDTransferCharacteristics(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0xf0, 1)
	if !s.checkDisplayIDDatablockLength(x, 1, 248, 0) {
		return
	}

	xferID := int(x[1] >> 4)
	firstIsWhite := x[3]&0x80 != 0
	fourParam := x[3]&0x20 != 0

	if xferID != 0 {
		s.printf("    Transfer Characteristics Data Block Identifier: %d\n", xferID)
		if s.dispid.preparsedColorIDs&(1<<xferID) == 0 {
			s.fail("Missing Color Characteristics Data Block using Identifier %d.\n", xferID)
		}
	}
	if firstIsWhite {
		s.printf("    The first curve is the 'white' transfer characteristic\n")
	}
	if x[3]&0x40 != 0 {
		s.printf("    Individual response curves\n")
	}

	offset := 4
	remaining := int(x[2]) - 1
	for i := 0; remaining > 0; i++ {
		samples := int(x[offset])
		if samples == 0 {
			s.fail("Found a curve with 0 samples.\n")
			samples = 1
		}
		// The last sample is always 0x3ff and is not stored.
		if !fourParam {
			samples--
		}
		if fourParam && samples != 5 {
			s.fail("Expected 5 samples.\n")
			samples = 5
		}
		if samples+1 > remaining {
			s.fail("Length %d is too small to hold %d samples at offset %d.\n", remaining, samples, offset+1)
			break
		}
		if firstIsWhite && i == 0 {
			s.printf("    White curve:      ")
		} else {
			idx := i
			if firstIsWhite {
				idx--
			}
			s.printf("    Response curve #%d:", idx)
		}
		if fourParam {
			s.printf(" A0=%d A1=%d A2=%d A3=%d Gamma=%.2f\n",
				x[offset+1], x[offset+2], x[offset+3], x[offset+4], (float64(x[offset+5])+100.0)/100.0)
		} else {
			sum := 0.0
			for j := offset + 1; j < offset+samples; j++ {
				sum += float64(x[j])
				s.printf(" %.2f", sum*100.0/1023.0)
			}
			s.printf(" 100.00\n")
		}
		offset += samples + 1
		remaining -= samples + 1
	}
}

var displayInterfaceTypes = []string{
	"", "LVDS", "TMDS", "RSDS", "DVI-D", "DVI-I, analog", "DVI-I, digital",
	"HDMI-A", "HDMI-B", "MDDI", "DisplayPort", "Proprietary Digital Interface",
}

// tag 0x0f
func (s *state) parseDisplayIDDisplayIntf(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	if !s.dispidLength(x, 10) {
		return
	}
	s.dispid.hasDisplayInterfaceFeatures = true

	typ := x[3] >> 4
	var iface string
	switch {
	case typ == 0:
		iface = "Reserved"
		if x[3]&0xf < 3 {
			iface = [3]string{"Analog 15HD/VGA", "Analog VESA NAVI-V (15HD)", "Analog VESA NAVI-D"}[x[3]&0xf]
		}
	case int(typ) < len(displayInterfaceTypes):
		iface = displayInterfaceTypes[typ]
	default:
		iface = "Reserved"
	}
	s.printf("    Interface Type: %s\n", iface)
	if typ != 0 {
		s.printf("    Number of Links: %d\n", x[3]&0xf)
	}
	s.printf("    Interface Standard Version: %d.%d\n", x[4]>>4, x[4]&0xf)
	s.printFlags("    Supported bpc for RGB encoding", x[5], bpc444, false)
	s.printFlags("    Supported bpc for YCbCr 4:4:4 encoding", x[6], bpc444, false)
	s.printFlags("    Supported bpc for YCbCr 4:2:2 encoding", x[7], bpc4xx, false)
	cp := x[8] & 0xf
	if cp == 0 {
		s.printf("    Supported Content Protection: None\n")
	} else {
		name := "Reserved"
		if cp < 4 {
			name = [4]string{"", "HDCP", "DTCP", "DPCP"}[cp]
		}
		s.printf("    Supported Content Protection: %s %d.%d\n", name, x[9]>>4, x[9]&0xf)
	}
	v := float64(x[0x0a]&0xf) / 10.0
	switch x[0x0a] >> 6 {
	case 0:
		s.printf("    Spread Spectrum: None\n")
	case 1:
		s.printf("    Spread Spectrum: Down Spread %.1f%%\n", v)
	case 2:
		s.printf("    Spread Spectrum: Center Spread %.1f%%\n", v)
	case 3:
		s.printf("    Spread Spectrum: Reserved\n")
	}

	lvl := func(b byte) string { return boolStr(b&0x02 != 0, "Low", "High") }
	edge := func(b byte) string { return boolStr(b&0x01 != 0, "Rising", "Falling") }
	switch typ {
	case 0x01:
		s.printf("    LVDS Color Mapping: %s mode\n", boolStr(x[0x0b]&0x10 != 0, "6 bit compatible", "normal"))
		s.printBits("    ", x[0x0b], []bitName{
			{0x08, "LVDS supports 2.8V"},
			{0x04, "LVDS supports 12V"},
			{0x02, "LVDS supports 5V"},
			{0x01, "LVDS supports 3.3V"},
		})
		b := x[0x0c]
		s.printf("    LVDS %s Mode\n", boolStr(b&0x04 != 0, "Fixed", "DE"))
		if b&0x04 != 0 {
			s.printf("    LVDS %s Signal Level\n", lvl(b))
		} else {
			s.printf("    LVDS DE Polarity Active %s\n", lvl(b))
		}
		s.printf("    LVDS Shift Clock Data Strobe at %s Edge\n", edge(b))
	case 0x0b:
		b := x[0x0b]
		s.printf("    PDI %s Mode\n", boolStr(b&0x04 != 0, "Fixed", "DE"))
		if b&0x04 != 0 {
			s.printf("    PDI %s Signal Level\n", lvl(b))
		} else {
			s.printf("    PDI DE Polarity Active %s\n", lvl(b))
		}
		s.printf("    PDI Shift Clock Data Strobe at %s Edge\n", edge(b))
	}
}

// tag 0x10 and 0x27
func (s *state) parseDisplayIDStereoDisplayIntf(x []byte) {
	s.dispid.hasStereoDisplayInterface = true
	s.checkDisplayIDDatablockRevision(x[1], 0xc0, 1)

	s.printf("    %s\n", [4]string{
		"Timings that explicitly report 3D capability",
		"Timings that explicitly report 3D capability & Timing Codes listed here",
		"All listed timings",
		"Only Timings Codes listed here",
	}[x[1]>>6])

	eye := func(b byte) string { return boolStr(b&1 != 0, "Right", "Left") }
	switch x[4] {
	case 0x00:
		s.printf("    Field Sequential Stereo (L/R Polarity: %s)\n", boolStr(x[5]&1 != 0, "0/1", "1/0"))
	case 0x01:
		s.printf("    Side-by-side Stereo (Left Half = %s Eye View)\n", eye(x[5]))
	case 0x02:
		s.printf("    Pixel Interleaved Stereo:\n")
		for y := 0; y < 8; y++ {
			var row strings.Builder
			for b := 7; b >= 0; b-- {
				row.WriteByte(boolStr(x[5+y]&(1<<b) != 0, "L", "R")[0])
			}
			s.printf("      %s\n", row.String())
		}
	case 0x03:
		s.printf("    Dual Interface, Left and Right Separate\n")
		s.printf("      Carries the %s-eye view\n", eye(x[5]))
		s.printf("      %s\n", [4]string{
			"No mirroring", "Left/Right mirroring", "Top/Bottom mirroring", "Reserved",
		}[(x[5]>>1)&3])
	case 0x04:
		s.printf("    Multi-View: %d views, Interleaving Method Code: %d\n", x[5], x[6])
	case 0x05:
		s.printf("    Stacked Frame Stereo (Top Half = %s Eye View)\n", eye(x[5]))
	case 0xff:
		s.printf("    Proprietary\n")
	default:
		s.printf("    Reserved\n")
	}
	if x[1]&0x40 == 0 {
		return
	}
	remaining := int(x[2])
	if remaining < int(x[3])+1 {
		s.fail("Length is smaller than expected (%d < %d)\n", remaining, int(x[3])+1)
		return
	}
	remaining -= 1 + int(x[3])
	x = x[4+int(x[3]):]
	for 1+int(x[0]&0x1f) <= remaining {
		n := int(x[0] & 0x1f)
		typ := x[0] >> 6
		for i := 1; i <= n; i++ {
			id := int(x[i])
			switch typ {
			case 0:
				t, ok := timings.FindDMT(id)
				s.printLookup("    ", t, ok, fmt.Sprintf("DMT 0x%02x", id))
			case 1:
				t, ok := timings.FindVIC(id)
				s.printLookup("    ", t, ok, fmt.Sprintf("VIC %3d", id))
			case 2:
				t, ok := timings.FindHDMIVIC(id)
				s.printLookup("    ", t, ok, fmt.Sprintf("HDMI VIC %d", id))
			}
		}
		remaining -= 1 + n
		x = x[1+n:]
	}
}

// tag 0x12 and 0x28
func (s *state) parseDisplayIDTiledDisplayTopology(x []byte, isV2 bool) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	if !s.dispidLength(x, 22) {
		return
	}
	s.dispid.hasTiledDisplayTopology = true

	caps := x[3]
	numV := int(x[4]&0xf) | int(x[6]&0x30)
	numH := int(x[4]>>4) | int(x[6]>>2)&0x30
	locV := int(x[5]&0xf) | int(x[6]&0x3)<<4
	locH := int(x[5]>>4) | int(x[6]>>2)&0x3<<4
	tileW, tileH := le16(x[7:]), le16(x[9:])
	pixMult := int(x[11])

	s.printf("    Capabilities:\n")
	only := "Reserved"
	if caps&7 < 4 {
		only = [4]string{
			"Undefined",
			"Image is displayed at the Tile Location",
			"Image is scaled to fit the entire tiled display",
			"Image is cloned to all other tiles",
		}[caps&7]
	}
	s.printf("      Behavior if it is the only tile: %s\n", only)
	s.printf("      Behavior if more than one tile and fewer than total number of tiles: %s\n",
		[4]string{"Undefined", "Image is displayed at the Tile Location", "Reserved", "Reserved"}[(caps>>3)&3])
	s.printf("    Tiled display consists of %s\n",
		boolStr(caps&0x80 != 0, "a single physical display enclosure", "multiple physical display enclosures"))
	s.printf("    Num horizontal tiles: %d Num vertical tiles: %d\n", numH+1, numV+1)
	s.printf("    Tile location: %d, %d\n", locH, locV)
	s.printf("    Tile resolution: %dx%d\n", tileW+1, tileH+1)
	if caps&0x40 != 0 {
		if pixMult != 0 {
			for i, side := range []string{"Top", "Bottom", "Right", "Left"} {
				s.printf("    %s bezel size: %.1f pixels\n", side, float64(pixMult*int(x[12+i]))/10.0)
			}
		} else {
			s.fail("Bezel information bit is set, but the pixel multiplier is zero.\n")
		}
		s.printf("    Tile resolution: %dx%d\n", tileW+1, tileH+1)
	} else if pixMult != 0 {
		s.fail("No bezel information, but the pixel multiplier is non-zero.\n")
	}
	if isV2 {
		s.printf("    Tiled Display Manufacturer/Vendor ID: %02X-%02X-%02X\n", x[0x10], x[0x11], x[0x12])
	} else {
		s.printf("    Tiled Display Manufacturer/Vendor ID: %c%c%c\n", x[0x10], x[0x11], x[0x12])
	}
	s.printf("    Tiled Display Product ID Code: %d\n", le16(x[0x13:]))
	sn := uint32(x[0x15]) | uint32(x[0x16])<<8 | uint32(x[0x17])<<16 | uint32(x[0x18])<<24
	switch {
	case sn == 0:
		s.fail("Tiled Display Serial Number must be non-zero.\n")
	case s.opts.HideSerialNumbers:
		s.printf("    Tiled Display Serial Number: ...\n")
	default:
		s.printf("    Tiled Display Serial Number: %d\n", sn)
	}
}

// ieee7542d renders an IEEE 754 half precision luminance.
func ieee7542d(fp int) string {
	if fp == 0x8000 {
		return "do not use"
	}
	if fp&0x8000 != 0 {
		return "reserved"
	}
	exp := (fp&0x7c00)>>10 - 15
	fract := fp&0x3ff | 0x400
	return fmt.Sprintf("%f cd/m^2", math.Pow(2, float64(exp))*float64(fract)/1024.0)
}

var scanOrientations = [8]string{
	"Left to Right, Top to Bottom",
	"Right to Left, Top to Bottom",
	"Top to Bottom, Right to Left",
	"Bottom to Top, Right to Left",
	"Right to Left, Bottom to Top",
	"Left to Right, Bottom to Top",
	"Bottom to Top, Left to Right",
	"Top to Bottom, Left to Right",
}

// tag 0x21
func (s *state) parseDisplayIDParametersV2(x []byte, blockRev int) {
	if !s.dispidLength(x, 29) {
		return
	}
	if s.dispid.hasDisplayParameters {
		s.fail("Duplicate Display Parameters Data Block.\n")
	}
	s.dispid.hasDisplayParameters = true

	hor, vert := le16(x[3:]), le16(x[5:])
	if x[1]&0x80 != 0 {
		s.printf("    Image size: %d mm x %d mm\n", hor, vert)
		s.setDisplayIDImageSize(hor*10, vert*10)
	} else {
		s.printf("    Image size: %.1f mm x %.1f mm\n", float64(hor)/10.0, float64(vert)/10.0)
		s.setDisplayIDImageSize(hor, vert)
	}

	w, h := le16(x[7:]), le16(x[9:])
	s.printf("    Display native pixel format: %dx%d\n", w, h)
	s.setDisplayIDNativeRes(w, h)

	v := x[11]
	s.printf("    Scan Orientation: %s\n", scanOrientations[v&7])
	s.printf("    Luminance Information: %s\n",
		[4]string{"Minimum guaranteed value", "Guidance for the Source device", "Reserved", "Reserved"}[(v>>3)&3])
	s.printf("    Color Information: CIE %s\n", boolStr(v&0x40 != 0, "1976", "1931"))
	s.printf("    Audio Speaker Information: %sintegrated\n", boolStr(v&0x80 != 0, "not ", ""))
	s.printf("    Native Color Chromaticity:\n")
	for i, label := range []string{"Primary #1: ", "Primary #2: ", "Primary #3: ", "White Point:"} {
		cx, cy := chromXY(x[0x0c+3*i:])
		s.printf("      %s (%.6f, %.6f)\n", label, cx, cy)
	}
	s.printf("    Native Maximum Luminance (Full Coverage): %s\n", ieee7542d(le16(x[0x18:])))
	s.printf("    Native Maximum Luminance (10%% Rectangular Coverage): %s\n", ieee7542d(le16(x[0x1a:])))
	s.printf("    Native Minimum Luminance: %s\n", ieee7542d(le16(x[0x1c:])))
	switch depth := x[0x1e] & 7; {
	case depth == 0:
		s.printf("    Native Color Depth: Not defined\n")
	case bpc444[depth] != "":
		s.printf("    Native Color Depth: %s bpc\n", bpc444[depth])
	default:
		s.printf("    Native Color Depth: Reserved\n")
	}
	s.printf("    Display Device Technology: %s\n",
		[8]string{"Not Specified", "Active Matrix LCD", "Organic LED", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}[(x[0x1e]>>4)&7])
	if blockRev != 0 {
		s.printf("    Display Device Theme Preference: %s\n",
			boolStr(x[0x1e]&0x80 != 0, "Dark Theme Preferred", "No Preference"))
	}
	if x[0x1f] != 0xff {
		s.printf("    Native Gamma EOTF: %.2f\n", float64(100+int(x[0x1f]))/100.0)
	}
}

// tag 0x25
func (s *state) parseDisplayIDDynamicVideoTimingsRangeLimits(x []byte) {
	rev := byte(0)
	if x[1]&7 == 1 {
		rev = 1
	}
	s.checkDisplayIDDatablockRevision(x[1], 0, rev)
	if !s.dispidLength(x, 9) {
		return
	}
	s.printf("    Minimum Pixel Clock: %d kHz\n", 1+le24(x[3:]))
	s.printf("    Maximum Pixel Clock: %d kHz\n", 1+le24(x[6:]))
	s.printf("    Minimum Vertical Refresh Rate: %d Hz\n", x[9])
	maxRate := int(x[10])
	if x[1]&7 != 0 {
		maxRate += int(x[11]&3) << 8
	}
	s.printf("    Maximum Vertical Refresh Rate: %d Hz\n", maxRate)
	s.printf("    Seamless Dynamic Video Timing Support: %s\n", boolStr(x[11]&0x80 != 0, "Yes", "No"))
}

var colorspaceEOTFCombinations = []string{
	"sRGB", "BT.601", "BT.709/BT.1886", "Adobe RGB", "DCI-P3", "BT.2020", "BT.2020/SMPTE ST 2084", "",
}

var dispidColorspaces = []string{
	"Undefined", "sRGB", "BT.601", "BT.709", "Adobe RGB", "DCI-P3", "BT.2020", "Custom",
}

var dispidEOTFs = []string{
	"Undefined", "sRGB", "BT.601", "BT.1886", "Adobe RGB", "DCI-P3", "BT.2020",
	"Gamma function", "SMPTE ST 2084", "Hybrid Log", "Custom",
}

// tag 0x26
func (s *state) parseDisplayIDInterfaceFeatures(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	if !s.checkDisplayIDDatablockLength(x, 9, dispidMaxPayload, 0) {
		return
	}
	s.dispid.hasDisplayInterfaceFeatures = true

	l := int(x[2])
	s.printFlags("    Supported bpc for RGB encoding", x[3], bpc444, false)
	s.printFlags("    Supported bpc for YCbCr 4:4:4 encoding", x[4], bpc444, false)
	s.printFlags("    Supported bpc for YCbCr 4:2:2 encoding", x[5], bpc4xx, false)
	s.printFlags("    Supported bpc for YCbCr 4:2:0 encoding", x[6], bpc4xx, false)
	if x[7] != 0 {
		s.printf("    Minimum pixel rate at which YCbCr 4:2:0 encoding is supported: %.3f MHz\n", 74.25*float64(x[7]))
	}
	s.printFlags("    Supported audio capability and features (kHz)", x[8], audioRates, true)
	s.printFlags("    Supported color space and EOTF standard combination 1", x[9], colorspaceEOTFCombinations, false)
	s.printFlags("    Supported color space and EOTF standard combination 2", x[10], make([]string, 8), false)

	i := 0
	if l > 8 && x[11] != 0 {
		var b strings.Builder
		b.WriteString("    Supported color space and EOTF additional combinations:")
		for i = 0; i < int(x[11]); i++ {
			if i > 6 {
				fmt.Fprintf(&b, "\n    Number of additional color space and EOTF combinations (%d) is greater than allowed (7).", x[11])
				break
			}
			if i+10 > l {
				fmt.Fprintf(&b, "\n    Number of additional color space and EOTF combinations (%d) is too many to fit in block (%d).", x[11], l-9)
				break
			}
			cs, eotf := "Out of range", "Out of range"
			if ci := int(x[12+i] >> 4); ci < len(dispidColorspaces) {
				cs = dispidColorspaces[ci]
			}
			if ei := int(x[12+i] & 0xf); ei < len(dispidEOTFs) {
				eotf = dispidEOTFs[ei]
			}
			if i > 0 {
				b.WriteString(", ")
			}
			if cs == eotf {
				b.WriteString(cs)
			} else {
				b.WriteString(cs + "/" + eotf)
			}
		}
		s.printf("%s\n", b.String())
	}
	s.checkDisplayIDDatablockLength(x, 9+i, 9+i, 9+i)
}

// tag 0x29
func (s *state) parseDisplayIDContainerID(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	if s.dispidLength(x, 16) {
		s.printf("    Container ID: %s\n", containerID(x[3:]))
	}
}

// tag 0x2b
func (s *state) parseDisplayIDAdaptiveSync(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0x70, 0)

	size := 6 + int(x[1]>>4)&7
	l := int(x[2])
	if l%size != 0 {
		s.fail("DisplayID payload length %d is not a multiple of %d.\n", l, size)
	}
	for d, x := 1, x[3:]; l >= size; d++ {
		s.printf("    Descriptor #%d:\n", d)
		s.printf("      %sNative Panel Range\n", boolStr(x[0]&1 != 0, "", "Non-"))
		switch v := (x[0] >> 2) & 3; v {
		case 0:
			s.printf("      Fixed Average V-Total\n")
		case 1:
			s.printf("      Fixed Average V-Total and Adaptive V-Total\n")
		default:
			s.printf("      Reserved %d\n", v)
			s.fail("Use of reserved value %d.\n", v)
		}
		if x[0]&0x10 == 0 {
			s.printf("      Supports Seamless Transition\n")
		}
		if x[0]&0x02 != 0 {
			s.printf("      'Max Single Frame Duration Increase' field value without jitter impact\n")
		}
		if x[0]&0x20 != 0 {
			s.printf("      'Max Single Frame Duration Decrease' field value without jitter impact\n")
		}
		s.printf("      Max Duration Increase: %.2f ms\n", float64(x[1])/4.0)
		s.printf("      Max Duration Decrease: %.2f ms\n", float64(x[5])/4.0)
		s.printf("      Min Refresh Rate: %d Hz\n", x[2])
		s.printf("      Max Refresh Rate: %d Hz\n", 1+int(x[3])+int(x[4]&3)*256)
		l -= size
		x = x[size:]
	}
}

// tag 0x2c and 0x2d. Only the presence and length are checked.
func (s *state) parseDisplayIDARVR(x []byte, hmd bool) {
	if hmd {
		s.dispid.hasARVRHDM = true
	} else {
		s.dispid.hasARVRLayer = true
	}
	s.checkDisplayIDDatablockRevision(x[1], 1, 0)
	n := 20
	if hmd {
		n = 79
	}
	s.dispidLength(x, n)
}

// tag 0x2e
func (s *state) parseDisplayIDBrightnessLumRange(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	if !s.dispidLength(x, 6) {
		return
	}
	s.printf("    Minimum SDR Luminance (Full Coverage): %s\n", ieee7542d(le16(x[3:])))
	s.printf("    Maximum Suggested SDR Luminance (Full Coverage): %s\n", ieee7542d(le16(x[5:])))
	s.printf("    Maximum Boost SDR Luminance: %s\n", ieee7542d(le16(x[7:])))
}

// tag 0x7e, VESA OUI
func (s *state) parseDisplayIDVESA(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	if !s.checkDisplayIDDatablockLength(x, 5, 7, 0) {
		return
	}
	l := int(x[2])
	x = x[6:]
	switch x[0] & 7 {
	case 0:
		s.printf("    Data Structure Type: eDP\n")
	case 1:
		s.printf("    Data Structure Type: DP\n")
	default:
		s.printf("    Data Structure Type: Reserved (%d)\n", x[0]&7)
	}
	if r := (x[0] >> 3) & 15; r != 0 {
		s.warn("Reserved bits 6:3 (%d) are not 0.\n", r)
	}
	s.printf("    Default Colorspace and EOTF Handling: %s\n",
		boolStr(x[0]&0x80 != 0, "Native as specified in the Display Parameters DB", "sRGB"))
	s.printf("    Number of Pixels in Hor Pix Cnt Overlapping an Adjacent Panel: %d\n", x[1]&0xf)
	if x[1]&0xf > 8 {
		s.warn("Number of Pixels in Hor Pix Cnt Overlapping an Adjacent Panel exceeds 8.\n")
	}
	if x[1]&0x10 != 0 {
		s.warn("Reserved bit 4 is not 0.\n")
	}
	switch (x[1] >> 5) & 3 {
	case 0:
		s.printf("    Multi-SST Operation: Not Supported\n")
	case 1:
		s.printf("    Multi-SST Operation: Two Streams (number of links shall be 2 or 4)\n")
	case 2:
		s.printf("    Multi-SST Operation: Four Streams (number of links shall be 4)\n")
	case 3:
		s.printf("    Multi-SST Operation: Reserved\n")
		s.warn("Invalid option for Multi-SST Operation.\n")
	}
	if x[1]&0x80 != 0 {
		s.warn("Reserved bit 7 is not 0.\n")
	}
	if l >= 7 {
		bpp := float64(x[2]&0x3f) + float64(x[3]&0x0f)/16.0
		s.printf("    Pass through timing's target DSC bits per pixel: %.4f\n", bpp)
	}
}

// tag 0x7f, Apple OUI
func (s *state) parseDisplayIDApple(x []byte) {
	l := int(x[2]) - 3
	x = x[6:]
	if x[0] == 1 {
		s.printf("    Type: BLC Info/Corrections, Version: %d\n", x[1])
	} else {
		s.printf("    Type: %d, Version: %d\n", x[0], x[1])
	}
	if l > 2 {
		s.hexBlock("    ", x[2:l], true, 16)
	}
}

// tag 0x81
func (s *state) parseDisplayIDCTADataBlock(x []byte) {
	s.checkDisplayIDDatablockRevision(x[1], 0, 0)
	l := int(x[2])
	if l > 248 {
		s.fail("Length is > 248.\n")
		l = 248
	}
	x = x[3:]
	i := 0
	for i < l {
		n := int(x[i]&0x1f) + 1
		s.ctaBlock(x[i:min(i+n, l)], &s.dispid.foundTags)
		i += n
	}
	if i != l {
		s.fail("Length is %d instead of %d.\n", l, i)
	}
}
