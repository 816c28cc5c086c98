package edid

import (
	"fmt"
	"math"
)

var vdddbInterfaces = map[byte]string{
	1:  "LVDS %d lanes",
	2:  "RSDS %d lanes",
	3:  "DVI-D %d channels",
	4:  "DVI-I analog",
	5:  "DVI-I digital %d channels",
	6:  "HDMI-A",
	7:  "HDMI-B",
	8:  "MDDI %d channels",
	9:  "DisplayPort %d channels",
	10: "IEEE-1394",
	11: "M1 analog",
	12: "M1 digital %d channels",
}

var subpixelLayouts = []string{
	"Not defined",
	"RGB vertical stripes",
	"RGB horizontal stripes",
	"Vertical stripes using primary order",
	"Horizontal stripes using primary order",
	"Quad sub-pixels, red at top left",
	"Quad sub-pixels, red at bottom left",
	"Delta (triad) RGB sub-pixels",
	"Mosaic",
	"Quad sub-pixels, RGB + 1 additional color",
	"Five sub-pixels, RGB + 2 additional colors",
	"Six sub-pixels, RGB + 3 additional colors",
	"Clairvoyante, Inc. PenTile Matrix (tm) layout",
}

// ctaVESAVDDDB decodes the VESA Video Display Device Data Block.
func (s *state) ctaVESAVDDDB(x []byte) {
	if len(x) != 30 {
		s.fail("Invalid length %d.\n", len(x))
		return
	}

	v := x[0]
	var iface string
	switch {
	case v>>4 == 0:
		iface = "Analog (" + [4]string{"15HD/VGA", "VESA NAVI-V (15HD)", "VESA NAVI-D", "Reserved"}[min(v&0xf, 3)] + ")"
	case vdddbInterfaces[v>>4] != "":
		iface = vdddbInterfaces[v>>4]
		if v>>4 != 4 && v>>4 != 6 && v>>4 != 7 && v>>4 != 10 && v>>4 != 11 {
			iface = fmt.Sprintf(iface, v&0xf)
		}
	default:
		iface = "Reserved"
	}
	s.printf("    Interface Type: %s\n", iface)
	s.printf("    Interface Standard Version: %d.%d\n", x[1]>>4, x[1]&0xf)
	s.printf("    Content Protection Support: %s\n",
		[5]string{"None", "HDCP", "DTCP", "DPCP", "Reserved"}[min(x[2], 4)])
	s.printf("    Minimum Clock Frequency: %d MHz\n", x[3]>>2)
	s.printf("    Maximum Clock Frequency: %d MHz\n", int(x[3]&0x03)<<8|int(x[4]))
	s.printf("    Device Native Pixel Format: %dx%d\n", int(x[5])|int(x[6])<<8, int(x[7])|int(x[8])<<8)
	s.printf("    Aspect Ratio: %.2f\n", float64(100+int(x[9]))/100.0)

	v = x[0x0a]
	s.printf("    Default Orientation: %s\n", [4]string{"Landscape", "Portrait", "Not Fixed", "Undefined"}[(v&0xc0)>>6])
	s.printf("    Rotation Capability: %s\n", [4]string{
		"None",
		"Can rotate 90 degrees clockwise",
		"Can rotate 90 degrees counterclockwise",
		"Can rotate 90 degrees in either direction)",
	}[(v&0x30)>>4])
	s.printf("    Zero Pixel Location: %s\n", [4]string{"Upper Left", "Upper Right", "Lower Left", "Lower Right"}[(v&0x0c)>>2])
	s.printf("    Scan Direction: %s\n", [4]string{
		"Not defined",
		"Fast Scan is on the Major (Long) Axis and Slow Scan is on the Minor Axis",
		"Fast Scan is on the Minor (Short) Axis and Slow Scan is on the Major Axis",
		"Reserved",
	}[v&0x03])
	if v&0x03 == 0x03 {
		s.fail("Scan Direction used the reserved value 0x03.\n")
	}
	sub := "Reserved"
	if int(x[0x0b]) < len(subpixelLayouts) {
		sub = subpixelLayouts[x[0x0b]]
	}
	s.printf("    Subpixel Information: %s\n", sub)
	s.printf("    Horizontal and vertical dot/pixel pitch: %.2f x %.2f mm\n",
		float64(x[0x0c])/100.0, float64(x[0x0d])/100.0)

	v = x[0x0e]
	s.printf("    Dithering: %s\n", [4]string{"None", "Spatial", "Temporal", "Spatial and Temporal"}[v>>6])
	s.printf("    Direct Drive: %s\n", boolStr(v&0x20 != 0, "Yes", "No"))
	s.printf("    Overdrive %srecommended\n", boolStr(v&0x10 != 0, "not ", ""))
	s.printf("    Deinterlacing: %s\n", boolStr(v&0x08 != 0, "Yes", "No"))

	v = x[0x0f]
	s.printf("    Audio Support: %s\n", boolStr(v&0x80 != 0, "Yes", "No"))
	s.printf("    Separate Audio Inputs Provided: %s\n", boolStr(v&0x40 != 0, "Yes", "No"))
	s.printf("    Audio Input Override: %s\n", boolStr(v&0x20 != 0, "Yes", "No"))
	if v = x[0x10]; v != 0 {
		s.printf("    Audio Delay: %s%d ms\n", boolStr(v&0x80 != 0, "", "-"), int(v&0x7f)*2)
	} else {
		s.printf("    Audio Delay: no information provided\n")
	}

	v = x[0x11]
	s.printf("    Frame Rate/Mode Conversion: %s\n", [4]string{
		"None", "Single Buffering", "Double Buffering", "Advanced Frame Rate Conversion",
	}[v>>6])
	if v&0x3f != 0 {
		s.printf("    Frame Rate Range: %d fps +/- %d fps\n", x[0x12], v&0x3f)
	} else {
		s.printf("    Nominal Frame Rate: %d fps\n", x[0x12])
	}
	s.printf("    Color Bit Depth: %d @ interface, %d @ display\n", x[0x13]>>4+1, x[0x13]&0xf+1)

	if n := x[0x15] & 3; n != 0 {
		s.printf("    Additional Primary Chromaticities:\n")
		prim := func(idx int, hiX, hiY byte, lo byte) {
			cx := int(hiX)<<2 | int(lo>>2)&3
			cy := int(hiY)<<2 | int(lo)&3
			s.printf("      Primary %d:   0.%04d, 0.%04d\n", idx, cx*10000/1024, cy*10000/1024)
		}
		// The low bits of each coordinate pair are packed into
		// bytes 0x14 and 0x15, two bits per coordinate.
		prim(4, x[0x16], x[0x17], x[0x14]>>4)
		if n > 1 {
			prim(5, x[0x18], x[0x19], x[0x14]&0xf)
			if n > 2 {
				prim(6, x[0x1a], x[0x1b], x[0x15]>>4)
			}
		}
	}

	v = x[0x1c]
	s.printf("    Response Time %s: %d ms\n", boolStr(v&0x80 != 0, "White -> Black", "Black -> White"), v&0x7f)
	v = x[0x1d]
	s.printf("    Overscan: %d%% x %d%%\n", v>>4, v&0xf)
}

var colorimetry1 = []string{
	"xvYCC601",
	"xvYCC709",
	"sYCC601",
	"opYCC601",
	"opRGB",
	"BT2020cYCC",
	"BT2020YCC",
	"BT2020RGB",
}

var colorimetry2 = []string{
	"Gamut Boundary Description Metadata Profile P0",
	"Reserved F41",
	"Reserved F42",
	"Reserved F43",
	"Default",
	"sRGB",
	"ICtCp",
	"ST2113RGB",
}

func (s *state) ctaColorimetryBlock(x []byte) {
	if len(x) < 2 {
		s.fail("Empty Data Block with length %d.\n", len(x))
		return
	}
	for i, n := range colorimetry1 {
		if x[0]&(1<<i) != 0 {
			s.printf("    %s\n", n)
		}
	}
	if x[1]&0xe != 0 {
		s.fail("Reserved bits F41-F43 must be 0.\n")
	}
	for i, n := range colorimetry2 {
		if x[1]&(1<<i) != 0 {
			s.printf("    %s\n", n)
		}
	}
	// Without the sRGB bit the sink cannot tell sRGB from defaultRGB.
	if !s.base.usesSRGB && x[1]&0x20 == 0 {
		s.warn("Set the sRGB colorimetry bit to avoid interop issues.\n")
	}
	if x[1]&0xf0 != 0 {
		s.cta.aviVersion = 4
	}
}

var eotfs = []string{
	"Traditional gamma - SDR luminance range",
	"Traditional gamma - HDR luminance range",
	"SMPTE ST2084",
	"Hybrid Log-Gamma",
}

func lum50(v byte) float64 { return 50.0 * math.Pow(2, float64(v)/32.0) }

func (s *state) ctaHDRStaticMetadataBlock(x []byte) {
	length := len(x)
	if length < 2 {
		s.fail("Empty Data Block with length %d.\n", length)
		return
	}
	s.printf("    Electro optical transfer functions:\n")
	for i := 0; i < 6; i++ {
		if x[0]&(1<<i) == 0 {
			continue
		}
		if i < len(eotfs) {
			s.printf("      %s\n", eotfs[i])
		} else {
			s.printf("      Unknown (%d)\n", i)
			s.fail("Unknown EOTF (%d).\n", i)
		}
	}
	s.printf("    Supported static metadata descriptors:\n")
	for i := 0; i < 8; i++ {
		if x[1]&(1<<i) != 0 {
			s.printf("      Static metadata type %d\n", i+1)
		}
	}
	if length >= 3 {
		s.printf("    Desired content max luminance: %d (%.3f cd/m^2)\n", x[2], lum50(x[2]))
	}
	if length >= 4 {
		s.printf("    Desired content max frame-average luminance: %d (%.3f cd/m^2)\n", x[3], lum50(x[3]))
	}
	if length >= 5 {
		s.printf("    Desired content min luminance: %d (%.3f cd/m^2)\n",
			x[4], lum50(x[2])*math.Pow(float64(x[4])/255.0, 2)/100.0)
	}
}

func (s *state) ctaHDRDynMetadataBlock(x []byte) {
	if len(x) < 3 {
		s.fail("Empty Data Block with length %d.\n", len(x))
		return
	}
	for len(x) >= 3 {
		typeLen := int(x[0])
		typ := int(x[1]) | int(x[2])<<8
		if len(x) < typeLen+1 {
			return
		}
		s.printf("    HDR Dynamic Metadata Type %d\n", typ)
		switch typ {
		case 1, 4:
			if typeLen > 2 {
				s.printf("      Version: %d\n", x[3]&0xf)
			}
		case 2:
			if typeLen > 2 {
				version := x[3] & 0xf
				s.printf("      Version: %d\n", version)
				if version >= 1 {
					s.printBits("      ", x[3], []bitName{
						{0x10, "Supports SL-HDR1 (ETSI TS 103 433-1)"},
						{0x20, "Supports SL-HDR2 (ETSI TS 103 433-2)"},
						{0x40, "Supports SL-HDR3 (ETSI TS 103 433-3)"},
					})
				}
			}
		}
		x = x[typeLen+1:]
	}
}

var infoFrameTypes = []string{
	"",
	"Vendor-Specific",
	"Auxiliary Video Information",
	"Source Product Description",
	"Audio",
	"MPEG Source",
	"NTSC VBI",
	"Dynamic Range and Mastering",
}

// ctaIFDB decodes the InfoFrame Data Block.
func (s *state) ctaIFDB(x []byte) {
	if len(x) < 2 {
		s.fail("Empty Data Block with length %d.\n", len(x))
		return
	}
	lenHdr := int(x[0] >> 5)
	if x[0]&0x1f != 0 {
		s.fail("Bits F14-F10 are 0x%02x instead of 0x00.\n", x[0]&0x1f)
	}
	s.printf("    VSIFs: %d\n", x[1])
	if len(x) < lenHdr+2 {
		return
	}
	for x = x[lenHdr+2:]; len(x) > 0; {
		payloadLen := x[0] >> 5
		typ := int(x[0] & 0x1f)
		if payloadLen != 0 {
			s.fail("Payload size must be 0, but it is %d.\n", payloadLen)
			break
		}
		name := ""
		if typ < len(infoFrameTypes) {
			name = infoFrameTypes[typ]
		}
		if name == "" {
			name = "Unknown"
		}
		s.printf("    %s InfoFrame (%d)", name, typ)
		if typ != 1 {
			s.printf("\n")
			x = x[1:]
			continue
		}
		if len(x) < 4 {
			s.printf("\n")
			s.fail("Remaining length %d < 4.\n", len(x))
			break
		}
		s.printf(", OUI %s\n", ouiToHex(le24(x[1:])))
		x = x[4:]
	}
}

// ctaPIDB decodes the Product Information Data Block.
func (s *state) ctaPIDB(x []byte) {
	length := len(x)
	if length < 4 {
		s.fail("Empty Data Block with length %d.\n", length)
		return
	}
	oui := int(x[0])<<16 | int(x[1])<<8 | int(x[2])
	s.printf("    IEEE CID/OUI: %s\n", ouiToHex(oui))
	if length == 4 {
		return
	}
	s.printf("    Version: %d\n", x[3])
	if x[3] != 0 {
		s.fail("Unsupported version %d.\n", x[3])
	}
	if length == 5 {
		return
	}
	name := x[4 : length-1]
	for i, c := range name {
		if c < 0x20 || c >= 0x80 {
			s.fail("Product Name: invalid ASCII value at position %d.\n", i)
		}
	}
	s.printf("    Product Name: %s\n", string(name))
}
