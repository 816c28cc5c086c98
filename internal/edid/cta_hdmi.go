package edid

import (
	"fmt"
	"math"

	"example.com/edidgate/internal/timings"
)

// pad returns x extended with zero bytes to at least n bytes. Several
// vendor blocks have optional trailing fields that are read as zero when
// the block is short.
func pad(x []byte, n int) []byte {
	if len(x) >= n {
		return x
	}
	p := make([]byte, n)
	copy(p, x)
	return p
}

func hdmiLatency2s(l byte, video bool) string {
	switch {
	case l == 0:
		return "Unknown"
	case l == 0xff:
		return boolStr(video, "Video not supported", "Audio not supported")
	}
	return fmt.Sprintf("%d ms", 2*(int(l)-1))
}

func (s *state) hdmiLatency(vidLat, audLat byte, interlaced bool) {
	vid := boolStr(interlaced, "Interlaced video", "Video")
	aud := boolStr(interlaced, "Interlaced audio", "Audio")

	s.printf("    %s latency: %s\n", vid, hdmiLatency2s(vidLat, true))
	s.printf("    %s latency: %s\n", aud, hdmiLatency2s(audLat, false))
	if vidLat > 251 && vidLat != 0xff {
		s.fail("Invalid %s latency value %d.\n", vid, vidLat)
	}
	if audLat > 251 && audLat != 0xff {
		s.fail("Invalid %s latency value %d.\n", aud, audLat)
	}
	if vidLat == 0 || vidLat > 251 || audLat == 0 || audLat > 251 {
		return
	}

	vidMS := 2 * (int(vidLat) - 1)
	audMS := 2 * (int(audLat) - 1)
	// HDMI 2.0 rules for devices without an HDMI output.
	switch {
	case audMS < vidMS:
		s.warn("%s latency < %s latency (%d ms < %d ms). This is discouraged for devices without HDMI output.\n",
			aud, vid, audMS, vidMS)
	case vidMS+20 < audMS:
		s.warn("%s latency + 20 < %s latency (%d + 20 ms < %d ms). This is forbidden for devices without HDMI output.\n",
			vid, aud, vidMS, audMS)
	case vidMS < audMS:
		s.warn("%s latency < %s latency (%d ms < %d ms). This is discouraged for devices without HDMI output.\n",
			vid, aud, vidMS, audMS)
	}
}

var structure3D = map[byte]string{
	0: "frame packing",
	1: "field alternative",
	2: "line alternative",
	3: "side-by-side (full)",
	4: "L + depth",
	5: "L + depth + gfx + gfx-depth",
	6: "top-and-bottom",
}

var detail3D = map[byte]string{
	0x00: ", any subsampling",
	0x01: ", horizontal",
	0x06: ", all quincunx combinations",
	0x07: ", quincunx odd/left, odd/right",
	0x08: ", quincunx odd/left, even/right",
	0x09: ", quincunx even/left, odd/right",
	0x0a: ", quincunx even/left, even/right",
}

// ctaHDMIBlock decodes the HDMI 1.4 Vendor-Specific Data Block payload
// that follows the OUI.
func (s *state) ctaHDMIBlock(x []byte) {
	length := len(x)
	if length < 1 {
		s.fail("Empty Data Block with length %d.\n", length)
		return
	}
	x = pad(x, 32)
	s.printf("    Source physical address: %x.%x.%x.%x\n", x[0]>>4, x[0]&0x0f, x[1]>>4, x[1]&0x0f)
	if length < 3 {
		return
	}
	for _, f := range []struct {
		bit  byte
		name string
	}{{0x80, "Supports_AI"}, {0x40, "DC_48bit"}, {0x20, "DC_36bit"}, {0x10, "DC_30bit"}, {0x08, "DC_Y444"}, {0x01, "DVI_Dual"}} {
		if x[2]&f.bit != 0 {
			s.printf("    %s\n", f.name)
		}
	}
	if length < 4 {
		return
	}

	rate := int(x[3]) * 5
	s.printf("    Maximum TMDS clock: %d MHz\n", rate)
	s.cta.hdmiMaxRate = rate
	if rate > 340 {
		s.fail("HDMI VSDB Max TMDS rate is > 340.\n")
	}
	if length < 5 {
		return
	}

	if x[4]&0x0f != 0 {
		s.printf("    Supported Content Types:\n")
		for i, name := range []string{"Graphics", "Photo", "Cinema", "Game"} {
			if x[4]&(1<<i) != 0 {
				s.printf("      %s\n", name)
			}
		}
	}

	b := 5
	if x[4]&0x80 != 0 {
		s.hdmiLatency(x[b], x[b+1], false)
		if x[4]&0x40 != 0 {
			if x[b] == x[b+2] && x[b+1] == x[b+3] {
				s.warn("Progressive and Interlaced latency values are identical, no need for both.\n")
			}
			b += 2
			s.hdmiLatency(x[b], x[b+1], true)
		}
		b += 2
	}
	if x[4]&0x20 == 0 {
		return
	}

	mask, formats := false, false
	s.printf("    Extended HDMI video details:\n")
	if x[b]&0x80 != 0 {
		s.printf("      3D present\n")
	}
	switch x[b] & 0x60 {
	case 0x20:
		s.printf("      All advertised VICs are 3D-capable\n")
		formats = true
	case 0x40:
		s.printf("      3D-capable-VIC mask present\n")
		formats = true
		mask = true
	}
	switch x[b] & 0x18 {
	case 0x08:
		s.printf("      Base EDID image size is aspect ratio\n")
	case 0x10:
		s.printf("      Base EDID image size is in units of 1 cm\n")
	case 0x18:
		s.printf("      Base EDID image size is in units of 5 cm\n")
		if s.base.maxDisplayWidthMM < 2550 && s.base.maxDisplayHeightMM < 2550 {
			s.fail("5 cm units should not be used for displays smaller than 255x255 cm\n")
		}
	}
	b++
	lenVIC := int(x[b]&0xe0) >> 5
	len3D := int(x[b] & 0x1f)
	b++
	x = pad(x, b+lenVIC+len3D+2)

	if lenVIC > 0 {
		s.printf("      HDMI VICs:\n")
		s.cta.supportedHDMIVICCodes = 0
		for i := 0; i < lenVIC; i++ {
			vic := int(x[b+i])
			if t, ok := timings.FindHDMIVIC(vic); ok {
				s.cta.supportedHDMIVICCodes |= 1 << (vic - 1)
				s.printTimings("        ", t, fmt.Sprintf("HDMI VIC %d", vic), "")
			} else {
				s.printf("         Unknown (HDMI VIC %d)\n", vic)
				s.fail("Unknown HDMI VIC %d.\n", vic)
			}
		}
		b += lenVIC
		if s.cta.supportedHDMIVICVSBCodes&s.cta.supportedHDMIVICCodes != s.cta.supportedHDMIVICCodes {
			s.fail("HDMI VIC Codes must have their CTA-861 VIC equivalents in the VSB.\n")
		}
	}
	if len3D == 0 {
		return
	}

	if formats {
		// 3D_Structure_ALL_15..8
		if x[b]&0x80 != 0 {
			s.printf("      3D: Side-by-side (half, quincunx)\n")
		}
		if x[b]&0x01 != 0 {
			s.printf("      3D: Side-by-side (half, horizontal)\n")
		}
		b++
		all := []struct {
			bit  byte
			name string
		}{
			{0x40, "Top-and-bottom"},
			{0x20, "L + depth + gfx + gfx-depth"},
			{0x10, "L + depth"},
			{0x08, "Side-by-side (full)"},
			{0x04, "Line-alternative"},
			{0x02, "Field-alternative"},
			{0x01, "Frame-packing"},
		}
		for _, f := range all {
			if x[b]&f.bit != 0 {
				s.printf("      3D: %s\n", f.name)
			}
		}
		b++
		len3D -= 2
	}

	nsvds := len(s.cta.preparsedSVDs[0])
	if mask {
		maxIdx := -1
		s.printf("      3D VIC indices that support these capabilities:\n")
		// Byte b+1 holds indices 0-7, byte b indices 8-15.
		for i := 0; i < 8; i++ {
			if x[b+1]&(1<<i) != 0 {
				s.printVICIndex("        ", i, "", false)
				maxIdx = i
			}
		}
		for i := 0; i < 8; i++ {
			if x[b]&(1<<i) != 0 {
				s.printVICIndex("        ", i+8, "", false)
				maxIdx = i + 8
			}
		}
		b += 2
		len3D -= 2
		if maxIdx >= nsvds {
			s.fail("HDMI 3D VIC indices max index %d > %d (#SVDs).\n", maxIdx+1, nsvds)
		}
	}
	if len3D <= 0 {
		return
	}

	// A list of 2D_VIC_Order_X/3D_Structure_X nibble pairs, optionally
	// followed by a 3D_Detail_X byte.
	end := b + len3D
	x = pad(x, end+1)
	maxIdx := -1
	s.printf("      3D VIC indices with specific capabilities:\n")
	for b < end {
		idx := int(x[b] >> 4)
		maxIdx = max(maxIdx, idx)
		st := x[b] & 0x0f
		var desc string
		switch {
		case st == 8:
			detail := x[b+1] >> 4
			desc = "side-by-side"
			if d, ok := detail3D[detail]; ok {
				desc += d
			} else if detail >= 2 && detail <= 5 {
				desc += ", not in use"
				s.fail("not-in-use 3D_Detail_X value 0x%02x.\n", detail)
			} else {
				desc += ", reserved"
				s.fail("reserved 3D_Detail_X value 0x%02x.\n", detail)
			}
		case structure3D[st] != "":
			desc = structure3D[st]
		default:
			desc = "unknown (" + utohex(st) + ")"
			s.fail("Unknown 3D_Structure_X value 0x%02x.\n", st)
		}
		s.printVICIndex("        ", idx, desc, false)
		if st >= 8 {
			b++
		}
		b++
	}
	if maxIdx >= nsvds {
		s.fail("HDMI 2D VIC indices max index %d > %d (#SVDs).\n", maxIdx+1, nsvds)
	}
}

var maxFRLRates = [...]string{
	"Not Supported",
	"3 Gbps per lane on 3 lanes",
	"3 and 6 Gbps per lane on 3 lanes",
	"3 and 6 Gbps per lane on 3 lanes, 6 Gbps on 4 lanes",
	"3 and 6 Gbps per lane on 3 lanes, 6 and 8 Gbps on 4 lanes",
	"3 and 6 Gbps per lane on 3 lanes, 6, 8 and 10 Gbps on 4 lanes",
	"3 and 6 Gbps per lane on 3 lanes, 6, 8, 10 and 12 Gbps on 4 lanes",
}

var dscMaxSlices = [...]string{
	"Not Supported",
	"up to 1 slice and up to (340 MHz/Ksliceadjust) pixel clock per slice",
	"up to 2 slices and up to (340 MHz/Ksliceadjust) pixel clock per slice",
	"up to 4 slices and up to (340 MHz/Ksliceadjust) pixel clock per slice",
	"up to 8 slices and up to (340 MHz/Ksliceadjust) pixel clock per slice",
	"up to 8 slices and up to (400 MHz/Ksliceadjust) pixel clock per slice",
	"up to 12 slices and up to (400 MHz/Ksliceadjust) pixel clock per slice",
	"up to 12 slices and up to (600 MHz/Ksliceadjust) pixel clock per slice",
}

func (s *state) ctaHFEEODB(x []byte) {
	x0 := pad(x, 1)[0]
	s.printf("    EDID Extension Block Count: %d\n", x0)
	if len(x) != 1 {
		s.fail("Block is too long.\n")
	}
	if x0 <= 1 {
		s.fail("Extension Block Count == %d.\n", x0)
	}
}

type bitName struct {
	bit  byte
	name string
}

func (s *state) printBits(indent string, v byte, bits []bitName) {
	for _, b := range bits {
		if v&b.bit != 0 {
			s.printf("%s%s\n", indent, b.name)
		}
	}
}

var scdbByte2 = []bitName{
	{0x80, "SCDC Present"},
	{0x40, "SCDC Read Request Capable"},
	{0x20, "Supports Cable Status"},
	{0x10, "Supports Color Content Bits Per Component Indication"},
	{0x08, "Supports scrambling for <= 340 Mcsc"},
	{0x04, "Supports 3D Independent View signaling"},
	{0x02, "Supports 3D Dual View signaling"},
	{0x01, "Supports 3D OSD Disparity signaling"},
}

var scdbByte7 = []bitName{
	{0x80, "Supports VESA DSC 1.2a compression"},
	{0x40, "Supports Compressed Video Transport for 4:2:0 Pixel Encoding"},
	{0x20, "Supports QMS TFRmax"},
	{0x10, "Supports QMS TFRmin"},
	{0x08, "Supports Compressed Video Transport at any valid 1/16th bit bpp"},
	{0x04, "Supports 16 bpc Compressed Video Transport"},
	{0x02, "Supports 12 bpc Compressed Video Transport"},
	{0x01, "Supports 10 bpc Compressed Video Transport"},
}

// ctaHFSCDB decodes the body shared by the HDMI Forum VSDB and the HDMI
// Forum Sink Capability Data Block.
func (s *state) ctaHFSCDB(x []byte) {
	length := len(x)
	x = pad(x, 10)
	rate := int(x[1]) * 5

	s.printf("    Version: %d\n", x[0])
	if rate != 0 {
		s.printf("    Maximum TMDS Character Rate: %d MHz\n", rate)
		if rate <= 340 || rate > 600 {
			s.fail("Max TMDS rate is > 0 and <= 340 or > 600.\n")
		}
		if rate < s.cta.hdmiMaxRate {
			s.fail("HDMI Forum VSDB rate < HDMI VSDB rate.\n")
		} else {
			s.cta.hdmiMaxRate = rate
		}
	}
	s.printBits("    ", x[2], scdbByte2)
	if x[3]&0xf0 != 0 {
		frl := int(x[3] >> 4)
		s.printf("    Max Fixed Rate Link: ")
		if frl < len(maxFRLRates) {
			s.printf("%s\n", maxFRLRates[frl])
		} else {
			s.printf("Unknown (0x%02x)\n", frl)
			s.fail("Unknown Max Fixed Rate Link (0x%02x).\n", frl)
		}
		if frl == 1 && rate < 300 {
			s.fail("Max Fixed Rate Link is 1, but Max TMDS rate < 300.\n")
		} else if frl >= 2 && rate < 600 {
			s.fail("Max Fixed Rate Link is >= 2, but Max TMDS rate < 600.\n")
		}
		// FRL has no known TMDS clock equivalent; skip the clock checks.
		s.cta.hdmiMaxRate = 0
	}
	related := s.cta.supportedHDMIVICVSBCodes & s.cta.supportedHDMIVICCodes
	if x[3]&0x08 != 0 {
		s.printf("    Supports UHD VIC\n")
		if related == 0 {
			s.fail("UHD VIC bit is 1, but no related VIC codes are present.\n")
		}
	} else if related != 0 {
		s.fail("HDMI VIC and related CTA VIC codes are present, but the UHD VIC bit is 0.\n")
	}
	s.printBits("    ", x[3], []bitName{
		{0x04, "Supports 16-bits/component Deep Color 4:2:0 Pixel Encoding"},
		{0x02, "Supports 12-bits/component Deep Color 4:2:0 Pixel Encoding"},
		{0x01, "Supports 10-bits/component Deep Color 4:2:0 Pixel Encoding"},
	})
	if length <= 4 {
		return
	}

	s.printBits("    ", x[4], []bitName{
		{0x80, "Supports FAPA End Extended"},
		{0x40, "Supports QMS"},
		{0x20, "Supports Mdelta"},
		{0x10, "Supports media rates below VRRmin (CinemaVRR, deprecated)"},
		{0x08, "Supports negative Mvrr values"},
		{0x04, "Supports Fast Vactive"},
		{0x02, "Supports Auto Low-Latency Mode"},
		{0x01, "Supports a FAPA in blanking after first active video line"},
	})
	if x[4]&0x10 != 0 {
		s.warn("CinemaVRR is deprecated and must be cleared.\n")
	}
	if length <= 5 {
		return
	}

	vrrMin := int(x[5] & 0x3f)
	s.printf("    VRRmin: %d Hz\n", vrrMin)
	if vrrMin > 48 {
		s.fail("VRRmin > 48.\n")
	}
	vrrMax := int(x[5]&0xc0)<<2 | int(x[6])
	s.printf("    VRRmax: %d Hz\n", vrrMax)
	if vrrMax != 0 {
		if vrrMin == 0 {
			s.fail("VRRmin == 0, but VRRmax isn't.\n")
		} else if vrrMax < 100 {
			s.fail("0 < VRRmax < 100.\n")
		}
	}
	if length <= 7 {
		return
	}

	s.printBits("    ", x[7], scdbByte7)
	if slices := int(x[8] & 0xf); slices != 0 {
		s.printf("    DSC Max Slices: ")
		if slices < len(dscMaxSlices) {
			s.printf("%s\n", dscMaxSlices[slices])
		} else {
			s.printf("Unknown (%d), interpreted as: %s\n", slices, dscMaxSlices[7])
			s.warn("Unknown DSC Max Slices (%d).\n", slices)
		}
	}
	if frl := int(x[8] >> 4); frl != 0 {
		s.printf("    DSC Max Fixed Rate Link: ")
		if frl < len(maxFRLRates) {
			s.printf("%s\n", maxFRLRates[frl])
		} else {
			s.printf("Unknown (0x%02x)\n", frl)
			s.fail("Unknown DSC Max Fixed Rate Link (0x%02x).\n", frl)
		}
	}
	if x[9]&0x3f != 0 {
		s.printf("    Maximum number of bytes in a line of chunks: %d\n", 1024*(1+int(x[9]&0x3f)))
	}
}

// pq2nits converts a PQ value (0-1) to cd/m^2 (0-10000).
func pq2nits(pq float64) float64 {
	const (
		m1 = 2610.0 / 16384.0
		m2 = 128.0 * (2523.0 / 4096.0)
		c1 = 3424.0 / 4096.0
		c2 = 32.0 * (2413.0 / 4096.0)
		c3 = 32.0 * (2392.0 / 4096.0)
	)
	e := math.Pow(pq, 1.0/m2)
	v := max(e-c1, 0)
	v /= c2 - c3*e
	return math.Pow(v, 1.0/m1) * 10000.0
}

func perc2d(x byte) float64 {
	m := float64(x >> 2)
	e := float64(x & 3)
	return 100.0 * (m / 64.0) * math.Pow(10, -e)
}

// ctaHFSBTMDB decodes the HDMI Forum Source-Based Tone Mapping Data Block.
func (s *state) ctaHFSBTMDB(x []byte) {
	length := len(x)
	if length == 0 {
		s.fail("Block is too short.\n")
	}
	x = pad(x, 30)
	s.printf("    Version: %d\n", x[0]&0xf)
	switch (x[0] >> 5) & 3 {
	case 0:
		s.printf("    Does not support a General RDM format\n")
	case 1:
		s.printf("    Supports an SDR-range General RDM format\n")
	case 2:
		s.printf("    Supports an HDR-range General RDM format\n")
	default:
		s.fail("Invalid GRDM Support value.\n")
	}
	if x[0]&0x80 == 0 {
		return
	}

	hgig := true
	s.printf("    Supports a D-RDM format\n")
	if x[1]&0x10 != 0 {
		s.printf("    Use HGIG D-RDM\n")
	}
	switch x[1] & 7 {
	case 0:
		s.printf("    HGIG D-RDM is not used\n")
		hgig = false
	case 1:
		s.printf("    PBnits[0] = 600 cd/m^2\n")
	case 2:
		s.printf("    PBnits[0] = 1000 cd/m^2\n")
	case 3:
		s.printf("    PBnits[0] = 4000 cd/m^2\n")
	case 4:
		s.printf("    PBnits[0] = 10000 cd/m^2\n")
	default:
		s.fail("Invalid HGIG D-DRM value.\n")
	}

	explicit := false
	if x[1]&0x20 != 0 {
		s.printf("    MaxRGB\n")
	}
	switch x[1] >> 6 {
	case 0:
		s.printf("    Gamut is explicit\n")
		explicit = true
	case 1:
		s.printf("    Gamut is Rec. ITU-R BT.709\n")
	case 2:
		s.printf("    Gamut is SMPTE ST 2113\n")
	default:
		s.printf("    Gamut is Rec. ITU-R BT.2020\n")
	}
	x = x[2:]
	left := length - 2
	if explicit {
		s.printf("    Red: (%.5f, %.5f)\n", chrom2d(x), chrom2d(x[2:]))
		s.printf("    Green: (%.5f, %.5f)\n", chrom2d(x[4:]), chrom2d(x[6:]))
		s.printf("    Blue: (%.5f, %.5f)\n", chrom2d(x[8:]), chrom2d(x[10:]))
		s.printf("    White: (%.5f, %.5f)\n", chrom2d(x[12:]), chrom2d(x[14:]))
		x = x[16:]
		left -= 16
	}
	if hgig {
		return
	}
	s.printf("    Min Brightness 10: %.8f cd/m^2\n", pq2nits(float64(int(x[0])<<1)/4095.0))
	s.printf("    Peak Brightness 100: %d cd/m^2\n", int(pq2nits(float64(int(x[1])<<4)/4095.0)))
	x = x[2:]
	left -= 2
	for p := 0; p < 4 && left > 0; p++ {
		s.printf("    Percentage of Peak Brightness P%d: %.2f%%\n", p, perc2d(x[0]))
		s.printf("    Peak Brightness P%d: %.8f cd/m^2\n", p, pq2nits(float64(int(x[1])<<1)/4095.0))
		x = x[2:]
		left -= 2
	}
}
