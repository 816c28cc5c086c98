package edid

import (
	"math"
)

// ctaAMD decodes the AMD FreeSync Vendor-Specific Data Block. The layout
// is reverse engineered from what AMD's display library reports.
func (s *state) ctaAMD(x []byte) {
	length := len(x)
	if length < 5 {
		s.printf("    Data block is truncated (length = %d)\n", length)
		return
	}
	x = pad(x, 12)
	version := x[0]
	s.printf("    Version: %d\n", version)
	s.printf("    Feature Caps: 0x%02x\n", x[1])

	hdrValid, localDimming, globalBacklight := false, false, false
	if version > 1 {
		hdrValid = x[1]&0x02 != 0
		globalBacklight = x[1]&0x04 != 0
		localDimming = x[1]&0x08 != 0
		if globalBacklight {
			s.printf("      Global Backlight Control Supported\n")
		}
		if localDimming {
			s.printf("      Local Dimming Supported\n")
		}
		if version > 2 && x[1]&0x40 != 0 {
			s.printf("      FreeSync Panel Replay Supported\n")
		}
	}

	maxRefresh := int(x[3])
	if version > 2 && length > 0xb {
		maxRefresh = int(x[0xb]&3)<<8 | int(x[0xa])
	}
	s.printf("    Minimum Refresh Rate: %d Hz\n", x[2])
	s.printf("    Maximum Refresh Rate: %d Hz\n", maxRefresh)
	// Any of the 0xe6 bits means the range is switched over VESA MCCS.
	s.printf("    Flags 1.x: 0x%02x%s\n", x[4], boolStr(x[4]&0xe6 != 0, " (MCCS)", ""))

	if version < 2 {
		return
	}
	if length < 10 {
		s.printf("    Data block is truncated (length = %d)\n", length)
		return
	}
	s.printf("    Flags 2.x: 0x%02x\n", x[5])
	if !hdrValid {
		return
	}

	hdr10 := x[5]&0x34 != 0
	if hdr10 {
		s.printf("      ST 2084 (PQ) EOTF Supported\n")
		s.printf("      Linear EOTF (Windows scRGB, 0.0 - 125.0) Supported\n")
	}
	if x[5]&0x04 != 0 {
		s.printf("      Gamma 2.2 EOTF Supported\n")
	}
	if hdr10 {
		s.printf("      BT.2020 Gamut Supported\n")
	}

	miniLED := x[5]>>5 == 1
	oled := x[5]>>5 == 2
	if miniLED {
		s.printf("      Display is Mini LED\n")
	}
	if oled {
		s.printf("      Display is OLED\n")
	}

	lum := func(v byte) float64 { return 50.0 * math.Pow(2, float64(v)/32.0) }
	minLum := func(maxv, v byte) float64 { return lum(maxv) * math.Pow(float64(v)/255.0, 2) / 100.0 }
	s.printf("    Maximum luminance: %d (%.3f cd/m^2)\n", x[6], lum(x[6]))
	s.printf("    Minimum luminance: %d (%.3f cd/m^2)\n", x[7], minLum(x[6], x[7]))
	if localDimming || oled || globalBacklight {
		typ := "minimum backlight"
		if localDimming || oled {
			typ = "without local dimming"
		}
		s.printf("    Maximum luminance (%s): %d (%.3f cd/m^2)\n", typ, x[8], lum(x[8]))
		s.printf("    Minimum luminance (%s): %d (%.3f cd/m^2)\n", typ, x[9], minLum(x[8], x[9]))
	}
}

var displayUseCases = map[byte]string{
	1:  "Test equipment",
	2:  "Generic display",
	3:  "Television display",
	4:  "Desktop productivity display",
	5:  "Desktop gaming display",
	6:  "Presentation display",
	7:  "Virtual reality headset",
	8:  "Augmented reality",
	16: "Video wall display",
	17: "Medical imaging display",
	18: "Dedicated gaming display",
	19: "Dedicated video monitor display",
	20: "Accessory display",
}

// ctaMicrosoft decodes the Microsoft specialized monitor VSDB.
func (s *state) ctaMicrosoft(x []byte) {
	s.printf("    Version: %d\n", x[0])
	if x[0] > 2 {
		s.printf("    Desktop Usage: %d\n", (x[1]>>6)&1)
		s.printf("    Third-Party Usage: %d\n", (x[1]>>5)&1)
	}
	useCase, ok := displayUseCases[x[1]&0x1f]
	if !ok {
		s.fail("Unknown Display product primary use case 0x%02x.\n", x[1]&0x1f)
		useCase = "Unknown"
	}
	s.printf("    Display Product Primary Use Case: %s\n", useCase)
	s.printf("    Container ID: %s\n", containerID(x[2:]))
}

func (s *state) ctaHDR10Plus(x []byte) {
	if len(x) == 0 {
		s.fail("Empty Data Block with length %d.\n", len(x))
		return
	}
	s.printf("    Application Version: %d\n", x[0]&3)
	s.printf("    Full Frame Peak Luminance Index: %d\n", (x[0]>>2)&3)
	s.printf("    Peak Luminance Index: %d\n", x[0]>>4)
	s.hexBlock("    ", x[1:], true, 16)
}

func nib12(lo, hi byte) float64 { return float64(int(lo)|int(hi)<<4) / 4096.0 }

// ctaDolbyVideo decodes the Dolby Vision VSVDB, versions 0 to 2.
func (s *state) ctaDolbyVideo(x []byte) {
	length := len(x)
	x = pad(x, 17)
	version := (x[0] >> 5) & 0x07
	s.printf("    Version: %d (%d bytes)\n", version, length+5)
	if x[0]&0x01 != 0 {
		s.printf("    Supports YUV422 12 bit\n")
	}

	switch version {
	case 0:
		if x[0]&0x02 != 0 {
			s.printf("    Supports 2160p60\n")
		}
		if x[0]&0x04 != 0 {
			s.printf("    Supports global dimming\n")
		}
		s.printf("    DM Version: %d.%d\n", x[16]>>4, x[16]&0xf)
		pq := int(x[14])<<4 | int(x[13]>>4)
		s.printf("    Target Min PQ: %d (%.8f cd/m^2)\n", pq, pq2nits(float64(pq)/4095.0))
		pq = int(x[15])<<4 | int(x[13]&0xf)
		s.printf("    Target Max PQ: %d (%d cd/m^2)\n", pq, int(pq2nits(float64(pq)/4095.0)))
		s.printf("    Rx, Ry: %.8f, %.8f\n", nib12(x[1]>>4, x[2]), nib12(x[1]&0xf, x[3]))
		s.printf("    Gx, Gy: %.8f, %.8f\n", nib12(x[4]>>4, x[5]), nib12(x[4]&0xf, x[6]))
		s.printf("    Bx, By: %.8f, %.8f\n", nib12(x[7]>>4, x[8]), nib12(x[7]&0xf, x[9]))
		s.printf("    Wx, Wy: %.8f, %.8f\n", nib12(x[10]>>4, x[11]), nib12(x[10]&0xf, x[12]))
	case 1:
		if x[0]&0x02 != 0 {
			s.printf("    Supports 2160p60\n")
		}
		if x[1]&0x01 != 0 {
			s.printf("    Supports global dimming\n")
		}
		s.printf("    DM Version: %d.x\n", (x[0]>>2)&0x07+2)
		s.printf("    Colorimetry: %s\n", boolStr(x[2]&0x01 != 0, "P3-D65", "ITU-R BT.709"))
		s.printf("    Low Latency: %s\n", boolStr(x[3]&0x01 != 0, "Standard + Low Latency", "Only Standard"))
		lm := float64(x[2]>>1) / 127.0
		s.printf("    Target Min Luminance: %.8f cd/m^2\n", lm*lm)
		s.printf("    Target Max Luminance: %d cd/m^2\n", 100+int(x[1]>>1)*50)
		if length == 10 {
			s.printf("    Rx, Ry: %.8f, %.8f\n", float64(x[4])/256.0, float64(x[5])/256.0)
			s.printf("    Gx, Gy: %.8f, %.8f\n", float64(x[6])/256.0, float64(x[7])/256.0)
			s.printf("    Bx, By: %.8f, %.8f\n", float64(x[8])/256.0, float64(x[9])/256.0)
			return
		}
		xmin, ymin := 0.625, 0.25
		xstep := (0.74609375 - xmin) / 31.0
		ystep := (0.37109375 - ymin) / 31.0
		s.printf("    Unique Rx, Ry: %.8f, %.8f\n",
			xmin+xstep*float64(x[6]>>3),
			ymin+ystep*float64(int(x[6]&0x7)<<2|int(x[4]&0x01)|int(x[5]&0x01)<<1))
		xstep = 0.49609375 / 127.0
		ymin = 0.5
		ystep = (0.99609375 - ymin) / 127.0
		s.printf("    Unique Gx, Gy: %.8f, %.8f\n", xstep*float64(x[4]>>1), ymin+ystep*float64(x[5]>>1))
		xmin, ymin = 0.125, 0.03125
		xstep = (0.15234375 - xmin) / 7.0
		ystep = (0.05859375 - ymin) / 7.0
		s.printf("    Unique Bx, By: %.8f, %.8f\n", xmin+xstep*float64(x[3]>>5), ymin+ystep*float64((x[3]>>2)&0x07))
	case 2:
		if x[0]&0x02 != 0 {
			s.printf("    Supports Backlight Control\n")
		}
		if x[1]&0x04 != 0 {
			s.printf("    Supports global dimming\n")
		}
		s.printf("    DM Version: %d.x\n", (x[0]>>2)&0x07+2)
		s.printf("    Backlt Min Luma: %d cd/m^2\n", 25+int(x[1]&0x03)*25)
		s.printf("    Interface: %s\n", [4]string{
			"Low-Latency",
			"Low-Latency + Low-Latency-HDMI",
			"Standard + Low-Latency",
			"Standard + Low-Latency + Low-Latency-HDMI",
		}[x[2]&0x03])
		s.printf("    Supports 10b 12b 444: %s\n", [4]string{
			"Not supported", "10 bit", "12 bit", "Reserved",
		}[(x[3]&0x01)<<1|x[4]&0x01])
		pq := 20 * int(x[1]>>3)
		s.printf("    Target Min PQ v2: %d (%.8f cd/m^2)\n", pq, pq2nits(float64(pq)/4095.0))
		pq = 2055 + 65*int(x[2]>>3)
		s.printf("    Target Max PQ v2: %d (%d cd/m^2)\n", pq, int(pq2nits(float64(pq)/4095.0)))
		s.printf("    Unique Rx, Ry: %.8f, %.8f\n", 0.625+float64(x[5]>>3)/256.0, 0.25+float64(x[6]>>3)/256.0)
		s.printf("    Unique Gx, Gy: %.8f, %.8f\n", float64(x[3]>>1)/256.0, 0.5+float64(x[4]>>1)/256.0)
		s.printf("    Unique Bx, By: %.8f, %.8f\n", 0.125+float64(x[5]&0x07)/256.0, 0.03125+float64(x[6]&0x07)/256.0)
	}
}

func (s *state) ctaDolbyAudio(x []byte) {
	length := len(x)
	x = pad(x, 2)
	s.printf("    Version: %d (%d bytes)\n", 1+x[0]&0x07, length+5)
	s.printBits("    ", x[0], []bitName{
		{0x80, "Headphone playback only"},
		{0x40, "Height speaker zone present"},
		{0x20, "Surround speaker zone present"},
		{0x10, "Center speaker zone present"},
	})
	if x[1]&0x01 != 0 {
		s.printf("    Supports Dolby MAT PCM decoding at 48 kHz only, does not support TrueHD\n")
	}
}

// ctaUHDAFMM decodes the UHD Alliance Filmmaker Mode VSVDB.
func (s *state) ctaUHDAFMM(x []byte) {
	x = pad(x, 2)
	s.printf("    Filmmaker Mode Content Type: %d\n", x[0])
	s.printf("    Filmmaker Mode Content Subtype: %d\n", x[1])
}

func (s *state) ctaVESADTCDB(x []byte) {
	length := len(x)
	if length != 7 && length != 15 && length != 31 {
		s.fail("Invalid length %d.\n", length)
		return
	}
	s.printf("    %s transfer characteristics:", [4]string{"White", "Red", "Green", "Blue"}[x[0]>>6])
	v := int(x[0] & 0x3f)
	s.printf(" %d", v)
	for _, d := range x[1:] {
		v += int(d)
		s.printf(" %d", v)
	}
	s.printf(" 1023\n")
}
