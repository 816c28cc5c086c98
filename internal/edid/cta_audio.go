package edid

import "strings"

var audioFormats = [...]string{
	1:  "Linear PCM",
	2:  "AC-3",
	3:  "MPEG 1 (Layers 1 & 2)",
	4:  "MPEG 1 Layer 3 (MP3)",
	5:  "MPEG2 (multichannel)",
	6:  "AAC LC",
	7:  "DTS",
	8:  "ATRAC",
	9:  "One Bit Audio",
	10: "Enhanced AC-3 (DD+)",
	11: "DTS-HD",
	12: "MAT (MLP)",
	13: "DST",
	14: "WMA Pro",
}

var audioExtFormats = [...]string{
	1:  "HE AAC (Obsolete)",
	2:  "HE AAC v2 (Obsolete)",
	3:  "MPEG Surround (Obsolete)",
	4:  "MPEG-4 HE AAC",
	5:  "MPEG-4 HE AAC v2",
	6:  "MPEG-4 AAC LC",
	7:  "DRA",
	8:  "MPEG-4 HE AAC + MPEG Surround",
	10: "MPEG-4 AAC LC + MPEG Surround",
	11: "MPEG-H 3D Audio",
	12: "AC-4",
	13: "L-PCM 3D Audio",
	14: "Auro-Cx",
	15: "MPEG-D USAC",
}

func (s *state) audioFormat(x int) string {
	if x < len(audioFormats) && audioFormats[x] != "" {
		return audioFormats[x]
	}
	s.fail("Unknown Audio Format 0x%02x.\n", x)
	return "Unknown Audio Format (" + utohex(byte(x)) + ")"
}

func (s *state) audioExtFormat(x int) string {
	if x >= 1 && x <= 3 {
		s.fail("Obsolete Audio Ext Format 0x%02x.\n", x)
	}
	if x < len(audioExtFormats) && audioExtFormats[x] != "" {
		return audioExtFormats[x]
	}
	s.fail("Unknown Audio Ext Format 0x%02x.\n", x)
	return "Unknown Audio Ext Format (" + utohex(byte(x)) + ")"
}

func (s *state) mpegH3DAudioLevel(x int) string {
	if x == 0 {
		return "Unspecified"
	}
	if x <= 5 {
		return "Level " + string(rune('0'+x))
	}
	s.fail("Unknown MPEG-H 3D Audio Level 0x%02x.\n", x)
	return "Unknown MPEG-H 3D Audio Level (" + utohex(byte(x)) + ")"
}

// flagList renders the names of the set bits of v, highest bit first, each
// preceded by a space.
func flagList(v byte, names ...string) string {
	var b strings.Builder
	for i, n := range names {
		if v&(1<<(len(names)-1-i)) != 0 {
			b.WriteString(" " + n)
		}
	}
	return b.String()
}

// ctaAudioBlock decodes the Short Audio Descriptors of an Audio Data Block.
func (s *state) ctaAudioBlock(x []byte) {
	length := len(x)
	if length%3 != 0 {
		s.fail("Broken CTA-861 audio block length %d.\n", length)
		return
	}
	if length == 0 {
		s.fail("This Data Block is empty.\n")
	}

	for i := 0; i < length; i += 3 {
		b0, b1, b2 := x[i], x[i+1], x[i+2]
		format := int(b0&0x78) >> 3
		if format == 0 {
			s.printf("    Reserved (0x00)\n")
			s.fail("Audio Format Code 0x00 is reserved.\n")
			continue
		}
		extFormat := 0
		if format != 15 {
			s.printf("    %s:\n", s.audioFormat(format))
		} else {
			extFormat = int(b2&0xf8) >> 3
			s.printf("    %s:\n", s.audioExtFormat(extFormat))
		}
		switch {
		case format != 15:
			s.printf("      Max channels: %d\n", b0&0x07+1)
		case extFormat == 11:
			s.printf("      MPEG-H 3D Audio Level: %s\n", s.mpegH3DAudioLevel(int(b0&0x07)))
		case extFormat == 13:
			s.printf("      Max channels: %d\n", int(b1&0x80)>>3|int(b0&0x80)>>4|int(b0&0x07)+1)
		case (extFormat == 12 || extFormat == 14) && b0&0x07 != 0:
			s.fail("Bits F10-F12 must be 0.\n")
		default:
			s.printf("      Max channels: %d\n", b0&0x07+1)
		}

		if (format == 1 || format == 14) && b2&0xf8 != 0 {
			s.fail("Bits F33-F37 must be 0.\n")
		}
		if extFormat != 13 && b1&0x80 != 0 {
			s.fail("Bit F27 must be 0.\n")
		}
		if extFormat == 12 && b1&0x29 != 0 {
			s.fail("Bits F20, F23 and F25 must be 0.\n")
		}
		if extFormat >= 4 && extFormat <= 6 && b1&0x60 != 0 {
			s.fail("Bits F25 and F26 must be 0.\n")
		}
		if (extFormat == 8 || extFormat == 10 || extFormat == 15) && b1&0x60 != 0 {
			s.fail("Bits F25 and F26 must be 0.\n")
		}

		s.printf("      Supported sample rates (kHz):%s\n",
			flagList(b1&0x7f, "192", "176.4", "96", "88.2", "48", "44.1", "32"))
		switch {
		case format == 1 || extFormat == 13:
			s.printf("      Supported sample sizes (bits):%s\n", flagList(b2&0x07, "24", "20", "16"))
		case format <= 8:
			s.printf("      Maximum bit rate: %d kb/s\n", int(b2)*8)
		case format == 10:
			if b2&1 != 0 {
				s.printf("      Supports Joint Object Coding\n")
			}
			if b2&2 != 0 {
				s.printf("      Supports Joint Object Coding with ACMOD28\n")
			}
		case format == 11:
			if b2&2 != 0 {
				s.printf("      Supports DTS:X\n")
			}
			s.printf("      Audio Format Code dependent value: 0x%02x\n", b2)
		case format == 12:
			if b2&1 != 0 {
				s.printf("      Supports Dolby TrueHD, object audio PCM and channel-based PCM\n")
				s.printf("      Hash calculation %srequired for object audio PCM or channel-based PCM\n",
					boolStr(b2&2 != 0, "not ", ""))
			} else {
				s.printf("      Supports only Dolby TrueHD\n")
			}
		case format == 14:
			s.printf("      Profile: %d\n", b2&7)
		case format >= 9 && format <= 13:
			s.printf("      Audio Format Code dependent value: 0x%02x\n", b2)
		case extFormat == 11 && b2&1 != 0:
			s.printf("      Supports MPEG-H 3D Audio Low Complexity Profile\n")
		case (extFormat >= 4 && extFormat <= 6) || extFormat == 8 || extFormat == 10:
			s.printf("      AAC audio frame lengths:%s\n", flagList(b2&0x06>>1, "1024_TL", "960_TL"))
			if extFormat >= 8 && b2&1 != 0 {
				s.printf("      Supports implicitly and explicitly signaled MPEG Surround data\n")
			}
			if extFormat == 6 && b2&1 != 0 {
				s.printf("      Supports 22.2ch System H\n")
			}
		case extFormat == 12 || extFormat == 14:
			s.printf("      Audio Format Code dependent value: %d\n", b2&7)
		}
	}
}
