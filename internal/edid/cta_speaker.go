package edid

var sadbSpeakers = []string{
	"FL/FR - Front Left/Right",
	"LFE1 - Low Frequency Effects 1",
	"FC - Front Center",
	"LS/RS - Left/Right Surround",
	"BC - Back Center",
	"FLc/FRc - Front Left/Right of Center",
	"BL/BR - Back Left/Right",
	"FLw/FRw - Front Left/Right Wide",

	"TpFL/TpFR - Top Front Left/Right",
	"TpC - Top Center",
	"TpFC - Top Front Center",

	// Deprecated in the SADB from here on.
	"LS/RS - Left/Right Surround",
	"LFE2 - Low Frequency Effects 2",
	"TpBC - Top Back Center",
	"SiL/SiR - Side Left/Right",
	"TpSiL/TpSiR - Top Side Left/Right",

	"TpBL/TpBR - Top Back Left/Right",
	"BtFC - Bottom Front Center",
	"BtFL/BtFR - Bottom Front Left/Right",
	"TpLS/TpRS - Top Left/Right Surround",
}

var rcdbSpeakers = []string{
	"FL/FR - Front Left/Right",
	"LFE1 - Low Frequency Effects 1",
	"FC - Front Center",
	"BL/BR - Back Left/Right",
	"BC - Back Center",
	"FLc/FRc - Front Left/Right of Center",
	"RLC/RRC - Left/Right Rear Surround (Deprecated)",
	"FLw/FRw - Front Left/Right Wide",

	"TpFL/TpFR - Top Front Left/Right",
	"TpC - Top Center",
	"TpFC - Top Front Center",
	"LS/RS - Left/Right Surround",
	"LFE2 - Low Frequency Effects 2",
	"TpBC - Top Back Center",
	"SiL/SiR - Side Left/Right",
	"TpSiL/TpSiR - Top Side Left/Right",

	"TpBL/TpBR - Top Back Left/Right",
	"BtFC - Bottom Front Center",
	"BtFL/BtFR - Bottom Front Left/Right",
	"TpLS/TpRS - Top Left/Right Surround (Deprecated)",
}

var hdmiSpeakers = []string{
	"FL/FR - Front Left/Right",
	"LFE1 - Low Frequency Effects 1",
	"FC - Front Center",
	"BL/BR - Back Left/Right",
	"BC - Back Center",
	"FLc/FRc - Front Left/Right of Center",
	"Reserved",
	"FLw/FRw - Front Left/Right Wide",

	"TpFL/TpFR - Top Front Left/Right",
	"TpC - Top Center",
	"TpFC - Top Front Center",
	"LS/RS - Left/Right Surround",
	"LFE2 - Low Frequency Effects 2",
	"TpBC - Top Back Center",
	"SiL/SiR - Side Left/Right",
	"TpSiL/TpSiR - Top Side Left/Right",

	"TpBL/TpBR - Top Back Left/Right",
	"BtFC - Bottom Front Center",
	"BtFL/BtFR - Bottom Front Left/Right",
	"TpLS/TpRS - Top Left/Right Surround",
	"LSd/RSd - Left/Right Surround Direct",
}

type speakerLocation struct {
	name    string
	x, y, z float64
}

var speakerLocations = []speakerLocation{
	{"FL - Front Left", -1, 1, 0},
	{"FR - Front Right", 1, 1, 0},
	{"FC - Front Center", 0, 1, 0},
	{"LFE1 - Low Frequency Effects 1", -0.5, 1, -1},
	{"BL - Back Left", -1, -1, 0},
	{"BR - Back Right", 1, -1, 0},
	{"FLC - Front Left of Center", -0.5, 1, 0},
	{"FRC - Front Right of Center", 0.5, 1, 0},
	{"BC - Back Center", 0, -1, 0},
	{"LFE2 - Low Frequency Effects 2", 0.5, 1, -1},
	{"SiL - Side Left", -1, 1.0 / 3.0, 0},
	{"SiR - Side Right", 1, 1.0 / 3.0, 0},
	{"TpFL - Top Front Left", -1, 1, 1},
	{"TpFR - Top Front Right", 1, 1, 1},
	{"TpFC - Top Front Center", 0, 1, 1},
	{"TpC - Top Center", 0, 0, 1},
	{"TpBL - Top Back Left", -1, -1, 1},
	{"TpBR - Top Back Right", 1, -1, 1},
	{"TpSiL - Top Side Left", -1, 0, 1},
	{"TpSiR - Top Side Right", 1, 0, 1},
	{"TpBC - Top Back Center", 0, -1, 1},
	{"BtFC - Bottom Front Center", 0, 1, -1},
	{"BtFL - Bottom Front Left", -1, 1, -1},
	{"BtFR - Bottom Front Right", 1, 1, -1},
	{"FLW - Front Left Wide", -1, 2.0 / 3.0, 0},
	{"FRW - Front Right Wide", 1, 2.0 / 3.0, 0},
	{"LS - Left Surround", -1, 0, 0},
	{"RS - Right Surround", 1, 0, 0},
}

// coord decodes a signed 2.6 fixed point speaker coordinate.
func coord(x byte) float64 { return float64(int8(x)) / 64.0 }

func le24(x []byte) int { return int(x[2])<<16 | int(x[1])<<8 | int(x[0]) }

func (s *state) printSpeakers(indent string, mask int, names []string) {
	for i, n := range names {
		if (mask>>i)&1 != 0 {
			s.printf("%s%s\n", indent, n)
		}
	}
}

// ctaSADB decodes the Speaker Allocation Data Block.
func (s *state) ctaSADB(x []byte) {
	const valid = 0x7f
	if len(x) < 3 {
		s.fail("Empty Data Block with length %d.\n", len(x))
		return
	}
	sad := le24(x)
	for i, n := range sadbSpeakers {
		if (sad>>i)&1 == 0 {
			continue
		}
		s.printf("    %s%s\n", n, boolStr(valid&(1<<i) != 0, "", " (Deprecated, use the RCDB)"))
	}
	if sad&^valid != 0 {
		s.warn("Specifies deprecated speakers.\n")
	}
}

// ctaRCDB decodes the Room Configuration Data Block.
func (s *state) ctaRCDB(x []byte) {
	length := len(x)
	if length < 4 {
		s.fail("Empty Data Block with length %d.\n", length)
		return
	}
	spm := le24(x[1:])

	switch {
	case x[0]&0x20 != 0 && !s.cta.hasSLDB:
		s.fail("'SLD' flag is 1, but no Speaker Location Data Block is found.\n")
	case x[0]&0x20 == 0 && s.cta.hasSLDB:
		s.fail("'SLD' flag is 0, but a Speaker Location Data Block is present.\n")
	}
	if x[0]&0x40 != 0 {
		s.printf("    Speaker count: %d\n", x[0]&0x1f+1)
	} else {
		if x[0]&0x1f != 0 {
			s.fail("'Speaker' flag is 0, but 'Speaker Count' is != 0.\n")
		}
		if x[0]&0x20 != 0 {
			s.fail("'SLD' flag is 1, but 'Speaker' is 0.\n")
		}
	}

	s.printf("    Speaker Presence Mask:\n")
	s.printSpeakers("      ", spm, rcdbSpeakers)
	if x[0]&0xa0 == 0x80 {
		s.fail("'Display' flag set, but not the 'SLD' flag.\n")
	}

	validMax := s.cta.preparsedSLDHasCoord || x[0]&0x80 != 0
	if length >= 7 {
		if validMax {
			s.printf("    Xmax: %d dm\n", x[4])
			s.printf("    Ymax: %d dm\n", x[5])
			s.printf("    Zmax: %d dm\n", x[6])
		} else {
			s.warn("'Display' flag is 0 and 'Coord' is 0 for all SLDs, but the Max coordinates are still present.\n")
		}
	}
	if length >= 10 {
		if x[0]&0x80 != 0 {
			s.printf("    DisplayX: %.3f * Xmax\n", coord(x[7]))
			s.printf("    DisplayY: %.3f * Ymax\n", coord(x[8]))
			s.printf("    DisplayZ: %.3f * Zmax\n", coord(x[9]))
		} else {
			s.warn("'Display' flag is 0, but the Display coordinates are still present.\n")
		}
	}
}

// ctaSLDB decodes the Speaker Location Data Block.
func (s *state) ctaSLDB(x []byte) {
	if len(x) < 2 {
		s.fail("Empty Data Block with length %d.\n", len(x))
		return
	}
	active := 0
	var activeMask uint32
	for len(x) >= 2 {
		ch := x[0] & 0x1f
		s.printf("    Channel: %d (%sactive)\n", ch, boolStr(x[0]&0x20 != 0, "", "not "))
		if x[0]&0x20 != 0 {
			if activeMask&(1<<ch) != 0 {
				s.fail("Channel Index %d was already marked 'Active'.\n", ch)
			}
			activeMask |= 1 << ch
			active++
		}

		id := int(x[1] & 0x1f)
		switch {
		case id < len(speakerLocations):
			s.printf("      Speaker ID: %s\n", speakerLocations[id].name)
		case id == 0x1f:
			s.printf("      Speaker ID: None Specified\n")
		default:
			s.printf("      Speaker ID: Reserved (%d)\n", id)
			s.fail("Reserved Speaker ID specified.\n")
		}
		if len(x) >= 5 && x[0]&0x40 != 0 {
			s.printf("      X: %.3f * Xmax\n", coord(x[2]))
			s.printf("      Y: %.3f * Ymax\n", coord(x[3]))
			s.printf("      Z: %.3f * Zmax\n", coord(x[4]))
			x = x[3:]
		} else if id < len(speakerLocations) {
			l := speakerLocations[id]
			s.printf("      X: %.3f * Xmax (approximately)\n", l.x)
			s.printf("      Y: %.3f * Ymax (approximately)\n", l.y)
			s.printf("      Z: %.3f * Zmax (approximately)\n", l.z)
		}
		x = x[2:]
	}
	if active != s.cta.preparsedSpeakerCount {
		s.fail("There are %d active speakers, but 'Speaker Count' is %d.\n", active, s.cta.preparsedSpeakerCount)
	}
}

func (s *state) preparseSLDB(x []byte) {
	s.cta.hasSLDB = true
	for len(x) >= 2 {
		if len(x) >= 5 && x[0]&0x40 != 0 {
			s.cta.preparsedSLDHasCoord = true
			return
		}
		x = x[2:]
	}
}

// ctaHDMIAudioBlock decodes the HDMI Audio Data Block (3D audio).
func (s *state) ctaHDMIAudioBlock(x []byte) {
	if len(x) < 2 {
		s.fail("Empty Data Block with length %d.\n", len(x))
		return
	}
	if x[0]&3 != 0 {
		s.printf("    Max Stream Count: %d\n", x[0]&3+1)
		if x[0]&4 != 0 {
			s.printf("    Supports MS NonMixed\n")
		}
	} else if x[0]&4 != 0 {
		s.fail("MS NonMixed support indicated but Max Stream Count == 0.\n")
	}

	if x[1]&7 == 0 {
		return
	}
	s.warn("Support for HDMI 3D Audio is deprecated since HDMI 2.2.\n")
	for x = x[2:]; len(x) >= 4; x = x[4:] {
		if len(x) > 4 {
			format := int(x[0] & 0xf)
			s.printf("    %s:\n", s.audioFormat(format))
			s.printf("      Max channels: %d\n", x[1]&0x1f+1)
			s.printf("      Supported sample rates (kHz):%s\n",
				flagList(x[2]&0x7f, "192", "176.4", "96", "88.2", "48", "44.1", "32"))
			if format == 1 {
				s.printf("      Supported sample sizes (bits):%s\n", flagList(x[3]&0x07, "24", "20", "16"))
			}
			continue
		}
		switch x[3] >> 4 {
		case 1:
			s.printf("    Speaker Allocation for 10.2 channels:\n")
		case 2:
			s.printf("    Speaker Allocation for 22.2 channels:\n")
		case 3:
			s.printf("    Speaker Allocation for 30.2 channels:\n")
		default:
			s.printf("    Unknown Speaker Allocation (0x%02x)\n", x[3]>>4)
			return
		}
		s.printSpeakers("      ", le24(x), hdmiSpeakers)
	}
}
