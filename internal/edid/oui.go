package edid

import "fmt"

// OUI discriminants. They are or'ed into the found-tag keys of vendor
// specific data blocks, so they must not overlap the low 12 bits.
const (
	ouiHDMI       = 2 << 12
	ouiHDMIForum  = 3 << 12
	ouiHDR10      = 4 << 12
	ouiAMD        = 5 << 12
	ouiNVIDIA     = 6 << 12
	ouiASUS       = 7 << 12
	ouiApple      = 8 << 12
	ouiMSTAR      = 9 << 12
	ouiDolby      = 10 << 12
	ouiInFocus    = 11 << 12
	ouiMicrosoft  = 12 << 12
	ouiTHX        = 13 << 12
	ouiUHDA       = 16 << 12
	ouiVESA       = 17 << 12
	ouiASCIIApple = 20 << 12
)

type ouiEntry struct {
	num  int
	name string
}

// IEEE OUIs, CIDs and (shifted into the top byte) PNP IDs.
var ouiRegistry = map[int]ouiEntry{
	0x000c03:   {ouiHDMI, "HDMI"},
	0xc45dd8:   {ouiHDMIForum, "HDMI Forum"},
	0x90848b:   {ouiHDR10, "HDR10+"},
	0x00001a:   {ouiAMD, "AMD"},
	0x00044b:   {ouiNVIDIA, "NVIDIA"},
	0x000c6e:   {ouiASUS, "ASUS"},
	0x0010fa:   {ouiApple, "Apple"},
	0x0014b9:   {ouiMSTAR, "MSTAR"},
	0x00d046:   {ouiDolby, "Dolby"},
	0x00e047:   {ouiInFocus, "InFocus"},
	0xca125c:   {ouiMicrosoft, "Microsoft"},
	0x0012fa:   {ouiTHX, "THX"},
	0x1abbfb:   {ouiUHDA, "UHD Alliance"},
	0x3a0292:   {ouiVESA, "VESA"},
	0x41505000: {ouiASCIIApple, "Apple"}, // 'APP'
}

func ouiName(oui int) (string, int) {
	e, ok := ouiRegistry[oui]
	if !ok {
		return "", 0
	}
	return e.name, e.num
}

// dataBlockOUI identifies the vendor of a vendor specific block from the
// first three payload bytes, sets the data block name used for the
// following diagnostics and prints it. The OUI is tried in the expected
// byte order, then reversed, then (when doASCII is set) as a PNP ID. It
// returns the OUI discriminant, or 0 when unknown.
func (s *state) dataBlockOUI(blockName string, x []byte, ignoreZeros, doASCII, bigEndian, silent bool) int {
	length := len(x)
	at := func(i int) int {
		if i < length {
			return int(x[i])
		}
		return 0
	}
	var oui int
	if bigEndian {
		oui = at(0)<<16 | at(1)<<8 | at(2)
	} else {
		oui = at(2)<<16 | at(1)<<8 | at(0)
	}

	buf := ouiToHex(oui)
	ascii := "?"
	var name string
	num := 0
	matchedReverse, matchedASCII, validASCII := false, false, false

	if length >= 3 {
		validASCII = x[0] >= 'A' && x[1] >= 'A' && x[2] >= 'A' &&
			x[0] <= 'Z' && x[1] <= 'Z' && x[2] <= 'Z'
		ascii = fmt.Sprintf("%c%c%c", x[0], x[1], x[2])

		name, num = ouiName(oui)
		if name == "" {
			bigEndian = !bigEndian
			reversed := (oui&0xff)<<16 | oui&0x00ff00 | oui>>16
			if name, num = ouiName(reversed); name != "" {
				oui = reversed
				buf = ouiToHex(oui)
				matchedReverse = true
			} else if doASCII && validASCII {
				asciiOUI := int(x[0])<<24 | int(x[1])<<16 | int(x[2])<<8
				if name, num = ouiName(asciiOUI); name != "" {
					matchedASCII = true
				}
			}
		}
	}

	var label string
	switch {
	case name != "" && matchedASCII:
		label = blockName + " (" + name + "), PNP ID '" + ascii + "'"
	case name != "":
		label = blockName + " (" + name + "), OUI " + buf
	case doASCII && validASCII:
		label = blockName + ", PNP ID '" + ascii + "'"
	default:
		label = blockName + ", OUI " + buf
	}
	s.dataBlock = label

	if oui == 0 && ignoreZeros {
		return num
	}
	if !silent {
		s.printf("  %s:\n", s.dataBlock)
	}
	switch {
	case length < 3:
		s.fail("Data block length (%d) is not enough to contain an OUI.\n", length)
	case name != "":
		if doASCII && !validASCII {
			s.warn("Expected PNP ID but found OUI.\n")
		}
		if matchedReverse {
			s.warn("Endian-ness (%s) of OUI is different than expected (%s).\n",
				boolStr(bigEndian, "be", "le"), boolStr(bigEndian, "le", "be"))
		}
	case !doASCII && oui == 0:
		s.warn("All zeroes OUI.\n")
	case !doASCII && validASCII:
		s.warn("Unknown OUI %s (possible PNP %s).\n", buf, ascii)
	}
	return num
}
