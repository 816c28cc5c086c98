package edid

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Extension block tags.
const (
	TagBase         = 0x00
	TagCTA          = 0x02
	TagVTB          = 0x10
	TagEDID20       = 0x20
	TagDI           = 0x40
	TagLS           = 0x50
	TagMicrodisplay = 0x60
	TagDisplayID    = 0x70
	TagBlockMap     = 0xf0
	TagManufacturer = 0xff
)

// BlockName returns the display name of the block with tag t.
func BlockName(t byte) string {
	switch t {
	case TagBase:
		return "Base EDID"
	case TagCTA:
		return "CTA-861 Extension Block"
	case TagVTB:
		return "Video Timing Extension Block"
	case TagEDID20:
		return "EDID 2.0 Extension Block"
	case TagDI:
		return "Display Information Extension Block"
	case TagLS:
		return "Localized String Extension Block"
	case TagMicrodisplay:
		return "Microdisplay Interface Extension Block"
	case TagDisplayID:
		return "DisplayID Extension Block"
	case TagBlockMap:
		return "Block Map Extension Block"
	case TagManufacturer:
		return "Manufacturer-Specific Extension Block"
	}
	return fmt.Sprintf("Unknown EDID Extension Block 0x%02x", t)
}

func (s *state) preparseExtension(x []byte) {
	switch x[0] {
	case TagCTA:
		s.hasCTA = true
		s.preparseCTABlock(x)
	case TagDisplayID:
		s.hasDispID = true
		s.preparseDisplayIDBlock(x)
	}
}

func (s *state) parseExtension(x []byte) {
	s.block = BlockName(x[0])
	s.dataBlock = ""
	s.unusedBytes = 0

	s.printf("\n")
	if s.blockNr != 0 && x[0] == 0 {
		s.block = "Unknown EDID Extension Block 0x00"
	}
	s.printf("Block %d, %s:\n", s.blockNr, s.block)

	switch x[0] {
	case TagCTA:
		s.parseCTABlock(x)
	case TagVTB:
		s.parseVTBExtBlock(x)
	case TagEDID20:
		s.fail("Deprecated extension block for EDID 2.0, do not use.\n")
	case TagDI:
		s.hexBlock("  ", x[1:pageSize-1], true, 16)
	case TagLS:
		s.parseLSExtBlock(x)
	case TagDisplayID:
		s.parseDisplayIDBlock(x)
	case TagBlockMap:
		s.parseBlockMap(x)
		if s.blockNr != 1 && s.blockNr != 128 {
			s.fail("Must be used in block 1 and 128.\n")
		}
	case TagMicrodisplay, TagManufacturer:
		s.hexBlock("  ", x[1:pageSize-1], true, 16)
	default:
		s.hexBlock("  ", x[:pageSize], true, 16)
		s.fail("Unknown Extension Block.\n")
	}

	s.dataBlock = ""
	s.doChecksum("", x[:pageSize], pageSize-1, s.unusedBytes)
}

func (s *state) parseBlockMap(x []byte) {
	switch {
	case s.blockNr == 1:
		s.blockMap.saw1 = true
	case !s.blockMap.saw1:
		s.fail("No EDID Block Map Extension found in block 1.\n")
	case s.blockNr == 128:
		s.blockMap.saw128 = true
	}

	offset := 1
	if s.blockNr > 1 {
		offset = 128
	}
	lastValid := 0
	failOnce := false
	for i := 1; i < 127; i++ {
		block := offset + i
		if x[i] == 0 {
			if block < s.numBlocks {
				s.fail("Block %d tag mismatch: expected 0x%02x, but got 0x00.\n",
					block, s.data[block*pageSize])
			}
			continue
		}
		lastValid++
		if i != lastValid && !failOnce {
			s.fail("Valid block tags are not consecutive.\n")
			failOnce = true
		}
		s.printf("  Block %3d: %s\n", block, BlockName(x[i]))
		switch {
		case block >= s.numBlocks:
			if !failOnce {
				s.fail("Invalid block number %d.\n", block)
			}
			failOnce = true
		case x[i] != s.data[block*pageSize]:
			s.fail("Block %d tag mismatch: expected 0x%02x, but got 0x%02x.\n",
				block, s.data[block*pageSize], x[i])
		}
	}
}

// parseVTBExtBlock decodes a Video Timing Block Extension: counted lists
// of DTDs, 3-byte CVT codes and standard timings.
func (s *state) parseVTBExtBlock(x []byte) {
	s.printf("  Version: %d\n", x[1])
	if x[1] != 1 {
		s.fail("Invalid version %d.\n", x[1])
	}
	numDTD, numCVT, numST := int(x[2]), int(x[3]), int(x[4])

	const end = 0x7f
	p := 5
	if numDTD > 0 {
		s.printf("  Detailed Timing Descriptors:\n")
		for i := 0; i < numDTD; i, p = i+1, p+18 {
			if p+18 > end {
				s.fail("Not enough bytes remain for more DTDs in the VTB-EXT.\n")
				return
			}
			s.detailedTimings("    ", x[p:p+18], false, x[p+17])
		}
	}
	if numCVT > 0 {
		s.printf("  Coordinated Video Timings:\n")
		for i := 0; i < numCVT; i, p = i+1, p+3 {
			if p+3 > end {
				s.fail("Not enough bytes remain for more CVTs in the VTB-EXT.\n")
				return
			}
			s.detailedCVTDescriptor("    ", x[p:p+3], false)
		}
	}
	if numST > 0 {
		// The example EDID in the VTB-EXT standard stores 60 instead of
		// 0 in the refresh bits; the text of the standard is right.
		s.printf("  Standard Timings:\n")
		for i := 0; i < numST; i, p = i+1, p+2 {
			if p+2 > end {
				s.fail("Not enough bytes remain for more STs in the VTB-EXT.\n")
				return
			}
			s.printStandardTiming("    ", x[p], x[p+1], true, false)
		}
	}
	s.unusedBytes = end - p
	if !memchk(x[p:end], 0) {
		s.dataBlock = "Padding"
		s.fail("Contains non-zero bytes.\n")
	}
}

// lsDecoder returns the decoder for a Localized String table UTF type, or
// nil when the type is reserved.
func lsDecoder(utfType byte) *encoding.Decoder {
	switch utfType {
	case 0:
		return unicode.UTF8.NewDecoder()
	case 1:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case 2:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder()
	}
	return nil
}

func (s *state) lsString(name string, x []byte, dec *encoding.Decoder) {
	n := int(x[0])
	if n == 0 {
		return
	}
	raw := pad(x[1:], n)[:n]
	s.printf("  %s: ", name)
	s.hexBlock("", raw, true, n)
	if dec == nil {
		return
	}
	if text, err := dec.Bytes(raw); err == nil {
		s.printf("    Text: '%s'\n", text)
	}
}

func (s *state) parseStringTable(x []byte) {
	x = pad(x, 5+3*256)
	utfType := x[0] & 7
	width := 1 << utfType

	s.printf("  UTF Type: ")
	switch utfType {
	case 0:
		s.printf("UTF 8\n")
	case 1:
		s.printf("UTF 16BE\n")
	case 2:
		s.printf("UTF 32BE\n")
	default:
		s.printf("Unknown (0x%02x)\n", utfType)
		s.fail("Unknown UTF Type (0x%02x).\n", utfType)
	}
	dec := lsDecoder(utfType)
	s.printf("  Country Code ID (ISO 3166-3): %d\n", int(x[1]&0x3f)<<8|int(x[2]))

	if x[3] != 0 || x[4] != 0 {
		name := []byte{
			(x[3]&0x7c)>>2 + '@',
			(x[3]&0x03)<<3 + (x[4]&0xe0)>>5 + '@',
			x[4]&0x1f + '@',
		}
		for i, c := range name {
			if c == '@' {
				name[i] = ' '
			}
		}
		s.printf("  Language ID: '%s'\n", name)
	}

	x = x[5:]
	s.lsString("Manufacturer Name", x, dec)
	if int(x[0])%width != 0 {
		s.fail("Incorrect Manufacturer Name length.\n")
	}
	x = x[int(x[0])+1:]
	s.lsString("Model Name", x, dec)
	if int(x[0])%width != 0 {
		s.fail("Incorrect Model Name length.\n")
	}
	x = x[int(x[0])+1:]
	if s.opts.HideSerialNumbers {
		s.printf("  Serial Number: ...\n")
	} else {
		s.lsString("Serial Number", x, dec)
	}
	if int(x[0])%width != 0 {
		s.fail("Incorrect Serial Number length.\n")
	}
}

// parseLSExtBlock decodes a Localized String Extension: a list of string
// tables, each holding manufacturer, model and serial strings in one of
// three Unicode encodings.
func (s *state) parseLSExtBlock(x []byte) {
	s.printf("  Version: %d.%d\n  Unicode Version: %d.%d.%d\n",
		x[1], x[2], x[3]>>4, x[3]&0x0f, x[4])

	p := 5
	for x[p] != 0 && p+int(x[p]) < 127 {
		s.parseStringTable(x[p+1 : 127])
		p += int(x[p])
	}
	s.unusedBytes = 127 - p
	if !memchk(x[p:127], 0) {
		s.dataBlock = ""
		s.fail("Non-zero values in unused space.\n")
	}
}
