package edid

import (
	"fmt"
	"strings"
)

// Checksum returns the byte that makes the sum of block ≡ 0 (mod 256),
// ignoring the current value of the last byte.
func Checksum(block []byte) byte {
	var sum byte
	for _, b := range block[:len(block)-1] {
		sum += b
	}
	return -sum
}

// ReplaceChecksum stores the correct checksum in the last byte of block.
func ReplaceChecksum(block []byte) {
	block[len(block)-1] = Checksum(block)
}

// ChecksumOK reports whether the bytes of block sum to 0 (mod 256).
func ChecksumOK(block []byte) bool {
	var sum byte
	for _, b := range block {
		sum += b
	}
	return sum == 0
}

// doChecksum prints and verifies the checksum byte at pos.
func (s *state) doChecksum(prefix string, x []byte, pos int, unused int) {
	check := x[pos]
	var sum byte
	for i, b := range x {
		if i != pos {
			sum += b
		}
	}
	s.printf("%sChecksum: 0x%02x", prefix, check)
	if check+sum != 0 {
		s.printf(" (should be 0x%02x)", -sum)
		s.fail("Invalid checksum 0x%02x (should be 0x%02x).\n", check, -sum)
	}
	if unused > 0 {
		s.printf("  Unused space in Extension Block: %d byte%s", unused, boolStr(unused > 1, "s", ""))
	}
	s.printf("\n")
}

// memchk reports whether every byte of x equals v.
func memchk(x []byte, v byte) bool {
	for _, b := range x {
		if b != v {
			return false
		}
	}
	return true
}

func (s *state) hexBlock(prefix string, x []byte, showASCII bool, step int) {
	s.out.WriteString(hexBlock(prefix, x, showASCII, step))
}

// hexBlock renders x as rows of step hex bytes, optionally followed by the
// printable ASCII characters.
func hexBlock(prefix string, x []byte, showASCII bool, step int) string {
	var b strings.Builder
	for i := 0; i < len(x); i += step {
		n := min(step, len(x)-i)
		b.WriteString(prefix)
		for j := 0; j < n; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%02x", x[i+j])
		}
		if showASCII {
			b.WriteString(strings.Repeat("   ", step-n))
			b.WriteString(" '")
			for j := 0; j < n; j++ {
				c := x[i+j]
				if c < ' ' || c > '~' {
					c = '.'
				}
				b.WriteByte(c)
			}
			b.WriteString("'")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func utohex(x byte) string { return fmt.Sprintf("0x%02x", x) }

func ouiToHex(oui int) string {
	return fmt.Sprintf("%02X-%02X-%02X", (oui>>16)&0xff, (oui>>8)&0xff, oui&0xff)
}

func containerID(x []byte) string {
	return fmt.Sprintf("%02x%02x%02x%02x-%02x%02x-%02x%02x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		x[0], x[1], x[2], x[3], x[4], x[5], x[6], x[7],
		x[8], x[9], x[10], x[11], x[12], x[13], x[14], x[15])
}

// chrom2d decodes a 16-bit little-endian chromaticity value.
func chrom2d(x []byte) float64 {
	return float64(int(x[0])+int(x[1])<<8) * 0.00002
}
