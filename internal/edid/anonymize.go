package edid

import "bytes"

// Patch records one byte range rewritten by Anonymize.
type Patch struct {
	Block  int    `json:"block"`
	Offset int    `json:"offset"`
	Field  string `json:"field"`
	Before []byte `json:"before"`
	After  []byte `json:"after"`
}

// serial123456 is the little-endian serial number 123456.
var serial123456 = []byte{0x40, 0xe2, 0x01, 0x00}

var serialDescriptor = []byte("123456\n      ")

type anonymizer struct {
	buf     []byte
	patches []Patch
	dirty   map[int]bool
}

// set overwrites buf[block*128+off:] with b, recording the change when
// it alters anything.
func (a *anonymizer) set(block, off int, field string, b []byte) {
	start := block*pageSize + off
	cur := a.buf[start : start+len(b)]
	if bytes.Equal(cur, b) {
		return
	}
	a.patches = append(a.patches, Patch{
		Block:  block,
		Offset: off,
		Field:  field,
		Before: bytes.Clone(cur),
		After:  bytes.Clone(b),
	})
	copy(cur, b)
	a.dirty[block] = true
}

func (a *anonymizer) page(block int) []byte {
	return a.buf[block*pageSize : (block+1)*pageSize]
}

// Anonymize returns a copy of data with serial numbers, manufacture dates
// and container IDs replaced by fixed values, and every affected checksum
// recomputed. The input is not modified. data must hold whole 128-byte
// blocks.
func Anonymize(data []byte) ([]byte, []Patch) {
	a := &anonymizer{buf: bytes.Clone(data), dirty: map[int]bool{}}
	n := len(a.buf) / pageSize
	if n == 0 {
		return a.buf, nil
	}
	a.base()
	for b := 1; b < n; b++ {
		switch a.buf[b*pageSize] {
		case TagCTA:
			a.cta(b)
		case TagDisplayID:
			a.displayID(b)
		case TagLS:
			a.lsExt(b)
		}
	}
	for b := 0; b < n; b++ {
		if a.dirty[b] {
			p := a.page(b)
			a.set(b, pageSize-1, "checksum", []byte{Checksum(p)})
		}
	}
	return a.buf, a.patches
}

func (a *anonymizer) descriptor(block, off int) {
	x := a.page(block)[off : off+18]
	if x[0] == 0 && x[1] == 0 && x[3] == 0xff {
		a.set(block, off+5, "serial string", serialDescriptor)
	}
}

func (a *anonymizer) base() {
	x := a.page(0)
	if !memchk(x[0x0c:0x10], 0) {
		a.set(0, 0x0c, "serial number", serial123456)
	}
	if x[0x10] != 0xff {
		a.set(0, 0x10, "manufacture date", []byte{0, 10})
	}
	for _, off := range []int{0x36, 0x48, 0x5a, 0x6c} {
		a.descriptor(0, off)
	}
}

func (a *anonymizer) cta(block int) {
	x := a.page(block)
	offset := int(x[2])
	if offset >= 4 {
		for off := offset; off+17 < 127; off += 18 {
			if memchk(x[off:off+18], 0) {
				break
			}
			a.descriptor(block, off)
		}
	}
	if x[1] < 3 {
		return
	}
	offset = min(offset, 127)
	for i := 4; i < offset; i += int(x[i]&0x1f) + 1 {
		if x[i]>>5 != 0x03 || x[i]&0x1f != 0x15 || i+22 > 127 {
			continue
		}
		// Microsoft VSDB: the container ID follows the OUI, version
		// and desktop/third-party byte.
		oui := int(x[i+3])<<16 | int(x[i+2])<<8 | int(x[i+1])
		if oui == 0xca125c || oui == 0x5c12ca {
			a.set(block, i+6, "container id", make([]byte, 16))
		}
	}
}

func (a *anonymizer) displayID(block int) {
	x := a.page(block)
	length := min(int(x[2]), dispidMaxLength)
	offset := 5
	inner := false

	for length > 0 && offset+3 <= 127 {
		tag := x[offset]
		l := int(x[offset+2])
		switch tag {
		case 0x00, 0x20:
			if offset+0x0e > 127 {
				break
			}
			if !memchk(x[offset+0x08:offset+0x0c], 0) {
				a.set(block, offset+0x08, "serial number", serial123456)
				inner = true
			}
			if x[offset+0x0c] != 0xff {
				a.set(block, offset+0x0c, "manufacture date", []byte{0, 0})
				inner = true
			}
		case 0x12, 0x28:
			if offset+0x19 > 127 {
				break
			}
			if !memchk(x[offset+0x15:offset+0x19], 0) {
				a.set(block, offset+0x15, "tile serial number", serial123456)
				inner = true
			}
		case 0x29:
			if offset+19 > 127 {
				break
			}
			a.set(block, offset+3, "container id", make([]byte, 16))
			inner = true
		}
		if length < 3 || length < l+3 || (tag == 0 && l == 0) {
			break
		}
		length -= l + 3
		offset += l + 3
	}
	if inner && a.dirty[block] {
		// The section checksum follows the payload of the section.
		sec := x[1 : min(int(x[2]), dispidMaxLength)+6]
		a.set(block, len(sec), "displayid checksum", []byte{Checksum(sec)})
	}
}

func (a *anonymizer) lsExt(block int) {
	x := a.page(block)
	p := 5
	for x[p] != 0 && p+int(x[p]) < 127 {
		width := 1 << (x[p+1] & 7)
		str := p + 6
		p += int(x[p])
		if width > 4 {
			continue
		}
		// Skip the manufacturer and model names.
		for k := 0; k < 2 && str < 127; k++ {
			str += int(x[str]) + 1
		}
		if str >= 127 {
			continue
		}
		n := int(x[str])
		repl := make([]byte, 0, n)
		for i := 1; i <= n; i += width {
			idx := (i - 1) / width
			c := byte(' ')
			if idx < 6 {
				c = '1' + byte(idx)
			}
			repl = append(repl, make([]byte, width-1)...)
			repl = append(repl, c)
		}
		repl = repl[:min(len(repl), n, 127-str-1)]
		a.set(block, str+1, "serial string", repl)
	}
}
