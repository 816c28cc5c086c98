package edid

import (
	"bytes"
	"strings"
	"testing"
)

func displayIDProductBlock(serial []byte) []byte {
	x := make([]byte, pageSize)
	x[0], x[1], x[2] = TagDisplayID, 0x12, 15
	// Product Identification: OUI, product code, serial, week, year, no name.
	copy(x[5:], []byte{0x00, 0x00, 12, 0x00, 0x0c, 0x03, 0x01, 0x00})
	copy(x[13:], serial)
	x[17], x[18] = 12, 30
	x[20] = Checksum(x[1:21])
	ReplaceChecksum(x)
	return x
}

func TestAnonymizeKeepsChecksumsValid(t *testing.T) {
	base := baseBlock(10, 30, 2)
	copy(base[0x0c:], []byte{0x78, 0x56, 0x34, 0x12})
	copy(base[0x6c:], textDescriptor(0xff, "ABC987"))
	ReplaceChecksum(base)
	dispid := displayIDProductBlock([]byte{1, 2, 3, 4})
	cta := ctaBlock(0x00)
	data := join(base, cta, dispid)
	orig := bytes.Clone(data)

	out, patches := Anonymize(data)
	if !bytes.Equal(data, orig) {
		t.Fatalf("input was modified")
	}
	for b := 0; b < len(out)/pageSize; b++ {
		if !ChecksumOK(out[b*pageSize : (b+1)*pageSize]) {
			t.Fatalf("block %d checksum is wrong after anonymizing", b)
		}
	}
	if !ChecksumOK(out[2*pageSize+1 : 2*pageSize+21]) {
		t.Fatalf("DisplayID section checksum is wrong after anonymizing")
	}
	if !bytes.Equal(out[0x0c:0x10], serial123456) {
		t.Fatalf("base serial is % x", out[0x0c:0x10])
	}
	if out[0x10] != 0 || out[0x11] != 10 {
		t.Fatalf("base date is %d/%d", out[0x10], out[0x11])
	}
	if !bytes.Equal(out[0x6c+5:0x6c+18], serialDescriptor) {
		t.Fatalf("serial descriptor is %q", out[0x6c+5:0x6c+18])
	}
	if !bytes.Equal(out[2*pageSize+13:2*pageSize+17], serial123456) {
		t.Fatalf("DisplayID serial is % x", out[2*pageSize+13:2*pageSize+17])
	}

	fields := map[string]bool{}
	for _, p := range patches {
		fields[p.Field] = true
		if p.Block == 1 {
			t.Fatalf("untouched CTA block was patched: %+v", p)
		}
	}
	for _, f := range []string{"serial number", "manufacture date", "serial string", "checksum", "displayid checksum"} {
		if !fields[f] {
			t.Fatalf("no %q patch in %+v", f, patches)
		}
	}

	res := mustDecode(t, out, Options{})
	if strings.Contains(res.Listing, "ABC987") {
		t.Fatalf("listing still shows the serial string")
	}
}

func TestAnonymizeIsIdempotent(t *testing.T) {
	base := baseBlock(0xff, 30, 0)
	copy(base[0x0c:], []byte{9, 9, 9, 9})
	ReplaceChecksum(base)
	once, _ := Anonymize(base)
	twice, patches := Anonymize(once)
	if !bytes.Equal(once, twice) {
		t.Fatalf("second pass changed the data")
	}
	if len(patches) != 0 {
		t.Fatalf("second pass recorded %d patches", len(patches))
	}
}

func TestAnonymizeLeavesModelYear(t *testing.T) {
	out, _ := Anonymize(baseBlock(0xff, 30, 0))
	if out[0x10] != 0xff || out[0x11] != 30 {
		t.Fatalf("model year was rewritten to %d/%d", out[0x10], out[0x11])
	}
}
