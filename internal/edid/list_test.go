package edid

import (
	"strings"
	"testing"
)

func TestListings(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want []string
	}{
		{"established", ListEstablished(), []string{
			"Established Timings I & II",
			"Byte 0x23, Bit 5: DMT 0x04:   640x480",
			"Established timings III",
		}},
		{"dmts", ListDMTs(), []string{"DMT 0x04:", "STD: 0x31 0x40"}},
		{"vics", ListVICs(), []string{"VIC   1:", "VIC 193:"}},
		{"hdmi vics", ListHDMIVICs(), []string{"HDMI VIC 1:", "HDMI VIC 4:"}},
		{"rids", ListRIDs(), []string{"RID  1:  1280x720  16:9"}},
	}
	for _, tc := range cases {
		for _, w := range tc.want {
			if !strings.Contains(tc.got, w) {
				t.Fatalf("%s listing lacks %q:\n%s", tc.name, w, tc.got)
			}
		}
	}
}

func TestListRIDTimingsFilters(t *testing.T) {
	out := ListRIDTimings(1)
	if !strings.Contains(out, "maps to VIC") {
		t.Fatalf("RID 1 has no VIC mapping:\n%s", out)
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.HasPrefix(line, "RID 1:") {
			t.Fatalf("unexpected line %q", line)
		}
	}
}
