package edid

import (
	"fmt"
	"strings"

	"example.com/edidgate/internal/calc"
	"example.com/edidgate/internal/timings"
)

func listLine(b *strings.Builder, prefix string, t timings.Timings, typ, flags string) {
	b.WriteString(timings.FormatLine(prefix, t, typ, flags, false))
	b.WriteByte('\n')
}

// ListEstablished lists the Established Timings I, II and III bits with
// the timing each one selects.
func ListEstablished() string {
	var b strings.Builder
	b.WriteString("Established Timings I & II, 'Byte' is the EDID address:\n\n")
	for i := 0; i < timings.NumEstablished12(); i++ {
		t, label, _ := timings.Established12(i)
		listLine(&b, fmt.Sprintf("Byte 0x%02x, Bit %d: ", 0x23+i/8, 7-i%8), t, fmt.Sprintf("%-8s", label), "")
	}
	b.WriteString("\nEstablished timings III, 'Byte' is the offset from the start of the descriptor:\n\n")
	for i := 0; i < timings.NumEstablished3(); i++ {
		id, _ := timings.Established3(i)
		t, ok := timings.FindDMT(id)
		if !ok {
			continue
		}
		listLine(&b, fmt.Sprintf("Byte 0x%02x, Bit %d: ", 6+i/8, 7-i%8), t, fmt.Sprintf("DMT 0x%02x", id), "")
	}
	return b.String()
}

// ListDMTs lists the DMT registry with the standard timing and CVT codes
// that select each entry.
func ListDMTs() string {
	var b strings.Builder
	for _, d := range timings.DMTs() {
		flags := ""
		if d.Std != 0 {
			flags = fmt.Sprintf("STD: 0x%02x 0x%02x", d.Std>>8, d.Std&0xff)
		}
		if d.CVT != 0 {
			flags = timings.AddStr(flags, fmt.Sprintf("CVT: 0x%02x 0x%02x 0x%02x",
				d.CVT>>16, (d.CVT>>8)&0xff, d.CVT&0xff))
		}
		listLine(&b, "", d.T, fmt.Sprintf("DMT 0x%02x", d.ID), flags)
	}
	return b.String()
}

// ListVICs lists the CTA-861 VIC registry.
func ListVICs() string {
	var b strings.Builder
	for _, v := range timings.VICs() {
		listLine(&b, "", v.T, fmt.Sprintf("VIC %3d", v.VIC), "")
	}
	return b.String()
}

// ListHDMIVICs lists the HDMI 1.4 VICs and the timing each one maps to.
func ListHDMIVICs() string {
	var b strings.Builder
	for i := 1; i <= timings.NumHDMIVICs(); i++ {
		t, ok := timings.FindHDMIVIC(i)
		if ok {
			listLine(&b, "", t, fmt.Sprintf("HDMI VIC %d", i), "")
		}
	}
	return b.String()
}

// ListRIDs lists the CTA-861.6 Video Format Resolution IDs.
func ListRIDs() string {
	var b strings.Builder
	for i := 1; i < timings.NumRIDs(); i++ {
		r, _ := timings.FindRID(i)
		fmt.Fprintf(&b, "RID %2d: %5dx%-4d %2d:%-2d\n", i, r.HAct, r.VAct, r.HRatio, r.VRatio)
	}
	return b.String()
}

// ListRIDTimings lists the timing of every RID at every Video Format
// rate. Rates that map to a VIC name the VIC; the others are computed
// with OVT. A non-zero rid restricts the list to that RID.
func ListRIDTimings(rid int) string {
	var b strings.Builder
	for id := 1; id < timings.NumRIDs(); id++ {
		if rid != 0 && id != rid {
			continue
		}
		r, _ := timings.FindRID(id)
		typ := fmt.Sprintf("RID %d", id)
		for i := 1; i < len(timings.VFRates); i++ {
			fps := timings.VFRates[i]
			if vic := timings.RIDToVIC(id, i); vic != 0 {
				fmt.Fprintf(&b, "%s: %5dx%-4d  %7.3f Hz %3d:%-2d maps to VIC %d\n",
					typ, r.HAct, r.VAct, float64(fps), r.HRatio, r.VRatio, vic)
				continue
			}
			t, err := calc.OVT(r.HAct, r.VAct, r.HRatio, r.VRatio, fps)
			if err != nil {
				fmt.Fprintf(&b, "%s: %5dx%-4d  %7.3f Hz: %v\n", typ, r.HAct, r.VAct, float64(fps), err)
				continue
			}
			listLine(&b, "", t, typ, "")
		}
	}
	return b.String()
}
