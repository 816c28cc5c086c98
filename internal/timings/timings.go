// Package timings holds the canonical video timing value, the comparators
// used to identify timings against the VESA and CTA registries, and the
// registries themselves.
package timings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RB is the reduced blanking variant of a timing. RBAlt may be or'ed into
// RBCVTv2 (video-optimized, 1000/1001 rates) or RBCVTv3 (160 pixel h-blank).
type RB uint8

const (
	RBNone  RB = 0
	RBCVTv1 RB = 1
	RBCVTv2 RB = 2
	RBCVTv3 RB = 3
	RBGTF   RB = 4 // GTF secondary curve

	RBAlt RB = 1 << 7
)

// Base strips the RBAlt flag.
func (rb RB) Base() RB { return rb &^ RBAlt }

// Alt reports whether the RBAlt flag is set.
func (rb RB) Alt() bool { return rb&RBAlt != 0 }

// Label returns the short description used in timing listings, or "" when
// the timing does not use reduced blanking.
func (rb RB) Label() string {
	switch rb.Base() {
	case RBNone:
		return ""
	case RBCVTv2:
		if rb.Alt() {
			return "RBv2,video-optimized"
		}
		return "RBv2"
	case RBCVTv3:
		if rb.Alt() {
			return "RBv3,h-blank-160"
		}
		return "RBv3"
	default:
		return "RB"
	}
}

// Timings describes a single video timing.
//
// The sequence of parameters on a line (and likewise on a frame) is
// border, front porch, sync, back porch, border, active video. For
// interlaced formats VAct is the frame height and the vertical blanking
// of each field is VFP+VSync+VBP+0.5, except when EvenVTotal is set
// (VIC 39). Porches are signed: GTF can produce a negative front porch and
// buggy detailed timings can carry negative back porches.
type Timings struct {
	HAct, VAct     int
	HRatio, VRatio int
	PixclkKHz      int
	RB             RB
	Interlaced     bool

	HFP         int
	HSync       int
	HBP         int
	PosPolHSync bool

	VFP         int
	VSync       int
	VBP         int
	PosPolVSync bool

	HBorder, VBorder int
	EvenVTotal       bool
	NoPolVSync       bool // digital composite sync has no vsync polarity
	HSizeMM, VSizeMM int
	YCbCr420         bool
}

// HBlank is the horizontal blanking including both borders.
func (t Timings) HBlank() int { return t.HFP + t.HSync + t.HBP + 2*t.HBorder }

// VBlank is the vertical blanking including both borders.
func (t Timings) VBlank() int { return t.VFP + t.VSync + t.VBP + 2*t.VBorder }

// HTotal is the total line length in pixels.
func (t Timings) HTotal() int { return t.HAct + t.HBlank() }

// VTotal is the total number of lines per field. It carries the extra half
// line of interlaced formats.
func (t Timings) VTotal() float64 {
	vact := t.VAct
	if t.Interlaced {
		vact /= 2
	}
	switch {
	case t.EvenVTotal:
		return float64(vact + t.VFP + t.VSync + t.VBP)
	case t.Interlaced:
		return float64(vact+t.VFP+t.VSync+t.VBP) + 0.5
	}
	return float64(vact + t.VBlank())
}

// RefreshHz returns the field rate of the timing, or 0 when the totals are
// zero.
func (t Timings) RefreshHz() float64 {
	den := float64(t.HTotal()) * t.VTotal()
	if den == 0 {
		return 0
	}
	return float64(t.PixclkKHz) * 1000.0 / den
}

// HorFreqKHz returns the line rate in kHz.
func (t Timings) HorFreqKHz() float64 {
	ht := t.HTotal()
	if ht == 0 {
		return 0
	}
	return float64(t.PixclkKHz) / float64(ht)
}

// FPS returns the truncated refresh rate.
func FPS(t Timings) int { return int(t.RefreshHz()) }

// GCD returns the greatest common divisor of a and b.
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// CalcRatio derives the picture aspect ratio from the active size. 8:5 is
// reported as 16:10.
func CalcRatio(t *Timings) {
	d := GCD(t.HAct, t.VAct)
	if d == 0 {
		t.HRatio, t.VRatio = 0, 0
		return
	}
	t.HRatio = t.HAct / d
	t.VRatio = t.VAct / d
	if t.HRatio == 8 && t.VRatio == 5 {
		t.HRatio, t.VRatio = 16, 10
	}
}

// Match reports whether two timings are identical for identification
// purposes. Physical size, borders and the 4:2:0 flag are ignored.
func Match(a, b Timings) bool {
	return a.HAct == b.HAct &&
		a.VAct == b.VAct &&
		a.RB == b.RB &&
		a.Interlaced == b.Interlaced &&
		a.HFP == b.HFP &&
		a.HBP == b.HBP &&
		a.HSync == b.HSync &&
		a.PosPolHSync == b.PosPolHSync &&
		a.HRatio == b.HRatio &&
		a.VFP == b.VFP &&
		a.VBP == b.VBP &&
		a.VSync == b.VSync &&
		a.PosPolVSync == b.PosPolVSync &&
		a.VRatio == b.VRatio &&
		a.PixclkKHz == b.PixclkKHz
}

// CloseMatch reports whether two timings are a close but not identical
// match: same active area, pixel clock and total blanking, but different
// porches, sync widths or polarities. Timings with borders never match.
func CloseMatch(a, b Timings) bool {
	if a.HBorder != 0 || a.VBorder != 0 || b.HBorder != 0 || b.VBorder != 0 {
		return false
	}
	if a.HAct != b.HAct || a.VAct != b.VAct ||
		a.Interlaced != b.Interlaced ||
		a.PixclkKHz != b.PixclkKHz ||
		a.HFP+a.HSync+a.HBP != b.HFP+b.HSync+b.HBP ||
		a.VFP+a.VSync+a.VBP != b.VFP+b.VSync+b.VBP {
		return false
	}
	if a.HFP == b.HFP && a.HSync == b.HSync && a.HBP == b.HBP &&
		a.PosPolHSync == b.PosPolHSync &&
		a.VFP == b.VFP && a.VSync == b.VSync && a.VBP == b.VBP &&
		a.PosPolVSync == b.PosPolVSync {
		return false
	}
	return true
}

// Ext is a timing together with its provenance label and flags.
//
// An Ext is either materialized (T holds the timing) or a pending Short
// Video Reference that points at a timing defined elsewhere in the
// document. Pending references are turned into materialized timings by
// Resolve once every block has been parsed.
type Ext struct {
	T     Timings
	Type  string
	Flags string

	svr int
}

// NewExt returns a materialized timing.
func NewExt(t Timings, typ, flags string) Ext {
	return Ext{T: t, Type: typ, Flags: flags}
}

// Pending returns an unresolved reference to SVR code svr.
func Pending(svr int, typ string) Ext {
	return Ext{Type: typ, svr: svr}
}

// Valid reports whether e holds a timing or a pending reference.
func (e Ext) Valid() bool { return e.T.HAct != 0 || e.svr != 0 }

// HasSVR reports whether e is still a pending reference.
func (e Ext) HasSVR() bool { return e.svr != 0 }

// SVR returns the pending SVR code, or 0 once materialized.
func (e Ext) SVR() int { return e.svr }

// Resolve materializes a pending reference. Type and Flags are replaced
// when non-empty.
func (e *Ext) Resolve(t Timings, typ, flags string) {
	e.T = t
	e.svr = 0
	if typ != "" {
		e.Type = typ
	}
	if flags != "" {
		e.Flags = flags
	}
}

// Clear drops the timing and any pending reference.
func (e *Ext) Clear() { *e = Ext{} }

// AddStr appends add to s as a comma separated list item.
func AddStr(s, add string) string {
	switch {
	case s == "":
		return add
	case add == "":
		return s
	}
	return s + ", " + add
}

// FormatLine renders t the way timing listings show it, for example
// "DMT 0x04:   640x480    59.940476 Hz   4:3     31.469 kHz     25.175000 MHz".
// When ntsc is set and the refresh rate is a multiple of 6 Hz the
// 1000/1001 variant is shown.
func FormatLine(prefix string, t Timings, typ, flags string, ntsc bool) string {
	refresh := t.RefreshHz()
	pixclk := float64(t.PixclkKHz) * 1000.0
	horFreq := t.HorFreqKHz()
	if ntsc && math.Mod(refresh, 6) == 0 {
		f := 1000.0 / 1001.0
		pixclk *= f
		refresh *= f
		horFreq *= f
	}
	s := t.RB.Label()
	s = AddStr(s, flags)
	if t.HSizeMM != 0 || t.VSizeMM != 0 {
		s = AddStr(s, strconv.Itoa(t.HSizeMM)+" mm x "+strconv.Itoa(t.VSizeMM)+" mm")
	}
	if s != "" {
		s = " (" + s + ")"
	}
	vact := strconv.Itoa(t.VAct)
	if t.Interlaced {
		vact += "i"
	}
	return fmt.Sprintf("%s%s: %5dx%-5s %10.6f Hz %3d:%-3d %8.3f kHz %13.6f MHz%s",
		prefix, typ, t.HAct, vact, refresh, t.HRatio, t.VRatio, horFreq, pixclk/1000000.0, s)
}

// FormatDetail renders the porch and sync lines shown under detailed
// timings.
func FormatDetail(indent int, t Timings) string {
	pad := strings.Repeat(" ", indent)
	pol := func(p bool) string {
		if p {
			return "P"
		}
		return "N"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%sHfront %4d Hsync %3d Hback %4d Hpol %s", pad, t.HFP, t.HSync, t.HBP, pol(t.PosPolHSync))
	if t.HBorder != 0 {
		fmt.Fprintf(&b, " Hborder %d", t.HBorder)
	}
	b.WriteString("\n")
	vline := func() {
		fmt.Fprintf(&b, "%sVfront %4d Vsync %3d Vback %4d", pad, t.VFP, t.VSync, t.VBP)
		if !t.NoPolVSync {
			fmt.Fprintf(&b, " Vpol %s", pol(t.PosPolVSync))
		}
		if t.VBorder != 0 {
			fmt.Fprintf(&b, " Vborder %d", t.VBorder)
		}
	}
	vline()
	switch {
	case t.EvenVTotal:
		b.WriteString(" Both Fields")
	case t.Interlaced:
		b.WriteString(" Vfront +0.5 Odd Field\n")
		vline()
		b.WriteString(" Vback  +0.5 Even Field")
	}
	return b.String()
}
