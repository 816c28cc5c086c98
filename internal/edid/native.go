package edid

import (
	"fmt"
	"math"
	"slices"

	"example.com/edidgate/internal/timings"
)

// Resolution is a native video resolution.
type Resolution struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Interlaced bool `json:"interlaced,omitempty"`
}

func (r Resolution) String() string {
	if r.Interlaced {
		return fmt.Sprintf("%dx%di", r.Width, r.Height)
	}
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

type resolutionSet []Resolution

func (rs *resolutionSet) add(r Resolution) {
	if !slices.Contains(*rs, r) {
		*rs = append(*rs, r)
	}
}

func (rs resolutionSet) sorted() []Resolution {
	out := slices.Clone(rs)
	slices.SortFunc(out, func(a, b Resolution) int {
		if a.Width != b.Width {
			return a.Width - b.Width
		}
		return a.Height - b.Height
	})
	return out
}

const separator = "\n----------------\n"

func (s *state) printPreferredTimings() {
	list := func(title string, vec []timings.Ext) {
		if len(vec) == 0 {
			return
		}
		s.printf("%s\nPreferred Video Timing%s if %s:\n", separator, boolStr(len(vec) > 1, "s", ""), title)
		for _, e := range vec {
			if !e.HasSVR() {
				s.printTimingsExt("  ", e, true, false)
			}
		}
	}
	if s.base.preferredTiming.Valid() {
		s.printf("%s\nPreferred Video Timing if only Block 0 is parsed:\n", separator)
		s.printTimingsExt("  ", s.base.preferredTiming, true, false)
	}
	list("Block 0 and CTA-861 Blocks are parsed", s.cta.preferredTimings)
	list("Block 0 and CTA-861 Blocks are parsed with VFPDB support", s.cta.preferredTimingsVFP)
	list("Block 0 and DisplayID Blocks are parsed", s.dispid.preferredTimings)
}

// nativeRes collects the native resolution candidates of every block,
// runs the diagonal hint checks and returns the agreed native
// resolutions, if any.
func (s *state) nativeRes() []Resolution {
	var prog, ilace, nvrdb resolutionSet
	var w, h, wi, hi int
	// A block that defines a native resolution when Block 0 does not is
	// also a mismatch.
	mismatch, intMismatch := false, false

	if s.base.preferredTiming.Valid() && s.base.preferredIsAlsoNative {
		t := s.base.preferredTiming.T
		if t.Interlaced {
			wi, hi = t.HAct, t.VAct
		} else {
			w, h = t.HAct, t.VAct
		}
	}

	switch {
	case w == 0 && s.dispid.nativeWidth != 0:
		w, h = s.dispid.nativeWidth, s.dispid.nativeHeight
		mismatch = true
	case s.dispid.nativeWidth != 0 && w != 0 &&
		(s.dispid.nativeWidth != w || s.dispid.nativeHeight != h):
		mismatch = true
	}

	for _, e := range s.cta.nativeTimings {
		if e.HasSVR() {
			continue
		}
		t := e.T
		if t.Interlaced {
			ilace.add(Resolution{t.HAct, t.VAct, true})
			if wi == 0 {
				wi, hi = t.HAct, t.VAct
				intMismatch = true
			} else if t.HAct != wi || t.VAct != hi {
				intMismatch = true
			}
			continue
		}
		prog.add(Resolution{Width: t.HAct, Height: t.VAct})
		if w == 0 {
			w, h = t.HAct, t.VAct
			mismatch = true
		} else if t.HAct != w || t.VAct != h {
			mismatch = true
		}
	}

	for _, e := range s.cta.nativeTimingNVRDB {
		if e.HasSVR() {
			continue
		}
		t := e.T
		if t.Interlaced {
			s.fail("Interlaced native timing in NVRDB.\n")
			continue
		}
		nvrdb.add(Resolution{Width: t.HAct, Height: t.VAct})
		if w == 0 {
			w, h = t.HAct, t.VAct
			mismatch = true
		} else if t.HAct != w || t.VAct != h {
			if t.HAct >= 4096 || t.VAct >= 4096 {
				w, h = t.HAct, t.VAct
			}
			mismatch = true
		}
	}

	if s.diagonal != 0 {
		s.checkDiagonal(w, h)
	}

	if !s.base.isAnalog && w == 0 && wi == 0 {
		s.warn("No Native Video Resolution was defined.\n")
		if s.hasCTA {
			s.warn("  Hint: set 'Native detailed modes' to a non-0 value, or add a Native Video Resolution Data Block.\n")
		}
	}

	var agreed []Resolution
	if !mismatch && !intMismatch {
		if w != 0 {
			agreed = append(agreed, Resolution{Width: w, Height: h})
		}
		if wi != 0 {
			agreed = append(agreed, Resolution{wi, hi, true})
		}
	}

	if s.opts.NativeResolution {
		s.printNativeRes(agreed, prog, ilace, nvrdb, w != 0 || wi != 0)
	}
	return agreed
}

func (s *state) checkDiagonal(w, h int) {
	if s.imageWidth != 0 {
		iw, ih := float64(s.imageWidth), float64(s.imageHeight)
		d := math.Sqrt(iw*iw+ih*ih) / 254.0
		if math.Abs(s.diagonal-d) >= 0.1 {
			s.warn("Specified diagonal is %.1f\", calculated diagonal is %.1f\" for EDID image size %.1fx%.1fmm.\n",
				s.diagonal, d, iw/10.0, ih/10.0)
		}
	}
	if w == 0 {
		return
	}
	fw, fh := float64(w), float64(h)
	d := s.diagonal * 254.0
	c := math.Sqrt((d * d) / (fw*fw + fh*fh))
	fw *= c
	fh *= c

	if s.imageWidth != 0 {
		s.printf("%s\nCalculated image size for a diagonal of %.1f\" is %.1fx%.1fmm (native resolution %dx%d).\n",
			separator, s.diagonal, fw/10.0, fh/10.0, w, h)
		if math.Abs(float64(s.imageWidth)-fw) >= 100.0 || math.Abs(float64(s.imageHeight)-fh) >= 100.0 {
			s.warn("Calculated image size is %.1fx%.1fmm, EDID image size is %.1fx%.1fmm.\n",
				fw/10.0, fh/10.0, float64(s.imageWidth)/10.0, float64(s.imageHeight)/10.0)
		}
	} else {
		s.warn("No image size was specified, but it is calculated as %.1fx%.1fmm.\n", fw/10.0, fh/10.0)
	}
	if s.hasCTA && !s.cta.nvrdbHasSize && (fw > 25500 || fh > 25500) {
		s.warn("Calculated image width or height > 255 cm, recommend including an NVRDB with image size.\n")
	}
}

func (s *state) printNativeRes(agreed []Resolution, prog, ilace, nvrdb resolutionSet, defined bool) {
	if !defined {
		s.printf("%s\nNo Native Video Resolution was defined.\n", separator)
		return
	}
	if len(agreed) > 0 {
		s.printf("%s\nNative Video Resolution%s:\n", separator, boolStr(len(agreed) > 1, "s", ""))
		for _, r := range agreed {
			s.printf("  %s\n", r)
		}
		return
	}

	if p := s.base.preferredTiming; p.Valid() && s.base.preferredIsAlsoNative {
		s.printf("%s\nNative Video Resolution if only Block 0 is parsed:\n", separator)
		s.printf("  %s\n", Resolution{p.T.HAct, p.T.VAct, p.T.Interlaced})
	}
	if len(s.cta.nativeTimings) > 0 {
		s.printf("%s\nNative Video Resolution%s if Block 0 and CTA-861 Blocks are parsed:\n",
			separator, boolStr(len(prog)+len(ilace) > 1, "s", ""))
		for _, r := range prog.sorted() {
			s.printf("  %s\n", r)
		}
		for _, r := range ilace.sorted() {
			s.printf("  %s\n", r)
		}
	}
	if len(s.cta.nativeTimingNVRDB) > 0 {
		s.printf("%s\nNative Video Resolution if Block 0 and CTA-861 Blocks are parsed with NVRDB support:\n", separator)
		for _, r := range nvrdb.sorted() {
			s.printf("  %s\n", r)
		}
	}
	if s.dispid.nativeWidth != 0 {
		s.printf("%s\nNative Video Resolution if the DisplayID Blocks are parsed:\n", separator)
		s.printf("  %dx%d\n", s.dispid.nativeWidth, s.dispid.nativeHeight)
	}
}
