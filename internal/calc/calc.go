// Package calc synthesizes video timings from a resolution and refresh rate
// using the VESA CVT and GTF formulas and the CTA-861 OVT algorithm.
//
// All calculators are deterministic and reproduce the reference arithmetic
// to the last kHz, since the decoder compares their output against timings
// stored in EDIDs.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"example.com/edidgate/internal/timings"
)

// ErrInvalidInput is returned for zero or negative resolutions and rates.
var ErrInvalidInput = errors.New("invalid calculator input")

const (
	cellGran    = 8.0
	marginPerc  = 1.8
	minVSyncBP  = 550.0
	hSyncPerc   = 8.0
	gtfMinPorch = 1.0
	gtfVSyncRqd = 3.0
)

func checkInput(h, v int, rate float64) error {
	if h <= 0 || v <= 0 || rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: %dx%d@%g", ErrInvalidInput, h, v, rate)
	}
	return nil
}

// round matches C round(): halfway cases away from zero.
func round(x float64) float64 { return math.Round(x) }

// ParseGTFParam maps "vert", "hor" and "clk" to a GTFParam.
func ParseGTFParam(s string) (GTFParam, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vert", "v", "vfreq":
		return GTFVertFreq, nil
	case "hor", "h", "hfreq":
		return GTFHorFreq, nil
	case "clk", "clock", "pixclk":
		return GTFPixelClock, nil
	}
	return GTFVertFreq, fmt.Errorf("%w: unknown GTF parameter %q", ErrInvalidInput, s)
}

// CVTReducedBlanking returns the RB variant for a CVT reduced blanking
// version in the range 0 to 3.
func CVTReducedBlanking(version int) (timings.RB, error) {
	if version < 0 || version > int(timings.RBCVTv3) {
		return timings.RBNone, fmt.Errorf("%w: reduced blanking version %d", ErrInvalidInput, version)
	}
	return timings.RB(version), nil
}
