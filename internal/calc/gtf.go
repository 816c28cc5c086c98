package calc

import (
	"math"

	"example.com/edidgate/internal/timings"
)

// GTFParam selects which frequency the GTF input describes.
type GTFParam int

const (
	GTFVertFreq   GTFParam = iota // field rate in Hz
	GTFHorFreq                    // line rate in kHz
	GTFPixelClock                 // pixel clock in MHz
)

// Curve holds the GTF blanking formula parameters.
type Curve struct {
	C, M, K, J float64
}

// DefaultCurve is the default GTF curve.
var DefaultCurve = Curve{C: 40, M: 600, K: 128, J: 20}

// GTFOptions configures GTF.
type GTFOptions struct {
	Param      GTFParam
	Interlaced bool
	Margins    bool
	// Secondary selects the secondary curve given by Curve. The timing is
	// then tagged timings.RBGTF and uses +hsync -vsync.
	Secondary bool
	Curve     Curve
}

// GTF computes a Generalized Timing Formula timing. freq is interpreted
// according to opts.Param. A zero Curve selects DefaultCurve.
func GTF(hPixels, vLines int, freq float64, opts GTFOptions) (timings.Timings, error) {
	if err := checkInput(hPixels, vLines, freq); err != nil {
		return timings.Timings{}, err
	}
	c := opts.Curve
	if c == (Curve{}) {
		c = DefaultCurve
	}
	cPrime := ((c.C - c.J) * c.K / 256.0) + c.J
	mPrime := c.K / 256.0 * c.M

	hPixelsRnd := round(float64(hPixels)/cellGran) * cellGran
	vLinesRnd := float64(vLines)
	if opts.Interlaced {
		vLinesRnd = round(float64(vLines) / 2.0)
	}
	var horMargin, vertMargin float64
	if opts.Margins {
		horMargin = float64(uint(round(hPixelsRnd*marginPerc/100.0/cellGran) * cellGran))
		vertMargin = float64(uint(round(marginPerc / 100.0 * vLinesRnd)))
	}
	interlace := 0.0
	if opts.Interlaced {
		interlace = 0.5
	}
	totalActive := hPixelsRnd + horMargin*2

	blank := func(dutyCycle float64) float64 {
		return round(totalActive*dutyCycle/(100.0-dutyCycle)/(2*cellGran)) * 2 * cellGran
	}

	var pixelFreq, hBlank, totalPixels, vSyncBP float64
	switch opts.Param {
	case GTFVertFreq:
		vFieldRate := freq
		if opts.Interlaced {
			vFieldRate *= 2
		}
		hPeriodEst := ((1.0 / vFieldRate) - minVSyncBP/1000000.0) /
			(vLinesRnd + vertMargin*2 + gtfMinPorch + interlace) * 1000000.0
		vSyncBP = round(minVSyncBP / hPeriodEst)
		totalVLines := vLinesRnd + vertMargin*2 + vSyncBP + interlace + gtfMinPorch
		vFieldRateEst := 1.0 / hPeriodEst / totalVLines * 1000000.0
		hPeriod := hPeriodEst / (vFieldRate / vFieldRateEst)
		hBlank = blank(cPrime - (mPrime * hPeriod / 1000.0))
		totalPixels = totalActive + hBlank
		pixelFreq = totalPixels / hPeriod
	case GTFHorFreq:
		hFreq := freq
		vSyncBP = round(minVSyncBP * hFreq / 1000.0)
		hBlank = blank(cPrime - (mPrime / hFreq))
		totalPixels = totalActive + hBlank
		pixelFreq = totalPixels * hFreq / 1000.0
	default:
		pixelFreq = freq
		idealHPeriod := ((cPrime - 100.0) +
			math.Sqrt((100.0-cPrime)*(100.0-cPrime)+
				(0.4*mPrime*(totalActive+horMargin*2)/pixelFreq))) / 2.0 / mPrime * 1000.0
		hBlank = blank(cPrime - (mPrime*idealHPeriod)/1000.0)
		totalPixels = totalActive + hBlank
		hFreq := pixelFreq / totalPixels * 1000.0
		vSyncBP = round(minVSyncBP * hFreq / 1000.0)
	}

	t := timings.Timings{
		HAct:       int(hPixelsRnd),
		VAct:       vLines,
		Interlaced: opts.Interlaced,
		VBP:        int(vSyncBP - gtfVSyncRqd),
		VSync:      int(gtfVSyncRqd),
		VFP:        int(gtfMinPorch),
		PixclkKHz:  int(round(1000.0 * pixelFreq)),
		HSync:      int(round(hSyncPerc/100.0*totalPixels/cellGran) * cellGran),
		HBorder:    int(horMargin),
		VBorder:    int(vertMargin),
	}
	t.HFP = int(hBlank/2.0) - t.HSync
	t.HBP = t.HFP + t.HSync
	t.PosPolHSync = opts.Secondary
	t.PosPolVSync = !opts.Secondary
	if opts.Secondary {
		t.RB = timings.RBGTF
	}
	return t, nil
}
