package calc

import (
	"math"

	"example.com/edidgate/internal/timings"
)

const (
	cvtMinVPorch      = 3
	cvtMinVBPorch     = 7 // CVT and RBv1
	cvtFixedVBPorch   = 6 // RBv2 and RBv3
	cvtCPrime         = 30.0
	cvtMPrime         = 300.0
	cvtRBMinVBlank    = 460.0
	cvtRBAltMinVBlank = 300.0
)

// CVTOptions configures CVT.
type CVTOptions struct {
	// RB is the reduced blanking version, RBNone through RBCVTv3.
	RB         timings.RB
	Interlaced bool
	Margins    bool
	// Alt selects the video-optimized 1000/1001 rates for RBv2 and a
	// 160 pixel horizontal blank for RBv3.
	Alt bool
	// RBHBlank and RBVBlank override the RBv3 blanking. RBVBlank is in
	// microseconds.
	RBHBlank   int
	RBVBlank   int
	EarlyVSync bool
}

// CVT computes a Coordinated Video Timings timing.
func CVT(hPixels, vLines int, refresh float64, opts CVTOptions) (timings.Timings, error) {
	if err := checkInput(hPixels, vLines, refresh); err != nil {
		return timings.Timings{}, err
	}
	rb := opts.RB.Base()
	t := timings.Timings{HAct: hPixels, VAct: vLines, Interlaced: opts.Interlaced}

	rbVBlank := float64(opts.RBVBlank)
	if rb == timings.RBCVTv3 {
		switch {
		case rbVBlank < cvtRBAltMinVBlank:
			rbVBlank = cvtRBAltMinVBlank
		case rbVBlank > cvtRBAltMinVBlank+140 && rbVBlank < cvtRBMinVBlank:
			rbVBlank = cvtRBMinVBlank
		case rbVBlank > cvtRBMinVBlank+460:
			rbVBlank = cvtRBMinVBlank + 460
		}
	}

	gran := cellGran
	if rb == timings.RBCVTv2 {
		gran = 1
	}
	hPixelsRnd := math.Floor(float64(hPixels)/gran) * gran
	vLinesRnd := float64(vLines)
	if opts.Interlaced {
		vLinesRnd = math.Floor(float64(vLines) / 2.0)
	}
	var horMargin, vertMargin float64
	if opts.Margins {
		horMargin = float64(uint(math.Floor((hPixelsRnd*marginPerc/100.0)/gran) * gran))
		vertMargin = float64(uint(math.Floor(marginPerc / 100.0 * vLinesRnd)))
	}
	interlace := 0.0
	if opts.Interlaced {
		interlace = 0.5
	}
	totalActive := hPixelsRnd + horMargin*2
	vFieldRate := refresh
	if opts.Interlaced {
		vFieldRate *= 2
	}
	clockStep := 0.25
	if rb >= timings.RBCVTv2 {
		clockStep = 0.001
	}
	hBlank := 80.0
	if rb == timings.RBCVTv1 || (rb == timings.RBCVTv3 && opts.Alt) {
		hBlank = 160
	}
	rbVFPorch := 1.0
	if rb == timings.RBCVTv1 {
		rbVFPorch = 3
	}
	refreshMultiplier := 1.0
	if rb == timings.RBCVTv2 && opts.Alt {
		refreshMultiplier = 1000.0 / 1001.0
	}
	rbMinVBlank := cvtRBMinVBlank
	if rb == timings.RBCVTv3 {
		rbMinVBlank = rbVBlank
	}
	hSync := 32.0

	if rb == timings.RBCVTv3 && opts.RBHBlank != 0 {
		hBlank = float64(opts.RBHBlank &^ 7)
		if hBlank < 80 {
			hBlank = 80
		} else if hBlank > 200 {
			hBlank = 200
		}
	}

	vSync := float64(vsyncForAspect(vLines, hPixels))
	if rb >= timings.RBCVTv2 {
		vSync = 8
	}

	var pixelFreq, vBlank, vSyncBP float64
	if rb == timings.RBNone {
		hPeriodEst := ((1.0 / vFieldRate) - minVSyncBP/1000000.0) /
			(vLinesRnd + vertMargin*2 + cvtMinVPorch + interlace) * 1000000.0
		vSyncBP = math.Floor(minVSyncBP/hPeriodEst) + 1
		if vSyncBP < vSync+cvtMinVBPorch {
			vSyncBP = vSync + cvtMinVBPorch
		}
		vBlank = vSyncBP + cvtMinVPorch
		dutyCycle := cvtCPrime - (cvtMPrime * hPeriodEst / 1000.0)
		if dutyCycle < 20 {
			dutyCycle = 20
		}
		hBlank = math.Floor(totalActive*dutyCycle/(100.0-dutyCycle)/(2*cellGran)) * 2 * cellGran
		totalPixels := totalActive + hBlank
		hSync = math.Floor(totalPixels*0.08/cellGran) * cellGran
		pixelFreq = math.Floor((totalPixels/hPeriodEst)/clockStep) * clockStep
	} else {
		hPeriodEst := ((1000000.0 / vFieldRate) - rbMinVBlank) / (vLinesRnd + vertMargin*2)
		vbiLines := math.Floor(rbMinVBlank/hPeriodEst) + 1
		rbVBPorch := float64(cvtFixedVBPorch)
		if rb == timings.RBCVTv1 {
			rbVBPorch = cvtMinVBPorch
		}
		rbMinVBI := rbVFPorch + vSync + rbVBPorch
		vBlank = vbiLines
		if vbiLines < rbMinVBI {
			vBlank = rbMinVBI
		}
		totalVLines := vBlank + vLinesRnd + vertMargin*2 + interlace
		if rb == timings.RBCVTv3 && opts.EarlyVSync {
			rbVBPorch = math.Floor(vbiLines / 2.0)
			if vBlank-rbVBPorch-vSync < rbVFPorch {
				rbVBPorch = vBlank - vSync - rbVFPorch
			}
		}
		if rb == timings.RBCVTv1 {
			vSyncBP = vBlank - rbVFPorch
		} else {
			vSyncBP = vSync + rbVBPorch
		}
		totalPixels := hBlank + totalActive
		freq := vFieldRate * totalVLines * totalPixels * refreshMultiplier
		if rb == timings.RBCVTv3 {
			pixelFreq = math.Ceil((freq/1000000.0)/clockStep) * clockStep
		} else {
			pixelFreq = math.Floor((freq/1000000.0)/clockStep) * clockStep
		}
	}

	t.VBP = int(vSyncBP - vSync)
	t.VSync = int(vSync)
	t.VFP = int(vBlank) - t.VBP - t.VSync
	t.PixclkKHz = int(round(1000.0 * pixelFreq))
	t.HSync = int(hSync)
	if rb >= timings.RBCVTv2 {
		t.HFP = 8
	} else {
		t.HFP = int(hBlank/2.0) - t.HSync
	}
	t.HBP = int(hBlank) - t.HFP - t.HSync
	t.HBorder = int(horMargin)
	t.VBorder = int(vertMargin)
	t.RB = rb
	if opts.Alt && (rb == timings.RBCVTv2 || rb == timings.RBCVTv3) {
		t.RB |= timings.RBAlt
	}
	t.PosPolHSync = t.RB != timings.RBNone
	t.PosPolVSync = t.RB == timings.RBNone
	timings.CalcRatio(&t)
	return t, nil
}

// vsyncForAspect returns the CVT vertical sync width for the aspect ratio
// of the active area.
func vsyncForAspect(vact, hact int) int {
	switch {
	case vact*4/3 == hact:
		return 4
	case vact*16/9 == hact:
		return 5
	case vact*16/10 == hact:
		return 6
	case vact%4 == 0 && vact*5/4 == hact:
		return 7
	case vact*15/9 == hact:
		return 7
	}
	return 10
}
