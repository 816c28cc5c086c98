package calc

import (
	"fmt"
	"math"

	"example.com/edidgate/internal/timings"
)

const (
	ovtMinVBlankDuration  = 460
	ovtMinVBlankLines     = 20
	ovtMinVSyncLeadEdge   = 400
	ovtMinVSyncLELines    = 14
	ovtMinClockRate420    = 590000000
	ovtPixelFactor420     = 2
	ovtMinHBlank444       = 80
	ovtMinHBlank420       = 128
	ovtPixelClockGran     = 1000
	ovtMinHTotalGran      = 8
	ovtMaxChunkRate       = 650000000
	ovtAudioPacketRate    = 195000
	ovtAudioPacketSize    = 32
	ovtLineOverhead       = 32
	ovtMaxPowerOfTwoInput = 0x80000000
)

func roundupPowerOfTwo(v uint64) (uint64, error) {
	if v == 0 || v > ovtMaxPowerOfTwoInput {
		return 0, fmt.Errorf("%w: cannot round %d up to a power of two", ErrInvalidInput, v)
	}
	p := uint64(1)
	for p < v {
		p <<= 1
	}
	return p, nil
}

func greatestPowerOfTwoDivider(x uint64) uint64 { return x & -x }

func maxU(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// OVT computes a CTA-861 Optimized Video Timing for an active area and
// integer frame rate. When hratio or vratio is 0 the picture aspect ratio
// is derived from the active area.
func OVT(hActive, vActive, hRatio, vRatio, vRate int) (timings.Timings, error) {
	if err := checkInput(hActive, vActive, float64(vRate)); err != nil {
		return timings.Timings{}, err
	}
	t := timings.Timings{HAct: hActive, VAct: vActive, HRatio: hRatio, VRatio: vRatio}

	// Step 1: the rate family defines the base rate and vtotal granularity.
	maxVRate := uint64(vRate)
	vTotalGran := uint64(1)
	switch vRate {
	case 24, 25, 30:
		maxVRate, vTotalGran = 30, 20
	case 48, 50, 60:
		maxVRate, vTotalGran = 60, 20
	case 100, 120:
		maxVRate, vTotalGran = 120, 5
	case 200, 240:
		maxVRate, vTotalGran = 240, 5
	case 300, 360:
		maxVRate, vTotalGran = 360, 5
	case 400, 480:
		maxVRate, vTotalGran = 480, 5
	}
	hAct := uint64(hActive)
	vAct := uint64(vActive)

	// Step 2
	maxActiveTime := (1000000.0 / float64(maxVRate)) - ovtMinVBlankDuration
	minLineTime := maxActiveTime / float64(vActive)
	minVBlank := maxU(ovtMinVBlankLines, uint64(math.Ceil(ovtMinVBlankDuration/minLineTime)))
	minVTotal := vAct + minVBlank
	if minVTotal%vTotalGran != 0 {
		minVTotal += vTotalGran - minVTotal%vTotalGran
	}

	// Step 3
	minLineRate := maxVRate * minVTotal
	maxAudioPacketsPerLine := uint64(math.Ceil(float64(ovtAudioPacketRate) / float64(minLineRate)))

	// Step 4
	minHTotal := hAct + maxU(ovtMinHBlank444, ovtLineOverhead+ovtAudioPacketSize*maxAudioPacketsPerLine)
	minPixelClockRate := float64(maxVRate) * float64(minHTotal) * float64(minVTotal)
	hCalcGran, err := roundupPowerOfTwo(uint64(math.Ceil(minPixelClockRate / ovtMaxChunkRate)))
	if err != nil {
		return timings.Timings{}, err
	}
	hTotalGran := maxU(ovtMinHTotalGran, hCalcGran)
	if minHTotal%hTotalGran != 0 {
		minHTotal += hTotalGran - minHTotal%hTotalGran
	}

	resolutionGran := uint64(ovtPixelClockGran / timings.GCD(ovtPixelClockGran, int(maxVRate)))
	var hTotal, vTotal, pixelClockRate uint64

	for {
		// Step 5: search for the smallest htotal * vtotal product.
		var rMin uint64
		for v := minVTotal; ; v += vTotalGran {
			h := minHTotal
			r := h * v
			if rMin != 0 && r > rMin {
				break
			}
			for r%resolutionGran != 0 || maxVRate*r/greatestPowerOfTwoDivider(h) > ovtMaxChunkRate {
				h += hTotalGran
				r = h * v
			}
			if rMin == 0 || r < rMin {
				hTotal, vTotal, rMin = h, v, r
			}
		}
		pixelClockRate = maxVRate * rMin

		// Step 6: 4:2:0 capable rates need a wider horizontal blank.
		minHTotal = hAct + maxU(ovtMinHBlank420,
			ovtPixelFactor420*(ovtLineOverhead+ovtAudioPacketSize*maxAudioPacketsPerLine))
		if pixelClockRate >= ovtMinClockRate420 && hTotal < minHTotal {
			continue
		}
		break
	}

	// Step 7
	vTotal = vTotal * maxVRate / uint64(vRate)

	// Step 8
	vBlank := vTotal - vAct
	vSyncPosition := maxU(ovtMinVSyncLELines,
		uint64(math.Ceil(float64(ovtMinVSyncLeadEdge)*float64(pixelClockRate)/(1000000.0*float64(hTotal)))))
	t.VFP = int(vBlank) - int(vSyncPosition)
	t.VSync = 8
	t.VBP = int(vBlank) - t.VFP - t.VSync
	t.PosPolVSync = true
	hBlank := int(hTotal - hAct)
	t.HSync = 32
	t.HBP = 32
	t.HFP = hBlank - t.HSync - t.HBP
	t.PosPolHSync = true
	t.PixclkKHz = int(pixelClockRate / 1000)
	if t.HRatio == 0 || t.VRatio == 0 {
		timings.CalcRatio(&t)
	}
	return t, nil
}
