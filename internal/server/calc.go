package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"example.com/edidgate/internal/calc"
	"example.com/edidgate/internal/timings"
)

// TimingView is the JSON form of a timing.
type TimingView struct {
	Type          string  `json:"type,omitempty"`
	HActive       int     `json:"hActive"`
	VActive       int     `json:"vActive"`
	Interlaced    bool    `json:"interlaced,omitempty"`
	HRatio        int     `json:"hRatio,omitempty"`
	VRatio        int     `json:"vRatio,omitempty"`
	PixelClockKHz int     `json:"pixelClockKHz"`
	RefreshHz     float64 `json:"refreshHz"`
	HorFreqKHz    float64 `json:"horFreqKHz"`
	HFrontPorch   int     `json:"hFrontPorch"`
	HSync         int     `json:"hSync"`
	HBackPorch    int     `json:"hBackPorch"`
	HSyncPositive bool    `json:"hSyncPositive"`
	VFrontPorch   int     `json:"vFrontPorch"`
	VSync         int     `json:"vSync"`
	VBackPorch    int     `json:"vBackPorch"`
	VSyncPositive bool    `json:"vSyncPositive"`
	HBorder       int     `json:"hBorder,omitempty"`
	VBorder       int     `json:"vBorder,omitempty"`
	RB            string  `json:"reducedBlanking,omitempty"`
	Line          string  `json:"line"`
}

func newTimingView(t timings.Timings, typ, flags string) TimingView {
	return TimingView{
		Type:          typ,
		HActive:       t.HAct,
		VActive:       t.VAct,
		Interlaced:    t.Interlaced,
		HRatio:        t.HRatio,
		VRatio:        t.VRatio,
		PixelClockKHz: t.PixclkKHz,
		RefreshHz:     t.RefreshHz(),
		HorFreqKHz:    t.HorFreqKHz(),
		HFrontPorch:   t.HFP,
		HSync:         t.HSync,
		HBackPorch:    t.HBP,
		HSyncPositive: t.PosPolHSync,
		VFrontPorch:   t.VFP,
		VSync:         t.VSync,
		VBackPorch:    t.VBP,
		VSyncPositive: t.PosPolVSync,
		HBorder:       t.HBorder,
		VBorder:       t.VBorder,
		RB:            t.RB.Label(),
		Line:          timings.FormatLine("", t, typ, flags, false),
	}
}

type cvtRequest struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Refresh    float64 `json:"refresh"`
	RB         int     `json:"rb"`
	Interlaced bool    `json:"interlaced"`
	Margins    bool    `json:"margins"`
	Alt        bool    `json:"alt"`
	HBlank     int     `json:"hblank"`
	VBlank     int     `json:"vblank"`
	EarlyVSync bool    `json:"earlyVSync"`
}

type gtfRequest struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Freq       float64 `json:"freq"`
	Param      string  `json:"param"`
	Interlaced bool    `json:"interlaced"`
	Margins    bool    `json:"margins"`
	Secondary  bool    `json:"secondary"`
	C          float64 `json:"c"`
	M          float64 `json:"m"`
	K          float64 `json:"k"`
	J          float64 `json:"j"`
}

type ovtRequest struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	Refresh int `json:"refresh"`
	HRatio  int `json:"hRatio"`
	VRatio  int `json:"vRatio"`
}

// handleCalc serves /calc/cvt, /calc/gtf and /calc/ovt.
func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	kind := strings.Trim(strings.TrimPrefix(r.URL.Path, "/calc"), "/")
	var (
		t   timings.Timings
		err error
	)
	switch kind {
	case "cvt":
		var req cvtRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
			return
		}
		t, err = calcCVT(req)
	case "gtf":
		var req gtfRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
			return
		}
		t, err = calcGTF(req)
	case "ovt":
		var req ovtRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
			return
		}
		t, err = calc.OVT(req.Width, req.Height, req.HRatio, req.VRatio, req.Refresh)
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calc.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, newTimingView(t, strings.ToUpper(kind), ""))
}

func calcCVT(req cvtRequest) (timings.Timings, error) {
	rb, err := calc.CVTReducedBlanking(req.RB)
	if err != nil {
		return timings.Timings{}, err
	}
	return calc.CVT(req.Width, req.Height, req.Refresh, calc.CVTOptions{
		RB:         rb,
		Interlaced: req.Interlaced,
		Margins:    req.Margins,
		Alt:        req.Alt,
		RBHBlank:   req.HBlank,
		RBVBlank:   req.VBlank,
		EarlyVSync: req.EarlyVSync,
	})
}

func calcGTF(req gtfRequest) (timings.Timings, error) {
	param, err := calc.ParseGTFParam(req.Param)
	if err != nil {
		return timings.Timings{}, err
	}
	opts := calc.GTFOptions{
		Param:      param,
		Interlaced: req.Interlaced,
		Margins:    req.Margins,
		Secondary:  req.Secondary,
	}
	if req.Secondary {
		opts.Curve = calc.Curve{C: req.C, M: req.M, K: req.K, J: req.J}
	}
	return calc.GTF(req.Width, req.Height, req.Freq, opts)
}
