package edid

import (
	"fmt"
	"strings"
	"time"

	"example.com/edidgate/internal/diag"
	"example.com/edidgate/internal/timings"
)

const (
	pageSize  = 128
	maxBlocks = 256
)

type imageSizeKind int

const (
	imageSizeNone imageSizeKind = iota
	imageSizeRatio
	imageSizeRounded
	imageSize5cm
)

// vfd is a decoded Video Format Descriptor.
type vfd struct {
	rid      int
	frFactor int
	bfr50    bool
	fr24     bool
	bfr60    bool
	fr144    bool
	fr48     bool
}

type baseState struct {
	edidMinor                 int
	hasNameDescriptor         bool
	hasDisplayRangeDescriptor bool
	serialNumber              uint32
	week, year                int
	isAnalog                  bool
	supportsContinuousFreq    bool
	supportsGTF               bool
	supportsSecGTF            bool
	secGTFStartFreq           int
	c, m, k, j                float64
	supportsCVT               bool
	hasSPWG                   bool
	usesSRGB                  bool
	detailedBlockCnt          int
	dtdCnt                    int
	seenNonDetailedDescriptor bool
	has640x480p60EstTiming    bool
	preferredIsAlsoNative     bool
	preferredTiming           timings.Ext

	minDisplayHorFreqHz  int
	maxDisplayHorFreqHz  int
	minDisplayVertFreqHz int
	maxDisplayVertFreqHz int
	maxDisplayPixclkKHz  int
	maxDisplayWidthMM    int
	maxDisplayHeightMM   int
	maxPosNegHorFreqKHz  float64
}

type ctaState struct {
	preparsedTotalDTDs  int
	vecDTDs             []timings.Ext
	preparsedTotalVTDBs int
	vecVTDBs            []timings.Ext
	preparsedFirstVFD   vfd
	preferredTimings    []timings.Ext
	preferredTimingsVFP []timings.Ext
	preparsedHasT8VTDB  bool
	preparsedT8VTDBDMT  int
	// tag | oui<<12, or ext tag | tag<<8 | oui<<12
	foundTags                []int
	t8vtdb                   timings.Ext
	nativeTimings            []timings.Ext
	nativeTimingNVRDB        []timings.Ext
	imageWidth               int // 0.1 mm
	imageHeight              int
	nvrdbHasSize             bool
	hasVIC1                  bool
	firstSVDMightBePreferred bool
	byte3                    byte
	hasHDMI                  bool
	hdmiMaxRate              int
	hasVCDB                  bool
	hasVFPDB                 bool
	hasNVRDB                 bool
	hasCDB                   bool
	preparsedSpeakerCount    int
	preparsedSLDHasCoord     bool
	preparsedSLD             bool
	hasSLDB                  bool
	hasPIDB                  bool
	preparsedPhysAddr        int
	previousCTATag           int
	haveHFVSDB, haveHFSCDB   bool
	hfEEODBBlocks            int
	blockNumber              int
	hasSVRs                  bool
	firstSVD                 bool
	supportedHDMIVICCodes    int
	supportedHDMIVICVSBCodes int
	vics                     [256][2]int
	preparsedHasVIC          [2][256]bool
	preparsedSVDs            [2][]byte
	preparsedMaxVICPixclkKHz int
	preparsedImageSize       imageSizeKind
	warnAboutHDMI2xDTD       bool
	aviVersion               int
	aviV4Length              int
	hasYCbCr444              bool
	hasYCbCr422              bool
	hasYCbCr420              bool
	firstCTA                 bool
}

type dispidState struct {
	version                     int
	preparsedColorIDs           int
	preparsedXferIDs            int
	preparsedDisplayIDBlocks    int
	isBaseBlock                 bool
	isDisplay                   bool
	isARVR                      bool
	hasProductIdentification    bool
	hasDisplayParameters        bool
	hasType17                   bool
	hasDisplayInterfaceFeatures bool
	hasTiledDisplayTopology     bool
	hasStereoDisplayInterface   bool
	hasARVRHDM                  bool
	hasARVRLayer                bool
	hasYCbCr420                 bool
	hasStereo                   bool
	preferredTimings            []timings.Ext
	nativeWidth, nativeHeight   int
	imageWidth, imageHeight     int // 0.1 mm
	blockNumber                 int
	foundTags                   []int
}

// state is the validation state of a single decode. It is owned by the
// decoder for the duration of one Decode call.
type state struct {
	opts Options
	log  *diag.Log
	out  strings.Builder

	data       []byte
	numBlocks  int
	blockNr    int
	block      string
	dataBlock  string
	blockNames []string

	unusedBytes       int
	hasCTA, hasDispID bool
	serialStrings     []string

	minHorFreqHz  int
	maxHorFreqHz  int
	minVertFreqHz float64
	maxVertFreqHz float64
	maxPixclkKHz  int
	dtdMaxHSizeMM int
	dtdMaxVSizeMM int

	imageWidth, imageHeight int // 0.1 mm
	diagonal                float64

	shown map[string]bool
	// quiet suppresses diagnostics while preparsing.
	quiet bool

	base     baseState
	cta      ctaState
	dispid   dispidState
	blockMap struct{ saw1, saw128 bool }
}

func newState(opts Options, log *diag.Log) *state {
	s := &state{
		opts:          opts,
		log:           log,
		minHorFreqHz:  0xffffff,
		minVertFreqHz: 0xffffffff,
		diagonal:      opts.Diagonal,
		shown:         map[string]bool{},
	}
	s.cta.previousCTATag = 0xfff
	s.cta.firstSVD = true
	s.cta.firstCTA = true
	s.cta.preparsedPhysAddr = 0xffff
	s.cta.aviVersion = 2
	s.cta.aviV4Length = 14
	s.dispid.isBaseBlock = true
	return s
}

func (s *state) now() time.Time {
	if s.opts.Now != nil {
		return s.opts.Now()
	}
	return time.Now()
}

func (s *state) printf(format string, args ...any) {
	fmt.Fprintf(&s.out, format, args...)
}

func (s *state) msg(sev diag.Severity, format string, args ...any) {
	if s.quiet {
		return
	}
	name := s.block
	if s.blockNr < len(s.blockNames) {
		name = s.blockNames[s.blockNr]
	}
	s.log.Add(diag.Diagnostic{
		Block:     s.blockNr,
		BlockName: name,
		DataBlock: s.dataBlock,
		Severity:  sev,
		Message:   fmt.Sprintf(format, args...),
	})
}

func (s *state) fail(format string, args ...any) { s.msg(diag.ERROR, format, args...) }
func (s *state) warn(format string, args ...any) { s.msg(diag.WARN, format, args...) }

// warnOnce emits a warning the first time its format string is seen in
// this decode.
func (s *state) warnOnce(format string, args ...any) {
	if s.shown[format] {
		return
	}
	s.shown[format] = true
	s.warn(format, args...)
}

// dtdType labels the cnt'th detailed timing, padded to the width of the
// total DTD count.
func (s *state) dtdType(cnt int) string {
	w := len(fmt.Sprint(s.cta.preparsedTotalDTDs))
	return fmt.Sprintf("DTD %*d", w, cnt)
}

func boolStr(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
