// Package edid decodes EDID documents (the base block and its CTA-861,
// DisplayID, VTB-EXT, LS-EXT and Block Map extensions) and checks them
// for conformance. Every decode produces a human-readable listing and a
// diagnostics log; only an unusable buffer is a Go error.
package edid

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"example.com/edidgate/internal/common"
	"example.com/edidgate/internal/diag"
	"example.com/edidgate/internal/timings"
)

var (
	// ErrLength is returned when the input is empty, is not a multiple of
	// 128 bytes or holds more than 256 blocks.
	ErrLength = errors.New("edid: length is not a positive multiple of 128 bytes of at most 256 blocks")
	// ErrMagic is returned when block 0 does not start with the EDID
	// header.
	ErrMagic = errors.New("edid: missing 00 ff ff ff ff ff ff 00 header")
)

var magic = []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}

// Options controls a decode.
type Options struct {
	// File labels the diagnostics.
	File string
	// Anonymize replaces serial numbers, manufacture dates and container
	// IDs before decoding.
	Anonymize bool
	// UTF8 converts non-ASCII descriptor characters instead of showing
	// them as '.'.
	UTF8              bool
	HideSerialNumbers bool
	// Diagonal is the screen diagonal in inches; 0 disables the image
	// size hint checks.
	Diagonal         float64
	NTSC             bool
	ShortTimings     bool
	LongTimings      bool
	HexDump          bool
	PreferredTimings bool
	NativeResolution bool
	// Now stamps diagnostics and anchors the manufacture date checks.
	// Defaults to time.Now.
	Now func() time.Time
	// Sink, if set, receives every diagnostic as it is raised.
	Sink func(diag.Diagnostic)
}

// Result is the outcome of a decode.
type Result struct {
	// Data is the decoded document, anonymized when requested.
	Data    []byte
	Patches []Patch
	// Blocks holds the name of every block, indexed by block number.
	Blocks  []string
	Listing string
	Log     *diag.Log

	PreferredTimings []timings.Ext
	Native           []Resolution
}

// Pass reports whether the document has no conformance failures.
func (r *Result) Pass() bool { return r.Log.Pass() }

// Verdict returns "PASS" or "FAIL".
func (r *Result) Verdict() string {
	if r.Pass() {
		return "PASS"
	}
	return "FAIL"
}

// Acceptance summarizes the diagnostics per block. The report carries the
// SHA-256 of the decoded bytes.
func (r *Result) Acceptance() diag.AcceptanceReport {
	rep := r.Log.MakeAcceptance(r.Blocks)
	rep.Sha256 = common.HashBytes(r.Data)
	return rep
}

// Report renders the listing followed by the warning and failure sections
// and the conformity verdict.
func (r *Result) Report() string {
	var b strings.Builder
	b.WriteString(r.Listing)
	b.WriteString(r.Log.Section(diag.WARN))
	b.WriteString(r.Log.Section(diag.ERROR))
	fmt.Fprintf(&b, "\nEDID conformity: %s\n", r.Verdict())
	return b.String()
}

// CheckLayout reports whether data is a whole number of blocks starting
// with the EDID header, the minimum Decode needs to produce a listing.
func CheckLayout(data []byte) error {
	if len(data) == 0 || len(data)%pageSize != 0 || len(data)/pageSize > maxBlocks {
		return fmt.Errorf("%w: got %d bytes", ErrLength, len(data))
	}
	if !bytes.Equal(data[:len(magic)], magic) {
		return ErrMagic
	}
	return nil
}

// Decode decodes and checks the EDID document in data. The input is
// never modified.
func Decode(data []byte, opts Options) (*Result, error) {
	if err := CheckLayout(data); err != nil {
		return nil, err
	}

	res := &Result{Data: bytes.Clone(data)}
	if opts.Anonymize {
		res.Data, res.Patches = Anonymize(data)
	}
	log := diag.NewLog(opts.File)
	log.SetClock(opts.Now)
	log.SetSink(opts.Sink)
	res.Log = log

	s := newState(opts, log)
	s.data = res.Data
	s.numBlocks = len(s.data) / pageSize
	s.blockNames = make([]string, s.numBlocks)
	for i := range s.blockNames {
		tag := s.page(i)[0]
		s.blockNames[i] = BlockName(tag)
		if i > 0 && tag == 0 {
			s.blockNames[i] = "Unknown EDID Extension Block 0x00"
		}
	}
	res.Blocks = s.blockNames

	s.preparse()

	if opts.HexDump {
		s.printf("edid-decode (hex):\n\n")
		for i := 0; i < s.numBlocks; i++ {
			s.hexBlock("", s.page(i), false, 16)
			s.printf("\n")
		}
		s.printf("----------------\n\n")
		if s.diagonal != 0 {
			s.printf("Diagonal: %.1f\"\n\n----------------\n\n", s.diagonal)
		}
	}

	s.block = BlockName(TagBase)
	s.printf("Block %d, %s:\n", s.blockNr, s.block)
	s.parseBaseBlock(s.page(0))
	for i := 1; i < s.numBlocks; i++ {
		s.blockNr++
		s.out.WriteString(separator)
		s.parseExtension(s.page(i))
	}

	s.block = ""
	s.blockNr = diag.GlobalBlock
	if s.cta.hasSVRs {
		s.ctaResolveSVRs()
	}
	if opts.PreferredTimings {
		s.printPreferredTimings()
	}
	res.Native = s.nativeRes()

	s.checkBaseBlock(s.page(0))
	if s.hasCTA {
		s.checkCTABlocks()
	}
	if s.hasDispID {
		s.checkDisplayIDBlocks()
	}
	s.out.WriteString(separator)

	res.PreferredTimings = s.preferredTimings()
	res.Listing = s.out.String()
	return res, nil
}

func (s *state) page(i int) []byte {
	return s.data[i*pageSize : (i+1)*pageSize]
}

// preparse scans every block for the facts later blocks refer to. It
// never records diagnostics.
func (s *state) preparse() {
	s.quiet = true
	defer func() { s.quiet = false }()
	s.preparseBaseBlock(s.page(0))
	for i := 1; i < s.numBlocks; i++ {
		s.preparseExtension(s.page(i))
	}
}

// preferredTimings lists the resolved preferred timings of every block,
// base block first.
func (s *state) preferredTimings() []timings.Ext {
	var out []timings.Ext
	if s.base.preferredTiming.Valid() {
		out = append(out, s.base.preferredTiming)
	}
	for _, vec := range [][]timings.Ext{s.cta.preferredTimings, s.cta.preferredTimingsVFP, s.dispid.preferredTimings} {
		for _, e := range vec {
			if !e.HasSVR() {
				out = append(out, e)
			}
		}
	}
	return out
}
