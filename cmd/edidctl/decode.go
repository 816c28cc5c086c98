package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"example.com/edidgate/internal/common"
	"example.com/edidgate/internal/edid"
	"example.com/edidgate/internal/report"
)

// decodeFlags are shared by decode and batch.
type decodeFlags struct {
	anonymize        bool
	diagonal         float64
	utf8             bool
	hideSerials      bool
	ntsc             bool
	shortTimings     bool
	longTimings      bool
	hexDump          bool
	preferredTimings bool
	nativeResolution bool
	lang             string
	patchLog         string

	logOnce sync.Once
	log     *common.PatchLog
}

func (f *decodeFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.anonymize, "anonymize", false, "replace serial numbers, manufacture dates and container IDs")
	fs.Float64Var(&f.diagonal, "diagonal", 0, "screen diagonal in inches for the image size checks")
	fs.BoolVar(&f.utf8, "utf8", false, "show non-ASCII descriptor characters")
	fs.BoolVar(&f.hideSerials, "hide-serial-numbers", false, "replace serial numbers with '...'")
	fs.BoolVar(&f.ntsc, "ntsc", false, "show 1000/1001 rates for timings that have them")
	fs.BoolVar(&f.shortTimings, "short-timings", false, "list timings on one line")
	fs.BoolVar(&f.longTimings, "long-timings", false, "list porch and sync details under each timing")
	fs.BoolVar(&f.hexDump, "hex", false, "start the listing with a hex dump")
	fs.BoolVar(&f.preferredTimings, "preferred-timings", false, "list the preferred timings of every block")
	fs.BoolVar(&f.nativeResolution, "native-resolution", false, "list the native resolutions")
	fs.StringVar(&f.lang, "lang", "en", "PDF report language (en|tr)")
	fs.StringVar(&f.patchLog, "patch-log", "", "append anonymization patches to this JSONL log")
}

func (f *decodeFlags) options(file string) (edid.Options, error) {
	if f.diagonal < 0 {
		return edid.Options{}, fmt.Errorf("--diagonal must not be negative")
	}
	return edid.Options{
		File:              file,
		Anonymize:         f.anonymize,
		Diagonal:          f.diagonal,
		UTF8:              f.utf8,
		HideSerialNumbers: f.hideSerials,
		NTSC:              f.ntsc,
		ShortTimings:      f.shortTimings,
		LongTimings:       f.longTimings,
		HexDump:           f.hexDump,
		PreferredTimings:  f.preferredTimings,
		NativeResolution:  f.nativeResolution,
	}, nil
}

func (f *decodeFlags) logPatches(res *edid.Result, ref string) error {
	if f.patchLog == "" || len(res.Patches) == 0 {
		return nil
	}
	f.logOnce.Do(func() { f.log = common.NewPatchLog(f.patchLog) })
	return f.log.Append(res.PatchEntries(ref, time.Now().UTC())...)
}

type decodeOutputs struct {
	diagnostics string
	acceptance  string
	pdf         string
	anonymized  string
}

// write stores the requested outputs of a decode.
func (o decodeOutputs) write(res *edid.Result, lang report.Language) error {
	if o.diagnostics != "" {
		if err := res.Log.WriteDiagnosticsNDJSON(o.diagnostics); err != nil {
			return fmt.Errorf("write diagnostics: %w", err)
		}
	}
	rep := res.Acceptance()
	if o.acceptance != "" {
		if err := report.SaveAcceptanceJSON(rep, o.acceptance); err != nil {
			return fmt.Errorf("write acceptance: %w", err)
		}
	}
	if o.pdf != "" {
		if err := report.SaveAcceptancePDF(rep, o.pdf, report.PDFOptions{Lang: lang}); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
	}
	if o.anonymized != "" {
		if err := os.WriteFile(o.anonymized, res.Data, 0o644); err != nil {
			return fmt.Errorf("write anonymized edid: %w", err)
		}
	}
	return nil
}

func readEDID(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return edid.ReadInput(cmd.InOrStdin())
	}
	return edid.ReadFile(path)
}

func newDecodeCmd() *cobra.Command {
	var (
		flags decodeFlags
		outs  decodeOutputs
		quiet bool
	)
	cmd := &cobra.Command{
		Use:   "decode <file|->",
		Short: "Decode an EDID, list its contents and check conformity",
		Long: "Decode reads a binary EDID or its hex dump, prints the listing, the\n" +
			"warnings and failures and the conformity verdict. It exits 1 when the\n" +
			"EDID does not conform.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := report.ParseLanguage(flags.lang)
			if err != nil {
				return err
			}
			data, err := readEDID(cmd, args[0])
			if err != nil {
				return err
			}
			name := args[0]
			if name != "-" {
				name = filepath.Base(name)
			}
			opts, err := flags.options(name)
			if err != nil {
				return err
			}
			res, err := edid.Decode(data, opts)
			if err != nil {
				return err
			}
			if err := flags.logPatches(res, name); err != nil {
				return fmt.Errorf("patch log: %w", err)
			}
			if err := outs.write(res, lang); err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res, quiet)
			if !res.Pass() {
				return errNonConforming
			}
			return nil
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&outs.diagnostics, "out", "", "write diagnostics as NDJSON")
	cmd.Flags().StringVar(&outs.acceptance, "acceptance", "", "write the acceptance report as JSON")
	cmd.Flags().StringVar(&outs.pdf, "pdf", "", "write the acceptance report as PDF")
	cmd.Flags().StringVar(&outs.anonymized, "write-anonymized", "", "write the anonymized EDID (with --anonymize)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the verdict")
	return cmd
}

func printResult(w io.Writer, res *edid.Result, quiet bool) {
	if quiet {
		fmt.Fprintf(w, "EDID conformity: %s\n", res.Verdict())
		return
	}
	io.WriteString(w, res.Report())
}
