package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"example.com/edidgate/internal/common"
	"example.com/edidgate/internal/edid"
	"example.com/edidgate/internal/manifest"
	"example.com/edidgate/internal/report"
)

var edidExts = map[string]bool{".bin": true, ".edid": true, ".raw": true, ".hex": true, ".txt": true}

type batchResult struct {
	rel      string
	verdict  string
	errors   int
	warnings int
	err      error
	outputs  []string
}

func findEDIDs(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && edidExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

func newBatchCmd() *cobra.Command {
	var (
		flags       decodeFlags
		outDir      string
		pdf         bool
		progress    bool
		concurrency int
		withMan     bool
	)
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Decode every EDID below a directory",
		Long: "Batch decodes every .bin, .edid, .raw, .hex and .txt file below <dir>\n" +
			"and writes the listing, diagnostics and acceptance report of each into\n" +
			"--out-dir. It exits 1 when any EDID does not conform.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := report.ParseLanguage(flags.lang)
			if err != nil {
				return err
			}
			files, err := findEDIDs(args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no EDID files below %s", args[0])
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			if concurrency <= 0 {
				concurrency = runtime.NumCPU()
			}

			metrics := common.NewMetrics()
			metrics.SetTotal(int64(len(files)))
			metrics.Start()
			stop := func() {}
			if progress {
				stop = common.StartProgressPrinter(cmd.ErrOrStderr(), metrics, 500*time.Millisecond)
			}

			results := make([]batchResult, len(files))
			jobs := make(chan int)
			var wg sync.WaitGroup
			for w := 0; w < concurrency; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range jobs {
						results[i] = decodeOne(args[0], files[i], outDir, &flags, pdf, lang, metrics)
					}
				}()
			}
			for i := range files {
				jobs <- i
			}
			close(jobs)
			wg.Wait()
			stop()
			metrics.Stop()

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tVERDICT\tERRORS\tWARNINGS")
			failed := false
			var produced []string
			for _, r := range results {
				if r.err != nil {
					failed = true
					fmt.Fprintf(tw, "%s\tERROR\t-\t-\t%v\n", r.rel, r.err)
					continue
				}
				if r.verdict != "PASS" {
					failed = true
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.rel, r.verdict, r.errors, r.warnings)
				produced = append(produced, r.outputs...)
			}
			tw.Flush()

			snap := metrics.Snapshot()
			fmt.Fprintf(out, "Decoded %d of %d file(s), %d passed, %s in %s\n",
				snap.Documents, snap.Total, snap.Passed, common.FormatBytes(snap.Bytes),
				snap.Duration.Round(time.Millisecond))

			if withMan && len(produced) > 0 {
				m, err := manifest.Build(produced)
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, "manifest.json")
				if err := manifest.Save(m, path); err != nil {
					return err
				}
				fmt.Fprintln(out, "Wrote manifest:", path)
			}
			if failed {
				return errNonConforming
			}
			return nil
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&outDir, "out-dir", "out", "results directory")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "also render a PDF acceptance report per file")
	cmd.Flags().BoolVar(&progress, "progress", false, "display progress on stderr")
	cmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "files decoded in parallel")
	cmd.Flags().BoolVar(&withMan, "manifest", false, "write a SHA-256 manifest of the outputs")
	return cmd
}

// decodeOne decodes path and writes its outputs under outDir, named after
// the path relative to root.
func decodeOne(root, path, outDir string, flags *decodeFlags, pdf bool, lang report.Language, metrics *common.Metrics) batchResult {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	r := batchResult{rel: rel}
	data, err := edid.ReadFile(path)
	if err == nil {
		var opts edid.Options
		if opts, err = flags.options(rel); err == nil {
			var res *edid.Result
			if res, err = edid.Decode(data, opts); err == nil {
				metrics.AddDecode(int64(len(res.Data)), res.Log.Failures(), res.Log.Warnings())
				r.verdict = res.Verdict()
				r.errors = res.Log.Failures()
				r.warnings = res.Log.Warnings()
				r.outputs, err = writeBatchOutputs(res, rel, outDir, flags, pdf, lang)
				return r.withErr(err)
			}
		}
	}
	metrics.AddRejected()
	return r.withErr(err)
}

func (r batchResult) withErr(err error) batchResult {
	r.err = err
	return r
}

func writeBatchOutputs(res *edid.Result, rel, outDir string, flags *decodeFlags, pdf bool, lang report.Language) ([]string, error) {
	stem := filepath.Join(outDir, strings.ReplaceAll(strings.TrimSuffix(rel, filepath.Ext(rel)), string(filepath.Separator), "_"))
	outs := decodeOutputs{
		diagnostics: stem + ".diagnostics.ndjson",
		acceptance:  stem + ".acceptance.json",
	}
	if pdf {
		outs.pdf = stem + ".acceptance.pdf"
	}
	if len(res.Patches) > 0 {
		outs.anonymized = stem + ".anonymized.bin"
	}
	if err := outs.write(res, lang); err != nil {
		return nil, err
	}
	listing := stem + ".txt"
	if err := os.WriteFile(listing, []byte(res.Report()), 0o644); err != nil {
		return nil, err
	}
	if err := flags.logPatches(res, rel); err != nil {
		return nil, fmt.Errorf("patch log: %w", err)
	}
	produced := []string{listing, outs.diagnostics, outs.acceptance}
	for _, p := range []string{outs.pdf, outs.anonymized} {
		if p != "" {
			produced = append(produced, p)
		}
	}
	return produced, nil
}
