package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"example.com/edidgate/internal/common"
	"example.com/edidgate/internal/manifest"
	"example.com/edidgate/internal/report"
)

func newManifestCmd() *cobra.Command {
	var (
		inputs        []string
		out           string
		sign          bool
		keyPath, cert string
		jwsOut        string
	)
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write a SHA-256 inventory of EDIDs and reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var paths []string
			for _, p := range inputs {
				if p = strings.TrimSpace(p); p != "" {
					paths = append(paths, p)
				}
			}
			if len(paths) == 0 {
				return errors.New("required: --inputs")
			}
			m, err := manifest.Build(paths)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !sign {
				if err := manifest.Save(m, out); err != nil {
					return err
				}
				fmt.Fprintf(w, "Wrote manifest with %d item(s): %s\n", len(m.Items), out)
				return nil
			}
			if keyPath == "" || cert == "" {
				return errors.New("--sign requires --key and --cert")
			}
			keyPEM, err := os.ReadFile(keyPath)
			if err != nil {
				return fmt.Errorf("read key: %w", err)
			}
			certPEM, err := os.ReadFile(cert)
			if err != nil {
				return fmt.Errorf("read cert: %w", err)
			}
			sigPath := jwsOut
			if sigPath == "" {
				sigPath = strings.TrimSuffix(out, filepath.Ext(out)) + ".jws"
			}
			if err := manifest.SignAndSave(m, out, sigPath, keyPEM, certPEM); err != nil {
				return fmt.Errorf("manifest sign: %w", err)
			}
			fmt.Fprintf(w, "Wrote manifest with %d item(s): %s\n", len(m.Items), out)
			fmt.Fprintln(w, "Wrote signature", sigPath)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&inputs, "inputs", nil, "comma-separated paths")
	cmd.Flags().StringVar(&out, "out", "manifest.json", "output json")
	cmd.Flags().BoolVar(&sign, "sign", false, "sign the manifest (detached JWS)")
	cmd.Flags().StringVar(&keyPath, "key", "", "PEM RSA private key (with --sign)")
	cmd.Flags().StringVar(&cert, "cert", "", "PEM signer certificate (with --sign)")
	cmd.Flags().StringVar(&jwsOut, "jws-out", "", "signature file (defaults to the manifest path with .jws)")
	return cmd
}

func newVerifySignatureCmd() *cobra.Command {
	var manPath, jwsPath, certPath string
	cmd := &cobra.Command{
		Use:   "verify-signature",
		Short: "Verify the detached signature of a manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if manPath == "" || jwsPath == "" || certPath == "" {
				return errors.New("required: --manifest, --jws, --cert")
			}
			payload, err := os.ReadFile(manPath)
			if err != nil {
				return err
			}
			sig, err := os.ReadFile(jwsPath)
			if err != nil {
				return err
			}
			certPEM, err := os.ReadFile(certPath)
			if err != nil {
				return err
			}
			if err := manifest.Verify(payload, sig, certPEM); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signature OK")
			return nil
		},
	}
	cmd.Flags().StringVar(&manPath, "manifest", "", "manifest.json")
	cmd.Flags().StringVar(&jwsPath, "jws", "", "detached signature")
	cmd.Flags().StringVar(&certPath, "cert", "", "signer certificate (PEM)")
	return cmd
}

func newReportCmd() *cobra.Command {
	var accPath, pdfPath, lang string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render an acceptance report JSON as PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if accPath == "" || pdfPath == "" {
				return errors.New("required: --acceptance, --pdf")
			}
			l, err := report.ParseLanguage(lang)
			if err != nil {
				return err
			}
			rep, err := report.LoadAcceptanceJSON(accPath)
			if err != nil {
				return fmt.Errorf("load acceptance: %w", err)
			}
			if err := report.SaveAcceptancePDF(rep, pdfPath, report.PDFOptions{Lang: l}); err != nil {
				return fmt.Errorf("write pdf: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote PDF:", pdfPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&accPath, "acceptance", "", "acceptance_report.json")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "output acceptance report PDF")
	cmd.Flags().StringVar(&lang, "lang", "en", "report language (en|tr)")
	return cmd
}

func newUndoCmd() *cobra.Command {
	var in, patchLog, out, ref string
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Restore an anonymized EDID from its patch log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" || patchLog == "" || out == "" {
				return errors.New("required: --in, --patch-log, --out")
			}
			entries, err := common.ReadPatchLog(patchLog)
			if err != nil {
				return fmt.Errorf("read patch log: %w", err)
			}
			if ref != "" {
				var kept []common.PatchEntry
				for _, e := range entries {
					if e.Ref == ref {
						kept = append(kept, e)
					}
				}
				entries = kept
			}
			if len(entries) == 0 {
				return errors.New("patch log has no matching entries")
			}
			data, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			patchedHash := common.HashBytes(data)
			mismatches, err := common.Revert(data, entries)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Restored %d patch(es) to %s\n", len(entries), out)
			fmt.Fprintf(w, "Patched SHA256: %s\n", patchedHash)
			fmt.Fprintf(w, "Restored SHA256: %s\n", common.HashBytes(data))
			if mismatches > 0 {
				fmt.Fprintf(w, "Warning: %d patch(es) did not match the anonymized bytes; original bytes reapplied regardless.\n", mismatches)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "anonymized EDID (binary)")
	cmd.Flags().StringVar(&patchLog, "patch-log", "", "patch log (jsonl)")
	cmd.Flags().StringVar(&out, "out", "", "restored output file")
	cmd.Flags().StringVar(&ref, "ref", "", "only revert entries recorded for this input name")
	return cmd
}
