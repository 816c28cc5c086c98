package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"example.com/edidgate/internal/diag"
)

// PDFOptions controls PDF rendering.
type PDFOptions struct {
	Lang Language
	// Now stamps the report. Defaults to time.Now.
	Now func() time.Time
}

// The core fonts only cover cp1252; these Turkish letters fall back to
// their base letter.
var cp1252Fallback = strings.NewReplacer("ğ", "g", "Ğ", "G", "ş", "s", "Ş", "S", "ı", "i", "İ", "I")

type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  Translator
	enc func(string) string
}

func (w *pdfWriter) text(s string) string {
	return w.enc(cp1252Fallback.Replace(s))
}

// SaveAcceptancePDF renders the given acceptance report into a PDF document.
func SaveAcceptancePDF(rep diag.AcceptanceReport, out string, opts PDFOptions) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	w := &pdfWriter{
		pdf: pdf,
		tr:  NewTranslator(opts.Lang),
		enc: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	pdf.SetTitle(w.text(w.tr.T("title")), false)
	pdf.SetAuthor("edidctl", false)
	pdf.SetCreator("edidctl", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	w.title(now())
	w.summary(rep)
	w.gateMatrix(rep.GateMatrix)
	w.findings(rep.Findings)

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(out)
}

func (w *pdfWriter) title(ts time.Time) {
	w.pdf.SetFont("Helvetica", "B", 18)
	w.pdf.Cell(0, 10, w.text(w.tr.T("title")))
	w.pdf.Ln(10)
	w.pdf.SetFont("Helvetica", "", 9)
	w.pdf.Cell(0, 5, w.text(w.tr.Format("generated", ts.UTC().Format(time.RFC3339))))
	w.pdf.Ln(8)
}

func (w *pdfWriter) summary(rep diag.AcceptanceReport) {
	pdf := w.pdf
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, w.text(w.tr.T("summary")))
	pdf.Ln(8)

	top := pdf.GetY()
	pdf.SetFont("Helvetica", "", 11)
	items := []struct {
		label string
		value string
	}{
		{w.tr.T("file"), emptyFallback(rep.File, "-")},
		{w.tr.T("total"), strconv.Itoa(rep.Summary.Total)},
		{w.tr.T("errors"), strconv.Itoa(rep.Summary.Errors)},
		{w.tr.T("warnings"), strconv.Itoa(rep.Summary.Warnings)},
		{w.tr.T("overall"), w.tr.Verdict(rep.Summary.Pass)},
	}
	for _, item := range items {
		pdf.CellFormat(50, 6, w.text(item.label), "", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, w.text(item.value), "", 1, "L", false, 0, "")
	}
	if rep.Sha256 != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(50, 5, w.text(w.tr.T("sha256")), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, rep.Sha256, "", 1, "L", false, 0, "")
		w.qr(rep.Sha256, top)
	}
	pdf.Ln(4)
}

// qr places a QR code of the document hash at the right of the summary.
func (w *pdfWriter) qr(hash string, top float64) {
	png, err := HashToQR(hash, 256)
	if err != nil {
		w.pdf.SetError(err)
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	w.pdf.RegisterImageOptionsReader("sha256-qr", opts, bytes.NewReader(png))
	_, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	w.pdf.ImageOptions("sha256-qr", pageW-right-30, top, 30, 30, false, opts, 0, "")
	if y := top + 32; w.pdf.GetY() < y {
		w.pdf.SetY(y)
	}
}

func (w *pdfWriter) gateMatrix(rows []diag.GateRow) {
	pdf := w.pdf
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, w.text(w.tr.T("gateMatrix")))
	pdf.Ln(9)

	headers := []string{w.tr.T("block"), w.tr.T("name"), w.tr.T("errors"), w.tr.T("warnings"), w.tr.T("overall")}
	widths := []float64{16, 88, 24, 24, 28}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, w.text(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		block := strconv.Itoa(row.Block)
		name := row.Name
		if row.Block == diag.GlobalBlock {
			block = "-"
			name = w.tr.T("global")
		}
		values := []string{
			block,
			emptyFallback(name, "-"),
			strconv.Itoa(row.Errors),
			strconv.Itoa(row.Warnings),
			w.tr.Verdict(row.Pass),
		}
		w.tableRow(widths, values, 5.0)
	}
	pdf.Ln(4)
}

func (w *pdfWriter) findings(findings []diag.Diagnostic) {
	pdf := w.pdf
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, w.text(w.tr.T("findings")))
	pdf.Ln(9)

	if len(findings) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, w.text(w.tr.T("noFindings")), "", "L", false)
		return
	}

	for i, d := range findings {
		pdf.SetFont("Helvetica", "B", 10)
		header := fmt.Sprintf("%d. %s (%s)", i+1, w.location(d), w.tr.Severity(d.Severity))
		pdf.MultiCell(0, 5, w.text(header), "", "L", false)

		if msg := strings.TrimSpace(d.Message); msg != "" {
			pdf.SetFont("Courier", "", 9)
			pdf.MultiCell(0, 4, w.text(msg), "", "L", false)
		}
		pdf.Ln(2)
	}
}

func (w *pdfWriter) location(d diag.Diagnostic) string {
	loc := d.BlockName
	if d.Block == diag.GlobalBlock || loc == "" {
		loc = w.tr.T("global")
	} else {
		loc = fmt.Sprintf("%s %d, %s", w.tr.T("block"), d.Block, loc)
	}
	if d.DataBlock != "" {
		loc += ": " + d.DataBlock
	}
	return loc
}

func (w *pdfWriter) tableRow(widths []float64, values []string, lineHeight float64) {
	pdf := w.pdf
	xStart := pdf.GetX()
	yStart := pdf.GetY()
	maxLines := 1
	splitCols := make([][]string, len(values))
	for i, val := range values {
		text := measurable(cp1252Fallback.Replace(strings.TrimSpace(val)))
		if text == "" {
			text = "-"
		}
		lines := pdf.SplitText(text, widths[i]-2)
		if len(lines) == 0 {
			lines = []string{""}
		}
		for j, line := range lines {
			lines[j] = w.enc(line)
		}
		splitCols[i] = lines
		maxLines = max(maxLines, len(lines))
	}
	x := xStart
	for i, lines := range splitCols {
		pdf.SetXY(x, yStart)
		pdf.MultiCell(widths[i], lineHeight, strings.Join(lines, "\n"), "1", "L", false)
		x += widths[i]
	}
	pdf.SetXY(xStart, yStart+float64(maxLines)*lineHeight)
}

// measurable replaces runes outside the core font width tables so that
// SplitText can measure s. SplitText works on UTF-8, so the cp1252
// translation happens per line afterwards.
func measurable(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xff {
			return '?'
		}
		return r
	}, s)
}

func emptyFallback(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
