package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"example.com/edidgate/internal/diag"
)

func sampleReport() diag.AcceptanceReport {
	l := diag.NewLog("panel.bin")
	l.SetClock(func() time.Time { return time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC) })
	l.Add(diag.Diagnostic{Block: 0, BlockName: "Base EDID", DataBlock: "Detailed Timing Descriptors", Severity: diag.WARN, Message: "Missing Display Product Name.\n"})
	l.Add(diag.Diagnostic{Block: 1, BlockName: "CTA-861 Extension Block", Severity: diag.ERROR, Message: "Invalid CTA-861 Extension revision 0.\n"})
	rep := l.MakeAcceptance([]string{"Base EDID", "CTA-861 Extension Block"})
	rep.Sha256 = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	return rep
}

func TestAcceptanceJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acceptance.json")
	rep := sampleReport()
	if err := SaveAcceptanceJSON(rep, path); err != nil {
		t.Fatalf("SaveAcceptanceJSON: %v", err)
	}
	back, err := LoadAcceptanceJSON(path)
	if err != nil {
		t.Fatalf("LoadAcceptanceJSON: %v", err)
	}
	if back.File != "panel.bin" || back.Sha256 != rep.Sha256 || back.Summary.Pass || back.Summary.Errors != 1 {
		t.Fatalf("loaded %+v", back)
	}
	if len(back.GateMatrix) != 3 || back.GateMatrix[1].Pass {
		t.Fatalf("gate matrix %+v", back.GateMatrix)
	}
}

func TestSaveAcceptancePDF(t *testing.T) {
	for _, lang := range []Language{LangEnglish, LangTurkish} {
		path := filepath.Join(t.TempDir(), "report-"+string(lang)+".pdf")
		if err := SaveAcceptancePDF(sampleReport(), path, PDFOptions{Lang: lang}); err != nil {
			t.Fatalf("%s: SaveAcceptancePDF: %v", lang, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			t.Fatalf("%s: output is not a PDF", lang)
		}
	}
}

func TestSaveAcceptancePDFNonASCIITable(t *testing.T) {
	rep := sampleReport()
	rep.GateMatrix[1].Name = "Çözünürlük Ölçüsü ▯ Ğüşİ"
	rep.Findings[0].Message = "Ekran adı eksik: Ç ▯\n"
	for _, lang := range []Language{LangEnglish, LangTurkish} {
		path := filepath.Join(t.TempDir(), "table-"+string(lang)+".pdf")
		if err := SaveAcceptancePDF(rep, path, PDFOptions{Lang: lang}); err != nil {
			t.Fatalf("%s: SaveAcceptancePDF: %v", lang, err)
		}
	}
}

func TestMeasurable(t *testing.T) {
	if got := measurable("GEÇTİ ▯"); got != "GEÇT? ?" {
		t.Fatalf("measurable = %q", got)
	}
}

func TestHashToQR(t *testing.T) {
	png, err := HashToQR("  ab:cd ", 64)
	if err != nil {
		t.Fatalf("HashToQR: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("not a PNG")
	}
	if _, err := HashToQR("xyz", 64); err == nil {
		t.Fatalf("expected an error for a hash without hex digits")
	}
}

func TestTranslator(t *testing.T) {
	tr := NewTranslator(LangTurkish)
	if tr.Verdict(true) != "GEÇTİ" || tr.Severity(diag.ERROR) != "Hata" {
		t.Fatalf("turkish labels %q %q", tr.Verdict(true), tr.Severity(diag.ERROR))
	}
	if NewTranslator("xx").Lang() != LangEnglish {
		t.Fatalf("unknown language did not fall back to English")
	}
	if _, err := ParseLanguage("de"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("ParseLanguage(de) = %v", err)
	}
}
