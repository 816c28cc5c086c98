// Package report writes EDID acceptance reports as JSON and PDF.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"example.com/edidgate/internal/diag"
)

func SaveAcceptanceJSON(rep diag.AcceptanceReport, out string) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0644)
}

func LoadAcceptanceJSON(path string) (diag.AcceptanceReport, error) {
	var rep diag.AcceptanceReport
	b, err := os.ReadFile(path)
	if err != nil {
		return rep, err
	}
	if err := json.Unmarshal(b, &rep); err != nil {
		return rep, fmt.Errorf("decode %s: %w", path, err)
	}
	return rep, nil
}
