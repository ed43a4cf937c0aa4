package outwriter

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cadencehq/cadence/internal/contract"
)

// LogImportHeader prints a concise, 2-line header for an import run.
func LogImportHeader(cfg *contract.Config) {
	inputName := filepath.Base(cfg.InputPath)
	if inputName == "" || inputName == "." {
		inputName = "current"
	}

	mode := "commit"
	if cfg.DryRun {
		mode = "dry-run"
	}

	// Line 1: The import summary (input and mode)
	fmt.Printf("🔎 Input: %s (Source: %s, Mode: %s)\n", inputName, cfg.Source, mode)

	// Line 2: The time zone applied to zoneless timestamps
	fmt.Printf("📅 Zone: %s\n", cfg.TimeZoneName)
}

// LogInsightsHeader prints a header for the insights report.
func LogInsightsHeader(cfg *contract.Config, generatedAt time.Time) {
	fmt.Printf("🔎 Insights window: %d weeks (Cadence default: %dd)\n", cfg.WindowWeeks, cfg.CadenceDays)
	fmt.Printf("📅 Generated: %s\n", generatedAt.Format(contract.DateTimeFormat))
}
