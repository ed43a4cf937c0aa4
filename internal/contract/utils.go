package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cadencehq/cadence/schema"
	"github.com/fatih/color"
)

// Attention label constants.
const (
	NeverMetValue = "Never met" // no meeting on record at all
	OverdueValue  = "Overdue"   // past twice the configured cadence
	DueValue      = "Due"       // past the configured cadence
	OnTrackValue  = "On track"  // within cadence
)

// Color variables for console output.
var (
	NeverMetColor = color.New(color.FgRed, color.Bold)     // strongest signal: relationship never started
	OverdueColor  = color.New(color.FgMagenta, color.Bold) // strong, distinct warning
	DueColor      = color.New(color.FgYellow)              // standard caution, not bold
	OnTrackColor  = color.New(color.FgCyan)                // informational
)

// GetPlainAttentionLabel returns a plain text label for a needs-attention
// entry. This is the core logic used for JSON and table printing.
func GetPlainAttentionLabel(e schema.AttentionEntry) string {
	switch {
	case e.DaysSinceLastMeeting == schema.NeverMet:
		return NeverMetValue
	case e.CadenceDays > 0 && e.DaysSinceLastMeeting >= 2*e.CadenceDays:
		return OverdueValue
	case e.CadenceDays > 0 && e.DaysSinceLastMeeting > e.CadenceDays:
		return DueValue
	default:
		return OnTrackValue
	}
}

// GetColorAttentionLabel returns a colored label for console output (table).
// It uses GetPlainAttentionLabel to determine the string, then applies the
// appropriate color.
func GetColorAttentionLabel(e schema.AttentionEntry) string {
	text := GetPlainAttentionLabel(e)

	switch text {
	case NeverMetValue:
		return NeverMetColor.Sprint(text)
	case OverdueValue:
		return OverdueColor.Sprint(text)
	case DueValue:
		return DueColor.Sprint(text)
	default: // "On track"
		return OnTrackColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the
// meeting store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cadence.db"
	}
	return filepath.Join(homeDir, ".cadence.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// TruncateText truncates a string to a maximum width with an ellipsis
// suffix. Requires maxWidth > 3 so there is room for the ellipsis and at
// least one character of content.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
