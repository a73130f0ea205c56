package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/partnerscore/schema"
)

// Tier label constants.
const (
	ExcellentValue  = schema.TierExcellent  // Excellent value
	StrongValue     = schema.TierStrong     // Strong value
	DevelopingValue = schema.TierDeveloping // Developing value
	AtRiskValue     = schema.TierAtRisk     // At risk value
)

// Color variables for console output.
var (
	ExcellentColor  = color.New(color.FgGreen, color.Bold) // ExcellentColor represents a top performer.
	StrongColor     = color.New(color.FgCyan, color.Bold)  // StrongColor represents a healthy partner.
	DevelopingColor = color.New(color.FgYellow)            // DevelopingColor represents standard caution, not bold.
	AtRiskColor     = color.New(color.FgRed)               // AtRiskColor represents a partner needing attention.
)

// GetPlainLabel returns a plain text tier label based on the scorecard percentage.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(percentage float64) string {
	return schema.GetPlainLabel(percentage)
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(percentage float64) string {
	text := GetPlainLabel(percentage)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case DevelopingValue:
		return DevelopingColor.Sprint(text)
	default: // "At Risk"
		return AtRiskColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
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

// GetDBFilePath returns the path to the default SQLite DB file.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".partnerscore.db"
	}
	return filepath.Join(homeDir, ".partnerscore.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
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

// ParseAssignment splits a "key=value" argument.
func ParseAssignment(arg string) (string, string, error) {
	key, value, ok := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", arg)
	}
	return key, value, nil
}
