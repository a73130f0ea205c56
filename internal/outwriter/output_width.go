package outwriter

import (
	"os"

	"github.com/huangsam/partnerscore/internal/contract"
	"golang.org/x/term"
)

// Bounds for the flexible text column of a table.
const (
	minTextWidth = 12
	maxTextWidth = 48
)

// terminalWidth returns the width override, the detected terminal width or 80.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80 // CI and pipes
	}
	return detected
}

// getMaxTextWidth calculates how wide the flexible column of a table may be.
// fixedWidth is the space taken by every other column including borders.
func getMaxTextWidth(cfg *contract.Config, fixedWidth int) int {
	available := terminalWidth(cfg) - fixedWidth
	if available < minTextWidth {
		return minTextWidth
	}
	if available > maxTextWidth {
		return maxTextWidth
	}
	return available
}
