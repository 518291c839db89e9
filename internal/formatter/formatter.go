// Package formatter renders a view.ViewModel for non-interactive output.
package formatter

import (
	"fmt"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/view"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(vm *view.ViewModel) ([]byte, error)
}

// New returns the formatter for the given format name
func New(format string) (Formatter, error) {
	switch format {
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	case "text", "":
		return NewText(), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
