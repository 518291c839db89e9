package formatter

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/view"
)

// csvFormatter formats the recent prices table as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(vm *view.ViewModel) ([]byte, error) {
	var b strings.Builder
	writer := csv.NewWriter(&b)

	if err := writer.Write(vm.Prices.Headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range vm.Prices.Rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return []byte(b.String()), nil
}
