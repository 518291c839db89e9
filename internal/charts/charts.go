// Package charts writes decoded chart images to disk. The terminal cannot
// rasterize the backend's PNGs, so file output is the display surface.
package charts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/view"
)

// WriteAll saves every chart under dir as <name>.png and returns the written paths
func WriteAll(dir string, chartList []view.Chart) ([]string, error) {
	if len(chartList) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create charts directory: %w", err)
	}

	paths := make([]string, 0, len(chartList))
	for _, chart := range chartList {
		path := filepath.Join(dir, chart.Name+".png")
		if err := os.WriteFile(path, chart.PNG, 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}
