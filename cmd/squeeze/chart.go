package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
)

// ratioRow is one line of the compare table.
type ratioRow struct {
	name  string
	ratio float64
}

// writeRatioChart renders rows as an SVG bar chart at path.
func writeRatioChart(path, title string, rows []ratioRow) (err error) {
	if len(rows) == 0 {
		return errors.New("chart: nothing to plot")
	}

	bars := make([]chart.Value, len(rows))
	for i, row := range rows {
		bars[i] = chart.Value{Label: row.name, Value: row.ratio}
	}

	graph := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      1024,
		Height:     512,
		BarWidth:   60,
		BarSpacing: 40,
		Bars:       bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("chart: %w", cerr)
		}
	}()

	if err := graph.Render(chart.SVG, f); err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	return nil
}
