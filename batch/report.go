package batch

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// Item is one row of a batch report.
type Item struct {
	Input          string  `csv:"input"`
	Output         string  `csv:"output"`
	Label          string  `csv:"label"`
	Codec          string  `csv:"codec"`
	OriginalSize   int64   `csv:"original_size"`
	CompressedSize int64   `csv:"compressed_size"`
	Ratio          float64 `csv:"ratio"`
	DurationMicros int64   `csv:"duration_us"`
	ContentID      string  `csv:"content_id"`
	DuplicateOf    string  `csv:"duplicate_of"`
	Error          string  `csv:"error"`
}

// Failed reports whether the item could not be processed.
func (i Item) Failed() bool {
	return i.Error != ""
}

// Duration returns the codec time spent on the item.
func (i Item) Duration() time.Duration {
	return time.Duration(i.DurationMicros) * time.Microsecond
}

// Report lists the outcome of every input in the order the inputs were
// given.
type Report struct {
	Mode  Mode
	Items []Item

	// Duplicates counts inputs whose content repeats an earlier input.
	Duplicates int

	// HashCollision is set when two inputs of different size shared a
	// content ID. They are still treated as distinct content.
	HashCollision bool
}

// Totals sums the sizes of successful items and counts the failures.
func (r *Report) Totals() (original, compressed int64, failed int) {
	for _, item := range r.Items {
		if item.Failed() {
			failed++
			continue
		}
		original += item.OriginalSize
		compressed += item.CompressedSize
	}

	return original, compressed, failed
}

// Ratio returns the overall compressed/original ratio of successful items,
// or 0 when nothing was processed.
func (r *Report) Ratio() float64 {
	original, compressed, _ := r.Totals()
	if original == 0 {
		return 0
	}

	return float64(compressed) / float64(original)
}

// WriteCSV writes the report with a header row.
func (r *Report) WriteCSV(w io.Writer) error {
	items := r.Items
	if items == nil {
		items = []Item{}
	}

	return gocsv.Marshal(&items, w)
}

// WriteCSVFile writes the report to path, replacing any existing file.
func (r *Report) WriteCSVFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()

	return r.WriteCSV(f)
}
