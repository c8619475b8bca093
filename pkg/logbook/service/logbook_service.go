package service

import "context"

// Section is one block of the annual logbook. Rows are already formatted
// cell values; Flag is an optional line printed under the title.
type Section struct {
	Title   string
	Sheet   string
	Flag    string
	Columns []string
	Rows    [][]string
	// KeyValue sections print "label: value" lines instead of numbered rows.
	KeyValue bool
	// Placeholder is printed when Rows is empty.
	Placeholder string
}

// Report is the whole logbook for one year.
type Report struct {
	Year     int
	Holding  string
	Sections []Section
}

type Service interface {
	Build(ctx context.Context, year int) (*Report, error)
	// Generate renders the logbook as text.
	Generate(ctx context.Context, year int) (string, error)
	// ExportXLSX writes the logbook as a workbook with one sheet per section.
	ExportXLSX(ctx context.Context, year int) ([]byte, error)
}
