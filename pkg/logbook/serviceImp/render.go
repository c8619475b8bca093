package serviceImp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"cuaderno/pkg/logbook/service"
)

// Text renders the report. Rows are numbered from 1 within each section.
func Text(rep *service.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CUADERNO DE EXPLOTACIÓN %d\n", rep.Year)
	fmt.Fprintf(&b, "Explotación: %s\n", rep.Holding)
	for _, sec := range rep.Sections {
		b.WriteString("\n")
		b.WriteString(sec.Title + "\n")
		b.WriteString(strings.Repeat("=", len([]rune(sec.Title))) + "\n")
		if sec.Flag != "" {
			b.WriteString(sec.Flag + "\n")
		}
		if sec.KeyValue {
			for _, r := range sec.Rows {
				fmt.Fprintf(&b, "%s: %s\n", r[0], r[1])
			}
			continue
		}
		if len(sec.Rows) == 0 {
			b.WriteString("- " + sec.Placeholder + "\n")
			continue
		}
		b.WriteString("Nº | " + strings.Join(sec.Columns, " | ") + "\n")
		for i, r := range sec.Rows {
			fmt.Fprintf(&b, "%d | %s\n", i+1, strings.Join(r, " | "))
		}
	}
	return b.String()
}

// Workbook writes one sheet per section in report order.
func Workbook(rep *service.Report) ([]byte, error) {
	x := excelize.NewFile()
	defer x.Close()

	for i, sec := range rep.Sections {
		if i == 0 {
			if err := x.SetSheetName("Sheet1", sec.Sheet); err != nil {
				return nil, err
			}
		} else if _, err := x.NewSheet(sec.Sheet); err != nil {
			return nil, err
		}
		row := 1
		put := func(vals []string) error {
			cellName, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			row++
			cells := make([]any, len(vals))
			for j, v := range vals {
				cells[j] = v
			}
			return x.SetSheetRow(sec.Sheet, cellName, &cells)
		}
		lines := [][]string{{sec.Title}}
		if sec.Flag != "" {
			lines = append(lines, []string{sec.Flag})
		}
		switch {
		case sec.KeyValue:
			lines = append(lines, sec.Columns)
			lines = append(lines, sec.Rows...)
		case len(sec.Rows) == 0:
			lines = append(lines, append([]string{"Nº"}, sec.Columns...), []string{sec.Placeholder})
		default:
			lines = append(lines, append([]string{"Nº"}, sec.Columns...))
			for n, r := range sec.Rows {
				lines = append(lines, append([]string{strconv.Itoa(n + 1)}, r...))
			}
		}
		for _, l := range lines {
			if err := put(l); err != nil {
				return nil, err
			}
		}
	}
	x.SetActiveSheet(0)
	var buf bytes.Buffer
	if _, err := x.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
