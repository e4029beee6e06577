package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/victornm/pollquiz/internal/domain"
)

const (
	SheetStandings = "Standings"
	SheetSummary   = "Summary"
)

var standingsHeader = []any{"Rank", "Participant", "Username", "Correct", "Incorrect", "Total", "Percentage", "Completion (s)", "Dropped"}

// WriteXLSX writes the scoreboard as a workbook: a standings sheet in rank order and a summary
// sheet with the correct and incorrect totals charted as a pie.
func WriteXLSX(w io.Writer, sb domain.Scoreboard) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetStandings); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeStandings(f, sb); err != nil {
		return err
	}

	if err := writeSummary(f, sb); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func writeStandings(f *excelize.File, sb domain.Scoreboard) error {
	sw, err := f.NewStreamWriter(SheetStandings)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	if err := sw.SetRow("A1", standingsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range sb.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		dropped := "No"
		if r.Dropped {
			dropped = "Yes"
		}

		row := []any{
			r.Rank,
			sanitizeForExcel(r.DisplayName()),
			sanitizeForExcel(r.Username),
			r.Correct,
			r.Incorrect,
			r.Total,
			r.Percentage.InexactFloat64(),
			r.CompletionSeconds(),
			dropped,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush standings: %w", err)
	}

	return nil
}

func writeSummary(f *excelize.File, sb domain.Scoreboard) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	correct, incorrect := Totals(sb)
	rows := [][]any{
		{"Answers", "Count"},
		{"Correct", correct},
		{"Incorrect", incorrect},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &r); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if correct+incorrect == 0 {
		return nil
	}

	err := f.AddChart(SheetSummary, "D2", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       SheetSummary + "!$A$1",
			Categories: SheetSummary + "!$A$2:$A$3",
			Values:     SheetSummary + "!$B$2:$B$3",
		}},
		Title: []excelize.RichTextRun{{Text: "Answers"}},
	})
	if err != nil {
		return fmt.Errorf("add summary chart: %w", err)
	}

	return nil
}

// Totals sums correct and incorrect answers over all results.
func Totals(sb domain.Scoreboard) (correct, incorrect int) {
	for _, r := range sb.Results {
		correct += r.Correct
		incorrect += r.Incorrect
	}
	return correct, incorrect
}

// sanitizeForExcel escapes values that a spreadsheet would read as a formula.
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
