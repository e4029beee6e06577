package questions

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/victornm/pollquiz/internal/domain"
)

const SheetQuestions = "Questions"

// WriteXLSX writes qs in the layout readXLSX reads: a header row, then question, correct answer
// and alternatives. Source rows are not kept, a reloaded pool numbers rows by sheet position.
func WriteXLSX(w io.Writer, qs []domain.Question) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetQuestions); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetQuestions)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	if err := sw.SetRow("A1", header(qs)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, q := range qs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []any{q.Prompt, q.CorrectAnswer}
		for _, o := range q.Options {
			if o != q.CorrectAnswer {
				row = append(row, o)
			}
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush questions: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func header(qs []domain.Question) []any {
	alternatives := 0
	for _, q := range qs {
		alternatives = max(alternatives, len(q.Options)-1)
	}

	h := []any{"Question", "Correct answer"}
	for i := 1; i <= alternatives; i++ {
		h = append(h, "Alternative "+strconv.Itoa(i))
	}
	return h
}
