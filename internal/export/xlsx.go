package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sctr/internal/report"
	"sctr/internal/util"
)

const (
	SheetPolicies = "Pólizas"
	SheetPeople   = "Personas"
	SheetText     = "Texto"

	// cellChunk stays under Excel's 32767 character cell limit.
	cellChunk = 32000
)

// WorkbookXLSX lays a rendered report out as a workbook: one row per policy field,
// one row per insured person, and the extracted text split across rows.
func WorkbookXLSX(r report.Report, extractedText string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPolicies); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetPeople, SheetText} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	policies := [][]any{{"Póliza", "Número de póliza", "Grupo", "Campo", "Valor"}}
	people := [][]any{{"Póliza", "Número de póliza", report.ColumnName, report.ColumnDocument, report.ColumnCoverageStart}}
	for _, card := range r.Policies {
		number := ""
		if card.HasPolicyNumber {
			number = card.PolicyNumber
		}
		for _, g := range []report.Group{card.General, card.Validity} {
			for _, row := range g.Rows {
				policies = append(policies, []any{card.Title, number, g.Title, row.Label, cellText(row.Value)})
			}
		}
		if card.Insured != nil {
			for _, p := range card.Insured.Rows {
				people = append(people, []any{card.Title, number, p.Name, p.Document, p.CoverageStart})
			}
		}
	}

	text := [][]any{{report.LabelExtractedText}}
	for _, part := range util.SplitRunes(extractedText, cellChunk) {
		text = append(text, []any{part})
	}

	if err := writeRows(f, SheetPolicies, policies); err != nil {
		return nil, err
	}
	if err := writeRows(f, SheetPeople, people); err != nil {
		return nil, err
	}
	if err := writeRows(f, SheetText, text); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(SheetPolicies, "A", "B", 16)
	_ = f.SetColWidth(SheetPolicies, "C", "D", 24)
	_ = f.SetColWidth(SheetPolicies, "E", "E", 48)
	_ = f.SetColWidth(SheetPeople, "A", "B", 16)
	_ = f.SetColWidth(SheetPeople, "C", "C", 36)
	_ = f.SetColWidth(SheetPeople, "D", "E", 18)
	_ = f.SetColWidth(SheetText, "A", "A", 120)
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// cellText flattens a person table to names; the full table is on the people sheet.
func cellText(d report.Display) string {
	if !d.IsTable() {
		return d.Text
	}
	out := ""
	for i, p := range d.People {
		if i > 0 {
			out += ", "
		}
		out += p.Name
	}
	return out
}
