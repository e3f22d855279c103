package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseExportRowsCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"Wireless Number,Account Number,Total Current Charges",
		"2025550123,987,$1200.50",
		",,",
		"2025550124,988,$80.00,extra",
	}, "\n")

	rows, err := parseExportRows(".csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("parseExportRows: %v", err)
	}
	// The all-blank line stays at this layer; ingestion filters empty rows.
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	first := rows[0]
	if len(first) != 3 {
		t.Fatalf("len(first) = %d, want 3", len(first))
	}
	if first[0].Header != "Wireless Number" || first[0].Value != "2025550123" {
		t.Errorf("first cell = %+v", first[0])
	}
	if first[2].Header != "Total Current Charges" || first[2].Value != "$1200.50" {
		t.Errorf("third cell = %+v", first[2])
	}

	// A data row longer than the header row keeps the extra cell with a
	// blank header; normalization will skip it.
	last := rows[2]
	if len(last) != 4 {
		t.Fatalf("len(last) = %d, want 4", len(last))
	}
	if last[3].Header != "" || last[3].Value != "extra" {
		t.Errorf("overflow cell = %+v", last[3])
	}
}

func TestParseExportRowsXLSX(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	cells := [][]string{
		{"Wireless Number", "Account Number", "Monthly Charges"},
		{"2025550199", "VZ-1001", "1,234.56"},
	}
	for r, row := range cells {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := workbook.SetCellStr(sheet, cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	rows, err := parseExportRows(".xlsx", &buf)
	if err != nil {
		t.Fatalf("parseExportRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0][2].Header != "Monthly Charges" || rows[0][2].Value != "1,234.56" {
		t.Errorf("cell = %+v", rows[0][2])
	}
}

func TestParseExportRowsSkipsLeadingBlankLines(t *testing.T) {
	csvData := ",,\n,,\nA,B\n1,2\n"
	rows, err := parseExportRows(".csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("parseExportRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0][0].Header != "A" || rows[0][0].Value != "1" {
		t.Errorf("row = %+v", rows[0])
	}
}
