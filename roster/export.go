package roster

import (
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"
	"roster-app-go/models"
)

// SheetName is the worksheet holding exported records
const SheetName = "Roster"

var exportHeader = []interface{}{"NIM", "Nama", "Kelas", "Points"}

// WriteWorkbook writes records as an XLSX workbook, one row per record after a header row
func WriteWorkbook(w io.Writer, records []models.RosterRecord) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.NIM, r.Nama, r.Kelas, r.Points.Display()}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
