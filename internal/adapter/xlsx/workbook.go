// Package xlsx exports filtered airport view rows as an Excel workbook.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
)

// SheetName is the name of the single sheet written by Write.
const SheetName = "Airport Delays"

// ContentType is the media type of the written workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Columns are the header cells, in order.
var Columns = []string{
	"year", "month", "airport", "airport_name", "city", "carrier_name",
	"arr_flights", "arr_del15", "arr_delay", "delay_rate", "season",
}

// row returns the cell values of a record. A missing delay is a nil cell.
func row(r *domain.FlightDelayRecord) []any {
	var delay any = r.ArrivalDelayMinutes
	if r.DelayMinutesMissing {
		delay = nil
	}
	return []any{
		r.Year, r.Month, r.AirportCode, r.AirportName, r.City, r.CarrierName,
		r.ArrivalFlights, r.ArrivalDelayed15, delay, r.DelayRate, string(r.Season),
	}
}

// Write renders the records as a workbook with a bold header row.
func Write(w io.Writer, records []domain.FlightDelayRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, name := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return fmt.Errorf("write header %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i := range records {
		for col, v := range row(&records[i]) {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
