package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	specs "github.com/chrisconley/chargerate/specs"
)

const (
	summarySheet = "summary"
	periodsSheet = "periods"
)

// BuildCdrPDF renders a minimal PDF statement for a CDR.
func BuildCdrPDF(cdr specs.CdrSpec) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Charge Detail Record")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("CDR: %s", cdr.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Session: %s", cdr.SessionID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Operator: %s-%s", cdr.CountryCode, cdr.PartyID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Start: %s", cdr.StartDateTime.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("End: %s", cdr.EndDateTime.Format(time.RFC3339)))
	pdf.Ln(5)
	if cdr.CdrToken.UID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Token: %s (%s)", cdr.CdrToken.UID, cdr.CdrToken.Type))
		pdf.Ln(5)
	}

	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("Total Energy (kWh): %.3f", cdr.TotalEnergy))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Time (h): %.3f", cdr.TotalTime))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Parking Time (h): %.3f", cdr.TotalParkingTime))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Cost excl. VAT (%s): %.2f", cdr.Currency, cdr.TotalCostExclVat))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Cost (%s): %.2f", cdr.Currency, cdr.TotalCost))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 6, "Period Start", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Tariff", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Dimension", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Volume", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, period := range cdr.ChargingPeriods {
		for _, dim := range period.Dimensions {
			pdf.CellFormat(50, 6, period.StartDateTime.Format(time.RFC3339), "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, period.TariffID, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, dim.Type, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.4f", dim.Volume), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildCdrXLSX renders a workbook with a summary sheet and one row per charging
// period dimension.
func BuildCdrXLSX(cdr specs.CdrSpec) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(periodsSheet); err != nil {
		return nil, err
	}

	summary := [][2]any{
		{"CDR", cdr.ID},
		{"Session", cdr.SessionID},
		{"Country", cdr.CountryCode},
		{"Party", cdr.PartyID},
		{"Start", cdr.StartDateTime.Format(time.RFC3339)},
		{"End", cdr.EndDateTime.Format(time.RFC3339)},
		{"Currency", cdr.Currency},
		{"Total Energy (kWh)", cdr.TotalEnergy},
		{"Total Energy Cost", cdr.TotalEnergyCost},
		{"Total Time (h)", cdr.TotalTime},
		{"Total Time Cost", cdr.TotalTimeCost},
		{"Total Parking Time (h)", cdr.TotalParkingTime},
		{"Total Parking Cost", cdr.TotalParkingCost},
		{"Total Fixed Cost", cdr.TotalFixedCost},
		{"Total Cost excl. VAT", cdr.TotalCostExclVat},
		{"Total Cost", cdr.TotalCost},
	}
	_ = f.SetCellValue(summarySheet, "A1", "Charge Detail Record")
	for i, row := range summary {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+3), row[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+3), row[1])
	}

	_ = f.SetCellValue(periodsSheet, "A1", "Period Start")
	_ = f.SetCellValue(periodsSheet, "B1", "Tariff")
	_ = f.SetCellValue(periodsSheet, "C1", "Dimension")
	_ = f.SetCellValue(periodsSheet, "D1", "Volume")
	row := 2
	for _, period := range cdr.ChargingPeriods {
		for _, dim := range period.Dimensions {
			_ = f.SetCellValue(periodsSheet, fmt.Sprintf("A%d", row), period.StartDateTime.Format(time.RFC3339))
			_ = f.SetCellValue(periodsSheet, fmt.Sprintf("B%d", row), period.TariffID)
			_ = f.SetCellValue(periodsSheet, fmt.Sprintf("C%d", row), dim.Type)
			_ = f.SetCellValue(periodsSheet, fmt.Sprintf("D%d", row), dim.Volume)
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
