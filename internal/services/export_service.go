package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/roster"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

var contentTypes = map[string]string{
	FormatCSV:  "text/csv",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
}

// ExportFile is a generated download
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

var rosterHeader = []string{"Contract Number", "Customer", "Vehicle", "Company", "Status", "Contract Date", "EMI", "Outstanding"}

var scheduleHeader = []string{"S.No", "EMI Amount", "Due Date", "Payment Received", "Date Received", "Delay (days)", "State"}

type ExportService struct {
	now func() time.Time
}

func NewExportService() *ExportService {
	return &ExportService{now: time.Now}
}

// Roster exports roster rows as csv or xlsx
func (s *ExportService) Roster(list []models.ContractSummary, format string) (*ExportFile, error) {
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			c.ContractNumber,
			c.CustomerName,
			c.VehicleRegistration,
			c.CompanyName,
			c.Status,
			c.ContractDate,
			c.EMIAmount.StringFixed(2),
			c.OutstandingAmount.StringFixed(2),
		})
	}

	base := fmt.Sprintf("contracts_%s", s.now().Format(time.DateOnly))
	switch format {
	case FormatCSV:
		data, err := writeCSV(rosterHeader, rows, nil)
		return s.file(data, base, format, err)
	case FormatXLSX:
		data, err := writeXLSX("Contracts", rosterHeader, rows, nil)
		return s.file(data, base, format, err)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Schedule exports a contract's payment schedule with its totals as csv, xlsx or pdf
func (s *ExportService) Schedule(contract *models.Contract, format string) (*ExportFile, error) {
	summary := roster.Summarize(contract.Installments)

	rows := make([][]string, 0, len(contract.Installments))
	for _, inst := range contract.Installments {
		rows = append(rows, []string{
			strconv.Itoa(inst.Sno),
			inst.EMIAmount.StringFixed(2),
			inst.DueDate,
			inst.ReceivedDisplay(),
			inst.DateReceivedDisplay(),
			inst.DelayDisplay(),
			string(inst.State()),
		})
	}
	totals := []string{
		"Total",
		summary.TotalEMI.StringFixed(2),
		"",
		summary.TotalReceived.StringFixed(2),
		"",
		strconv.Itoa(summary.TotalDelayDays),
		"",
	}

	base := fmt.Sprintf("schedule_%s", safeFilename(contract.ContractNumber))
	switch format {
	case FormatCSV:
		data, err := writeCSV(scheduleHeader, rows, totals)
		return s.file(data, base, format, err)
	case FormatXLSX:
		data, err := writeXLSX("Schedule", scheduleHeader, rows, totals)
		return s.file(data, base, format, err)
	case FormatPDF:
		data, err := schedulePDF(contract, summary, rows, totals)
		return s.file(data, base, format, err)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (s *ExportService) file(data []byte, base, format string, err error) (*ExportFile, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", format, err)
	}
	return &ExportFile{
		Data:        data,
		Filename:    base + "." + format,
		ContentType: contentTypes[format],
	}, nil
}

func writeCSV(header []string, rows [][]string, totals []string) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	if totals != nil {
		if err := w.Write(totals); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeXLSX(sheet string, header []string, rows [][]string, totals []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	writeRow := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := writeRow(1, header); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	_ = f.SetCellStyle(sheet, "A1", lastCol+"1", boldStyle)

	for i, r := range rows {
		if err := writeRow(i+2, r); err != nil {
			return nil, err
		}
	}

	if totals != nil {
		rowNum := len(rows) + 2
		if err := writeRow(rowNum, totals); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), boldStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func schedulePDF(contract *models.Contract, summary roster.PaymentSummary, rows [][]string, totals []string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Payment Schedule")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Contract: %s   Customer: %s", contract.ContractNumber, contract.Customer.Name))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Company: %s   Status: %s", contract.CompanyName, contract.Status))
	pdf.Ln(10)

	widths := []float64{15, 30, 28, 34, 28, 24, 31}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(224, 224, 224)
	for i, h := range scheduleHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		for i, v := range r {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 9)
	for i, v := range totals {
		pdf.CellFormat(widths[i], 7, v, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, line := range [][2]string{
		{"Total EMIs:", strconv.Itoa(summary.CountTotal)},
		{"EMIs Paid:", strconv.Itoa(summary.CountPaid)},
		{"EMIs Pending:", strconv.Itoa(summary.CountPending)},
		{"Total Delays:", fmt.Sprintf("%d days", summary.TotalDelayDays)},
		{"Balance Due:", summary.BalanceDue.StringFixed(2)},
	} {
		pdf.Cell(50, 6, line[0])
		pdf.Cell(40, 6, line[1])
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func safeFilename(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
	if s == "" {
		return "contract"
	}
	return s
}
