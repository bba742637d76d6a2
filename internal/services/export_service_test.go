package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fixedExportService() *ExportService {
	s := NewExportService()
	s.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestExportService_RosterCSV(t *testing.T) {
	contracts := fixtureContracts(t)
	file, err := fixedExportService().Roster(models.Summaries(contracts), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "contracts_2024-05-01.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, rosterHeader, rows[0])
	assert.Equal(t, []string{"FIN-2024-001", "Rajesh Kumar", "MH-12-AB-1234", "HDFC Bank", "Live", "2024-01-15", "15000.00", "495000.00"}, rows[1])
}

func TestExportService_RosterXLSX(t *testing.T) {
	contracts := fixtureContracts(t)
	file, err := fixedExportService().Roster(models.Summaries(contracts), FormatXLSX)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Contracts")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Contract Number", rows[0][0])
	assert.Equal(t, "Priya Sharma", rows[2][1])
}

func TestExportService_RosterUnsupported(t *testing.T) {
	_, err := fixedExportService().Roster(nil, FormatPDF)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExportService_ScheduleCSV(t *testing.T) {
	contract := fixtureContracts(t)[0]
	file, err := fixedExportService().Schedule(&contract, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "schedule_FIN-2024-001.csv", file.Filename)

	rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"3", "15000.00", "2024-04-15", "10000.00", "2024-04-20", "5", "paid_late"}, rows[3])
	assert.Equal(t, []string{"4", "15000.00", "2024-05-15", "-", "-", "-", "unpaid"}, rows[4])
	assert.Equal(t, []string{"Total", "60000.00", "", "40000.00", "", "6", ""}, rows[5])
}

func TestExportService_ScheduleXLSXAndPDF(t *testing.T) {
	contract := fixtureContracts(t)[0]
	service := fixedExportService()

	xlsx, err := service.Schedule(&contract, FormatXLSX)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(xlsx.Data))
	require.NoError(t, err)
	defer f.Close()
	total, err := f.GetCellValue("Schedule", "A6")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)

	pdf, err := service.Schedule(&contract, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.True(t, bytes.HasPrefix(pdf.Data, []byte("%PDF")))

	_, err = service.Schedule(&contract, "docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "FIN_2024_001", safeFilename("FIN/2024 001"))
	assert.Equal(t, "contract", safeFilename(""))
}
