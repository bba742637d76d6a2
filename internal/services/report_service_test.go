package services

import (
	"context"
	"testing"
	"time"

	"github.com/sjperalta/vehifin-api/internal/roster"
	"github.com/sjperalta/vehifin-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_ContractSheetHTML(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	path, err := store.SavePhoto("1", "customer", ".svg", []byte("<svg/>"))
	require.NoError(t, err)

	contracts := fixtureContracts(t)
	contracts[0].Customer.PhotoPath = &path
	contractSvc := NewContractService(&mockContractRepo{contracts: contracts}, roster.DefaultEngine(), store)

	service := NewReportService(contractSvc, store)
	service.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }

	html, contract, err := service.ContractSheetHTML(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "FIN-2024-001", contract.ContractNumber)

	page := string(html)
	assert.Contains(t, page, "Rajesh Kumar")
	assert.Contains(t, page, "Maruti Suzuki Swift (2023)")
	assert.Contains(t, page, "495000.00")
	assert.Contains(t, page, `src="data:image/svg&#43;xml;base64,`)
	assert.Contains(t, page, `class="late"`)
	assert.Contains(t, page, "Generated 2024-05-01 09:30")
	assert.Contains(t, page, "#4CAF50")
}

func TestReportService_ContractSheetHTML_NotFound(t *testing.T) {
	contractSvc := NewContractService(&mockContractRepo{}, roster.DefaultEngine(), nil)
	service := NewReportService(contractSvc, nil)

	_, _, err := service.ContractSheetHTML(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
