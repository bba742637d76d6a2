package fixtures

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_BundledContracts(t *testing.T) {
	records, err := Default()
	require.NoError(t, err)
	require.Len(t, records, 5)

	first := records[0].ToContract()
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "FIN-2024-001", first.ContractNumber)
	assert.Equal(t, "Rajesh Kumar", first.Customer.Name)
	assert.Equal(t, "MH-12-AB-1234", first.Vehicle.RegistrationNumber)
	assert.Equal(t, models.ContractStatusLive, first.Status)
	assert.True(t, first.Loan.OutstandingAmount.Equal(decimal.NewFromInt(495000)))
	require.Len(t, first.Installments, 4)
	assert.Nil(t, first.Installments[3].DateReceived)
	assert.Equal(t, 5, first.Installments[2].DelayDays)
	assert.Equal(t, "1", first.Installments[0].ContractID)
}

func TestRecord_ToContract_FallsBackToFlatFields(t *testing.T) {
	records, err := Decode(strings.NewReader(`[{
		"id": "abc",
		"contract_number": "VF20230001",
		"customer_name": "Anita Desai",
		"vehicle_number": "KA-01-ZZ-0001",
		"company_name": "Vehicle Finance Ltd",
		"status": "Live",
		"contract_date": "2023-01-01",
		"customer": {"phone": "+91 9000000000"},
		"vehicle": {"make": "Tata"},
		"loan": {"emi_amount": 9999.5, "outstanding_amount": 120000},
		"payment_schedule": []
	}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)

	c := records[0].ToContract()
	assert.Equal(t, "abc", c.ID)
	assert.Equal(t, "Anita Desai", c.Customer.Name)
	assert.Equal(t, "KA-01-ZZ-0001", c.Vehicle.RegistrationNumber)
	assert.True(t, c.Loan.EMIAmount.Equal(decimal.RequireFromString("9999.5")))
	assert.Empty(t, c.Installments)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestDataURIRoundTrip(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	uri := EncodeDataURI("image/svg+xml", svg)

	data, ext, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, svg, data)
	assert.Equal(t, ".svg", ext)
}

func TestDecodeDataURI_Rejects(t *testing.T) {
	for _, uri := range []string{
		"https://example.com/photo.png",
		"data:image/png;base64",
		"data:image/png,plain",
		"data:image/png;base64,%%%",
	} {
		_, _, err := DecodeDataURI(uri)
		assert.ErrorIs(t, err, ErrInvalidDataURI, uri)
	}
}

func TestRecord_Photos(t *testing.T) {
	uri := EncodeDataURI("image/png", []byte{0x89, 'P', 'N', 'G'})
	r := Record{Customer: PersonRecord{Photo: &uri}}

	photo, err := r.CustomerPhoto()
	require.NoError(t, err)
	require.NotNil(t, photo)
	assert.Equal(t, ".png", photo.Ext)

	none, err := r.GuarantorPhoto()
	assert.NoError(t, err)
	assert.Nil(t, none)
}
