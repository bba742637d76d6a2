package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestInstallment_State(t *testing.T) {
	tests := []struct {
		name     string
		inst     Installment
		expected InstallmentState
	}{
		{
			name:     "nothing received",
			inst:     Installment{EMIAmount: decimal.NewFromInt(15000), PaymentReceived: decimal.Zero},
			expected: InstallmentUnpaid,
		},
		{
			name:     "zero received with a stray delay is still unpaid",
			inst:     Installment{EMIAmount: decimal.NewFromInt(15000), DelayDays: 3},
			expected: InstallmentUnpaid,
		},
		{
			name:     "received on time",
			inst:     Installment{EMIAmount: decimal.NewFromInt(15000), PaymentReceived: decimal.NewFromInt(15000)},
			expected: InstallmentPaidOnTime,
		},
		{
			name:     "received late",
			inst:     Installment{EMIAmount: decimal.NewFromInt(15000), PaymentReceived: decimal.NewFromInt(15000), DelayDays: 1},
			expected: InstallmentPaidLate,
		},
		{
			// Partial payments are not told apart from full ones.
			name:     "partial payment late",
			inst:     Installment{EMIAmount: decimal.NewFromInt(15000), PaymentReceived: decimal.NewFromInt(10000), DelayDays: 5},
			expected: InstallmentPaidLate,
		},
		{
			name:     "partial payment on time",
			inst:     Installment{EMIAmount: decimal.NewFromInt(15000), PaymentReceived: decimal.NewFromInt(10000)},
			expected: InstallmentPaidOnTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.inst.State())
		})
	}
}

func TestInstallment_Displays(t *testing.T) {
	paidLate := Installment{
		PaymentReceived: decimal.NewFromInt(10000),
		DateReceived:    strPtr("2024-04-20"),
		DelayDays:       5,
	}
	assert.Equal(t, "10000.00", paidLate.ReceivedDisplay())
	assert.Equal(t, "2024-04-20", paidLate.DateReceivedDisplay())
	assert.Equal(t, "5", paidLate.DelayDisplay())

	unpaid := Installment{}
	assert.Equal(t, Placeholder, unpaid.ReceivedDisplay())
	assert.Equal(t, Placeholder, unpaid.DateReceivedDisplay())
	assert.Equal(t, Placeholder, unpaid.DelayDisplay())

	emptyDate := Installment{DateReceived: strPtr("")}
	assert.Equal(t, Placeholder, emptyDate.DateReceivedDisplay())
}

func TestInstallment_JSONAmountsAreNumbers(t *testing.T) {
	inst := Installment{Sno: 1, EMIAmount: decimal.NewFromInt(15000), PaymentReceived: decimal.NewFromInt(0)}
	b, err := json.Marshal(inst.ToResponse())
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, float64(15000), raw["emi_amount"])
	assert.Equal(t, "unpaid", raw["state"])
	assert.Nil(t, raw["date_received"])
	assert.Equal(t, "-", raw["delay_display"])
}
