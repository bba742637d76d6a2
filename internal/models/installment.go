package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Installment is one EMI row of a contract's payment schedule
type Installment struct {
	ID              uint            `gorm:"primaryKey" json:"-"`
	ContractID      string          `gorm:"size:64;not null;uniqueIndex:idx_installments_contract_sno" json:"-"`
	Sno             int             `gorm:"not null;uniqueIndex:idx_installments_contract_sno" json:"sno"`
	EMIAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"emi_amount"`
	DueDate         string          `gorm:"size:10" json:"due_date"`
	PaymentReceived decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"payment_received"`
	DateReceived    *string         `gorm:"size:10" json:"date_received"`
	DelayDays       int             `gorm:"not null;default:0" json:"delay_days"`
}

// TableName specifies the table name for Installment
func (Installment) TableName() string {
	return "installments"
}

// InstallmentState classifies an installment by what was received and how late
type InstallmentState string

// Installment states. A partial payment counts as paid: the amount received is never
// compared with the EMI due.
const (
	InstallmentUnpaid     InstallmentState = "unpaid"
	InstallmentPaidOnTime InstallmentState = "paid_on_time"
	InstallmentPaidLate   InstallmentState = "paid_late"
)

// State returns the installment's payment state
func (i Installment) State() InstallmentState {
	if !i.IsPaid() {
		return InstallmentUnpaid
	}
	if i.DelayDays > 0 {
		return InstallmentPaidLate
	}
	return InstallmentPaidOnTime
}

// IsPaid reports whether any payment was received for the installment
func (i Installment) IsPaid() bool {
	return i.PaymentReceived.IsPositive()
}

// ReceivedDisplay is the received amount, or the placeholder when nothing was received
func (i Installment) ReceivedDisplay() string {
	if !i.IsPaid() {
		return Placeholder
	}
	return i.PaymentReceived.StringFixed(2)
}

// DateReceivedDisplay is the receipt date, or the placeholder when absent
func (i Installment) DateReceivedDisplay() string {
	if i.DateReceived == nil || *i.DateReceived == "" {
		return Placeholder
	}
	return *i.DateReceived
}

// DelayDisplay is the delay in days, or the placeholder when the installment was not late
func (i Installment) DelayDisplay() string {
	if i.DelayDays <= 0 {
		return Placeholder
	}
	return strconv.Itoa(i.DelayDays)
}

// InstallmentResponse is the JSON response format for a schedule row
type InstallmentResponse struct {
	Sno                 int              `json:"sno"`
	EMIAmount           decimal.Decimal  `json:"emi_amount"`
	DueDate             string           `json:"due_date"`
	PaymentReceived     decimal.Decimal  `json:"payment_received"`
	DateReceived        *string          `json:"date_received"`
	DelayDays           int              `json:"delay_days"`
	State               InstallmentState `json:"state"`
	ReceivedDisplay     string           `json:"payment_received_display"`
	DateReceivedDisplay string           `json:"date_received_display"`
	DelayDisplay        string           `json:"delay_display"`
}

// ToResponse converts Installment to InstallmentResponse
func (i Installment) ToResponse() InstallmentResponse {
	return InstallmentResponse{
		Sno:                 i.Sno,
		EMIAmount:           i.EMIAmount,
		DueDate:             i.DueDate,
		PaymentReceived:     i.PaymentReceived,
		DateReceived:        i.DateReceived,
		DelayDays:           i.DelayDays,
		State:               i.State(),
		ReceivedDisplay:     i.ReceivedDisplay(),
		DateReceivedDisplay: i.DateReceivedDisplay(),
		DelayDisplay:        i.DelayDisplay(),
	}
}
