package roster

import (
	"github.com/shopspring/decimal"
	"github.com/sjperalta/vehifin-api/internal/models"
)

// PaymentSummary aggregates a contract's payment schedule
type PaymentSummary struct {
	TotalEMI        decimal.Decimal `json:"total_emi"`
	TotalReceived   decimal.Decimal `json:"total_received"`
	BalanceDue      decimal.Decimal `json:"balance_due"`
	CountTotal      int             `json:"count_total"`
	CountPaid       int             `json:"count_paid"`
	CountPending    int             `json:"count_pending"`
	CountPaidOnTime int             `json:"count_paid_on_time"`
	CountPaidLate   int             `json:"count_paid_late"`
	TotalDelayDays  int             `json:"total_delay_days"`
}

// Summarize reduces the schedule. An installment counts as paid when anything was received,
// whatever the amount.
func Summarize(schedule []models.Installment) PaymentSummary {
	s := PaymentSummary{
		TotalEMI:      decimal.Zero,
		TotalReceived: decimal.Zero,
		CountTotal:    len(schedule),
	}

	for _, inst := range schedule {
		s.TotalEMI = s.TotalEMI.Add(inst.EMIAmount)
		s.TotalReceived = s.TotalReceived.Add(inst.PaymentReceived)
		s.TotalDelayDays += inst.DelayDays

		switch inst.State() {
		case models.InstallmentPaidOnTime:
			s.CountPaid++
			s.CountPaidOnTime++
		case models.InstallmentPaidLate:
			s.CountPaid++
			s.CountPaidLate++
		default:
			s.CountPending++
		}
	}

	s.BalanceDue = s.TotalEMI.Sub(s.TotalReceived)
	return s
}
