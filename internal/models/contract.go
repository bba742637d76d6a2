package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contract represents a vehicle financing agreement between a company and a customer
type Contract struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	ContractNumber string    `gorm:"size:64;not null;index" json:"contract_number"`
	FileNumber     string    `gorm:"size:64" json:"file_number"`
	ContractDate   string    `gorm:"size:10;index" json:"contract_date"` // YYYY-MM-DD
	Status         string    `gorm:"size:32;index" json:"status"`
	CompanyName    string    `gorm:"index" json:"company_name"`
	Customer       Person    `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Guarantor      Person    `gorm:"embedded;embeddedPrefix:guarantor_" json:"guarantor"`
	Vehicle        Vehicle   `gorm:"embedded;embeddedPrefix:vehicle_" json:"vehicle"`
	Loan           Loan      `gorm:"embedded;embeddedPrefix:loan_" json:"loan"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Associations
	Installments []Installment `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"payment_schedule,omitempty"`
}

// TableName specifies the table name for Contract
func (Contract) TableName() string {
	return "contracts"
}

// BeforeCreate assigns an id to contracts created without one
func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Contract status values produced by the loan system export. Completed is only produced by
// the sample data generator.
const (
	ContractStatusLive      = "Live"
	ContractStatusSeized    = "Seized"
	ContractStatusCompleted = "Completed"
)

// Person is a customer or guarantor attached to a contract
type Person struct {
	Name      string  `json:"name"`
	Phone     string  `gorm:"size:32" json:"phone"`
	Address   string  `json:"address"`
	Relation  string  `gorm:"size:64" json:"relation,omitempty"`
	PhotoPath *string `json:"-"`
}

// HasPhoto reports whether a photo was stored for the person
func (p Person) HasPhoto() bool {
	return p.PhotoPath != nil && *p.PhotoPath != ""
}

// Vehicle is the financed vehicle
type Vehicle struct {
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
	RegistrationNumber string `gorm:"size:32;index" json:"registration_number"`
	VIN                string `gorm:"size:32" json:"vin"`
	Color              string `gorm:"size:32" json:"color"`
}

// Name is the short display name used on the detail header
func (v Vehicle) Name() string {
	return strings.TrimSpace(v.Make + " " + v.Model)
}

// Loan holds the financial terms of a contract
type Loan struct {
	LoanAmount        decimal.Decimal `gorm:"type:decimal(15,2)" json:"loan_amount"`
	InterestRate      float64         `json:"interest_rate"`
	TenureMonths      int             `json:"tenure_months"`
	EMIAmount         decimal.Decimal `gorm:"type:decimal(15,2)" json:"emi_amount"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_amount"`
	AmountPaid        decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount_paid"`
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(15,2);index" json:"outstanding_amount"`
}

// ContractSummary is the list-row projection of a contract
type ContractSummary struct {
	ID                  string          `json:"id"`
	ContractNumber      string          `json:"contract_number"`
	CustomerName        string          `json:"customer_name"`
	VehicleRegistration string          `json:"vehicle_registration"`
	CompanyName         string          `json:"company_name"`
	Status              string          `json:"status"`
	StatusColor         string          `json:"status_color"`
	OutstandingAmount   decimal.Decimal `json:"outstanding_amount"`
	EMIAmount           decimal.Decimal `json:"emi_amount"`
	ContractDate        string          `json:"contract_date"`
}

// ToSummary projects the contract into its list row
func (c *Contract) ToSummary() ContractSummary {
	return ContractSummary{
		ID:                  c.ID,
		ContractNumber:      c.ContractNumber,
		CustomerName:        c.Customer.Name,
		VehicleRegistration: c.Vehicle.RegistrationNumber,
		CompanyName:         c.CompanyName,
		Status:              c.Status,
		StatusColor:         StatusColor(c.Status),
		OutstandingAmount:   c.Loan.OutstandingAmount,
		EMIAmount:           c.Loan.EMIAmount,
		ContractDate:        c.ContractDate,
	}
}

// Summaries projects every contract into its list row
func Summaries(contracts []Contract) []ContractSummary {
	out := make([]ContractSummary, 0, len(contracts))
	for i := range contracts {
		out = append(out, contracts[i].ToSummary())
	}
	return out
}

// StatusColor maps a contract status to its badge color. Matching ignores case.
func StatusColor(status string) string {
	switch strings.ToLower(status) {
	case "live", "active":
		return "#4CAF50"
	case "completed":
		return "#2196F3"
	case "seized", "overdue":
		return "#F44336"
	default:
		return "#757575"
	}
}

// PersonResponse is the JSON response format for a customer or guarantor
type PersonResponse struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Relation string `json:"relation,omitempty"`
	HasPhoto bool   `json:"has_photo"`
}

func (p Person) toResponse() PersonResponse {
	return PersonResponse{
		Name:     p.Name,
		Phone:    p.Phone,
		Address:  p.Address,
		Relation: p.Relation,
		HasPhoto: p.HasPhoto(),
	}
}

// ContractResponse is the JSON response format for the contract detail view
type ContractResponse struct {
	ID              string                `json:"id"`
	ContractNumber  string                `json:"contract_number"`
	FileNumber      string                `json:"file_number"`
	ContractDate    string                `json:"contract_date"`
	Status          string                `json:"status"`
	StatusColor     string                `json:"status_color"`
	CompanyName     string                `json:"company_name"`
	VehicleName     string                `json:"vehicle_name"`
	Customer        PersonResponse        `json:"customer"`
	Guarantor       PersonResponse        `json:"guarantor"`
	Vehicle         Vehicle               `json:"vehicle"`
	Loan            Loan                  `json:"loan"`
	PaymentSchedule []InstallmentResponse `json:"payment_schedule"`
}

// ToResponse converts Contract to ContractResponse
func (c *Contract) ToResponse() ContractResponse {
	resp := ContractResponse{
		ID:              c.ID,
		ContractNumber:  c.ContractNumber,
		FileNumber:      c.FileNumber,
		ContractDate:    c.ContractDate,
		Status:          c.Status,
		StatusColor:     StatusColor(c.Status),
		CompanyName:     c.CompanyName,
		VehicleName:     c.Vehicle.Name(),
		Customer:        c.Customer.toResponse(),
		Guarantor:       c.Guarantor.toResponse(),
		Vehicle:         c.Vehicle,
		Loan:            c.Loan,
		PaymentSchedule: make([]InstallmentResponse, 0, len(c.Installments)),
	}

	for _, inst := range c.Installments {
		resp.PaymentSchedule = append(resp.PaymentSchedule, inst.ToResponse())
	}

	return resp
}
