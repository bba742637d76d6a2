// Package fixtures decodes contract fixture files: the JSON export the loan-system converter
// produces and the mock data bundled with the server.
package fixtures

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/vehifin-api/internal/models"
)

//go:embed contracts.json
var embedded []byte

// ErrInvalidDataURI is returned for photos that are not base64 data URIs
var ErrInvalidDataURI = errors.New("invalid data URI")

// Record is one contract as written in a fixture file
type Record struct {
	ID              string              `json:"_id"`
	AltID           string              `json:"id"`
	ContractNumber  string              `json:"contract_number"`
	CustomerName    string              `json:"customer_name"`
	VehicleNumber   string              `json:"vehicle_number"`
	FileNumber      string              `json:"file_number"`
	CompanyName     string              `json:"company_name"`
	Status          string              `json:"status"`
	ContractDate    string              `json:"contract_date"`
	Customer        PersonRecord        `json:"customer"`
	Guarantor       PersonRecord        `json:"guarantor"`
	Vehicle         models.Vehicle      `json:"vehicle"`
	Loan            LoanRecord          `json:"loan"`
	PaymentSchedule []InstallmentRecord `json:"payment_schedule"`
}

// PersonRecord is a customer or guarantor; Photo is an optional data URI
type PersonRecord struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
	Relation string  `json:"relation"`
	Photo    *string `json:"photo"`
}

type LoanRecord struct {
	LoanAmount        decimal.Decimal `json:"loan_amount"`
	EMIAmount         decimal.Decimal `json:"emi_amount"`
	InterestRate      float64         `json:"interest_rate"`
	TenureMonths      int             `json:"tenure_months"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

type InstallmentRecord struct {
	Sno             int             `json:"sno"`
	EMIAmount       decimal.Decimal `json:"emi_amount"`
	DueDate         string          `json:"due_date"`
	PaymentReceived decimal.Decimal `json:"payment_received"`
	DateReceived    *string         `json:"date_received"`
	DelayDays       int             `json:"delay_days"`
}

// Photo is a decoded data URI
type Photo struct {
	Data []byte
	Ext  string
}

// Default returns the mock contracts bundled with the server
func Default() ([]Record, error) {
	return Decode(bytes.NewReader(embedded))
}

// Open decodes the fixture file at path
func Open(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a JSON array of contract records
func Decode(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	return records, nil
}

// ToContract converts the record into a contract with its payment schedule. Photos are not
// attached; callers store them and set the photo paths.
func (r Record) ToContract() models.Contract {
	id := r.ID
	if id == "" {
		id = r.AltID
	}

	customer := r.Customer.toPerson()
	if customer.Name == "" {
		customer.Name = r.CustomerName
	}

	vehicle := r.Vehicle
	if vehicle.RegistrationNumber == "" {
		vehicle.RegistrationNumber = r.VehicleNumber
	}

	c := models.Contract{
		ID:             id,
		ContractNumber: r.ContractNumber,
		FileNumber:     r.FileNumber,
		ContractDate:   r.ContractDate,
		Status:         r.Status,
		CompanyName:    r.CompanyName,
		Customer:       customer,
		Guarantor:      r.Guarantor.toPerson(),
		Vehicle:        vehicle,
		Loan: models.Loan{
			LoanAmount:        r.Loan.LoanAmount,
			InterestRate:      r.Loan.InterestRate,
			TenureMonths:      r.Loan.TenureMonths,
			EMIAmount:         r.Loan.EMIAmount,
			TotalAmount:       r.Loan.TotalAmount,
			AmountPaid:        r.Loan.AmountPaid,
			OutstandingAmount: r.Loan.OutstandingAmount,
		},
		Installments: make([]models.Installment, 0, len(r.PaymentSchedule)),
	}

	for _, p := range r.PaymentSchedule {
		c.Installments = append(c.Installments, models.Installment{
			ContractID:      id,
			Sno:             p.Sno,
			EMIAmount:       p.EMIAmount,
			DueDate:         p.DueDate,
			PaymentReceived: p.PaymentReceived,
			DateReceived:    p.DateReceived,
			DelayDays:       p.DelayDays,
		})
	}

	return c
}

// CustomerPhoto decodes the customer's photo, if any
func (r Record) CustomerPhoto() (*Photo, error) {
	return decodePhoto(r.Customer.Photo)
}

// GuarantorPhoto decodes the guarantor's photo, if any
func (r Record) GuarantorPhoto() (*Photo, error) {
	return decodePhoto(r.Guarantor.Photo)
}

func (p PersonRecord) toPerson() models.Person {
	return models.Person{
		Name:     p.Name,
		Phone:    p.Phone,
		Address:  p.Address,
		Relation: p.Relation,
	}
}

func decodePhoto(uri *string) (*Photo, error) {
	if uri == nil || *uri == "" {
		return nil, nil
	}
	data, ext, err := DecodeDataURI(*uri)
	if err != nil {
		return nil, err
	}
	return &Photo{Data: data, Ext: ext}, nil
}

// DecodeDataURI decodes a base64 data URI (data:image/png;base64,...) and returns the bytes
// with a file extension for the media type.
func DecodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrInvalidDataURI
	}
	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", ErrInvalidDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return data, extensionFor(mediaType), nil
}

// EncodeDataURI is the inverse of DecodeDataURI
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func extensionFor(mediaType string) string {
	switch strings.ToLower(mediaType) {
	case "image/svg+xml":
		return ".svg"
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
