package services

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/vehifin-api/internal/models"
)

const (
	sampleContractCount = 10
	sampleCompany       = "Vehicle Finance Ltd"
	sampleDayStep       = 30
)

var (
	sampleCustomers  = []string{"Rajesh Kumar", "Priya Sharma", "Amit Patel", "Sneha Reddy", "Vikram Singh", "Anita Desai", "Rahul Verma", "Deepika Rao", "Suresh Nair", "Kavita Joshi"}
	sampleGuarantors = []string{"Ramesh Kumar", "Sunita Sharma", "Prakash Patel", "Lakshmi Reddy", "Harpreet Singh", "Manjula Desai", "Ravi Verma", "Padma Rao", "Krishna Nair", "Meena Joshi"}
	sampleMakes      = []string{"Maruti Suzuki", "Hyundai", "Tata", "Mahindra", "Honda"}
	sampleModels     = []string{"Swift", "i20", "Nexon", "XUV300", "City", "Venue", "Altroz", "Scorpio"}
	sampleColors     = []string{"White", "Silver", "Black", "Red", "Blue"}
	sampleRelations  = []string{"Father", "Brother", "Uncle", "Friend", "Colleague"}
	sampleTenures    = []int{12, 24, 36, 48, 60}
	sampleStart      = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// SampleContract is a generated contract with placeholder photos for both people
type SampleContract struct {
	Contract       models.Contract
	CustomerPhoto  []byte
	GuarantorPhoto []byte
}

// GenerateSampleContracts builds the demo roster. The same rng seed always yields the same
// contracts.
func GenerateSampleContracts(rng *rand.Rand) []SampleContract {
	out := make([]SampleContract, 0, sampleContractCount)

	for i := 0; i < sampleContractCount; i++ {
		contractDate := sampleStart.AddDate(0, 0, i*sampleDayStep)
		tenure := sampleTenures[rng.Intn(len(sampleTenures))]
		loanAmount := 200000 + rng.Int63n(800001)
		rate := 8.5 + rng.Float64()*4

		emi := EMI(decimal.NewFromInt(loanAmount), rate, tenure)
		total := emi.Mul(decimal.NewFromInt(int64(tenure)))

		elapsed := rng.Intn(min(tenure, 24) + 1)
		paid := emi.Mul(decimal.NewFromInt(int64(elapsed)))

		status := models.ContractStatusLive
		switch {
		case elapsed >= tenure:
			status = models.ContractStatusCompleted
		case elapsed > 0 && rng.Float64() < 0.2:
			status = models.ContractStatusSeized
		}

		schedule := make([]models.Installment, 0, tenure)
		for month := 1; month <= tenure; month++ {
			due := contractDate.AddDate(0, 0, month*sampleDayStep)
			inst := models.Installment{
				Sno:             month,
				EMIAmount:       emi,
				DueDate:         due.Format(time.DateOnly),
				PaymentReceived: decimal.Zero,
			}
			if month <= elapsed {
				delay := 0
				if rng.Intn(4) == 0 {
					delay = 1 + rng.Intn(10)
				}
				received := due.AddDate(0, 0, delay).Format(time.DateOnly)
				inst.PaymentReceived = emi
				inst.DateReceived = &received
				inst.DelayDays = delay
			}
			schedule = append(schedule, inst)
		}

		contract := models.Contract{
			ContractNumber: fmt.Sprintf("VF%d%04d", sampleStart.Year(), i+1),
			FileNumber:     fmt.Sprintf("FILE-%d-%04d", sampleStart.Year(), i+1),
			ContractDate:   contractDate.Format(time.DateOnly),
			Status:         status,
			CompanyName:    sampleCompany,
			Customer: models.Person{
				Name:    sampleCustomers[i],
				Phone:   fmt.Sprintf("+91 %d", 7000000000+rng.Int63n(3000000000)),
				Address: fmt.Sprintf("%d Main Street, City-%d", 1+rng.Intn(999), 100000+rng.Intn(900000)),
			},
			Guarantor: models.Person{
				Name:     sampleGuarantors[i],
				Phone:    fmt.Sprintf("+91 %d", 7000000000+rng.Int63n(3000000000)),
				Address:  fmt.Sprintf("%d Park Avenue, City-%d", 1+rng.Intn(999), 100000+rng.Intn(900000)),
				Relation: sampleRelations[i%len(sampleRelations)],
			},
			Vehicle: models.Vehicle{
				Make:               sampleMakes[rng.Intn(len(sampleMakes))],
				Model:              sampleModels[rng.Intn(len(sampleModels))],
				Year:               2020 + rng.Intn(5),
				RegistrationNumber: fmt.Sprintf("DL%d%c%c%d", 10+rng.Intn(90), 'A'+rune(rng.Intn(26)), 'A'+rune(rng.Intn(26)), 1000+rng.Intn(9000)),
				VIN:                fmt.Sprintf("MA3%d%d", 10000000+rng.Intn(90000000), 100000+rng.Intn(900000)),
				Color:              sampleColors[rng.Intn(len(sampleColors))],
			},
			Loan: models.Loan{
				LoanAmount:        decimal.NewFromInt(loanAmount),
				InterestRate:      math.Round(rate*100) / 100,
				TenureMonths:      tenure,
				EMIAmount:         emi,
				TotalAmount:       total,
				AmountPaid:        paid,
				OutstandingAmount: total.Sub(paid),
			},
			Installments: schedule,
		}

		out = append(out, SampleContract{
			Contract:       contract,
			CustomerPhoto:  placeholderPhoto("#4A90E2"),
			GuarantorPhoto: placeholderPhoto("#E94B3C"),
		})
	}

	return out
}

// EMI is the equated monthly installment for principal at an annual rate (percent) over
// tenure months, rounded to 2 places
func EMI(principal decimal.Decimal, annualRate float64, tenure int) decimal.Decimal {
	if tenure <= 0 {
		return decimal.Zero
	}
	r := annualRate / 12 / 100
	if r == 0 {
		return principal.Div(decimal.NewFromInt(int64(tenure))).Round(2)
	}
	growth := math.Pow(1+r, float64(tenure))
	factor := decimal.NewFromFloat(r * growth / (growth - 1))
	return principal.Mul(factor).Round(2)
}

func placeholderPhoto(color string) []byte {
	return []byte(fmt.Sprintf(`<svg width="200" height="200" xmlns="http://www.w3.org/2000/svg">`+
		`<rect width="200" height="200" fill="%s"/>`+
		`<text x="100" y="100" text-anchor="middle" fill="white" font-size="20">Photo</text></svg>`, color))
}
