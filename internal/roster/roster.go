// Package roster filters, searches and sorts the contract roster and aggregates payment
// schedules. Every function here is pure: inputs are never mutated and nothing fails.
package roster

import (
	"slices"
	"strings"
	"time"

	"github.com/sjperalta/vehifin-api/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterAll disables the status or company filter
const FilterAll = "all"

// SortKey selects the roster ordering
type SortKey string

const (
	SortByDate     SortKey = "date"     // newest contract first
	SortByCustomer SortKey = "customer" // customer name, A-Z
	SortByAmount   SortKey = "amount"   // largest outstanding amount first
	SortByCompany  SortKey = "company"  // company name, A-Z
)

// DefaultLocale is the collation locale used by Apply
const DefaultLocale = "en-IN"

const dateLayout = "2006-01-02"

// ViewParameters are the user-controlled inputs of the roster screen
type ViewParameters struct {
	SearchQuery   string  `form:"search" json:"search"`
	StatusFilter  string  `form:"status_filter" json:"status_filter"`
	CompanyFilter string  `form:"company_filter" json:"company_filter"`
	SortBy        SortKey `form:"sort_by" json:"sort_by"`
}

// DefaultViewParameters returns the parameters of a freshly opened roster
func DefaultViewParameters() ViewParameters {
	return ViewParameters{
		StatusFilter:  FilterAll,
		CompanyFilter: FilterAll,
		SortBy:        SortByDate,
	}
}

// Engine applies view parameters with locale-aware name ordering
type Engine struct {
	tag language.Tag
}

// NewEngine creates an engine collating names for tag
func NewEngine(tag language.Tag) *Engine {
	return &Engine{tag: tag}
}

// NewEngineForLocale parses a BCP 47 locale such as "en-IN"
func NewEngineForLocale(locale string) (*Engine, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	return NewEngine(tag), nil
}

var defaultEngine = NewEngine(language.MustParse(DefaultLocale))

// DefaultEngine returns the engine used by the package-level functions
func DefaultEngine() *Engine {
	return defaultEngine
}

// Apply runs the roster pipeline with the default locale
func Apply(contracts []models.ContractSummary, params ViewParameters) []models.ContractSummary {
	return defaultEngine.Apply(contracts, params)
}

// Apply filters by status, then company, then the search query, and finally sorts. The result
// is a new slice. The sort is stable and an unknown sort key keeps the filtered order.
func (e *Engine) Apply(contracts []models.ContractSummary, params ViewParameters) []models.ContractSummary {
	query := strings.ToLower(params.SearchQuery)

	out := make([]models.ContractSummary, 0, len(contracts))
	for _, c := range contracts {
		if !matchesFilter(c.Status, params.StatusFilter) {
			continue
		}
		if !matchesFilter(c.CompanyName, params.CompanyFilter) {
			continue
		}
		if query != "" && !matchesQuery(c, query) {
			continue
		}
		out = append(out, c)
	}

	if cmp := e.comparator(params.SortBy); cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

func matchesFilter(value, filter string) bool {
	return filter == "" || filter == FilterAll || value == filter
}

func matchesQuery(c models.ContractSummary, query string) bool {
	for _, field := range []string{c.CustomerName, c.ContractNumber, c.VehicleRegistration, c.CompanyName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// comparator returns nil for unknown keys. Collators are not safe for concurrent use, so each
// call gets its own.
func (e *Engine) comparator(key SortKey) func(a, b models.ContractSummary) int {
	switch key {
	case SortByDate:
		return func(a, b models.ContractSummary) int {
			return parseDate(b.ContractDate).Compare(parseDate(a.ContractDate))
		}
	case SortByCustomer:
		col := collate.New(e.tag)
		return func(a, b models.ContractSummary) int {
			return col.CompareString(a.CustomerName, b.CustomerName)
		}
	case SortByAmount:
		return func(a, b models.ContractSummary) int {
			return b.OutstandingAmount.Cmp(a.OutstandingAmount)
		}
	case SortByCompany:
		col := collate.New(e.tag)
		return func(a, b models.ContractSummary) int {
			return col.CompareString(a.CompanyName, b.CompanyName)
		}
	default:
		return nil
	}
}

// parseDate accepts a calendar date or an RFC 3339 timestamp. Anything else is the zero time,
// which sorts last.
func parseDate(s string) time.Time {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Truncate(24 * time.Hour)
	}
	return time.Time{}
}
