package roster

import (
	"github.com/sjperalta/vehifin-api/internal/models"
	"golang.org/x/text/collate"
)

// FilterOptions lists the values the status and company filters can take
type FilterOptions struct {
	Statuses  []string `json:"statuses"`
	Companies []string `json:"companies"`
}

// Options collects the distinct statuses and companies of the roster, collated ascending
func (e *Engine) Options(contracts []models.ContractSummary) FilterOptions {
	statuses := map[string]struct{}{}
	companies := map[string]struct{}{}
	opts := FilterOptions{Statuses: []string{}, Companies: []string{}}

	for _, c := range contracts {
		if _, seen := statuses[c.Status]; !seen && c.Status != "" {
			statuses[c.Status] = struct{}{}
			opts.Statuses = append(opts.Statuses, c.Status)
		}
		if _, seen := companies[c.CompanyName]; !seen && c.CompanyName != "" {
			companies[c.CompanyName] = struct{}{}
			opts.Companies = append(opts.Companies, c.CompanyName)
		}
	}

	col := collate.New(e.tag)
	col.SortStrings(opts.Statuses)
	col.SortStrings(opts.Companies)
	return opts
}

// Options collects filter values with the default locale
func Options(contracts []models.ContractSummary) FilterOptions {
	return defaultEngine.Options(contracts)
}
