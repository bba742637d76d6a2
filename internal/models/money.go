package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts travel as JSON numbers, the same shape the fixture files use.
	decimal.MarshalJSONWithoutQuotes = true
}

// Placeholder is shown for a value that does not exist yet (no payment, no receipt date, no delay)
const Placeholder = "-"
