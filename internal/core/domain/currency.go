package domain

// CurrencyInfo is immutable reference data describing a transaction currency.
type CurrencyInfo struct {
	CurrencyID    int64  `json:"currencyID"`    // Primary Key
	Code          string `json:"code"`          // e.g. "USD"
	Name          string `json:"name"`          // e.g. "US Dollar"
	Symbol        string `json:"symbol"`        // e.g. "$"
	DecimalPlaces int32  `json:"decimalPlaces"` // Rounding target for monetary division
}
