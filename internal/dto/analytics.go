package dto

// SpendingAnalytics aggregates a user's spend across every receipt.
// Store keys are lower-cased; category keys are kept as stored. A receipt
// with several categories contributes its full price to each of them, since
// categories are non-exclusive tags rather than a partition.
type SpendingAnalytics struct {
	StoreAnalytics    map[string]float64 `json:"storeAnalytics"`
	CategoryAnalytics map[string]float64 `json:"categoryAnalytics"`
}
