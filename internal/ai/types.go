package ai

// ReplyTerms is the structured form of a vendor's email reply. Fields the model
// could not find in the text come back nil.
type ReplyTerms struct {
	TotalPrice      *float64 `json:"total_price"`
	DeliveryDays    *int     `json:"delivery_days"`
	WarrantyYears   *float64 `json:"warranty_years"`
	PaymentTerms    *string  `json:"payment_terms"`
	AdditionalNotes *string  `json:"additional_notes"`
}

// VendorTerms is one vendor's extracted terms handed to the scoring call.
type VendorTerms struct {
	VendorID      uint                   `json:"vendor_id"`
	TotalPrice    *float64               `json:"total_price"`
	DeliveryDays  *int                   `json:"delivery_days"`
	WarrantyYears *float64               `json:"warranty_years"`
	PaymentTerms  *string                `json:"payment_terms"`
	EmailParsed   map[string]interface{} `json:"email_parsed"`
}

type EvaluationInput struct {
	Title              string        `json:"title"`
	Requirements       []interface{} `json:"requirements"`
	BudgetRange        interface{}   `json:"budget_range"`
	Timeline           interface{}   `json:"timeline"`
	EvaluationCriteria []interface{} `json:"evaluation_criteria"`
	Vendors            []VendorTerms `json:"vendor_responses"`
}

// EvaluationResult mirrors the scoring model's JSON output. Recommendation keys
// are vendor ids rendered as strings, the way JSON object keys arrive.
type EvaluationResult struct {
	Recommendations map[string]float64 `json:"recommendations"`
	BestVendorID    *uint              `json:"best_vendor_id"`
	Reasoning       string             `json:"reasoning"`
}
