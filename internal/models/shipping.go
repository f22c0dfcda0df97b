package models

// RateBreakdown is one candidate charge breakdown from the carrier-rate
// service. The service returns many charge components; the checkout flow
// only consumes TotalAmount of the first candidate.
type RateBreakdown struct {
	Zone          string  `json:"zone,omitempty"`
	Status        string  `json:"status,omitempty"`
	GrossAmount   float64 `json:"gross_amount"`
	TotalAmount   float64 `json:"total_amount"`
	ChargedWeight float64 `json:"charged_weight,omitempty"`
}

// RateResponse is the carrier-rate service response envelope.
type RateResponse struct {
	Data []RateBreakdown `json:"data"`
}
