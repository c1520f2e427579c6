package stockquote

import "github.com/shopspring/decimal"

// Quote is the lookup result surfaced to the rest of the service.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

type GetQuoteResponse struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"companyName"`
	LatestPrice float64 `json:"latestPrice"`
}
