package schemas

import "time"

// TradeRequest carries raw form input; share count stays a string until the
// trade service validates it.
type TradeRequest struct {
	Symbol string `json:"symbol"`
	Shares string `json:"shares"`
}

type TradeResponse struct {
	Symbol    string `json:"symbol"`
	Shares    int64  `json:"shares"`
	UnitPrice string `json:"unitPrice"`
	Cost      string `json:"cost"`
	Cash      string `json:"cash"`
}

type HistoryEntry struct {
	Symbol    string    `json:"symbol"`
	Quantity  int64     `json:"quantity"`
	EntryType string    `json:"type"`
	UnitPrice string    `json:"unitPrice"`
	Cost      string    `json:"cost"`
	Timestamp time.Time `json:"timestamp"`
}
