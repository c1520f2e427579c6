package schemas

type FundsRequest struct {
	Amount    string `json:"amount"`
	Operation string `json:"operation"`
}

type AccountResponse struct {
	Username string `json:"username"`
	Cash     string `json:"cash"`
}

type QuoteResponse struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Price  string `json:"price"`
}
