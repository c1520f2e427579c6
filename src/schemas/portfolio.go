package schemas

type Position struct {
	Symbol     string `json:"symbol"`
	Quantity   int64  `json:"quantity"`
	Price      string `json:"price"`
	TotalValue string `json:"totalValue"`
}

type PortfolioResponse struct {
	Positions   []Position `json:"positions"`
	Cash        string     `json:"cash"`
	TotalAssets string     `json:"totalAssets"`
}
