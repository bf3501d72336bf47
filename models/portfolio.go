package models

// Holding is a recorded position in one asset. AssetID references
// PriceQuote.ID; a missing quote is tolerated.
type Holding struct {
	AssetID  string  `json:"crypto"`
	Symbol   string  `json:"symbol"`
	Amount   float64 `json:"amount"`
	AvgPrice float64 `json:"avgPrice"`
}

// Position is a holding valued against the current price book.
type Position struct {
	Holding
	CurrentPrice float64 `json:"current_price"`
	Value        float64 `json:"value"`
	Cost         float64 `json:"cost"`
	ProfitLoss   float64 `json:"profit_loss"`
	ProfitLossPc float64 `json:"profit_loss_percent"`
}

// Summary holds the totals of a portfolio.
type Summary struct {
	TotalValue   float64 `json:"total_value"`
	TotalCost    float64 `json:"total_invested"`
	ProfitLoss   float64 `json:"profit_loss"`
	ProfitLossPc float64 `json:"profit_loss_percent"`
}
