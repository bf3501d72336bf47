// Package portfolio values a list of holdings against a price book.
//
// Every function here is pure and total. A holding whose asset has no quote
// is priced at zero, a zero cost basis yields a zero percentage, and NaN or
// infinite inputs count as zero.
package portfolio

import (
	"math"

	"github.com/shopspring/decimal"

	"crypto-tracker/models"
)

var hundred = decimal.NewFromInt(100)

// PriceBook is a lookup over a list of quotes.
type PriceBook []models.PriceQuote

// Quote returns the quote for assetID.
func (b PriceBook) Quote(assetID string) (models.PriceQuote, bool) {
	for _, q := range b {
		if q.ID == assetID {
			return q, true
		}
	}
	return models.PriceQuote{}, false
}

// CurrentPrice returns the price of assetID, or 0 when the book has no quote for it.
func (b PriceBook) CurrentPrice(assetID string) float64 {
	q, _ := b.Quote(assetID)
	return q.Price
}

// Decimal converts f, mapping NaN and infinities to zero.
func Decimal(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func (b PriceBook) value(h models.Holding) decimal.Decimal {
	return Decimal(h.Amount).Mul(Decimal(b.CurrentPrice(h.AssetID)))
}

func cost(h models.Holding) decimal.Decimal {
	return Decimal(h.Amount).Mul(Decimal(h.AvgPrice))
}

// pnl returns value-cost and its share of cost in percent.
func pnl(value, cost decimal.Decimal) (float64, float64) {
	abs := value.Sub(cost)
	if !cost.IsPositive() {
		return abs.InexactFloat64(), 0
	}
	return abs.InexactFloat64(), abs.Div(cost).Mul(hundred).InexactFloat64()
}

// PositionValue is amount times the current price.
func (b PriceBook) PositionValue(h models.Holding) float64 {
	return b.value(h).InexactFloat64()
}

// PositionCost is amount times the average cost.
func PositionCost(h models.Holding) float64 {
	return cost(h).InexactFloat64()
}

// PositionPnL returns the absolute and percent profit of one holding.
func (b PriceBook) PositionPnL(h models.Holding) (abs, percent float64) {
	return pnl(b.value(h), cost(h))
}

// TotalValue sums PositionValue over holdings.
func (b PriceBook) TotalValue(holdings []models.Holding) float64 {
	return b.totalValue(holdings).InexactFloat64()
}

func (b PriceBook) totalValue(holdings []models.Holding) decimal.Decimal {
	sum := decimal.Zero
	for _, h := range holdings {
		sum = sum.Add(b.value(h))
	}
	return sum
}

// TotalCost sums PositionCost over holdings.
func TotalCost(holdings []models.Holding) float64 {
	return totalCost(holdings).InexactFloat64()
}

func totalCost(holdings []models.Holding) decimal.Decimal {
	sum := decimal.Zero
	for _, h := range holdings {
		sum = sum.Add(cost(h))
	}
	return sum
}

// TotalPnL returns the absolute and percent profit of the whole list.
func (b PriceBook) TotalPnL(holdings []models.Holding) (abs, percent float64) {
	return pnl(b.totalValue(holdings), totalCost(holdings))
}

// Summarize values every holding in order and computes the totals.
func (b PriceBook) Summarize(holdings []models.Holding) ([]models.Position, models.Summary) {
	positions := make([]models.Position, 0, len(holdings))
	for _, h := range holdings {
		abs, pc := b.PositionPnL(h)
		positions = append(positions, models.Position{
			Holding:      h,
			CurrentPrice: b.CurrentPrice(h.AssetID),
			Value:        b.PositionValue(h),
			Cost:         PositionCost(h),
			ProfitLoss:   abs,
			ProfitLossPc: pc,
		})
	}

	abs, pc := b.TotalPnL(holdings)
	return positions, models.Summary{
		TotalValue:   b.TotalValue(holdings),
		TotalCost:    TotalCost(holdings),
		ProfitLoss:   abs,
		ProfitLossPc: pc,
	}
}
