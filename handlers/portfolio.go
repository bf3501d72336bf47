package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crypto-tracker/models"
	"crypto-tracker/state"
)

type HoldingInput struct {
	AssetID  string  `json:"crypto" binding:"required"`
	Symbol   string  `json:"symbol"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	AvgPrice float64 `json:"avgPrice" binding:"min=0"`
}

// holding fills a missing symbol from the price book.
func (h *Handler) holding(in HoldingInput) models.Holding {
	symbol := in.Symbol
	if q, ok := h.book.Quote(in.AssetID); ok && symbol == "" {
		symbol = q.Symbol
	}
	return models.Holding{AssetID: in.AssetID, Symbol: symbol, Amount: in.Amount, AvgPrice: in.AvgPrice}
}

type PositionView struct {
	models.Position
	ValueDisplay string `json:"value_display"`
	PnLDisplay   string `json:"profit_loss_display"`
	PnLPcDisplay string `json:"profit_loss_percent_display"`
	Up           bool   `json:"up"`
}

type PortfolioView struct {
	Holdings     []PositionView `json:"holdings"`
	Summary      models.Summary `json:"summary"`
	ValueDisplay string         `json:"total_value_display"`
	CostDisplay  string         `json:"total_invested_display"`
	PnLDisplay   string         `json:"profit_loss_display"`
	PnLPcDisplay string         `json:"profit_loss_percent_display"`
	Up           bool           `json:"up"`
}

func (h *Handler) portfolioView(c *gin.Context, dev *state.AppState) (*PortfolioView, error) {
	holdings, err := dev.Holdings(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return h.render(holdings), nil
}

func (h *Handler) render(holdings []models.Holding) *PortfolioView {
	positions, summary := h.book.Summarize(holdings)

	view := &PortfolioView{
		Holdings:     make([]PositionView, 0, len(positions)),
		Summary:      summary,
		ValueDisplay: usd(summary.TotalValue),
		CostDisplay:  usd(summary.TotalCost),
		PnLDisplay:   signedUSD(summary.ProfitLoss),
		PnLPcDisplay: signedPercent(summary.ProfitLossPc),
		Up:           summary.ProfitLoss >= 0,
	}
	for _, p := range positions {
		view.Holdings = append(view.Holdings, PositionView{
			Position:     p,
			ValueDisplay: usd(p.Value),
			PnLDisplay:   signedUSD(p.ProfitLoss),
			PnLPcDisplay: signedPercent(p.ProfitLossPc),
			Up:           p.ProfitLoss >= 0,
		})
	}
	return view
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	view, err := h.portfolioView(c, h.device(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) AddHolding(c *gin.Context) {
	var input HoldingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.device(c).AddHolding(c.Request.Context(), h.holding(input))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.render(list))
}

func indexParam(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return 0, false
	}
	return i, true
}

func (h *Handler) UpdateHolding(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	var input HoldingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.device(c).UpdateHolding(c.Request.Context(), i, h.holding(input))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(list))
}

func (h *Handler) DeleteHolding(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}

	list, err := h.device(c).RemoveHolding(c.Request.Context(), i)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(list))
}
