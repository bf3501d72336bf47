package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/gin-gonic/gin"

	"crypto-tracker/models"
	"crypto-tracker/portfolio"
)

var usdFormat = money.GetCurrency(money.USD).Formatter()

// usd renders v rounded to cents with the USD template, e.g. "$67,234.15".
// It works on the decimal digits so amounts past int64 cents stay exact.
func usd(v float64) string {
	f := usdFormat
	d := portfolio.Decimal(v).Round(int32(f.Fraction))

	whole, frac, _ := strings.Cut(d.Abs().StringFixed(int32(f.Fraction)), ".")
	if f.Thousand != "" {
		for i := len(whole) - 3; i > 0; i -= 3 {
			whole = whole[:i] + f.Thousand + whole[i:]
		}
	}
	if frac != "" {
		whole += f.Decimal + frac
	}

	s := strings.Replace(f.Template, "1", whole, 1)
	s = strings.Replace(s, "$", f.Grapheme, 1)
	if d.IsNegative() {
		s = "-" + s
	}
	return s
}

// signedUSD prefixes non-negative amounts with "+".
func signedUSD(v float64) string {
	if v >= 0 {
		return "+" + usd(v)
	}
	return usd(v)
}

func signedPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

type QuoteView struct {
	models.PriceQuote
	PriceDisplay  string `json:"price_display"`
	ChangeDisplay string `json:"change_display"`
	Up            bool   `json:"up"`
}

func (h *Handler) marketView() []QuoteView {
	out := make([]QuoteView, 0, len(h.book))
	for _, q := range h.book {
		out = append(out, QuoteView{
			PriceQuote:    q,
			PriceDisplay:  usd(q.Price),
			ChangeDisplay: signedPercent(q.Change24h),
			Up:            q.Change24h >= 0,
		})
	}
	return out
}

func (h *Handler) GetMarket(c *gin.Context) {
	c.JSON(http.StatusOK, h.marketView())
}

// GetView renders whichever page the device last selected. Any stored page
// other than the portfolio renders the market.
func (h *Handler) GetView(c *gin.Context) {
	ctx := c.Request.Context()
	dev := h.device(c)

	snap, err := dev.Snapshot(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := gin.H{"state": snap}
	switch snap.Page {
	case models.PagePortfolio:
		if !snap.Authenticated {
			resp["authorization_required"] = true
			break
		}
		view, err := h.portfolioView(c, dev)
		if err != nil {
			h.fail(c, err)
			return
		}
		resp["portfolio"] = view
	default:
		resp["market"] = h.marketView()
	}
	c.JSON(http.StatusOK, resp)
}
