// Package market holds the static reference data the tracker renders:
// price quotes and the theme table.
package market

import (
	"crypto-tracker/models"
)

var quotes = []models.PriceQuote{
	{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Price: 67234.15, Change24h: 2.45},
	{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Price: 3456.78, Change24h: -1.23},
	{ID: "cardano", Symbol: "ADA", Name: "Cardano", Price: 0.4523, Change24h: 5.67},
	{ID: "solana", Symbol: "SOL", Name: "Solana", Price: 145.32, Change24h: 3.21},
	{ID: "polygon", Symbol: "MATIC", Name: "Polygon", Price: 0.8765, Change24h: -2.15},
}

// Quotes returns a copy of the static quote list in display order.
func Quotes() []models.PriceQuote {
	out := make([]models.PriceQuote, len(quotes))
	copy(out, quotes)
	return out
}

// DefaultTheme is the theme a fresh device starts with.
const DefaultTheme = "zinc"

var themes = map[string]models.Theme{
	"stone": {
		Key:       "stone",
		Name:      "Stone",
		Bg:        "bg-stone-950",
		CardBg:    "bg-stone-900",
		Text:      "text-stone-100",
		TextMuted: "text-stone-400",
		Border:    "border-stone-800",
		Accent:    "bg-stone-700",
		Hover:     "hover:bg-stone-800",
	},
	"zinc": {
		Key:       "zinc",
		Name:      "Zinc",
		Bg:        "bg-zinc-950",
		CardBg:    "bg-zinc-900",
		Text:      "text-zinc-100",
		TextMuted: "text-zinc-400",
		Border:    "border-zinc-800",
		Accent:    "bg-zinc-700",
		Hover:     "hover:bg-zinc-800",
	},
	"purple": {
		Key:       "purple",
		Name:      "Purple",
		Bg:        "bg-purple-950",
		CardBg:    "bg-purple-900",
		Text:      "text-purple-100",
		TextMuted: "text-purple-300",
		Border:    "border-purple-800",
		Accent:    "bg-purple-700",
		Hover:     "hover:bg-purple-800",
	},
}

// Theme looks up a theme by key.
func Theme(key string) (models.Theme, bool) {
	t, ok := themes[key]
	return t, ok
}

// Themes returns every theme, ordered by key.
func Themes() []models.Theme {
	out := make([]models.Theme, 0, len(themes))
	for _, k := range []string{"purple", "stone", "zinc"} {
		out = append(out, themes[k])
	}
	return out
}
