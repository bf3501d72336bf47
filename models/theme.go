package models

// Theme is a named presentational palette.
type Theme struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Bg        string `json:"bg"`
	CardBg    string `json:"cardBg"`
	Text      string `json:"text"`
	TextMuted string `json:"textMuted"`
	Border    string `json:"border"`
	Accent    string `json:"accent"`
	Hover     string `json:"hover"`
}

// Pages that the view layer can render.
const (
	PageMarket    = "market"
	PagePortfolio = "portfolio"
)
