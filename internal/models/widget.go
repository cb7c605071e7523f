package models

// WeatherReport is the weather widget payload. Source is "live" when
// fetched from the upstream API and "mock" when generated locally.
type WeatherReport struct {
	City       string  `json:"city"`
	TempC      float64 `json:"temp_c"`
	Condition  string  `json:"condition"`
	HumidityPC int     `json:"humidity_pc"`
	Source     string  `json:"source"`
}

// StockQuote is a single market quote for the stocks widget
type StockQuote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
	Source    string  `json:"source"`
}
