package models

// PriceRow is one period of historical stock data.
type PriceRow struct {
	Close  float64 `json:"close"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume float64 `json:"volume"`
}

// PriceSeries is the historical data a forecast is made from. Columns holds
// the source column names in close, open, high, low, volume order.
type PriceSeries struct {
	Columns []string   `json:"columns"`
	Rows    []PriceRow `json:"rows"`
}

var DefaultPriceColumns = []string{
	"Closing Price",
	"Opening Price",
	"High Price",
	"Low Price",
	"Volume",
}

type Forecast struct {
	Values      []float64 `json:"values"`
	Context     string    `json:"context"`
	Explanation string    `json:"explanation,omitempty"`
}
