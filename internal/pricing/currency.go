package pricing

// DefaultRates anchors the table to BRL. The table is static; live
// quotes are not sourced here.
var DefaultRates = map[string]float64{
	"BRL": 1.0,
	"USD": 0.20,
	"EUR": 0.18,
}

// Convert translates a value between currencies over the rate table.
// Same-currency conversion returns the value untouched so the common
// case never picks up floating-point drift. Unknown currencies convert
// at rate 1.
func (e *Engine) Convert(value float64, from, to string) float64 {
	if from == to {
		return value
	}
	fromRate := e.Rates[from]
	if fromRate == 0 {
		fromRate = 1
	}
	toRate := e.Rates[to]
	if toRate == 0 {
		toRate = 1
	}
	return value / fromRate * toRate
}
