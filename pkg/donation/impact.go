package donation

// Environmental impact factors per unit of donated food. Categories without
// an entry yield a nil estimate, which callers surface as "impact unknown"
// instead of an error or a default.
var co2Factors = map[string]float64{
	"prepared": 2.5,
	"produce":  0.8,
	"bakery":   1.2,
	"canned":   1.5,
	"dairy":    3.0,
	"meat":     5.0,
	"grain":    0.5,
	"other":    1.0,
}

var waterFactors = map[string]float64{
	"prepared": 500,
	"produce":  300,
	"bakery":   400,
	"canned":   200,
	"dairy":    1000,
	"meat":     1500,
	"grain":    250,
	"other":    350,
}

// EstimateCO2 returns the estimated kg of CO2 saved by donating the given
// quantity, or nil for an unrecognized category.
func EstimateCO2(category string, quantity float64) *float64 {
	factor, ok := co2Factors[category]
	if !ok {
		return nil
	}
	impact := quantity * factor
	return &impact
}

// EstimateWater returns the estimated liters of water saved, or nil for an
// unrecognized category.
func EstimateWater(category string, quantity float64) *float64 {
	factor, ok := waterFactors[category]
	if !ok {
		return nil
	}
	impact := quantity * factor
	return &impact
}
