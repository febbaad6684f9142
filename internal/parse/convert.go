package parse

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	one        = decimal.NewFromInt(1)
	two        = decimal.NewFromInt(2)
	hundred    = decimal.NewFromInt(100)
	negHundred = decimal.NewFromInt(-100)
)

// AmericanOdds converts a raw upstream price to American odds.
// Integer tokens and values with |v| > 100 are already American and pass
// through truncated. Anything else is decimal odds:
//
//	d >= 2.0        ->  (d-1)*100
//	1.0 < d < 2.0   ->  -100/(d-1)
//
// truncated toward zero. Returns ok=false for unparseable input and for
// d == 1.0 (would divide by zero); the caller keeps the row with nil odds.
func AmericanOdds(raw json.Number) (int, bool) {
	if n, err := strconv.ParseInt(raw.String(), 10, 64); err == nil {
		return int(n), true
	}

	d, err := decimal.NewFromString(raw.String())
	if err != nil {
		return 0, false
	}

	if d.Abs().GreaterThan(hundred) {
		return int(d.IntPart()), true
	}

	if d.Equal(one) {
		return 0, false
	}

	if d.GreaterThanOrEqual(two) {
		return int(d.Sub(one).Mul(hundred).IntPart()), true
	}

	return int(negHundred.Div(d.Sub(one)).IntPart()), true
}
