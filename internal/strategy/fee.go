package strategy

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// Fee returns the exchange fee in dollars for count contracts at the given
// price in cents: round(rate * count * p * (1-p), 2) with p the price as a
// fraction of a dollar.
func Fee(rate decimal.Decimal, count, priceCents int) decimal.Decimal {
	p := decimal.New(int64(priceCents), -2)
	c := decimal.NewFromInt(int64(count))
	return rate.Mul(c).Mul(p).Mul(one.Sub(p)).Round(2)
}

// Cost returns the total dollar outlay for count contracts at the given
// price, fee included.
func Cost(rate decimal.Decimal, count, priceCents int) decimal.Decimal {
	p := decimal.New(int64(priceCents), -2)
	return p.Mul(decimal.NewFromInt(int64(count))).Add(Fee(rate, count, priceCents))
}

// MaxContracts returns the largest non-negative count such that
// Cost(count) <= budget.
//
// The closed form floor(budget / (p * (1 + rate*(1-p)))) treats the fee as
// linear in count, which it is not once rounded to whole cents. The result
// is therefore only a starting point: it is stepped down until the exact
// inequality holds, then probed upward in case the rounding left room for
// one more contract.
func MaxContracts(rate, budget decimal.Decimal, priceCents int) int {
	if priceCents <= 0 || !budget.IsPositive() {
		return 0
	}

	p := decimal.New(int64(priceCents), -2)
	denom := p.Mul(one.Add(rate.Mul(one.Sub(p))))

	count := int(budget.Div(denom).Floor().IntPart())

	for count > 0 && Cost(rate, count, priceCents).GreaterThan(budget) {
		count--
	}
	for Cost(rate, count+1, priceCents).LessThanOrEqual(budget) {
		count++
	}

	return count
}
